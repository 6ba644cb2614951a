package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/loan/service"
	"library-backend/pkg/database"
)

// fakeTxRunner executes the TxFunc directly and counts commits and
// rollbacks. A nil DBTX is fine because the fakes below ignore it.
type fakeTxRunner struct {
	commits   int
	rollbacks int
}

func (r *fakeTxRunner) RunInTx(_ context.Context, fn database.TxFunc) error {
	if err := fn(nil); err != nil {
		r.rollbacks++
		return err
	}
	r.commits++
	return nil
}

type fakeCatalog struct {
	book  *book.Book
	loans []loan.Loan

	getErr      error
	adjustments []int
	adjustErr   error
}

func (c *fakeCatalog) GetByTitleWithLoans(_ context.Context, _ string) (*book.Book, []loan.Loan, error) {
	if c.getErr != nil {
		return nil, nil, c.getErr
	}
	// Copy so the service mutating the returned book does not leak into
	// later calls within a test.
	b := *c.book
	return &b, c.loans, nil
}

func (c *fakeCatalog) AdjustAvailableCount(_ context.Context, _ database.DBTX, _ uuid.UUID, delta int) error {
	if c.adjustErr != nil {
		return c.adjustErr
	}
	c.adjustments = append(c.adjustments, delta)
	c.book.AvailableCount += delta
	return nil
}

type fakeLedger struct {
	held      int
	createErr error
	deleteErr error

	created []loan.Loan
	deleted []uuid.UUID
	byUser  []loan.Loan
	listErr error
}

func (l *fakeLedger) ListByUser(_ context.Context, _ uuid.UUID) ([]loan.Loan, error) {
	return l.byUser, l.listErr
}

func (l *fakeLedger) CountByUser(_ context.Context, _ uuid.UUID) (int, error) {
	return l.held, nil
}

func (l *fakeLedger) Create(_ context.Context, _ database.DBTX, entry loan.Loan) error {
	if l.createErr != nil {
		return l.createErr
	}
	l.created = append(l.created, entry)
	return nil
}

func (l *fakeLedger) Delete(_ context.Context, _ database.DBTX, bookID, _ uuid.UUID) error {
	if l.deleteErr != nil {
		return l.deleteErr
	}
	l.deleted = append(l.deleted, bookID)
	return nil
}

// recordingCache satisfies cache.Cache and records invalidations.
type recordingCache struct {
	deleted []string
}

func (c *recordingCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) {
	return false, nil
}

func (c *recordingCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}

func (c *recordingCache) Delete(_ context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *recordingCache) Ping(_ context.Context) error { return nil }

func testBook(available int) *book.Book {
	return &book.Book{
		ID:             uuid.New(),
		Title:          "The Handmaid's Tale",
		Genres:         []book.Genre{book.GenreFiction},
		AvailableCount: available,
	}
}

func Test_Borrow_Succeeds(t *testing.T) {
	catalog := &fakeCatalog{book: testBook(3)}
	ledger := &fakeLedger{held: 0}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, ledger, tx, &recordingCache{})

	readerID := uuid.New()
	dto, err := svc.Borrow(context.Background(), "The Handmaid's Tale", readerID)

	require.NoError(t, err)
	assert.Equal(t, 2, dto.AvailableCount)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, []int{-1}, catalog.adjustments)
	require.Len(t, ledger.created, 1)
	assert.Equal(t, readerID, ledger.created[0].UserID)
	assert.Equal(t,
		ledger.created[0].BorrowDate.AddDate(0, 0, loan.BorrowDays),
		ledger.created[0].ReturnDate)
}

func Test_Borrow_NoCopiesAvailable(t *testing.T) {
	catalog := &fakeCatalog{book: testBook(0)}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, &fakeLedger{}, tx, &recordingCache{})

	_, err := svc.Borrow(context.Background(), "The Handmaid's Tale", uuid.New())

	assert.ErrorIs(t, err, loan.ErrNoCopiesAvailable)
	assert.Zero(t, tx.commits, "no transaction should start when the shelf is empty")
}

func Test_Borrow_ReaderAtLoanLimit(t *testing.T) {
	catalog := &fakeCatalog{book: testBook(3)}
	ledger := &fakeLedger{held: loan.MaxLoansPerReader}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, ledger, tx, &recordingCache{})

	_, err := svc.Borrow(context.Background(), "The Handmaid's Tale", uuid.New())

	assert.ErrorIs(t, err, loan.ErrLoanLimitReached)
	assert.Zero(t, tx.commits)
	assert.Empty(t, ledger.created)
}

func Test_Borrow_DuplicateRollsBackDecrement(t *testing.T) {
	catalog := &fakeCatalog{book: testBook(3)}
	ledger := &fakeLedger{createErr: loan.ErrDuplicateLoan}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, ledger, tx, &recordingCache{})

	_, err := svc.Borrow(context.Background(), "The Handmaid's Tale", uuid.New())

	assert.ErrorIs(t, err, loan.ErrAlreadyBorrowed)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Zero(t, tx.commits)
}

func Test_Borrow_UnknownTitle(t *testing.T) {
	catalog := &fakeCatalog{getErr: book.ErrBookNotFound}
	svc := service.NewLendingService(catalog, &fakeLedger{}, &fakeTxRunner{}, &recordingCache{})

	_, err := svc.Borrow(context.Background(), "No Such Book", uuid.New())

	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func Test_Return_Succeeds(t *testing.T) {
	readerID := uuid.New()
	b := testBook(2)
	catalog := &fakeCatalog{
		book:  b,
		loans: []loan.Loan{loan.NewLoan(b.ID, readerID)},
	}
	ledger := &fakeLedger{}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, ledger, tx, &recordingCache{})

	dto, err := svc.Return(context.Background(), "The Handmaid's Tale", readerID)

	require.NoError(t, err)
	assert.Equal(t, 3, dto.AvailableCount)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, []int{+1}, catalog.adjustments)
	assert.Equal(t, []uuid.UUID{b.ID}, ledger.deleted)
}

func Test_Return_NotBorrowedByReader(t *testing.T) {
	b := testBook(2)
	catalog := &fakeCatalog{
		book:  b,
		loans: []loan.Loan{loan.NewLoan(b.ID, uuid.New())}, // someone else's loan
	}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, &fakeLedger{}, tx, &recordingCache{})

	_, err := svc.Return(context.Background(), "The Handmaid's Tale", uuid.New())

	assert.ErrorIs(t, err, loan.ErrLoanNotFound)
	assert.Zero(t, tx.commits)
}

func Test_Return_ConcurrentReturnRollsBackIncrement(t *testing.T) {
	readerID := uuid.New()
	b := testBook(2)
	catalog := &fakeCatalog{
		book:  b,
		loans: []loan.Loan{loan.NewLoan(b.ID, readerID)},
	}
	ledger := &fakeLedger{deleteErr: loan.ErrLoanNotFound}
	tx := &fakeTxRunner{}
	svc := service.NewLendingService(catalog, ledger, tx, &recordingCache{})

	_, err := svc.Return(context.Background(), "The Handmaid's Tale", readerID)

	assert.ErrorIs(t, err, loan.ErrLoanNotFound)
	assert.Equal(t, 1, tx.rollbacks)
}

func Test_Borrow_LastCopyGoesToFirstReader(t *testing.T) {
	catalog := &fakeCatalog{book: testBook(1)}
	ledger := &fakeLedger{}
	svc := service.NewLendingService(catalog, ledger, &fakeTxRunner{}, &recordingCache{})

	dto, err := svc.Borrow(context.Background(), "The Handmaid's Tale", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, dto.AvailableCount)

	_, err = svc.Borrow(context.Background(), "The Handmaid's Tale", uuid.New())
	assert.ErrorIs(t, err, loan.ErrNoCopiesAvailable)
	assert.Len(t, ledger.created, 1)
}

func Test_BorrowThenReturn_RestoresCount(t *testing.T) {
	readerID := uuid.New()
	catalog := &fakeCatalog{book: testBook(1)}
	ledger := &fakeLedger{}
	svc := service.NewLendingService(catalog, ledger, &fakeTxRunner{}, &recordingCache{})

	dto, err := svc.Borrow(context.Background(), "The Handmaid's Tale", readerID)
	require.NoError(t, err)
	assert.Equal(t, 0, dto.AvailableCount)

	catalog.loans = ledger.created
	dto, err = svc.Return(context.Background(), "The Handmaid's Tale", readerID)
	require.NoError(t, err)
	assert.Equal(t, 1, dto.AvailableCount)
}

func Test_ListUserLoans(t *testing.T) {
	readerID := uuid.New()
	entry := loan.NewLoan(uuid.New(), readerID)
	ledger := &fakeLedger{byUser: []loan.Loan{entry}}
	svc := service.NewLendingService(&fakeCatalog{book: testBook(1)}, ledger, &fakeTxRunner{}, &recordingCache{})

	dtos, err := svc.ListUserLoans(context.Background(), readerID)

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, entry.BookID, dtos[0].BookID)
	assert.Equal(t, entry.ReturnDate, dtos[0].ReturnDate)
}

func Test_ListUserLoans_PropagatesError(t *testing.T) {
	ledger := &fakeLedger{listErr: errors.New("connection reset")}
	svc := service.NewLendingService(&fakeCatalog{book: testBook(1)}, ledger, &fakeTxRunner{}, &recordingCache{})

	_, err := svc.ListUserLoans(context.Background(), uuid.New())

	assert.Error(t, err)
}

func Test_Borrow_InvalidatesListCache(t *testing.T) {
	cache := &recordingCache{}
	catalog := &fakeCatalog{book: testBook(3)}
	svc := service.NewLendingService(catalog, &fakeLedger{}, &fakeTxRunner{}, cache)

	_, err := svc.Borrow(context.Background(), "The Handmaid's Tale", uuid.New())

	require.NoError(t, err)
	assert.Equal(t, []string{"books:list"}, cache.deleted)
}
