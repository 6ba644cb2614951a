package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/book"
	bookService "library-backend/internal/domains/book/service"
	"library-backend/internal/domains/loan"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// Catalog is the slice of the book repository the lending workflow
// needs: one joined book+loans read, and the count mutation that must
// share a transaction with the ledger write.
type Catalog interface {
	GetByTitleWithLoans(ctx context.Context, title string) (*book.Book, []loan.Loan, error)
	AdjustAvailableCount(ctx context.Context, db database.DBTX, id uuid.UUID, delta int) error
}

// Ledger is the slice of loan.Repository the lending workflow uses.
type Ledger interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]loan.Loan, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, db database.DBTX, l loan.Loan) error
	Delete(ctx context.Context, db database.DBTX, bookID, userID uuid.UUID) error
}

// LendingService orchestrates borrow/return. The count mutation and the
// ledger mutation always commit or roll back together; no intermediate
// state is ever observable.
type LendingService struct {
	catalog Catalog
	ledger  Ledger
	tx      database.TxRunner
	cache   cache.Cache
}

func NewLendingService(catalog Catalog, ledger Ledger, tx database.TxRunner, c cache.Cache) *LendingService {
	return &LendingService{
		catalog: catalog,
		ledger:  ledger,
		tx:      tx,
		cache:   c,
	}
}

// Borrow hands one copy of the titled book to the reader.
//
// The availability and per-reader-limit checks are advisory
// (read-then-act, no row locking); the ledger's primary key is the only
// authoritative guard. A duplicate insert rolls back the whole
// transaction, including the count decrement.
func (s *LendingService) Borrow(ctx context.Context, title string, readerID uuid.UUID) (*book.BookDTO, error) {
	b, _, err := s.catalog.GetByTitleWithLoans(ctx, title)
	if err != nil {
		return nil, err
	}

	if b.AvailableCount == 0 {
		return nil, loan.ErrNoCopiesAvailable
	}

	held, err := s.ledger.CountByUser(ctx, readerID)
	if err != nil {
		return nil, fmt.Errorf("count reader loans: %w", err)
	}
	if held >= loan.MaxLoansPerReader {
		return nil, loan.ErrLoanLimitReached
	}

	err = s.tx.RunInTx(ctx, func(db database.DBTX) error {
		if err := s.catalog.AdjustAvailableCount(ctx, db, b.ID, -1); err != nil {
			return err
		}
		if err := s.ledger.Create(ctx, db, loan.NewLoan(b.ID, readerID)); err != nil {
			if errors.Is(err, loan.ErrDuplicateLoan) {
				// Concurrent duplicate slipped past the read: fail the
				// transaction so the decrement is undone as well
				return loan.ErrAlreadyBorrowed
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.AvailableCount--
	s.invalidateList(ctx)

	log.Info().
		Str("title", title).
		Str("reader_id", readerID.String()).
		Int("available_count", b.AvailableCount).
		Msg("Borrowed book")

	dto := b.ToDTO()
	return &dto, nil
}

// Return puts the reader's copy back on the shelf.
func (s *LendingService) Return(ctx context.Context, title string, readerID uuid.UUID) (*book.BookDTO, error) {
	b, loans, err := s.catalog.GetByTitleWithLoans(ctx, title)
	if err != nil {
		return nil, err
	}

	holdsCopy := false
	for _, l := range loans {
		if l.UserID == readerID {
			holdsCopy = true
			break
		}
	}
	if !holdsCopy {
		return nil, loan.ErrLoanNotFound
	}

	err = s.tx.RunInTx(ctx, func(db database.DBTX) error {
		if err := s.catalog.AdjustAvailableCount(ctx, db, b.ID, +1); err != nil {
			return err
		}
		// A concurrent return may have removed the row since the read;
		// failing here rolls the increment back
		return s.ledger.Delete(ctx, db, b.ID, readerID)
	})
	if err != nil {
		return nil, err
	}

	b.AvailableCount++
	s.invalidateList(ctx)

	log.Info().
		Str("title", title).
		Str("reader_id", readerID.String()).
		Int("available_count", b.AvailableCount).
		Msg("Returned book")

	dto := b.ToDTO()
	return &dto, nil
}

// ListUserLoans returns the reader's active loans.
func (s *LendingService) ListUserLoans(ctx context.Context, userID uuid.UUID) ([]loan.LoanDTO, error) {
	loans, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]loan.LoanDTO, 0, len(loans))
	for _, l := range loans {
		dtos = append(dtos, l.ToDTO())
	}
	return dtos, nil
}

func (s *LendingService) invalidateList(ctx context.Context) {
	// available_count is part of the public list payload
	if err := s.cache.Delete(ctx, bookService.ListCacheKey); err != nil {
		log.Error().Err(err).Msg("book list cache invalidate")
	}
}
