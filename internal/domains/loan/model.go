package loan

import (
	"time"

	"github.com/google/uuid"
)

// BorrowDays is the informational lending period. The due date is
// recorded on every loan but nothing enforces it; there is no overdue
// logic anywhere in the system.
const BorrowDays = 5

// MaxLoansPerReader caps how many books a reader may hold at once.
// Checked read-then-act, without row locking.
const MaxLoansPerReader = 5

// Loan is the ledger entry for one active borrow. Identity is the
// (book_id, user_id) pair; a reader holds at most one copy of a book.
// Rows are created on borrow and deleted on return, no history is kept.
type Loan struct {
	BookID uuid.UUID `db:"book_id" json:"book_id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`

	BorrowDate time.Time `db:"borrow_date" json:"borrow_date"`

	// Informational due date: borrow_date + BorrowDays.
	ReturnDate time.Time `db:"return_date" json:"return_date"`
}

// NewLoan stamps a fresh ledger entry.
func NewLoan(bookID, userID uuid.UUID) Loan {
	now := time.Now()
	return Loan{
		BookID:     bookID,
		UserID:     userID,
		BorrowDate: now,
		ReturnDate: now.AddDate(0, 0, BorrowDays),
	}
}

// LoanDTO is the reader-facing view of a loan.
type LoanDTO struct {
	BookID     uuid.UUID `json:"book_id"`
	BorrowDate time.Time `json:"borrow_date"`
	ReturnDate time.Time `json:"return_date"`
}

func (l Loan) ToDTO() LoanDTO {
	return LoanDTO{
		BookID:     l.BookID,
		BorrowDate: l.BorrowDate,
		ReturnDate: l.ReturnDate,
	}
}
