package loan

import "errors"

// Ledger (repository-level) errors
var (
	// ErrDuplicateLoan surfaces the (book_id, user_id) uniqueness
	// constraint - the last line of defense against a double-borrow race.
	ErrDuplicateLoan = errors.New("loan already exists for this book and user")

	ErrLoanNotFound = errors.New("loan not found")
)

// Lending service (business logic) errors
var (
	ErrNoCopiesAvailable = errors.New("no copies of this book are available")
	ErrLoanLimitReached  = errors.New("reader has reached the active loan limit")
	ErrAlreadyBorrowed   = errors.New("reader already holds a copy of this book")
)
