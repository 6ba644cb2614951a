package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/loan"
	"library-backend/pkg/database"
)

// postgresRepository implements loan.Repository on the books_users table.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) loan.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) list(ctx context.Context, query string, arg any) ([]loan.Loan, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	return scanLoans(rows)
}

func scanLoans(rows pgx.Rows) ([]loan.Loan, error) {
	var loans []loan.Loan
	for rows.Next() {
		var l loan.Loan
		if err := rows.Scan(&l.BookID, &l.UserID, &l.BorrowDate, &l.ReturnDate); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return loans, nil
}

func (r *postgresRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]loan.Loan, error) {
	return r.list(ctx,
		"SELECT book_id, user_id, borrow_date, return_date FROM books_users WHERE book_id = $1",
		bookID)
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]loan.Loan, error) {
	return r.list(ctx,
		"SELECT book_id, user_id, borrow_date, return_date FROM books_users WHERE user_id = $1",
		userID)
}

func (r *postgresRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM books_users WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count loans by user: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Create(ctx context.Context, db database.DBTX, l loan.Loan) error {
	query := `
		INSERT INTO books_users (book_id, user_id, borrow_date, return_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := db.Exec(ctx, query, l.BookID, l.UserID, l.BorrowDate, l.ReturnDate)
	if err != nil {
		// 23505 = unique_violation on the (book_id, user_id) primary key.
		// This is the authoritative guard against double-borrow races.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return loan.ErrDuplicateLoan
		}
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, db database.DBTX, bookID, userID uuid.UUID) error {
	tag, err := db.Exec(ctx,
		"DELETE FROM books_users WHERE book_id = $1 AND user_id = $2", bookID, userID)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

func (r *postgresRepository) ReleaseAllByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error {
	// Put every held copy back on the shelf before dropping the rows.
	_, err := db.Exec(ctx, `
		UPDATE books b
		SET available_count = b.available_count + 1
		FROM books_users bu
		WHERE bu.book_id = b.id AND bu.user_id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("release loans: restore counts: %w", err)
	}

	_, err = db.Exec(ctx, "DELETE FROM books_users WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("release loans: clear ledger: %w", err)
	}
	return nil
}
