package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/pkg/database"
)

var dialect = goqu.Dialect("postgres")

var bookColumns = []any{"id", "title", "description", "date_of_pub", "genres", "available_count", "created_at", "updated_at"}

// postgresRepository implements book.Repository with pgxpool, building
// the read queries with goqu.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

func genresToStrings(genres []book.Genre) []string {
	out := make([]string, len(genres))
	for i, g := range genres {
		out[i] = string(g)
	}
	return out
}

func stringsToGenres(values []string) []book.Genre {
	out := make([]book.Genre, len(values))
	for i, v := range values {
		out[i] = book.Genre(v)
	}
	return out
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	var genres []string
	err := row.Scan(&b.ID, &b.Title, &b.Description, &b.DateOfPub,
		pq.Array(&genres), &b.AvailableCount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Genres = stringsToGenres(genres)
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) error {
	query := `
		INSERT INTO books (id, title, description, date_of_pub, genres, available_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Description, b.DateOfPub,
		pq.Array(genresToStrings(b.Genres)), b.AvailableCount, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		// 23505 = unique_violation on title
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return book.ErrBookTitleTaken
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *postgresRepository) getOne(ctx context.Context, where goqu.Expression) (*book.Book, error) {
	query, args, err := dialect.From("books").
		Select(bookColumns...).
		Where(where).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build book query: %w", err)
	}

	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, book.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return r.getOne(ctx, goqu.C("id").Eq(id))
}

// GetByTitleWithLoans loads the book and its active borrowers in a
// single LEFT JOIN, the getBookWithLoans contract.
func (r *postgresRepository) GetByTitleWithLoans(ctx context.Context, title string) (*book.Book, []loan.Loan, error) {
	query := `
		SELECT
			b.id, b.title, b.description, b.date_of_pub, b.genres,
			b.available_count, b.created_at, b.updated_at,
			bu.user_id, bu.borrow_date, bu.return_date
		FROM books b
		LEFT JOIN books_users bu ON bu.book_id = b.id
		WHERE b.title = $1
	`

	rows, err := r.pool.Query(ctx, query, title)
	if err != nil {
		return nil, nil, fmt.Errorf("get book with loans: %w", err)
	}
	defer rows.Close()

	var result *book.Book
	var loans []loan.Loan
	for rows.Next() {
		var b book.Book
		var genres []string
		var userID uuid.NullUUID
		var borrowDate, returnDate sql.NullTime

		err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.DateOfPub,
			pq.Array(&genres), &b.AvailableCount, &b.CreatedAt, &b.UpdatedAt,
			&userID, &borrowDate, &returnDate)
		if err != nil {
			return nil, nil, fmt.Errorf("scan book with loans: %w", err)
		}

		if result == nil {
			b.Genres = stringsToGenres(genres)
			result = &b
		}

		// NULL user_id means the LEFT JOIN found no loans
		if userID.Valid {
			loans = append(loans, loan.Loan{
				BookID:     result.ID,
				UserID:     userID.UUID,
				BorrowDate: borrowDate.Time,
				ReturnDate: returnDate.Time,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows error: %w", err)
	}

	if result == nil {
		return nil, nil, book.ErrBookNotFound
	}
	return result, loans, nil
}

func (r *postgresRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM books WHERE title = $1)", title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check title exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]book.Book, error) {
	query, args, err := dialect.From("books").
		Select(bookColumns...).
		Order(goqu.C("title").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		var genres []string
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.DateOfPub,
			pq.Array(&genres), &b.AvailableCount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		b.Genres = stringsToGenres(genres)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) error {
	query := `
		UPDATE books
		SET title = $2, description = $3, date_of_pub = $4, genres = $5,
		    available_count = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Title, b.Description, b.DateOfPub,
		pq.Array(genresToStrings(b.Genres)), b.AvailableCount, b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return book.ErrBookTitleTaken
		}
		return fmt.Errorf("update book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// authors and books_users rows go with the book (ON DELETE CASCADE)
	tag, err := r.pool.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) AdjustAvailableCount(ctx context.Context, db database.DBTX, id uuid.UUID, delta int) error {
	tag, err := db.Exec(ctx,
		"UPDATE books SET available_count = available_count + $2, updated_at = NOW() WHERE id = $1",
		id, delta)
	if err != nil {
		return fmt.Errorf("adjust available count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}
