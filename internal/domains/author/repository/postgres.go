package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) author.Repository {
	return &postgresRepository{pool: pool}
}

const authorColumns = "id, name, bio, date_of_birth, book_id, created_at, updated_at"

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (id, name, bio, date_of_birth, book_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.Name, a.Bio, a.DateOfBirth, a.BookID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := fmt.Sprintf("SELECT %s FROM authors WHERE id = $1", authorColumns)

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Bio, &a.DateOfBirth, &a.BookID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, author.ErrAuthorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]author.Author, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Bio, &a.DateOfBirth, &a.BookID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]author.Author, error) {
	return r.list(ctx,
		fmt.Sprintf("SELECT %s FROM authors ORDER BY name", authorColumns))
}

func (r *postgresRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]author.Author, error) {
	return r.list(ctx,
		fmt.Sprintf("SELECT %s FROM authors WHERE book_id = $1 ORDER BY name", authorColumns), bookID)
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET name = $2, bio = $3, updated_at = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Bio, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM authors WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}
