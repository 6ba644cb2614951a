package database

import (
	"context"
	"fmt"
)

// schemaStatements are idempotent and safe to run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('admin', 'reader')),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		date_of_pub DATE NOT NULL,
		genres TEXT[] NOT NULL,
		available_count INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS authors (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		bio TEXT,
		date_of_birth DATE NOT NULL,
		book_id UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS books_users (
		book_id UUID NOT NULL REFERENCES books(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		borrow_date DATE NOT NULL,
		return_date DATE NOT NULL,
		PRIMARY KEY (book_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_authors_book_id ON authors(book_id)`,
	`CREATE INDEX IF NOT EXISTS idx_books_users_user_id ON books_users(user_id)`,
}

// Migrate applies the schema. Statements are idempotent, so a pod restart
// or a second replica racing through them is harmless.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database not connected")
	}
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	return nil
}
