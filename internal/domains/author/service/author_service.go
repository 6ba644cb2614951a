package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/author"
	"library-backend/internal/domains/book"
)

// BookLookup is the only piece of the catalog the author service needs:
// a new author must attach to an existing book.
type BookLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
}

// ServiceInterface is the business-logic contract for authors.
type ServiceInterface interface {
	Create(ctx context.Context, bookID uuid.UUID, req author.CreateAuthorRequest) (*author.AuthorDTO, error)
	List(ctx context.Context) ([]author.AuthorDTO, error)
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]author.AuthorDTO, error)
	Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.AuthorDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type authorService struct {
	repo  author.Repository
	books BookLookup
}

func NewService(repo author.Repository, books BookLookup) ServiceInterface {
	return &authorService{
		repo:  repo,
		books: books,
	}
}

func (s *authorService) Create(ctx context.Context, bookID uuid.UUID, req author.CreateAuthorRequest) (*author.AuthorDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The owning book must exist; its deletion later cascades here
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	dob, err := req.ParsedDateOfBirth()
	if err != nil {
		return nil, fmt.Errorf("parse date_of_birth: %w", err)
	}

	now := time.Now()
	newAuthor := &author.Author{
		ID:          uuid.New(),
		Name:        req.Name,
		Bio:         req.Bio,
		DateOfBirth: dob,
		BookID:      bookID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, newAuthor); err != nil {
		return nil, err
	}

	dto := newAuthor.ToDTO()
	return &dto, nil
}

func (s *authorService) List(ctx context.Context) ([]author.AuthorDTO, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTOs(authors), nil
}

func (s *authorService) ListByBook(ctx context.Context, bookID uuid.UUID) ([]author.AuthorDTO, error) {
	if _, err := s.books.GetByID(ctx, bookID); err != nil {
		return nil, err
	}

	authors, err := s.repo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return toDTOs(authors), nil
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.AuthorDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Bio != nil {
		a.Bio = req.Bio
	}
	a.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func toDTOs(authors []author.Author) []author.AuthorDTO {
	dtos := make([]author.AuthorDTO, 0, len(authors))
	for i := range authors {
		dtos = append(dtos, authors[i].ToDTO())
	}
	return dtos
}
