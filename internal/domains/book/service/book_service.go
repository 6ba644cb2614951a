package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	// ListCacheKey holds the serialized public book list.
	ListCacheKey = "books:list"

	listCacheTTL = 5 * time.Minute
)

type bookService struct {
	repo  book.Repository
	cache cache.Cache
}

func NewService(repo book.Repository, c cache.Cache) ServiceInterface {
	return &bookService{
		repo:  repo,
		cache: c,
	}
}

func (s *bookService) Create(ctx context.Context, req book.CreateBookRequest) (*book.BookDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Advisory pre-check; the unique index on title is the real guard
	exists, err := s.repo.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("check title exists: %w", err)
	}
	if exists {
		return nil, book.ErrBookTitleTaken
	}

	dateOfPub, err := req.ParsedDateOfPub()
	if err != nil {
		return nil, fmt.Errorf("parse date_of_pub: %w", err)
	}

	availableCount := book.DefaultAvailableCount
	if req.AvailableCount != nil {
		availableCount = *req.AvailableCount
	}

	genres := make([]book.Genre, len(req.Genres))
	for i, g := range req.Genres {
		genres[i] = book.Genre(g)
	}

	now := time.Now()
	newBook := &book.Book{
		ID:             uuid.New(),
		Title:          req.Title,
		Description:    req.Description,
		DateOfPub:      dateOfPub,
		Genres:         genres,
		AvailableCount: availableCount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, newBook); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)

	dto := newBook.ToDTO()
	return &dto, nil
}

func (s *bookService) List(ctx context.Context) ([]book.BookDTO, error) {
	var cached []book.BookDTO
	found, err := s.cache.Get(ctx, ListCacheKey, &cached)
	if err != nil {
		// Cache trouble must not take down reads
		logger.Error("book list cache get", err)
	}
	if found {
		return cached, nil
	}

	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]book.BookDTO, 0, len(books))
	for i := range books {
		dtos = append(dtos, books[i].ToDTO())
	}

	if err := s.cache.Set(ctx, ListCacheKey, dtos, listCacheTTL); err != nil {
		logger.Error("book list cache set", err)
	}

	return dtos, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.BookDTO, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := b.ToDTO()
	return &dto, nil
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req book.UpdateBookRequest) (*book.BookDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != b.Title {
		exists, err := s.repo.ExistsByTitle(ctx, *req.Title)
		if err != nil {
			return nil, fmt.Errorf("check title exists: %w", err)
		}
		if exists {
			return nil, book.ErrBookTitleTaken
		}
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.AvailableCount != nil {
		b.AvailableCount = *req.AvailableCount
	}
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidateList(ctx)

	dto := b.ToDTO()
	return &dto, nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *bookService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, ListCacheKey); err != nil {
		logger.Error("book list cache invalidate", err)
	}
}
