package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/pkg/database"
)

// LoanReleaser is the slice of the lending ledger the user service needs
// for account deletion: putting every borrowed copy back on the shelf.
type LoanReleaser interface {
	ReleaseAllByUser(ctx context.Context, db database.DBTX, userID uuid.UUID) error
}

type userService struct {
	repo  user.Repository
	loans LoanReleaser
	tx    database.TxRunner
}

// NewUserService creates the service instance.
func NewUserService(repo user.Repository, loans LoanReleaser, tx database.TxRunner) user.Service {
	return &userService{
		repo:  repo,
		loans: loans,
		tx:    tx,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Advisory pre-check; the unique index on username is the real guard
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, user.ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), user.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newUser := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(passwordHash),
		Role:         user.Role(req.Role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	dto := newUser.ToDTO()
	return &dto, nil
}

func (s *userService) VerifyCredentials(ctx context.Context, username, password string) (*user.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		// Do not reveal whether the username exists
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) UpdateMe(ctx context.Context, userID uuid.UUID, req user.UpdateMeRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != u.Username {
		exists, err := s.repo.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("check username exists: %w", err)
		}
		if exists {
			return nil, user.ErrUsernameTaken
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), user.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u.Username = req.Username
	u.PasswordHash = string(passwordHash)
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

// Delete removes the account. Active loans are released first so the
// books' available counts stay truthful; a bare FK cascade would strand
// the borrowed copies. Both steps commit or roll back together.
func (s *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return err
	}

	return s.tx.RunInTx(ctx, func(db database.DBTX) error {
		if err := s.loans.ReleaseAllByUser(ctx, db, userID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, db, userID)
	})
}

func (s *userService) ListReaders(ctx context.Context) ([]user.UserDTO, error) {
	readers, err := s.repo.ListByRole(ctx, user.RoleReader)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.UserDTO, 0, len(readers))
	for i := range readers {
		dtos = append(dtos, readers[i].ToDTO())
	}
	return dtos, nil
}
