package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"library-backend/internal/domains/auth"
	"library-backend/pkg/jwt"
)

// TokenService issues and validates revocable bearer credentials.
// A token is valid only while its subject key still exists in the
// credential store, so revocation wins over JWT expiry.
type TokenService struct {
	repo auth.TokenRepository
	jwt  *jwt.Manager
}

func NewTokenService(repo auth.TokenRepository, manager *jwt.Manager) *TokenService {
	return &TokenService{
		repo: repo,
		jwt:  manager,
	}
}

// Issue creates a signed token for the user and registers its subject
// in the credential store with the configured TTL.
func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	subject := auth.Subject{UserID: userID, Role: role}.String()

	token, err := s.jwt.Generate(subject)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.repo.Add(ctx, subject, token, s.jwt.Expiry()); err != nil {
		return "", err
	}

	log.Info().Str("subject", subject).Msg("Issued access token")
	return token, nil
}

// Authenticate resolves a bearer token to an identity.
// Implements middleware.Authenticator.
func (s *TokenService) Authenticate(ctx context.Context, token string) (uuid.UUID, string, string, error) {
	rawSubject, err := s.jwt.Parse(token)
	if err != nil {
		return uuid.Nil, "", "", auth.ErrUnauthenticated
	}

	// Revocation check: logout or account deletion removes the key
	_, found, err := s.repo.Get(ctx, rawSubject)
	if err != nil {
		return uuid.Nil, "", "", err
	}
	if !found {
		return uuid.Nil, "", "", auth.ErrUnauthenticated
	}

	subject, err := auth.ParseSubject(rawSubject)
	if err != nil {
		return uuid.Nil, "", "", auth.ErrUnauthenticated
	}

	return subject.UserID, subject.Role, rawSubject, nil
}

// Revoke drops the subject key, invalidating the credential immediately.
func (s *TokenService) Revoke(ctx context.Context, subject string) error {
	return s.repo.Revoke(ctx, subject)
}
