package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/auth"
	"library-backend/internal/domains/auth/service"
	"library-backend/pkg/jwt"
)

// memoryTokenRepository keeps subject keys in a map, mirroring the
// redis key/value semantics without TTL expiry.
type memoryTokenRepository struct {
	entries map[string]string
	ttls    map[string]time.Duration
}

func newMemoryTokenRepository() *memoryTokenRepository {
	return &memoryTokenRepository{
		entries: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (r *memoryTokenRepository) Add(_ context.Context, key, value string, ttl time.Duration) error {
	r.entries[key] = value
	r.ttls[key] = ttl
	return nil
}

func (r *memoryTokenRepository) Get(_ context.Context, key string) (string, bool, error) {
	value, found := r.entries[key]
	return value, found, nil
}

func (r *memoryTokenRepository) Revoke(_ context.Context, key string) error {
	delete(r.entries, key)
	return nil
}

func newTestService() (*service.TokenService, *memoryTokenRepository) {
	repo := newMemoryTokenRepository()
	manager := jwt.NewManager("unit-test-secret", 30*time.Minute)
	return service.NewTokenService(repo, manager), repo
}

func Test_Issue_StoresSubjectWithTokenLifetime(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()

	token, err := svc.Issue(context.Background(), userID, "reader")

	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject := auth.Subject{UserID: userID, Role: "reader"}.String()
	stored, found, err := repo.Get(context.Background(), subject)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, token, stored)
	assert.Equal(t, 30*time.Minute, repo.ttls[subject])
}

func Test_Authenticate_ResolvesIdentity(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	token, err := svc.Issue(context.Background(), userID, "admin")
	require.NoError(t, err)

	gotID, gotRole, gotSubject, err := svc.Authenticate(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.Equal(t, "admin", gotRole)
	assert.Equal(t, auth.Subject{UserID: userID, Role: "admin"}.String(), gotSubject)
}

func Test_Authenticate_RejectsRevokedToken(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()

	token, err := svc.Issue(context.Background(), userID, "reader")
	require.NoError(t, err)

	subject := auth.Subject{UserID: userID, Role: "reader"}.String()
	require.NoError(t, svc.Revoke(context.Background(), subject))

	_, _, _, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func Test_Authenticate_RejectsForgedToken(t *testing.T) {
	svc, _ := newTestService()

	forged, err := jwt.NewManager("attacker-secret", time.Hour).Generate(
		auth.Subject{UserID: uuid.New(), Role: "admin"}.String())
	require.NoError(t, err)

	_, _, _, err = svc.Authenticate(context.Background(), forged)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func Test_ParseSubject(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid_reader", raw: "user:" + userID.String() + ":reader"},
		{name: "valid_admin", raw: "user:" + userID.String() + ":admin"},
		{name: "wrong_prefix", raw: "session:" + userID.String() + ":reader", wantErr: true},
		{name: "missing_role", raw: "user:" + userID.String(), wantErr: true},
		{name: "bad_uuid", raw: "user:not-a-uuid:reader", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subject, err := auth.ParseSubject(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, subject.UserID)
			assert.Equal(t, tc.raw, subject.String())
		})
	}
}
