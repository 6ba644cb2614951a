package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user"
	"library-backend/internal/domains/user/service"
	"library-backend/pkg/database"
)

type fakeUserRepository struct {
	byID       map[uuid.UUID]*user.User
	byUsername map[string]*user.User
	deleted    []uuid.UUID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:       make(map[uuid.UUID]*user.User),
		byUsername: make(map[string]*user.User),
	}
}

func (r *fakeUserRepository) put(u *user.User) {
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u
}

func (r *fakeUserRepository) Create(_ context.Context, u *user.User) error {
	if _, taken := r.byUsername[u.Username]; taken {
		return user.ErrUsernameTaken
	}
	r.put(u)
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) GetByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.byUsername[username]
	return ok, nil
}

func (r *fakeUserRepository) ListByRole(_ context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepository) Update(_ context.Context, u *user.User) error {
	r.put(u)
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, _ database.DBTX, id uuid.UUID) error {
	u, ok := r.byID[id]
	if !ok {
		return user.ErrUserNotFound
	}
	delete(r.byUsername, u.Username)
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeLoanReleaser struct {
	released []uuid.UUID
	err      error
}

func (f *fakeLoanReleaser) ReleaseAllByUser(_ context.Context, _ database.DBTX, userID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.released = append(f.released, userID)
	return nil
}

type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTx(_ context.Context, fn database.TxFunc) error {
	return fn(nil)
}

func newTestUserService(repo user.Repository, loans *fakeLoanReleaser) user.Service {
	return service.NewUserService(repo, loans, passthroughTxRunner{})
}

func Test_Register_HashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestUserService(repo, &fakeLoanReleaser{})

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret",
		Password: "offred1985",
		Role:     "reader",
	})

	require.NoError(t, err)
	assert.Equal(t, "margaret", dto.Username)
	assert.Equal(t, user.RoleReader, dto.Role)

	stored := repo.byUsername["margaret"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "offred1985", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("offred1985")))

	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHashCost, cost)
}

func Test_Register_RejectsDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestUserService(repo, &fakeLoanReleaser{})

	req := user.RegisterRequest{Username: "margaret", Password: "offred1985", Role: "reader"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func Test_Register_RejectsInvalidRequest(t *testing.T) {
	svc := newTestUserService(newFakeUserRepository(), &fakeLoanReleaser{})

	tests := []struct {
		name string
		req  user.RegisterRequest
	}{
		{name: "short_username", req: user.RegisterRequest{Username: "bob", Password: "longenough", Role: "reader"}},
		{name: "short_password", req: user.RegisterRequest{Username: "margaret", Password: "abc", Role: "reader"}},
		{name: "unknown_role", req: user.RegisterRequest{Username: "margaret", Password: "longenough", Role: "librarian"}},
		{name: "empty", req: user.RegisterRequest{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}

func Test_VerifyCredentials(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestUserService(repo, &fakeLoanReleaser{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret",
		Password: "offred1985",
		Role:     "reader",
	})
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		u, err := svc.VerifyCredentials(context.Background(), "margaret", "offred1985")
		require.NoError(t, err)
		assert.Equal(t, "margaret", u.Username)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := svc.VerifyCredentials(context.Background(), "margaret", "wrong")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown_username", func(t *testing.T) {
		_, err := svc.VerifyCredentials(context.Background(), "nobody-here", "offred1985")
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func Test_UpdateMe_RejectsTakenUsername(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestUserService(repo, &fakeLoanReleaser{})

	first, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret", Password: "offred1985", Role: "reader",
	})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), user.RegisterRequest{
		Username: "atwood1939", Password: "gilead12345", Role: "reader",
	})
	require.NoError(t, err)

	_, err = svc.UpdateMe(context.Background(), first.ID, user.UpdateMeRequest{
		Username: "atwood1939", Password: "newpassword",
	})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
}

func Test_UpdateMe_RehashesPassword(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestUserService(repo, &fakeLoanReleaser{})

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret", Password: "offred1985", Role: "reader",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateMe(context.Background(), dto.ID, user.UpdateMeRequest{
		Username: "margaret", Password: "a-new-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "margaret", updated.Username)

	_, err = svc.VerifyCredentials(context.Background(), "margaret", "a-new-password")
	assert.NoError(t, err)
	_, err = svc.VerifyCredentials(context.Background(), "margaret", "offred1985")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func Test_Delete_ReleasesLoansBeforeRemoval(t *testing.T) {
	repo := newFakeUserRepository()
	loans := &fakeLoanReleaser{}
	svc := newTestUserService(repo, loans)

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret", Password: "offred1985", Role: "reader",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), dto.ID))

	assert.Equal(t, []uuid.UUID{dto.ID}, loans.released)
	assert.Equal(t, []uuid.UUID{dto.ID}, repo.deleted)

	err = svc.Delete(context.Background(), dto.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func Test_Delete_FailedReleaseKeepsAccount(t *testing.T) {
	repo := newFakeUserRepository()
	loans := &fakeLoanReleaser{err: assert.AnError}
	svc := newTestUserService(repo, loans)

	dto, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret", Password: "offred1985", Role: "reader",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), dto.ID)
	assert.Error(t, err)
	assert.Empty(t, repo.deleted)
}

func Test_ListReaders_ExcludesAdmins(t *testing.T) {
	repo := newFakeUserRepository()
	svc := newTestUserService(repo, &fakeLoanReleaser{})

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "margaret", Password: "offred1985", Role: "reader",
	})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), user.RegisterRequest{
		Username: "head-librarian", Password: "gilead12345", Role: "admin",
	})
	require.NoError(t, err)

	readers, err := svc.ListReaders(context.Background())
	require.NoError(t, err)
	require.Len(t, readers, 1)
	assert.Equal(t, "margaret", readers[0].Username)
}
