package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuentas/apiserver/internal/services"
	"github.com/cuentas/apiserver/internal/store"
	"github.com/cuentas/apiserver/types"
)

func seedUser(t *testing.T, repo *fakeUserRepo, name, email string) types.User {
	t.Helper()
	user, err := repo.Create(context.Background(), types.User{
		Name:         name,
		Email:        email,
		Role:         "user",
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func TestUserGetAll(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)

	seedUser(t, repo, "Ana", "ana@x.com")
	seedUser(t, repo, "Luis", "luis@x.com")

	users, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ana@x.com", users[0].Email)
	assert.Equal(t, "luis@x.com", users[1].Email)
}

func TestUserUpdate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)

	created := seedUser(t, repo, "Ana", "ana@x.com")

	updated, err := svc.Update(context.Background(), created.ID, "Ana María", "anamaria@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "anamaria@x.com", updated.Email)
}

func TestUserUpdateNotFoundDoesNotMutate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)

	created := seedUser(t, repo, "Ana", "ana@x.com")

	_, err := svc.Update(context.Background(), 999, "Nadie", "nadie@x.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	unchanged, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", unchanged.Name)
	assert.Equal(t, "ana@x.com", unchanged.Email)
}

func TestUserUpdateEmailConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)

	seedUser(t, repo, "Ana", "ana@x.com")
	other := seedUser(t, repo, "Luis", "luis@x.com")

	_, err := svc.Update(context.Background(), other.ID, "Luis", "ana@x.com")
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestUserRemove(t *testing.T) {
	repo := newFakeUserRepo()
	svc := services.NewUserService(repo)

	created := seedUser(t, repo, "Ana", "ana@x.com")

	require.NoError(t, svc.Remove(context.Background(), created.ID))

	_, err := svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Remove(context.Background(), created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
