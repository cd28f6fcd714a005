package services_test

import (
	"context"
	"time"

	"github.com/cuentas/apiserver/internal/store"
	"github.com/cuentas/apiserver/types"
)

// fakeUserRepo is an in-memory stand-in for the Postgres repository. It
// mirrors the store's error contract, including the unique email constraint.
type fakeUserRepo struct {
	nextID int
	users  map[int]types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int]types.User)}
}

func (f *fakeUserRepo) GetAll(ctx context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(f.users))
	for id := 1; id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrDuplicate
		}
	}
	now := time.Now()
	user.ID = f.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int, name, email string) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	for otherID, other := range f.users {
		if otherID != id && other.Email == email {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.Name = name
	user.Email = email
	user.UpdatedAt = time.Now()
	f.users[id] = user
	return user, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.users, id)
	return nil
}
