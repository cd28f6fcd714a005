package services

import (
	"context"

	"github.com/cuentas/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetAll(ctx context.Context) ([]types.User, error)
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, id int, name, email string) (types.User, error)
	Delete(ctx context.Context, id int) error
}

// UserService encapsulates user use-cases.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) GetAll(ctx context.Context) ([]types.User, error) {
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites both name and email for the given id.
func (s *UserService) Update(ctx context.Context, id int, name, email string) (types.User, error) {
	return s.repo.Update(ctx, id, name, email)
}

// Remove hard-deletes the user.
func (s *UserService) Remove(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
