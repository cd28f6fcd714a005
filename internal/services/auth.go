package services

import (
	"context"
	"errors"

	"github.com/cuentas/apiserver/internal/store"
	"github.com/cuentas/apiserver/internal/token"
	"github.com/cuentas/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost      = 10
	defaultUserRole = "user"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so callers cannot distinguish which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering with an email already in use.
var ErrEmailTaken = errors.New("email already registered")

// AuthService encapsulates registration and login use-cases.
type AuthService struct {
	repo   UserRepository
	tokens *token.Issuer
}

func NewAuthService(repo UserRepository, tokens *token.Issuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register hashes the password and persists a new user. Email uniqueness is
// enforced by the store's unique constraint, not a prior existence check, so
// concurrent registrations with the same email cannot both succeed.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (types.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Name:         name,
		Email:        email,
		Role:         defaultUserRole,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return types.User{}, ErrEmailTaken
		}
		return types.User{}, err
	}
	return user, nil
}

// Login verifies credentials and mints a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (types.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, "", ErrInvalidCredentials
		}
		return types.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return types.User{}, "", err
	}
	return user, signed, nil
}

func (s *AuthService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}
