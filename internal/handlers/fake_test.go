package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/cuentas/apiserver/internal/server"
	"github.com/cuentas/apiserver/internal/services"
	"github.com/cuentas/apiserver/internal/store"
	"github.com/cuentas/apiserver/internal/token"
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

// testEnv holds the router and collaborators for handler tests.
type testEnv struct {
	router *chi.Mux
	repo   *fakeUserRepo
	issuer *token.Issuer
	users  *services.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := newFakeUserRepo()
	issuer := token.NewIssuer("test-secret", time.Hour)
	authService := services.NewAuthService(repo, issuer)
	userService := services.NewUserService(repo)
	return &testEnv{
		router: server.NewRouter(authService, userService, issuer),
		repo:   repo,
		issuer: issuer,
		users:  userService,
	}
}

// envelope mirrors the API response wrapper.
type envelope struct {
	OK      bool            `json:"ok"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// register creates a user through the API and returns it.
func (e *testEnv) register(t *testing.T, name, email, password string) types.User {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user types.User
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
	return user
}

// bearerFor mints a valid token for the given user.
func (e *testEnv) bearerFor(t *testing.T, user types.User) string {
	t.Helper()
	signed, err := e.issuer.Issue(user.ID, user.Email)
	require.NoError(t, err)
	return signed
}
