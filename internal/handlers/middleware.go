package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cuentas/apiserver/internal/services"
	"github.com/cuentas/apiserver/internal/store"
	"github.com/cuentas/apiserver/internal/token"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// RequireAuth enforces a bearer token and injects the verified claims into
// the request context.
func RequireAuth(verifier *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Token no proporcionado")
				return
			}

			claims, err := verifier.Verify(tokenString)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					writeError(w, http.StatusUnauthorized, "Token expirado")
					return
				}
				writeError(w, http.StatusUnauthorized, "Token inválido")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows the request through only when the authenticated user's
// stored role is one of allowedRoles. It must be mounted behind RequireAuth.
func RequireRole(users *services.UserService, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := claimsFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Unauthenticated user")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeError(w, http.StatusUnauthorized, "Unauthenticated user")
					return
				}
				writeServiceError(w, r, err)
				return
			}

			for _, role := range allowedRoles {
				if strings.EqualFold(user.Role, role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "You do not have permission to perform this action.")
		})
	}
}

func claimsFromContext(ctx context.Context) (*token.Claims, error) {
	claims, ok := ctx.Value(contextClaimsKey).(*token.Claims)
	if !ok || claims == nil {
		return nil, errors.New("missing claims")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", errors.New("invalid authorization")
	}
	return tokenString, nil
}
