package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/cuentas/apiserver/config"
	"github.com/cuentas/apiserver/internal/db"
	"github.com/cuentas/apiserver/internal/docstore"
	"github.com/cuentas/apiserver/internal/handlers"
	"github.com/cuentas/apiserver/internal/services"
	"github.com/cuentas/apiserver/internal/store"
	"github.com/cuentas/apiserver/internal/token"
)

// Server wraps the HTTP server, router, and owned connections.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	docs       *docstore.Client
}

// New constructs a Server with its stores, services, and routes wired.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	log.Info().Msg("PostgreSQL conectado")

	docs, err := docstore.Connect(ctx, cfg.Mongo.URI)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("mongodb: %w", err)
	}
	log.Info().Msg("MongoDB conectado")

	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	userRepo := store.NewUserRepository(dbConn)
	authService := services.NewAuthService(userRepo, issuer)
	userService := services.NewUserService(userRepo)

	router := NewRouter(authService, userService, issuer)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		docs:       docs,
	}, nil
}

// NewRouter assembles the chi router with the middleware stack and all routes.
func NewRouter(authService *services.AuthService, userService *services.UserService, issuer *token.Issuer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	gate := handlers.RequireAuth(issuer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Route("/auth", func(r chi.Router) {
			handlers.AuthRouter(r, authService, gate)
		})
		r.Route("/users", func(r chi.Router) {
			handlers.UserRouter(r, userService, gate)
		})
	})

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("Servidor corriendo")
	return s.httpServer.ListenAndServe()
}

// Shutdown closes owned connections and stops the HTTP server.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.docs != nil {
		_ = s.docs.Close(context.Background())
	}
	return s.httpServer.Close()
}
