package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cuentas/apiserver/internal/services"
)

// UserHandler provides HTTP handlers for user administration.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UserRouter registers user routes on the given router. Every route requires
// a valid bearer token.
func UserRouter(r chi.Router, users *services.UserService, gate func(http.Handler) http.Handler) {
	handler := NewUserHandler(users)

	r.Use(gate)
	r.Get("/", handler.GetAll)
	r.Route("/{userID}", func(r chi.Router) {
		r.Get("/", handler.GetByID)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Remove)
	})
}

type UserUpdateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, users)
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador de usuario inválido")
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// Update overwrites the user's name and email. Both fields are required.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador de usuario inválido")
		return
	}

	var req UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Petición inválida")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "Faltan campos obligatorios")
		return
	}

	user, err := h.users.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

func (h *UserHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := parseUserID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador de usuario inválido")
		return
	}

	if err := h.users.Remove(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Usuario eliminado")
}

func parseUserID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid user id")
	}
	return id, nil
}
