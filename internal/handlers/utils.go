package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cuentas/apiserver/internal/services"
	"github.com/cuentas/apiserver/internal/store"
	"github.com/rs/zerolog/log"
)

// Response is the envelope for every JSON payload the API returns.
type Response struct {
	OK      bool   `json:"ok"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{OK: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{OK: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{OK: false, Message: message})
}

// writeServiceError is the single place translating service failures into
// HTTP statuses and sanitized messages. Handlers forward errors here
// unmodified; anything unrecognized is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Credenciales inválidas")
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, "El email ya está registrado")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Usuario no encontrado")
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusBadRequest, "Ya existe un registro con esos datos")
	case errors.Is(err, store.ErrForeignKey):
		writeError(w, http.StatusBadRequest, "Referencia a un registro que no existe")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "Error interno del servidor")
	}
}
