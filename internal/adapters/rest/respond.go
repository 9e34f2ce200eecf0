package rest

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
	"github.com/crescendo-labs/backend/internal/core/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service and domain failures to HTTP statuses.
// Validation failures echo their message; everything unexpected stays a
// generic 500 so internals never leak to clients.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCriteria),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, domain.ErrNotMember):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrGroupFull),
		errors.Is(err, domain.ErrAlreadyMember):
		h.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrInvalidToken):
		h.writeError(w, http.StatusUnauthorized, "invalid token")
	default:
		h.logger.Error("request failed", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
