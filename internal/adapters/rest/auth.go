package rest

import (
	"net/http"
	"time"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

type verifyTokenRequest struct {
	IDToken string `json:"idToken"`
}

type sessionResponse struct {
	User      *domain.User `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// VerifyToken handles POST /api/auth/verify. It validates a Google ID
// token, creates or refreshes the matching user record, and returns the
// resulting profile.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req verifyTokenRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if req.IDToken == "" {
		h.writeError(w, http.StatusBadRequest, "idToken is required")
		return
	}

	identity, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		h.logger.Debug("token rejected", "error", err)
		h.writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	user, err := h.users.Upsert(r.Context(), identity)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, sessionResponse{User: user, ExpiresAt: identity.ExpiresAt})
}

// RefreshToken handles POST /api/auth/refresh. The middleware has
// already re-validated the token, so this reports the current session.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())
	user, _ := UserFrom(r.Context())
	h.writeJSON(w, http.StatusOK, sessionResponse{User: user, ExpiresAt: identity.ExpiresAt})
}

// AuthStatus handles GET /api/auth/status.
func (h *Handler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFrom(r.Context())
	h.writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"subject":       identity.Subject,
		"expiresAt":     identity.ExpiresAt,
	})
}

// UserProfile handles GET /api/user/profile.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFrom(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "missing session")
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}
