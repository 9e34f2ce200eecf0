package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	userKey     contextKey = "user"
)

// IdentityFrom returns the verified token identity stored by the auth
// middleware, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// UserFrom returns the authenticated user stored by the auth middleware,
// if any.
func UserFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}

// requireIdentity verifies the bearer token on every request, upserts
// the matching user record, and injects both into the request context.
func (h *Handler) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawToken, ok := bearerToken(r)
		if !ok {
			h.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		identity, err := h.verifier.Verify(r.Context(), rawToken)
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

		ctx := context.WithValue(r.Context(), identityKey, identity)
		ctx = context.WithValue(ctx, userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return token, token != ""
}
