package ports

import (
	"context"
	"errors"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// ErrInvalidToken indicates an ID token failed verification.
var ErrInvalidToken = errors.New("invalid id token")

// TokenVerifier checks an identity provider's ID token and extracts the
// verified claims.
type TokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (domain.Identity, error)
}
