// Package auth verifies identity-provider ID tokens.
package auth

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// GoogleIssuer is the OIDC issuer for Google ID tokens.
const GoogleIssuer = "https://accounts.google.com"

// Verifier checks ID tokens against an OIDC provider's signing keys.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
}

// compile-time interface assertion
var _ ports.TokenVerifier = (*Verifier)(nil)

// NewVerifier runs OIDC discovery against the issuer and prepares a
// verifier bound to the expected audience.
func NewVerifier(ctx context.Context, issuer, clientID string) (*Verifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("auth: oidc discovery for %s: %w", issuer, err)
	}
	return &Verifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

// NewGoogleVerifier prepares a verifier for Google-issued ID tokens.
func NewGoogleVerifier(ctx context.Context, clientID string) (*Verifier, error) {
	return NewVerifier(ctx, GoogleIssuer, clientID)
}

// Verify checks the token's signature, issuer, audience, and expiry,
// and extracts the profile claims.
func (v *Verifier) Verify(ctx context.Context, rawIDToken string) (domain.Identity, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}

	if idToken.Subject == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject claim", ports.ErrInvalidToken)
	}

	var claims struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: decode claims: %v", ports.ErrInvalidToken, err)
	}

	return domain.Identity{
		Subject:   idToken.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Picture:   claims.Picture,
		IssuedAt:  idToken.IssuedAt,
		ExpiresAt: idToken.Expiry,
	}, nil
}
