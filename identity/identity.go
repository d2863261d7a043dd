// Package identity verifies bearer tokens issued by the external identity
// provider. Every request re-validates its token; only the provider's
// signer certificates are cached, never verdicts.
package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verification failures, mapped to 401 by the middleware.
var (
	ErrMissingToken = errors.New("authorization token not found")
	ErrInvalidToken = errors.New("invalid authorization token")
)

// Identity is the verified caller.
type Identity struct {
	UID    string
	Email  string
	Claims jwt.MapClaims
}

// Verifier validates a raw Authorization header value.
type Verifier interface {
	Verify(ctx context.Context, authorizationHeader string) (*Identity, error)
}
