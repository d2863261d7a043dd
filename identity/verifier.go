package identity

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const issuerPrefix = "https://securetoken.google.com/"

// TokenVerifier validates RS256 ID tokens minted by the external identity
// provider for one project.
type TokenVerifier struct {
	projectID string
	keys      *KeySource
}

// NewTokenVerifier builds a verifier from the service-account credential
// (raw or base64 JSON) and a key source for the provider's certificates.
func NewTokenVerifier(serviceKey string, keys *KeySource) (*TokenVerifier, error) {
	sa, err := parseServiceAccount(serviceKey)
	if err != nil {
		return nil, err
	}
	return &TokenVerifier{projectID: sa.ProjectID, keys: keys}, nil
}

// ProjectID the verifier accepts tokens for.
func (v *TokenVerifier) ProjectID() string {
	return v.projectID
}

// Verify checks the raw Authorization header value and returns the verified
// caller. The token must be a bearer token signed by the provider for this
// project, unexpired and well-formed; anything else is ErrInvalidToken.
func (v *TokenVerifier) Verify(ctx context.Context, authorizationHeader string) (*Identity, error) {
	if authorizationHeader == "" {
		return nil, ErrMissingToken
	}

	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		kid, _ := token.Header["kid"].(string)
		return v.keys.Key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(issuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		logrus.WithError(err).Debug("token verification failed")
		return nil, ErrInvalidToken
	}

	uid, _ := claims.GetSubject()
	email, _ := claims["email"].(string)
	return &Identity{UID: uid, Email: email, Claims: claims}, nil
}
