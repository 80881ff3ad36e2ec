// Package authn verifies the signed tokens that carry request identity.
// Token issuance lives in the account system; this package only parses and
// validates what arrives on HTTP requests and websocket handshakes.
package authn

import (
	"net/http"
	"strings"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload. The subject is the user id; the role mirrors
// the users table at issuance time.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the verified principal extracted from a token.
type Identity struct {
	UserID kernel.UUID
	Role   ports.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == ports.RoleAdmin
}

// TokenFromRequest extracts the raw token, preferring the "token" query
// parameter (websocket clients cannot always set headers) and falling back
// to the Authorization bearer header.
func TokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	header := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return after
	}

	return ""
}

// Parse verifies the token signature and expiry against the shared secret
// and returns the identity it carries. Only HMAC-signed tokens are accepted.
func Parse(secret, token string) (Identity, error) {
	if token == "" {
		return Identity{}, errs.NewValueIsRequiredError("token")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, errs.NewUnauthorizedErrorWithCause("invalid token", err)
	}
	if !parsed.Valid {
		return Identity{}, errs.NewUnauthorizedError("invalid token")
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Identity{}, errs.NewUnauthorizedErrorWithCause("invalid token subject", err)
	}

	return Identity{
		UserID: userID,
		Role:   ports.Role(claims.Role),
	}, nil
}
