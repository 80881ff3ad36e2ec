package http

import (
	"net/http"

	"pizzeria/internal/pkg/authn"

	"github.com/labstack/echo/v4"
)

// identityKey is the echo context key holding the verified identity.
const identityKey = "identity"

// AuthMiddleware verifies the request token and stores the identity on the
// context. Requests without a valid token never reach a handler.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := authn.TokenFromRequest(ctx.Request())
			if token == "" {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "missing token",
				})
			}

			identity, err := authn.Parse(secret, token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid token",
				})
			}

			ctx.Set(identityKey, identity)
			return next(ctx)
		}
	}
}

// identityFrom returns the identity the auth middleware attached.
func identityFrom(ctx echo.Context) (authn.Identity, bool) {
	identity, ok := ctx.Get(identityKey).(authn.Identity)
	return identity, ok
}
