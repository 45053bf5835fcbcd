package middlewares

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/apierror"
	"github.com/mdouchement/tastybites/internal/token"
)

// CurrentIdentityContextKey is the key to retrieve the current_identity from echo.Context.
const CurrentIdentityContextKey = "current_identity"

// A Verifier verifies bearer tokens.
type Verifier interface {
	Verify(raw string) (token.Payload, error)
}

// Authentication returns a bearer token auth middleware.
// It stores current_identity into echo.Context.
func Authentication(v Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authorization := c.Request().Header.Get(echo.HeaderAuthorization)
			if authorization == "" {
				return apierror.Unauthorized()
			}

			payload, err := v.Verify(bearer(authorization))
			if err != nil {
				return apierror.InvalidCredentials()
			}

			c.Set(CurrentIdentityContextKey, payload)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by the Authentication middleware.
func CurrentIdentity(c echo.Context) token.Payload {
	payload, ok := c.Get(CurrentIdentityContextKey).(token.Payload)
	if ok {
		return payload
	}
	return nil
}

// bearer returns the second field of the header whatever the scheme is.
func bearer(authorization string) string {
	parts := strings.Fields(authorization)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
