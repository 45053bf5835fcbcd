package middlewares

import (
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/apierror"
	"github.com/mdouchement/tastybites/internal/database"
	"github.com/pkg/errors"
)

// A UserFinder looks up users by email.
type UserFinder interface {
	database.UserInteraction
	IsNotFound(err error) bool
}

// Admin returns a middleware that only lets admin users through.
// It must be used after the Authentication middleware.
func Admin(db UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := CurrentIdentity(c).Email()
			if email == "" {
				return apierror.Forbidden()
			}

			user, err := db.FindUserByMail(c.Request().Context(), email)
			if err != nil {
				if db.IsNotFound(err) {
					return apierror.Forbidden()
				}
				return errors.Wrap(err, "could not get access to database")
			}

			if !user.IsAdmin() {
				return apierror.Forbidden()
			}

			return next(c)
		}
	}
}
