package middlewares

import (
	"fmt"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/tastybites/internal/apierror"
	"github.com/sirupsen/logrus"
)

// HTTPErrorHandler returns a handler that formats rendered errors.
func HTTPErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		switch err := err.(type) {
		case *apierror.Error:
			status := apierror.StatusCode(err)
			if status < 500 {
				_ = c.JSON(status, err)
				return
			}

			internal(log, err, c)
		case *echo.HTTPError:
			if err.Internal != nil {
				log.WithError(err.Internal).Warn("echo error")
			}
			_ = c.JSON(err.Code, apierror.New(err.Code, fmt.Sprint(err.Message)))
		default:
			internal(log, err, c)
		}
	}
}

func internal(log logrus.FieldLogger, err error, c echo.Context) {
	id := uuid.Must(uuid.NewV4()).String()
	log.WithField("id", id).WithError(err).Error("unexpected error")

	_ = c.JSON(http.StatusInternalServerError, apierror.New(
		http.StatusInternalServerError,
		fmt.Sprintf("Unexpected error (id: %s)", id),
	))
}
