package middlewares

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

// Logger returns a middleware that logs each request as a structured entry.
func Logger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:        true,
		LogMethod:        true,
		LogURI:           true,
		LogLatency:       true,
		LogContentLength: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(logrus.Fields{
				"status":   v.Status,
				"method":   v.Method,
				"uri":      v.URI,
				"bytes_in": v.ContentLength,
				"latency":  v.Latency.String(),
			}).Info("request")
			return nil
		},
	})
}
