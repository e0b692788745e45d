package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"go-weather/pkg/log"
	"go-weather/pkg/msg"
)

// SetupRequestID assigns a UUID to each request lacking an X-Request-Id header
func SetupRequestID(e *echo.Echo) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
}

// SetupRequestLogger registers the request logging middleware with custom log output.
// Client errors are logged at warn, server errors at error.
func SetupRequestLogger(e *echo.Echo) {
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRequestID: true,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/health") || strings.Contains(path, "/swagger/")
		},
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}

			switch {
			case v.Error != nil:
				log.Error(msg.GetMessage("app.req-fail", v.Method, v.URI, v.Status, v.Latency, v.RequestID, v.Error),
					append(fields, zap.Error(v.Error))...)
			case v.Status >= 500:
				log.Error(msg.GetMessage("app.req-end", v.Method, v.URI, v.Status, v.Latency, v.RequestID), fields...)
			case v.Status >= 400:
				log.Warn(msg.GetMessage("app.req-end", v.Method, v.URI, v.Status, v.Latency, v.RequestID), fields...)
			default:
				log.Info(msg.GetMessage("app.req-end", v.Method, v.URI, v.Status, v.Latency, v.RequestID), fields...)
			}
			return nil
		},
	}))
}
