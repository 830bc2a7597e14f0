package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger logs every request with its status, duration, request ID
// and, when authenticated, user ID. Server errors log at error level and
// client errors at warn.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// writes the response so the status below is final
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", res.Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
			}
			if userID := GetUserID(req.Context()); userID != 0 {
				attrs = append(attrs, "user_id", userID)
			}
			if err != nil {
				attrs = append(attrs, "error", err)
			}

			switch {
			case res.Status >= 500:
				logger.Error("HTTP request", attrs...)
			case res.Status >= 400:
				logger.Warn("HTTP request", attrs...)
			default:
				logger.Info("HTTP request", attrs...)
			}
			return nil
		}
	}
}
