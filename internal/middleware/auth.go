package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns 0 if not found or if the token was not a session token.
func GetUserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(UserIDKey).(int64)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get(echo.HeaderAuthorization), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func withClaims(c echo.Context, claims *auth.Claims) {
	ctx := context.WithValue(c.Request().Context(), UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Subject)
	c.SetRequest(c.Request().WithContext(ctx))
}

// RequireAuth rejects requests without a valid bearer token and adds the
// token's user ID and email to the request context.
func RequireAuth(jwtManager *auth.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization token required").SetInternal(auth.ErrMissingToken)
			}
			token, ok := bearerToken(c.Request())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token").SetInternal(err)
			}

			withClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalAuth adds user info to the context when a valid token is present
// and lets every request through.
func OptionalAuth(jwtManager *auth.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := bearerToken(c.Request()); ok {
				if claims, err := jwtManager.Validate(token); err == nil {
					withClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}
