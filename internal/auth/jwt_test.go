package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/sdg1/budgetcoach/internal/models"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", 7*24*time.Hour)
	user := &models.User{ID: 42, Email: "araya@example.org"}

	t.Run("session token round trip", func(t *testing.T) {
		token, err := m.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != 42 || claims.Email != "araya@example.org" {
			t.Errorf("unexpected claims: %+v", claims)
		}
		if claims.Subject != "araya@example.org" {
			t.Errorf("Subject = %q", claims.Subject)
		}
		if claims.ID == "" {
			t.Error("expected a token id")
		}
	})

	t.Run("email token expires after seven days", func(t *testing.T) {
		token, err := m.GenerateForEmail("otp@example.org")
		if err != nil {
			t.Fatalf("GenerateForEmail failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.Subject != "otp@example.org" || claims.UserID != 0 {
			t.Errorf("unexpected claims: %+v", claims)
		}
		lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
		if lifetime != 7*24*time.Hour {
			t.Errorf("lifetime = %v, want 168h", lifetime)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, _ := m.GenerateForEmail("old@example.org")
		later := NewJWTManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
		if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		token, _ := m.Generate(user)
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := m.Validate("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
