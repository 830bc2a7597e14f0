package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sdg1/budgetcoach/internal/storage/sqlite"
)

func newTestAuthenticator(t *testing.T) (*PasswordAuthenticator, *sqlite.SQLiteStore) {
	t.Helper()
	store, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store), store
}

func TestPasswordAuthenticator(t *testing.T) {
	a, store := newTestAuthenticator(t)
	ctx := context.Background()

	user, household, err := a.Register(ctx, Registration{
		Name:     "Selam",
		Email:    "selam@example.org",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("defaults household size and income", func(t *testing.T) {
		if household.HouseholdSize != 1 || household.MonthlyIncome != 0 {
			t.Errorf("unexpected household: %+v", household)
		}
		if household.UserID != user.ID {
			t.Errorf("household.UserID = %d, want %d", household.UserID, user.ID)
		}
	})

	t.Run("stores a bcrypt hash with cost 10", func(t *testing.T) {
		stored, err := store.GetUserByEmail(ctx, "selam@example.org")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if stored.PasswordHash == "secret1" {
			t.Fatal("password stored in plain text")
		}
		cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
		if err != nil || cost != 10 {
			t.Errorf("cost = %d (%v), want 10", cost, err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := a.Register(ctx, Registration{Name: "Other", Email: "selam@example.org", Password: "secret2"})
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})

	t.Run("password over bcrypt limit", func(t *testing.T) {
		long := strings.Repeat("é", 40)
		_, _, err := a.Register(ctx, Registration{Name: "Long", Email: "long@example.org", Password: long})
		if !errors.Is(err, ErrPasswordTooLong) {
			t.Errorf("expected ErrPasswordTooLong for %d bytes, got %v", len(long), err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		_, _, err := a.Register(ctx, Registration{Name: "Short", Email: "short@example.org", Password: "12345"})
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"correct password", "selam@example.org", "secret1", nil},
		{"wrong password", "selam@example.org", "secret2", ErrInvalidCredentials},
		{"unknown email", "nobody@example.org", "secret1", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got.ID != user.ID {
				t.Errorf("Authenticate returned user %d, want %d", got.ID, user.ID)
			}
		})
	}
}
