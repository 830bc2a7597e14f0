package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

func TestPgCode(t *testing.T) {
	wrapped := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: codeUniqueViolation})

	if got := pgCode(wrapped); got != codeUniqueViolation {
		t.Errorf("pgCode(wrapped) = %q, want %q", got, codeUniqueViolation)
	}
	if got := pgCode(errors.New("boom")); got != "" {
		t.Errorf("pgCode(plain) = %q, want empty", got)
	}
	if got := pgCode(nil); got != "" {
		t.Errorf("pgCode(nil) = %q, want empty", got)
	}
}

// TestPostgresStore runs against a real database when TEST_DATABASE_URL is set.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer store.Close()

	email := fmt.Sprintf("pg-test-%d@example.org", time.Now().UnixNano())
	user := models.NewUser("PG Test", email, "hash")
	household := &models.Household{HouseholdSize: 3, MonthlyIncome: 2500}
	if err := store.CreateUserWithHousehold(ctx, user, household); err != nil {
		t.Fatalf("CreateUserWithHousehold failed: %v", err)
	}

	dup := models.NewUser("PG Dup", email, "hash")
	if err := store.CreateUserWithHousehold(ctx, dup, &models.Household{HouseholdSize: 1}); !errors.Is(err, storage.ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}

	profile, err := store.GetHouseholdProfile(ctx, household.ID)
	if err != nil {
		t.Fatalf("GetHouseholdProfile failed: %v", err)
	}
	if profile.OwnerName != "PG Test" {
		t.Errorf("OwnerName = %q", profile.OwnerName)
	}

	tx := &models.Transaction{HouseholdID: household.ID, Type: models.TransactionVariable, Category: "phone", Amount: 150}
	if err := store.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("CreateTransaction failed: %v", err)
	}
	list, err := store.ListTransactionsByHousehold(ctx, household.ID)
	if err != nil {
		t.Fatalf("ListTransactionsByHousehold failed: %v", err)
	}
	if len(list) != 1 || list[0] != *tx {
		t.Errorf("unexpected transactions: %+v", list)
	}

	bad := &models.Transaction{HouseholdID: -1, Type: models.TransactionVariable, Category: "x", Amount: 1}
	if err := store.CreateTransaction(ctx, bad); !errors.Is(err, storage.ErrHouseholdNotFound) {
		t.Errorf("expected ErrHouseholdNotFound, got %v", err)
	}
}
