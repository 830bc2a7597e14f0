package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	var araya *models.User
	var arayaHousehold *models.Household

	t.Run("CreateUserWithHousehold assigns IDs", func(t *testing.T) {
		araya = models.NewUser("Araya", "araya@example.org", "hash")
		araya.RegionCode = "ET-MK"
		arayaHousehold = &models.Household{HouseholdSize: 4, MonthlyIncome: 3000}

		if err := store.CreateUserWithHousehold(ctx, araya, arayaHousehold); err != nil {
			t.Fatalf("CreateUserWithHousehold failed: %v", err)
		}
		if araya.ID == 0 {
			t.Error("Expected user ID to be assigned")
		}
		if arayaHousehold.ID == 0 {
			t.Error("Expected household ID to be assigned")
		}
		if arayaHousehold.UserID != araya.ID {
			t.Errorf("household.UserID = %d, want %d", arayaHousehold.UserID, araya.ID)
		}
	})

	t.Run("duplicate email is rejected and nothing is written", func(t *testing.T) {
		before, err := store.CountUsers(ctx)
		if err != nil {
			t.Fatalf("CountUsers failed: %v", err)
		}

		dup := models.NewUser("Other", "araya@example.org", "hash")
		err = store.CreateUserWithHousehold(ctx, dup, &models.Household{HouseholdSize: 1})
		if !errors.Is(err, storage.ErrEmailExists) {
			t.Fatalf("expected ErrEmailExists, got %v", err)
		}

		after, _ := store.CountUsers(ctx)
		if after != before {
			t.Errorf("user count changed from %d to %d", before, after)
		}
	})

	t.Run("GetUserByEmail and GetUserByID round trip", func(t *testing.T) {
		byEmail, err := store.GetUserByEmail(ctx, "araya@example.org")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != araya.ID || byEmail.RegionCode != "ET-MK" || byEmail.PasswordHash != "hash" {
			t.Errorf("unexpected user: %+v", byEmail)
		}
		if byEmail.CreatedAt.Unix() != araya.CreatedAt.Unix() {
			t.Errorf("CreatedAt = %v, want %v", byEmail.CreatedAt, araya.CreatedAt)
		}

		byID, err := store.GetUserByID(ctx, araya.ID)
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if byID.Email != "araya@example.org" {
			t.Errorf("Email = %q", byID.Email)
		}
	})

	t.Run("missing user returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetUserByEmail(ctx, "nobody@example.org"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := store.GetUserByID(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("CreateHousehold for unknown user", func(t *testing.T) {
		err := store.CreateHousehold(ctx, &models.Household{UserID: 9999, HouseholdSize: 2, MonthlyIncome: 10})
		if !errors.Is(err, storage.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("GetHouseholdByUserID returns the first household", func(t *testing.T) {
		second := &models.Household{UserID: araya.ID, HouseholdSize: 2, MonthlyIncome: 500}
		if err := store.CreateHousehold(ctx, second); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}

		got, err := store.GetHouseholdByUserID(ctx, araya.ID)
		if err != nil {
			t.Fatalf("GetHouseholdByUserID failed: %v", err)
		}
		if got.ID != arayaHousehold.ID {
			t.Errorf("household ID = %d, want %d", got.ID, arayaHousehold.ID)
		}

		if _, err := store.GetHouseholdByUserID(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetHouseholdProfile joins owner name", func(t *testing.T) {
		p, err := store.GetHouseholdProfile(ctx, arayaHousehold.ID)
		if err != nil {
			t.Fatalf("GetHouseholdProfile failed: %v", err)
		}
		if p.OwnerName != "Araya" || p.MonthlyIncome != 3000 || p.HouseholdSize != 4 {
			t.Errorf("unexpected profile: %+v", p)
		}

		if _, err := store.GetHouseholdProfile(ctx, 9999); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("transactions are stored and listed in order", func(t *testing.T) {
		lines := []models.Transaction{
			{HouseholdID: arayaHousehold.ID, Type: models.TransactionRecurring, Category: "rent", Amount: 1000},
			{HouseholdID: arayaHousehold.ID, Type: models.TransactionRecurring, Category: "food", Amount: 1200},
			{HouseholdID: arayaHousehold.ID, Type: models.TransactionVariable, Category: "transport", Amount: 200},
		}
		for i := range lines {
			if err := store.CreateTransaction(ctx, &lines[i]); err != nil {
				t.Fatalf("CreateTransaction failed: %v", err)
			}
			if lines[i].ID == 0 {
				t.Errorf("transaction %d has no ID", i)
			}
		}

		got, err := store.ListTransactionsByHousehold(ctx, arayaHousehold.ID)
		if err != nil {
			t.Fatalf("ListTransactionsByHousehold failed: %v", err)
		}
		if len(got) != len(lines) {
			t.Fatalf("got %d transactions, want %d", len(got), len(lines))
		}
		for i := range got {
			if got[i] != lines[i] {
				t.Errorf("transaction %d = %+v, want %+v", i, got[i], lines[i])
			}
		}
	})

	t.Run("CreateTransaction for unknown household", func(t *testing.T) {
		err := store.CreateTransaction(ctx, &models.Transaction{HouseholdID: 9999, Type: models.TransactionVariable, Category: "phone", Amount: 1})
		if !errors.Is(err, storage.ErrHouseholdNotFound) {
			t.Errorf("expected ErrHouseholdNotFound, got %v", err)
		}
	})

	t.Run("empty household lists no transactions", func(t *testing.T) {
		got, err := store.ListTransactionsByHousehold(ctx, 9999)
		if err != nil {
			t.Fatalf("ListTransactionsByHousehold failed: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})
}

func TestNewReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	first, err := New(ctx, path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	u := models.NewUser("Bekele", "bekele@example.org", "hash")
	if err := first.CreateUserWithHousehold(ctx, u, &models.Household{HouseholdSize: 1}); err != nil {
		t.Fatalf("CreateUserWithHousehold failed: %v", err)
	}
	first.Close()

	second, err := New(ctx, path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	n, err := second.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountUsers = %d, want 1", n)
	}
}
