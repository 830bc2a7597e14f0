// Package seed inserts sample and generated data for development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/sdg1/budgetcoach/internal/auth"
	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// SampleEmail is the login of the sample user.
const SampleEmail = "araya@example.org"

// FakePassword is the password of every generated user.
const FakePassword = "budgetcoach"

var sampleTransactions = []models.Transaction{
	{Type: models.TransactionRecurring, Category: "rent", Amount: 1000},
	{Type: models.TransactionRecurring, Category: "food", Amount: 1200},
	{Type: models.TransactionVariable, Category: "transport", Amount: 200},
	{Type: models.TransactionVariable, Category: "phone", Amount: 150},
	{Type: models.TransactionVariable, Category: "school", Amount: 150},
}

var fakeCategories = map[models.TransactionType][]string{
	models.TransactionRecurring: {"rent", "food", "school", "electricity", "water"},
	models.TransactionVariable:  {"transport", "phone", "clothes", "health", "celebrations"},
}

// Sample inserts the sample household when the database has no users.
// It returns the new household, or nil when users already existed.
func Sample(ctx context.Context, store storage.Store, logger *slog.Logger) (*models.Household, error) {
	n, err := store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if n > 0 {
		logger.Debug("Users exist, skipping sample data", "users", n)
		return nil, nil
	}

	// nobody knows this password; the sample user logs in via OTP
	hash, err := auth.HashPassword(gofakeit.Password(true, true, true, false, false, 24))
	if err != nil {
		return nil, err
	}

	user := models.NewUser("Araya", SampleEmail, hash)
	user.RegionCode = "ET-MK"
	household := &models.Household{HouseholdSize: 4, MonthlyIncome: 3000}
	if err := store.CreateUserWithHousehold(ctx, user, household); err != nil {
		return nil, fmt.Errorf("failed to insert sample user: %w", err)
	}

	for _, tmpl := range sampleTransactions {
		tx := tmpl
		tx.HouseholdID = household.ID
		if err := store.CreateTransaction(ctx, &tx); err != nil {
			return nil, fmt.Errorf("failed to insert sample transaction: %w", err)
		}
	}

	logger.Info("Sample data inserted", "user_id", user.ID, "household_id", household.ID)
	return household, nil
}

// Fake inserts n generated users, each with a household and a few
// transactions, and returns how many were created. Generated emails that
// collide with existing users are skipped.
func Fake(ctx context.Context, store storage.Store, faker *gofakeit.Faker, n int, logger *slog.Logger) (int, error) {
	hash, err := auth.HashPassword(FakePassword)
	if err != nil {
		return 0, err
	}

	created := 0
	for i := 0; i < n; i++ {
		user := models.NewUser(faker.Name(), faker.Email(), hash)
		household := &models.Household{
			HouseholdSize: faker.Number(1, 8),
			MonthlyIncome: int64(faker.Number(500, 20000)),
		}
		if err := store.CreateUserWithHousehold(ctx, user, household); err != nil {
			if errors.Is(err, storage.ErrEmailExists) {
				logger.Debug("Skipping duplicate fake email", "email", user.Email)
				continue
			}
			return created, fmt.Errorf("failed to insert fake user: %w", err)
		}

		for j, count := 0, faker.Number(2, 6); j < count; j++ {
			typ := models.TransactionVariable
			if faker.Bool() {
				typ = models.TransactionRecurring
			}
			tx := &models.Transaction{
				HouseholdID: household.ID,
				Type:        typ,
				Category:    faker.RandomString(fakeCategories[typ]),
				Amount:      household.MonthlyIncome * int64(faker.Number(2, 25)) / 100,
			}
			if err := store.CreateTransaction(ctx, tx); err != nil {
				return created, fmt.Errorf("failed to insert fake transaction: %w", err)
			}
		}
		created++
	}

	logger.Info("Fake data inserted", "users", created, "password", FakePassword)
	return created, nil
}
