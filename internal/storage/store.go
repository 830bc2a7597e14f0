// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/sdg1/budgetcoach/internal/models"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists is returned when a user with the same email is already registered.
	ErrEmailExists = errors.New("email already registered")
	// ErrUserNotFound is returned when a household references a missing user.
	ErrUserNotFound = errors.New("user not found")
	// ErrHouseholdNotFound is returned when a transaction references a missing household.
	ErrHouseholdNotFound = errors.New("household not found")
)

// Store defines the persistence operations of the API.
// Postgres serves production; SQLite stands in for local development.
type Store interface {
	// Backend names the implementation ("postgres" or "sqlite").
	Backend() string

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error

	// CreateUserWithHousehold inserts a user and their first household atomically.
	// user.ID, user.CreatedAt and household.ID/UserID are populated on success.
	// Returns ErrEmailExists if the email is taken.
	CreateUserWithHousehold(ctx context.Context, user *models.User, household *models.Household) error

	// GetUserByEmail returns ErrNotFound if no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns ErrNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int, error)

	// CreateHousehold inserts a household and populates its ID.
	// Returns ErrUserNotFound if household.UserID does not exist.
	CreateHousehold(ctx context.Context, household *models.Household) error

	// GetHousehold returns ErrNotFound if the household does not exist.
	GetHousehold(ctx context.Context, id int64) (*models.Household, error)

	// GetHouseholdByUserID returns the user's household with the lowest ID,
	// or ErrNotFound if the user has none.
	GetHouseholdByUserID(ctx context.Context, userID int64) (*models.Household, error)

	// GetHouseholdProfile returns the household joined with its owner's name.
	GetHouseholdProfile(ctx context.Context, id int64) (*models.HouseholdProfile, error)

	// CreateTransaction inserts a transaction and populates its ID.
	// Returns ErrHouseholdNotFound if transaction.HouseholdID does not exist.
	CreateTransaction(ctx context.Context, transaction *models.Transaction) error

	// ListTransactionsByHousehold returns the household's transactions ordered by ID.
	ListTransactionsByHousehold(ctx context.Context, householdID int64) ([]models.Transaction, error)

	// Close releases any resources held by the store.
	Close() error
}
