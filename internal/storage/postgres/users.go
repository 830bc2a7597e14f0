package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

const userColumns = "id, name, email, password, region_code, created_at"

// CreateUserWithHousehold inserts the user and their household in one transaction.
func (s *PostgresStore) CreateUserWithHousehold(ctx context.Context, user *models.User, household *models.Household) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, password, region_code, created_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		user.Name, user.Email, user.PasswordHash, nullString(user.RegionCode), user.CreatedAt,
	).Scan(&user.ID)
	if pgCode(err) == codeUniqueViolation {
		return storage.ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	household.UserID = user.ID
	err = tx.QueryRow(ctx,
		`INSERT INTO households (user_id, household_size, monthly_income)
		 VALUES ($1, $2, $3) RETURNING id`,
		household.UserID, household.HouseholdSize, household.MonthlyIncome,
	).Scan(&household.ID)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(s.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// CountUsers returns the number of rows in users.
func (s *PostgresStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user      models.User
		region    *string
		createdAt *time.Time
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &region, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if region != nil {
		user.RegionCode = *region
	}
	if createdAt != nil {
		user.CreatedAt = createdAt.UTC()
	}
	return &user, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
