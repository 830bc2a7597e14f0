package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

const userColumns = "id, name, email, password, region_code, created_at"

// CreateUserWithHousehold inserts the user and their household in one transaction.
func (s *SQLiteStore) CreateUserWithHousehold(ctx context.Context, user *models.User, household *models.Household) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (name, email, password, region_code, created_at) VALUES (?, ?, ?, ?, ?)",
		user.Name, user.Email, user.PasswordHash, nullString(user.RegionCode), user.CreatedAt.Unix(),
	)
	if isConstraint(err, "UNIQUE") {
		return storage.ErrEmailExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if user.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read user id: %w", err)
	}

	household.UserID = user.ID
	res, err = tx.ExecContext(ctx,
		"INSERT INTO households (user_id, household_size, monthly_income) VALUES (?, ?, ?)",
		household.UserID, household.HouseholdSize, household.MonthlyIncome,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}
	if household.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read household id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// CountUsers returns the number of rows in users.
func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		user      models.User
		region    sql.NullString
		createdAt int64
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &region, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.RegionCode = region.String
	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &user, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
