package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// CreateHousehold persists a new household.
func (s *PostgresStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO households (user_id, household_size, monthly_income)
		 VALUES ($1, $2, $3) RETURNING id`,
		household.UserID, household.HouseholdSize, household.MonthlyIncome,
	).Scan(&household.ID)
	if pgCode(err) == codeForeignKeyViolation {
		return storage.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}
	return nil
}

// GetHousehold retrieves a household by ID.
func (s *PostgresStore) GetHousehold(ctx context.Context, id int64) (*models.Household, error) {
	h := &models.Household{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, user_id, household_size, monthly_income FROM households WHERE id = $1",
		id,
	).Scan(&h.ID, &h.UserID, &h.HouseholdSize, &h.MonthlyIncome)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household: %w", err)
	}
	return h, nil
}

// GetHouseholdByUserID retrieves the first household of a user.
func (s *PostgresStore) GetHouseholdByUserID(ctx context.Context, userID int64) (*models.Household, error) {
	h := &models.Household{}
	err := s.pool.QueryRow(ctx,
		"SELECT id, user_id, household_size, monthly_income FROM households WHERE user_id = $1 ORDER BY id LIMIT 1",
		userID,
	).Scan(&h.ID, &h.UserID, &h.HouseholdSize, &h.MonthlyIncome)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household by user: %w", err)
	}
	return h, nil
}

// GetHouseholdProfile retrieves a household joined with its owner's name.
func (s *PostgresStore) GetHouseholdProfile(ctx context.Context, id int64) (*models.HouseholdProfile, error) {
	p := &models.HouseholdProfile{}
	err := s.pool.QueryRow(ctx,
		`SELECT h.id, h.user_id, h.monthly_income, h.household_size, u.name
		 FROM households h JOIN users u ON u.id = h.user_id WHERE h.id = $1`,
		id,
	).Scan(&p.ID, &p.UserID, &p.MonthlyIncome, &p.HouseholdSize, &p.OwnerName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get household profile: %w", err)
	}
	return p, nil
}
