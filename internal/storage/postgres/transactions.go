package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// CreateTransaction persists a new transaction.
func (s *PostgresStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO transactions (household_id, type, category, amount)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		t.HouseholdID, string(t.Type), t.Category, t.Amount,
	).Scan(&t.ID)
	if pgCode(err) == codeForeignKeyViolation {
		return storage.ErrHouseholdNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactionsByHousehold retrieves all transactions of a household.
func (s *PostgresStore) ListTransactionsByHousehold(ctx context.Context, householdID int64) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, household_id, type, category, amount FROM transactions WHERE household_id = $1 ORDER BY id",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		var (
			t   models.Transaction
			typ string
		)
		err := row.Scan(&t.ID, &t.HouseholdID, &typ, &t.Category, &t.Amount)
		t.Type = models.TransactionType(typ)
		return t, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}
