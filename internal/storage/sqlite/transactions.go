package sqlite

import (
	"context"
	"fmt"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// CreateTransaction persists a new transaction.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (household_id, type, category, amount) VALUES (?, ?, ?, ?)",
		t.HouseholdID, string(t.Type), t.Category, t.Amount,
	)
	if isConstraint(err, "FOREIGN KEY") {
		return storage.ErrHouseholdNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read transaction id: %w", err)
	}
	return nil
}

// ListTransactionsByHousehold retrieves all transactions of a household.
func (s *SQLiteStore) ListTransactionsByHousehold(ctx context.Context, householdID int64) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, household_id, type, category, amount FROM transactions WHERE household_id = ? ORDER BY id",
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var (
			t   models.Transaction
			typ string
		)
		if err := rows.Scan(&t.ID, &t.HouseholdID, &typ, &t.Category, &t.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = models.TransactionType(typ)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}
