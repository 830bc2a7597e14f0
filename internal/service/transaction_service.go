package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// TransactionService implements the transaction routes.
type TransactionService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(store storage.Store, logger *slog.Logger) *TransactionService {
	return &TransactionService{store: store, logger: logger}
}

type createTransactionRequest struct {
	HouseholdID *int64 `json:"household_id" validate:"required,max=2147483647"`
	Type        string `json:"type" validate:"required,transaction_type"`
	Category    string `json:"category" validate:"required"`
	Amount      *int64 `json:"amount" validate:"required,min=0,max=2147483647"`
}

// Create records an expense line.
func (s *TransactionService) Create(c echo.Context) error {
	var req createTransactionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Category) == "" {
		return NewAPIError(http.StatusBadRequest, "Invalid payload")
	}

	tx := &models.Transaction{
		HouseholdID: *req.HouseholdID,
		Type:        models.TransactionType(req.Type),
		Category:    req.Category,
		Amount:      *req.Amount,
	}
	if err := s.store.CreateTransaction(c.Request().Context(), tx); err != nil {
		if errors.Is(err, storage.ErrHouseholdNotFound) {
			return NewAPIError(http.StatusNotFound, "Household not found")
		}
		return internalError(err)
	}

	s.logger.Debug("Transaction recorded", "transaction_id", tx.ID, "household_id", tx.HouseholdID)
	return c.JSON(http.StatusCreated, tx)
}

// ListByHousehold returns a household's transactions ordered by id.
// An unknown household yields an empty list.
func (s *TransactionService) ListByHousehold(c echo.Context) error {
	id, err := pathID(c, "householdId", "Invalid householdId")
	if err != nil {
		return err
	}

	txs, err := s.store.ListTransactionsByHousehold(c.Request().Context(), id)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, txs)
}
