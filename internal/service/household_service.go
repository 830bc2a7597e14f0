package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/calculator"
	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// HouseholdService implements the household routes.
type HouseholdService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewHouseholdService creates a new household service.
func NewHouseholdService(store storage.Store, logger *slog.Logger) *HouseholdService {
	return &HouseholdService{store: store, logger: logger}
}

type createHouseholdRequest struct {
	UserID        *int64 `json:"user_id" validate:"required,max=2147483647"`
	HouseholdSize *int   `json:"household_size" validate:"required,min=1,max=2147483647"`
	MonthlyIncome *int64 `json:"monthly_income" validate:"required,min=0,max=2147483647"`
}

// Create adds a household to an existing user.
func (s *HouseholdService) Create(c echo.Context) error {
	var req createHouseholdRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	household := &models.Household{
		UserID:        *req.UserID,
		HouseholdSize: *req.HouseholdSize,
		MonthlyIncome: *req.MonthlyIncome,
	}
	if err := s.store.CreateHousehold(c.Request().Context(), household); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return NewAPIError(http.StatusNotFound, "User not found")
		}
		return internalError(err)
	}

	s.logger.Info("Household created", "household_id", household.ID, "user_id", household.UserID)
	return c.JSON(http.StatusCreated, household)
}

// GetByUser returns the user's first household.
func (s *HouseholdService) GetByUser(c echo.Context) error {
	userID, err := pathID(c, "userId", "Invalid user ID")
	if err != nil {
		return err
	}

	household, err := s.store.GetHouseholdByUserID(c.Request().Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		return NewAPIError(http.StatusNotFound, "Household not found")
	}
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, household)
}

// Summary returns the household's budget summary.
func (s *HouseholdService) Summary(c echo.Context) error {
	id, err := pathID(c, "householdId", "Invalid householdId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	household, err := s.store.GetHousehold(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return NewAPIError(http.StatusNotFound, "Household not found")
	}
	if err != nil {
		return internalError(err)
	}

	txs, err := s.store.ListTransactionsByHousehold(ctx, id)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, calculator.Summarize(*household, txs))
}
