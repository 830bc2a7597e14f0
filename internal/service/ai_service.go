package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// Advisor produces plain-text budgeting advice for a household.
type Advisor interface {
	Advice(ctx context.Context, profile models.HouseholdProfile, txs []models.Transaction) string
	Chat(ctx context.Context, profile models.HouseholdProfile, txs []models.Transaction, question string) string
}

// AIService implements the advice routes.
type AIService struct {
	store   storage.Store
	advisor Advisor
}

// NewAIService creates a new AI service.
func NewAIService(store storage.Store, advisor Advisor) *AIService {
	return &AIService{store: store, advisor: advisor}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Budget returns budgeting advice for the household.
func (s *AIService) Budget(c echo.Context) error {
	profile, txs, err := s.loadHousehold(c)
	if err != nil {
		return err
	}
	advice := s.advisor.Advice(c.Request().Context(), *profile, txs)
	return c.JSON(http.StatusOK, adviceResponse{Advice: advice})
}

// Chat answers a question about the household's budget.
func (s *AIService) Chat(c echo.Context) error {
	var req chatRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Message) == "" {
		return NewAPIError(http.StatusBadRequest, "Invalid payload")
	}

	profile, txs, err := s.loadHousehold(c)
	if err != nil {
		return err
	}
	answer := s.advisor.Chat(c.Request().Context(), *profile, txs, req.Message)
	return c.JSON(http.StatusOK, chatResponse{Response: answer})
}

func (s *AIService) loadHousehold(c echo.Context) (*models.HouseholdProfile, []models.Transaction, error) {
	id, err := pathID(c, "householdId", "Invalid householdId")
	if err != nil {
		return nil, nil, err
	}
	ctx := c.Request().Context()

	profile, err := s.store.GetHouseholdProfile(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, NewAPIError(http.StatusNotFound, "Household not found")
	}
	if err != nil {
		return nil, nil, internalError(err)
	}

	txs, err := s.store.ListTransactionsByHousehold(ctx, id)
	if err != nil {
		return nil, nil, internalError(err)
	}
	return profile, txs, nil
}
