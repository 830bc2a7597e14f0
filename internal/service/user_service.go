package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/auth"
	"github.com/sdg1/budgetcoach/internal/middleware"
	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// UserService handles registration, login and the current user.
type UserService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *UserService {
	return &UserService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

type registerRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
	MonthlyIncome *int64 `json:"monthlyIncome" validate:"omitempty,min=0,max=2147483647"`
	HouseholdSize *int   `json:"householdSize" validate:"omitempty,min=1,max=2147483647"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the account view returned by register, login and /me.
// HouseholdID is null when the user has no household.
type userResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	HouseholdID   *int64 `json:"householdId"`
	MonthlyIncome int64  `json:"monthlyIncome"`
	HouseholdSize int    `json:"householdSize"`
	Token         string `json:"token,omitempty"`
}

func newUserResponse(user *models.User, household *models.Household) userResponse {
	resp := userResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		HouseholdSize: models.DefaultHouseholdSize,
	}
	if household != nil {
		id := household.ID
		resp.HouseholdID = &id
		resp.MonthlyIncome = household.MonthlyIncome
		resp.HouseholdSize = household.HouseholdSize
	}
	return resp
}

// Register creates a user together with their household.
func (s *UserService) Register(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	reg := auth.Registration{
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		HouseholdSize: models.DefaultHouseholdSize,
	}
	if req.MonthlyIncome != nil {
		reg.MonthlyIncome = *req.MonthlyIncome
	}
	if req.HouseholdSize != nil {
		reg.HouseholdSize = *req.HouseholdSize
	}

	user, household, err := s.authenticator.Register(c.Request().Context(), reg)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			s.logger.Warn("Registration rejected", "email", req.Email, "error", err)
			return NewAPIError(http.StatusConflict, "User already exists")
		case errors.Is(err, auth.ErrPasswordTooLong):
			return &APIError{
				Code:    http.StatusBadRequest,
				Message: "Invalid payload",
				Details: []FieldIssue{{Field: "password", Rule: "max", Message: err.Error()}},
				Err:     err,
			}
		}
		return internalError(err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "household_id", household.ID)
	return c.JSON(http.StatusCreated, newUserResponse(user, household))
}

// Login checks the password and returns the account with a session token.
func (s *UserService) Login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()

	user, err := s.authenticator.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.logger.Warn("Login failed", "email", req.Email)
			return NewAPIError(http.StatusUnauthorized, "Invalid credentials")
		}
		return internalError(err)
	}

	household, err := s.householdOf(ctx, user.ID)
	if err != nil {
		return internalError(err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return internalError(err)
	}

	resp := newUserResponse(user, household)
	resp.Token = token
	s.logger.Info("User logged in", "user_id", user.ID)
	return c.JSON(http.StatusOK, resp)
}

// Me returns the account of the session token's user.
func (s *UserService) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.GetUserID(ctx)
	if userID == 0 {
		// OTP tokens carry an email only
		email := middleware.GetEmail(ctx)
		if email == "" {
			return NewAPIError(http.StatusUnauthorized, "Authorization token required")
		}
		user, err := s.store.GetUserByEmail(ctx, email)
		if errors.Is(err, storage.ErrNotFound) {
			return NewAPIError(http.StatusNotFound, "User not found")
		}
		if err != nil {
			return internalError(err)
		}
		userID = user.ID
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return NewAPIError(http.StatusNotFound, "User not found")
	}
	if err != nil {
		return internalError(err)
	}

	household, err := s.householdOf(ctx, user.ID)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, newUserResponse(user, household))
}

// householdOf returns nil without error when the user has no household.
func (s *UserService) householdOf(ctx context.Context, userID int64) (*models.Household, error) {
	household, err := s.store.GetHouseholdByUserID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	return household, err
}
