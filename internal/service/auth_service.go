package service

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sdg1/budgetcoach/internal/auth"
)

// AuthService implements passwordless login with one-time codes.
type AuthService struct {
	otp    *auth.OTPService
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(otp *auth.OTPService, logger *slog.Logger) *AuthService {
	return &AuthService{otp: otp, logger: logger}
}

type requestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RequestOTP issues a code to the email. The code is never returned.
func (s *AuthService) RequestOTP(c echo.Context) error {
	var req requestOTPRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := s.otp.Request(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, auth.ErrRateLimited) {
			s.logger.Warn("OTP rate limit hit", "email", req.Email)
			return NewAPIError(http.StatusTooManyRequests, "Too many OTP requests")
		}
		return internalError(err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "OTP sent"})
}

// VerifyOTP exchanges a valid code for a token.
func (s *AuthService) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := s.otp.Verify(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCode):
			return NewAPIError(http.StatusUnauthorized, "Invalid code")
		case errors.Is(err, auth.ErrTooManyAttempts):
			return NewAPIError(http.StatusTooManyRequests, "Too many verification attempts")
		}
		return internalError(err)
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
