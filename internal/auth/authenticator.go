package auth

import (
	"context"

	"github.com/sdg1/budgetcoach/internal/models"
)

// Registration carries what a new account needs besides its password.
type Registration struct {
	Name          string
	Email         string
	Password      string
	MonthlyIncome int64
	HouseholdSize int
}

// Authenticator defines the interface for authentication implementations.
// Passwords are the only credential today; one-time codes are handled by OTPService.
type Authenticator interface {
	// Register creates the user and their first household in one step.
	// Returns ErrEmailExists when the email is taken.
	Register(ctx context.Context, reg Registration) (*models.User, *models.Household, error)

	// Authenticate verifies the credential and returns the user.
	// Unknown email and wrong password both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
