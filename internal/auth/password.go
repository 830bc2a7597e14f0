package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sdg1/budgetcoach/internal/models"
	"github.com/sdg1/budgetcoach/internal/storage"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// bcryptCost matches the cost existing hashes were created with.
const bcryptCost = 10

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong    = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	ErrEmailExists        = errors.New("user already exists")
)

// UserStorage is the subset of storage.Store the password authenticator needs.
type UserStorage interface {
	CreateUserWithHousehold(ctx context.Context, user *models.User, household *models.Household) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: storage}
}

// ValidateCredential checks the password length. The upper bound is in
// bytes, so multibyte passwords hit it with fewer characters.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(credential) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Register hashes the password and stores the user with a household.
// Email uniqueness is enforced by the store.
func (a *PasswordAuthenticator) Register(ctx context.Context, reg Registration) (*models.User, *models.Household, error) {
	if err := a.ValidateCredential(reg.Password); err != nil {
		return nil, nil, err
	}

	hash, err := HashPassword(reg.Password)
	if err != nil {
		return nil, nil, err
	}

	size := reg.HouseholdSize
	if size == 0 {
		size = models.DefaultHouseholdSize
	}

	user := models.NewUser(reg.Name, reg.Email, hash)
	household := &models.Household{
		HouseholdSize: size,
		MonthlyIncome: reg.MonthlyIncome,
	}

	if err := a.storage.CreateUserWithHousehold(ctx, user, household); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return nil, nil, ErrEmailExists
		}
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, household, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
