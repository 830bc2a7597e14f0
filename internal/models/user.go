package models

import "time"

// User represents a registered user account.
type User struct {
	// ID is the database-assigned identifier.
	ID int64

	// Name is the display name of the user.
	Name string

	// Email is the user's email address (unique). Used for login and OTP delivery.
	Email string

	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string

	// RegionCode is an optional ISO 3166-2 code (e.g., "ET-MK").
	RegionCode string

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}

// NewUser creates a user ready to be persisted.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}
