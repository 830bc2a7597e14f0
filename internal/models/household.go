package models

// DefaultHouseholdSize is used when a registration does not state a size.
const DefaultHouseholdSize = 1

// Household is the budgeting unit owned by a user.
type Household struct {
	ID            int64 `json:"id"`
	UserID        int64 `json:"user_id"`
	HouseholdSize int   `json:"household_size"`
	MonthlyIncome int64 `json:"monthly_income"`
}

// HouseholdProfile is a household together with its owner's display name.
type HouseholdProfile struct {
	Household
	OwnerName string `json:"name"`
}
