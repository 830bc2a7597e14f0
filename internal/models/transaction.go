package models

// TransactionType classifies an expense line.
type TransactionType string

const (
	// TransactionRecurring is a fixed monthly cost such as rent.
	TransactionRecurring TransactionType = "recurring"
	// TransactionVariable is a cost that changes month to month.
	TransactionVariable TransactionType = "variable"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionRecurring || t == TransactionVariable
}

// Transaction is a single recorded expense line of a household.
type Transaction struct {
	ID          int64           `json:"id"`
	HouseholdID int64           `json:"household_id"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      int64           `json:"amount"`
}
