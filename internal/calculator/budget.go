// Package calculator holds the budget arithmetic shared by the summary
// endpoint and the advice fallback.
package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/sdg1/budgetcoach/internal/models"
)

// savingsShare is the part of the remaining income suggested as savings.
var savingsShare = decimal.RequireFromString("0.1")

var (
	hundred  = decimal.NewFromInt(100)
	maxInt64 = decimal.NewFromInt(math.MaxInt64)
)

// toInt64 truncates d to an integer, saturating at math.MaxInt64.
func toInt64(d decimal.Decimal) int64 {
	if d.GreaterThan(maxInt64) {
		return math.MaxInt64
	}
	return d.IntPart()
}

// CategoryTotal is the spend on one category.
type CategoryTotal struct {
	Category string                 `json:"category"`
	Type     models.TransactionType `json:"type"`
	Amount   int64                  `json:"amount"`
	// Share is the percentage of total expenses, one decimal place.
	Share float64 `json:"share"`
}

// Summary is the monthly budget picture of a household.
type Summary struct {
	HouseholdID   int64           `json:"household_id"`
	MonthlyIncome int64           `json:"monthly_income"`
	TotalExpenses int64           `json:"total_expenses"`
	Remaining     int64           `json:"remaining"`
	SavingsRate   float64         `json:"savings_rate"`
	SavingsTarget int64           `json:"savings_target"`
	Categories    []CategoryTotal `json:"categories"`
}

// TotalExpenses sums the transaction amounts. A sum beyond int64 saturates.
func TotalExpenses(txs []models.Transaction) int64 {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(decimal.NewFromInt(tx.Amount))
	}
	return toInt64(total)
}

// Remaining is income minus expenses, floored at zero.
func Remaining(income, expenses int64) int64 {
	left := decimal.NewFromInt(income).Sub(decimal.NewFromInt(expenses))
	if left.IsNegative() {
		return 0
	}
	return toInt64(left)
}

// SavingsTarget suggests saving a tenth of what remains, rounded down.
func SavingsTarget(remaining int64) int64 {
	if remaining <= 0 {
		return 0
	}
	return decimal.NewFromInt(remaining).Mul(savingsShare).Floor().IntPart()
}

// Percent returns part/whole*100 rounded to one decimal, or 0 when whole is not positive.
func Percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	p := decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).Round(1)
	f, _ := p.Float64()
	return f
}

// Summarize aggregates a household's transactions into a Summary.
// Categories keep the order in which they first appear; a category
// takes the type of its first transaction.
func Summarize(household models.Household, txs []models.Transaction) Summary {
	total := TotalExpenses(txs)
	remaining := Remaining(household.MonthlyIncome, total)

	index := make(map[string]int)
	categories := make([]CategoryTotal, 0)
	sums := make([]decimal.Decimal, 0)
	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(categories)
			index[tx.Category] = i
			categories = append(categories, CategoryTotal{Category: tx.Category, Type: tx.Type})
			sums = append(sums, decimal.Zero)
		}
		sums[i] = sums[i].Add(decimal.NewFromInt(tx.Amount))
	}
	for i := range categories {
		categories[i].Amount = toInt64(sums[i])
		categories[i].Share = Percent(categories[i].Amount, total)
	}

	return Summary{
		HouseholdID:   household.ID,
		MonthlyIncome: household.MonthlyIncome,
		TotalExpenses: total,
		Remaining:     remaining,
		SavingsRate:   Percent(remaining, household.MonthlyIncome),
		SavingsTarget: SavingsTarget(remaining),
		Categories:    categories,
	}
}
