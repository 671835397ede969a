package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

var hundred = decimal.NewFromInt(100)

// WarningThreshold is the budget percentage at which a warning is due.
var WarningThreshold = decimal.NewFromInt(80)

// CategoryAmount is a category label with its summed amount.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Total sums expense amounts exactly. An empty slice sums to zero.
func Total(expenses []*models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ByCategory groups expense amounts by category label.
// Categories whose sum is zero are left out of the result.
func ByCategory(expenses []*models.Expense) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
	}
	for category, amount := range sums {
		if amount.IsZero() {
			delete(sums, category)
		}
	}
	return sums
}

// SortedCategories orders category sums by amount descending.
// Equal amounts are ordered by category label ascending.
func SortedCategories(sums map[string]decimal.Decimal) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(sums))
	for category, amount := range sums {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// TopCategory returns the category with the largest sum.
// Ties go to the lexicographically smallest label. ok is false for an empty map.
func TopCategory(sums map[string]decimal.Decimal) (category string, amount decimal.Decimal, ok bool) {
	sorted := SortedCategories(sums)
	if len(sorted) == 0 {
		return "", decimal.Zero, false
	}
	return sorted[0].Category, sorted[0].Amount, true
}

// Percent returns part / whole * 100, unrounded. A non-positive whole yields zero.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// ReachesThreshold reports whether total is at least thresholdPercent of budget.
// The comparison is done by cross-multiplying so no division rounding can
// move a value across the boundary.
func ReachesThreshold(total, budget, thresholdPercent decimal.Decimal) bool {
	if !budget.IsPositive() {
		return false
	}
	return total.Mul(hundred).GreaterThanOrEqual(budget.Mul(thresholdPercent))
}

// ChangePercent returns the month-over-month change rounded to 2 places.
//
//	previous > 0:               (current - previous) / previous * 100
//	previous == 0, current > 0: 100
//	both zero:                  0
func ChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsPositive() {
		return current.Sub(previous).Mul(hundred).Div(previous).Round(2)
	}
	if current.IsPositive() {
		return hundred
	}
	return decimal.Zero
}
