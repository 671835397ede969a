package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/pkg/api"
)

const dateLayout = "2006-01-02"

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		MonthlyBudget: u.MonthlyBudget.StringFixed(2),
		CreatedAt:     u.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		Amount:      e.Amount.StringFixed(2),
		Category:    e.Category,
		Description: e.Description,
		OccurredAt:  e.OccurredAt.UTC().Format(time.RFC3339),
		CardID:      e.CardID,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPINotification(n *models.Notification) *api.Notification {
	return &api.Notification{
		ID:        n.ID,
		Message:   n.Message,
		Kind:      string(n.Kind),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func toAPITrend(s budget.TrendSummary) *api.TrendSummary {
	return &api.TrendSummary{
		Month:             s.Period.Key(),
		CurrentTotal:      s.CurrentTotal.StringFixed(2),
		PreviousTotal:     s.PreviousTotal.StringFixed(2),
		ChangePercent:     s.ChangePercent.StringFixed(2),
		TopCategory:       s.TopCategory,
		TopCategoryAmount: s.TopCategoryAmount.StringFixed(2),
		MonthlyBudget:     s.MonthlyBudget.StringFixed(2),
		BudgetPercent:     s.BudgetPercent.StringFixed(2),
		BudgetWarning:     s.BudgetWarning,
		RemainingBudget:   s.RemainingBudget.StringFixed(2),
	}
}

// parseAmount reads a non-negative decimal with at most two fractional digits.
func parseAmount(field, s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperr.InvalidArgument("%s %q is not a number", field, s)
	}
	if amount.IsNegative() {
		return decimal.Zero, apperr.InvalidArgument("%s must not be negative", field)
	}
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return decimal.Zero, apperr.InvalidArgument("%s has more than two decimal places", field)
	}
	return amount, nil
}

// parseInstant accepts RFC 3339 or a bare YYYY-MM-DD date in loc.
// An empty string yields the zero time.
func parseInstant(field, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, apperr.InvalidArgument("%s %q must be RFC 3339 or YYYY-MM-DD", field, s)
}
