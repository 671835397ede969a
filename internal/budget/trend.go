package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/period"
)

// TrendSummary compares the month containing "now" with the month before it.
type TrendSummary struct {
	Period        period.Period
	CurrentTotal  decimal.Decimal
	PreviousTotal decimal.Decimal
	ChangePercent decimal.Decimal

	// TopCategory is nil when nothing was spent this month.
	TopCategory       *string
	TopCategoryAmount decimal.Decimal

	MonthlyBudget   decimal.Decimal
	BudgetPercent   decimal.Decimal
	BudgetWarning   bool
	RemainingBudget decimal.Decimal
}

// Reporter builds TrendSummary values. It never writes to the store.
type Reporter struct {
	users      UserGetter
	aggregator *Aggregator
}

// NewReporter creates a Reporter.
func NewReporter(users UserGetter, aggregator *Aggregator) *Reporter {
	return &Reporter{users: users, aggregator: aggregator}
}

// Report summarizes the user's spending for the month containing now.
func (r *Reporter) Report(ctx context.Context, userID string, now time.Time) (TrendSummary, error) {
	current := period.Containing(now, r.aggregator.Location())
	previous := current.Previous()

	summary := TrendSummary{
		Period:            current,
		TopCategoryAmount: decimal.Zero,
		MonthlyBudget:     decimal.Zero,
		BudgetPercent:     decimal.Zero,
		RemainingBudget:   decimal.Zero,
	}

	var err error
	if summary.CurrentTotal, err = r.aggregator.TotalForPeriod(ctx, userID, current); err != nil {
		return TrendSummary{}, err
	}
	if summary.PreviousTotal, err = r.aggregator.TotalForPeriod(ctx, userID, previous); err != nil {
		return TrendSummary{}, err
	}
	summary.ChangePercent = calculator.ChangePercent(summary.CurrentTotal, summary.PreviousTotal)

	categories, err := r.aggregator.ByCategoryForPeriod(ctx, userID, current)
	if err != nil {
		return TrendSummary{}, err
	}
	if name, amount, ok := calculator.TopCategory(categories); ok {
		summary.TopCategory = &name
		summary.TopCategoryAmount = amount
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		return TrendSummary{}, apperr.Storage("get user", err)
	}
	if user.HasBudget() {
		summary.MonthlyBudget = user.MonthlyBudget
		summary.BudgetPercent = calculator.Percent(summary.CurrentTotal, user.MonthlyBudget).Round(2)
		summary.BudgetWarning = calculator.ReachesThreshold(summary.CurrentTotal, user.MonthlyBudget, calculator.WarningThreshold)
		summary.RemainingBudget = user.MonthlyBudget.Sub(summary.CurrentTotal)
	}

	return summary, nil
}
