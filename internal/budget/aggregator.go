// Package budget holds the monthly spending logic of the ledger: summing
// expenses per period, warning users who approach their monthly budget, and
// reporting month-over-month trends.
//
// Every operation is a synchronous sequence of Ledger Store calls. Nothing is
// cached; each call recomputes from stored expenses.
package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/internal/period"
)

// ExpenseFinder is the slice of the Ledger Store the Aggregator reads.
type ExpenseFinder interface {
	FindExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
}

// UserGetter looks users up by ID. A nil user with a nil error means absent.
type UserGetter interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// MonthTotal is one month's total spend.
type MonthTotal struct {
	Period period.Period
	Total  decimal.Decimal
}

// Aggregator sums expense amounts per period and per category.
type Aggregator struct {
	expenses ExpenseFinder
	loc      *time.Location
}

// NewAggregator creates an Aggregator that computes calendar months in loc.
// A nil loc means UTC.
func NewAggregator(expenses ExpenseFinder, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{expenses: expenses, loc: loc}
}

// Location returns the time zone calendar months are computed in.
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// TotalForPeriod sums a user's expenses that occurred inside p.
// No matching expenses yields zero.
func (a *Aggregator) TotalForPeriod(ctx context.Context, userID string, p period.Period) (decimal.Decimal, error) {
	expenses, err := a.find(ctx, userID, p.Start, p.End)
	if err != nil {
		return decimal.Zero, err
	}
	return calculator.Total(expenses), nil
}

// ByCategoryForPeriod groups a user's expenses inside p by category.
// Categories with nothing spent are absent from the map.
func (a *Aggregator) ByCategoryForPeriod(ctx context.Context, userID string, p period.Period) (map[string]decimal.Decimal, error) {
	expenses, err := a.find(ctx, userID, p.Start, p.End)
	if err != nil {
		return nil, err
	}
	return calculator.ByCategory(expenses), nil
}

// MonthlyTotals returns the totals of the n months ending with the one
// containing now, oldest first. Months without spend appear with zero.
func (a *Aggregator) MonthlyTotals(ctx context.Context, userID string, n int, now time.Time) ([]MonthTotal, error) {
	periods, err := period.LastN(n, now, a.loc)
	if err != nil {
		return nil, err
	}

	expenses, err := a.find(ctx, userID, periods[0].Start, periods[len(periods)-1].End)
	if err != nil {
		return nil, err
	}

	totals := make([]MonthTotal, len(periods))
	for i, p := range periods {
		totals[i] = MonthTotal{Period: p, Total: decimal.Zero}
	}
	for _, e := range expenses {
		for i := range totals {
			if totals[i].Period.Contains(e.OccurredAt) {
				totals[i].Total = totals[i].Total.Add(e.Amount)
				break
			}
		}
	}

	return totals, nil
}

func (a *Aggregator) find(ctx context.Context, userID string, from, to time.Time) ([]*models.Expense, error) {
	expenses, err := a.expenses.FindExpenses(ctx, models.ExpenseFilter{
		UserID: userID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return nil, apperr.Storage("find expenses", err)
	}
	return expenses, nil
}
