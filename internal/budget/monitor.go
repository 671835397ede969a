package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/metrics"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/internal/period"
)

// NotificationStore is the part of the Ledger Store the Monitor writes to.
type NotificationStore interface {
	InsertNotification(ctx context.Context, n *models.Notification) error
	FindNotifications(ctx context.Context, userID string, kind models.NotificationKind, createdAfter time.Time) ([]*models.Notification, error)
}

// Monitor raises a budget-warning notification once per user per month when
// spending reaches the warning threshold.
type Monitor struct {
	users         UserGetter
	aggregator    *Aggregator
	notifications NotificationStore
}

// NewMonitor creates a Monitor.
func NewMonitor(users UserGetter, aggregator *Aggregator, notifications NotificationStore) *Monitor {
	return &Monitor{
		users:         users,
		aggregator:    aggregator,
		notifications: notifications,
	}
}

// EvaluateAndNotify checks the user's spending in p against their monthly
// budget. It returns the notification it created, or nil when none was due.
//
// Users without a positive budget, and unknown users, are a silent no-op.
// An existing budget-warning created on or after p.Start suppresses a new one.
func (m *Monitor) EvaluateAndNotify(ctx context.Context, userID string, p period.Period) (*models.Notification, error) {
	n, outcome, err := m.evaluate(ctx, userID, p)
	if err != nil {
		metrics.BudgetEvaluations.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	metrics.BudgetEvaluations.WithLabelValues(outcome).Inc()
	return n, nil
}

func (m *Monitor) evaluate(ctx context.Context, userID string, p period.Period) (*models.Notification, string, error) {
	user, err := m.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", apperr.Storage("get user", err)
	}
	if !user.HasBudget() {
		return nil, metrics.OutcomeNoBudget, nil
	}

	total, err := m.aggregator.TotalForPeriod(ctx, userID, p)
	if err != nil {
		return nil, "", err
	}
	if !calculator.ReachesThreshold(total, user.MonthlyBudget, calculator.WarningThreshold) {
		return nil, metrics.OutcomeBelowThreshold, nil
	}

	existing, err := m.notifications.FindNotifications(ctx, userID, models.KindBudgetWarning, p.Start)
	if err != nil {
		return nil, "", apperr.Storage("find notifications", err)
	}
	if len(existing) > 0 {
		slog.Debug("Budget warning already sent",
			"user_id", userID,
			"period", p.Key(),
			"notification_id", existing[0].ID,
		)
		return nil, metrics.OutcomeDeduplicated, nil
	}

	n := &models.Notification{
		UserID:  userID,
		Message: WarningMessage(total, user.MonthlyBudget),
		Kind:    models.KindBudgetWarning,
	}
	if err := m.notifications.InsertNotification(ctx, n); err != nil {
		return nil, "", apperr.Storage("insert notification", err)
	}
	metrics.BudgetWarnings.Inc()

	slog.Info("Budget warning created",
		"user_id", userID,
		"period", p.Key(),
		"total", total.StringFixed(2),
		"budget", user.MonthlyBudget.StringFixed(2),
	)

	return n, metrics.OutcomeNotified, nil
}

// WarningMessage formats the budget-warning text, for example
// "Alert! You've spent 85.0% of your monthly budget (850.00/1000.00)".
// The percent is rounded half to even, so 80.25 prints as 80.2.
func WarningMessage(total, budget decimal.Decimal) string {
	return fmt.Sprintf("Alert! You've spent %s%% of your monthly budget (%s/%s)",
		calculator.Percent(total, budget).RoundBank(1).StringFixed(1),
		total.StringFixed(2),
		budget.StringFixed(2),
	)
}
