package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/auth"
	"github.com/Krishmal2004/Expense-Tracker/internal/budget"
	"github.com/Krishmal2004/Expense-Tracker/internal/calculator"
	"github.com/Krishmal2004/Expense-Tracker/internal/events"
	"github.com/Krishmal2004/Expense-Tracker/internal/metrics"
	"github.com/Krishmal2004/Expense-Tracker/internal/middleware"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/internal/period"
	"github.com/Krishmal2004/Expense-Tracker/internal/storage"
	"github.com/Krishmal2004/Expense-Tracker/pkg/api"
)

const (
	defaultTrendMonths       = 6
	maxTrendMonths           = 36
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// LedgerService implements the LedgerService RPC interface.
// Every RPC requires an authenticated caller and only touches that caller's data.
type LedgerService struct {
	store      storage.Store
	aggregator *budget.Aggregator
	monitor    *budget.Monitor
	reporter   *budget.Reporter
	publisher  events.Publisher
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

// NewLedgerService wires the budget components over store. Calendar months
// are computed in loc. A nil publisher disables broker delivery.
func NewLedgerService(store storage.Store, publisher events.Publisher, loc *time.Location, logger *slog.Logger) *LedgerService {
	if loc == nil {
		loc = time.UTC
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	aggregator := budget.NewAggregator(store, loc)
	return &LedgerService{
		store:      store,
		aggregator: aggregator,
		monitor:    budget.NewMonitor(store, aggregator, store),
		reporter:   budget.NewReporter(store, aggregator),
		publisher:  publisher,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// WithClock replaces the wall clock used for "now".
func (s *LedgerService) WithClock(now func() time.Time) *LedgerService {
	s.now = now
	return s
}

func currentUser(ctx context.Context) (string, error) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// AddExpense stores an expense and then evaluates the budget for the month
// the expense occurred in.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenseFromRequest(userID, req.Msg.Amount, req.Msg.Category, req.Msg.Description, req.Msg.OccurredAt, req.Msg.CardID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if expense.OccurredAt.IsZero() {
		expense.OccurredAt = s.now()
	}
	if err := expense.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.Error("Failed to create expense", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	metrics.ExpensesCreated.Inc()
	s.logger.Info("Expense created",
		"user_id", userID,
		"expense_id", expense.ID,
		"amount", expense.Amount.StringFixed(2),
		"category", expense.Category,
	)

	resp := &api.AddExpenseResponse{Expense: toAPIExpense(expense)}

	// A failed evaluation is reported even though the expense stays committed.
	p := period.Containing(expense.OccurredAt, s.loc)
	n, err := s.monitor.EvaluateAndNotify(ctx, userID, p)
	if err != nil {
		s.logger.Error("Budget evaluation failed",
			"user_id", userID,
			"expense_id", expense.ID,
			"period", p.Key(),
			"error", err,
		)
		return nil, toConnectError(err)
	}
	if n != nil {
		resp.Notification = toAPINotification(n)
		if err := s.publisher.PublishNotification(ctx, events.NewNotificationMessage(n, p.Key())); err != nil {
			s.logger.Warn("Failed to publish notification", "notification_id", n.ID, "error", err)
		}
	}

	return connect.NewResponse(resp), nil
}

// UpdateExpense rewrites an expense. Budget warnings are not re-evaluated.
func (s *LedgerService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, toConnectError(apperr.InvalidArgument("expense id is required"))
	}

	existing, err := s.store.GetExpense(ctx, userID, req.Msg.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	updated, err := s.expenseFromRequest(userID, req.Msg.Amount, req.Msg.Category, req.Msg.Description, req.Msg.OccurredAt, req.Msg.CardID)
	if err != nil {
		return nil, toConnectError(err)
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if updated.OccurredAt.IsZero() {
		updated.OccurredAt = existing.OccurredAt
	}
	if err := updated.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateExpense(ctx, updated); err != nil {
		s.logger.Error("Failed to update expense", "user_id", userID, "expense_id", updated.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense updated", "user_id", userID, "expense_id", updated.ID)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(updated)}), nil
}

// DeleteExpense removes one of the caller's expenses.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, toConnectError(apperr.InvalidArgument("expense id is required"))
	}

	if err := s.store.DeleteExpense(ctx, userID, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense deleted", "user_id", userID, "expense_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpenses returns the caller's expenses, newest first. A bare
// YYYY-MM-DD upper bound includes that whole day.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	from, err := parseInstant("from", req.Msg.From, s.loc)
	if err != nil {
		return nil, toConnectError(err)
	}
	to, err := parseInstant("to", req.Msg.To, s.loc)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !to.IsZero() && len(strings.TrimSpace(req.Msg.To)) == len(dateLayout) {
		to = to.AddDate(0, 0, 1)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return nil, toConnectError(apperr.InvalidArgument("from must be before to"))
	}

	expenses, err := s.store.FindExpenses(ctx, models.ExpenseFilter{
		UserID:   userID,
		From:     from,
		To:       to,
		Category: strings.TrimSpace(req.Msg.Category),
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}

	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses: out,
		Total:    calculator.Total(expenses).StringFixed(2),
	}), nil
}

// GetTrendSummary compares this month's spending with last month's.
func (s *LedgerService) GetTrendSummary(ctx context.Context, req *connect.Request[api.GetTrendSummaryRequest]) (*connect.Response[api.GetTrendSummaryResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.reporter.Report(ctx, userID, s.now())
	if err != nil {
		s.logger.Error("Failed to build trend summary", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTrendSummaryResponse{Summary: toAPITrend(summary)}), nil
}

// GetMonthlyTotals returns per-month totals, oldest first.
func (s *LedgerService) GetMonthlyTotals(ctx context.Context, req *connect.Request[api.GetMonthlyTotalsRequest]) (*connect.Response[api.GetMonthlyTotalsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	n := req.Msg.Months
	if n == 0 {
		n = defaultTrendMonths
	}
	if n < 0 || n > maxTrendMonths {
		return nil, toConnectError(apperr.InvalidArgument("months must be between 1 and %d", maxTrendMonths))
	}

	totals, err := s.aggregator.MonthlyTotals(ctx, userID, n, s.now())
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.MonthTotal, len(totals))
	for i, t := range totals {
		out[i] = &api.MonthTotal{Month: t.Period.Key(), Total: t.Total.StringFixed(2)}
	}

	return connect.NewResponse(&api.GetMonthlyTotalsResponse{Months: out}), nil
}

// GetCategoryBreakdown returns category totals for one month, largest first.
func (s *LedgerService) GetCategoryBreakdown(ctx context.Context, req *connect.Request[api.GetCategoryBreakdownRequest]) (*connect.Response[api.GetCategoryBreakdownResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	p := period.Containing(s.now(), s.loc)
	if req.Msg.Month != "" {
		if p, err = period.Parse(req.Msg.Month, s.loc); err != nil {
			return nil, toConnectError(err)
		}
	}

	sums, err := s.aggregator.ByCategoryForPeriod(ctx, userID, p)
	if err != nil {
		return nil, toConnectError(err)
	}

	sorted := calculator.SortedCategories(sums)
	total := decimal.Zero
	for _, c := range sorted {
		total = total.Add(c.Amount)
	}

	out := make([]*api.CategoryTotal, len(sorted))
	for i, c := range sorted {
		out[i] = &api.CategoryTotal{
			Category: c.Category,
			Amount:   c.Amount.StringFixed(2),
			Percent:  calculator.Percent(c.Amount, total).StringFixed(1),
		}
	}

	return connect.NewResponse(&api.GetCategoryBreakdownResponse{
		Month:      p.Key(),
		Total:      total.StringFixed(2),
		Categories: out,
	}), nil
}

// ListNotifications returns the caller's notifications, newest first.
func (s *LedgerService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	limit := req.Msg.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	list, err := s.store.ListNotifications(ctx, userID, limit)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &api.ListNotificationsResponse{Notifications: make([]*api.Notification, len(list))}
	for i, n := range list {
		resp.Notifications[i] = toAPINotification(n)
		if !n.Read {
			resp.UnreadCount++
		}
	}

	return connect.NewResponse(resp), nil
}

// MarkNotificationRead flags one of the caller's notifications as read.
func (s *LedgerService) MarkNotificationRead(ctx context.Context, req *connect.Request[api.MarkNotificationReadRequest]) (*connect.Response[api.MarkNotificationReadResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, toConnectError(apperr.InvalidArgument("notification id is required"))
	}

	if err := s.store.MarkNotificationRead(ctx, userID, req.Msg.ID); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.MarkNotificationReadResponse{}), nil
}

// GetProfile returns the caller's account including the monthly budget.
func (s *LedgerService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetProfileResponse{User: toAPIUser(user)}), nil
}

// UpdateBudget sets the caller's monthly budget. Zero clears it.
func (s *LedgerService) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.UpdateBudgetResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount("monthlyBudget", req.Msg.MonthlyBudget)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateUserBudget(ctx, userID, amount); err != nil {
		return nil, toConnectError(err)
	}
	s.logger.Info("Monthly budget updated", "user_id", userID, "budget", amount.StringFixed(2))

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpdateBudgetResponse{User: toAPIUser(user)}), nil
}

// UpdateProfile edits the caller's display name, email and monthly budget.
// Empty fields keep their current value. Budget warnings are not re-evaluated.
func (s *LedgerService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if name := strings.TrimSpace(req.Msg.DisplayName); name != "" {
		user.DisplayName = name
	}
	if strings.TrimSpace(req.Msg.MonthlyBudget) != "" {
		if user.MonthlyBudget, err = parseAmount("monthlyBudget", req.Msg.MonthlyBudget); err != nil {
			return nil, toConnectError(err)
		}
	}
	if strings.TrimSpace(req.Msg.Email) != "" {
		email, err := auth.ValidateEmail(req.Msg.Email)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		if email != user.Email {
			owner, err := s.store.GetUserByEmail(ctx, email)
			if err != nil {
				return nil, toConnectError(err)
			}
			if owner != nil {
				return nil, connect.NewError(connect.CodeAlreadyExists, auth.ErrEmailExists)
			}
			user.Email = email
		}
	}

	if err := s.store.UpdateUserProfile(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	s.logger.Info("Profile updated", "user_id", userID, "budget", user.MonthlyBudget.StringFixed(2))

	return connect.NewResponse(&api.UpdateProfileResponse{User: toAPIUser(user)}), nil
}

func (s *LedgerService) loadUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}
	return user, nil
}

func (s *LedgerService) expenseFromRequest(userID, amount, category, description, occurredAt, cardID string) (*models.Expense, error) {
	value, err := parseAmount("amount", amount)
	if err != nil {
		return nil, err
	}
	at, err := parseInstant("occurredAt", occurredAt, s.loc)
	if err != nil {
		return nil, err
	}
	return &models.Expense{
		UserID:      userID,
		Amount:      value,
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
		OccurredAt:  at,
		CardID:      strings.TrimSpace(cardID),
	}, nil
}
