package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/Krishmal2004/Expense-Tracker/internal/auth"
	"github.com/Krishmal2004/Expense-Tracker/internal/events"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
	"github.com/Krishmal2004/Expense-Tracker/internal/storage"
	"github.com/Krishmal2004/Expense-Tracker/internal/storage/sqlite"
	"github.com/Krishmal2004/Expense-Tracker/pkg/api"
	"github.com/Krishmal2004/Expense-Tracker/pkg/api/apiconnect"
)

type testEnv struct {
	auth      apiconnect.AuthServiceClient
	ledger    apiconnect.LedgerServiceClient
	publisher *events.Recorder
}

// setupTestServer serves both services over httptest. A nil clock uses the
// wall clock.
func setupTestServer(t *testing.T, clock func() time.Time) *testEnv {
	t.Helper()
	return setupTestServerWithStore(t, clock, nil)
}

// setupTestServerWithStore is setupTestServer with the ledger's store
// wrapped by wrap, when non-nil.
func setupTestServerWithStore(t *testing.T, clock func() time.Time, wrap func(storage.Store) storage.Store) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "service.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
	publisher := &events.Recorder{}

	var ledgerStore storage.Store = store
	if wrap != nil {
		ledgerStore = wrap(store)
	}
	ledgerSvc := NewLedgerService(ledgerStore, publisher, time.UTC, logger)
	if clock != nil {
		ledgerSvc.WithClock(clock)
	}

	mux := http.NewServeMux()
	Mount(mux, NewAuthService(authenticator, jwtManager, store, logger), ledgerSvc, jwtManager)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		auth:      apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		ledger:    apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		publisher: publisher,
	}
}

// register creates an account and returns its bearer token.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email:       email,
		DisplayName: "Tester",
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return resp.Msg.Token
}

func withToken[T any](token string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func (e *testEnv) setBudget(t *testing.T, token, amount string) {
	t.Helper()
	if _, err := e.ledger.UpdateBudget(context.Background(), withToken(token, &api.UpdateBudgetRequest{MonthlyBudget: amount})); err != nil {
		t.Fatalf("UpdateBudget failed: %v", err)
	}
}

func (e *testEnv) addExpense(t *testing.T, token string, req *api.AddExpenseRequest) *api.AddExpenseResponse {
	t.Helper()
	resp, err := e.ledger.AddExpense(context.Background(), withToken(token, req))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code: expected %v, got %v (%v)", want, got, err)
	}
}

func TestAuthFlow(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()

	token := env.register(t, "Alice@Example.com")
	if token == "" {
		t.Fatal("expected token from Register")
	}

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "alice@example.com", DisplayName: "Again", Password: "password123",
		}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Email: "bob@example.com", DisplayName: "Bob", Password: "short",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("login", func(t *testing.T) {
		resp, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "password123",
		}))
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Msg.User.Email != "alice@example.com" {
			t.Errorf("email: expected alice@example.com, got %s", resp.Msg.User.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "alice@example.com", Password: "nope-nope",
		}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("current user", func(t *testing.T) {
		resp, err := env.auth.GetCurrentUser(ctx, withToken(token, &api.GetCurrentUserRequest{}))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if resp.Msg.User.DisplayName != "Tester" || resp.Msg.User.MonthlyBudget != "0.00" {
			t.Errorf("unexpected user: %+v", resp.Msg.User)
		}

		_, err = env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}

func TestLedgerRequiresAuth(t *testing.T) {
	env := setupTestServer(t, nil)

	_, err := env.ledger.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		Amount: "10", Category: "Food",
	}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.ledger.GetTrendSummary(context.Background(), withToken("garbage", &api.GetTrendSummaryRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestAddExpenseRaisesOneWarningPerMonth(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	token := env.register(t, "budget@example.com")
	env.setBudget(t, token, "1000")

	for _, amount := range []string{"300", "300"} {
		if resp := env.addExpense(t, token, &api.AddExpenseRequest{Amount: amount, Category: "Rent"}); resp.Notification != nil {
			t.Fatalf("unexpected notification at 60%%: %+v", resp.Notification)
		}
	}

	resp := env.addExpense(t, token, &api.AddExpenseRequest{Amount: "250", Category: "Food"})
	if resp.Notification == nil {
		t.Fatal("expected a budget warning at 85%")
	}
	if !strings.Contains(resp.Notification.Message, "85.0") {
		t.Errorf("message %q does not contain 85.0", resp.Notification.Message)
	}

	if again := env.addExpense(t, token, &api.AddExpenseRequest{Amount: "10", Category: "Food"}); again.Notification != nil {
		t.Error("second warning in the same month")
	}

	if got := env.publisher.Messages(); len(got) != 1 || got[0].Kind != "budget-warning" {
		t.Errorf("expected one published warning, got %+v", got)
	}

	list, err := env.ledger.ListNotifications(ctx, withToken(token, &api.ListNotificationsRequest{}))
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(list.Msg.Notifications) != 1 || list.Msg.UnreadCount != 1 {
		t.Fatalf("expected 1 unread notification, got %d (%d unread)", len(list.Msg.Notifications), list.Msg.UnreadCount)
	}

	id := list.Msg.Notifications[0].ID
	if _, err := env.ledger.MarkNotificationRead(ctx, withToken(token, &api.MarkNotificationReadRequest{ID: id})); err != nil {
		t.Fatalf("MarkNotificationRead failed: %v", err)
	}
	list, _ = env.ledger.ListNotifications(ctx, withToken(token, &api.ListNotificationsRequest{}))
	if list.Msg.UnreadCount != 0 {
		t.Errorf("unread: expected 0, got %d", list.Msg.UnreadCount)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	alice := env.register(t, "alice@example.com")
	bob := env.register(t, "bob@example.com")

	created := env.addExpense(t, alice, &api.AddExpenseRequest{
		Amount:      "12.5",
		Category:    "Food",
		Description: "lunch",
		OccurredAt:  "2025-03-31",
	}).Expense
	env.addExpense(t, alice, &api.AddExpenseRequest{Amount: "40", Category: "Fuel", OccurredAt: "2025-04-01T08:00:00Z"})

	if created.Amount != "12.50" || created.OccurredAt != "2025-03-31T00:00:00Z" {
		t.Errorf("unexpected expense: %+v", created)
	}

	t.Run("date-only upper bound is inclusive", func(t *testing.T) {
		resp, err := env.ledger.ListExpenses(ctx, withToken(alice, &api.ListExpensesRequest{
			From: "2025-03-01", To: "2025-03-31",
		}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 1 || resp.Msg.Total != "12.50" {
			t.Errorf("expected only the March expense, got %d totalling %s", len(resp.Msg.Expenses), resp.Msg.Total)
		}
	})

	t.Run("other users see nothing", func(t *testing.T) {
		resp, err := env.ledger.ListExpenses(ctx, withToken(bob, &api.ListExpensesRequest{}))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(resp.Msg.Expenses) != 0 {
			t.Errorf("bob sees %d expenses", len(resp.Msg.Expenses))
		}

		_, err = env.ledger.DeleteExpense(ctx, withToken(bob, &api.DeleteExpenseRequest{ID: created.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("update keeps occurrence when omitted", func(t *testing.T) {
		resp, err := env.ledger.UpdateExpense(ctx, withToken(alice, &api.UpdateExpenseRequest{
			ID: created.ID, Amount: "15", Category: "Dining",
		}))
		if err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		got := resp.Msg.Expense
		if got.Amount != "15.00" || got.Category != "Dining" || got.OccurredAt != created.OccurredAt {
			t.Errorf("unexpected update result: %+v", got)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := env.ledger.AddExpense(ctx, withToken(alice, &api.AddExpenseRequest{Amount: "-1", Category: "Food"}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = env.ledger.AddExpense(ctx, withToken(alice, &api.AddExpenseRequest{Amount: "1.234", Category: "Food"}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = env.ledger.AddExpense(ctx, withToken(alice, &api.AddExpenseRequest{Amount: "5", Category: "  "}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = env.ledger.AddExpense(ctx, withToken(alice, &api.AddExpenseRequest{Amount: "5", Category: "Food", OccurredAt: "yesterday"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("delete", func(t *testing.T) {
		if _, err := env.ledger.DeleteExpense(ctx, withToken(alice, &api.DeleteExpenseRequest{ID: created.ID})); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
		_, err := env.ledger.DeleteExpense(ctx, withToken(alice, &api.DeleteExpenseRequest{ID: created.ID}))
		assertCode(t, err, connect.CodeNotFound)
	})
}

func TestReports(t *testing.T) {
	now := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	env := setupTestServer(t, func() time.Time { return now })
	ctx := context.Background()
	token := env.register(t, "reports@example.com")
	env.setBudget(t, token, "200")

	for _, e := range []api.AddExpenseRequest{
		{Amount: "100", Category: "Rent", OccurredAt: "2025-02-10"},
		{Amount: "30", Category: "Food", OccurredAt: "2025-03-02"},
		{Amount: "20", Category: "Books", OccurredAt: "2025-03-05"},
		{Amount: "30", Category: "Travel", OccurredAt: "2025-03-06"},
	} {
		env.addExpense(t, token, &e)
	}

	t.Run("trend summary", func(t *testing.T) {
		resp, err := env.ledger.GetTrendSummary(ctx, withToken(token, &api.GetTrendSummaryRequest{}))
		if err != nil {
			t.Fatalf("GetTrendSummary failed: %v", err)
		}
		s := resp.Msg.Summary
		if s.Month != "2025-03" || s.CurrentTotal != "80.00" || s.PreviousTotal != "100.00" {
			t.Errorf("unexpected totals: %+v", s)
		}
		if s.ChangePercent != "-20.00" {
			t.Errorf("change: expected -20.00, got %s", s.ChangePercent)
		}
		// Food and Travel tie at 30; the smaller label wins.
		if s.TopCategory == nil || *s.TopCategory != "Food" || s.TopCategoryAmount != "30.00" {
			t.Errorf("top category: got %v %s", s.TopCategory, s.TopCategoryAmount)
		}
		if s.BudgetPercent != "40.00" || s.BudgetWarning || s.RemainingBudget != "120.00" {
			t.Errorf("budget figures: %+v", s)
		}
	})

	t.Run("monthly totals default to six months", func(t *testing.T) {
		resp, err := env.ledger.GetMonthlyTotals(ctx, withToken(token, &api.GetMonthlyTotalsRequest{}))
		if err != nil {
			t.Fatalf("GetMonthlyTotals failed: %v", err)
		}
		months := resp.Msg.Months
		if len(months) != 6 || months[0].Month != "2024-10" || months[5].Month != "2025-03" {
			t.Fatalf("unexpected months: %+v", months)
		}
		if months[4].Total != "100.00" || months[0].Total != "0.00" {
			t.Errorf("unexpected totals: Feb=%s Oct=%s", months[4].Total, months[0].Total)
		}

		_, err = env.ledger.GetMonthlyTotals(ctx, withToken(token, &api.GetMonthlyTotalsRequest{Months: -1}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("category breakdown sorted by amount", func(t *testing.T) {
		resp, err := env.ledger.GetCategoryBreakdown(ctx, withToken(token, &api.GetCategoryBreakdownRequest{}))
		if err != nil {
			t.Fatalf("GetCategoryBreakdown failed: %v", err)
		}
		want := []string{"Food", "Travel", "Books"}
		if len(resp.Msg.Categories) != len(want) {
			t.Fatalf("expected %d categories, got %d", len(want), len(resp.Msg.Categories))
		}
		for i, c := range resp.Msg.Categories {
			if c.Category != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], c.Category)
			}
		}
		if resp.Msg.Categories[0].Percent != "37.5" || resp.Msg.Total != "80.00" {
			t.Errorf("unexpected figures: %+v total=%s", resp.Msg.Categories[0], resp.Msg.Total)
		}

		_, err = env.ledger.GetCategoryBreakdown(ctx, withToken(token, &api.GetCategoryBreakdownRequest{Month: "2025-13"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("backdated expense warns for its own month", func(t *testing.T) {
		resp := env.addExpense(t, token, &api.AddExpenseRequest{Amount: "90", Category: "Rent", OccurredAt: "2025-02-11"})
		if resp.Notification == nil || !strings.Contains(resp.Notification.Message, "95.0") {
			t.Errorf("expected a 95.0%% warning for February, got %+v", resp.Notification)
		}
	})
}

func TestProfile(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	token := env.register(t, "profile@example.com")

	env.setBudget(t, token, "1500.5")

	resp, err := env.ledger.GetProfile(ctx, withToken(token, &api.GetProfileRequest{}))
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if resp.Msg.User.MonthlyBudget != "1500.50" {
		t.Errorf("budget: expected 1500.50, got %s", resp.Msg.User.MonthlyBudget)
	}

	_, err = env.ledger.UpdateBudget(ctx, withToken(token, &api.UpdateBudgetRequest{MonthlyBudget: "lots"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestEditAndDeleteLeaveNotificationsAlone(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	token := env.register(t, "edits@example.com")
	env.setBudget(t, token, "100")

	small := env.addExpense(t, token, &api.AddExpenseRequest{Amount: "10", Category: "Food"})

	// Raising an expense over the threshold through an edit does not warn.
	if _, err := env.ledger.UpdateExpense(ctx, withToken(token, &api.UpdateExpenseRequest{
		ID:       small.Expense.ID,
		Amount:   "95",
		Category: "Food",
	})); err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	countNotifications := func() int {
		t.Helper()
		list, err := env.ledger.ListNotifications(ctx, withToken(token, &api.ListNotificationsRequest{}))
		if err != nil {
			t.Fatalf("ListNotifications failed: %v", err)
		}
		return len(list.Msg.Notifications)
	}
	if got := countNotifications(); got != 0 {
		t.Fatalf("expected no notifications after edit, got %d", got)
	}

	// The next creation evaluates the whole month and warns once.
	extra := env.addExpense(t, token, &api.AddExpenseRequest{Amount: "1", Category: "Food"})
	if extra.Notification == nil {
		t.Fatal("expected a warning once an expense is added")
	}

	if _, err := env.ledger.DeleteExpense(ctx, withToken(token, &api.DeleteExpenseRequest{ID: small.Expense.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	if got := countNotifications(); got != 1 {
		t.Errorf("delete changed notifications: expected 1, got %d", got)
	}
}

// brokenNotifications fails every notification lookup.
type brokenNotifications struct {
	storage.Store
}

func (brokenNotifications) FindNotifications(context.Context, string, models.NotificationKind, time.Time) ([]*models.Notification, error) {
	return nil, errors.New("disk I/O error")
}

func TestAddExpenseReportsFailedBudgetCheck(t *testing.T) {
	env := setupTestServerWithStore(t, nil, func(s storage.Store) storage.Store {
		return brokenNotifications{Store: s}
	})
	ctx := context.Background()
	token := env.register(t, "broken@example.com")
	env.setBudget(t, token, "100")

	_, err := env.ledger.AddExpense(ctx, withToken(token, &api.AddExpenseRequest{Amount: "90", Category: "Food"}))
	assertCode(t, err, connect.CodeInternal)
	if strings.Contains(err.Error(), "disk I/O") {
		t.Errorf("storage detail leaked to the client: %v", err)
	}

	// The expense itself was committed before the check ran.
	list, err := env.ledger.ListExpenses(ctx, withToken(token, &api.ListExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(list.Msg.Expenses) != 1 || list.Msg.Total != "90.00" {
		t.Errorf("expected the committed 90.00 expense, got %d totalling %s", len(list.Msg.Expenses), list.Msg.Total)
	}
	if got := env.publisher.Messages(); len(got) != 0 {
		t.Errorf("nothing should be published, got %+v", got)
	}

	// Below the threshold no lookup happens and the call succeeds.
	other := env.register(t, "fine@example.com")
	env.setBudget(t, other, "1000")
	env.addExpense(t, other, &api.AddExpenseRequest{Amount: "10", Category: "Food"})
}

func TestUpdateProfile(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	token := env.register(t, "carol@example.com")
	env.register(t, "dave@example.com")

	resp, err := env.ledger.UpdateProfile(ctx, withToken(token, &api.UpdateProfileRequest{
		DisplayName:   "Carol C",
		Email:         " Carol@Work.Example.com ",
		MonthlyBudget: "2500",
	}))
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	u := resp.Msg.User
	if u.DisplayName != "Carol C" || u.Email != "carol@work.example.com" || u.MonthlyBudget != "2500.00" {
		t.Errorf("unexpected profile: %+v", u)
	}

	t.Run("empty fields keep values", func(t *testing.T) {
		resp, err := env.ledger.UpdateProfile(ctx, withToken(token, &api.UpdateProfileRequest{DisplayName: "Carol"}))
		if err != nil {
			t.Fatalf("UpdateProfile failed: %v", err)
		}
		if u := resp.Msg.User; u.Email != "carol@work.example.com" || u.MonthlyBudget != "2500.00" {
			t.Errorf("fields changed unexpectedly: %+v", u)
		}
	})

	t.Run("login with new email", func(t *testing.T) {
		if _, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
			Email: "carol@work.example.com", Password: "password123",
		})); err != nil {
			t.Errorf("Login with updated email failed: %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := env.ledger.UpdateProfile(ctx, withToken(token, &api.UpdateProfileRequest{Email: "dave@example.com"}))
		assertCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := env.ledger.UpdateProfile(ctx, withToken(token, &api.UpdateProfileRequest{Email: "not-an-email"}))
		assertCode(t, err, connect.CodeInvalidArgument)

		_, err = env.ledger.UpdateProfile(ctx, withToken(token, &api.UpdateProfileRequest{MonthlyBudget: "-5"}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("requires auth", func(t *testing.T) {
		_, err := env.ledger.UpdateProfile(ctx, connect.NewRequest(&api.UpdateProfileRequest{DisplayName: "x"}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}

func TestChangePassword(t *testing.T) {
	env := setupTestServer(t, nil)
	ctx := context.Background()
	token := env.register(t, "erin@example.com")

	login := func(password string) error {
		_, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "erin@example.com", Password: password}))
		return err
	}

	t.Run("wrong current password", func(t *testing.T) {
		_, err := env.auth.ChangePassword(ctx, withToken(token, &api.ChangePasswordRequest{
			CurrentPassword: "not-my-password", NewPassword: "new-password",
		}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("weak new password", func(t *testing.T) {
		_, err := env.auth.ChangePassword(ctx, withToken(token, &api.ChangePasswordRequest{
			CurrentPassword: "password123", NewPassword: "short",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := env.auth.ChangePassword(ctx, connect.NewRequest(&api.ChangePasswordRequest{
			CurrentPassword: "password123", NewPassword: "new-password",
		}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})

	if _, err := env.auth.ChangePassword(ctx, withToken(token, &api.ChangePasswordRequest{
		CurrentPassword: "password123", NewPassword: "new-password",
	})); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if err := login("password123"); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("old password: expected unauthenticated, got %v", err)
	}
	if err := login("new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestRejectedCallsAreLogged(t *testing.T) {
	env := setupTestServer(t, nil)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	_, err := env.ledger.GetTrendSummary(context.Background(), connect.NewRequest(&api.GetTrendSummaryRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)

	out := buf.String()
	if !strings.Contains(out, apiconnect.LedgerServiceGetTrendSummaryProcedure) || !strings.Contains(out, `"code":"unauthenticated"`) {
		t.Errorf("rejected call not logged: %s", out)
	}
}
