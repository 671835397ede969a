// Package api defines the request and response messages of the ledger's
// Connect services. Money amounts travel as decimal strings and instants as
// RFC 3339 strings or Unix seconds.
package api

// User is the public view of an account.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	MonthlyBudget string `json:"monthlyBudget"`
	CreatedAt     int64  `json:"createdAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type ChangePasswordResponse struct{}

// Expense is one recorded purchase.
type Expense struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	// OccurredAt is RFC 3339.
	OccurredAt string `json:"occurredAt"`
	CardID     string `json:"cardId,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

// AddExpenseRequest creates an expense. OccurredAt accepts RFC 3339 or
// YYYY-MM-DD and defaults to now.
type AddExpenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	OccurredAt  string `json:"occurredAt,omitempty"`
	CardID      string `json:"cardId,omitempty"`
}

type AddExpenseResponse struct {
	Expense *Expense `json:"expense"`
	// Notification is set when this expense triggered a budget warning.
	Notification *Notification `json:"notification,omitempty"`
}

type UpdateExpenseRequest struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	OccurredAt  string `json:"occurredAt"`
	CardID      string `json:"cardId,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id"`
}

type DeleteExpenseResponse struct{}

// ListExpensesRequest filters by an optional [From, To) range and category.
type ListExpensesRequest struct {
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Category string `json:"category,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
	Total    string     `json:"total"`
}

// TrendSummary compares this month's spending with last month's.
type TrendSummary struct {
	Month             string  `json:"month"`
	CurrentTotal      string  `json:"currentTotal"`
	PreviousTotal     string  `json:"previousTotal"`
	ChangePercent     string  `json:"changePercent"`
	TopCategory       *string `json:"topCategory"`
	TopCategoryAmount string  `json:"topCategoryAmount"`
	MonthlyBudget     string  `json:"monthlyBudget"`
	BudgetPercent     string  `json:"budgetPercent"`
	BudgetWarning     bool    `json:"budgetWarning"`
	RemainingBudget   string  `json:"remainingBudget"`
}

type GetTrendSummaryRequest struct{}

type GetTrendSummaryResponse struct {
	Summary *TrendSummary `json:"summary"`
}

type MonthTotal struct {
	Month string `json:"month"`
	Total string `json:"total"`
}

// GetMonthlyTotalsRequest asks for the last Months months; zero means 6.
type GetMonthlyTotalsRequest struct {
	Months int `json:"months,omitempty"`
}

type GetMonthlyTotalsResponse struct {
	Months []*MonthTotal `json:"months"`
}

type CategoryTotal struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Percent  string `json:"percent"`
}

// GetCategoryBreakdownRequest names a YYYY-MM month; empty means the current one.
type GetCategoryBreakdownRequest struct {
	Month string `json:"month,omitempty"`
}

type GetCategoryBreakdownResponse struct {
	Month      string           `json:"month"`
	Total      string           `json:"total"`
	Categories []*CategoryTotal `json:"categories"`
}

type Notification struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Kind      string `json:"kind"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"createdAt"`
}

// ListNotificationsRequest pages newest first; zero Limit means 50.
type ListNotificationsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListNotificationsResponse struct {
	Notifications []*Notification `json:"notifications"`
	UnreadCount   int             `json:"unreadCount"`
}

type MarkNotificationReadRequest struct {
	ID string `json:"id"`
}

type MarkNotificationReadResponse struct{}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	User *User `json:"user"`
}

// UpdateBudgetRequest sets the monthly budget; "0" clears it.
type UpdateBudgetRequest struct {
	MonthlyBudget string `json:"monthlyBudget"`
}

type UpdateBudgetResponse struct {
	User *User `json:"user"`
}

// UpdateProfileRequest edits the caller's account. Empty fields keep their
// current value.
type UpdateProfileRequest struct {
	DisplayName   string `json:"displayName,omitempty"`
	Email         string `json:"email,omitempty"`
	MonthlyBudget string `json:"monthlyBudget,omitempty"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}
