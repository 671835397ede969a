// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

// UserStore persists account holders.
type UserStore interface {
	// CreateUser persists a new user. The user.ID field is populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return nil and no error when the user is absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUserBudget sets the monthly budget. Returns apperr.ErrNotFound for an unknown user.
	UpdateUserBudget(ctx context.Context, userID string, budget decimal.Decimal) error

	// UpdateUserProfile rewrites email, display name and monthly budget.
	// Returns apperr.ErrConflict when the email belongs to another user.
	UpdateUserProfile(ctx context.Context, user *models.User) error

	// UpdateUserPassword replaces the stored password hash.
	UpdateUserPassword(ctx context.Context, userID, passwordHash string) error
}

// ExpenseStore persists expenses. Every method is scoped to one owner.
type ExpenseStore interface {
	// CreateExpense persists a new expense. ID and CreatedAt are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense returns apperr.ErrNotFound when the expense does not exist for userID.
	GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)

	// UpdateExpense rewrites the mutable fields of an existing expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense owned by userID.
	DeleteExpense(ctx context.Context, userID, expenseID string) error

	// FindExpenses returns matching expenses, newest occurrence first.
	FindExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error)
}

// NotificationStore persists notifications. Notifications are never deleted.
type NotificationStore interface {
	// InsertNotification persists a new notification. ID and CreatedAt are populated by the store.
	InsertNotification(ctx context.Context, n *models.Notification) error

	// FindNotifications returns a user's notifications, newest first.
	// An empty kind matches every kind; a zero createdAfter matches every time.
	// createdAfter is inclusive.
	FindNotifications(ctx context.Context, userID string, kind models.NotificationKind, createdAfter time.Time) ([]*models.Notification, error)

	// ListNotifications returns at most limit notifications, newest first.
	ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error)

	// MarkNotificationRead flips the read flag of a notification owned by userID.
	MarkNotificationRead(ctx context.Context, userID, notificationID string) error
}

// Store is the full Ledger Store.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	ExpenseStore
	NotificationStore

	// Close releases any resources held by the store.
	Close() error
}
