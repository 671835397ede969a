package models

// NotificationKind tags what a notification is about.
type NotificationKind string

const (
	// KindBudgetWarning signals that at least 80% of the monthly budget is spent.
	KindBudgetWarning NotificationKind = "budget-warning"

	// KindInfo is a plain informational message.
	KindInfo NotificationKind = "info"
)

// Notification is an alert surfaced to a user.
type Notification struct {
	ID      string
	UserID  string
	Message string
	Kind    NotificationKind

	// Read is toggled by the user; notifications are never deleted.
	Read bool

	// CreatedAt is the Unix timestamp when the notification was generated.
	CreatedAt int64
}
