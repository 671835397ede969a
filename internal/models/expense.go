package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
)

// MaxDescriptionLength bounds Expense.Description.
const MaxDescriptionLength = 200

// Expense represents a single spend recorded by a user.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// UserID is the owner. Every expense belongs to exactly one user.
	UserID string

	// Amount is the money spent. Never negative.
	Amount decimal.Decimal

	// Category is a free-form label such as "Food" or "Transport".
	Category string

	// Description is an optional note.
	Description string

	// OccurredAt is when the spend happened, not when it was recorded.
	OccurredAt time.Time

	// CardID optionally references the card used. Empty when absent.
	CardID string

	// CreatedAt is the Unix timestamp when the record was written.
	CreatedAt int64
}

// Validate checks the fields a caller supplies when adding or editing an expense.
func (e *Expense) Validate() error {
	if e.UserID == "" {
		return apperr.InvalidArgument("expense has no owner")
	}
	if e.Amount.IsNegative() {
		return apperr.InvalidArgument("amount must not be negative")
	}
	if strings.TrimSpace(e.Category) == "" {
		return apperr.InvalidArgument("category is required")
	}
	if len(e.Description) > MaxDescriptionLength {
		return apperr.InvalidArgument("description too long (max %d characters)", MaxDescriptionLength)
	}
	if e.OccurredAt.IsZero() {
		return apperr.InvalidArgument("occurrence date is required")
	}
	return nil
}

// ExpenseFilter selects a user's expenses. Zero-valued fields do not filter.
type ExpenseFilter struct {
	UserID string

	// From is inclusive, To is exclusive.
	From time.Time
	To   time.Time

	Category string
}
