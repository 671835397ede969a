package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered account holder.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's login address (unique).
	Email string

	// DisplayName is the name shown in the UI.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// MonthlyBudget is the spend ceiling per calendar month.
	// Zero means no budget has been set.
	MonthlyBudget decimal.Decimal

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}

// NewUser builds a User ready to be persisted. The store assigns the ID.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		Email:         email,
		DisplayName:   displayName,
		PasswordHash:  passwordHash,
		MonthlyBudget: decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasBudget reports whether a positive monthly budget is set.
func (u *User) HasBudget() bool {
	return u != nil && u.MonthlyBudget.IsPositive()
}
