package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
)

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		UserID:     "user-1",
		Amount:     decimal.RequireFromString("12.50"),
		Category:   "Food",
		OccurredAt: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected valid expense, got %v", err)
	}

	zero := good
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Errorf("zero amount should be allowed, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(e *Expense)
	}{
		{"missing owner", func(e *Expense) { e.UserID = "" }},
		{"negative amount", func(e *Expense) { e.Amount = decimal.RequireFromString("-0.01") }},
		{"blank category", func(e *Expense) { e.Category = "   " }},
		{"long description", func(e *Expense) { e.Description = strings.Repeat("x", MaxDescriptionLength+1) }},
		{"zero date", func(e *Expense) { e.OccurredAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := good
			tt.mutate(&e)
			err := e.Validate()
			if !errors.Is(err, apperr.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestUserHasBudget(t *testing.T) {
	var nilUser *User
	if nilUser.HasBudget() {
		t.Error("nil user should have no budget")
	}

	u := NewUser("a@example.com", "A", "hash")
	if u.HasBudget() {
		t.Error("new user should have no budget")
	}
	if u.CreatedAt == 0 || u.UpdatedAt != u.CreatedAt {
		t.Errorf("expected timestamps to be set, got created=%d updated=%d", u.CreatedAt, u.UpdatedAt)
	}

	u.MonthlyBudget = decimal.NewFromInt(-5)
	if u.HasBudget() {
		t.Error("negative budget should count as unset")
	}

	u.MonthlyBudget = decimal.NewFromInt(1000)
	if !u.HasBudget() {
		t.Error("positive budget should count as set")
	}
}
