package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

const expenseColumns = `id, user_id, amount, category, description, occurred_at, card_id, created_at`

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = s.now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.OccurredAt.Unix(),
		nullable(expense.CardID),
		expense.CreatedAt,
	)
	if err != nil {
		return apperr.Storage("insert expense", err)
	}

	return nil
}

// GetExpense retrieves one expense owned by userID.
func (s *SQLiteStore) GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ? AND user_id = ?`,
		expenseID, userID,
	)

	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("expense", expenseID)
	}
	if err != nil {
		return nil, apperr.Storage("get expense", err)
	}

	return expense, nil
}

// UpdateExpense rewrites amount, category, description, date and card of an expense.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE expenses
		 SET amount = ?, category = ?, description = ?, occurred_at = ?, card_id = ?
		 WHERE id = ? AND user_id = ?`,
		expense.Amount,
		expense.Category,
		expense.Description,
		expense.OccurredAt.Unix(),
		nullable(expense.CardID),
		expense.ID,
		expense.UserID,
	)
	if err != nil {
		return apperr.Storage("update expense", err)
	}
	return expectOneRow(res, "expense", expense.ID)
}

// DeleteExpense removes an expense owned by userID.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return apperr.Storage("delete expense", err)
	}
	return expectOneRow(res, "expense", expenseID)
}

// FindExpenses returns the expenses matching filter, newest occurrence first.
func (s *SQLiteStore) FindExpenses(ctx context.Context, filter models.ExpenseFilter) ([]*models.Expense, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []interface{}{filter.UserID}
	)
	if !filter.From.IsZero() {
		where = append(where, "occurred_at >= ?")
		args = append(args, filter.From.Unix())
	}
	if !filter.To.IsZero() {
		where = append(where, "occurred_at < ?")
		args = append(args, filter.To.Unix())
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}

	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE ` +
		strings.Join(where, " AND ") +
		` ORDER BY occurred_at DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage("find expenses", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, apperr.Storage("scan expense", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("iterate expenses", err)
	}

	return expenses, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var (
		occurredAt int64
		cardID     sql.NullString
	)

	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Amount,
		&expense.Category,
		&expense.Description,
		&occurredAt,
		&cardID,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	expense.OccurredAt = time.Unix(occurredAt, 0).UTC()
	if cardID.Valid {
		expense.CardID = cardID.String
	}

	return expense, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
