package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

const userColumns = `id, email, display_name, password_hash, monthly_budget, created_at, updated_at`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = s.now().Unix()
	}
	if user.UpdatedAt == 0 {
		user.UpdatedAt = user.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.DisplayName,
		user.PasswordHash,
		user.MonthlyBudget,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperr.Storage("create user", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by their email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row, "get user by email")
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row, "get user by id")
}

// UpdateUserBudget sets the monthly budget of a user.
func (s *SQLiteStore) UpdateUserBudget(ctx context.Context, userID string, budget decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET monthly_budget = ?, updated_at = ? WHERE id = ?`,
		budget, s.now().Unix(), userID,
	)
	if err != nil {
		return apperr.Storage("update user budget", err)
	}
	return expectOneRow(res, "user", userID)
}

// UpdateUserProfile rewrites the editable account fields of a user.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = s.now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET email = ?, display_name = ?, monthly_budget = ?, updated_at = ? WHERE id = ?`,
		user.Email, user.DisplayName, user.MonthlyBudget, user.UpdatedAt, user.ID,
	)
	if isUniqueViolation(err) {
		return apperr.Conflict("email %s", user.Email)
	}
	if err != nil {
		return apperr.Storage("update user profile", err)
	}
	return expectOneRow(res, "user", user.ID)
}

// UpdateUserPassword replaces the password hash of a user.
func (s *SQLiteStore) UpdateUserPassword(ctx context.Context, userID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, s.now().Unix(), userID,
	)
	if err != nil {
		return apperr.Storage("update user password", err)
	}
	return expectOneRow(res, "user", userID)
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT: // extended codes off
		return strings.Contains(sqliteErr.Error(), "UNIQUE")
	}
	return false
}

func scanUser(row *sql.Row, op string) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.PasswordHash,
		&user.MonthlyBudget,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, apperr.Storage(op, err)
	}
	return user, nil
}

// expectOneRow turns an update that touched nothing into apperr.ErrNotFound.
func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(fmt.Sprintf("count affected %s rows", kind), err)
	}
	if n == 0 {
		return apperr.NotFound(kind, id)
	}
	return nil
}
