package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Krishmal2004/Expense-Tracker/internal/apperr"
	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

const notificationColumns = `id, user_id, message, kind, is_read, created_at`

// InsertNotification persists a new notification.
func (s *SQLiteStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt == 0 {
		n.CreatedAt = s.now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Message, string(n.Kind), n.Read, n.CreatedAt,
	)
	if err != nil {
		return apperr.Storage("insert notification", err)
	}

	return nil
}

// FindNotifications returns a user's notifications of kind created at or after createdAfter.
func (s *SQLiteStore) FindNotifications(ctx context.Context, userID string, kind models.NotificationKind, createdAfter time.Time) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	args := []interface{}{userID}

	if kind != "" {
		query += " AND kind = ?"
		args = append(args, string(kind))
	}
	if !createdAfter.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, createdAfter.Unix())
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	return s.queryNotifications(ctx, "find notifications", query, args...)
}

// ListNotifications returns at most limit notifications, newest first.
func (s *SQLiteStore) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	return s.queryNotifications(ctx, "list notifications",
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		userID, limit,
	)
}

// MarkNotificationRead sets the read flag of a notification owned by userID.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?",
		notificationID, userID,
	)
	if err != nil {
		return apperr.Storage("mark notification read", err)
	}
	return expectOneRow(res, "notification", notificationID)
}

func (s *SQLiteStore) queryNotifications(ctx context.Context, op, query string, args ...interface{}) ([]*models.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(op, err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var kind string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &kind, &n.Read, &n.CreatedAt); err != nil {
			return nil, apperr.Storage(op, err)
		}
		n.Kind = models.NotificationKind(kind)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(op, err)
	}

	return notifications, nil
}
