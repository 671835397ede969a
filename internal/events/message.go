// Package events broadcasts ledger notifications to a message broker.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Krishmal2004/Expense-Tracker/internal/models"
)

// NotificationMessage is the broker payload for a created notification.
type NotificationMessage struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Kind           string    `json:"kind"`
	Message        string    `json:"message"`
	Period         string    `json:"period,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewNotificationMessage builds the payload for n raised in period (YYYY-MM).
func NewNotificationMessage(n *models.Notification, period string) NotificationMessage {
	return NotificationMessage{
		NotificationID: n.ID,
		UserID:         n.UserID,
		Kind:           string(n.Kind),
		Message:        n.Message,
		Period:         period,
		CreatedAt:      time.Unix(n.CreatedAt, 0).UTC(),
	}
}

func (m NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func NotificationMessageFromJSON(data []byte) (NotificationMessage, error) {
	var m NotificationMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return NotificationMessage{}, fmt.Errorf("decode notification message: %w", err)
	}
	if m.NotificationID == "" || m.UserID == "" {
		return NotificationMessage{}, fmt.Errorf("decode notification message: missing ids")
	}
	return m, nil
}
