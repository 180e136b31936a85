package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	UserID    uuid.UUID        `json:"user_id" db:"user_id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Link      *string          `json:"link,omitempty" db:"link"`
	Deadline  *time.Time       `json:"deadline,omitempty" db:"deadline"`
	Priority  Priority         `json:"priority" db:"priority"`
	IsRead    bool             `json:"is_read" db:"is_read"`
	ReadAt    *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

type NotificationType string

const (
	NotifProjectAssigned NotificationType = "project_assigned"
	NotifDeadline        NotificationType = "deadline"
	NotifNewMessage      NotificationType = "new_message"
	NotifUrgentTask      NotificationType = "urgent_task"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotifProjectAssigned, NotifDeadline, NotifNewMessage, NotifUrgentTask:
		return true
	}
	return false
}

type CreateNotificationInput struct {
	UserID   uuid.UUID
	Type     NotificationType
	Title    string
	Message  string
	Link     *string
	Deadline *time.Time
	Priority Priority
}

const (
	DefaultNotificationLimit = 10
	MaxNotificationLimit     = 100
)

// ClampLimit keeps list sizes inside [1, max], falling back to def for
// non-positive values.
func ClampLimit(limit, def, max int) int {
	if limit < 1 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
