package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	UserID     uuid.UUID       `json:"user_id" db:"user_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID       `json:"entity_id" db:"entity_id"`
	OldValue   json.RawMessage `json:"old_value,omitempty" db:"old_value"`
	NewValue   json.RawMessage `json:"new_value,omitempty" db:"new_value"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type CreateAuditLogInput struct {
	UserID     uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	OldValue   interface{}
	NewValue   interface{}
}

const (
	AuditCreateProject    = "create_project"
	AuditUpdateProject    = "update_project"
	AuditDeleteProject    = "delete_project"
	AuditCreateTask       = "create_task"
	AuditUpdateTask       = "update_task"
	AuditUpdateTaskStatus = "update_task_status"
	AuditDeleteTask       = "delete_task"
	AuditDeadlineSweep    = "deadline_sweep"

	EntityProject = "project"
	EntityTask    = "task"
	EntitySweep   = "sweep"
)
