package domain

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type RecordState string

const (
	RecordActive   RecordState = "active"
	RecordInactive RecordState = "inactive"
)

type Task struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	ProjectID   uuid.UUID   `json:"project_id" db:"project_id"`
	AssigneeID  *uuid.UUID  `json:"assignee_id,omitempty" db:"assignee_id"`
	Status      TaskStatus  `json:"status" db:"status"`
	Priority    Priority    `json:"priority" db:"priority"`
	DueDate     *time.Time  `json:"due_date,omitempty" db:"due_date"`
	RecordState RecordState `json:"-" db:"record_state"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
}

type CreateTaskInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"due_date,omitempty"`
}

// UpdateTaskInput carries a partial edit; nil fields are left unchanged.
type UpdateTaskInput struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	AssigneeID  *uuid.UUID  `json:"assignee_id,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	DueDate     *Date       `json:"due_date,omitempty"`
}

type UpdateTaskStatusInput struct {
	Status TaskStatus `json:"status"`
}
