package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProjectState string

const (
	ProjectActive    ProjectState = "active"
	ProjectInactive  ProjectState = "inactive"
	ProjectCompleted ProjectState = "completed"
)

func (s ProjectState) IsValid() bool {
	switch s {
	case ProjectActive, ProjectInactive, ProjectCompleted:
		return true
	}
	return false
}

type Project struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	LeaderID    uuid.UUID    `json:"leader_id" db:"leader_id"`
	DueDate     *time.Time   `json:"due_date,omitempty" db:"due_date"`
	State       ProjectState `json:"state" db:"state"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

type CreateProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     *Date  `json:"due_date,omitempty"`
}

type UpdateProjectInput struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	DueDate     *Date         `json:"due_date,omitempty"`
	State       *ProjectState `json:"state,omitempty"`
}

// ProjectRecipients returns the leader followed by every distinct task
// assignee, in task order. The leader is never repeated.
func ProjectRecipients(project *Project, tasks []Task) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(tasks)+1)
	recipients := make([]uuid.UUID, 0, len(tasks)+1)

	add := func(id uuid.UUID) {
		if id == uuid.Nil {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		recipients = append(recipients, id)
	}

	add(project.LeaderID)
	for _, t := range tasks {
		if t.AssigneeID != nil {
			add(*t.AssigneeID)
		}
	}

	return recipients
}
