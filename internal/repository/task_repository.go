package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"startask/internal/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListActiveByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, project_id, assignee_id, status, priority, due_date, record_state, created_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	if task.Status == "" {
		task.Status = domain.TaskPending
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	task.RecordState = domain.RecordActive
	task.CreatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Description, task.ProjectID, task.AssigneeID,
		task.Status, task.Priority, task.DueDate, task.RecordState, task.CreatedAt,
	)
	if err != nil {
		return storageError("create task", err)
	}
	return nil
}

// GetByID returns nil, nil when no active task has this id.
func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND record_state = ?`)

	err := r.db.GetContext(ctx, &task, query, id, domain.RecordActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get task", err)
	}
	return &task, nil
}

func (r *taskRepository) ListActiveByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error) {
	query := r.db.Rebind(`
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE project_id = ? AND record_state = ?
		ORDER BY created_at ASC`)

	tasks := []domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, projectID, domain.RecordActive); err != nil {
		return nil, storageError("list project tasks", err)
	}
	return tasks, nil
}

// Update writes the editable fields of an active task.
func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := r.db.Rebind(`
		UPDATE tasks
		SET title = ?, description = ?, assignee_id = ?, status = ?, priority = ?, due_date = ?
		WHERE id = ? AND record_state = ?`)

	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.AssigneeID, task.Status, task.Priority, task.DueDate,
		task.ID, domain.RecordActive,
	)
	if err != nil {
		return storageError("update task", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`UPDATE tasks SET record_state = ? WHERE id = ? AND record_state = ?`)
	res, err := r.db.ExecContext(ctx, query, domain.RecordInactive, id, domain.RecordActive)
	if err != nil {
		return storageError("delete task", err)
	}
	ok, err := affected(res)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
