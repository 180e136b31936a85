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

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]domain.Project, error)
}

type projectRepository struct {
	db *sqlx.DB
}

func NewProjectRepository(db *sqlx.DB) ProjectRepository {
	return &projectRepository{db: db}
}

const projectColumns = `id, name, description, leader_id, due_date, state, created_at, updated_at`

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	if project.State == "" {
		project.State = domain.ProjectActive
	}
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.Name, project.Description, project.LeaderID,
		project.DueDate, project.State, project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return storageError("create project", err)
	}
	return nil
}

// GetByID returns nil, nil when the project does not exist.
func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	query := r.db.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ?`)

	err := r.db.GetContext(ctx, &project, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("get project", err)
	}
	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(`
		UPDATE projects
		SET name = ?, description = ?, due_date = ?, state = ?, updated_at = ?
		WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, query,
		project.Name, project.Description, project.DueDate, project.State, project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return storageError("update project", err)
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

func (r *projectRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`UPDATE projects SET state = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, domain.ProjectInactive, time.Now().UTC(), id)
	if err != nil {
		return storageError("delete project", err)
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

func (r *projectRepository) ListActive(ctx context.Context) ([]domain.Project, error) {
	query := r.db.Rebind(`
		SELECT ` + projectColumns + `
		FROM projects
		WHERE state = ?
		ORDER BY created_at ASC`)

	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects, query, domain.ProjectActive); err != nil {
		return nil, storageError("list active projects", err)
	}
	return projects, nil
}
