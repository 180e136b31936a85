package project

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"startask/internal/domain"
	"startask/internal/repository"
	"startask/internal/service/audit"
	"startask/internal/service/notification"
)

type Service interface {
	List(ctx context.Context) ([]domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Create(ctx context.Context, actor domain.Principal, input domain.CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, actor domain.Principal, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, actor domain.Principal, id uuid.UUID) error
}

type service struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	auditSvc    audit.Service
	notifSvc    notification.Service
}

func NewService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	auditSvc audit.Service,
	notifSvc notification.Service,
) Service {
	return &service{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		auditSvc:    auditSvc,
		notifSvc:    notifSvc,
	}
}

// CanManage reports whether actor may change the project: admins always,
// leaders only for projects they lead.
func CanManage(actor domain.Principal, project *domain.Project) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.Role == domain.RoleLeader && project.LeaderID == actor.UserID
}

func (s *service) List(ctx context.Context) ([]domain.Project, error) {
	return s.projectRepo.ListActive(ctx)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.State == domain.ProjectInactive {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

func (s *service) Create(ctx context.Context, actor domain.Principal, input domain.CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidProject)
	}

	project := &domain.Project{
		Name:        name,
		Description: input.Description,
		LeaderID:    actor.UserID,
		DueDate:     input.DueDate.Ptr(),
		State:       domain.ProjectActive,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditCreateProject,
		EntityType: domain.EntityProject,
		EntityID:   project.ID,
		NewValue:   project,
	})

	if err := s.notifSvc.NotifyProjectCreated(ctx, project); err != nil {
		log.WithError(err).WithField("project", project.ID).Warn("project created notification failed")
	}

	return project, nil
}

func (s *service) Update(ctx context.Context, actor domain.Principal, id uuid.UUID, input domain.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanManage(actor, project) {
		return nil, domain.ErrForbidden
	}

	old := *project

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidProject)
		}
		project.Name = name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.DueDate != nil {
		project.DueDate = input.DueDate.Ptr()
	}
	if input.State != nil {
		if !input.State.IsValid() {
			return nil, fmt.Errorf("%w: unknown state %q", domain.ErrInvalidProject, *input.State)
		}
		project.State = *input.State
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditUpdateProject,
		EntityType: domain.EntityProject,
		EntityID:   project.ID,
		OldValue:   old,
		NewValue:   project,
	})

	tasks, err := s.taskRepo.ListActiveByProject(ctx, project.ID)
	if err != nil {
		log.WithError(err).WithField("project", project.ID).Warn("loading tasks for update notification failed, notifying leader only")
		tasks = nil
	}
	if err := s.notifSvc.NotifyProjectUpdated(ctx, project, tasks); err != nil {
		log.WithError(err).WithField("project", project.ID).Warn("project updated notification failed")
	}

	return project, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Principal, id uuid.UUID) error {
	project, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanManage(actor, project) {
		return domain.ErrForbidden
	}

	if err := s.projectRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrProjectNotFound
		}
		return err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditDeleteProject,
		EntityType: domain.EntityProject,
		EntityID:   id,
		OldValue:   project,
	})

	return nil
}
