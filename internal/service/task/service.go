package task

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
	"startask/internal/service/project"
)

type Service interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error)
	Create(ctx context.Context, actor domain.Principal, projectID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, actor domain.Principal, id uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, actor domain.Principal, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
	Delete(ctx context.Context, actor domain.Principal, id uuid.UUID) error
}

type service struct {
	taskRepo   repository.TaskRepository
	projectSvc project.Service
	auditSvc   audit.Service
	notifSvc   notification.Service
}

func NewService(
	taskRepo repository.TaskRepository,
	projectSvc project.Service,
	auditSvc audit.Service,
	notifSvc notification.Service,
) Service {
	return &service{
		taskRepo:   taskRepo,
		projectSvc: projectSvc,
		auditSvc:   auditSvc,
		notifSvc:   notifSvc,
	}
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error) {
	if _, err := s.projectSvc.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListActiveByProject(ctx, projectID)
}

func (s *service) Create(ctx context.Context, actor domain.Principal, projectID uuid.UUID, input domain.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidTask)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidTask, input.Priority)
	}

	proj, err := s.projectSvc.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.CanManage(actor, proj) {
		return nil, domain.ErrForbidden
	}

	task := &domain.Task{
		Title:       title,
		Description: input.Description,
		ProjectID:   proj.ID,
		AssigneeID:  input.AssigneeID,
		Status:      domain.TaskPending,
		Priority:    input.Priority,
		DueDate:     input.DueDate.Ptr(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditCreateTask,
		EntityType: domain.EntityTask,
		EntityID:   task.ID,
		NewValue:   task,
	})

	if err := s.notifSvc.NotifyTaskAssigned(ctx, task, proj, actor.UserID); err != nil {
		log.WithError(err).WithField("task", task.ID).Warn("task assignment notification failed")
	}

	return task, nil
}

// Update edits a task. Managers of the project only. A new assignee is
// notified the same way as on creation.
func (s *service) Update(ctx context.Context, actor domain.Principal, id uuid.UUID, input domain.UpdateTaskInput) (*domain.Task, error) {
	task, proj, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.CanManage(actor, proj) {
		return nil, domain.ErrForbidden
	}

	old := *task

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidTask)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTask, *input.Status)
		}
		task.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidTask, *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate.Ptr()
	}
	if input.AssigneeID != nil {
		assignee := *input.AssigneeID
		task.AssigneeID = &assignee
	}

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditUpdateTask,
		EntityType: domain.EntityTask,
		EntityID:   task.ID,
		OldValue:   old,
		NewValue:   task,
	})

	if reassigned(old.AssigneeID, task.AssigneeID) {
		if err := s.notifSvc.NotifyTaskAssigned(ctx, task, proj, actor.UserID); err != nil {
			log.WithError(err).WithField("task", task.ID).Warn("task reassignment notification failed")
		}
	}

	return task, nil
}

// UpdateStatus moves a task through pending, in_progress and done. The
// assignee may do this as well as the project's managers.
func (s *service) UpdateStatus(ctx context.Context, actor domain.Principal, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTask, status)
	}

	task, proj, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	isAssignee := task.AssigneeID != nil && *task.AssigneeID == actor.UserID
	if !isAssignee && !project.CanManage(actor, proj) {
		return nil, domain.ErrForbidden
	}

	previous := task.Status
	task.Status = status

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditUpdateTaskStatus,
		EntityType: domain.EntityTask,
		EntityID:   task.ID,
		OldValue:   map[string]domain.TaskStatus{"status": previous},
		NewValue:   map[string]domain.TaskStatus{"status": status},
	})

	return task, nil
}

func (s *service) Delete(ctx context.Context, actor domain.Principal, id uuid.UUID) error {
	task, proj, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !project.CanManage(actor, proj) {
		return domain.ErrForbidden
	}

	if err := s.taskRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTaskNotFound
		}
		return err
	}

	s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
		UserID:     actor.UserID,
		Action:     domain.AuditDeleteTask,
		EntityType: domain.EntityTask,
		EntityID:   id,
		OldValue:   task,
	})

	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*domain.Task, *domain.Project, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if task == nil {
		return nil, nil, domain.ErrTaskNotFound
	}

	proj, err := s.projectSvc.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	return task, proj, nil
}

func (s *service) save(ctx context.Context, task *domain.Task) error {
	if err := s.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrTaskNotFound
		}
		return err
	}
	return nil
}

func reassigned(before, after *uuid.UUID) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}
