package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"startask/internal/domain"
	"startask/internal/repository"
)

var ErrInvalidNotification = errors.New("invalid notification")

const (
	ProjectsLink = "/projects"

	unreadCacheTTL = time.Minute
)

type Service interface {
	Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error)
	List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)

	NotifyProjectCreated(ctx context.Context, project *domain.Project) error
	NotifyProjectUpdated(ctx context.Context, project *domain.Project, tasks []domain.Task) error
	NotifyTaskAssigned(ctx context.Context, task *domain.Task, project *domain.Project, actorID uuid.UUID) error
}

type service struct {
	notifRepo repository.NotificationRepository
	redis     *redis.Client
}

func NewService(notifRepo repository.NotificationRepository, redis *redis.Client) Service {
	return &service{
		notifRepo: notifRepo,
		redis:     redis,
	}
}

func unreadCacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("notifications:unread:%s", userID)
}

func (s *service) Create(ctx context.Context, input domain.CreateNotificationInput) (*domain.Notification, error) {
	if input.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: recipient is required", ErrInvalidNotification)
	}
	if !input.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidNotification, input.Type)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidNotification)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Priority.IsValid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidNotification, input.Priority)
	}

	notif := &domain.Notification{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Type:     input.Type,
		Title:    input.Title,
		Message:  input.Message,
		Link:     input.Link,
		Deadline: input.Deadline,
		Priority: input.Priority,
	}

	if err := s.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	s.invalidateUnread(ctx, input.UserID)
	return notif, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, limit)
}

func (s *service) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := unreadCacheKey(userID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.notifRepo.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.redis != nil {
		if err := s.redis.Set(ctx, cacheKey, count, unreadCacheTTL).Err(); err != nil {
			log.WithError(err).WithField("user", userID).Warn("caching unread count failed")
		}
	}

	return count, nil
}

func (s *service) MarkAsRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	ok, err := s.notifRepo.MarkAsRead(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidateUnread(ctx, userID)
	}
	return ok, nil
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.notifRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	s.invalidateUnread(ctx, userID)
	return nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	ok, err := s.notifRepo.Delete(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if ok {
		s.invalidateUnread(ctx, userID)
	}
	return ok, nil
}

func (s *service) invalidateUnread(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, unreadCacheKey(userID)).Err(); err != nil {
		log.WithError(err).WithField("user", userID).Warn("invalidating unread count failed")
	}
}

func (s *service) NotifyProjectCreated(ctx context.Context, project *domain.Project) error {
	link := ProjectsLink
	_, err := s.Create(ctx, domain.CreateNotificationInput{
		UserID:   project.LeaderID,
		Type:     domain.NotifProjectAssigned,
		Title:    "Project created",
		Message:  fmt.Sprintf("You created the project: %s", project.Name),
		Link:     &link,
		Deadline: project.DueDate,
		Priority: domain.PriorityMedium,
	})
	if err != nil {
		return fmt.Errorf("notify project created: %w", err)
	}
	return nil
}

// NotifyProjectUpdated fans out to the leader and every distinct assignee.
// A failed recipient is logged and skipped.
func (s *service) NotifyProjectUpdated(ctx context.Context, project *domain.Project, tasks []domain.Task) error {
	link := ProjectsLink
	for _, recipient := range domain.ProjectRecipients(project, tasks) {
		_, err := s.Create(ctx, domain.CreateNotificationInput{
			UserID:   recipient,
			Type:     domain.NotifProjectAssigned,
			Title:    "Project updated",
			Message:  fmt.Sprintf("The project was updated: %s", project.Name),
			Link:     &link,
			Deadline: project.DueDate,
			Priority: domain.PriorityLow,
		})
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"project": project.ID,
				"user":    recipient,
			}).Error("project update notification failed")
		}
	}
	return nil
}

func (s *service) NotifyTaskAssigned(ctx context.Context, task *domain.Task, project *domain.Project, actorID uuid.UUID) error {
	if task.AssigneeID == nil || *task.AssigneeID == uuid.Nil || *task.AssigneeID == actorID {
		return nil
	}

	input := domain.CreateNotificationInput{
		UserID:   *task.AssigneeID,
		Type:     domain.NotifProjectAssigned,
		Title:    "New task assigned",
		Message:  fmt.Sprintf("You were assigned the task %q in project %s", task.Title, project.Name),
		Deadline: task.DueDate,
		Priority: domain.PriorityMedium,
	}
	if task.Priority == domain.PriorityHigh {
		input.Type = domain.NotifUrgentTask
		input.Title = "Urgent task assigned"
		input.Priority = domain.PriorityHigh
	}
	link := ProjectsLink
	input.Link = &link

	if _, err := s.Create(ctx, input); err != nil {
		return fmt.Errorf("notify task assigned: %w", err)
	}
	return nil
}
