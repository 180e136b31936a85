package deadline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"startask/internal/domain"
	"startask/internal/repository"
	"startask/internal/service/audit"
	"startask/internal/service/notification"
	"startask/internal/service/report"
)

var ErrSweepInProgress = errors.New("deadline sweep already in progress")

type Options struct {
	WindowDays   int
	TaskRetries  int
	RetryBackoff time.Duration
	Timeout      time.Duration
	Location     *time.Location
	Now          func() time.Time
}

func DefaultOptions() Options {
	return Options{
		WindowDays:   7,
		TaskRetries:  2,
		RetryBackoff: 200 * time.Millisecond,
		Timeout:      2 * time.Minute,
		Location:     time.UTC,
		Now:          time.Now,
	}
}

type Service interface {
	RunSweep(ctx context.Context) (*domain.SweepResult, error)
	LastResult() *domain.SweepResult
	SetLocker(locker Locker)
	SetArchiver(archiver report.Service)
}

type service struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	notifSvc    notification.Service
	auditSvc    audit.Service
	archiver    report.Service
	locker      Locker
	opts        Options

	running sync.Mutex

	mu   sync.RWMutex
	last *domain.SweepResult
}

func NewService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	notifSvc notification.Service,
	auditSvc audit.Service,
	opts Options,
) Service {
	defaults := DefaultOptions()
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaults.WindowDays
	}
	if opts.TaskRetries < 0 {
		opts.TaskRetries = 0
	}
	if opts.Location == nil {
		opts.Location = defaults.Location
	}
	if opts.Now == nil {
		opts.Now = defaults.Now
	}

	return &service{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		notifSvc:    notifSvc,
		auditSvc:    auditSvc,
		opts:        opts,
	}
}

func (s *service) SetLocker(locker Locker) {
	s.locker = locker
}

func (s *service) SetArchiver(archiver report.Service) {
	s.archiver = archiver
}

func (s *service) LastResult() *domain.SweepResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	last := *s.last
	return &last
}

// RunSweep scans every active project once and creates deadline
// notifications for those due within the window. Per-project failures are
// counted in the result; only a failure to list projects aborts the run.
func (s *service) RunSweep(ctx context.Context) (*domain.SweepResult, error) {
	if !s.running.TryLock() {
		return nil, ErrSweepInProgress
	}
	defer s.running.Unlock()

	if s.locker != nil {
		release, acquired, err := s.locker.TryLock(ctx)
		switch {
		case err != nil:
			log.WithError(err).Warn("distributed sweep lock unavailable, relying on local lock")
		case !acquired:
			return nil, ErrSweepInProgress
		default:
			defer release()
		}
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	result := &domain.SweepResult{
		RunID:     uuid.New(),
		StartedAt: s.opts.Now().UTC(),
	}
	logger := log.WithField("run", result.RunID)

	projects, err := s.projectRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active projects: %w", err)
	}

	for i := range projects {
		if err := ctx.Err(); err != nil {
			result.Interrupted = true
			logger.WithError(err).Warn("deadline sweep interrupted")
			break
		}

		result.ProjectsScanned++
		s.sweepProject(ctx, result, &projects[i], logger)
	}

	result.FinishedAt = s.opts.Now().UTC()
	s.finish(context.WithoutCancel(ctx), result, logger)

	return result, nil
}

func (s *service) sweepProject(ctx context.Context, result *domain.SweepResult, project *domain.Project, logger *log.Entry) {
	logger = logger.WithField("project", project.ID)

	if project.DueDate == nil {
		result.ProjectsSkipped++
		return
	}

	days := DaysRemaining(*project.DueDate, result.StartedAt, s.opts.Location)
	if days > s.opts.WindowDays {
		result.ProjectsSkipped++
		return
	}

	urgency := Classify(project.Name, days)

	tasks, err := s.loadTasks(ctx, project.ID)
	if err != nil {
		result.ProjectsFailed++
		logger.WithError(err).Error("reading project tasks failed, skipping project")
		return
	}

	link := notification.ProjectsLink
	created := 0
	for _, recipient := range domain.ProjectRecipients(project, tasks) {
		_, err := s.notifSvc.Create(ctx, domain.CreateNotificationInput{
			UserID:   recipient,
			Type:     domain.NotifDeadline,
			Title:    urgency.Title,
			Message:  urgency.Message,
			Link:     &link,
			Deadline: project.DueDate,
			Priority: urgency.Priority,
		})
		if err != nil {
			result.NotificationsFailed++
			logger.WithError(err).WithField("user", recipient).Error("creating deadline notification failed")
			continue
		}

		result.NotificationsCreated++
		created++
	}

	if created > 0 {
		result.ProjectsNotified++
	}
}

func (s *service) loadTasks(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error) {
	var lastErr error
	for attempt := 0; attempt <= s.opts.TaskRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.opts.RetryBackoff * time.Duration(attempt)):
			}
		}

		tasks, err := s.taskRepo.ListActiveByProject(ctx, projectID)
		if err == nil {
			return tasks, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *service) finish(ctx context.Context, result *domain.SweepResult, logger *log.Entry) {
	s.mu.Lock()
	last := *result
	s.last = &last
	s.mu.Unlock()

	if s.auditSvc != nil {
		s.auditSvc.Record(ctx, domain.CreateAuditLogInput{
			Action:     domain.AuditDeadlineSweep,
			EntityType: domain.EntitySweep,
			EntityID:   result.RunID,
			NewValue:   result,
		})
	}

	if s.archiver != nil {
		key, err := s.archiver.ArchiveSweep(ctx, result)
		if err != nil {
			logger.WithError(err).Warn("archiving sweep report failed")
		} else {
			logger.WithField("object", key).Debug("sweep report archived")
		}
	}

	logger.WithFields(log.Fields{
		"scanned":               result.ProjectsScanned,
		"notified":              result.ProjectsNotified,
		"skipped":               result.ProjectsSkipped,
		"failed":                result.ProjectsFailed,
		"notifications_created": result.NotificationsCreated,
		"notifications_failed":  result.NotificationsFailed,
		"interrupted":           result.Interrupted,
		"duration":              result.Duration(),
	}).Info("deadline sweep finished")
}
