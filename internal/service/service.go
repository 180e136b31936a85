package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"startask/internal/config"
	"startask/internal/repository"
	"startask/internal/service/audit"
	"startask/internal/service/auth"
	"startask/internal/service/deadline"
	"startask/internal/service/notification"
	"startask/internal/service/project"
	"startask/internal/service/report"
	"startask/internal/service/task"
)

type Services struct {
	Auth         auth.Service
	Audit        audit.Service
	Notification notification.Service
	Project      project.Service
	Task         task.Service
	Deadline     deadline.Service
	Report       report.Service

	// Scheduler is nil when the background sweep is disabled.
	Scheduler *deadline.Scheduler
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	authService := auth.NewService(cfg.JWTSecret)
	auditService := audit.NewService(repos.AuditLog)
	notificationService := notification.NewService(repos.Notification, redis)
	projectService := project.NewService(repos.Project, repos.Task, auditService, notificationService)
	taskService := task.NewService(repos.Task, projectService, auditService, notificationService)

	deadlineService := deadline.NewService(repos.Project, repos.Task, notificationService, auditService, deadline.Options{
		WindowDays:   cfg.Sweep.WindowDays,
		TaskRetries:  cfg.Sweep.TaskRetries,
		RetryBackoff: deadline.DefaultOptions().RetryBackoff,
		Timeout:      cfg.Sweep.Timeout,
		Location:     cfg.Sweep.Location(),
	})
	if redis != nil {
		deadlineService.SetLocker(deadline.NewRedisLocker(redis, cfg.Sweep.Timeout))
	}

	var reportService report.Service
	if minioClient != nil {
		reportService = report.NewService(minioClient, cfg.MinIOBucket)
		deadlineService.SetArchiver(reportService)
	}

	var scheduler *deadline.Scheduler
	if cfg.Sweep.Enabled {
		scheduler = deadline.NewScheduler(deadlineService, cfg.Sweep.Interval, cfg.Sweep.RunOnStart)
	}

	return &Services{
		Auth:         authService,
		Audit:        auditService,
		Notification: notificationService,
		Project:      projectService,
		Task:         taskService,
		Deadline:     deadlineService,
		Report:       reportService,
		Scheduler:    scheduler,
	}
}
