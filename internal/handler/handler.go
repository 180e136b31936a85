package handler

import "startask/internal/service"

type Handlers struct {
	Notification *NotificationHandler
	Sweep        *SweepHandler
	Project      *ProjectHandler
	Task         *TaskHandler
	Audit        *AuditHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Notification: NewNotificationHandler(services.Notification),
		Sweep:        NewSweepHandler(services.Deadline, services.Scheduler),
		Project:      NewProjectHandler(services.Project, services.Task),
		Task:         NewTaskHandler(services.Task),
		Audit:        NewAuditHandler(services.Audit),
	}
}
