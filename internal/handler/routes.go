package handler

import (
	"github.com/gofiber/fiber/v2"

	"startask/internal/domain"
	"startask/internal/middleware"
	"startask/internal/service/auth"
)

func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	protected := v1.Group("", middleware.AuthRequired(authService))
	managers := middleware.RequireRole(domain.RoleLeader)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Post("/read-all", h.Notification.MarkAllAsRead)
	notifications.Post("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	sweeps := protected.Group("/sweeps")
	sweeps.Post("/deadline", managers, h.Sweep.Run)
	sweeps.Get("/deadline/last", managers, h.Sweep.Last)

	projects := protected.Group("/projects")
	projects.Get("/", h.Project.List)
	projects.Post("/", managers, h.Project.Create)
	projects.Get("/:id", h.Project.Get)
	projects.Put("/:id", managers, h.Project.Update)
	projects.Delete("/:id", managers, h.Project.Delete)
	projects.Get("/:id/tasks", h.Project.ListTasks)
	projects.Post("/:id/tasks", managers, h.Project.CreateTask)

	tasks := protected.Group("/tasks")
	tasks.Put("/:id", managers, h.Task.Update)
	tasks.Patch("/:id/status", h.Task.UpdateStatus)
	tasks.Delete("/:id", managers, h.Task.Delete)

	audit := protected.Group("/audit")
	audit.Get("/recent", middleware.RequireAnyRole(domain.RoleAdmin), h.Audit.GetRecentActivities)
}
