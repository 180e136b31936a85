package handler

import (
	"github.com/gofiber/fiber/v2"

	"startask/internal/domain"
	"startask/internal/middleware"
	"startask/internal/service/project"
	"startask/internal/service/task"
)

type ProjectHandler struct {
	projectService project.Service
	taskService    task.Service
}

func NewProjectHandler(projectService project.Service, taskService task.Service) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.Context())
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusOK).JSON(projects)
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	p, err := h.projectService.GetByID(c.Context(), projectID)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.projectService.Create(c.Context(), *middleware.GetPrincipal(c), input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	var input domain.UpdateProjectInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	p, err := h.projectService.Update(c.Context(), *middleware.GetPrincipal(c), projectID, input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusOK).JSON(p)
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Context(), *middleware.GetPrincipal(c), projectID); err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *ProjectHandler) ListTasks(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByProject(c.Context(), projectID)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

func (h *ProjectHandler) CreateTask(c *fiber.Ctx) error {
	projectID, err := parseID(c, "id", "project")
	if err != nil {
		return err
	}

	var input domain.CreateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	t, err := h.taskService.Create(c.Context(), *middleware.GetPrincipal(c), projectID, input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}
