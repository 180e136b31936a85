package handler

import (
	"github.com/gofiber/fiber/v2"

	"startask/internal/domain"
	"startask/internal/middleware"
	"startask/internal/service/task"
)

type TaskHandler struct {
	taskService task.Service
}

func NewTaskHandler(taskService task.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id", "task")
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Context(), *middleware.GetPrincipal(c), taskID); err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id", "task")
	if err != nil {
		return err
	}

	var input domain.UpdateTaskInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	t, err := h.taskService.Update(c.Context(), *middleware.GetPrincipal(c), taskID, input)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	taskID, err := parseID(c, "id", "task")
	if err != nil {
		return err
	}

	var input domain.UpdateTaskStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	t, err := h.taskService.UpdateStatus(c.Context(), *middleware.GetPrincipal(c), taskID, input.Status)
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}
