package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"startask/internal/middleware"
	"startask/internal/service/deadline"
)

type SweepHandler struct {
	deadlineService deadline.Service
	scheduler       *deadline.Scheduler
}

// NewSweepHandler takes the scheduler of the running process, or nil when
// the background sweep is disabled.
func NewSweepHandler(deadlineService deadline.Service, scheduler *deadline.Scheduler) *SweepHandler {
	return &SweepHandler{deadlineService: deadlineService, scheduler: scheduler}
}

// Run executes a sweep and returns its result. With ?async=true and a
// running scheduler, the sweep is queued instead.
func (h *SweepHandler) Run(c *fiber.Ctx) error {
	if c.QueryBool("async") && h.scheduler != nil {
		h.scheduler.Trigger()
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"queued": true})
	}

	result, err := h.deadlineService.RunSweep(c.Context())
	if errors.Is(err, deadline.ErrSweepInProgress) {
		return middleware.Conflict("A deadline sweep is already running")
	}
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SweepHandler) Last(c *fiber.Ctx) error {
	result := h.deadlineService.LastResult()
	if result == nil {
		return middleware.NotFound("No deadline sweep has run yet")
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
