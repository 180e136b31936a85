package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"startask/internal/domain"
	"startask/internal/middleware"
	"startask/internal/repository"
)

// mapError turns service errors into HTTP errors for the central handler.
func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound), errors.Is(err, domain.ErrTaskNotFound):
		return middleware.NotFound(err.Error())
	case errors.Is(err, domain.ErrInvalidProject), errors.Is(err, domain.ErrInvalidTask):
		return middleware.BadRequest(err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return middleware.Forbidden("Insufficient permissions for this operation")
	case errors.Is(err, repository.ErrStorageUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Storage unavailable")
	default:
		return err
	}
}

func parseID(c *fiber.Ctx, param, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}
