package handler

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"startask/internal/domain"
	"startask/internal/middleware"
	"startask/internal/service/notification"
)

// NotificationHandler serves the caller's own inbox. Read endpoints degrade
// to empty results on storage failure and mutations report {"success": bool}.
type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	limit := c.QueryInt("limit", domain.DefaultNotificationLimit)

	notifications, err := h.notifService.List(c.Context(), userID, limit)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("listing notifications failed")
		notifications = []domain.Notification{}
	}

	return c.Status(fiber.StatusOK).JSON(notifications)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notifService.GetUnreadCount(c.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("counting unread notifications failed")
		count = 0
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"count": count,
	})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	notifID, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	ok, err := h.notifService.MarkAsRead(c.Context(), notifID, userID)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("marking notification read failed")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": ok && err == nil})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	err := h.notifService.MarkAllAsRead(c.Context(), userID)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("marking all notifications read failed")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": err == nil})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	notifID, err := parseID(c, "id", "notification")
	if err != nil {
		return err
	}
	userID := middleware.GetCurrentUserID(c)

	ok, err := h.notifService.Delete(c.Context(), notifID, userID)
	if err != nil {
		log.WithError(err).WithField("user", userID).Error("deleting notification failed")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": ok && err == nil})
}
