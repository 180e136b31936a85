package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"startask/internal/domain"
	"startask/internal/service/auth"
)

const (
	PrincipalContextKey = "principal"
	UserIDContextKey    = "user_id"
)

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		principal := claims.Principal()
		c.Locals(PrincipalContextKey, &principal)
		c.Locals(UserIDContextKey, principal.UserID)

		return c.Next()
	}
}

func GetPrincipal(c *fiber.Ctx) *domain.Principal {
	principal, ok := c.Locals(PrincipalContextKey).(*domain.Principal)
	if !ok {
		return nil
	}
	return principal
}

func GetCurrentUserID(c *fiber.Ctx) uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
