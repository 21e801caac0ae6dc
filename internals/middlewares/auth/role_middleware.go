package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"dsr_faste_backend/internals/constants"
	helperAuth "dsr_faste_backend/internals/helpers/auth"
)

// OnlyRoles: lanjut hanya jika role aktor termasuk roles.
func OnlyRoles(customMessage string, roles ...constants.Role) fiber.Handler {
	if customMessage == "" {
		customMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		actor, err := helperAuth.GetActor(c)
		if err != nil {
			return err
		}
		if actor.Is(roles...) {
			return c.Next()
		}
		log.Printf("[WARNING] Role %s ditolak di %s %s", actor.Role, c.Method(), c.Path())
		return fiber.NewError(fiber.StatusForbidden, customMessage)
	}
}
