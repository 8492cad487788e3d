package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ssvp-lar/ilpi-backend/internal/dto"
)

// ManagementRequired gates user and institution administration. Every
// account currently carries the gerencial level; the check exists so that
// restricted levels can be introduced without touching the routes.
func ManagementRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentAccessLevel(c) != "gerencial" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Acesso gerencial necessário",
			})
		}
		return c.Next()
	}
}
