package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck answers liveness probes.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
