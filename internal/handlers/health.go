package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/petra/fitsquad/internal/database"
)

// Health reports liveness, including a database ping.
func Health(c *fiber.Ctx) error {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database connection failed",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "fitsquad",
	})
}
