package audit

import (
	"hkts-backend/internal/database"
	"hkts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 1000 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := database.DB.
			Order("created_at DESC").
			Limit(limit).
			Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Loglar listelenemedi")
		}

		return c.JSON(logs)
	}
}
