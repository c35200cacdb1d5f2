package personnel

import (
	"errors"
	"fmt"
	"log"

	"hkts-backend/internal/audit"
	"hkts-backend/internal/auth"
	"hkts-backend/internal/database"
	"hkts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/personnel
func ListPersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var people []models.Personnel
		if err := database.DB.Order("harmony_ref").Find(&people).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personeller listelenemedi")
		}
		return c.JSON(people)
	}
}

// POST /api/personnel/import
// Multipart "file" alanında .xlsx bekler.
func ImportPersonnelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası (file) zorunlu")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya açılamadı")
		}
		defer file.Close()

		count, err := ImportWorkbook(database.DB, file)
		if err != nil {
			var missingErr *MissingColumnsError
			if errors.As(err, &missingErr) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":           missingErr.Error(),
					"missing_columns": missingErr.Columns,
				})
			}
			log.Printf("Personel import hatası: %v", err)
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Yükleme hatası: %v", err))
		}

		userID, username, _, authErr := auth.CurrentUser(c)
		if authErr == nil {
			audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				Username:    username,
				EntityType:  "personnel",
				Action:      models.AuditActionImport,
				Description: fmt.Sprintf("Excel yüklemesi: %d kişi", count),
			})
		}

		log.Printf("Personel yüklemesi tamamlandı: %d kişi (%s)", count, fileHeader.Filename)

		return c.JSON(fiber.Map{
			"upserted": count,
			"message":  fmt.Sprintf("Yükleme tamamlandı. Güncellenen/eklenen kişi sayısı: %d", count),
		})
	}
}
