package receipt

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"hkts-backend/internal/database"
	"hkts-backend/internal/models"
)

// GET /api/scrap-records/:id/receipt
// Fiş istenildiği kadar tekrar indirilebilir; kayıt değişmediği için
// içerik her seferinde aynıdır.
func ReceiptHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kayıt id")
		}

		var rec models.ScrapRecord
		if err := database.DB.First(&rec, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kayıt bulunamadı")
		}

		pdfBytes, err := BuildReceiptPDF(&rec)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fiş oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="HKTS_FIS_%d.pdf"`, rec.ID))
		return c.Send(pdfBytes)
	}
}
