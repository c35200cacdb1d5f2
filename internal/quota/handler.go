package quota

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hkts-backend/internal/audit"
	"hkts-backend/internal/auth"
	"hkts-backend/internal/database"
	"hkts-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateScrapRecordRequest struct {
	HarmonyRef   string `json:"harmony_ref"`
	KoliSayisi   int    `json:"koli_sayisi"`
	VardiyaAmiri string `json:"vardiya_amiri"`
	Depo         string `json:"depo"`
	FormSerial   string `json:"form_serial"`
}

type QuotaSummaryResponse struct {
	HarmonyRef string `json:"harmony_ref"`
	UsedMonth  int    `json:"used_month"`
	UsedYear   int    `json:"used_year"`
	Remaining  int    `json:"remaining"`
	MaxPerYear int    `json:"max_per_year"`
}

// GET /api/quota/:ref
// Koli Ver ekranındaki özet kutuları: bu ay, son 365 gün, kalan hak.
func QuotaSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := strings.TrimSpace(c.Params("ref"))
		if ref == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Harmony Ref zorunlu")
		}

		now := time.Now()

		usedYear, err := UsedLastYear(database.DB, ref, now)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kota hesaplanamadı")
		}
		usedMonth, err := UsedThisMonth(database.DB, ref, now)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kota hesaplanamadı")
		}

		remaining := MaxPerYear - usedYear
		if remaining < 0 {
			remaining = 0
		}

		return c.JSON(QuotaSummaryResponse{
			HarmonyRef: ref,
			UsedMonth:  usedMonth,
			UsedYear:   usedYear,
			Remaining:  remaining,
			MaxPerYear: MaxPerYear,
		})
	}
}

// GET /api/shift-leaders
// Koli Ver formundaki amir seçenekleri.
func ListShiftLeadersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var leaders []models.ShiftLeader
		if err := database.DB.Order("name").Find(&leaders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Amirler listelenemedi")
		}
		return c.JSON(leaders)
	}
}

// GET /api/warehouses
func ListWarehousesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var warehouses []models.Warehouse
		if err := database.DB.Order("name").Find(&warehouses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Depolar listelenemedi")
		}
		return c.JSON(warehouses)
	}
}

// POST /api/scrap-records
func CreateScrapRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateScrapRecordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.HarmonyRef = strings.TrimSpace(body.HarmonyRef)
		body.FormSerial = strings.TrimSpace(body.FormSerial)

		if body.HarmonyRef == "" || body.FormSerial == "" || body.VardiyaAmiri == "" || body.Depo == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Tüm alanlar zorunludur. Lütfen eksikleri tamamlayın.")
		}

		userID, username, role, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		// Amir hesabı kilidi: kullanıcı adı bilinen bir amire eşleşiyorsa
		// vardiya amiri alanı o amire sabitlenir ("admin" hariç).
		if role == models.RoleAdmin && username != "admin" {
			if leader := leaderForUsername(username); leader != "" {
				var count int64
				database.DB.Model(&models.ShiftLeader{}).Where("name = ?", leader).Count(&count)
				if count > 0 {
					body.VardiyaAmiri = leader
				}
			}
		}

		// Seçimler referans listelerinden gelmeli
		var leaderCount, depotCount int64
		database.DB.Model(&models.ShiftLeader{}).Where("name = ?", body.VardiyaAmiri).Count(&leaderCount)
		if leaderCount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz vardiya amiri")
		}
		database.DB.Model(&models.Warehouse{}).Where("name = ?", body.Depo).Count(&depotCount)
		if depotCount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz depo")
		}

		rec, err := Grant(database.DB, GrantInput{
			HarmonyRef:   body.HarmonyRef,
			KoliSayisi:   body.KoliSayisi,
			VardiyaAmiri: body.VardiyaAmiri,
			Depo:         body.Depo,
			FormSerial:   body.FormSerial,
			CreatedBy:    username,
		}, time.Now())
		if err != nil {
			var limitErr *LimitError
			if errors.As(err, &limitErr) {
				return fiber.NewError(fiber.StatusBadRequest, limitErr.Msg)
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıt oluşturulamadı")
		}

		audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			Username:    username,
			EntityType:  "scrap_record",
			EntityID:    rec.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s için %d koli verildi", rec.HarmonyRef, rec.KoliSayisi),
		})

		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}
