package report

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"hkts-backend/internal/database"
	"hkts-backend/internal/models"
)

type DashboardSummaryResponse struct {
	TotalKoli      int   `json:"total_koli"`
	PersonnelCount int64 `json:"personnel_count"`
	RecordCount    int64 `json:"record_count"`
}

type BreakdownItem struct {
	Label string `gorm:"column:grp" json:"label"`
	Koli  int    `gorm:"column:toplam" json:"koli"`
}

type MonthlyStatItem struct {
	Ay     string `json:"ay"` // "2025-09"
	Toplam int    `json:"toplam"`
}

// GET /api/dashboard/summary
func DashboardSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var totalKoli int64
		if err := database.DB.Model(&models.ScrapRecord{}).
			Select("COALESCE(SUM(koli_sayisi), 0)").
			Scan(&totalKoli).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		var personnelCount, recordCount int64
		if err := database.DB.Model(&models.Personnel{}).Count(&personnelCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}
		if err := database.DB.Model(&models.ScrapRecord{}).Count(&recordCount).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Özet hesaplanamadı")
		}

		return c.JSON(DashboardSummaryResponse{
			TotalKoli:      int(totalKoli),
			PersonnelCount: personnelCount,
			RecordCount:    recordCount,
		})
	}
}

// GET /api/dashboard/breakdown?by=vardiya_amiri|depo
// Son 365 gün kırılımı; pencere tanımı kota motoruyla aynıdır.
func BreakdownHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		by := c.Query("by", "vardiya_amiri")

		var field string
		switch by {
		case "vardiya_amiri":
			field = "vardiya_amiri"
		case "depo":
			field = "depo"
		default:
			return fiber.NewError(fiber.StatusBadRequest, "by parametresi vardiya_amiri veya depo olmalı")
		}

		since := time.Now().AddDate(0, 0, -365)

		var items []BreakdownItem
		q := `
			SELECT COALESCE(` + field + `, '(Belirtilmedi)') AS grp, SUM(koli_sayisi) AS toplam
			FROM scrap_records
			WHERE created_at >= ?
			GROUP BY COALESCE(` + field + `, '(Belirtilmedi)')
			ORDER BY toplam DESC`
		if err := database.DB.Raw(q, since).Scan(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kırılım hesaplanamadı")
		}

		return c.JSON(fiber.Map{
			"by":    by,
			"since": since.Format("2006-01-02"),
			"items": items,
		})
	}
}

// GET /api/stats/monthly
// Aylık toplamlar, yeni ay başta. Ay kovası Go tarafında üretilir ki
// Postgres ve sqlite aynı sonucu versin.
func MonthlyStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		type recRow struct {
			KoliSayisi int       `gorm:"column:koli_sayisi"`
			CreatedAt  time.Time `gorm:"column:created_at"`
		}

		var rows []recRow
		if err := database.DB.Model(&models.ScrapRecord{}).
			Select("koli_sayisi, created_at").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İstatistikler hesaplanamadı")
		}

		sums := make(map[string]int)
		for _, r := range rows {
			sums[r.CreatedAt.Format("2006-01")] += r.KoliSayisi
		}

		months := make([]string, 0, len(sums))
		for m := range sums {
			months = append(months, m)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(months)))

		items := make([]MonthlyStatItem, 0, len(months))
		for _, m := range months {
			items = append(items, MonthlyStatItem{Ay: m, Toplam: sums[m]})
		}

		return c.JSON(items)
	}
}
