package main

import (
	"log"
	"strings"

	"hkts-backend/internal/audit"
	"hkts-backend/internal/auth"
	"hkts-backend/internal/config"
	"hkts-backend/internal/database"
	"hkts-backend/internal/models"
	"hkts-backend/internal/personnel"
	"hkts-backend/internal/quota"
	"hkts-backend/internal/receipt"
	"hkts-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/register", auth.RegisterHandler())
	api.Post("/auth/reset-password", auth.ResetPasswordHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Filtreli kayıt görünümü — güvenlik rolünün görebildiği tek modül
	protected.Get("/scrap-records", report.ListRecordsHandler())

	// Yetkili (admin) route'ları
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Koli verme / kota
	adminRoutes.Get("/quota/:ref", quota.QuotaSummaryHandler())
	adminRoutes.Post("/scrap-records", quota.CreateScrapRecordHandler())
	adminRoutes.Get("/shift-leaders", quota.ListShiftLeadersHandler())
	adminRoutes.Get("/warehouses", quota.ListWarehousesHandler())

	// Dışa aktarma ve fiş (export/csv, :id/receipt'ten önce kayıtlı olmalı)
	adminRoutes.Get("/scrap-records/export/csv", report.ExportCSVHandler())
	adminRoutes.Get("/scrap-records/:id/receipt", receipt.ReceiptHandler())

	// Personel
	adminRoutes.Get("/personnel", personnel.ListPersonnelHandler())
	adminRoutes.Post("/personnel/import", personnel.ImportPersonnelHandler())

	// Raporlar
	adminRoutes.Get("/reports/records", report.ReportRecordsHandler())
	adminRoutes.Get("/reports/export/xlsx", report.ExportXLSXHandler())

	// Dashboard & istatistikler
	adminRoutes.Get("/dashboard/summary", report.DashboardSummaryHandler())
	adminRoutes.Get("/dashboard/breakdown", report.BreakdownHandler())
	adminRoutes.Get("/stats/monthly", report.MonthlyStatsHandler())

	// Audit logs
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
