package audit

import (
	"log"

	"hkts-backend/internal/database"
	"hkts-backend/internal/models"
)

type LogOptions struct {
	UserID      uint
	Username    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
}

// WriteLog: işlem izini yazar. İz kaydı asıl işlemi engellememeli; hata
// durumunda sadece loglanır.
func WriteLog(opts LogOptions) {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		Username:    opts.Username,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Audit log kaydedilemedi: %v", err)
	}
}
