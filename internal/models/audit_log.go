package models

import "time"

type AuditAction string

const (
	AuditActionLogin         AuditAction = "login"
	AuditActionCreate        AuditAction = "create"
	AuditActionImport        AuditAction = "import"
	AuditActionPasswordReset AuditAction = "password_reset"
)

// AuditLog: sadece eklenen işlem izi. Koli kayıtları değiştirilemediği için
// geri alma akışı yoktur.
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   uint   `json:"user_id"`
	Username string `gorm:"size:100" json:"username"` // Kullanıcı adı (denormalize)

	// Hangi entity? (ör: "scrap_record", "personnel", "user")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`
}
