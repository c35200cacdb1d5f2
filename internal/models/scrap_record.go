package models

import "time"

// ScrapRecord: tek seferlik hurda koli teslimi. Oluşturulduktan sonra
// değiştirilemez ve silinemez; kota hesapları her zaman bu log üzerinden
// yeniden toplanır.
type ScrapRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	HarmonyRef   string    `gorm:"size:50;index;not null" json:"harmony_ref"`
	KoliSayisi   int       `gorm:"not null" json:"koli_sayisi"`
	VardiyaAmiri string    `gorm:"size:100;not null" json:"vardiya_amiri"`
	Depo         string    `gorm:"size:100;not null" json:"depo"`
	FormSerial   string    `gorm:"size:100;not null" json:"form_serial"`
	CreatedBy    string    `gorm:"size:100" json:"created_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}
