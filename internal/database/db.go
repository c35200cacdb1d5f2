package database

import (
	"log"

	"hkts-backend/internal/config"
	"hkts-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

// Seed verileri: vardiya amirleri ve depolar sabit listelerdir, yeni isim
// sadece buradan eklenir.
var seedShiftLeaders = []string{
	"Mesut Özel", "Serhan Atilla", "Erdal Adıgüzel Biçer", "Levent Şengül", "Fırat Küllü",
	"Özkan Kılıç", "Büşra Cici", "Cahit Altun", "Emrah Dubaz", "Halit Kaya",
	"Şenol Oğraş", "Barış Orhan", "Yusuf Sayan",
}

var seedWarehouses = []string{
	"Lm Depo", "Poyraz Depo", "Eroğlu Depo", "Titiz Depo", "Yalova Depo", "Aksaray Depo", "Yılmaz Depo",
}

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	if err := Seed(DB); err != nil {
		log.Fatalf("Seed hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Personnel{},
		&models.ScrapRecord{},
		&models.ShiftLeader{},
		&models.Warehouse{},
		&models.AuditLog{},
	)
}

// Seed: referans listeleri ve iki varsayılan hesabı ekler. Var olan kayıtlara
// dokunmaz, tekrar çalıştırmak güvenlidir.
func Seed(db *gorm.DB) error {
	for _, name := range seedShiftLeaders {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.ShiftLeader{Name: name}).Error; err != nil {
			return err
		}
	}

	for _, name := range seedWarehouses {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Warehouse{Name: name}).Error; err != nil {
			return err
		}
	}

	defaults := []struct {
		username string
		password string
		role     models.UserRole
	}{
		{"admin", "admin123", models.RoleAdmin},
		{"guvenlik", "guvenlik123", models.RoleSecurity},
	}

	for _, d := range defaults {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", d.username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := db.Create(&models.User{
			Username:     d.username,
			PasswordHash: string(hash),
			Role:         d.role,
		}).Error; err != nil {
			return err
		}
	}

	return nil
}
