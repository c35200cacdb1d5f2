package quota

import (
	"fmt"
	"time"

	"hkts-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// Tek seferde verilebilecek en fazla koli
	MaxPerGrant = 15
	// Son 365 günde bir personele verilebilecek toplam koli.
	// Takvim yılı değil, kayan pencere.
	MaxPerYear = 45
)

// LimitError: kota reddi. Koli verme akışında tek senkron karardır;
// çağıran daha küçük bir sayıyla tekrar deneyebilir.
type LimitError struct {
	Msg       string
	Remaining int
}

func (e *LimitError) Error() string { return e.Msg }

type GrantInput struct {
	HarmonyRef   string
	KoliSayisi   int
	VardiyaAmiri string
	Depo         string
	FormSerial   string
	CreatedBy    string
}

// UsedLastYear: son 365 gündeki koli toplamı. Kota kararı her zaman bu
// toplamın log'dan yeniden hesaplanmasıyla verilir, sayaç tutulmaz.
func UsedLastYear(db *gorm.DB, harmonyRef string, now time.Time) (int, error) {
	since := now.AddDate(0, 0, -365)

	var total int64
	err := db.Model(&models.ScrapRecord{}).
		Where("harmony_ref = ? AND created_at >= ?", harmonyRef, since).
		Select("COALESCE(SUM(koli_sayisi), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("yıllık toplam hesaplanamadı: %w", err)
	}
	return int(total), nil
}

// UsedThisMonth: içinde bulunulan takvim ayındaki toplam. Sadece ekranda
// gösterim içindir, kota kararına girmez.
func UsedThisMonth(db *gorm.DB, harmonyRef string, now time.Time) (int, error) {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	var total int64
	err := db.Model(&models.ScrapRecord{}).
		Where("harmony_ref = ? AND created_at >= ? AND created_at < ?", harmonyRef, monthStart, nextMonth).
		Select("COALESCE(SUM(koli_sayisi), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("aylık toplam hesaplanamadı: %w", err)
	}
	return int(total), nil
}

// Grant: kota kontrolü ve kayıt ekleme. Aynı Harmony Ref için eşzamanlı
// istekler ref bazlı kilitle sıralanır ve kontrol+ekleme tek transaction
// içinde çalışır; iki isteğin aynı anda kalan hakkı geçmesi mümkün değildir.
func Grant(db *gorm.DB, in GrantInput, now time.Time) (*models.ScrapRecord, error) {
	if in.KoliSayisi <= 0 {
		return nil, &LimitError{Msg: "Koli sayısı 1'den küçük olamaz."}
	}
	if in.KoliSayisi > MaxPerGrant {
		return nil, &LimitError{Msg: fmt.Sprintf("Tek seferde en fazla %d koli verilebilir.", MaxPerGrant)}
	}

	mu := lockFor(in.HarmonyRef)
	mu.Lock()
	defer mu.Unlock()

	var rec models.ScrapRecord

	err := db.Transaction(func(tx *gorm.DB) error {
		usedYear, err := UsedLastYear(tx, in.HarmonyRef, now)
		if err != nil {
			return err
		}

		remaining := MaxPerYear - usedYear
		if remaining <= 0 {
			return &LimitError{
				Msg:       fmt.Sprintf("Yıllık limit (%d) dolmuş. Yeni koli verilemez.", MaxPerYear),
				Remaining: 0,
			}
		}
		if in.KoliSayisi > remaining {
			return &LimitError{
				Msg:       fmt.Sprintf("Yıllık limit aşılıyor. Kalan hak: %d koli.", remaining),
				Remaining: remaining,
			}
		}

		// Kabul: önce personel minimal upsert (amir/depo son değerlere çekilir),
		// sonra kayıt eklenir.
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "harmony_ref"}},
			DoUpdates: clause.AssignmentColumns([]string{"vardiya_amiri", "depo"}),
		}).Create(&models.Personnel{
			HarmonyRef:   in.HarmonyRef,
			VardiyaAmiri: in.VardiyaAmiri,
			Depo:         in.Depo,
		}).Error; err != nil {
			return fmt.Errorf("personel güncellenemedi: %w", err)
		}

		rec = models.ScrapRecord{
			HarmonyRef:   in.HarmonyRef,
			KoliSayisi:   in.KoliSayisi,
			VardiyaAmiri: in.VardiyaAmiri,
			Depo:         in.Depo,
			FormSerial:   in.FormSerial,
			CreatedBy:    in.CreatedBy,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("kayıt eklenemedi: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &rec, nil
}
