package report

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"

	"hkts-backend/internal/database"
)

// DetailRow: kayıt listesi ve rapor detayındaki satır; ad_soyad personel
// tablosundan join ile gelir, kişi hiç import edilmediyse boş kalır.
type DetailRow struct {
	ID           uint      `gorm:"column:id" json:"id"`
	FormSerial   string    `gorm:"column:form_serial" json:"form_serial"`
	HarmonyRef   string    `gorm:"column:harmony_ref" json:"harmony_ref"`
	AdSoyad      string    `gorm:"column:ad_soyad" json:"ad_soyad"`
	KoliSayisi   int       `gorm:"column:koli_sayisi" json:"koli_sayisi"`
	VardiyaAmiri string    `gorm:"column:vardiya_amiri" json:"vardiya_amiri"`
	Depo         string    `gorm:"column:depo" json:"depo"`
	CreatedBy    string    `gorm:"column:created_by" json:"created_by"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

// RecordFilter: boş alan "hepsi" demektir. Ref/Amir/Depo substring arar,
// Leaders/Depots tam eşleşme listesidir, tarih aralığı gün bazında ve
// bitiş günü dahildir.
type RecordFilter struct {
	Ref     string
	Amir    string
	Depo    string
	Leaders []string
	Depots  []string
	From    *time.Time
	To      *time.Time
}

const detailSelect = `
SELECT r.id, r.form_serial, r.harmony_ref, COALESCE(p.ad_soyad, '') AS ad_soyad,
       r.koli_sayisi, r.vardiya_amiri, r.depo, r.created_by, r.created_at
FROM scrap_records r
LEFT JOIN personnel p ON p.harmony_ref = r.harmony_ref
WHERE 1=1`

// QueryRecords: filtreye uyan kayıtları yeniye göre sıralı döner.
func QueryRecords(db *gorm.DB, f RecordFilter) ([]DetailRow, error) {
	q := detailSelect
	var args []interface{}

	if f.Ref != "" {
		q += " AND r.harmony_ref LIKE ?"
		args = append(args, "%"+f.Ref+"%")
	}
	if f.Amir != "" {
		q += " AND r.vardiya_amiri LIKE ?"
		args = append(args, "%"+f.Amir+"%")
	}
	if f.Depo != "" {
		q += " AND r.depo LIKE ?"
		args = append(args, "%"+f.Depo+"%")
	}
	if len(f.Leaders) > 0 {
		q += " AND r.vardiya_amiri IN ?"
		args = append(args, f.Leaders)
	}
	if len(f.Depots) > 0 {
		q += " AND r.depo IN ?"
		args = append(args, f.Depots)
	}
	if f.From != nil {
		q += " AND r.created_at >= ?"
		args = append(args, *f.From)
	}
	if f.To != nil {
		// bitiş gününün sonuna kadar dahil
		q += " AND r.created_at < ?"
		args = append(args, f.To.AddDate(0, 0, 1))
	}

	q += " ORDER BY r.created_at DESC, r.id DESC"

	var rows []DetailRow
	if err := db.Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func filterFromQuery(c *fiber.Ctx) (RecordFilter, error) {
	f := RecordFilter{
		Ref:     strings.TrimSpace(c.Query("ref")),
		Amir:    strings.TrimSpace(c.Query("amir")),
		Depo:    strings.TrimSpace(c.Query("depo")),
		Leaders: splitList(c.Query("leaders")),
		Depots:  splitList(c.Query("depots")),
	}

	from, err := parseDay(c.Query("from"))
	if err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "from tarihi geçersiz (YYYY-MM-DD)")
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "to tarihi geçersiz (YYYY-MM-DD)")
	}
	f.From = from
	f.To = to
	return f, nil
}

// GET /api/scrap-records?ref=&amir=&depo=&from=&to=
// Güvenlik rolünün görebildiği tek ekran budur.
func ListRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}

		rows, err := QueryRecords(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar listelenemedi")
		}

		return c.JSON(rows)
	}
}
