package personnel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hkts-backend/internal/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Haftalık personel listesi şablonunun sütun başlıkları. Birinin eksik
// olması tüm yüklemeyi iptal eder, hiçbir satır işlenmez.
var expectedColumns = []string{
	"Servis Lokasyonu", "Harmony Ref", "Kayıt No", "Adı", "Soyadı", "Görevi", "Telefon",
	"İş Telefonu", "Dahili", "İşe Giriş Tarihi", "İşten Çıkış", "Tarihi", "Güzergah",
	"Cadde", "Durak", "Adres", "ilçe", "Ana Süreç", "Detay Süreç", "Giriş Lokasyonu",
	"Çıkış Lokasyonu", "Beyaz Yaka", "Servis", "Ad Soyad",
}

// MissingColumnsError: eksik başlık listesi, şablondaki sırayla.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Eksik sütun(lar): %s", strings.Join(e.Columns, ", "))
}

// ImportWorkbook: xlsx içeriğini okur ve personel profillerini upsert eder.
// Harmony Ref'i boş satırlar sessizce atlanır. VardiyaAmiri ve Depo bu
// akıştan hiçbir zaman güncellenmez, onlar sadece koli verme akışında değişir.
// Yükleme ya bütün olarak işlenir ya da hiç: satırlardan biri yazılamazsa
// tamamı geri alınır ve 0 döner.
func ImportWorkbook(db *gorm.DB, r io.Reader) (int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return 0, fmt.Errorf("Excel dosyası açılamadı: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("sayfa okunamadı: %w", err)
	}
	if len(rows) == 0 {
		return 0, &MissingColumnsError{Columns: expectedColumns}
	}

	// Başlık satırı -> sütun indeksi
	colIndex := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range expectedColumns {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return 0, &MissingColumnsError{Columns: missing}
	}

	cell := func(row []string, column string) string {
		idx := colIndex[column]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	count := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows[1:] {
			ref := cell(row, "Harmony Ref")
			if ref == "" {
				continue
			}

			var beyazYaka *int
			if v := cell(row, "Beyaz Yaka"); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					beyazYaka = &n
				}
			}

			p := models.Personnel{
				HarmonyRef:       ref,
				KayitNo:          cell(row, "Kayıt No"),
				Adi:              cell(row, "Adı"),
				Soyadi:           cell(row, "Soyadı"),
				Gorevi:           cell(row, "Görevi"),
				Telefon:          cell(row, "Telefon"),
				IsTelefonu:       cell(row, "İş Telefonu"),
				Dahili:           cell(row, "Dahili"),
				IseGirisTarihi:   cell(row, "İşe Giriş Tarihi"),
				IstenCikisTarihi: cell(row, "İşten Çıkış"),
				Tarihi:           cell(row, "Tarihi"),
				Guzergah:         cell(row, "Güzergah"),
				Cadde:            cell(row, "Cadde"),
				Durak:            cell(row, "Durak"),
				Adres:            cell(row, "Adres"),
				Ilce:             cell(row, "ilçe"),
				AnaSurec:         cell(row, "Ana Süreç"),
				DetaySurec:       cell(row, "Detay Süreç"),
				GirisLokasyonu:   cell(row, "Giriş Lokasyonu"),
				CikisLokasyonu:   cell(row, "Çıkış Lokasyonu"),
				BeyazYaka:        beyazYaka,
				Servis:           cell(row, "Servis"),
				AdSoyad:          cell(row, "Ad Soyad"),
				ServisLokasyonu:  cell(row, "Servis Lokasyonu"),
			}

			err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "harmony_ref"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"kayit_no", "adi", "soyadi", "gorevi", "telefon", "is_telefonu", "dahili",
					"ise_giris_tarihi", "isten_cikis_tarihi", "tarihi", "guzergah", "cadde",
					"durak", "adres", "ilce", "ana_surec", "detay_surec", "giris_lokasyonu",
					"cikis_lokasyonu", "beyaz_yaka", "servis", "ad_soyad", "servis_lokasyonu",
				}),
			}).Create(&p).Error
			if err != nil {
				return fmt.Errorf("personel kaydedilemedi (%s): %w", ref, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		// Transaction geri alındı, hiçbir satır işlenmedi
		return 0, err
	}

	return count, nil
}
