package personnel

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"hkts-backend/internal/database"
	"hkts-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// buildWorkbook: başlık satırı header, altına rows yazılmış xlsx üretir.
func buildWorkbook(t *testing.T, header []string, rows [][]string) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			t.Fatal(err)
		}
	}
	for ri, row := range rows {
		for ci, v := range row {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return bytes.NewReader(buf.Bytes())
}

// rowFor: şablon sırasına göre satır üretir, sadece verilen kolonlar dolu.
func rowFor(values map[string]string) []string {
	row := make([]string, len(expectedColumns))
	for i, col := range expectedColumns {
		row[i] = values[col]
	}
	return row
}

func personnelCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.Personnel{}).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	return n
}

func TestImportMissingColumnAbortsWholeBatch(t *testing.T) {
	db := setupDB(t)

	// "Telefon" başlığı yok
	var header []string
	for _, c := range expectedColumns {
		if c == "Telefon" {
			continue
		}
		header = append(header, c)
	}

	r := buildWorkbook(t, header, [][]string{
		rowFor(map[string]string{"Harmony Ref": "HRM1", "Ad Soyad": "Ali Veli"}),
	})

	_, err := ImportWorkbook(db, r)
	var missingErr *MissingColumnsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("MissingColumnsError bekleniyordu, gelen: %v", err)
	}

	found := false
	for _, c := range missingErr.Columns {
		if c == "Telefon" {
			found = true
		}
	}
	if !found {
		t.Fatalf("eksik kolon listesi Telefon içermeli: %v", missingErr.Columns)
	}

	if n := personnelCount(t, db); n != 0 {
		t.Fatalf("iptal edilen yüklemede %d satır işlendi, 0 olmalı", n)
	}
}

func TestImportSkipsEmptyRefAndCountsUpserts(t *testing.T) {
	db := setupDB(t)

	r := buildWorkbook(t, expectedColumns, [][]string{
		rowFor(map[string]string{"Harmony Ref": "HRM1", "Adı": "Ali", "Soyadı": "Veli", "Ad Soyad": "Ali Veli", "Telefon": "555", "Beyaz Yaka": "1"}),
		rowFor(map[string]string{"Harmony Ref": "", "Ad Soyad": "Ref Yok"}),
		rowFor(map[string]string{"Harmony Ref": "HRM2", "Ad Soyad": "Ayşe Fatma", "ilçe": "Çayırova"}),
	})

	count, err := ImportWorkbook(db, r)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("upsert sayısı = %d, 2 bekleniyordu", count)
	}
	if n := personnelCount(t, db); n != 2 {
		t.Fatalf("personel sayısı = %d, 2 bekleniyordu", n)
	}

	var p models.Personnel
	if err := db.First(&p, "harmony_ref = ?", "HRM1").Error; err != nil {
		t.Fatal(err)
	}
	if p.AdSoyad != "Ali Veli" || p.Telefon != "555" {
		t.Fatalf("alanlar eksik yazıldı: %+v", p)
	}
	if p.BeyazYaka == nil || *p.BeyazYaka != 1 {
		t.Fatalf("beyaz_yaka = %v, 1 bekleniyordu", p.BeyazYaka)
	}
}

func TestImportRowFailureRollsBackWholeBatch(t *testing.T) {
	db := setupDB(t)

	// İkinci satırın insert'ini veritabanı seviyesinde patlat
	err := db.Exec(`CREATE TRIGGER abort_hrm2 BEFORE INSERT ON personnel
		WHEN NEW.harmony_ref = 'HRM2'
		BEGIN SELECT RAISE(ABORT, 'satır reddedildi'); END;`).Error
	if err != nil {
		t.Fatal(err)
	}

	r := buildWorkbook(t, expectedColumns, [][]string{
		rowFor(map[string]string{"Harmony Ref": "HRM1", "Ad Soyad": "Ali Veli"}),
		rowFor(map[string]string{"Harmony Ref": "HRM2", "Ad Soyad": "Ayşe Fatma"}),
	})

	count, err := ImportWorkbook(db, r)
	if err == nil {
		t.Fatal("satır hatası yüklemeyi durdurmalıydı")
	}
	if count != 0 {
		t.Fatalf("hatalı yükleme %d döndürdü, 0 olmalı", count)
	}
	if n := personnelCount(t, db); n != 0 {
		t.Fatalf("başarısız yükleme kısmi durum bıraktı: %d satır kaldı, 0 olmalı", n)
	}
}

func TestImportUpsertsWithoutTouchingGrantFields(t *testing.T) {
	db := setupDB(t)

	// Koli verme akışının yazdığı alanlar import'ta korunur
	seed := models.Personnel{HarmonyRef: "HRM1", AdSoyad: "Eski Ad", VardiyaAmiri: "Mesut Özel", Depo: "Lm Depo"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatal(err)
	}

	r := buildWorkbook(t, expectedColumns, [][]string{
		rowFor(map[string]string{"Harmony Ref": "HRM1", "Ad Soyad": "Yeni Ad", "Telefon": "111"}),
	})

	count, err := ImportWorkbook(db, r)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("upsert sayısı = %d, 1 bekleniyordu", count)
	}

	var p models.Personnel
	if err := db.First(&p, "harmony_ref = ?", "HRM1").Error; err != nil {
		t.Fatal(err)
	}
	if p.AdSoyad != "Yeni Ad" || p.Telefon != "111" {
		t.Fatalf("profil alanları güncellenmeliydi: %+v", p)
	}
	if p.VardiyaAmiri != "Mesut Özel" || p.Depo != "Lm Depo" {
		t.Fatalf("amir/depo import'ta değişmemeliydi: %+v", p)
	}
}
