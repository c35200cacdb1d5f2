package quota

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"hkts-backend/internal/database"
	"hkts-backend/internal/models"

	"github.com/glebarez/sqlite"
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

func grantInput(ref string, koli int) GrantInput {
	return GrantInput{
		HarmonyRef:   ref,
		KoliSayisi:   koli,
		VardiyaAmiri: "Mesut Özel",
		Depo:         "Lm Depo",
		FormSerial:   "FSN-2025-000123",
		CreatedBy:    "admin",
	}
}

func recordCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.ScrapRecord{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestGrantScenario(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	// Geçmişi olmayan personel: 10 koli kabul edilir
	if _, err := Grant(db, grantInput("HRM1", 10), now); err != nil {
		t.Fatalf("ilk 10 koli kabul edilmeliydi: %v", err)
	}
	used, err := UsedLastYear(db, "HRM1", now)
	if err != nil {
		t.Fatal(err)
	}
	if used != 10 {
		t.Fatalf("used = %d, 10 bekleniyordu", used)
	}

	// İkinci 10 koli de kabul edilir, kalan 25
	if _, err := Grant(db, grantInput("HRM1", 10), now); err != nil {
		t.Fatalf("ikinci 10 koli kabul edilmeliydi: %v", err)
	}

	// 40 koli kalan hakkı aşar
	_, err = Grant(db, grantInput("HRM1", 40), now)
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("LimitError bekleniyordu, gelen: %v", err)
	}
	if limitErr.Remaining != 25 {
		t.Fatalf("kalan hak = %d, 25 bekleniyordu", limitErr.Remaining)
	}
	if limitErr.Msg != "Yıllık limit aşılıyor. Kalan hak: 25 koli." {
		t.Fatalf("beklenmeyen mesaj: %q", limitErr.Msg)
	}

	// 16 koli kalan haktan bağımsız olarak tek sefer limitine takılır
	_, err = Grant(db, grantInput("HRM1", 16), now)
	if !errors.As(err, &limitErr) {
		t.Fatalf("LimitError bekleniyordu, gelen: %v", err)
	}
	if limitErr.Msg != "Tek seferde en fazla 15 koli verilebilir." {
		t.Fatalf("beklenmeyen mesaj: %q", limitErr.Msg)
	}
}

func TestGrantSingleTransactionCapWithoutHistory(t *testing.T) {
	db := setupDB(t)

	_, err := Grant(db, grantInput("HRM2", 16), time.Now())
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("LimitError bekleniyordu, gelen: %v", err)
	}
	if n := recordCount(t, db); n != 0 {
		t.Fatalf("ret sonrası kayıt sayısı %d, 0 olmalı", n)
	}
}

func TestGrantRejectsNonPositiveCount(t *testing.T) {
	db := setupDB(t)

	for _, koli := range []int{0, -3} {
		if _, err := Grant(db, grantInput("HRM3", koli), time.Now()); err == nil {
			t.Fatalf("koli=%d kabul edilmemeliydi", koli)
		}
	}
	if n := recordCount(t, db); n != 0 {
		t.Fatalf("ret sonrası kayıt sayısı %d, 0 olmalı", n)
	}
}

func TestGrantAnnualCapExhausted(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if _, err := Grant(db, grantInput("HRM4", 15), now); err != nil {
			t.Fatalf("grant %d: %v", i, err)
		}
	}

	_, err := Grant(db, grantInput("HRM4", 1), now)
	var limitErr *LimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("LimitError bekleniyordu, gelen: %v", err)
	}
	if limitErr.Msg != "Yıllık limit (45) dolmuş. Yeni koli verilemez." {
		t.Fatalf("beklenmeyen mesaj: %q", limitErr.Msg)
	}
	if limitErr.Remaining != 0 {
		t.Fatalf("kalan hak = %d, 0 bekleniyordu", limitErr.Remaining)
	}
}

func TestRejectionLeavesQuotaUnchanged(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	if _, err := Grant(db, grantInput("HRM5", 12), now); err != nil {
		t.Fatal(err)
	}
	before := recordCount(t, db)

	if _, err := Grant(db, grantInput("HRM5", 40), now); err == nil {
		t.Fatal("40 koli reddedilmeliydi")
	}

	if after := recordCount(t, db); after != before {
		t.Fatalf("ret kayıt ekledi: %d -> %d", before, after)
	}
	used, err := UsedLastYear(db, "HRM5", now)
	if err != nil {
		t.Fatal(err)
	}
	if used != 12 {
		t.Fatalf("used = %d, 12 bekleniyordu", used)
	}
}

func TestTrailingWindowExcludesOldRecords(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	// 366 gün önceki kayıt pencere dışında kalır
	old := models.ScrapRecord{
		HarmonyRef:   "HRM6",
		KoliSayisi:   45,
		VardiyaAmiri: "Mesut Özel",
		Depo:         "Lm Depo",
		FormSerial:   "FSN-ESKI",
		CreatedAt:    now.AddDate(0, 0, -366),
	}
	if err := db.Create(&old).Error; err != nil {
		t.Fatal(err)
	}

	used, err := UsedLastYear(db, "HRM6", now)
	if err != nil {
		t.Fatal(err)
	}
	if used != 0 {
		t.Fatalf("pencere dışı kayıt toplanmamalıydı, used = %d", used)
	}

	if _, err := Grant(db, grantInput("HRM6", 15), now); err != nil {
		t.Fatalf("eski kayıt varken 15 koli kabul edilmeliydi: %v", err)
	}
}

func TestUsedThisMonthIsCalendarBound(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	lastMonth := models.ScrapRecord{
		HarmonyRef: "HRM7", KoliSayisi: 5,
		VardiyaAmiri: "Mesut Özel", Depo: "Lm Depo", FormSerial: "FSN-1",
		CreatedAt: now.AddDate(0, -1, 0),
	}
	thisMonth := models.ScrapRecord{
		HarmonyRef: "HRM7", KoliSayisi: 3,
		VardiyaAmiri: "Mesut Özel", Depo: "Lm Depo", FormSerial: "FSN-2",
		CreatedAt: time.Date(now.Year(), now.Month(), 1, 12, 0, 0, 0, now.Location()),
	}
	if err := db.Create(&lastMonth).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&thisMonth).Error; err != nil {
		t.Fatal(err)
	}

	used, err := UsedThisMonth(db, "HRM7", now)
	if err != nil {
		t.Fatal(err)
	}
	if used != 3 {
		t.Fatalf("bu ay = %d, 3 bekleniyordu", used)
	}
}

func TestGrantRoundTrip(t *testing.T) {
	db := setupDB(t)

	in := GrantInput{
		HarmonyRef:   "HRM8",
		KoliSayisi:   7,
		VardiyaAmiri: "Büşra Cici",
		Depo:         "Poyraz Depo",
		FormSerial:   "FSN-2025-000777",
		CreatedBy:    "mesut.ozel",
	}
	rec, err := Grant(db, in, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	var got models.ScrapRecord
	if err := db.First(&got, rec.ID).Error; err != nil {
		t.Fatal(err)
	}

	if got.HarmonyRef != in.HarmonyRef || got.KoliSayisi != in.KoliSayisi ||
		got.VardiyaAmiri != in.VardiyaAmiri || got.Depo != in.Depo ||
		got.FormSerial != in.FormSerial || got.CreatedBy != in.CreatedBy {
		t.Fatalf("geri okunan kayıt eşleşmiyor: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at sunucu tarafında atanmalıydı")
	}
}

func TestGrantUpsertsPersonnelMinimal(t *testing.T) {
	db := setupDB(t)
	now := time.Now()

	// Önceden import edilmiş profil alanları koli verme akışında bozulmamalı
	seed := models.Personnel{HarmonyRef: "HRM9", AdSoyad: "Ali Veli", Telefon: "5550001122"}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := Grant(db, grantInput("HRM9", 4), now); err != nil {
		t.Fatal(err)
	}

	var p models.Personnel
	if err := db.First(&p, "harmony_ref = ?", "HRM9").Error; err != nil {
		t.Fatal(err)
	}
	if p.VardiyaAmiri != "Mesut Özel" || p.Depo != "Lm Depo" {
		t.Fatalf("amir/depo güncellenmedi: %+v", p)
	}
	if p.AdSoyad != "Ali Veli" || p.Telefon != "5550001122" {
		t.Fatalf("profil alanları korunmalıydı: %+v", p)
	}

	// İkinci teslimde son değerler yazılır
	in := grantInput("HRM9", 2)
	in.Depo = "Poyraz Depo"
	if _, err := Grant(db, in, now); err != nil {
		t.Fatal(err)
	}
	if err := db.First(&p, "harmony_ref = ?", "HRM9").Error; err != nil {
		t.Fatal(err)
	}
	if p.Depo != "Poyraz Depo" {
		t.Fatalf("depo son değere çekilmeliydi: %+v", p)
	}
}
