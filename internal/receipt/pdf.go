package receipt

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"hkts-backend/internal/models"
)

// A6 fiş: üstte renkli başlık bandı, altında etiket-değer satırları.
// Makine tarafından okunmaz, sadece yazdırılır.
func BuildReceiptPDF(rec *models.ScrapRecord) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 105, Ht: 148}, // A6
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1254") // Türkçe karakterler

	pdf.AddPage()

	// Başlık bandı
	pdf.SetFillColor(30, 80, 255)
	pdf.Rect(0, 0, 105, 18, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(8, 6)
	pdf.CellFormat(0, 6, tr("LC Waikiki - Hurda Koli Fişi"), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(8, 26)

	lines := []struct {
		label string
		value string
	}{
		{"Form Seri No", rec.FormSerial},
		{"Tarih", rec.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Harmony Ref", rec.HarmonyRef},
		{"Koli Sayısı", strconv.Itoa(rec.KoliSayisi)},
		{"Vardiya Amiri", rec.VardiyaAmiri},
		{"Depo", rec.Depo},
		{"Kaydı Giren", orDash(rec.CreatedBy)},
	}

	y := 26.0
	for _, line := range lines {
		pdf.SetXY(8, y)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s: %s", line.label, line.value)), "", 1, "L", false, 0, "")
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetXY(8, y+2)
	pdf.CellFormat(0, 5, tr("Bu fiş sistem tarafından otomatik üretilmiştir."), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF üretilemedi: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
