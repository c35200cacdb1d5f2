package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"hkts-backend/internal/database"
)

// GET /api/scrap-records/export/csv
// Filtreli görünümün UTF-8 CSV hali.
func ExportCSVHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}

		rows, err := QueryRecords(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar alınamadı")
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)

		_ = w.Write([]string{"id", "Form Seri No", "Harmony Ref", "Ad Soyad", "Koli", "Vardiya Amiri", "Depo", "Oluşturma"})
		for _, r := range rows {
			_ = w.Write([]string{
				strconv.FormatUint(uint64(r.ID), 10),
				r.FormSerial,
				r.HarmonyRef,
				r.AdSoyad,
				strconv.Itoa(r.KoliSayisi),
				r.VardiyaAmiri,
				r.Depo,
				r.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "CSV oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="kayitlar.csv"`)
		return c.Send(buf.Bytes())
	}
}

// GET /api/reports/records
// Detay satırları + Amir x Depo kırılımı tek cevapta.
func ReportRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}

		rows, err := QueryRecords(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar alınamadı")
		}

		return c.JSON(fiber.Map{
			"records": rows,
			"pivot":   BuildPivot(rows),
		})
	}
}

// GET /api/reports/export/xlsx
// İki sayfalı Excel: "Detay" ham kayıtlar, "Kirilim" Amir x Depo tablosu.
func ExportXLSXHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := filterFromQuery(c)
		if err != nil {
			return err
		}

		rows, err := QueryRecords(database.DB, f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kayıtlar alınamadı")
		}

		buf, err := buildReportWorkbook(rows)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="HKTS_Rapor.xlsx"`)
		return c.Send(buf.Bytes())
	}
}

func buildReportWorkbook(rows []DetailRow) (*bytes.Buffer, error) {
	xf := excelize.NewFile()
	defer xf.Close()

	const detailSheet = "Detay"
	const pivotSheet = "Kirilim"

	if err := xf.SetSheetName(xf.GetSheetName(0), detailSheet); err != nil {
		return nil, err
	}
	if _, err := xf.NewSheet(pivotSheet); err != nil {
		return nil, err
	}

	detailHeaders := []string{"harmony_ref", "ad_soyad", "koli_sayisi", "vardiya_amiri", "depo", "form_serial", "created_at"}
	for i, h := range detailHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := xf.SetCellValue(detailSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for ri, r := range rows {
		values := []interface{}{
			r.HarmonyRef, r.AdSoyad, r.KoliSayisi, r.VardiyaAmiri, r.Depo, r.FormSerial,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for ci, v := range values {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err := xf.SetCellValue(detailSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	pivot := BuildPivot(rows)

	// Başlık satırı: sol üst köşe boş, sonra depolar + TOPLAM
	for i, colName := range pivot.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+2, 1)
		if err := xf.SetCellValue(pivotSheet, cell, colName); err != nil {
			return nil, err
		}
	}
	for ri, row := range pivot.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, ri+2)
		if err := xf.SetCellValue(pivotSheet, cell, row.Label); err != nil {
			return nil, err
		}
		for ci, v := range row.Values {
			cell, _ := excelize.CoordinatesToCellName(ci+2, ri+2)
			if err := xf.SetCellValue(pivotSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := xf.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("workbook yazılamadı: %w", err)
	}
	return buf, nil
}
