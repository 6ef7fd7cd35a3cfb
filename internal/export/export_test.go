package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"zakatku/internal/core"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleRecords() []core.Record {
	now := time.Date(2024, 4, 8, 9, 0, 0, 0, time.UTC)
	drafts := []core.Draft{
		{
			Penginput: "Admin",
			Tanggal:   "2024-04-08",
			Nama:      "Budi",
			Alamat:    "Jl. Melati No. 3",
			ZakatFitrah: core.ZakatFitrah{
				JiwaBeras: 4,
				BerasKg:   dec("10"),
			},
			ZakatMaal: 250000,
		},
		{
			Penginput: "Petugas 1",
			Tanggal:   "2024-04-09",
			Nama:      "Siti",
			ZakatFitrah: core.ZakatFitrah{
				JiwaUang: 2,
				Uang:     75000,
			},
			Infaq: core.Infaq{Beras: dec("1.5"), Uang: 20000},
		},
	}
	out := make([]core.Record, len(drafts))
	for i, d := range drafts {
		out[i] = core.NewRecord("id-"+d.Nama, d, now)
	}
	return out
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	if rows[0][0] != "No" || rows[0][1] != "Penginput" || rows[0][15] != "Total Uang" {
		t.Fatalf("header = %v", rows[0])
	}

	first := rows[1]
	if first[0] != "1" || first[3] != "Budi" || first[6] != "10" || first[9] != "250000" {
		t.Fatalf("first row = %v", first)
	}
	if first[14] != "10" || first[15] != "250000" {
		t.Fatalf("first row totals = %v %v", first[14], first[15])
	}

	second := rows[2]
	if second[10] != "1.5" || second[15] != "95000" {
		t.Fatalf("second row = %v", second)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("empty export must still carry the header, got %d rows", len(rows))
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecords()); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != recordsSheet || sheets[1] != reportSheet {
		t.Fatalf("sheets = %v", sheets)
	}

	nama, err := f.GetCellValue(recordsSheet, "D2")
	if err != nil || nama != "Budi" {
		t.Fatalf("D2 = %q, err %v", nama, err)
	}

	// Report sheet: two day rows plus totals.
	tanggal, _ := f.GetCellValue(reportSheet, "A2")
	if tanggal != "2024-04-08" {
		t.Fatalf("report A2 = %q", tanggal)
	}
	label, _ := f.GetCellValue(reportSheet, "A4")
	if label != "Total" {
		t.Fatalf("report A4 = %q", label)
	}
	totalUang, _ := f.GetCellValue(reportSheet, "L4")
	if totalUang != "345000" {
		t.Fatalf("report total uang = %q", totalUang)
	}
}
