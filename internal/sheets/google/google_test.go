package google

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"zakatku/internal/core"
)

func TestRowIndexOf(t *testing.T) {
	ids := []string{"a", "", "b", "c"}

	tests := []struct {
		id   string
		want int
	}{
		{"a", 2},
		{"b", 4},
		{"c", 5},
		{"missing", -1},
		{"", 3}, // cleared row
	}

	for _, tt := range tests {
		if got := rowIndexOf(ids, tt.id); got != tt.want {
			t.Errorf("rowIndexOf(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestRecordRow(t *testing.T) {
	rec := core.Record{
		Draft: core.Draft{
			Penginput: "Admin",
			Tanggal:   "2024-04-08",
			Nama:      "Budi",
			Alamat:    "Jl. Melati No. 3",
			ZakatFitrah: core.ZakatFitrah{
				JiwaBeras: 4,
				BerasKg:   decimal.NewFromInt(10),
			},
			ZakatMaal: 250000,
		},
		ID:         "abc-123",
		TotalBeras: decimal.NewFromInt(10),
		TotalUang:  250000,
		UpdatedAt:  time.Date(2024, 4, 8, 9, 30, 0, 0, time.UTC),
	}

	row := recordRow(rec, 3)

	if len(row) != len(headerRow) {
		t.Fatalf("row width = %d, header width = %d", len(row), len(headerRow))
	}
	if row[0] != "abc-123" {
		t.Errorf("id column = %v", row[0])
	}
	if row[6] != "10" {
		t.Errorf("beras kg column = %v", row[6])
	}
	if row[16] != int64(3) {
		t.Errorf("version column = %v", row[16])
	}
	if row[17] != "2024-04-08 09:30:00" {
		t.Errorf("updated at column = %v", row[17])
	}
}
