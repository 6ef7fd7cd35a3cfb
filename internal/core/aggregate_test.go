package core

import (
	"reflect"
	"testing"
	"time"
)

func sampleRecords() []Record {
	now := time.Date(2024, 4, 9, 10, 0, 0, 0, time.UTC)
	return []Record{
		NewRecord("a", Draft{
			Penginput:   "Admin",
			Tanggal:     "2024-04-08",
			Nama:        "Budi",
			ZakatFitrah: ZakatFitrah{JiwaBeras: 4, BerasKg: dec("10"), JiwaUang: 0},
			ZakatMaal:   500000,
			Infaq:       Infaq{Beras: dec("2"), Uang: 100000},
		}, now),
		NewRecord("b", Draft{
			Penginput:   "Petugas 1",
			Tanggal:     "2024-04-09",
			Nama:        "Siti",
			ZakatFitrah: ZakatFitrah{JiwaUang: 4, Uang: 150000},
			Fidyah:      Fidyah{Beras: dec("1.5"), Uang: 45000},
		}, now),
		NewRecord("c", Draft{
			Penginput:   "Petugas 1",
			Tanggal:     "2024-04-08",
			Nama:        "Rahmat",
			ZakatFitrah: ZakatFitrah{JiwaUang: 2, Uang: 100000},
		}, now),
	}
}

func TestCalculateTotalsEmpty(t *testing.T) {
	for _, records := range [][]Record{nil, {}} {
		got := CalculateTotals(records)
		if got.Count != 0 || got.TotalUang != 0 || !got.TotalBeras.IsZero() {
			t.Fatalf("empty input must yield zero totals, got %+v", got)
		}
		if got.ZakatMaal != 0 || got.InfaqUang != 0 || got.FidyahUang != 0 {
			t.Fatalf("empty input must zero every field, got %+v", got)
		}
	}
}

func TestCalculateTotalsCount(t *testing.T) {
	records := sampleRecords()
	if got := CalculateTotals(records); got.Count != len(records) {
		t.Fatalf("Count = %d, want %d", got.Count, len(records))
	}
}

func TestCalculateTotalsAdditivity(t *testing.T) {
	records := sampleRecords()
	got := CalculateTotals(records)

	var wantUang, wantMaal int64
	wantBeras := dec("0")
	for _, r := range records {
		wantUang += r.TotalUang
		wantMaal += r.ZakatMaal
		wantBeras = wantBeras.Add(r.TotalBeras)
	}
	if got.TotalUang != wantUang {
		t.Fatalf("TotalUang = %d, want %d", got.TotalUang, wantUang)
	}
	if got.ZakatMaal != wantMaal {
		t.Fatalf("ZakatMaal = %d, want %d", got.ZakatMaal, wantMaal)
	}
	if !got.TotalBeras.Equal(wantBeras) {
		t.Fatalf("TotalBeras = %s, want %s", got.TotalBeras, wantBeras)
	}
	if got.ZakatFitrahUang != 250000 || got.InfaqUang != 100000 || got.FidyahUang != 45000 {
		t.Fatalf("per-category sums wrong: %+v", got)
	}
}

func TestCalculateTotalsIdempotent(t *testing.T) {
	records := sampleRecords()
	first := CalculateTotals(records)
	second := CalculateTotals(records)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("totals differ across identical calls:\n%+v\n%+v", first, second)
	}
}

func TestGroupByDate(t *testing.T) {
	records := sampleRecords()
	groups := GroupByDate(records)
	if len(groups) != 2 {
		t.Fatalf("expected 2 date groups, got %d", len(groups))
	}
	if len(groups["2024-04-08"]) != 2 || len(groups["2024-04-09"]) != 1 {
		t.Fatalf("unexpected grouping: %v", groups)
	}
}
