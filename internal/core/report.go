package core

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type (
	// ReportRow sums one date's records across every category.
	ReportRow struct {
		Tanggal         string
		JiwaBeras       int
		BerasKg         decimal.Decimal
		JiwaUang        int
		ZakatFitrahUang int64
		ZakatMaal       int64
		InfaqBeras      decimal.Decimal
		InfaqUang       int64
		FidyahBeras     decimal.Decimal
		FidyahUang      int64
		TotalBeras      decimal.Decimal
		TotalUang       int64
	}

	// ReportSummary is the column-wise sum over all report rows. It matches
	// CalculateTotals on the shared fields; report_test checks that law.
	ReportSummary struct {
		TotalJiwaBeras       int
		TotalBerasKg         decimal.Decimal
		TotalJiwaUang        int
		TotalZakatFitrahUang int64
		TotalZakatMaal       int64
		TotalInfaqBeras      decimal.Decimal
		TotalInfaqUang       int64
		TotalFidyahBeras     decimal.Decimal
		TotalFidyahUang      int64
		TotalAllBeras        decimal.Decimal
		TotalAllUang         int64
	}

	// SnapshotItem is one category line of the same-day breakdown.
	SnapshotItem struct {
		Label string
		Count int
	}

	// DailySnapshot is the same-day view: how many of a date's records touch
	// each category, filtered to categories that actually occur.
	DailySnapshot struct {
		Tanggal      string
		TotalRecords int
		Items        []SnapshotItem
	}
)

// ReportRows folds records into one row per distinct tanggal, ordered
// ascending by parsed date. Rows whose tanggal fails to parse keep their
// relative first-appearance order rather than producing an error.
func ReportRows(records []Record) []ReportRow {
	index := make(map[string]int)
	rows := make([]ReportRow, 0)
	for _, r := range records {
		i, ok := index[r.Tanggal]
		if !ok {
			i = len(rows)
			index[r.Tanggal] = i
			rows = append(rows, ReportRow{Tanggal: r.Tanggal})
		}
		row := &rows[i]
		row.JiwaBeras += r.ZakatFitrah.JiwaBeras
		row.BerasKg = row.BerasKg.Add(r.ZakatFitrah.BerasKg)
		row.JiwaUang += r.ZakatFitrah.JiwaUang
		row.ZakatFitrahUang += r.ZakatFitrah.Uang
		row.ZakatMaal += r.ZakatMaal
		row.InfaqBeras = row.InfaqBeras.Add(r.Infaq.Beras)
		row.InfaqUang += r.Infaq.Uang
		row.FidyahBeras = row.FidyahBeras.Add(r.Fidyah.Beras)
		row.FidyahUang += r.Fidyah.Uang
	}
	for i := range rows {
		rows[i].TotalBeras = rows[i].BerasKg.Add(rows[i].InfaqBeras).Add(rows[i].FidyahBeras)
		rows[i].TotalUang = rows[i].ZakatFitrahUang + rows[i].ZakatMaal + rows[i].InfaqUang + rows[i].FidyahUang
	}

	parsed := make(map[string]time.Time, len(rows))
	valid := make(map[string]bool, len(rows))
	for _, row := range rows {
		if t, err := ParseTanggal(row.Tanggal); err == nil {
			parsed[row.Tanggal] = t
			valid[row.Tanggal] = true
		}
	}
	// Stable sort so unsortable dates keep their relative input order.
	sort.SliceStable(rows, func(i, j int) bool {
		if !valid[rows[i].Tanggal] || !valid[rows[j].Tanggal] {
			return false
		}
		return parsed[rows[i].Tanggal].Before(parsed[rows[j].Tanggal])
	})
	return rows
}

// Summarize computes the column-wise sum over report rows.
func Summarize(rows []ReportRow) ReportSummary {
	s := ReportSummary{}
	for _, row := range rows {
		s.TotalJiwaBeras += row.JiwaBeras
		s.TotalBerasKg = s.TotalBerasKg.Add(row.BerasKg)
		s.TotalJiwaUang += row.JiwaUang
		s.TotalZakatFitrahUang += row.ZakatFitrahUang
		s.TotalZakatMaal += row.ZakatMaal
		s.TotalInfaqBeras = s.TotalInfaqBeras.Add(row.InfaqBeras)
		s.TotalInfaqUang += row.InfaqUang
		s.TotalFidyahBeras = s.TotalFidyahBeras.Add(row.FidyahBeras)
		s.TotalFidyahUang += row.FidyahUang
		s.TotalAllBeras = s.TotalAllBeras.Add(row.TotalBeras)
		s.TotalAllUang += row.TotalUang
	}
	return s
}

func (r Record) touchesZakatFitrah() bool {
	zf := r.ZakatFitrah
	return zf.JiwaBeras > 0 || zf.JiwaUang > 0 || zf.Uang > 0 || zf.BerasKg.IsPositive()
}

// SnapshotForDate counts how many of tanggal's records carry a non-zero
// value in each category. Categories appear in fixed declaration order, not
// sorted by count, and zero-count categories are dropped.
func SnapshotForDate(records []Record, tanggal string) DailySnapshot {
	snap := DailySnapshot{Tanggal: tanggal}
	var fitrah, maal, infaq, fidyah int
	for _, r := range records {
		if r.Tanggal != tanggal {
			continue
		}
		snap.TotalRecords++
		if r.touchesZakatFitrah() {
			fitrah++
		}
		if r.ZakatMaal > 0 {
			maal++
		}
		if r.Infaq.Uang > 0 || r.Infaq.Beras.IsPositive() {
			infaq++
		}
		if r.Fidyah.Uang > 0 || r.Fidyah.Beras.IsPositive() {
			fidyah++
		}
	}
	for _, item := range []SnapshotItem{
		{Label: "Zakat Fitrah", Count: fitrah},
		{Label: "Zakat Maal", Count: maal},
		{Label: "Infaq", Count: infaq},
		{Label: "Fidyah", Count: fidyah},
	} {
		if item.Count > 0 {
			snap.Items = append(snap.Items, item)
		}
	}
	return snap
}
