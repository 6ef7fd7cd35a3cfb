package core

import "github.com/shopspring/decimal"

// Totals is the grand aggregate over a record collection: record count plus
// the sum of every numeric field.
type Totals struct {
	Count            int
	TotalBeras       decimal.Decimal
	TotalUang        int64
	ZakatFitrahBeras decimal.Decimal
	ZakatFitrahUang  int64
	ZakatMaal        int64
	InfaqBeras       decimal.Decimal
	InfaqUang        int64
	FidyahBeras      decimal.Decimal
	FidyahUang       int64
}

// CalculateTotals folds a record collection into grand totals. It is total
// over its domain: an empty or nil slice yields all-zero sums, never an
// error. Summation order is irrelevant since every quantity is non-negative
// and decimals are exact.
func CalculateTotals(records []Record) Totals {
	t := Totals{}
	for _, r := range records {
		t.Count++
		t.TotalBeras = t.TotalBeras.Add(r.TotalBeras)
		t.TotalUang += r.TotalUang
		t.ZakatFitrahBeras = t.ZakatFitrahBeras.Add(r.ZakatFitrah.BerasKg)
		t.ZakatFitrahUang += r.ZakatFitrah.Uang
		t.ZakatMaal += r.ZakatMaal
		t.InfaqBeras = t.InfaqBeras.Add(r.Infaq.Beras)
		t.InfaqUang += r.Infaq.Uang
		t.FidyahBeras = t.FidyahBeras.Add(r.Fidyah.Beras)
		t.FidyahUang += r.Fidyah.Uang
	}
	return t
}

// GroupByDate maps tanggal -> records carrying that date. Dates are grouped
// by their raw string form; parseability does not matter here.
func GroupByDate(records []Record) map[string][]Record {
	groups := make(map[string][]Record)
	for _, r := range records {
		groups[r.Tanggal] = append(groups[r.Tanggal], r)
	}
	return groups
}
