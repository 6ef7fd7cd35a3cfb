package http

import (
	"zakatku/internal/core"
)

// View models flatten domain values into preformatted strings so the
// templates never touch decimal or currency formatting.

type recordView struct {
	No        int
	ID        string
	Penginput string
	Tanggal   string
	Nama      string
	Alamat    string

	JiwaBeras int
	BerasKg   string
	JiwaUang  int
	Uang      string

	ZakatMaal  string
	InfaqBeras string
	InfaqUang  string

	FidyahBeras string
	FidyahUang  string

	TotalBeras string
	TotalUang  string
}

func newRecordView(no int, r core.Record) recordView {
	return recordView{
		No:          no,
		ID:          r.ID,
		Penginput:   r.Penginput,
		Tanggal:     r.Tanggal,
		Nama:        r.Nama,
		Alamat:      r.Alamat,
		JiwaBeras:   r.ZakatFitrah.JiwaBeras,
		BerasKg:     core.FormatBerasKg(r.ZakatFitrah.BerasKg),
		JiwaUang:    r.ZakatFitrah.JiwaUang,
		Uang:        core.FormatRupiah(r.ZakatFitrah.Uang),
		ZakatMaal:   core.FormatRupiah(r.ZakatMaal),
		InfaqBeras:  core.FormatBerasKg(r.Infaq.Beras),
		InfaqUang:   core.FormatRupiah(r.Infaq.Uang),
		FidyahBeras: core.FormatBerasKg(r.Fidyah.Beras),
		FidyahUang:  core.FormatRupiah(r.Fidyah.Uang),
		TotalBeras:  core.FormatBerasKg(r.TotalBeras),
		TotalUang:   core.FormatRupiah(r.TotalUang),
	}
}

func recordViews(recs []core.Record) []recordView {
	out := make([]recordView, len(recs))
	for i, r := range recs {
		out[i] = newRecordView(i+1, r)
	}
	return out
}

type reportRowView struct {
	Tanggal         string
	JiwaBeras       int
	BerasKg         string
	JiwaUang        int
	ZakatFitrahUang string
	ZakatMaal       string
	InfaqBeras      string
	InfaqUang       string
	FidyahBeras     string
	FidyahUang      string
	TotalBeras      string
	TotalUang       string
}

func newReportRowView(row core.ReportRow) reportRowView {
	return reportRowView{
		Tanggal:         row.Tanggal,
		JiwaBeras:       row.JiwaBeras,
		BerasKg:         core.FormatBerasKg(row.BerasKg),
		JiwaUang:        row.JiwaUang,
		ZakatFitrahUang: core.FormatRupiah(row.ZakatFitrahUang),
		ZakatMaal:       core.FormatRupiah(row.ZakatMaal),
		InfaqBeras:      core.FormatBerasKg(row.InfaqBeras),
		InfaqUang:       core.FormatRupiah(row.InfaqUang),
		FidyahBeras:     core.FormatBerasKg(row.FidyahBeras),
		FidyahUang:      core.FormatRupiah(row.FidyahUang),
		TotalBeras:      core.FormatBerasKg(row.TotalBeras),
		TotalUang:       core.FormatRupiah(row.TotalUang),
	}
}

type summaryView struct {
	TotalJiwaBeras       int
	TotalBerasKg         string
	TotalJiwaUang        int
	TotalZakatFitrahUang string
	TotalZakatMaal       string
	TotalInfaqBeras      string
	TotalInfaqUang       string
	TotalFidyahBeras     string
	TotalFidyahUang      string
	TotalAllBeras        string
	TotalAllUang         string
}

func newSummaryView(s core.ReportSummary) summaryView {
	return summaryView{
		TotalJiwaBeras:       s.TotalJiwaBeras,
		TotalBerasKg:         core.FormatBerasKg(s.TotalBerasKg),
		TotalJiwaUang:        s.TotalJiwaUang,
		TotalZakatFitrahUang: core.FormatRupiah(s.TotalZakatFitrahUang),
		TotalZakatMaal:       core.FormatRupiah(s.TotalZakatMaal),
		TotalInfaqBeras:      core.FormatBerasKg(s.TotalInfaqBeras),
		TotalInfaqUang:       core.FormatRupiah(s.TotalInfaqUang),
		TotalFidyahBeras:     core.FormatBerasKg(s.TotalFidyahBeras),
		TotalFidyahUang:      core.FormatRupiah(s.TotalFidyahUang),
		TotalAllBeras:        core.FormatBerasKg(s.TotalAllBeras),
		TotalAllUang:         core.FormatRupiah(s.TotalAllUang),
	}
}

// formView carries the entry form state, either blank for a new record or
// prefilled for an edit. Weight and currency fields are raw editable text,
// not display-formatted.
type formView struct {
	ID        string
	Penginput string
	Tanggal   string
	Nama      string
	Alamat    string

	JiwaBeras int
	BerasKg   string
	JiwaUang  int
	Uang      int64

	ZakatMaal  int64
	InfaqBeras string
	InfaqUang  int64

	FidyahBeras string
	FidyahUang  int64

	Rate             int64
	PenginputOptions []string
	Rates            []int64

	// BerasLocked and UangLocked disable the derived inputs while their
	// headcount is non-zero.
	BerasLocked bool
	UangLocked  bool
}

func newFormView(today string) formView {
	return formView{
		Tanggal:          today,
		Rate:             core.DefaultFitrahRate,
		PenginputOptions: core.PenginputOptions,
		Rates:            core.FitrahRates,
	}
}

func editFormView(r core.Record) formView {
	return formView{
		ID:               r.ID,
		Penginput:        r.Penginput,
		Tanggal:          r.Tanggal,
		Nama:             r.Nama,
		Alamat:           r.Alamat,
		JiwaBeras:        r.ZakatFitrah.JiwaBeras,
		BerasKg:          core.FormatBerasKg(r.ZakatFitrah.BerasKg),
		JiwaUang:         r.ZakatFitrah.JiwaUang,
		Uang:             r.ZakatFitrah.Uang,
		ZakatMaal:        r.ZakatMaal,
		InfaqBeras:       core.FormatBerasKg(r.Infaq.Beras),
		InfaqUang:        r.Infaq.Uang,
		FidyahBeras:      core.FormatBerasKg(r.Fidyah.Beras),
		FidyahUang:       r.Fidyah.Uang,
		Rate:             core.DefaultFitrahRate,
		PenginputOptions: core.PenginputOptions,
		Rates:            core.FitrahRates,
		BerasLocked:      r.ZakatFitrah.JiwaBeras > 0,
		UangLocked:       r.ZakatFitrah.JiwaUang > 0,
	}
}
