package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"zakatku/internal/core"
)

const (
	recordsSheet = "Data Zakat"
	reportSheet  = "Laporan Harian"
)

var reportHeader = []string{
	"Tanggal",
	"Jiwa Beras", "Beras (kg)", "Jiwa Uang", "Zakat Fitrah Uang",
	"Zakat Maal", "Infaq Beras", "Infaq Uang", "Fidyah Beras", "Fidyah Uang",
	"Total Beras", "Total Uang",
}

// WriteXLSX renders a workbook with one sheet of raw records and one
// sheet of per-day report rows plus a totals row.
func WriteXLSX(w io.Writer, recs []core.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", recordsSheet)
	if _, err := f.NewSheet(reportSheet); err != nil {
		return fmt.Errorf("create report sheet: %w", err)
	}

	if err := writeRecordsSheet(f, recs); err != nil {
		return err
	}
	if err := writeReportSheet(f, recs); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRecordsSheet(f *excelize.File, recs []core.Record) error {
	header := make([]any, len(recordHeader))
	for i, h := range recordHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(recordsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write records header: %w", err)
	}

	for i, rec := range recs {
		row := []any{
			i + 1,
			rec.Penginput,
			rec.Tanggal,
			rec.Nama,
			rec.Alamat,
			rec.ZakatFitrah.JiwaBeras,
			rec.ZakatFitrah.BerasKg.InexactFloat64(),
			rec.ZakatFitrah.JiwaUang,
			rec.ZakatFitrah.Uang,
			rec.ZakatMaal,
			rec.Infaq.Beras.InexactFloat64(),
			rec.Infaq.Uang,
			rec.Fidyah.Beras.InexactFloat64(),
			rec.Fidyah.Uang,
			rec.TotalBeras.InexactFloat64(),
			rec.TotalUang,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return fmt.Errorf("write record row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeReportSheet(f *excelize.File, recs []core.Record) error {
	header := make([]any, len(reportHeader))
	for i, h := range reportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	rows := core.ReportRows(recs)
	for i, row := range rows {
		values := []any{
			row.Tanggal,
			row.JiwaBeras,
			row.BerasKg.InexactFloat64(),
			row.JiwaUang,
			row.ZakatFitrahUang,
			row.ZakatMaal,
			row.InfaqBeras.InexactFloat64(),
			row.InfaqUang,
			row.FidyahBeras.InexactFloat64(),
			row.FidyahUang,
			row.TotalBeras.InexactFloat64(),
			row.TotalUang,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return fmt.Errorf("write report row %d: %w", i+1, err)
		}
	}

	summary := core.Summarize(rows)
	totals := []any{
		"Total",
		summary.TotalJiwaBeras,
		summary.TotalBerasKg.InexactFloat64(),
		summary.TotalJiwaUang,
		summary.TotalZakatFitrahUang,
		summary.TotalZakatMaal,
		summary.TotalInfaqBeras.InexactFloat64(),
		summary.TotalInfaqUang,
		summary.TotalFidyahBeras.InexactFloat64(),
		summary.TotalFidyahUang,
		summary.TotalAllBeras.InexactFloat64(),
		summary.TotalAllUang,
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+2)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(reportSheet, cell, &totals); err != nil {
		return fmt.Errorf("write totals row: %w", err)
	}
	return nil
}
