// Package export renders records into downloadable CSV and XLSX files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"zakatku/internal/core"
)

// Header shared by the CSV export and the XLSX records sheet.
var recordHeader = []string{
	"No", "Penginput", "Tanggal", "Nama", "Alamat",
	"Jiwa Beras", "Beras (kg)", "Jiwa Uang", "Uang",
	"Zakat Maal", "Infaq Beras", "Infaq Uang", "Fidyah Beras", "Fidyah Uang",
	"Total Beras", "Total Uang",
}

// WriteCSV streams all records as CSV, one numbered row per record.
func WriteCSV(w io.Writer, recs []core.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(recordHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, rec := range recs {
		if err := cw.Write(recordRow(i+1, rec)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func recordRow(no int, rec core.Record) []string {
	return []string{
		strconv.Itoa(no),
		rec.Penginput,
		rec.Tanggal,
		rec.Nama,
		rec.Alamat,
		strconv.Itoa(rec.ZakatFitrah.JiwaBeras),
		rec.ZakatFitrah.BerasKg.String(),
		strconv.Itoa(rec.ZakatFitrah.JiwaUang),
		strconv.FormatInt(rec.ZakatFitrah.Uang, 10),
		strconv.FormatInt(rec.ZakatMaal, 10),
		rec.Infaq.Beras.String(),
		strconv.FormatInt(rec.Infaq.Uang, 10),
		rec.Fidyah.Beras.String(),
		strconv.FormatInt(rec.Fidyah.Uang, 10),
		rec.TotalBeras.String(),
		strconv.FormatInt(rec.TotalUang, 10),
	}
}
