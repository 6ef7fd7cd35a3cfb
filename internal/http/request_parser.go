package http

import (
	"errors"
	"fmt"
	"net/http"

	"zakatku/internal/core"
)

// parseError carries a user-facing Indonesian message for a bad form field.
type parseError struct {
	msg string
}

func (e *parseError) Error() string { return e.msg }

func badField(format string, args ...any) error {
	return &parseError{msg: fmt.Sprintf(format, args...)}
}

// parseRecordForm decodes the entry form into a draft. Derived zakat fitrah
// fields are recomputed from the headcounts on the server, so a tampered
// hidden field cannot override the rate table.
func parseRecordForm(r *http.Request) (core.Draft, error) {
	if err := r.ParseForm(); err != nil {
		return core.Draft{}, badField("Data formulir tidak dapat dibaca")
	}

	d := core.Draft{
		Penginput: sanitizeInput(r.PostFormValue("penginput")),
		Tanggal:   sanitizeInput(r.PostFormValue("tanggal")),
		Nama:      sanitizeInput(r.PostFormValue("nama")),
		Alamat:    sanitizeInput(r.PostFormValue("alamat")),
	}

	var err error
	if d.ZakatFitrah.JiwaBeras, err = core.ParseJiwa(r.PostFormValue("jiwa_beras")); err != nil {
		return core.Draft{}, badField("Jumlah jiwa (beras) tidak valid")
	}
	if d.ZakatFitrah.BerasKg, err = core.ParseBerasKg(r.PostFormValue("beras_kg")); err != nil {
		return core.Draft{}, badField("Berat beras zakat fitrah tidak valid")
	}
	if d.ZakatFitrah.JiwaUang, err = core.ParseJiwa(r.PostFormValue("jiwa_uang")); err != nil {
		return core.Draft{}, badField("Jumlah jiwa (uang) tidak valid")
	}
	if d.ZakatFitrah.Uang, err = core.ParseRupiah(r.PostFormValue("uang")); err != nil {
		return core.Draft{}, badField("Nominal zakat fitrah tidak valid")
	}
	if d.ZakatMaal, err = core.ParseRupiah(r.PostFormValue("zakat_maal")); err != nil {
		return core.Draft{}, badField("Nominal zakat maal tidak valid")
	}
	if d.Infaq.Beras, err = core.ParseBerasKg(r.PostFormValue("infaq_beras")); err != nil {
		return core.Draft{}, badField("Berat beras infaq tidak valid")
	}
	if d.Infaq.Uang, err = core.ParseRupiah(r.PostFormValue("infaq_uang")); err != nil {
		return core.Draft{}, badField("Nominal infaq tidak valid")
	}
	if d.Fidyah.Beras, err = core.ParseBerasKg(r.PostFormValue("fidyah_beras")); err != nil {
		return core.Draft{}, badField("Berat beras fidyah tidak valid")
	}
	if d.Fidyah.Uang, err = core.ParseRupiah(r.PostFormValue("fidyah_uang")); err != nil {
		return core.Draft{}, badField("Nominal fidyah tidak valid")
	}

	rate := parseRateField(r.PostFormValue("rate"))
	return core.Derive(d, rate), nil
}

// parseRateField falls back to the default rate rather than failing, so a
// stale form with a retired rate still submits.
func parseRateField(s string) int64 {
	v, err := core.ParseRupiah(s)
	if err != nil || !core.ValidFitrahRate(v) {
		return core.DefaultFitrahRate
	}
	return v
}

// validationMessage maps a draft validation error to the message shown in
// the form's error slot.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrEmptyPenginput), errors.Is(err, core.ErrUnknownPenginput):
		return "Pilih nama penginput dari daftar"
	case errors.Is(err, core.ErrEmptyTanggal):
		return "Tanggal wajib diisi"
	case errors.Is(err, core.ErrEmptyNama):
		return "Nama muzakki wajib diisi"
	case errors.Is(err, core.ErrNegativeValue):
		return "Nilai tidak boleh negatif"
	case errors.Is(err, core.ErrJiwaCapExceeded):
		return fmt.Sprintf("Jumlah jiwa melebihi batas maksimum (%d)", core.MaxJiwa)
	default:
		return "Data tidak valid, periksa kembali isian Anda"
	}
}
