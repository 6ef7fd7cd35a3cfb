package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxJiwa is the hard cap on headcount fields. The original entry form only
// nudged the user client-side; here it is enforced on every draft validation
// so bulk paths cannot bypass it.
const MaxJiwa = 100

// TanggalLayout is the calendar-date format used throughout (no time part).
const TanggalLayout = "2006-01-02"

// PenginputOptions is the fixed list of entry operators.
var PenginputOptions = []string{"Admin", "Petugas 1", "Petugas 2", "Petugas 3"}

// BerasPerJiwa is the fixed in-kind rice weight per person (kg).
var BerasPerJiwa = decimal.NewFromFloat(2.5)

// FitrahRates lists the allowed per-person cash rates (IDR). The first entry
// is the default.
var FitrahRates = []int64{37500, 40000, 50000}

// DefaultFitrahRate is the rate preselected on a fresh entry form.
const DefaultFitrahRate int64 = 37500

type (
	// ZakatFitrah holds the per-person ritual contribution, split between an
	// in-kind rice part and a cash part.
	ZakatFitrah struct {
		JiwaBeras int             // persons covered in kind
		BerasKg   decimal.Decimal // rice weight, derived from JiwaBeras while it is non-zero
		JiwaUang  int             // persons covered in cash
		Uang      int64           // IDR, derived from JiwaUang while it is non-zero
	}

	// Infaq is a voluntary contribution in rice and/or cash.
	Infaq struct {
		Beras decimal.Decimal
		Uang  int64
	}

	// Fidyah is a compensatory-fast contribution in rice and/or cash.
	Fidyah struct {
		Beras decimal.Decimal
		Uang  int64
	}

	// Draft is the user-editable part of a record, before totals and
	// system fields are assigned.
	Draft struct {
		Penginput   string
		Tanggal     string // yyyy-mm-dd
		Nama        string
		Alamat      string
		ZakatFitrah ZakatFitrah
		ZakatMaal   int64
		Infaq       Infaq
		Fidyah      Fidyah
	}

	// Record is one stored donation event. TotalBeras and TotalUang are
	// always recomputed from the constituent fields, never edited.
	Record struct {
		ID string
		Draft
		TotalBeras decimal.Decimal
		TotalUang  int64
		CreatedAt  time.Time
		UpdatedAt  time.Time
	}
)

var (
	ErrEmptyPenginput   = errors.New("empty penginput")
	ErrUnknownPenginput = errors.New("unknown penginput")
	ErrEmptyTanggal     = errors.New("empty tanggal")
	ErrEmptyNama        = errors.New("empty nama")
	ErrNegativeValue    = errors.New("negative value")
	ErrJiwaCapExceeded  = errors.New("jiwa exceeds maximum")
)

// ParseTanggal parses a yyyy-mm-dd date string.
func ParseTanggal(s string) (time.Time, error) {
	return time.Parse(TanggalLayout, strings.TrimSpace(s))
}

// ValidPenginput reports whether name is one of the fixed operators.
func ValidPenginput(name string) bool {
	for _, p := range PenginputOptions {
		if p == name {
			return true
		}
	}
	return false
}

// Validate checks the draft against the domain invariants. A malformed
// tanggal is not rejected here: records with unparsable dates are still
// stored and reported, they just fall out of date ordering.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Penginput) == "" {
		return ErrEmptyPenginput
	}
	if !ValidPenginput(d.Penginput) {
		return ErrUnknownPenginput
	}
	if strings.TrimSpace(d.Tanggal) == "" {
		return ErrEmptyTanggal
	}
	if strings.TrimSpace(d.Nama) == "" {
		return ErrEmptyNama
	}
	if len(d.Nama) > 200 || len(d.Alamat) > 200 {
		return errors.New("name or address too long (max 200 characters)")
	}
	if d.ZakatFitrah.JiwaBeras < 0 || d.ZakatFitrah.JiwaUang < 0 {
		return ErrNegativeValue
	}
	if d.ZakatFitrah.JiwaBeras > MaxJiwa || d.ZakatFitrah.JiwaUang > MaxJiwa {
		return ErrJiwaCapExceeded
	}
	if d.ZakatFitrah.Uang < 0 || d.ZakatMaal < 0 || d.Infaq.Uang < 0 || d.Fidyah.Uang < 0 {
		return ErrNegativeValue
	}
	if d.ZakatFitrah.BerasKg.IsNegative() || d.Infaq.Beras.IsNegative() || d.Fidyah.Beras.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

// SumBeras sums the rice weight constituents of the draft.
func (d Draft) SumBeras() decimal.Decimal {
	return d.ZakatFitrah.BerasKg.Add(d.Infaq.Beras).Add(d.Fidyah.Beras)
}

// SumUang sums the monetary constituents of the draft.
func (d Draft) SumUang() int64 {
	return d.ZakatFitrah.Uang + d.ZakatMaal + d.Infaq.Uang + d.Fidyah.Uang
}

// NewRecord builds a record from a validated draft, assigning totals and
// system timestamps.
func NewRecord(id string, d Draft, now time.Time) Record {
	return Record{
		ID:         id,
		Draft:      d,
		TotalBeras: d.SumBeras(),
		TotalUang:  d.SumUang(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Apply replaces the editable fields of the record with the draft and
// recomputes the derived totals.
func (r Record) Apply(d Draft, now time.Time) Record {
	r.Draft = d
	r.TotalBeras = d.SumBeras()
	r.TotalUang = d.SumUang()
	r.UpdatedAt = now
	return r
}
