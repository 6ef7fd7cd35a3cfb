package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validDraft() Draft {
	return Draft{
		Penginput: "Admin",
		Tanggal:   "2024-04-08",
		Nama:      "Ahmad Hidayat",
		Alamat:    "Jl. Mawar No. 12",
		ZakatFitrah: ZakatFitrah{
			JiwaBeras: 4,
			BerasKg:   dec("10"),
		},
		ZakatMaal: 500000,
		Infaq:     Infaq{Beras: dec("2"), Uang: 100000},
	}
}

func TestDraftValidate(t *testing.T) {
	if err := validDraft().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Draft)
		want   error
	}{
		{"empty penginput", func(d *Draft) { d.Penginput = "" }, ErrEmptyPenginput},
		{"unknown penginput", func(d *Draft) { d.Penginput = "Orang Lain" }, ErrUnknownPenginput},
		{"empty tanggal", func(d *Draft) { d.Tanggal = " " }, ErrEmptyTanggal},
		{"empty nama", func(d *Draft) { d.Nama = "" }, ErrEmptyNama},
		{"jiwa beras over cap", func(d *Draft) { d.ZakatFitrah.JiwaBeras = 150 }, ErrJiwaCapExceeded},
		{"jiwa uang over cap", func(d *Draft) { d.ZakatFitrah.JiwaUang = MaxJiwa + 1 }, ErrJiwaCapExceeded},
		{"negative maal", func(d *Draft) { d.ZakatMaal = -1 }, ErrNegativeValue},
		{"negative infaq beras", func(d *Draft) { d.Infaq.Beras = dec("-0.5") }, ErrNegativeValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			if err := d.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDraftValidateKeepsMalformedTanggal(t *testing.T) {
	d := validDraft()
	d.Tanggal = "not-a-date"
	if err := d.Validate(); err != nil {
		t.Fatalf("malformed tanggal must not be rejected, got %v", err)
	}
}

func TestNewRecordTotals(t *testing.T) {
	d := Draft{
		Penginput:   "Admin",
		Tanggal:     "2024-04-08",
		Nama:        "X",
		ZakatFitrah: ZakatFitrah{JiwaUang: 4, Uang: 150000, BerasKg: dec("2.5")},
		ZakatMaal:   500000,
		Infaq:       Infaq{Uang: 100000, Beras: dec("1.5")},
	}
	r := NewRecord("id-1", d, time.Now())
	if r.TotalUang != 750000 {
		t.Fatalf("TotalUang = %d, want 750000", r.TotalUang)
	}
	if !r.TotalBeras.Equal(dec("4")) {
		t.Fatalf("TotalBeras = %s, want 4", r.TotalBeras)
	}
}

func TestApplyRecomputesTotals(t *testing.T) {
	r := NewRecord("id-1", validDraft(), time.Now())
	d := r.Draft
	d.Fidyah = Fidyah{Beras: dec("3"), Uang: 25000}
	updated := r.Apply(d, time.Now())
	if updated.TotalUang != r.TotalUang+25000 {
		t.Fatalf("TotalUang = %d after fidyah edit", updated.TotalUang)
	}
	if !updated.TotalBeras.Equal(r.TotalBeras.Add(dec("3"))) {
		t.Fatalf("TotalBeras = %s after fidyah edit", updated.TotalBeras)
	}
	if updated.CreatedAt != r.CreatedAt {
		t.Fatalf("CreatedAt must not change on edit")
	}
}
