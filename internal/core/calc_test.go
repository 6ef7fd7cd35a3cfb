package core

import "testing"

func TestDeriveUangFromJiwa(t *testing.T) {
	d := Draft{ZakatFitrah: ZakatFitrah{JiwaUang: 4}}

	d = Derive(d, 37500)
	if d.ZakatFitrah.Uang != 150000 {
		t.Fatalf("uang = %d, want 150000", d.ZakatFitrah.Uang)
	}

	// Rate change with unchanged headcount recomputes.
	d = Derive(d, 50000)
	if d.ZakatFitrah.Uang != 200000 {
		t.Fatalf("uang = %d after rate change, want 200000", d.ZakatFitrah.Uang)
	}

	// Headcount change recomputes at the current rate.
	d.ZakatFitrah.JiwaUang = 3
	d = Derive(d, 50000)
	if d.ZakatFitrah.Uang != 150000 {
		t.Fatalf("uang = %d after jiwa change, want 150000", d.ZakatFitrah.Uang)
	}
}

func TestDeriveBerasFromJiwa(t *testing.T) {
	d := Draft{ZakatFitrah: ZakatFitrah{JiwaBeras: 4}}
	d = Derive(d, DefaultFitrahRate)
	if !d.ZakatFitrah.BerasKg.Equal(dec("10")) {
		t.Fatalf("beras = %s, want 10", d.ZakatFitrah.BerasKg)
	}
}

func TestDeriveLeavesManualFieldsWhenJiwaZero(t *testing.T) {
	// With zero headcount the weight and cash fields stay free-form.
	d := Draft{ZakatFitrah: ZakatFitrah{BerasKg: dec("7.25"), Uang: 12345}}
	d = Derive(d, DefaultFitrahRate)
	if !d.ZakatFitrah.BerasKg.Equal(dec("7.25")) || d.ZakatFitrah.Uang != 12345 {
		t.Fatalf("derive must not clobber manual fields: %+v", d.ZakatFitrah)
	}
}

func TestDeriveUnknownRateFallsBackToDefault(t *testing.T) {
	d := Draft{ZakatFitrah: ZakatFitrah{JiwaUang: 2}}
	d = Derive(d, 99999)
	if d.ZakatFitrah.Uang != 2*DefaultFitrahRate {
		t.Fatalf("uang = %d, want %d", d.ZakatFitrah.Uang, 2*DefaultFitrahRate)
	}
}

func TestValidFitrahRate(t *testing.T) {
	for _, r := range FitrahRates {
		if !ValidFitrahRate(r) {
			t.Fatalf("rate %d should be valid", r)
		}
	}
	if ValidFitrahRate(12345) {
		t.Fatalf("arbitrary rate must be invalid")
	}
}
