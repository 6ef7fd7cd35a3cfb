package core

import "github.com/shopspring/decimal"

// Derived-field policy: while a headcount is non-zero its dependent field is
// strictly computed and cannot be edited by hand. With a zero headcount the
// dependent field is free-form (e.g. loose rice donations weighed directly).
// The original form flip-flopped between locking and manual override across
// revisions; this implementation locks.

// BerasFromJiwa computes the in-kind rice weight for a headcount.
func BerasFromJiwa(jiwa int) decimal.Decimal {
	return BerasPerJiwa.Mul(decimal.NewFromInt(int64(jiwa)))
}

// UangFromJiwa computes the cash amount for a headcount at a per-person rate.
func UangFromJiwa(jiwa int, rate int64) int64 {
	return int64(jiwa) * rate
}

// ValidFitrahRate reports whether rate is one of the allowed per-person rates.
func ValidFitrahRate(rate int64) bool {
	for _, r := range FitrahRates {
		if r == rate {
			return true
		}
	}
	return false
}

// Derive recomputes the dependent zakat fitrah fields of a draft. It is a
// pure function: callers invoke it after every field change instead of
// relying on reactive side effects, so the order of edits cannot matter.
func Derive(d Draft, rate int64) Draft {
	if !ValidFitrahRate(rate) {
		rate = DefaultFitrahRate
	}
	if d.ZakatFitrah.JiwaBeras > 0 {
		d.ZakatFitrah.BerasKg = BerasFromJiwa(d.ZakatFitrah.JiwaBeras)
	}
	if d.ZakatFitrah.JiwaUang > 0 {
		d.ZakatFitrah.Uang = UangFromJiwa(d.ZakatFitrah.JiwaUang, rate)
	}
	return d
}
