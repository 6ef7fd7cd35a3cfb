// Package core holds the donation record model and the pure aggregation,
// reporting, and derived-field computations over it.
//
// This file contains parsing and formatting helpers for rupiah amounts and
// rice weights. Currency is whole IDR kept as int64; weights are kilograms
// kept as fixed-precision decimals so repeated summation stays exact.
package core

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRupiah = errors.New("invalid rupiah amount")
	ErrInvalidBeras  = errors.New("invalid rice weight")
)

// ParseRupiah converts a user-entered amount to whole IDR.
//
// Thousand separators ("1.500.000" or "1,500,000") are tolerated. The empty
// string parses to zero, matching the entry form where a cleared field means
// "nothing given". Negative amounts are rejected.
func ParseRupiah(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidRupiah
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidRupiah
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidRupiah
	}
	return v, nil
}

// FormatRupiah renders whole IDR with id-ID dot grouping, e.g. "Rp 1.500.000".
func FormatRupiah(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}

// ParseBerasKg converts a user-entered rice weight to a decimal. Both dot and
// comma decimal separators are accepted; the empty string parses to zero.
func ParseBerasKg(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidBeras
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidBeras
	}
	return d, nil
}

// FormatBerasKg renders a weight without trailing zeros, e.g. "12.5".
func FormatBerasKg(d decimal.Decimal) string {
	return d.String()
}

// ParseJiwa converts a user-entered headcount. The empty string parses to
// zero; the cap is left to Draft.Validate so the caller can report it as a
// distinct warning.
func ParseJiwa(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid headcount")
	}
	return n, nil
}
