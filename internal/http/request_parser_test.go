package http

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"zakatku/internal/core"
)

func TestParseRecordForm(t *testing.T) {
	values := url.Values{
		"penginput":   {"Admin"},
		"tanggal":     {"2024-04-08"},
		"nama":        {"  Budi  "},
		"alamat":      {"Jl. Melati No. 3"},
		"jiwa_beras":  {"4"},
		"beras_kg":    {"1"},
		"jiwa_uang":   {"2"},
		"uang":        {"0"},
		"zakat_maal":  {"1.500.000"},
		"infaq_beras": {"2,5"},
		"infaq_uang":  {"100000"},
		"rate":        {"40000"},
	}
	r := httptest.NewRequest("POST", "/records", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	d, err := parseRecordForm(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.Nama != "Budi" {
		t.Errorf("nama = %q, want trimmed", d.Nama)
	}
	if d.ZakatMaal != 1500000 {
		t.Errorf("zakat maal = %d", d.ZakatMaal)
	}
	if d.Infaq.Beras.String() != "2.5" {
		t.Errorf("infaq beras = %s", d.Infaq.Beras)
	}
	// Headcounts are authoritative over the submitted dependent values.
	if d.ZakatFitrah.BerasKg.String() != "10" {
		t.Errorf("derived beras = %s, want 10", d.ZakatFitrah.BerasKg)
	}
	if d.ZakatFitrah.Uang != 80000 {
		t.Errorf("derived uang = %d, want 80000", d.ZakatFitrah.Uang)
	}
}

func TestParseRecordForm_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		field  string
		value  string
		substr string
	}{
		{"bad jiwa beras", "jiwa_beras", "-1", "jiwa (beras)"},
		{"bad jiwa uang", "jiwa_uang", "abc", "jiwa (uang)"},
		{"bad beras", "beras_kg", "x", "beras zakat fitrah"},
		{"bad maal", "zakat_maal", "12a", "zakat maal"},
		{"bad infaq uang", "infaq_uang", "-5", "infaq"},
		{"bad fidyah beras", "fidyah_beras", "??", "fidyah"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{
				"penginput": {"Admin"},
				"tanggal":   {"2024-04-08"},
				"nama":      {"Budi"},
			}
			values.Set(tc.field, tc.value)
			r := httptest.NewRequest("POST", "/records", strings.NewReader(values.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			_, err := parseRecordForm(r)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(strings.ToLower(err.Error()), tc.substr) {
				t.Errorf("error %q does not mention %q", err.Error(), tc.substr)
			}
		})
	}
}

func TestParseRateField(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"37500", 37500},
		{"40000", 40000},
		{"50000", 50000},
		{"", core.DefaultFitrahRate},
		{"12345", core.DefaultFitrahRate},
		{"abc", core.DefaultFitrahRate},
	}
	for _, tc := range tests {
		if got := parseRateField(tc.in); got != tc.want {
			t.Errorf("parseRateField(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestValidationMessage(t *testing.T) {
	if msg := validationMessage(core.ErrEmptyNama); !strings.Contains(msg, "Nama") {
		t.Errorf("nama message = %q", msg)
	}
	if msg := validationMessage(core.ErrJiwaCapExceeded); !strings.Contains(msg, "100") {
		t.Errorf("cap message should carry the limit, got %q", msg)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  Budi\x00\x07 "); got != "Budi" {
		t.Errorf("sanitizeInput = %q", got)
	}
	if got := sanitizeInput("baris\nsatu"); got != "baris\nsatu" {
		t.Errorf("newline must survive, got %q", got)
	}
}
