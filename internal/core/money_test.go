package core

import "testing"

func TestParseRupiah(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"", 0, true},
		{"0", 0, true},
		{"37500", 37500, true},
		{" 1.500.000 ", 1500000, true},
		{"1,500,000", 1500000, true},
		{"-100", 0, false},
		{"+100", 0, false},
		{"abc", 0, false},
		{"12.5x", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseRupiah(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q: got %d (err=%v), want %d", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{37500, "Rp 37.500"},
		{1500000, "Rp 1.500.000"},
		{-2500, "-Rp 2.500"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.out {
			t.Fatalf("FormatRupiah(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestParseBerasKg(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"", "0", true},
		{"2.5", "2.5", true},
		{"2,5", "2.5", true},
		{"14", "14", true},
		{"-1", "", false},
		{"x", "", false},
	}
	for _, tc := range cases {
		got, err := ParseBerasKg(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("%q: got %s (err=%v), want %s", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseJiwa(t *testing.T) {
	if n, err := ParseJiwa(""); err != nil || n != 0 {
		t.Fatalf("empty jiwa: got %d, %v", n, err)
	}
	if n, err := ParseJiwa("42"); err != nil || n != 42 {
		t.Fatalf("42: got %d, %v", n, err)
	}
	if _, err := ParseJiwa("-3"); err == nil {
		t.Fatalf("negative jiwa must fail")
	}
	// The cap is a validation concern, not a parse failure.
	if n, err := ParseJiwa("150"); err != nil || n != 150 {
		t.Fatalf("over-cap jiwa should parse: got %d, %v", n, err)
	}
}
