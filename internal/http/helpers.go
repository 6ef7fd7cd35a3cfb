package http

import (
	"net/http"
	"strings"
	"time"

	"zakatku/internal/core"
)

// parseTanggalParam extracts a tanggal query parameter, defaulting to
// today when missing or malformed.
func parseTanggalParam(r *http.Request) string {
	v := strings.TrimSpace(r.URL.Query().Get("tanggal"))
	if v == "" {
		return time.Now().Format(core.TanggalLayout)
	}
	if _, err := core.ParseTanggal(v); err != nil {
		return time.Now().Format(core.TanggalLayout)
	}
	return v
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
