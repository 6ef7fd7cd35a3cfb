package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"zakatku/internal/export"
)

// Exports are buffered before the first byte is written, so a failure
// mid-encode still yields a clean error response instead of a torn file.

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records for csv export", "error", err)
		writeServerError(w)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, recs); err != nil {
		s.logger.ErrorContext(r.Context(), "encode csv export", "error", err)
		writeServerError(w)
		return
	}
	s.logger.InfoContext(r.Context(), "csv export", "records", len(recs))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", exportFilename("csv"))
	w.Write(buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records for xlsx export", "error", err)
		writeServerError(w)
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, recs); err != nil {
		s.logger.ErrorContext(r.Context(), "encode xlsx export", "error", err)
		writeServerError(w)
		return
	}
	s.logger.InfoContext(r.Context(), "xlsx export", "records", len(recs))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", exportFilename("xlsx"))
	w.Write(buf.Bytes())
}

func exportFilename(ext string) string {
	return fmt.Sprintf(`attachment; filename="data-zakat-%s.%s"`,
		time.Now().Format("20060102"), ext)
}
