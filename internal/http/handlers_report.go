package http

import (
	"net/http"

	"zakatku/internal/core"
)

// Report panels recompute their aggregates from the store on every request.
// There is deliberately no caching here: a panel refreshed right after an
// entry must already include it.

type reportData struct {
	Rows    []reportRowView
	Summary summaryView
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records for report", "error", err)
		writeServerError(w)
		return
	}
	rows := core.ReportRows(recs)
	views := make([]reportRowView, len(rows))
	for i, row := range rows {
		views[i] = newReportRowView(row)
	}
	s.render(w, "report.html", reportData{
		Rows:    views,
		Summary: newSummaryView(core.Summarize(rows)),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records for summary", "error", err)
		writeServerError(w)
		return
	}
	s.render(w, "summary.html", newSummaryView(core.Summarize(core.ReportRows(recs))))
}

type snapshotData struct {
	Tanggal      string
	TotalRecords int
	Items        []core.SnapshotItem
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	tanggal := parseTanggalParam(r)
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records for snapshot", "error", err)
		writeServerError(w)
		return
	}
	snap := core.SnapshotForDate(recs, tanggal)
	s.render(w, "snapshot.html", snapshotData{
		Tanggal:      snap.Tanggal,
		TotalRecords: snap.TotalRecords,
		Items:        snap.Items,
	})
}
