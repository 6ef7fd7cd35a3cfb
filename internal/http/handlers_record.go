package http

import (
	"errors"
	"net/http"
	"time"

	"zakatku/internal/core"
	"zakatku/internal/records"
)

type tableData struct {
	Records []recordView
}

// renderTable writes the records table partial from the current store
// contents. Mutating handlers reuse it so the client sees the new state in
// the same response that confirms the mutation.
func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, resp *HTMXResponse) {
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records", "error", err)
		writeServerError(w)
		return
	}
	if resp != nil {
		if err := resp.Flush(); err != nil {
			s.logger.ErrorContext(r.Context(), "flush htmx response", "error", err)
			writeServerError(w)
			return
		}
	}
	s.render(w, "records_table.html", tableData{Records: recordViews(recs)})
}

func (s *Server) handleRecordsTable(w http.ResponseWriter, r *http.Request) {
	s.renderTable(w, r, nil)
}

func (s *Server) handleRecordNew(w http.ResponseWriter, r *http.Request) {
	s.render(w, "record_form.html", newFormView(time.Now().Format(core.TanggalLayout)))
}

func (s *Server) handleRecordCreate(w http.ResponseWriter, r *http.Request) {
	draft, err := parseRecordForm(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if err := draft.Validate(); err != nil {
		writeValidationError(w, validationMessage(err))
		return
	}
	rec, err := s.store.Create(r.Context(), draft)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "create record", "error", err)
		writeServerError(w)
		return
	}
	s.logger.InfoContext(r.Context(), "record created",
		"record_id", rec.ID, "tanggal", rec.Tanggal, "penginput", rec.Penginput)

	resp := NewHTMXResponse(w).
		WithTrigger(EventRecordCreated, map[string]string{"id": rec.ID}).
		WithNotification("Data zakat tersimpan", "success")
	s.renderTable(w, r, resp)
}

func (s *Server) handleRecordEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			writeNotFound(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "load record for edit", "record_id", id, "error", err)
		writeServerError(w)
		return
	}
	s.render(w, "record_form.html", editFormView(rec))
}

func (s *Server) handleRecordUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	draft, err := parseRecordForm(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if err := draft.Validate(); err != nil {
		writeValidationError(w, validationMessage(err))
		return
	}
	rec, err := s.store.Update(r.Context(), id, draft)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			writeNotFound(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "update record", "record_id", id, "error", err)
		writeServerError(w)
		return
	}
	s.logger.InfoContext(r.Context(), "record updated",
		"record_id", rec.ID, "tanggal", rec.Tanggal, "penginput", rec.Penginput)

	resp := NewHTMXResponse(w).
		WithTrigger(EventRecordUpdated, map[string]string{"id": rec.ID}).
		WithNotification("Perubahan tersimpan", "success")
	s.renderTable(w, r, resp)
}

func (s *Server) handleRecordDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			writeNotFound(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "delete record", "record_id", id, "error", err)
		writeServerError(w)
		return
	}
	s.logger.InfoContext(r.Context(), "record deleted", "record_id", id)

	resp := NewHTMXResponse(w).
		WithTrigger(EventRecordDeleted, map[string]string{"id": id}).
		WithNotification("Data dihapus", "success")
	s.renderTable(w, r, resp)
}
