package http

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
)

// HTMX custom event names dispatched via the HX-Trigger header. The
// dashboard listens for these to refresh the report panels.
const (
	EventRecordCreated = "record-created"
	EventRecordUpdated = "record-updated"
	EventRecordDeleted = "record-deleted"
	EventNotification  = "show-notification"
)

// HTMXResponse accumulates trigger events and a status code before the
// body is written. Triggers are flushed as one HX-Trigger JSON header.
type HTMXResponse struct {
	w        http.ResponseWriter
	status   int
	triggers map[string]any
}

func NewHTMXResponse(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{
		w:        w,
		status:   http.StatusOK,
		triggers: make(map[string]any),
	}
}

// WithStatus overrides the response status code.
func (b *HTMXResponse) WithStatus(code int) *HTMXResponse {
	b.status = code
	return b
}

// WithTrigger queues a client-side event with an optional detail payload.
func (b *HTMXResponse) WithTrigger(event string, detail any) *HTMXResponse {
	b.triggers[event] = detail
	return b
}

// WithNotification queues a toast message. Level is "success" or "error".
func (b *HTMXResponse) WithNotification(message, level string) *HTMXResponse {
	b.triggers[EventNotification] = map[string]string{
		"message": message,
		"level":   level,
	}
	return b
}

// Flush writes the queued headers and status. Call once, before the body.
func (b *HTMXResponse) Flush() error {
	if len(b.triggers) > 0 {
		payload, err := json.Marshal(b.triggers)
		if err != nil {
			return fmt.Errorf("marshal HX-Trigger payload: %w", err)
		}
		b.w.Header().Set("HX-Trigger", string(payload))
	}
	b.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	b.w.WriteHeader(b.status)
	return nil
}

// writeErrorFragment renders a standalone error block the form swaps into
// its message slot. The message is escaped; callers may pass user input.
func writeErrorFragment(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="error-message" role="alert">%s</div>`, html.EscapeString(message))
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeErrorFragment(w, http.StatusUnprocessableEntity, message)
}

func writeNotFound(w http.ResponseWriter) {
	writeErrorFragment(w, http.StatusNotFound, "Data tidak ditemukan, mungkin sudah dihapus")
}

func writeServerError(w http.ResponseWriter) {
	writeErrorFragment(w, http.StatusInternalServerError, "Terjadi kesalahan pada server, coba lagi")
}
