package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseTriggers(t *testing.T) {
	rec := httptest.NewRecorder()
	err := NewHTMXResponse(rec).
		WithTrigger(EventRecordCreated, map[string]string{"id": "abc"}).
		WithNotification("Tersimpan", "success").
		Flush()
	if err != nil {
		t.Fatalf("flush: %v", err)
	}

	header := rec.Header().Get("HX-Trigger")
	if header == "" {
		t.Fatal("missing HX-Trigger header")
	}
	var payload map[string]map[string]string
	if err := json.Unmarshal([]byte(header), &payload); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %v", err)
	}
	if payload[EventRecordCreated]["id"] != "abc" {
		t.Errorf("trigger payload = %v", payload)
	}
	if payload[EventNotification]["message"] != "Tersimpan" {
		t.Errorf("notification payload = %v", payload)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}

func TestHTMXResponseStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := NewHTMXResponse(rec).WithStatus(201).Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if rec.Code != 201 {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("HX-Trigger") != "" {
		t.Error("no triggers queued, header must be absent")
	}
}

func TestErrorFragmentEscapes(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErrorFragment(rec, 422, `<script>alert("x")</script>`)
	body := rec.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatalf("unescaped markup in %q", body)
	}
	if rec.Code != 422 {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(body, `class="error-message"`) {
		t.Errorf("body = %q", body)
	}
}

func TestErrorHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	writeNotFound(rec)
	if rec.Code != 404 {
		t.Errorf("not found status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	writeServerError(rec)
	if rec.Code != 500 {
		t.Errorf("server error status = %d", rec.Code)
	}
}
