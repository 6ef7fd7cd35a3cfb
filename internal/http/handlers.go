package http

import (
	"encoding/json"
	"net/http"
	"time"

	"zakatku/internal/core"
)

type indexData struct {
	Today   string
	Records []recordView
	Form    formView
}

// handleIndex renders the full dashboard page. The panels inside it load
// and refresh themselves over HTMX.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list records for dashboard", "error", err)
		writeServerError(w)
		return
	}
	today := time.Now().Format(core.TanggalLayout)
	s.render(w, "index.html", indexData{
		Today:   today,
		Records: recordViews(recs),
		Form:    newFormView(today),
	})
}

type loginData struct {
	Error string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	// An already valid session skips the gate.
	if err := s.auth.CheckRequest(r); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", loginData{})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, "login.html", loginData{Error: "Data formulir tidak dapat dibaca"})
		return
	}
	password := r.PostFormValue("password")
	if err := s.auth.VerifyPassword(password); err != nil {
		s.logger.WarnContext(r.Context(), "failed login attempt",
			"client_ip", s.detector.ExtractClientIP(r))
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, "login.html", loginData{Error: "Kata sandi salah"})
		return
	}
	token, err := s.auth.IssueToken()
	if err != nil {
		s.logger.ErrorContext(r.Context(), "issue session token", "error", err)
		writeServerError(w)
		return
	}
	http.SetCookie(w, s.auth.SessionCookie(token))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.auth.ClearCookie())
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReadyz reports readiness by touching the record store.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ListAll(r.Context()); err != nil {
		s.logger.ErrorContext(r.Context(), "readiness probe failed", "error", err)
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	traceMetrics := s.trace.GetMetrics()
	securityMetrics := s.detector.GetMetrics()
	payload := map[string]any{
		"total_requests":           traceMetrics.TotalRequests,
		"average_response_time_us": traceMetrics.AverageResponseTime,
		"suspicious_requests":      securityMetrics.SuspiciousRequests,
		"rate_limited_clients":     s.limiter.GetMetrics().ClientCount,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode metrics", "error", err)
	}
}
