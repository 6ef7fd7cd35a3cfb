// Package http serves the committee-facing entry and reporting UI. Pages
// are server-rendered; the dashboard panels refresh over HTMX partials.
package http

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"zakatku/internal/auth"
	"zakatku/internal/log"
	"zakatku/internal/middleware/ratelimit"
	"zakatku/internal/middleware/security"
	"zakatku/internal/middleware/trace"
	"zakatku/internal/records"
	"zakatku/web"
)

// staticCacheMaxAge is one day; assets are fingerprint-free so longer
// caching would pin stale css after a deploy.
const staticCacheMaxAge = 86400

type Config struct {
	Addr              string
	Store             records.Store
	Auth              *auth.Manager
	Logger            *log.Logger
	RequestsPerMinute int
}

type Server struct {
	httpServer *http.Server
	store      records.Store
	auth       *auth.Manager
	logger     *log.Logger
	templates  *template.Template

	limiter  *ratelimit.Limiter
	detector *security.Detector
	trace    *trace.Middleware

	stopOnce sync.Once
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server requires a record store")
	}
	if cfg.Auth == nil {
		return nil, fmt.Errorf("server requires an auth manager")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	templates, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	detector := security.NewDetector()
	s := &Server{
		store:     cfg.Store,
		auth:      cfg.Auth,
		logger:    cfg.Logger,
		templates: templates,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RequestsPerMinute,
		}),
		detector: detector,
		trace:    trace.NewMiddleware(detector.ExtractClientIP),
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler builds the full middleware chain around the route table. Exposed
// so tests can drive the server through httptest without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLoginSubmit)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	mux.Handle("GET /static/",
		security.StaticAssetMiddleware(staticCacheMaxAge)(http.FileServerFS(web.StaticFS)))

	protected := http.NewServeMux()
	protected.HandleFunc("GET /{$}", s.handleIndex)
	protected.HandleFunc("GET /records", s.handleRecordsTable)
	protected.HandleFunc("GET /records/new", s.handleRecordNew)
	protected.HandleFunc("POST /records", s.handleRecordCreate)
	protected.HandleFunc("GET /records/{id}/edit", s.handleRecordEdit)
	protected.HandleFunc("PUT /records/{id}", s.handleRecordUpdate)
	protected.HandleFunc("DELETE /records/{id}", s.handleRecordDelete)
	protected.HandleFunc("GET /ui/report", s.handleReport)
	protected.HandleFunc("GET /ui/summary", s.handleSummary)
	protected.HandleFunc("GET /ui/snapshot", s.handleSnapshot)
	protected.HandleFunc("GET /export/csv", s.handleExportCSV)
	protected.HandleFunc("GET /export/xlsx", s.handleExportXLSX)
	mux.Handle("/", s.auth.Middleware(s.limitMutations(protected)))

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	return s.trace.Middleware(headers.Middleware(s.logSuspicious(mux)))
}

// limitMutations rate-limits state-changing requests only; report polling
// stays unthrottled.
func (s *Server) limitMutations(next http.Handler) http.Handler {
	limited := s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.WarnContext(r.Context(), "rate limit exceeded",
			"client_ip", s.detector.ExtractClientIP(r), "path", r.URL.Path)
		w.Header().Set("Retry-After", "60")
		writeErrorFragment(w, http.StatusTooManyRequests, "Terlalu banyak permintaan, coba lagi sebentar")
	})(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
			limited.ServeHTTP(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// logSuspicious flags but does not block; the app sits behind the auth
// gate, so detection here is for the audit trail.
func (s *Server) logSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			s.logger.WarnContext(r.Context(), "suspicious request",
				"client_ip", s.detector.ExtractClientIP(r),
				"method", r.Method,
				"path", r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("render template", "template", name, "error", err)
		writeServerError(w)
		return
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	buf.WriteTo(w)
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		s.limiter.Stop()
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}
