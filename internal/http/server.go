// Package http serves the dashboard, the account screen and a small JSON API.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"chitieu/internal/chart"
	"chitieu/internal/core"
	"chitieu/internal/ledger"
	applog "chitieu/internal/log"
	"chitieu/internal/middleware/ratelimit"
	"chitieu/internal/middleware/security"
	"chitieu/internal/middleware/trace"
	"chitieu/internal/screen"
	appweb "chitieu/web"
)

const requestTimeout = 7 * time.Second

type (
	SummaryProvider interface {
		Summary(ctx context.Context, st screen.State) (core.Summary, error)
	}

	TransactionRecorder interface {
		Record(ctx context.Context, tx core.Transaction) (string, error)
	}

	// Deps wires the server to the services behind it.
	Deps struct {
		Summaries    SummaryProvider
		Transactions TransactionRecorder
		Categories   ledger.CategoryLister
		Geometry     chart.Geometry
		// Ready backs /readyz; nil means always ready.
		Ready              func(ctx context.Context) error
		RateLimitPerMinute int
		Logger             *applog.Logger
		// Today defaults to core.Today.
		Today func() core.Date
	}
)

type Server struct {
	http.Server
	templates *template.Template
	deps      Deps
	logger    *applog.Logger
	events    *applog.StructuredLogger
	limiter   *ratelimit.Limiter
	detector  *security.Detector
	tracer    *trace.Middleware
	started   time.Time

	shutdownOnce sync.Once
}

// NewServer parses the embedded templates and mounts every route.
func NewServer(addr string, deps Deps) (*Server, error) {
	if deps.Summaries == nil || deps.Transactions == nil || deps.Categories == nil {
		return nil, fmt.Errorf("server dependencies are incomplete")
	}
	if err := deps.Geometry.Validate(); err != nil {
		return nil, err
	}
	if deps.Today == nil {
		deps.Today = core.Today
	}
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		templates: t,
		deps:      deps,
		logger:    logger,
		events:    applog.NewStructuredLogger(logger),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
		detector:  security.NewDetector(),
		started:   time.Now(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	mux := http.NewServeMux()
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/tai-khoan", s.handleAccount)
	mux.HandleFunc("/transactions", s.handleCreateTransaction)
	mux.HandleFunc("/api/summary", s.handleAPISummary)
	mux.HandleFunc("/api/arcs", s.handleAPIArcs)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.limiter.Middleware(s.detector.ExtractClientIP, s.handleRateLimited, http.MethodPost)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           headers.Middleware(s.tracer.Middleware(s.blockSuspicious(limited(mux)))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

// blockSuspicious answers scanner probes with 403 before routing.
func (s *Server) blockSuspicious(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.IsSuspicious(r) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request blocked",
				applog.FieldClientIP, s.detector.ExtractClientIP(r),
				applog.FieldPath, r.URL.Path)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldComponent, applog.ComponentRateLimit,
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	if wantsJSON(r) {
		writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
		return
	}
	http.Error(w, "Bạn thao tác quá nhanh, vui lòng thử lại sau.", http.StatusTooManyRequests)
}

func (s *Server) today() core.Date {
	return s.deps.Today()
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpRender,
			"template", name)
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Uptime: time.Since(s.started).Truncate(time.Second).String(),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ready", Uptime: time.Since(s.started).Truncate(time.Second).String()}
	if s.deps.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.Ready(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Shutdown stops the limiter and drains the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		total, failures := s.tracer.Counts()
		s.logger.Info("HTTP server stopping",
			applog.FieldOperation, applog.OpShutdown,
			"requests", total,
			"failures", failures,
			"rate_limited", s.limiter.Rejected(),
			"suspicious", s.detector.Suspicious())
		err = s.Server.Shutdown(ctx)
	})
	return err
}
