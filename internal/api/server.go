// Package api serves the dashboard state and controls over HTTP JSON.
package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/jwulff/biomon-go/internal/dashboard"
	"github.com/jwulff/biomon-go/internal/metrics"
	"github.com/jwulff/biomon-go/internal/storage"
)

// Version is reported by /status.
const Version = "0.1.0-dev"

// Server holds the collaborators the handlers read from.
type Server struct {
	dash      *dashboard.Dashboard
	metrics   *metrics.Metrics
	store     storage.Store
	logger    *slog.Logger
	publishes bool
}

// Options configures NewServer. Metrics and Store may be nil.
type Options struct {
	Metrics   *metrics.Metrics
	Store     storage.Store
	Logger    *slog.Logger
	Publishes bool
	// AccessLog receives Apache-style request lines; nil disables them.
	AccessLog io.Writer
}

func NewServer(d *dashboard.Dashboard, opts Options) (*Server, http.Handler) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{
		dash:      d,
		metrics:   opts.Metrics,
		store:     opts.Store,
		logger:    opts.Logger,
		publishes: opts.Publishes,
	}
	return s, s.handler(opts.AccessLog)
}

func (s *Server) handler(accessLog io.Writer) http.Handler {
	r := mux.NewRouter()

	s.route(r, "/status", s.handleStatus, "GET")
	s.route(r, "/dashboard", s.handleDashboard, "GET")
	s.route(r, "/series", s.handleSeries, "GET")

	s.route(r, "/alerts", s.handleAlerts, "GET")
	s.route(r, "/alerts/history", s.handleAlertHistory, "GET")
	s.route(r, "/alerts/{id:[0-9]+}", s.handleDismiss, "DELETE")

	s.route(r, "/log", s.handleLog, "GET")
	s.route(r, "/log", s.handleAddEntry, "POST")
	s.route(r, "/log/refresh", s.handleRefreshLog, "POST")
	s.route(r, "/reset", s.handleReset, "POST")

	s.route(r, "/chart/lines", s.handleLines, "GET")
	s.route(r, "/chart/lines/{kind}/toggle", s.handleToggleLine, "POST")

	s.route(r, "/export/log.csv", s.handleExportLog, "GET")
	s.route(r, "/export/series.csv", s.handleExportSeries, "GET")
	s.route(r, "/export/report.json", s.handleExportReport, "GET")
	s.route(r, "/export/summary.json", s.handleExportSummary, "GET")

	s.route(r, "/archive/readings", s.handleArchiveReadings, "GET")
	s.route(r, "/archive/log", s.handleArchiveLog, "GET")
	s.route(r, "/archive/log/{id}", s.handleArchiveRow, "GET")
	s.route(r, "/archive/alerts", s.handleArchiveAlerts, "GET")

	s.route(r, "/frame.txt", s.handleFrame, "GET")
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	var h http.Handler = r
	h = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	if accessLog != nil {
		h = handlers.LoggingHandler(accessLog, h)
	}
	return h
}

func (s *Server) route(r *mux.Router, path string, h http.HandlerFunc, method string) {
	r.Handle(path, s.metrics.WrapHandler(path, h)).Methods(method)
}

// Start serves h on addr until ctx is cancelled.
func Start(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}
	httpServer := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctxShutdown)
	}()
	go func() {
		logger.Info("api listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("api server error", "err", err)
		}
	}()
	return httpServer
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
