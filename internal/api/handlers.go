package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/export"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/render"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/storage"
	"github.com/jwulff/biomon-go/internal/trend"
)

var errStorageDisabled = errors.New("storage is disabled")

type statusResponse struct {
	Status       string `json:"status"`
	Time         string `json:"time"`
	Version      string `json:"version"`
	Storage      bool   `json:"storage"`
	Kafka        bool   `json:"kafka"`
	ActiveAlerts int    `json:"active_alerts"`
	LogEntries   int    `json:"log_entries"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:       "ok",
		Time:         s.dash.Now().UTC().Format(time.RFC3339),
		Version:      Version,
		Storage:      s.store != nil,
		Kafka:        s.publishes,
		ActiveAlerts: s.dash.Alerts().Count(),
		LogEntries:   len(s.dash.Rows()),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Snapshot())
}

type seriesResponse struct {
	Data   series.Series `json:"data"`
	Trends trend.Result  `json:"trends,omitempty"`
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	data := s.dash.Series()
	tr, _ := trend.Compute(data)
	writeJSON(w, http.StatusOK, seriesResponse{Data: data, Trends: tr})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Alerts().Active())
}

func (s *Server) handleAlertHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	history := s.dash.Alerts().History()
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("since: %w", err))
			return
		}
		writeJSON(w, http.StatusOK, history.Since(since))
		return
	}
	writeJSON(w, http.StatusOK, history.List(limit))
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !s.dash.Alerts().Dismiss(id) {
		writeError(w, http.StatusNotFound, fmt.Errorf("alert %d is not active", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Rows())
}

type entryRequest struct {
	Biomarker string          `json:"biomarker"`
	Value     json.RawMessage `json:"value"`
}

// rawValue accepts the value as a JSON string or number.
func (e entryRequest) rawValue() string {
	var str string
	if err := json.Unmarshal(e.Value, &str); err == nil {
		return str
	}
	return strings.TrimSpace(string(e.Value))
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode entry: %w", err))
		return
	}
	row, err := s.dash.AddEntry(req.Biomarker, req.rawValue())
	if err != nil {
		if errors.Is(err, logbook.ErrMalformedValue) || errors.Is(err, biomarker.ErrUnknownKind) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleRefreshLog(w http.ResponseWriter, r *http.Request) {
	s.dash.RefreshLog()
	writeJSON(w, http.StatusOK, s.dash.Rows())
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.dash.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dash.Snapshot().Lines)
}

type toggleResponse struct {
	Kind    biomarker.Kind `json:"kind"`
	Visible bool           `json:"visible"`
}

func (s *Server) handleToggleLine(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["kind"]
	visible, err := s.dash.ToggleLine(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	k, _ := biomarker.ParseKind(name)
	writeJSON(w, http.StatusOK, toggleResponse{Kind: k, Visible: visible})
}

func (s *Server) handleExportLog(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.LogFilename(s.dash.Now())))
	if err := export.WriteLogCSV(w, s.dash.Rows()); err != nil {
		s.logger.Error("export log", "err", err)
	}
}

func (s *Server) handleExportSeries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="biomarker_series.csv"`)
	if err := export.WriteSeriesCSV(w, s.dash.Series()); err != nil {
		s.logger.Error("export series", "err", err)
	}
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, export.BuildReport(s.dash.Series(), s.dash.Now()))
}

func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, export.BuildLogSummary(s.dash.Rows()))
}

func (s *Server) handleArchiveReadings(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, errStorageDisabled)
		return
	}
	now := s.dash.Now()
	since, err := queryTime(r, "since", now.Add(-24*time.Hour))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	until, err := queryTime(r, "until", now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	readings, err := s.store.QueryReadings(r.Context(), since, until)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(readings))
}

func (s *Server) handleArchiveLog(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, errStorageDisabled)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rows, err := s.store.ListRows(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(rows))
}

func (s *Server) handleArchiveRow(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, errStorageDisabled)
		return
	}
	row, err := s.store.GetRow(r.Context(), mux.Vars(r)["id"])
	if storage.IsNotFound(err) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleArchiveAlerts(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, errStorageDisabled)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	list, err := s.store.ListAlerts(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(list))
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, render.ASCII(s.dash.Frame()))
}

func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("limit must be a non-negative integer")
	}
	return n, nil
}

func queryTime(r *http.Request, key string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
