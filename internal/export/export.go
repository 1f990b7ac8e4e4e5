// Package export serializes the series and the log for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/series"
)

// Project identifies the monitored study in exported reports.
const Project = "SB-MED01"

// Report statuses.
const (
	StatusHealthy   = "Healthy"
	StatusAttention = "Attention"
)

var (
	logHeader    = []string{"Timestamp", "Biomarker", "Value", "Unit", "Status"}
	seriesHeader = []string{"timestamp", "troponin", "glucose", "hba1c", "creatinine", "alt"}
)

// LogFilename returns the download name for a log exported on now.
func LogFilename(now time.Time) string {
	return "biomarker_analysis_" + now.Format("2006-01-02") + ".csv"
}

// WriteLogCSV writes rows in display order.
func WriteLogCSV(w io.Writer, rows []logbook.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(logHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{r.Timestamp, string(r.Biomarker), r.FormatValue(), r.Unit, string(r.Status)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSeriesCSV writes one line per reading, oldest first.
func WriteSeriesCSV(w io.Writer, s series.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(seriesHeader); err != nil {
		return err
	}
	for _, r := range s {
		rec := []string{
			r.Label,
			strconv.FormatFloat(r.Troponin, 'f', -1, 64),
			strconv.Itoa(r.Glucose),
			strconv.FormatFloat(r.HbA1c, 'f', -1, 64),
			strconv.FormatFloat(r.Creatinine, 'f', -1, 64),
			strconv.Itoa(r.ALT),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Report is the JSON analysis document.
type Report struct {
	Project       string        `json:"project"`
	Timestamp     string        `json:"timestamp"`
	TotalReadings int           `json:"total_readings"`
	Status        string        `json:"status"`
	Data          series.Series `json:"data"`
}

// BuildReport summarises s. Status is Attention when the latest reading
// has any biomarker at a critical level.
func BuildReport(s series.Series, now time.Time) Report {
	status := StatusHealthy
	if latest, ok := s.Latest(); ok {
		for _, k := range biomarker.Kinds() {
			if biomarker.Classify(k, latest.Value(k)) == biomarker.LevelCritical {
				status = StatusAttention
				break
			}
		}
	}
	return Report{
		Project:       Project,
		Timestamp:     now.UTC().Format(time.RFC3339),
		TotalReadings: len(s),
		Status:        status,
		Data:          s.Clone(),
	}
}

// LogSummary counts log rows by status.
type LogSummary struct {
	Total    int           `json:"total"`
	Critical int           `json:"critical"`
	Elevated int           `json:"elevated"`
	Normal   int           `json:"normal"`
	Records  []logbook.Row `json:"records"`
}

func BuildLogSummary(rows []logbook.Row) LogSummary {
	sum := LogSummary{Total: len(rows), Records: append([]logbook.Row{}, rows...)}
	for _, r := range rows {
		switch r.Status {
		case biomarker.StatusCritical:
			sum.Critical++
		case biomarker.StatusElevated:
			sum.Elevated++
		default:
			sum.Normal++
		}
	}
	return sum
}
