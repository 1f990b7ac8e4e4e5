// Package series generates and advances the synthetic 24-hour biomarker
// time series shown on the dashboard chart.
package series

import (
	"math"
	"time"

	"github.com/jwulff/biomon-go/internal/biomarker"
)

// Length is the number of hourly readings a series holds (now-24h..now).
const Length = 25

// LabelLayout formats reading labels as 24-hour HH:MM.
const LabelLayout = "15:04"

// Physiological floors enforced on every generated or stepped reading.
const (
	FloorTroponin   = 0.0
	FloorGlucose    = 60
	FloorCreatinine = 0.5
	FloorALT        = 10
)

// Reading is one multi-biomarker point in the series.
type Reading struct {
	Time       time.Time `json:"-"`
	Label      string    `json:"timestamp"`
	Troponin   float64   `json:"troponin"`   // ng/mL, 3 decimals
	Glucose    int       `json:"glucose"`    // mg/dL
	HbA1c      float64   `json:"hba1c"`      // %, 1 decimal, constant per session
	Creatinine float64   `json:"creatinine"` // mg/dL, 2 decimals
	ALT        int       `json:"alt"`        // U/L
}

// Value returns the reading's value for k, or 0 for unknown kinds.
func (r Reading) Value(k biomarker.Kind) float64 {
	switch k {
	case biomarker.Troponin:
		return r.Troponin
	case biomarker.Glucose:
		return float64(r.Glucose)
	case biomarker.HbA1c:
		return r.HbA1c
	case biomarker.Creatinine:
		return r.Creatinine
	case biomarker.ALT:
		return float64(r.ALT)
	default:
		return 0
	}
}

// WithinFloors reports whether every field respects its physiological floor.
func (r Reading) WithinFloors() bool {
	return r.Troponin >= FloorTroponin &&
		r.Glucose >= FloorGlucose &&
		r.Creatinine >= FloorCreatinine &&
		r.ALT >= FloorALT
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func label(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(LabelLayout)
}
