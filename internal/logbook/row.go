// Package logbook builds the tabular biomarker log: a fixed demonstration
// seed plus manual entries prepended by the user.
package logbook

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/series"
)

// ErrMalformedValue is returned for manual values that are not finite numbers.
var ErrMalformedValue = errors.New("malformed biomarker value")

// Row is one log entry. Unit and Status are derived from Biomarker and Value.
type Row struct {
	ID        string              `json:"id"`
	Timestamp string              `json:"timestamp"`
	Biomarker biomarker.Kind      `json:"biomarker"`
	Value     float64             `json:"value"`
	Unit      string              `json:"unit"`
	Status    biomarker.LogStatus `json:"status"`
	At        time.Time           `json:"-"`
}

// BuildRow creates a row for value of kind k, stamped at.
func BuildRow(k biomarker.Kind, value float64, id string, at time.Time, loc *time.Location) Row {
	if loc == nil {
		loc = time.Local
	}
	return Row{
		ID:        id,
		Timestamp: at.In(loc).Format(series.LabelLayout),
		Biomarker: k,
		Value:     value,
		Unit:      biomarker.UnitOf(k),
		Status:    biomarker.ClassifyLog(k, value),
		At:        at,
	}
}

// NewManualRow validates a user entry and builds a row with a fresh id.
func NewManualRow(kindName, raw string, at time.Time, loc *time.Location) (Row, error) {
	k, err := biomarker.ParseKind(kindName)
	if err != nil {
		return Row{}, err
	}
	v, err := ParseValue(raw)
	if err != nil {
		return Row{}, err
	}
	return BuildRow(k, v, ManualID(), at, loc), nil
}

// ManualID returns a unique id for a user-entered row.
func ManualID() string {
	return "manual-" + uuid.NewString()
}

// ParseValue parses a manual value. NaN and infinities are rejected so the
// classifier only ever sees finite numbers.
func ParseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrMalformedValue)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedValue, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrMalformedValue, raw)
	}
	return v, nil
}

// FormatValue renders the row value without trailing zeros.
func (r Row) FormatValue() string {
	return strconv.FormatFloat(r.Value, 'f', -1, 64)
}
