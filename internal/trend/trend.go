// Package trend derives per-biomarker direction and change from the two
// newest readings of a series.
package trend

import (
	"errors"
	"math"
	"strconv"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/series"
)

// ErrInsufficientData is returned when fewer than two readings exist.
var ErrInsufficientData = errors.New("trend needs at least two readings")

// Direction is the sign of the most recent change.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Arrows maps directions to text arrows for terminal display.
var Arrows = map[Direction]string{
	Up:   "^",
	Down: "v",
}

// UnicodeArrows maps directions to the arrows shown in terminals that
// render Unicode.
var UnicodeArrows = map[Direction]string{
	Up:   "↑",
	Down: "↓",
}

// Change describes one biomarker's movement between the last two readings.
type Change struct {
	Direction Direction `json:"direction"`
	Delta     float64   `json:"delta"`
}

// Result holds the change for every biomarker.
type Result map[biomarker.Kind]Change

// Compute compares the newest reading with the one before it. Ties count
// as Down.
func Compute(s series.Series) (Result, error) {
	latest, ok := s.Latest()
	if !ok {
		return nil, ErrInsufficientData
	}
	previous, ok := s.Previous()
	if !ok {
		return nil, ErrInsufficientData
	}
	return Between(previous, latest), nil
}

// Between computes the change from previous to latest.
func Between(previous, latest series.Reading) Result {
	out := make(Result, len(biomarker.Kinds()))
	for _, k := range biomarker.Kinds() {
		cur, prev := latest.Value(k), previous.Value(k)
		dir := Down
		if cur > prev {
			dir = Up
		}
		out[k] = Change{
			Direction: dir,
			Delta:     series.Round(math.Abs(cur-prev), biomarker.DeltaPrecision(k)),
		}
	}
	return out
}

// FormatDelta renders a delta with the precision used for k.
func FormatDelta(k biomarker.Kind, delta float64) string {
	return strconv.FormatFloat(delta, 'f', biomarker.DeltaPrecision(k), 64)
}

// MapArrow converts a direction to its display arrow.
func MapArrow(d Direction) string {
	if a, ok := Arrows[d]; ok {
		return a
	}
	return "?"
}

// MapUnicodeArrow converts a direction to its Unicode arrow.
func MapUnicodeArrow(d Direction) string {
	if a, ok := UnicodeArrows[d]; ok {
		return a
	}
	return "?"
}
