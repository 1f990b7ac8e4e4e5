package logbook

import (
	"fmt"
	"time"

	"github.com/jwulff/biomon-go/internal/biomarker"
)

// SeedSpacing separates consecutive seeded rows.
const SeedSpacing = 12 * time.Minute

type scenario struct {
	kind  biomarker.Kind
	value float64
}

var scenarios = []scenario{
	{biomarker.Troponin, 0.42},
	{biomarker.Glucose, 165},
	{biomarker.HbA1c, 5.4},
	{biomarker.Creatinine, 2.1},
	{biomarker.ALT, 75},
	{biomarker.Glucose, 95},
	{biomarker.HbA1c, 6.8},
	{biomarker.Troponin, 0.01},
	{biomarker.ALT, 25},
	{biomarker.Creatinine, 1.5},
}

// Seed builds the demonstration log, newest first. Row i is stamped
// i*SeedSpacing before now.
func Seed(now time.Time, loc *time.Location) []Row {
	rows := make([]Row, len(scenarios))
	for i, sc := range scenarios {
		at := now.Add(-time.Duration(i) * SeedSpacing)
		rows[i] = BuildRow(sc.kind, sc.value, fmt.Sprintf("rec-%d", 1000+i), at, loc)
	}
	return rows
}
