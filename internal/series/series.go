package series

import (
	"math"
	"time"
)

// Series is an ordered, fixed-length window of hourly readings.
// Values are never modified in place; Slide returns a new Series.
type Series []Reading

// Generate builds a fresh series covering now-24h..now at one-hour steps.
func Generate(now time.Time, loc *time.Location, src Source) Series {
	if loc == nil {
		loc = time.Local
	}
	out := make(Series, 0, Length)
	for i := Length - 1; i >= 0; i-- {
		t := now.Add(-time.Duration(i) * time.Hour)
		out = append(out, generatePoint(t, i, loc, src))
	}
	return out
}

func generatePoint(t time.Time, i int, loc *time.Location, src Source) Reading {
	x := float64(i)
	mealSpike := 0.0
	if isMealHour(t.In(loc).Hour()) {
		mealSpike = Uniform(src, 0, 40)
	}
	glucose := math.Floor(95 + 10*math.Sin(0.5*x) + mealSpike + Uniform(src, 0, 10))

	return Reading{
		Time:       t,
		Label:      label(t, loc),
		Troponin:   Round(0.01+Uniform(src, 0, 0.02), 3),
		Glucose:    int(glucose),
		HbA1c:      Round(5.4+Uniform(src, 0, 0.1), 1),
		Creatinine: Round(0.9+0.2*math.Sin(0.2*x)+Uniform(src, 0, 0.1), 2),
		ALT:        int(math.Floor(25 + 10*math.Cos(0.3*x) + Uniform(src, 0, 5))),
	}
}

// isMealHour reports whether a local hour falls in a breakfast, lunch or
// dinner window.
func isMealHour(h int) bool {
	return (h >= 8 && h <= 10) || (h >= 13 && h <= 15) || (h >= 19 && h <= 21)
}

// Step produces the reading that follows last, stamped at now.
// HbA1c is carried forward unchanged.
func Step(last Reading, now time.Time, loc *time.Location, src Source) Reading {
	return Reading{
		Time:       now,
		Label:      label(now, loc),
		Troponin:   math.Max(FloorTroponin, Round(last.Troponin+Uniform(src, -0.005, 0.005), 3)),
		Glucose:    max(FloorGlucose, int(math.Floor(float64(last.Glucose)+Uniform(src, -5, 5)))),
		HbA1c:      last.HbA1c,
		Creatinine: math.Max(FloorCreatinine, Round(last.Creatinine+Uniform(src, -0.05, 0.05), 2)),
		ALT:        max(FloorALT, int(math.Floor(float64(last.ALT)+Uniform(src, -3, 3)))),
	}
}

// Slide returns a new series with the oldest reading dropped and next
// appended. The receiver is left untouched.
func (s Series) Slide(next Reading) Series {
	out := make(Series, 0, len(s))
	if len(s) > 0 {
		out = append(out, s[1:]...)
	}
	return append(out, next)
}

// Latest returns the newest reading. ok is false for an empty series.
func (s Series) Latest() (Reading, bool) {
	if len(s) == 0 {
		return Reading{}, false
	}
	return s[len(s)-1], true
}

// Previous returns the reading before the newest one.
func (s Series) Previous() (Reading, bool) {
	if len(s) < 2 {
		return Reading{}, false
	}
	return s[len(s)-2], true
}

// Clone returns an independent copy of s.
func (s Series) Clone() Series {
	out := make(Series, len(s))
	copy(out, s)
	return out
}
