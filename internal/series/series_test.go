package series

import (
	"testing"
	"time"

	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource always returns the same draw.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
}

func TestGenerateLengthAndOrder(t *testing.T) {
	s := Generate(fixedNow(), time.UTC, DefaultSource())

	require.Len(t, s, Length)
	for i := 1; i < len(s); i++ {
		assert.True(t, s[i].Time.After(s[i-1].Time), "reading %d not after %d", i, i-1)
		assert.Equal(t, time.Hour, s[i].Time.Sub(s[i-1].Time))
	}
	assert.Equal(t, fixedNow(), s[len(s)-1].Time)
	assert.Equal(t, "12:30", s[len(s)-1].Label)
	assert.Equal(t, "12:30", s[0].Label)
}

func TestGenerateRespectsFloorsAcrossDraws(t *testing.T) {
	for _, src := range []Source{constSource(0), constSource(0.999999), NewSeededSource(7), DefaultSource()} {
		for run := 0; run < 20; run++ {
			s := Generate(fixedNow().Add(time.Duration(run)*37*time.Minute), time.UTC, src)
			for _, r := range s {
				assert.True(t, r.WithinFloors(), "reading %+v below floor", r)
				assert.GreaterOrEqual(t, r.HbA1c, 5.4)
				assert.LessOrEqual(t, r.HbA1c, 5.5)
				assert.GreaterOrEqual(t, r.Troponin, 0.01)
				assert.LessOrEqual(t, r.Troponin, 0.03)
			}
		}
	}
}

func TestGenerateFormulasWithZeroDraw(t *testing.T) {
	// 03:00 local is outside every meal window.
	now := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)
	s := Generate(now, time.UTC, constSource(0))
	last := s[len(s)-1] // i = 0

	assert.Equal(t, 95, last.Glucose)
	assert.Equal(t, 0.01, last.Troponin)
	assert.Equal(t, 5.4, last.HbA1c)
	assert.Equal(t, 0.9, last.Creatinine)
	assert.Equal(t, 35, last.ALT)
}

func TestGenerateMealSpike(t *testing.T) {
	// 09:00 is inside breakfast; a draw of 0.5 adds a 20 mg/dL spike.
	breakfast := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	night := time.Date(2026, 3, 14, 3, 0, 0, 0, time.UTC)

	withSpike := Generate(breakfast, time.UTC, constSource(0.5))
	without := Generate(night, time.UTC, constSource(0.5))

	// i = 0 for both: 95 + 0 + spike + 5
	assert.Equal(t, 120, withSpike[Length-1].Glucose)
	assert.Equal(t, 100, without[Length-1].Glucose)
}

func TestIsMealHour(t *testing.T) {
	for _, h := range []int{8, 9, 10, 13, 14, 15, 19, 20, 21} {
		assert.True(t, isMealHour(h), "hour %d", h)
	}
	for _, h := range []int{0, 7, 11, 12, 16, 18, 22, 23} {
		assert.False(t, isMealHour(h), "hour %d", h)
	}
}

func TestStepPreservesHbA1c(t *testing.T) {
	last := Reading{Troponin: 0.02, Glucose: 100, HbA1c: 5.5, Creatinine: 1.0, ALT: 30}
	for i := 0; i < 100; i++ {
		next := Step(last, fixedNow(), time.UTC, DefaultSource())
		assert.Equal(t, last.HbA1c, next.HbA1c)
		last = next
	}
}

func TestStepNeverBelowFloors(t *testing.T) {
	atFloor := Reading{Troponin: 0, Glucose: FloorGlucose, HbA1c: 5.4, Creatinine: FloorCreatinine, ALT: FloorALT}

	next := Step(atFloor, fixedNow(), time.UTC, constSource(0))

	assert.Equal(t, 0.0, next.Troponin)
	assert.Equal(t, FloorGlucose, next.Glucose)
	assert.Equal(t, FloorCreatinine, next.Creatinine)
	assert.Equal(t, FloorALT, next.ALT)

	r := atFloor
	src := NewSeededSource(42)
	for i := 0; i < 500; i++ {
		r = Step(r, fixedNow(), time.UTC, src)
		require.True(t, r.WithinFloors(), "step %d produced %+v", i, r)
	}
}

func TestStepBoundedPerturbation(t *testing.T) {
	last := Reading{Troponin: 0.2, Glucose: 150, HbA1c: 6.0, Creatinine: 1.5, ALT: 50}

	up := Step(last, fixedNow(), time.UTC, constSource(0.999999))
	assert.InDelta(t, 0.205, up.Troponin, 1e-9)
	assert.Equal(t, 154, up.Glucose)
	assert.InDelta(t, 1.55, up.Creatinine, 1e-9)
	assert.Equal(t, 52, up.ALT)

	down := Step(last, fixedNow(), time.UTC, constSource(0))
	assert.InDelta(t, 0.195, down.Troponin, 1e-9)
	assert.Equal(t, 145, down.Glucose)
	assert.InDelta(t, 1.45, down.Creatinine, 1e-9)
	assert.Equal(t, 47, down.ALT)
}

func TestStepStampsNow(t *testing.T) {
	now := time.Date(2026, 3, 14, 7, 5, 0, 0, time.UTC)
	next := Step(Reading{Glucose: 100, ALT: 20, Creatinine: 1}, now, time.UTC, constSource(0.5))

	assert.Equal(t, now, next.Time)
	assert.Equal(t, "07:05", next.Label)
}

func TestSlideKeepsLengthAndDoesNotMutate(t *testing.T) {
	s := Generate(fixedNow(), time.UTC, DefaultSource())
	before := s.Clone()

	next := Step(s[len(s)-1], fixedNow().Add(3*time.Second), time.UTC, DefaultSource())
	slid := s.Slide(next)

	require.Len(t, slid, Length)
	assert.Equal(t, before, s, "receiver must not change")
	assert.Equal(t, s[1], slid[0])
	assert.Equal(t, next, slid[Length-1])
}

func TestLatestAndPrevious(t *testing.T) {
	var empty Series
	_, ok := empty.Latest()
	assert.False(t, ok)
	_, ok = empty.Previous()
	assert.False(t, ok)

	s := Series{{Glucose: 90}, {Glucose: 100}}
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 100, latest.Glucose)
	prev, ok := s.Previous()
	require.True(t, ok)
	assert.Equal(t, 90, prev.Glucose)
}

func TestReadingValue(t *testing.T) {
	r := Reading{Troponin: 0.03, Glucose: 120, HbA1c: 5.5, Creatinine: 1.1, ALT: 40}

	assert.Equal(t, 0.03, r.Value(biomarker.Troponin))
	assert.Equal(t, 120.0, r.Value(biomarker.Glucose))
	assert.Equal(t, 5.5, r.Value(biomarker.HbA1c))
	assert.Equal(t, 1.1, r.Value(biomarker.Creatinine))
	assert.Equal(t, 40.0, r.Value(biomarker.ALT))
	assert.Equal(t, 0.0, r.Value("Sodium"))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.01, Round(0.03-0.02, 3))
	assert.Equal(t, 1.24, Round(1.2351, 2))
	assert.Equal(t, 5.0, Round(4.96, 1))
}

func TestSeededSourceIsReproducible(t *testing.T) {
	a := Generate(fixedNow(), time.UTC, NewSeededSource(99))
	b := Generate(fixedNow(), time.UTC, NewSeededSource(99))
	assert.Equal(t, a, b)
}
