package logbook

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/biomon-go/internal/biomarker"
)

var now = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func TestSeed(t *testing.T) {
	rows := Seed(now, time.UTC)
	require.Len(t, rows, 10)

	first := rows[0]
	assert.Equal(t, "rec-1000", first.ID)
	assert.Equal(t, biomarker.Troponin, first.Biomarker)
	assert.Equal(t, 0.42, first.Value)
	assert.Equal(t, "ng/mL", first.Unit)
	assert.Equal(t, biomarker.StatusCritical, first.Status)
	assert.Equal(t, "10:30", first.Timestamp)

	assert.Equal(t, biomarker.HbA1c, rows[2].Biomarker)
	assert.Equal(t, biomarker.StatusNormal, rows[2].Status)

	assert.Equal(t, biomarker.HbA1c, rows[6].Biomarker)
	assert.Equal(t, 6.8, rows[6].Value)
	assert.Equal(t, biomarker.StatusCritical, rows[6].Status)

	assert.Equal(t, "rec-1009", rows[9].ID)
	assert.Equal(t, "08:42", rows[9].Timestamp)
	assert.Equal(t, biomarker.StatusElevated, rows[9].Status)
}

func TestSeedStatuses(t *testing.T) {
	want := []biomarker.LogStatus{
		biomarker.StatusCritical, biomarker.StatusElevated, biomarker.StatusNormal,
		biomarker.StatusCritical, biomarker.StatusElevated, biomarker.StatusNormal,
		biomarker.StatusCritical, biomarker.StatusNormal, biomarker.StatusNormal,
		biomarker.StatusElevated,
	}
	for i, r := range Seed(now, time.UTC) {
		assert.Equal(t, want[i], r.Status, "row %d (%s %v)", i, r.Biomarker, r.Value)
	}
}

func TestNewManualRow(t *testing.T) {
	r, err := NewManualRow("Glucose", "150", now, time.UTC)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(r.ID, "manual-"))
	assert.Equal(t, biomarker.Glucose, r.Biomarker)
	assert.Equal(t, 150.0, r.Value)
	assert.Equal(t, "mg/dL", r.Unit)
	assert.Equal(t, biomarker.StatusElevated, r.Status)
	assert.Equal(t, "150", r.FormatValue())
}

func TestNewManualRowIDsAreUnique(t *testing.T) {
	a, err := NewManualRow("alt", "30", now, time.UTC)
	require.NoError(t, err)
	b, err := NewManualRow("alt", "30", now, time.UTC)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewManualRowErrors(t *testing.T) {
	_, err := NewManualRow("Cortisol", "10", now, time.UTC)
	assert.True(t, errors.Is(err, biomarker.ErrUnknownKind))

	_, err = NewManualRow("Glucose", "abc", now, time.UTC)
	assert.True(t, errors.Is(err, ErrMalformedValue))
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"150", 150, false},
		{" 0.42 ", 0.42, false},
		{"-3", -3, false},
		{"", 0, true},
		{"   ", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"-infinity", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.raw)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMalformedValue, "raw %q", tt.raw)
			continue
		}
		assert.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestLogPrependAndReplace(t *testing.T) {
	l := NewLog(Seed(now, time.UTC))
	assert.Equal(t, 10, l.Len())

	r := BuildRow(biomarker.Glucose, 150, "manual-x", now, time.UTC)
	l.Prepend(r)
	assert.Equal(t, 11, l.Len())
	assert.Equal(t, "manual-x", l.List()[0].ID)
	assert.Equal(t, "rec-1000", l.List()[1].ID)

	l.Replace(Seed(now, time.UTC))
	assert.Equal(t, 10, l.Len())
	assert.Equal(t, "rec-1000", l.List()[0].ID)
}

func TestLogListIsCopy(t *testing.T) {
	l := NewLog(Seed(now, time.UTC))
	rows := l.List()
	rows[0].ID = "changed"
	assert.Equal(t, "rec-1000", l.List()[0].ID)
}
