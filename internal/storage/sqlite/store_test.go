package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/storage"
)

var base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewMemoryStore(t *testing.T) {
	store, err := NewMemoryStore()
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
	assert.NoError(t, store.Init(context.Background()))
}

func TestNewFileStore(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewFileStore(tmpDir + "/test.db")
	require.NoError(t, err)
	defer store.Close()

	assert.NotNil(t, store)
}

// Reading tests

func TestSaveAndQueryReadings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		r := series.Reading{
			Time:       base.Add(time.Duration(i) * time.Hour),
			Label:      base.Add(time.Duration(i) * time.Hour).Format(series.LabelLayout),
			Troponin:   0.012,
			Glucose:    100 + i,
			HbA1c:      5.4,
			Creatinine: 0.91,
			ALT:        30,
		}
		require.NoError(t, store.SaveReading(ctx, r))
	}

	got, err := store.QueryReadings(ctx, base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, 101, got[0].Glucose)
	assert.Equal(t, "10:00", got[0].Label)
	assert.Equal(t, 0.012, got[0].Troponin)
	assert.True(t, got[0].Time.Equal(base.Add(time.Hour)))
	assert.Equal(t, 102, got[1].Glucose)
}

func TestQueryReadingsEmpty(t *testing.T) {
	store := newTestStore(t)

	got, err := store.QueryReadings(context.Background(), base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Log row tests

func TestSaveAndGetRow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	row := logbook.BuildRow(biomarker.Glucose, 150, "manual-1", base, time.UTC)
	require.NoError(t, store.SaveRow(ctx, row))

	got, err := store.GetRow(ctx, "manual-1")
	require.NoError(t, err)

	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, row.Timestamp, got.Timestamp)
	assert.Equal(t, biomarker.Glucose, got.Biomarker)
	assert.Equal(t, 150.0, got.Value)
	assert.Equal(t, "mg/dL", got.Unit)
	assert.Equal(t, biomarker.StatusElevated, got.Status)
	assert.True(t, got.At.Equal(base))
}

func TestGetRowNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetRow(context.Background(), "nope")
	assert.True(t, storage.IsNotFound(err))
}

func TestListRowsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seed := logbook.Seed(base, time.UTC)
	for i := len(seed) - 1; i >= 0; i-- {
		require.NoError(t, store.SaveRow(ctx, seed[i]))
	}

	got, err := store.ListRows(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "rec-1000", got[0].ID)
	assert.Equal(t, "rec-1001", got[1].ID)
	assert.Equal(t, "rec-1002", got[2].ID)
}

func TestSaveRowReplacesSameID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRow(ctx, logbook.BuildRow(biomarker.ALT, 25, "rec-1", base, time.UTC)))
	require.NoError(t, store.SaveRow(ctx, logbook.BuildRow(biomarker.ALT, 75, "rec-1", base, time.UTC)))

	got, err := store.ListRows(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 75.0, got[0].Value)
}

// Alert tests

func TestSaveAndListAlerts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveAlert(ctx, alerts.Alert{ID: 0, Message: "first", RaisedAt: base}))
	require.NoError(t, store.SaveAlert(ctx, alerts.Alert{ID: 1, Message: "second", RaisedAt: base.Add(time.Second)}))

	got, err := store.ListAlerts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Message)
	assert.Equal(t, int64(1), got[0].ID)
	assert.True(t, got[1].RaisedAt.Equal(base))
}
