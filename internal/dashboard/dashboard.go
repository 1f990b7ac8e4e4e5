// Package dashboard drives the live biomarker view: it advances the series
// on a fixed cadence, raises alerts for critical readings and keeps the
// manual log.
package dashboard

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/metrics"
	"github.com/jwulff/biomon-go/internal/notify"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/storage"
	"github.com/jwulff/biomon-go/internal/trend"
)

// Default driver cadences.
const (
	DefaultRefreshInterval = 3 * time.Second
	DefaultClockInterval   = 30 * time.Second
)

// UpdatedLayout formats the "last updated" label.
const UpdatedLayout = "15:04:05"

const archiveTimeout = 2 * time.Second

// Options wires a Dashboard. Nil collaborators are skipped.
type Options struct {
	Clock           clockwork.Clock
	Location        *time.Location
	Source          series.Source
	RefreshInterval time.Duration
	ClockInterval   time.Duration
	Alerts          alerts.Config
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	Store           storage.Store
	Publisher       *notify.Publisher
}

// Dashboard owns the live series, the alert manager and the log.
type Dashboard struct {
	clock     clockwork.Clock
	loc       *time.Location
	src       series.Source
	refresh   time.Duration
	clockTick time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	store     storage.Store
	publisher *notify.Publisher

	// tickMu serialises writers of the series and the random source.
	tickMu sync.Mutex
	series atomic.Pointer[series.Series]

	alerts *alerts.Manager
	rows   *logbook.Log

	mu             sync.RWMutex
	lines          map[biomarker.Kind]bool
	lastUpdated    time.Time
	logUpdated     time.Time
	recommendation string
}

// New builds a dashboard with a freshly generated series and the seeded log.
func New(opts Options) *Dashboard {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Source == nil {
		opts.Source = series.DefaultSource()
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = DefaultClockInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	d := &Dashboard{
		clock:     opts.Clock,
		loc:       opts.Location,
		src:       opts.Source,
		refresh:   opts.RefreshInterval,
		clockTick: opts.ClockInterval,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		store:     opts.Store,
		publisher: opts.Publisher,
		alerts:    alerts.NewManager(opts.Clock, opts.Alerts),
		rows:      logbook.NewLog(nil),
		lines:     DefaultLines(),
	}

	now := d.clock.Now()
	s := series.Generate(now, d.loc, d.src)
	d.series.Store(&s)
	d.lastUpdated = now
	d.logUpdated = now
	if latest, ok := s.Latest(); ok {
		d.recommendation = alerts.Recommendation(latest)
	}
	d.RefreshLog()
	return d
}

// Run drives the data refresh and the log table clock until ctx is done.
func (d *Dashboard) Run(ctx context.Context) {
	refresh := d.clock.NewTicker(d.refresh)
	defer refresh.Stop()
	clockTick := d.clock.NewTicker(d.clockTick)
	defer clockTick.Stop()

	d.logger.Info("dashboard running",
		"refresh_interval", d.refresh.String(),
		"clock_interval", d.clockTick.String())

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dashboard stopped")
			return
		case <-refresh.Chan():
			d.Tick()
		case t := <-clockTick.Chan():
			d.mu.Lock()
			d.logUpdated = t
			d.mu.Unlock()
		}
	}
}

// Tick appends one stepped reading, raises alerts for its critical values
// and refreshes the recommendation. It returns the new reading.
func (d *Dashboard) Tick() series.Reading {
	d.tickMu.Lock()
	now := d.clock.Now()
	cur := *d.series.Load()
	var next series.Reading
	if last, ok := cur.Latest(); ok {
		next = series.Step(last, now, d.loc, d.src)
		slid := cur.Slide(next)
		d.series.Store(&slid)
	} else {
		fresh := series.Generate(now, d.loc, d.src)
		d.series.Store(&fresh)
		next, _ = fresh.Latest()
	}
	d.tickMu.Unlock()

	d.metrics.ReadingAppended()
	d.archive("reading", func(ctx context.Context) error { return d.store.SaveReading(ctx, next) })

	for _, tr := range alerts.Triggers(next) {
		a, raised := d.alerts.Raise(tr.Message)
		if !raised {
			d.metrics.AlertSuppressed()
			continue
		}
		d.metrics.AlertRaised(string(tr.Kind))
		d.logger.Warn("critical alert raised", "alert_id", a.ID, "kind", string(tr.Kind), "message", a.Message)
		d.publisher.Publish(a)
		d.archive("alert", func(ctx context.Context) error { return d.store.SaveAlert(ctx, a) })
	}

	rec := alerts.Recommendation(next)
	d.mu.Lock()
	d.recommendation = rec
	d.lastUpdated = now
	d.mu.Unlock()
	return next
}

// Series returns the current window. Callers must not modify it.
func (d *Dashboard) Series() series.Series {
	return *d.series.Load()
}

// Alerts exposes the alert manager for dismissal and history.
func (d *Dashboard) Alerts() *alerts.Manager {
	return d.alerts
}

// Rows returns the log in display order.
func (d *Dashboard) Rows() []logbook.Row {
	return d.rows.List()
}

// Location is the timezone labels are rendered in.
func (d *Dashboard) Location() *time.Location {
	return d.loc
}

// Now reads the dashboard clock.
func (d *Dashboard) Now() time.Time {
	return d.clock.Now()
}

// AddEntry validates a manual entry and prepends it to the log.
func (d *Dashboard) AddEntry(kindName, raw string) (logbook.Row, error) {
	row, err := logbook.NewManualRow(kindName, raw, d.clock.Now(), d.loc)
	if err != nil {
		d.logger.Warn("manual entry rejected", "biomarker", kindName, "value", raw, "err", err)
		return logbook.Row{}, err
	}
	d.rows.Prepend(row)
	d.metrics.LogEntry(string(row.Status))
	d.logger.Info("manual entry added", "row_id", row.ID, "biomarker", string(row.Biomarker), "status", string(row.Status))
	d.archive("log row", func(ctx context.Context) error { return d.store.SaveRow(ctx, row) })
	return row, nil
}

// RefreshLog replaces the log with a freshly stamped demonstration seed.
func (d *Dashboard) RefreshLog() {
	rows := logbook.Seed(d.clock.Now(), d.loc)
	d.rows.Replace(rows)
	// Archive oldest first so newest-first listing matches the log.
	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		d.archive("log row", func(ctx context.Context) error { return d.store.SaveRow(ctx, row) })
	}
}

// Reset regenerates the series, clears every alert and reseeds the log.
func (d *Dashboard) Reset() {
	d.tickMu.Lock()
	now := d.clock.Now()
	s := series.Generate(now, d.loc, d.src)
	d.series.Store(&s)
	d.tickMu.Unlock()

	d.alerts.Reset()
	d.RefreshLog()

	latest, _ := s.Latest()
	d.mu.Lock()
	d.recommendation = alerts.Recommendation(latest)
	d.lastUpdated = now
	d.logUpdated = now
	d.mu.Unlock()
	d.logger.Info("dashboard reset")
}

func (d *Dashboard) archive(what string, save func(ctx context.Context) error) {
	if d.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	if err := save(ctx); err != nil {
		d.logger.Error("archive failed", "record", what, "err", err)
	}
}

// Card is one stat tile.
type Card struct {
	Kind      biomarker.Kind       `json:"kind"`
	Value     string               `json:"value"`
	Unit      string               `json:"unit"`
	Status    biomarker.LiveStatus `json:"status"`
	Direction trend.Direction      `json:"direction"`
	Delta     string               `json:"delta"`
}

// Snapshot is a consistent read of everything the view shows.
type Snapshot struct {
	Latest          series.Reading  `json:"latest"`
	Cards           []Card          `json:"cards"`
	Recommendation  string          `json:"recommendation"`
	Critical        bool            `json:"critical"`
	Alerts          []alerts.Alert  `json:"alerts"`
	Lines           map[string]bool `json:"lines"`
	LastUpdated     time.Time       `json:"last_updated"`
	UpdatedLabel    string          `json:"updated_label"`
	LogUpdated      time.Time       `json:"log_updated"`
	LogUpdatedLabel string          `json:"log_updated_label"`
}

// Snapshot reads the current state without blocking the drivers.
func (d *Dashboard) Snapshot() Snapshot {
	s := d.Series()
	latest, _ := s.Latest()
	// nil when the window is too short; cards then carry no trend.
	changes, _ := trend.Compute(s)

	cards := make([]Card, 0, len(biomarker.Kinds()))
	for _, k := range biomarker.Kinds() {
		v := latest.Value(k)
		c := Card{
			Kind:   k,
			Value:  strconv.FormatFloat(v, 'f', biomarker.Precision(k), 64),
			Unit:   biomarker.UnitOf(k),
			Status: biomarker.ClassifyLive(k, v),
		}
		if ch, ok := changes[k]; ok {
			c.Direction = ch.Direction
			c.Delta = trend.FormatDelta(k, ch.Delta)
		}
		cards = append(cards, c)
	}

	active := d.alerts.Active()

	d.mu.RLock()
	defer d.mu.RUnlock()
	lines := make(map[string]bool, len(d.lines))
	for k, on := range d.lines {
		lines[k.Key()] = on
	}
	return Snapshot{
		Latest:          latest,
		Cards:           cards,
		Recommendation:  d.recommendation,
		Critical:        len(active) > 0,
		Alerts:          active,
		Lines:           lines,
		LastUpdated:     d.lastUpdated,
		UpdatedLabel:    d.lastUpdated.In(d.loc).Format(UpdatedLayout),
		LogUpdated:      d.logUpdated,
		LogUpdatedLabel: d.logUpdated.In(d.loc).Format(UpdatedLayout),
	}
}
