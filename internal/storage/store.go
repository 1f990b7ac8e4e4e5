// Package storage archives readings, log rows and alerts for the running
// session.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/series"
)

// Store is the interface for the session archive.
type Store interface {
	// Init creates the schema when missing.
	Init(ctx context.Context) error

	// Readings
	SaveReading(ctx context.Context, r series.Reading) error
	QueryReadings(ctx context.Context, since, until time.Time) ([]series.Reading, error)

	// Log rows, newest first
	SaveRow(ctx context.Context, row logbook.Row) error
	ListRows(ctx context.Context, limit int) ([]logbook.Row, error)
	GetRow(ctx context.Context, id string) (logbook.Row, error)

	// Alerts, newest first
	SaveAlert(ctx context.Context, a alerts.Alert) error
	ListAlerts(ctx context.Context, limit int) ([]alerts.Alert, error)

	// Lifecycle
	Close() error
}

// DefaultListLimit caps list queries that pass a non-positive limit.
const DefaultListLimit = 100

// Limit normalises a caller-supplied list limit.
func Limit(n int) int {
	if n <= 0 {
		return DefaultListLimit
	}
	return n
}

// ErrNotFound is returned when a record is not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e ErrNotFound) Error() string {
	return e.Resource + " not found: " + e.ID
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	var nf ErrNotFound
	return errors.As(err, &nf)
}
