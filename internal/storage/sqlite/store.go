// Package sqlite provides a SQLite implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/storage"

	_ "modernc.org/sqlite"
)

// Store is a SQLite implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// NewMemoryStore creates an in-memory SQLite store that lives as long as
// the process.
func NewMemoryStore() (*Store, error) {
	return newStore(":memory:")
}

// NewFileStore creates a file-based SQLite store.
func NewFileStore(path string) (*Store, error) {
	return newStore(path)
}

func newStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.Init(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return store, nil
}

// Init applies the schema. It is safe to call more than once.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reading methods

func (s *Store) SaveReading(ctx context.Context, r series.Reading) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (ts, label, troponin, glucose, hba1c, creatinine, alt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.Time.UnixMilli(), r.Label, r.Troponin, r.Glucose, r.HbA1c, r.Creatinine, r.ALT)
	return err
}

func (s *Store) QueryReadings(ctx context.Context, since, until time.Time) ([]series.Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, label, troponin, glucose, hba1c, creatinine, alt FROM readings
		WHERE ts >= ? AND ts <= ?
		ORDER BY ts ASC, id ASC
	`, since.UnixMilli(), until.UnixMilli())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []series.Reading
	for rows.Next() {
		var r series.Reading
		var ts int64
		if err := rows.Scan(&ts, &r.Label, &r.Troponin, &r.Glucose, &r.HbA1c, &r.Creatinine, &r.ALT); err != nil {
			return nil, err
		}
		r.Time = time.UnixMilli(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Log row methods

func (s *Store) SaveRow(ctx context.Context, row logbook.Row) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO log_rows (id, ts, label, biomarker, value, unit, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, row.ID, row.At.UnixMilli(), row.Timestamp, string(row.Biomarker), row.Value, row.Unit, string(row.Status))
	return err
}

func (s *Store) ListRows(ctx context.Context, limit int) ([]logbook.Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ts, label, biomarker, value, unit, status FROM log_rows
		ORDER BY seq DESC LIMIT ?
	`, storage.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []logbook.Row
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Store) GetRow(ctx context.Context, id string) (logbook.Row, error) {
	row, err := scanRow(s.db.QueryRowContext(ctx, `
		SELECT id, ts, label, biomarker, value, unit, status FROM log_rows WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return logbook.Row{}, storage.ErrNotFound{Resource: "log_row", ID: id}
	}
	return row, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(sc scanner) (logbook.Row, error) {
	var row logbook.Row
	var ts int64
	var kind, status string
	if err := sc.Scan(&row.ID, &ts, &row.Timestamp, &kind, &row.Value, &row.Unit, &status); err != nil {
		return logbook.Row{}, err
	}
	row.At = time.UnixMilli(ts)
	row.Biomarker = biomarker.Kind(kind)
	row.Status = biomarker.LogStatus(status)
	return row, nil
}

// Alert methods

func (s *Store) SaveAlert(ctx context.Context, a alerts.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (alert_id, message, raised_at) VALUES (?, ?, ?)
	`, a.ID, a.Message, a.RaisedAt.UnixMilli())
	return err
}

func (s *Store) ListAlerts(ctx context.Context, limit int) ([]alerts.Alert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alert_id, message, raised_at FROM alerts ORDER BY seq DESC LIMIT ?
	`, storage.Limit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []alerts.Alert
	for rows.Next() {
		var a alerts.Alert
		var ts int64
		if err := rows.Scan(&a.ID, &a.Message, &ts); err != nil {
			return nil, err
		}
		a.RaisedAt = time.UnixMilli(ts)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Verify interface compliance
var _ storage.Store = (*Store)(nil)
