// Package postgres provides a PostgreSQL implementation of the
// storage.Store interface on the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jwulff/biomon-go/internal/alerts"
	"github.com/jwulff/biomon-go/internal/biomarker"
	"github.com/jwulff/biomon-go/internal/logbook"
	"github.com/jwulff/biomon-go/internal/series"
	"github.com/jwulff/biomon-go/internal/storage"
)

// DefaultDSN is used when no DSN is configured.
const DefaultDSN = "postgres://localhost:5432/biomon?sslmode=disable"

var schema = []string{
	`CREATE TABLE IF NOT EXISTS readings (
		id BIGSERIAL PRIMARY KEY,
		ts BIGINT NOT NULL,
		label TEXT NOT NULL,
		troponin DOUBLE PRECISION NOT NULL,
		glucose INTEGER NOT NULL,
		hba1c DOUBLE PRECISION NOT NULL,
		creatinine DOUBLE PRECISION NOT NULL,
		alt INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(ts)`,
	`CREATE TABLE IF NOT EXISTS log_rows (
		seq BIGSERIAL PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		ts BIGINT NOT NULL,
		label TEXT NOT NULL,
		biomarker TEXT NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		unit TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		seq BIGSERIAL PRIMARY KEY,
		alert_id BIGINT NOT NULL,
		message TEXT NOT NULL,
		raised_at BIGINT NOT NULL
	)`,
}

// Store is a PostgreSQL implementation of storage.Store.
type Store struct {
	db *sql.DB
}

// New opens a connection pool. No round trip happens until Init.
func New(dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		dsn = DefaultDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Init(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveReading(ctx context.Context, r series.Reading) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO readings (ts, label, troponin, glucose, hba1c, creatinine, alt)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.Time.UnixMilli(), r.Label, r.Troponin, r.Glucose, r.HbA1c, r.Creatinine, r.ALT)
	return err
}

func (s *Store) QueryReadings(ctx context.Context, since, until time.Time) ([]series.Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ts, label, troponin, glucose, hba1c, creatinine, alt FROM readings
		WHERE ts >= $1 AND ts <= $2 ORDER BY ts ASC, id ASC`,
		since.UnixMilli(), until.UnixMilli())
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

func (s *Store) SaveRow(ctx context.Context, row logbook.Row) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO log_rows (id, ts, label, biomarker, value, unit, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET ts = EXCLUDED.ts, label = EXCLUDED.label,
			biomarker = EXCLUDED.biomarker, value = EXCLUDED.value,
			unit = EXCLUDED.unit, status = EXCLUDED.status`,
		row.ID, row.At.UnixMilli(), row.Timestamp, string(row.Biomarker), row.Value, row.Unit, string(row.Status))
	return err
}

func (s *Store) ListRows(ctx context.Context, limit int) ([]logbook.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, label, biomarker, value, unit, status FROM log_rows
		ORDER BY seq DESC LIMIT $1`, storage.Limit(limit))
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
	row, err := scanRow(s.db.QueryRowContext(ctx,
		`SELECT id, ts, label, biomarker, value, unit, status FROM log_rows WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return logbook.Row{}, storage.ErrNotFound{Resource: "log_row", ID: id}
	}
	return row, err
}

func scanRow(sc interface{ Scan(dest ...any) error }) (logbook.Row, error) {
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

func (s *Store) SaveAlert(ctx context.Context, a alerts.Alert) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO alerts (alert_id, message, raised_at) VALUES ($1, $2, $3)`,
		a.ID, a.Message, a.RaisedAt.UnixMilli())
	return err
}

func (s *Store) ListAlerts(ctx context.Context, limit int) ([]alerts.Alert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT alert_id, message, raised_at FROM alerts ORDER BY seq DESC LIMIT $1`,
		storage.Limit(limit))
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

var _ storage.Store = (*Store)(nil)
