package sqlite

// schema contains the database schema DDL. Timestamps are unix milliseconds.
const schema = `
-- Live series readings
CREATE TABLE IF NOT EXISTS readings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    ts INTEGER NOT NULL,
    label TEXT NOT NULL,
    troponin REAL NOT NULL,
    glucose INTEGER NOT NULL,
    hba1c REAL NOT NULL,
    creatinine REAL NOT NULL,
    alt INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(ts);

-- Log rows
CREATE TABLE IF NOT EXISTS log_rows (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    ts INTEGER NOT NULL,
    label TEXT NOT NULL,
    biomarker TEXT NOT NULL,
    value REAL NOT NULL,
    unit TEXT NOT NULL,
    status TEXT NOT NULL
);

-- Raised alerts
CREATE TABLE IF NOT EXISTS alerts (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    alert_id INTEGER NOT NULL,
    message TEXT NOT NULL,
    raised_at INTEGER NOT NULL
);
`
