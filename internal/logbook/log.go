package logbook

import "sync"

// Log is the ordered, newest-first list of rows shown in the table.
type Log struct {
	mu   sync.RWMutex
	rows []Row
}

func NewLog(rows []Row) *Log {
	l := &Log{}
	l.Replace(rows)
	return l
}

// Prepend puts r at the head of the log.
func (l *Log) Prepend(r Row) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]Row, 0, len(l.rows)+1)
	next = append(next, r)
	l.rows = append(next, l.rows...)
}

// Replace swaps the whole log for rows.
func (l *Log) Replace(rows []Row) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append([]Row(nil), rows...)
}

// List returns a copy of the rows in display order.
func (l *Log) List() []Row {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Row(nil), l.rows...)
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.rows)
}
