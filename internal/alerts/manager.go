// Package alerts raises, suppresses and expires the transient critical
// notifications shown on the dashboard.
package alerts

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Defaults for a dashboard alert manager.
const (
	DefaultDwell        = 5 * time.Second
	DefaultMaxActive    = 3
	DefaultHistoryLimit = 100
)

// Alert is one active notification.
type Alert struct {
	ID       int64     `json:"id"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// Config tunes a Manager. Zero fields fall back to the defaults.
type Config struct {
	Dwell        time.Duration
	MaxActive    int
	HistoryLimit int
}

type entry struct {
	alert Alert
	timer clockwork.Timer
}

// Manager owns the active alert list, the id counter and one expiry timer
// per alert. It lives as long as the dashboard that created it.
type Manager struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	dwell   time.Duration
	limit   int
	nextID  int64
	active  []*entry
	history *History
}

// NewManager creates a manager scheduling expiries on clock.
func NewManager(clock clockwork.Clock, cfg Config) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if cfg.Dwell <= 0 {
		cfg.Dwell = DefaultDwell
	}
	if cfg.MaxActive <= 0 {
		cfg.MaxActive = DefaultMaxActive
	}
	return &Manager{
		clock:   clock,
		dwell:   cfg.Dwell,
		limit:   cfg.MaxActive,
		history: NewHistory(cfg.HistoryLimit),
	}
}

// Raise adds an alert for message unless one with the same message is
// already active. When the active list grows past the limit the oldest
// alerts are dropped and their timers cancelled.
func (m *Manager) Raise(message string) (Alert, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.active {
		if e.alert.Message == message {
			return e.alert, false
		}
	}

	a := Alert{ID: m.nextID, Message: message, RaisedAt: m.clock.Now()}
	m.nextID++

	e := &entry{alert: a}
	e.timer = m.clock.AfterFunc(m.dwell, func() { m.expire(e) })
	m.active = append(m.active, e)

	if over := len(m.active) - m.limit; over > 0 {
		for _, dropped := range m.active[:over] {
			dropped.timer.Stop()
		}
		m.active = append([]*entry(nil), m.active[over:]...)
	}

	m.history.Add(a)
	return a, true
}

// Dismiss removes the alert with id and cancels its expiry. It reports
// whether an active alert was removed.
func (m *Manager) Dismiss(id int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.active {
		if e.alert.ID == id {
			e.timer.Stop()
			m.removeAt(i)
			return true
		}
	}
	return false
}

// Active returns a copy of the active alerts in raise order.
func (m *Manager) Active() []Alert {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Alert, len(m.active))
	for i, e := range m.active {
		out[i] = e.alert
	}
	return out
}

// Count returns the number of active alerts.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// History returns the bounded record of every raised alert.
func (m *Manager) History() *History {
	return m.history
}

// Reset cancels all timers, clears the active list and restarts ids.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.active {
		e.timer.Stop()
	}
	m.active = nil
	m.nextID = 0
	m.history.Clear()
}

// expire removes e if it is still active. A timer that fired after its
// alert was dismissed, evicted or reset finds nothing to remove.
func (m *Manager) expire(e *entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, cur := range m.active {
		if cur == e {
			m.removeAt(i)
			return
		}
	}
}

func (m *Manager) removeAt(i int) {
	next := make([]*entry, 0, len(m.active)-1)
	next = append(next, m.active[:i]...)
	m.active = append(next, m.active[i+1:]...)
}
