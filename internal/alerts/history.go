package alerts

import (
	"sync"
	"time"
)

// History is a bounded, oldest-first record of raised alerts.
type History struct {
	mu    sync.RWMutex
	buf   []Alert
	limit int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

func (h *History) Add(a Alert) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.buf) < h.limit {
		h.buf = append(h.buf, a)
		return
	}
	copy(h.buf, h.buf[1:])
	h.buf[len(h.buf)-1] = a
}

// List returns up to limit of the newest entries, oldest first.
func (h *History) List(limit int) []Alert {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if limit <= 0 || limit > len(h.buf) {
		limit = len(h.buf)
	}
	out := make([]Alert, limit)
	copy(out, h.buf[len(h.buf)-limit:])
	return out
}

func (h *History) Since(ts time.Time) []Alert {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Alert, 0)
	for _, a := range h.buf {
		if !a.RaisedAt.Before(ts) {
			out = append(out, a)
		}
	}
	return out
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf = nil
}
