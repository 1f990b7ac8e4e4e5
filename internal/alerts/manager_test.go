package alerts

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestManager() (*Manager, clockwork.FakeClock) {
	fc := clockwork.NewFakeClockAt(start)
	return NewManager(fc, Config{}), fc
}

func messages(as []Alert) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Message
	}
	return out
}

func TestRaiseAssignsIncreasingIDs(t *testing.T) {
	m, _ := newTestManager()

	a, ok := m.Raise("one")
	require.True(t, ok)
	b, ok := m.Raise("two")
	require.True(t, ok)

	assert.Equal(t, int64(0), a.ID)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, start, a.RaisedAt)
	assert.Equal(t, []string{"one", "two"}, messages(m.Active()))
}

func TestRaiseSuppressesDuplicateMessage(t *testing.T) {
	m, _ := newTestManager()

	first, ok := m.Raise("Critical: Troponin Level High (0.42 ng/mL)")
	require.True(t, ok)
	again, ok := m.Raise("Critical: Troponin Level High (0.42 ng/mL)")

	assert.False(t, ok)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 1, m.Count())
}

func TestRaiseEvictsOldestPastLimit(t *testing.T) {
	m, _ := newTestManager()

	for _, msg := range []string{"a", "b", "c", "d"} {
		m.Raise(msg)
	}

	assert.Equal(t, []string{"b", "c", "d"}, messages(m.Active()))
	assert.Len(t, m.History().List(0), 4)
}

func TestEvictedMessageCanBeRaisedAgain(t *testing.T) {
	m, _ := newTestManager()
	for _, msg := range []string{"a", "b", "c", "d"} {
		m.Raise(msg)
	}

	_, ok := m.Raise("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"c", "d", "a"}, messages(m.Active()))
}

func TestAlertExpiresAfterDwell(t *testing.T) {
	m, fc := newTestManager()
	m.Raise("x")

	fc.Advance(DefaultDwell - time.Millisecond)
	assert.Equal(t, 1, m.Count())

	fc.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismissRemovesAndCancelsExpiry(t *testing.T) {
	m, fc := newTestManager()
	a, _ := m.Raise("x")
	b, _ := m.Raise("y")

	assert.True(t, m.Dismiss(a.ID))
	assert.False(t, m.Dismiss(a.ID))
	assert.Equal(t, []Alert{b}, m.Active())

	fc.Advance(DefaultDwell)
	assert.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestDismissUnknownIDIsNoop(t *testing.T) {
	m, _ := newTestManager()
	m.Raise("x")

	assert.False(t, m.Dismiss(42))
	assert.Equal(t, 1, m.Count())
}

func TestResetRestartsIDs(t *testing.T) {
	m, fc := newTestManager()
	m.Raise("x")
	m.Raise("y")

	m.Reset()
	assert.Empty(t, m.Active())
	assert.Empty(t, m.History().List(0))

	a, ok := m.Raise("z")
	require.True(t, ok)
	assert.Equal(t, int64(0), a.ID)

	fc.Advance(DefaultDwell / 2)
	assert.Equal(t, []string{"z"}, messages(m.Active()))
}

func TestActiveReturnsCopy(t *testing.T) {
	m, _ := newTestManager()
	m.Raise("x")

	got := m.Active()
	got[0].Message = "changed"

	assert.Equal(t, "x", m.Active()[0].Message)
}

func TestConfigOverrides(t *testing.T) {
	fc := clockwork.NewFakeClockAt(start)
	m := NewManager(fc, Config{Dwell: time.Second, MaxActive: 1})

	m.Raise("a")
	m.Raise("b")
	assert.Equal(t, []string{"b"}, messages(m.Active()))

	fc.Advance(time.Second)
	assert.Eventually(t, func() bool { return m.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHistoryIsBounded(t *testing.T) {
	h := NewHistory(2)
	h.Add(Alert{ID: 1, RaisedAt: start})
	h.Add(Alert{ID: 2, RaisedAt: start.Add(time.Minute)})
	h.Add(Alert{ID: 3, RaisedAt: start.Add(2 * time.Minute)})

	list := h.List(0)
	require.Len(t, list, 2)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	assert.Len(t, h.List(1), 1)
	assert.Equal(t, int64(3), h.List(1)[0].ID)

	since := h.Since(start.Add(2 * time.Minute))
	require.Len(t, since, 1)
	assert.Equal(t, int64(3), since[0].ID)
}
