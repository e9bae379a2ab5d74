package testsupport

import (
	"sync"
	"time"
)

// ManualScheduler queues completions until the test fires them. Pass its
// Schedule method to form.WithScheduler.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

// Schedule records fn and the delay it was requested with.
func (m *ManualScheduler) Schedule(delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, fn)
	m.delays = append(m.delays, delay)
}

// Pending reports how many completions are queued.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Delays returns every delay requested so far, fired or not.
func (m *ManualScheduler) Delays() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.delays...)
}

// FireAll runs queued completions in order, outside the scheduler lock.
func (m *ManualScheduler) FireAll() {
	m.mu.Lock()
	fns := m.pending
	m.pending = nil
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// FireNext runs the oldest queued completion and reports whether one was
// queued.
func (m *ManualScheduler) FireNext() bool {
	m.mu.Lock()
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return false
	}
	fn := m.pending[0]
	m.pending = m.pending[1:]
	m.mu.Unlock()
	fn()
	return true
}
