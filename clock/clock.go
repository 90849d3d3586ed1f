package clock

import (
	"sync"
	"time"
)

// Clock reports time elapsed since the scene started.
type Clock interface {
	Elapsed() time.Duration
}

// Real is backed by the monotonic system clock.
type Real struct {
	start time.Time
}

func NewReal() *Real {
	return &Real{start: time.Now()}
}

func (r *Real) Elapsed() time.Duration {
	return time.Since(r.start)
}

// Manual only moves when told to. Tests and replays drive it.
type Manual struct {
	mu  sync.RWMutex
	now time.Duration
}

func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) Elapsed() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *Manual) Set(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = d
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
}
