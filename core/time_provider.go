package core

import (
	"sync"
	"time"
)

// Clock is the time source read by the simulation once per frame
type Clock interface {
	Now() time.Time
}

// TimeProvider is the wall clock used by interactive sessions
// Readings carry the monotonic component, so frame steps survive wall clock jumps
type TimeProvider struct{}

func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually stepped clock for deterministic frames in tests and headless runs
// Safe for concurrent use; the model reads it under its own lock while drivers advance it
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// SetTime jumps the clock; an earlier value makes the next model update a no-op
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance steps the clock by d, one simulated frame when d is the frame interval
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
