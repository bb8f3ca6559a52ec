package bubble

import (
	"testing"
	"time"

	"github.com/lixenwraith/callbubbles/core"
	"github.com/lixenwraith/callbubbles/vmath"
)

type testEntity struct {
	id     string
	name   string
	onHold bool
	conf   bool
}

func (e *testEntity) ID() string          { return e.id }
func (e *testEntity) DisplayName() string { return e.name }
func (e *testEntity) OnHold() bool        { return e.onHold }
func (e *testEntity) IsConference() bool  { return e.conf }

func entity(id string) *testEntity {
	return &testEntity{id: id, name: "Contact " + id}
}

var testStart = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestModel returns a 1000x1000 model at density 1 whose clock is already primed,
// so the next Update steps exactly by what the clock is advanced
func newTestModel(t *testing.T, opts ...Option) (*Model, *core.MockTimeProvider) {
	t.Helper()
	clock := core.NewMockTimeProvider(testStart)
	m := New(1, append([]Option{WithClock(clock)}, opts...)...)
	m.SetViewportSize(1000, 1000, 80)
	m.Update()
	return m, clock
}

func step(m *Model, clock *core.MockTimeProvider, d time.Duration) {
	clock.Advance(d)
	m.Update()
}

func contactAt(id string, x, y float64) *Bubble {
	return NewContact(entity(id), vmath.P2(x, y), 40, 1)
}

// countingCapture returns a capture callback answering result and a per-bubble call count
func countingCapture(result bool) (CaptureFunc, map[string]int) {
	calls := make(map[string]int)
	return func(b *Bubble) bool {
		calls[b.ID()]++
		return result
	}, calls
}
