package callctl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/callbubbles/bubble"
)

func nextEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event stream closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func startSim(t *testing.T) (*SimController, func()) {
	t.Helper()
	sim := NewSimController(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()
	return sim, func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	}
}

func TestSimControllerOutgoingCall(t *testing.T) {
	defer goleak.VerifyNone(t)
	sim, stop := startSim(t)
	defer stop()
	ctx := context.Background()

	id := sim.Dial("1001", "Alice")
	ev := nextEvent(t, sim.Events())
	assert.Equal(t, EventAdded, ev.Kind)
	assert.Equal(t, id, ev.Call.CallID)
	assert.Equal(t, StateDialing, ev.Call.State)
	assert.False(t, ev.Call.Incoming)

	require.NoError(t, sim.Answer(id))
	assert.Equal(t, StateCurrent, nextEvent(t, sim.Events()).Call.State)

	require.NoError(t, sim.Do(ctx, Request{Action: bubble.ActionHold, ID: id}))
	ev = nextEvent(t, sim.Events())
	assert.Equal(t, EventChanged, ev.Kind)
	assert.True(t, ev.Call.OnHold())

	require.NoError(t, sim.Do(ctx, Request{Action: bubble.ActionUnhold, ID: id}))
	assert.Equal(t, StateCurrent, nextEvent(t, sim.Events()).Call.State)

	require.NoError(t, sim.Do(ctx, Request{Action: bubble.ActionMute, ID: id}))
	assert.True(t, nextEvent(t, sim.Events()).Call.Muted)

	require.NoError(t, sim.Do(ctx, Request{Action: bubble.ActionHangUp, ID: id}))
	ev = nextEvent(t, sim.Events())
	assert.Equal(t, EventRemoved, ev.Kind)
	assert.False(t, ev.Call.Live())
	assert.Empty(t, sim.Calls())
}

func TestSimControllerIncomingAccept(t *testing.T) {
	sim := NewSimController(nil)
	id := sim.Incoming("2002", "")

	require.NoError(t, sim.Do(context.Background(), Request{Action: bubble.ActionAccept, ID: id}))
	calls := sim.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, StateCurrent, calls[0].State)
	assert.True(t, calls[0].Incoming)
	assert.Equal(t, "2002", calls[0].DisplayName())
}

func TestSimControllerConferenceRequest(t *testing.T) {
	sim := NewSimController(nil)
	a := sim.Incoming("1", "A")
	b := sim.Incoming("2", "B")
	ctx := context.Background()
	require.NoError(t, sim.Do(ctx, Request{Action: bubble.ActionAccept, Conference: true, ID: ConferenceID}))
	require.NoError(t, sim.Do(ctx, Request{Action: bubble.ActionHold, Conference: true, ID: ConferenceID}))

	for _, c := range sim.Calls() {
		assert.Equal(t, StateHold, c.State, "call %s", c.CallID)
	}

	require.NoError(t, sim.HangUpRemote(a))
	require.Len(t, sim.Calls(), 1)
	assert.Equal(t, b, sim.Calls()[0].CallID)
}

func TestSimControllerErrors(t *testing.T) {
	sim := NewSimController(nil)
	ctx := context.Background()

	err := sim.Do(ctx, Request{Action: bubble.ActionHold, ID: "missing"})
	assert.ErrorIs(t, err, ErrUnknownCall)
	assert.ErrorIs(t, sim.Answer("missing"), ErrUnknownCall)
	assert.ErrorIs(t, sim.HangUpRemote("missing"), ErrUnknownCall)

	id := sim.Dial("1", "")
	assert.ErrorIs(t, sim.Do(ctx, Request{Action: bubble.ActionNone, ID: id}), ErrUnsupportedAction)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, sim.Do(cancelled, Request{Action: bubble.ActionHangUp, ID: id}), context.Canceled)
	assert.Len(t, sim.Calls(), 1)
}

func TestSimControllerDoesNotBlockWithoutConsumer(t *testing.T) {
	sim := NewSimController(nil)
	id := sim.Incoming("1", "")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 4*cap(sim.events); i++ {
			_ = sim.Do(context.Background(), Request{Action: bubble.ActionMute, ID: id})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Do blocked on undelivered events")
	}
}

func TestSimControllerFlush(t *testing.T) {
	sim := NewSimController(nil)
	id := sim.Dial("1", "")
	require.NoError(t, sim.Answer(id))

	batch := sim.Flush()
	require.Len(t, batch, 2)
	assert.Equal(t, EventAdded, batch[0].Kind)
	assert.Equal(t, StateCurrent, batch[1].Call.State)
	assert.Empty(t, sim.Flush())
}
