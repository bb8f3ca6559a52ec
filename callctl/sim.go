package callctl

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/bubble"
	"github.com/lixenwraith/callbubbles/parameter"
)

// SimConferenceID addresses every live call of the simulator at once
const SimConferenceID = "sim-conference"

// SimController is an in-process call controller for demos and tests
// Requests mutate state immediately and queue events; Run delivers them,
// so Do never blocks on the event consumer
type SimController struct {
	mu      sync.Mutex
	calls   map[string]*Call
	order   []string
	pending []Event

	signal chan struct{}
	events chan Event
	log    *zap.Logger

	newID func() string
}

var _ Controller = (*SimController)(nil)

func NewSimController(logger *zap.Logger) *SimController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimController{
		calls:  make(map[string]*Call),
		signal: make(chan struct{}, 1),
		events: make(chan Event, parameter.CallEventQueueSize),
		log:    logger,
		newID:  uuid.NewString,
	}
}

// Events returns the notification stream, closed when Run returns
func (s *SimController) Events() <-chan Event {
	return s.events
}

// Run delivers queued events until ctx is done; must be called once
func (s *SimController) Run(ctx context.Context) error {
	defer close(s.events)
	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, ev := range batch {
			select {
			case s.events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.signal:
		}
	}
}

// Flush removes and returns the undelivered events, for drivers applying events synchronously
// instead of calling Run
func (s *SimController) Flush() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := s.pending
	s.pending = nil
	return batch
}

// Incoming simulates a remote party calling, returning the new call id
func (s *SimController) Incoming(number, name string) string {
	return s.add(number, name, StateRinging, true)
}

// Dial simulates placing an outgoing call, returning the new call id
func (s *SimController) Dial(number, name string) string {
	return s.add(number, name, StateDialing, false)
}

// Answer simulates the remote party picking up an outgoing call
func (s *SimController) Answer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.calls[id]
	if !ok {
		return fmt.Errorf("answer %s: %w", id, ErrUnknownCall)
	}
	if c.State == StateDialing {
		c.State = StateCurrent
		s.emit(EventChanged, c)
	}
	return nil
}

// HangUpRemote simulates the remote party ending a call
func (s *SimController) HangUpRemote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.calls[id]
	if !ok {
		return fmt.Errorf("remote hangup %s: %w", id, ErrUnknownCall)
	}
	s.end(c)
	return nil
}

// Calls returns value copies of the live calls in creation order
func (s *SimController) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Call, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.calls[id])
	}
	return out
}

// Do applies a request; conference requests apply to every live call
func (s *SimController) Do(ctx context.Context, req Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var targets []*Call
	if req.Conference {
		for _, id := range s.order {
			targets = append(targets, s.calls[id])
		}
	} else if c, ok := s.calls[req.ID]; ok {
		targets = append(targets, c)
	}
	if len(targets) == 0 {
		return fmt.Errorf("%s: %w", req, ErrUnknownCall)
	}

	for _, c := range targets {
		if err := s.apply(c, req.Action); err != nil {
			return fmt.Errorf("%s: %w", req, err)
		}
	}
	s.log.Debug("request applied", zap.Stringer("request", req), zap.Int("calls", len(targets)))
	return nil
}

func (s *SimController) apply(c *Call, action bubble.Action) error {
	switch action {
	case bubble.ActionHold:
		if c.State == StateCurrent {
			c.State = StateHold
			s.emit(EventChanged, c)
		}
	case bubble.ActionUnhold:
		if c.State == StateHold {
			c.State = StateCurrent
			s.emit(EventChanged, c)
		}
	case bubble.ActionAccept:
		if c.State == StateRinging {
			c.State = StateCurrent
			s.emit(EventChanged, c)
		}
	case bubble.ActionMute:
		c.Muted = !c.Muted
		s.emit(EventChanged, c)
	case bubble.ActionRecord:
		c.Recording = !c.Recording
		s.emit(EventChanged, c)
	case bubble.ActionHangUp, bubble.ActionTransfer:
		s.end(c)
	case bubble.ActionMessage:
		s.log.Info("message requested", zap.String("call", c.CallID), zap.String("to", c.Number))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
	return nil
}

func (s *SimController) add(number, name string, state State, incoming bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Call{
		CallID:   s.newID(),
		Number:   number,
		Name:     name,
		State:    state,
		Incoming: incoming,
	}
	s.calls[c.CallID] = c
	s.order = append(s.order, c.CallID)
	s.emit(EventAdded, c)
	s.log.Debug("call added", zap.String("call", c.CallID), zap.Stringer("state", state))
	return c.CallID
}

// end marks c over and forgets it, caller holds mu
func (s *SimController) end(c *Call) {
	c.State = StateOver
	delete(s.calls, c.CallID)
	for i, id := range s.order {
		if id == c.CallID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.emit(EventRemoved, c)
}

// emit queues a snapshot of c, caller holds mu
func (s *SimController) emit(kind EventKind, c *Call) {
	s.pending = append(s.pending, Event{Kind: kind, Call: *c})
	select {
	case s.signal <- struct{}{}:
	default:
	}
}
