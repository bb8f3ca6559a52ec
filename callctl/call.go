package callctl

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/callbubbles/bubble"
)

// State is the signalling state of one call
type State uint8

const (
	StateRinging State = iota // Incoming, not answered
	StateDialing              // Outgoing, not answered
	StateCurrent
	StateHold
	StateOver
)

func (s State) String() string {
	switch s {
	case StateRinging:
		return "ringing"
	case StateDialing:
		return "dialing"
	case StateCurrent:
		return "current"
	case StateHold:
		return "hold"
	case StateOver:
		return "over"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Call is a value snapshot of one call as reported by the controller
type Call struct {
	CallID    string `json:"id"`
	Number    string `json:"number"`
	Name      string `json:"name,omitempty"`
	State     State  `json:"state"`
	Incoming  bool   `json:"incoming,omitempty"`
	Muted     bool   `json:"muted,omitempty"`
	Recording bool   `json:"recording,omitempty"`
}

var _ bubble.Entity = (*Call)(nil)

func (c *Call) ID() string { return c.CallID }

// DisplayName prefers the contact name over the number
func (c *Call) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Number
}

func (c *Call) OnHold() bool       { return c.State == StateHold }
func (c *Call) IsConference() bool { return false }

// Live reports whether the call still needs a bubble
func (c *Call) Live() bool { return c.State != StateOver }

// Conference groups the calls the local user takes part in
// A single-call conference is addressed by that call's id
type Conference struct {
	id    string
	calls []*Call
}

var _ bubble.Entity = (*Conference)(nil)

func NewConference(id string, calls ...*Call) *Conference {
	return &Conference{id: id, calls: calls}
}

func (c *Conference) ID() string {
	if len(c.calls) == 1 {
		return c.calls[0].CallID
	}
	return c.id
}

func (c *Conference) Calls() []*Call { return c.calls }

func (c *Conference) DisplayName() string {
	names := make([]string, 0, len(c.calls))
	for _, call := range c.calls {
		names = append(names, call.DisplayName())
	}
	return strings.Join(names, ", ")
}

// OnHold is true when every participant is held
func (c *Conference) OnHold() bool {
	if len(c.calls) == 0 {
		return false
	}
	for _, call := range c.calls {
		if !call.OnHold() {
			return false
		}
	}
	return true
}

func (c *Conference) IsConference() bool { return len(c.calls) > 1 }

// Local is the entity behind the user bubble: the local party of the current conference
type Local struct {
	Name string
	Conf *Conference
}

var _ bubble.Entity = (*Local)(nil)

// LocalID is the fixed bubble id of the local user
const LocalID = "local"

func (l *Local) ID() string          { return LocalID }
func (l *Local) DisplayName() string { return l.Name }

func (l *Local) OnHold() bool {
	return l.Conf != nil && l.Conf.OnHold()
}

func (l *Local) IsConference() bool {
	return l.Conf != nil && l.Conf.IsConference()
}
