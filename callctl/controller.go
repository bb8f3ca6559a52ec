package callctl

import (
	"context"
	"errors"
	"fmt"

	"github.com/lixenwraith/callbubbles/bubble"
)

var (
	ErrUnknownCall       = errors.New("unknown call")
	ErrUnsupportedAction = errors.New("unsupported action")
)

// EventKind classifies a call-state notification
type EventKind uint8

const (
	EventAdded EventKind = iota
	EventChanged
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventChanged:
		return "changed"
	case EventRemoved:
		return "removed"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is a call-state notification from the controller
type Event struct {
	Kind EventKind
	Call Call
}

// Request asks the controller to perform an action on a call or conference
type Request struct {
	Action     bubble.Action
	ID         string
	Conference bool
}

func (r Request) String() string {
	return fmt.Sprintf("%s(%s)", r.Action, r.ID)
}

// Controller is the opaque call-control service
// Do must not block on event delivery: it is invoked while the model lock is held
// Outcomes are reported only through later events
type Controller interface {
	Do(ctx context.Context, req Request) error
	Events() <-chan Event
}
