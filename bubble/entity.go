package bubble

import "fmt"

// Entity is the call or conference a bubble stands for, owned by the call-control layer
type Entity interface {
	ID() string
	DisplayName() string
	OnHold() bool
	IsConference() bool
}

// Kind distinguishes remote-party bubbles from the local user bubble
type Kind uint8

const (
	KindContact Kind = iota
	KindUser
)

func (k Kind) String() string {
	switch k {
	case KindContact:
		return "contact"
	case KindUser:
		return "user"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Action is the call-control request attached to an attractor
type Action uint8

const (
	ActionNone Action = iota
	ActionHold
	ActionUnhold
	ActionMute
	ActionTransfer
	ActionHangUp
	ActionMessage
	ActionRecord
	ActionAccept
)

var actionNames = [...]string{
	ActionNone:     "none",
	ActionHold:     "hold",
	ActionUnhold:   "unhold",
	ActionMute:     "mute",
	ActionTransfer: "transfer",
	ActionHangUp:   "hangup",
	ActionMessage:  "message",
	ActionRecord:   "record",
	ActionAccept:   "accept",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAction resolves an action name, unknown names yield ActionNone and false
func ParseAction(s string) (Action, bool) {
	for i, name := range actionNames {
		if name == s {
			return Action(i), true
		}
	}
	return ActionNone, false
}
