package input

// Intent is a session command bound to a key
type Intent uint8

const (
	IntentNone Intent = iota
	IntentQuit
	IntentIncoming
	IntentDial
	IntentAnswer
	IntentRemoteHangUp
	IntentToggleMute
)

func (i Intent) String() string {
	switch i {
	case IntentQuit:
		return "quit"
	case IntentIncoming:
		return "incoming"
	case IntentDial:
		return "dial"
	case IntentAnswer:
		return "answer"
	case IntentRemoteHangUp:
		return "remote_hangup"
	case IntentToggleMute:
		return "toggle_mute"
	default:
		return "none"
	}
}
