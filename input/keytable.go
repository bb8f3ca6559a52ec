package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to session intents
type KeyTable struct {
	// Special keys (Ctrl+*, Esc, function keys)
	Keys map[tcell.Key]Intent

	// Printable rune bindings
	Runes map[rune]Intent
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Intent{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
		},
		Runes: map[rune]Intent{
			'q': IntentQuit,
			'i': IntentIncoming,
			'd': IntentDial,
			'a': IntentAnswer,
			'h': IntentRemoteHangUp,
			'm': IntentToggleMute,
		},
	}
}

// Lookup returns the intent bound to ev, IntentNone when unbound
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Intent {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.Keys[ev.Key()]
}

// Clone returns a deep copy of the KeyTable with independent maps
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		Keys:  cloneMap(kt.Keys),
		Runes: cloneMap(kt.Runes),
	}
}

func cloneMap[K comparable](m map[K]Intent) map[K]Intent {
	c := make(map[K]Intent, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
