package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestDefaultKeyTableLookup(t *testing.T) {
	kt := DefaultKeyTable()
	tests := []struct {
		ev   *tcell.EventKey
		want Intent
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), IntentQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), IntentDial},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), IntentQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), IntentNone},
		{tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), IntentNone},
	}
	for _, tt := range tests {
		if got := kt.Lookup(tt.ev); got != tt.want {
			t.Errorf("Lookup(%s) = %v, want %v", tt.ev.Name(), got, tt.want)
		}
	}
}

func TestParseBindingsAndMerge(t *testing.T) {
	override, err := ParseBindings(map[string]string{
		"x":     "dial",
		"space": "answer",
		"F2":    "incoming",
		"q":     "none",
	})
	if err != nil {
		t.Fatalf("ParseBindings: %v", err)
	}

	base := DefaultKeyTable()
	kt := MergeKeyTable(base, override)

	if kt.Runes['x'] != IntentDial {
		t.Errorf("x = %v", kt.Runes['x'])
	}
	if kt.Runes[' '] != IntentAnswer {
		t.Errorf("space = %v", kt.Runes[' '])
	}
	if kt.Keys[tcell.KeyF2] != IntentIncoming {
		t.Errorf("F2 = %v", kt.Keys[tcell.KeyF2])
	}
	if _, ok := kt.Runes['q']; ok {
		t.Error("q should be unbound")
	}
	if base.Runes['q'] != IntentQuit {
		t.Error("merge modified the base table")
	}
}

func TestParseBindingsErrors(t *testing.T) {
	if _, err := ParseBindings(map[string]string{"x": "explode"}); err == nil {
		t.Error("unknown intent accepted")
	}
	if _, err := ParseBindings(map[string]string{"xy": "dial"}); err == nil {
		t.Error("multi-character key accepted")
	}
}

func TestIntentNamesRoundTrip(t *testing.T) {
	names := IntentNames()
	if len(names) != int(IntentToggleMute)+1 {
		t.Fatalf("names = %v", names)
	}
	for _, n := range names {
		i, ok := IntentByName(n)
		if !ok || i.String() != n {
			t.Errorf("%q resolved to %v", n, i)
		}
	}
}
