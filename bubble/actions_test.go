package bubble

import (
	"testing"
	"time"

	"github.com/lixenwraith/callbubbles/vmath"
)

type actionCall struct {
	id     string
	action Action
}

func recordingActions(result bool) (ActionHandler, *[]actionCall) {
	var calls []actionCall
	return func(b *Bubble, a Action) bool {
		calls = append(calls, actionCall{id: b.ID(), action: a})
		return result
	}, &calls
}

func TestActionGroupFade(t *testing.T) {
	g := newActionGroup(nil, 400*time.Millisecond, 250*time.Millisecond)
	t0 := testStart

	g.show(t0)
	if v := g.Visibility(t0); v != 0 {
		t.Errorf("visibility at show = %v, want 0", v)
	}
	if v := g.Visibility(t0.Add(200 * time.Millisecond)); v != 0.5 {
		t.Errorf("visibility mid fade-in = %v, want 0.5", v)
	}

	// Hiding halfway continues from the current level
	t1 := t0.Add(200 * time.Millisecond)
	g.hide(t1)
	if v := g.Visibility(t1); v != 0.5 {
		t.Errorf("visibility at hide = %v, want 0.5", v)
	}
	if v := g.Visibility(t1.Add(125 * time.Millisecond)); v != 0 {
		t.Errorf("visibility after fade-out = %v, want 0", v)
	}
}

func TestGrabMenuRow(t *testing.T) {
	m, _ := newTestModel(t)
	b := contactAt("a", 500, 500)
	m.AddBubble(b)

	m.Grab(b)
	g := m.ShowActions(b)

	if m.ActionGroup() != g || !g.Enabled() || g.Owner() != b {
		t.Fatal("grab menu not installed")
	}
	wantX := []float64{395, 465, 535, 605}
	for i, a := range g.Actions() {
		if got := a.Position(); got != vmath.P2(wantX[i], 420) {
			t.Errorf("action %d at %v, want (%v,420)", i, got, wantX[i])
		}
	}
}

func TestGrabMenuDismissedAfterRelease(t *testing.T) {
	handler, calls := recordingActions(true)
	m, clock := newTestModel(t, WithActionHandler(handler))
	b := contactAt("a", 500, 500)
	b.SetAnchor(vmath.P2(500, 500))
	m.AddBubble(b)

	m.Grab(b)
	m.ShowActions(b)
	step(m, clock, 16*time.Millisecond)
	if !m.ActionGroup().Enabled() {
		t.Fatal("group hidden while owner is dragged")
	}

	m.ReleaseAll()
	step(m, clock, 16*time.Millisecond)
	if m.ActionGroup() == nil || m.ActionGroup().Enabled() {
		t.Fatal("group not fading out once owner rests on its anchor")
	}

	step(m, clock, 300*time.Millisecond)
	step(m, clock, 16*time.Millisecond)
	if m.ActionGroup() != nil {
		t.Error("faded group not cleared")
	}
	if len(*calls) != 0 {
		t.Errorf("unexpected actions %v", *calls)
	}
}

func TestGrabMenuDropOnAction(t *testing.T) {
	handler, calls := recordingActions(true)
	m, clock := newTestModel(t, WithActionHandler(handler))
	b := contactAt("a", 500, 500)
	b.SetAnchor(vmath.P2(500, 500))
	m.AddBubble(b)

	m.Grab(b)
	m.ShowActions(b)
	clock.Advance(16 * time.Millisecond)
	b.Drag(395, 420, clock.Now())
	m.Update()

	m.Release(b)
	step(m, clock, 16*time.Millisecond)

	if len(*calls) != 1 || (*calls)[0] != (actionCall{id: "a", action: ActionHold}) {
		t.Fatalf("actions = %v, want hold on a", *calls)
	}
	if m.Bubble("a") != nil {
		t.Error("bubble not removed after accepted action")
	}
	if m.ActionGroup() != nil {
		t.Error("group not cleared with its owner")
	}
}

func TestOpenActionsHoldsStillAndTriggers(t *testing.T) {
	handler, calls := recordingActions(true)
	m, clock := newTestModel(t, WithActionHandler(handler))
	m.SetViewportSize(900, 600, 80)
	b := contactAt("a", 100, 300)
	b.SetAnchor(vmath.P2(400, 300))
	m.AddBubble(b)

	g := m.OpenActions(b)
	if !b.Expanded() || b.Layout().Dir != DirLeft {
		t.Fatal("bubble not expanded to the right")
	}
	for i, a := range g.Actions() {
		if a.Position() != b.Layout().Slots[i].Pos {
			t.Errorf("action %d not on its slot", i)
		}
	}

	for i := 0; i < 10; i++ {
		step(m, clock, 16*time.Millisecond)
	}
	if b.Position() != vmath.P2(100, 300) {
		t.Errorf("expanded bubble moved to %v", b.Position())
	}
	if !g.Enabled() {
		t.Fatal("open menu dismissed without interaction")
	}

	if m.TriggerAction(50, 50) {
		t.Error("tap outside reported an action")
	}
	if !m.TriggerAction(630, 300) {
		t.Fatal("tap on hang up slot missed")
	}
	if len(*calls) != 1 || (*calls)[0].action != ActionHangUp {
		t.Errorf("actions = %v", *calls)
	}
	if m.Bubble("a") != nil || m.ActionGroup() != nil {
		t.Error("owner or group survived accepted hang up")
	}
}

func TestTriggerRejectedActionClosesMenu(t *testing.T) {
	handler, calls := recordingActions(false)
	m, clock := newTestModel(t, WithActionHandler(handler))
	m.SetViewportSize(900, 600, 80)
	b := contactAt("a", 100, 300)
	m.AddBubble(b)
	m.OpenActions(b)

	if !m.TriggerAction(210, 300) {
		t.Fatal("tap on hold slot missed")
	}
	if len(*calls) != 1 || (*calls)[0].action != ActionHold {
		t.Errorf("actions = %v", *calls)
	}
	if m.Bubble("a") == nil {
		t.Fatal("rejected action removed the bubble")
	}

	step(m, clock, 300*time.Millisecond)
	step(m, clock, 16*time.Millisecond)
	if m.ActionGroup() != nil || b.Expanded() {
		t.Error("menu not closed after rejected action")
	}
}

func TestCloseActionsRetractsOwner(t *testing.T) {
	m, clock := newTestModel(t)
	b := contactAt("a", 500, 500)
	m.AddBubble(b)
	m.OpenActions(b)
	step(m, clock, 400*time.Millisecond)

	m.CloseActions()
	step(m, clock, 100*time.Millisecond)
	if m.ActionGroup() == nil {
		t.Fatal("group cleared before fade-out completed")
	}
	step(m, clock, 200*time.Millisecond)
	if m.ActionGroup() != nil || b.Expanded() {
		t.Error("group not cleared after fade-out")
	}
}

func TestRemovingOwnerClearsGroup(t *testing.T) {
	m, _ := newTestModel(t)
	b := contactAt("a", 500, 500)
	m.AddBubble(b)
	m.OpenActions(b)

	m.RemoveBubble("a")
	if m.ActionGroup() != nil {
		t.Error("group outlived its owner")
	}
}

func TestDisabledGroupDoesNotCapture(t *testing.T) {
	handler, calls := recordingActions(true)
	m, _ := newTestModel(t, WithActionHandler(handler))
	b := contactAt("a", 500, 500)
	m.AddBubble(b)
	g := m.ShowActions(b)
	m.CloseActions()

	if g.Actions()[0].Capture(b) {
		t.Error("hidden group accepted a capture")
	}
	if len(*calls) != 0 {
		t.Errorf("handler invoked %v", *calls)
	}
}
