package bubble

import (
	"math"
	"time"

	"github.com/lixenwraith/callbubbles/vmath"
)

// ActionGroup is the temporary attractor set of one bubble's action menu
// While enabled it replaces the global attractors for its owner
type ActionGroup struct {
	owner   *Bubble
	actions []*Attractor
	enabled bool

	// viewStart is shifted on show/hide so the fade resumes from the current visibility
	viewStart time.Time
	appear    time.Duration
	disappear time.Duration
}

func newActionGroup(owner *Bubble, appear, disappear time.Duration) *ActionGroup {
	return &ActionGroup{
		owner:     owner,
		appear:    appear,
		disappear: disappear,
	}
}

// Owner is the bubble the actions apply to
func (g *ActionGroup) Owner() *Bubble { return g.owner }

// Actions returns the action attractors in menu order
func (g *ActionGroup) Actions() []*Attractor { return g.actions }

// Enabled reports whether the group is shown or fading in; false once hiding
func (g *ActionGroup) Enabled() bool { return g.enabled }

func (g *ActionGroup) add(a *Attractor) {
	g.actions = append(g.actions, a)
}

// show enables the group, continuing a running fade-out as a fade-in
func (g *ActionGroup) show(now time.Time) {
	r := 1 - fadeProgress(now.Sub(g.viewStart), g.disappear)
	g.enabled = true
	g.viewStart = now.Add(-scaleDuration(g.appear, r))
}

// hide disables the group, continuing a running fade-in as a fade-out
func (g *ActionGroup) hide(now time.Time) {
	r := 1 - fadeProgress(now.Sub(g.viewStart), g.appear)
	g.enabled = false
	g.viewStart = now.Add(-scaleDuration(g.disappear, r))
}

// Visibility returns the fade level in [0,1] at now
func (g *ActionGroup) Visibility(now time.Time) float64 {
	elapsed := now.Sub(g.viewStart)
	if g.enabled {
		return fadeProgress(elapsed, g.appear)
	}
	return 1 - fadeProgress(elapsed, g.disappear)
}

// ActionAt returns the action attractor under a point, nil when none
func (g *ActionGroup) ActionAt(x, y float64) *Attractor {
	for _, a := range g.actions {
		if a.Contains(x, y) {
			return a
		}
	}
	return nil
}

// arrangeRow centers the actions in a row just above the owner (grab menu)
func (g *ActionGroup) arrangeRow(w float64, margin float64) {
	n := len(g.actions)
	if n == 0 || g.owner == nil {
		return
	}
	r0 := g.actions[0].radius
	y := math.Max(g.owner.pos.Y-margin-g.owner.Radius()-r0, r0)
	width := 2 * r0
	total := float64(n)*width + float64(n-1)*margin
	x := (w-total)/2 + r0
	for _, a := range g.actions {
		a.SetPosition(vmath.P2(x, y))
		x += width + margin
	}
}

func fadeProgress(elapsed, span time.Duration) float64 {
	if span <= 0 {
		return 1
	}
	return math.Min(math.Max(elapsed.Seconds()/span.Seconds(), 0), 1)
}

func scaleDuration(d time.Duration, r float64) time.Duration {
	return time.Duration(float64(d) * r)
}
