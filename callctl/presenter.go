package callctl

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/bubble"
	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/vmath"
)

// ConferenceID is the user bubble's conference address when more than one call is live
const ConferenceID = "conference"

// Attractor names installed per screen
const (
	AttractorAccept = "accept"
	AttractorRefuse = "refuse"
	AttractorHangUp = "hangup"
)

// Screen is the call screen layout derived from the live calls
type Screen uint8

const (
	ScreenNone Screen = iota
	ScreenIncoming
	ScreenOutgoing
	ScreenInCall
)

func (s Screen) String() string {
	switch s {
	case ScreenNone:
		return "none"
	case ScreenIncoming:
		return "incoming"
	case ScreenOutgoing:
		return "outgoing"
	case ScreenInCall:
		return "incall"
	default:
		return fmt.Sprintf("screen(%d)", uint8(s))
	}
}

// Cues is the audible feedback for grab and capture outcomes
type Cues interface {
	PlayGrab()
	PlayCapture()
	PlayReject()
}

type nopCues struct{}

func (nopCues) PlayGrab()    {}
func (nopCues) PlayCapture() {}
func (nopCues) PlayReject()  {}

// PresenterConfig sizes the bubbles and selects policies
type PresenterConfig struct {
	UserName       string
	Density        float64
	BubbleRadius   float64 // Density-independent
	ExpandedRadius float64 // Density-independent
	AttractorSize  float64 // Density-independent

	// EjectOnBorder hangs up a contact released across the viewport edge
	EjectOnBorder bool
}

// DefaultPresenterConfig returns the reference sizes at density 1
func DefaultPresenterConfig() PresenterConfig {
	return PresenterConfig{
		UserName:       "Me",
		Density:        parameter.DefaultDensity,
		BubbleRadius:   parameter.BubbleRadius,
		ExpandedRadius: parameter.ExpandedRadius,
		AttractorSize:  parameter.AttractorRadius,
	}
}

// Presenter binds controller calls to bubbles and capture actions back to requests
// Exported methods lock the model; HandleAction and the grab and border hooks run
// from inside the model with the lock already held
type Presenter struct {
	model *bubble.Model
	ctl   Controller
	cfg   PresenterConfig
	log   *zap.Logger
	cues  Cues

	// ctx is the context of the running event loop, guarded by the model lock
	ctx context.Context

	screen Screen
	calls  map[string]*Call
	order  []string
	local  *Local
}

// NewPresenter creates the presenter and the model it owns
// opts are applied before the presenter's own handlers
func NewPresenter(ctl Controller, cfg PresenterConfig, logger *zap.Logger, opts ...bubble.Option) *Presenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	def := DefaultPresenterConfig()
	if cfg.Density <= 0 {
		cfg.Density = def.Density
	}
	if cfg.BubbleRadius <= 0 {
		cfg.BubbleRadius = def.BubbleRadius
	}
	if cfg.ExpandedRadius <= cfg.BubbleRadius {
		cfg.ExpandedRadius = math.Max(def.ExpandedRadius, 2*cfg.BubbleRadius)
	}
	if cfg.AttractorSize <= 0 {
		cfg.AttractorSize = def.AttractorSize
	}
	if cfg.UserName == "" {
		cfg.UserName = def.UserName
	}

	p := &Presenter{
		ctl:   ctl,
		cfg:   cfg,
		log:   logger,
		cues:  nopCues{},
		ctx:   context.Background(),
		calls: make(map[string]*Call),
		local: &Local{Name: cfg.UserName},
	}

	all := append([]bubble.Option{bubble.WithLogger(logger.Named("model"))}, opts...)
	all = append(all,
		bubble.WithGrabHandler(p.onGrab),
		bubble.WithActionHandler(p.HandleAction),
	)
	if cfg.EjectOnBorder {
		all = append(all, bubble.WithBorderPolicy(p.eject))
	}
	p.model = bubble.New(cfg.Density, all...)
	return p
}

// SetCues installs audible feedback, nil restores silence
func (p *Presenter) SetCues(c Cues) {
	p.model.RunSafe(func() {
		if c == nil {
			c = nopCues{}
		}
		p.cues = c
	})
}

func (p *Presenter) Model() *bubble.Model { return p.model }

// Screen returns the current layout
func (p *Presenter) Screen() Screen {
	var s Screen
	p.model.RunSafe(func() { s = p.screen })
	return s
}

// Resize sets the viewport and lays the bubbles out again
func (p *Presenter) Resize(w, h float64) {
	p.model.RunSafe(func() {
		p.model.SetViewportSize(w, h, 2*p.cfg.BubbleRadius*p.cfg.Density)
		p.layout()
	})
}

// Run applies controller events until ctx is done or the event stream closes
func (p *Presenter) Run(ctx context.Context) error {
	p.model.RunSafe(func() { p.ctx = ctx })
	events := p.ctl.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			p.model.RunSafe(func() { p.Apply(ev) })
		}
	}
}

// Apply reacts to one call event; caller holds the model lock
func (p *Presenter) Apply(ev Event) {
	call := ev.Call
	p.log.Debug("call event", zap.Stringer("kind", ev.Kind), zap.String("call", call.CallID), zap.Stringer("state", call.State))

	if ev.Kind == EventRemoved || !call.Live() {
		p.forget(call.CallID)
	} else if c, ok := p.calls[call.CallID]; ok {
		*c = call
	} else {
		p.calls[call.CallID] = &call
		p.order = append(p.order, call.CallID)
	}
	p.layout()
}

// HandleAction turns a captured menu action into a controller request
// The bubble leaves the model only for a successful hang-up; other outcomes bounce back
func (p *Presenter) HandleAction(b *bubble.Bubble, action bubble.Action) bool {
	req := p.requestFor(b, action)
	if err := p.ctl.Do(p.ctx, req); err != nil {
		p.log.Warn("call action failed", zap.Stringer("request", req), zap.Error(err))
		p.cues.PlayReject()
		return false
	}
	p.log.Info("call action", zap.Stringer("request", req))
	p.cues.PlayCapture()
	return action == bubble.ActionHangUp
}

func (p *Presenter) requestFor(b *bubble.Bubble, action bubble.Action) Request {
	if b.Kind() == bubble.KindUser && p.local.Conf != nil {
		return Request{Action: action, ID: p.local.Conf.ID(), Conference: p.local.Conf.IsConference()}
	}
	return Request{Action: action, ID: b.ID(), Conference: b.Entity().IsConference()}
}

func (p *Presenter) onGrab(b *bubble.Bubble) {
	p.cues.PlayGrab()
	if p.screen == ScreenInCall {
		p.model.ShowActions(b)
	}
}

// eject is the border policy: a contact dropped off screen is hung up
func (p *Presenter) eject(b *bubble.Bubble) bool {
	if b.Kind() != bubble.KindContact {
		return false
	}
	return p.HandleAction(b, bubble.ActionHangUp)
}

func (p *Presenter) forget(id string) {
	if _, ok := p.calls[id]; !ok {
		return
	}
	delete(p.calls, id)
	for i, cur := range p.order {
		if cur == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.model.RemoveBubble(id)
}

func (p *Presenter) screenFor() Screen {
	if len(p.order) == 0 {
		return ScreenNone
	}
	dialing := false
	for _, id := range p.order {
		switch p.calls[id].State {
		case StateCurrent, StateHold:
			return ScreenInCall
		case StateDialing:
			dialing = true
		}
	}
	if first := p.calls[p.order[0]]; len(p.order) == 1 && first.Incoming && first.State == StateRinging {
		return ScreenIncoming
	}
	if dialing {
		return ScreenOutgoing
	}
	return ScreenInCall
}

// layout places every bubble on its anchor for the current screen
func (p *Presenter) layout() {
	if s := p.screenFor(); s != p.screen {
		p.enter(s)
	}

	if len(p.order) == 0 {
		p.local.Conf = nil
		p.model.RemoveBubble(LocalID)
		return
	}

	calls := make([]*Call, 0, len(p.order))
	for _, id := range p.order {
		calls = append(calls, p.calls[id])
	}
	p.local.Conf = NewConference(ConferenceID, calls...)

	w, h := p.model.Size()
	if w <= 0 || h <= 0 {
		return
	}
	center, r := p.model.ConferenceCircle()

	if p.screen == ScreenIncoming {
		p.placeCall(calls[0], center)
		p.placeUser(vmath.P2(center.X, center.Y+r))
		return
	}

	p.placeUser(center)
	step := 2 * math.Pi / float64(len(calls))
	for i, c := range calls {
		p.placeCall(c, vmath.P2FromAngle(center, -math.Pi/2+float64(i)*step, r))
	}
}

// enter swaps the global attractors for those of screen s
func (p *Presenter) enter(s Screen) {
	p.log.Debug("screen changed", zap.Stringer("from", p.screen), zap.Stringer("to", s))
	p.screen = s
	p.model.ClearActionGroup()
	p.model.ClearAttractors()

	size := p.cfg.AttractorSize * p.cfg.Density
	switch s {
	case ScreenIncoming:
		p.model.AddAttractor(bubble.NewRelativeAttractor(AttractorAccept,
			parameter.AcceptAttractorX, parameter.CallAttractorY, size, p.accept).
			WithIcon("call").WithAction(bubble.ActionAccept))
		p.model.AddAttractor(bubble.NewRelativeAttractor(AttractorRefuse,
			parameter.RefuseAttractorX, parameter.CallAttractorY, size, p.refuse).
			WithIcon("hangup").WithAction(bubble.ActionHangUp))
	case ScreenOutgoing:
		p.model.AddAttractor(bubble.NewRelativeAttractor(AttractorHangUp,
			parameter.HangUpAttractorX, parameter.HangUpAttractorY, size, p.refuse).
			WithIcon("hangup").WithAction(bubble.ActionHangUp))
	}
}

// accept answers the ringing call; the bubble bounces back and moves once the call is current
func (p *Presenter) accept(b *bubble.Bubble) bool {
	p.request(bubble.ActionAccept)
	return false
}

// refuse hangs up the pending call; only a contact bubble leaves with it
func (p *Presenter) refuse(b *bubble.Bubble) bool {
	ok := p.request(bubble.ActionHangUp)
	return ok && b.Kind() == bubble.KindContact
}

// request sends action for every pending call
func (p *Presenter) request(action bubble.Action) bool {
	ok := len(p.order) > 0
	for _, id := range p.order {
		req := Request{Action: action, ID: id}
		if err := p.ctl.Do(p.ctx, req); err != nil {
			p.log.Warn("call action failed", zap.Stringer("request", req), zap.Error(err))
			ok = false
		}
	}
	if ok {
		p.cues.PlayCapture()
	} else {
		p.cues.PlayReject()
	}
	return ok
}

func (p *Presenter) placeCall(c *Call, at vmath.Point2D) {
	b := p.model.Bubble(c.CallID)
	if b == nil {
		b = bubble.NewContact(c, at, p.cfg.BubbleRadius, p.cfg.Density)
		p.model.AddBubble(b)
	} else {
		b.SetEntity(c)
	}
	b.SetAnchor(at)
}

func (p *Presenter) placeUser(at vmath.Point2D) {
	b := p.model.User()
	if b == nil {
		b = bubble.NewUser(p.local, at, p.cfg.BubbleRadius, p.cfg.ExpandedRadius, p.cfg.Density)
		p.model.AddBubble(b)
	} else {
		b.SetEntity(p.local)
	}
	b.SetAnchor(at)
}
