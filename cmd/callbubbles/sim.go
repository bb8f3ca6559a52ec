package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/callbubbles/bubble"
	"github.com/lixenwraith/callbubbles/callctl"
	"github.com/lixenwraith/callbubbles/config"
	"github.com/lixenwraith/callbubbles/core"
	"github.com/lixenwraith/callbubbles/engine"
	"github.com/lixenwraith/callbubbles/input"
	"github.com/lixenwraith/callbubbles/observability"
	"github.com/lixenwraith/callbubbles/parameter"
	"github.com/lixenwraith/callbubbles/vmath"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// simOptions scripts a headless session: dial, answer, then drag the first contact onto hang-up
type simOptions struct {
	Calls    int
	Frames   int
	Every    int
	Width    float64
	Height   float64
	Interval time.Duration

	AnswerAt  int
	GrabAt    int
	DragSteps int
}

func defaultSimOptions() simOptions {
	return simOptions{
		Calls:     3,
		Frames:    120,
		Every:     1,
		Width:     800,
		Height:    600,
		Interval:  parameter.SimFrameInterval,
		AnswerAt:  5,
		GrabAt:    30,
		DragSteps: 10,
	}
}

func newSimCmd(a *app) *cobra.Command {
	opts := defaultSimOptions()
	var out string

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a scripted session without a terminal and print frame snapshots as JSON lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return runSim(cmd.Context(), w, a.cfg, opts, observability.GetLogger())
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Calls, "calls", opts.Calls, "number of outgoing calls to place")
	f.IntVar(&opts.Frames, "frames", opts.Frames, "number of frames to simulate")
	f.IntVar(&opts.Every, "every", opts.Every, "write every n-th frame")
	f.Float64Var(&opts.Width, "width", opts.Width, "viewport width in px")
	f.Float64Var(&opts.Height, "height", opts.Height, "viewport height in px")
	f.DurationVar(&opts.Interval, "interval", opts.Interval, "simulated time per frame")
	f.StringVarP(&out, "output", "o", "", "output file, stdout when empty")
	return cmd
}

// snapshotWriter is a render surface that encodes every n-th frame as one JSON line
type snapshotWriter struct {
	enc   *jsoniter.Encoder
	every uint64
	n     uint64
	err   error
}

func (w *snapshotWriter) Lock() bool { return w.err == nil }
func (w *snapshotWriter) Unlock()    {}

func (w *snapshotWriter) Draw(snap *bubble.Snapshot) {
	w.n++
	if (w.n-1)%w.every != 0 {
		return
	}
	w.err = w.enc.Encode(snap)
}

// runSim drives the model synchronously on a mock clock, so output is reproducible
// apart from the generated call ids
func runSim(ctx context.Context, out io.Writer, cfg *config.Config, opts simOptions, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Calls < 1 || opts.Frames < 1 || opts.Width <= 0 || opts.Height <= 0 || opts.Interval <= 0 {
		return fmt.Errorf("invalid simulation options %+v", opts)
	}
	if opts.Every < 1 {
		opts.Every = 1
	}

	clock := core.NewMockTimeProvider(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	sim := callctl.NewSimController(logger.Named("sim"))
	presenter := newPresenter(cfg, sim, logger.Named("presenter"), bubble.WithClock(clock))
	model := presenter.Model()

	surface := &snapshotWriter{enc: json.NewEncoder(out), every: uint64(opts.Every)}
	loop := engine.NewRenderLoop(model, surface, opts.Interval, logger.Named("loop"))
	touch := input.NewDispatcher(model, loop, logger.Named("input"))

	presenter.Resize(opts.Width, opts.Height)

	var from, to vmath.Point2D
	for frame := 0; frame < opts.Frames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		switch {
		case frame == 0:
			for i := 0; i < opts.Calls; i++ {
				sim.Dial(contactName(i))
			}
		case frame == opts.AnswerAt:
			for _, c := range sim.Calls() {
				if err := sim.Answer(c.CallID); err != nil {
					return err
				}
			}
		case frame == opts.GrabAt:
			var ok bool
			if from, ok = firstContact(model); ok {
				touch.Down(from.X, from.Y)
			}
		case frame == opts.GrabAt+1:
			var ok bool
			if to, ok = groupAction(model, bubble.ActionHangUp); !ok {
				to = from
			}
			fallthrough
		case frame > opts.GrabAt && frame <= opts.GrabAt+opts.DragSteps:
			t := float64(frame-opts.GrabAt) / float64(opts.DragSteps)
			p := vmath.P2Lerp(from, to, t)
			touch.Move(p.X, p.Y)
		case frame == opts.GrabAt+opts.DragSteps+1:
			touch.Up(to.X, to.Y)
		}

		for _, ev := range sim.Flush() {
			model.RunSafe(func() { presenter.Apply(ev) })
		}

		clock.Advance(opts.Interval)
		loop.RenderFrame()
		if surface.err != nil {
			return fmt.Errorf("writing frame %d: %w", frame, surface.err)
		}
	}

	logger.Info("simulation finished",
		zap.Int("frames", opts.Frames),
		zap.Int("calls_left", len(sim.Calls())),
		zap.Stringer("screen", presenter.Screen()))
	return nil
}

func firstContact(m *bubble.Model) (p vmath.Point2D, ok bool) {
	m.RunSafe(func() {
		for _, b := range m.Bubbles() {
			if b.Kind() == bubble.KindContact {
				p, ok = b.Position(), true
				return
			}
		}
	})
	return p, ok
}

func groupAction(m *bubble.Model, action bubble.Action) (p vmath.Point2D, ok bool) {
	m.RunSafe(func() {
		g := m.ActionGroup()
		if g == nil {
			return
		}
		for _, a := range g.Actions() {
			if a.Action() == action {
				p, ok = a.Position(), true
				return
			}
		}
	})
	return p, ok
}
