package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/callbubbles/audio"
	"github.com/lixenwraith/callbubbles/callctl"
	"github.com/lixenwraith/callbubbles/core"
	"github.com/lixenwraith/callbubbles/engine"
	"github.com/lixenwraith/callbubbles/input"
	"github.com/lixenwraith/callbubbles/observability"
	"github.com/lixenwraith/callbubbles/render"
)

const (
	helpLine     = "i incoming  d dial  a answer  h remote hang-up  m mute cues  q quit"
	tickInterval = 50 * time.Millisecond
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the interactive terminal client against the call simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), a)
		},
	}
}

// session wires one terminal run: simulator, presenter, loop and input
type session struct {
	screen    tcell.Screen
	surface   *render.TerminalSurface
	sim       *callctl.SimController
	presenter *callctl.Presenter
	loop      *engine.RenderLoop
	mouse     *input.MouseTranslator
	keys      *input.KeyTable
	sound     *audio.SoundManager
	log       *zap.Logger

	dialed int
	muted  bool
}

func runInteractive(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg := a.cfg
	log := observability.GetLogger()

	overrides, err := input.ParseBindings(cfg.Keys)
	if err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	core.SetCrashTerminal(screen)
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	s := &session{
		screen:  screen,
		surface: render.NewTerminalSurface(screen, cfg.Display.CellWidth, cfg.Display.CellHeight),
		sim:     callctl.NewSimController(log.Named("sim")),
		keys:    input.MergeKeyTable(input.DefaultKeyTable(), overrides),
		log:     log,
	}
	s.presenter = newPresenter(cfg, s.sim, log.Named("presenter"))
	s.loop = engine.NewRenderLoop(s.presenter.Model(), s.surface, cfg.Loop.FrameInterval, log.Named("loop"))
	dispatcher := input.NewDispatcher(s.presenter.Model(), s.loop, log.Named("input"))
	s.mouse = input.NewMouseTranslator(dispatcher, cfg.Display.CellWidth, cfg.Display.CellHeight)

	if cfg.Audio.Enabled {
		s.sound = audio.NewSoundManager()
		if err := s.sound.Initialize(); err != nil {
			log.Warn("audio unavailable, continuing silently", zap.Error(err))
			s.sound = nil
		} else {
			s.presenter.SetCues(s.sound)
			defer s.sound.Cleanup()
		}
	}

	s.surface.SetStatus(helpLine)
	s.presenter.Resize(s.surface.PixelSize())
	if err := s.loop.Start(); err != nil {
		return err
	}
	defer s.loop.Stop()
	defer s.surface.Detach()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.sim.Run(gctx) })
	g.Go(func() error { return s.presenter.Run(gctx) })
	g.Go(func() error {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case now := <-ticker.C:
				s.mouse.Tick(now)
			case ev := <-events:
				if !s.handle(ev) {
					quit()
					return nil
				}
			}
		}
	})

	err = g.Wait()
	log.Info("session ended", zap.Uint64("frames", s.loop.Frames()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handle processes one terminal event, returning false to quit
func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		s.presenter.Resize(s.surface.PixelSize())
		s.loop.Restart()
	case *tcell.EventMouse:
		s.mouse.HandleEvent(ev)
	case *tcell.EventKey:
		return s.intent(s.keys.Lookup(ev))
	}
	return true
}

func (s *session) intent(i input.Intent) bool {
	switch i {
	case input.IntentQuit:
		return false
	case input.IntentIncoming:
		number, name := contactName(s.dialed)
		s.dialed++
		s.sim.Incoming(number, name)
	case input.IntentDial:
		number, name := contactName(s.dialed)
		s.dialed++
		s.sim.Dial(number, name)
	case input.IntentAnswer:
		for _, c := range s.sim.Calls() {
			if c.State == callctl.StateDialing {
				s.logErr(s.sim.Answer(c.CallID))
			}
		}
	case input.IntentRemoteHangUp:
		if calls := s.sim.Calls(); len(calls) > 0 {
			s.logErr(s.sim.HangUpRemote(calls[len(calls)-1].CallID))
		}
	case input.IntentToggleMute:
		if s.sound != nil {
			s.muted = !s.muted
			s.sound.SetMuted(s.muted)
		}
	case input.IntentNone:
		return true
	}
	s.log.Debug("key intent", zap.Stringer("intent", i))
	s.loop.Resume()
	return true
}

func (s *session) logErr(err error) {
	if err != nil {
		s.log.Warn("simulator request failed", zap.Error(err))
	}
}
