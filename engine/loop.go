package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/callbubbles/bubble"
	"github.com/lixenwraith/callbubbles/core"
	"github.com/lixenwraith/callbubbles/parameter"
)

var (
	ErrLoopRunning = errors.New("render loop already started")
	ErrLoopStopped = errors.New("render loop stopped")
)

// Simulation is the model surface the loop drives, satisfied by *bubble.Model
type Simulation interface {
	RunSafe(fn func())
	Update()
	Snapshot(dst *bubble.Snapshot)
}

// Surface receives one snapshot per frame; snap is reused and must not be retained after Draw
// Lock returns false when the surface cannot be drawn and the frame is skipped
type Surface interface {
	Lock() bool
	Draw(snap *bubble.Snapshot)
	Unlock()
}

// LoopState is the render loop lifecycle
type LoopState int32

const (
	StateIdle LoopState = iota
	StateRunning
	StatePaused
	StateStopped
)

func (s LoopState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// RenderLoop advances the simulation and repaints the surface at a fixed cadence
// Pause blocks the loop goroutine on a signal channel until Resume or Stop
type RenderLoop struct {
	sim      Simulation
	surface  Surface
	interval time.Duration
	log      *zap.Logger
	status   rate.Sometimes

	state  atomic.Int32
	frames atomic.Uint64

	// Serializes Start against Stop
	mu sync.Mutex

	wake     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// Frame snapshot, owned by whichever goroutine renders
	snap bubble.Snapshot
}

// NewRenderLoop creates an idle loop, interval <= 0 selects the default frame cadence
func NewRenderLoop(sim Simulation, surface Surface, interval time.Duration, logger *zap.Logger) *RenderLoop {
	if interval <= 0 {
		interval = parameter.FrameInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderLoop{
		sim:      sim,
		surface:  surface,
		interval: interval,
		log:      logger,
		status:   rate.Sometimes{Interval: parameter.LoopStatusInterval},
		wake:     make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Start launches the loop goroutine
func (l *RenderLoop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch LoopState(l.state.Load()) {
	case StateStopped:
		return ErrLoopStopped
	case StateIdle:
	default:
		return ErrLoopRunning
	}

	l.state.Store(int32(StateRunning))
	l.wg.Add(1)
	core.Go(l.run)
	l.log.Debug("render loop started", zap.Duration("interval", l.interval))
	return nil
}

// Pause suspends frame production, no-op unless running
func (l *RenderLoop) Pause() {
	if l.state.CompareAndSwap(int32(StateRunning), int32(StatePaused)) {
		l.log.Debug("render loop paused")
	}
}

// Resume continues a paused loop, no-op unless paused
func (l *RenderLoop) Resume() {
	if l.state.CompareAndSwap(int32(StatePaused), int32(StateRunning)) {
		select {
		case l.wake <- struct{}{}:
		default:
		}
		l.log.Debug("render loop resumed")
	}
}

// Restart is the UI owner's request to draw again after a transitional screen
func (l *RenderLoop) Restart() {
	l.Resume()
}

// Stop signals the loop and waits for the goroutine to exit
func (l *RenderLoop) Stop() {
	l.stopOnce.Do(func() {
		l.mu.Lock()
		l.state.Store(int32(StateStopped))
		l.mu.Unlock()

		close(l.stopChan)
		l.wg.Wait()
		l.log.Debug("render loop stopped", zap.Uint64("frames", l.frames.Load()))
	})
}

func (l *RenderLoop) State() LoopState {
	return LoopState(l.state.Load())
}

func (l *RenderLoop) Paused() bool {
	return l.State() == StatePaused
}

// Frames returns the number of frames presented
func (l *RenderLoop) Frames() uint64 {
	return l.frames.Load()
}

func (l *RenderLoop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		if l.State() == StatePaused {
			select {
			case <-l.stopChan:
				return
			case <-l.wake:
				continue
			}
		}

		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			if l.State() == StateRunning {
				l.RenderFrame()
			}
		}
	}
}

// RenderFrame runs one update and draw; used by the loop goroutine and headless drivers
// Must not be called concurrently with a started loop
func (l *RenderLoop) RenderFrame() {
	if !l.surface.Lock() {
		return
	}
	l.sim.RunSafe(func() {
		l.sim.Update()
		l.sim.Snapshot(&l.snap)
	})
	l.surface.Draw(&l.snap)
	l.surface.Unlock()

	n := l.frames.Add(1)
	l.status.Do(func() {
		l.log.Debug("render loop status",
			zap.Uint64("frames", n),
			zap.Int("bubbles", len(l.snap.Bubbles)),
			zap.Bool("group", l.snap.Group != nil))
	})
}
