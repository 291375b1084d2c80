package loop

import (
	"context"
	"errors"
	"testing"

	"haunted-house/scene"
)

type recordRenderer struct {
	calls []float64
	clock Clock
	err   error
}

func (r *recordRenderer) Render(*scene.Scene, *scene.PerspectiveCamera) error {
	r.calls = append(r.calls, r.clock.Elapsed())
	return r.err
}

type countingHost struct {
	remaining int
	onFrame   func()
}

func (h *countingHost) NextFrame() bool {
	if h.onFrame != nil {
		h.onFrame()
	}
	h.remaining--
	return h.remaining > 0
}

func newScheduler(clock Clock, r Renderer, updaters ...Updater) *Scheduler {
	return New(clock, r, scene.NewScene(), scene.NewPerspectiveCamera(75, 1, 0.1, 100), updaters...)
}

func TestStateTransitions(t *testing.T) {
	clock := &ManualClock{}
	s := newScheduler(clock, &recordRenderer{clock: clock})

	if s.State() != Idle {
		t.Fatalf("expected idle, got %v", s.State())
	}
	if err := s.Tick(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("tick while idle: expected ErrNotRunning, got %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start: expected ErrAlreadyStarted, got %v", err)
	}
	s.Stop()
	if s.State() != Stopped {
		t.Errorf("expected stopped, got %v", s.State())
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("Start after Stop: expected ErrAlreadyStarted, got %v", err)
	}
	if err := s.Tick(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("tick while stopped: expected ErrNotRunning, got %v", err)
	}
}

func TestTickOrder(t *testing.T) {
	clock := &ManualClock{}
	var order []string
	r := &recordRenderer{clock: clock}
	s := newScheduler(clock, r,
		UpdaterFunc(func(float64) { order = append(order, "ghosts") }),
		UpdaterFunc(func(float64) { order = append(order, "controls") }),
	)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	clock.Set(1.5)
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(order) != 2 || order[0] != "ghosts" || order[1] != "controls" {
		t.Errorf("updater order: %v", order)
	}
	if len(r.calls) != 1 || r.calls[0] != 1.5 {
		t.Errorf("render calls: %v", r.calls)
	}
	if s.Frames() != 1 || s.Elapsed() != 1.5 {
		t.Errorf("frames %d elapsed %v", s.Frames(), s.Elapsed())
	}
}

func TestUpdatersSeeClockReading(t *testing.T) {
	clock := &ManualClock{}
	var seen []float64
	s := newScheduler(clock, &recordRenderer{clock: clock}, UpdaterFunc(func(e float64) { seen = append(seen, e) }))
	s.Start()
	for i := 0; i < 3; i++ {
		clock.Advance(0.5)
		s.Tick()
	}
	want := []float64{0.5, 1, 1.5}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("tick %d: expected %v, got %v", i, want[i], seen[i])
		}
	}
}

func TestRunStopsWhenHostCloses(t *testing.T) {
	clock := &ManualClock{}
	r := &recordRenderer{clock: clock}
	s := newScheduler(clock, r)
	host := &countingHost{remaining: 5, onFrame: func() { clock.Advance(1.0 / 60) }}

	if err := s.Run(context.Background(), host); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Frames() != 5 {
		t.Errorf("expected 5 frames, got %d", s.Frames())
	}
	if s.State() != Stopped {
		t.Errorf("expected stopped after Run, got %v", s.State())
	}
}

func TestRunHaltsOnRenderError(t *testing.T) {
	clock := &ManualClock{}
	boom := errors.New("boom")
	s := newScheduler(clock, &recordRenderer{clock: clock, err: boom})

	err := s.Run(context.Background(), &countingHost{remaining: 100})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped render error, got %v", err)
	}
	if s.Frames() != 0 || s.State() != Stopped {
		t.Errorf("frames %d state %v", s.Frames(), s.State())
	}
}

func TestRunHonorsContext(t *testing.T) {
	clock := &ManualClock{}
	ctx, cancel := context.WithCancel(context.Background())
	s := newScheduler(clock, &recordRenderer{clock: clock})
	host := &countingHost{remaining: 100}
	host.onFrame = func() {
		if host.remaining == 98 {
			cancel()
		}
	}
	if err := s.Run(ctx, host); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if s.Frames() != 3 {
		t.Errorf("expected 3 frames before cancel, got %d", s.Frames())
	}
}

func TestRunStopFromUpdater(t *testing.T) {
	clock := &ManualClock{}
	var s *Scheduler
	s = newScheduler(clock, &recordRenderer{clock: clock}, UpdaterFunc(func(float64) {
		if s.Frames() == 2 {
			s.Stop()
		}
	}))
	if err := s.Run(context.Background(), &countingHost{remaining: 100}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// The frame that called Stop still renders; the next tick sees Stopped.
	if s.Frames() != 3 {
		t.Errorf("expected 3 frames, got %d", s.Frames())
	}
}

func TestFPSCounter(t *testing.T) {
	var f FPSCounter
	refreshed := false
	for i := 1; i <= 60; i++ {
		refreshed = f.Frame(float64(i) / 60)
	}
	if !refreshed || f.FPS != 60 {
		t.Errorf("expected 60 fps after one second, got %d (refreshed %v)", f.FPS, refreshed)
	}
	if f.Frame(1.5) {
		t.Error("no refresh expected mid-window")
	}
}

func TestSystemClockAdvances(t *testing.T) {
	c := NewSystemClock()
	a := c.Elapsed()
	b := c.Elapsed()
	if a < 0 || b < a {
		t.Errorf("clock went backwards: %v then %v", a, b)
	}
}
