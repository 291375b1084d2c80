// Package loop drives the per-frame update and render sequence.
package loop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"haunted-house/scene"
)

var (
	ErrAlreadyStarted = errors.New("loop: already started")
	ErrNotRunning     = errors.New("loop: not running")
)

type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Updater advances some piece of state to the given elapsed time.
type Updater interface {
	Update(elapsed float64)
}

type UpdaterFunc func(elapsed float64)

func (f UpdaterFunc) Update(elapsed float64) { f(elapsed) }

type Renderer interface {
	Render(s *scene.Scene, camera *scene.PerspectiveCamera) error
}

// Host paces frames. NextFrame blocks until the next frame may start and
// returns false once the host wants to shut down.
type Host interface {
	NextFrame() bool
}

// Scheduler owns the frame loop: Idle until Start, Running until Stop.
// It never returns to Idle.
type Scheduler struct {
	clock    Clock
	renderer Renderer
	scene    *scene.Scene
	camera   *scene.PerspectiveCamera
	updaters []Updater

	mu      sync.Mutex
	state   State
	frames  uint64
	elapsed float64
}

// New builds a scheduler. Updaters run in order each tick before rendering.
func New(clock Clock, r Renderer, s *scene.Scene, camera *scene.PerspectiveCamera, updaters ...Updater) *Scheduler {
	return &Scheduler{
		clock:    clock,
		renderer: r,
		scene:    s,
		camera:   camera,
		updaters: updaters,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return ErrAlreadyStarted
	}
	s.state = Running
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.state = Stopped
	s.mu.Unlock()
}

func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Frames is the number of completed ticks.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Elapsed is the clock reading used by the last tick.
func (s *Scheduler) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Tick runs one frame: read the clock, run the updaters, render.
func (s *Scheduler) Tick() error {
	if s.State() != Running {
		return ErrNotRunning
	}
	elapsed := s.clock.Elapsed()
	for _, u := range s.updaters {
		u.Update(elapsed)
	}
	if err := s.renderer.Render(s.scene, s.camera); err != nil {
		return fmt.Errorf("render frame %d: %w", s.Frames(), err)
	}
	s.mu.Lock()
	s.frames++
	s.elapsed = elapsed
	s.mu.Unlock()
	return nil
}

// Run starts the scheduler if needed and ticks once per host frame until
// ctx is cancelled, the host closes, Stop is called, or a tick fails. A
// failed tick stops the loop and is returned.
func (s *Scheduler) Run(ctx context.Context, host Host) error {
	if err := s.Start(); err != nil && s.State() != Running {
		return err
	}
	defer s.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if s.State() != Running {
			return nil
		}
		if err := s.Tick(); err != nil {
			if errors.Is(err, ErrNotRunning) {
				return nil
			}
			log.Printf("[Loop] halting: %v", err)
			return err
		}
		if !host.NextFrame() {
			return nil
		}
	}
}
