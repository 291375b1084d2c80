package loop

import (
	"sync"
	"time"
)

// Clock reports seconds elapsed since it started.
type Clock interface {
	Elapsed() float64
}

type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	mu sync.Mutex
	t  float64
}

func (c *ManualClock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *ManualClock) Set(t float64) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *ManualClock) Advance(dt float64) {
	c.mu.Lock()
	c.t += dt
	c.mu.Unlock()
}

// FPSCounter counts frames over one-second windows.
type FPSCounter struct {
	FPS    int
	frames int
	last   float64
}

// Frame records a frame at elapsed seconds and reports whether FPS was
// refreshed.
func (f *FPSCounter) Frame(elapsed float64) bool {
	f.frames++
	if elapsed-f.last < 1 {
		return false
	}
	f.FPS = int(float64(f.frames) / (elapsed - f.last))
	f.frames = 0
	f.last = elapsed
	return true
}
