package scene

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
)

// TextureState tracks the asynchronous load of a Texture.
type TextureState int

const (
	TexturePending TextureState = iota
	TextureReady
	TextureFailed
)

func (s TextureState) String() string {
	switch s {
	case TextureReady:
		return "ready"
	case TextureFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Texture is a handle whose pixels arrive asynchronously. Sampling
// parameters (wrap, repeat) may be set immediately after creation; they
// are read when the renderer uploads the pixels.
//
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name  string
	Path  string
	WrapS core.WrapMode
	WrapT core.WrapMode
	// Repeat scales the UVs used to sample this texture.
	Repeat mgl32.Vec2

	GLID uint32

	mu     sync.Mutex
	state  TextureState
	width  int
	height int
	pixels []byte // RGBA8, first row is the bottom of the image
	err    error
}

func NewTexture(path string) *Texture {
	return &Texture{
		Name:   path,
		Path:   path,
		WrapS:  core.ClampToEdgeWrapping,
		WrapT:  core.ClampToEdgeWrapping,
		Repeat: mgl32.Vec2{1, 1},
	}
}

// NewSolidTexture creates a ready 1x1 texture with the given RGBA bytes.
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	t := NewTexture(name)
	t.Resolve(1, 1, []byte{r, g, b, a})
	return t
}

// SetRepeatWrapping switches both axes to repeat wrapping and tiles the
// texture x by y times.
func (t *Texture) SetRepeatWrapping(x, y float32) {
	t.WrapS = core.RepeatWrapping
	t.WrapT = core.RepeatWrapping
	t.Repeat = mgl32.Vec2{x, y}
}

// Resolve publishes decoded RGBA8 pixels. Safe to call from any goroutine.
func (t *Texture) Resolve(width, height int, pixels []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width, t.height, t.pixels = width, height, pixels
	t.state = TextureReady
}

// Fail marks the load as failed. The texture then behaves as an empty slot.
func (t *Texture) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TextureFailed
	t.err = err
}

func (t *Texture) State() TextureState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Texture) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Image returns the decoded pixels when the texture is ready.
func (t *Texture) Image() (width, height int, pixels []byte, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TextureReady {
		return 0, 0, nil, false
	}
	return t.width, t.height, t.pixels, true
}

// ReleasePixels drops the CPU copy once the GPU owns the data.
func (t *Texture) ReleasePixels() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pixels = nil
}

// TextureLoader returns texture handles that are populated asynchronously.
// Load never blocks on I/O and never returns nil.
type TextureLoader interface {
	Load(path string) *Texture
}
