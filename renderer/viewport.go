package renderer

import "github.com/chewxy/math32"

// MaxPixelRatio caps the drawing buffer density on high-DPI displays.
const MaxPixelRatio = 2

// Projector is a camera whose projection follows the viewport aspect.
type Projector interface {
	SetAspect(aspect float32)
	UpdateProjectionMatrix()
}

// Sizer is a render target that can be resized in screen units.
type Sizer interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
}

// Viewport keeps a camera and a render target in step with the window.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float32

	camera Projector
	target Sizer
}

func NewViewport(camera Projector, target Sizer) *Viewport {
	return &Viewport{camera: camera, target: target, PixelRatio: 1}
}

// Resize applies a new window size. Zero or negative sizes are clamped to 1.
func (v *Viewport) Resize(width, height int, devicePixelRatio float32) {
	width = max(width, 1)
	height = max(height, 1)
	ratio := math32.Min(devicePixelRatio, MaxPixelRatio)
	if ratio <= 0 {
		ratio = 1
	}

	v.Width, v.Height, v.PixelRatio = width, height, ratio
	if v.camera != nil {
		v.camera.SetAspect(float32(width) / float32(height))
		v.camera.UpdateProjectionMatrix()
	}
	if v.target != nil {
		v.target.SetSize(width, height)
		v.target.SetPixelRatio(ratio)
	}
}

// DrawingBufferSize is the render resolution in pixels.
func (v *Viewport) DrawingBufferSize() (int, int) {
	return drawingBuffer(v.Width, v.Height, v.PixelRatio)
}

func drawingBuffer(width, height int, ratio float32) (int, int) {
	w := int(math32.Round(float32(width) * ratio))
	h := int(math32.Round(float32(height) * ratio))
	return max(w, 1), max(h, 1)
}
