package renderer

import (
	"errors"
	"fmt"
	"log"

	"haunted-house/scene"
)

// Backend is the GPU side of the renderer. All calls happen on the thread
// that owns the graphics context.
type Backend interface {
	// Resize sets the drawing buffer size in pixels.
	Resize(width, height int)
	RenderShadow(view *ShadowView, casters []DrawItem) error
	RenderScene(frame *Frame)
	// Present copies the drawing buffer to a framebuffer of the given size.
	Present(framebufferWidth, framebufferHeight int)
	DrawText(lines []string, framebufferWidth, framebufferHeight int)
	Destroy()
}

// RenderEngine drives a Backend: it plans each frame from the scene graph,
// runs the shadow passes, then the main pass and the text overlay.
type RenderEngine struct {
	backend        Backend
	FrustumCulling bool
	ShadowsEnabled bool

	width      int
	height     int
	pixelRatio float32
	fbWidth    int
	fbHeight   int
	bufWidth   int
	bufHeight  int

	lastObjects   int
	lastVertices  int
	lastTriangles int
	lastCulled    int

	textQueue []string
}

func NewRenderEngine(backend Backend) *RenderEngine {
	fmt.Println("Render engine initialized (OpenGL)")
	return &RenderEngine{
		backend:        backend,
		FrustumCulling: true,
		width:          1,
		height:         1,
		pixelRatio:     1,
	}
}

// EnableShadows turns on shadow passes for lights that cast shadows. Maps
// are created on first use; a backend failure disables shadows again.
func (re *RenderEngine) EnableShadows() {
	re.ShadowsEnabled = true
}

// SetSize sets the output size in screen units.
func (re *RenderEngine) SetSize(width, height int) {
	re.width, re.height = max(width, 1), max(height, 1)
}

func (re *RenderEngine) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	re.pixelRatio = ratio
}

// SetFramebufferSize records the window framebuffer size in pixels. When it
// differs from the drawing buffer, Present scales the image to fit.
func (re *RenderEngine) SetFramebufferSize(width, height int) {
	re.fbWidth, re.fbHeight = width, height
}

func (re *RenderEngine) Size() (int, int) {
	return re.width, re.height
}

func (re *RenderEngine) PixelRatio() float32 {
	return re.pixelRatio
}

func (re *RenderEngine) DrawingBufferSize() (int, int) {
	return drawingBuffer(re.width, re.height, re.pixelRatio)
}

// DrawText queues overlay lines for the next Render.
func (re *RenderEngine) DrawText(lines ...string) {
	re.textQueue = append(re.textQueue, lines...)
}

func (re *RenderEngine) Render(s *scene.Scene, camera *scene.PerspectiveCamera) error {
	if s == nil || camera == nil {
		return errors.New("no scene or camera")
	}

	bw, bh := re.DrawingBufferSize()
	if bw != re.bufWidth || bh != re.bufHeight {
		re.backend.Resize(bw, bh)
		re.bufWidth, re.bufHeight = bw, bh
	}

	frame := BuildFrame(s, camera, FrameOptions{
		FrustumCulling: re.FrustumCulling,
		Shadows:        re.ShadowsEnabled,
	})

	for _, sv := range frame.Shadows() {
		if err := re.backend.RenderShadow(sv, frame.Casters); err != nil {
			log.Printf("[Renderer] shadows disabled: %v", err)
			re.ShadowsEnabled = false
			frame.Directional, frame.Points = withoutShadows(frame)
			break
		}
	}

	re.backend.RenderScene(frame)

	fw, fh := re.fbWidth, re.fbHeight
	if fw <= 0 || fh <= 0 {
		fw, fh = bw, bh
	}
	re.backend.Present(fw, fh)
	if len(re.textQueue) > 0 {
		re.backend.DrawText(re.textQueue, fw, fh)
		re.textQueue = re.textQueue[:0]
	}

	re.lastObjects = len(frame.Opaque) + len(frame.Transparent)
	re.lastVertices, re.lastTriangles = 0, 0
	for _, list := range [][]DrawItem{frame.Opaque, frame.Transparent} {
		for _, it := range list {
			re.lastVertices += len(it.Geometry.Vertices)
			re.lastTriangles += it.Geometry.TriangleCount()
		}
	}
	re.lastCulled = frame.Culled
	return nil
}

func withoutShadows(f *Frame) (*DirectionalLight, []PointLight) {
	dir := f.Directional
	if dir != nil {
		d := *dir
		d.Shadow = nil
		dir = &d
	}
	points := make([]PointLight, len(f.Points))
	for i, p := range f.Points {
		p.Shadow = nil
		points[i] = p
	}
	return dir, points
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, vertices, triangles, culled int) {
	return re.lastObjects, re.lastVertices, re.lastTriangles, re.lastCulled
}

func (re *RenderEngine) Destroy() {
	re.backend.Destroy()
}
