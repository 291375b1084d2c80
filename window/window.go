package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

// Window wraps a GLFW window that owns an OpenGL 4.1 core context.
// Width and Height are in screen coordinates (CSS-pixel equivalent);
// the framebuffer may be larger on high-DPI displays.
type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	onResize      ResizeCallback
	onCursor      CursorCallback
	onMouseButton MouseButtonCallback
	onScroll      ScrollCallback
	onKey         KeyCallback
}

type Config struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultConfig() Config {
	return Config{
		Width:     1280,
		Height:    720,
		Title:     "Haunted House",
		Resizable: true,
		VSync:     true,
	}
}

// ResizeCallback receives the new window size and the device pixel ratio
// (framebuffer pixels per screen coordinate).
type ResizeCallback func(width, height int, pixelRatio float32)

type CursorCallback func(x, y float64)

type MouseButtonCallback func(button MouseButton, pressed bool, x, y float64)

type ScrollCallback func(xoff, yoff float64)

type KeyCallback func(key int, pressed bool, shift bool)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func New(config Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	// Framebuffer size is the one that changes on DPI moves as well as on
	// plain resizes, so both are routed through the same callback.
	handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		window.emitResize()
	})
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		window.emitResize()
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if window.onCursor != nil {
			window.onCursor(x, y)
		}
	})
	handle.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if window.onMouseButton == nil || action == glfw.Repeat {
			return
		}
		var b MouseButton
		switch button {
		case glfw.MouseButtonLeft:
			b = MouseLeft
		case glfw.MouseButtonRight:
			b = MouseRight
		case glfw.MouseButtonMiddle:
			b = MouseMiddle
		default:
			return
		}
		x, y := w.GetCursorPos()
		window.onMouseButton(b, action == glfw.Press, x, y)
	})
	handle.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if window.onScroll != nil {
			window.onScroll(xoff, yoff)
		}
	})
	handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if window.onKey == nil {
			return
		}
		window.onKey(int(key), action != glfw.Release, mods&glfw.ModShift != 0)
	})

	w, h := handle.GetSize()
	window.Width, window.Height = w, h
	return window, nil
}

func (w *Window) emitResize() {
	if w.onResize != nil {
		w.onResize(w.Width, w.Height, w.PixelRatio())
	}
}

// PixelRatio is the window's device pixel ratio, never below 1.
func (w *Window) PixelRatio() float32 {
	fbW, _ := w.Handle.GetFramebufferSize()
	if w.Width <= 0 || fbW <= 0 {
		return 1
	}
	r := float32(fbW) / float32(w.Width)
	if r < 1 {
		return 1
	}
	return r
}

func (w *Window) SetResizeCallback(cb ResizeCallback)           { w.onResize = cb }
func (w *Window) SetCursorCallback(cb CursorCallback)           { w.onCursor = cb }
func (w *Window) SetMouseButtonCallback(cb MouseButtonCallback) { w.onMouseButton = cb }
func (w *Window) SetScrollCallback(cb ScrollCallback)           { w.onScroll = cb }
func (w *Window) SetKeyCallback(cb KeyCallback)                 { w.onKey = cb }

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

// Time returns seconds since GLFW was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeyEscape = int(glfw.KeyEscape)
	KeyF1     = int(glfw.KeyF1)
	KeyUp     = int(glfw.KeyUp)
	KeyDown   = int(glfw.KeyDown)
	KeyLeft   = int(glfw.KeyLeft)
	KeyRight  = int(glfw.KeyRight)
)
