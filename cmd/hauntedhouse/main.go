package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"haunted-house/controls"
	"haunted-house/debug"
	"haunted-house/haunted"
	"haunted-house/internal/config"
	"haunted-house/internal/opengl"
	"haunted-house/loop"
	"haunted-house/renderer"
	"haunted-house/scene"
	"haunted-house/scene/loader"
	"haunted-house/window"
)

func main() {
	if err := run(); err != nil {
		log.Printf("[Main] %v", err)
		os.Exit(1)
	}
}

func run() error {
	fmt.Println("Starting haunted house...")

	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	windowConfig := window.DefaultConfig()
	windowConfig.Width = cfg.Window.Width
	windowConfig.Height = cfg.Window.Height
	windowConfig.Title = cfg.Window.Title
	windowConfig.VSync = cfg.Window.VSync

	win, err := window.New(windowConfig)
	if err != nil {
		return fmt.Errorf("window: %w", err)
	}
	defer win.Destroy()

	backend, err := opengl.NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	engine := renderer.NewRenderEngine(backend)
	defer engine.Destroy()
	if cfg.Shadows {
		engine.EnableShadows()
		fmt.Println("Shadow mapping enabled (moon 2D map, point light cube maps)")
	}

	textures := loader.New(cfg.AssetRoot, cfg.LoaderWorkers)
	defer textures.Close()

	seed := cfg.GraveSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world := haunted.Build(textures, rand.New(rand.NewSource(seed)),
		haunted.WithGraveCount(cfg.GraveCount),
		haunted.WithShadows(cfg.Shadows),
	)
	fmt.Printf("Scene built: %d graves (seed %d), textures from %q\n",
		len(world.Graves.Children), seed, cfg.AssetRoot)

	camera := scene.NewPerspectiveCamera(75, float32(win.Width)/float32(max(win.Height, 1)), 0.1, 100)
	camera.SetPosition(4, 2, 5)

	orbit := controls.NewOrbitControls(camera)
	orbit.EnableDamping = true
	orbit.DampingFactor = cfg.DampingFactor

	panel := debug.NewPanel("Haunted House")
	panel.Visible = cfg.ShowPanel
	world.BindPanel(panel)

	viewport := renderer.NewViewport(camera, engine)
	resize := func(width, height int, pixelRatio float32) {
		viewport.Resize(width, height, pixelRatio)
		orbit.SetSize(width, height)
		engine.SetFramebufferSize(win.GetFramebufferSize())
	}
	resize(win.Width, win.Height, win.PixelRatio())
	win.SetResizeCallback(resize)
	bindInput(win, orbit, panel)

	hud := newHUD(cfg.Window.Title, win, engine, textures, panel)
	sched := loop.New(loop.NewSystemClock(), engine, world.Scene, camera,
		world,
		loop.UpdaterFunc(func(float64) { orbit.Update() }),
		hud,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Drag to orbit, right-drag to pan, scroll to zoom. F1 toggles the panel, ESC quits.")
	err = sched.Run(ctx, hostFunc(func() bool {
		win.SwapBuffers()
		win.PollEvents()
		return !win.ShouldClose()
	}))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Printf("Stopped after %d frames (%.1fs)\n", sched.Frames(), sched.Elapsed())
	return nil
}

// hostFunc adapts a per-frame callback to loop.Host.
type hostFunc func() bool

func (f hostFunc) NextFrame() bool { return f() }

var orbitButtons = map[window.MouseButton]controls.Button{
	window.MouseLeft:   controls.ButtonLeft,
	window.MouseMiddle: controls.ButtonMiddle,
	window.MouseRight:  controls.ButtonRight,
}

var panelKeys = map[int]debug.Key{
	window.KeyF1:    debug.KeyToggle,
	window.KeyUp:    debug.KeyUp,
	window.KeyDown:  debug.KeyDown,
	window.KeyLeft:  debug.KeyLeft,
	window.KeyRight: debug.KeyRight,
}

func bindInput(win *window.Window, orbit *controls.OrbitControls, panel *debug.Panel) {
	win.SetMouseButtonCallback(func(b window.MouseButton, pressed bool, x, y float64) {
		btn, ok := orbitButtons[b]
		if !ok {
			return
		}
		if pressed {
			orbit.PointerDown(btn, x, y)
		} else {
			orbit.PointerUp(btn)
		}
	})
	win.SetCursorCallback(orbit.PointerMove)
	// GLFW reports scrolling up as positive; the orbit follows DOM wheel deltas.
	win.SetScrollCallback(func(_, yoff float64) {
		orbit.Wheel(-yoff)
	})
	win.SetKeyCallback(func(key int, pressed, shift bool) {
		if !pressed {
			return
		}
		if key == window.KeyEscape {
			win.Close()
			return
		}
		if k, ok := panelKeys[key]; ok {
			panel.HandleKey(k, shift)
		}
	})
}
