package main

import (
	"fmt"

	"haunted-house/debug"
	"haunted-house/loop"
	"haunted-house/renderer"
	"haunted-house/scene/loader"
	"haunted-house/window"
)

// hud refreshes the window title with the frame rate and queues the debug
// panel plus a stats line on the render engine.
type hud struct {
	title    string
	win      *window.Window
	engine   *renderer.RenderEngine
	textures *loader.Loader
	panel    *debug.Panel

	fps     loop.FPSCounter
	overlay debug.Overlay
}

func newHUD(title string, win *window.Window, engine *renderer.RenderEngine, textures *loader.Loader, panel *debug.Panel) *hud {
	return &hud{title: title, win: win, engine: engine, textures: textures, panel: panel}
}

func (h *hud) Update(elapsed float64) {
	if h.fps.Frame(elapsed) {
		h.win.SetTitle(fmt.Sprintf("%s | FPS: %d", h.title, h.fps.FPS))
	}
	if !h.panel.Visible {
		return
	}
	objects, _, tris, culled := h.engine.DrawStats()
	pending, ready, failed := h.textures.Stats()

	h.overlay.Clear()
	h.overlay.AddLine("FPS: %d   obj=%d  tris=%d  culled=%d", h.fps.FPS, objects, tris, culled)
	h.overlay.AddLine("Textures: %d ready  %d pending  %d failed", ready, pending, failed)
	h.engine.DrawText(h.panel.Lines()...)
	h.engine.DrawText(h.overlay.Lines()...)
}
