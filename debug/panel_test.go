package debug

import (
	"math"
	"strings"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestSliderStepAndClamp(t *testing.T) {
	p := NewPanel("Debug")
	v := float32(0.12)
	s := p.Add("ambient intensity", &v).Range(0, 1).WithStep(0.001)

	p.HandleKey(KeyRight, false)
	if !approx(v, 0.121) {
		t.Errorf("Right: expected 0.121, got %v", v)
	}
	p.HandleKey(KeyLeft, true)
	if !approx(v, 0.021) {
		t.Errorf("Shift+Left: expected 0.021, got %v", v)
	}
	p.HandleKey(KeyLeft, true)
	if v != 0 {
		t.Errorf("clamp at Min: expected 0, got %v", v)
	}
	s.SetValue(7)
	if v != 1 {
		t.Errorf("clamp at Max: expected 1, got %v", v)
	}
}

func TestPanelSelectionWraps(t *testing.T) {
	p := NewPanel("Debug")
	var a, b, c float32
	p.Add("a", &a).Range(-5, 5).WithStep(0.001)
	p.Add("b", &b).Range(-5, 5).WithStep(0.001)
	p.Add("c", &c).Range(-5, 5).WithStep(0.001)

	if p.Selected().Label != "a" {
		t.Fatalf("expected a selected, got %s", p.Selected().Label)
	}
	p.HandleKey(KeyUp, false)
	if p.Selected().Label != "c" {
		t.Errorf("Up from first: expected c, got %s", p.Selected().Label)
	}
	p.HandleKey(KeyDown, false)
	p.HandleKey(KeyDown, false)
	if p.Selected().Label != "b" {
		t.Errorf("expected b, got %s", p.Selected().Label)
	}
	p.HandleKey(KeyRight, true)
	if !approx(b, 0.1) || a != 0 || c != 0 {
		t.Errorf("only b should move: a=%v b=%v c=%v", a, b, c)
	}
}

func TestPanelToggleHidesInput(t *testing.T) {
	p := NewPanel("Debug")
	v := float32(0.5)
	p.Add("x", &v).Range(0, 1).WithStep(0.1)

	p.HandleKey(KeyToggle, false)
	if p.Visible {
		t.Fatal("toggle should hide the panel")
	}
	if p.HandleKey(KeyRight, false) {
		t.Error("hidden panel should not consume keys")
	}
	if v != 0.5 {
		t.Errorf("hidden panel changed value to %v", v)
	}
	if lines := p.Lines(); lines != nil {
		t.Errorf("hidden panel should draw nothing, got %v", lines)
	}
	p.HandleKey(KeyToggle, false)
	if !p.Visible {
		t.Error("second toggle should show the panel")
	}
}

func TestPanelLines(t *testing.T) {
	p := NewPanel("Debug")
	v := float32(0.12)
	p.Add("moon intensity", &v).Range(0, 1).WithStep(0.001)
	lines := p.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected title + 1 slider, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], ">") || !strings.Contains(lines[1], "0.120") {
		t.Errorf("unexpected slider line %q", lines[1])
	}
}

func TestAddFuncUsesSetter(t *testing.T) {
	p := NewPanel("Debug")
	var stored float32
	calls := 0
	p.AddFunc("moon x", func() float32 { return stored }, func(x float32) {
		stored = x
		calls++
	}).Range(-5, 5).WithStep(0.001)
	p.HandleKey(KeyRight, false)
	if calls < 2 || !approx(stored, 0.001) {
		t.Errorf("setter not used: calls=%d stored=%v", calls, stored)
	}
}

func TestOverlayText(t *testing.T) {
	var o Overlay
	if o.Text() != "" {
		t.Error("empty overlay should have no text")
	}
	o.AddLine("FPS: %d", 60)
	o.AddLine("Objects: %d", 3)
	if o.Text() != "FPS: 60\nObjects: 3\n" {
		t.Errorf("unexpected text %q", o.Text())
	}
	o.Clear()
	if len(o.Lines()) != 0 {
		t.Error("Clear should drop lines")
	}
}
