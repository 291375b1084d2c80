// Package debug is a keyboard-driven slider panel for tweaking scene
// values at runtime. Nothing it changes is persisted.
package debug

import "github.com/chewxy/math32"

// Key is a panel input, mapped from window key events by the caller.
type Key int

const (
	KeyToggle Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// ShiftMultiplier scales the step while shift is held.
const ShiftMultiplier = 100

// Slider edits one float through get/set hooks.
type Slider struct {
	Label string
	Min   float32
	Max   float32
	Step  float32

	get func() float32
	set func(float32)
}

// Range sets the bounds and clamps the current value into them.
func (s *Slider) Range(min, max float32) *Slider {
	s.Min, s.Max = min, max
	s.SetValue(s.Value())
	return s
}

func (s *Slider) WithStep(step float32) *Slider {
	s.Step = step
	return s
}

func (s *Slider) Value() float32 {
	return s.get()
}

// SetValue snaps v to the step grid and clamps it to [Min, Max].
func (s *Slider) SetValue(v float32) {
	if s.Step > 0 {
		v = math32.Round(v/s.Step) * s.Step
	}
	if s.Max > s.Min {
		v = math32.Max(s.Min, math32.Min(s.Max, v))
	}
	s.set(v)
}

// Nudge moves the value by n steps.
func (s *Slider) Nudge(n float32) {
	step := s.Step
	if step <= 0 {
		step = (s.Max - s.Min) / 100
	}
	s.SetValue(s.Value() + n*step)
}

type Panel struct {
	Title   string
	Visible bool

	sliders  []*Slider
	selected int
	overlay  Overlay
}

func NewPanel(title string) *Panel {
	return &Panel{Title: title, Visible: true}
}

// Add registers a slider bound to v.
func (p *Panel) Add(label string, v *float32) *Slider {
	return p.AddFunc(label, func() float32 { return *v }, func(x float32) { *v = x })
}

// AddFunc registers a slider for values that need a setter, such as node
// positions whose cached matrices must be invalidated.
func (p *Panel) AddFunc(label string, get func() float32, set func(float32)) *Slider {
	s := &Slider{Label: label, get: get, set: set}
	p.sliders = append(p.sliders, s)
	return s
}

func (p *Panel) Sliders() []*Slider {
	return p.sliders
}

func (p *Panel) Selected() *Slider {
	if len(p.sliders) == 0 {
		return nil
	}
	return p.sliders[p.selected]
}

// HandleKey applies one key press and reports whether it was consumed.
// Only the toggle key works while the panel is hidden.
func (p *Panel) HandleKey(k Key, shift bool) bool {
	if k == KeyToggle {
		p.Visible = !p.Visible
		return true
	}
	if !p.Visible || len(p.sliders) == 0 {
		return false
	}
	var n float32 = 1
	if shift {
		n = ShiftMultiplier
	}
	switch k {
	case KeyUp:
		p.selected = (p.selected - 1 + len(p.sliders)) % len(p.sliders)
	case KeyDown:
		p.selected = (p.selected + 1) % len(p.sliders)
	case KeyLeft:
		p.sliders[p.selected].Nudge(-n)
	case KeyRight:
		p.sliders[p.selected].Nudge(n)
	default:
		return false
	}
	return true
}

// Lines renders the panel as text, one slider per line, with the
// selection marked.
func (p *Panel) Lines() []string {
	p.overlay.Clear()
	if !p.Visible {
		return nil
	}
	p.overlay.AddLine("%s  [F1 hide, arrows edit, shift x%d]", p.Title, ShiftMultiplier)
	for i, s := range p.sliders {
		mark := " "
		if i == p.selected {
			mark = ">"
		}
		p.overlay.AddLine("%s %-16s %7.3f  [%g, %g]", mark, s.Label, s.Value(), s.Min, s.Max)
	}
	return p.overlay.Lines()
}
