// Package controls implements a damped orbit camera controller.
package controls

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/scene"
)

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

type state int

const (
	stateNone state = iota
	stateRotate
	stateDolly
	statePan
)

const eps = 1e-6

// spherical is (radius, polar angle from +Y, azimuth around +Y from +Z).
type spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

func sphericalFromVec(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		Radius: r,
		Theta:  math32.Atan2(v.X(), v.Z()),
		Phi:    math32.Acos(mgl32.Clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) Vec() mgl32.Vec3 {
	sinPhiRadius := math32.Sin(s.Phi) * s.Radius
	return mgl32.Vec3{
		sinPhiRadius * math32.Sin(s.Theta),
		math32.Cos(s.Phi) * s.Radius,
		sinPhiRadius * math32.Cos(s.Theta),
	}
}

// OrbitControls orbits a PerspectiveCamera around Target. Left drag
// rotates, middle drag or the wheel dollies, right drag pans. With
// EnableDamping, motion continues after release and decays by
// DampingFactor every Update.
type OrbitControls struct {
	Camera *scene.PerspectiveCamera
	Target mgl32.Vec3

	EnableDamping bool
	DampingFactor float32

	RotateSpeed float32
	ZoomSpeed   float32
	PanSpeed    float32

	MinDistance   float32
	MaxDistance   float32
	MinPolarAngle float32
	MaxPolarAngle float32

	width, height float32

	state          state
	lastX, lastY   float64
	sphericalDelta spherical
	panOffset      mgl32.Vec3
	scale          float32
}

func NewOrbitControls(camera *scene.PerspectiveCamera) *OrbitControls {
	c := &OrbitControls{
		Camera:        camera,
		Target:        mgl32.Vec3{},
		DampingFactor: 0.05,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		PanSpeed:      1,
		MinDistance:   0,
		MaxDistance:   math32.Inf(1),
		MinPolarAngle: 0,
		MaxPolarAngle: math32.Pi,
		width:         1,
		height:        1,
		scale:         1,
	}
	camera.LookAt(c.Target)
	return c
}

// SetSize records the viewport size in window coordinates. Pointer deltas
// are normalised by the height.
func (c *OrbitControls) SetSize(width, height int) {
	c.width = float32(max(width, 1))
	c.height = float32(max(height, 1))
}

func (c *OrbitControls) PointerDown(button Button, x, y float64) {
	switch button {
	case ButtonLeft:
		c.state = stateRotate
	case ButtonMiddle:
		c.state = stateDolly
	case ButtonRight:
		c.state = statePan
	}
	c.lastX, c.lastY = x, y
}

func (c *OrbitControls) PointerUp(Button) {
	c.state = stateNone
}

func (c *OrbitControls) PointerMove(x, y float64) {
	dx := float32(x - c.lastX)
	dy := float32(y - c.lastY)
	c.lastX, c.lastY = x, y

	switch c.state {
	case stateRotate:
		c.RotateLeft(2 * math32.Pi * dx / c.height * c.RotateSpeed)
		c.RotateUp(2 * math32.Pi * dy / c.height * c.RotateSpeed)
	case stateDolly:
		if dy > 0 {
			c.DollyOut(c.zoomScale())
		} else if dy < 0 {
			c.DollyIn(c.zoomScale())
		}
	case statePan:
		c.Pan(dx*c.PanSpeed, dy*c.PanSpeed)
	}
}

// Wheel handles a scroll step; positive dy (scroll up) moves closer.
func (c *OrbitControls) Wheel(dy float64) {
	if dy > 0 {
		c.DollyIn(c.zoomScale())
	} else if dy < 0 {
		c.DollyOut(c.zoomScale())
	}
}

func (c *OrbitControls) zoomScale() float32 {
	return math32.Pow(0.95, c.ZoomSpeed)
}

func (c *OrbitControls) RotateLeft(angle float32) {
	c.sphericalDelta.Theta -= angle
}

func (c *OrbitControls) RotateUp(angle float32) {
	c.sphericalDelta.Phi -= angle
}

func (c *OrbitControls) DollyIn(scale float32) {
	c.scale *= scale
}

func (c *OrbitControls) DollyOut(scale float32) {
	c.scale /= scale
}

// Pan moves the target in the camera's screen plane by a pixel delta.
func (c *OrbitControls) Pan(dx, dy float32) {
	offset := c.Camera.Position.Sub(c.Target)
	targetDistance := offset.Len() * math32.Tan(mgl32.DegToRad(c.Camera.FOV)/2)

	view := c.Camera.ViewMatrix().Inv()
	right := view.Col(0).Vec3()
	up := view.Col(1).Vec3()

	left := right.Mul(-2 * dx * targetDistance / c.height)
	upMove := up.Mul(2 * dy * targetDistance / c.height)
	c.panOffset = c.panOffset.Add(left).Add(upMove)
}

// Update applies pending rotation, dolly and pan to the camera. It
// reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	oldPos := c.Camera.Position
	offset := oldPos.Sub(c.Target)
	s := sphericalFromVec(offset)

	if c.EnableDamping {
		s.Theta += c.sphericalDelta.Theta * c.DampingFactor
		s.Phi += c.sphericalDelta.Phi * c.DampingFactor
	} else {
		s.Theta += c.sphericalDelta.Theta
		s.Phi += c.sphericalDelta.Phi
	}

	s.Phi = mgl32.Clamp(s.Phi, c.MinPolarAngle, c.MaxPolarAngle)
	s.Phi = mgl32.Clamp(s.Phi, eps, math32.Pi-eps)

	s.Radius *= c.scale
	s.Radius = mgl32.Clamp(s.Radius, c.MinDistance, c.MaxDistance)

	if c.EnableDamping {
		c.Target = c.Target.Add(c.panOffset.Mul(c.DampingFactor))
	} else {
		c.Target = c.Target.Add(c.panOffset)
	}

	c.Camera.Position = c.Target.Add(s.Vec())
	c.Camera.LookAt(c.Target)

	if c.EnableDamping {
		c.sphericalDelta.Theta *= 1 - c.DampingFactor
		c.sphericalDelta.Phi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.sphericalDelta = spherical{}
		c.panOffset = mgl32.Vec3{}
	}
	c.scale = 1

	moved := c.Camera.Position.Sub(oldPos)
	return moved.Dot(moved) > eps
}
