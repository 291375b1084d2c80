package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/scene"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}

func newControls() *OrbitControls {
	cam := scene.NewPerspectiveCamera(75, 1, 0.1, 100)
	cam.SetPosition(4, 2, 5)
	c := NewOrbitControls(cam)
	c.EnableDamping = true
	c.SetSize(800, 600)
	return c
}

func TestUpdateWithoutInputKeepsCamera(t *testing.T) {
	c := newControls()
	start := c.Camera.Position
	if c.Update() {
		t.Error("Update without input should not report movement")
	}
	if d := c.Camera.Position.Sub(start).Len(); d > 1e-4 {
		t.Errorf("camera drifted by %v", d)
	}
	if c.Camera.Target() != (mgl32.Vec3{}) {
		t.Errorf("camera should look at the origin, got %v", c.Camera.Target())
	}
}

func TestRotatePreservesDistance(t *testing.T) {
	c := newControls()
	radius := c.Camera.Position.Len()

	c.PointerDown(ButtonLeft, 100, 100)
	c.PointerMove(160, 120)
	c.PointerUp(ButtonLeft)
	if !c.Update() {
		t.Fatal("expected movement after a drag")
	}
	if !approx(c.Camera.Position.Len(), radius) {
		t.Errorf("orbit changed radius: %v -> %v", radius, c.Camera.Position.Len())
	}
}

func TestDampingDecaysDelta(t *testing.T) {
	c := newControls()
	c.RotateLeft(1)

	before := c.sphericalDelta.Theta
	c.Update()
	after := c.sphericalDelta.Theta
	if !approx(after, before*(1-c.DampingFactor)) {
		t.Errorf("expected delta decay to %v, got %v", before*(1-c.DampingFactor), after)
	}

	// Inertia keeps the camera moving for later frames.
	p1 := c.Camera.Position
	c.Update()
	if c.Camera.Position == p1 {
		t.Error("damped controls should keep moving after input stops")
	}

	for i := 0; i < 2000; i++ {
		c.Update()
	}
	if c.Update() {
		t.Error("motion should settle eventually")
	}
}

func TestWithoutDampingAppliesAtOnce(t *testing.T) {
	c := newControls()
	c.EnableDamping = false
	start := sphericalFromVec(c.Camera.Position)

	c.RotateLeft(0.5)
	c.Update()
	got := sphericalFromVec(c.Camera.Position)
	if !approx(got.Theta, start.Theta-0.5) {
		t.Errorf("theta: expected %v, got %v", start.Theta-0.5, got.Theta)
	}
	if c.sphericalDelta.Theta != 0 {
		t.Errorf("delta should reset, got %v", c.sphericalDelta.Theta)
	}
}

func TestPolarAngleClamped(t *testing.T) {
	c := newControls()
	c.EnableDamping = false
	r := c.Camera.Position.Len()
	c.RotateUp(10)
	c.Update()
	// Clamped just short of the pole: straight above the target, not past it.
	p := c.Camera.Position
	if math.IsNaN(float64(p.X())) || !approx(p.Y(), r) {
		t.Errorf("expected camera above the target at height %v, got %v", r, p)
	}
	c.RotateUp(-20)
	c.Update()
	if p := c.Camera.Position; !approx(p.Y(), -r) {
		t.Errorf("expected camera below the target at depth %v, got %v", -r, p)
	}
}

func TestWheelDollyAndDistanceClamp(t *testing.T) {
	c := newControls()
	c.EnableDamping = false
	c.MinDistance = 2
	r := c.Camera.Position.Len()

	c.Wheel(1)
	c.Update()
	if !approx(c.Camera.Position.Len(), r*0.95) {
		t.Errorf("scroll up: expected %v, got %v", r*0.95, c.Camera.Position.Len())
	}
	for i := 0; i < 100; i++ {
		c.Wheel(1)
		c.Update()
	}
	if !approx(c.Camera.Position.Len(), 2) {
		t.Errorf("MinDistance: expected 2, got %v", c.Camera.Position.Len())
	}
}

func TestPanMovesTarget(t *testing.T) {
	c := newControls()
	c.EnableDamping = false
	c.PointerDown(ButtonRight, 0, 0)
	c.PointerMove(50, 0)
	c.Update()
	if c.Target.Len() == 0 {
		t.Error("pan should move the target")
	}
	// The offset from target to camera is unchanged by a pan.
	off := c.Camera.Position.Sub(c.Target)
	if !approx(off.Len(), mgl32.Vec3{4, 2, 5}.Len()) {
		t.Errorf("pan changed orbit radius to %v", off.Len())
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	v := mgl32.Vec3{4, 2, 5}
	back := sphericalFromVec(v).Vec()
	if !approx(back.X(), 4) || !approx(back.Y(), 2) || !approx(back.Z(), 5) {
		t.Errorf("expected %v, got %v", v, back)
	}
}
