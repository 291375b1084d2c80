package scene

import "github.com/go-gl/mathgl/mgl32"

// PerspectiveCamera looks from Position towards a target point. FOV is the
// vertical field of view in degrees.
type PerspectiveCamera struct {
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Up       mgl32.Vec3
	target   mgl32.Vec3

	projectionMatrix mgl32.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl32.Vec3{0, 1, 0},
		target: mgl32.Vec3{0, 0, -1},
	}
	c.UpdateProjectionMatrix()
	return c
}

// SetAspect stores width/height. Call UpdateProjectionMatrix afterwards.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	c.Aspect = aspect
}

// UpdateProjectionMatrix recomputes the projection after FOV, Aspect, Near
// or Far changed.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projectionMatrix = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) SetPosition(x, y, z float32) {
	c.Position = mgl32.Vec3{x, y, z}
}

func (c *PerspectiveCamera) LookAt(target mgl32.Vec3) {
	c.target = target
}

func (c *PerspectiveCamera) Target() mgl32.Vec3 {
	return c.target
}

// Forward is the unit view direction.
func (c *PerspectiveCamera) Forward() mgl32.Vec3 {
	d := c.target.Sub(c.Position)
	if d.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.target, c.Up)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *PerspectiveCamera) ViewProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix.Mul4(c.ViewMatrix())
}
