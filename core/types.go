package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ColorHex parses a "#rrggbb" string. It panics on malformed input, so use
// it only with literals.
func ColorHex(s string) Color {
	c, err := ParseColorHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseColorHex parses "#rrggbb" (the leading # is optional).
func ParseColorHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
		A: 1,
	}, nil
}

// Vec3 drops alpha.
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Vertex is the interleaved layout uploaded to the GPU.
// UV2 feeds ambient-occlusion sampling.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	UV        mgl32.Vec2
	UV2       mgl32.Vec2
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
}

// WrapMode selects how texture coordinates outside [0,1] are resolved.
type WrapMode int

const (
	ClampToEdgeWrapping WrapMode = iota
	RepeatWrapping
)

func (w WrapMode) String() string {
	switch w {
	case RepeatWrapping:
		return "repeat"
	default:
		return "clamp"
	}
}

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler radians, XYZ order (matrix Rx*Ry*Rz)
	Scale    mgl32.Vec3
}

func NewTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix returns T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotation := mgl32.AnglesToQuat(t.Rotation.X(), t.Rotation.Y(), t.Rotation.Z(), mgl32.XYZ).Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translation.Mul4(rotation).Mul4(scale)
}
