package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
)

type LightType int

const (
	LightAmbient LightType = iota
	LightDirectional
	LightPoint
)

func (t LightType) String() string {
	switch t {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	}
	return "unknown"
}

// LightShadow holds per-light shadow map settings.
type LightShadow struct {
	MapSize int
	Near    float32
	Far     float32
	Bias    float32
}

func defaultShadow() LightShadow {
	return LightShadow{MapSize: 512, Near: 0.5, Far: 500, Bias: 0.005}
}

// Light is attached to a Node; its position is the node's world position.
// Directional lights shine from their position towards Target.
type Light struct {
	Type      LightType
	Color     core.Color
	Intensity float32

	// Point lights: Distance 0 means unlimited range.
	Distance float32
	Decay    float32

	// Directional lights: world-space point the light aims at.
	Target mgl32.Vec3

	CastShadow bool
	Shadow     LightShadow
}

func NewAmbientLight(color core.Color, intensity float32) *Light {
	return &Light{Type: LightAmbient, Color: color, Intensity: intensity}
}

func NewDirectionalLight(color core.Color, intensity float32) *Light {
	return &Light{Type: LightDirectional, Color: color, Intensity: intensity, Shadow: defaultShadow()}
}

func NewPointLight(color core.Color, intensity, distance float32) *Light {
	return &Light{
		Type:      LightPoint,
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Decay:     1,
		Shadow:    defaultShadow(),
	}
}

// Fog fades geometry towards Color between the Near and Far view depths.
type Fog struct {
	Color core.Color
	Near  float32
	Far   float32
}

// Factor returns the fog blend amount in [0,1] at view depth d. The ramp is
// a smoothstep, matching the fragment shader.
func (f *Fog) Factor(d float32) float32 {
	if f == nil || f.Far <= f.Near {
		return 0
	}
	x := (d - f.Near) / (f.Far - f.Near)
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}
