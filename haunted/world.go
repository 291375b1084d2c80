// Package haunted assembles the haunted-house scene: a textured house with
// a door light, bushes, a ring of graves, a grass floor, moonlight, fog and
// three ghost lights that circle the house.
package haunted

import (
	"math"
	"math/rand"
	"time"

	"haunted-house/core"
	"haunted-house/debug"
	"haunted-house/scene"
)

// Scene colours.
var (
	FogColor   = core.ColorHex("#262837")
	MoonColor  = core.ColorHex("#b9d5ff")
	RoofColor  = core.ColorHex("#b35f45")
	BushColor  = core.ColorHex("#89c854")
	GraveColor = core.ColorHex("#b2b6b1")
	DoorGlow   = core.ColorHex("#ff7d46")
)

var GhostColors = [3]core.Color{
	core.ColorHex("#ff0000"),
	core.ColorHex("#00ffff"),
	core.ColorHex("#ffff00"),
}

const (
	DefaultGraveCount = 50
	GraveMinRadius    = 4
	GraveRadiusSpan   = 6

	FogNear = 1
	FogFar  = 15

	shadowMapSize = 256
)

// World owns the assembled scene and named handles to the parts that are
// animated or tweaked at runtime.
type World struct {
	Scene    *scene.Scene
	Textures Textures

	House     *scene.Node
	Walls     *scene.Node
	Roof      *scene.Node
	Door      *scene.Node
	DoorLight *scene.Node
	Bushes    []*scene.Node
	Graves    *scene.Node
	Floor     *scene.Node

	Ambient *scene.Node
	Moon    *scene.Node
	Ghosts  [3]*scene.Node
}

type options struct {
	graveCount int
	shadows    bool
}

type Option func(*options)

// WithGraveCount overrides the number of graves.
func WithGraveCount(n int) Option {
	return func(o *options) { o.graveCount = n }
}

// WithShadows toggles every cast/receive flag; the scene layout is unchanged.
func WithShadows(enabled bool) Option {
	return func(o *options) { o.shadows = enabled }
}

// Build assembles the scene. rng drives grave placement; nil seeds from
// the clock. Texture failures leave the structure untouched.
func Build(loader scene.TextureLoader, rng *rand.Rand, opts ...Option) *World {
	o := options{graveCount: DefaultGraveCount, shadows: true}
	for _, opt := range opts {
		opt(&o)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w := &World{Scene: scene.NewScene()}
	w.Textures = LoadTextures(loader)

	w.buildHouse()
	w.buildBushes()
	w.buildGraves(rng, o.graveCount)
	w.buildFloor()
	w.buildLights()

	w.Scene.Add(w.House)
	w.Scene.Add(w.Bushes...)
	w.Scene.Add(w.Graves, w.Floor, w.Ambient, w.Moon)
	w.Scene.Add(w.Ghosts[:]...)

	w.Scene.Fog = &scene.Fog{Color: FogColor, Near: FogNear, Far: FogFar}
	w.Scene.Background = FogColor

	w.applyShadows(o.shadows)
	w.Update(0)
	return w
}

func (w *World) buildHouse() {
	tex := w.Textures
	w.House = scene.NewGroup("House")

	wallMat := scene.NewStandardMaterial("Walls")
	wallMat.Map = tex.Bricks.Color
	wallMat.NormalMap = tex.Bricks.Normal
	wallMat.RoughnessMap = tex.Bricks.Roughness
	wallMat.AOMap = tex.Bricks.AmbientOcclusion
	wallGeo := scene.NewBoxGeometry(4, 2.5, 4)
	wallGeo.CopyUVToUV2()
	w.Walls = scene.NewMesh("Walls", wallGeo, wallMat)
	w.Walls.SetPosition(0, 1.25, 0)

	roofMat := scene.NewStandardMaterial("Roof")
	roofMat.Color = RoofColor
	w.Roof = scene.NewMesh("Roof", scene.NewConeGeometry(3.5, 1, 4), roofMat)
	// Walls height plus half the roof height.
	w.Roof.SetPosition(0, 2.5+0.5, 0)
	w.Roof.SetRotation(0, math.Pi/4, 0)

	// The displacement map needs a finely subdivided plane.
	doorMat := scene.NewStandardMaterial("Door")
	doorMat.Map = tex.Door.Color
	doorMat.MetalnessMap = tex.Door.Metalness
	doorMat.RoughnessMap = tex.Door.Roughness
	doorMat.NormalMap = tex.Door.Normal
	doorMat.AlphaMap = tex.Door.Alpha
	doorMat.AOMap = tex.Door.AmbientOcclusion
	doorMat.DisplacementMap = tex.Door.Height
	doorMat.DisplacementScale = 0.1
	doorMat.Transparent = true
	doorMat.Metalness = 0
	doorMat.Roughness = 1
	doorGeo := scene.NewPlaneGeometry(2.2, 2.2, 100, 100)
	doorGeo.CopyUVToUV2()
	w.Door = scene.NewMesh("Door", doorGeo, doorMat)
	w.Door.SetPosition(0, 1, 2+0.01)

	w.DoorLight = scene.NewLightNode("DoorLight", scene.NewPointLight(DoorGlow, 1, 7))
	w.DoorLight.SetPosition(0, 2.2, 2.7)

	w.House.Add(w.Walls, w.Roof, w.Door, w.DoorLight)
}

func (w *World) buildBushes() {
	geo := scene.NewSphereGeometry(1, 16, 16)
	mat := scene.NewStandardMaterial("Bush")
	mat.Color = BushColor

	layout := []struct {
		scale   float32
		x, y, z float32
	}{
		{0.5, 0.8, 0.2, 2.2},
		{0.3, 1.5, 0.1, 2.1},
		{0.4, -1, 0.1, 2.2},
		{0.2, -1.5, 0.1, 2.4},
	}
	w.Bushes = make([]*scene.Node, 0, len(layout))
	for _, b := range layout {
		n := scene.NewMesh("Bush", geo, mat)
		n.SetUniformScale(b.scale)
		n.SetPosition(b.x, b.y, b.z)
		w.Bushes = append(w.Bushes, n)
	}
}

// GravePlacement is one grave's polar draw and the resulting transform.
type GravePlacement struct {
	Angle, Radius float64
	X, Y, Z       float32
	RotY, RotZ    float32
}

// PlaceGraves draws n placements: angle in [0, 2π), radius in [4, 10),
// tilt in [-0.2, 0.2) about Y and Z. Draw order per grave is angle,
// radius, rotY, rotZ.
func PlaceGraves(rng *rand.Rand, n int) []GravePlacement {
	out := make([]GravePlacement, n)
	for i := range out {
		angle := rng.Float64() * math.Pi * 2
		radius := GraveMinRadius + rng.Float64()*GraveRadiusSpan
		out[i] = GravePlacement{
			Angle:  angle,
			Radius: radius,
			X:      float32(math.Sin(angle) * radius),
			Y:      0.3,
			Z:      float32(math.Cos(angle) * radius),
			RotY:   float32((rng.Float64() - 0.5) * 0.4),
			RotZ:   float32((rng.Float64() - 0.5) * 0.4),
		}
	}
	return out
}

func (w *World) buildGraves(rng *rand.Rand, n int) {
	w.Graves = scene.NewGroup("Graves")
	geo := scene.NewBoxGeometry(0.6, 0.8, 0.2)
	mat := scene.NewStandardMaterial("Grave")
	mat.Color = GraveColor

	for _, p := range PlaceGraves(rng, n) {
		g := scene.NewMesh("Grave", geo, mat)
		g.SetPosition(p.X, p.Y, p.Z)
		g.SetRotation(0, p.RotY, p.RotZ)
		w.Graves.AddChild(g)
	}
}

func (w *World) buildFloor() {
	tex := w.Textures.Grass
	mat := scene.NewStandardMaterial("Floor")
	mat.Map = tex.Color
	mat.RoughnessMap = tex.Roughness
	mat.NormalMap = tex.Normal
	mat.AOMap = tex.AmbientOcclusion

	geo := scene.NewPlaneGeometry(20, 20, 1, 1)
	geo.CopyUVToUV2()
	w.Floor = scene.NewMesh("Floor", geo, mat)
	w.Floor.SetRotation(-math.Pi*0.5, 0, 0)
}

func (w *World) buildLights() {
	w.Ambient = scene.NewLightNode("Ambient", scene.NewAmbientLight(MoonColor, 0.12))

	w.Moon = scene.NewLightNode("Moon", scene.NewDirectionalLight(MoonColor, 0.12))
	w.Moon.SetPosition(4, 5, -2)

	for i := range w.Ghosts {
		w.Ghosts[i] = scene.NewLightNode("Ghost", scene.NewPointLight(GhostColors[i], 2, 3))
	}
}

func (w *World) applyShadows(enabled bool) {
	w.Walls.CastShadow = enabled
	for _, b := range w.Bushes {
		b.CastShadow = enabled
	}
	for _, g := range w.Graves.Children {
		g.CastShadow = enabled
	}
	w.Floor.ReceiveShadow = enabled

	setShadow := func(n *scene.Node, far float32) {
		n.Light.CastShadow = enabled
		n.Light.Shadow.MapSize = shadowMapSize
		n.Light.Shadow.Far = far
	}
	setShadow(w.Moon, 15)
	setShadow(w.DoorLight, 4)
	for _, g := range w.Ghosts {
		setShadow(g, 2)
	}
}

// Update moves the ghosts to their positions at elapsed seconds.
func (w *World) Update(elapsed float64) {
	for i, g := range w.Ghosts {
		p := GhostPaths[i](elapsed)
		g.SetPosition(p.X(), p.Y(), p.Z())
	}
}

// BindPanel adds the light sliders to p.
func (w *World) BindPanel(p *debug.Panel) {
	ambient := w.Ambient.Light
	moon := w.Moon.Light
	p.Add("ambient intensity", &ambient.Intensity).Range(0, 1).WithStep(0.001)
	p.Add("moon intensity", &moon.Intensity).Range(0, 1).WithStep(0.001)
	for axis, label := range []string{"moon x", "moon y", "moon z"} {
		p.AddFunc(label,
			func() float32 { return w.Moon.Transform.Position[axis] },
			func(v float32) {
				pos := w.Moon.Transform.Position
				pos[axis] = v
				w.Moon.SetPosition(pos.X(), pos.Y(), pos.Z())
			},
		).Range(-5, 5).WithStep(0.001)
	}
}
