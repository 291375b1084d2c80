package renderer

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
	"haunted-house/scene"
)

const (
	MaxPointLights  = 8
	MaxPointShadows = 4

	// Half extent of the orthographic box a directional light renders its
	// shadow map with.
	directionalShadowExtent = 5
)

// DrawItem is one mesh resolved to world space for a single frame.
type DrawItem struct {
	Name          string
	Geometry      *scene.Geometry
	Material      *scene.StandardMaterial
	Model         mgl32.Mat4
	ReceiveShadow bool
	// Depth is the distance from the camera to the item's bounds centre.
	Depth float32
}

// ShadowView describes one shadow map render. Directional lights use
// ViewProj; point lights render six cube faces from Position.
type ShadowView struct {
	Type     scene.LightType
	Slot     int
	MapSize  int
	Near     float32
	Far      float32
	Bias     float32
	Position mgl32.Vec3
	ViewProj mgl32.Mat4
	Faces    [6]mgl32.Mat4
}

type DirectionalLight struct {
	// Direction points from the lit surface towards the light.
	Direction mgl32.Vec3
	Radiance  mgl32.Vec3
	Shadow    *ShadowView
}

type PointLight struct {
	Position mgl32.Vec3
	Radiance mgl32.Vec3
	Distance float32
	Decay    float32
	Shadow   *ShadowView
}

// Frame is everything a backend needs to draw one image.
type Frame struct {
	Clear          core.Color
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	CameraPosition mgl32.Vec3
	Fog            *scene.Fog

	Ambient     mgl32.Vec3
	Directional *DirectionalLight
	Points      []PointLight

	Opaque      []DrawItem
	Transparent []DrawItem // back to front
	Casters     []DrawItem

	Culled int
}

// Shadows lists the shadow views of every light in the frame.
func (f *Frame) Shadows() []*ShadowView {
	var out []*ShadowView
	if f.Directional != nil && f.Directional.Shadow != nil {
		out = append(out, f.Directional.Shadow)
	}
	for i := range f.Points {
		if f.Points[i].Shadow != nil {
			out = append(out, f.Points[i].Shadow)
		}
	}
	return out
}

type FrameOptions struct {
	FrustumCulling bool
	Shadows        bool
}

// BuildFrame flattens the scene into draw lists and light uniforms. It
// touches no GPU state.
func BuildFrame(s *scene.Scene, camera *scene.PerspectiveCamera, opts FrameOptions) *Frame {
	view := camera.ViewMatrix()
	proj := camera.ProjectionMatrix()
	f := &Frame{
		Clear:          s.Background,
		View:           view,
		Projection:     proj,
		CameraPosition: camera.Position,
		Fog:            s.Fog,
	}
	frustum := scene.FrustumFromVP(proj.Mul4(view))

	for _, n := range s.Meshes() {
		if n.Geometry == nil || n.Material == nil || len(n.Geometry.Vertices) == 0 {
			continue
		}
		model := n.WorldMatrix()
		box := n.Geometry.LocalAABB.Transform(model)
		item := DrawItem{
			Name:          n.Name,
			Geometry:      n.Geometry,
			Material:      n.Material,
			Model:         model,
			ReceiveShadow: n.ReceiveShadow,
			Depth:         box.Center().Sub(camera.Position).Len(),
		}
		if opts.Shadows && n.CastShadow {
			f.Casters = append(f.Casters, item)
		}
		if opts.FrustumCulling && !box.IntersectsFrustum(&frustum) {
			f.Culled++
			continue
		}
		if n.Material.Transparent {
			f.Transparent = append(f.Transparent, item)
		} else {
			f.Opaque = append(f.Opaque, item)
		}
	}
	sort.SliceStable(f.Transparent, func(i, j int) bool {
		return f.Transparent[i].Depth > f.Transparent[j].Depth
	})

	pointShadows := 0
	for _, n := range s.Lights() {
		l := n.Light
		radiance := l.Color.Vec3().Mul(l.Intensity)
		switch l.Type {
		case scene.LightAmbient:
			f.Ambient = f.Ambient.Add(radiance)
		case scene.LightDirectional:
			if f.Directional != nil {
				continue
			}
			pos := n.WorldPosition()
			dir := pos.Sub(l.Target)
			if dir.Len() < 1e-6 {
				dir = mgl32.Vec3{0, 1, 0}
			}
			d := &DirectionalLight{Direction: dir.Normalize(), Radiance: radiance}
			if opts.Shadows && l.CastShadow {
				d.Shadow = directionalShadow(pos, l)
			}
			f.Directional = d
		case scene.LightPoint:
			if len(f.Points) == MaxPointLights {
				continue
			}
			p := PointLight{
				Position: n.WorldPosition(),
				Radiance: radiance,
				Distance: l.Distance,
				Decay:    l.Decay,
			}
			if opts.Shadows && l.CastShadow && pointShadows < MaxPointShadows {
				p.Shadow = pointShadow(p.Position, l, pointShadows)
				pointShadows++
			}
			f.Points = append(f.Points, p)
		}
	}
	return f
}

func directionalShadow(pos mgl32.Vec3, l *scene.Light) *ShadowView {
	up := mgl32.Vec3{0, 1, 0}
	if dir := l.Target.Sub(pos).Normalize(); math32.Abs(dir.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	e := float32(directionalShadowExtent)
	view := mgl32.LookAtV(pos, l.Target, up)
	proj := mgl32.Ortho(-e, e, -e, e, l.Shadow.Near, l.Shadow.Far)
	return &ShadowView{
		Type:     scene.LightDirectional,
		MapSize:  l.Shadow.MapSize,
		Near:     l.Shadow.Near,
		Far:      l.Shadow.Far,
		Bias:     l.Shadow.Bias,
		Position: pos,
		ViewProj: proj.Mul4(view),
	}
}

// Cube face order and up vectors follow GL_TEXTURE_CUBE_MAP_POSITIVE_X..NEGATIVE_Z.
var cubeFaces = [6]struct{ dir, up mgl32.Vec3 }{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

func pointShadow(pos mgl32.Vec3, l *scene.Light, slot int) *ShadowView {
	sv := &ShadowView{
		Type:     scene.LightPoint,
		Slot:     slot,
		MapSize:  l.Shadow.MapSize,
		Near:     l.Shadow.Near,
		Far:      l.Shadow.Far,
		Bias:     l.Shadow.Bias,
		Position: pos,
	}
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, l.Shadow.Near, l.Shadow.Far)
	for i, face := range cubeFaces {
		sv.Faces[i] = proj.Mul4(mgl32.LookAtV(pos, pos.Add(face.dir), face.up))
	}
	return sv
}
