package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
)

// Geometry holds CPU-side vertex/index data. One Geometry may be shared by
// many mesh nodes; GPU upload is managed by the renderer backend.
type Geometry struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32

	// HasUV2 reports whether the secondary UV set has been populated.
	HasUV2 bool

	LocalAABB AABB

	// GPUData is set by the renderer backend. Do not access directly.
	GPUData interface{}
}

// NewGeometry builds a Geometry and pre-computes its local-space AABB.
func NewGeometry(name string, vertices []core.Vertex, indices []uint32) *Geometry {
	g := &Geometry{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		g.LocalAABB = computeLocalAABB(vertices)
	}
	return g
}

// CopyUVToUV2 duplicates the primary UV attribute into UV2. Ambient
// occlusion maps sample UV2, so every geometry drawn with an AO map must
// have this applied once before its first render.
func (g *Geometry) CopyUVToUV2() {
	for i := range g.Vertices {
		g.Vertices[i].UV2 = g.Vertices[i].UV
	}
	g.HasUV2 = true
}

func (g *Geometry) UVs() []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(g.Vertices))
	for i, v := range g.Vertices {
		out[i] = v.UV
	}
	return out
}

func (g *Geometry) UV2s() []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(g.Vertices))
	for i, v := range g.Vertices {
		out[i] = v.UV2
	}
	return out
}

func (g *Geometry) TriangleCount() int {
	if len(g.Indices) > 0 {
		return len(g.Indices) / 3
	}
	return len(g.Vertices) / 3
}

func computeLocalAABB(vertices []core.Vertex) AABB {
	min := vertices[0].Position
	max := vertices[0].Position
	for i := 1; i < len(vertices); i++ {
		min, max = extend(min, max, vertices[i].Position)
	}
	return AABB{Min: min, Max: max}
}

func extend(min, max, p mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	for k := 0; k < 3; k++ {
		if p[k] < min[k] {
			min[k] = p[k]
		}
		if p[k] > max[k] {
			max[k] = p[k]
		}
	}
	return min, max
}
