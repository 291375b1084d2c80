package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ComputeTangents generates per-vertex tangent and bitangent vectors for
// tangent-space normal mapping. Triangles with a degenerate UV area are
// skipped. The primitive constructors call this already.
func ComputeTangents(g *Geometry) {
	for i := range g.Vertices {
		g.Vertices[i].Tangent = mgl32.Vec3{}
		g.Vertices[i].Bitangent = mgl32.Vec3{}
	}

	accum := func(i0, i1, i2 uint32) {
		v0, v1, v2 := g.Vertices[i0], g.Vertices[i1], g.Vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.UV.Sub(v0.UV)
		d2 := v2.UV.Sub(v0.UV)

		denom := d1.X()*d2.Y() - d2.X()*d1.Y()
		if denom == 0 {
			return
		}
		r := 1 / denom
		t := e1.Mul(d2.Y() * r).Sub(e2.Mul(d1.Y() * r))
		b := e2.Mul(d1.X() * r).Sub(e1.Mul(d2.X() * r))

		for _, i := range [3]uint32{i0, i1, i2} {
			g.Vertices[i].Tangent = g.Vertices[i].Tangent.Add(t)
			g.Vertices[i].Bitangent = g.Vertices[i].Bitangent.Add(b)
		}
	}

	if len(g.Indices) > 0 {
		for i := 0; i+2 < len(g.Indices); i += 3 {
			accum(g.Indices[i], g.Indices[i+1], g.Indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(g.Vertices); i += 3 {
			accum(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	// Gram-Schmidt against the normal.
	for i := range g.Vertices {
		n := g.Vertices[i].Normal
		t := g.Vertices[i].Tangent
		b := g.Vertices[i].Bitangent

		t = t.Sub(n.Mul(n.Dot(t)))
		if t.Dot(t) < 1e-8 {
			if math32.Abs(n.X()) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(n.Mul(n.X()))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(n.Mul(n.Y()))
			}
		}
		g.Vertices[i].Tangent = t.Normalize()

		if b.Dot(b) < 1e-8 {
			b = n.Cross(g.Vertices[i].Tangent)
		}
		g.Vertices[i].Bitangent = b.Normalize()
	}
}
