package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"haunted-house/core"
)

// The generators below follow the vertex order, UV layout and winding of
// the common WebGL scene-graph primitives so texture sets authored for them
// map identically.

// NewBoxGeometry generates a box centred on the origin with one quad per face.
func NewBoxGeometry(width, height, depth float32) *Geometry {
	b := &builder{}
	b.boxFace(2, 1, 0, -1, -1, depth, height, width)  // +X
	b.boxFace(2, 1, 0, 1, -1, depth, height, -width)  // -X
	b.boxFace(0, 2, 1, 1, 1, width, depth, height)    // +Y
	b.boxFace(0, 2, 1, 1, -1, width, depth, -height)  // -Y
	b.boxFace(0, 1, 2, 1, -1, width, height, depth)   // +Z
	b.boxFace(0, 1, 2, -1, -1, width, height, -depth) // -Z
	g := NewGeometry("Box", b.vertices, b.indices)
	ComputeTangents(g)
	return g
}

// NewPlaneGeometry generates a plane in XY facing +Z.
func NewPlaneGeometry(width, height float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}
	b := &builder{}
	gridX1 := widthSegments + 1
	segW := width / float32(widthSegments)
	segH := height / float32(heightSegments)

	for iy := 0; iy <= heightSegments; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= widthSegments; ix++ {
			x := float32(ix)*segW - width/2
			b.vertices = append(b.vertices, core.Vertex{
				Position: mgl32.Vec3{x, -y, 0},
				Normal:   mgl32.Vec3{0, 0, 1},
				UV:       mgl32.Vec2{float32(ix) / float32(widthSegments), 1 - float32(iy)/float32(heightSegments)},
			})
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(ix + gridX1*iy)
			bb := uint32(ix + gridX1*(iy+1))
			c := uint32(ix + 1 + gridX1*(iy+1))
			d := uint32(ix + 1 + gridX1*iy)
			b.indices = append(b.indices, a, bb, d, bb, c, d)
		}
	}
	g := NewGeometry("Plane", b.vertices, b.indices)
	ComputeTangents(g)
	return g
}

// NewSphereGeometry generates a UV sphere.
func NewSphereGeometry(radius float32, widthSegments, heightSegments int) *Geometry {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	b := &builder{}
	grid := make([][]uint32, 0, heightSegments+1)

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		// Pole vertices get a half-segment U offset so the caps are not skewed.
		var uOffset float32
		if iy == 0 {
			uOffset = 0.5 / float32(widthSegments)
		} else if iy == heightSegments {
			uOffset = -0.5 / float32(widthSegments)
		}
		row := make([]uint32, 0, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi
			pos := mgl32.Vec3{
				-radius * math32.Cos(phi) * math32.Sin(theta),
				radius * math32.Cos(theta),
				radius * math32.Sin(phi) * math32.Sin(theta),
			}
			row = append(row, uint32(len(b.vertices)))
			b.vertices = append(b.vertices, core.Vertex{
				Position: pos,
				Normal:   safeNormalize(pos, mgl32.Vec3{0, 1, 0}),
				UV:       mgl32.Vec2{u + uOffset, 1 - v},
			})
		}
		grid = append(grid, row)
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			bb := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				b.indices = append(b.indices, a, bb, d)
			}
			if iy != heightSegments-1 {
				b.indices = append(b.indices, bb, c, d)
			}
		}
	}
	g := NewGeometry("Sphere", b.vertices, b.indices)
	ComputeTangents(g)
	return g
}

// NewConeGeometry generates a closed cone centred on the origin with its
// apex on +Y. Four radial segments give a square pyramid whose corners sit
// on the X and Z axes.
func NewConeGeometry(radius, height float32, radialSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	b := &builder{}
	half := height / 2
	slope := radius / height

	// Torso: apex row (radius 0) and base row.
	rows := [2][]uint32{}
	for y := 0; y <= 1; y++ {
		v := float32(y)
		r := v * radius
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := u * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			rows[y] = append(rows[y], uint32(len(b.vertices)))
			b.vertices = append(b.vertices, core.Vertex{
				Position: mgl32.Vec3{r * sin, -v*height + half, r * cos},
				Normal:   mgl32.Vec3{sin, slope, cos}.Normalize(),
				UV:       mgl32.Vec2{u, 1 - v},
			})
		}
	}
	for x := 0; x < radialSegments; x++ {
		bb := rows[1][x]
		c := rows[1][x+1]
		d := rows[0][x+1]
		b.indices = append(b.indices, bb, c, d)
	}

	// Bottom cap.
	centerStart := uint32(len(b.vertices))
	for x := 1; x <= radialSegments; x++ {
		b.vertices = append(b.vertices, core.Vertex{
			Position: mgl32.Vec3{0, -half, 0},
			Normal:   mgl32.Vec3{0, -1, 0},
			UV:       mgl32.Vec2{0.5, 0.5},
		})
	}
	centerEnd := uint32(len(b.vertices))
	for x := 0; x <= radialSegments; x++ {
		theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
		sin, cos := math32.Sin(theta), math32.Cos(theta)
		b.vertices = append(b.vertices, core.Vertex{
			Position: mgl32.Vec3{radius * sin, -half, radius * cos},
			Normal:   mgl32.Vec3{0, -1, 0},
			UV:       mgl32.Vec2{cos*0.5 + 0.5, -sin*0.5 + 0.5},
		})
	}
	for x := 0; x < radialSegments; x++ {
		c := centerStart + uint32(x)
		i := centerEnd + uint32(x)
		b.indices = append(b.indices, i+1, i, c)
	}

	g := NewGeometry("Cone", b.vertices, b.indices)
	ComputeTangents(g)
	return g
}

type builder struct {
	vertices []core.Vertex
	indices  []uint32
}

// boxFace appends one face of a box. u, v and w are axis indices; udir and
// vdir flip the in-plane axes; the sign of depth selects the face side.
func (b *builder) boxFace(u, v, w int, udir, vdir float32, width, height, depth float32) {
	offset := uint32(len(b.vertices))
	normalW := float32(1)
	if depth < 0 {
		normalW = -1
	}
	for iy := 0; iy <= 1; iy++ {
		y := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			x := float32(ix)*width - width/2
			var pos, n mgl32.Vec3
			pos[u] = x * udir
			pos[v] = y * vdir
			pos[w] = depth / 2
			n[w] = normalW
			b.vertices = append(b.vertices, core.Vertex{
				Position: pos,
				Normal:   n,
				UV:       mgl32.Vec2{float32(ix), 1 - float32(iy)},
			})
		}
	}
	a := offset
	bb := offset + 2
	c := offset + 3
	d := offset + 1
	b.indices = append(b.indices, a, bb, d, bb, c, d)
}

func safeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return fallback
	}
	return v.Normalize()
}
