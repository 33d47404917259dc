package models

import "github.com/taigrr/scanline/pkg/math3d"

// cubeFace describes one side of a cube: outward normal n and in-plane
// axes u, v with u × v = n.
type cubeFace struct {
	n, u, v math3d.Vec3
	color   Color
}

var cubeFaces = [6]cubeFace{
	{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), Red},
	{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0), Cyan},
	{math3d.V3(0, 1, 0), math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), Green},
	{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), Color{255, 0, 255}},
	{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), Blue},
	{math3d.V3(0, 0, -1), math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), Color{255, 255, 0}},
}

// NewCube builds an origin-centered cube with edge length size. Each face
// is two triangles with outward normals, one solid color and texture
// coordinates spanning the full texture.
func NewCube(size float64) *Mesh {
	h := size / 2
	tris := make([]Triangle, 0, 12)

	for _, f := range cubeFaces {
		c := f.n.Scale(h)
		u, v := f.u.Scale(h), f.v.Scale(h)
		corner := func(su, sv float64, tu, tv float64) Vertex {
			return Vertex{
				Position: c.Add(u.Scale(su)).Add(v.Scale(sv)),
				UV:       math3d.V2(tu, tv),
				Color:    f.color,
			}
		}
		p0 := corner(-1, -1, 0, 1)
		p1 := corner(1, -1, 1, 1)
		p2 := corner(1, 1, 1, 0)
		p3 := corner(-1, 1, 0, 0)
		tris = append(tris,
			Triangle{A: p0, B: p1, C: p2},
			Triangle{A: p0, B: p2, C: p3},
		)
	}

	return NewMesh("cube", tris)
}

// NewTriangleMesh builds a single-triangle mesh with red, green and blue
// corners.
func NewTriangleMesh(a, b, c math3d.Vec3) *Mesh {
	return NewMesh("triangle", []Triangle{NewTriangle(a, b, c)})
}
