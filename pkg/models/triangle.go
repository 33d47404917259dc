package models

import (
	"github.com/taigrr/scanline/pkg/math3d"
)

// NearPlane is the smallest depth a vertex may have before its triangle
// is rejected as behind the viewer.
const NearPlane = 0.1

// Vertex is a triangle corner. Position is in model, camera or screen
// space depending on the pipeline stage; in screen space Z holds the
// camera depth.
type Vertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
	Color    Color
}

// Triangle is three vertices. Winding is not fixed; facing is derived
// from Normal when rendering.
type Triangle struct {
	A, B, C Vertex
}

// NewTriangle builds a triangle from positions with red, green and blue
// corners and zero texture coordinates.
func NewTriangle(a, b, c math3d.Vec3) Triangle {
	return Triangle{
		A: Vertex{Position: a, Color: Red},
		B: Vertex{Position: b, Color: Green},
		C: Vertex{Position: c, Color: Blue},
	}
}

// Normal returns (A-B) × (A-C), unnormalized. Facing tests use this form.
func (t Triangle) Normal() math3d.Vec3 {
	a := t.A.Position
	return a.Sub(t.B.Position).Cross(a.Sub(t.C.Position))
}

// UnitNormal returns Normal scaled to unit length. Lighting uses this form.
func (t Triangle) UnitNormal() math3d.Vec3 {
	return t.Normal().Normalize()
}

// Centroid returns the average of the three positions.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.A.Position.Add(t.B.Position).Add(t.C.Position).Scale(1.0 / 3)
}

// SortVertical orders the vertices so that A.Y >= B.Y >= C.Y.
// Vertices with equal Y keep their relative order.
func (t Triangle) SortVertical() Triangle {
	if t.C.Position.Y > t.B.Position.Y {
		t.B, t.C = t.C, t.B
	}
	if t.B.Position.Y > t.A.Position.Y {
		t.A, t.B = t.B, t.A
	}
	if t.C.Position.Y > t.B.Position.Y {
		t.B, t.C = t.C, t.B
	}
	return t
}

func (t Triangle) screenCross() float64 {
	a := t.A.Position
	v1 := math3d.V2(a.X-t.B.Position.X, a.Y-t.B.Position.Y)
	v2 := math3d.V2(a.X-t.C.Position.X, a.Y-t.C.Position.Y)
	return v1.Cross(v2)
}

// LumpedLeft reports whether, for a vertically sorted triangle, the long
// A-C edge bounds the left side, with the middle vertex B to its right.
func (t Triangle) LumpedLeft() bool {
	return t.screenCross() <= 0
}

// LumpedRight reports whether the long A-C edge bounds the right side.
// Degenerate triangles are both left and right.
func (t Triangle) LumpedRight() bool {
	return t.screenCross() >= 0
}

// BehindView reports whether any projected vertex has a depth (the Z
// slot) closer than NearPlane.
func (t Triangle) BehindView() bool {
	return t.A.Position.Z < NearPlane ||
		t.B.Position.Z < NearPlane ||
		t.C.Position.Z < NearPlane
}

func (t Triangle) depths() math3d.Vec3 {
	return math3d.V3(t.A.Position.Z, t.B.Position.Z, t.C.Position.Z)
}

// InterpolateDepthLinear blends the screen-space depths affinely. It is
// exact only when the three depths are equal.
func (t Triangle) InterpolateDepthLinear(w math3d.Vec3) float64 {
	return t.depths().Dot(w)
}

// InterpolateDepthPerspective blends reciprocal depths and inverts the
// result, which is correct under perspective projection.
func (t Triangle) InterpolateDepthPerspective(w math3d.Vec3) float64 {
	return 1 / t.inverseDepth(w)
}

func (t Triangle) inverseDepth(w math3d.Vec3) float64 {
	d := t.depths()
	return w.X/d.X + w.Y/d.Y + w.Z/d.Z
}

// InterpolateColor blends each color channel by the weights.
func (t Triangle) InterpolateColor(w math3d.Vec3) Color {
	r := math3d.V3(t.A.Color.R, t.B.Color.R, t.C.Color.R)
	g := math3d.V3(t.A.Color.G, t.B.Color.G, t.C.Color.G)
	b := math3d.V3(t.A.Color.B, t.B.Color.B, t.C.Color.B)
	return Color{r.Dot(w), g.Dot(w), b.Dot(w)}
}

// InterpolateUV blends texture coordinates affinely in screen space.
func (t Triangle) InterpolateUV(w math3d.Vec3) math3d.Vec2 {
	return t.A.UV.Scale(w.X).Add(t.B.UV.Scale(w.Y)).Add(t.C.UV.Scale(w.Z))
}

// InterpolateUVPerspective blends texture coordinates weighted by
// reciprocal depth, so textures do not swim under perspective.
func (t Triangle) InterpolateUVPerspective(w math3d.Vec3) math3d.Vec2 {
	d := t.depths()
	pw := math3d.V3(w.X/d.X, w.Y/d.Y, w.Z/d.Z)
	inv := 1 / (pw.X + pw.Y + pw.Z)
	return t.InterpolateUV(pw).Scale(inv)
}

// Map returns a copy with f applied to every position.
func (t Triangle) Map(f func(math3d.Vec3) math3d.Vec3) Triangle {
	t.A.Position = f(t.A.Position)
	t.B.Position = f(t.B.Position)
	t.C.Position = f(t.C.Position)
	return t
}

// Translate returns a copy moved by d.
func (t Triangle) Translate(d math3d.Vec3) Triangle {
	return t.Map(func(p math3d.Vec3) math3d.Vec3 { return p.Add(d) })
}

// RotXYZ returns a copy rotated by r in X, Y, Z order.
func (t Triangle) RotXYZ(r math3d.Vec3) Triangle {
	return t.Map(func(p math3d.Vec3) math3d.Vec3 { return p.RotXYZ(r) })
}

// InvRotZYX returns a copy with the inverse of RotXYZ(r) applied.
func (t Triangle) InvRotZYX(r math3d.Vec3) Triangle {
	return t.Map(func(p math3d.Vec3) math3d.Vec3 { return p.InvRotZYX(r) })
}
