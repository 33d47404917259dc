// Package models provides meshes, textures and the loaders that build them
// for the scanline renderer.
package models

import (
	"errors"

	"github.com/taigrr/scanline/pkg/math3d"
)

// ErrEmptyMesh is returned by loaders that produced no triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// Mesh is an ordered list of triangles placed in the world by Center and
// Rotation. Triangles are drawn in slice order.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Center is the world position of the model origin.
	Center math3d.Vec3
	// Rotation holds cumulative Euler angles applied X, then Y, then Z.
	Rotation math3d.Vec3
	// Texture is shared by every triangle. Nil means vertex colors.
	Texture *Texture

	// Bounding box in model space (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates a mesh from triangles and computes its bounds.
func NewMesh(name string, tris []Triangle) *Mesh {
	m := &Mesh{Name: name, Triangles: tris}
	m.CalculateBounds()
	return m
}

// RotateX adds angle radians to the X rotation.
func (m *Mesh) RotateX(angle float64) { m.Rotation.X += angle }

// RotateY adds angle radians to the Y rotation.
func (m *Mesh) RotateY(angle float64) { m.Rotation.Y += angle }

// RotateZ adds angle radians to the Z rotation.
func (m *Mesh) RotateZ(angle float64) { m.Rotation.Z += angle }

// Rotate adds delta to all three rotation angles.
func (m *Mesh) Rotate(delta math3d.Vec3) { m.Rotation = m.Rotation.Add(delta) }

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].A.Position
	m.BoundsMax = m.Triangles[0].A.Position

	for _, t := range m.Triangles {
		for _, p := range [3]math3d.Vec3{t.A.Position, t.B.Position, t.C.Position} {
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// BoundsCenter returns the center of the bounding box.
func (m *Mesh) BoundsCenter() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices. Triangles do not share
// vertices.
func (m *Mesh) VertexCount() int {
	return 3 * len(m.Triangles)
}

// Transform bakes mat into every vertex position and recomputes bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Map(mat.MulVec3)
	}
	m.CalculateBounds()
}

// Fit recenters the model on its bounding box and scales it uniformly so
// the largest extent equals size. Empty or flat-point meshes are left
// untouched.
func (m *Mesh) Fit(size float64) {
	ext := m.Size()
	largest := max(ext.X, ext.Y, ext.Z)
	if largest == 0 || size <= 0 {
		return
	}
	mat := math3d.ScaleUniform(size / largest).Mul(math3d.Translate(m.BoundsCenter().Negate()))
	m.Transform(mat)
}

// SetColor paints every vertex with c.
func (m *Mesh) SetColor(c Color) {
	for i := range m.Triangles {
		m.Triangles[i].A.Color = c
		m.Triangles[i].B.Color = c
		m.Triangles[i].C.Color = c
	}
}

// Clone returns a deep copy of the triangle list. The texture is shared.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Triangles = make([]Triangle, len(m.Triangles))
	copy(clone.Triangles, m.Triangles)
	return &clone
}

// RefFrame is a debug gizmo: three axis arms of Length starting at Center.
type RefFrame struct {
	Center math3d.Vec3
	Length float64
}

// Arm is one axis of a RefFrame.
type Arm struct {
	Tip   math3d.Vec3
	Color Color
}

// NewRefFrame creates a gizmo.
func NewRefFrame(center math3d.Vec3, length float64) *RefFrame {
	return &RefFrame{Center: center, Length: length}
}

// Translate moves the gizmo by d.
func (r *RefFrame) Translate(d math3d.Vec3) {
	r.Center = r.Center.Add(d)
}

// Arms returns the +X, +Y and +Z arms colored red, green and blue.
func (r *RefFrame) Arms() [3]Arm {
	return [3]Arm{
		{r.Center.Add(math3d.V3(r.Length, 0, 0)), Red},
		{r.Center.Add(math3d.V3(0, r.Length, 0)), Green},
		{r.Center.Add(math3d.V3(0, 0, r.Length)), Blue},
	}
}
