package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the camera-space view volume. Each plane's normal points
// inward. There is no far plane.
type Frustum struct {
	Planes [5]Plane
}

// Frustum plane indices.
const (
	FrustumNear = iota
	FrustumLeft
	FrustumRight
	FrustumTop
	FrustumBottom
)

// NewViewFrustum builds the view volume in camera space (X depth, Y right,
// Z down) from the tangents of the horizontal and vertical half-angles.
func NewViewFrustum(tanX, tanY float64) Frustum {
	var f Frustum
	f.Planes[FrustumNear] = Plane{Normal: math3d.V3(1, 0, 0), D: -models.NearPlane}
	f.Planes[FrustumLeft] = Plane{Normal: math3d.V3(tanX, 1, 0)}
	f.Planes[FrustumRight] = Plane{Normal: math3d.V3(tanX, -1, 0)}
	f.Planes[FrustumTop] = Plane{Normal: math3d.V3(tanY, 0, 1)}
	f.Planes[FrustumBottom] = Plane{Normal: math3d.V3(tanY, 0, -1)}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere tests if a sphere intersects the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsPoints reports whether the convex hull of pts may touch the
// frustum. It returns false only when every point lies outside one plane,
// so it can report true for hulls that miss a corner of the volume.
func (f Frustum) IntersectsPoints(pts []math3d.Vec3) bool {
	if len(pts) == 0 {
		return false
	}
	for i := range f.Planes {
		outside := true
		for _, p := range pts {
			if f.Planes[i].DistanceToPoint(p) >= 0 {
				outside = false
				break
			}
		}
		if outside {
			return false
		}
	}
	return true
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Frustum returns the current camera-space view volume.
func (r *Rasterizer) Frustum() Frustum {
	return NewViewFrustum(r.halfW/r.scale, r.halfH/r.scale)
}

// MeshVisible reports whether any part of m's bounding box may be on
// screen. The bounds must be current; see Mesh.CalculateBounds.
func (r *Rasterizer) MeshVisible(m *models.Mesh) bool {
	if len(m.Triangles) == 0 {
		return false
	}
	box := NewAABB(m.BoundsMin, m.BoundsMax)
	corners := box.Corners()
	for i, c := range corners {
		corners[i] = r.camera.ToView(c.RotXYZ(m.Rotation).Add(m.Center))
	}
	return r.Frustum().IntersectsPoints(corners[:])
}
