// Package math3d provides 3D math primitives for the scanline renderer.
//
// World and camera space share one convention: +X points forward (depth),
// +Y points right and +Z points down the screen.
package math3d

import "math"

// Vec3 represents a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// V3 creates a new Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{x, y, z}
}

// Zero3 returns the zero vector.
func Zero3() Vec3 {
	return Vec3{}
}

// Forward returns the viewing direction (1, 0, 0).
func Forward() Vec3 {
	return Vec3{1, 0, 0}
}

// Right returns the screen right direction (0, 1, 0).
func Right() Vec3 {
	return Vec3{0, 1, 0}
}

// Up returns the screen up direction (0, 0, -1).
func Up() Vec3 {
	return Vec3{0, 0, -1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Mul returns the component-wise product a * b.
func (a Vec3) Mul(b Vec3) Vec3 {
	return Vec3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float64) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length (magnitude) of the vector.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length (faster, no sqrt).
func (a Vec3) LenSq() float64 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns the unit vector in the same direction.
// The zero vector normalizes to itself.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{a.X / l, a.Y / l, a.Z / l}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// Distance returns the distance between two points.
func (a Vec3) Distance(b Vec3) float64 {
	return a.Sub(b).Len()
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math.Min(a.X, b.X),
		math.Min(a.Y, b.Y),
		math.Min(a.Z, b.Z),
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math.Max(a.X, b.X),
		math.Max(a.Y, b.Y),
		math.Max(a.Z, b.Z),
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (a Vec3) IsFinite() bool {
	return !math.IsNaN(a.X+a.Y+a.Z) && !math.IsInf(a.X+a.Y+a.Z, 0)
}

// ClampXY clamps X to [0, w] and Y to [0, h], leaving Z untouched.
func (a Vec3) ClampXY(w, h float64) Vec3 {
	return Vec3{
		math.Min(math.Max(a.X, 0), w),
		math.Min(math.Max(a.Y, 0), h),
		a.Z,
	}
}

// RotX rotates a about the X axis by angle radians.
func (a Vec3) RotX(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{a.X, a.Y*c - a.Z*s, a.Y*s + a.Z*c}
}

// RotY rotates a about the Y axis by angle radians.
func (a Vec3) RotY(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{a.X*c + a.Z*s, a.Y, -a.X*s + a.Z*c}
}

// RotZ rotates a about the Z axis by angle radians.
func (a Vec3) RotZ(angle float64) Vec3 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Vec3{a.X*c - a.Y*s, a.X*s + a.Y*c, a.Z}
}

// InvRotX undoes RotX(angle).
func (a Vec3) InvRotX(angle float64) Vec3 { return a.RotX(-angle) }

// InvRotY undoes RotY(angle).
func (a Vec3) InvRotY(angle float64) Vec3 { return a.RotY(-angle) }

// InvRotZ undoes RotZ(angle).
func (a Vec3) InvRotZ(angle float64) Vec3 { return a.RotZ(-angle) }

// RotXYZ applies the Euler angles in r about X, then Y, then Z.
// This is the model-to-world rotation.
func (a Vec3) RotXYZ(r Vec3) Vec3 {
	return a.RotX(r.X).RotY(r.Y).RotZ(r.Z)
}

// RotZYX applies the Euler angles in r about Z, then Y, then X.
func (a Vec3) RotZYX(r Vec3) Vec3 {
	return a.RotZ(r.Z).RotY(r.Y).RotX(r.X)
}

// InvRotXYZ undoes RotZYX(r).
func (a Vec3) InvRotXYZ(r Vec3) Vec3 {
	return a.InvRotX(r.X).InvRotY(r.Y).InvRotZ(r.Z)
}

// InvRotZYX undoes RotXYZ(r). The camera uses it to take world points
// into camera space.
func (a Vec3) InvRotZYX(r Vec3) Vec3 {
	return a.InvRotZ(r.Z).InvRotY(r.Y).InvRotX(r.X)
}
