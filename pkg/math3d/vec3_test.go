package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// TestAxisRotations verifies quarter turns about each axis.
func TestAxisRotations(t *testing.T) {
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"x turns y into z", V3(0, 1, 0).RotX(math.Pi / 2), V3(0, 0, 1)},
		{"y turns z into x", V3(0, 0, 1).RotY(math.Pi / 2), V3(1, 0, 0)},
		{"z turns x into y", V3(1, 0, 0).RotZ(math.Pi / 2), V3(0, 1, 0)},
		{"x leaves x alone", V3(3, 0, 0).RotX(1.2), V3(3, 0, 0)},
		{"z leaves z alone", V3(0, 0, -2).RotZ(0.4), V3(0, 0, -2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecNear(tt.got, tt.want, eps) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

// TestInverseRotations verifies every inverse undoes its forward rotation.
func TestInverseRotations(t *testing.T) {
	p := V3(1.5, -2.25, 4)
	r := V3(0.3, -1.1, 2.7)

	if got := p.RotX(r.X).InvRotX(r.X); !vecNear(got, p, eps) {
		t.Errorf("InvRotX: got %v, want %v", got, p)
	}
	if got := p.RotY(r.Y).InvRotY(r.Y); !vecNear(got, p, eps) {
		t.Errorf("InvRotY: got %v, want %v", got, p)
	}
	if got := p.RotZ(r.Z).InvRotZ(r.Z); !vecNear(got, p, eps) {
		t.Errorf("InvRotZ: got %v, want %v", got, p)
	}
	if got := p.RotXYZ(r).InvRotZYX(r); !vecNear(got, p, eps) {
		t.Errorf("InvRotZYX(RotXYZ): got %v, want %v", got, p)
	}
	if got := p.RotZYX(r).InvRotXYZ(r); !vecNear(got, p, eps) {
		t.Errorf("InvRotXYZ(RotZYX): got %v, want %v", got, p)
	}
}

// TestRotationOrderMatters verifies XYZ and ZYX orders differ for a
// generic rotation.
func TestRotationOrderMatters(t *testing.T) {
	p := V3(1, 2, 3)
	r := V3(0.5, 0.5, 0.5)
	if vecNear(p.RotXYZ(r), p.RotZYX(r), 1e-6) {
		t.Error("RotXYZ and RotZYX should not agree for a generic rotation")
	}
}

// TestRotationPreservesLength verifies rotations are rigid.
func TestRotationPreservesLength(t *testing.T) {
	p := V3(-3, 4, 12)
	got := p.RotXYZ(V3(2.1, -0.4, 5.3)).Len()
	if math.Abs(got-13) > eps {
		t.Errorf("length = %v, want 13", got)
	}
}

// TestEulerXYZMatchesRotXYZ verifies the matrix and vector forms agree.
func TestEulerXYZMatchesRotXYZ(t *testing.T) {
	r := V3(0.7, -0.2, 1.9)
	for _, p := range []Vec3{V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1), V3(3, -2, 5)} {
		want := p.RotXYZ(r)
		got := EulerXYZ(r).MulVec3(p)
		if !vecNear(got, want, eps) {
			t.Errorf("EulerXYZ(%v) * %v = %v, want %v", r, p, got, want)
		}
	}
}

// TestYUpBasis verifies asset axes land on the renderer's axes.
func TestYUpBasis(t *testing.T) {
	m := YUpBasis()
	tests := []struct {
		name string
		in   Vec3
		want Vec3
	}{
		{"asset up is screen up", V3(0, 1, 0), Up()},
		{"asset right is screen right", V3(1, 0, 0), Right()},
		{"toward viewer is backward", V3(0, 0, 1), Forward().Negate()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.MulVec3Dir(tt.in); !vecNear(got, tt.want, eps) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	// Handedness is preserved, so winding survives the conversion.
	x, y, z := m.MulVec3Dir(V3(1, 0, 0)), m.MulVec3Dir(V3(0, 1, 0)), m.MulVec3Dir(V3(0, 0, 1))
	if d := x.Cross(y).Dot(z); math.Abs(d-1) > eps {
		t.Errorf("basis determinant = %v, want 1", d)
	}
}

// TestCrossAntiCommutes verifies a × b = -(b × a).
func TestCrossAntiCommutes(t *testing.T) {
	a, b := V3(1, 2, 3), V3(-4, 0.5, 2)
	if !vecNear(a.Cross(b), b.Cross(a).Negate(), eps) {
		t.Errorf("a×b = %v, b×a = %v", a.Cross(b), b.Cross(a))
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); !vecNear(got, V3(0, 0, 1), eps) {
		t.Errorf("x×y = %v, want z", got)
	}
}

// TestNormalizeZero verifies the zero vector does not produce NaN.
func TestNormalizeZero(t *testing.T) {
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(0) = %v, want zero", got)
	}
	if got := V3(0, 3, 4).Normalize(); !vecNear(got, V3(0, 0.6, 0.8), eps) {
		t.Errorf("Normalize = %v", got)
	}
}

// TestClampXY verifies screen clamping leaves depth untouched.
func TestClampXY(t *testing.T) {
	got := V3(-5, 900, 42).ClampXY(640, 480)
	if got != V3(0, 480, 42) {
		t.Errorf("ClampXY = %v", got)
	}
}

// TestIsFinite verifies NaN and infinity detection.
func TestIsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if V3(math.Inf(1), 0, 0).IsFinite() {
		t.Error("+Inf reported finite")
	}
	if V3(0, math.NaN(), 0).IsFinite() {
		t.Error("NaN reported finite")
	}
}

// TestVec2 covers the small Vec2 surface used for texture coordinates.
func TestVec2(t *testing.T) {
	a, b := V2(1, 2), V2(3, -1)
	if got := a.Add(b); got != V2(4, 1) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V2(-2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Dot(b); got != 1 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Cross(b); got != -7 {
		t.Errorf("Cross = %v", got)
	}
	r := V2(1, 0).Rotate(math.Pi / 2)
	if math.Abs(r.X) > eps || math.Abs(r.Y-1) > eps {
		t.Errorf("Rotate = %v", r)
	}
}
