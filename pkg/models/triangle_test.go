package models

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
)

const eps = 1e-9

func vecNear(a, b math3d.Vec3) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func screenTri(a, b, c math3d.Vec3) Triangle {
	return Triangle{
		A: Vertex{Position: a, Color: Red, UV: math3d.V2(0, 0)},
		B: Vertex{Position: b, Color: Green, UV: math3d.V2(1, 0)},
		C: Vertex{Position: c, Color: Blue, UV: math3d.V2(0, 1)},
	}
}

// TestNormalAntiSymmetry verifies swapping any two vertices flips the normal.
func TestNormalAntiSymmetry(t *testing.T) {
	tris := []Triangle{
		NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)),
		NewTriangle(math3d.V3(3, -1, 2), math3d.V3(-4, 5, 0.5), math3d.V3(1, 1, -7)),
		NewTriangle(math3d.V3(10, 10, 1), math3d.V3(50, 10, 1), math3d.V3(30, 50, 1)),
	}

	for i, tri := range tris {
		n := tri.Normal()
		swaps := map[string]Triangle{
			"ab": {A: tri.B, B: tri.A, C: tri.C},
			"bc": {A: tri.A, B: tri.C, C: tri.B},
			"ac": {A: tri.C, B: tri.B, C: tri.A},
		}
		for name, s := range swaps {
			if got := s.Normal(); !vecNear(got, n.Negate()) {
				t.Errorf("tri %d swap %s: normal %v, want %v", i, name, got, n.Negate())
			}
		}
	}
}

// TestNormalForms verifies the unnormalized and unit normals agree in
// direction and differ in length.
func TestNormalForms(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(2, 0, 0), math3d.V3(0, 2, 0))

	if got := tri.Normal(); !vecNear(got, math3d.V3(0, 0, 4)) {
		t.Errorf("Normal = %v, want (0,0,4)", got)
	}
	if got := tri.UnitNormal(); !vecNear(got, math3d.V3(0, 0, 1)) {
		t.Errorf("UnitNormal = %v, want (0,0,1)", got)
	}
}

// TestSortVertical verifies descending Y order for every input permutation.
func TestSortVertical(t *testing.T) {
	ys := []float64{1, 5, 3}
	perms := [][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	for _, p := range perms {
		tri := NewTriangle(math3d.V3(0, ys[p[0]], 0), math3d.V3(0, ys[p[1]], 0), math3d.V3(0, ys[p[2]], 0))
		s := tri.SortVertical()
		if s.A.Position.Y != 5 || s.B.Position.Y != 3 || s.C.Position.Y != 1 {
			t.Errorf("perm %v: got %v %v %v", p, s.A.Position.Y, s.B.Position.Y, s.C.Position.Y)
		}
	}
}

// TestSortVerticalTies pins the order of vertices that share a Y value.
func TestSortVerticalTies(t *testing.T) {
	tests := []struct {
		name string
		tri  Triangle
		want [3]Color
	}{
		{
			name: "flat bottom keeps input order",
			tri:  NewTriangle(math3d.V3(10, 10, 1), math3d.V3(50, 10, 1), math3d.V3(30, 50, 1)),
			want: [3]Color{Blue, Red, Green},
		},
		{
			name: "flat top keeps input order",
			tri:  NewTriangle(math3d.V3(10, 50, 1), math3d.V3(50, 50, 1), math3d.V3(30, 10, 1)),
			want: [3]Color{Red, Green, Blue},
		},
		{
			name: "all equal is untouched",
			tri:  NewTriangle(math3d.V3(0, 7, 1), math3d.V3(1, 7, 1), math3d.V3(2, 7, 1)),
			want: [3]Color{Red, Green, Blue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.tri.SortVertical()
			got := [3]Color{s.A.Color, s.B.Color, s.C.Color}
			if got != tt.want {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLumped verifies the split test reports which side the long edge
// bounds.
func TestLumped(t *testing.T) {
	// Middle vertex right of the long edge: long edge is the left bound.
	left := screenTri(math3d.V3(30, 50, 1), math3d.V3(60, 30, 1), math3d.V3(30, 0, 1)).SortVertical()
	if !left.LumpedLeft() || left.LumpedRight() {
		t.Errorf("long edge left: LumpedLeft=%v LumpedRight=%v", left.LumpedLeft(), left.LumpedRight())
	}

	// Middle vertex left of the long edge.
	right := screenTri(math3d.V3(30, 50, 1), math3d.V3(0, 30, 1), math3d.V3(30, 0, 1)).SortVertical()
	if right.LumpedLeft() || !right.LumpedRight() {
		t.Errorf("long edge right: LumpedLeft=%v LumpedRight=%v", right.LumpedLeft(), right.LumpedRight())
	}

	// Collinear vertices count as both.
	line := screenTri(math3d.V3(0, 0, 1), math3d.V3(1, 1, 1), math3d.V3(2, 2, 1))
	if !line.LumpedLeft() || !line.LumpedRight() {
		t.Error("collinear triangle should be both left and right")
	}
}

// TestBehindView verifies any vertex nearer than the near plane rejects.
func TestBehindView(t *testing.T) {
	tests := []struct {
		name   string
		depths [3]float64
		want   bool
	}{
		{"all in front", [3]float64{1, 2, 3}, false},
		{"exactly on plane", [3]float64{NearPlane, 1, 1}, false},
		{"one grazes", [3]float64{1, 0.05, 1}, true},
		{"one behind", [3]float64{1, 1, -4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri := screenTri(
				math3d.V3(0, 0, tt.depths[0]),
				math3d.V3(1, 0, tt.depths[1]),
				math3d.V3(0, 1, tt.depths[2]),
			)
			if got := tri.BehindView(); got != tt.want {
				t.Errorf("BehindView = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestInterpolateDepthPerspectiveAtVertices verifies unit weights
// reproduce each vertex depth exactly.
func TestInterpolateDepthPerspectiveAtVertices(t *testing.T) {
	tri := screenTri(math3d.V3(0, 0, 2), math3d.V3(1, 0, 8), math3d.V3(0, 1, 32))

	tests := []struct {
		w    math3d.Vec3
		want float64
	}{
		{math3d.V3(1, 0, 0), 2},
		{math3d.V3(0, 1, 0), 8},
		{math3d.V3(0, 0, 1), 32},
	}
	for _, tt := range tests {
		if got := tri.InterpolateDepthPerspective(tt.w); got != tt.want {
			t.Errorf("weights %v: depth %v, want %v", tt.w, got, tt.want)
		}
	}
}

// TestInterpolateDepthForms verifies the perspective form is the harmonic
// mean and the linear form the arithmetic mean.
func TestInterpolateDepthForms(t *testing.T) {
	tri := screenTri(math3d.V3(0, 0, 1), math3d.V3(1, 0, 3), math3d.V3(0, 1, 3))
	w := math3d.V3(0.5, 0.5, 0)

	if got := tri.InterpolateDepthLinear(w); math.Abs(got-2) > eps {
		t.Errorf("linear = %v, want 2", got)
	}
	if got := tri.InterpolateDepthPerspective(w); math.Abs(got-1.5) > eps {
		t.Errorf("perspective = %v, want 1.5", got)
	}

	flat := screenTri(math3d.V3(0, 0, 4), math3d.V3(1, 0, 4), math3d.V3(0, 1, 4))
	w = math3d.V3(0.2, 0.3, 0.5)
	if l, p := flat.InterpolateDepthLinear(w), flat.InterpolateDepthPerspective(w); math.Abs(l-p) > eps {
		t.Errorf("constant depth: linear %v != perspective %v", l, p)
	}
}

// TestInterpolateColor verifies per-channel blending.
func TestInterpolateColor(t *testing.T) {
	tri := screenTri(math3d.V3(0, 0, 1), math3d.V3(1, 0, 1), math3d.V3(0, 1, 1))

	got := tri.InterpolateColor(math3d.V3(0.5, 0.25, 0.25))
	want := Color{127.5, 63.75, 63.75}
	if math.Abs(got.R-want.R) > eps || math.Abs(got.G-want.G) > eps || math.Abs(got.B-want.B) > eps {
		t.Errorf("InterpolateColor = %v, want %v", got, want)
	}
}

// TestInterpolateUV verifies affine and perspective texture coordinates.
func TestInterpolateUV(t *testing.T) {
	tri := screenTri(math3d.V3(0, 0, 1), math3d.V3(1, 0, 3), math3d.V3(0, 1, 1))
	w := math3d.V3(0.5, 0.5, 0)

	affine := tri.InterpolateUV(w)
	if math.Abs(affine.X-0.5) > eps || math.Abs(affine.Y) > eps {
		t.Errorf("affine UV = %v, want (0.5,0)", affine)
	}

	// Reciprocal-depth weights are 0.5 and 1/6, so U = (1/6)/(2/3).
	persp := tri.InterpolateUVPerspective(w)
	if math.Abs(persp.X-0.25) > eps || math.Abs(persp.Y) > eps {
		t.Errorf("perspective UV = %v, want (0.25,0)", persp)
	}

	for i, w := range []math3d.Vec3{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)} {
		want := [3]math3d.Vec2{tri.A.UV, tri.B.UV, tri.C.UV}[i]
		got := tri.InterpolateUVPerspective(w)
		if math.Abs(got.X-want.X) > eps || math.Abs(got.Y-want.Y) > eps {
			t.Errorf("vertex %d: UV %v, want %v", i, got, want)
		}
	}
}

// TestTriangleTransformsCopy verifies transforms leave the receiver alone.
func TestTriangleTransformsCopy(t *testing.T) {
	orig := NewTriangle(math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1))
	keep := orig

	moved := orig.Translate(math3d.V3(10, 0, 0)).RotXYZ(math3d.V3(0, 0, math.Pi/2))
	if orig != keep {
		t.Error("source triangle was mutated")
	}
	if !vecNear(moved.A.Position, math3d.V3(0, 11, 0)) {
		t.Errorf("moved A = %v, want (0,11,0)", moved.A.Position)
	}

	back := moved.InvRotZYX(math3d.V3(0, 0, math.Pi/2)).Translate(math3d.V3(-10, 0, 0))
	if !vecNear(back.B.Position, orig.B.Position) {
		t.Errorf("round trip B = %v, want %v", back.B.Position, orig.B.Position)
	}
}
