package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// minDenominator is the smallest |denominator| treated as a real triangle.
const minDenominator = 1e-9

// Barycentric evaluates barycentric weights for a screen-space triangle.
// The division is paid once in NewBarycentric.
type Barycentric struct {
	cx, cy   float64
	bcY, cbX float64
	caY, acX float64
	invDen   float64
}

// NewBarycentric precomputes the solver for the X/Y of tri's vertices.
// ok is false for zero-area triangles, whose weights would not be finite.
func NewBarycentric(tri models.Triangle) (b Barycentric, ok bool) {
	a, bp, c := tri.A.Position, tri.B.Position, tri.C.Position

	b = Barycentric{
		cx:  c.X,
		cy:  c.Y,
		bcY: bp.Y - c.Y,
		cbX: c.X - bp.X,
		caY: c.Y - a.Y,
		acX: a.X - c.X,
	}
	den := b.bcY*b.acX + b.cbX*(a.Y-c.Y)
	if math.Abs(den) < minDenominator || math.IsNaN(den) {
		return Barycentric{}, false
	}
	b.invDen = 1 / den
	return b, true
}

// Weights returns (w1, w2, w3) for point (x, y); they sum to 1.
func (b Barycentric) Weights(x, y float64) math3d.Vec3 {
	dx, dy := x-b.cx, y-b.cy
	w1 := (b.bcY*dx + b.cbX*dy) * b.invDen
	w2 := (b.caY*dx + b.acX*dy) * b.invDen
	return math3d.V3(w1, w2, 1-w1-w2)
}
