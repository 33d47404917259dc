package render

import (
	"image"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// EdgeTracer walks the integer pixels of a line with Bresenham's
// algorithm, one axis step at a time. Both endpoints are rounded up to
// whole pixels.
type EdgeTracer struct {
	cur, target image.Point
	sx, sy      int
	dx, dy      int
	err         int
}

// NewEdgeTracer creates a tracer from start toward end using their X/Y.
func NewEdgeTracer(start, end math3d.Vec3) *EdgeTracer {
	e := &EdgeTracer{
		cur:    image.Pt(ceilInt(start.X), ceilInt(start.Y)),
		target: image.Pt(ceilInt(end.X), ceilInt(end.Y)),
		sx:     1,
		sy:     1,
	}
	e.dx = abs(e.target.X - e.cur.X)
	e.dy = -abs(e.target.Y - e.cur.Y)
	e.err = e.dx + e.dy
	if e.target.X < e.cur.X {
		e.sx = -1
	}
	if e.target.Y < e.cur.Y {
		e.sy = -1
	}
	return e
}

// Pos returns the current pixel.
func (e *EdgeTracer) Pos() image.Point { return e.cur }

// Done reports whether the target has been reached.
func (e *EdgeTracer) Done() bool { return e.cur == e.target }

// Step advances one pixel along X or Y and returns it. It returns false
// once the target has been reached.
func (e *EdgeTracer) Step() (image.Point, bool) {
	if e.cur == e.target {
		return e.cur, false
	}

	e2 := 2 * e.err
	stepX := e2 >= e.dy
	// An axis already at its target cannot move; take the other one.
	if stepX && e.cur.X == e.target.X {
		stepX = false
	} else if !stepX && e.cur.Y == e.target.Y {
		stepX = true
	}

	if stepX {
		e.err += e.dy
		e.cur.X += e.sx
	} else {
		e.err += e.dx
		e.cur.Y += e.sy
	}
	return e.cur, true
}

// NextRow steps until the row changes and returns the first pixel on the
// new row. It returns false if the edge ends first.
func (e *EdgeTracer) NextRow() (image.Point, bool) {
	row := e.cur.Y
	for {
		p, ok := e.Step()
		if !ok {
			return p, false
		}
		if p.Y != row {
			return p, true
		}
	}
}

func ceilInt(v float64) int {
	return int(math.Ceil(v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
