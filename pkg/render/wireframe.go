package render

import (
	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// DrawMeshWireframe outlines every triangle of m that survives culling and
// near rejection. Edges are cyan scaled by the face lighting and are
// written over the color plane without a depth test.
func (r *Rasterizer) DrawMeshWireframe(m *models.Mesh) {
	for _, src := range m.Triangles {
		p, st := r.prepare(m, src)
		if st != stageReady {
			continue
		}
		c := models.Cyan.Attenuate(p.lighting)
		a, b, cc := p.tri.A.Position, p.tri.B.Position, p.tri.C.Position
		r.drawLine(a, b, c)
		r.drawLine(a, cc, c)
		r.drawLine(cc, b, c)
	}
}

// DrawLine3D draws a world-space segment. Segments with an endpoint
// closer than the near plane are skipped rather than clipped.
func (r *Rasterizer) DrawLine3D(p1, p2 math3d.Vec3, c models.Color) {
	s1, ok1 := r.WorldToScreen(p1)
	s2, ok2 := r.WorldToScreen(p2)
	if !ok1 || !ok2 {
		return
	}
	r.drawLine(s1, s2, c)
}

// DrawRefFrame draws the three axis arms of rf from its center.
func (r *Rasterizer) DrawRefFrame(rf *models.RefFrame) {
	for _, arm := range rf.Arms() {
		r.DrawLine3D(rf.Center, arm.Tip, arm.Color)
	}
}

// drawLine plots a screen-space segment, stopping at the first pixel that
// leaves the framebuffer.
func (r *Rasterizer) drawLine(from, to math3d.Vec3, c models.Color) {
	e := NewEdgeTracer(from, to)
	pt := e.Pos()
	for {
		if !r.fb.InBounds(pt.X, pt.Y) {
			return
		}
		r.fb.Put(pt.X, pt.Y, c)
		var ok bool
		if pt, ok = e.Step(); !ok {
			return
		}
	}
}
