package render

import (
	"context"
	"log/slog"
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

// FrameStats counts what happened to submitted geometry since the last
// ResetStats.
type FrameStats struct {
	Triangles    int // Triangles submitted
	Culled       int // Dropped by the overdraw (facing) test
	NearRejected int // Dropped for crossing the near plane
	Degenerate   int // Zero screen area
	Drawn        int // Scan-filled
	MeshesTested int // Meshes run through the view volume test
	MeshesCulled int // Meshes skipped entirely
}

// Rasterizer draws meshes into a Framebuffer as seen by a Camera. It owns
// no geometry; the camera, framebuffer and meshes form the frame context
// and are only read during a draw.
type Rasterizer struct {
	camera *Camera
	fb     *Framebuffer
	opts   options

	// Projection terms derived from fb size and FOV
	scale        float64
	halfW, halfH float64

	Stats FrameStats
}

// NewRasterizer creates a rasterizer for the given camera and framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer, opts ...Option) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
		opts:   defaultOptions(),
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	r.Resize()
	return r
}

// Resize recomputes the projection after the framebuffer or FOV changed.
func (r *Rasterizer) Resize() {
	r.halfW = float64(r.fb.Width) / 2
	r.halfH = float64(r.fb.Height) / 2
	r.scale = r.halfW / math.Tan(r.opts.fov/2)
	Logger().Debug("projection updated", "width", r.fb.Width, "height", r.fb.Height, "fov", r.opts.fov)
}

// Camera returns the camera being rendered from.
func (r *Rasterizer) Camera() *Camera { return r.camera }

// Framebuffer returns the render target.
func (r *Rasterizer) Framebuffer() *Framebuffer { return r.fb }

// FOV returns the horizontal field of view in radians.
func (r *Rasterizer) FOV() float64 { return r.opts.fov }

// SetFOV changes the field of view. Values outside (0, π) are ignored.
func (r *Rasterizer) SetFOV(radians float64) {
	WithFOV(radians)(&r.opts)
	r.Resize()
}

// Light returns the normalized light direction.
func (r *Rasterizer) Light() math3d.Vec3 { return r.opts.light }

// SetLight changes the light direction. The zero vector is ignored.
func (r *Rasterizer) SetLight(dir math3d.Vec3) {
	WithLight(dir)(&r.opts)
}

// BeginFrame clears the framebuffer and the statistics.
func (r *Rasterizer) BeginFrame() {
	r.fb.Clear()
	r.ResetStats()
}

// ResetStats zeroes the frame statistics.
func (r *Rasterizer) ResetStats() {
	r.Stats = FrameStats{}
}

// Lighting returns the flat lighting factor for a unit world-space normal:
// its dot with the light direction, floored at the ambient level.
func (r *Rasterizer) Lighting(normal math3d.Vec3) float64 {
	return max(r.opts.light.Dot(normal), r.opts.ambient)
}

// Project maps a camera-space point to screen space. X and Y are pixels
// (Y up), Z keeps the camera depth. The result is not clamped.
func (r *Rasterizer) Project(v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(
		v.Y/v.X*r.scale+r.halfW,
		-v.Z/v.X*r.scale+r.halfH,
		v.X,
	)
}

// WorldToScreen projects a world point. ok is false when the point is
// closer than the near plane.
func (r *Rasterizer) WorldToScreen(p math3d.Vec3) (screen math3d.Vec3, ok bool) {
	v := r.camera.ToView(p)
	if v.X < models.NearPlane {
		return math3d.Vec3{}, false
	}
	return r.Project(v), true
}

// stage is the outcome of preparing one triangle.
type stage int

const (
	stageReady stage = iota
	stageCulled
	stageNear
)

// polyData carries one triangle through the pipeline without touching
// the source mesh.
type polyData struct {
	tri      models.Triangle // current coordinates (model, camera, then screen)
	normal   math3d.Vec3     // unit world-space normal
	lighting float64
}

// prepare runs lighting, transform, cull, projection and near rejection.
// The returned triangle is in screen space but not yet sorted.
func (r *Rasterizer) prepare(m *models.Mesh, src models.Triangle) (polyData, stage) {
	p := polyData{tri: src}

	p.normal = src.UnitNormal().RotXYZ(m.Rotation)
	p.lighting = r.Lighting(p.normal)

	p.tri = src.RotXYZ(m.Rotation).
		Translate(m.Center.Sub(r.camera.Position)).
		InvRotZYX(r.camera.Rotation)

	if p.tri.Normal().X > r.opts.overdraw {
		return p, stageCulled
	}

	w, h := float64(r.fb.Width), float64(r.fb.Height)
	p.tri = p.tri.Map(func(v math3d.Vec3) math3d.Vec3 {
		return r.Project(v).ClampXY(w, h)
	})

	if p.tri.BehindView() {
		return p, stageNear
	}
	return p, stageReady
}

// DrawMesh rasterizes every triangle of m in order, textured when
// m.Texture is set and vertex-colored otherwise.
func (r *Rasterizer) DrawMesh(m *models.Mesh) {
	if r.opts.meshCulling {
		r.Stats.MeshesTested++
		if !r.MeshVisible(m) {
			r.Stats.MeshesCulled++
			Logger().Debug("mesh outside view volume", "mesh", m.Name)
			return
		}
	}

	for _, src := range m.Triangles {
		r.Stats.Triangles++
		p, st := r.prepare(m, src)
		switch st {
		case stageCulled:
			r.Stats.Culled++
			continue
		case stageNear:
			r.Stats.NearRejected++
			continue
		}
		r.DrawScreenTriangle(p.tri, m.Texture, p.lighting)
	}

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("draw mesh",
			"mesh", m.Name,
			"triangles", r.Stats.Triangles,
			"culled", r.Stats.Culled,
			"near", r.Stats.NearRejected,
			"degenerate", r.Stats.Degenerate,
			"drawn", r.Stats.Drawn,
		)
	}
}

// DrawScreenTriangle scan-fills a triangle already in screen space (X/Y
// pixels, Z depth). Pixels sample tex when it is non-nil, otherwise the
// interpolated vertex colors, and are scaled by lighting. It returns
// false for zero-area triangles.
func (r *Rasterizer) DrawScreenTriangle(tri models.Triangle, tex *models.Texture, lighting float64) bool {
	tri = tri.SortVertical()

	bary, ok := NewBarycentric(tri)
	if !ok {
		r.Stats.Degenerate++
		return false
	}

	f := fill{r: r, tri: tri, bary: bary, tex: tex, lighting: lighting}
	a, b, c := tri.A.Position, tri.B.Position, tri.C.Position
	if tri.LumpedLeft() {
		f.traceAndFill(a, c, a, b)
		f.traceAndFill(c, a, c, b)
	} else {
		f.traceAndFill(a, b, a, c)
		f.traceAndFill(c, b, c, a)
	}

	r.Stats.Drawn++
	return true
}

// fill holds the per-triangle state shared by every span.
type fill struct {
	r        *Rasterizer
	tri      models.Triangle
	bary     Barycentric
	tex      *models.Texture
	lighting float64
}

// traceAndFill walks a left edge (l0→l1) and a right edge (r0→r1) one
// row at a time and fills between them until either edge ends.
func (f *fill) traceAndFill(l0, l1, r0, r1 math3d.Vec3) {
	left := NewEdgeTracer(l0, l1)
	right := NewEdgeTracer(r0, r1)
	for {
		p1, ok1 := left.NextRow()
		p2, ok2 := right.NextRow()
		if !ok1 || !ok2 {
			return
		}
		f.span(p1.Y, p1.X, p2.X)
	}
}

// span fills row y from x0 to x1 inclusive, stopping at the first pixel
// outside the framebuffer.
func (f *fill) span(y, x0, x1 int) {
	fb := f.r.fb
	for x := x0; x <= x1; x++ {
		if !fb.InBounds(x, y) {
			return
		}

		w := f.bary.Weights(float64(x), float64(y))
		depth := f.tri.InterpolateDepthPerspective(w)
		if !(depth > 0) || math.IsInf(depth, 1) {
			continue
		}

		var c models.Color
		if f.tex != nil {
			uv := f.tri.InterpolateUVPerspective(w)
			c = f.tex.Sample(uv.X, uv.Y)
		} else {
			c = f.tri.InterpolateColor(w)
		}

		fb.Set(x, y, c.Attenuate(f.lighting), depth)
	}
}
