package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// Defaults for the lighting and culling terms.
const (
	DefaultFOV      = math.Pi / 2
	DefaultAmbient  = 0.15
	DefaultOverdraw = 0.20
)

// DefaultLight is the normalized default light direction.
var DefaultLight = math3d.V3(-3, 1, -4).Normalize()

// Option configures a Rasterizer during creation.
//
// Example:
//
//	r := render.NewRasterizer(cam, fb,
//		render.WithFOV(math.Pi/3),
//		render.WithAmbient(0.2),
//	)
type Option func(*options)

type options struct {
	fov         float64
	light       math3d.Vec3
	ambient     float64
	overdraw    float64
	meshCulling bool
}

func defaultOptions() options {
	return options{
		fov:      DefaultFOV,
		light:    DefaultLight,
		ambient:  DefaultAmbient,
		overdraw: DefaultOverdraw,
	}
}

// WithFOV sets the horizontal field of view in radians.
func WithFOV(radians float64) Option {
	return func(o *options) {
		if radians > 0 && radians < math.Pi {
			o.fov = radians
		}
	}
}

// WithLight sets the direction toward the light. It is normalized; the
// zero vector is ignored.
func WithLight(dir math3d.Vec3) Option {
	return func(o *options) {
		if dir.LenSq() > 0 {
			o.light = dir.Normalize()
		}
	}
}

// WithAmbient sets the lighting floor every triangle receives.
func WithAmbient(floor float64) Option {
	return func(o *options) {
		o.ambient = floor
	}
}

// WithOverdraw sets the cull threshold: a triangle whose camera-space
// normal has a depth component above it is dropped.
func WithOverdraw(threshold float64) Option {
	return func(o *options) {
		o.overdraw = threshold
	}
}

// WithMeshCulling enables the whole-mesh view volume test in DrawMesh.
func WithMeshCulling(enabled bool) Option {
	return func(o *options) {
		o.meshCulling = enabled
	}
}
