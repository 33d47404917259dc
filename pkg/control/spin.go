// Package control turns keyboard and pointer input into camera moves and
// a spring-damped mesh spin. The terminal and window viewers share it.
package control

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scanline/pkg/math3d"
)

// restEpsilon is the speed below which an axis counts as stopped.
const restEpsilon = 1e-4

// Axis tracks angular velocity for one rotation axis with spring decay.
type Axis struct {
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewAxis creates an axis whose velocity eases to zero at the given frame
// rate.
func NewAxis(fps int) Axis {
	return Axis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Impulse adds v radians per frame.
func (a *Axis) Impulse(v float64) {
	a.Velocity += v
}

// Update returns the rotation to apply this frame and decays the velocity.
func (a *Axis) Update() float64 {
	delta := a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
	return delta
}

// Spin holds a spring-damped velocity per mesh rotation axis. X is roll,
// Y pitch and Z yaw, matching the mesh's Euler angles.
type Spin struct {
	X, Y, Z Axis
	fps     int
}

// NewSpin creates a spin at rest.
func NewSpin(fps int) *Spin {
	s := &Spin{fps: max(fps, 1)}
	s.Reset()
	return s
}

// Impulse adds d radians per frame to the axis velocities.
func (s *Spin) Impulse(d math3d.Vec3) {
	s.X.Impulse(d.X)
	s.Y.Impulse(d.Y)
	s.Z.Impulse(d.Z)
}

// Update returns this frame's rotation delta and decays every axis.
func (s *Spin) Update() math3d.Vec3 {
	return math3d.V3(s.X.Update(), s.Y.Update(), s.Z.Update())
}

// Moving reports whether any axis still turns noticeably.
func (s *Spin) Moving() bool {
	v := math3d.V3(s.X.Velocity, s.Y.Velocity, s.Z.Velocity)
	return v.Len() > restEpsilon
}

// Reset stops every axis.
func (s *Spin) Reset() {
	s.X = NewAxis(s.fps)
	s.Y = NewAxis(s.fps)
	s.Z = NewAxis(s.fps)
}

// Drag converts pointer drags into spin impulses.
type Drag struct {
	// Sensitivity is radians per frame added for each cell dragged.
	Sensitivity float64

	down         bool
	lastX, lastY int
}

// NewDrag creates a drag tracker with the default sensitivity.
func NewDrag() *Drag {
	return &Drag{Sensitivity: 0.03}
}

// Press starts a drag at (x, y).
func (d *Drag) Press(x, y int) {
	d.down = true
	d.lastX, d.lastY = x, y
}

// Release ends the drag.
func (d *Drag) Release() {
	d.down = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.down }

// Move returns the spin impulse for a pointer move to (x, y): horizontal
// motion yaws and vertical motion pitches. ok is false when no drag is
// in progress.
func (d *Drag) Move(x, y int) (impulse math3d.Vec3, ok bool) {
	if !d.down {
		return math3d.Vec3{}, false
	}
	dx, dy := x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return math3d.V3(0, float64(dy)*d.Sensitivity, float64(dx)*d.Sensitivity), true
}
