package render

import (
	"math"

	"github.com/taigrr/scanline/pkg/math3d"
)

// maxPitch keeps the camera just short of looking straight up or down.
const maxPitch = math.Pi/2 - 0.01

// Camera is a position and Euler rotation. Rotation.Y is pitch and
// Rotation.Z is yaw; the view transform is derived on every draw.
type Camera struct {
	Position math3d.Vec3
	Rotation math3d.Vec3
}

// NewCamera creates a camera 100 units behind the origin looking at it.
func NewCamera() *Camera {
	return &Camera{Position: math3d.V3(-100, 0, 0)}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets the camera rotation in radians.
func (c *Camera) SetRotation(rot math3d.Vec3) {
	c.Rotation = rot
}

// ToView transforms a world point into camera space: X is depth, Y is
// right and Z is down.
func (c *Camera) ToView(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(c.Position).InvRotZYX(c.Rotation)
}

// Forward returns the world-space viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return math3d.Forward().RotXYZ(c.Rotation)
}

// Right returns the world-space right vector.
func (c *Camera) Right() math3d.Vec3 {
	return math3d.Right().RotXYZ(c.Rotation)
}

// Up returns the world-space up vector.
func (c *Camera) Up() math3d.Vec3 {
	return math3d.Up().RotXYZ(c.Rotation)
}

// yawed rotates a camera-relative direction by yaw only, so movement
// stays level however far the camera pitches.
func (c *Camera) yawed(dir math3d.Vec3) math3d.Vec3 {
	return dir.RotZ(c.Rotation.Z)
}

// MoveForward moves along the level viewing direction.
func (c *Camera) MoveForward(distance float64) {
	c.Position = c.Position.Add(c.yawed(math3d.Forward()).Scale(distance))
}

// MoveRight moves along the level right vector.
func (c *Camera) MoveRight(distance float64) {
	c.Position = c.Position.Add(c.yawed(math3d.Right()).Scale(distance))
}

// MoveUp moves along world up (-Z).
func (c *Camera) MoveUp(distance float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(distance))
}

// Rotate adds to pitch and yaw. Pitch is clamped short of vertical.
func (c *Camera) Rotate(deltaPitch, deltaYaw float64) {
	c.Rotation.Y = max(-maxPitch, min(maxPitch, c.Rotation.Y+deltaPitch))
	c.Rotation.Z += deltaYaw
}

// LookAt points the camera at target with zero roll.
func (c *Camera) LookAt(target math3d.Vec3) {
	d := target.Sub(c.Position).Normalize()
	if d.LenSq() == 0 {
		return
	}
	c.Rotation = math3d.V3(0, math.Asin(-d.Z), math.Atan2(d.Y, d.X))
}
