package models

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an RGB color with channels in the 0-255 range. Channels stay
// floating point so they can be interpolated and attenuated before being
// packed for display.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
	Cyan  = Color{0, 255, 255}
)

// RGB creates a Color from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float64(r), float64(g), float64(b)}
}

// FromColor converts any image/color value, dropping alpha.
func FromColor(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return Color{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

// Unpack converts a packed 0x00RRGGBB value back into a Color.
func Unpack(p uint32) Color {
	return Color{float64(p >> 16 & 0xff), float64(p >> 8 & 0xff), float64(p & 0xff)}
}

// ParseColor parses "#rrggbb", "rrggbb" or "0xrrggbb".
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Unpack(uint32(v)), nil
}

// Attenuate scales every channel by f.
func (c Color) Attenuate(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// Scale is Attenuate with a name that reads better in blend math.
func (c Color) Scale(f float64) Color {
	return c.Attenuate(f)
}

// Add returns the channel-wise sum.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Packed returns the color as 0x00RRGGBB with each channel rounded and
// clamped to 0-255.
func (c Color) Packed() uint32 {
	return channel(c.R)<<16 | channel(c.G)<<8 | channel(c.B)
}

// ToRGBA converts to an opaque color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{uint8(channel(c.R)), uint8(channel(c.G)), uint8(channel(c.B)), 255}
}

// Hex formats the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", c.Packed())
}

func channel(v float64) uint32 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint32(v + 0.5)
}
