// Package render implements the CPU triangle rasterizer: framebuffer,
// edge walking, barycentric interpolation and the per-triangle pipeline,
// plus the terminal and file outputs that present a finished frame.
package render

import (
	"image"
	"image/color"

	"github.com/taigrr/scanline/pkg/models"
)

const (
	// DepthSentinel is the depth every pixel holds after Clear.
	DepthSentinel = 1e12
	// WireDepth is the depth stored by overlay writes (Put).
	WireDepth = 1.0
	// DefaultBackground is the packed clear color.
	DefaultBackground uint32 = 0xbbbbbb
)

// Framebuffer holds a packed 0x00RRGGBB color plane and a depth plane of
// equal size. Logical Y grows upward: logical row y is stored at
// Height-1-y, so storage runs top row first.
type Framebuffer struct {
	Width      int
	Height     int
	Background uint32

	pixels []uint32
	depth  []float64
}

// NewFramebuffer creates a cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{Background: DefaultBackground}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both planes and clears them. Negative sizes are
// treated as zero.
func (fb *Framebuffer) Resize(width, height int) {
	fb.Width, fb.Height = max(width, 0), max(height, 0)
	n := fb.Width * fb.Height
	fb.pixels = make([]uint32, n)
	fb.depth = make([]float64, n)
	fb.Clear()
}

// SetBackground sets the clear color. It takes effect on the next Clear.
func (fb *Framebuffer) SetBackground(c models.Color) {
	fb.Background = c.Packed()
}

// Clear resets color to the background and depth to DepthSentinel.
func (fb *Framebuffer) Clear() {
	n := len(fb.pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill.
	fb.pixels[0] = fb.Background
	fb.depth[0] = DepthSentinel
	for i := 1; i < n; i *= 2 {
		copy(fb.pixels[i:], fb.pixels[:i])
		copy(fb.depth[i:], fb.depth[:i])
	}
}

// InBounds reports whether logical (x, y) lies inside the buffer.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

func (fb *Framebuffer) index(x, y int) int {
	return (fb.Height-1-y)*fb.Width + x
}

// Set writes c at logical (x, y) unless the stored depth is strictly
// smaller than depth. Equal depths overwrite, so later writes win ties.
// The caller checks InBounds.
func (fb *Framebuffer) Set(x, y int, c models.Color, depth float64) {
	i := fb.index(x, y)
	if fb.depth[i] < depth {
		return
	}
	fb.pixels[i] = c.Packed()
	fb.depth[i] = depth
}

// Put overwrites logical (x, y) without a depth test and stores WireDepth.
// The caller checks InBounds.
func (fb *Framebuffer) Put(x, y int, c models.Color) {
	i := fb.index(x, y)
	fb.pixels[i] = c.Packed()
	fb.depth[i] = WireDepth
}

// Pixel returns the packed color at logical (x, y).
func (fb *Framebuffer) Pixel(x, y int) uint32 {
	return fb.pixels[fb.index(x, y)]
}

// Depth returns the stored depth at logical (x, y).
func (fb *Framebuffer) Depth(x, y int) float64 {
	return fb.depth[fb.index(x, y)]
}

// Pixels returns the packed color plane, top row first. The slice aliases
// the framebuffer and is valid until the next Resize.
func (fb *Framebuffer) Pixels() []uint32 {
	return fb.pixels
}

// At returns the color at image coordinates (col, row), row 0 at the top.
// Out-of-range coordinates return transparent black.
func (fb *Framebuffer) At(col, row int) color.RGBA {
	if col < 0 || col >= fb.Width || row < 0 || row >= fb.Height {
		return color.RGBA{}
	}
	p := fb.pixels[row*fb.Width+col]
	return color.RGBA{uint8(p >> 16), uint8(p >> 8), uint8(p), 255}
}

// ToImage copies the color plane into a new RGBA image.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyTo(img.Pix)
	return img
}

// CopyTo writes the color plane as RGBA bytes, top row first, into dst.
// dst must hold at least 4*Width*Height bytes.
func (fb *Framebuffer) CopyTo(dst []byte) {
	for i, p := range fb.pixels {
		o := i * 4
		dst[o] = uint8(p >> 16)
		dst[o+1] = uint8(p >> 8)
		dst[o+2] = uint8(p)
		dst[o+3] = 255
	}
}
