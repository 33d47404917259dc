package render

import (
	"image/color"
	"testing"

	"github.com/taigrr/scanline/pkg/models"
)

// TestFramebufferDepthTest verifies that farther writes are discarded and
// equal depths overwrite.
func TestFramebufferDepthTest(t *testing.T) {
	fb := NewFramebuffer(8, 8)

	fb.Set(3, 4, models.Red, 5)
	fb.Set(3, 4, models.Green, 10)
	if got := fb.Pixel(3, 4); got != 0xff0000 {
		t.Errorf("after farther write: %06x, want ff0000", got)
	}
	if got := fb.Depth(3, 4); got != 5 {
		t.Errorf("depth = %v, want 5", got)
	}

	fb.Set(3, 4, models.Blue, 5)
	if got := fb.Pixel(3, 4); got != 0x0000ff {
		t.Errorf("after equal-depth write: %06x, want 0000ff", got)
	}

	fb.Set(3, 4, models.White, 1)
	if got := fb.Pixel(3, 4); got != 0xffffff {
		t.Errorf("after nearer write: %06x, want ffffff", got)
	}
}

func TestFramebufferPut(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Set(1, 1, models.Red, 0.5)

	fb.Put(1, 1, models.Cyan)
	if got := fb.Pixel(1, 1); got != 0x00ffff {
		t.Errorf("pixel = %06x, want 00ffff", got)
	}
	if got := fb.Depth(1, 1); got != WireDepth {
		t.Errorf("depth = %v, want %v", got, WireDepth)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(5, 3)
	fb.Set(0, 0, models.Red, 1)
	fb.Set(4, 2, models.Red, 1)

	fb.SetBackground(models.RGB(0x12, 0x34, 0x56))
	fb.Clear()
	for i, p := range fb.Pixels() {
		if p != 0x123456 {
			t.Fatalf("pixel %d = %06x, want 123456", i, p)
		}
	}
	for y := range fb.Height {
		for x := range fb.Width {
			if d := fb.Depth(x, y); d != DepthSentinel {
				t.Fatalf("depth (%d,%d) = %v, want sentinel", x, y, d)
			}
		}
	}
}

// TestFramebufferRowOrder verifies logical Y grows upward while storage
// and images run top row first.
func TestFramebufferRowOrder(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Put(0, 0, models.Red)  // bottom-left
	fb.Put(2, 1, models.Blue) // top-right

	px := fb.Pixels()
	if px[3] != 0xff0000 {
		t.Errorf("storage[3] = %06x, want bottom-left red", px[3])
	}
	if px[2] != 0x0000ff {
		t.Errorf("storage[2] = %06x, want top-right blue", px[2])
	}

	img := fb.ToImage()
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("image (0,1) = %v, want red", got)
	}
	if got := fb.At(2, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("At(2,0) = %v, want blue", got)
	}
	if got := fb.At(5, 5); got != (color.RGBA{}) {
		t.Errorf("out of range At = %v, want zero", got)
	}
}

func TestFramebufferInBounds(t *testing.T) {
	fb := NewFramebuffer(10, 5)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 4, true},
		{10, 4, false},
		{9, 5, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tc := range tests {
		if got := fb.InBounds(tc.x, tc.y); got != tc.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestFramebufferResize(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Put(1, 1, models.Red)

	fb.Resize(6, 2)
	if fb.Width != 6 || fb.Height != 2 || len(fb.Pixels()) != 12 {
		t.Errorf("size = %dx%d (%d pixels)", fb.Width, fb.Height, len(fb.Pixels()))
	}
	if fb.Pixel(1, 1) != DefaultBackground {
		t.Error("Resize did not clear")
	}

	fb.Resize(-1, 3)
	if fb.Width != 0 || len(fb.Pixels()) != 0 {
		t.Errorf("negative width gave %dx%d", fb.Width, fb.Height)
	}
	fb.Clear()
}

func BenchmarkFramebufferClear(b *testing.B) {
	fb := NewFramebuffer(320, 192)
	for b.Loop() {
		fb.Clear()
	}
}
