package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/taigrr/scanline/pkg/models"
)

func testFrame() *image.RGBA {
	fb := NewFramebuffer(4, 3)
	fb.Put(0, 2, models.Red)
	fb.Put(3, 0, models.Blue)
	return fb.ToImage()
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	if err := SaveImage(testFrame(), path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := color.RGBAModel.Convert(img.At(0, 0)); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("(0,0) = %v, want red", got)
	}
}

func TestSaveWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.webp")
	if err := SaveImage(testFrame(), path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := nativewebp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("bounds = %v", b)
	}
	r, g, b, _ := img.At(3, 2).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("(3,2) = %d,%d,%d; want blue", r>>8, g>>8, b>>8)
	}
}

func TestSaveImageUnknownFormat(t *testing.T) {
	err := SaveImage(testFrame(), filepath.Join(t.TempDir(), "frame.bmp"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestSaveAnimatedWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spin.webp")
	frames := []image.Image{testFrame(), Upscale(testFrame(), 1)}

	if err := SaveAnimatedWebP(frames, 40*time.Millisecond, path); err != nil {
		t.Fatalf("SaveAnimatedWebP: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) || !bytes.Contains(data, []byte("ANIM")) {
		t.Error("output is not an animated WebP")
	}

	if err := SaveAnimatedWebP(nil, time.Second, path); err == nil {
		t.Error("expected error for no frames")
	}
}

func TestUpscale(t *testing.T) {
	src := testFrame()

	if got := Upscale(src, 1); got != image.Image(src) {
		t.Error("factor 1 should return the input")
	}

	up := Upscale(src, 3)
	if b := up.Bounds(); b.Dx() != 12 || b.Dy() != 9 {
		t.Fatalf("bounds = %v, want 12x9", b)
	}
	for _, p := range []image.Point{{0, 0}, {2, 2}} {
		if got := color.RGBAModel.Convert(up.At(p.X, p.Y)); got != (color.RGBA{255, 0, 0, 255}) {
			t.Errorf("%v = %v, want red", p, got)
		}
	}
	if got := color.RGBAModel.Convert(up.At(3, 0)); got == (color.RGBA{255, 0, 0, 255}) {
		t.Error("red pixel bled past its block")
	}
}
