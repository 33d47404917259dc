package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// ErrUnknownFormat is returned for output paths with an unsupported
// extension.
var ErrUnknownFormat = errors.New("unknown image format")

// Upscale returns img enlarged by an integer factor with nearest-neighbor
// sampling, so pixels stay sharp. Factors below 2 return img unchanged.
func Upscale(img image.Image, factor int) image.Image {
	if factor < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// SavePNG writes img to path as PNG.
func SavePNG(img image.Image, path string) error {
	return writeFile(path, func(f *os.File) error {
		return png.Encode(f, img)
	})
}

// SaveWebP writes img to path as lossless WebP.
func SaveWebP(img image.Image, path string) error {
	return writeFile(path, func(f *os.File) error {
		return nativewebp.Encode(f, img, nil)
	})
}

// SaveImage picks the encoder from the extension of path (.png or .webp).
func SaveImage(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return SavePNG(img, path)
	case ".webp":
		return SaveWebP(img, path)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// SaveAnimatedWebP writes frames as a looping animated WebP, each shown
// for delay.
func SaveAnimatedWebP(frames []image.Image, delay time.Duration, path string) error {
	if len(frames) == 0 {
		return fmt.Errorf("%s: no frames", path)
	}

	ms := uint(max(delay.Milliseconds(), 1))
	anim := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	for i := range anim.Durations {
		anim.Durations[i] = ms
	}

	return writeFile(path, func(f *os.File) error {
		return nativewebp.EncodeAll(f, anim, nil)
	})
}

func writeFile(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	Logger().Info("wrote image", "path", path)
	return nil
}
