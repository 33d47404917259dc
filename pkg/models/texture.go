package models

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// ErrUnknownImageFormat is returned for image names or MIME types with no
// decoder.
var ErrUnknownImageFormat = errors.New("unknown image format")

// decoders is keyed by the names ImageFormat returns. The TGA package
// registers an empty magic string, so image.Decode cannot be trusted to
// sniff formats once it is linked in.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpeg": jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tiff": tiff.Decode,
	"webp": webp.Decode,
	"tga":  tga.Decode,
}

// ImageFormat returns the decoder name for a file name or an image MIME
// type, or "" when neither is recognized.
func ImageFormat(name string) string {
	name = strings.ToLower(name)
	if sub, ok := strings.CutPrefix(name, "image/"); ok {
		name = "." + sub
	}
	switch filepath.Ext(name) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp", ".x-ms-bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	case ".webp":
		return "webp"
	case ".tga", ".x-tga", ".x-targa":
		return "tga"
	}
	return ""
}

// DecodeImage decodes r with the decoder for format, a name returned by
// ImageFormat.
func DecodeImage(r io.Reader, format string) (image.Image, error) {
	decode, ok := decoders[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImageFormat, format)
	}
	return decode(r)
}

// Texture is an immutable grid of texels stored top row first, left to
// right. Texture coordinate (0,0) addresses the first stored texel.
type Texture struct {
	Width  int
	Height int
	Texels []Color
}

// NewTexture creates a black texture with the given dimensions. Negative
// sizes are treated as zero.
func NewTexture(width, height int) *Texture {
	width, height = max(width, 0), max(height, 0)
	return &Texture{
		Width:  width,
		Height: height,
		Texels: make([]Color, width*height),
	}
}

// LoadTexture loads a PNG, JPEG, GIF, BMP, TIFF, WebP or TGA file. The
// decoder is picked by file extension.
func LoadTexture(path string) (*Texture, error) {
	format := ImageFormat(path)
	if format == "" {
		return nil, fmt.Errorf("load texture %s: %w", path, ErrUnknownImageFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, err := DecodeImage(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.Height {
		for x := range tex.Width {
			tex.Texels[y*tex.Width+x] = FromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}

	return tex
}

// ResizeTexture resamples t to width x height with a Catmull-Rom filter.
func ResizeTexture(t *Texture, width, height int) *Texture {
	src := t.Image()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return TextureFromImage(dst)
}

// NewCheckerTexture creates a procedural checkerboard texture. A
// checkSize below 1 is treated as 1.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	checkSize = max(checkSize, 1)
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Texels[y*width+x] = c1
			} else {
				tex.Texels[y*width+x] = c2
			}
		}
	}
	return tex
}

// At returns the texel at integer coordinates. Callers stay in bounds.
func (t *Texture) At(x, y int) Color {
	return t.Texels[y*t.Width+x]
}

// Sample returns the nearest texel for normalized coordinates. Indices
// are floor(u*width) and floor(v*height), clamped to the texture. An
// empty texture samples as Black.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width <= 0 || t.Height <= 0 || len(t.Texels) == 0 {
		return Black
	}
	return t.At(texelIndex(u, t.Width), texelIndex(v, t.Height))
}

func texelIndex(c float64, size int) int {
	f := math.Floor(c * float64(size))
	if !(f > 0) {
		return 0
	}
	if f >= float64(size-1) {
		return size - 1
	}
	return int(f)
}

// Image returns the texture as an *image.RGBA.
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := range t.Height {
		for x := range t.Width {
			img.SetRGBA(x, y, t.At(x, y).ToRGBA())
		}
	}
	return img
}
