// scanshot renders a scene offscreen and writes it to a PNG or WebP file.
// With -frames it writes an animated WebP of one full turn about Z.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML scene file")
	outPath     = flag.String("o", "frame.png", "Output file (.png or .webp)")
	width       = flag.Int("width", 0, "Framebuffer width in pixels")
	height      = flag.Int("height", 0, "Framebuffer height in pixels")
	texturePath = flag.String("texture", "", "Path to texture image")
	bgColor     = flag.String("bg", "", "Background color (#rrggbb)")
	fov         = flag.Float64("fov", 0, "Horizontal field of view in degrees")
	fit         = flag.Float64("fit", 0, "Rescale the model so its largest side is this long")
	wireframe   = flag.Bool("wireframe", false, "Draw the wireframe overlay")
	upscale     = flag.Int("upscale", 1, "Nearest-neighbor upscale factor")
	frames      = flag.Int("frames", 1, "Number of frames; more than one writes an animated WebP")
	delay       = flag.Duration("delay", 50*time.Millisecond, "Delay between animation frames")
	verbose     = flag.Bool("v", false, "Log per-mesh statistics")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanshot - Offscreen software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanshot [options] [model.obj|model.glb|cube|triangle]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	if *frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", *frames)
	}
	if *frames > 1 && !strings.EqualFold(filepath.Ext(*outPath), ".webp") {
		return fmt.Errorf("animation needs a .webp output, got %q", *outPath)
	}

	cfg, err := config.Prepare(*configPath, config.Flags{
		Width:      *width,
		Height:     *height,
		FOV:        *fov,
		Background: *bgColor,
		Mesh:       modelPath,
		Texture:    *texturePath,
		Fit:        *fit,
		Wireframe:  *wireframe,
	})
	if err != nil {
		return err
	}

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	mesh, err := cfg.BuildMesh()
	if err != nil {
		return err
	}

	fb, err := cfg.NewFramebuffer()
	if err != nil {
		return err
	}
	rasterizer := render.NewRasterizer(cfg.NewCamera(), fb, cfg.RasterOptions()...)
	refFrame := cfg.NewRefFrame()

	draw := func() image.Image {
		rasterizer.BeginFrame()
		rasterizer.DrawMesh(mesh)
		if cfg.Wireframe {
			rasterizer.DrawMeshWireframe(mesh)
		}
		if refFrame != nil {
			rasterizer.DrawRefFrame(refFrame)
		}
		return render.Upscale(fb.ToImage(), *upscale)
	}

	if *frames == 1 {
		return render.SaveImage(draw(), *outPath)
	}
	return renderTurntable(mesh, *frames, *delay, *outPath, draw)
}

// renderTurntable draws n frames covering one full turn about Z and writes
// them to path as an animated WebP.
func renderTurntable(mesh *models.Mesh, n int, delay time.Duration, path string, draw func() image.Image) error {
	step := 2 * math.Pi / float64(n)
	images := make([]image.Image, 0, n)

	bar := progressbar.Default(int64(n), "rendering")
	for range n {
		images = append(images, draw())
		mesh.RotateZ(step)
		if err := bar.Add(1); err != nil {
			return fmt.Errorf("progress: %w", err)
		}
	}
	if err := bar.Close(); err != nil {
		return fmt.Errorf("progress: %w", err)
	}

	return render.SaveAnimatedWebP(images, delay, path)
}
