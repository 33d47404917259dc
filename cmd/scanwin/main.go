// scanwin shows the rasterizer output in a desktop window. It uses the
// same controls as scanline; the framebuffer is scaled up by the window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/control"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML scene file")
	width       = flag.Int("width", 320, "Framebuffer width in pixels")
	height      = flag.Int("height", 200, "Framebuffer height in pixels")
	zoom        = flag.Int("zoom", 3, "Window pixels per framebuffer pixel")
	targetFPS   = flag.Int("fps", 60, "Target ticks per second")
	texturePath = flag.String("texture", "", "Path to texture image")
	bgColor     = flag.String("bg", "", "Background color (#rrggbb)")
	fov         = flag.Float64("fov", 0, "Horizontal field of view in degrees")
	fit         = flag.Float64("fit", 0, "Rescale the model so its largest side is this long")
	wireframe   = flag.Bool("wireframe", false, "Start with the wireframe overlay on")
	spinRate    = flag.Float64("spin", 0, "Auto-spin speed in radians per second")
)

func main() {
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath string) error {
	cfg, err := config.Prepare(*configPath, config.Flags{
		Width:      *width,
		Height:     *height,
		FOV:        *fov,
		Background: *bgColor,
		Mesh:       modelPath,
		Texture:    *texturePath,
		Fit:        *fit,
		Wireframe:  *wireframe,
		Spin:       *spinRate,
	})
	if err != nil {
		return err
	}

	tps := max(*targetFPS, 1)
	g, err := newGame(cfg, tps)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("scanline - " + g.mesh.Name)
	ebiten.SetWindowSize(cfg.Width*max(*zoom, 1), cfg.Height*max(*zoom, 1))
	ebiten.SetTPS(tps)
	return ebiten.RunGame(g)
}

// heldKeys repeat every tick while down.
var heldKeys = map[ebiten.Key]control.Action{
	ebiten.KeyW:          control.ActionForward,
	ebiten.KeyS:          control.ActionBack,
	ebiten.KeyA:          control.ActionLeft,
	ebiten.KeyD:          control.ActionRight,
	ebiten.KeyR:          control.ActionUp,
	ebiten.KeyF:          control.ActionDown,
	ebiten.KeyArrowUp:    control.ActionPitchUp,
	ebiten.KeyArrowDown:  control.ActionPitchDown,
	ebiten.KeyArrowLeft:  control.ActionYawLeft,
	ebiten.KeyQ:          control.ActionYawLeft,
	ebiten.KeyArrowRight: control.ActionYawRight,
	ebiten.KeyE:          control.ActionYawRight,
}

// pressKeys fire once per press.
var pressKeys = map[ebiten.Key]control.Action{
	ebiten.KeyT:      control.ActionToggleSpin,
	ebiten.KeyP:      control.ActionToggleMesh,
	ebiten.KeyO:      control.ActionToggleWireframe,
	ebiten.KeyEscape: control.ActionQuit,
}
