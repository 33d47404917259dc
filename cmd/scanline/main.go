// scanline - terminal viewer for the software rasterizer.
// Draws OBJ, glTF/GLB or the built-in cube with half-block pixels.
//
// Controls:
//
//	W/S/A/D     - Move forward/back/left/right
//	R/F         - Move up/down
//	Arrows, Q/E - Pitch and yaw the camera
//	Mouse drag  - Spin the model
//	Scroll      - Dolly in/out
//	T           - Toggle auto-spin
//	P           - Hide/show the mesh
//	O           - Toggle wireframe overlay
//	H           - Toggle HUD overlay
//	Esc, Ctrl+C - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/control"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML scene file")
	texturePath = flag.String("texture", "", "Path to texture image (PNG/JPG/BMP/TGA/TIFF/WebP)")
	targetFPS   = flag.Int("fps", 30, "Target FPS")
	bgColor     = flag.String("bg", "", "Background color (#rrggbb)")
	fov         = flag.Float64("fov", 0, "Horizontal field of view in degrees")
	fit         = flag.Float64("fit", 0, "Rescale the model so its largest side is this long")
	wireframe   = flag.Bool("wireframe", false, "Start with the wireframe overlay on")
	spinRate    = flag.Float64("spin", 0, "Auto-spin speed in radians per second")
	logPath     = flag.String("log", "", "Write debug logs to this file")
)

// defaultSpin is the auto-spin speed T turns on when none is configured.
const defaultSpin = 0.8

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - Terminal software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options] [model.obj|model.glb|cube|triangle]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D     - Move\n")
		fmt.Fprintf(os.Stderr, "  R/F         - Move up/down\n")
		fmt.Fprintf(os.Stderr, "  Arrows, Q/E - Look around\n")
		fmt.Fprintf(os.Stderr, "  Mouse drag  - Spin the model\n")
		fmt.Fprintf(os.Stderr, "  Scroll      - Dolly in/out\n")
		fmt.Fprintf(os.Stderr, "  T           - Toggle auto-spin\n")
		fmt.Fprintf(os.Stderr, "  P           - Hide/show mesh\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  H           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// viewState holds the viewer toggles.
type viewState struct {
	showMesh  bool
	wireframe bool
	showHUD   bool
	autoSpin  bool
	spinRate  float64
}

func run(modelPath string) error {
	cfg, err := config.Prepare(*configPath, config.Flags{
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

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mesh, err := cfg.BuildMesh()
	if err != nil {
		return err
	}
	refFrame := cfg.NewRefFrame()

	fps := max(*targetFPS, 1)
	view := &viewState{
		showMesh:  true,
		wireframe: cfg.Wireframe,
		autoSpin:  cfg.Spin != 0,
		spinRate:  cfg.Spin,
	}
	if view.spinRate == 0 {
		view.spinRate = defaultSpin
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1002h") // Button-event mouse tracking (drag)
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1002l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	fb, err := cfg.NewFramebuffer()
	if err != nil {
		return err
	}
	fb.Resize(render.FramebufferSize(width, height))

	camera := cfg.NewCamera()
	rasterizer := render.NewRasterizer(camera, fb, cfg.RasterOptions()...)
	termRenderer := render.NewTerminalRenderer(term, fb)

	hud := newHUD(filepath.Base(cfg.Mesh.Path), mesh.TriangleCount())
	spin := control.NewSpin(fps)
	drag := control.NewDrag()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fb.Resize(render.FramebufferSize(width, height))
				rasterizer.Resize()

			case uv.KeyPressEvent:
				action := keyAction(ev)
				if control.ApplyCamera(camera, action, control.DefaultStep) {
					continue
				}
				switch action {
				case control.ActionQuit:
					return nil
				case control.ActionToggleSpin:
					view.autoSpin = !view.autoSpin
				case control.ActionToggleMesh:
					view.showMesh = !view.showMesh
				case control.ActionToggleWireframe:
					view.wireframe = !view.wireframe
				case control.ActionToggleHUD:
					view.showHUD = !view.showHUD
				}

			case uv.MouseClickEvent:
				if ev.Button == uv.MouseLeft {
					drag.Press(ev.X, ev.Y)
				}

			case uv.MouseReleaseEvent:
				drag.Release()

			case uv.MouseMotionEvent:
				if impulse, ok := drag.Move(ev.X, ev.Y); ok {
					spin.Impulse(impulse)
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					camera.MoveForward(control.DefaultStep.Move)
				case uv.MouseWheelDown:
					camera.MoveForward(-control.DefaultStep.Move)
				}
			}

		case <-ticker.C:
			if view.autoSpin {
				mesh.RotateZ(view.spinRate / float64(fps))
			}
			mesh.Rotate(spin.Update())

			rasterizer.BeginFrame()
			if view.showMesh {
				rasterizer.DrawMesh(mesh)
			}
			if view.wireframe {
				rasterizer.DrawMeshWireframe(mesh)
			}
			if refFrame != nil {
				rasterizer.DrawRefFrame(refFrame)
			}

			hud.UpdateFPS()
			if view.showHUD {
				termRenderer.SetOverlay(hud.Lines(rasterizer.Stats, camera, view))
			} else {
				termRenderer.SetOverlay(nil)
			}

			if err := termRenderer.Render(); err != nil {
				return fmt.Errorf("render: %w", err)
			}
		}
	}
}

// keyAction returns the action bound to the pressed key.
func keyAction(ev uv.KeyPressEvent) control.Action {
	for _, b := range control.Bindings {
		if ev.MatchString(b.Keys...) {
			return b.Action
		}
	}
	return control.ActionNone
}
