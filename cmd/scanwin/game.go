package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/taigrr/scanline/pkg/config"
	"github.com/taigrr/scanline/pkg/control"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// defaultSpin is the auto-spin speed T turns on when none is configured.
const defaultSpin = 0.8

type game struct {
	tps        int
	mesh       *models.Mesh
	refFrame   *models.RefFrame
	camera     *render.Camera
	fb         *render.Framebuffer
	rasterizer *render.Rasterizer
	spin       *control.Spin
	drag       *control.Drag
	step       control.Step

	showMesh  bool
	wireframe bool
	autoSpin  bool
	spinRate  float64

	img *ebiten.Image
	pix []byte
}

func newGame(cfg config.Config, tps int) (*game, error) {
	mesh, err := cfg.BuildMesh()
	if err != nil {
		return nil, err
	}
	fb, err := cfg.NewFramebuffer()
	if err != nil {
		return nil, err
	}
	camera := cfg.NewCamera()

	g := &game{
		tps:        tps,
		mesh:       mesh,
		refFrame:   cfg.NewRefFrame(),
		camera:     camera,
		fb:         fb,
		rasterizer: render.NewRasterizer(camera, fb, cfg.RasterOptions()...),
		spin:       control.NewSpin(tps),
		drag:       control.NewDrag(),
		showMesh:   true,
		wireframe:  cfg.Wireframe,
		autoSpin:   cfg.Spin != 0,
		spinRate:   cfg.Spin,
		img:        ebiten.NewImage(fb.Width, fb.Height),
		pix:        make([]byte, 4*fb.Width*fb.Height),
	}
	if g.spinRate == 0 {
		g.spinRate = defaultSpin
	}
	// Held keys fire every tick, so scale the step down to keep the
	// per-second speed close to the terminal viewer's key repeat.
	g.step = control.Step{
		Move:   control.DefaultStep.Move * 30 / float64(tps),
		Rotate: control.DefaultStep.Rotate * 30 / float64(tps),
	}
	return g, nil
}

func (g *game) Update() error {
	for key, action := range heldKeys {
		if ebiten.IsKeyPressed(key) {
			control.ApplyCamera(g.camera, action, g.step)
		}
	}
	for key, action := range pressKeys {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		switch action {
		case control.ActionQuit:
			return ebiten.Termination
		case control.ActionToggleSpin:
			g.autoSpin = !g.autoSpin
		case control.ActionToggleMesh:
			g.showMesh = !g.showMesh
		case control.ActionToggleWireframe:
			g.wireframe = !g.wireframe
		}
	}

	x, y := ebiten.CursorPosition()
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && !g.drag.Active():
		g.drag.Press(x, y)
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		if impulse, ok := g.drag.Move(x, y); ok {
			g.spin.Impulse(impulse)
		}
	default:
		g.drag.Release()
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.camera.MoveForward(dy * control.DefaultStep.Move)
	}

	if g.autoSpin {
		g.mesh.RotateZ(g.spinRate / float64(g.tps))
	}
	g.mesh.Rotate(g.spin.Update())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.rasterizer.BeginFrame()
	if g.showMesh {
		g.rasterizer.DrawMesh(g.mesh)
	}
	if g.wireframe {
		g.rasterizer.DrawMeshWireframe(g.mesh)
	}
	if g.refFrame != nil {
		g.rasterizer.DrawRefFrame(g.refFrame)
	}

	g.fb.CopyTo(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
