package main

import (
	"fmt"
	"time"

	"github.com/taigrr/scanline/pkg/render"
)

// HUD renders an overlay with model info and frame statistics
type HUD struct {
	filename  string
	polyCount int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(filename string, polyCount int) *HUD {
	return &HUD{
		filename:  filename,
		polyCount: polyCount,
		fpsTime:   time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Lines returns the overlay text for the current frame.
func (h *HUD) Lines(stats render.FrameStats, cam *render.Camera, view *viewState) []string {
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}
	p := cam.Position
	return []string{
		fmt.Sprintf(" %s | %d polys | %.0f FPS ", h.filename, h.polyCount, h.fps),
		fmt.Sprintf(" drawn %d  culled %d  near %d  flat %d ", stats.Drawn, stats.Culled, stats.NearRejected, stats.Degenerate),
		fmt.Sprintf(" cam (%.0f, %.0f, %.0f) ", p.X, p.Y, p.Z),
		fmt.Sprintf(" %s mesh %s wire %s spin ", check(view.showMesh), check(view.wireframe), check(view.autoSpin)),
	}
}
