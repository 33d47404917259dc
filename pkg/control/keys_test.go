package control

import (
	"math"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/render"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"w", ActionForward},
		{"s", ActionBack},
		{"r", ActionUp},
		{"f", ActionDown},
		{"up", ActionPitchUp},
		{"q", ActionYawLeft},
		{"e", ActionYawRight},
		{"o", ActionToggleWireframe},
		{"esc", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"z", ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := Lookup(tc.key); got != tc.want {
				t.Errorf("Lookup(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

// TestBindingsUnique verifies no key is bound twice.
func TestBindingsUnique(t *testing.T) {
	seen := map[string]Action{}
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if prev, ok := seen[k]; ok {
				t.Errorf("key %q bound to %v and %v", k, prev, b.Action)
			}
			seen[k] = b.Action
		}
	}
}

func TestActionString(t *testing.T) {
	if ActionToggleHUD.String() != "toggle HUD" {
		t.Errorf("String = %q", ActionToggleHUD.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("String = %q", Action(99).String())
	}
}

func TestApplyCamera(t *testing.T) {
	step := Step{Move: 2, Rotate: 0.1}

	tests := []struct {
		action  Action
		wantPos math3d.Vec3
		wantRot math3d.Vec3
	}{
		{ActionForward, math3d.V3(2, 0, 0), math3d.Zero3()},
		{ActionBack, math3d.V3(-2, 0, 0), math3d.Zero3()},
		{ActionLeft, math3d.V3(0, -2, 0), math3d.Zero3()},
		{ActionRight, math3d.V3(0, 2, 0), math3d.Zero3()},
		{ActionUp, math3d.V3(0, 0, -2), math3d.Zero3()},
		{ActionDown, math3d.V3(0, 0, 2), math3d.Zero3()},
		{ActionPitchUp, math3d.Zero3(), math3d.V3(0, 0.1, 0)},
		{ActionYawLeft, math3d.Zero3(), math3d.V3(0, 0, -0.1)},
	}
	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			cam := render.NewCamera()
			cam.SetPosition(math3d.Zero3())
			if !ApplyCamera(cam, tc.action, step) {
				t.Fatal("action not applied")
			}
			if cam.Position.Sub(tc.wantPos).Len() > 1e-9 {
				t.Errorf("position = %v, want %v", cam.Position, tc.wantPos)
			}
			if cam.Rotation.Sub(tc.wantRot).Len() > 1e-9 {
				t.Errorf("rotation = %v, want %v", cam.Rotation, tc.wantRot)
			}
		})
	}

	cam := render.NewCamera()
	if ApplyCamera(cam, ActionToggleHUD, step) {
		t.Error("toggle reported as camera action")
	}
}

// TestPitchUpLooksUp verifies pitching up tilts the view toward world up.
func TestPitchUpLooksUp(t *testing.T) {
	cam := render.NewCamera()
	ApplyCamera(cam, ActionPitchUp, DefaultStep)
	if f := cam.Forward(); f.Z >= 0 || math.Abs(f.Len()-1) > 1e-9 {
		t.Errorf("forward = %v, want tilted toward -Z", f)
	}
}
