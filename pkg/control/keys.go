package control

import "github.com/taigrr/scanline/pkg/render"

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBack
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionToggleSpin
	ActionToggleMesh
	ActionToggleWireframe
	ActionToggleHUD
	ActionQuit
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionForward:         "forward",
	ActionBack:            "back",
	ActionLeft:            "left",
	ActionRight:           "right",
	ActionUp:              "up",
	ActionDown:            "down",
	ActionPitchUp:         "pitch up",
	ActionPitchDown:       "pitch down",
	ActionYawLeft:         "yaw left",
	ActionYawRight:        "yaw right",
	ActionToggleSpin:      "toggle spin",
	ActionToggleMesh:      "toggle mesh",
	ActionToggleWireframe: "toggle wireframe",
	ActionToggleHUD:       "toggle HUD",
	ActionQuit:            "quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Binding maps key names to an action. Names follow the terminal key
// naming ("w", "up", "esc", "ctrl+c").
type Binding struct {
	Action Action
	Keys   []string
}

// Bindings is the key map shared by every viewer.
var Bindings = []Binding{
	{ActionForward, []string{"w"}},
	{ActionBack, []string{"s"}},
	{ActionLeft, []string{"a"}},
	{ActionRight, []string{"d"}},
	{ActionUp, []string{"r"}},
	{ActionDown, []string{"f"}},
	{ActionPitchUp, []string{"up"}},
	{ActionPitchDown, []string{"down"}},
	{ActionYawLeft, []string{"left", "q"}},
	{ActionYawRight, []string{"right", "e"}},
	{ActionToggleSpin, []string{"t"}},
	{ActionToggleMesh, []string{"p"}},
	{ActionToggleWireframe, []string{"o"}},
	{ActionToggleHUD, []string{"h"}},
	{ActionQuit, []string{"esc", "ctrl+c"}},
}

// Lookup returns the action bound to key, or ActionNone.
func Lookup(key string) Action {
	for _, b := range Bindings {
		for _, k := range b.Keys {
			if k == key {
				return b.Action
			}
		}
	}
	return ActionNone
}

// Step sizes for camera actions.
type Step struct {
	Move   float64 // world units per key press
	Rotate float64 // radians per key press
}

// DefaultStep suits a scene roughly 100 units across.
var DefaultStep = Step{Move: 5, Rotate: 0.05}

// ApplyCamera performs a camera action and reports whether a was one.
// Toggles and quit are left to the caller.
func ApplyCamera(cam *render.Camera, a Action, step Step) bool {
	switch a {
	case ActionForward:
		cam.MoveForward(step.Move)
	case ActionBack:
		cam.MoveForward(-step.Move)
	case ActionLeft:
		cam.MoveRight(-step.Move)
	case ActionRight:
		cam.MoveRight(step.Move)
	case ActionUp:
		cam.MoveUp(step.Move)
	case ActionDown:
		cam.MoveUp(-step.Move)
	case ActionPitchUp:
		cam.Rotate(step.Rotate, 0)
	case ActionPitchDown:
		cam.Rotate(-step.Rotate, 0)
	case ActionYawLeft:
		cam.Rotate(0, -step.Rotate)
	case ActionYawRight:
		cam.Rotate(0, step.Rotate)
	default:
		return false
	}
	return true
}
