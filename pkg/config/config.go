// Package config describes a scene for the scanline binaries: frame size,
// projection, lighting, camera and the mesh to draw. Scenes come from
// defaults, an optional YAML file and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a scene that fails validation.
var ErrInvalid = errors.New("invalid config")

// Mesh paths that select built-in meshes.
const (
	CubeMesh     = "cube"
	TriangleMesh = "triangle"
)

// Vec3 is a vector written as a three-element YAML sequence.
type Vec3 [3]float64

// Vec converts v to a math3d vector.
func (v Vec3) Vec() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

// Config holds a full scene description.
type Config struct {
	// Frame
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FOV        float64 `yaml:"fov"` // degrees
	Background string  `yaml:"background"`

	// Lighting and culling
	Light    Vec3    `yaml:"light"`
	Ambient  float64 `yaml:"ambient"`
	Overdraw float64 `yaml:"overdraw"`

	Camera   Camera   `yaml:"camera"`
	Mesh     Mesh     `yaml:"mesh"`
	RefFrame RefFrame `yaml:"refframe"`

	Wireframe bool    `yaml:"wireframe"`
	Spin      float64 `yaml:"spin"` // radians per second about Z
}

// Camera places the viewer.
type Camera struct {
	Position Vec3 `yaml:"position"`
	Rotation Vec3 `yaml:"rotation"`
}

// Mesh selects and places the model.
type Mesh struct {
	Path    string  `yaml:"path"` // .obj, .gltf, .glb, "cube" or "triangle"
	Texture string  `yaml:"texture"`
	Scale   float64 `yaml:"scale"`

	// Fit rescales the model so its largest extent equals Fit. Zero keeps
	// the loaded size.
	Fit      float64 `yaml:"fit"`
	Center   Vec3    `yaml:"center"`
	Rotation Vec3    `yaml:"rotation"`

	// YUp converts Y-up assets into the renderer frame. Unset means true
	// for glTF and false otherwise.
	YUp *bool `yaml:"y_up"`
}

// RefFrame configures the axis gizmo.
type RefFrame struct {
	Enabled bool    `yaml:"enabled"`
	Center  Vec3    `yaml:"center"`
	Length  float64 `yaml:"length"`
}

// Default returns the built-in scene: a cube in front of the camera.
func Default() Config {
	return Config{
		Width:      160,
		Height:     96,
		FOV:        90,
		Background: "#bbbbbb",
		Light:      Vec3{-3, 1, -4},
		Ambient:    render.DefaultAmbient,
		Overdraw:   render.DefaultOverdraw,
		Camera: Camera{
			Position: Vec3{-100, 0, 0},
		},
		Mesh: Mesh{
			Path:  CubeMesh,
			Scale: 1,
			Fit:   60,
		},
		RefFrame: RefFrame{Length: 80},
	}
}

// Load reads a YAML scene over the defaults. Fields missing from the file
// keep their default values. Relative mesh and texture paths are resolved
// against the file's directory.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	cfg.Mesh.Path = resolvePath(dir, cfg.Mesh.Path)
	cfg.Mesh.Texture = resolvePath(dir, cfg.Mesh.Texture)

	return cfg, nil
}

func resolvePath(dir, p string) string {
	if p == "" || p == CubeMesh || p == TriangleMesh || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width      int
	Height     int
	FOV        float64
	Background string
	Mesh       string
	Texture    string
	Fit        float64
	Wireframe  bool
	Spin       float64
}

// Resolve applies non-zero flag values on top of c.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Mesh != "" {
		c.Mesh.Path = flags.Mesh
	}
	if flags.Texture != "" {
		c.Mesh.Texture = flags.Texture
	}
	if flags.Fit > 0 {
		c.Mesh.Fit = flags.Fit
	}
	if flags.Wireframe {
		c.Wireframe = true
	}
	if flags.Spin != 0 {
		c.Spin = flags.Spin
	}
}

// Prepare builds the scene for a binary: the defaults, or the file at
// path when path is non-empty, then flags, then validation.
func Prepare(path string, flags Flags) (Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with the scene, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("frame size %dx%d must be positive", c.Width, c.Height)
	}
	if !(c.FOV > 0 && c.FOV < 180) {
		bad("fov %v must be between 0 and 180 degrees", c.FOV)
	}
	if _, err := models.ParseColor(c.Background); err != nil {
		bad("background: %v", err)
	}
	if c.Light.Vec().LenSq() == 0 {
		bad("light direction must be non-zero")
	}
	if c.Ambient < 0 || c.Ambient > 1 {
		bad("ambient %v must be within [0, 1]", c.Ambient)
	}
	if c.Mesh.Path == "" {
		bad("mesh path is empty")
	}
	if !(c.Mesh.Scale > 0) {
		bad("mesh scale %v must be positive", c.Mesh.Scale)
	}
	if c.Mesh.Fit < 0 {
		bad("mesh fit %v must not be negative", c.Mesh.Fit)
	}
	if c.RefFrame.Enabled && !(c.RefFrame.Length > 0) {
		bad("refframe length %v must be positive", c.RefFrame.Length)
	}

	return errors.Join(errs...)
}

// BackgroundColor parses the background color.
func (c Config) BackgroundColor() (models.Color, error) {
	col, err := models.ParseColor(c.Background)
	if err != nil {
		return models.Color{}, fmt.Errorf("background: %w", err)
	}
	return col, nil
}

// FOVRadians returns the field of view in radians.
func (c Config) FOVRadians() float64 {
	return c.FOV * math.Pi / 180
}

// RasterOptions turns the scene's projection and lighting into renderer
// options.
func (c Config) RasterOptions() []render.Option {
	return []render.Option{
		render.WithFOV(c.FOVRadians()),
		render.WithLight(c.Light.Vec()),
		render.WithAmbient(c.Ambient),
		render.WithOverdraw(c.Overdraw),
	}
}

// NewCamera returns a camera at the configured pose.
func (c Config) NewCamera() *render.Camera {
	cam := render.NewCamera()
	cam.SetPosition(c.Camera.Position.Vec())
	cam.SetRotation(c.Camera.Rotation.Vec())
	return cam
}

// NewFramebuffer returns a framebuffer of the configured size and
// background.
func (c Config) NewFramebuffer() (*render.Framebuffer, error) {
	bg, err := c.BackgroundColor()
	if err != nil {
		return nil, err
	}
	fb := render.NewFramebuffer(c.Width, c.Height)
	fb.SetBackground(bg)
	fb.Clear()
	return fb, nil
}

// NewRefFrame returns the configured gizmo, or nil when disabled.
func (c Config) NewRefFrame() *models.RefFrame {
	if !c.RefFrame.Enabled {
		return nil
	}
	return models.NewRefFrame(c.RefFrame.Center.Vec(), c.RefFrame.Length)
}

// BuildMesh loads or builds the mesh, converts and fits it, attaches the
// texture and places it in the world.
func (c Config) BuildMesh() (*models.Mesh, error) {
	var (
		m    *models.Mesh
		err  error
		yUp  bool
		path = c.Mesh.Path
	)

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == CubeMesh:
		m = models.NewCube(c.Mesh.Scale)
	case path == TriangleMesh:
		// Unit triangle in the Y/Z plane, wound to face a camera on -X.
		h := c.Mesh.Scale / 2
		m = models.NewTriangleMesh(math3d.V3(0, 0, -h), math3d.V3(0, -h, h), math3d.V3(0, h, h))
	case ext == ".obj":
		m, err = models.LoadOBJ(path, c.Mesh.Scale)
	case ext == ".gltf" || ext == ".glb":
		m, err = models.LoadGLTF(path)
		if err == nil && c.Mesh.Scale != 1 {
			m.Transform(math3d.ScaleUniform(c.Mesh.Scale))
		}
		yUp = true
	default:
		return nil, fmt.Errorf("%w: unsupported mesh format %q (use .obj, .gltf, .glb, %s or %s)", ErrInvalid, path, CubeMesh, TriangleMesh)
	}
	if err != nil {
		return nil, fmt.Errorf("load mesh: %w", err)
	}

	if c.Mesh.YUp != nil {
		yUp = *c.Mesh.YUp
	}
	if yUp {
		m.Transform(math3d.YUpBasis())
	}
	if c.Mesh.Fit > 0 {
		m.Fit(c.Mesh.Fit)
	}

	if c.Mesh.Texture != "" {
		tex, err := models.LoadTexture(c.Mesh.Texture)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		m.Texture = tex
	}

	m.Center = c.Mesh.Center.Vec()
	m.Rotation = c.Mesh.Rotation.Vec()
	return m, nil
}
