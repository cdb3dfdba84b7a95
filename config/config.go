// Package config loads the classroom settings. Built in defaults are embedded and a user
// supplied YAML file is decoded on top of them.
package config

import (
	"bytes"
	_ "embed"
	"os"

	"classroom/lighting"
	"classroom/scene"
	vm "classroom/vector_math"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

const (
	Perspective  = "perspective"
	Orthographic = "orthographic"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Shaders struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

type Camera struct {
	Projection string  `yaml:"projection"`
	FOV        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Eye        vm.Vec3 `yaml:"eye"`
	Target     vm.Vec3 `yaml:"target"`
	Up         vm.Vec3 `yaml:"up"`
}

type Lighting struct {
	Ambient vm.Vec3                        `yaml:"ambient"`
	Lights  [lighting.Count]lighting.Light `yaml:"lights"`
}

type Controls struct {
	RotationSpeed float64 `yaml:"rotation_speed"`
	ChairStep     float32 `yaml:"chair_step"`
}

type Config struct {
	Window   Window           `yaml:"window"`
	Shaders  Shaders          `yaml:"shaders"`
	Camera   Camera           `yaml:"camera"`
	Lighting Lighting         `yaml:"lighting"`
	Controls Controls         `yaml:"controls"`
	Room     scene.Dimensions `yaml:"room"`
}

func decode(c *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// Default returns the embedded configuration.
func Default() *Config {
	c := &Config{}
	if err := decode(c, defaultYAML); err != nil {
		panic(errors.Wrap(err, "embedded default config"))
	}
	return c
}

// Load reads path over the defaults and validates the result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		if err := decode(c, data); err != nil {
			return nil, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Shaders.Vertex == "" || c.Shaders.Fragment == "" {
		return errors.New("shader paths must be set")
	}

	cam := c.Camera
	if cam.Projection != Perspective && cam.Projection != Orthographic {
		return errors.Errorf("unknown projection %q", cam.Projection)
	}
	if cam.Near <= 0 || cam.Far <= cam.Near {
		return errors.Errorf("clip planes near=%g far=%g invalid", cam.Near, cam.Far)
	}
	if cam.Projection == Perspective && (cam.FOV <= 0 || cam.FOV >= 180) {
		return errors.Errorf("field of view %g out of range", cam.FOV)
	}
	if cam.Up.IsZero() || cam.Eye == cam.Target {
		return errors.New("camera needs an up vector and distinct eye and target")
	}

	if c.Controls.RotationSpeed < 0 || c.Controls.ChairStep < 0 {
		return errors.New("control speeds must not be negative")
	}

	r := c.Room
	for name, v := range map[string]float32{
		"x_dim": r.XDim, "y_dim": r.YDim, "z_dim": r.ZDim, "wall_thickness": r.WallThickness,
		"chair_height": r.ChairHeight, "chair_width": r.ChairWidth, "chair_depth": r.ChairDepth,
		"chair_back_height": r.ChairBackHeight, "teacher_chair_back_height": r.TeacherChairBackHeight,
		"student_desk_width": r.StudentDeskWidth, "whiteboard_width": r.WhiteboardWidth,
		"whiteboard_height": r.WhiteboardHeight, "door_width": r.DoorWidth, "door_height": r.DoorHeight,
	} {
		if v <= 0 {
			return errors.Errorf("room %s must be positive, got %g", name, v)
		}
	}
	if r.DoorX-r.DoorWidth/2 <= -r.XDim || r.DoorX+r.DoorWidth/2 >= r.XDim {
		return errors.Errorf("door at x=%g does not fit into the rear wall", r.DoorX)
	}
	if r.DoorHeight > 2*r.YDim {
		return errors.Errorf("door height %g exceeds room height %g", r.DoorHeight, 2*r.YDim)
	}

	for i, l := range c.Lighting.Lights {
		p := l.Position
		if abs(p.X) > r.XDim || abs(p.Y) > r.YDim || abs(p.Z) > r.ZDim {
			return errors.Errorf("light %d at %v is outside the room", i+1, p)
		}
	}
	return nil
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Dump renders the configuration for the startup log.
func (c *Config) Dump() string {
	sc := spew.NewDefaultConfig()
	sc.DisableCapacities = true
	sc.DisablePointerAddresses = true
	return sc.Sdump(c)
}
