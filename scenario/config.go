package scenario

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config describes a scene: the bodies in it and the force creators acting
// on them. Bodies are referenced by name.
type Config struct {
	Name   string        `yaml:"name"`
	World  WorldConfig   `yaml:"world"`
	Bodies []BodyConfig  `yaml:"bodies"`
	Forces []ForceConfig `yaml:"forces"`
}

// WorldConfig is the visible region of the scene. A zero size means fit the
// bodies.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BodyConfig struct {
	Name     string      `yaml:"name"`
	Shape    ShapeConfig `yaml:"shape"`
	Mass     Mass        `yaml:"mass"`
	Position Vec         `yaml:"position"`
	Velocity Vec         `yaml:"velocity"`
	// degrees, counter-clockwise
	Rotation float64 `yaml:"rotation"`
	// "#rrggbb"; takes precedence over Hue
	Color string   `yaml:"color,omitempty"`
	Hue   *float64 `yaml:"hue,omitempty"`
}

type ShapeConfig struct {
	Kind     string  `yaml:"kind"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Inner    float64 `yaml:"inner,omitempty"`
	Sides    int     `yaml:"sides,omitempty"`
	Points   int     `yaml:"points,omitempty"`
	Vertices []Vec   `yaml:"vertices,omitempty"`
}

type ForceConfig struct {
	Kind   string   `yaml:"kind"`
	Bodies []string `yaml:"bodies"`

	G          float64 `yaml:"g,omitempty"`
	K          float64 `yaml:"k,omitempty"`
	Gamma      float64 `yaml:"gamma,omitempty"`
	Elasticity float64 `yaml:"elasticity,omitempty"`
	Speed      float64 `yaml:"speed,omitempty"`
	// acceleration for "weight"
	Accel Vec `yaml:"accel,omitempty"`
}

// Vec is a point written as a two element sequence.
type Vec [2]float64

func (v Vec) IsZero() bool {
	return v[0] == 0 && v[1] == 0
}

// Mass is a body mass. It accepts "inf" for an immovable body.
type Mass float64

func (m *Mass) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(strings.TrimSpace(value.Value)) {
	case "inf", "infinity", "+inf":
		*m = Mass(math.Inf(1))
		return nil
	}
	f, err := strconv.ParseFloat(value.Value, 64)
	if err != nil {
		return fmt.Errorf("line %d: invalid mass %q", value.Line, value.Value)
	}
	*m = Mass(f)
	return nil
}

func (m Mass) MarshalYAML() (interface{}, error) {
	if math.IsInf(float64(m), 1) {
		return "inf", nil
	}
	return float64(m), nil
}

// Load decodes a YAML scenario. Unknown keys are rejected.
func Load(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &c, nil
}

func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
