package scenario

import (
	"bytes"
	"embed"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

//go:embed presets/*.yaml
var presetFiles embed.FS

// Preset returns a named built-in scenario. rng seeds the randomised ones.
func Preset(name string, rng *rand.Rand) (*Config, error) {
	switch name {
	case "nbodies":
		return NBodies(100, rng), nil
	case "damping":
		return Damping(50), nil
	case "bounce":
		return Bounce(8, rng), nil
	}

	data, err := presetFiles.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	return Load(bytes.NewReader(data))
}

// Presets lists the names accepted by Preset.
func Presets() []string {
	names := []string{"nbodies", "damping", "bounce"}
	entries, _ := presetFiles.ReadDir("presets")
	for _, entry := range entries {
		names = append(names, entry.Name()[:len(entry.Name())-len(".yaml")])
	}
	sort.Strings(names)
	return names
}

// NBodies scatters n four-pointed stars with random masses and pulls every
// pair together with gravity.
func NBodies(n int, rng *rand.Rand) *Config {
	const (
		width, height = 1000.0, 500.0
		spawnW        = 600.0
		spawnH        = 300.0
		baseMass      = 10.0
		maxMass       = 20
		G             = 1e3
	)
	c := &Config{
		Name:  "nbodies",
		World: WorldConfig{Width: width, Height: height},
	}
	for i := 0; i < n; i++ {
		mass := float64(1 + rng.Intn(maxMass-1))
		ratio := mass / baseMass
		hue := rng.Float64() * 360
		c.Bodies = append(c.Bodies, BodyConfig{
			Name: fmt.Sprintf("star%d", i),
			Mass: Mass(mass),
			Position: Vec{
				rng.Float64()*spawnW + (width-spawnW)/2,
				rng.Float64()*spawnH + (height-spawnH)/2,
			},
			Hue: &hue,
			Shape: ShapeConfig{
				Kind:   "star",
				Points: 4,
				Radius: 11 * ratio,
				Inner:  5 * ratio,
			},
		})
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c.Forces = append(c.Forces, ForceConfig{
				Kind:   "gravity",
				Bodies: []string{c.Bodies[i].Name, c.Bodies[j].Name},
				G:      G,
			})
		}
	}
	return c
}

// Damping hangs n circles from fixed anchors on springs along a cosine wave,
// with drag growing from left to right.
func Damping(n int) *Config {
	const (
		width, height = 1000.0, 500.0
		radius        = 10.0
		mass          = 10.0
		k             = 10.0
		baseGamma     = 0.01
		gammaStep     = 0.1
	)
	c := &Config{
		Name:  "damping",
		World: WorldConfig{Width: width, Height: height},
	}
	circle := ShapeConfig{Kind: "circle", Radius: radius, Sides: 24}
	for i := 0; i < n; i++ {
		x := radius * float64(2*i+1)
		y := height/2*math.Cos(2*math.Pi/width*x) + height/2
		hue := float64(i) * 360 / float64(n)
		anchor := fmt.Sprintf("anchor%d", i)
		ball := fmt.Sprintf("ball%d", i)

		c.Bodies = append(c.Bodies,
			BodyConfig{
				Name:     anchor,
				Mass:     Mass(math.Inf(1)),
				Position: Vec{x, height / 2},
				Color:    "#000000",
				Shape:    circle,
			},
			BodyConfig{
				Name:     ball,
				Mass:     mass,
				Position: Vec{x, y},
				Hue:      &hue,
				Shape:    circle,
			},
		)
		c.Forces = append(c.Forces,
			ForceConfig{Kind: "spring", Bodies: []string{ball, anchor}, K: k},
			ForceConfig{Kind: "drag", Bodies: []string{ball}, Gamma: baseGamma + gammaStep*float64(i)},
		)
	}
	return c
}

// Bounce drops n boxes into a walled arena where they bounce off the walls
// and each other. A player box stands on the floor and can jump.
func Bounce(n int, rng *rand.Rand) *Config {
	const (
		width, height = 120.0, 60.0
		wall          = 4.0
		size          = 4.0
		gravity       = -20.0
	)
	c := &Config{
		Name:  "bounce",
		World: WorldConfig{Width: width, Height: height},
	}
	inf := Mass(math.Inf(1))
	walls := []BodyConfig{
		{Name: "floor", Position: Vec{width / 2, wall / 2}, Shape: ShapeConfig{Kind: "box", Width: width, Height: wall}},
		{Name: "ceiling", Position: Vec{width / 2, height - wall/2}, Shape: ShapeConfig{Kind: "box", Width: width, Height: wall}},
		{Name: "left", Position: Vec{wall / 2, height / 2}, Shape: ShapeConfig{Kind: "box", Width: wall, Height: height}},
		{Name: "right", Position: Vec{width - wall/2, height / 2}, Shape: ShapeConfig{Kind: "box", Width: wall, Height: height}},
	}
	for i := range walls {
		walls[i].Mass = inf
		walls[i].Color = "#c0c0c0"
	}
	c.Bodies = append(c.Bodies, walls...)

	c.Bodies = append(c.Bodies, BodyConfig{
		Name:     "player",
		Mass:     2,
		Position: Vec{width / 2, wall + size/2},
		Color:    "#ffff00",
		Shape:    ShapeConfig{Kind: "box", Width: size, Height: size},
	})
	c.Forces = append(c.Forces,
		ForceConfig{Kind: "weight", Bodies: []string{"player"}, Accel: Vec{0, gravity}},
		ForceConfig{Kind: "normal", Bodies: []string{"player", "floor"}},
		ForceConfig{Kind: "jump", Bodies: []string{"player", "floor"}, Speed: 25},
	)

	group := []string{"floor", "ceiling", "left", "right"}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("box%d", i)
		hue := float64(i) * 360 / float64(n)
		c.Bodies = append(c.Bodies, BodyConfig{
			Name:     name,
			Mass:     1,
			Position: Vec{wall + size + float64(i)*(width-2*wall-2*size)/float64(n), height * 0.6},
			Velocity: Vec{rng.Float64()*40 - 20, rng.Float64()*40 - 20},
			Rotation: rng.Float64() * 90,
			Hue:      &hue,
			Shape:    ShapeConfig{Kind: "box", Width: size, Height: size},
		})
		group = append(group, name)
	}
	c.Forces = append(c.Forces, ForceConfig{Kind: "group", Bodies: group, Elasticity: 1})
	return c
}
