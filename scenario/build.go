package scenario

import (
	"errors"
	"fmt"
	"math"

	"github.com/majeika/physics2d"
)

var (
	ErrUnknownBody  = errors.New("unknown body")
	ErrUnknownShape = errors.New("unknown shape")
	ErrUnknownForce = errors.New("unknown force")
	ErrInvalidShape = errors.New("invalid shape")
	ErrInvalidMass  = errors.New("mass must be positive or inf")
	ErrDuplicate    = errors.New("duplicate body name")
	ErrBodyCount    = errors.New("wrong number of bodies")
)

// DefaultCircleSides is the vertex count of a circle without explicit sides.
const DefaultCircleSides = 36

// World is a scene built from a Config.
type World struct {
	Scene  *physics2d.Scene
	Bodies map[string]*physics2d.Body
	// jump creators by jumper name
	Jumps map[string]*physics2d.Jump
	// visible region
	Bounds physics2d.BB
}

// Build creates a scene holding the configured bodies and force creators.
// Nothing is created if the config is invalid.
func (c *Config) Build(opts ...physics2d.Option) (*World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	scene := physics2d.NewScene(opts...)
	world := &World{
		Scene:  scene,
		Bodies: make(map[string]*physics2d.Body, len(c.Bodies)),
		Jumps:  map[string]*physics2d.Jump{},
	}

	for _, bc := range c.Bodies {
		body, err := bc.build()
		if err != nil {
			scene.Free()
			return nil, fmt.Errorf("body %q: %w", bc.Name, err)
		}
		world.Bodies[bc.Name] = scene.AddBody(body)
	}

	for _, fc := range c.Forces {
		bodies := make([]*physics2d.Body, len(fc.Bodies))
		for i, name := range fc.Bodies {
			bodies[i] = world.Bodies[name]
		}
		creator := fc.build(bodies)
		scene.AddForceCreator(creator)
		if jump, ok := creator.(*physics2d.Jump); ok {
			world.Jumps[fc.Bodies[0]] = jump
		}
	}

	world.Bounds = c.bounds(scene)
	return world, nil
}

// Validate checks body names, shapes, masses and force references without
// building anything.
func (c *Config) Validate() error {
	names := make(map[string]struct{}, len(c.Bodies))
	for i, bc := range c.Bodies {
		if bc.Name == "" {
			return fmt.Errorf("body %d: missing name", i)
		}
		if _, ok := names[bc.Name]; ok {
			return fmt.Errorf("body %q: %w", bc.Name, ErrDuplicate)
		}
		names[bc.Name] = struct{}{}

		if !(bc.Mass > 0) {
			return fmt.Errorf("body %q: %w", bc.Name, ErrInvalidMass)
		}
		if _, err := bc.Shape.polygon(); err != nil {
			return fmt.Errorf("body %q: %w", bc.Name, err)
		}
		if bc.Color != "" {
			if _, err := physics2d.ParseHexColor(bc.Color); err != nil {
				return fmt.Errorf("body %q: %w", bc.Name, err)
			}
		}
	}

	for i, fc := range c.Forces {
		want, ok := forceArity[fc.Kind]
		if !ok {
			return fmt.Errorf("force %d: %w: %q", i, ErrUnknownForce, fc.Kind)
		}
		if (want >= 0 && len(fc.Bodies) != want) || (want < 0 && len(fc.Bodies) == 0) {
			return fmt.Errorf("force %d (%s): %w: got %d", i, fc.Kind, ErrBodyCount, len(fc.Bodies))
		}
		for _, name := range fc.Bodies {
			if _, ok := names[name]; !ok {
				return fmt.Errorf("force %d (%s): %w: %q", i, fc.Kind, ErrUnknownBody, name)
			}
		}
	}
	return nil
}

// number of bodies each force kind takes, -1 for one or more
var forceArity = map[string]int{
	"gravity":     2,
	"spring":      2,
	"drag":        1,
	"weight":      -1,
	"destructive": 2,
	"elastic":     2,
	"normal":      2,
	"jump":        2,
	"group":       -1,
}

func (fc ForceConfig) build(bodies []*physics2d.Body) physics2d.ForceCreator {
	switch fc.Kind {
	case "gravity":
		return physics2d.NewGravity(fc.G, bodies[0], bodies[1])
	case "spring":
		return physics2d.NewSpring(fc.K, bodies[0], bodies[1])
	case "drag":
		return physics2d.NewDrag(fc.Gamma, bodies[0])
	case "weight":
		return weight(physics2d.Vector{X: fc.Accel[0], Y: fc.Accel[1]}, bodies)
	case "destructive":
		return physics2d.NewDestructiveCollision(bodies[0], bodies[1])
	case "elastic":
		return physics2d.NewElasticCollision(fc.Elasticity, bodies[0], bodies[1])
	case "normal":
		return physics2d.NewNormalForce(bodies[0], bodies[1])
	case "jump":
		return physics2d.NewJump(fc.Speed, bodies[0], bodies[1])
	case "group":
		return physics2d.NewCollisionGroup(fc.Elasticity, bodies...)
	}
	panic("unreachable: force kinds are validated")
}

// weight applies a uniform acceleration to every finite-mass body.
func weight(accel physics2d.Vector, bodies []*physics2d.Body) physics2d.ForceCreator {
	return physics2d.NewForceFunc(func() {
		for _, body := range bodies {
			if !body.IsInfiniteMass() {
				body.AddForce(accel.Mult(body.Mass()))
			}
		}
	}, nil, bodies...)
}

func (bc BodyConfig) build() (*physics2d.Body, error) {
	shape, err := bc.Shape.polygon()
	if err != nil {
		return nil, err
	}
	color, err := bc.color()
	if err != nil {
		return nil, err
	}

	body := physics2d.NewBodyWithInfo(shape, float64(bc.Mass), color, bc.Name, nil)
	body.SetCentroid(physics2d.Vector{X: bc.Position[0], Y: bc.Position[1]})
	body.SetVelocity(physics2d.Vector{X: bc.Velocity[0], Y: bc.Velocity[1]})
	if bc.Rotation != 0 {
		body.SetAngle(bc.Rotation * math.Pi / 180)
	}
	return body, nil
}

func (bc BodyConfig) color() (physics2d.Color, error) {
	switch {
	case bc.Color != "":
		return physics2d.ParseHexColor(bc.Color)
	case bc.Hue != nil:
		return physics2d.HSV(math.Mod(*bc.Hue, 360), 1, 1), nil
	default:
		return physics2d.White, nil
	}
}

func (sc ShapeConfig) polygon() (physics2d.Polygon, error) {
	switch sc.Kind {
	case "rect":
		if sc.Width <= 0 || sc.Height <= 0 {
			return nil, fmt.Errorf("%w: rect needs a positive width and height", ErrInvalidShape)
		}
		return physics2d.Rect(sc.Width, sc.Height), nil
	case "box":
		if sc.Width <= 0 || sc.Height <= 0 {
			return nil, fmt.Errorf("%w: box needs a positive width and height", ErrInvalidShape)
		}
		return physics2d.Box(sc.Width/2, sc.Height/2), nil
	case "circle":
		sides := sc.Sides
		if sides == 0 {
			sides = DefaultCircleSides
		}
		if sc.Radius <= 0 || sides < 3 {
			return nil, fmt.Errorf("%w: circle needs a positive radius and at least 3 sides", ErrInvalidShape)
		}
		return physics2d.RegularPolygon(sc.Radius, sides), nil
	case "star":
		if sc.Points < 2 || sc.Radius <= 0 || sc.Inner <= 0 {
			return nil, fmt.Errorf("%w: star needs 2 or more points and positive radii", ErrInvalidShape)
		}
		return physics2d.Star(sc.Points, sc.Radius, sc.Inner), nil
	case "polygon":
		if len(sc.Vertices) < 3 {
			return nil, fmt.Errorf("%w: polygon needs at least 3 vertices", ErrInvalidShape)
		}
		shape := make(physics2d.Polygon, len(sc.Vertices))
		for i, v := range sc.Vertices {
			shape[i] = physics2d.Vector{X: v[0], Y: v[1]}
		}
		if shape.Area() == 0 {
			return nil, fmt.Errorf("%w: polygon has no area", ErrInvalidShape)
		}
		return shape, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, sc.Kind)
}

func (c *Config) bounds(scene *physics2d.Scene) physics2d.BB {
	if c.World.Width > 0 && c.World.Height > 0 {
		return physics2d.NewBB(0, 0, c.World.Width, c.World.Height)
	}
	bb := physics2d.EmptyBB()
	scene.EachBody(func(body *physics2d.Body) {
		bb = bb.Merge(body.BB())
	})
	if scene.BodyCount() == 0 {
		return physics2d.NewBB(0, 0, 1, 1)
	}
	return bb
}
