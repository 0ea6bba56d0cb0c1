package physics2d

import "math"

const (
	// MinGravityDistance is the centroid separation below which gravity is
	// not applied.
	MinGravityDistance = 5.0
	// GravityNoiseFloor is the magnitude below which a gravity force
	// component is snapped to zero.
	GravityNoiseFloor = 1e-9
)

// Gravity applies Newtonian attraction between two bodies.
type Gravity struct {
	twoBody
	G float64
}

func NewGravity(G float64, a, b *Body) *Gravity {
	return &Gravity{twoBody: twoBody{a, b}, G: G}
}

func (g *Gravity) Apply(*Scene) {
	a, b := g.a, g.b
	displacement := b.Centroid().Sub(a.Centroid())
	distance := displacement.Length()
	if distance < MinGravityDistance {
		return
	}

	unit := displacement.Mult(1 / distance)
	magnitude := g.G * a.Mass() * b.Mass() / (distance * distance)
	force := unit.Mult(magnitude)

	if math.Abs(force.X) < GravityNoiseFloor {
		force.X = 0
	}
	if math.Abs(force.Y) < GravityNoiseFloor {
		force.Y = 0
	}

	a.AddForce(force)
	b.AddForce(force.Neg())
}

// Spring pulls two bodies together with a Hooke's law force. It has no rest
// length: equilibrium is reached when the centroids coincide.
type Spring struct {
	twoBody
	K float64
}

func NewSpring(k float64, a, b *Body) *Spring {
	return &Spring{twoBody: twoBody{a, b}, K: k}
}

func (s *Spring) Apply(*Scene) {
	force := s.b.Centroid().Sub(s.a.Centroid()).Mult(s.K)
	s.a.AddForce(force)
	s.b.AddForce(force.Neg())
}

// Drag opposes a body's velocity in proportion to it.
type Drag struct {
	body  *Body
	Gamma float64
}

func NewDrag(gamma float64, body *Body) *Drag {
	return &Drag{body: body, Gamma: gamma}
}

func (d *Drag) Apply(*Scene) {
	d.body.AddForce(d.body.Velocity().Mult(-d.Gamma))
}

func (d *Drag) Bodies() []*Body {
	return []*Body{d.body}
}

func (d *Drag) Dispose() {}
