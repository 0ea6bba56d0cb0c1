package physics2d

import "math"

// CollisionHandler is called with the collision axis as computed by
// FindCollision for the pair. The axis is not oriented.
type CollisionHandler func(a, b *Body, axis Vector)

// Collision calls its handler on the tick a pair of bodies starts touching.
// It does not fire again until the bodies have separated for at least one
// tick.
type Collision struct {
	twoBody
	Handler CollisionHandler
	dispose func()
	// episode the handler last fired for
	episode uint64
}

// NewCollision returns a force creator calling handler on each new contact
// between a and b. dispose, if not nil, is called when the creator is
// dropped.
func NewCollision(a, b *Body, handler CollisionHandler, dispose func()) *Collision {
	check(handler != nil, "Collision needs a handler")
	return &Collision{
		twoBody: twoBody{a, b},
		Handler: handler,
		dispose: dispose,
	}
}

func (c *Collision) Apply(scene *Scene) {
	contact := scene.contact(c.a, c.b)
	if contact.State != ContactTouching || contact.Episode == c.episode {
		return
	}
	c.episode = contact.Episode
	c.Handler(c.a, c.b, contact.Info.Axis)
}

func (c *Collision) Dispose() {
	if c.dispose != nil {
		c.dispose()
	}
}

// DestroyBoth removes both bodies of a collision from their scene.
func DestroyBoth(a, b *Body, _ Vector) {
	a.Remove()
	b.Remove()
}

// NewDestructiveCollision removes both a and b once they touch.
func NewDestructiveCollision(a, b *Body) *Collision {
	return NewCollision(a, b, DestroyBoth, nil)
}

// Suppressed wraps handler so that it is skipped while suppress reports
// true. A suppressed contact still counts as handled.
func Suppressed(handler CollisionHandler, suppress func() bool) CollisionHandler {
	return func(a, b *Body, axis Vector) {
		if suppress() {
			return
		}
		handler(a, b, axis)
	}
}

// Bounce returns a handler applying equal and opposite impulses along the
// collision axis. An elasticity of 1 conserves kinetic energy, 0 leaves the
// bodies with no relative speed along the axis.
func Bounce(elasticity float64) CollisionHandler {
	return func(a, b *Body, axis Vector) {
		applyBounce(elasticity, a, b, axis)
	}
}

func reducedMass(a, b *Body) float64 {
	switch {
	case a.IsInfiniteMass():
		return b.Mass()
	case b.IsInfiniteMass():
		return a.Mass()
	default:
		return a.Mass() * b.Mass() / (a.Mass() + b.Mass())
	}
}

func applyBounce(elasticity float64, a, b *Body, axis Vector) {
	if a.IsInfiniteMass() && b.IsInfiniteMass() {
		return
	}
	u1 := a.Velocity().Dot(axis)
	u2 := b.Velocity().Dot(axis)
	if u1 == u2 {
		return
	}

	j := reducedMass(a, b) * (1 + elasticity) * (u2 - u1)
	impulse := axis.Mult(j)
	a.AddImpulse(impulse)
	b.AddImpulse(impulse.Neg())
}

// NewElasticCollision bounces a and b off each other once they touch.
func NewElasticCollision(elasticity float64, a, b *Body) *Collision {
	return NewCollision(a, b, Bounce(elasticity), nil)
}

// NormalForce cancels the components of each body's pending force that push
// into the other body, for every tick the pair is in contact. It has to be
// added after the force creators it is meant to counter.
type NormalForce struct {
	twoBody
	// Suppress, if set, disables the force while it reports true.
	Suppress func() bool
}

func NewNormalForce(a, b *Body) *NormalForce {
	return &NormalForce{twoBody: twoBody{a, b}}
}

func (n *NormalForce) Apply(scene *Scene) {
	if n.Suppress != nil && n.Suppress() {
		return
	}
	info := scene.Collide(n.a, n.b)
	if !info.Collided {
		return
	}

	// axis points from a to b
	axis := info.Oriented(n.a.Centroid(), n.b.Centroid())
	pushA := math.Max(0, n.a.Force().Dot(axis))
	pushB := math.Max(0, n.b.Force().Dot(axis.Neg()))

	n.a.AddForce(axis.Neg().Mult(pushA))
	n.b.AddForce(axis.Mult(pushB))
}

// Jump sets the jumper's vertical speed when a jump was requested and the
// jumper is standing on ground.
type Jump struct {
	twoBody
	Speed     float64
	requested bool
}

func NewJump(speed float64, jumper, ground *Body) *Jump {
	return &Jump{twoBody: twoBody{jumper, ground}, Speed: speed}
}

// Request asks for a jump. The request stays pending until the jump happens.
func (j *Jump) Request() {
	j.requested = true
}

func (j *Jump) Pending() bool {
	return j.requested
}

func (j *Jump) Apply(scene *Scene) {
	if !j.requested {
		return
	}
	jumper, ground := j.a, j.b
	if jumper.Centroid().Y < ground.Centroid().Y {
		return
	}
	if !scene.Collide(jumper, ground).Collided {
		return
	}
	jumper.SetVelocity(Vector{jumper.Velocity().X, j.Speed})
	j.requested = false
}

// CollisionGroup bounces every pair of its members off each other, finding
// candidate pairs through the scene's spatial hash. Removed members leave
// the group instead of disposing it.
type CollisionGroup struct {
	Elasticity float64

	members  []*Body
	episodes map[contactKey]uint64
}

func NewCollisionGroup(elasticity float64, bodies ...*Body) *CollisionGroup {
	return &CollisionGroup{
		Elasticity: elasticity,
		members:    append([]*Body(nil), bodies...),
		episodes:   map[contactKey]uint64{},
	}
}

func (g *CollisionGroup) Add(body *Body) {
	g.members = append(g.members, body)
}

func (g *CollisionGroup) Len() int {
	return len(g.members)
}

// Bodies is empty: the group outlives any of its members.
func (g *CollisionGroup) Bodies() []*Body {
	return nil
}

func (g *CollisionGroup) Dispose() {
	g.members = nil
	clear(g.episodes)
}

func (g *CollisionGroup) Apply(scene *Scene) {
	g.prune()

	index := make(map[*Body]int, len(g.members))
	for i, body := range g.members {
		index[body] = i
	}

	seen := make(map[contactKey]struct{}, len(g.episodes))
	for i, a := range g.members {
		scene.Query(a.BB(), func(b *Body) {
			if j, ok := index[b]; !ok || j <= i {
				return
			}
			key := contactKey{a, b}
			contact := scene.contact(a, b)
			if contact.State != ContactTouching {
				return
			}
			seen[key] = struct{}{}
			if g.episodes[key] == contact.Episode {
				return
			}
			g.episodes[key] = contact.Episode
			applyBounce(g.Elasticity, a, b, contact.Info.Axis)
		})
	}

	for key := range g.episodes {
		if _, ok := seen[key]; !ok {
			delete(g.episodes, key)
		}
	}
}

func (g *CollisionGroup) prune() {
	kept := g.members[:0]
	for _, body := range g.members {
		if !body.IsRemoved() {
			kept = append(kept, body)
		}
	}
	clear(g.members[len(kept):])
	g.members = kept
}
