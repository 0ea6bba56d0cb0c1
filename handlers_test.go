package physics2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollision_RisingEdge(t *testing.T) {
	scene := NewScene()
	a := scene.AddBody(bodyAt(1, Vector{-5, 0}))
	b := scene.AddBody(bodyAt(1, Vector{0, 0}))

	var calls int
	var axis Vector
	scene.AddForceCreator(NewCollision(a, b, func(x, y *Body, n Vector) {
		assert.Same(t, a, x)
		assert.Same(t, b, y)
		axis = n
		calls++
	}, nil))

	scene.Tick(0.1)
	assert.Equal(t, 0, calls)

	a.SetCentroid(Vector{-1.5, 0})
	scene.Tick(0.1)
	assert.Equal(t, 1, calls)
	assert.InDelta(t, 1, math.Abs(axis.X), 1e-12)

	// still touching
	scene.Tick(0.1)
	scene.Tick(0.1)
	assert.Equal(t, 1, calls)

	a.SetCentroid(Vector{-5, 0})
	scene.Tick(0.1)
	assert.Equal(t, 1, calls)

	// re-armed by the separation
	a.SetCentroid(Vector{-1.5, 0})
	scene.Tick(0.1)
	assert.Equal(t, 2, calls)
}

func TestCollision_FiresWhenAddedInContact(t *testing.T) {
	scene := NewScene()
	a := scene.AddBody(bodyAt(1, Vector{0, 0}))
	b := scene.AddBody(bodyAt(1, Vector{1, 0}))

	var calls int
	handler := func(*Body, *Body, Vector) { calls++ }
	scene.AddForceCreator(NewCollision(a, b, handler, nil))
	scene.Tick(0.1)
	assert.Equal(t, 1, calls)

	// a second registration has its own edge
	scene.AddForceCreator(NewCollision(a, b, handler, nil))
	scene.Tick(0.1)
	assert.Equal(t, 2, calls)
	scene.Tick(0.1)
	assert.Equal(t, 2, calls)
}

func TestDestructiveCollision(t *testing.T) {
	var events []string
	free := func(info any) { events = append(events, "free "+info.(string)) }

	scene := NewScene()
	a := scene.AddBody(NewBodyWithInfo(squareAt(0, 0), 1, Black, "a", free))
	b := scene.AddBody(NewBodyWithInfo(squareAt(1, 0), 1, Black, "b", free))
	c := scene.AddBody(NewBodyWithInfo(squareAt(20, 0), 1, Black, "c", free))

	scene.AddForceCreator(NewDestructiveCollision(a, b))
	scene.AddForce(func() {}, func() { events = append(events, "dispose a-c") }, a, c)
	scene.AddForce(func() {}, func() { events = append(events, "dispose c") }, c)
	scene.AddForceCreator(NewDrag(0.5, b))

	scene.Tick(0.1)

	require.Equal(t, 1, scene.BodyCount())
	assert.Same(t, c, scene.Body(0))
	assert.Equal(t, 1, scene.ForceCreatorCount())
	assert.Equal(t, []string{"dispose a-c", "free a", "free b"}, events)

	scene.Free()
	assert.Equal(t, []string{"dispose a-c", "free a", "free b", "dispose c", "free c"}, events)
}

func TestElasticCollision(t *testing.T) {
	scene := NewScene()
	a := scene.AddBody(bodyAt(1, Vector{0, 0}))
	b := scene.AddBody(bodyAt(1, Vector{1.5, 0}))
	a.SetVelocity(Vector{1, 0})
	b.SetVelocity(Vector{-1, 0})
	before := a.KineticEnergy() + b.KineticEnergy()

	scene.AddForceCreator(NewElasticCollision(1, a, b))
	scene.Tick(1e-3)

	assert.InDelta(t, -1, a.Velocity().X, 1e-12)
	assert.InDelta(t, 1, b.Velocity().X, 1e-12)
	assert.InDelta(t, before, a.KineticEnergy()+b.KineticEnergy(), 1e-12)
}

func TestElasticCollision_Inelastic(t *testing.T) {
	a := bodyAt(2, Vector{0, 0})
	b := bodyAt(2, Vector{1.5, 0})
	a.SetVelocity(Vector{3, 0})

	Bounce(0)(a, b, Vector{1, 0})
	a.Tick(0)
	b.Tick(0)

	assert.InDelta(t, 1.5, a.Velocity().X, 1e-12)
	assert.InDelta(t, 1.5, b.Velocity().X, 1e-12)
}

func TestElasticCollision_Wall(t *testing.T) {
	scene := NewScene()
	ball := scene.AddBody(bodyAt(3, Vector{0, 0}))
	wall := scene.AddBody(NewBody(squareAt(1.5, 0), INFINITY, Black))
	ball.SetVelocity(Vector{2, 1})

	scene.AddForceCreator(NewElasticCollision(1, ball, wall))
	scene.Tick(1e-3)

	assert.InDelta(t, -2, ball.Velocity().X, 1e-12)
	assert.InDelta(t, 1, ball.Velocity().Y, 1e-12)
	assert.Equal(t, Vector{}, wall.Velocity())
	assert.Equal(t, Vector{1.5, 0}, wall.Centroid())
}

func TestElasticCollision_BothInfinite(t *testing.T) {
	a := NewBody(squareAt(0, 0), INFINITY, Black)
	b := NewBody(squareAt(1, 0), INFINITY, Black)
	Bounce(1)(a, b, Vector{1, 0})
	a.Tick(1)
	b.Tick(1)

	assert.Equal(t, Vector{}, a.Velocity())
	assert.Equal(t, Vector{}, b.Velocity())
}

func TestSuppressed(t *testing.T) {
	scene := NewScene()
	a := scene.AddBody(bodyAt(1, Vector{0, 0}))
	b := scene.AddBody(bodyAt(1, Vector{1.5, 0}))
	a.SetVelocity(Vector{1, 0})

	teleporting := true
	scene.AddForceCreator(NewCollision(a, b, Suppressed(Bounce(1), func() bool { return teleporting }), nil))
	scene.Tick(1e-3)
	assert.Equal(t, Vector{1, 0}, a.Velocity())

	// the contact was consumed while suppressed
	teleporting = false
	scene.Tick(1e-3)
	assert.Equal(t, Vector{1, 0}, a.Velocity())
}

func TestNormalForce(t *testing.T) {
	scene := NewScene()
	box := scene.AddBody(bodyAt(2, Vector{0, 1.9}))
	ground := scene.AddBody(NewBody(square(), INFINITY, Black))

	scene.AddForce(func() { box.AddForce(Vector{1, -10}) }, nil, box)
	normal := NewNormalForce(box, ground)
	scene.AddForceCreator(normal)

	for i := 0; i < 10; i++ {
		scene.Tick(0.01)
	}
	assert.InDelta(t, 0, box.Velocity().Y, 1e-12)
	assert.InDelta(t, 1.9, box.Centroid().Y, 1e-12)
	// sideways force is not cancelled
	assert.InDelta(t, 0.05, box.Velocity().X, 1e-12)

	suppressed := true
	normal.Suppress = func() bool { return suppressed }
	scene.Tick(0.01)
	assert.Less(t, box.Velocity().Y, 0.0)
}

func TestNormalForce_PushesBothWays(t *testing.T) {
	scene := NewScene()
	a := scene.AddBody(bodyAt(1, Vector{0, 0}))
	b := scene.AddBody(bodyAt(1, Vector{1.5, 0}))
	a.AddForce(Vector{4, 0})
	b.AddForce(Vector{-3, 0})

	NewNormalForce(a, b).Apply(scene)

	assert.InDelta(t, 0, a.Force().X, 1e-12)
	assert.InDelta(t, 0, b.Force().X, 1e-12)
}

func TestJump(t *testing.T) {
	scene := NewScene()
	player := scene.AddBody(bodyAt(1, Vector{0, 1.9}))
	ground := scene.AddBody(NewBody(square(), INFINITY, Black))
	player.SetVelocity(Vector{2, 0})

	jump := NewJump(7, player, ground)
	scene.AddForceCreator(jump)

	scene.Tick(0)
	assert.Equal(t, Vector{2, 0}, player.Velocity())

	jump.Request()
	require.True(t, jump.Pending())
	scene.Tick(0)
	assert.Equal(t, Vector{2, 7}, player.Velocity())
	assert.False(t, jump.Pending())

	// one jump per request
	player.SetVelocity(Vector{})
	scene.Tick(0)
	assert.Equal(t, Vector{}, player.Velocity())
}

func TestJump_NeedsGroundBelow(t *testing.T) {
	scene := NewScene()
	player := scene.AddBody(bodyAt(1, Vector{0, -1.9}))
	ground := scene.AddBody(NewBody(square(), INFINITY, Black))
	jump := NewJump(7, player, ground)
	scene.AddForceCreator(jump)

	jump.Request()
	scene.Tick(0)
	assert.Equal(t, Vector{}, player.Velocity())
	assert.True(t, jump.Pending())

	// in the air
	player.SetCentroid(Vector{0, 5})
	scene.Tick(0)
	assert.True(t, jump.Pending())

	// landing fulfils the pending request
	player.SetCentroid(Vector{0, 1.9})
	scene.Tick(0)
	assert.Equal(t, Vector{0, 7}, player.Velocity())
	assert.False(t, jump.Pending())
}

func TestCollisionGroup(t *testing.T) {
	scene := NewScene(WithCellSize(4))
	a := scene.AddBody(bodyAt(1, Vector{0, 0}))
	b := scene.AddBody(bodyAt(1, Vector{1.5, 0}))
	c := scene.AddBody(bodyAt(1, Vector{40, 0}))
	a.SetVelocity(Vector{1, 0})
	b.SetVelocity(Vector{-1, 0})
	c.SetVelocity(Vector{0, 1})

	group := NewCollisionGroup(1, a, b, c)
	scene.AddForceCreator(group)
	scene.Tick(1e-3)

	assert.InDelta(t, -1, a.Velocity().X, 1e-12)
	assert.InDelta(t, 1, b.Velocity().X, 1e-12)
	assert.Equal(t, Vector{0, 1}, c.Velocity())

	// still overlapping: no second bounce
	scene.Tick(1e-3)
	assert.InDelta(t, -1, a.Velocity().X, 1e-12)

	c.Remove()
	scene.Tick(1e-3)
	assert.Equal(t, 2, group.Len())
	assert.Equal(t, 1, scene.ForceCreatorCount())
	assert.Equal(t, 2, scene.BodyCount())
}

func TestCollisionGroup_Rearms(t *testing.T) {
	scene := NewScene()
	a := scene.AddBody(bodyAt(1, Vector{0, 0}))
	b := scene.AddBody(bodyAt(1, Vector{1.5, 0}))
	group := NewCollisionGroup(1)
	group.Add(a)
	group.Add(b)
	scene.AddForceCreator(group)

	a.SetVelocity(Vector{1, 0})
	scene.Tick(0)
	assert.InDelta(t, 0, a.Velocity().X, 1e-12)
	assert.InDelta(t, 1, b.Velocity().X, 1e-12)

	b.SetCentroid(Vector{10, 0})
	scene.Tick(0)
	b.SetCentroid(Vector{1.5, 0})
	b.SetVelocity(Vector{-1, 0})
	scene.Tick(0)
	assert.InDelta(t, -1, a.Velocity().X, 1e-12)
	assert.InDelta(t, 0, b.Velocity().X, 1e-12)
}

func TestCollisionGroup_HugeBody(t *testing.T) {
	scene := NewScene()
	floor := scene.AddBody(NewBody(Rect(1e20, 2), INFINITY, Black))
	floor.SetCentroid(Vector{0, -2})
	ball := scene.AddBody(bodyAt(1, Vector{0, -0.5}))
	ball.SetVelocity(Vector{0, -2})
	scene.AddForceCreator(NewCollisionGroup(1, floor, ball))

	scene.Tick(0)
	assert.InDelta(t, 2, ball.Velocity().Y, 1e-9)
	assert.InDelta(t, 0, ball.Velocity().X, 1e-9)
	assert.Equal(t, Vector{}, floor.Velocity())
}
