package physics2d

import (
	"fmt"
	"math"
	"sync/atomic"
)

// InfoFreeFunc releases a body's payload when the body is freed.
type InfoFreeFunc func(info any)

type Body struct {
	id int64

	// shape relative to its own centroid, never mutated after creation
	local Polygon
	// world space vertices derived from transform, rebuilt lazily
	world      Polygon
	worldStale bool
	bb         BB
	transform  Transform
	// bumped on every change to position or rotation
	version uint64

	// mass and it's inverse
	m     float64
	m_inv float64

	// centroid, velocity, pending force and impulse
	p Vector
	v Vector
	f Vector
	j Vector

	// cumulative rotation (radians)
	a float64

	color   Color
	visible bool
	image   any
	text    any

	info     any
	infoFree InfoFreeFunc

	removed bool
	freed   bool
}

func (b *Body) String() string {
	return fmt.Sprint("Body ", b.id)
}

var bodyCur atomic.Int64

// NewBody creates a body that takes ownership of shape. Mass must be positive
// or INFINITY.
func NewBody(shape Polygon, mass float64, color Color) *Body {
	return NewBodyWithInfo(shape, mass, color, nil, nil)
}

// NewBodyWithInfo creates a body carrying an opaque payload. free, if not
// nil, is called with info when the body is freed.
func NewBodyWithInfo(shape Polygon, mass float64, color Color, info any, free InfoFreeFunc) *Body {
	check(len(shape) >= 3, "Body shape needs at least 3 vertices")
	check(mass > 0, "Body mass must be positive or INFINITY")

	centroid := shape.Centroid()
	shape.Translate(centroid.Neg())

	body := &Body{
		id:         bodyCur.Add(1),
		local:      shape,
		world:      make(Polygon, len(shape)),
		worldStale: true,
		p:          centroid,
		color:      color,
		visible:    true,
		info:       info,
		infoFree:   free,
	}
	body.SetMass(mass)
	return body
}

func (body *Body) ID() int64 {
	return body.id
}

func (body *Body) Mass() float64 {
	return body.m
}

func (body *Body) SetMass(mass float64) {
	check(mass > 0, "Body mass must be positive or INFINITY")
	body.m = mass
	if math.IsInf(mass, 1) {
		body.m_inv = 0
	} else {
		body.m_inv = 1 / mass
	}
}

func (body *Body) IsInfiniteMass() bool {
	return body.m_inv == 0
}

func (body *Body) Centroid() Vector {
	return body.p
}

// SetCentroid moves the body so that its centroid is exactly x.
func (body *Body) SetCentroid(x Vector) {
	body.p = x
	body.touch()
}

func (body *Body) Velocity() Vector {
	return body.v
}

func (body *Body) SetVelocity(v Vector) {
	body.v = v
}

func (body *Body) Force() Vector {
	return body.f
}

func (body *Body) Impulse() Vector {
	return body.j
}

// Rotation returns the sum of every rotation applied to the body.
func (body *Body) Rotation() float64 {
	return body.a
}

// RotateAround rotates the body by angle radians about pivot. The rotation
// is relative: it is added to the accumulated rotation.
func (body *Body) RotateAround(angle float64, pivot Vector) {
	body.a += angle
	body.p = pivot.Add(body.p.Sub(pivot).RotateAngle(angle))
	body.touch()
}

// Rotate rotates the body by angle radians about its own centroid.
func (body *Body) Rotate(angle float64) {
	body.RotateAround(angle, body.p)
}

// SetAngle sets the absolute orientation of the body relative to the shape it
// was created with.
func (body *Body) SetAngle(angle float64) {
	body.a = angle
	body.touch()
}

func (body *Body) AddForce(force Vector) {
	body.f = body.f.Add(force)
}

func (body *Body) AddImpulse(impulse Vector) {
	body.j = body.j.Add(impulse)
}

// Tick advances the body by dt. Velocity takes an explicit Euler step from
// the accumulated force, the accumulated impulse is folded in as an
// instantaneous velocity change, and the centroid moves by the average of the
// old and new velocities. Both accumulators are cleared afterwards.
func (body *Body) Tick(dt float64) {
	acceleration := body.f.Mult(body.m_inv)
	newVel := body.v.Add(acceleration.Mult(dt))
	newVel = newVel.Add(body.j.Mult(body.m_inv))
	avgVel := newVel.Add(body.v).Mult(0.5)

	newCentroid := body.p.Add(avgVel.Mult(dt))

	body.SetCentroid(newCentroid)
	body.SetVelocity(newVel)

	body.f = Vector{}
	body.j = Vector{}
}

// Shape returns a copy of the body's vertices in world coordinates.
func (body *Body) Shape() Polygon {
	return body.worldShape().Clone()
}

// BB returns the world space bounding box of the body.
func (body *Body) BB() BB {
	body.worldShape()
	return body.bb
}

func (body *Body) worldShape() Polygon {
	if body.worldStale {
		body.transform = NewTransformRigid(body.p, body.a)
		body.transform.Apply(body.world, body.local)
		body.bb = body.world.BB()
		body.worldStale = false
	}
	return body.world
}

func (body *Body) touch() {
	body.version++
	body.worldStale = true
}

// KineticEnergy returns ½mv². Bodies with infinite mass report 0.
func (body *Body) KineticEnergy() float64 {
	if body.IsInfiniteMass() {
		return 0
	}
	return body.m * body.v.Dot(body.v) / 2
}

func (body *Body) Color() Color {
	return body.color
}

func (body *Body) SetColor(c Color) {
	body.color = c
}

func (body *Body) IsVisible() bool {
	return body.visible
}

func (body *Body) SetVisible(visible bool) {
	body.visible = visible
}

// Image returns the renderer-owned image handle, if any.
func (body *Body) Image() any {
	return body.image
}

func (body *Body) SetImage(image any) {
	body.image = image
}

// Text returns the renderer-owned text handle, if any.
func (body *Body) Text() any {
	return body.text
}

func (body *Body) SetText(text any) {
	body.text = text
}

func (body *Body) Info() any {
	return body.info
}

// Remove marks the body for deletion on the next scene tick.
func (body *Body) Remove() {
	body.removed = true
}

func (body *Body) IsRemoved() bool {
	return body.removed
}

// Free releases the body's payload. Bodies owned by a Scene are freed by it.
func (body *Body) Free() {
	if body.freed {
		return
	}
	body.freed = true
	if body.infoFree != nil && body.info != nil {
		body.infoFree(body.info)
	}
	body.info = nil
}
