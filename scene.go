package physics2d

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCellSize is the spatial hash cell size of a new scene.
const DefaultCellSize = 50.0

// Scene owns a list of bodies and the force creators acting on them. It is
// not safe for concurrent use.
type Scene struct {
	id  uuid.UUID
	log *zap.Logger

	bodies []*Body
	forces []ForceCreator

	// tick counter, bumped at the start of every Tick
	stamp uint64

	contacts *contactSet

	hash *SpaceHash
	// stamp and body count the hash was last built for
	hashStamp  uint64
	hashBodies int
	hashBuilt  bool
}

type Option func(*Scene)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(log *zap.Logger) Option {
	return func(scene *Scene) {
		scene.log = log
	}
}

// WithCellSize sets the spatial hash cell size. It should be around the size
// of a typical body.
func WithCellSize(size float64) Option {
	return func(scene *Scene) {
		scene.hash = NewSpaceHash(size, 0)
	}
}

func NewScene(opts ...Option) *Scene {
	scene := &Scene{
		id:       uuid.New(),
		log:      zap.NewNop(),
		contacts: newContactSet(),
		hash:     NewSpaceHash(DefaultCellSize, 0),
	}
	for _, opt := range opts {
		opt(scene)
	}
	scene.log = scene.log.With(zap.Stringer("scene", scene.id))
	return scene
}

func (scene *Scene) ID() uuid.UUID {
	return scene.id
}

// Stamp returns the number of ticks run so far.
func (scene *Scene) Stamp() uint64 {
	return scene.stamp
}

// AddBody adds body to the scene, which takes ownership of it.
func (scene *Scene) AddBody(body *Body) *Body {
	check(body != nil, "Cannot add a nil body")
	scene.bodies = append(scene.bodies, body)
	return body
}

func (scene *Scene) BodyCount() int {
	return len(scene.bodies)
}

func (scene *Scene) Body(index int) *Body {
	check(index >= 0 && index < len(scene.bodies), "Body index out of range: ", index)
	return scene.bodies[index]
}

// RemoveBody marks the body at index for removal on the next tick.
func (scene *Scene) RemoveBody(index int) {
	scene.Body(index).Remove()
}

func (scene *Scene) EachBody(f func(body *Body)) {
	for _, body := range scene.bodies {
		f(body)
	}
}

// AddForceCreator registers fc to run on every tick until one of its bodies
// is removed or the scene is freed.
func (scene *Scene) AddForceCreator(fc ForceCreator) ForceCreator {
	check(fc != nil, "Cannot add a nil force creator")
	scene.forces = append(scene.forces, fc)
	return fc
}

// AddForce registers a closure as a force creator depending on bodies.
func (scene *Scene) AddForce(apply func(), dispose func(), bodies ...*Body) ForceCreator {
	return scene.AddForceCreator(NewForceFunc(apply, dispose, bodies...))
}

func (scene *Scene) ForceCreatorCount() int {
	return len(scene.forces)
}

// Tick runs every force creator, drops removed bodies along with the force
// creators depending on them, then advances each remaining body by dt.
func (scene *Scene) Tick(dt float64) {
	scene.stamp++
	scene.contacts.filter(scene.stamp)

	// creators may add more creators while running
	for i := 0; i < len(scene.forces); i++ {
		scene.forces[i].Apply(scene)
	}

	scene.cleanup()

	for _, body := range scene.bodies {
		body.Tick(dt)
	}
}

func (scene *Scene) cleanup() {
	var removed map[*Body]struct{}
	for _, body := range scene.bodies {
		if body.IsRemoved() {
			if removed == nil {
				removed = map[*Body]struct{}{}
			}
			removed[body] = struct{}{}
		}
	}
	if removed == nil {
		return
	}

	// creators are disposed before any of their bodies are freed
	forces := scene.forces[:0]
	for _, fc := range scene.forces {
		if dependsOn(fc, removed) {
			fc.Dispose()
			scene.log.Debug("force creator disposed", zap.String("creator", fmt.Sprintf("%T", fc)))
			continue
		}
		forces = append(forces, fc)
	}
	clear(scene.forces[len(forces):])
	scene.forces = forces

	bodies := scene.bodies[:0]
	for _, body := range scene.bodies {
		if _, ok := removed[body]; ok {
			scene.contacts.forget(body)
			body.Free()
			scene.log.Debug("body freed", zap.Int64("body", body.ID()))
			continue
		}
		bodies = append(bodies, body)
	}
	clear(scene.bodies[len(bodies):])
	scene.bodies = bodies
	scene.hashBuilt = false
}

func (scene *Scene) contact(a, b *Body) *Contact {
	return scene.contacts.collide(a, b, scene.stamp)
}

// Collide returns the SAT result for a and b. The result is cached for the
// current tick and recomputed only if either body has moved since.
func (scene *Scene) Collide(a, b *Body) CollisionInfo {
	return scene.contact(a, b).Info
}

// Contact returns the contact state of the ordered pair, testing it first
// if needed.
func (scene *Scene) Contact(a, b *Body) Contact {
	return *scene.contact(a, b)
}

// Query calls f for every body not marked removed whose bounding box, as of
// the first query of this tick, may intersect bb. Results are candidates:
// confirm them with Collide.
func (scene *Scene) Query(bb BB, f func(body *Body)) {
	if !scene.hashBuilt || scene.hashStamp != scene.stamp || scene.hashBodies != len(scene.bodies) {
		scene.hash.Rebuild(scene.bodies)
		scene.hashStamp = scene.stamp
		scene.hashBodies = len(scene.bodies)
		scene.hashBuilt = true
	}
	scene.hash.Query(bb, func(body *Body) {
		if body.IsRemoved() || !body.BB().Intersects(bb) {
			return
		}
		f(body)
	})
}

// Free disposes every force creator and frees every body.
func (scene *Scene) Free() {
	for _, fc := range scene.forces {
		fc.Dispose()
	}
	for _, body := range scene.bodies {
		body.Free()
	}
	scene.log.Debug("scene freed",
		zap.Int("bodies", len(scene.bodies)),
		zap.Int("forces", len(scene.forces)),
	)
	scene.forces = nil
	scene.bodies = nil
	scene.contacts = newContactSet()
	scene.hashBuilt = false
}
