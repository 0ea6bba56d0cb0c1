package physics2d

// ForceCreator is a unit of physics behaviour the scene runs once per tick.
//
// Apply reads and writes the force and impulse accumulators of whichever
// bodies it affects. Bodies returns the dependency set: when any of them is
// removed from the scene the creator is disposed and dropped. The set is
// only used for that cleanup, never for scheduling.
type ForceCreator interface {
	Apply(scene *Scene)
	Bodies() []*Body
	Dispose()
}

// ForceFunc adapts a plain callback to ForceCreator. Any state the callback
// needs is captured by the closure.
type ForceFunc struct {
	apply   func()
	dispose func()
	bodies  []*Body
}

// NewForceFunc returns a ForceCreator calling apply every tick and dispose,
// if not nil, when it is dropped.
func NewForceFunc(apply func(), dispose func(), bodies ...*Body) *ForceFunc {
	check(apply != nil, "ForceFunc needs a callback")
	return &ForceFunc{
		apply:   apply,
		dispose: dispose,
		bodies:  bodies,
	}
}

func (f *ForceFunc) Apply(*Scene) {
	f.apply()
}

func (f *ForceFunc) Bodies() []*Body {
	return f.bodies
}

func (f *ForceFunc) Dispose() {
	if f.dispose != nil {
		f.dispose()
	}
}

// twoBody is the common state of force creators acting on a pair.
type twoBody struct {
	a, b *Body
}

func (p twoBody) A() *Body {
	return p.a
}

func (p twoBody) B() *Body {
	return p.b
}

func (p twoBody) Bodies() []*Body {
	return []*Body{p.a, p.b}
}

func (twoBody) Dispose() {}

func dependsOn(fc ForceCreator, removed map[*Body]struct{}) bool {
	for _, body := range fc.Bodies() {
		if _, ok := removed[body]; ok {
			return true
		}
	}
	return false
}
