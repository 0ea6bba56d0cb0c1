package physics2d

// ContactState tracks whether an ordered pair of bodies is touching.
type ContactState int

const (
	ContactSeparated ContactState = iota
	ContactTouching
)

func (s ContactState) String() string {
	switch s {
	case ContactTouching:
		return "touching"
	default:
		return "separated"
	}
}

// Contact is the cached collision state of an ordered pair of bodies.
type Contact struct {
	A, B  *Body
	State ContactState
	Info  CollisionInfo
	// Episode identifies the current run of consecutive touching ticks. It
	// changes on every separated to touching transition and is unique within
	// a scene.
	Episode uint64

	// tick the info was computed on
	stamp uint64
	// state at the end of the last tick before stamp
	prev ContactState
	// tick the current episode began on
	began uint64
	// body versions the info was computed against
	versionA, versionB uint64
	fresh              bool
}

type contactKey struct {
	a, b *Body
}

type contactSet struct {
	contacts map[contactKey]*Contact
	episodes uint64
}

func newContactSet() *contactSet {
	return &contactSet{contacts: make(map[contactKey]*Contact)}
}

// collide returns the contact for a and b at tick stamp, running SAT only
// when the pair was not yet tested this tick or one of the bodies moved since.
func (set *contactSet) collide(a, b *Body, stamp uint64) *Contact {
	key := contactKey{a, b}
	contact, ok := set.contacts[key]
	if !ok {
		contact = &Contact{A: a, B: b, fresh: true}
		set.contacts[key] = contact
	}

	if !contact.fresh && contact.stamp == stamp &&
		contact.versionA == a.version && contact.versionB == b.version {
		return contact
	}

	if contact.fresh || contact.stamp != stamp {
		contact.prev = contact.State
		contact.stamp = stamp
	}
	contact.fresh = false
	contact.versionA = a.version
	contact.versionB = b.version

	if a.BB().Intersects(b.BB()) {
		contact.Info = FindCollision(a.worldShape(), b.worldShape())
	} else {
		contact.Info = CollisionInfo{}
	}

	if !contact.Info.Collided {
		contact.State = ContactSeparated
		return contact
	}

	if contact.prev == ContactSeparated && contact.State == ContactSeparated && contact.began != stamp {
		set.episodes++
		contact.Episode = set.episodes
		contact.began = stamp
	}
	contact.State = ContactTouching
	return contact
}

// filter drops every contact that was not tested on the previous tick.
func (set *contactSet) filter(stamp uint64) {
	for key, contact := range set.contacts {
		if contact.stamp+1 < stamp {
			delete(set.contacts, key)
		}
	}
}

// forget drops every contact involving body.
func (set *contactSet) forget(body *Body) {
	for key := range set.contacts {
		if key.a == body || key.b == body {
			delete(set.contacts, key)
		}
	}
}

func (set *contactSet) count() int {
	return len(set.contacts)
}
