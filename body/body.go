// Package body holds the packed rigid-body store: bodies are indexed by a
// stable id assigned at creation and kept in insertion order on deletion
// (spec.md §5's iteration-order determinism requirement), the same
// slices.Delete compaction idiom setanarut-cm's body.go/space.go use for
// their own body/shape/constraint lists.
package body

import (
	"math"
	"slices"

	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

type Kind uint8

const (
	Static Kind = iota
	Kinematic
	Dynamic
)

// InvalidID is the "no body" sentinel, matching original_source's own
// 0xFFFFFFFF convention. Store.Create never returns it: the store has no
// capacity limit.
const InvalidID uint32 = math.MaxUint32

type Material struct {
	Restitution float64
	Friction    float64
}

// Body is a rigid body. Static bodies always have InvMass == InvInertia ==
// 0 and are never mutated by any solver or integration step.
type Body struct {
	Kind  Kind
	Shape shape.Shape

	Position vec2.Vec2
	Angle    float64

	Velocity        vec2.Vec2
	AngularVelocity float64

	Force  vec2.Vec2
	Torque float64

	InvMass    float64
	InvInertia float64

	Material Material

	// ProxyID is the owning broadphase's leaf/proxy handle for this body,
	// set by the world after inserting the body's AABB.
	ProxyID int32
}

// Store is the packed body array, addressed by stable id.
type Store struct {
	bodies []Body
	// ids[slot] is the stable id owning that slot; idToSlot maps a stable
	// id back to its current slot, updated on every deletion.
	ids      []uint32
	idToSlot map[uint32]int
	nextID   uint32
}

func NewStore(capacityHint int) *Store {
	return &Store{
		bodies:   make([]Body, 0, capacityHint),
		ids:      make([]uint32, 0, capacityHint),
		idToSlot: make(map[uint32]int, capacityHint),
	}
}

// Create appends a new body and returns its stable id, drawn from a
// monotonically assigned counter (the same nextID pattern joint.Store uses).
func (s *Store) Create(b Body) uint32 {
	id := s.nextID
	s.nextID++
	s.idToSlot[id] = len(s.bodies)
	s.ids = append(s.ids, id)
	s.bodies = append(s.bodies, b)
	return id
}

// Destroy removes the body, shifting every later slot down by one so live
// bodies keep their relative insertion order. Destroying an unknown id is a
// silent no-op (spec.md §7: invalid-reference).
func (s *Store) Destroy(id uint32) {
	slot, ok := s.idToSlot[id]
	if !ok {
		return
	}
	s.bodies = slices.Delete(s.bodies, slot, slot+1)
	s.ids = slices.Delete(s.ids, slot, slot+1)
	delete(s.idToSlot, id)
	for i := slot; i < len(s.ids); i++ {
		s.idToSlot[s.ids[i]] = i
	}
}

// Get returns a pointer to the body and whether id is live. The pointer is
// invalidated by any subsequent Create/Destroy call.
func (s *Store) Get(id uint32) (*Body, bool) {
	slot, ok := s.idToSlot[id]
	if !ok {
		return nil, false
	}
	return &s.bodies[slot], true
}

func (s *Store) Has(id uint32) bool {
	_, ok := s.idToSlot[id]
	return ok
}

// Len returns the number of live bodies.
func (s *Store) Len() int {
	return len(s.bodies)
}

// Each calls fn for every live body in insertion order (spec.md §5's
// determinism requirement), passing its stable id.
func (s *Store) Each(fn func(id uint32, b *Body)) {
	for slot := range s.bodies {
		fn(s.ids[slot], &s.bodies[slot])
	}
}

// New constructs a Body from the create_body parameters, computing derived
// mass properties from the shape and the requested mass (via InvMass).
func New(kind Kind, s shape.Shape, x, y, rotation, mass float64) Body {
	b := Body{
		Kind:     kind,
		Shape:    s,
		Position: vec2.New(x, y),
		Angle:    rotation,
		Material: Material{Restitution: 0.2, Friction: 0.3},
	}
	if kind == Dynamic && mass > 0 {
		b.InvMass = 1.0 / mass
		inertia := s.MomentOfInertia(mass)
		if inertia > 0 {
			b.InvInertia = 1.0 / inertia
		}
	}
	return b
}

// IntegrateVelocity applies gravity and accumulated force/torque to
// velocity, as spec.md §4.6/§6's integrate_velocities stage. Static and
// Kinematic bodies are left untouched.
func (b *Body) IntegrateVelocity(dt float64, gravity vec2.Vec2) {
	if b.InvMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(gravity.Add(b.Force.Scale(b.InvMass)).Scale(dt))
	b.AngularVelocity += b.Torque * b.InvInertia * dt
	b.Force = vec2.Vec2{}
	b.Torque = 0
}

// IntegratePosition applies velocity to position, as spec.md §4.6's
// integrate_positions stage.
func (b *Body) IntegratePosition(dt float64) {
	if b.Kind == Static {
		return
	}
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
	b.Angle += b.AngularVelocity * dt
}

func (b *Body) ApplyForce(fx, fy float64) {
	if b.InvMass == 0 {
		return
	}
	b.Force = b.Force.Add(vec2.New(fx, fy))
}

// ApplyImpulse applies a linear impulse, and an angular impulse if
// worldPoint is off-center.
func (b *Body) ApplyImpulse(impulse vec2.Vec2, worldPoint *vec2.Vec2) {
	if b.InvMass == 0 {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(b.InvMass))
	if worldPoint != nil {
		r := worldPoint.Sub(b.Position)
		b.AngularVelocity += r.Cross(impulse) * b.InvInertia
	}
}

// SetVelocity overwrites velocity directly. Static bodies ignore it;
// kinematic bodies rely on it since they have no inverse mass to integrate
// forces with but still integrate position from velocity.
func (b *Body) SetVelocity(vx, vy, angular float64) {
	if b.Kind == Static {
		return
	}
	b.Velocity = vec2.New(vx, vy)
	b.AngularVelocity = angular
}

func (b *Body) SetTransform(x, y, rotation float64) {
	if b.Kind == Static {
		return
	}
	b.Position = vec2.New(x, y)
	b.Angle = rotation
}

// WorldPoint converts a body-local anchor to world space.
func (b *Body) WorldPoint(local vec2.Vec2) vec2.Vec2 {
	return local.Rotate(b.Angle).Add(b.Position)
}

// WorldVector rotates a body-local vector into world space without
// translating it.
func (b *Body) WorldVector(local vec2.Vec2) vec2.Vec2 {
	return local.Rotate(b.Angle)
}

// VelocityAt returns the linear velocity of the material point at r (a
// vector from the body's center of mass to the point).
func (b *Body) VelocityAt(r vec2.Vec2) vec2.Vec2 {
	return b.Velocity.Add(vec2.CrossScalar(b.AngularVelocity, r))
}
