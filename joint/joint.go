// Package joint implements the four constraint kinds, ported term-for-term
// from original_source/src/native/joints.cpp's JointDef/Joint union into a
// flat Go struct: a Kind tag plus every kind's payload inlined, following
// the same no-virtual-dispatch redesign used for shapes.
package joint

import (
	"math"
	"slices"

	"github.com/0x5844/rigid2d/body"
	"github.com/0x5844/rigid2d/vec2"
)

type Kind uint8

const (
	Distance Kind = iota
	Revolute
	Prismatic
	Weld
)

// InvalidID mirrors body.InvalidID: create_joint referencing an invalid
// body id returns this sentinel rather than a joint id.
const InvalidID uint32 = math.MaxUint32

// Def is the joint creation definition, mirroring JointDef.
type Def struct {
	Kind  Kind
	BodyA uint32
	BodyB uint32

	// Anchor points, in each body's local frame.
	LocalAnchorA vec2.Vec2
	LocalAnchorB vec2.Vec2

	// Distance joint.
	Length        float64
	Frequency     float64
	DampingRatio  float64

	// Revolute joint.
	ReferenceAngle float64
	EnableLimit    bool
	LowerAngle     float64
	UpperAngle     float64
	EnableMotor    bool
	MotorSpeed     float64
	MaxMotorTorque float64

	// Prismatic joint. AxisLocal is in bodyA's local frame.
	AxisLocal        vec2.Vec2
	LowerTranslation float64
	UpperTranslation float64
	MaxMotorForce    float64

	// Weld joint. Present for symmetry with the original definition;
	// the solver never reads them (the original's weld joint is always
	// rigid despite declaring soft-constraint fields) so these are
	// carried but inert, matching that behavior.
	Stiffness float64
	Damping   float64
}

// Joint is the runtime constraint state, mirroring struct Joint's union
// flattened into one payload. Fields irrelevant to Kind are simply unused.
type Joint struct {
	Kind  Kind
	BodyA uint32
	BodyB uint32

	LocalAnchorA vec2.Vec2
	LocalAnchorB vec2.Vec2

	Length       float64
	Frequency    float64
	DampingRatio float64
	Gamma        float64 // softness parameter, computed in InitVelocity
	BiasCoeff    float64
	Impulse      float64 // accumulated normal impulse (distance joint only)

	ReferenceAngle float64
	EnableLimit    bool
	LowerAngle     float64
	UpperAngle     float64
	EnableMotor    bool
	MotorSpeed     float64
	MaxMotorTorque float64
	MotorImpulse   float64

	AxisLocal        vec2.Vec2
	LowerTranslation float64
	UpperTranslation float64
	MaxMotorForce    float64

	Stiffness float64
	Damping   float64
}

// Store is the packed joint array, addressed by stable id and compacted
// by shifting later entries down on deletion, keeping insertion order.
type Store struct {
	joints   []Joint
	ids      []uint32
	idToSlot map[uint32]int
	nextID   uint32
}

func NewStore(capacityHint int) *Store {
	return &Store{
		joints:   make([]Joint, 0, capacityHint),
		ids:      make([]uint32, 0, capacityHint),
		idToSlot: make(map[uint32]int, capacityHint),
	}
}

// Create validates both body references exist before allocating a joint,
// returning InvalidID (create_joint's -1) when either is absent.
func Create(store *Store, bodies *body.Store, def Def) uint32 {
	if !bodies.Has(def.BodyA) || !bodies.Has(def.BodyB) {
		return InvalidID
	}

	j := Joint{
		Kind:             def.Kind,
		BodyA:            def.BodyA,
		BodyB:            def.BodyB,
		LocalAnchorA:     def.LocalAnchorA,
		LocalAnchorB:     def.LocalAnchorB,
		Length:           def.Length,
		Frequency:        def.Frequency,
		DampingRatio:     def.DampingRatio,
		ReferenceAngle:   def.ReferenceAngle,
		EnableLimit:      def.EnableLimit,
		LowerAngle:       def.LowerAngle,
		UpperAngle:       def.UpperAngle,
		EnableMotor:      def.EnableMotor,
		MotorSpeed:       def.MotorSpeed,
		MaxMotorTorque:   def.MaxMotorTorque,
		AxisLocal:        def.AxisLocal,
		LowerTranslation: def.LowerTranslation,
		UpperTranslation: def.UpperTranslation,
		MaxMotorForce:    def.MaxMotorForce,
		Stiffness:        def.Stiffness,
		Damping:          def.Damping,
	}

	id := store.nextID
	store.nextID++
	store.idToSlot[id] = len(store.joints)
	store.ids = append(store.ids, id)
	store.joints = append(store.joints, j)
	return id
}

// Destroy removes the joint, shifting later slots down by one so live
// joints keep their insertion order (spec.md §5), the same slices.Delete
// idiom body.Store.Destroy uses.
func (s *Store) Destroy(id uint32) {
	slot, ok := s.idToSlot[id]
	if !ok {
		return
	}
	s.joints = slices.Delete(s.joints, slot, slot+1)
	s.ids = slices.Delete(s.ids, slot, slot+1)
	delete(s.idToSlot, id)
	for i := slot; i < len(s.ids); i++ {
		s.idToSlot[s.ids[i]] = i
	}
}

func (s *Store) Get(id uint32) (*Joint, bool) {
	slot, ok := s.idToSlot[id]
	if !ok {
		return nil, false
	}
	return &s.joints[slot], true
}

func (s *Store) Len() int {
	return len(s.joints)
}

// Each calls fn for every live joint in insertion order. Joints whose body
// has since been destroyed are silently skipped, matching get_body's
// nullptr guard in every *_joint_velocity/position function.
func (s *Store) Each(bodies *body.Store, fn func(j *Joint, bodyA, bodyB *body.Body)) {
	for slot := range s.joints {
		j := &s.joints[slot]
		bodyA, ok := bodies.Get(j.BodyA)
		if !ok {
			continue
		}
		bodyB, ok := bodies.Get(j.BodyB)
		if !ok {
			continue
		}
		fn(j, bodyA, bodyB)
	}
}

// worldAnchor rotates a joint's local anchor into world space and adds the
// owning body's position, ported from every *_joint_velocity function's
// repeated rAx/rAy/pAx/pAy computation.
func worldAnchor(b *body.Body, local vec2.Vec2) (r, world vec2.Vec2) {
	r = local.Rotate(b.Angle)
	world = b.Position.Add(r)
	return r, world
}

// velocityAtAnchor returns a body's linear velocity at the material point
// offset r from its center of mass.
func velocityAtAnchor(b *body.Body, r vec2.Vec2) vec2.Vec2 {
	return b.VelocityAt(r)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrapAngle(angle float64) float64 {
	return vec2.WrapAngle(angle)
}

// solve2x2 builds the point-to-point effective mass matrix shared by the
// revolute and weld linear constraints and returns lambda = -K^-1 * rhs,
// matching every *_joint_velocity/position function's
// "lambdaX = -det*(k22*dvx - k12*dvy)" pattern (rhs is relative velocity
// for a velocity solve, position error for a position solve).
func solve2x2(rA, rB vec2.Vec2, invMassA, invMassB, invIA, invIB float64, rhs vec2.Vec2) (vec2.Vec2, bool) {
	k11 := invMassA + invMassB + rA.Y*rA.Y*invIA + rB.Y*rB.Y*invIB
	k22 := invMassA + invMassB + rA.X*rA.X*invIA + rB.X*rB.X*invIB
	k12 := -rA.Y*rA.X*invIA - rB.Y*rB.X*invIB

	m := vec2.Mat22{A11: k11, A12: k12, A21: k12, A22: k22}
	if m.Determinant() == 0 {
		return vec2.Vec2{}, false
	}
	return m.Solve(rhs).Neg(), true
}
