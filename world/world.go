// Package world wires the body store, a broadphase, narrowphase, contact
// solver and joint store into the single-threaded step pipeline, grounded
// on the teacher's PhysicsWorld.Step / RigidBody.Integrate staging (see
// original_source/src/native/broadphase.cpp and joints.cpp for the
// pipeline order this mirrors).
package world

import (
	"math"

	"github.com/0x5844/rigid2d/aabb"
	"github.com/0x5844/rigid2d/body"
	"github.com/0x5844/rigid2d/broadphase"
	"github.com/0x5844/rigid2d/broadphase/tree"
	"github.com/0x5844/rigid2d/contact"
	"github.com/0x5844/rigid2d/joint"
	"github.com/0x5844/rigid2d/narrowphase"
	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

// InvalidID mirrors body.InvalidID/joint.InvalidID: CreateJoint returns this
// sentinel when the def names a body that is not live. CreateBody never
// returns it, since the world's capacity is only a sizing hint.
const InvalidID uint32 = math.MaxUint32

// World owns every piece of live simulation state: the body store, the
// broadphase (a tree by default; any broadphase.Broadphase can be
// substituted via WithBroadphase), the joint store, and the contact
// warm-start cache pair that gets swapped every tick.
type World struct {
	Gravity vec2.Vec2
	Params  contact.Params

	bodies *body.Store
	bp     broadphase.Broadphase
	joints *joint.Store

	proxyToBody map[int32]uint32
	bodyToProxy map[uint32]int32

	prevCache *contact.Cache
	nextCache *contact.Cache

	// constraintBuf is reused across Step calls instead of allocating a
	// fresh slice every tick, the same amortization goal the teacher's
	// sync.Pool served for manifolds without needing a concurrency
	// primitive (Step is never called concurrently with itself).
	constraintBuf []preparedConstraint
}

// NewWorld constructs an empty world sized for capacity bodies, using the
// dynamic tree as its broadphase (spec.md §2 lists tree and grid as
// budgeted alternatives; the tree is the default per DESIGN.md's Open
// Question decision).
func NewWorld(capacity int) *World {
	return &World{
		Gravity:     vec2.New(0, -9.8),
		Params:      contact.DefaultParams(),
		bodies:      body.NewStore(capacity),
		bp:          tree.New(capacity),
		joints:      joint.NewStore(capacity / 4),
		proxyToBody: make(map[int32]uint32, capacity),
		bodyToProxy: make(map[uint32]int32, capacity),
		prevCache:   contact.NewCache(),
		nextCache:   contact.NewCache(),
	}
}

// WithBroadphase swaps the world's broadphase implementation (e.g. to
// broadphase/grid). Only valid before any body is created.
func WithBroadphase(w *World, bp broadphase.Broadphase) {
	w.bp = bp
}

// CreateBody inserts a new body and its broadphase proxy, returning its
// stable id. It always succeeds: no capacity limit is enforced and no
// shape/kind combination is rejected (mass <= 0 for a Dynamic body leaves
// InvMass at zero, as body.New does — a "massless dynamic body" is inert
// but valid).
func (w *World) CreateBody(kind body.Kind, s shape.Shape, x, y, rotation float64) uint32 {
	b := body.New(kind, s, x, y, rotation, defaultMass(kind, s))
	id := w.bodies.Create(b)

	box := s.AABB(b.Position, b.Angle).Fatten(aabb.Skin)
	proxy := w.bp.InsertProxy(id, box)
	w.proxyToBody[proxy] = id
	w.bodyToProxy[id] = proxy

	stored, _ := w.bodies.Get(id)
	stored.ProxyID = proxy
	return id
}

// defaultMass derives mass from shape area at unit density, matching the
// teacher's scene generators (AddCircle/AddBox callers computing
// radius²·π or width·height rather than taking an explicit mass
// parameter) — create_body's signature has no mass argument either.
func defaultMass(kind body.Kind, s shape.Shape) float64 {
	if kind != body.Dynamic {
		return 0
	}
	switch s.Kind {
	case shape.Circle:
		return s.Radius * s.Radius * math.Pi
	default: // Box
		return (2 * s.HalfW) * (2 * s.HalfH)
	}
}

// DestroyBody removes a body and its broadphase proxy. Destroying an
// unknown id is a silent no-op.
func (w *World) DestroyBody(id uint32) {
	if !w.bodies.Has(id) {
		return
	}
	if proxy, ok := w.bodyToProxy[id]; ok {
		w.bp.RemoveProxy(proxy)
		delete(w.proxyToBody, proxy)
		delete(w.bodyToProxy, id)
	}
	w.bodies.Destroy(id)
}

func (w *World) ApplyForce(id uint32, fx, fy float64) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return
	}
	b.ApplyForce(fx, fy)
}

func (w *World) ApplyImpulse(id uint32, ix, iy float64, atWorldPoint *vec2.Vec2) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return
	}
	b.ApplyImpulse(vec2.New(ix, iy), atWorldPoint)
}

func (w *World) SetVelocity(id uint32, vx, vy, angular float64) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return
	}
	b.SetVelocity(vx, vy, angular)
}

func (w *World) SetTransform(id uint32, x, y, rotation float64) {
	b, ok := w.bodies.Get(id)
	if !ok {
		return
	}
	b.SetTransform(x, y, rotation)
}

func (w *World) Body(id uint32) (*body.Body, bool) {
	return w.bodies.Get(id)
}

func (w *World) CreateJoint(def joint.Def) uint32 {
	return joint.Create(w.joints, w.bodies, def)
}

func (w *World) DestroyJoint(id uint32) {
	w.joints.Destroy(id)
}

// Step advances the simulation by exactly one tick, following the fixed
// pipeline order:
//
//	integrate_velocities(dt)
//	update_broadphase_proxies()
//	pairs = broadphase.query_pairs()
//	manifolds = narrowphase(pairs)
//	init_constraints(manifolds, dt)
//	init_joint_velocity(dt)
//	for i in 1..velocityIterations:
//	    solve_joints_velocity()
//	    solve_contacts_velocity()
//	integrate_positions(dt)
//	for i in 1..positionIterations:
//	    solve_joints_position()
//	    solve_contacts_position()
//
// Static bodies are never mutated by any stage (guarded by InvMass == 0 or
// Kind == Static throughout body/joint/contact).
func (w *World) Step(dt float64) {
	w.bodies.Each(func(id uint32, b *body.Body) {
		b.IntegrateVelocity(dt, w.Gravity)
	})

	w.updateBroadphaseProxies()

	pairs := w.bp.QueryPairs()
	w.bp.Clear()

	constraints := w.buildConstraints(pairs)

	w.joints.Each(w.bodies, func(j *joint.Joint, bodyA, bodyB *body.Body) {
		j.InitVelocity(dt)
	})

	for i := 0; i < w.Params.VelocityIterations; i++ {
		w.joints.Each(w.bodies, func(j *joint.Joint, bodyA, bodyB *body.Body) {
			joint.SolveVelocity(j, bodyA, bodyB, dt)
		})
		for _, cs := range constraints {
			cs.constraint.SolveVelocity(cs.bodyA, cs.bodyB)
		}
	}

	w.bodies.Each(func(id uint32, b *body.Body) {
		b.IntegratePosition(dt)
	})

	for i := 0; i < w.Params.PositionIterations; i++ {
		w.joints.Each(w.bodies, func(j *joint.Joint, bodyA, bodyB *body.Body) {
			joint.SolvePosition(j, bodyA, bodyB)
		})
		for _, cs := range constraints {
			cs.constraint.SolvePosition(cs.bodyA, cs.bodyB, w.Params)
		}
	}

	for _, cs := range constraints {
		cs.constraint.StoreImpulses(w.nextCache, cs.keyA, cs.keyB)
	}
	w.prevCache, w.nextCache = w.nextCache, contact.NewCache()
}

// updateBroadphaseProxies re-fits any proxy whose current fat AABB no
// longer contains the body's tight AABB, matching
// original_source/broadphase.cpp's calculate_body_aabb + tree_update_leaf
// "only re-insert on skin violation" behavior.
func (w *World) updateBroadphaseProxies() {
	w.bodies.Each(func(id uint32, b *body.Body) {
		if b.Kind == body.Static {
			return
		}
		proxy, ok := w.bodyToProxy[id]
		if !ok {
			return
		}
		tight := b.Shape.AABB(b.Position, b.Angle)
		fat := w.bp.ProxyAABB(proxy)
		if fat.ContainsAABB(tight) {
			return
		}
		newFat := tight.Fatten(aabb.Skin)
		newProxy := w.bp.UpdateProxy(proxy, newFat)
		if newProxy != proxy {
			delete(w.proxyToBody, proxy)
			w.proxyToBody[newProxy] = id
			w.bodyToProxy[id] = newProxy
			b.ProxyID = newProxy
		}
	})
}

type preparedConstraint struct {
	constraint *contact.Constraint
	bodyA      *body.Body
	bodyB      *body.Body
	keyA, keyB uint32
}

// buildConstraints runs narrowphase over every broadphase pair and prepares
// a solver constraint for each pair that actually generates a manifold.
func (w *World) buildConstraints(pairs []broadphase.Pair) []preparedConstraint {
	out := w.constraintBuf[:0]
	for _, pair := range pairs {
		keyA, keyB := pair.A, pair.B
		if keyA > keyB {
			keyA, keyB = keyB, keyA
		}
		bodyA, ok := w.bodies.Get(keyA)
		if !ok {
			continue
		}
		bodyB, ok := w.bodies.Get(keyB)
		if !ok {
			continue
		}
		if bodyA.Kind == body.Static && bodyB.Kind == body.Static {
			continue
		}

		ta := narrowphase.Transform{Position: bodyA.Position, Angle: bodyA.Angle}
		tb := narrowphase.Transform{Position: bodyB.Position, Angle: bodyB.Angle}
		manifold, hit := narrowphase.Collide(ta, bodyA.Shape, tb, bodyB.Shape)
		if !hit {
			continue
		}

		c := contact.Prepare(manifold, bodyA, bodyB, keyA, keyB, w.prevCache)
		out = append(out, preparedConstraint{constraint: c, bodyA: bodyA, bodyB: bodyB, keyA: keyA, keyB: keyB})
	}
	w.constraintBuf = out
	return out
}
