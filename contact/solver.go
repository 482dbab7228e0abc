package contact

import (
	"math"

	"github.com/0x5844/rigid2d/body"
	"github.com/0x5844/rigid2d/vec2"
)

// Params tunes the sequential-impulse solver.
type Params struct {
	VelocityIterations int
	PositionIterations int
	Baumgarte          float64
	Slop               float64
	MaxCorrection      float64
}

func DefaultParams() Params {
	return Params{
		VelocityIterations: 8,
		PositionIterations: 3,
		Baumgarte:          0.2,
		Slop:               0.005,
		MaxCorrection:      0.2,
	}
}

type pointConstraint struct {
	rA, rB                        vec2.Vec2
	normalMass, tangentMass       float64
	velocityBias                  float64
	normalImpulse, tangentImpulse float64
	feature                       FeatureID
	penetration                   float64
	correctedSoFar                float64
}

// Constraint is the prepared, per-tick working state for one contact pair,
// mirroring ByteArena-box2d__DynamicsB2ContactSolver.go's
// B2ContactVelocityConstraint but solved per-point rather than as a block.
type Constraint struct {
	normal      vec2.Vec2
	tangent     vec2.Vec2
	friction    float64
	restitution float64
	pointCount  int
	points      [MaxPoints]pointConstraint
}

// restitutionThreshold below this relative approach speed, restitution is
// not applied, avoiding jitter on resting contacts.
const restitutionThreshold = 1.0

// Prepare builds a Constraint from a manifold and warm-starts it from the
// previous tick's cache, applying the recovered impulses immediately (Box2D's
// InitVelocityConstraints step) before any velocity iterations run.
func Prepare(m Manifold, bodyA, bodyB *body.Body, keyA, keyB uint32, prevCache *Cache) *Constraint {
	c := &Constraint{
		normal:      m.Normal,
		tangent:     vec2.New(m.Normal.Y, -m.Normal.X),
		friction:    math.Sqrt(bodyA.Material.Friction * bodyB.Material.Friction),
		restitution: math.Min(bodyA.Material.Restitution, bodyB.Material.Restitution),
		pointCount:  m.PointCount,
	}

	for i := 0; i < m.PointCount; i++ {
		p := &c.points[i]
		p.rA = m.Points[i].Sub(bodyA.Position)
		p.rB = m.Points[i].Sub(bodyB.Position)
		p.feature = m.Features[i]
		p.penetration = m.Penetration[i]

		rnA := p.rA.Cross(c.normal)
		rnB := p.rB.Cross(c.normal)
		kNormal := bodyA.InvMass + bodyB.InvMass + bodyA.InvInertia*rnA*rnA + bodyB.InvInertia*rnB*rnB
		if kNormal > 0 {
			p.normalMass = 1.0 / kNormal
		}

		rtA := p.rA.Cross(c.tangent)
		rtB := p.rB.Cross(c.tangent)
		kTangent := bodyA.InvMass + bodyB.InvMass + bodyA.InvInertia*rtA*rtA + bodyB.InvInertia*rtB*rtB
		if kTangent > 0 {
			p.tangentMass = 1.0 / kTangent
		}

		relVel := bodyB.VelocityAt(p.rB).Sub(bodyA.VelocityAt(p.rA))
		vn := relVel.Dot(c.normal)
		if vn < -restitutionThreshold {
			p.velocityBias = -c.restitution * vn
		}

		warm := prevCache.Lookup(PointKey{BodyA: keyA, BodyB: keyB, Feature: p.feature})
		p.normalImpulse = warm.Normal
		p.tangentImpulse = warm.Tangent

		impulse := c.normal.Scale(p.normalImpulse).Add(c.tangent.Scale(p.tangentImpulse))
		bodyA.ApplyImpulse(impulse.Neg(), nil)
		bodyA.AngularVelocity -= p.rA.Cross(impulse) * bodyA.InvInertia
		bodyB.ApplyImpulse(impulse, nil)
		bodyB.AngularVelocity += p.rB.Cross(impulse) * bodyB.InvInertia
	}

	return c
}

// SolveVelocity runs one sequential-impulse velocity iteration.
func (c *Constraint) SolveVelocity(bodyA, bodyB *body.Body) {
	for i := 0; i < c.pointCount; i++ {
		p := &c.points[i]

		// Tangent (friction) first, clamped against the current normal
		// impulse, matching the teacher's normal-impulse-then-friction
		// ordering inverted per iteration for a Gauss-Seidel-style solve.
		relVel := bodyB.VelocityAt(p.rB).Sub(bodyA.VelocityAt(p.rA))
		vt := relVel.Dot(c.tangent)
		lambdaT := -p.tangentMass * vt
		maxFriction := c.friction * p.normalImpulse
		newTangent := clampF(p.tangentImpulse+lambdaT, -maxFriction, maxFriction)
		lambdaT = newTangent - p.tangentImpulse
		p.tangentImpulse = newTangent

		tangentImpulse := c.tangent.Scale(lambdaT)
		applyImpulsePair(bodyA, bodyB, p, tangentImpulse)

		relVel = bodyB.VelocityAt(p.rB).Sub(bodyA.VelocityAt(p.rA))
		vn := relVel.Dot(c.normal)
		lambdaN := -p.normalMass * (vn - p.velocityBias)
		newNormal := math.Max(p.normalImpulse+lambdaN, 0)
		lambdaN = newNormal - p.normalImpulse
		p.normalImpulse = newNormal

		normalImpulse := c.normal.Scale(lambdaN)
		applyImpulsePair(bodyA, bodyB, p, normalImpulse)
	}
}

func applyImpulsePair(bodyA, bodyB *body.Body, p *pointConstraint, impulse vec2.Vec2) {
	bodyA.ApplyImpulse(impulse.Neg(), nil)
	bodyA.AngularVelocity -= p.rA.Cross(impulse) * bodyA.InvInertia
	bodyB.ApplyImpulse(impulse, nil)
	bodyB.AngularVelocity += p.rB.Cross(impulse) * bodyB.InvInertia
}

// SolvePosition runs one Nonlinear-Gauss-Seidel-style position iteration:
// each pass closes a Baumgarte fraction of the remaining separation error,
// converging geometrically over PositionIterations passes rather than
// applying the teacher's single fixed correction.
func (c *Constraint) SolvePosition(bodyA, bodyB *body.Body, params Params) {
	for i := 0; i < c.pointCount; i++ {
		p := &c.points[i]
		remaining := p.penetration - params.Slop - p.correctedSoFar
		if remaining <= 0 || p.normalMass == 0 {
			continue
		}

		// p.normalMass already folds in the rotational terms
		// (invIA*rnA^2 + invIB*rnB^2) computed in Prepare, so the position
		// pass uses the same effective mass as the velocity pass.
		correction := clampF(remaining*params.Baumgarte, 0, params.MaxCorrection)
		impulse := c.normal.Scale(correction * p.normalMass)

		if bodyA.InvMass > 0 {
			bodyA.Position = bodyA.Position.Sub(impulse.Scale(bodyA.InvMass))
		}
		if bodyA.InvInertia > 0 {
			bodyA.Angle -= p.rA.Cross(impulse) * bodyA.InvInertia
		}
		if bodyB.InvMass > 0 {
			bodyB.Position = bodyB.Position.Add(impulse.Scale(bodyB.InvMass))
		}
		if bodyB.InvInertia > 0 {
			bodyB.Angle += p.rB.Cross(impulse) * bodyB.InvInertia
		}

		p.correctedSoFar += correction
	}
}

// StoreImpulses writes this tick's converged impulses into nextCache so the
// following tick can warm-start from them.
func (c *Constraint) StoreImpulses(nextCache *Cache, keyA, keyB uint32) {
	for i := 0; i < c.pointCount; i++ {
		p := &c.points[i]
		nextCache.Store(PointKey{BodyA: keyA, BodyB: keyB, Feature: p.feature}, Impulse{
			Normal:  p.normalImpulse,
			Tangent: p.tangentImpulse,
		})
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
