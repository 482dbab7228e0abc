package joint

import (
	"math"

	"github.com/0x5844/rigid2d/body"
	"github.com/0x5844/rigid2d/vec2"
)

// InitVelocity precomputes the distance joint's softness parameters from
// its spring frequency/damping ratio, ported from
// init_joint_velocity_constraints' DISTANCE_JOINT branch. Rigid (non-soft)
// distance joints (Frequency == 0) get Gamma == BiasCoeff == 0.
func (j *Joint) initDistance(dt float64) {
	if j.Frequency <= 0 {
		j.Gamma = 0
		j.BiasCoeff = 0
		return
	}
	omega := 2 * math.Pi * j.Frequency
	d := 2 * j.DampingRatio * omega
	k := omega * omega

	gamma := dt * (d + dt*k)
	if gamma > 0 {
		gamma = 1.0 / gamma
	}
	j.Gamma = gamma
	j.BiasCoeff = k * gamma
}

// solveDistanceVelocity is the distance/rope joint's sequential-impulse
// velocity solve, ported from solve_distance_joint_velocity.
func solveDistanceVelocity(j *Joint, bodyA, bodyB *body.Body) {
	rA, pA := worldAnchor(bodyA, j.LocalAnchorA)
	rB, pB := worldAnchor(bodyB, j.LocalAnchorB)

	d := pB.Sub(pA)
	length := d.Length()
	if length < 0.001 {
		return
	}
	n := d.Scale(1.0 / length)

	dv := velocityAtAnchor(bodyB, rB).Sub(velocityAtAnchor(bodyA, rA))
	vn := dv.Dot(n)

	raCrossN := rA.Cross(n)
	rbCrossN := rB.Cross(n)
	kNormal := bodyA.InvMass + bodyB.InvMass +
		raCrossN*raCrossN*bodyA.InvInertia + rbCrossN*rbCrossN*bodyB.InvInertia
	kNormal += j.Gamma

	effectiveMass := 0.0
	if kNormal > 0 {
		effectiveMass = 1.0 / kNormal
	}

	c := length - j.Length
	bias := j.BiasCoeff * c

	lambda := -effectiveMass * (vn + bias + j.Gamma*j.Impulse)
	j.Impulse += lambda

	impulse := n.Scale(lambda)
	applyLinearAngular(bodyA, bodyB, rA, rB, impulse)
}

// solveDistancePosition is the rigid-mode-only position correction pass,
// ported from solve_distance_joint_position; soft (spring) distance
// joints skip position correction entirely, relying on the velocity bias.
func solveDistancePosition(j *Joint, bodyA, bodyB *body.Body) {
	if j.Frequency > 0 {
		return
	}

	rA, pA := worldAnchor(bodyA, j.LocalAnchorA)
	rB, pB := worldAnchor(bodyB, j.LocalAnchorB)

	d := pB.Sub(pA)
	length := d.Length()
	if length < 0.001 {
		return
	}

	c := clamp(length-j.Length, -0.2, 0.2)
	n := d.Scale(1.0 / length)

	raCrossN := rA.Cross(n)
	rbCrossN := rB.Cross(n)
	kNormal := bodyA.InvMass + bodyB.InvMass +
		raCrossN*raCrossN*bodyA.InvInertia + rbCrossN*rbCrossN*bodyB.InvInertia

	impulseMag := 0.0
	if kNormal > 0 {
		impulseMag = -c / kNormal
	}

	correction := n.Scale(impulseMag)
	applyPositionCorrection(bodyA, bodyB, correction)
}

func applyLinearAngular(bodyA, bodyB *body.Body, rA, rB vec2.Vec2, impulse vec2.Vec2) {
	if bodyA.Kind != body.Static {
		bodyA.Velocity = bodyA.Velocity.Sub(impulse.Scale(bodyA.InvMass))
		bodyA.AngularVelocity -= rA.Cross(impulse) * bodyA.InvInertia
	}
	if bodyB.Kind != body.Static {
		bodyB.Velocity = bodyB.Velocity.Add(impulse.Scale(bodyB.InvMass))
		bodyB.AngularVelocity += rB.Cross(impulse) * bodyB.InvInertia
	}
}

func applyPositionCorrection(bodyA, bodyB *body.Body, correction vec2.Vec2) {
	if bodyA.Kind != body.Static {
		bodyA.Position = bodyA.Position.Sub(correction.Scale(bodyA.InvMass))
	}
	if bodyB.Kind != body.Static {
		bodyB.Position = bodyB.Position.Add(correction.Scale(bodyB.InvMass))
	}
}
