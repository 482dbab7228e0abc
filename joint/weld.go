package joint

import "github.com/0x5844/rigid2d/body"

// solveWeldVelocity rigidly locks both the relative position and relative
// rotation of the two bodies, ported from solve_weld_joint_velocity. The
// original's stiffness/damping fields are declared but never read here,
// matching that the weld joint is always rigid regardless of them.
func solveWeldVelocity(j *Joint, bodyA, bodyB *body.Body) {
	rA, _ := worldAnchor(bodyA, j.LocalAnchorA)
	rB, _ := worldAnchor(bodyB, j.LocalAnchorB)

	dv := velocityAtAnchor(bodyB, rB).Sub(velocityAtAnchor(bodyA, rA))
	if lambda, ok := solve2x2(rA, rB, bodyA.InvMass, bodyB.InvMass, bodyA.InvInertia, bodyB.InvInertia, dv); ok {
		applyLinearAngular(bodyA, bodyB, rA, rB, lambda)
	}

	kAngular := bodyA.InvInertia + bodyB.InvInertia
	if kAngular > 0 {
		angularVel := bodyB.AngularVelocity - bodyA.AngularVelocity
		lambdaAngular := -angularVel / kAngular
		applyAngularOnly(bodyA, bodyB, lambdaAngular)
	}
}

// solveWeldPosition re-aligns both position and rotation, ported from
// solve_weld_joint_position.
func solveWeldPosition(j *Joint, bodyA, bodyB *body.Body) {
	rA, pA := worldAnchor(bodyA, j.LocalAnchorA)
	rB, pB := worldAnchor(bodyB, j.LocalAnchorB)

	c := pB.Sub(pA)
	if length := c.Length(); length > 0.2 {
		c = c.Scale(0.2 / length)
	}

	if lambda, ok := solve2x2(rA, rB, bodyA.InvMass, bodyB.InvMass, bodyA.InvInertia, bodyB.InvInertia, c); ok {
		applyPositionCorrection(bodyA, bodyB, lambda)
	}

	angleError := clamp(wrapAngle(bodyB.Angle-bodyA.Angle), -0.2, 0.2)
	kAngular := bodyA.InvInertia + bodyB.InvInertia
	if kAngular <= 0 {
		return
	}
	angularImpulse := -angleError / kAngular
	if bodyA.Kind != body.Static {
		bodyA.Angle -= angularImpulse * bodyA.InvInertia
	}
	if bodyB.Kind != body.Static {
		bodyB.Angle += angularImpulse * bodyB.InvInertia
	}
}
