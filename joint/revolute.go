package joint

import "github.com/0x5844/rigid2d/body"

// solveRevoluteVelocity is the hinge joint's velocity solve: a rigid
// point-to-point constraint plus an optional motor and angle limit, ported
// from solve_revolute_joint_velocity. Unlike the original, the motor
// bound uses the caller's actual dt rather than a hardcoded 60fps
// assumption, and the limit/motor effective mass is computed from this
// joint's own angular inverse-mass sum rather than reusing a stale
// distance-joint field (the original's joint->effectiveMass is only ever
// populated for DISTANCE_JOINT, so a revolute joint reading it for its
// motor/limit always saw zero).
func solveRevoluteVelocity(j *Joint, bodyA, bodyB *body.Body, dt float64) {
	rA, _ := worldAnchor(bodyA, j.LocalAnchorA)
	rB, _ := worldAnchor(bodyB, j.LocalAnchorB)

	dv := velocityAtAnchor(bodyB, rB).Sub(velocityAtAnchor(bodyA, rA))
	if lambda, ok := solve2x2(rA, rB, bodyA.InvMass, bodyB.InvMass, bodyA.InvInertia, bodyB.InvInertia, dv); ok {
		applyLinearAngular(bodyA, bodyB, rA, rB, lambda)
	}

	kAngular := bodyA.InvInertia + bodyB.InvInertia

	if j.EnableMotor && kAngular > 0 {
		angularVel := bodyB.AngularVelocity - bodyA.AngularVelocity
		motorLambda := (j.MotorSpeed - angularVel) / kAngular

		oldMotorImpulse := j.MotorImpulse
		maxImpulse := j.MaxMotorTorque * dt
		j.MotorImpulse = clamp(oldMotorImpulse+motorLambda, -maxImpulse, maxImpulse)
		motorLambda = j.MotorImpulse - oldMotorImpulse

		applyAngularOnly(bodyA, bodyB, motorLambda)
	}

	if j.EnableLimit && kAngular > 0 {
		angle := wrapAngle(bodyB.Angle - bodyA.Angle - j.ReferenceAngle)

		c := 0.0
		if angle < j.LowerAngle {
			c = angle - j.LowerAngle
		} else if angle > j.UpperAngle {
			c = angle - j.UpperAngle
		}

		if c != 0 {
			angularVel := bodyB.AngularVelocity - bodyA.AngularVelocity
			limitLambda := (-angularVel - 0.2*c/dt) / kAngular
			applyAngularOnly(bodyA, bodyB, limitLambda)
		}
	}
}

// solveRevolutePosition re-aligns the two anchor points, ported from
// solve_revolute_joint_position.
func solveRevolutePosition(j *Joint, bodyA, bodyB *body.Body) {
	rA, pA := worldAnchor(bodyA, j.LocalAnchorA)
	rB, pB := worldAnchor(bodyB, j.LocalAnchorB)

	c := pB.Sub(pA)
	if length := c.Length(); length > 0.2 {
		c = c.Scale(0.2 / length)
	}

	if lambda, ok := solve2x2(rA, rB, bodyA.InvMass, bodyB.InvMass, bodyA.InvInertia, bodyB.InvInertia, c); ok {
		applyPositionCorrection(bodyA, bodyB, lambda)
	}
}

func applyAngularOnly(bodyA, bodyB *body.Body, lambda float64) {
	if bodyA.Kind != body.Static {
		bodyA.AngularVelocity -= lambda * bodyA.InvInertia
	}
	if bodyB.Kind != body.Static {
		bodyB.AngularVelocity += lambda * bodyB.InvInertia
	}
}
