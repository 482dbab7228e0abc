package joint

import "github.com/0x5844/rigid2d/body"

// solvePrismaticVelocity is the slider joint's velocity solve: a
// perpendicular-to-axis constraint, an angular (no relative rotation)
// constraint, and an optional motor along the axis. Ported from
// solve_prismatic_joint_velocity, with the motor bound using the actual
// dt rather than a hardcoded 60fps assumption.
func solvePrismaticVelocity(j *Joint, bodyA, bodyB *body.Body, dt float64) {
	rA, _ := worldAnchor(bodyA, j.LocalAnchorA)
	rB, _ := worldAnchor(bodyB, j.LocalAnchorB)

	axis := bodyA.WorldVector(j.AxisLocal)
	perp := axis.Perp()

	dv := velocityAtAnchor(bodyB, rB).Sub(velocityAtAnchor(bodyA, rA))

	vPerp := dv.Dot(perp)
	raCrossPerp := rA.Cross(perp)
	rbCrossPerp := rB.Cross(perp)
	kPerp := bodyA.InvMass + bodyB.InvMass +
		raCrossPerp*raCrossPerp*bodyA.InvInertia + rbCrossPerp*rbCrossPerp*bodyB.InvInertia

	if kPerp > 0 {
		lambdaPerp := -vPerp / kPerp
		impulse := perp.Scale(lambdaPerp)
		if bodyA.Kind != body.Static {
			bodyA.Velocity = bodyA.Velocity.Sub(impulse.Scale(bodyA.InvMass))
			bodyA.AngularVelocity -= raCrossPerp * lambdaPerp * bodyA.InvInertia
		}
		if bodyB.Kind != body.Static {
			bodyB.Velocity = bodyB.Velocity.Add(impulse.Scale(bodyB.InvMass))
			bodyB.AngularVelocity += rbCrossPerp * lambdaPerp * bodyB.InvInertia
		}
	}

	kAngular := bodyA.InvInertia + bodyB.InvInertia
	if kAngular > 0 {
		angularVel := bodyB.AngularVelocity - bodyA.AngularVelocity
		lambdaAngular := -angularVel / kAngular
		applyAngularOnly(bodyA, bodyB, lambdaAngular)
	}

	if j.EnableMotor {
		vAxis := dv.Dot(axis)
		raCrossAxis := rA.Cross(axis)
		rbCrossAxis := rB.Cross(axis)
		kAxis := bodyA.InvMass + bodyB.InvMass +
			raCrossAxis*raCrossAxis*bodyA.InvInertia + rbCrossAxis*rbCrossAxis*bodyB.InvInertia

		if kAxis > 0 {
			motorLambda := (j.MotorSpeed - vAxis) / kAxis

			oldMotorImpulse := j.MotorImpulse
			maxImpulse := j.MaxMotorForce * dt
			j.MotorImpulse = clamp(oldMotorImpulse+motorLambda, -maxImpulse, maxImpulse)
			motorLambda = j.MotorImpulse - oldMotorImpulse

			impulse := axis.Scale(motorLambda)
			if bodyA.Kind != body.Static {
				bodyA.Velocity = bodyA.Velocity.Sub(impulse.Scale(bodyA.InvMass))
				bodyA.AngularVelocity -= raCrossAxis * motorLambda * bodyA.InvInertia
			}
			if bodyB.Kind != body.Static {
				bodyB.Velocity = bodyB.Velocity.Add(impulse.Scale(bodyB.InvMass))
				bodyB.AngularVelocity += rbCrossAxis * motorLambda * bodyB.InvInertia
			}
		}
	}
}

// solvePrismaticPosition corrects drift perpendicular to the slide axis,
// ported from solve_prismatic_joint_position.
func solvePrismaticPosition(j *Joint, bodyA, bodyB *body.Body) {
	rA, pA := worldAnchor(bodyA, j.LocalAnchorA)
	rB, pB := worldAnchor(bodyB, j.LocalAnchorB)

	axis := bodyA.WorldVector(j.AxisLocal)
	perp := axis.Perp()

	d := pB.Sub(pA)
	cPerp := clamp(d.Dot(perp), -0.2, 0.2)

	raCrossPerp := rA.Cross(perp)
	rbCrossPerp := rB.Cross(perp)
	kPerp := bodyA.InvMass + bodyB.InvMass +
		raCrossPerp*raCrossPerp*bodyA.InvInertia + rbCrossPerp*rbCrossPerp*bodyB.InvInertia

	if kPerp <= 0 {
		return
	}

	impulse := -cPerp / kPerp
	correction := perp.Scale(impulse)
	applyPositionCorrection(bodyA, bodyB, correction)
}
