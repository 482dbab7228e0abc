package joint

import "github.com/0x5844/rigid2d/body"

// InitVelocity prepares per-tick state. It zeroes the accumulated distance
// and motor impulses, so the motor bound (max force/torque times dt)
// applies to each tick on its own; no impulse is carried over to
// warm-start the next tick. Only the distance joint has softness
// parameters (its optional spring), matching
// init_joint_velocity_constraints only ever touching DISTANCE_JOINT.
func (j *Joint) InitVelocity(dt float64) {
	j.Impulse = 0
	j.MotorImpulse = 0
	if j.Kind == Distance {
		j.initDistance(dt)
	}
}

// SolveVelocity dispatches to the kind-specific velocity solver, mirroring
// solve_joint_velocity_constraints' switch.
func SolveVelocity(j *Joint, bodyA, bodyB *body.Body, dt float64) {
	switch j.Kind {
	case Distance:
		solveDistanceVelocity(j, bodyA, bodyB)
	case Revolute:
		solveRevoluteVelocity(j, bodyA, bodyB, dt)
	case Prismatic:
		solvePrismaticVelocity(j, bodyA, bodyB, dt)
	case Weld:
		solveWeldVelocity(j, bodyA, bodyB)
	}
}

// SolvePosition dispatches to the kind-specific position solver, mirroring
// solve_joint_position_constraints' switch.
func SolvePosition(j *Joint, bodyA, bodyB *body.Body) {
	switch j.Kind {
	case Distance:
		solveDistancePosition(j, bodyA, bodyB)
	case Revolute:
		solveRevolutePosition(j, bodyA, bodyB)
	case Prismatic:
		solvePrismaticPosition(j, bodyA, bodyB)
	case Weld:
		solveWeldPosition(j, bodyA, bodyB)
	}
}
