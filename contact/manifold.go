// Package contact holds the per-pair contact manifold and the
// sequential-impulse velocity/position solver, grounded on the teacher's
// single-pass ResolveCollision/applyFriction/correctPositions, rebuilt into
// an iterative, warm-started form per
// ByteArena-box2d__DynamicsB2ContactSolver.go's B2ContactVelocityConstraint
// layout (simplified to per-point rather than block solving).
package contact

import "github.com/0x5844/rigid2d/vec2"

// MaxPoints bounds manifold point count: circle contacts always produce 1,
// box/box clipping produces at most 2.
const MaxPoints = 2

// Feature types, ported from ByteArena-box2d__CollisionB2Collision.go's
// B2ContactFeature type tags.
const (
	FeatureVertex uint8 = 0
	FeatureFace   uint8 = 1
)

// FeatureID identifies which geometric features produced a contact point,
// used as the warm-start key so an impulse survives across ticks as long
// as the same vertex/face pairing persists.
type FeatureID struct {
	IndexA, IndexB uint8
	TypeA, TypeB   uint8
}

func (f FeatureID) key() uint32 {
	return uint32(f.IndexA) | uint32(f.IndexB)<<8 | uint32(f.TypeA)<<16 | uint32(f.TypeB)<<24
}

// Manifold is the narrowphase's output for one candidate pair: a shared
// normal (pointing from A to B) and up to MaxPoints contact points, each
// with its own penetration depth and feature id.
type Manifold struct {
	Normal      vec2.Vec2
	PointCount  int
	Points      [MaxPoints]vec2.Vec2
	Penetration [MaxPoints]float64
	Features    [MaxPoints]FeatureID
}
