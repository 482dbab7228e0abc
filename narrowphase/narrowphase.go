// Package narrowphase produces contact manifolds for a broadphase-reported
// candidate pair. Circle/circle and circle/box are grounded on the
// teacher's detectCircleCircle/detectCircleBox (generalized to rotated
// boxes, which the teacher's axis-aligned version does not handle);
// box/box is rebuilt as real separating-axis + Sutherland-Hodgman clipping,
// since the teacher's detectBoxBox is only an AABB-overlap test and would
// misreport rotated boxes as colliding along world axes.
package narrowphase

import (
	"math"

	"github.com/0x5844/rigid2d/contact"
	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

// Transform is the position/rotation pair narrowphase needs from a body;
// callers pass this instead of a full body.Body to keep this package free
// of a dependency on the body store.
type Transform struct {
	Position vec2.Vec2
	Angle    float64
}

type collideFunc func(a Transform, sa shape.Shape, b Transform, sb shape.Shape) (contact.Manifold, bool)

// dispatch is indexed by [shapeA.Kind][shapeB.Kind], the tag+payload
// dispatch table called for in the redesigned shape polymorphism.
var dispatch = [2][2]collideFunc{
	shape.Circle: {
		shape.Circle: collideCircleCircle,
		shape.Box:    collideCircleBox,
	},
	shape.Box: {
		shape.Circle: collideBoxCircleSwapped,
		shape.Box:    collideBoxBox,
	},
}

// Collide returns the contact manifold between two shaped bodies, or false
// if they are not touching. The manifold's normal points from a to b.
func Collide(a Transform, sa shape.Shape, b Transform, sb shape.Shape) (contact.Manifold, bool) {
	fn := dispatch[sa.Kind][sb.Kind]
	return fn(a, sa, b, sb)
}

func collideCircleCircle(a Transform, sa shape.Shape, b Transform, sb shape.Shape) (contact.Manifold, bool) {
	delta := b.Position.Sub(a.Position)
	distSq := delta.LengthSquared()
	totalRadius := sa.Radius + sb.Radius

	if distSq >= totalRadius*totalRadius {
		return contact.Manifold{}, false
	}

	distance := math.Sqrt(distSq)
	penetration := totalRadius - distance

	normal := vec2.New(1, 0)
	if distance > 1e-9 {
		normal = delta.Scale(1.0 / distance)
	}

	point := a.Position.Add(normal.Scale(sa.Radius - penetration*0.5))

	m := contact.Manifold{
		Normal:      normal,
		PointCount:  1,
		Penetration: [contact.MaxPoints]float64{penetration},
	}
	m.Points[0] = point
	m.Features[0] = contact.FeatureID{}
	return m, true
}

// collideCircleBox handles a circle against a (possibly rotated) box by
// working in the box's local frame, unlike the teacher's world-axis-only
// version.
func collideCircleBox(a Transform, sa shape.Shape, b Transform, sb shape.Shape) (contact.Manifold, bool) {
	localCircle := a.Position.Sub(b.Position).Rotate(-b.Angle)

	closestLocal := vec2.New(
		clamp(localCircle.X, -sb.HalfW, sb.HalfW),
		clamp(localCircle.Y, -sb.HalfH, sb.HalfH),
	)

	delta := localCircle.Sub(closestLocal)
	distSq := delta.LengthSquared()
	radiusSq := sa.Radius * sa.Radius
	if distSq >= radiusSq {
		return contact.Manifold{}, false
	}

	distance := math.Sqrt(distSq)
	var localNormal vec2.Vec2
	var penetration float64

	if distance > 1e-9 {
		localNormal = delta.Scale(1.0 / distance)
		penetration = sa.Radius - distance
	} else {
		// Circle center is inside the box: push out along the axis of
		// least penetration.
		xDist := sb.HalfW - math.Abs(localCircle.X)
		yDist := sb.HalfH - math.Abs(localCircle.Y)
		if xDist < yDist {
			penetration = xDist + sa.Radius
			if localCircle.X < 0 {
				localNormal = vec2.New(-1, 0)
			} else {
				localNormal = vec2.New(1, 0)
			}
		} else {
			penetration = yDist + sa.Radius
			if localCircle.Y < 0 {
				localNormal = vec2.New(0, -1)
			} else {
				localNormal = vec2.New(0, 1)
			}
		}
	}

	// localNormal as built above points from the box surface toward the
	// circle (box-to-circle); Collide's contract wants a-to-b, and a is the
	// circle here, so flip it before rotating into world space.
	normal := localNormal.Rotate(b.Angle).Neg()
	point := b.Position.Add(closestLocal.Rotate(b.Angle))

	m := contact.Manifold{
		Normal:      normal,
		PointCount:  1,
		Penetration: [contact.MaxPoints]float64{penetration},
	}
	m.Points[0] = point
	m.Features[0] = contact.FeatureID{}
	return m, true
}

func collideBoxCircleSwapped(a Transform, sa shape.Shape, b Transform, sb shape.Shape) (contact.Manifold, bool) {
	m, ok := collideCircleBox(b, sb, a, sa)
	if !ok {
		return contact.Manifold{}, false
	}
	m.Normal = m.Normal.Neg()
	return m, true
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
