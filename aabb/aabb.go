// Package aabb implements the axis-aligned bounding box primitive shared by
// both broadphase implementations.
package aabb

import (
	"math"

	"github.com/0x5844/rigid2d/vec2"
)

// Skin is the fixed fatten amount applied to a body's tree/grid proxy so
// small moves don't force a proxy re-insertion every tick.
const Skin = 2.0

// AABB is an axis-aligned box with MaxX >= MinX and MaxY >= MinY.
type AABB struct {
	MinX, MinY, MaxX, MaxY float64
}

func New(min, max vec2.Vec2) AABB {
	return AABB{MinX: min.X, MinY: min.Y, MaxX: max.X, MaxY: max.Y}
}

// Overlaps is closed-inclusive: touching boxes overlap.
func (a AABB) Overlaps(b AABB) bool {
	return a.MinX <= b.MaxX && a.MaxX >= b.MinX &&
		a.MinY <= b.MaxY && a.MaxY >= b.MinY
}

func (a AABB) Contains(p vec2.Vec2) bool {
	return p.X >= a.MinX && p.X <= a.MaxX && p.Y >= a.MinY && p.Y <= a.MaxY
}

func (a AABB) Area() float64 {
	return (a.MaxX - a.MinX) * (a.MaxY - a.MinY)
}

func (a AABB) Center() vec2.Vec2 {
	return vec2.Vec2{X: (a.MinX + a.MaxX) * 0.5, Y: (a.MinY + a.MaxY) * 0.5}
}

// Fatten expands the box symmetrically by k on all sides.
func (a AABB) Fatten(k float64) AABB {
	return AABB{MinX: a.MinX - k, MinY: a.MinY - k, MaxX: a.MaxX + k, MaxY: a.MaxY + k}
}

// Union returns the smallest AABB containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// ContainsAABB reports whether a fully contains inner — used by the world's
// broadphase refresh to skip re-fitting a proxy whose fattened box still
// contains the body's tight box.
func (a AABB) ContainsAABB(inner AABB) bool {
	return a.MinX <= inner.MinX && a.MinY <= inner.MinY &&
		a.MaxX >= inner.MaxX && a.MaxY >= inner.MaxY
}
