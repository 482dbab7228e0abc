// Package shape models body shapes as a kind tag plus a small inline
// payload rather than an interface, so narrowphase dispatch can be a flat
// table lookup instead of virtual dispatch (spec's design note: no
// per-shape heap allocation, no interface).
package shape

import (
	"math"

	"github.com/0x5844/rigid2d/aabb"
	"github.com/0x5844/rigid2d/vec2"
)

type Kind uint8

const (
	Circle Kind = iota
	Box
)

// Shape is a tagged union: Radius is meaningful for Circle, HalfW/HalfH for
// Box.
type Shape struct {
	Kind         Kind
	Radius       float64
	HalfW, HalfH float64
}

func NewCircle(radius float64) Shape {
	return Shape{Kind: Circle, Radius: radius}
}

func NewBox(halfW, halfH float64) Shape {
	return Shape{Kind: Box, HalfW: halfW, HalfH: halfH}
}

// AABB computes the shape's bounding box at the given position and
// rotation, unfattened.
func (s Shape) AABB(position vec2.Vec2, rotation float64) aabb.AABB {
	switch s.Kind {
	case Circle:
		return aabb.AABB{
			MinX: position.X - s.Radius, MinY: position.Y - s.Radius,
			MaxX: position.X + s.Radius, MaxY: position.Y + s.Radius,
		}
	default: // Box
		corners := s.WorldCorners(position, rotation)
		box := aabb.AABB{MinX: corners[0].X, MinY: corners[0].Y, MaxX: corners[0].X, MaxY: corners[0].Y}
		for _, c := range corners[1:] {
			box.MinX = math.Min(box.MinX, c.X)
			box.MinY = math.Min(box.MinY, c.Y)
			box.MaxX = math.Max(box.MaxX, c.X)
			box.MaxY = math.Max(box.MaxY, c.Y)
		}
		return box
	}
}

// WorldCorners returns a Box shape's four corners in world space, rotated
// by rotation around position. Order: (-w,-h), (+w,-h), (+w,+h), (-w,+h).
func (s Shape) WorldCorners(position vec2.Vec2, rotation float64) [4]vec2.Vec2 {
	local := [4]vec2.Vec2{
		{X: -s.HalfW, Y: -s.HalfH},
		{X: s.HalfW, Y: -s.HalfH},
		{X: s.HalfW, Y: s.HalfH},
		{X: -s.HalfW, Y: s.HalfH},
	}
	var out [4]vec2.Vec2
	for i, c := range local {
		out[i] = c.Rotate(rotation).Add(position)
	}
	return out
}

// MomentOfInertia returns the moment of inertia for unit orientation about
// the shape's own centroid, for the given mass.
func (s Shape) MomentOfInertia(mass float64) float64 {
	switch s.Kind {
	case Circle:
		return 0.5 * mass * s.Radius * s.Radius
	default: // Box
		w, h := 2*s.HalfW, 2*s.HalfH
		return mass * (w*w + h*h) / 12.0
	}
}
