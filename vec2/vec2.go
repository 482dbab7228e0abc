// Package vec2 implements 2D vector and small-matrix math shared by every
// other package in this module.
package vec2

import "math"

// Vec2 is a 2D vector or point, depending on context.
type Vec2 struct {
	X, Y float64
}

func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross is the 2D scalar cross product v × o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// CrossScalar computes s × v, the vector perpendicular-scale used when
// crossing a scalar angular quantity with a lever arm.
func CrossScalar(s float64, v Vec2) Vec2 {
	return Vec2{X: -s * v.Y, Y: s * v.X}
}

func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

func (v Vec2) DistanceSquared(o Vec2) float64 {
	return v.Sub(o).LengthSquared()
}

// Normalize returns the unit vector, and the original length. A zero vector
// normalizes to the zero vector with length 0.
func (v Vec2) Normalize() (Vec2, float64) {
	length := v.Length()
	if length < 1e-12 {
		return Vec2{}, 0
	}
	inv := 1.0 / length
	return Vec2{X: v.X * inv, Y: v.Y * inv}, length
}

// Rotate rotates v by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func Min(a, b Vec2) Vec2 {
	return Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

func Max(a, b Vec2) Vec2 {
	return Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

// WrapAngle normalizes an angle to (−π, π].
func WrapAngle(angle float64) float64 {
	const twoPi = 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if angle <= -math.Pi {
		angle += twoPi
	} else if angle > math.Pi {
		angle -= twoPi
	}
	return angle
}

// Mat22 is a 2x2 matrix used by the revolute and weld joints' point-to-point
// constraints.
type Mat22 struct {
	A11, A12 float64
	A21, A22 float64
}

func (m Mat22) Determinant() float64 {
	return m.A11*m.A22 - m.A12*m.A21
}

// Solve solves m*x = b for x, returning the zero vector if m is singular.
func (m Mat22) Solve(b Vec2) Vec2 {
	det := m.Determinant()
	if det == 0 {
		return Vec2{}
	}
	invDet := 1.0 / det
	return Vec2{
		X: invDet * (m.A22*b.X - m.A12*b.Y),
		Y: invDet * (m.A11*b.Y - m.A21*b.X),
	}
}
