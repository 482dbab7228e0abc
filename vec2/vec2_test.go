package vec2

import (
	"math"
	"testing"
)

func TestAddSub(t *testing.T) {
	a := New(1, 2)
	b := New(3, -1)
	if got := a.Add(b); got != (Vec2{4, 1}) {
		t.Errorf("Add = %v, want {4 1}", got)
	}
	if got := a.Sub(b); got != (Vec2{-2, 3}) {
		t.Errorf("Sub = %v, want {-2 3}", got)
	}
}

func TestDotCross(t *testing.T) {
	a := New(1, 0)
	b := New(0, 1)
	if got := a.Dot(b); got != 0 {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := a.Cross(b); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	got, length := New(0, 0).Normalize()
	if got != (Vec2{}) || length != 0 {
		t.Errorf("Normalize(zero) = %v, %v, want {0 0}, 0", got, length)
	}
}

func TestNormalize(t *testing.T) {
	got, length := New(3, 4).Normalize()
	want := Vec2{0.6, 0.8}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
	if length != 5 {
		t.Errorf("length = %v, want 5", length)
	}
}

func TestRotate(t *testing.T) {
	v := New(1, 0)
	got := v.Rotate(math.Pi / 2)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("Rotate = %v, want {0 1}", got)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{math.Pi + 0.1, -math.Pi + 0.1},
		{-math.Pi - 0.1, math.Pi - 0.1},
		{3 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := WrapAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMat22Solve(t *testing.T) {
	m := Mat22{A11: 2, A12: 0, A21: 0, A22: 2}
	got := m.Solve(New(4, 6))
	if got != (Vec2{2, 3}) {
		t.Errorf("Solve = %v, want {2 3}", got)
	}
}

func TestMat22SolveSingular(t *testing.T) {
	m := Mat22{}
	if got := m.Solve(New(1, 1)); got != (Vec2{}) {
		t.Errorf("Solve(singular) = %v, want zero", got)
	}
}
