package contact

import (
	"math"
	"testing"

	"github.com/0x5844/rigid2d/body"
	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

func TestHeadOnRestitutionSeparatesBodies(t *testing.T) {
	a := body.New(body.Dynamic, shape.NewCircle(1), -1, 0, 0, 1)
	b := body.New(body.Dynamic, shape.NewCircle(1), 1, 0, 0, 1)
	a.Material.Restitution = 1.0
	b.Material.Restitution = 1.0
	a.Velocity = vec2.New(5, 0)
	b.Velocity = vec2.New(-5, 0)

	m := Manifold{
		Normal:      vec2.New(1, 0),
		PointCount:  1,
		Penetration: [MaxPoints]float64{0.1},
	}
	m.Points[0] = vec2.New(0, 0)

	cache := NewCache()
	c := Prepare(m, &a, &b, 0, 1, cache)
	for i := 0; i < 8; i++ {
		c.SolveVelocity(&a, &b)
	}

	if a.Velocity.X >= 0 {
		t.Errorf("a.Velocity.X = %v, want negative after elastic bounce", a.Velocity.X)
	}
	if b.Velocity.X <= 0 {
		t.Errorf("b.Velocity.X = %v, want positive after elastic bounce", b.Velocity.X)
	}
}

func TestRestingContactNoResitutionJitter(t *testing.T) {
	a := body.New(body.Dynamic, shape.NewCircle(1), 0, 1, 0, 1)
	ground := body.New(body.Static, shape.NewBox(10, 1), 0, -1, 0, 0)
	a.Velocity = vec2.New(0, -0.01)

	m := Manifold{
		Normal:      vec2.New(0, 1),
		PointCount:  1,
		Penetration: [MaxPoints]float64{0.001},
	}
	m.Points[0] = vec2.New(0, 0)

	cache := NewCache()
	c := Prepare(m, &ground, &a, 0, 1, cache)
	for i := 0; i < 8; i++ {
		c.SolveVelocity(&ground, &a)
	}
	if a.Velocity.Y > 0.001 {
		t.Errorf("resting contact should not add energy, got vy=%v", a.Velocity.Y)
	}
}

func TestWarmStartRecoversPreviousImpulse(t *testing.T) {
	cache := NewCache()
	cache.Store(PointKey{BodyA: 0, BodyB: 1, Feature: FeatureID{}}, Impulse{Normal: 5, Tangent: 0})

	a := body.New(body.Dynamic, shape.NewCircle(1), 0, 0, 0, 1)
	b := body.New(body.Dynamic, shape.NewCircle(1), 2, 0, 0, 1)

	m := Manifold{Normal: vec2.New(1, 0), PointCount: 1}
	m.Points[0] = vec2.New(1, 0)

	c := Prepare(m, &a, &b, 0, 1, cache)
	if c.points[0].normalImpulse != 5 {
		t.Errorf("normalImpulse = %v, want 5 (warm started)", c.points[0].normalImpulse)
	}
	// Warm-starting must have already nudged velocities before any
	// iteration runs.
	if a.Velocity.X >= 0 {
		t.Errorf("warm start should have pushed a backward, got vx=%v", a.Velocity.X)
	}
}

func TestPositionCorrectionConverges(t *testing.T) {
	a := body.New(body.Dynamic, shape.NewCircle(1), -0.9, 0, 0, 1)
	b := body.New(body.Dynamic, shape.NewCircle(1), 0.9, 0, 0, 1)

	m := Manifold{
		Normal:      vec2.New(1, 0),
		PointCount:  1,
		Penetration: [MaxPoints]float64{0.2},
	}
	m.Points[0] = vec2.New(0, 0)

	cache := NewCache()
	c := Prepare(m, &a, &b, 0, 1, cache)
	params := DefaultParams()
	for i := 0; i < params.PositionIterations; i++ {
		c.SolvePosition(&a, &b, params)
	}

	separation := b.Position.X - a.Position.X
	if separation <= 1.8 {
		t.Errorf("separation = %v, want > 1.8 after position correction", separation)
	}
	if math.Abs(separation-2.0) > 0.15 {
		t.Errorf("separation = %v, expected close to radius sum 2.0", separation)
	}
}
