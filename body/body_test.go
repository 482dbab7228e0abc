package body

import (
	"math"
	"testing"

	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

func TestStoreCreateDestroyPreservesOthers(t *testing.T) {
	s := NewStore(4)
	a := s.Create(New(Dynamic, shape.NewCircle(1), 0, 0, 0, 1))
	b := s.Create(New(Dynamic, shape.NewCircle(1), 1, 0, 0, 1))
	c := s.Create(New(Dynamic, shape.NewCircle(1), 2, 0, 0, 1))

	s.Destroy(a)

	if s.Has(a) {
		t.Error("a should be gone")
	}
	if !s.Has(b) || !s.Has(c) {
		t.Error("b and c should remain live")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	bb, ok := s.Get(b)
	if !ok || bb.Position.X != 1 {
		t.Errorf("b moved unexpectedly: %+v", bb)
	}
	cc, ok := s.Get(c)
	if !ok || cc.Position.X != 2 {
		t.Errorf("c moved unexpectedly: %+v", cc)
	}
}

func TestDestroyUnknownIDIsNoOp(t *testing.T) {
	s := NewStore(4)
	s.Create(New(Dynamic, shape.NewCircle(1), 0, 0, 0, 1))
	s.Destroy(999) // must not panic
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestStaticBodyImmutable(t *testing.T) {
	b := New(Static, shape.NewBox(1, 1), 5, 5, 0, 0)
	if b.InvMass != 0 || b.InvInertia != 0 {
		t.Errorf("static body should have zero inverse mass/inertia, got %+v", b)
	}
	before := b
	b.IntegrateVelocity(1.0/60.0, vec2.New(0, -981))
	b.IntegratePosition(1.0 / 60.0)
	if b != before {
		t.Errorf("static body mutated: before %+v after %+v", before, b)
	}
}

func TestDynamicBodyIntegration(t *testing.T) {
	b := New(Dynamic, shape.NewCircle(5), 0, 0, 0, 1)
	b.IntegrateVelocity(1.0/60.0, vec2.New(0, -981))
	wantVy := -981.0 / 60.0
	if math.Abs(b.Velocity.Y-wantVy) > 1e-9 {
		t.Errorf("vy = %v, want %v", b.Velocity.Y, wantVy)
	}
	b.IntegratePosition(1.0 / 60.0)
	wantY := wantVy / 60.0
	if math.Abs(b.Position.Y-wantY) > 1e-9 {
		t.Errorf("y = %v, want %v", b.Position.Y, wantY)
	}
}

func TestApplyImpulseAtCenterNoAngular(t *testing.T) {
	b := New(Dynamic, shape.NewCircle(1), 0, 0, 0, 1)
	b.ApplyImpulse(vec2.New(10, 0), nil)
	if b.Velocity.X != 10 {
		t.Errorf("vx = %v, want 10", b.Velocity.X)
	}
	if b.AngularVelocity != 0 {
		t.Errorf("angular velocity should be 0, got %v", b.AngularVelocity)
	}
}

func TestApplyImpulseOffCenterAddsAngular(t *testing.T) {
	b := New(Dynamic, shape.NewBox(1, 1), 0, 0, 0, 6)
	p := vec2.New(0, 1)
	b.ApplyImpulse(vec2.New(10, 0), &p)
	if b.AngularVelocity == 0 {
		t.Error("off-center impulse should induce angular velocity")
	}
}

func TestApplyForceOnStaticIsNoOp(t *testing.T) {
	b := New(Static, shape.NewCircle(1), 0, 0, 0, 0)
	b.ApplyForce(100, 100)
	if b.Force != (vec2.Vec2{}) {
		t.Error("static body force should stay zero")
	}
}
