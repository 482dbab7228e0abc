package narrowphase

import (
	"math"
	"testing"

	"github.com/0x5844/rigid2d/shape"
	"github.com/0x5844/rigid2d/vec2"
)

func TestCircleCircleOverlap(t *testing.T) {
	a := Transform{Position: vec2.New(0, 0)}
	b := Transform{Position: vec2.New(1.5, 0)}
	m, ok := Collide(a, shape.NewCircle(1), b, shape.NewCircle(1))
	if !ok {
		t.Fatal("expected overlap")
	}
	if m.Normal.X <= 0 {
		t.Errorf("normal should point from a to b, got %+v", m.Normal)
	}
	wantPen := 0.5
	if math.Abs(m.Penetration[0]-wantPen) > 1e-9 {
		t.Errorf("penetration = %v, want %v", m.Penetration[0], wantPen)
	}
}

func TestCircleCircleSeparated(t *testing.T) {
	a := Transform{Position: vec2.New(0, 0)}
	b := Transform{Position: vec2.New(5, 0)}
	_, ok := Collide(a, shape.NewCircle(1), b, shape.NewCircle(1))
	if ok {
		t.Fatal("expected no overlap")
	}
}

func TestCircleBoxNormalDirection(t *testing.T) {
	circle := Transform{Position: vec2.New(1.5, 0)}
	box := Transform{Position: vec2.New(0, 0)}

	mDirect, ok := Collide(circle, shape.NewCircle(1), box, shape.NewBox(1, 1))
	if !ok {
		t.Fatal("expected circle/box overlap")
	}
	if mDirect.Normal.X >= 0 {
		t.Errorf("circle-to-box normal should point in -x, got %+v", mDirect.Normal)
	}

	mSwapped, ok := Collide(box, shape.NewBox(1, 1), circle, shape.NewCircle(1))
	if !ok {
		t.Fatal("expected box/circle overlap")
	}
	if mSwapped.Normal.X <= 0 {
		t.Errorf("box-to-circle normal should point in +x, got %+v", mSwapped.Normal)
	}
}

func TestCircleBoxRotated(t *testing.T) {
	// Box rotated 45deg, circle poking a corner region.
	a := Transform{Position: vec2.New(0, 0), Angle: math.Pi / 4}
	b := Transform{Position: vec2.New(1.6, 0)}
	_, ok := Collide(b, shape.NewCircle(0.5), a, shape.NewBox(1, 1))
	if !ok {
		t.Fatal("expected circle/rotated-box overlap")
	}
}

func TestBoxBoxAxisAligned(t *testing.T) {
	a := Transform{Position: vec2.New(0, 0)}
	b := Transform{Position: vec2.New(1.5, 0)}
	m, ok := Collide(a, shape.NewBox(1, 1), b, shape.NewBox(1, 1))
	if !ok {
		t.Fatal("expected overlap")
	}
	if m.PointCount == 0 {
		t.Fatal("expected at least one contact point")
	}
	if math.Abs(m.Normal.X-1) > 1e-6 {
		t.Errorf("normal = %+v, want (1,0)", m.Normal)
	}
}

func TestBoxBoxSeparated(t *testing.T) {
	a := Transform{Position: vec2.New(0, 0)}
	b := Transform{Position: vec2.New(10, 0)}
	_, ok := Collide(a, shape.NewBox(1, 1), b, shape.NewBox(1, 1))
	if ok {
		t.Fatal("expected no overlap")
	}
}

func TestBoxBoxNormalDirectionSwapped(t *testing.T) {
	a := Transform{Position: vec2.New(0, 0)}
	b := Transform{Position: vec2.New(1.5, 0)}
	mAB, ok := Collide(a, shape.NewBox(1, 1), b, shape.NewBox(1, 1))
	if !ok {
		t.Fatal("expected overlap")
	}
	mBA, ok := Collide(b, shape.NewBox(1, 1), a, shape.NewBox(1, 1))
	if !ok {
		t.Fatal("expected overlap")
	}
	if math.Abs(mAB.Normal.X+mBA.Normal.X) > 1e-6 {
		t.Errorf("normals should be opposite: %+v vs %+v", mAB.Normal, mBA.Normal)
	}
}
