package broadphase

import "testing"

func TestCanonical(t *testing.T) {
	if got := Canonical(5, 2); got != (Pair{A: 2, B: 5}) {
		t.Errorf("Canonical(5,2) = %v", got)
	}
	if got := Canonical(2, 5); got != (Pair{A: 2, B: 5}) {
		t.Errorf("Canonical(2,5) = %v", got)
	}
}

func TestKeySymmetric(t *testing.T) {
	if Key(3, 9) != Key(9, 3) {
		t.Error("Key should be symmetric in argument order")
	}
	if Key(3, 9) == Key(3, 10) {
		t.Error("distinct pairs should not collide")
	}
}
