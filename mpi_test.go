package mpi

import "testing"

func TestNewIntIsZero(t *testing.T) {
	x := NewInt()
	if !x.IsZero() {
		t.Errorf("NewInt() should be zero")
	}
	if x.Sign() != 0 {
		t.Errorf("Sign() of zero = %d, want 0", x.Sign())
	}
}

func TestSetIntCmp(t *testing.T) {
	a := NewInt().SetInt64(42)
	b := NewInt().SetInt64(-42)
	if a.Sign() != 1 {
		t.Errorf("Sign(42) = %d, want 1", a.Sign())
	}
	if b.Sign() != -1 {
		t.Errorf("Sign(-42) = %d, want -1", b.Sign())
	}
	if a.Cmp(b) <= 0 {
		t.Errorf("Cmp(42, -42) should be positive")
	}
	if a.CmpInt64(42) != 0 {
		t.Errorf("CmpInt64(42) should be 0")
	}
}

func TestCloneIndependence(t *testing.T) {
	a := NewInt().SetInt64(7)
	b := a.Clone()
	b.AddInt64(b, 1)
	if a.CmpInt64(7) != 0 {
		t.Errorf("mutating a clone changed the original")
	}
	if b.CmpInt64(8) != 0 {
		t.Errorf("clone did not take the mutation")
	}
}

func TestSwap(t *testing.T) {
	a := NewInt().SetInt64(1)
	b := NewInt().SetInt64(2)
	a.Swap(b)
	if a.CmpInt64(2) != 0 || b.CmpInt64(1) != 0 {
		t.Errorf("Swap did not exchange values")
	}
}

func TestFreeResetsToZero(t *testing.T) {
	x := NewInt().SetInt64(99)
	x.Free()
	if !x.IsZero() {
		t.Errorf("Free() should leave the value at zero")
	}
	if x.Sign() != 0 {
		t.Errorf("Free() should leave sign 0")
	}
}

func TestNormalizeZeroSign(t *testing.T) {
	a := NewInt().SetInt64(5)
	b := NewInt().SetInt64(5)
	x := NewInt().Sub(a, b)
	if x.Sign() != 0 {
		t.Errorf("5 - 5 should have sign 0, got %d", x.Sign())
	}
}
