package mpi

import (
	"math/rand"
	"testing"
)

func TestExpModExample(t *testing.T) {
	a, e, n := NewInt(), NewInt(), NewInt()
	mustSetHex(t, a, "EFE021C2645FD1DC586E69184AF4A31ED5F53E93B5F123FA41680867BA110131944FE7952E2517337780CB0DB80E61AAE7C8DDC6C5C6AADEB34EB38A2F40D5E6")
	mustSetHex(t, e, "B2E7EFD37075B9F03FF989C7C5051C2034D2A323810251127E7BF8625A4F49A5F3E27F4DA8BD59C47D6DAABA4C8127BD5B5C25763222FEFCCFC38B832366C29E")
	mustSetHex(t, n, "0066A198186C18C10B2F5ED9B522752A9830B69916E535C8F047518A889A43A594B6BED27A168D31D4A52F88925AA8F5")

	want := NewInt()
	mustSetHex(t, want, "36E139AEA55215609D2816998ED020BBBD96C37890F65171D948E9BC7CBAA4D9325D24D6A3C12710F10A09FA08AB87")

	m, err := NewModulus(n)
	if err != nil {
		t.Fatalf("NewModulus: %v", err)
	}
	got := NewInt()
	if err := m.Exp(got, a, e); err != nil {
		t.Fatalf("Exp: %v", err)
	}
	if got.Cmp(want) != 0 {
		gotS, _ := got.String16(16)
		wantS, _ := want.String16(16)
		t.Errorf("A^E mod N = %s, want %s", gotS, wantS)
	}
}

func TestExpModIdentities(t *testing.T) {
	n := NewInt().SetInt64(1000003)
	m, err := NewModulus(n)
	if err != nil {
		t.Fatalf("NewModulus: %v", err)
	}

	r := rand.New(rand.NewSource(14))
	for i := 0; i < 50; i++ {
		a := NewInt().SetInt64(r.Int63n(1000002) + 1)

		// A^0 mod N = 1.
		zero := NewInt()
		res := NewInt()
		if err := m.Exp(res, a, zero); err != nil {
			t.Fatalf("Exp: %v", err)
		}
		if res.CmpInt64(1) != 0 {
			t.Fatalf("A^0 mod N != 1 for A=%v", a)
		}

		// A^1 mod N = A mod N.
		one := NewInt().SetInt64(1)
		if err := m.Exp(res, a, one); err != nil {
			t.Fatalf("Exp: %v", err)
		}
		want := NewInt()
		if err := want.Mod(a, n); err != nil {
			t.Fatalf("Mod: %v", err)
		}
		if res.Cmp(want) != 0 {
			t.Fatalf("A^1 mod N != A mod N for A=%v", a)
		}

		// A^E * A^F == A^(E+F) mod N.
		e := NewInt().SetInt64(r.Int63n(500))
		f := NewInt().SetInt64(r.Int63n(500))

		ae, af := NewInt(), NewInt()
		if err := m.Exp(ae, a, e); err != nil {
			t.Fatalf("Exp: %v", err)
		}
		if err := m.Exp(af, a, f); err != nil {
			t.Fatalf("Exp: %v", err)
		}
		left := NewInt()
		if err := left.Mod(NewInt().Mul(ae, af), n); err != nil {
			t.Fatalf("Mod: %v", err)
		}

		ef := NewInt().Add(e, f)
		right := NewInt()
		if err := m.Exp(right, a, ef); err != nil {
			t.Fatalf("Exp: %v", err)
		}

		if left.Cmp(right) != 0 {
			t.Fatalf("A^E * A^F != A^(E+F) mod N for A=%v E=%v F=%v", a, e, f)
		}
	}
}

func TestExpModRejectsNegativeExponent(t *testing.T) {
	n := NewInt().SetInt64(101)
	m, err := NewModulus(n)
	if err != nil {
		t.Fatalf("NewModulus: %v", err)
	}
	a := NewInt().SetInt64(5)
	e := NewInt().SetInt64(-1)
	x := NewInt()
	if err := m.Exp(x, a, e); err == nil {
		t.Errorf("Exp should reject a negative exponent")
	}
}

func TestWindowSizeTable(t *testing.T) {
	cases := []struct {
		bits int
		want int
	}{
		{1, 1}, {23, 1}, {24, 3}, {79, 3}, {80, 4},
		{239, 4}, {240, 5}, {671, 5}, {672, 6}, {2048, 6},
	}
	for _, c := range cases {
		if got := windowSize(c.bits); got != c.want {
			t.Errorf("windowSize(%d) = %d, want %d", c.bits, got, c.want)
		}
	}
}
