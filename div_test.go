package mpi

import (
	"math/rand"
	"testing"
)

func TestDivModExample(t *testing.T) {
	a, n := NewInt(), NewInt()
	mustSetHex(t, a, "EFE021C2645FD1DC586E69184AF4A31ED5F53E93B5F123FA41680867BA110131944FE7952E2517337780CB0DB80E61AAE7C8DDC6C5C6AADEB34EB38A2F40D5E6")
	mustSetHex(t, n, "0066A198186C18C10B2F5ED9B522752A9830B69916E535C8F047518A889A43A594B6BED27A168D31D4A52F88925AA8F5")

	wantQ, wantR := NewInt(), NewInt()
	mustSetHex(t, wantQ, "256567336059E52CAE22925474705F39A94")
	mustSetHex(t, wantR, "6613F26162223DF488E9CD48CC132C7A0AC93C701B001B092E4E5B9F73BCD27B9EE50D0657C77F374E903CDFA4C642")

	q, r := NewInt(), NewInt()
	if err := a.DivMod(q, r, n); err != nil {
		t.Fatalf("DivMod: %v", err)
	}
	if q.Cmp(wantQ) != 0 {
		gotS, _ := q.String16(16)
		wantS, _ := wantQ.String16(16)
		t.Errorf("Q = %s, want %s", gotS, wantS)
	}
	if r.Cmp(wantR) != 0 {
		gotS, _ := r.String16(16)
		wantS, _ := wantR.String16(16)
		t.Errorf("R = %s, want %s", gotS, wantS)
	}
}

func TestDivModIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for i := 0; i < 200; i++ {
		a := randomSignedInt(r, 8)
		b := randomSignedInt(r, 4)
		if b.IsZero() {
			continue
		}

		q, rem := NewInt(), NewInt()
		if err := a.DivMod(q, rem, b); err != nil {
			t.Fatalf("DivMod: %v", err)
		}

		recon := NewInt().Add(NewInt().Mul(q, b), rem)
		if recon.Cmp(a) != 0 {
			t.Fatalf("Q*B+R != A for a=%v b=%v", a, b)
		}
		if rem.cmpAbs(b) >= 0 {
			t.Fatalf("|R| >= |B|")
		}
		wantSignQ := a.effSign() * b.effSign()
		if !q.IsZero() && q.sign != wantSignQ {
			t.Fatalf("sign(Q) wrong: got %d want %d", q.sign, wantSignQ)
		}
		if !rem.IsZero() && rem.sign != a.effSign() {
			t.Fatalf("sign(R) wrong: got %d want %d", rem.sign, a.effSign())
		}
	}
}

func TestDivByZero(t *testing.T) {
	a := NewInt().SetInt64(10)
	z := NewInt()
	q, r := NewInt(), NewInt()
	if err := a.DivMod(q, r, z); err == nil {
		t.Errorf("DivMod by zero should fail")
	}
}

func TestModNormalizesIntoRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		a := randomSignedInt(r, 6)
		b := randomSignedInt(r, 3)
		b.sign = 1
		if b.IsZero() {
			continue
		}

		m := NewInt()
		if err := m.Mod(a, b); err != nil {
			t.Fatalf("Mod: %v", err)
		}
		if m.Sign() < 0 || m.cmpAbs(b) >= 0 {
			t.Fatalf("Mod result %v out of [0, %v)", m, b)
		}

		diff := NewInt().Sub(a, m)
		q := NewInt()
		rem := NewInt()
		if err := diff.DivMod(q, rem, b); err != nil {
			t.Fatalf("DivMod: %v", err)
		}
		if !rem.IsZero() {
			t.Fatalf("a - mod(a,b) should be divisible by b")
		}
	}
}
