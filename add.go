package mpi

// addAbs sets x = |a| + |b|, forcing x.sign = +1. This is the variable-
// length generalization of the teacher's equal-length, choice-gated add:
// here the carry chain continues past the shorter operand's limbs and may
// grow x by one extra limb, matching HAC's unsigned addition.
func (x *Int) addAbs(a, b *Int) *Int {
	if a.effLen() < b.effLen() {
		a, b = b, a
	}
	na, nb := a.effLen(), b.effLen()

	// a and b may alias x; stage through a fresh buffer sized for the
	// worst case (one extra carry limb) so writes to x never clobber a
	// read we still need from a or b.
	out := make([]Word, na+1)
	copy(out, a.limbs[:na])

	carry := addc(b.limbs[:nb], out[:nb])
	for i := nb; carry != 0 && i < na; i++ {
		s, c := addWW(out[i], 0, carry)
		out[i] = s
		carry = c
	}
	out[na] = carry

	x.limbs = out
	x.sign = 1
	x.trim()
	return x
}

// subAbs sets x = |a| - |b|. It returns ErrNegativeValue (wrapped) if
// |a| < |b|; sub_abs never produces a negative magnitude.
func (x *Int) subAbs(a, b *Int) error {
	if a.cmpAbs(b) < 0 {
		return errNegative("subAbs: |a| < |b|")
	}
	na, nb := a.effLen(), b.effLen()

	// Stage through a fresh buffer: a and b may alias x, and the aliasing
	// rule requires detecting x == b in particular (subtracting into the
	// minuend's own storage while still reading the subtrahend).
	out := make([]Word, na)
	copy(out, a.limbs[:na])

	borrow := subb(b.limbs[:nb], out[:nb])
	for i := nb; borrow != 0 && i < na; i++ {
		d, bw := subWW(out[i], 0, borrow)
		out[i] = d
		borrow = bw
	}

	x.limbs = out
	x.sign = 1
	x.trim()
	return nil
}

// Add sets x = a + b, dispatching on sign per spec.md's additive layer:
// same-sign addition is |a|+|b| with a's sign; opposite-sign addition
// compares magnitudes and takes the difference with the larger's sign.
func (x *Int) Add(a, b *Int) *Int {
	// Read a's sign before addAbs: x may alias a, and addAbs resets x.sign.
	sa := a.effSign()
	if sa == b.effSign() {
		x.addAbs(a, b)
		x.sign = sa
		x.normalizeZero()
		return x
	}
	return x.signedSub(a, b)
}

// Sub sets x = a - b.
func (x *Int) Sub(a, b *Int) *Int {
	neg := b.Clone()
	neg.sign = -neg.effSign()
	return x.Add(a, neg)
}

// signedSub implements addition of opposite-signed operands (equivalently,
// subtraction of same-signed operands): compare magnitudes, subtract the
// smaller from the larger, and take the sign of whichever had the larger
// magnitude (ties resolve to +1, matching "zero is always positive").
func (x *Int) signedSub(a, b *Int) *Int {
	// Read both signs first: x may alias a or b, and subAbs resets x.sign.
	sa, sb := a.effSign(), b.effSign()
	switch a.cmpAbs(b) {
	case 0:
		x.Free()
	case 1:
		_ = x.subAbs(a, b)
		x.sign = sa
	default:
		_ = x.subAbs(b, a)
		x.sign = sb
	}
	x.normalizeZero()
	return x
}

// effSign returns x's sign, treating a zero-valued Int as always positive
// regardless of what its sign field currently holds.
func (x *Int) effSign() int {
	if x.IsZero() {
		return 1
	}
	return x.sign
}

// normalizeZero enforces the invariant that a numerically-zero Int always
// carries sign +1.
func (x *Int) normalizeZero() {
	if x.IsZero() {
		x.sign = 1
	}
}

// AddInt64 sets x = a + z for a small signed scalar z, via the transient
// single-limb view.
func (x *Int) AddInt64(a *Int, z int64) *Int {
	var buf [1]Word
	return x.Add(a, wordView(&buf, z))
}

// SubInt64 sets x = a - z for a small signed scalar z.
func (x *Int) SubInt64(a *Int, z int64) *Int {
	var buf [1]Word
	return x.Sub(a, wordView(&buf, z))
}

func errNegative(msg string) error {
	return wrapErr(ErrNegativeValue, msg)
}
