package mpi

// GCD sets g = gcd(|a|, |b|) using the binary GCD algorithm: strip the
// common power of two shared by both operands, then repeatedly halve each
// operand's remaining factors of two and subtract the smaller from the
// larger until one side reaches zero.
func (g *Int) GCD(a, b *Int) *Int {
	ta := a.Clone()
	ta.sign = 1
	defer ta.Free()
	tb := b.Clone()
	tb.sign = 1

	lz := ta.lsb()
	if lzt := tb.lsb(); lzt < lz {
		lz = lzt
	}
	ta.ShiftRight(lz)
	tb.ShiftRight(lz)

	for !ta.IsZero() {
		ta.ShiftRight(ta.lsb())
		tb.ShiftRight(tb.lsb())

		if ta.cmpAbs(tb) >= 0 {
			_ = ta.subAbs(ta, tb)
			ta.ShiftRight(1)
		} else {
			_ = tb.subAbs(tb, ta)
			tb.ShiftRight(1)
		}
	}

	tb.ShiftLeft(lz)
	g.Swap(tb)
	tb.Free()
	g.sign = 1
	g.normalizeZero()
	return g
}

// InvMod sets x = a^-1 mod n via the extended binary GCD (HAC 14.61/14.64),
// failing with ErrNotAcceptable if gcd(a, n) != 1 and ErrBadInput if n is
// not positive.
func (x *Int) InvMod(a, n *Int) error {
	if n.Sign() <= 0 {
		return wrapErr(ErrBadInput, "InvMod: modulus must be positive")
	}

	g := NewInt().GCD(a, n)
	coprime := g.CmpInt64(1) == 0
	g.Free()
	if !coprime {
		return wrapErr(ErrNotAcceptable, "InvMod: inputs are not coprime")
	}

	TA := NewInt()
	defer TA.Free()
	if err := TA.Mod(a, n); err != nil {
		return err
	}
	TU := TA.Clone()
	defer TU.Free()
	TB := n.Clone()
	TB.sign = 1
	defer TB.Free()
	TV := TB.Clone()
	defer TV.Free()

	U1 := NewInt().SetInt64(1)
	defer U1.Free()
	U2 := NewInt().SetInt64(0)
	defer U2.Free()
	V1 := NewInt().SetInt64(0)
	V2 := NewInt().SetInt64(1)
	defer V2.Free()

	for {
		for TU.effLen() > 0 && TU.limbs[0]&1 == 0 {
			TU.ShiftRight(1)
			if U1.effLen() > 0 && U1.limbs[0]&1 != 0 || U2.effLen() > 0 && U2.limbs[0]&1 != 0 {
				U1.Add(U1, TB)
				U2.Sub(U2, TA)
			}
			U1.ShiftRight(1)
			U2.ShiftRight(1)
		}

		for TV.effLen() > 0 && TV.limbs[0]&1 == 0 {
			TV.ShiftRight(1)
			if V1.effLen() > 0 && V1.limbs[0]&1 != 0 || V2.effLen() > 0 && V2.limbs[0]&1 != 0 {
				V1.Add(V1, TB)
				V2.Sub(V2, TA)
			}
			V1.ShiftRight(1)
			V2.ShiftRight(1)
		}

		if TU.Cmp(TV) >= 0 {
			TU.Sub(TU, TV)
			U1.Sub(U1, V1)
			U2.Sub(U2, V2)
		} else {
			TV.Sub(TV, TU)
			V1.Sub(V1, U1)
			V2.Sub(V2, U2)
		}

		if TU.IsZero() {
			break
		}
	}

	for V1.Sign() < 0 {
		V1.Add(V1, n)
	}
	for V1.Cmp(n) >= 0 {
		V1.Sub(V1, n)
	}

	x.Swap(V1)
	V1.Free()
	return nil
}
