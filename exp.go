package mpi

// maxWindow caps the sliding-window width regardless of exponent size,
// mirroring POLARSSL_MPI_WINDOW_SIZE in the original implementation.
const maxWindow = 6

// windowSize picks the sliding-window width from the exponent's bit
// length, per HAC's empirical table (reproduced in spec.md's component
// design for L9).
func windowSize(bitLen int) int {
	w := 1
	switch {
	case bitLen > 671:
		w = 6
	case bitLen > 239:
		w = 5
	case bitLen > 79:
		w = 4
	case bitLen > 23:
		w = 3
	}
	if w > maxWindow {
		w = maxWindow
	}
	return w
}

// bitAt returns the value (0 or 1) of x's bit at position pos, where
// position 0 is the least significant bit.
func (x *Int) bitAt(pos int) Word {
	limb := pos / wordBits
	if limb >= len(x.limbs) {
		return 0
	}
	return (x.limbs[limb] >> uint(pos%wordBits)) & 1
}

// Exp sets x = a^e mod N using sliding-window Montgomery exponentiation.
// N must be odd and positive (enforced at NewModulus); e must be
// non-negative.
//
// The window-collection state machine, and the tail flush after the last
// exponent bit, are a direct port of the original mpi_exp_mod: a window
// only starts on a 1 bit, but once started always consumes exactly
// windowSize bits (zeros included) before squaring windowSize times and
// folding in the precomputed table entry; between windows, every zero bit
// is handled by a lone squaring.
func (m *Modulus) Exp(x, a, e *Int) error {
	if e.Sign() < 0 {
		return wrapErr(ErrBadInput, "Exp: negative exponent")
	}

	neg := a.Sign() < 0
	absA := a.Clone()
	absA.sign = 1
	defer absA.Free()

	base := NewInt()
	defer base.Free()
	if absA.cmpAbs(m.n) >= 0 {
		if err := base.Mod(absA, m.n); err != nil {
			return err
		}
	} else {
		base.Set(absA)
	}

	wsize := windowSize(e.BitLen())

	// W[1] = base * R mod N, the Montgomery form of the reduced base.
	w1 := NewInt()
	m.ToMontgomery(w1, base)

	table := make([]*Int, 1<<uint(wsize))
	table[1] = w1
	if wsize > 1 {
		top := 1 << uint(wsize-1)
		table[top] = w1.Clone()
		for i := 0; i < wsize-1; i++ {
			table[top].MontMul(table[top], table[top], m)
		}
		for i := top + 1; i < len(table); i++ {
			table[i] = NewInt().Set(table[i-1])
			table[i].MontMul(table[i], w1, m)
		}
	}
	defer func() {
		for _, t := range table {
			if t != nil {
				t.Free()
			}
		}
	}()

	// X = R mod N, the Montgomery form of 1.
	X := NewInt()
	m.Redc(X, m.rr)

	const (
		stateLeading = iota
		stateBetween
		stateCollecting
	)
	state := stateLeading
	wbits := 0
	collected := 0

	nbits := e.BitLen()
	for pos := nbits - 1; pos >= 0; pos-- {
		bit := int(e.bitAt(pos))

		if bit == 0 && state == stateLeading {
			continue
		}
		if bit == 0 && state == stateBetween {
			X.MontMul(X, X, m)
			continue
		}

		state = stateCollecting
		collected++
		wbits |= bit << uint(wsize-collected)

		if collected == wsize {
			for i := 0; i < wsize; i++ {
				X.MontMul(X, X, m)
			}
			X.MontMul(X, table[wbits], m)
			state = stateBetween
			collected = 0
			wbits = 0
		}
	}

	// Flush a partial window: one squaring per leftover bit, multiplying
	// by W[1] whenever the bit now at the window's top position is set.
	maskBit := 1 << uint(wsize)
	for i := 0; i < collected; i++ {
		X.MontMul(X, X, m)
		wbits <<= 1
		if wbits&maskBit != 0 {
			X.MontMul(X, table[1], m)
		}
	}

	m.Redc(X, X)

	if neg && e.effLen() > 0 && e.limbs[0]&1 == 1 {
		diff := NewInt().Sub(m.n, X)
		X.Swap(diff)
		diff.Free()
	}

	x.Swap(X)
	X.Free()
	return nil
}
