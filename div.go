package mpi

import "math/bits"

// divModWord divides a by the single limb d, top-down, storing the
// quotient in q and returning the remainder. Used as a fast path for
// radix-conversion in io.go and wherever a divisor is known to fit in one
// limb; general division goes through DivMod.
func divModWord(q, a *Int, d Word) Word {
	na := a.effLen()
	if err := q.grow(na); err != nil {
		panic(err)
	}
	q.limbs = q.limbs[:na]
	var rem Word
	for i := na - 1; i >= 0; i-- {
		quo, r := divWW(rem, a.limbs[i], d)
		q.limbs[i] = quo
		rem = r
	}
	q.sign = 1
	q.trim()
	return rem
}

// limbAt returns x's i'th limb, treating indices outside [0, effLen) as 0.
// This is the "missing limbs are 0" convention the specification calls for
// in the HAC 14.20 correction loop.
func limbAt(x *Int, i int) Word {
	if i < 0 || i >= x.effLen() {
		return 0
	}
	return x.limbs[i]
}

// estimateQuotientDigit computes the trial quotient digit q_hat for HAC
// Algorithm 14.20 step 3.1: if the leading digits of the (shifted)
// dividend and divisor are equal, the true digit can only be base-1; this
// also sidesteps the overflow bits.Div would otherwise hit when the
// two-limb-by-one-limb division's quotient wouldn't fit in a limb.
func estimateQuotientDigit(X, Y *Int, i, t int) Word {
	xi := limbAt(X, i)
	yt := limbAt(Y, t)
	if xi >= yt {
		return wordMax
	}
	xi1 := limbAt(X, i-1)
	q, _ := bits.Div(uint(xi), uint(xi1), uint(yt))
	return Word(q)
}

// DivMod implements HAC Algorithm 14.20: given a and b with b != 0, it
// sets q (may be nil to discard the quotient) and r such that
// a = q*b + r, 0 <= |r| < |b|, sign(q) = sign(a)*sign(b), and sign(r) =
// sign(a) (r=0 is normalized to sign +1).
func (a *Int) DivMod(q, r *Int, b *Int) error {
	if b.IsZero() {
		return wrapErr(ErrDivisionByZero, "DivMod")
	}
	signQ := a.effSign() * b.effSign()
	signR := a.effSign()

	if a.cmpAbs(b) < 0 {
		if q != nil {
			q.Free()
		}
		r.Set(a)
		return nil
	}

	X := a.Clone()
	X.sign = 1
	defer X.Free()
	Y := b.Clone()
	Y.sign = 1
	defer Y.Free()

	// Normalize: shift both left until Y's top limb has its high bit set
	// (classic Knuth/HAC normalization), recording k to undo it on R.
	ny := Y.effLen()
	k := wordBits - bits.Len(uint(Y.limbs[ny-1]))
	if k > 0 {
		X.ShiftLeft(k)
		Y.ShiftLeft(k)
	}

	n := X.effLen() - 1
	t := Y.effLen() - 1

	Qbuf := NewInt()
	defer Qbuf.Free()
	if err := Qbuf.grow(n - t + 1); err != nil {
		return err
	}
	Qbuf.limbs = Qbuf.limbs[:n-t+1]

	// Step 5: align Y under X's top block and repeatedly subtract, the
	// same way a single schoolbook long-division step handles the
	// leading digit before the main loop.
	Yshift := Y.Clone().ShiftLeft(wordBits * (n - t))
	defer Yshift.Free()
	for X.cmpAbs(Yshift) >= 0 {
		Qbuf.limbs[n-t]++
		if err := X.subAbs(X, Yshift); err != nil {
			return err
		}
	}

	// Step 6: process the remaining digits from n down to t+1.
	T1 := NewInt()
	defer T1.Free()
	for i := n; i >= t+1; i-- {
		qhat := estimateQuotientDigit(X, Y, i, t)

		T1.mulScalar(Y, qhat)
		T1.ShiftLeft(wordBits * (i - t - 1))

		// HAC notes the single-limb estimate can be at most two too
		// high; repair by decrementing and retrying rather than
		// pre-correcting with a second divisor limb, which keeps this
		// step a direct reading of "T1 := Y*q_hat ... if X < T1, undo".
		for X.cmpAbs(T1) < 0 && qhat > 0 {
			qhat--
			T1.mulScalar(Y, qhat)
			T1.ShiftLeft(wordBits * (i - t - 1))
		}

		if err := X.subAbs(X, T1); err != nil {
			return err
		}
		Qbuf.limbs[i-t-1] = qhat
	}

	Qbuf.trim()
	X.ShiftRight(k)
	X.trim()

	if q != nil {
		q.Swap(Qbuf)
		q.sign = signQ
		q.normalizeZero()
	}
	r.Swap(X)
	r.sign = signR
	r.normalizeZero()
	return nil
}

// Mod sets x = a mod b: the unique value in [0, |b|) congruent to a modulo
// b, discarding the quotient. This differs from DivMod's remainder, which
// carries a's sign (HAC 14.20's R); Mod is the PolarSSL "mpi_mod_mpi"
// normalization of that remainder into [0, |b|).
func (x *Int) Mod(a, b *Int) error {
	if err := a.DivMod(nil, x, b); err != nil {
		return err
	}
	if x.sign < 0 {
		bAbs := b.absValue()
		x.Add(x, bAbs)
		bAbs.Free()
	}
	return nil
}

// absValue returns |x| as a new Int.
func (x *Int) absValue() *Int {
	y := x.Clone()
	y.sign = 1
	return y
}
