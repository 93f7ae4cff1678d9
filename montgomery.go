package mpi

import "github.com/pkg/errors"

// Modulus wraps an odd modulus N together with its precomputed Montgomery
// constants (-N[0]^-1 mod 2^W and R^2 mod N), so repeated Montgomery
// multiplications and exponentiations against the same N don't recompute
// them.
//
// This answers the specification's open question about the R^2 mod N
// cache: rather than a slot the caller overwrites with a shallow header
// copy, Modulus is an immutable value returned by NewModulus and safe to
// share read-only across goroutines once constructed.
type Modulus struct {
	n     *Int // the modulus, magnitude only, sign +1, trimmed
	n0inv Word // -n.limbs[0]^-1 mod 2^W
	rr    *Int // R^2 mod N, R = 2^(wordBits*limbs)
	limbs int  // Montgomery width: len(n.limbs) after trimming
}

// NewModulus prepares N's Montgomery constants. N must be positive and
// odd.
func NewModulus(n *Int) (*Modulus, error) {
	if n.Sign() <= 0 {
		return nil, errors.Wrap(ErrBadInput, "NewModulus: modulus must be positive")
	}
	if n.limbs[0]&1 == 0 {
		return nil, errors.Wrap(ErrBadInput, "NewModulus: modulus must be odd")
	}
	nn := n.Clone()
	nn.trim()

	m := &Modulus{
		n:     nn,
		n0inv: montgomerySetup(nn.limbs[0]),
		limbs: nn.effLen(),
	}
	m.rr = m.computeRR()
	return m, nil
}

// Words reports the Montgomery width: the modulus's effective limb count.
func (m *Modulus) Words() int { return m.limbs }

// N returns the modulus itself. The caller must not mutate it.
func (m *Modulus) N() *Int { return m.n }

// montgomerySetup computes -n0^-1 mod 2^W by Newton-Raphson 2-adic
// inversion: each round doubles the number of correct low bits, so six
// rounds comfortably converge for any limb width this package supports.
// This generalizes the same derivation found throughout the grounding
// pack's Montgomery code (e.g. the "minusInverseModW" style helper used
// to precompute m0inv before a CIOS loop).
func montgomerySetup(n0 Word) Word {
	y := n0 // n0 is odd, so 1-bit correct already: n0 * n0 == 1 mod 2.
	for i := 0; i < 6; i++ {
		y = y * (2 - n0*y)
	}
	return -y
}

// computeRR computes R^2 mod N via lset(1), a left shift by 2*wordBits*n
// bits, and a reduction — spec.md's prescription for seeding exp_mod's RR
// cache.
func (m *Modulus) computeRR() *Int {
	rr := NewInt().SetInt64(1)
	rr.ShiftLeft(2 * wordBits * m.limbs)
	_ = rr.Mod(rr, m.n)
	return rr
}

// limb3 is a 3-limb (3*wordBits-bit) unsigned accumulator: wide enough to
// hold out[j] + a[i]*b[j] + f*n[j] plus an incoming 2-limb carry without
// overflow. This is the generalization, to an arbitrary limb count, of
// the margin the teacher's saturated Montgomery multiply reserves with
// its fixed 32-limb triple accumulator.
type limb3 struct {
	lo, mid, hi Word
}

func (t *limb3) addWord(w Word) {
	var c Word
	t.lo, c = addWW(t.lo, w, 0)
	t.mid, c = addWW(t.mid, 0, c)
	t.hi, _ = addWW(t.hi, 0, c)
}

func (t *limb3) addProduct(x, y Word) {
	hi, lo := mulWW(x, y)
	var c Word
	t.lo, c = addWW(t.lo, lo, 0)
	t.mid, c = addWW(t.mid, hi, c)
	t.hi, _ = addWW(t.hi, 0, c)
}

func (t *limb3) addCarry(c limb3) {
	var carry Word
	t.lo, carry = addWW(t.lo, c.lo, 0)
	t.mid, carry = addWW(t.mid, c.mid, carry)
	t.hi, _ = addWW(t.hi, c.hi, carry)
}

// wordAt reads w[i], or 0 past its end — Montgomery operands are assumed
// already reduced below N and so may be shorter than the modulus width.
func wordAt(w []Word, i int) Word {
	if i < len(w) {
		return w[i]
	}
	return 0
}

// montMulWords computes out = a*b*R^-1 mod n in place over out (which
// must be size limbs long and is zeroed on entry), using the CIOS method:
// for each limb of a, accumulate a[i]*b across the working row together
// with a Montgomery-reducing multiple f*n chosen so the row's low limb
// cancels, then shift the row down by one limb. This is the direct
// per-limb generalization of the teacher's fixed 32-limb
// nat_saturated.go montgomeryMul.
//
// The pre-reduction result T = a*b*R^-1 satisfies T < 2N, which for a
// full-width modulus (top limb's high bit set) does not always fit in
// size limbs: montMulWords returns the overflow word above out[size-1]
// so the caller can fold it into the conditional subtraction instead of
// silently discarding it.
func montMulWords(out, a, b, n []Word, n0inv Word, size int) Word {
	for i := 0; i < size; i++ {
		out[i] = 0
	}
	var dh Word
	for i := 0; i < size; i++ {
		ai := wordAt(a, i)
		f := (out[0] + ai*wordAt(b, 0)) * n0inv

		var carry limb3
		for j := 0; j < size; j++ {
			var z limb3
			z.addWord(out[j])
			z.addProduct(ai, wordAt(b, j))
			z.addProduct(f, n[j])
			z.addCarry(carry)
			if j > 0 {
				out[j-1] = z.lo
			}
			carry = limb3{lo: z.mid, mid: z.hi}
		}
		var z limb3
		z.addWord(dh)
		z.addCarry(carry)
		out[size-1] = z.lo
		dh = z.mid
	}
	return dh
}

// MontMul sets x = a*b*R^-1 mod N (Montgomery multiplication): a and b
// must already be reduced modulo N, in either plain or Montgomery form
// depending on what the caller intends to compute.
//
// The pre-reduction product T = a*b*R^-1 satisfies 0 <= T < 2N (the CIOS
// bound), so for a full-width modulus (top limb's high bit set) T can
// overflow the n-limb out buffer by one bit; montMulWords reports that
// overflow as dh. A subtraction of N is needed whenever T >= N, which is
// true either when dh is set (T >= 2^(W*n) > N) or, with dh clear, when
// the plain n-limb subtraction below found out >= N. Both cases share
// the same subtracted value: when dh is set, T < 2N forces out < N, so
// the n-limb subtract-with-borrow below already wraps to the correct
// T - N.
//
// The final conditional subtraction is timing-balanced per the
// specification's open question: a subtraction of N is always performed
// into a scratch buffer, and ctSelect — not a branch — picks between the
// subtracted and unsubtracted result.
func (x *Int) MontMul(a, b *Int, m *Modulus) *Int {
	n := m.limbs
	out := make([]Word, n)
	dh := montMulWords(out, a.limbs, b.limbs, m.n.limbs, m.n0inv, n)

	diff := make([]Word, n)
	copy(diff, out)
	borrow := subb(m.n.limbs[:n], diff)
	needSub := choice(dh) | choiceOf(borrow == 0)
	for j := 0; j < n; j++ {
		out[j] = ctSelect(needSub, diff[j], out[j])
	}

	if err := x.grow(n); err != nil {
		panic(err)
	}
	x.limbs = x.limbs[:n]
	copy(x.limbs, out)
	x.sign = 1
	x.trim()
	return x
}

// ToMontgomery sets x = a*R mod N, converting a value already in [0, N)
// into Montgomery form.
func (m *Modulus) ToMontgomery(x, a *Int) *Int {
	return x.MontMul(a, m.rr, m)
}

// Redc sets x = a*R^-1 mod N (spec.md's montred), converting out of
// Montgomery form. Realized, as the specification prescribes, as
// MontMul(a, 1).
func (m *Modulus) Redc(x, a *Int) *Int {
	one := NewInt().SetInt64(1)
	defer one.Free()
	return x.MontMul(a, one, m)
}
