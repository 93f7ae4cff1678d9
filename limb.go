package mpi

import "math/bits"

// Word is a single limb of an Int's magnitude. We use the platform uint
// directly (rather than a fixed uint32/uint64) so that math/bits.Mul and
// math/bits.Add inline cleanly, the same reasoning the teacher code uses
// for choosing uint over a fixed-width limb type.
type Word = uint

const (
	// wordBits is the number of bits in a limb.
	wordBits = bits.UintSize
	// wordMax is an all-ones limb.
	wordMax = ^Word(0)
)

// choice represents a constant-time boolean. Its value is always 0 or 1.
//
// This is carried over from the teacher's nat.go verbatim: it is the
// building block for the one part of this library with a timing
// requirement (Montgomery's balanced final subtraction).
type choice Word

func choiceOf(on bool) choice {
	if on {
		return 1
	}
	return 0
}

// ctEq reports whether x == y without branching on the comparison.
func ctEq(x, y Word) choice {
	d := x ^ y
	return choice(((d | -d) >> (wordBits - 1)) ^ 1)
}

// ctSelect returns x if on == 1, and y if on == 0, without branching on on.
func ctSelect(on choice, x, y Word) Word {
	mask := -Word(on)
	return y ^ (mask & (y ^ x))
}

// addWW adds x, y, and an incoming carry (0 or 1), returning the sum limb
// and the outgoing carry. A thin wrapper over bits.Add to keep call sites
// in this package free of the stdlib import.
func addWW(x, y, carry Word) (sum, carryOut Word) {
	s, c := bits.Add(uint(x), uint(y), uint(carry))
	return Word(s), Word(c)
}

// subWW subtracts y and a borrow (0 or 1) from x, returning the difference
// limb and the outgoing borrow.
func subWW(x, y, borrow Word) (diff, borrowOut Word) {
	d, b := bits.Sub(uint(x), uint(y), uint(borrow))
	return Word(d), Word(b)
}

// mulWW multiplies x and y, returning the high and low limbs of the
// double-width product.
func mulWW(x, y Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	return Word(h), Word(l)
}

// divWW divides the double-width (hi, lo) by y, returning quotient and
// remainder. Panics (via bits.Div64-style overflow) if the quotient would
// not fit in a Word; callers are responsible for keeping hi < y.
func divWW(hi, lo, y Word) (quo, rem Word) {
	q, r := bits.Div(uint(hi), uint(lo), uint(y))
	return Word(q), Word(r)
}

// muladdc computes d[i] += a[i]*b + carry for i in [0, len(a)), propagating
// the carry chain through d, and returns the final outgoing carry. This is
// the single hotspot primitive named in the specification: every limb of
// d that participates must already exist (callers grow the destination
// before calling).
//
// d must be at least as long as a.
func muladdc(a []Word, b Word, d []Word) Word {
	var carry Word
	for i := range a {
		hi, lo := mulWW(a[i], b)
		lo, c := addWW(lo, d[i], 0)
		hi += c
		lo, c = addWW(lo, carry, 0)
		hi += c
		d[i] = lo
		carry = hi
	}
	return carry
}

// subb computes d[i] -= a[i] + borrow for i in [0, len(a)), propagating the
// borrow chain, and returns the final outgoing borrow.
func subb(a []Word, d []Word) Word {
	var borrow Word
	for i := range a {
		v, b := subWW(d[i], a[i], borrow)
		d[i] = v
		borrow = b
	}
	return borrow
}

// addc computes d[i] += a[i] + carry for i in [0, len(a)), propagating the
// carry chain, and returns the final outgoing carry.
func addc(a []Word, d []Word) Word {
	var carry Word
	for i := range a {
		v, c := addWW(d[i], a[i], carry)
		d[i] = v
		carry = c
	}
	return carry
}
