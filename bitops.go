package mpi

import "math/bits"

// BitLen returns the number of bits needed to represent |x|, i.e. the
// one-based index of the most significant set bit. BitLen(0) == 0.
func (x *Int) BitLen() int {
	n := x.effLen()
	if n == 0 {
		return 0
	}
	return (n-1)*wordBits + bits.Len(uint(x.limbs[n-1]))
}

// lsb returns the index of the least significant set bit of |x|, or 0 if
// x is zero.
func (x *Int) lsb() int {
	for i, w := range x.limbs {
		if w != 0 {
			return i*wordBits + bits.TrailingZeros(uint(w))
		}
	}
	return 0
}

// SizeBytes returns ceil(BitLen(x) / 8), the number of bytes needed for
// x's big-endian encoding.
func (x *Int) SizeBytes() int {
	return (x.BitLen() + 7) / 8
}

// ShiftLeft sets x to |x| << k in place, preserving sign, growing x as
// needed to hold the result.
func (x *Int) ShiftLeft(k int) *Int {
	if k == 0 || x.IsZero() {
		return x
	}
	newBits := x.BitLen() + k
	newLimbs := (newBits + wordBits - 1) / wordBits
	if err := x.grow(newLimbs); err != nil {
		panic(err)
	}
	limbShift := k / wordBits
	bitShift := uint(k % wordBits)

	x.limbs = x.limbs[:newLimbs]
	if limbShift > 0 {
		for i := newLimbs - 1; i >= limbShift; i-- {
			x.limbs[i] = x.limbs[i-limbShift]
		}
		for i := 0; i < limbShift; i++ {
			x.limbs[i] = 0
		}
	}
	if bitShift > 0 {
		var carry Word
		for i := limbShift; i < newLimbs; i++ {
			w := x.limbs[i]
			x.limbs[i] = (w << bitShift) | carry
			carry = w >> (wordBits - bitShift)
		}
	}
	x.trim()
	return x
}

// ShiftRight sets x to |x| >> k in place, preserving sign. Shifting by at
// least BitLen(x) bits produces zero.
func (x *Int) ShiftRight(k int) *Int {
	if k <= 0 || x.IsZero() {
		return x
	}
	n := x.effLen()
	limbShift := k / wordBits
	bitShift := uint(k % wordBits)
	if limbShift >= n {
		x.Free()
		return x
	}

	x.limbs = x.limbs[:n]
	if limbShift > 0 {
		copy(x.limbs, x.limbs[limbShift:n])
		for i := n - limbShift; i < n; i++ {
			x.limbs[i] = 0
		}
	}
	rem := n - limbShift
	if bitShift > 0 {
		var carry Word
		for i := rem - 1; i >= 0; i-- {
			w := x.limbs[i]
			x.limbs[i] = (w >> bitShift) | carry
			carry = w << (wordBits - bitShift)
		}
	}
	x.trim()
	return x
}
