// Package mpi implements arbitrary-precision signed integer arithmetic for
// public-key cryptography: addition, subtraction, multiplication,
// HAC-14.20 long division, Montgomery modular exponentiation, GCD, modular
// inverse, Miller-Rabin primality, and (safe) prime generation.
//
// Int values are not safe for concurrent mutation; distinct Ints may be
// used from distinct goroutines without coordination.
package mpi

import (
	"runtime"

	"github.com/pkg/errors"
)

// maxLimbs bounds how large an Int's magnitude may grow. Chosen generously
// for RSA-class moduli (a 16384-bit value is 256 64-bit limbs); grow past
// this and operations fail with ErrAllocFailed instead of exhausting
// memory on a malformed or adversarial input.
const maxLimbs = 1 << 16

// Int is an arbitrary-precision signed integer in sign-magnitude form.
//
// The zero value is a valid, usable representation of zero.
type Int struct {
	// sign is +1 or -1, never 0; a numerically zero Int always has sign +1.
	sign int
	// limbs holds the magnitude, least-significant limb first. Trailing
	// zero limbs are tolerated; operations use the effective length
	// (index of the top nonzero limb, plus one) rather than len(limbs).
	limbs []Word
}

// NewInt returns a new Int with value 0.
func NewInt() *Int {
	return &Int{sign: 1}
}

// Free zeroizes and releases the Int's limb buffer, resetting it to the
// zero value. Free is idempotent and safe to call on an already-free Int.
//
// Zeroizing matters here: limb buffers can hold residues of RSA primes or
// private exponents, and a later allocation reusing that memory should
// not observe them.
func (x *Int) Free() {
	zeroize(x.limbs)
	x.limbs = nil
	x.sign = 1
}

// zeroize overwrites buf with zero in a way the compiler cannot elide, the
// same discipline the teacher/original apply to every released buffer.
func zeroize(buf []Word) {
	for i := range buf {
		buf[i] = 0
	}
	runtime.KeepAlive(buf)
}

// effLen returns the effective length of x's magnitude: the index of the
// top nonzero limb, plus one, or 0 if x is zero.
func (x *Int) effLen() int {
	n := len(x.limbs)
	for n > 0 && x.limbs[n-1] == 0 {
		n--
	}
	return n
}

// IsZero reports whether x is numerically zero.
func (x *Int) IsZero() bool {
	return x.effLen() == 0
}

// Sign returns -1, 0, or +1 according to the sign of x.
func (x *Int) Sign() int {
	if x.IsZero() {
		return 0
	}
	return x.sign
}

// grow ensures x has at least n allocated limbs, preserving its value. It
// is a no-op if x already has at least n limbs. Growth fails with
// ErrAllocFailed if n exceeds maxLimbs.
func (x *Int) grow(n int) error {
	if n > maxLimbs {
		return errors.Wrapf(ErrAllocFailed, "grow to %d limbs exceeds cap", n)
	}
	if len(x.limbs) >= n {
		return nil
	}
	fresh := make([]Word, n)
	copy(fresh, x.limbs)
	zeroize(x.limbs)
	x.limbs = fresh
	return nil
}

// trim drops trailing zero limbs down to the effective length, without
// reallocating.
func (x *Int) trim() {
	x.limbs = x.limbs[:x.effLen()]
	if len(x.limbs) == 0 {
		x.sign = 1
	}
}

// Set copies y's value into x. Self-assignment is a no-op.
func (x *Int) Set(y *Int) *Int {
	if x == y {
		return x
	}
	n := y.effLen()
	if n == 0 {
		x.Free()
		return x
	}
	if err := x.grow(n); err != nil {
		// grow only fails above maxLimbs; y is already within bounds
		// since it was itself constructed under the same cap.
		panic(err)
	}
	for i := range x.limbs {
		if i < n {
			x.limbs[i] = y.limbs[i]
		} else {
			x.limbs[i] = 0
		}
	}
	x.limbs = x.limbs[:n]
	x.sign = y.sign
	return x
}

// Clone returns a new Int with the same value as x.
func (x *Int) Clone() *Int {
	return NewInt().Set(x)
}

// Swap exchanges the values of x and y without copying their buffers.
func (x *Int) Swap(y *Int) {
	x.sign, y.sign = y.sign, x.sign
	x.limbs, y.limbs = y.limbs, x.limbs
}

// SetInt64 sets x to the value of z.
func (x *Int) SetInt64(z int64) *Int {
	sign := 1
	mag := uint64(z)
	if z < 0 {
		sign = -1
		mag = uint64(-z)
	}
	if err := x.grow(1); err != nil {
		panic(err)
	}
	x.limbs = x.limbs[:1]
	x.limbs[0] = Word(mag)
	x.sign = sign
	x.trim()
	return x
}

// wordView builds a transient, read-only Int over a single caller-owned
// limb, used by the scalar shims AddInt64, SubInt64 and CmpInt64.
// It must never be passed to grow or Free.
func wordView(buf *[1]Word, z int64) *Int {
	sign := 1
	mag := uint64(z)
	if z < 0 {
		sign = -1
		mag = uint64(-z)
	}
	buf[0] = Word(mag)
	return &Int{sign: sign, limbs: buf[:]}
}

// cmpAbs compares |x| and |y|, returning -1, 0, or +1.
func (x *Int) cmpAbs(y *Int) int {
	nx, ny := x.effLen(), y.effLen()
	if nx != ny {
		if nx < ny {
			return -1
		}
		return 1
	}
	for i := nx - 1; i >= 0; i-- {
		if x.limbs[i] != y.limbs[i] {
			if x.limbs[i] < y.limbs[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp compares x and y as signed integers, returning -1, 0, or +1.
func (x *Int) Cmp(y *Int) int {
	xz, yz := x.IsZero(), y.IsZero()
	switch {
	case xz && yz:
		return 0
	case xz:
		return -y.sign
	case yz:
		return x.sign
	}
	if x.sign != y.sign {
		return x.sign
	}
	return x.sign * x.cmpAbs(y)
}

// CmpInt64 compares x against the scalar z.
func (x *Int) CmpInt64(z int64) int {
	var buf [1]Word
	return x.Cmp(wordView(&buf, z))
}
