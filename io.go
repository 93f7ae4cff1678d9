package mpi

import (
	"strings"

	"github.com/pkg/errors"
)

// SetBytes sets x to the non-negative value represented by the big-endian
// byte string buf, stripping any leading zero bytes.
func (x *Int) SetBytes(buf []byte) *Int {
	for len(buf) > 0 && buf[0] == 0 {
		buf = buf[1:]
	}
	n := (len(buf) + wordSize - 1) / wordSize
	if err := x.grow(n); err != nil {
		panic(err)
	}
	x.limbs = x.limbs[:n]
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	// Walk buf from the least significant byte, packing wordSize bytes
	// into each limb.
	for i, b := range buf {
		pos := len(buf) - 1 - i
		limb := pos / wordSize
		shift := uint(pos%wordSize) * 8
		x.limbs[limb] |= Word(b) << shift
	}
	x.sign = 1
	x.trim()
	return x
}

// wordSize is the number of bytes in a limb.
const wordSize = wordBits / 8

// Bytes returns x's magnitude as a big-endian byte slice with no leading
// zero bytes (the zero value encodes as an empty slice).
func (x *Int) Bytes() []byte {
	size := x.SizeBytes()
	out := make([]byte, size)
	x.fillBytes(out)
	return out
}

// FillBytes writes x's magnitude into buf as big-endian, zero-padded on
// the left, failing with ErrBufferTooSmall if buf cannot hold it.
func (x *Int) FillBytes(buf []byte) error {
	if len(buf) < x.SizeBytes() {
		return errors.Wrapf(ErrBufferTooSmall, "need %d bytes, have %d", x.SizeBytes(), len(buf))
	}
	for i := range buf {
		buf[i] = 0
	}
	x.fillBytes(buf)
	return nil
}

func (x *Int) fillBytes(buf []byte) {
	n := len(buf)
	for i, limb := range x.limbs {
		for b := 0; b < wordSize; b++ {
			pos := i*wordSize + b
			if pos >= n {
				return
			}
			buf[n-1-pos] = byte(limb >> (uint(b) * 8))
		}
	}
}

const digits = "0123456789abcdef"

// SetString parses s in the given radix (2..16), with an optional leading
// '-' for a negative value. It fails with ErrBadInput for an out-of-range
// radix and ErrInvalidCharacter for a digit outside the radix.
func (x *Int) SetString(s string, radix int) error {
	if radix < 2 || radix > 16 {
		return errors.Wrapf(ErrBadInput, "radix %d out of range [2,16]", radix)
	}
	sign := 1
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}
	if s == "" {
		return errors.Wrap(ErrBadInput, "empty digit string")
	}

	if radix == 16 {
		if err := x.setHex(s); err != nil {
			return err
		}
	} else {
		x.Free()
		acc := NewInt()
		for _, r := range s {
			d, err := digitValue(r, radix)
			if err != nil {
				return err
			}
			acc.MulInt64(acc, uint64(radix))
			acc.AddInt64(acc, int64(d))
		}
		x.Swap(acc)
	}
	x.sign = sign
	x.normalizeZero()
	return nil
}

// setHex fills limbs directly, nibble by nibble from the least significant
// end, as specified for radix-16 import.
func (x *Int) setHex(s string) error {
	nibbles := len(s)
	n := (nibbles*4 + wordBits - 1) / wordBits
	if err := x.grow(n); err != nil {
		return err
	}
	x.limbs = x.limbs[:n]
	for i := range x.limbs {
		x.limbs[i] = 0
	}
	for i := 0; i < nibbles; i++ {
		r := rune(s[nibbles-1-i])
		d, err := digitValue(r, 16)
		if err != nil {
			return err
		}
		limb := (i * 4) / wordBits
		shift := uint((i * 4) % wordBits)
		x.limbs[limb] |= Word(d) << shift
	}
	x.trim()
	return nil
}

func digitValue(r rune, radix int) (int, error) {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'f':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'F':
		v = int(r-'A') + 10
	default:
		return 0, errors.Wrapf(ErrInvalidCharacter, "character %q", r)
	}
	if v >= radix {
		return 0, errors.Wrapf(ErrInvalidCharacter, "digit %q out of range for radix %d", r, radix)
	}
	return v, nil
}

// String16 renders x in the given radix (2..16), with a leading '-' for
// negative values. Radix 16 walks limbs from the top emitting nibbles and
// suppressing leading zeros; other radices repeatedly divide by the
// radix, which is simplest to express by consuming a scratch copy.
func (x *Int) String16(radix int) (string, error) {
	if radix < 2 || radix > 16 {
		return "", errors.Wrapf(ErrBadInput, "radix %d out of range [2,16]", radix)
	}
	if x.IsZero() {
		return "0", nil
	}

	var body string
	if radix == 16 {
		body = x.hexDigits()
	} else {
		body = x.radixDigits(radix)
	}

	if x.sign < 0 {
		return "-" + body, nil
	}
	return body, nil
}

func (x *Int) hexDigits() string {
	n := x.effLen()
	var b strings.Builder
	started := false
	for i := n - 1; i >= 0; i-- {
		limb := x.limbs[i]
		for shift := wordBits - 4; shift >= 0; shift -= 4 {
			nibble := byte((limb >> uint(shift)) & 0xF)
			if !started {
				if nibble == 0 {
					continue
				}
				started = true
			}
			b.WriteByte(digits[nibble])
		}
	}
	return b.String()
}

func (x *Int) radixDigits(radix int) string {
	scratch := x.Clone()
	scratch.sign = 1
	var out []byte
	q := NewInt()
	for !scratch.IsZero() {
		rem := divModWord(q, scratch, Word(radix))
		out = append(out, digits[rem])
		scratch.Swap(q)
	}
	// out was accumulated least-significant digit first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}
