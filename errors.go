package mpi

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Stable error codes. Callers should compare against these with errors.Is;
// call sites wrap them with github.com/pkg/errors to attach context, so
// errors.Is still unwraps to one of these sentinels.
var (
	// ErrBadInput flags a malformed argument: out-of-range radix, a zero
	// or even modulus where one is required, a negative exponent, etc.
	ErrBadInput = errors.New("mpi: bad input")
	// ErrInvalidCharacter flags an ASCII import that hit a digit outside
	// the requested radix.
	ErrInvalidCharacter = errors.New("mpi: invalid character")
	// ErrBufferTooSmall flags a binary export whose destination buffer
	// cannot hold the value's big-endian encoding.
	ErrBufferTooSmall = errors.New("mpi: buffer too small")
	// ErrNegativeValue flags an unsigned subtraction (sub_abs) that would
	// produce a negative magnitude. A non-positive modulus is reported as
	// ErrBadInput instead.
	ErrNegativeValue = errors.New("mpi: negative value")
	// ErrDivisionByZero flags division or modulo by a zero divisor.
	ErrDivisionByZero = errors.New("mpi: division by zero")
	// ErrNotAcceptable flags a value failing a structural test: composite
	// where prime was required, non-invertible where a unit was required.
	ErrNotAcceptable = errors.New("mpi: not acceptable")
	// ErrAllocFailed flags growth beyond maxLimbs.
	ErrAllocFailed = errors.New("mpi: allocation failed")
	// ErrRandFailure flags a random source that failed or was closed
	// before supplying the requested number of bytes.
	ErrRandFailure = errors.New("mpi: random source failed")
)

// wrapErr attaches msg as context to a stable sentinel using
// github.com/pkg/errors, so errors.Is still finds the sentinel and
// pkg/errors.Cause still recovers it.
func wrapErr(sentinel error, msg string) error {
	return pkgerrors.Wrap(sentinel, msg)
}
