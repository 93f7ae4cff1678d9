package mpi

// smallPrimes lists the odd primes below 1000, used as a cheap sieve
// before paying for Miller-Rabin.
var smallPrimes = []Word{
	3, 5, 7, 11, 13, 17, 19, 23,
	29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97,
	101, 103, 107, 109, 113, 127, 131, 137,
	139, 149, 151, 157, 163, 167, 173, 179,
	181, 191, 193, 197, 199, 211, 223, 227,
	229, 233, 239, 241, 251, 257, 263, 269,
	271, 277, 281, 283, 293, 307, 311, 313,
	317, 331, 337, 347, 349, 353, 359, 367,
	373, 379, 383, 389, 397, 401, 409, 419,
	421, 431, 433, 439, 443, 449, 457, 461,
	463, 467, 479, 487, 491, 499, 503, 509,
	521, 523, 541, 547, 557, 563, 569, 571,
	577, 587, 593, 599, 601, 607, 613, 617,
	619, 631, 641, 643, 647, 653, 659, 661,
	673, 677, 683, 691, 701, 709, 719, 727,
	733, 739, 743, 751, 757, 761, 769, 773,
	787, 797, 809, 811, 821, 823, 827, 829,
	839, 853, 857, 859, 863, 877, 881, 883,
	887, 907, 911, 919, 929, 937, 941, 947,
	953, 967, 971, 977, 983, 991, 997,
}

// modWord returns |x| mod d for a single-limb divisor d.
func modWord(x *Int, d Word) Word {
	q := NewInt()
	defer q.Free()
	return divModWord(q, x, d)
}

// checkSmallFactors trial-divides x (assumed positive) by every prime
// below 1000. It reports (true, nil) when x is itself one of those small
// primes (or below the first one), ErrNotAcceptable when a factor divides
// x evenly, and (false, nil) when nothing conclusive was found and x needs
// a real primality test.
func checkSmallFactors(x *Int) (bool, error) {
	if x.effLen() == 0 || x.limbs[0]&1 == 0 {
		return false, wrapErr(ErrNotAcceptable, "checkSmallFactors: even")
	}
	for _, p := range smallPrimes {
		if x.CmpInt64(int64(p)) <= 0 {
			return true, nil
		}
		if modWord(x, p) == 0 {
			return false, wrapErr(ErrNotAcceptable, "checkSmallFactors: small factor")
		}
	}
	return false, nil
}

// millerRabinRounds picks the number of Miller-Rabin rounds from x's bit
// length, per HAC table 4.4 (the same table the original exp_mod-based
// primality test draws from).
func millerRabinRounds(bitLen int) int {
	switch {
	case bitLen >= 1300:
		return 2
	case bitLen >= 850:
		return 3
	case bitLen >= 650:
		return 4
	case bitLen >= 350:
		return 8
	case bitLen >= 250:
		return 12
	case bitLen >= 150:
		return 18
	default:
		return 27
	}
}

// ensureLimb guarantees x has at least one (possibly zero) limb, so its
// low bits can be forced on directly. Used when a right-shift has driven a
// candidate's magnitude down to nothing before an odd-ness fixup.
func ensureLimb(x *Int) error {
	if len(x.limbs) > 0 {
		return nil
	}
	if err := x.grow(1); err != nil {
		return err
	}
	x.limbs = x.limbs[:1]
	x.limbs[0] = 0
	x.sign = 1
	return nil
}

// millerRabin runs the Miller-Rabin pseudo-primality test (HAC 4.24)
// against odd x > 2, drawing fresh random bases from rng each round.
func millerRabin(x *Int, rng RandReader) (bool, error) {
	w := NewInt().SubInt64(x, 1)
	defer w.Free()
	s := w.lsb()
	r := w.Clone()
	defer r.Free()
	r.ShiftRight(s)

	mod, err := NewModulus(x)
	if err != nil {
		return false, err
	}

	rounds := millerRabinRounds(x.BitLen())
	limbBytes := x.effLen() * wordSize

	for round := 0; round < rounds; round++ {
		a := NewInt()
		defer a.Free()
		if err := fillRandom(a, limbBytes, rng); err != nil {
			return false, err
		}

		if a.Cmp(w) >= 0 {
			shift := a.BitLen() - w.BitLen()
			a.ShiftRight(shift + 1)
		}
		if err := ensureLimb(a); err != nil {
			return false, err
		}
		a.limbs[0] |= 3
		a.trim()

		y := NewInt()
		defer y.Free()
		if err := mod.Exp(y, a, r); err != nil {
			return false, err
		}

		if y.Cmp(w) == 0 || y.CmpInt64(1) == 0 {
			continue
		}

		for j := 1; j < s && y.Cmp(w) != 0; j++ {
			sq := NewInt().Mul(y, y)
			err := y.Mod(sq, x)
			sq.Free()
			if err != nil {
				return false, err
			}
			if y.CmpInt64(1) == 0 {
				break
			}
		}

		if y.Cmp(w) != 0 || y.CmpInt64(1) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// IsPrime reports whether |x| is prime: 0 and 1 fail with
// ErrNotAcceptable, 2 is prime by inspection, and anything else runs the
// small-factor sieve followed (if inconclusive) by Miller-Rabin.
func IsPrime(x *Int, rng RandReader) (bool, error) {
	xx := x.Clone()
	xx.sign = 1
	defer xx.Free()

	if xx.CmpInt64(0) == 0 || xx.CmpInt64(1) == 0 {
		return false, wrapErr(ErrNotAcceptable, "IsPrime: 0 and 1 are not prime")
	}
	if xx.CmpInt64(2) == 0 {
		return true, nil
	}

	prime, err := checkSmallFactors(xx)
	if err != nil {
		return false, nil
	}
	if prime {
		return true, nil
	}
	return millerRabin(xx, rng)
}

// checkCandidate runs the small-factor sieve and, if inconclusive,
// Miller-Rabin. Unlike IsPrime it assumes x is already known to be odd
// and greater than 2 (safe-prime candidates are built that way), so it
// skips the small-value special cases.
func checkCandidate(x *Int, rng RandReader) (bool, error) {
	prime, err := checkSmallFactors(x)
	if err != nil {
		return false, nil
	}
	if prime {
		return true, nil
	}
	return millerRabin(x, rng)
}

// GenPrime generates a random prime of exactly bits bits. With dhFlag
// false it returns an ordinary prime; with dhFlag true it returns a safe
// prime X = 2Y+1 with Y also prime, suitable as a Diffie-Hellman or
// Sophie Germain modulus, using the same mod-3/mod-4 bookkeeping as the
// original generator to keep every candidate eligible without
// recomputing it from scratch each retry.
func GenPrime(bits int, dhFlag bool, rng RandReader) (*Int, error) {
	if bits < 3 || bits > maxLimbs*wordBits {
		return nil, wrapErr(ErrBadInput, "GenPrime: bit length out of range")
	}

	limbs := (bits + wordBits - 1) / wordBits
	x := NewInt()
	if err := fillRandom(x, limbs*wordSize, rng); err != nil {
		return nil, err
	}

	k := x.BitLen()
	switch {
	case k < bits:
		x.ShiftLeft(bits - k)
	case k > bits:
		x.ShiftRight(k - bits)
	}
	if err := ensureLimb(x); err != nil {
		return nil, err
	}
	x.limbs[0] |= 3
	x.trim()

	if !dhFlag {
		for {
			prime, err := IsPrime(x, rng)
			if err != nil {
				return nil, err
			}
			if prime {
				return x, nil
			}
			x.AddInt64(x, 2)
		}
	}

	// X = 2 mod 3 is necessary for X = 2Y+1 to stand a chance of being
	// prime; nudge X while preserving X = 3 mod 4.
	switch modWord(x, 3) {
	case 0:
		x.AddInt64(x, 8)
	case 1:
		x.AddInt64(x, 4)
	}

	y := x.Clone()
	y.ShiftRight(1)
	defer y.Free()

	for {
		xPrime, err := checkCandidate(x, rng)
		if err != nil {
			return nil, err
		}
		yPrime, err := checkCandidate(y, rng)
		if err != nil {
			return nil, err
		}
		if xPrime && yPrime {
			return x, nil
		}
		x.AddInt64(x, 12)
		y.AddInt64(y, 6)
	}
}
