package modulus

import (
	"fmt"

	"lukechampine.com/uint128"
)

// MultiplyHighLow returns the full 128-bit product of a and b, split into
// its high and low 64-bit words (hi*2^64 + lo == a*b).
func MultiplyHighLow(a, b uint64) (hi, lo uint64) {
	p := uint128.From64(a).Mul64(b)
	return p.Hi, p.Lo
}

// AddHighLow adds two 128-bit values, each given as a (hi, lo) pair, and
// returns the 128-bit sum in the same form. Carry out of bit 127 is
// dropped: the sum wraps modulo 2^128 without reporting it.
func AddHighLow(h1, l1, h2, l2 uint64) (hi, lo uint64) {
	sum := uint128.New(l1, h1).AddWrap(uint128.New(l2, h2))
	return sum.Hi, sum.Lo
}

// SafeAdd adds two signed 64-bit integers, failing with ErrOverflow instead
// of wrapping around.
func SafeAdd(a, b int64) (int64, error) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, fmt.Errorf("add %d + %d: %w", a, b, ErrOverflow)
	}

	return sum, nil
}

// binaryGCD computes gcd(a, b) for unsigned 64-bit operands using Stein's
// algorithm: only shifts, subtracts and comparisons, no division.
func binaryGCD(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}

	shift := 0
	for (a|b)&1 == 0 {
		a >>= 1
		b >>= 1
		shift++
	}

	for a&1 == 0 {
		a >>= 1
	}

	for b != 0 {
		for b&1 == 0 {
			b >>= 1
		}

		if a > b {
			a, b = b, a
		}

		b -= a
	}

	return a << shift
}

// LongGCD returns the gcd of the absolute values of entries[from:to],
// short-circuiting as soon as the running gcd reaches 1. An empty range
// (from == to) has gcd 0, matching DensePoly.content's convention that the
// content of a polynomial with no nonzero coefficients is 0.
func LongGCD(entries []int64, from, to int) uint64 {
	var acc uint64

	for i := from; i < to; i++ {
		v := entries[i]
		var uv uint64
		if v < 0 {
			uv = uint64(-v)
		} else {
			uv = uint64(v)
		}

		acc = binaryGCD(acc, uv)
		if acc == 1 {
			return 1
		}
	}

	return acc
}
