package modulus

import (
	"fmt"
	"math/big"
	"math/bits"
)

// maxModulus bounds the unsigned-fast variant: p must fit with room to
// spare for the 128-bit product-accumulation path used by MulKernel.
const maxModulus = uint64(1) << 63

// Magic is the precomputed divisor structure for a runtime prime p: it
// turns `a mod p` into a multiply-high plus a branch-lean adjust, with no
// division instruction in the hot path. Construction is O(1) (amortized
// over every later Mod/MulMod call) and uses math/big, which is fine since
// it runs once per ring.
//
// The non-power-of-two case follows the "general" (case 3) constant from
// the Granlund-Montgomery magic-division technique: given p, pick the
// smallest shift s with p <= 2^s, compute M = ceil(2^(64+s)/p) (a 65-bit
// value), and store k = M - 2^64. Then for any 64-bit x,
//
//	floor(x/p) == (x + mulhi(x, k)) >> s
//
// up to the one-bit carry out of the addition, which Mod folds back in
// before taking the shift.
type Magic struct {
	p       uint64
	trivial bool // p == 1: every value reduces to 0
	pow2    bool // p is an exact power of two: mask-based reduction
	mask    uint64
	shift   uint
	mult    uint64 // k, the case-3 magic constant
	magic32 uint64
}

// NewMagic builds the magic descriptor for p. It fails only when p is zero
// or does not fit the unsigned-fast variant's range; it does not primality
// test p (the caller's responsibility per spec).
func NewMagic(p uint64) (Magic, error) {
	if p == 0 {
		return Magic{}, fmt.Errorf("modulus: zero modulus: %w", ErrPrecondition)
	}
	if p >= maxModulus {
		return Magic{}, fmt.Errorf("modulus: %d exceeds the unsigned-fast range [1, 2^63): %w", p, ErrPrecondition)
	}

	m := Magic{p: p, magic32: safeAccumulatorBound(p)}

	if p == 1 {
		m.trivial = true
		return m, nil
	}

	if p&(p-1) == 0 {
		m.pow2 = true
		m.mask = p - 1
		m.shift = uint(bits.TrailingZeros64(p))
		return m, nil
	}

	s := uint(bits.Len64(p - 1))

	pBig := new(big.Int).SetUint64(p)
	numerator := new(big.Int).Lsh(big.NewInt(1), 64+s)
	numerator.Add(numerator, pBig)
	numerator.Sub(numerator, big.NewInt(1))

	magicConst := new(big.Int).Div(numerator, pBig) // ceil(2^(64+s)/p)
	magicConst.Sub(magicConst, new(big.Int).Lsh(big.NewInt(1), 64))

	m.shift = s
	m.mult = magicConst.Uint64()

	return m, nil
}

// safeAccumulatorBound is magic32: the largest n such that summing n
// products of two residues in [0, p) fits an unsigned 64-bit accumulator
// without wrapping.
func safeAccumulatorBound(p uint64) uint64 {
	if p <= 1 {
		return ^uint64(0)
	}

	d := new(big.Int).SetUint64(p - 1)
	d.Mul(d, d)
	if d.Sign() == 0 {
		return ^uint64(0)
	}

	maxAcc := new(big.Int).SetUint64(^uint64(0))
	n := new(big.Int).Div(maxAcc, d)
	if !n.IsUint64() {
		return ^uint64(0)
	}

	return n.Uint64()
}

// Prime returns the modulus this descriptor was built for.
func (m Magic) Prime() uint64 { return m.p }

// SafeAccumulatorBound returns magic32.
func (m Magic) SafeAccumulatorBound() uint64 { return m.magic32 }

// Mod reduces a into [0, p) without a division instruction.
func (m Magic) Mod(a uint64) uint64 {
	if m.trivial {
		return 0
	}
	if a < m.p {
		return a
	}
	if m.pow2 {
		return a & m.mask
	}

	thi, _ := bits.Mul64(a, m.mult)
	sum, carry := bits.Add64(a, thi, 0)
	q := sum >> m.shift
	if carry == 1 {
		q |= uint64(1) << (64 - m.shift)
	}

	r := a - q*m.p
	if r >= m.p {
		r -= m.p
	}

	return r
}

// MulMod returns (a*b) mod p via the full 128-bit product. For p < 2^63
// and a, b < p, the high word of a*b is always strictly less than p, so
// this is a single multiply-high plus a single hardware divide: no loop,
// no retry.
func (m Magic) MulMod(a, b uint64) uint64 {
	if m.trivial {
		return 0
	}

	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return m.Mod(lo)
	}

	_, rem := bits.Div64(hi, lo, m.p)

	return rem
}

// ModFast reduces a signed value x known to satisfy -p < x < 2p into
// [0, p) using two shift-and-mask adjustments: an add when x is negative,
// a subtract when x has not yet dropped below p.
func (m Magic) ModFast(x int64) uint64 {
	if m.trivial {
		return 0
	}

	p := int64(m.p)
	x += p & (x >> 63)
	x -= p & ((p - x - 1) >> 63)

	return uint64(x)
}
