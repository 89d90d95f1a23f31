package poly

import (
	"fmt"

	"github.com/jonathanmweiss/gozp/modulus"
)

// Threshold constants (design-level, spec.md §4.5): classical multiply is
// used below these n*m products; above them, Karatsuba takes over and
// re-applies the same threshold at every recursive level so small tails
// fall back to classical. The plain threshold applies when the ring's
// magic32 bound lets the classical loop skip per-step reduction; the
// tighter safe threshold applies when it can't, since each classical step
// then costs a division instead of a compare-and-subtract.
const (
	classicalThresholdPlain = 256 * 256
	classicalThresholdSafe  = 128 * 128
)

func sameRing(a, b *DensePoly) error {
	if a.ring.Prime() != b.ring.Prime() {
		return fmt.Errorf("multiply: mismatched moduli %d and %d: %w", a.ring.Prime(), b.ring.Prime(), modulus.ErrPrecondition)
	}

	return nil
}

// unsafeEligible reports whether n products of two residues can be summed
// into a single uint64 accumulator without overflow.
func unsafeEligible(r *modulus.Ring, n int) bool {
	return uint64(n) <= r.Magic().SafeAccumulatorBound()
}

func classicalThreshold(r *modulus.Ring, n int) int {
	if unsafeEligible(r, n) {
		return classicalThresholdPlain
	}

	return classicalThresholdSafe
}

// classicalMultiplySafe multiplies a by b, reducing after every
// accumulation. a, b may be any lengths; the shorter one drives the outer
// loop and zero multipliers are skipped (sparse inputs are common after
// truncation or shifts).
func classicalMultiplySafe(r *modulus.Ring, a, b []uint64) []uint64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	out := make([]uint64, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			if bj == 0 {
				continue
			}
			out[i+j] = r.Add(out[i+j], r.Mul(ai, bj))
		}
	}

	return out
}

// classicalMultiplyUnsafe accumulates raw uint64 products with no
// reduction inside the loop, then reduces once at the end. Safe only when
// min(len(a), len(b)) <= the ring's magic32 bound.
func classicalMultiplyUnsafe(r *modulus.Ring, a, b []uint64) []uint64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	acc := make([]uint64, len(a)+len(b)-1)
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			acc[i+j] += ai * bj
		}
	}

	m := r.Magic()
	for i := range acc {
		acc[i] = m.Mod(acc[i])
	}

	return acc
}

func classicalDispatch(r *modulus.Ring, a, b []uint64) []uint64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if unsafeEligible(r, n) {
		return classicalMultiplyUnsafe(r, a, b)
	}

	return classicalMultiplySafe(r, a, b)
}

func addRaw(r *modulus.Ring, a, b []uint64) []uint64 {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		out[i] = r.Add(av, bv)
	}

	return out
}

func addInPlaceAt(r *modulus.Ring, dst, src []uint64, offset int) {
	for i, v := range src {
		dst[offset+i] = r.Add(dst[offset+i], v)
	}
}

func subInPlaceAt(r *modulus.Ring, dst, src []uint64, offset int) {
	for i, v := range src {
		dst[offset+i] = r.Sub(dst[offset+i], v)
	}
}

// multiplyRaw is the dispatching entry point: classical below threshold,
// Karatsuba above it, threshold re-applied at every recursion.
func multiplyRaw(r *modulus.Ring, a, b []uint64) []uint64 {
	if len(a) < len(b) {
		a, b = b, a
	}

	n, m := len(a), len(b)
	if n*m < classicalThreshold(r, m) {
		return classicalDispatch(r, a, b)
	}

	return karatsubaStep(r, a, b)
}

// karatsubaStep combines three (or two, in the degenerate case) smaller
// products per spec.md §4.5: split = ceil(n/2) on the longer operand a;
// if b lies entirely below split, degenerate to f0*g + f1*g*x^split.
// Otherwise: f0*g0 + ((f0+f1)*(g0+g1) - f0*g0 - f1*g1)*x^split +
// f1*g1*x^(2*split).
func karatsubaStep(r *modulus.Ring, a, b []uint64) []uint64 {
	n, m := len(a), len(b)
	split := (n + 1) / 2
	a0, a1 := a[:split], a[split:]

	out := make([]uint64, n+m-1)

	if m <= split {
		lo := multiplyRaw(r, a0, b)
		hi := multiplyRaw(r, a1, b)
		copy(out, lo)
		addInPlaceAt(r, out, hi, split)

		return out
	}

	b0, b1 := b[:split], b[split:]

	f0g0 := multiplyRaw(r, a0, b0)
	f1g1 := multiplyRaw(r, a1, b1)
	mid := multiplyRaw(r, addRaw(r, a0, a1), addRaw(r, b0, b1))
	subInPlaceAt(r, mid, f0g0, 0)
	subInPlaceAt(r, mid, f1g1, 0)

	copy(out, f0g0)
	addInPlaceAt(r, out, mid, split)
	addInPlaceAt(r, out, f1g1, 2*split)

	return out
}

// unsafeEligibleForSquare is tighter than unsafeEligible: classicalSquare's
// off-diagonal terms are doubled, so each is worth two units of the
// magic32 budget.
func unsafeEligibleForSquare(r *modulus.Ring, n int) bool {
	return uint64(n) <= r.Magic().SafeAccumulatorBound()/2
}

// classicalSquareSafe computes a^2 counting the diagonal once and doubling
// each off-diagonal product, reducing after every accumulation.
func classicalSquareSafe(r *modulus.Ring, a []uint64) []uint64 {
	n := len(a)
	out := make([]uint64, 2*n-1)

	for i, ai := range a {
		if ai == 0 {
			continue
		}
		out[2*i] = r.Add(out[2*i], r.Mul(ai, ai))

		for j := i + 1; j < n; j++ {
			if a[j] == 0 {
				continue
			}
			prod := r.Mul(ai, a[j])
			out[i+j] = r.Add(out[i+j], r.Add(prod, prod))
		}
	}

	return out
}

func classicalSquareUnsafe(r *modulus.Ring, a []uint64) []uint64 {
	n := len(a)
	acc := make([]uint64, 2*n-1)

	for i, ai := range a {
		if ai == 0 {
			continue
		}
		acc[2*i] += ai * ai

		for j := i + 1; j < n; j++ {
			if a[j] == 0 {
				continue
			}
			acc[i+j] += 2 * ai * a[j]
		}
	}

	m := r.Magic()
	for i := range acc {
		acc[i] = m.Mod(acc[i])
	}

	return acc
}

func classicalSquareDispatch(r *modulus.Ring, a []uint64) []uint64 {
	if unsafeEligibleForSquare(r, len(a)) {
		return classicalSquareUnsafe(r, a)
	}

	return classicalSquareSafe(r, a)
}

// squareRaw is Karatsuba squaring: one recursive call per half plus the
// cross term recovered from (a0+a1)^2 - a0^2 - a1^2, which is exactly
// 2*a0*a1 and so needs no separate doubling step.
func squareRaw(r *modulus.Ring, a []uint64) []uint64 {
	n := len(a)
	if n*n < classicalThreshold(r, n) {
		return classicalSquareDispatch(r, a)
	}

	split := (n + 1) / 2
	a0, a1 := a[:split], a[split:]

	f0 := squareRaw(r, a0)
	f1 := squareRaw(r, a1)
	mid := squareRaw(r, addRaw(r, a0, a1))
	subInPlaceAt(r, mid, f0, 0)
	subInPlaceAt(r, mid, f1, 0)

	out := make([]uint64, 2*n-1)
	copy(out, f0)
	addInPlaceAt(r, out, mid, split)
	addInPlaceAt(r, out, f1, 2*split)

	return out
}

func rawToPoly(r *modulus.Ring, raw []uint64) *DensePoly {
	p := &DensePoly{ring: r, coeffs: raw, degree: len(raw) - 1}
	return p.fixDegree()
}

// MultiplyClassical forces the classical O(n*m) kernel, regardless of
// operand size. Exposed so callers (and tests) can check kernel agreement.
func MultiplyClassical(a, b *DensePoly) (*DensePoly, error) {
	if err := sameRing(a, b); err != nil {
		return nil, err
	}

	return rawToPoly(a.ring, classicalDispatch(a.ring, a.coeffs[:a.degree+1], b.coeffs[:b.degree+1])), nil
}

// MultiplyKaratsuba forces at least one level of Karatsuba recursion
// (falling back to classical below threshold only inside that recursion).
func MultiplyKaratsuba(a, b *DensePoly) (*DensePoly, error) {
	if err := sameRing(a, b); err != nil {
		return nil, err
	}

	ac, bc := a.coeffs[:a.degree+1], b.coeffs[:b.degree+1]
	if len(ac) < len(bc) {
		ac, bc = bc, ac
	}

	return rawToPoly(a.ring, karatsubaStep(a.ring, ac, bc)), nil
}

// multiplyAuto is the threshold-driven dispatcher PolyOps.Multiply uses.
func multiplyAuto(a, b *DensePoly) (*DensePoly, error) {
	if err := sameRing(a, b); err != nil {
		return nil, err
	}

	return rawToPoly(a.ring, multiplyRaw(a.ring, a.coeffs[:a.degree+1], b.coeffs[:b.degree+1])), nil
}

// SquareClassical forces the dedicated classical squaring path.
func SquareClassical(a *DensePoly) *DensePoly {
	return rawToPoly(a.ring, classicalSquareDispatch(a.ring, a.coeffs[:a.degree+1]))
}

// SquareKaratsuba forces at least one level of Karatsuba squaring.
func SquareKaratsuba(a *DensePoly) *DensePoly {
	ac := a.coeffs[:a.degree+1]
	if len(ac) == 1 {
		return rawToPoly(a.ring, classicalSquareDispatch(a.ring, ac))
	}

	n := len(ac)
	split := (n + 1) / 2
	a0, a1 := ac[:split], ac[split:]

	f0 := squareRaw(a.ring, a0)
	f1 := squareRaw(a.ring, a1)
	mid := squareRaw(a.ring, addRaw(a.ring, a0, a1))
	subInPlaceAt(a.ring, mid, f0, 0)
	subInPlaceAt(a.ring, mid, f1, 0)

	out := make([]uint64, 2*n-1)
	copy(out, f0)
	addInPlaceAt(a.ring, out, mid, split)
	addInPlaceAt(a.ring, out, f1, 2*split)

	return rawToPoly(a.ring, out)
}

// squareAuto is the threshold-driven dispatcher PolyOps.Square uses.
func squareAuto(a *DensePoly) *DensePoly {
	return rawToPoly(a.ring, squareRaw(a.ring, a.coeffs[:a.degree+1]))
}
