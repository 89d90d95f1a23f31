package poly

import (
	"fmt"
	"math/bits"

	"github.com/jonathanmweiss/gozp/modulus"
)

// NTTKernel is an optional, non-replacing fourth multiplication strategy
// (SPEC_FULL.md §D) built on modulus.Ring.RootOfUnity: it transforms both
// operands into point-value form with a number-theoretic transform,
// multiplies pointwise, and transforms back. It is only usable when the
// modulus is NTT-friendly at the required transform length (p-1 divisible
// by a large enough power of two); IsNTTFriendly reports that in advance.
// The classical and Karatsuba kernels in mul.go remain the spec's
// required baseline; this is strictly supplemental.

// IsNTTFriendly reports whether r's modulus supports an NTT of at least
// the requested length (a power of two).
func IsNTTFriendly(r *modulus.Ring, length int) bool {
	n := nextPowerOfTwo(length)
	_, err := r.RootOfUnity(uint64(n))

	return err == nil
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

func bitReverse(n int) []int {
	logN := bits.TrailingZeros(uint(n))
	perm := make([]int, n)
	for i := range perm {
		perm[i] = bits.Reverse(uint(i)) >> (bits.UintSize - logN)
	}

	return perm
}

// nttTransform runs an iterative decimation-in-time NTT in place over
// coeffs (length must be a power of two), using root as the primitive
// n-th root of unity (or its inverse, for the backward transform).
func nttTransform(r *modulus.Ring, coeffs []uint64, root uint64) {
	n := len(coeffs)
	perm := bitReverse(n)
	for i, j := range perm {
		if i < j {
			coeffs[i], coeffs[j] = coeffs[j], coeffs[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		step := n / length
		wn, err := r.Pow(root, int64(step))
		if err != nil {
			// root is always invertible when it's a genuine root of unity;
			// a failure here means IsNTTFriendly was skipped by the caller.
			panic(fmt.Sprintf("nttTransform: root %d not usable: %v", root, err))
		}

		for start := 0; start < n; start += length {
			w := uint64(1)
			half := length / 2
			for k := 0; k < half; k++ {
				u := coeffs[start+k]
				v := r.Mul(coeffs[start+k+half], w)
				coeffs[start+k] = r.Add(u, v)
				coeffs[start+k+half] = r.Sub(u, v)
				w = r.Mul(w, wn)
			}
		}
	}
}

// nttForward computes the forward NTT of coeffs, zero-padded to n.
func nttForward(r *modulus.Ring, coeffs []uint64, n int, root uint64) []uint64 {
	buf := make([]uint64, n)
	copy(buf, coeffs)
	nttTransform(r, buf, root)

	return buf
}

// nttBackward computes the inverse NTT and scales by n^-1.
func nttBackward(r *modulus.Ring, values []uint64, root uint64) ([]uint64, error) {
	n := len(values)
	invRoot, err := r.Inverse(root)
	if err != nil {
		return nil, err
	}

	buf := make([]uint64, n)
	copy(buf, values)
	nttTransform(r, buf, invRoot)

	invN, err := r.Inverse(uint64(n))
	if err != nil {
		return nil, err
	}

	for i := range buf {
		buf[i] = r.Mul(buf[i], invN)
	}

	return buf, nil
}

// MultiplyNTT multiplies a and b via the NTT kernel. It returns
// ErrPrecondition if the ring has no primitive root of unity for the
// required transform length — callers should check IsNTTFriendly (or
// fall back to MultiplyKaratsuba) before relying on this path.
func MultiplyNTT(a, b *DensePoly) (*DensePoly, error) {
	if err := sameRing(a, b); err != nil {
		return nil, err
	}

	resultLen := a.Len() + b.Len() - 1
	n := nextPowerOfTwo(resultLen)

	root, err := a.ring.RootOfUnity(uint64(n))
	if err != nil {
		return nil, fmt.Errorf("multiplyNTT: modulus %d has no root of unity of order %d: %w", a.ring.Prime(), n, err)
	}

	fa := nttForward(a.ring, a.coeffs[:a.Len()], n, root)
	fb := nttForward(a.ring, b.coeffs[:b.Len()], n, root)

	pointwise := make([]uint64, n)
	for i := range pointwise {
		pointwise[i] = a.ring.Mul(fa[i], fb[i])
	}

	raw, err := nttBackward(a.ring, pointwise, root)
	if err != nil {
		return nil, err
	}

	return rawToPoly(a.ring, raw[:resultLen]), nil
}
