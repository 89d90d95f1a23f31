package modulus

import (
	"fmt"
	"sync"

	"github.com/tuneinsight/lattigo/v6/ring"
)

// Ring is the coefficient-ring view of Z/pZ: normalization of raw signed
// values into the canonical range, and the field operations (negate, add,
// sub, mul, inverse, power) that DensePoly and PolyOps build on. It owns
// the Magic descriptor for p and is safe to share across polynomials and
// across goroutines: its only state written after construction is the
// cached generator, which Generator sets once under a sync.Once.
type Ring struct {
	magic Magic

	rootOnce  sync.Once
	generator uint64
	rootErr   error
}

// New builds the ring Z/pZ for the given modulus. It does not primality
// test p; every operation that requires p to be prime (Inverse, root of
// unity discovery) documents that requirement instead.
func New(p uint64) (*Ring, error) {
	m, err := NewMagic(p)
	if err != nil {
		return nil, err
	}

	return &Ring{magic: m}, nil
}

// Prime returns p.
func (r *Ring) Prime() uint64 { return r.magic.Prime() }

// Magic exposes the precomputed divisor structure, mainly so MulKernel can
// read SafeAccumulatorBound for its threshold decision.
func (r *Ring) Magic() Magic { return r.magic }

// Normalize maps an arbitrary signed value into the canonical range [0, p).
func (r *Ring) Normalize(x int64) uint64 {
	p := int64(r.magic.Prime())
	v := x % p
	if v < 0 {
		v += p
	}

	return uint64(v)
}

// Neg returns p - a for a != 0, and 0 for a == 0.
func (r *Ring) Neg(a uint64) uint64 {
	if a == 0 {
		return 0
	}

	return r.magic.Prime() - a
}

// Add returns (a + b) mod p for a, b already in [0, p).
func (r *Ring) Add(a, b uint64) uint64 {
	s := a + b // a, b < p <= 2^63, so this cannot overflow uint64.
	if s >= r.magic.Prime() {
		s -= r.magic.Prime()
	}

	return s
}

// Sub returns (a - b) mod p for a, b already in [0, p).
func (r *Ring) Sub(a, b uint64) uint64 {
	if a < b {
		return r.magic.Prime() - (b - a)
	}

	return a - b
}

// Mul returns (a * b) mod p.
func (r *Ring) Mul(a, b uint64) uint64 {
	return r.magic.MulMod(a, b)
}

// Inverse returns the unique u in [1, p) with a*u == 1 (mod p), via the
// extended Euclidean algorithm. Fails with ErrDivisionByZero for a == 0,
// and also whenever gcd(a, p) != 1; for prime p that happens only for a
// multiple of p, so Inverse relies on p being prime.
func (r *Ring) Inverse(a uint64) (uint64, error) {
	if a == 0 {
		return 0, fmt.Errorf("inverse of 0 mod %d: %w", r.Prime(), ErrDivisionByZero)
	}

	p := int64(r.magic.Prime())
	oldR, curR := p, int64(a%r.magic.Prime())
	oldT, curT := int64(0), int64(1)

	for curR != 0 {
		q := oldR / curR
		oldR, curR = curR, oldR-q*curR
		oldT, curT = curT, oldT-q*curT
	}

	if oldR != 1 {
		// a shares a nontrivial factor with p: p is not prime, or a is a
		// multiple of p's factor. Neither is tested for upstream.
		return 0, fmt.Errorf("inverse of %d mod %d: gcd is %d, not 1: %w", a, r.Prime(), oldR, ErrDivisionByZero)
	}

	if oldT < 0 {
		oldT += p
	}

	return uint64(oldT), nil
}

// Pow computes base^exp (mod p) by square-and-multiply for exp >= 0.
// exp == -1 is accepted as a shorthand for Inverse(base); any other
// negative exponent is a PreconditionViolation. Pow(0, 0) is 1 by
// convention.
func (r *Ring) Pow(base uint64, exp int64) (uint64, error) {
	if exp == -1 {
		return r.Inverse(base)
	}
	if exp < 0 {
		return 0, fmt.Errorf("pow: negative exponent %d: %w", exp, ErrPrecondition)
	}

	result := uint64(1) % r.magic.Prime()
	b := base % r.magic.Prime()

	for exp > 0 {
		if exp&1 == 1 {
			result = r.Mul(result, b)
		}
		b = r.Mul(b, b)
		exp >>= 1
	}

	return result, nil
}

// Generator returns a generator of the multiplicative group Z/pZ*, lazily
// computed and cached. Requires p to be prime.
func (r *Ring) Generator() (uint64, error) {
	r.rootOnce.Do(func() {
		g, _, err := ring.PrimitiveRoot(r.Prime(), nil)
		r.generator, r.rootErr = g, err
	})

	return r.generator, r.rootErr
}

// RootOfUnity returns a primitive n-th root of unity in Z/pZ, for n a
// power of two dividing p-1. It exists to support the NTTKernel
// multiplication path in the poly package; the core engine never calls
// it itself.
func (r *Ring) RootOfUnity(n uint64) (uint64, error) {
	if n < 2 {
		return 0, fmt.Errorf("root of unity: n must be >= 2: %w", ErrPrecondition)
	}
	if n&(n-1) != 0 {
		return 0, fmt.Errorf("root of unity: n=%d must be a power of two: %w", n, ErrPrecondition)
	}
	if (r.Prime()-1)%n != 0 {
		return 0, fmt.Errorf("root of unity: n=%d must divide p-1: %w", n, ErrPrecondition)
	}

	g, err := r.Generator()
	if err != nil {
		return 0, err
	}

	root, _ := r.Pow(g, int64((r.Prime()-1)/n))

	return root, nil
}
