// Package poly implements dense univariate polynomials over a Z/pZ
// coefficient ring (see package modulus), their shape operations, and the
// multiplication kernels (classical, Karatsuba, and an optional
// NTT-accelerated path) that downstream GCD/factorization/Groebner code
// builds on.
package poly

import (
	"fmt"

	"github.com/jonathanmweiss/gozp/modulus"
)

// DensePoly is an ordered, densely stored coefficient sequence
// c[0] + c[1]x + ... + c[degree]x^degree over a fixed Z/pZ ring. A
// DensePoly exclusively owns its coefficient buffer; it is never shared
// between two values. Every mutating method returns self so calls chain.
//
// Invariants (true on return from every exported method except
// EnsureCapacity, which may raise degree past the last nonzero
// coefficient so the caller can write in place):
//
//	I1: degree is the largest i with c[i] != 0, or 0 if the polynomial is
//	    the zero polynomial (in which case c[0] == 0 too).
//	I2: every c[i] is in [0, p).
type DensePoly struct {
	ring   *modulus.Ring
	coeffs []uint64
	degree int
}

// Ring returns the coefficient ring this polynomial lives over.
func (p *DensePoly) Ring() *modulus.Ring { return p.ring }

// New builds a polynomial from coefficients ordered lowest-to-highest
// degree, normalizing each one into [0, p) and establishing I1.
func New(r *modulus.Ring, coeffs ...uint64) *DensePoly {
	buf := make([]uint64, len(coeffs))
	for i, c := range coeffs {
		buf[i] = r.Magic().Mod(c)
	}
	if len(buf) == 0 {
		buf = []uint64{0}
	}

	p := &DensePoly{ring: r, coeffs: buf, degree: len(buf) - 1}
	p.fixDegree()

	return p
}

// Zero returns the zero polynomial over r.
func Zero(r *modulus.Ring) *DensePoly {
	return &DensePoly{ring: r, coeffs: []uint64{0}, degree: 0}
}

// One returns the constant polynomial 1 over r.
func One(r *modulus.Ring) *DensePoly {
	return Constant(r, 1)
}

// Constant returns the constant polynomial v over r.
func Constant(r *modulus.Ring, v uint64) *DensePoly {
	return &DensePoly{ring: r, coeffs: []uint64{r.Magic().Mod(v)}, degree: 0}
}

// Monomial returns coef*x^deg over r. deg < 0 is a PreconditionViolation.
func Monomial(r *modulus.Ring, coef uint64, deg int) (*DensePoly, error) {
	if deg < 0 {
		return nil, fmt.Errorf("monomial: negative degree %d: %w", deg, modulus.ErrPrecondition)
	}

	buf := make([]uint64, deg+1)
	buf[deg] = r.Magic().Mod(coef)

	p := &DensePoly{ring: r, coeffs: buf, degree: deg}
	p.fixDegree()

	return p, nil
}

// Degree returns the degree, per I1.
func (p *DensePoly) Degree() int { return p.degree }

// LC returns the leading coefficient, c[degree].
func (p *DensePoly) LC() uint64 { return p.coeffs[p.degree] }

// CC returns the constant coefficient, c[0].
func (p *DensePoly) CC() uint64 { return p.coeffs[0] }

// IsZero reports whether p is the zero polynomial.
func (p *DensePoly) IsZero() bool { return p.degree == 0 && p.coeffs[0] == 0 }

// Get returns c[i], or 0 for any i outside the stored range. Pure: never
// mutates p.
func (p *DensePoly) Get(i int) uint64 {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}

	return p.coeffs[i]
}

// Len returns degree+1, the number of coefficients c[0..degree]. The
// backing buffer may be longer; the positions past degree hold zeros.
func (p *DensePoly) Len() int { return p.degree + 1 }

// EnsureCapacity grows the coefficient buffer to hold exponent d and, if
// degree is currently smaller than d, raises degree to d so a caller can
// write coefficients up to x^d in place. It never shrinks the buffer.
func (p *DensePoly) EnsureCapacity(d int) *DensePoly {
	if d < 0 {
		return p
	}

	if len(p.coeffs) <= d {
		grown := growTo(len(p.coeffs), d+1)
		buf := make([]uint64, grown)
		copy(buf, p.coeffs)
		p.coeffs = buf
	}

	if p.degree < d {
		p.degree = d
	}

	return p
}

// growTo doubles cur geometrically until it can hold at least need
// elements; capacity never shrinks on later reduction.
func growTo(cur, need int) int {
	if cur == 0 {
		cur = 1
	}
	for cur < need {
		cur *= 2
	}

	return cur
}

// fixDegree scans from the current degree downward past zero coefficients,
// lowering degree accordingly and zeroing the vacated positions. It is
// idempotent and is the sanctioned way to re-establish I1 after any direct
// coefficient write.
func (p *DensePoly) fixDegree() *DensePoly {
	d := p.degree
	if d >= len(p.coeffs) {
		d = len(p.coeffs) - 1
	}

	for d > 0 && p.coeffs[d] == 0 {
		d--
	}

	for i := d + 1; i < len(p.coeffs); i++ {
		p.coeffs[i] = 0
	}

	p.degree = d

	return p
}

// ShiftLeft divides p by x^k, discarding the low k terms. k > degree
// produces the zero polynomial.
func (p *DensePoly) ShiftLeft(k int) *DensePoly {
	if k <= 0 {
		return p
	}
	if k > p.degree {
		p.coeffs = p.coeffs[:1]
		p.coeffs[0] = 0
		p.degree = 0

		return p
	}

	newDegree := p.degree - k
	copy(p.coeffs, p.coeffs[k:p.degree+1])
	for i := newDegree + 1; i < len(p.coeffs); i++ {
		p.coeffs[i] = 0
	}
	p.degree = newDegree

	return p.fixDegree()
}

// ShiftRight multiplies p by x^k, growing the buffer and moving
// coefficients up.
func (p *DensePoly) ShiftRight(k int) *DensePoly {
	if k <= 0 {
		return p
	}

	p.EnsureCapacity(p.degree + k)

	for i := p.degree; i >= k; i-- {
		p.coeffs[i] = p.coeffs[i-k]
	}
	for i := 0; i < k && i <= p.degree; i++ {
		p.coeffs[i] = 0
	}

	return p.fixDegree()
}

// Truncate zeroes every coefficient above newDeg. newDeg < 0 is a
// PreconditionViolation.
func (p *DensePoly) Truncate(newDeg int) (*DensePoly, error) {
	if newDeg < 0 {
		return nil, fmt.Errorf("truncate: negative degree %d: %w", newDeg, modulus.ErrPrecondition)
	}

	if newDeg < p.degree {
		for i := newDeg + 1; i <= p.degree && i < len(p.coeffs); i++ {
			p.coeffs[i] = 0
		}
		p.degree = newDeg
	}

	return p.fixDegree(), nil
}

// Reverse reverses c[0..degree] in place.
func (p *DensePoly) Reverse() *DensePoly {
	for i, j := 0, p.degree; i < j; i, j = i+1, j-1 {
		p.coeffs[i], p.coeffs[j] = p.coeffs[j], p.coeffs[i]
	}

	return p.fixDegree()
}

// Content is the gcd of the literal (non-negative) coefficient values
// c[0..degree], per spec.md's WordArith.longGcd. By convention the content
// of the zero polynomial is 0, and of a nonzero constant is that constant.
func (p *DensePoly) Content() uint64 {
	signed := make([]int64, p.degree+1)
	for i := range signed {
		signed[i] = int64(p.coeffs[i])
	}

	return modulus.LongGCD(signed, 0, len(signed))
}

// PrimitivePart divides p through by its content. Over Z/pZ the content,
// when nonzero, is always invertible (p is prime), so this never fails:
// it scales every coefficient by the content's inverse. The zero
// polynomial (content 0) is returned unchanged.
func (p *DensePoly) PrimitivePart() (*DensePoly, error) {
	c := p.Content()
	if c == 0 {
		return p, nil
	}

	inv, err := p.ring.Inverse(c)
	if err != nil {
		return nil, err
	}

	for i := range p.coeffs[:p.degree+1] {
		p.coeffs[i] = p.ring.Mul(p.coeffs[i], inv)
	}

	return p.fixDegree(), nil
}

// Evaluate computes p(x) in the coefficient ring via Horner's method.
func (p *DensePoly) Evaluate(x uint64) uint64 {
	x = p.ring.Magic().Mod(x)

	result := uint64(0)
	for i := p.degree; i >= 0; i-- {
		result = p.ring.Add(p.ring.Mul(result, x), p.coeffs[i])
	}

	return result
}

// Derivative computes c'[i] = (i+1)*c[i+1] in the coefficient ring.
func (p *DensePoly) Derivative() *DensePoly {
	if p.degree == 0 {
		p.coeffs[0] = 0

		return p
	}

	for i := 0; i < p.degree; i++ {
		coeff := p.ring.Normalize(int64(i + 1))
		p.coeffs[i] = p.ring.Mul(coeff, p.coeffs[i+1])
	}
	p.coeffs[p.degree] = 0
	p.degree--

	return p.fixDegree()
}

// Monic scales p so its leading coefficient is 1. The zero polynomial is
// returned unchanged.
func (p *DensePoly) Monic() (*DensePoly, error) {
	lc := p.LC()
	if lc == 0 {
		return p, nil
	}
	if lc == 1 {
		return p, nil
	}

	inv, err := p.ring.Inverse(lc)
	if err != nil {
		return nil, err
	}

	for i := range p.coeffs[:p.degree+1] {
		p.coeffs[i] = p.ring.Mul(p.coeffs[i], inv)
	}

	return p, nil
}

// Clone returns a deep copy that owns independent storage.
func (p *DensePoly) Clone() *DensePoly {
	buf := make([]uint64, len(p.coeffs))
	copy(buf, p.coeffs)

	return &DensePoly{ring: p.ring, coeffs: buf, degree: p.degree}
}

// Equals reports structural equality: same modulus, same degree, same
// coefficients.
func (p *DensePoly) Equals(q *DensePoly) bool {
	if p.ring.Prime() != q.ring.Prime() || p.degree != q.degree {
		return false
	}

	for i := 0; i <= p.degree; i++ {
		if p.coeffs[i] != q.coeffs[i] {
			return false
		}
	}

	return true
}

// CompareTo orders lexicographically on (degree, coefficients high-to-low).
func (p *DensePoly) CompareTo(q *DensePoly) int {
	if p.degree != q.degree {
		if p.degree < q.degree {
			return -1
		}

		return 1
	}

	for i := p.degree; i >= 0; i-- {
		if p.coeffs[i] != q.coeffs[i] {
			if p.coeffs[i] < q.coeffs[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// Hash returns a hash of (p, degree, coefficients) suitable for map keys
// and set membership; it is not a cryptographic hash.
func (p *DensePoly) Hash() uint64 {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)

	h := uint64(offset)
	mix := func(v uint64) {
		for i := 0; i < 8; i++ {
			h ^= v & 0xff
			h *= prime
			v >>= 8
		}
	}

	mix(p.ring.Prime())
	for i := 0; i <= p.degree; i++ {
		mix(p.coeffs[i])
	}

	return h
}
