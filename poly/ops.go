package poly

import (
	"fmt"

	"github.com/jonathanmweiss/gozp/modulus"
)

// Add adds other into self in place and returns self.
func (p *DensePoly) Add(other *DensePoly) (*DensePoly, error) {
	if err := sameRing(p, other); err != nil {
		return nil, err
	}

	p.EnsureCapacity(other.degree)
	for i := 0; i <= other.degree; i++ {
		p.coeffs[i] = p.ring.Add(p.coeffs[i], other.coeffs[i])
	}

	return p.fixDegree(), nil
}

// Subtract computes self - other in place and returns self.
func (p *DensePoly) Subtract(other *DensePoly) (*DensePoly, error) {
	if err := sameRing(p, other); err != nil {
		return nil, err
	}

	p.EnsureCapacity(other.degree)
	for i := 0; i <= other.degree; i++ {
		p.coeffs[i] = p.ring.Sub(p.coeffs[i], other.coeffs[i])
	}

	return p.fixDegree(), nil
}

// SubtractScaled computes self - factor*x^exponent*other in place, the
// single-step reduction classical long division performs at every
// quotient digit. exponent < 0 is a PreconditionViolation.
func (p *DensePoly) SubtractScaled(other *DensePoly, factor uint64, exponent int) (*DensePoly, error) {
	if err := sameRing(p, other); err != nil {
		return nil, err
	}
	if exponent < 0 {
		return nil, fmt.Errorf("subtractScaled: negative exponent %d: %w", exponent, modulus.ErrPrecondition)
	}

	top := other.degree + exponent
	p.EnsureCapacity(top)

	for i := 0; i <= other.degree; i++ {
		term := p.ring.Mul(factor, other.coeffs[i])
		p.coeffs[i+exponent] = p.ring.Sub(p.coeffs[i+exponent], term)
	}

	return p.fixDegree(), nil
}

// AddScaled computes self + factor*other in place and returns self.
func (p *DensePoly) AddScaled(other *DensePoly, factor uint64) (*DensePoly, error) {
	if err := sameRing(p, other); err != nil {
		return nil, err
	}

	p.EnsureCapacity(other.degree)
	for i := 0; i <= other.degree; i++ {
		term := p.ring.Mul(factor, other.coeffs[i])
		p.coeffs[i] = p.ring.Add(p.coeffs[i], term)
	}

	return p.fixDegree(), nil
}

// Negate negates every coefficient of self in place.
func (p *DensePoly) Negate() *DensePoly {
	for i := 0; i <= p.degree; i++ {
		p.coeffs[i] = p.ring.Neg(p.coeffs[i])
	}

	return p
}

// Scale multiplies every coefficient of self by a scalar, in place.
func (p *DensePoly) Scale(scalar uint64) *DensePoly {
	scalar = p.ring.Magic().Mod(scalar)
	if scalar == 0 {
		p.coeffs = p.coeffs[:1]
		p.coeffs[0] = 0
		p.degree = 0

		return p
	}

	for i := 0; i <= p.degree; i++ {
		p.coeffs[i] = p.ring.Mul(p.coeffs[i], scalar)
	}

	return p
}

// Multiply replaces self with self*other using the threshold-driven
// classical/Karatsuba dispatcher (MulKernel), and returns self.
func (p *DensePoly) Multiply(other *DensePoly) (*DensePoly, error) {
	result, err := multiplyAuto(p, other)
	if err != nil {
		return nil, err
	}

	*p = *result

	return p, nil
}

// Square replaces self with self*self using the dedicated squaring
// kernel, and returns self.
func (p *DensePoly) Square() *DensePoly {
	result := squareAuto(p)
	*p = *result

	return p
}

// Pow raises self to a non-negative integer power via square-and-multiply.
// k < 0 is a PreconditionViolation. Pow(0) of any polynomial, including
// the zero polynomial, is the constant 1.
func (p *DensePoly) Pow(k int) (*DensePoly, error) {
	if k < 0 {
		return nil, fmt.Errorf("pow: negative exponent %d: %w", k, modulus.ErrPrecondition)
	}

	result := One(p.ring)
	base := p.Clone()

	for k > 0 {
		if k&1 == 1 {
			if _, err := result.Multiply(base); err != nil {
				return nil, err
			}
		}
		base.Square()
		k >>= 1
	}

	*p = *result

	return p, nil
}

// DivRem performs classical polynomial long division: self = q*divisor + r
// with deg(r) < deg(divisor), and returns (q, r). self is left untouched.
// divisor must be nonzero; its leading coefficient must be invertible,
// which always holds over Z/pZ for p prime.
func (p *DensePoly) DivRem(divisor *DensePoly) (*DensePoly, *DensePoly, error) {
	if err := sameRing(p, divisor); err != nil {
		return nil, nil, err
	}
	if divisor.IsZero() {
		return nil, nil, fmt.Errorf("divRem: zero divisor: %w", modulus.ErrDivisionByZero)
	}

	remainder := p.Clone()
	if remainder.degree < divisor.degree {
		return Zero(p.ring), remainder, nil
	}

	lcInv, err := p.ring.Inverse(divisor.LC())
	if err != nil {
		return nil, nil, err
	}

	quotient := Zero(p.ring)
	quotient.EnsureCapacity(remainder.degree - divisor.degree)

	for !remainder.IsZero() && remainder.degree >= divisor.degree {
		shift := remainder.degree - divisor.degree
		factor := p.ring.Mul(remainder.LC(), lcInv)

		quotient.coeffs[shift] = factor
		if _, err := remainder.SubtractScaled(divisor, factor, shift); err != nil {
			return nil, nil, err
		}
	}

	return quotient.fixDegree(), remainder, nil
}
