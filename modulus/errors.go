// Package modulus implements word-sized modular arithmetic over Z/pZ for a
// runtime prime p representable in a single machine word (uint64).
package modulus

import "errors"

// Error categories shared across modulus and poly. Call sites wrap these
// with fmt.Errorf("...: %w", ...) so errors.Is keeps working once extra
// context (the offending value, the operation name) is attached.
var (
	// ErrPrecondition marks a caller violation: a negative exponent, a
	// zero modulus, a negative degree, and so on.
	ErrPrecondition = errors.New("precondition violation")

	// ErrDivisionByZero marks an attempted inverse of zero, or division
	// by the zero polynomial.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrOverflow marks a signed 64-bit addition that would wrap around
	// (SafeAdd). The multiplication kernels never return it: they pick the
	// safe-reduction path from the magic32 bound before their unreduced
	// accumulators could overflow.
	ErrOverflow = errors.New("modular accumulator overflow")
)
