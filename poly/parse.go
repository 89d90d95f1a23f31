package poly

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathanmweiss/gozp/modulus"
)

// ErrParse indicates a polynomial text expression could not be parsed.
var ErrParse = fmt.Errorf("poly: malformed expression: %w", modulus.ErrPrecondition)

// String renders p in canonical form: "c0+c1*x^1+c2*x^2+...", omitting
// zero terms, the "*x^1" suffix for the linear term (written "x"), the
// "^1" exponent, and any coefficient of exactly 1 on a non-constant term.
// The zero polynomial renders as "0".
func (p *DensePoly) String() string {
	if p.IsZero() {
		return "0"
	}

	var b strings.Builder
	first := true

	for i := 0; i <= p.degree; i++ {
		c := p.coeffs[i]
		if c == 0 {
			continue
		}

		if !first {
			b.WriteByte('+')
		}
		first = false

		switch {
		case i == 0:
			b.WriteString(strconv.FormatUint(c, 10))
		case i == 1:
			if c != 1 {
				b.WriteString(strconv.FormatUint(c, 10))
				b.WriteByte('*')
			}
			b.WriteByte('x')
		default:
			if c != 1 {
				b.WriteString(strconv.FormatUint(c, 10))
				b.WriteByte('*')
			}
			b.WriteString("x^")
			b.WriteString(strconv.Itoa(i))
		}
	}

	return b.String()
}

// Parse parses a polynomial expression of the form
// term ('+' | '-') term)*, term = coef | coef '*' 'x' ('^' exp)? | 'x'
// ('^' exp)?, whitespace-insensitive, over the ring r. It round-trips
// with String for any expression String produces.
func Parse(r *modulus.Ring, s string) (*DensePoly, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, fmt.Errorf("parse: empty expression: %w", ErrParse)
	}

	result := Zero(r)

	i := 0
	for i < len(s) {
		sign := int64(1)
		if s[i] == '+' {
			i++
		} else if s[i] == '-' {
			sign = -1
			i++
		} else if i != 0 {
			return nil, fmt.Errorf("parse %q: expected '+' or '-' at position %d: %w", s, i, ErrParse)
		}

		coef, deg, consumed, err := parseTerm(s[i:])
		if err != nil {
			return nil, fmt.Errorf("parse %q at position %d: %w", s, i, err)
		}
		i += consumed

		term, err := Monomial(r, r.Normalize(sign*int64(coef)), deg)
		if err != nil {
			return nil, err
		}
		if _, err := result.Add(term); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// parseTerm parses a single term at the start of s and returns its
// (unsigned) coefficient, degree, and how many bytes it consumed.
func parseTerm(s string) (coef uint64, deg int, consumed int, err error) {
	if s == "" {
		return 0, 0, 0, fmt.Errorf("expected a term: %w", ErrParse)
	}

	digitsEnd := 0
	for digitsEnd < len(s) && s[digitsEnd] >= '0' && s[digitsEnd] <= '9' {
		digitsEnd++
	}

	hasCoef := digitsEnd > 0
	if hasCoef {
		v, perr := strconv.ParseUint(s[:digitsEnd], 10, 64)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("invalid coefficient %q: %w", s[:digitsEnd], ErrParse)
		}
		coef = v
	}

	rest := s[digitsEnd:]

	if hasCoef && (rest == "" || (rest[0] != '*' && rest[0] != 'x')) {
		return coef, 0, digitsEnd, nil
	}

	if hasCoef {
		if rest[0] == '*' {
			rest = rest[1:]
			consumed = digitsEnd + 1
		} else {
			consumed = digitsEnd
		}
	} else {
		coef = 1
		consumed = 0
	}

	if rest == "" || rest[0] != 'x' {
		return 0, 0, 0, fmt.Errorf("expected 'x': %w", ErrParse)
	}
	rest = rest[1:]
	consumed++

	if rest == "" || rest[0] != '^' {
		return coef, 1, consumed, nil
	}
	rest = rest[1:]
	consumed++

	expEnd := 0
	for expEnd < len(rest) && rest[expEnd] >= '0' && rest[expEnd] <= '9' {
		expEnd++
	}
	if expEnd == 0 {
		return 0, 0, 0, fmt.Errorf("expected an exponent after '^': %w", ErrParse)
	}

	exp, perr := strconv.Atoi(rest[:expEnd])
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("invalid exponent %q: %w", rest[:expEnd], ErrParse)
	}
	consumed += expEnd

	return coef, exp, consumed, nil
}
