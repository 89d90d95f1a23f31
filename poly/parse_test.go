package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringCanonicalForm(t *testing.T) {
	a := assert.New(t)
	r := ring17(t)

	a.Equal("0", Zero(r).String())
	a.Equal("1", One(r).String())
	a.Equal("x", New(r, 0, 1).String())
	a.Equal("3*x", New(r, 0, 3).String())
	a.Equal("x^2", New(r, 0, 0, 1).String())
	a.Equal("2+3*x+x^2", New(r, 2, 3, 1).String())
	a.Equal("16", New(r, 16).String())
}

func TestParseStringRoundTrip(t *testing.T) {
	a := assert.New(t)
	r := ring17(t)

	cases := []*DensePoly{
		Zero(r),
		One(r),
		New(r, 0, 1),
		New(r, 2, 3, 1),
		New(r, 0, 0, 0, 1, 16, 1),
		New(r, 5, 0, 0, 0, 9),
	}

	for _, p := range cases {
		text := p.String()
		parsed, err := Parse(r, text)
		a.NoErrorf(err, "parsing %q", text)
		a.Truef(p.Equals(parsed), "round trip of %q: got %q", text, parsed.String())
	}
}

func TestParseHandlesSigns(t *testing.T) {
	a := assert.New(t)
	r := ring17(t)

	p, err := Parse(r, "5-3*x^2")
	a.NoError(err)

	want := New(r, 5, 0, r.Normalize(-3))
	a.True(p.Equals(want))
}

func TestParseWhitespaceInsensitive(t *testing.T) {
	a := assert.New(t)
	r := ring17(t)

	p, err := Parse(r, "  2 + 3 * x  ")
	a.NoError(err)
	a.True(p.Equals(New(r, 2, 3)))
}

func TestParseBareX(t *testing.T) {
	a := assert.New(t)
	r := ring17(t)

	p, err := Parse(r, "x^3")
	a.NoError(err)
	a.True(p.Equals(New(r, 0, 0, 0, 1)))

	p2, err := Parse(r, "x")
	a.NoError(err)
	a.True(p2.Equals(New(r, 0, 1)))
}

func TestParseRejectsMalformed(t *testing.T) {
	a := assert.New(t)
	r := ring17(t)

	_, err := Parse(r, "")
	a.ErrorIs(err, ErrParse)

	_, err = Parse(r, "x^")
	a.ErrorIs(err, ErrParse)

	_, err = Parse(r, "y")
	a.ErrorIs(err, ErrParse)

	_, err = Parse(r, "2x*")
	a.ErrorIs(err, ErrParse)
}
