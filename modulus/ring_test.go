package modulus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingBasicOps(t *testing.T) {
	a := assert.New(t)

	r, err := New(17)
	a.NoError(err)

	a.Equal(uint64(5), r.Add(3, 2))
	a.Equal(uint64(1), r.Add(16, 2))
	a.Equal(uint64(1), r.Sub(3, 2))
	a.Equal(uint64(15), r.Sub(2, 4))
	a.Equal(uint64(6), r.Mul(2, 3))
	a.Equal(uint64(0), r.Neg(0))
	a.Equal(uint64(14), r.Neg(3))
}

func TestRingNormalize(t *testing.T) {
	a := assert.New(t)

	r, err := New(7)
	a.NoError(err)

	a.Equal(uint64(3), r.Normalize(3))
	a.Equal(uint64(4), r.Normalize(-3))
	a.Equal(uint64(0), r.Normalize(-7))
	a.Equal(uint64(3), r.Normalize(17))
}

func TestRingInverse(t *testing.T) {
	a := assert.New(t)

	r, err := New(17)
	a.NoError(err)

	for x := uint64(1); x < 17; x++ {
		inv, err := r.Inverse(x)
		a.NoError(err)
		a.Equal(uint64(1), r.Mul(x, inv))
	}

	_, err = r.Inverse(0)
	a.ErrorIs(err, ErrDivisionByZero)
}

func TestRingPow(t *testing.T) {
	a := assert.New(t)

	r, err := New(17)
	a.NoError(err)

	v, err := r.Pow(3, 0)
	a.NoError(err)
	a.Equal(uint64(1), v)

	v, err = r.Pow(0, 0)
	a.NoError(err)
	a.Equal(uint64(1), v)

	v, err = r.Pow(2, 10)
	a.NoError(err)
	a.Equal(uint64(1024%17), v)

	v, err = r.Pow(3, -1)
	a.NoError(err)
	inv, _ := r.Inverse(3)
	a.Equal(inv, v)

	_, err = r.Pow(3, -2)
	a.ErrorIs(err, ErrPrecondition)
}

func TestRingRootOfUnity(t *testing.T) {
	a := assert.New(t)

	r, err := New(65537)
	a.NoError(err)

	root, err := r.RootOfUnity(4)
	a.NoError(err)
	a.Equal(uint64(65281), root)

	root, err = r.RootOfUnity(8)
	a.NoError(err)
	a.Equal(uint64(4096), root)

	_, err = r.RootOfUnity(3)
	a.ErrorIs(err, ErrPrecondition)
}
