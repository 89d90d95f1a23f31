package modulus

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMagicRejectsBadModulus(t *testing.T) {
	a := assert.New(t)

	_, err := NewMagic(0)
	a.ErrorIs(err, ErrPrecondition)

	_, err = NewMagic(1 << 63)
	a.ErrorIs(err, ErrPrecondition)
}

func TestMagicModAgreesWithBigInt(t *testing.T) {
	a := assert.New(t)

	primes := []uint64{2, 3, 5, 17, 97, 65537, 9191248642791733759}
	values := []uint64{0, 1, 2, 16, 97, 1<<63 - 1, 18446744073709551615}

	for _, p := range primes {
		m, err := NewMagic(p)
		a.NoError(err)

		for _, v := range values {
			want := new(big.Int).Mod(new(big.Int).SetUint64(v), new(big.Int).SetUint64(p)).Uint64()
			a.Equalf(want, m.Mod(v), "p=%d v=%d", p, v)
		}
	}
}

func TestMagicPowerOfTwoModulus(t *testing.T) {
	a := assert.New(t)

	m, err := NewMagic(1 << 20)
	a.NoError(err)
	a.True(m.pow2)
	a.Equal(uint64(12345), m.Mod(12345))
	a.Equal(uint64(0), m.Mod(1<<20))
	a.Equal(uint64((1<<20)-1), m.Mod((1<<21)-1))
}

func TestMagicMulMod(t *testing.T) {
	a := assert.New(t)

	p := uint64(9191248642791733759) // p > 2^62
	m, err := NewMagic(p)
	a.NoError(err)

	n := uint64((1 << 63) - 1)
	e1 := m.Mod(n)

	e2 := new(big.Int).SetUint64(n)
	e2.Mul(e2, e2)
	e2.Mod(e2, new(big.Int).SetUint64(p))

	a.Equal(e2.Uint64(), m.MulMod(e1, e1))
}

func TestMagicModFast(t *testing.T) {
	a := assert.New(t)

	m, err := NewMagic(17)
	a.NoError(err)

	a.Equal(uint64(0), m.ModFast(0))
	a.Equal(uint64(16), m.ModFast(-1))
	a.Equal(uint64(1), m.ModFast(-16))
	a.Equal(uint64(5), m.ModFast(5))
	a.Equal(uint64(3), m.ModFast(20))
}

func TestSafeAccumulatorBound(t *testing.T) {
	a := assert.New(t)

	m, err := NewMagic(17)
	a.NoError(err)
	// (17-1)^2 = 256; floor((2^64-1)/256) should accommodate a very long
	// unsafe accumulation.
	a.Greater(m.SafeAccumulatorBound(), uint64(1<<50))

	big17, err := NewMagic((1 << 62) + 15)
	a.NoError(err)
	a.Less(big17.SafeAccumulatorBound(), uint64(8))
}

func FuzzMagicMod(f *testing.F) {
	f.Add(uint64(97), uint64(123456789))
	f.Add(uint64(2), uint64(1))
	f.Add(uint64((1<<62)+15), uint64(1<<63-1))

	f.Fuzz(func(t *testing.T, p, v uint64) {
		if p == 0 || p >= 1<<63 {
			t.Skip()
		}

		m, err := NewMagic(p)
		if err != nil {
			t.Skip()
		}

		want := new(big.Int).Mod(new(big.Int).SetUint64(v), new(big.Int).SetUint64(p)).Uint64()
		if got := m.Mod(v); got != want {
			t.Fatalf("Mod(%d) with p=%d: got %d, want %d", v, p, got, want)
		}
	})
}
