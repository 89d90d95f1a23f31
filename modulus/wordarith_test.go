package modulus

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiplyHighLow(t *testing.T) {
	a := assert.New(t)

	hi, lo := MultiplyHighLow(1<<63, 2)
	a.Equal(uint64(1), hi)
	a.Equal(uint64(0), lo)

	hi, lo = MultiplyHighLow(0, 12345)
	a.Equal(uint64(0), hi)
	a.Equal(uint64(0), lo)

	x, y := uint64(18446744073709551557), uint64(9223372036854775837)
	hi, lo = MultiplyHighLow(x, y)

	want := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
	gotHi := new(big.Int).Rsh(want, 64)
	gotLo := new(big.Int).And(want, new(big.Int).SetUint64(^uint64(0)))

	a.Equal(gotHi.Uint64(), hi)
	a.Equal(gotLo.Uint64(), lo)
}

func TestAddHighLow(t *testing.T) {
	a := assert.New(t)

	hi, lo := AddHighLow(0, ^uint64(0), 0, 1)
	a.Equal(uint64(1), hi)
	a.Equal(uint64(0), lo)

	hi, lo = AddHighLow(5, 10, 3, 20)
	a.Equal(uint64(8), hi)
	a.Equal(uint64(30), lo)
}

func TestSafeAdd(t *testing.T) {
	a := assert.New(t)

	v, err := SafeAdd(1, 2)
	a.NoError(err)
	a.Equal(int64(3), v)

	_, err = SafeAdd(1<<62, 1<<62)
	a.ErrorIs(err, ErrOverflow)

	_, err = SafeAdd(-(1 << 62), -(1 << 62) - 1)
	a.ErrorIs(err, ErrOverflow)
}

func TestLongGCD(t *testing.T) {
	a := assert.New(t)

	a.Equal(uint64(6), LongGCD([]int64{12, -18, 30}, 0, 3))
	a.Equal(uint64(1), LongGCD([]int64{5, 7, 11}, 0, 3))
	a.Equal(uint64(0), LongGCD([]int64{0, 0}, 0, 2))
	a.Equal(uint64(5), LongGCD([]int64{0, -5}, 0, 2))
	a.Equal(uint64(0), LongGCD(nil, 0, 0))
}

func TestBinaryGCD(t *testing.T) {
	a := assert.New(t)

	a.Equal(uint64(4), binaryGCD(8, 12))
	a.Equal(uint64(1), binaryGCD(17, 5))
	a.Equal(uint64(9), binaryGCD(0, 9))
	a.Equal(uint64(9), binaryGCD(9, 0))
}
