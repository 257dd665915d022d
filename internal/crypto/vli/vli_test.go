package vli

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toNative(x *big.Int, n int) []uint64 {
	v := make([]uint64, 2*MaxWords)
	b := make([]byte, n*WordBytes)
	x.FillBytes(b)
	BytesToNative(v, b, len(b))
	return v
}

func toBig(v []uint64, n int) *big.Int {
	b := make([]byte, n*WordBytes)
	NativeToBytes(b, len(b), v)
	return new(big.Int).SetBytes(b)
}

// assertBigEqual compares by value; assert.Equal would also compare the
// internal representation, which differs for zero.
func assertBigEqual(t *testing.T, want, got *big.Int, msgAndArgs ...interface{}) bool {
	t.Helper()
	if want.Cmp(got) == 0 {
		return true
	}
	return assert.Fail(t, "want "+want.Text(16)+", got "+got.Text(16), msgAndArgs...)
}

func randBig(t *testing.T, bitLen int) *big.Int {
	t.Helper()
	max := new(big.Int).Lsh(big.NewInt(1), uint(bitLen))
	x, err := rand.Int(rand.Reader, max)
	require.NoError(t, err)
	return x
}

func TestCmpAndEqual(t *testing.T) {
	a := toNative(big.NewInt(5), 4)
	b := toNative(big.NewInt(7), 4)

	assert.Equal(t, -1, Cmp(a, b, 4))
	assert.Equal(t, 1, Cmp(b, a, 4))
	assert.Equal(t, 0, Cmp(a, a, 4))
	assert.True(t, Equal(a, a, 4))
	assert.False(t, Equal(a, b, 4))

	for i := 0; i < 200; i++ {
		x := randBig(t, 256)
		y := randBig(t, 256)
		assert.Equal(t, x.Cmp(y), Cmp(toNative(x, 4), toNative(y, 4), 4))
	}
}

func TestNumBits(t *testing.T) {
	zero := make([]uint64, MaxWords)
	assert.Equal(t, 0, NumBits(zero, MaxWords))
	assert.Equal(t, 0, NumWords(zero, MaxWords))
	assert.True(t, IsZero(zero, MaxWords))

	for _, bitLen := range []int{1, 63, 64, 65, 128, 200, 255, 256, 383, 384} {
		x := new(big.Int).Lsh(big.NewInt(1), uint(bitLen-1))
		v := toNative(x, MaxWords)
		assert.Equal(t, bitLen, NumBits(v, MaxWords), "bit length %d", bitLen)
		assert.Equal(t, (bitLen+63)/64, NumWords(v, MaxWords))
		assert.Equal(t, uint64(1), TestBit(v, bitLen-1))
		assert.Zero(t, TestBit(v, bitLen))
	}
}

func TestAddSub(t *testing.T) {
	for i := 0; i < 200; i++ {
		x := randBig(t, 256)
		y := randBig(t, 256)
		a, b := toNative(x, 4), toNative(y, 4)
		r := make([]uint64, 4)

		carry := Add(r, a, b, 4)
		sum := new(big.Int).Add(x, y)
		assert.Equal(t, uint64(sum.Bit(256)), carry)
		sum.SetBit(sum, 256, 0)
		assertBigEqual(t, sum, toBig(r, 4))

		borrow := Sub(r, a, b, 4)
		assert.Equal(t, x.Cmp(y) < 0, borrow == 1)
		diff := new(big.Int).Sub(x, y)
		diff.Mod(diff, new(big.Int).Lsh(big.NewInt(1), 256))
		assertBigEqual(t, diff, toBig(r, 4))
	}
}

func TestMult(t *testing.T) {
	for _, n := range []int{4, 6} {
		for i := 0; i < 100; i++ {
			x := randBig(t, n*WordBits)
			y := randBig(t, n*WordBits)
			r := make([]uint64, 2*n)
			Mult(r, toNative(x, n), toNative(y, n), n)
			assertBigEqual(t, new(big.Int).Mul(x, y), toBig(r, 2*n))
		}
	}
}

func TestSelectAndShift(t *testing.T) {
	a := toNative(big.NewInt(11), 4)
	b := toNative(big.NewInt(22), 4)
	r := make([]uint64, 4)

	Select(r, a, b, 1, 4)
	assert.Equal(t, a[:4], r)
	Select(r, a, b, 0, 4)
	assert.Equal(t, b[:4], r)

	x := randBig(t, 256)
	v := toNative(x, 4)
	RShift1(v, 4)
	assertBigEqual(t, new(big.Int).Rsh(x, 1), toBig(v, 4))

	v = toNative(x, 4)
	out := LShift(v, v, 3, 4)
	shifted := new(big.Int).Lsh(x, 3)
	assert.Equal(t, shifted.Rsh(shifted, 256).Uint64(), out)
}

func TestByteConversion(t *testing.T) {
	// 28 bytes is not word aligned (secp224r1)
	b := make([]byte, 28)
	_, err := rand.Read(b)
	require.NoError(t, err)

	v := make([]uint64, MaxWords)
	BytesToNative(v, b, len(b))
	assertBigEqual(t, new(big.Int).SetBytes(b), toBig(v, 4))

	out := make([]byte, 28)
	NativeToBytes(out, len(out), v)
	assert.Equal(t, b, out)

	LEBytesToNative(v, b, len(b))
	le := make([]byte, 28)
	NativeToLEBytes(le, len(le), v)
	assert.Equal(t, b, le)
	for i := range b {
		assert.Equal(t, b[i], byte(v[i/8]>>(8*(i%8))))
	}
}
