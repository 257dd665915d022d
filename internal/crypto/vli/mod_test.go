package vli

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testModuli = []struct {
	name string
	hex  string
}{
	{"secp256k1.p", "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"},
	{"secp256k1.n", "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"},
	{"secp224r1.p", "ffffffffffffffffffffffffffffffff000000000000000000000001"},
	{"secp384r1.n", "ffffffffffffffffffffffffffffffffffffffffffffffffc7634d81f4372ddf581a0db248b0a77aecec196accc52973"},
	{"ed25519.l", "1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"},
}

func parseHex(h string) *big.Int {
	x, ok := new(big.Int).SetString(h, 16)
	if !ok {
		panic("bad hex " + h)
	}
	return x
}

func TestMMod(t *testing.T) {
	for _, tc := range testModuli {
		m := parseHex(tc.hex)
		n := WordsFor((m.BitLen() + 7) / 8)
		mod := toNative(m, n)
		for i := 0; i < 50; i++ {
			x := randBig(t, 2*n*WordBits)
			r := make([]uint64, n)
			MMod(r, toNative(x, 2*n), mod, n)
			assertBigEqual(t, new(big.Int).Mod(x, m), toBig(r, n), tc.name)
		}
	}
}

func TestModulusArithmetic(t *testing.T) {
	for _, tc := range testModuli {
		m := parseHex(tc.hex)
		n := WordsFor((m.BitLen() + 7) / 8)
		mod := NewModulus(toNative(m, n)[:n], nil)
		assert.Equal(t, n, mod.Words(), tc.name)
		assert.Equal(t, m.BitLen(), mod.Bits(), tc.name)

		for i := 0; i < 20; i++ {
			x := new(big.Int).Mod(randBig(t, n*WordBits), m)
			y := new(big.Int).Mod(randBig(t, n*WordBits), m)
			a, b := toNative(x, n), toNative(y, n)
			r := make([]uint64, MaxWords)

			mod.Add(r, a, b)
			assertBigEqual(t, new(big.Int).Mod(new(big.Int).Add(x, y), m), toBig(r, n), tc.name)

			mod.Sub(r, a, b)
			assertBigEqual(t, new(big.Int).Mod(new(big.Int).Sub(x, y), m), toBig(r, n), tc.name)

			mod.Mult(r, a, b)
			assertBigEqual(t, new(big.Int).Mod(new(big.Int).Mul(x, y), m), toBig(r, n), tc.name)

			mod.Square(r, a)
			assertBigEqual(t, new(big.Int).Mod(new(big.Int).Mul(x, x), m), toBig(r, n), tc.name)

			if x.Sign() != 0 {
				mod.Inv(r, a)
				assertBigEqual(t, new(big.Int).ModInverse(x, m), toBig(r, n), tc.name)
			}
		}
	}
}

func TestModAddEdges(t *testing.T) {
	m := parseHex(testModuli[0].hex)
	mod := toNative(m, 4)
	pm1 := toNative(new(big.Int).Sub(m, big.NewInt(1)), 4)
	one := toNative(big.NewInt(1), 4)
	r := make([]uint64, 4)

	// (p-1) + 1 wraps to zero
	ModAdd(r, pm1, one, mod, 4)
	assert.True(t, IsZero(r, 4))

	// (p-1) + (p-1) overflows 256 bits
	ModAdd(r, pm1, pm1, mod, 4)
	assertBigEqual(t, new(big.Int).Sub(m, big.NewInt(2)), toBig(r, 4))

	// 0 - 1 wraps to p-1
	zero := make([]uint64, 4)
	ModSub(r, zero, one, mod, 4)
	assert.Equal(t, pm1[:4], r)
}

func TestExp(t *testing.T) {
	m := parseHex(testModuli[2].hex)
	mod := NewModulus(toNative(m, 4)[:4], nil)
	for i := 0; i < 10; i++ {
		x := new(big.Int).Mod(randBig(t, 256), m)
		e := randBig(t, 224)
		r := make([]uint64, 4)
		mod.Exp(r, toNative(x, 4), toNative(e, 4))
		assertBigEqual(t, new(big.Int).Exp(x, e, m), toBig(r, 4))
	}
}
