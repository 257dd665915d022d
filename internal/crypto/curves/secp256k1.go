package curves

import (
	"math/bits"
	"sync"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

var (
	secp256k1Once   sync.Once
	secp256k1Params *Weierstrass
)

// Secp256k1 returns the secp256k1 descriptor.
func Secp256k1() *Weierstrass {
	secp256k1Once.Do(func() {
		secp256k1Params = newWeierstrass(weierstrassParams{
			name:       "secp256k1",
			bytes:      32,
			p:          []uint64{0xFFFFFFFEFFFFFC2F, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF},
			n:          []uint64{0xBFD25E8CD0364141, 0xBAAEDCE6AF48A03B, 0xFFFFFFFFFFFFFFFE, 0xFFFFFFFFFFFFFFFF},
			halfN:      []uint64{0xDFE92F46681B20A0, 0x5D576E7357A4501D, 0xFFFFFFFFFFFFFFFF, 0x7FFFFFFFFFFFFFFF},
			b:          []uint64{0x0000000000000007, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000},
			gx:         []uint64{0x59F2815B16F81798, 0x029BFCDB2DCE28D9, 0x55A06295CE870B07, 0x79BE667EF9DCBBAC},
			gy:         []uint64{0x9C47D08FFB10D4B8, 0xFD17B448A6855419, 0x5DA4FBFC0E1108A8, 0x483ADA7726A3C465},
			aIsZero:    true,
			sqrtExp:    []uint64{0xFFFFFFFFBFFFFF0C, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x3FFFFFFFFFFFFFFF},
			fastReduce: reduceSecp256k1,
		})
	})
	return secp256k1Params
}

var secp256k1P = [4]uint64{0xFFFFFFFEFFFFFC2F, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF}

// omegaMultSecp256k1 sets result (5 words) = right (4 words) * 0x1000003D1,
// where 2^256 = 0x1000003D1 (mod p).
func omegaMultSecp256k1(result, right []uint64) {
	var r0, r1, carry uint64
	for k := 0; k < 4; k++ {
		hi, lo := bits.Mul64(0x1000003D1, right[k])
		r0, carry = bits.Add64(r1, lo, 0)
		result[k] = r0
		r1 = hi + carry
	}
	result[4] = r1
}

// reduceSecp256k1 folds the high half of product twice through
// 2^256 = 0x1000003D1 (mod p).
func reduceSecp256k1(result, product []uint64) {
	var tmp, folded, t [8]uint64

	omegaMultSecp256k1(tmp[:], product[4:8]) // (Rq, q) = q * c
	carry := vli.Add(result, product, tmp[:], 4)
	omegaMultSecp256k1(folded[:], tmp[4:8]) // Rq * c
	carry += vli.Add(result, result, folded[:], 4)

	// each carry stands for 2^256; subtracting p modulo 2^256 adds it back
	for i := uint64(0); i < 2; i++ {
		vli.Sub(t[:], result, secp256k1P[:], 4)
		vli.Select(result, t[:], result, lessMask(i, carry), 4)
	}
	borrow := vli.Sub(t[:], result, secp256k1P[:], 4)
	vli.Select(result, t[:], result, borrow^1, 4)
}

// lessMask returns 1 when a < b, for small non-negative values.
func lessMask(a, b uint64) uint64 {
	_, borrow := bits.Sub64(a, b, 0)
	return borrow
}
