package curves

import (
	"sync"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

var (
	secp256r1Once   sync.Once
	secp256r1Params *Weierstrass
)

// Secp256r1 returns the NIST P-256 descriptor.
func Secp256r1() *Weierstrass {
	secp256r1Once.Do(func() {
		secp256r1Params = newWeierstrass(weierstrassParams{
			name:       "secp256r1",
			bytes:      32,
			p:          secp256r1P[:],
			n:          []uint64{0xF3B9CAC2FC632551, 0xBCE6FAADA7179E84, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFF00000000},
			halfN:      []uint64{0x79DCE5617E3192A8, 0xDE737D56D38BCF42, 0x7FFFFFFFFFFFFFFF, 0x7FFFFFFF80000000},
			b:          []uint64{0x3BCE3C3E27D2604B, 0x651D06B0CC53B0F6, 0xB3EBBD55769886BC, 0x5AC635D8AA3A93E7},
			gx:         []uint64{0xF4A13945D898C296, 0x77037D812DEB33A0, 0xF8BCE6E563A440F2, 0x6B17D1F2E12C4247},
			gy:         []uint64{0xCBB6406837BF51F5, 0x2BCE33576B315ECE, 0x8EE7EB4A7C0F9E16, 0x4FE342E2FE1A7F9B},
			sqrtExp:    []uint64{0x0000000000000000, 0x0000000040000000, 0x4000000000000000, 0x3FFFFFFFC0000000},
			fastReduce: reduceSecp256r1,
		})
	})
	return secp256r1Params
}

var secp256r1P = [4]uint64{0xFFFFFFFFFFFFFFFF, 0x00000000FFFFFFFF, 0x0000000000000000, 0xFFFFFFFF00000001}

// reduceSecp256r1 is the NIST fast reduction: the product is split into
// 32-bit halves and recombined as t + 2s1 + 2s2 + s3 + s4 - d1 - d2 - d3 - d4.
func reduceSecp256r1(result, product []uint64) {
	var tmp [4]uint64
	var carry int

	// t
	vli.Set(result, product, 4)

	// s1
	tmp[0] = 0
	tmp[1] = product[5] & 0xffffffff00000000
	tmp[2] = product[6]
	tmp[3] = product[7]
	carry = int(vli.Add(tmp[:], tmp[:], tmp[:], 4))
	carry += int(vli.Add(result, result, tmp[:], 4))

	// s2
	tmp[1] = product[6] << 32
	tmp[2] = (product[6] >> 32) | (product[7] << 32)
	tmp[3] = product[7] >> 32
	carry += int(vli.Add(tmp[:], tmp[:], tmp[:], 4))
	carry += int(vli.Add(result, result, tmp[:], 4))

	// s3
	tmp[0] = product[4]
	tmp[1] = product[5] & 0xffffffff
	tmp[2] = 0
	tmp[3] = product[7]
	carry += int(vli.Add(result, result, tmp[:], 4))

	// s4
	tmp[0] = (product[4] >> 32) | (product[5] << 32)
	tmp[1] = (product[5] >> 32) | (product[6] & 0xffffffff00000000)
	tmp[2] = product[7]
	tmp[3] = (product[6] >> 32) | (product[4] << 32)
	carry += int(vli.Add(result, result, tmp[:], 4))

	// d1
	tmp[0] = (product[5] >> 32) | (product[6] << 32)
	tmp[1] = product[6] >> 32
	tmp[2] = 0
	tmp[3] = (product[4] & 0xffffffff) | (product[5] << 32)
	carry -= int(vli.Sub(result, result, tmp[:], 4))

	// d2
	tmp[0] = product[6]
	tmp[1] = product[7]
	tmp[2] = 0
	tmp[3] = (product[4] >> 32) | (product[5] & 0xffffffff00000000)
	carry -= int(vli.Sub(result, result, tmp[:], 4))

	// d3
	tmp[0] = (product[6] >> 32) | (product[7] << 32)
	tmp[1] = (product[7] >> 32) | (product[4] << 32)
	tmp[2] = (product[4] >> 32) | (product[5] << 32)
	tmp[3] = product[6] << 32
	carry -= int(vli.Sub(result, result, tmp[:], 4))

	// d4
	tmp[0] = product[7]
	tmp[1] = product[4] & 0xffffffff00000000
	tmp[2] = product[5]
	tmp[3] = product[6] & 0xffffffff00000000
	carry -= int(vli.Sub(result, result, tmp[:], 4))

	if carry < 0 {
		for carry < 0 {
			carry += int(vli.Add(result, result, secp256r1P[:], 4))
		}
		return
	}
	for carry != 0 || vli.Cmp(secp256r1P[:], result, 4) != 1 {
		carry -= int(vli.Sub(result, result, secp256r1P[:], 4))
	}
}
