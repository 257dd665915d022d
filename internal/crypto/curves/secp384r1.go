package curves

import "sync"

var (
	secp384r1Once   sync.Once
	secp384r1Params *Weierstrass
)

// Secp384r1 returns the NIST P-384 descriptor. It uses the generic
// shift-subtract reduction.
func Secp384r1() *Weierstrass {
	secp384r1Once.Do(func() {
		secp384r1Params = newWeierstrass(weierstrassParams{
			name:    "secp384r1",
			bytes:   48,
			p:       []uint64{0x00000000FFFFFFFF, 0xFFFFFFFF00000000, 0xFFFFFFFFFFFFFFFE, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF},
			n:       []uint64{0xECEC196ACCC52973, 0x581A0DB248B0A77A, 0xC7634D81F4372DDF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF},
			halfN:   []uint64{0x76760CB5666294B9, 0xAC0D06D9245853BD, 0xE3B1A6C0FA1B96EF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x7FFFFFFFFFFFFFFF},
			b:       []uint64{0x2A85C8EDD3EC2AEF, 0xC656398D8A2ED19D, 0x0314088F5013875A, 0x181D9C6EFE814112, 0x988E056BE3F82D19, 0xB3312FA7E23EE7E4},
			gx:      []uint64{0x3A545E3872760AB7, 0x5502F25DBF55296C, 0x59F741E082542A38, 0x6E1D3B628BA79B98, 0x8EB1C71EF320AD74, 0xAA87CA22BE8B0537},
			gy:      []uint64{0x7A431D7C90EA0E5F, 0x0A60B1CE1D7E819D, 0xE9DA3113B5F0B8C0, 0xF8F41DBD289A147C, 0x5D9E98BF9292DC29, 0x3617DE4A96262C6F},
			sqrtExp: []uint64{0x0000000040000000, 0xBFFFFFFFC0000000, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x3FFFFFFFFFFFFFFF},
		})
	})
	return secp384r1Params
}
