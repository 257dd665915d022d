package curves

import (
	"sync"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

var (
	secp224r1Once   sync.Once
	secp224r1Params *Weierstrass
)

// Secp224r1 returns the NIST P-224 descriptor. Its field is 28 bytes wide,
// so encodings are not word aligned.
func Secp224r1() *Weierstrass {
	secp224r1Once.Do(func() {
		secp224r1Params = newWeierstrass(weierstrassParams{
			name:  "secp224r1",
			bytes: 28,
			p:     []uint64{0x0000000000000001, 0xFFFFFFFF00000000, 0xFFFFFFFFFFFFFFFF, 0x00000000FFFFFFFF},
			n:     []uint64{0x13DD29455C5C2A3D, 0xFFFF16A2E0B8F03E, 0xFFFFFFFFFFFFFFFF, 0x00000000FFFFFFFF},
			halfN: []uint64{0x09EE94A2AE2E151E, 0xFFFF8B51705C781F, 0xFFFFFFFFFFFFFFFF, 0x000000007FFFFFFF},
			b:     []uint64{0x270B39432355FFB4, 0x5044B0B7D7BFD8BA, 0x0C04B3ABF5413256, 0x00000000B4050A85},
			gx:    []uint64{0x343280D6115C1D21, 0x4A03C1D356C21122, 0x6BB4BF7F321390B9, 0x00000000B70E0CBD},
			gy:    []uint64{0x44D5819985007E34, 0xCD4375A05A074764, 0xB5F723FB4C22DFE6, 0x00000000BD376388},
			// p = 1 (mod 4): p - 1 = 2^96 * q, z = 11 is a non-residue
			ts: &tonelliShanks{
				s:       96,
				q:       [vli.MaxWords]uint64{0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF},
				qPlus1h: [vli.MaxWords]uint64{0x0000000000000000, 0x8000000000000000},
				c:       [vli.MaxWords]uint64{0xF3FB3632DC691B74, 0x0B2D6FFBBEA3D8CE, 0x8598A7920C55B2D4, 0x000000006A0FEC67},
			},
		})
	})
	return secp224r1Params
}

// tonelliShanks holds the precomputed constants for square roots modulo a
// prime p = 1 (mod 4): p - 1 = 2^s * q with q odd, c = z^q for a
// non-residue z.
type tonelliShanks struct {
	s       int
	q       [vli.MaxWords]uint64
	qPlus1h [vli.MaxWords]uint64
	c       [vli.MaxWords]uint64
}

// sqrt replaces a with a square root of a when one exists. The running time
// depends on a, which is always public (a decompressed coordinate).
func (ts *tonelliShanks) sqrt(p *vli.Modulus, a []uint64) {
	var x, t, c, b, t2 [vli.MaxWords]uint64
	n := p.Words()

	if vli.IsZero(a, n) {
		return
	}
	p.Exp(x[:], a, ts.qPlus1h[:])
	p.Exp(t[:], a, ts.q[:])
	vli.Set(c[:], ts.c[:], n)
	m := ts.s

	for !isOne(t[:], n) {
		// least i with t^(2^i) == 1
		i := 0
		vli.Set(t2[:], t[:], n)
		for !isOne(t2[:], n) {
			p.Square(t2[:], t2[:])
			i++
			if i == m {
				// not a residue; the caller's check rejects the result
				vli.Set(a, x[:], n)
				return
			}
		}
		vli.Set(b[:], c[:], n)
		for j := 0; j < m-i-1; j++ {
			p.Square(b[:], b[:])
		}
		p.Mult(x[:], x[:], b[:])
		p.Square(c[:], b[:])
		p.Mult(t[:], t[:], c[:])
		m = i
	}
	vli.Set(a, x[:], n)
}

func isOne(v []uint64, n int) bool {
	var one [vli.MaxWords]uint64
	one[0] = 1
	return vli.Equal(v, one[:], n)
}
