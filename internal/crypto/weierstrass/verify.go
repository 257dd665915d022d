package weierstrass

import (
	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Verify checks the ECDSA equation for public key q, message hash and the
// scalars r and s. It computes u1*G + u2*Q with Shamir's trick and compares
// the resulting x coordinate, reduced mod n, to r. All inputs are public.
func Verify(c *curves.Weierstrass, q []uint64, hash []byte, r, s []uint64) bool {
	var u1, u2, z, rx, ry, tx, ty, tz [vli.MaxWords]uint64
	var sum [PointWords]uint64
	p := c.P
	n := c.Words
	nw := c.NWords

	if vli.IsZero(r, nw) || vli.IsZero(s, nw) {
		return false
	}
	if vli.Cmp(c.N.Value(), r, nw) != 1 || vli.Cmp(c.N.Value(), s, nw) != 1 {
		return false
	}

	c.N.Inv(z[:], s)             // 1/s
	BitsToInt(c, u1[:], hash)    // e
	c.N.Mult(u1[:], u1[:], z[:]) // u1 = e/s
	c.N.Mult(u2[:], r, z[:])     // u2 = r/s

	g := c.G[:2*n]
	// sum = G + Q; nil when Q = -G
	points := [4][]uint64{nil, g, q, sum[:]}
	if !PointAdd(c, sum[:], g, q) {
		points[3] = nil
	}

	numBits := vli.NumBits(u1[:], nw)
	if b := vli.NumBits(u2[:], nw); b > numBits {
		numBits = b
	}
	if numBits == 0 {
		return false
	}

	z = [vli.MaxWords]uint64{1}
	started := false
	for i := numBits - 1; i >= 0; i-- {
		if started {
			c.DoubleJacobian(rx[:], ry[:], z[:])
		}

		point := points[vli.TestBit(u1[:], i)|vli.TestBit(u2[:], i)<<1]
		if point == nil {
			continue
		}
		if !started {
			vli.Set(rx[:], point, n)
			vli.Set(ry[:], point[n:], n)
			started = true
			continue
		}

		vli.Set(tx[:], point, n)
		vli.Set(ty[:], point[n:], n)
		ApplyZ(c, tx[:], ty[:], z[:])
		if vli.Equal(tx[:], rx[:], n) {
			// co-Z addition is undefined for R = ±T
			if vli.Equal(ty[:], ry[:], n) {
				c.DoubleJacobian(rx[:], ry[:], z[:])
			} else {
				started = false
				z = [vli.MaxWords]uint64{1}
			}
			continue
		}
		p.Sub(tz[:], rx[:], tx[:]) // Z = x2 - x1
		XYcZAdd(c, tx[:], ty[:], rx[:], ry[:])
		p.Mult(z[:], z[:], tz[:])
	}
	if !started || vli.IsZero(z[:], n) {
		return false
	}

	p.Inv(z[:], z[:])
	ApplyZ(c, rx[:], ry[:], z[:])

	// v = x mod n; x < p < 2n for every supported curve
	if vli.Cmp(c.N.Value(), rx[:], nw) != 1 {
		vli.Sub(rx[:], rx[:], c.N.Value(), nw)
	}
	return vli.Equal(rx[:], r, nw)
}
