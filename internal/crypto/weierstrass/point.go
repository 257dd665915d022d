// Package weierstrass implements point arithmetic on the short Weierstrass
// curves: co-Z Jacobian addition, the regularized Montgomery ladder used for
// every secret scalar multiplication, and Shamir's trick for verification.
//
// A point is stored as a single slice holding X followed by Y, each
// curve.Words wide. The all-zero point stands for the point at infinity.
package weierstrass

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// PointWords is the storage needed for any affine point.
const PointWords = 2 * vli.MaxWords

// ErrZeroPoint is returned when a multiplication lands on the point at
// infinity.
var ErrZeroPoint = errors.New("weierstrass: result is the point at infinity")

// IsZero reports whether point is the point at infinity.
func IsZero(c *curves.Weierstrass, point []uint64) bool {
	return vli.IsZero(point, 2*c.Words)
}

// IsValidPoint reports whether point is a finite affine point on the curve
// with both coordinates reduced modulo p.
func IsValidPoint(c *curves.Weierstrass, point []uint64) bool {
	var t1, t2 [vli.MaxWords]uint64
	n := c.Words
	if IsZero(c, point) {
		return false
	}

	x, y := point[:n], point[n:2*n]
	if vli.Cmp(c.P.Value(), x, n) != 1 || vli.Cmp(c.P.Value(), y, n) != 1 {
		return false
	}

	c.P.Square(t1[:], y)
	c.XSide(t2[:], x)
	return vli.Equal(t1[:], t2[:], n)
}

// ApplyZ maps (X1, Y1) to (X1*Z^2, Y1*Z^3).
func ApplyZ(c *curves.Weierstrass, X1, Y1, Z []uint64) {
	var t1 [vli.MaxWords]uint64
	p := c.P
	p.Square(t1[:], Z)
	p.Mult(X1, X1, t1[:])
	p.Mult(t1[:], t1[:], Z)
	p.Mult(Y1, Y1, t1[:])
}

// XYcZInitialDouble takes the affine point P in (X1, Y1) and leaves 2P in
// (X1, Y1) and P in (X2, Y2), both sharing the Z coordinate derived from
// initialZ. A nil initialZ means Z = 1.
func XYcZInitialDouble(c *curves.Weierstrass, X1, Y1, X2, Y2, initialZ []uint64) {
	var z [vli.MaxWords]uint64
	n := c.Words
	if initialZ != nil {
		vli.Set(z[:], initialZ, n)
	} else {
		z[0] = 1
	}

	vli.Set(X2, X1, n)
	vli.Set(Y2, Y1, n)

	ApplyZ(c, X1, Y1, z[:])
	c.DoubleJacobian(X1, Y1, z[:])
	ApplyZ(c, X2, Y2, z[:])
}

// XYcZAdd takes P in (X1, Y1) and Q in (X2, Y2) sharing a Z coordinate and
// leaves P rescaled to the new Z in (X1, Y1) and P+Q in (X2, Y2).
func XYcZAdd(c *curves.Weierstrass, X1, Y1, X2, Y2 []uint64) {
	var t5 [vli.MaxWords]uint64
	p := c.P

	p.Sub(t5[:], X2, X1)   // x2 - x1
	p.Square(t5[:], t5[:]) // A = (x2 - x1)^2
	p.Mult(X1, X1, t5[:])  // B = x1*A
	p.Mult(X2, X2, t5[:])  // C = x2*A
	p.Sub(Y2, Y2, Y1)      // y2 - y1
	p.Square(t5[:], Y2)    // D = (y2 - y1)^2

	p.Sub(t5[:], t5[:], X1) // D - B
	p.Sub(t5[:], t5[:], X2) // x3 = D - B - C
	p.Sub(X2, X2, X1)       // C - B
	p.Mult(Y1, Y1, X2)      // y1*(C - B)
	p.Sub(X2, X1, t5[:])    // B - x3
	p.Mult(Y2, Y2, X2)      // (y2 - y1)*(B - x3)
	p.Sub(Y2, Y2, Y1)       // y3

	vli.Set(X2, t5[:], c.Words)
}

// XYcZAddC takes P in (X1, Y1) and Q in (X2, Y2) sharing a Z coordinate and
// leaves P-Q in (X1, Y1) and P+Q in (X2, Y2), again sharing a Z coordinate.
func XYcZAddC(c *curves.Weierstrass, X1, Y1, X2, Y2 []uint64) {
	var t5, t6, t7 [vli.MaxWords]uint64
	p := c.P

	p.Sub(t5[:], X2, X1)   // x2 - x1
	p.Square(t5[:], t5[:]) // A = (x2 - x1)^2
	p.Mult(X1, X1, t5[:])  // B = x1*A
	p.Mult(X2, X2, t5[:])  // C = x2*A
	p.Add(t5[:], Y2, Y1)   // y2 + y1
	p.Sub(Y2, Y2, Y1)      // y2 - y1

	p.Sub(t6[:], X2, X1)  // C - B
	p.Mult(Y1, Y1, t6[:]) // E = y1*(C - B)
	p.Add(t6[:], X1, X2)  // B + C
	p.Square(X2, Y2)      // D = (y2 - y1)^2
	p.Sub(X2, X2, t6[:])  // x3 = D - (B + C)

	p.Sub(t7[:], X1, X2)  // B - x3
	p.Mult(Y2, Y2, t7[:]) // (y2 - y1)*(B - x3)
	p.Sub(Y2, Y2, Y1)     // y3 = (y2 - y1)*(B - x3) - E

	p.Square(t7[:], t5[:])      // F = (y2 + y1)^2
	p.Sub(t7[:], t7[:], t6[:])  // x3' = F - (B + C)
	p.Sub(t6[:], t7[:], X1)     // x3' - B
	p.Mult(t6[:], t6[:], t5[:]) // (y2 + y1)*(x3' - B)
	p.Sub(Y1, t6[:], Y1)        // y3' = (y2 + y1)*(x3' - B) - E

	vli.Set(X1, t7[:], c.Words)
}

// PointMul sets result = scalar * point using a co-Z Montgomery ladder over
// numBits bits. The top bit of scalar (bit numBits-1) must be set, which
// RegularizeK guarantees; it is consumed by the initial doubling. initialZ
// randomizes the projective representation and may be nil.
func PointMul(c *curves.Weierstrass, result, point, scalar, initialZ []uint64, numBits int) {
	var rx, ry [2][vli.MaxWords]uint64
	var z [vli.MaxWords]uint64
	p := c.P
	n := c.Words

	vli.Set(rx[1][:], point, n)
	vli.Set(ry[1][:], point[n:], n)

	XYcZInitialDouble(c, rx[1][:], ry[1][:], rx[0][:], ry[0][:], initialZ)

	for i := numBits - 2; i > 0; i-- {
		nb := 1 - vli.TestBit(scalar, i)
		XYcZAddC(c, rx[1-nb][:], ry[1-nb][:], rx[nb][:], ry[nb][:])
		XYcZAdd(c, rx[nb][:], ry[nb][:], rx[1-nb][:], ry[1-nb][:])
	}

	nb := 1 - vli.TestBit(scalar, 0)
	XYcZAddC(c, rx[1-nb][:], ry[1-nb][:], rx[nb][:], ry[nb][:])

	// recover 1/Z from the affine input point
	p.Sub(z[:], rx[1][:], rx[0][:]) // X1 - X0
	p.Mult(z[:], z[:], ry[1-nb][:]) // Yb * (X1 - X0)
	p.Mult(z[:], z[:], point)       // xP * Yb * (X1 - X0)
	p.Inv(z[:], z[:])               // 1 / (xP * Yb * (X1 - X0))
	p.Mult(z[:], z[:], point[n:])   // yP / (xP * Yb * (X1 - X0))
	p.Mult(z[:], z[:], rx[1-nb][:]) // Xb * yP / (xP * Yb * (X1 - X0))

	XYcZAdd(c, rx[nb][:], ry[nb][:], rx[1-nb][:], ry[1-nb][:])
	ApplyZ(c, rx[0][:], ry[0][:], z[:])

	vli.Set(result, rx[0][:], n)
	vli.Set(result[n:], ry[0][:], n)
}

// RegularizeK computes k0 = k + n and k1 = k + 2n so that one of them has
// exactly NBits+1 bits. It returns 1 when k0 already does, 0 when k1 must be
// used. The ladder then runs for a fixed number of iterations whatever the
// value of k.
func RegularizeK(c *curves.Weierstrass, k, k0, k1 []uint64) uint64 {
	nw := c.NWords
	nbits := c.NBits
	carry := vli.Add(k0, k, c.N.Value(), nw)
	if nbits < nw*vli.WordBits {
		carry |= vli.TestBit(k0, nbits)
	}
	vli.Add(k1, k0, c.N.Value(), nw)
	return carry
}

// ScalarMult sets result = k * point for a secret k in [1, n-1]. The
// projective representation is randomized with a fresh Z drawn from rand;
// rand may be nil to use crypto/rand.
func ScalarMult(c *curves.Weierstrass, result, point, k []uint64, rnd io.Reader) error {
	var tmp [2][vli.MaxWords]uint64
	if rnd == nil {
		rnd = rand.Reader
	}

	carry := RegularizeK(c, k, tmp[0][:], tmp[1][:])
	// the unused candidate doubles as storage for the random Z
	initialZ := tmp[carry][:]
	if err := vli.Random(rnd, initialZ, c.P.Value(), c.Words); err != nil {
		return errors.Wrap(err, "weierstrass: random Z")
	}

	PointMul(c, result, point, tmp[1-carry][:], initialZ, c.NBits+1)
	vli.Clear(tmp[0][:], vli.MaxWords)
	vli.Clear(tmp[1][:], vli.MaxWords)
	fixLadderEdges(c, result, point, k)

	if IsZero(c, result) {
		return ErrZeroPoint
	}
	return nil
}

// fixLadderEdges overwrites the ladder output for k = 1, n-2 and n-1. For
// those scalars an intermediate ladder point is at infinity and the co-Z
// formulas collapse, so the answers P, -2P and -P are computed directly and
// selected without branching on k.
func fixLadderEdges(c *curves.Weierstrass, result, point, k []uint64) {
	var one, edge, zero, z [vli.MaxWords]uint64
	var neg, dbl [PointWords]uint64
	n, nw := c.Words, c.NWords
	p := c.P

	one[0] = 1
	isOne := equalMask(k, one[:], nw)
	vli.Sub(edge[:], c.N.Value(), one[:], nw)
	isMinusOne := equalMask(k, edge[:], nw)
	vli.Sub(edge[:], edge[:], one[:], nw)
	isMinusTwo := equalMask(k, edge[:], nw)

	vli.Select(result, point, result, isOne, 2*n)

	vli.Set(neg[:], point, n)
	p.Sub(neg[n:], zero[:], point[n:])
	vli.Select(result, neg[:], result, isMinusOne, 2*n)

	// prime order curves have no point with y = 0, so 2P is finite
	vli.Set(dbl[:], point, n)
	vli.Set(dbl[n:], point[n:], n)
	z[0] = 1
	c.DoubleJacobian(dbl[:n], dbl[n:2*n], z[:])
	p.Inv(z[:], z[:])
	ApplyZ(c, dbl[:n], dbl[n:2*n], z[:])
	p.Sub(dbl[n:2*n], zero[:], dbl[n:2*n])
	vli.Select(result, dbl[:], result, isMinusTwo, 2*n)
}

// equalMask returns 1 when a == b over n words and 0 otherwise.
func equalMask(a, b []uint64, n int) uint64 {
	var diff uint64
	for i := 0; i < n; i++ {
		diff |= a[i] ^ b[i]
	}
	return 1 ^ (diff|-diff)>>63
}

// ComputePublicPoint sets result = k * G.
func ComputePublicPoint(c *curves.Weierstrass, result, k []uint64, rnd io.Reader) error {
	return ScalarMult(c, result, c.G[:2*c.Words], k, rnd)
}

// PointAdd sets result = a + b for two valid affine points. It returns false
// when the sum is the point at infinity. Only public points may be passed:
// the doubling and inverse cases are selected by branching.
func PointAdd(c *curves.Weierstrass, result, a, b []uint64) bool {
	var x1, y1, x2, y2, z [vli.MaxWords]uint64
	p := c.P
	n := c.Words

	vli.Set(x1[:], a, n)
	vli.Set(y1[:], a[n:], n)
	vli.Set(x2[:], b, n)
	vli.Set(y2[:], b[n:], n)

	if vli.Equal(x1[:], x2[:], n) {
		if !vli.Equal(y1[:], y2[:], n) || vli.IsZero(y1[:], n) {
			vli.Clear(result, 2*n)
			return false
		}
		z[0] = 1
		c.DoubleJacobian(x1[:], y1[:], z[:])
		p.Inv(z[:], z[:])
		ApplyZ(c, x1[:], y1[:], z[:])
		vli.Set(result, x1[:], n)
		vli.Set(result[n:], y1[:], n)
		return true
	}

	p.Sub(z[:], x2[:], x1[:])
	XYcZAdd(c, x1[:], y1[:], x2[:], y2[:])
	p.Inv(z[:], z[:])
	ApplyZ(c, x2[:], y2[:], z[:])

	vli.Set(result, x2[:], n)
	vli.Set(result[n:], y2[:], n)
	return true
}

// BitsToInt converts a message hash to an integer modulo n. Hashes wider
// than the order are truncated to their leftmost NBits bits.
func BitsToInt(c *curves.Weierstrass, native []uint64, hash []byte) {
	var t [vli.MaxWords]uint64
	nw := c.NWords
	size := len(hash)
	if size > c.NBytes {
		size = c.NBytes
	}

	vli.Clear(native, nw)
	vli.BytesToNative(native, hash[:size], size)
	if size*8 > c.NBits {
		shift := uint(size*8 - c.NBits)
		var carry uint64
		for i := nw - 1; i >= 0; i-- {
			w := native[i]
			native[i] = w>>shift | carry
			carry = w << (vli.WordBits - shift)
		}
	}

	// native < 2^NBits < 2n, so one conditional subtraction suffices
	borrow := vli.Sub(t[:], native, c.N.Value(), nw)
	vli.Select(native, native, t[:], borrow, nw)
}
