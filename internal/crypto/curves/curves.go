// Package curves holds the immutable descriptors of the supported curves.
//
// A descriptor is built once per process and shared read-only by every key
// and signature using that curve. The only per-process random value is the
// scramble key used to mask private scalars at rest.
package curves

import (
	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Weierstrass describes a short Weierstrass curve y^2 = x^3 + ax + b over a
// prime field, with a restricted to 0 or -3.
type Weierstrass struct {
	name string

	// Words and Bytes are the field width; NWords, NBytes and NBits the
	// width of the group order.
	Words  int
	Bytes  int
	NWords int
	NBytes int
	NBits  int

	P *vli.Modulus
	N *vli.Modulus

	HalfN [vli.MaxWords]uint64
	B     [vli.MaxWords]uint64
	// G holds the generator as X followed by Y, each Words wide.
	G [2 * vli.MaxWords]uint64

	aIsZero     bool
	sqrtExp     [vli.MaxWords]uint64
	ts          *tonelliShanks
	scrambleKey [vli.MaxWords]uint64
}

type weierstrassParams struct {
	name       string
	bytes      int
	p, n       []uint64
	halfN, b   []uint64
	gx, gy     []uint64
	aIsZero    bool
	sqrtExp    []uint64
	ts         *tonelliShanks
	fastReduce vli.Reducer
}

func newWeierstrass(params weierstrassParams) *Weierstrass {
	words := vli.WordsFor(params.bytes)
	c := &Weierstrass{
		name:    params.name,
		Words:   words,
		Bytes:   params.bytes,
		NWords:  len(params.n),
		aIsZero: params.aIsZero,
		ts:      params.ts,
	}
	c.P = vli.NewModulus(params.p, params.fastReduce)
	c.N = vli.NewModulus(params.n, nil)
	c.NBits = c.N.Bits()
	c.NBytes = (c.NBits + 7) / 8
	copy(c.HalfN[:], params.halfN)
	copy(c.B[:], params.b)
	copy(c.G[:words], params.gx)
	copy(c.G[words:2*words], params.gy)
	copy(c.sqrtExp[:], params.sqrtExp)
	newScrambleKey(c.scrambleKey[:])
	logger.Debugf("initialized %s descriptor: %d field words, %d order bits", c.name, c.Words, c.NBits)
	return c
}

func (c *Weierstrass) Name() string                 { return c.name }
func (c *Weierstrass) PrivateKeySize() int          { return c.NBytes }
func (c *Weierstrass) PublicKeySize() int           { return 2 * c.Bytes }
func (c *Weierstrass) CompressedPublicKeySize() int { return c.Bytes + 1 }
func (c *Weierstrass) CompactSignatureSize() int    { return 2 * c.NBytes }
func (c *Weierstrass) DERSignatureSize() int        { return derSize(c.NBytes) }
func (c *Weierstrass) ScalarSize() int              { return c.NBytes }

// ScrambleKey returns the mask applied to private scalars at rest.
func (c *Weierstrass) ScrambleKey() []uint64 { return c.scrambleKey[:] }

// Gx returns the affine x coordinate of the generator.
func (c *Weierstrass) Gx() []uint64 { return c.G[:c.Words] }

// Gy returns the affine y coordinate of the generator.
func (c *Weierstrass) Gy() []uint64 { return c.G[c.Words : 2*c.Words] }

// DoubleJacobian doubles the Jacobian point (X1, Y1, Z1) in place. The
// point at infinity (Z1 == 0) is left untouched.
func (c *Weierstrass) DoubleJacobian(X1, Y1, Z1 []uint64) {
	if vli.IsZero(Z1, c.Words) {
		return
	}
	if c.aIsZero {
		c.doubleJacobianA0(X1, Y1, Z1)
		return
	}
	c.doubleJacobianAm3(X1, Y1, Z1)
}

func (c *Weierstrass) doubleJacobianA0(X1, Y1, Z1 []uint64) {
	var t4, t5 [vli.MaxWords]uint64
	p := c.P

	p.Square(t5[:], Y1)      // y1^2
	p.Mult(t4[:], X1, t5[:]) // A = x1*y1^2
	p.Square(X1, X1)         // x1^2
	p.Square(t5[:], t5[:])   // y1^4
	p.Mult(Z1, Y1, Z1)       // z3 = y1*z1
	p.Add(Y1, X1, X1)        // 2*x1^2
	p.Add(Y1, Y1, X1)        // 3*x1^2
	c.half(Y1)               // B = 3/2*x1^2
	p.Square(X1, Y1)         // B^2
	p.Sub(X1, X1, t4[:])     // B^2 - A
	p.Sub(X1, X1, t4[:])     // x3 = B^2 - 2A
	p.Sub(t4[:], t4[:], X1)  // A - x3
	p.Mult(Y1, Y1, t4[:])    // B*(A - x3)
	p.Sub(Y1, Y1, t5[:])     // y3 = B*(A - x3) - y1^4
}

func (c *Weierstrass) doubleJacobianAm3(X1, Y1, Z1 []uint64) {
	var t4, t5 [vli.MaxWords]uint64
	p := c.P
	n := c.Words

	p.Square(t4[:], Y1)      // y1^2
	p.Mult(t5[:], X1, t4[:]) // A = x1*y1^2
	p.Square(t4[:], t4[:])   // y1^4
	p.Mult(Y1, Y1, Z1)       // z3 = y1*z1
	p.Square(Z1, Z1)         // z1^2
	p.Add(X1, X1, Z1)        // x1 + z1^2
	p.Add(Z1, Z1, Z1)        // 2*z1^2
	p.Sub(Z1, X1, Z1)        // x1 - z1^2
	p.Mult(X1, X1, Z1)       // x1^2 - z1^4
	p.Add(Z1, X1, X1)        // 2*(x1^2 - z1^4)
	p.Add(X1, X1, Z1)        // 3*(x1^2 - z1^4)
	c.half(X1)               // B = 3/2*(x1^2 - z1^4)
	p.Square(Z1, X1)         // B^2
	p.Sub(Z1, Z1, t5[:])     // B^2 - A
	p.Sub(Z1, Z1, t5[:])     // x3 = B^2 - 2A
	p.Sub(t5[:], t5[:], Z1)  // A - x3
	p.Mult(X1, X1, t5[:])    // B*(A - x3)
	p.Sub(t4[:], X1, t4[:])  // y3 = B*(A - x3) - y1^4

	vli.Set(X1, Z1, n)
	vli.Set(Z1, Y1, n)
	vli.Set(Y1, t4[:], n)
}

// half sets v = v/2 mod p without branching on the parity of v.
func (c *Weierstrass) half(v []uint64) {
	var t [vli.MaxWords]uint64
	n := c.Words
	odd := v[0] & 1
	carry := vli.Add(t[:], v, c.P.Value(), n)
	vli.Select(v, t[:], v, odd, n)
	vli.RShift1(v, n)
	v[n-1] |= (carry & odd) << (vli.WordBits - 1)
}

// XSide sets result = x^3 + ax + b.
func (c *Weierstrass) XSide(result, x []uint64) {
	p := c.P
	p.Square(result, x)
	if !c.aIsZero {
		var three [vli.MaxWords]uint64
		three[0] = 3
		p.Sub(result, result, three[:]) // x^2 - 3
	}
	p.Mult(result, result, x)
	p.Add(result, result, c.B[:])
}

// ModSqrt replaces a with a square root of a mod p. It returns false when a
// is not a quadratic residue; a is then left holding an unspecified value.
// It operates on public data only.
func (c *Weierstrass) ModSqrt(a []uint64) bool {
	var in, chk [vli.MaxWords]uint64
	n := c.Words
	vli.Set(in[:], a, n)
	if c.ts != nil {
		c.ts.sqrt(c.P, a)
	} else {
		c.P.Exp(a, a, c.sqrtExp[:])
	}
	c.P.Square(chk[:], a)
	return vli.Equal(chk[:], in[:], n)
}
