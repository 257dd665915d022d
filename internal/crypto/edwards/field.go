// Package edwards implements group arithmetic on edwards25519 over the
// shared vli field code.
//
// Points use extended coordinates (X:Y:Z:T) with x = X/Z, y = Y/Z and
// x*y = T/Z. Precomputed addends use the Niels forms (y+x, y-x, 2dxy) and,
// for projective inputs, (Y+X, Y-X, 2dT, 2Z).
package edwards

import (
	"errors"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Element is a field element mod 2^255 - 19, always fully reduced.
type Element [4]uint64

var (
	feZero = Element{}
	feOne  = Element{1}
)

var errNonCanonical = errors.New("edwards: non-canonical field element")

func params() *curves.Edwards { return curves.Ed25519() }

// Zero sets v = 0.
func (v *Element) Zero() *Element { *v = feZero; return v }

// One sets v = 1.
func (v *Element) One() *Element { *v = feOne; return v }

// Set sets v = a.
func (v *Element) Set(a *Element) *Element { *v = *a; return v }

// Add sets v = a + b.
func (v *Element) Add(a, b *Element) *Element {
	params().P.Add(v[:], a[:], b[:])
	return v
}

// Subtract sets v = a - b.
func (v *Element) Subtract(a, b *Element) *Element {
	params().P.Sub(v[:], a[:], b[:])
	return v
}

// Negate sets v = -a.
func (v *Element) Negate(a *Element) *Element {
	return v.Subtract(&feZero, a)
}

// Multiply sets v = a * b.
func (v *Element) Multiply(a, b *Element) *Element {
	params().P.Mult(v[:], a[:], b[:])
	return v
}

// Square sets v = a * a.
func (v *Element) Square(a *Element) *Element {
	params().P.Square(v[:], a[:])
	return v
}

// Invert sets v = 1/a, or 0 when a = 0.
func (v *Element) Invert(a *Element) *Element {
	params().P.Inv(v[:], a[:])
	return v
}

// Pow22523 sets v = a^((p-5)/8).
func (v *Element) Pow22523(a *Element) *Element {
	params().P.Exp(v[:], a[:], params().PMinus5Over8[:])
	return v
}

// Select sets v = a if cond == 1 and v = b if cond == 0.
func (v *Element) Select(a, b *Element, cond uint64) *Element {
	vli.Select(v[:], a[:], b[:], cond, 4)
	return v
}

// Equal returns 1 if v and u are equal, 0 otherwise.
func (v *Element) Equal(u *Element) uint64 {
	var diff uint64
	for i := range v {
		diff |= v[i] ^ u[i]
	}
	return 1 &^ ((diff | -diff) >> 63)
}

// IsNegative returns 1 if v is odd.
func (v *Element) IsNegative() uint64 { return v[0] & 1 }

// SetBytes decodes a 32-byte little-endian value. The top bit is ignored;
// values not below p are rejected.
func (v *Element) SetBytes(b []byte) (*Element, error) {
	var t Element
	if len(b) != 32 {
		return nil, errors.New("edwards: invalid field element length")
	}
	vli.LEBytesToNative(t[:], b, 32)
	t[3] &= 1<<63 - 1
	if vli.Cmp(params().P.Value(), t[:], 4) != 1 {
		return nil, errNonCanonical
	}
	*v = t
	return v, nil
}

// Bytes returns the 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	var b [32]byte
	vli.NativeToLEBytes(b[:], 32, v[:])
	return b[:]
}

// SqrtRatio sets v to a non-negative square root of u/v0 when one exists and
// returns 1. Otherwise it returns 0 and v holds an unspecified value.
func (v *Element) SqrtRatio(u, v0 *Element) uint64 {
	var v3, v7, x, check, negU, xi Element
	c := params()

	v3.Square(v0)
	v3.Multiply(&v3, v0) // v^3
	v7.Square(&v3)
	v7.Multiply(&v7, v0) // v^7
	x.Multiply(u, &v7)
	x.Pow22523(&x) // (u v^7)^((p-5)/8)
	x.Multiply(&x, &v3)
	x.Multiply(&x, u) // u v^3 (u v^7)^((p-5)/8)

	check.Square(&x)
	check.Multiply(&check, v0) // v x^2
	negU.Negate(u)

	correct := check.Equal(u)
	flipped := check.Equal(&negU)

	sqrtM1 := Element(c.SqrtM1)
	xi.Multiply(&x, &sqrtM1)
	x.Select(&xi, &x, flipped)

	// choose the even root
	xi.Negate(&x)
	v.Select(&xi, &x, x.IsNegative())
	return correct | flipped
}
