package weierstrass

import (
	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Compressed point prefixes.
const (
	PrefixEven         = 0x02
	PrefixOdd          = 0x03
	PrefixUncompressed = 0x04
)

// Marshal encodes point as big-endian X || Y.
func Marshal(c *curves.Weierstrass, out []byte, point []uint64) {
	n := c.Words
	vli.NativeToBytes(out, c.Bytes, point)
	vli.NativeToBytes(out[c.Bytes:], c.Bytes, point[n:])
}

// Unmarshal decodes big-endian X || Y into point. The point is not
// validated.
func Unmarshal(c *curves.Weierstrass, point []uint64, in []byte) {
	n := c.Words
	vli.BytesToNative(point, in, c.Bytes)
	vli.BytesToNative(point[n:], in[c.Bytes:], c.Bytes)
}

// Compress encodes point as a parity prefix followed by big-endian X.
func Compress(c *curves.Weierstrass, out []byte, point []uint64) {
	out[0] = PrefixEven | byte(point[c.Words]&1)
	vli.NativeToBytes(out[1:], c.Bytes, point)
}

// Decompress recovers a point from its compressed encoding. It returns false
// for an unknown prefix, an x coordinate not below p, or an x with no
// matching y on the curve.
func Decompress(c *curves.Weierstrass, point []uint64, in []byte) bool {
	n := c.Words
	if len(in) != c.Bytes+1 || (in[0] != PrefixEven && in[0] != PrefixOdd) {
		return false
	}

	x, y := point[:n], point[n:2*n]
	vli.BytesToNative(x, in[1:], c.Bytes)
	if vli.Cmp(c.P.Value(), x, n) != 1 {
		return false
	}

	c.XSide(y, x)
	if !c.ModSqrt(y) {
		return false
	}
	if byte(y[0]&1) != in[0]&1 {
		if vli.IsZero(y, n) {
			return false
		}
		var zero [vli.MaxWords]uint64
		c.P.Sub(y, zero[:], y)
	}
	return IsValidPoint(c, point)
}
