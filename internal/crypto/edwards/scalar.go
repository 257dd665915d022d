package edwards

import (
	"errors"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Scalar is an integer modulo the group order L, always fully reduced.
type Scalar [4]uint64

var errScalarRange = errors.New("edwards: scalar not below the group order")

// SetUniformBytes sets s = x mod L for a 64-byte little-endian x.
func (s *Scalar) SetUniformBytes(x []byte) (*Scalar, error) {
	if len(x) != 64 {
		return nil, errors.New("edwards: invalid uniform scalar length")
	}
	var wide [8]uint64
	vli.LEBytesToNative(wide[:], x, 64)
	params().L.Reduce(s[:], wide[:])
	vli.Clear(wide[:], 8)
	return s, nil
}

// SetBytesModL sets s = x mod L for a 32-byte little-endian x.
func (s *Scalar) SetBytesModL(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("edwards: invalid scalar length")
	}
	var wide [8]uint64
	vli.LEBytesToNative(wide[:], x, 32)
	params().L.Reduce(s[:], wide[:])
	return s, nil
}

// SetCanonicalBytes sets s from a 32-byte little-endian encoding, rejecting
// values not below L.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("edwards: invalid scalar length")
	}
	var t Scalar
	vli.LEBytesToNative(t[:], x, 32)
	if vli.Cmp(params().L.Value(), t[:], 4) != 1 {
		return nil, errScalarRange
	}
	*s = t
	return s, nil
}

// Bytes returns the 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	var b [32]byte
	vli.NativeToLEBytes(b[:], 32, s[:])
	return b[:]
}

// Add sets s = x + y mod L.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	params().L.Add(s[:], x[:], y[:])
	return s
}

// Subtract sets s = x - y mod L.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	params().L.Sub(s[:], x[:], y[:])
	return s
}

// Negate sets s = -x mod L.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	var zero Scalar
	return s.Subtract(&zero, x)
}

// Multiply sets s = x * y mod L.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	params().L.Mult(s[:], x[:], y[:])
	return s
}

// MultiplyAdd sets s = x * y + z mod L.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	var t Scalar
	t.Multiply(x, y)
	return s.Add(&t, z)
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool { return vli.IsZero(s[:], 4) }

// Equal reports whether s and t are equal.
func (s *Scalar) Equal(t *Scalar) bool { return vli.Equal(s[:], t[:], 4) }

// Clear zeroes s.
func (s *Scalar) Clear() { vli.Clear(s[:], 4) }
