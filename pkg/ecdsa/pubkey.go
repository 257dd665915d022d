package ecdsa

import (
	stdecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

// PublicKey is a finite point on the curve. PublicKeys are immutable.
type PublicKey struct {
	curve *Curve
	point [weierstrass.PointWords]uint64
}

var _ ecc.PublicKey = (*PublicKey)(nil)

// ParsePublicKey decodes a compressed point (prefix 02 or 03), or an
// uncompressed one with or without the 04 prefix. The point must lie on
// the curve.
func ParsePublicKey(c *Curve, b []byte) (*PublicKey, error) {
	params := c.params
	pub := &PublicKey{curve: c}

	switch {
	case len(b) == params.Bytes+1:
		if !weierstrass.Decompress(params, pub.point[:], b) {
			logger.Debugf("rejected compressed %s public key", c.Name())
			return nil, ecc.NewOpError("parse", c, ecc.ErrInvalidPoint)
		}
		return pub, nil
	case len(b) == 2*params.Bytes+1:
		if b[0] != weierstrass.PrefixUncompressed {
			return nil, ecc.NewOpError("parse", c, ecc.ErrInvalidPoint)
		}
		b = b[1:]
	case len(b) != 2*params.Bytes:
		logger.Debugf("rejected %s public key of %d bytes", c.Name(), len(b))
		return nil, ecc.NewOpError("parse", c, ecc.ErrInvalidLength)
	}

	weierstrass.Unmarshal(params, pub.point[:], b)
	if !weierstrass.IsValidPoint(params, pub.point[:]) {
		logger.Debugf("rejected %s public key not on the curve", c.Name())
		return nil, ecc.NewOpError("parse", c, ecc.ErrInvalidPoint)
	}
	return pub, nil
}

// IsValidPublicKey reports whether b parses as a public key on c.
func IsValidPublicKey(c *Curve, b []byte) bool {
	_, err := ParsePublicKey(c, b)
	return err == nil
}

// Curve returns the curve of the key.
func (pk *PublicKey) Curve() ecc.Curve { return pk.curve }

// ECCurve returns the concrete curve of the key.
func (pk *PublicKey) ECCurve() *Curve { return pk.curve }

// Bytes returns the big-endian X || Y encoding without a prefix.
func (pk *PublicKey) Bytes() []byte {
	out := make([]byte, pk.curve.PublicKeySize())
	weierstrass.Marshal(pk.curve.params, out, pk.point[:])
	return out
}

// UncompressedBytes returns the SEC 1 encoding 04 || X || Y.
func (pk *PublicKey) UncompressedBytes() []byte {
	return append([]byte{weierstrass.PrefixUncompressed}, pk.Bytes()...)
}

// CompressedBytes returns the SEC 1 compressed encoding.
func (pk *PublicKey) CompressedBytes() []byte {
	out := make([]byte, pk.curve.CompressedPublicKeySize())
	weierstrass.Compress(pk.curve.params, out, pk.point[:])
	return out
}

// Equal reports whether both keys are the same point on the same curve.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil || pk.curve != other.curve {
		return false
	}
	return vli.Equal(pk.point[:], other.point[:], 2*pk.curve.params.Words)
}

// Tweak returns Q + t*G for a big-endian scalar t in [1, n-1]. Tweaking the
// public key of d gives the public key of d.KeyTweak(t).
func (pk *PublicKey) Tweak(tweak []byte) (*PublicKey, error) {
	var t [vli.MaxWords]uint64
	var tg [weierstrass.PointWords]uint64

	c := pk.curve
	if len(tweak) != c.params.NBytes {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrInvalidLength)
	}
	vli.BytesToNative(t[:], tweak, c.params.NBytes)
	if !inRange(c, t[:]) {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrInvalidTweak)
	}
	if err := weierstrass.ComputePublicPoint(c.params, tg[:], t[:], nil); err != nil {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrDegenerate)
	}

	result := &PublicKey{curve: c}
	if !weierstrass.PointAdd(c.params, result.point[:], pk.point[:], tg[:]) {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrDegenerate)
	}
	return result, nil
}

func (pk *PublicKey) verify(hash []byte, sig signature.Pair, strict bool) bool {
	var r, s [vli.MaxWords]uint64
	c := pk.curve.params
	if len(hash) == 0 || len(sig.R) != c.NBytes || len(sig.S) != c.NBytes {
		return false
	}
	vli.BytesToNative(r[:], sig.R, c.NBytes)
	vli.BytesToNative(s[:], sig.S, c.NBytes)
	if strict && vli.Cmp(s[:], c.HalfN[:], c.NWords) == 1 {
		return false
	}
	return weierstrass.Verify(c, pk.point[:], hash, r[:], s[:])
}

// VerifyHash checks an ECDSA signature over hash. Both the low and the high
// form of s are accepted.
func (pk *PublicKey) VerifyHash(hash []byte, sig signature.Pair) bool {
	return pk.verify(hash, sig, false)
}

// VerifyStrict is VerifyHash but rejects signatures with s > n/2.
func (pk *PublicKey) VerifyStrict(hash []byte, sig signature.Pair) bool {
	return pk.verify(hash, sig, true)
}

// ToECDSA converts the key for use with crypto/ecdsa and crypto/x509. The
// secp256k1 curve is provided by the decred implementation.
func (pk *PublicKey) ToECDSA() (*stdecdsa.PublicKey, error) {
	switch pk.curve {
	case Secp256k1():
		key, err := secp256k1.ParsePubKey(pk.UncompressedBytes())
		if err != nil {
			return nil, ecc.NewOpError("convert", pk.curve, ecc.ErrInvalidPoint)
		}
		return key.ToECDSA(), nil
	case Secp256r1():
		return pk.toStd(elliptic.P256()), nil
	case Secp224r1():
		return pk.toStd(elliptic.P224()), nil
	case Secp384r1():
		return pk.toStd(elliptic.P384()), nil
	}
	return nil, ecc.NewOpError("convert", pk.curve, ecc.ErrCurveMismatch)
}

func (pk *PublicKey) toStd(curve elliptic.Curve) *stdecdsa.PublicKey {
	b := pk.Bytes()
	size := pk.curve.params.Bytes
	return &stdecdsa.PublicKey{
		Curve: curve,
		X:     new(big.Int).SetBytes(b[:size]),
		Y:     new(big.Int).SetBytes(b[size:]),
	}
}

// FromECDSA converts a crypto/ecdsa public key on one of the supported
// curves.
func FromECDSA(key *stdecdsa.PublicKey) (*PublicKey, error) {
	if key == nil || key.Curve == nil || key.X == nil || key.Y == nil {
		return nil, ecc.NewOpError("convert", nil, ecc.ErrInvalidPoint)
	}
	c, err := CurveByName(key.Curve.Params().Name)
	if err != nil {
		return nil, ecc.NewOpError("convert", nil, ecc.ErrCurveMismatch)
	}

	size := c.params.Bytes
	if key.X.Sign() < 0 || key.Y.Sign() < 0 || key.X.BitLen() > 8*size || key.Y.BitLen() > 8*size {
		return nil, ecc.NewOpError("convert", c, ecc.ErrInvalidPoint)
	}
	b := make([]byte, 2*size)
	key.X.FillBytes(b[:size])
	key.Y.FillBytes(b[size:])
	return ParsePublicKey(c, b)
}
