package eddsa

import (
	"bytes"
	"crypto/ed25519"

	"github.com/smallyu/go-ecc/internal/crypto/edwards"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

// PublicKey is a point on edwards25519 together with its canonical
// encoding. PublicKeys are immutable.
type PublicKey struct {
	curve *Curve
	point edwards.Point
	enc   [KeySize]byte
}

var _ ecc.PublicKey = (*PublicKey)(nil)

// ParsePublicKey decodes a 32-byte point encoding. Non-canonical
// encodings and values off the curve are rejected.
func ParsePublicKey(c *Curve, b []byte) (*PublicKey, error) {
	if len(b) != KeySize {
		return nil, ecc.NewOpError("parse", c, ecc.ErrInvalidLength)
	}
	pub := &PublicKey{curve: c}
	if _, err := pub.point.SetBytes(b); err != nil {
		logger.Debugf("rejected public key: %v", err)
		return nil, ecc.NewOpError("parse", c, ecc.ErrInvalidPoint)
	}
	copy(pub.enc[:], b)
	return pub, nil
}

// FromEd25519 converts a crypto/ed25519 public key.
func FromEd25519(key ed25519.PublicKey) (*PublicKey, error) {
	return ParsePublicKey(Ed25519(), key)
}

// Curve returns the curve of the key.
func (pk *PublicKey) Curve() ecc.Curve { return pk.curve }

// Bytes returns the 32-byte encoding.
func (pk *PublicKey) Bytes() []byte {
	return append([]byte(nil), pk.enc[:]...)
}

// CompressedBytes is Bytes: Edwards points only have a compressed form.
func (pk *PublicKey) CompressedBytes() []byte {
	return pk.Bytes()
}

// ToEd25519 returns the key as a crypto/ed25519 public key.
func (pk *PublicKey) ToEd25519() ed25519.PublicKey {
	return ed25519.PublicKey(pk.Bytes())
}

// Equal reports whether both keys have the same encoding.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && pk.curve == other.curve && pk.enc == other.enc
}

// IsSmallOrder reports whether the point lies in the torsion subgroup.
func (pk *PublicKey) IsSmallOrder() bool {
	var p edwards.Point
	return p.MultByCofactor(&pk.point).IsIdentity()
}

// VerifyHash checks an Ed25519 signature whose R and S halves are the
// two 32-byte pair members, with the hash as the signed message. S must be
// canonical.
func (pk *PublicKey) VerifyHash(hash []byte, sig signature.Pair) bool {
	var s, h edwards.Scalar
	var negA, check edwards.Point

	if len(hash) == 0 || len(sig.R) != KeySize || len(sig.S) != KeySize {
		return false
	}
	if _, err := s.SetCanonicalBytes(sig.S); err != nil {
		return false
	}

	challenge(&h, sig.R, pk.enc[:], hash)
	negA.Negate(&pk.point)
	// R' = S*B - H(R, A, M)*A
	check.DoubleBaseMult(h[:], &negA, s[:])
	return bytes.Equal(check.Bytes(), sig.R)
}

// Verify checks a 64-byte compact signature over message.
func (pk *PublicKey) Verify(message, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return pk.VerifyHash(message, signature.Pair{R: sig[:KeySize], S: sig[KeySize:]})
}
