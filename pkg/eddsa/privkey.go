package eddsa

import (
	"crypto/rand"
	"crypto/sha512"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/drbg"
	"github.com/smallyu/go-ecc/internal/crypto/edwards"
	"github.com/smallyu/go-ecc/internal/crypto/mask"
	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/pkg/ecc"
)

const (
	// KeySize is the length of a private key, a public key and a seed.
	KeySize = 32

	keyWords = 4
)

// PrivateKey is a clamped little-endian scalar: the low three bits and bit
// 255 are clear, bit 254 is set. It is stored masked with the curve's
// scramble key. A PrivateKey is not safe for concurrent use.
type PrivateKey struct {
	curve  *Curve
	secret *mask.Secret
}

var _ ecc.PrivateKey = (*PrivateKey)(nil)

func clamp(b []byte) {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
}

func isClamped(w []uint64) bool {
	return w[0]&7 == 0 && w[3]>>62 == 1
}

// NewPrivateKey returns an empty key on curve c.
func NewPrivateKey(c *Curve) *PrivateKey {
	return &PrivateKey{
		curve:  c,
		secret: mask.New(c.params.ScrambleKey(), keyWords),
	}
}

// ParsePrivateKey decodes a clamped 32-byte little-endian scalar.
func ParsePrivateKey(c *Curve, b []byte) (*PrivateKey, error) {
	k := NewPrivateKey(c)
	if err := k.Parse(b); err != nil {
		return nil, err
	}
	return k, nil
}

// IsValidPrivateKey reports whether b is a clamped 32-byte scalar.
func IsValidPrivateKey(c *Curve, b []byte) bool {
	var w [keyWords]uint64
	if len(b) != KeySize {
		return false
	}
	vli.LEBytesToNative(w[:], b, KeySize)
	ok := isClamped(w[:])
	vli.Clear(w[:], keyWords)
	return ok
}

// ExpandSeed derives the private key of a 32-byte seed as RFC 8032 does:
// the first half of SHA-512(seed), clamped.
func ExpandSeed(c *Curve, seed []byte) (*PrivateKey, error) {
	if len(seed) != KeySize {
		return nil, ecc.NewOpError("expand seed", c, ecc.ErrInvalidLength)
	}
	h := sha512.Sum512(seed)
	defer clear(h[:])
	clamp(h[:KeySize])
	return ParsePrivateKey(c, h[:KeySize])
}

// GenerateKey expands a random seed read from rand. A nil rand selects
// crypto/rand.
func GenerateKey(c *Curve, rnd io.Reader) (*PrivateKey, error) {
	var seed [KeySize]byte
	defer clear(seed[:])
	if rnd == nil {
		rnd = rand.Reader
	}
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return nil, errors.Wrap(err, "eddsa: generate key")
	}
	return ExpandSeed(c, seed[:])
}

// GenerateSecret deterministically derives a key from seed and
// personalization: 32 bytes of HMAC generator output, clamped.
func GenerateSecret(c *Curve, prf ecc.Hash, seed, personalization []byte, sequence int32, iterations int) (*PrivateKey, error) {
	if !prf.PRF {
		return nil, ecc.NewOpError("derive", c, ecc.ErrUnsupportedHash)
	}
	out := make([]byte, KeySize)
	defer clear(out)
	if err := drbg.Derive(prf.New, out, seed, personalization, sequence, iterations, nil); err != nil {
		return nil, errors.Wrap(err, "eddsa: derive")
	}
	clamp(out)
	return ParsePrivateKey(c, out)
}

// Curve returns the curve of the key.
func (k *PrivateKey) Curve() ecc.Curve { return k.curve }

// IsValid reports whether the key holds a clamped scalar.
func (k *PrivateKey) IsValid() bool {
	if k == nil || !k.secret.IsSet() {
		return false
	}
	ok := false
	_ = k.secret.Use(func(w []uint64) error {
		ok = isClamped(w)
		return nil
	})
	return ok
}

// Parse replaces the key with b. The key is left unchanged on error.
func (k *PrivateKey) Parse(b []byte) error {
	var w [keyWords]uint64
	defer vli.Clear(w[:], keyWords)
	if len(b) != KeySize {
		logger.Debugf("rejected private key of %d bytes", len(b))
		return ecc.NewOpError("parse", k.curve, ecc.ErrInvalidLength)
	}
	vli.LEBytesToNative(w[:], b, KeySize)
	return k.Wrap(w[:])
}

// Wrap replaces the key with four little-endian words.
func (k *PrivateKey) Wrap(native []uint64) error {
	if len(native) < keyWords {
		return ecc.NewOpError("wrap", k.curve, ecc.ErrInvalidLength)
	}
	if !isClamped(native) {
		return ecc.NewOpError("wrap", k.curve, ecc.ErrInvalidKey)
	}
	k.secret.Store(native)
	return nil
}

// UnWrap copies the four scalar words into out.
func (k *PrivateKey) UnWrap(out []uint64) error {
	if !k.IsValid() {
		return ecc.NewOpError("unwrap", k.curve, ecc.ErrInvalidKey)
	}
	if len(out) < keyWords {
		return ecc.NewOpError("unwrap", k.curve, ecc.ErrInvalidLength)
	}
	k.secret.CopyTo(out)
	return nil
}

// Bytes returns the 32-byte little-endian scalar.
func (k *PrivateKey) Bytes() ([]byte, error) {
	if !k.IsValid() {
		return nil, ecc.NewOpError("serialize", k.curve, ecc.ErrInvalidKey)
	}
	out := make([]byte, KeySize)
	_ = k.secret.Use(func(w []uint64) error {
		vli.NativeToLEBytes(out, KeySize, w)
		return nil
	})
	return out, nil
}

// Clear wipes the scalar.
func (k *PrivateKey) Clear() {
	k.secret.Clear()
}

// scalar sets a to the key reduced mod L.
func (k *PrivateKey) scalar(a *edwards.Scalar) {
	_ = k.secret.Use(func(w []uint64) error {
		var wide [2 * keyWords]uint64
		copy(wide[:], w)
		k.curve.params.L.Reduce(a[:], wide[:])
		vli.Clear(wide[:], 2*keyWords)
		return nil
	})
}

// ComputePublicKey returns A = a*B.
func (k *PrivateKey) ComputePublicKey() (*PublicKey, error) {
	var a edwards.Scalar
	defer a.Clear()
	if !k.IsValid() {
		return nil, ecc.NewOpError("public key", k.curve, ecc.ErrInvalidKey)
	}

	k.scalar(&a)
	pub := &PublicKey{curve: k.curve}
	if err := k.curve.baseMult(&pub.point, &a); err != nil {
		return nil, errors.Wrap(err, "eddsa: public key")
	}
	copy(pub.enc[:], pub.point.Bytes())
	return pub, nil
}

// PublicKey implements ecc.PrivateKey.
func (k *PrivateKey) PublicKey() (ecc.PublicKey, error) {
	pub, err := k.ComputePublicKey()
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// KeyTweak returns the key (a + t) mod L, clamped. t is a 32-byte
// little-endian value, reduced mod L before the addition.
func (k *PrivateKey) KeyTweak(tweak []byte) (*PrivateKey, error) {
	var a, t edwards.Scalar
	defer a.Clear()
	if !k.IsValid() {
		return nil, ecc.NewOpError("tweak", k.curve, ecc.ErrInvalidKey)
	}
	if len(tweak) != KeySize {
		return nil, ecc.NewOpError("tweak", k.curve, ecc.ErrInvalidLength)
	}
	if _, err := t.SetBytesModL(tweak); err != nil {
		return nil, ecc.NewOpError("tweak", k.curve, ecc.ErrInvalidTweak)
	}

	k.scalar(&a)
	a.Add(&a, &t)
	b := a.Bytes()
	defer clear(b)
	clamp(b)
	return ParsePrivateKey(k.curve, b)
}

// DeriveHMAC derives a child key with this key as the secret seed and
// entropy as the personalization string. See GenerateSecret.
func (k *PrivateKey) DeriveHMAC(prf ecc.Hash, entropy []byte, sequence int32, iterations int) (*PrivateKey, error) {
	seed, err := k.Bytes()
	if err != nil {
		return nil, ecc.NewOpError("derive", k.curve, ecc.ErrInvalidKey)
	}
	defer clear(seed)
	return GenerateSecret(k.curve, prf, seed, entropy, sequence, iterations)
}

// CalculateKeyHash hashes the little-endian scalar.
func (k *PrivateKey) CalculateKeyHash(h ecc.Hash) ([]byte, error) {
	b, err := k.Bytes()
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return h.Sum(b), nil
}

// ECDH computes a*A for the peer key A, packs it and clamps the encoding
// into a new private key. Peers of small order are rejected. Passing a key
// of another curve panics.
func (k *PrivateKey) ECDH(peer *PublicKey) (*PrivateKey, error) {
	var p edwards.Point
	if peer.curve != k.curve {
		panic("eddsa: ECDH between keys of different curves")
	}
	if !k.IsValid() {
		return nil, ecc.NewOpError("ecdh", k.curve, ecc.ErrInvalidKey)
	}
	if peer.IsSmallOrder() {
		logger.Debugf("rejected small order ECDH peer")
		return nil, ecc.NewOpError("ecdh", k.curve, ecc.ErrInvalidPoint)
	}

	// the clamped scalar is used unreduced
	_ = k.secret.Use(func(w []uint64) error {
		p.ScalarMult(w, &peer.point)
		return nil
	})
	b := p.Bytes()
	defer clear(b)
	clamp(b)
	return ParsePrivateKey(k.curve, b)
}

// SharedSecret returns the bytes of the ECDH key. It reports
// ErrCurveMismatch when peer is not an Ed25519 key.
func (k *PrivateKey) SharedSecret(peer ecc.PublicKey) ([]byte, error) {
	pub, ok := peer.(*PublicKey)
	if !ok || pub.curve != k.curve {
		return nil, ecc.NewOpError("ecdh", k.curve, ecc.ErrCurveMismatch)
	}
	shared, err := k.ECDH(pub)
	if err != nil {
		return nil, err
	}
	defer shared.Clear()
	return shared.Bytes()
}
