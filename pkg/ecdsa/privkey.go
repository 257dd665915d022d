package ecdsa

import (
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/drbg"
	"github.com/smallyu/go-ecc/internal/crypto/mask"
	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecc/pkg/ecc"
)

// PrivateKey is a secret scalar d in [1, n-1]. The scalar is stored masked
// with the curve's scramble key. A PrivateKey is not safe for concurrent use.
type PrivateKey struct {
	curve  *Curve
	secret *mask.Secret
}

var _ ecc.PrivateKey = (*PrivateKey)(nil)

// NewPrivateKey returns an empty key on curve c. It becomes valid once
// Parse or Wrap succeeds.
func NewPrivateKey(c *Curve) *PrivateKey {
	return &PrivateKey{
		curve:  c,
		secret: mask.New(c.params.ScrambleKey(), c.params.NWords),
	}
}

// ParsePrivateKey decodes a big-endian scalar of exactly PrivateKeySize
// bytes.
func ParsePrivateKey(c *Curve, b []byte) (*PrivateKey, error) {
	k := NewPrivateKey(c)
	if err := k.Parse(b); err != nil {
		return nil, err
	}
	return k, nil
}

// IsValidPrivateKey reports whether b encodes a scalar in [1, n-1].
func IsValidPrivateKey(c *Curve, b []byte) bool {
	var native [vli.MaxWords]uint64
	if len(b) != c.params.NBytes {
		return false
	}
	vli.BytesToNative(native[:], b, c.params.NBytes)
	ok := inRange(c, native[:])
	vli.Clear(native[:], vli.MaxWords)
	return ok
}

// GenerateKey draws a uniformly random key from rand. A nil rand selects
// crypto/rand.
func GenerateKey(c *Curve, rnd io.Reader) (*PrivateKey, error) {
	var native [vli.MaxWords]uint64
	if rnd == nil {
		rnd = rand.Reader
	}
	if err := vli.Random(rnd, native[:], c.params.N.Value(), c.params.NWords); err != nil {
		return nil, errors.Wrap(err, "ecdsa: generate key")
	}
	k := NewPrivateKey(c)
	k.secret.Store(native[:])
	vli.Clear(native[:], vli.MaxWords)
	return k, nil
}

// GenerateSecret deterministically derives a key from seed and
// personalization through the HMAC generator keyed by prf. Different
// sequence numbers yield independent keys for the same inputs. Use 4096 or
// more iterations for long lived keys.
func GenerateSecret(c *Curve, prf ecc.Hash, seed, personalization []byte, sequence int32, iterations int) (*PrivateKey, error) {
	if !prf.PRF {
		return nil, ecc.NewOpError("derive", c, ecc.ErrUnsupportedHash)
	}

	out := make([]byte, c.params.NBytes)
	defer clear(out)
	accept := func(candidate []byte) bool {
		return IsValidPrivateKey(c, candidate)
	}
	if err := drbg.Derive(prf.New, out, seed, personalization, sequence, iterations, accept); err != nil {
		if errors.Is(err, drbg.ErrExhausted) {
			return nil, ecc.NewOpError("derive", c, ecc.ErrRetryExhausted)
		}
		return nil, errors.Wrap(err, "ecdsa: derive")
	}
	return ParsePrivateKey(c, out)
}

func inRange(c *Curve, native []uint64) bool {
	nw := c.params.NWords
	return !vli.IsZero(native, nw) && vli.Cmp(c.params.N.Value(), native, nw) == 1
}

// Curve returns the curve of the key.
func (k *PrivateKey) Curve() ecc.Curve { return k.curve }

// ECCurve returns the concrete curve of the key.
func (k *PrivateKey) ECCurve() *Curve { return k.curve }

// IsValid reports whether the key holds a scalar in [1, n-1].
func (k *PrivateKey) IsValid() bool {
	if k == nil || !k.secret.IsSet() {
		return false
	}
	ok := false
	_ = k.secret.Use(func(d []uint64) error {
		ok = inRange(k.curve, d)
		return nil
	})
	return ok
}

// Parse replaces the key with the big-endian scalar b. The key is left
// unchanged on error.
func (k *PrivateKey) Parse(b []byte) error {
	var native [vli.MaxWords]uint64
	defer vli.Clear(native[:], vli.MaxWords)

	if len(b) != k.curve.params.NBytes {
		logger.Debugf("rejected %s private key of %d bytes", k.curve.Name(), len(b))
		return ecc.NewOpError("parse", k.curve, ecc.ErrInvalidLength)
	}
	vli.BytesToNative(native[:], b, k.curve.params.NBytes)
	return k.Wrap(native[:])
}

// Wrap replaces the key with the native scalar, given as NWords
// little-endian words. The key is left unchanged on error.
func (k *PrivateKey) Wrap(native []uint64) error {
	if len(native) < k.curve.params.NWords {
		return ecc.NewOpError("wrap", k.curve, ecc.ErrInvalidLength)
	}
	if !inRange(k.curve, native) {
		return ecc.NewOpError("wrap", k.curve, ecc.ErrInvalidKey)
	}
	k.secret.Store(native)
	return nil
}

// UnWrap copies the native scalar into out, which must hold at least
// NWords words.
func (k *PrivateKey) UnWrap(out []uint64) error {
	if !k.IsValid() {
		return ecc.NewOpError("unwrap", k.curve, ecc.ErrInvalidKey)
	}
	if len(out) < k.curve.params.NWords {
		return ecc.NewOpError("unwrap", k.curve, ecc.ErrInvalidLength)
	}
	k.secret.CopyTo(out)
	return nil
}

// Bytes serializes the scalar as PrivateKeySize big-endian bytes.
func (k *PrivateKey) Bytes() ([]byte, error) {
	if !k.IsValid() {
		return nil, ecc.NewOpError("serialize", k.curve, ecc.ErrInvalidKey)
	}
	out := make([]byte, k.curve.params.NBytes)
	_ = k.secret.Use(func(d []uint64) error {
		vli.NativeToBytes(out, k.curve.params.NBytes, d)
		return nil
	})
	return out, nil
}

// Clear wipes the scalar.
func (k *PrivateKey) Clear() {
	k.secret.Clear()
}

// ComputePublicKey returns Q = d*G.
func (k *PrivateKey) ComputePublicKey() (*PublicKey, error) {
	if !k.IsValid() {
		return nil, ecc.NewOpError("public key", k.curve, ecc.ErrInvalidKey)
	}
	pub := &PublicKey{curve: k.curve}
	err := k.secret.Use(func(d []uint64) error {
		return weierstrass.ComputePublicPoint(k.curve.params, pub.point[:], d, nil)
	})
	if err != nil {
		if errors.Is(err, weierstrass.ErrZeroPoint) {
			return nil, ecc.NewOpError("public key", k.curve, ecc.ErrDegenerate)
		}
		return nil, errors.Wrap(err, "ecdsa: public key")
	}
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

// KeyTweak returns the key (d + t) mod n. The tweak is a big-endian scalar
// that must lie in [1, n-1].
func (k *PrivateKey) KeyTweak(tweak []byte) (*PrivateKey, error) {
	var t, sum [vli.MaxWords]uint64
	defer vli.Clear(sum[:], vli.MaxWords)

	c := k.curve
	if !k.IsValid() {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrInvalidKey)
	}
	if len(tweak) != c.params.NBytes {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrInvalidLength)
	}
	vli.BytesToNative(t[:], tweak, c.params.NBytes)
	if !inRange(c, t[:]) {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrInvalidTweak)
	}

	_ = k.secret.Use(func(d []uint64) error {
		c.params.N.Add(sum[:], d, t[:])
		return nil
	})

	result := NewPrivateKey(c)
	if err := result.Wrap(sum[:]); err != nil {
		return nil, ecc.NewOpError("tweak", c, ecc.ErrDegenerate)
	}
	return result, nil
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

// CalculateKeyHash hashes the big-endian scalar. It is meant for turning an
// ECDH result into symmetric key material.
func (k *PrivateKey) CalculateKeyHash(h ecc.Hash) ([]byte, error) {
	b, err := k.Bytes()
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return h.Sum(b), nil
}
