// Package eddsa implements Ed25519 keys, EdDSA signatures over message
// hashes and an ECDH variant on the edwards25519 curve.
//
// Private keys are clamped 32-byte little-endian scalars rather than RFC
// 8032 seeds; ExpandSeed turns a seed into such a key. Signatures are
// standard Ed25519 signatures of the message hash and verify with
// crypto/ed25519.
package eddsa

import (
	"strings"
	"sync"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/crypto/edwards"
	"github.com/smallyu/go-ecc/internal/logging"
	"github.com/smallyu/go-ecc/pkg/ecc"
)

var logger = logging.MustGetLogger("eddsa")

// Curve is the edwards25519 curve together with the blinding offset used
// by every secret base point multiplication on it.
type Curve struct {
	params *curves.Edwards

	blindOnce sync.Once
	blinding  *edwards.Blinding
	blindErr  error
}

var _ ecc.Curve = (*Curve)(nil)

var ed25519Curve = sync.OnceValue(func() *Curve {
	return &Curve{params: curves.Ed25519()}
})

// Ed25519 returns the edwards25519 curve.
func Ed25519() *Curve { return ed25519Curve() }

// CurveByName returns Ed25519 for the names "ed25519" and "edwards25519".
func CurveByName(name string) (*Curve, error) {
	switch strings.ToLower(name) {
	case "ed25519", "edwards25519":
		return Ed25519(), nil
	}
	return nil, ecc.NewOpError("lookup", nil, ecc.ErrCurveMismatch)
}

func (c *Curve) Name() string                 { return c.params.Name() }
func (c *Curve) PrivateKeySize() int          { return c.params.PrivateKeySize() }
func (c *Curve) PublicKeySize() int           { return c.params.PublicKeySize() }
func (c *Curve) CompressedPublicKeySize() int { return c.params.CompressedPublicKeySize() }
func (c *Curve) CompactSignatureSize() int    { return c.params.CompactSignatureSize() }
func (c *Curve) DERSignatureSize() int        { return c.params.DERSignatureSize() }
func (c *Curve) ScalarSize() int              { return c.params.ScalarSize() }

func (c *Curve) String() string { return c.params.Name() }

// baseMult sets v = s*B through the blinded comb.
func (c *Curve) baseMult(v *edwards.Point, s *edwards.Scalar) error {
	c.blindOnce.Do(func() {
		c.blinding, c.blindErr = edwards.NewBlinding(nil)
		if c.blindErr == nil {
			logger.Debugf("initialized %s base point blinding", c.Name())
		}
	})
	if c.blindErr != nil {
		return c.blindErr
	}
	return c.blinding.BaseMult(v, s, nil)
}
