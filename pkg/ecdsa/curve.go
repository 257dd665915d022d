// Package ecdsa implements keys, ECDSA signatures and ECDH on the short
// Weierstrass curves secp256k1, secp256r1, secp224r1 and secp384r1.
//
// Private scalars are kept masked in memory and only unmasked for the
// duration of a single operation. Every secret scalar multiplication goes
// through the regularized ladder with a randomized projective Z.
package ecdsa

import (
	"sync"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/logging"
	"github.com/smallyu/go-ecc/pkg/ecc"
)

var logger = logging.MustGetLogger("ecdsa")

// Curve is a short Weierstrass curve usable with this package. Curves are
// immutable and shared; compare them by pointer.
type Curve struct {
	params *curves.Weierstrass
}

var _ ecc.Curve = (*Curve)(nil)

var (
	secp256k1Curve = sync.OnceValue(func() *Curve { return &Curve{params: curves.Secp256k1()} })
	secp256r1Curve = sync.OnceValue(func() *Curve { return &Curve{params: curves.Secp256r1()} })
	secp224r1Curve = sync.OnceValue(func() *Curve { return &Curve{params: curves.Secp224r1()} })
	secp384r1Curve = sync.OnceValue(func() *Curve { return &Curve{params: curves.Secp384r1()} })
)

// Secp256k1 returns the secp256k1 curve.
func Secp256k1() *Curve { return secp256k1Curve() }

// Secp256r1 returns the NIST P-256 curve.
func Secp256r1() *Curve { return secp256r1Curve() }

// Secp224r1 returns the NIST P-224 curve.
func Secp224r1() *Curve { return secp224r1Curve() }

// Secp384r1 returns the NIST P-384 curve.
func Secp384r1() *Curve { return secp384r1Curve() }

// CurveByName looks up a curve by name, accepting the aliases understood
// by the curve registry (p256, prime256v1, ...).
func CurveByName(name string) (*Curve, error) {
	desc, err := curves.ByName(name)
	if err != nil {
		return nil, err
	}
	switch desc.Name() {
	case "secp256k1":
		return Secp256k1(), nil
	case "secp256r1":
		return Secp256r1(), nil
	case "secp224r1":
		return Secp224r1(), nil
	case "secp384r1":
		return Secp384r1(), nil
	}
	return nil, ecc.NewOpError("lookup", desc, ecc.ErrCurveMismatch)
}

func (c *Curve) Name() string                 { return c.params.Name() }
func (c *Curve) PrivateKeySize() int          { return c.params.PrivateKeySize() }
func (c *Curve) PublicKeySize() int           { return c.params.PublicKeySize() }
func (c *Curve) CompressedPublicKeySize() int { return c.params.CompressedPublicKeySize() }
func (c *Curve) CompactSignatureSize() int    { return c.params.CompactSignatureSize() }
func (c *Curve) DERSignatureSize() int        { return c.params.DERSignatureSize() }
func (c *Curve) ScalarSize() int              { return c.params.ScalarSize() }

func (c *Curve) String() string { return c.params.Name() }
