// Package family selects the key implementation of a curve by name, so the
// command line tools can treat Weierstrass and Edwards keys alike.
package family

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/ecdsa"
	"github.com/smallyu/go-ecc/pkg/eddsa"
)

// Family is the set of key constructors of one curve.
type Family interface {
	Curve() ecc.Curve
	Generate() (ecc.PrivateKey, error)
	ParsePrivate(b []byte) (ecc.PrivateKey, error)
	ParsePublic(b []byte) (ecc.PublicKey, error)
	Derive(prf ecc.Hash, seed, personalization []byte, sequence int32, iterations int) (ecc.PrivateKey, error)
	Tweak(k ecc.PrivateKey, t []byte) (ecc.PrivateKey, error)
	TweakPublic(p ecc.PublicKey, t []byte) (ecc.PublicKey, error)
}

// ErrNoPublicTweak is returned by TweakPublic on Ed25519. Clamping the
// tweaked scalar breaks the relation between the two tweaks.
var ErrNoPublicTweak = errors.New("public key tweak not supported")

// ByName returns the family of the named curve.
func ByName(name string) (Family, error) {
	if c, err := eddsa.CurveByName(name); err == nil {
		return edFamily{c}, nil
	}
	c, err := ecdsa.CurveByName(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown curve %q", name)
	}
	return ecFamily{c}, nil
}

type ecFamily struct{ c *ecdsa.Curve }

func (f ecFamily) Curve() ecc.Curve { return f.c }

func (f ecFamily) Generate() (ecc.PrivateKey, error) {
	return ecdsa.GenerateKey(f.c, nil)
}

func (f ecFamily) ParsePrivate(b []byte) (ecc.PrivateKey, error) {
	return ecdsa.ParsePrivateKey(f.c, b)
}

func (f ecFamily) ParsePublic(b []byte) (ecc.PublicKey, error) {
	return ecdsa.ParsePublicKey(f.c, b)
}

func (f ecFamily) Derive(prf ecc.Hash, seed, personalization []byte, sequence int32, iterations int) (ecc.PrivateKey, error) {
	return ecdsa.GenerateSecret(f.c, prf, seed, personalization, sequence, iterations)
}

func (f ecFamily) Tweak(k ecc.PrivateKey, t []byte) (ecc.PrivateKey, error) {
	key, ok := k.(*ecdsa.PrivateKey)
	if !ok || key.ECCurve() != f.c {
		return nil, ecc.NewOpError("tweak", f.c, ecc.ErrCurveMismatch)
	}
	return key.KeyTweak(t)
}

func (f ecFamily) TweakPublic(p ecc.PublicKey, t []byte) (ecc.PublicKey, error) {
	pub, ok := p.(*ecdsa.PublicKey)
	if !ok || pub.ECCurve() != f.c {
		return nil, ecc.NewOpError("tweak", f.c, ecc.ErrCurveMismatch)
	}
	return pub.Tweak(t)
}

type edFamily struct{ c *eddsa.Curve }

func (f edFamily) Curve() ecc.Curve { return f.c }

func (f edFamily) Generate() (ecc.PrivateKey, error) {
	return eddsa.GenerateKey(f.c, nil)
}

func (f edFamily) ParsePrivate(b []byte) (ecc.PrivateKey, error) {
	return eddsa.ParsePrivateKey(f.c, b)
}

func (f edFamily) ParsePublic(b []byte) (ecc.PublicKey, error) {
	return eddsa.ParsePublicKey(f.c, b)
}

func (f edFamily) Derive(prf ecc.Hash, seed, personalization []byte, sequence int32, iterations int) (ecc.PrivateKey, error) {
	return eddsa.GenerateSecret(f.c, prf, seed, personalization, sequence, iterations)
}

func (f edFamily) Tweak(k ecc.PrivateKey, t []byte) (ecc.PrivateKey, error) {
	key, ok := k.(*eddsa.PrivateKey)
	if !ok {
		return nil, ecc.NewOpError("tweak", f.c, ecc.ErrCurveMismatch)
	}
	return key.KeyTweak(t)
}

func (f edFamily) TweakPublic(ecc.PublicKey, []byte) (ecc.PublicKey, error) {
	return nil, ecc.NewOpError("tweak", f.c, ErrNoPublicTweak)
}
