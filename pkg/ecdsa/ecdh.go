package ecdsa

import (
	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecc/pkg/ecc"
)

// ECDH computes d*Q for the peer key Q and wraps its x coordinate as a new
// private key. Hash the result with CalculateKeyHash before using it as a
// symmetric key. The call fails when x is not a valid scalar, which happens
// with negligible probability. Passing a key of another curve panics.
func (k *PrivateKey) ECDH(peer *PublicKey) (*PrivateKey, error) {
	var p [weierstrass.PointWords]uint64
	defer vli.Clear(p[:], weierstrass.PointWords)

	if peer.curve != k.curve {
		panic("ecdsa: ECDH between keys of different curves")
	}
	if !k.IsValid() {
		return nil, ecc.NewOpError("ecdh", k.curve, ecc.ErrInvalidKey)
	}

	c := k.curve.params
	err := k.secret.Use(func(d []uint64) error {
		return weierstrass.ScalarMult(c, p[:], peer.point[:], d, nil)
	})
	if err != nil {
		if errors.Is(err, weierstrass.ErrZeroPoint) {
			return nil, ecc.NewOpError("ecdh", k.curve, ecc.ErrDegenerate)
		}
		return nil, errors.Wrap(err, "ecdsa: ecdh")
	}

	shared := NewPrivateKey(k.curve)
	if err := shared.Wrap(p[:c.Words]); err != nil {
		logger.Debugf("%s shared x coordinate is not a valid scalar", k.curve.Name())
		return nil, ecc.NewOpError("ecdh", k.curve, ecc.ErrDegenerate)
	}
	return shared, nil
}

// SharedSecret returns the big-endian x coordinate of d*Q. It implements
// ecc.PrivateKey and reports ErrCurveMismatch instead of panicking when
// peer is not a key of the same curve.
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
