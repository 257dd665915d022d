package ecdsa

import (
	"crypto"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/internal/crypto/weierstrass"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

const (
	// MaxDeterministicAttempts bounds the nonce sequence numbers tried by
	// SignHashDeterministic.
	MaxDeterministicAttempts = 1024

	// nonceIterations is the PBKDF2 work spent on each deterministic nonce.
	nonceIterations = 128

	maxRandomAttempts = 16
)

// errRetry marks a nonce that produced r = 0 or s = 0.
var errRetry = errors.New("ecdsa: nonce produced a degenerate signature")

// signWithK computes the signature for a native nonce. shadow is a second
// secret in [1, n-1] that blinds the inversion of the nonce.
func (k *PrivateKey) signWithK(hash []byte, nonce, shadow []uint64) (signature.Pair, error) {
	var kk, t, e, r, s [vli.MaxWords]uint64
	var p [weierstrass.PointWords]uint64
	defer func() {
		vli.Clear(kk[:], vli.MaxWords)
		vli.Clear(t[:], vli.MaxWords)
		vli.Clear(p[:], weierstrass.PointWords)
	}()

	c := k.curve.params
	nw := c.NWords
	n := c.N

	if !inRange(k.curve, nonce) || !inRange(k.curve, shadow) {
		return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrInvalidKey)
	}

	if err := weierstrass.ComputePublicPoint(c, p[:], nonce, nil); err != nil {
		if errors.Is(err, weierstrass.ErrZeroPoint) {
			return signature.Pair{}, errRetry
		}
		return signature.Pair{}, errors.Wrap(err, "ecdsa: sign")
	}

	// r = x mod n; x < p < 2n
	vli.Set(r[:], p[:], nw)
	if vli.Cmp(n.Value(), r[:], nw) != 1 {
		vli.Sub(r[:], r[:], n.Value(), nw)
	}
	if vli.IsZero(r[:], nw) {
		return signature.Pair{}, errRetry
	}

	// blind the inversion: 1/k = shadow / (shadow * k)
	vli.Set(t[:], shadow, nw)
	n.Mult(kk[:], nonce, t[:])
	n.Inv(kk[:], kk[:])
	n.Mult(kk[:], kk[:], t[:])

	_ = k.secret.Use(func(d []uint64) error {
		n.Mult(s[:], r[:], d) // s = r*d
		return nil
	})
	weierstrass.BitsToInt(c, e[:], hash)
	n.Add(s[:], e[:], s[:])   // s = e + r*d
	n.Mult(s[:], s[:], kk[:]) // s = (e + r*d) / k
	if vli.IsZero(s[:], nw) {
		return signature.Pair{}, errRetry
	}

	// low-S
	if vli.Cmp(s[:], c.HalfN[:], nw) == 1 {
		vli.Sub(s[:], n.Value(), s[:], nw)
	}

	pair := signature.Pair{
		R: make([]byte, c.NBytes),
		S: make([]byte, c.NBytes),
	}
	vli.NativeToBytes(pair.R, c.NBytes, r[:])
	vli.NativeToBytes(pair.S, c.NBytes, s[:])
	return pair, nil
}

func (k *PrivateKey) checkSign(hash []byte) error {
	if !k.IsValid() {
		return ecc.NewOpError("sign", k.curve, ecc.ErrInvalidKey)
	}
	if len(hash) == 0 {
		return ecc.NewOpError("sign", k.curve, ecc.ErrHashSize)
	}
	return nil
}

// SignWithK signs hash with a caller supplied big-endian nonce and
// blinding value shadow, both in [1, n-1]. It exists for reproducing test
// vectors; reusing a nonce across messages reveals the key.
func (k *PrivateKey) SignWithK(hash, nonce, shadow []byte) (signature.Pair, error) {
	var kn, ks [vli.MaxWords]uint64
	defer vli.Clear(kn[:], vli.MaxWords)
	defer vli.Clear(ks[:], vli.MaxWords)

	if err := k.checkSign(hash); err != nil {
		return signature.Pair{}, err
	}
	size := k.curve.params.NBytes
	if len(nonce) != size || len(shadow) != size {
		return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrInvalidLength)
	}
	vli.BytesToNative(kn[:], nonce, size)
	vli.BytesToNative(ks[:], shadow, size)

	pair, err := k.signWithK(hash, kn[:], ks[:])
	if errors.Is(err, errRetry) {
		return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrSigningFailed)
	}
	return pair, err
}

// SignHash signs hash with a nonce drawn from crypto/rand.
func (k *PrivateKey) SignHash(hash []byte) (signature.Pair, error) {
	return k.SignHashWithRand(rand.Reader, hash)
}

// SignHashWithRand signs hash with a nonce and blinding value drawn from
// rnd.
func (k *PrivateKey) SignHashWithRand(rnd io.Reader, hash []byte) (signature.Pair, error) {
	var nonce, shadow [vli.MaxWords]uint64
	defer vli.Clear(nonce[:], vli.MaxWords)
	defer vli.Clear(shadow[:], vli.MaxWords)

	if err := k.checkSign(hash); err != nil {
		return signature.Pair{}, err
	}
	c := k.curve.params
	for i := 0; i < maxRandomAttempts; i++ {
		if err := vli.Random(rnd, nonce[:], c.N.Value(), c.NWords); err != nil {
			return signature.Pair{}, errors.Wrap(err, "ecdsa: sign nonce")
		}
		if err := vli.Random(rnd, shadow[:], c.N.Value(), c.NWords); err != nil {
			return signature.Pair{}, errors.Wrap(err, "ecdsa: sign nonce")
		}

		pair, err := k.signWithK(hash, nonce[:], shadow[:])
		if errors.Is(err, errRetry) {
			logger.Debugf("%s random nonce rejected on attempt %d", k.curve.Name(), i+1)
			continue
		}
		return pair, err
	}
	return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrSigningFailed)
}

// SignHashDeterministic signs hash with nonces derived from the key and
// the hash. For sequence numbers i = 1, 2, ... the nonce is
// DeriveHMAC(prf, hash, i) and its blinding value DeriveHMAC(prf, hash, -i);
// the first pair giving a valid signature is used.
func (k *PrivateKey) SignHashDeterministic(hash []byte, prf ecc.Hash) (signature.Pair, error) {
	var nonce, shadow [vli.MaxWords]uint64
	defer vli.Clear(nonce[:], vli.MaxWords)
	defer vli.Clear(shadow[:], vli.MaxWords)

	if err := k.checkSign(hash); err != nil {
		return signature.Pair{}, err
	}
	if !prf.PRF {
		return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrUnsupportedHash)
	}

	for i := int32(1); i <= MaxDeterministicAttempts; i++ {
		if err := k.deriveNonce(nonce[:], prf, hash, i); err != nil {
			return signature.Pair{}, err
		}
		if err := k.deriveNonce(shadow[:], prf, hash, -i); err != nil {
			return signature.Pair{}, err
		}

		pair, err := k.signWithK(hash, nonce[:], shadow[:])
		if errors.Is(err, errRetry) {
			logger.Debugf("%s deterministic nonce %d rejected", k.curve.Name(), i)
			continue
		}
		return pair, err
	}
	return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrRetryExhausted)
}

func (k *PrivateKey) deriveNonce(out []uint64, prf ecc.Hash, hash []byte, sequence int32) error {
	child, err := k.DeriveHMAC(prf, hash, sequence, nonceIterations)
	if err != nil {
		return err
	}
	defer child.Clear()
	return child.UnWrap(out)
}

// SignerOpts configures Sign. A nil SignerOpts, or any other
// crypto.SignerOpts, produces a randomized DER signature.
type SignerOpts struct {
	// Hash is the hash function that produced the digest, or zero.
	Hash crypto.Hash

	// Deterministic selects SignHashDeterministic with PRF.
	Deterministic bool
	PRF           ecc.Hash

	// Format of the returned signature. The zero value means DER.
	Format signature.Format
}

func (o *SignerOpts) HashFunc() crypto.Hash {
	if o == nil {
		return 0
	}
	return o.Hash
}

// Public returns the *PublicKey of the key, or nil for an invalid key.
func (k *PrivateKey) Public() crypto.PublicKey {
	pub, err := k.ComputePublicKey()
	if err != nil {
		return nil
	}
	return pub
}

// Sign implements crypto.Signer. The digest is signed as is; the result is
// DER encoded unless opts is a *SignerOpts asking for another format.
func (k *PrivateKey) Sign(rnd io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil {
		if h := opts.HashFunc(); h != 0 && h.Size() != len(digest) {
			return nil, ecc.NewOpError("sign", k.curve, ecc.ErrHashSize)
		}
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	format := signature.FormatDER
	var (
		pair signature.Pair
		err  error
	)
	if o, ok := opts.(*SignerOpts); ok && o != nil {
		if o.Format != "" {
			format = o.Format
		}
		if o.Deterministic {
			pair, err = k.SignHashDeterministic(digest, o.PRF)
		} else {
			pair, err = k.SignHashWithRand(rnd, digest)
		}
	} else {
		pair, err = k.SignHashWithRand(rnd, digest)
	}
	if err != nil {
		return nil, err
	}

	codec, err := signature.NewCodec(format, k.curve.ScalarSize())
	if err != nil {
		return nil, err
	}
	return codec.Encode(pair)
}
