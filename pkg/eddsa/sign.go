package eddsa

import (
	"crypto"
	"crypto/rand"
	"crypto/sha512"
	"io"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/drbg"
	"github.com/smallyu/go-ecc/internal/crypto/edwards"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

// challenge returns SHA-512(R || A || M) mod L.
func challenge(h *edwards.Scalar, r, a, hash []byte) {
	d := sha512.New()
	d.Write(r)
	d.Write(a)
	d.Write(hash)
	var digest [sha512.Size]byte
	_, _ = h.SetUniformBytes(d.Sum(digest[:0]))
}

// sign computes R = r*B and S = r + H(R, A, M)*a for the nonce r.
func (k *PrivateKey) sign(hash []byte, r *edwards.Scalar) (signature.Pair, error) {
	var R edwards.Point
	var h, a, s edwards.Scalar
	defer a.Clear()

	pub, err := k.ComputePublicKey()
	if err != nil {
		return signature.Pair{}, err
	}
	if err := k.curve.baseMult(&R, r); err != nil {
		return signature.Pair{}, errors.Wrap(err, "eddsa: sign")
	}
	rb := R.Bytes()

	challenge(&h, rb, pub.enc[:], hash)
	k.scalar(&a)
	s.MultiplyAdd(&h, &a, r)
	return signature.Pair{R: rb, S: s.Bytes()}, nil
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

// SignHash signs hash with a nonce drawn from crypto/rand.
func (k *PrivateKey) SignHash(hash []byte) (signature.Pair, error) {
	return k.SignHashWithRand(rand.Reader, hash)
}

// SignHashWithRand signs hash with the nonce SHA-512(rand32 || hash) mod L,
// where rand32 is read from rnd.
func (k *PrivateKey) SignHashWithRand(rnd io.Reader, hash []byte) (signature.Pair, error) {
	var seed [32]byte
	var r edwards.Scalar
	defer clear(seed[:])
	defer r.Clear()

	if err := k.checkSign(hash); err != nil {
		return signature.Pair{}, err
	}
	if _, err := io.ReadFull(rnd, seed[:]); err != nil {
		return signature.Pair{}, errors.Wrap(err, "eddsa: sign nonce")
	}

	d := sha512.New()
	d.Write(seed[:])
	d.Write(hash)
	wide := d.Sum(nil)
	defer clear(wide)
	_, _ = r.SetUniformBytes(wide)
	return k.sign(hash, &r)
}

// SignHashDeterministic signs hash with a nonce taken from 64 bytes of HMAC
// generator output, seeded with the key and personalized with the hash,
// reduced mod L.
func (k *PrivateKey) SignHashDeterministic(hash []byte, prf ecc.Hash) (signature.Pair, error) {
	var r edwards.Scalar
	defer r.Clear()

	if err := k.checkSign(hash); err != nil {
		return signature.Pair{}, err
	}
	if !prf.PRF {
		return signature.Pair{}, ecc.NewOpError("sign", k.curve, ecc.ErrUnsupportedHash)
	}

	seed, err := k.Bytes()
	if err != nil {
		return signature.Pair{}, err
	}
	defer clear(seed)
	wide := make([]byte, 64)
	defer clear(wide)
	if err := drbg.Derive(prf.New, wide, seed, hash, 0, 1, nil); err != nil {
		return signature.Pair{}, errors.Wrap(err, "eddsa: sign nonce")
	}
	_, _ = r.SetUniformBytes(wide)
	return k.sign(hash, &r)
}

// SignerOpts configures Sign. HashFunc is always zero: the message is
// signed as given.
type SignerOpts struct {
	// Deterministic selects SignHashDeterministic with PRF.
	Deterministic bool
	PRF           ecc.Hash

	// Format of the returned signature. The zero value means compact,
	// the standard 64-byte Ed25519 encoding.
	Format signature.Format
}

func (o *SignerOpts) HashFunc() crypto.Hash { return 0 }

// Public returns the ed25519.PublicKey of the key, or nil for an invalid
// key.
func (k *PrivateKey) Public() crypto.PublicKey {
	pub, err := k.ComputePublicKey()
	if err != nil {
		return nil
	}
	return pub.ToEd25519()
}

// Sign implements crypto.Signer. The result verifies with
// ed25519.Verify(pub, message, sig). Pre-hashed variants are not supported,
// so opts must report a zero hash.
func (k *PrivateKey) Sign(rnd io.Reader, message []byte, opts crypto.SignerOpts) ([]byte, error) {
	if opts != nil && opts.HashFunc() != 0 {
		return nil, ecc.NewOpError("sign", k.curve, ecc.ErrUnsupportedHash)
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	format := signature.FormatCompact
	var (
		pair signature.Pair
		err  error
	)
	if o, ok := opts.(*SignerOpts); ok && o != nil {
		if o.Format != "" {
			format = o.Format
		}
		if o.Deterministic {
			pair, err = k.SignHashDeterministic(message, o.PRF)
		} else {
			pair, err = k.SignHashWithRand(rnd, message)
		}
	} else {
		pair, err = k.SignHashWithRand(rnd, message)
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
