package ecc

import (
	"crypto"
	"errors"

	"github.com/smallyu/go-ecc/pkg/signature"
)

// Common errors returned by the key and signature packages.
var (
	ErrInvalidKey       = errors.New("invalid private key")
	ErrInvalidPoint     = errors.New("invalid public key")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrCurveMismatch    = errors.New("keys belong to different curves")
	ErrDegenerate       = errors.New("degenerate arithmetic result")
	ErrInvalidTweak     = errors.New("tweak scalar out of range")
	ErrInvalidLength    = errors.New("invalid input length")
	ErrSigningFailed    = errors.New("signing failed")
	ErrRetryExhausted   = errors.New("deterministic derivation exhausted its attempts")
	ErrHashSize         = errors.New("message hash too short")
	ErrUnsupportedHash  = errors.New("hash cannot key a PRF")
)

// Curve describes the sizes of a named curve. The descriptors behind it are
// immutable and shared by every key on the curve.
type Curve interface {
	// Name returns the canonical curve name (e.g. "secp256k1").
	Name() string

	// PrivateKeySize is the byte length of a serialized private key.
	PrivateKeySize() int

	// PublicKeySize is the byte length of the uncompressed public key,
	// without any format prefix.
	PublicKeySize() int

	// CompressedPublicKeySize is the byte length of the compressed public
	// key.
	CompressedPublicKeySize() int

	// CompactSignatureSize is the byte length of r || s.
	CompactSignatureSize() int

	// DERSignatureSize is the maximum byte length of a DER signature.
	DERSignatureSize() int

	// ScalarSize is the byte width of each of r and s.
	ScalarSize() int
}

// PrivateKey is implemented by the private keys of every curve family.
// A key is not safe for concurrent use.
type PrivateKey interface {
	crypto.Signer

	// Curve returns the curve the key belongs to.
	Curve() Curve

	// IsValid reports whether the key holds a usable scalar.
	IsValid() bool

	// Bytes serializes the scalar.
	Bytes() ([]byte, error)

	// PublicKey derives the matching public key.
	PublicKey() (PublicKey, error)

	// SignHash signs a message hash with a fresh random nonce.
	SignHash(hash []byte) (signature.Pair, error)

	// SignHashDeterministic signs a message hash with a nonce derived from
	// the key and the hash through prf.
	SignHashDeterministic(hash []byte, prf Hash) (signature.Pair, error)

	// SharedSecret performs ECDH with a peer key of the same curve.
	SharedSecret(peer PublicKey) ([]byte, error)

	// Clear wipes the key. A cleared key is no longer valid.
	Clear()
}

// PublicKey is implemented by the public keys of every curve family.
type PublicKey interface {
	// Curve returns the curve the key belongs to.
	Curve() Curve

	// Bytes returns the uncompressed encoding.
	Bytes() []byte

	// CompressedBytes returns the compressed encoding.
	CompressedBytes() []byte

	// VerifyHash checks a signature over a message hash.
	VerifyHash(hash []byte, sig signature.Pair) bool
}
