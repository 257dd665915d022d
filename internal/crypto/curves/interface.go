package curves

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/internal/logging"
)

var logger = logging.MustGetLogger("curves")

// Curve is the metadata shared by every curve family.
type Curve interface {
	// Name returns the canonical curve name (e.g. "secp256k1").
	Name() string

	// PrivateKeySize is the byte length of a serialized private key.
	PrivateKeySize() int

	// PublicKeySize is the byte length of the uncompressed public key
	// encoding, without any format prefix.
	PublicKeySize() int

	// CompressedPublicKeySize is the byte length of the compressed
	// public key encoding.
	CompressedPublicKeySize() int

	// CompactSignatureSize is the byte length of r || s.
	CompactSignatureSize() int

	// DERSignatureSize is the maximum byte length of a DER signature.
	DERSignatureSize() int

	// ScalarSize is the byte width of each of r and s.
	ScalarSize() int
}

// ByName looks up a curve descriptor by name. Common aliases are accepted.
func ByName(name string) (Curve, error) {
	switch strings.ToLower(name) {
	case "secp256k1":
		return Secp256k1(), nil
	case "secp256r1", "p256", "p-256", "prime256v1":
		return Secp256r1(), nil
	case "secp224r1", "p224", "p-224":
		return Secp224r1(), nil
	case "secp384r1", "p384", "p-384":
		return Secp384r1(), nil
	case "ed25519", "edwards25519":
		return Ed25519(), nil
	}
	return nil, fmt.Errorf("curves: unknown curve %q", name)
}

// Names lists the canonical names of every supported curve.
func Names() []string {
	return []string{"secp256k1", "secp256r1", "secp224r1", "secp384r1", "ed25519"}
}

func newScrambleKey(key []uint64) {
	var b [vli.MaxBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("curves: unable to read scramble key: " + err.Error())
	}
	vli.LEBytesToNative(key, b[:], len(b))
	for i := range b {
		b[i] = 0
	}
}

func derSize(scalarBytes int) int {
	// SEQUENCE { INTEGER r, INTEGER s }, each with a possible sign pad
	return 2 + 2*(2+scalarBytes+1)
}
