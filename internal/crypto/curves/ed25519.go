package curves

import (
	"math/bits"
	"sync"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Edwards describes the twisted Edwards curve -x^2 + y^2 = 1 + d*x^2*y^2
// over GF(2^255 - 19), with the prime order subgroup of order L.
type Edwards struct {
	name string

	// P is the field modulus, L the subgroup order.
	P *vli.Modulus
	L *vli.Modulus

	D      [4]uint64
	D2     [4]uint64
	SqrtM1 [4]uint64
	// PMinus5Over8 is the exponent (p - 5) / 8 used by square roots.
	PMinus5Over8 [4]uint64

	// Base point in affine coordinates, with T = X*Y.
	BX, BY, BT [4]uint64

	scrambleKey [vli.MaxWords]uint64
}

var (
	ed25519Once   sync.Once
	ed25519Params *Edwards

	ed25519P = [4]uint64{0xFFFFFFFFFFFFFFED, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x7FFFFFFFFFFFFFFF}
)

// Ed25519 returns the edwards25519 descriptor.
func Ed25519() *Edwards {
	ed25519Once.Do(func() {
		c := &Edwards{
			name:         "ed25519",
			P:            vli.NewModulus(ed25519P[:], reduce25519),
			L:            vli.NewModulus([]uint64{0x5812631A5CF5D3ED, 0x14DEF9DEA2F79CD6, 0x0000000000000000, 0x1000000000000000}, nil),
			D:            [4]uint64{0x75EB4DCA135978A3, 0x00700A4D4141D8AB, 0x8CC740797779E898, 0x52036CEE2B6FFE73},
			D2:           [4]uint64{0xEBD69B9426B2F159, 0x00E0149A8283B156, 0x198E80F2EEF3D130, 0x2406D9DC56DFFCE7},
			SqrtM1:       [4]uint64{0xC4EE1B274A0EA0B0, 0x2F431806AD2FE478, 0x2B4D00993DFBD7A7, 0x2B8324804FC1DF0B},
			PMinus5Over8: [4]uint64{0xFFFFFFFFFFFFFFFD, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x0FFFFFFFFFFFFFFF},
			BX:           [4]uint64{0xC9562D608F25D51A, 0x692CC7609525A7B2, 0xC0A4E231FDD6DC5C, 0x216936D3CD6E53FE},
			BY:           [4]uint64{0x6666666666666658, 0x6666666666666666, 0x6666666666666666, 0x6666666666666666},
			BT:           [4]uint64{0x6DDE8AB3A5B7DDA3, 0x20F09F80775152F5, 0x66EA4E8E64ABE37D, 0x67875F0FD78B7665},
		}
		newScrambleKey(c.scrambleKey[:])
		logger.Debugf("initialized %s descriptor", c.name)
		ed25519Params = c
	})
	return ed25519Params
}

func (c *Edwards) Name() string                 { return c.name }
func (c *Edwards) PrivateKeySize() int          { return 32 }
func (c *Edwards) PublicKeySize() int           { return 32 }
func (c *Edwards) CompressedPublicKeySize() int { return 32 }
func (c *Edwards) CompactSignatureSize() int    { return 64 }
func (c *Edwards) DERSignatureSize() int        { return derSize(32) }
func (c *Edwards) ScalarSize() int              { return 32 }

// ScrambleKey returns the mask applied to private scalars at rest.
func (c *Edwards) ScrambleKey() []uint64 { return c.scrambleKey[:4] }

// reduce25519 folds the high half of a 512-bit product using
// 2^256 = 38 (mod p), then subtracts p at most twice.
func reduce25519(result, product []uint64) {
	var hi [5]uint64
	var fold, t [4]uint64

	// hi = 38 * product[4:8]
	var carry uint64
	for i := 0; i < 4; i++ {
		h, l := bits.Mul64(product[4+i], 38)
		var c uint64
		hi[i], c = bits.Add64(l, carry, 0)
		carry = h + c
	}
	hi[4] = carry

	top := vli.Add(result, product, hi[:], 4) + hi[4]
	fold[0] = top * 38
	top = vli.Add(result, result, fold[:], 4)
	fold[0] = top * 38
	vli.Add(result, result, fold[:], 4)

	// result < 2^256 = 2p + 38
	for i := 0; i < 2; i++ {
		borrow := vli.Sub(t[:], result, ed25519P[:], 4)
		vli.Select(result, t[:], result, borrow^1, 4)
	}
}
