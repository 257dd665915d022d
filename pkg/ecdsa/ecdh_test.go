package ecdsa

import (
	"crypto/ecdh"
	"crypto/sha512"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecc/pkg/ecc"
)

func TestECDHSymmetric(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			a, b := mustGenerate(t, c), mustGenerate(t, c)
			pubA, err := a.ComputePublicKey()
			require.NoError(t, err)
			pubB, err := b.ComputePublicKey()
			require.NoError(t, err)

			ab, err := a.SharedSecret(pubB)
			require.NoError(t, err)
			ba, err := b.SharedSecret(pubA)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
			assert.Len(t, ab, c.PrivateKeySize())

			// the shared secret is a usable key
			shared, err := a.ECDH(pubB)
			require.NoError(t, err)
			assert.True(t, shared.IsValid())
			h, err := shared.CalculateKeyHash(ecc.SHA512)
			require.NoError(t, err)
			want := sha512.Sum512(ab)
			assert.Equal(t, want[:], h)
		})
	}
}

func TestECDHSecp256k1AgainstDecred(t *testing.T) {
	c := Secp256k1()
	for i := 0; i < 4; i++ {
		a, b := mustGenerate(t, c), mustGenerate(t, c)
		ad, err := a.Bytes()
		require.NoError(t, err)
		pubB, err := b.ComputePublicKey()
		require.NoError(t, err)

		refPub, err := secp256k1.ParsePubKey(pubB.CompressedBytes())
		require.NoError(t, err)
		want := secp256k1.GenerateSharedSecret(secp256k1.PrivKeyFromBytes(ad), refPub)

		got, err := a.SharedSecret(pubB)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestECDHAgainstStdlib(t *testing.T) {
	tests := []struct {
		curve *Curve
		std   ecdh.Curve
	}{
		{Secp256r1(), ecdh.P256()},
		{Secp384r1(), ecdh.P384()},
	}
	for _, tc := range tests {
		t.Run(tc.curve.Name(), func(t *testing.T) {
			a, b := mustGenerate(t, tc.curve), mustGenerate(t, tc.curve)
			ad, err := a.Bytes()
			require.NoError(t, err)
			pubB, err := b.ComputePublicKey()
			require.NoError(t, err)

			refA, err := tc.std.NewPrivateKey(ad)
			require.NoError(t, err)
			refB, err := tc.std.NewPublicKey(pubB.UncompressedBytes())
			require.NoError(t, err)
			want, err := refA.ECDH(refB)
			require.NoError(t, err)

			got, err := a.SharedSecret(pubB)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestECDHErrors(t *testing.T) {
	k1 := mustGenerate(t, Secp256k1())
	r1 := mustGenerate(t, Secp256r1())
	pubR1, err := r1.ComputePublicKey()
	require.NoError(t, err)

	_, err = k1.SharedSecret(pubR1)
	assert.ErrorIs(t, err, ecc.ErrCurveMismatch)
	_, err = k1.SharedSecret(nil)
	assert.ErrorIs(t, err, ecc.ErrCurveMismatch)
	assert.Panics(t, func() { _, _ = k1.ECDH(pubR1) })

	empty := NewPrivateKey(Secp256r1())
	_, err = empty.ECDH(pubR1)
	assert.ErrorIs(t, err, ecc.ErrInvalidKey)
}
