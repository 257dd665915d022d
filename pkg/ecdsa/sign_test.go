package ecdsa

import (
	"bytes"
	"crypto"
	stdecdsa "crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

func hashOf(msg string) []byte {
	h := sha256.Sum256([]byte(msg))
	return h[:]
}

func halfOrder(c *Curve) []byte {
	b := make([]byte, c.params.NBytes)
	vli.NativeToBytes(b, c.params.NBytes, c.params.HalfN[:])
	return b
}

func TestSignVerify(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			k := mustGenerate(t, c)
			pub, err := k.ComputePublicKey()
			require.NoError(t, err)

			hash := hashOf("attack at dawn")
			sig, err := k.SignHash(hash)
			require.NoError(t, err)
			assert.Len(t, sig.R, c.ScalarSize())
			assert.Len(t, sig.S, c.ScalarSize())

			assert.True(t, pub.VerifyHash(hash, sig))
			assert.True(t, pub.VerifyStrict(hash, sig))
			assert.False(t, pub.VerifyHash(hashOf("attack at dusk"), sig))

			bad := signature.Pair{R: append([]byte(nil), sig.R...), S: sig.S}
			bad.R[len(bad.R)-1] ^= 1
			assert.False(t, pub.VerifyHash(hash, bad))
			assert.False(t, pub.VerifyHash(hash, signature.Pair{R: sig.R, S: sig.S[1:]}))
			assert.False(t, pub.VerifyHash(nil, sig))

			other, err := mustGenerate(t, c).ComputePublicKey()
			require.NoError(t, err)
			assert.False(t, other.VerifyHash(hash, sig))
		})
	}
}

func TestSignIsLowS(t *testing.T) {
	for _, c := range allCurves() {
		k := mustGenerate(t, c)
		half := halfOrder(c)
		for i := 0; i < 16; i++ {
			sig, err := k.SignHash(hashOf(string(rune('a' + i))))
			require.NoError(t, err)
			assert.LessOrEqual(t, bytes.Compare(sig.S, half), 0, c.Name())
		}
	}
}

func TestVerifyHighS(t *testing.T) {
	for _, c := range allCurves() {
		k := mustGenerate(t, c)
		pub, err := k.ComputePublicKey()
		require.NoError(t, err)

		hash := hashOf("malleable")
		sig, err := k.SignHash(hash)
		require.NoError(t, err)

		highS := new(big.Int).Sub(orderOf(c), new(big.Int).SetBytes(sig.S))
		high := signature.Pair{R: sig.R, S: scalarBytes(c, highS)}
		assert.True(t, pub.VerifyHash(hash, high), c.Name())
		assert.False(t, pub.VerifyStrict(hash, high), c.Name())

		// r = 0 and s = n are never valid
		assert.False(t, pub.VerifyHash(hash, signature.Pair{R: make([]byte, c.ScalarSize()), S: sig.S}))
		assert.False(t, pub.VerifyHash(hash, signature.Pair{R: sig.R, S: scalarBytes(c, orderOf(c))}))
	}
}

func TestSignWithK(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			n := orderOf(c)
			k := mustGenerate(t, c)
			d, err := k.Bytes()
			require.NoError(t, err)
			hash := hashOf("known nonce")

			nonce := mustGenerate(t, c)
			kb, err := nonce.Bytes()
			require.NoError(t, err)
			one := scalarBytes(c, big.NewInt(1))

			sig, err := k.SignWithK(hash, kb, one)
			require.NoError(t, err)

			// the blinding value does not change the result
			again, err := k.SignWithK(hash, kb, scalarBytes(c, big.NewInt(12345)))
			require.NoError(t, err)
			assert.True(t, sig.Equal(again))

			// recompute s = (e + r*d) / k with math/big
			kx, err := nonce.ComputePublicKey()
			require.NoError(t, err)
			r := new(big.Int).SetBytes(kx.Bytes()[:c.params.Bytes])
			r.Mod(r, n)
			assert.Equal(t, scalarBytes(c, r), sig.R)

			e := new(big.Int).SetBytes(hash)
			if excess := len(hash)*8 - n.BitLen(); excess > 0 {
				e.Rsh(e, uint(excess))
			}
			s := new(big.Int).Mul(r, new(big.Int).SetBytes(d))
			s.Add(s, e)
			s.Mul(s, new(big.Int).ModInverse(new(big.Int).SetBytes(kb), n))
			s.Mod(s, n)
			if s.Cmp(new(big.Int).Rsh(n, 1)) > 0 {
				s.Sub(n, s)
			}
			assert.Equal(t, scalarBytes(c, s), sig.S)

			_, err = k.SignWithK(hash, make([]byte, c.ScalarSize()), one)
			assert.ErrorIs(t, err, ecc.ErrInvalidKey)
			_, err = k.SignWithK(hash, scalarBytes(c, n), one)
			assert.ErrorIs(t, err, ecc.ErrInvalidKey)
			_, err = k.SignWithK(hash, kb, make([]byte, c.ScalarSize()))
			assert.ErrorIs(t, err, ecc.ErrInvalidKey)
			_, err = k.SignWithK(hash, kb[1:], one)
			assert.ErrorIs(t, err, ecc.ErrInvalidLength)
		})
	}
}

func TestSignHashDeterministic(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			k := mustGenerate(t, c)
			pub, err := k.ComputePublicKey()
			require.NoError(t, err)
			hash := hashOf("deterministic")

			a, err := k.SignHashDeterministic(hash, ecc.SHA256)
			require.NoError(t, err)
			b, err := k.SignHashDeterministic(hash, ecc.SHA256)
			require.NoError(t, err)
			assert.True(t, a.Equal(b))
			assert.True(t, pub.VerifyStrict(hash, a))

			other, err := k.SignHashDeterministic(hashOf("deterministic!"), ecc.SHA256)
			require.NoError(t, err)
			assert.False(t, a.Equal(other))

			sha3Sig, err := k.SignHashDeterministic(hash, ecc.SHA3_256)
			require.NoError(t, err)
			assert.False(t, a.Equal(sha3Sig))
			assert.True(t, pub.VerifyHash(hash, sha3Sig))

			// the first attempt uses the nonces of sequence +1 and -1
			nonce, err := k.DeriveHMAC(ecc.SHA256, hash, 1, nonceIterations)
			require.NoError(t, err)
			shadow, err := k.DeriveHMAC(ecc.SHA256, hash, -1, nonceIterations)
			require.NoError(t, err)
			nb, _ := nonce.Bytes()
			sb, _ := shadow.Bytes()
			want, err := k.SignWithK(hash, nb, sb)
			require.NoError(t, err)
			assert.True(t, a.Equal(want))
		})
	}
}

func TestSignErrors(t *testing.T) {
	c := Secp256k1()
	empty := NewPrivateKey(c)
	_, err := empty.SignHash(hashOf("x"))
	assert.ErrorIs(t, err, ecc.ErrInvalidKey)
	_, err = empty.SignHashDeterministic(hashOf("x"), ecc.SHA256)
	assert.ErrorIs(t, err, ecc.ErrInvalidKey)

	k := mustGenerate(t, c)
	_, err = k.SignHash(nil)
	assert.ErrorIs(t, err, ecc.ErrHashSize)
	_, err = k.SignHashDeterministic(hashOf("x"), ecc.BLAKE2b_256)
	assert.ErrorIs(t, err, ecc.ErrUnsupportedHash)

	var opErr *ecc.OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "sign", opErr.Op)
	assert.Equal(t, "secp256k1", opErr.Curve)

	_, err = k.SignHashWithRand(bytes.NewReader(nil), hashOf("x"))
	assert.Error(t, err)
}

func TestSecp256k1AgainstDecred(t *testing.T) {
	c := Secp256k1()
	der := signature.NewDER(32)

	for i := 0; i < 8; i++ {
		k := mustGenerate(t, c)
		d, err := k.Bytes()
		require.NoError(t, err)
		pub, err := k.ComputePublicKey()
		require.NoError(t, err)
		hash := hashOf(string(rune('A' + i)))

		// ours verified by decred
		sig, err := k.SignHash(hash)
		require.NoError(t, err)
		enc, err := der.Encode(sig)
		require.NoError(t, err)
		parsed, err := dcrecdsa.ParseDERSignature(enc)
		require.NoError(t, err)
		refPub, err := secp256k1.ParsePubKey(pub.UncompressedBytes())
		require.NoError(t, err)
		assert.True(t, parsed.Verify(hash, refPub))

		// decred verified by ours
		refSig := dcrecdsa.Sign(secp256k1.PrivKeyFromBytes(d), hash)
		pair, err := der.Decode(refSig.Serialize())
		require.NoError(t, err)
		assert.True(t, pub.VerifyStrict(hash, pair))
	}
}

func TestNISTAgainstStdlib(t *testing.T) {
	for _, c := range allCurves()[1:] {
		t.Run(c.Name(), func(t *testing.T) {
			k := mustGenerate(t, c)
			pub, err := k.ComputePublicKey()
			require.NoError(t, err)
			std, err := pub.ToECDSA()
			require.NoError(t, err)
			hash := hashOf("interop")

			sig, err := k.SignHash(hash)
			require.NoError(t, err)
			r := new(big.Int).SetBytes(sig.R)
			s := new(big.Int).SetBytes(sig.S)
			assert.True(t, stdecdsa.Verify(std, hash, r, s))

			ref, err := stdecdsa.GenerateKey(stdCurve(c), rand.Reader)
			require.NoError(t, err)
			r, s, err = stdecdsa.Sign(rand.Reader, ref, hash)
			require.NoError(t, err)

			refPub, err := FromECDSA(&ref.PublicKey)
			require.NoError(t, err)
			pair := signature.Pair{R: scalarBytes(c, r), S: scalarBytes(c, s)}
			assert.True(t, refPub.VerifyHash(hash, pair))

			refKey, err := ParsePrivateKey(c, scalarBytes(c, ref.D))
			require.NoError(t, err)
			derived, err := refKey.ComputePublicKey()
			require.NoError(t, err)
			assert.True(t, derived.Equal(refPub))
		})
	}
}

func TestSigner(t *testing.T) {
	for _, c := range allCurves() {
		t.Run(c.Name(), func(t *testing.T) {
			k := mustGenerate(t, c)
			var signer crypto.Signer = k
			pub, ok := signer.Public().(*PublicKey)
			require.True(t, ok)
			std, err := pub.ToECDSA()
			require.NoError(t, err)

			hash := hashOf("signer")
			der, err := signer.Sign(rand.Reader, hash, crypto.SHA256)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(der), c.DERSignatureSize())
			assert.True(t, stdecdsa.VerifyASN1(std, hash, der))

			_, err = signer.Sign(rand.Reader, hash[:20], crypto.SHA256)
			assert.ErrorIs(t, err, ecc.ErrHashSize)

			opts := &SignerOpts{Hash: crypto.SHA256, Deterministic: true, PRF: ecc.SHA256, Format: signature.FormatCompact}
			compact, err := signer.Sign(nil, hash, opts)
			require.NoError(t, err)
			assert.Len(t, compact, c.CompactSignatureSize())

			want, err := k.SignHashDeterministic(hash, ecc.SHA256)
			require.NoError(t, err)
			assert.Equal(t, append(want.R, want.S...), compact)

			var nilOpts *SignerOpts
			_, err = signer.Sign(nil, hash, nilOpts)
			assert.NoError(t, err)
		})
	}
}
