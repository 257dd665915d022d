package main

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/pkg/ecc"
)

func invoke(t *testing.T, h handler, req request) response {
	t.Helper()
	in, err := json.Marshal(req)
	require.NoError(t, err)
	var resp response
	require.NoError(t, json.Unmarshal([]byte(call(h, string(in))), &resp))
	return resp
}

func mustInvoke(t *testing.T, h handler, req request) string {
	t.Helper()
	resp := invoke(t, h, req)
	require.Empty(t, resp.Error)
	return resp.Result
}

func TestSignVerifyECDH(t *testing.T) {
	hash := hex.EncodeToString(ecc.SHA256.Sum([]byte("wasm")))
	for _, name := range curves.Names() {
		t.Run(name, func(t *testing.T) {
			a := mustInvoke(t, generateKey, request{Curve: name})
			b := mustInvoke(t, generateKey, request{Curve: name})
			pubA := mustInvoke(t, publicKeyOf, request{Curve: name, PrivateKey: a})
			pubB := mustInvoke(t, publicKeyOf, request{Curve: name, PrivateKey: b, Compressed: true})

			for _, format := range []string{"", "der"} {
				sig := mustInvoke(t, sign, request{Curve: name, PrivateKey: a, Hash: hash, Format: format, Deterministic: true})
				resp := invoke(t, verify, request{Curve: name, PublicKey: pubA, Hash: hash, Signature: sig, Format: format})
				require.NotNil(t, resp.Valid)
				assert.True(t, *resp.Valid)

				resp = invoke(t, verify, request{Curve: name, PublicKey: pubB, Hash: hash, Signature: sig, Format: format})
				require.NotNil(t, resp.Valid)
				assert.False(t, *resp.Valid)
			}

			ab := mustInvoke(t, ecdh, request{Curve: name, PrivateKey: a, PublicKey: pubB})
			ba := mustInvoke(t, ecdh, request{Curve: name, PrivateKey: b, PublicKey: pubA})
			assert.Equal(t, ab, ba)
		})
	}
}

func TestRequestErrors(t *testing.T) {
	assert.Contains(t, call(sign, "{"), "invalid request json")
	assert.Contains(t, invoke(t, sign, request{Curve: "nope"}).Error, "unknown curve")
	assert.Contains(t, invoke(t, sign, request{Curve: "secp256k1"}).Error, "missing privateKey")
	assert.Contains(t, invoke(t, publicKeyOf, request{Curve: "ed25519", PrivateKey: "xyz"}).Error, "invalid privateKey")

	k := mustInvoke(t, generateKey, request{Curve: "secp256k1"})
	resp := invoke(t, sign, request{Curve: "secp256k1", PrivateKey: k, Hash: "00", Format: "pem"})
	assert.NotEmpty(t, resp.Error)
	resp = invoke(t, sign, request{Curve: "secp256k1", PrivateKey: k, Hash: "00", Deterministic: true, PRF: "blake2b-512"})
	assert.Contains(t, resp.Error, ecc.ErrUnsupportedHash.Error())
}
