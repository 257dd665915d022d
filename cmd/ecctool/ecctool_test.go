package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/family"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/signature"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err, "ecctool %s", strings.Join(args, " "))
	return out
}

// keyPair splits the "private <hex>\npublic <hex>" output.
func keyPair(t *testing.T, out string) (string, string) {
	t.Helper()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	priv := strings.Fields(lines[0])
	pub := strings.Fields(lines[1])
	require.Equal(t, "private", priv[0])
	require.Equal(t, "public", pub[0])
	return priv[1], pub[1]
}

func TestKeygenAndPubkey(t *testing.T) {
	for _, name := range curves.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := curves.ByName(name)
			require.NoError(t, err)

			priv, pub := keyPair(t, mustRun(t, "keygen", "--curve", name))
			assert.Len(t, priv, 2*c.PrivateKeySize())
			assert.Len(t, pub, 2*c.PublicKeySize())

			assert.Equal(t, pub, mustRun(t, "pubkey", "--curve", name, priv))
			compressed := mustRun(t, "pubkey", "--curve", name, "--compressed", priv)
			assert.Len(t, compressed, 2*c.CompressedPublicKeySize())
		})
	}
}

func TestSignVerify(t *testing.T) {
	for _, name := range curves.Names() {
		for _, format := range []string{"compact", "der"} {
			t.Run(name+"/"+format, func(t *testing.T) {
				priv, pub := keyPair(t, mustRun(t, "keygen", "--curve", name))
				common := []string{"--curve", name, "--format", format}

				sig := mustRun(t, append([]string{"sign"}, append(common, priv, "hello")...)...)
				assert.Equal(t, "valid", mustRun(t, append([]string{"verify"}, append(common, pub, "hello", sig)...)...))

				_, err := run(t, append([]string{"verify"}, append(common, pub, "hellO", sig)...)...)
				assert.ErrorIs(t, err, ecc.ErrInvalidSignature)
			})
		}
	}
}

func TestSignDeterministic(t *testing.T) {
	priv, pub := keyPair(t, mustRun(t, "keygen", "--curve", "secp256r1"))
	args := []string{"sign", "--curve", "secp256r1", "--deterministic", "--hash", "sha384", priv, "message"}
	a := mustRun(t, args...)
	assert.Equal(t, a, mustRun(t, args...))
	assert.Equal(t, "valid", mustRun(t, "verify", "--curve", "secp256r1", "--hash", "sha384", pub, "message", a))

	// a prehashed message is signed as given
	digest := hex.EncodeToString(ecc.SHA384.Sum([]byte("message")))
	b := mustRun(t, "sign", "--curve", "secp256r1", "--deterministic", "--hash", "sha384", "--prehashed", priv, digest)
	assert.Equal(t, a, b)

	// blake2b cannot key the nonce generator
	_, err := run(t, "sign", "--curve", "secp256r1", "--deterministic", "--hash", "blake2b-256", priv, "message")
	assert.ErrorIs(t, err, ecc.ErrUnsupportedHash)
}

func TestDerive(t *testing.T) {
	out := mustRun(t, "derive", "--curve", "ed25519", "--hash", "sha256", "--iterations", "16",
		"--personalization", "pers", "--sequence", "1", hex.EncodeToString([]byte("seed")))
	priv, _ := keyPair(t, out)
	assert.Equal(t, "68298577dcd2ad7b556c7d179bf0e58618b3c3dff76d9fbf8aca7b5f44bd1f78", priv)

	again := mustRun(t, "derive", "--curve", "secp256k1", "--sequence", "7", "00ff")
	assert.Equal(t, again, mustRun(t, "derive", "--curve", "secp256k1", "--sequence", "7", "00ff"))
	assert.NotEqual(t, again, mustRun(t, "derive", "--curve", "secp256k1", "--sequence", "8", "00ff"))

	_, err := run(t, "derive", "--iterations", "0", "00")
	assert.Error(t, err)
}

func TestECDH(t *testing.T) {
	for _, name := range curves.Names() {
		t.Run(name, func(t *testing.T) {
			a, pubA := keyPair(t, mustRun(t, "keygen", "--curve", name))
			b, pubB := keyPair(t, mustRun(t, "keygen", "--curve", name, "--compressed"))

			ab := mustRun(t, "ecdh", "--curve", name, a, pubB)
			ba := mustRun(t, "ecdh", "--curve", name, b, pubA)
			assert.Equal(t, ab, ba)

			raw, err := hex.DecodeString(ab)
			require.NoError(t, err)
			hashed := mustRun(t, "ecdh", "--curve", name, "--hashed", "--hash", "sha512", a, pubB)
			assert.Equal(t, hex.EncodeToString(ecc.SHA512.Sum(raw)), hashed)
		})
	}
}

func TestTweak(t *testing.T) {
	priv, pub := keyPair(t, mustRun(t, "keygen", "--curve", "secp256k1"))
	tweak := strings.Repeat("00", 31) + "05"

	tweakedPriv, tweakedPub := keyPair(t, mustRun(t, "tweak", "--curve", "secp256k1", priv, tweak))
	assert.NotEqual(t, priv, tweakedPriv)
	assert.Equal(t, tweakedPub, mustRun(t, "tweak", "--curve", "secp256k1", "--public", pub, tweak))

	edPriv, edPub := keyPair(t, mustRun(t, "keygen", "--curve", "ed25519"))
	tweaked, _ := keyPair(t, mustRun(t, "tweak", "--curve", "ed25519", edPriv, tweak))
	assert.Len(t, tweaked, 64)
	_, err := run(t, "tweak", "--curve", "ed25519", "--public", edPub, tweak)
	assert.ErrorIs(t, err, family.ErrNoPublicTweak)
}

func TestConfigFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("curve: ed25519\nformat: der\nhash: sha512\n"), 0o600))

	priv, pub := keyPair(t, mustRun(t, "keygen", "--config", path))
	assert.Len(t, priv, 64)

	sig := mustRun(t, "sign", "--config", path, "--deterministic", priv, "abc")
	raw, err := hex.DecodeString(sig)
	require.NoError(t, err)
	_, err = signature.NewDER(32).Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "valid", mustRun(t, "verify", "--config", path, pub, "abc", sig))

	// flags win over the file
	priv, _ = keyPair(t, mustRun(t, "keygen", "--config", path, "--curve", "secp224r1"))
	assert.Len(t, priv, 56)

	t.Setenv("ECC_CURVE", "secp384r1")
	priv, _ = keyPair(t, mustRun(t, "keygen"))
	assert.Len(t, priv, 96)

	t.Setenv("ECC_LOG_LEVEL", "loud")
	_, err = run(t, "keygen")
	assert.Error(t, err)
}

func TestRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown curve", []string{"keygen", "--curve", "secp521r1"}},
		{"unknown hash", []string{"keygen", "--hash", "md5"}},
		{"unknown format", []string{"keygen", "--format", "pem"}},
		{"bad hex", []string{"pubkey", "zz"}},
		{"short key", []string{"pubkey", "0102"}},
		{"missing args", []string{"sign", "00"}},
		{"missing config", []string{"keygen", "--config", "/nonexistent/ecc.yaml"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			assert.Error(t, err)
		})
	}
}
