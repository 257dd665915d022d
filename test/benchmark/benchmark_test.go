package benchmark

import (
	"crypto/ed25519"
	"testing"

	"github.com/smallyu/go-ecc/internal/crypto/curves"
	"github.com/smallyu/go-ecc/internal/family"
	"github.com/smallyu/go-ecc/pkg/ecc"
	"github.com/smallyu/go-ecc/pkg/eddsa"
	"github.com/smallyu/go-ecc/pkg/signature"
)

var msgHash = ecc.SHA256.Sum([]byte("benchmark message"))

// setup returns a key pair on every curve.
func setup(b *testing.B) ([]ecc.PrivateKey, []ecc.PublicKey) {
	b.Helper()
	var keys []ecc.PrivateKey
	var pubs []ecc.PublicKey
	for _, name := range curves.Names() {
		f, err := family.ByName(name)
		if err != nil {
			b.Fatal(err)
		}
		k, err := f.Generate()
		if err != nil {
			b.Fatal(err)
		}
		pub, err := k.PublicKey()
		if err != nil {
			b.Fatal(err)
		}
		keys = append(keys, k)
		pubs = append(pubs, pub)
	}
	return keys, pubs
}

func BenchmarkGenerateKey(b *testing.B) {
	for _, name := range curves.Names() {
		f, err := family.ByName(name)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				k, err := f.Generate()
				if err != nil {
					b.Fatal(err)
				}
				if _, err := k.PublicKey(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSignHash(b *testing.B) {
	keys, _ := setup(b)
	for _, k := range keys {
		b.Run(k.Curve().Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := k.SignHash(msgHash); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSignHashDeterministic(b *testing.B) {
	keys, _ := setup(b)
	for _, k := range keys {
		b.Run(k.Curve().Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := k.SignHashDeterministic(msgHash, ecc.SHA256); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkVerifyHash(b *testing.B) {
	keys, pubs := setup(b)
	for i, k := range keys {
		sig, err := k.SignHash(msgHash)
		if err != nil {
			b.Fatal(err)
		}
		pub := pubs[i]
		b.Run(k.Curve().Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if !pub.VerifyHash(msgHash, sig) {
					b.Fatal("verification failed")
				}
			}
		})
	}
}

func BenchmarkSharedSecret(b *testing.B) {
	keys, pubs := setup(b)
	for i, k := range keys {
		pub := pubs[i]
		b.Run(k.Curve().Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := k.SharedSecret(pub); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDERCodec(b *testing.B) {
	keys, _ := setup(b)
	k := keys[0]
	sig, err := k.SignHash(msgHash)
	if err != nil {
		b.Fatal(err)
	}
	codec := signature.NewDER(k.Curve().ScalarSize())
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		enc, err := codec.Encode(sig)
		if err != nil {
			b.Fatal(err)
		}
		if _, err := codec.Decode(enc); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkEd25519Reference measures crypto/ed25519 for comparison with
// the Ed25519 numbers above.
func BenchmarkEd25519Reference(b *testing.B) {
	k, err := eddsa.GenerateKey(eddsa.Ed25519(), nil)
	if err != nil {
		b.Fatal(err)
	}
	pub, err := k.ComputePublicKey()
	if err != nil {
		b.Fatal(err)
	}
	sig, err := k.Sign(nil, msgHash, nil)
	if err != nil {
		b.Fatal(err)
	}
	std := pub.ToEd25519()

	b.Run("verify", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if !ed25519.Verify(std, msgHash, sig) {
				b.Fatalf("verification failed for %x", sig)
			}
		}
	})
}
