package ecc

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Hash is a named hash function preset. Presets with PRF set may key the
// HMAC used by deterministic derivation; the others only pre-hash messages
// and keys.
type Hash struct {
	Name string
	New  func() hash.Hash
	Size int
	PRF  bool
}

// Sum returns the digest of data.
func (h Hash) Sum(data []byte) []byte {
	d := h.New()
	d.Write(data)
	return d.Sum(nil)
}

func newBlake2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

func newBlake2b512() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		panic(err)
	}
	return h
}

var (
	SHA224      = Hash{Name: "sha224", New: sha256.New224, Size: sha256.Size224, PRF: true}
	SHA256      = Hash{Name: "sha256", New: sha256.New, Size: sha256.Size, PRF: true}
	SHA384      = Hash{Name: "sha384", New: sha512.New384, Size: sha512.Size384, PRF: true}
	SHA512      = Hash{Name: "sha512", New: sha512.New, Size: sha512.Size, PRF: true}
	SHA3_256    = Hash{Name: "sha3-256", New: sha3.New256, Size: 32, PRF: true}
	SHA3_512    = Hash{Name: "sha3-512", New: sha3.New512, Size: 64, PRF: true}
	BLAKE2b_256 = Hash{Name: "blake2b-256", New: newBlake2b256, Size: blake2b.Size256}
	BLAKE2b_512 = Hash{Name: "blake2b-512", New: newBlake2b512, Size: blake2b.Size}
)

var hashes = map[string]Hash{}

func init() {
	for _, h := range []Hash{SHA224, SHA256, SHA384, SHA512, SHA3_256, SHA3_512, BLAKE2b_256, BLAKE2b_512} {
		hashes[h.Name] = h
	}
}

// HashByName looks up a preset. Names are case-insensitive and accept
// underscores in place of dashes.
func HashByName(name string) (Hash, error) {
	key := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	if h, ok := hashes[key]; ok {
		return h, nil
	}
	return Hash{}, fmt.Errorf("unknown hash %q", name)
}

// HashNames lists the preset names in sorted order.
func HashNames() []string {
	names := make([]string, 0, len(hashes))
	for name := range hashes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
