// Package mask keeps secret scalars XOR-masked while they are at rest.
//
// The mask is an anti-forensic measure against memory scraping and cold
// boot dumps, not encryption: the key lives in the same process. Secrets
// are only ever unmasked inside Use, which remasks on every exit path.
package mask

import (
	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// Secret is a fixed-capacity masked scalar. The zero value is empty.
// A Secret is not safe for concurrent use.
type Secret struct {
	data  [vli.MaxWords]uint64
	key   []uint64
	words int
	set   bool
}

// New returns an empty secret of the given width masked with key.
func New(key []uint64, words int) *Secret {
	if words <= 0 || words > vli.MaxWords || len(key) < words {
		panic("mask: invalid secret width")
	}
	return &Secret{key: key, words: words}
}

// Words returns the width of the secret.
func (s *Secret) Words() int { return s.words }

// IsSet reports whether the secret holds a value.
func (s *Secret) IsSet() bool { return s.set }

// Store masks plain into the secret. plain itself is left untouched; the
// caller is responsible for clearing it.
func (s *Secret) Store(plain []uint64) {
	vli.Set(s.data[:], plain, s.words)
	vli.XorWith(s.data[:], s.key, s.words)
	s.set = true
}

// Use calls fn with the unmasked value. The slice passed to fn is only
// valid for the duration of the call and must not be retained. The secret
// is remasked when fn returns or panics.
func (s *Secret) Use(fn func(plain []uint64) error) error {
	vli.XorWith(s.data[:], s.key, s.words)
	defer vli.XorWith(s.data[:], s.key, s.words)
	return fn(s.data[:s.words])
}

// CopyTo writes the unmasked value into dst.
func (s *Secret) CopyTo(dst []uint64) {
	_ = s.Use(func(plain []uint64) error {
		vli.Set(dst, plain, s.words)
		return nil
	})
}

// Clear zeroes the secret and marks it empty.
func (s *Secret) Clear() {
	vli.Clear(s.data[:], vli.MaxWords)
	s.set = false
}

// Masked returns the raw masked words. Intended for tests.
func (s *Secret) Masked() []uint64 {
	return s.data[:s.words]
}
