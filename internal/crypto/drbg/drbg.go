// Package drbg implements the HMAC based deterministic generator used to
// derive private keys and signing nonces.
//
// The construction follows RFC 6979 section 3.2: K and V are chained
// through HMAC, seeded from a secret seed and a personalization string.
// Both inputs are first stretched with PBKDF2 keyed by the sequence
// number, so one seed yields an independent stream per sequence.
package drbg

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// MaxCandidates bounds the number of candidates Generate tries before giving
// up. With a curve order close to a power of two a candidate is rejected
// with probability below 2^-32, so the bound is never reached in practice.
const MaxCandidates = 1024

var (
	// ErrExhausted is returned when no acceptable candidate was produced.
	ErrExhausted = errors.New("drbg: candidate limit reached")
	// ErrIterations is returned for a non-positive PBKDF2 iteration count.
	ErrIterations = errors.New("drbg: iteration count must be positive")
)

// DRBG is a keyed generator state. It is not safe for concurrent use.
type DRBG struct {
	h    func() hash.Hash
	k, v []byte
	seed []byte
	pers []byte
}

// New seeds a generator. h selects the hash underlying HMAC and PBKDF2.
func New(h func() hash.Hash, seed, personalization []byte, sequence int32, iterations int) (*DRBG, error) {
	if iterations <= 0 {
		return nil, ErrIterations
	}
	size := h().Size()

	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], uint32(sequence))

	d := &DRBG{
		h:    h,
		seed: pbkdf2.Key(seed, seq[:], iterations, size, h),
		pers: pbkdf2.Key(personalization, seq[:], iterations, size, h),
		k:    make([]byte, size),
		v:    make([]byte, size),
	}

	// K = 00 00 ..., V = 01 01 ...
	for i := range d.v {
		d.v[i] = 0x01
	}
	d.update(0x00)
	d.update(0x01)
	return d, nil
}

// update sets K = HMAC_K(V || sep || seed || sep || pers), V = HMAC_K(V).
func (d *DRBG) update(sep byte) {
	mac := hmac.New(d.h, d.k)
	mac.Write(d.v)
	mac.Write([]byte{sep})
	mac.Write(d.seed)
	mac.Write([]byte{sep})
	mac.Write(d.pers)
	d.k = mac.Sum(d.k[:0])
	d.step()
}

// step sets V = HMAC_K(V).
func (d *DRBG) step() {
	mac := hmac.New(d.h, d.k)
	mac.Write(d.v)
	d.v = mac.Sum(d.v[:0])
}

// Generate fills out with generator output until accept reports the
// candidate as usable. A rejected candidate is discarded and filling starts
// over from the next output block. accept may be nil to take the first
// candidate.
func (d *DRBG) Generate(out []byte, accept func(candidate []byte) bool) error {
	filled := 0
	for candidates := 0; candidates < MaxCandidates; {
		d.step()
		filled += copy(out[filled:], d.v)

		if filled == len(out) {
			if accept == nil || accept(out) {
				return nil
			}
			clear(out)
			filled = 0
			candidates++
		}
		d.update(0x00)
	}
	clear(out)
	return ErrExhausted
}

// Clear wipes the generator state.
func (d *DRBG) Clear() {
	clear(d.k)
	clear(d.v)
	clear(d.seed)
	clear(d.pers)
}

// Derive is a one-shot New + Generate + Clear.
func Derive(h func() hash.Hash, out, seed, personalization []byte, sequence int32, iterations int, accept func([]byte) bool) error {
	d, err := New(h, seed, personalization, sequence, iterations)
	if err != nil {
		return err
	}
	defer d.Clear()
	return d.Generate(out, accept)
}
