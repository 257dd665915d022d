package vli

import (
	"errors"
	"io"
)

// randomTries bounds rejection sampling in Random. Each try succeeds with
// probability above 1/2, so failing all of them means a broken reader.
const randomTries = 64

// ErrRandom is returned when Random cannot produce an in-range value.
var ErrRandom = errors.New("vli: unable to generate random value in range")

// Random fills out with a uniformly random value in [1, top-1], read from
// rand. top must be non-zero.
func Random(rand io.Reader, out, top []uint64, n int) error {
	var buf [MaxBytes]byte
	numBits := NumBits(top, n)
	mask := ^uint64(0) >> uint(n*WordBits-numBits)
	for tries := 0; tries < randomTries; tries++ {
		if _, err := io.ReadFull(rand, buf[:n*WordBytes]); err != nil {
			return err
		}
		LEBytesToNative(out, buf[:], n*WordBytes)
		out[n-1] &= mask
		if !IsZero(out, n) && Cmp(top, out, n) == 1 {
			clear(buf[:])
			return nil
		}
	}
	clear(buf[:])
	Clear(out, n)
	return ErrRandom
}
