// Package vli implements fixed-width multi-word unsigned integers.
//
// Values are slices of 64-bit limbs in little-word order (index 0 holds the
// least significant word). Every function takes the number of words to
// process explicitly and never resizes its operands. Passing slices shorter
// than the requested width is a programming error and panics.
//
// Functions whose result depends on secret data visit every word regardless
// of the operand values. Go offers no compiler barrier, so this is a
// constant-time intent rather than a guarantee.
package vli

import "math/bits"

const (
	// WordBits is the width of a single limb.
	WordBits = 64
	// WordBytes is the byte width of a single limb.
	WordBytes = 8
	// MaxWords is the widest value any supported curve needs (secp384r1).
	MaxWords = 6
	// MaxBytes is MaxWords expressed in bytes.
	MaxBytes = MaxWords * WordBytes
)

// Clear zeroes the first n words of v.
func Clear(v []uint64, n int) {
	for i := 0; i < n; i++ {
		v[i] = 0
	}
}

// Set copies the first n words of src into dst.
func Set(dst, src []uint64, n int) {
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
}

// IsZero reports whether the first n words of v are all zero.
func IsZero(v []uint64, n int) bool {
	var acc uint64
	for i := 0; i < n; i++ {
		acc |= v[i]
	}
	return acc == 0
}

// Equal reports whether a and b hold the same n-word value.
func Equal(a, b []uint64, n int) bool {
	var diff uint64
	for i := 0; i < n; i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// Cmp returns +1, 0 or -1 when a is greater than, equal to or less than b.
// The comparison is a full-width subtraction followed by a borrow test, so
// it has no early exit.
func Cmp(a, b []uint64, n int) int {
	var tmp [2 * MaxWords]uint64
	neg := Sub(tmp[:], a, b, n)
	nz := 0
	if !IsZero(tmp[:], n) {
		nz = 1
	}
	Clear(tmp[:], n)
	return nz - 2*int(neg)
}

// TestBit returns the given bit of v as 0 or 1.
func TestBit(v []uint64, bit int) uint64 {
	return (v[bit/WordBits] >> (uint(bit) % WordBits)) & 1
}

// NumBits returns the bit length of the n-word value v.
func NumBits(v []uint64, n int) int {
	var top, words uint64
	for i := 0; i < n; i++ {
		m := nonZeroMask(v[i])
		top = (top &^ m) | (v[i] & m)
		words = (words &^ m) | (uint64(i+1) & m)
	}
	r := int(words)*WordBits - WordBits + bits.Len64(top)
	return r & int(nonZeroMask(words))
}

// NumWords returns the number of significant words in v.
func NumWords(v []uint64, n int) int {
	var words uint64
	for i := 0; i < n; i++ {
		m := nonZeroMask(v[i])
		words = (words &^ m) | (uint64(i+1) & m)
	}
	return int(words)
}

// Add sets r = a + b over n words and returns the carry out.
func Add(r, a, b []uint64, n int) uint64 {
	var carry uint64
	for i := 0; i < n; i++ {
		r[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return carry
}

// Sub sets r = a - b over n words and returns the borrow out.
func Sub(r, a, b []uint64, n int) uint64 {
	var borrow uint64
	for i := 0; i < n; i++ {
		r[i], borrow = bits.Sub64(a[i], b[i], borrow)
	}
	return borrow
}

// Select sets r = a when cond is 1 and r = b when cond is 0.
func Select(r, a, b []uint64, cond uint64, n int) {
	m := -cond
	for i := 0; i < n; i++ {
		r[i] = (a[i] & m) | (b[i] &^ m)
	}
}

// XorWith sets v ^= key over n words.
func XorWith(v, key []uint64, n int) {
	for i := 0; i < n; i++ {
		v[i] ^= key[i]
	}
}

// RShift1 shifts the n-word value v right by one bit in place.
func RShift1(v []uint64, n int) {
	var carry uint64
	for i := n - 1; i >= 0; i-- {
		t := v[i]
		v[i] = (t >> 1) | carry
		carry = t << (WordBits - 1)
	}
}

// LShift sets r = v << shift over n words (0 < shift < WordBits) and returns
// the bits shifted out of the top word.
func LShift(r, v []uint64, shift uint, n int) uint64 {
	var carry uint64
	for i := 0; i < n; i++ {
		t := v[i]
		r[i] = (t << shift) | carry
		carry = t >> (WordBits - shift)
	}
	return carry
}

// Mult sets r = a * b. r must hold 2n words and must not alias a or b.
func Mult(r, a, b []uint64, n int) {
	var r0, r1, r2 uint64
	for k := 0; k < n; k++ {
		for i := 0; i <= k; i++ {
			muladd(a[i], b[k-i], &r0, &r1, &r2)
		}
		r[k] = r0
		r0, r1, r2 = r1, r2, 0
	}
	for k := n; k < 2*n-1; k++ {
		for i := k + 1 - n; i < n; i++ {
			muladd(a[i], b[k-i], &r0, &r1, &r2)
		}
		r[k] = r0
		r0, r1, r2 = r1, r2, 0
	}
	r[2*n-1] = r0
}

// Square sets r = a * a. r must hold 2n words and must not alias a.
func Square(r, a []uint64, n int) {
	Mult(r, a, a, n)
}

func muladd(a, b uint64, r0, r1, r2 *uint64) {
	hi, lo := bits.Mul64(a, b)
	var c uint64
	*r0, c = bits.Add64(*r0, lo, 0)
	*r1, c = bits.Add64(*r1, hi, c)
	*r2 += c
}

// nonZeroMask returns all ones when x != 0 and zero otherwise.
func nonZeroMask(x uint64) uint64 {
	return -((x | -x) >> (WordBits - 1))
}
