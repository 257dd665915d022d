package vli

import "math/bits"

// Reducer reduces a 2*words product into a value below the modulus.
// A curve whose prime has a special shape supplies its own; everything
// else falls back to MMod.
type Reducer func(result, product []uint64)

// Modulus bundles a modulus with its word width and reduction routine.
// It is immutable once built and safe for concurrent use.
type Modulus struct {
	m      [MaxWords]uint64
	words  int
	bits   int
	reduce Reducer
}

// NewModulus builds a Modulus from its little-word-order limbs. A nil
// reducer selects the generic shift-subtract reduction.
func NewModulus(m []uint64, reduce Reducer) *Modulus {
	if len(m) == 0 || len(m) > MaxWords {
		panic("vli: modulus width out of range")
	}
	mod := &Modulus{words: len(m)}
	copy(mod.m[:], m)
	mod.bits = NumBits(mod.m[:], mod.words)
	if reduce == nil {
		reduce = func(result, product []uint64) {
			MMod(result, product, mod.m[:], mod.words)
		}
	}
	mod.reduce = reduce
	return mod
}

// Words returns the width of the modulus in words.
func (m *Modulus) Words() int { return m.words }

// Bits returns the bit length of the modulus.
func (m *Modulus) Bits() int { return m.bits }

// Value returns the modulus limbs. Callers must not modify them.
func (m *Modulus) Value() []uint64 { return m.m[:m.words] }

// Add sets r = (a + b) mod m for a, b < m.
func (m *Modulus) Add(r, a, b []uint64) {
	ModAdd(r, a, b, m.m[:], m.words)
}

// Sub sets r = (a - b) mod m for a, b < m.
func (m *Modulus) Sub(r, a, b []uint64) {
	ModSub(r, a, b, m.m[:], m.words)
}

// Mult sets r = (a * b) mod m. r may alias a or b.
func (m *Modulus) Mult(r, a, b []uint64) {
	var product [2 * MaxWords]uint64
	Mult(product[:], a, b, m.words)
	m.reduce(r, product[:])
	Clear(product[:], 2*m.words)
}

// Square sets r = a^2 mod m. r may alias a.
func (m *Modulus) Square(r, a []uint64) {
	var product [2 * MaxWords]uint64
	Square(product[:], a, m.words)
	m.reduce(r, product[:])
	Clear(product[:], 2*m.words)
}

// Reduce sets r = product mod m for a 2*words product.
func (m *Modulus) Reduce(r, product []uint64) {
	m.reduce(r, product)
}

// Exp sets r = a^e mod m. The ladder runs over the full bit width of the
// modulus and multiplies on every step, selecting the result by mask, so its
// timing does not depend on a or e.
func (m *Modulus) Exp(r, a, e []uint64) {
	var acc, t, base [MaxWords]uint64
	n := m.words
	Set(base[:], a, n)
	acc[0] = 1
	for bit := n*WordBits - 1; bit >= 0; bit-- {
		m.Square(acc[:], acc[:])
		m.Mult(t[:], acc[:], base[:])
		set := TestBit(e, bit)
		Select(acc[:], t[:], acc[:], set, n)
	}
	Set(r, acc[:], n)
	Clear(acc[:], n)
	Clear(t[:], n)
	Clear(base[:], n)
}

// Inv sets r = a^-1 mod m using Fermat's little theorem. m must be prime
// and a must be non-zero; neither is checked.
func (m *Modulus) Inv(r, a []uint64) {
	var e, two [MaxWords]uint64
	two[0] = 2
	Sub(e[:], m.m[:], two[:], m.words)
	m.Exp(r, a, e[:])
}

// ModAdd sets r = (a + b) mod mod for a, b < mod.
func ModAdd(r, a, b, mod []uint64, n int) {
	var t [MaxWords]uint64
	carry := Add(r, a, b, n)
	borrow := Sub(t[:], r, mod, n)
	// keep the reduced value on overflow or when r >= mod
	Select(r, t[:], r, carry|(borrow^1), n)
}

// ModSub sets r = (a - b) mod mod for a, b < mod.
func ModSub(r, a, b, mod []uint64, n int) {
	var t [MaxWords]uint64
	borrow := Sub(r, a, b, n)
	Add(t[:], r, mod, n)
	Select(r, t[:], r, borrow, n)
}

// ModMult sets r = (a * b) mod mod using the generic reduction.
func ModMult(r, a, b, mod []uint64, n int) {
	var product [2 * MaxWords]uint64
	Mult(product[:], a, b, n)
	MMod(r, product[:], mod, n)
	Clear(product[:], 2*n)
}

// MMod sets result = product mod mod, where product holds 2n words.
// product is left untouched. The number of subtraction rounds depends
// only on the bit length of mod.
func MMod(result, product, mod []uint64, n int) {
	var modMultiple, tmp, prod [2 * MaxWords]uint64
	v := [2][]uint64{tmp[:], prod[:]}
	Set(prod[:], product, 2*n)

	// shift mod so its top bit sits at bit 2n*64-1
	shift := 2*n*WordBits - NumBits(mod, n)
	wordShift := shift / WordBits
	bitShift := uint(shift % WordBits)
	mw := NumWords(mod, n)
	if bitShift > 0 {
		LShift(modMultiple[wordShift:], mod, bitShift, mw)
	} else {
		Set(modMultiple[wordShift:], mod, mw)
	}

	index := uint64(1)
	for ; shift >= 0; shift-- {
		var borrow uint64
		for i := 0; i < 2*n; i++ {
			v[1-index][i], borrow = bits.Sub64(v[index][i], modMultiple[i], borrow)
		}
		// switch to the difference when it did not go negative
		index = (index ^ borrow) ^ 1
		RShift1(modMultiple[:], n)
		modMultiple[n-1] |= modMultiple[n] << (WordBits - 1)
		RShift1(modMultiple[n:], n)
	}
	Set(result, v[index], n)
	Clear(tmp[:], 2*n)
	Clear(prod[:], 2*n)
}
