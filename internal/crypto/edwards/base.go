package edwards

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/smallyu/go-ecc/internal/crypto/vli"
)

// The base point table is an 8-way comb: entry i holds
// sum over j of bit j of i times 2^(32j) * B. A 256-bit scalar is consumed
// as 32 columns of 8 bits taken 32 bits apart.
const (
	combTeeth   = 8
	combSpacing = 32
	combEntries = 1 << combTeeth
)

var (
	combOnce  sync.Once
	combTable *[combEntries]affineNiels
)

func baseTable() *[combEntries]affineNiels {
	combOnce.Do(func() {
		var teeth [combTeeth]Point
		teeth[0] = *NewGeneratorPoint()
		for j := 1; j < combTeeth; j++ {
			teeth[j] = teeth[j-1]
			for k := 0; k < combSpacing; k++ {
				teeth[j].Double(&teeth[j])
			}
		}

		var points [combEntries]Point
		points[0] = *NewIdentityPoint()
		table := new([combEntries]affineNiels)
		table[0].FromP3(&points[0])
		for i := 1; i < combEntries; i++ {
			low := lowestBit(i)
			points[i].Add(&points[i&^(1<<low)], &teeth[low])
			table[i].FromP3(&points[i])
		}
		combTable = table
	})
	return combTable
}

func lowestBit(i int) int {
	n := 0
	for i&1 == 0 {
		i >>= 1
		n++
	}
	return n
}

// ctEq returns 1 if a == b and 0 otherwise without branching.
func ctEq(a, b uint64) uint64 {
	d := a ^ b
	return 1 &^ ((d | -d) >> 63)
}

// combColumn gathers bit 32j + 31 - k of s for every tooth j.
func combColumn(s []uint64, k int) uint64 {
	var idx uint64
	for j := 0; j < combTeeth; j++ {
		idx |= vli.TestBit(s, combSpacing*j+combSpacing-1-k) << j
	}
	return idx
}

// comb sets v = s * B for a 256-bit s, starting from the identity scaled by
// z. Every table entry is read for every column.
func (v *Point) comb(s []uint64, z *Element) *Point {
	table := baseTable()
	acc := Point{Y: *z, Z: *z}

	var entry affineNiels
	for k := 0; k < combSpacing; k++ {
		if k > 0 {
			acc.Double(&acc)
		}
		idx := combColumn(s, k)
		for i := range table {
			entry.Select(&table[i], &entry, ctEq(uint64(i), idx))
		}
		acc.addAffineNiels(&acc, &entry)
	}
	*v = acc
	return v
}

// BaseMult sets v = s * B for a public 256-bit little-endian s.
func (v *Point) BaseMult(s []uint64) *Point {
	one := feOne
	return v.comb(s, &one)
}

// Blinding masks the secret scalar of a base point multiplication with a
// per-instance random offset: s*B = (s + b)*B + (-b*B).
type Blinding struct {
	blind Scalar
	bp    projNiels
}

// NewBlinding draws a fresh blinding offset from rnd, or crypto/rand when
// rnd is nil.
func NewBlinding(rnd io.Reader) (*Blinding, error) {
	var wide [64]byte
	if rnd == nil {
		rnd = rand.Reader
	}

	b := &Blinding{}
	for b.blind.IsZero() {
		if _, err := io.ReadFull(rnd, wide[:]); err != nil {
			return nil, errors.Wrap(err, "edwards: blinding")
		}
		if _, err := b.blind.SetUniformBytes(wide[:]); err != nil {
			return nil, err
		}
	}
	clear(wide[:])

	var neg Scalar
	var p Point
	neg.Negate(&b.blind)
	p.BaseMult(neg[:])
	b.bp.FromP3(&p)
	neg.Clear()
	return b, nil
}

// BaseMult sets v = s * B for a secret s. The accumulator starts from a
// random projective Z drawn from rnd, or crypto/rand when rnd is nil.
func (b *Blinding) BaseMult(v *Point, s *Scalar, rnd io.Reader) error {
	var t Scalar
	var z Element
	if rnd == nil {
		rnd = rand.Reader
	}
	if err := vli.Random(rnd, z[:], params().P.Value(), 4); err != nil {
		return errors.Wrap(err, "edwards: random Z")
	}

	t.Add(s, &b.blind)
	v.comb(t[:], &z)
	v.addProjNiels(v, &b.bp)
	t.Clear()
	return nil
}
