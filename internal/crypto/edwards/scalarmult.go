package edwards

// ScalarMult sets v = k * p for a 256-bit little-endian k given as four
// words. k need not be reduced mod L, so clamped scalars keep their effect
// on points outside the prime order subgroup. The window table is scanned
// in full for every nibble.
func (v *Point) ScalarMult(k []uint64, p *Point) *Point {
	var table [16]projNiels
	var multiple Point

	table[0] = projNiels{YpX: feOne, YmX: feOne, Z2: Element{2}}
	table[1].FromP3(p)
	multiple.Set(p)
	for i := 2; i < 16; i++ {
		multiple.Add(&multiple, p)
		table[i].FromP3(&multiple)
	}

	acc := *NewIdentityPoint()
	var entry projNiels
	for i := 63; i >= 0; i-- {
		if i != 63 {
			acc.Double(&acc)
			acc.Double(&acc)
			acc.Double(&acc)
			acc.Double(&acc)
		}
		nibble := (k[i/16] >> (4 * uint(i%16))) & 0xF
		for j := range table {
			entry.Select(&table[j], &entry, ctEq(uint64(j), nibble))
		}
		acc.addProjNiels(&acc, &entry)
	}
	*v = acc
	return v
}

// DoubleBaseMult sets v = a*A + b*B. It is meant for verification, where
// every input is public.
func (v *Point) DoubleBaseMult(a []uint64, A *Point, b []uint64) *Point {
	var aA, bB Point
	aA.ScalarMult(a, A)
	bB.BaseMult(b)
	return v.Add(&aA, &bB)
}

// MultByCofactor sets v = 8p.
func (v *Point) MultByCofactor(p *Point) *Point {
	v.Double(p)
	v.Double(v)
	return v.Double(v)
}
