package edwards

import (
	"errors"
)

// Point is a point on edwards25519 in extended coordinates. The zero value
// is not a valid point; use NewIdentityPoint or NewGeneratorPoint.
type Point struct {
	X, Y, Z, T Element
}

// affineNiels is the precomputed form (y+x, y-x, 2d*x*y) of an affine point.
type affineNiels struct {
	YpX, YmX, T2d Element
}

// projNiels is the precomputed form (Y+X, Y-X, 2d*T, 2Z) of an extended point.
type projNiels struct {
	YpX, YmX, T2d, Z2 Element
}

var errInvalidEncoding = errors.New("edwards: invalid point encoding")

// NewIdentityPoint returns the neutral element (0, 1).
func NewIdentityPoint() *Point {
	return &Point{Y: feOne, Z: feOne}
}

// NewGeneratorPoint returns the canonical base point B.
func NewGeneratorPoint() *Point {
	c := params()
	return &Point{X: Element(c.BX), Y: Element(c.BY), Z: feOne, T: Element(c.BT)}
}

// Set sets v = u.
func (v *Point) Set(u *Point) *Point {
	*v = *u
	return v
}

// SetBytes decodes a 32-byte compressed point: y little-endian with the sign
// of x in the top bit. Encodings with y not below p, with no matching x, or
// with the sign bit set on x = 0 are rejected.
func (v *Point) SetBytes(b []byte) (*Point, error) {
	var y, u, w, x, y2 Element
	if len(b) != 32 {
		return nil, errInvalidEncoding
	}
	if _, err := y.SetBytes(b); err != nil {
		return nil, errInvalidEncoding
	}

	// x^2 = (y^2 - 1) / (d y^2 + 1)
	d := Element(params().D)
	y2.Square(&y)
	u.Subtract(&y2, &feOne)
	w.Multiply(&y2, &d)
	w.Add(&w, &feOne)
	if x.SqrtRatio(&u, &w) == 0 {
		return nil, errInvalidEncoding
	}

	sign := uint64(b[31] >> 7)
	if x.Equal(&feZero) == 1 && sign == 1 {
		return nil, errInvalidEncoding
	}
	var negX Element
	negX.Negate(&x)
	x.Select(&negX, &x, sign^x.IsNegative())

	v.X = x
	v.Y = y
	v.Z = feOne
	v.T.Multiply(&x, &y)
	return v, nil
}

// Bytes returns the 32-byte compressed encoding of v.
func (v *Point) Bytes() []byte {
	var zInv, x, y Element
	zInv.Invert(&v.Z)
	x.Multiply(&v.X, &zInv)
	y.Multiply(&v.Y, &zInv)

	out := y.Bytes()
	out[31] |= byte(x.IsNegative() << 7)
	return out
}

// Equal returns 1 if v and u represent the same point, 0 otherwise.
func (v *Point) Equal(u *Point) uint64 {
	var t1, t2, t3, t4 Element
	t1.Multiply(&v.X, &u.Z)
	t2.Multiply(&u.X, &v.Z)
	t3.Multiply(&v.Y, &u.Z)
	t4.Multiply(&u.Y, &v.Z)
	return t1.Equal(&t2) & t3.Equal(&t4)
}

// IsIdentity reports whether v is the neutral element.
func (v *Point) IsIdentity() bool {
	return v.Equal(NewIdentityPoint()) == 1
}

// Negate sets v = -p.
func (v *Point) Negate(p *Point) *Point {
	v.X.Negate(&p.X)
	v.Y = p.Y
	v.Z = p.Z
	v.T.Negate(&p.T)
	return v
}

// Add sets v = p + q.
func (v *Point) Add(p, q *Point) *Point {
	var qn projNiels
	qn.FromP3(q)
	return v.addProjNiels(p, &qn)
}

// Subtract sets v = p - q.
func (v *Point) Subtract(p, q *Point) *Point {
	var neg Point
	neg.Negate(q)
	return v.Add(p, &neg)
}

// Double sets v = 2p. With a = -1:
// A = X^2, B = Y^2, C = 2Z^2, D = -A, E = (X+Y)^2 - A - B,
// G = D + B, F = G - C, H = D - B.
func (v *Point) Double(p *Point) *Point {
	var a, b, c, d, e, f, g, h Element

	a.Square(&p.X)
	b.Square(&p.Y)
	c.Square(&p.Z)
	c.Add(&c, &c)
	d.Negate(&a)
	e.Add(&p.X, &p.Y)
	e.Square(&e)
	e.Subtract(&e, &a)
	e.Subtract(&e, &b)
	g.Add(&d, &b)
	f.Subtract(&g, &c)
	h.Subtract(&d, &b)

	v.X.Multiply(&e, &f)
	v.Y.Multiply(&g, &h)
	v.T.Multiply(&e, &h)
	v.Z.Multiply(&f, &g)
	return v
}

// addAffineNiels sets v = p + q for a precomputed affine addend:
// A = (Y1-X1)(y2-x2), B = (Y1+X1)(y2+x2), C = T1*2d*x2*y2, D = 2Z1.
func (v *Point) addAffineNiels(p *Point, q *affineNiels) *Point {
	var a, b, c, d, e, f, g, h, t Element

	t.Subtract(&p.Y, &p.X)
	a.Multiply(&t, &q.YmX)
	t.Add(&p.Y, &p.X)
	b.Multiply(&t, &q.YpX)
	c.Multiply(&p.T, &q.T2d)
	d.Add(&p.Z, &p.Z)
	return v.finishAdd(&a, &b, &c, &d, &e, &f, &g, &h)
}

// addProjNiels is addAffineNiels with D = Z1*2Z2.
func (v *Point) addProjNiels(p *Point, q *projNiels) *Point {
	var a, b, c, d, e, f, g, h, t Element

	t.Subtract(&p.Y, &p.X)
	a.Multiply(&t, &q.YmX)
	t.Add(&p.Y, &p.X)
	b.Multiply(&t, &q.YpX)
	c.Multiply(&p.T, &q.T2d)
	d.Multiply(&p.Z, &q.Z2)
	return v.finishAdd(&a, &b, &c, &d, &e, &f, &g, &h)
}

// finishAdd completes an addition from A, B, C and D:
// E = B - A, F = D - C, G = D + C, H = B + A.
func (v *Point) finishAdd(a, b, c, d, e, f, g, h *Element) *Point {
	e.Subtract(b, a)
	f.Subtract(d, c)
	g.Add(d, c)
	h.Add(b, a)

	v.X.Multiply(e, f)
	v.Y.Multiply(g, h)
	v.T.Multiply(e, h)
	v.Z.Multiply(f, g)
	return v
}

// FromP3 sets v to the projective Niels form of p.
func (v *projNiels) FromP3(p *Point) *projNiels {
	d2 := Element(params().D2)
	v.YpX.Add(&p.Y, &p.X)
	v.YmX.Subtract(&p.Y, &p.X)
	v.T2d.Multiply(&p.T, &d2)
	v.Z2.Add(&p.Z, &p.Z)
	return v
}

// Select sets v = a if cond == 1 and v = b if cond == 0.
func (v *projNiels) Select(a, b *projNiels, cond uint64) *projNiels {
	v.YpX.Select(&a.YpX, &b.YpX, cond)
	v.YmX.Select(&a.YmX, &b.YmX, cond)
	v.T2d.Select(&a.T2d, &b.T2d, cond)
	v.Z2.Select(&a.Z2, &b.Z2, cond)
	return v
}

// FromP3 sets v to the affine Niels form of p. It inverts Z and is only used
// while building tables.
func (v *affineNiels) FromP3(p *Point) *affineNiels {
	var zInv, x, y, xy Element
	d2 := Element(params().D2)
	zInv.Invert(&p.Z)
	x.Multiply(&p.X, &zInv)
	y.Multiply(&p.Y, &zInv)

	v.YpX.Add(&y, &x)
	v.YmX.Subtract(&y, &x)
	xy.Multiply(&x, &y)
	v.T2d.Multiply(&xy, &d2)
	return v
}

// Select sets v = a if cond == 1 and v = b if cond == 0.
func (v *affineNiels) Select(a, b *affineNiels, cond uint64) *affineNiels {
	v.YpX.Select(&a.YpX, &b.YpX, cond)
	v.YmX.Select(&a.YmX, &b.YmX, cond)
	v.T2d.Select(&a.T2d, &b.T2d, cond)
	return v
}
