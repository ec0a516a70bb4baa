package field

import (
	"errors"

	"gitlab.com/fennel/bn254/internal/disalloweq"
)

// Element2Size is the size of an Fp2 element in bytes.
const Element2Size = 2 * ElementSize

// Element2 is an element `a0 + a1*i` of Fp2 = Fp[i]/(i^2 + 1).  All
// arguments and receivers are allowed to alias.  The zero value is a
// valid zero element.
type Element2 struct {
	_ disalloweq.DisallowEqual

	a0, a1 Element
}

// Zero sets `fe = 0` and returns `fe`.
func (fe *Element2) Zero() *Element2 {
	fe.a0.Zero()
	fe.a1.Zero()
	return fe
}

// One sets `fe = 1` and returns `fe`.
func (fe *Element2) One() *Element2 {
	fe.a0.One()
	fe.a1.Zero()
	return fe
}

// Add sets `fe = a + b` and returns `fe`.
func (fe *Element2) Add(a, b *Element2) *Element2 {
	fe.a0.Add(&a.a0, &b.a0)
	fe.a1.Add(&a.a1, &b.a1)
	return fe
}

// Subtract sets `fe = a - b` and returns `fe`.
func (fe *Element2) Subtract(a, b *Element2) *Element2 {
	fe.a0.Subtract(&a.a0, &b.a0)
	fe.a1.Subtract(&a.a1, &b.a1)
	return fe
}

// Negate sets `fe = -a` and returns `fe`.
func (fe *Element2) Negate(a *Element2) *Element2 {
	fe.a0.Negate(&a.a0)
	fe.a1.Negate(&a.a1)
	return fe
}

// Conjugate sets `fe = a0 - a1*i` and returns `fe`.
func (fe *Element2) Conjugate(a *Element2) *Element2 {
	fe.a0.Set(&a.a0)
	fe.a1.Negate(&a.a1)
	return fe
}

// Multiply sets `fe = a * b` and returns `fe`, using the 3-multiply
// Karatsuba schoolbook with i^2 = -1.
func (fe *Element2) Multiply(a, b *Element2) *Element2 {
	var v0, v1, s, t Element
	v0.Multiply(&a.a0, &b.a0)
	v1.Multiply(&a.a1, &b.a1)
	s.Add(&a.a0, &a.a1)
	t.Add(&b.a0, &b.a1)
	s.Multiply(&s, &t)

	fe.a0.Subtract(&v0, &v1)
	fe.a1.Subtract(&s, &v0)
	fe.a1.Subtract(&fe.a1, &v1)
	return fe
}

// Square sets `fe = a * a` and returns `fe`, as
// (a0 + a1)(a0 - a1) + 2*a0*a1*i.
func (fe *Element2) Square(a *Element2) *Element2 {
	var s, d, m Element
	s.Add(&a.a0, &a.a1)
	d.Subtract(&a.a0, &a.a1)
	m.Multiply(&a.a0, &a.a1)

	fe.a0.Multiply(&s, &d)
	fe.a1.Double(&m)
	return fe
}

// Double sets `fe = a + a` and returns `fe`.
func (fe *Element2) Double(a *Element2) *Element2 {
	fe.a0.Double(&a.a0)
	fe.a1.Double(&a.a1)
	return fe
}

// MulByElement sets `fe = a * b` for `b` in the base field and
// returns `fe`.
func (fe *Element2) MulByElement(a *Element2, b *Element) *Element2 {
	fe.a0.Multiply(&a.a0, b)
	fe.a1.Multiply(&a.a1, b)
	return fe
}

// Invert sets `fe = a^-1` and returns `fe`.  The inverse of zero is
// zero.  With i^2 = -1 the norm is a0^2 + a1^2, so
// a^-1 = conj(a) / norm(a).
func (fe *Element2) Invert(a *Element2) *Element2 {
	var n, t Element
	n.Square(&a.a0)
	t.Square(&a.a1)
	n.Add(&n, &t)
	n.Invert(&n)

	fe.a0.Multiply(&a.a0, &n)
	n.Negate(&n)
	fe.a1.Multiply(&a.a1, &n)
	return fe
}

// Set sets `fe = a` and returns `fe`.
func (fe *Element2) Set(a *Element2) *Element2 {
	fe.a0.Set(&a.a0)
	fe.a1.Set(&a.a1)
	return fe
}

// SetCanonicalBytes sets `fe = src`, where `src` is the concatenation
// of the 32-byte big-endian encodings of `a0` and `a1`, and returns
// `fe`.  If either coordinate is non-canonical, SetCanonicalBytes
// returns nil and an error, and the receiver is unchanged.
func (fe *Element2) SetCanonicalBytes(src *[Element2Size]byte) (*Element2, error) {
	var t Element2
	if _, err := t.a0.SetCanonicalBytes((*[ElementSize]byte)(src[0:ElementSize])); err != nil {
		return nil, errors.New("internal/field: invalid fp2 a0 coordinate")
	}
	if _, err := t.a1.SetCanonicalBytes((*[ElementSize]byte)(src[ElementSize:])); err != nil {
		return nil, errors.New("internal/field: invalid fp2 a1 coordinate")
	}
	return fe.Set(&t), nil
}

// Bytes returns the canonical encoding of `fe` as `a0 || a1`.
func (fe *Element2) Bytes() []byte {
	dst := make([]byte, 0, Element2Size)
	dst = append(dst, fe.a0.Bytes()...)
	dst = append(dst, fe.a1.Bytes()...)
	return dst
}

// ConditionalSelect sets `fe = a` iff `ctrl == 0`, `fe = b` otherwise,
// and returns `fe`.
func (fe *Element2) ConditionalSelect(a, b *Element2, ctrl uint64) *Element2 {
	fe.a0.ConditionalSelect(&a.a0, &b.a0, ctrl)
	fe.a1.ConditionalSelect(&a.a1, &b.a1, ctrl)
	return fe
}

// Equal returns 1 iff `fe == a`, 0 otherwise.
func (fe *Element2) Equal(a *Element2) uint64 {
	return fe.a0.Equal(&a.a0) & fe.a1.Equal(&a.a1)
}

// IsZero returns 1 iff `fe == 0`, 0 otherwise.
func (fe *Element2) IsZero() uint64 {
	return fe.a0.IsZero() & fe.a1.IsZero()
}

// String returns the hex representation of `fe` as `a0 || a1`.
func (fe *Element2) String() string {
	return fe.a0.String() + fe.a1.String()
}

// MustRandomize randomizes and returns `fe`, or panics.
func (fe *Element2) MustRandomize() *Element2 {
	fe.a0.MustRandomize()
	fe.a1.MustRandomize()
	return fe
}

// BatchInvert2 inverts every element of `fes` in place with a single
// field inversion (Montgomery's trick over Fp2).  Zero elements are
// left zero.
func BatchInvert2(fes []*Element2) {
	if len(fes) == 0 {
		return
	}

	var one Element2
	one.One()

	zeroes := make([]uint64, len(fes))
	accs := make([]Element2, len(fes))
	var acc Element2
	acc.One()
	for i, fe := range fes {
		zeroes[i] = fe.IsZero()
		fe.ConditionalSelect(fe, &one, zeroes[i])
		accs[i].Set(&acc)
		acc.Multiply(&acc, fe)
	}

	var accInv Element2
	accInv.Invert(&acc)

	for i := len(fes) - 1; i >= 0; i-- {
		fe := fes[i]
		var inv Element2
		inv.Multiply(&accInv, &accs[i])
		accInv.Multiply(&accInv, fe)
		fe.ConditionalSelect(&inv, fe.Zero(), zeroes[i])
	}
}

// NewElement2 returns a new zero Element2.
func NewElement2() *Element2 {
	return &Element2{}
}

// NewElement2From creates a new Element2 from another.
func NewElement2From(other *Element2) *Element2 {
	return NewElement2().Set(other)
}

// NewElement2FromElements creates a new Element2 from base field
// coordinates.
func NewElement2FromElements(a0, a1 *Element) *Element2 {
	fe := NewElement2()
	fe.a0.Set(a0)
	fe.a1.Set(a1)
	return fe
}
