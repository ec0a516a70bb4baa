// Package field implements arithmetic in the fields underlying the
// BN254 curve pair: the base field Fp with
// p = 36u^4 + 36u^3 + 24u^2 + 6u + 1, u = 0x44e992b44a6909f1, and its
// quadratic extension Fp2 = Fp[i]/(i^2 + 1).
//
// The limb-level Montgomery arithmetic is provided by gnark-crypto's
// generated fp package; this package wraps it in the constant-time
// element API the rest of the module is written against.
package field

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"

	"gitlab.com/fennel/bn254/internal/disalloweq"
	"gitlab.com/fennel/bn254/internal/helpers"
)

// ElementSize is the size of a field element in bytes.
const ElementSize = 32

// Element is an element of Fp.  All arguments and receivers are allowed
// to alias.  The zero value is a valid zero element.
type Element struct {
	_ disalloweq.DisallowEqual
	m fp.Element
}

// Zero sets `fe = 0` and returns `fe`.
func (fe *Element) Zero() *Element {
	fe.m.SetZero()
	return fe
}

// One sets `fe = 1` and returns `fe`.
func (fe *Element) One() *Element {
	fe.m.SetOne()
	return fe
}

// Add sets `fe = a + b` and returns `fe`.
func (fe *Element) Add(a, b *Element) *Element {
	fe.m.Add(&a.m, &b.m)
	return fe
}

// Subtract sets `fe = a - b` and returns `fe`.
func (fe *Element) Subtract(a, b *Element) *Element {
	fe.m.Sub(&a.m, &b.m)
	return fe
}

// Negate sets `fe = -a` and returns `fe`.
func (fe *Element) Negate(a *Element) *Element {
	fe.m.Neg(&a.m)
	return fe
}

// Multiply sets `fe = a * b` and returns `fe`.
func (fe *Element) Multiply(a, b *Element) *Element {
	fe.m.Mul(&a.m, &b.m)
	return fe
}

// Square sets `fe = a * a` and returns `fe`.
func (fe *Element) Square(a *Element) *Element {
	fe.m.Square(&a.m)
	return fe
}

// Double sets `fe = a + a` and returns `fe`.
func (fe *Element) Double(a *Element) *Element {
	fe.m.Double(&a.m)
	return fe
}

// Invert sets `fe = a^-1` and returns `fe`.  The inverse of zero is
// zero.
func (fe *Element) Invert(a *Element) *Element {
	fe.m.Inverse(&a.m)
	return fe
}

// Set sets `fe = a` and returns `fe`.
func (fe *Element) Set(a *Element) *Element {
	fe.m.Set(&a.m)
	return fe
}

// SetCanonicalBytes sets `fe = src`, where `src` is a 32-byte big-endian
// encoding of `fe`, and returns `fe`.  If `src` is not a canonical
// encoding of `fe`, SetCanonicalBytes returns nil and an error, and the
// receiver is unchanged.
func (fe *Element) SetCanonicalBytes(src *[ElementSize]byte) (*Element, error) {
	var v big.Int
	v.SetBytes(src[:])
	if v.Cmp(fp.Modulus()) >= 0 {
		return nil, errors.New("internal/field: value out of range")
	}
	fe.m.SetBytes(src[:])
	return fe, nil
}

// SetWideBytes sets `fe = src mod p`, where `src` is a big-endian byte
// string of length in the range `[32, 64]`-bytes, and returns `fe`.
func (fe *Element) SetWideBytes(src []byte) *Element {
	if l := len(src); l < 32 || l > 64 {
		panic("internal/field: invalid wide byte length")
	}
	fe.m.SetBytes(src)
	return fe
}

// Bytes returns the canonical big-endian encoding of `fe`.
func (fe *Element) Bytes() []byte {
	dst := fe.m.Bytes()
	return dst[:]
}

// ConditionalSelect sets `fe = a` iff `ctrl == 0`, `fe = b` otherwise,
// and returns `fe`.
func (fe *Element) ConditionalSelect(a, b *Element, ctrl uint64) *Element {
	fe.m.Select(int(ctrl&1), &a.m, &b.m)
	return fe
}

// ConditionalNegate sets `fe = -fe` iff `ctrl == 1` and returns `fe`.
// Both execution paths do the same work.
func (fe *Element) ConditionalNegate(ctrl uint64) *Element {
	var neg fp.Element
	neg.Neg(&fe.m)
	fe.m.Select(int(ctrl&1), &fe.m, &neg)
	return fe
}

// Equal returns 1 iff `fe == a`, 0 otherwise.
func (fe *Element) Equal(a *Element) uint64 {
	feL, aL := [4]uint64(fe.m), [4]uint64(a.m)
	return helpers.LimbsAreEqual(&feL, &aL)
}

// IsZero returns 1 iff `fe == 0`, 0 otherwise.
func (fe *Element) IsZero() uint64 {
	l := [4]uint64(fe.m)
	return helpers.Uint64IsZero(l[0] | l[1] | l[2] | l[3])
}

// IsOdd returns 1 iff `fe % 2 == 1`, 0 otherwise.
func (fe *Element) IsOdd() uint64 {
	b := fe.m.Bytes()
	return uint64(b[ElementSize-1] & 1)
}

// Pow sets `fe = a ^ e`, where `e` is the big-endian encoding of a
// fixed public exponent, and returns `fe`.  The sequence of operations
// depends only on the exponent.
func (fe *Element) Pow(a *Element, e []byte) *Element {
	var acc Element
	acc.One()
	for _, b := range e {
		for bit := 7; bit >= 0; bit-- {
			acc.Square(&acc)
			var t Element
			t.Multiply(&acc, a)
			acc.ConditionalSelect(&acc, &t, uint64(b>>uint(bit))&1)
		}
	}
	return fe.Set(&acc)
}

// Sqrt sets `fe = sqrt(a)` and returns `fe, 1` iff `a` is a quadratic
// residue, `fe, 0` otherwise (with `fe` left unspecified).  As
// p = 3 mod 4, the candidate root is `a^((p+1)/4)`.
func (fe *Element) Sqrt(a *Element) (*Element, uint64) {
	var root, check Element
	root.Pow(a, sqrtExp)
	check.Square(&root)
	isQR := check.Equal(a)
	fe.Set(&root)
	return fe, isQR
}

// IsSquare returns 1 iff `fe` is a quadratic residue (zero included),
// 0 otherwise, via the Legendre symbol `fe^((p-1)/2)`.
func (fe *Element) IsSquare() uint64 {
	var sym, one Element
	sym.Pow(fe, legendreExp)
	one.One()
	return sym.Equal(&one) | fe.IsZero()
}

// String returns the big-endian hex representation of `fe`.
func (fe *Element) String() string {
	return hex.EncodeToString(fe.Bytes())
}

// MustRandomize randomizes and returns `fe`, or panics.
func (fe *Element) MustRandomize() *Element {
	var b [ElementSize]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic("internal/field: entropy source failure")
		}
		if _, err := fe.SetCanonicalBytes(&b); err == nil {
			return fe
		}
	}
}

// BatchInvert inverts every element of `fes` in place with a single
// field inversion (Montgomery's trick).  Zero elements are left zero.
func BatchInvert(fes []*Element) {
	if len(fes) == 0 {
		return
	}

	// Guard zeroes by substituting one, so the running product stays
	// invertible; the substitutes are masked back out at the end.
	var one Element
	one.One()

	zeroes := make([]uint64, len(fes))
	accs := make([]Element, len(fes))
	var acc Element
	acc.One()
	for i, fe := range fes {
		zeroes[i] = fe.IsZero()
		fe.ConditionalSelect(fe, &one, zeroes[i])
		accs[i].Set(&acc)
		acc.Multiply(&acc, fe)
	}

	var accInv Element
	accInv.Invert(&acc)

	for i := len(fes) - 1; i >= 0; i-- {
		fe := fes[i]
		var inv Element
		inv.Multiply(&accInv, &accs[i])
		accInv.Multiply(&accInv, fe)
		fe.ConditionalSelect(&inv, fe.Zero(), zeroes[i])
	}
}

// NewElement returns a new zero Element.
func NewElement() *Element {
	return &Element{}
}

// NewElementFrom creates a new Element from another.
func NewElementFrom(other *Element) *Element {
	return NewElement().Set(other)
}

// NewElementFromSaturated creates a new Element from the raw saturated
// representation, most-significant limb first.
func NewElementFromSaturated(l3, l2, l1, l0 uint64) *Element {
	l := [4]uint64{l0, l1, l2, l3}
	b := helpers.SaturatedToBytes(&l)

	// Only for pre-computed constants, all of which are in range.
	var fe Element
	if _, err := fe.SetCanonicalBytes(&b); err != nil {
		panic("internal/field: saturated limbs out of range")
	}
	return &fe
}

// NewElementFromCanonicalBytes creates a new Element from the canonical
// big-endian byte representation.
func NewElementFromCanonicalBytes(src *[ElementSize]byte) (*Element, error) {
	e, err := NewElement().SetCanonicalBytes(src)
	if err != nil {
		return nil, err
	}
	return e, nil
}

var (
	// sqrtExp is the big-endian encoding of (p+1)/4.
	sqrtExp = []byte{
		0x0c, 0x19, 0x13, 0x9c, 0xb8, 0x4c, 0x68, 0x0a,
		0x6e, 0x14, 0x11, 0x6d, 0xa0, 0x60, 0x56, 0x17,
		0x65, 0xe0, 0x5a, 0xa4, 0x5a, 0x1c, 0x72, 0xa3,
		0x4f, 0x08, 0x23, 0x05, 0xb6, 0x1f, 0x3f, 0x52,
	}

	// legendreExp is the big-endian encoding of (p-1)/2.
	legendreExp = []byte{
		0x18, 0x32, 0x27, 0x39, 0x70, 0x98, 0xd0, 0x14,
		0xdc, 0x28, 0x22, 0xdb, 0x40, 0xc0, 0xac, 0x2e,
		0xcb, 0xc0, 0xb5, 0x48, 0xb4, 0x38, 0xe5, 0x46,
		0x9e, 0x10, 0x46, 0x0b, 0x6c, 0x3e, 0x7e, 0xa3,
	}
)
