// Package bn254 implements the BN254 pairing-friendly elliptic curve
// pair (G1 over Fp, G2 over Fp2), with constant-time scalar
// multiplication accelerated by the curve endomorphisms.
package bn254

import (
	"gitlab.com/fennel/bn254/internal/disalloweq"
	"gitlab.com/fennel/bn254/internal/field"
)

var (
	// gX is the x-coordinate of the G1 generator.
	gX = field.NewElementFromSaturated(0, 0, 0, 1)

	// gY is the y-coordinate of the G1 generator.
	gY = field.NewElementFromSaturated(0, 0, 0, 2)

	// feB is the constant `b = 3` of the curve equation y^2 = x^3 + 3.
	feB = field.NewElementFromSaturated(0, 0, 0, 3)

	// feB3 is `3 * b`, as used by the complete addition formulas.
	feB3 = field.NewElementFromSaturated(0, 0, 0, 9)
)

// Point represents a point on the G1 curve y^2 = x^3 + 3 over Fp.  All
// arguments and receivers are allowed to alias.  The zero value is NOT
// valid, and may only be used as a receiver.
type Point struct {
	_ disalloweq.DisallowEqual

	// The point internally is represented in projective coordinates
	// (X, Y, Z) where x = X/Z y = Y/Z.
	x, y, z field.Element

	isValid bool
}

// Identity sets `v = id`, and returns `v`.
func (v *Point) Identity() *Point {
	v.x.Zero()
	v.y.One()
	v.z.Zero()

	v.isValid = true
	return v
}

// Generator sets `v = G`, and returns `v`.
func (v *Point) Generator() *Point {
	v.x.Set(gX)
	v.y.Set(gY)
	v.z.One()

	v.isValid = true
	return v
}

// Add sets `v = p + q`, and returns `v`.
func (v *Point) Add(p, q *Point) *Point {
	assertPointsValid(p, q)

	v.addComplete(p, q)

	v.isValid = p.isValid && q.isValid
	return v
}

// Double sets `v = p + p`, and returns `v`.  Calling `Add(p, p)` will
// also return correct results, however this method is faster.
func (v *Point) Double(p *Point) *Point {
	assertPointsValid(p)

	v.doubleComplete(p)

	v.isValid = p.isValid
	return v
}

// Subtract sets `v = p - q`, and returns `v`.
func (v *Point) Subtract(p, q *Point) *Point {
	assertPointsValid(p, q)
	return v.Add(p, newRcvr().Negate(q))
}

// Negate sets `v = -p`, and returns `v`.
func (v *Point) Negate(p *Point) *Point {
	assertPointsValid(p)

	v.x.Set(&p.x)
	v.y.Negate(&p.y)
	v.z.Set(&p.z)

	v.isValid = p.isValid
	return v
}

// ConditionalNegate sets `v = p` iff `ctrl == 0`, `v = -p` otherwise,
// and returns `v`.
func (v *Point) ConditionalNegate(p *Point, ctrl uint64) *Point {
	assertPointsValid(p)

	v.x.Set(&p.x)
	v.y.Set(&p.y)
	v.y.ConditionalNegate(ctrl)
	v.z.Set(&p.z)

	v.isValid = p.isValid
	return v
}

// ConditionalSelect sets `v = a` iff `ctrl == 0`, `v = b` otherwise,
// and returns `v`.
func (v *Point) ConditionalSelect(a, b *Point, ctrl uint64) *Point {
	assertPointsValid(a, b)

	v.uncheckedConditionalSelect(a, b, ctrl)
	v.isValid = a.isValid && b.isValid

	return v
}

func (v *Point) uncheckedConditionalSelect(a, b *Point, ctrl uint64) *Point {
	v.x.ConditionalSelect(&a.x, &b.x, ctrl)
	v.y.ConditionalSelect(&a.y, &b.y, ctrl)
	v.z.ConditionalSelect(&a.z, &b.z, ctrl)
	return v
}

// Equal returns 1 iff `v == p`, 0 otherwise.
func (v *Point) Equal(p *Point) uint64 {
	assertPointsValid(v, p)

	// Check X1Z2 == X2Z1 Y1Z2 == Y2Z1
	x1z2 := field.NewElement().Multiply(&v.x, &p.z)
	x2z1 := field.NewElement().Multiply(&p.x, &v.z)

	y1z2 := field.NewElement().Multiply(&v.y, &p.z)
	y2z1 := field.NewElement().Multiply(&p.y, &v.z)

	return x1z2.Equal(x2z1) & y1z2.Equal(y2z1)
}

// IsIdentity returns 1 iff v is the identity point, 0 otherwise.
func (v *Point) IsIdentity() uint64 {
	assertPointsValid(v)

	return v.z.IsZero()
}

// Set sets `v = p`, and returns `v`.
func (v *Point) Set(p *Point) *Point {
	assertPointsValid(p)

	v.x.Set(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.isValid = p.isValid

	return v
}

// rescale scales the point such that Z = 1, and is only used for
// serialization and affine access.
func (v *Point) rescale(p *Point) *Point {
	assertPointsValid(p)

	// Inversion of Z = 0 gives 0, so the point at infinity stays
	// degenerate rather than faulting; callers check IsIdentity first.
	scaled := field.NewElement().Invert(&p.z)

	v.x.Multiply(&p.x, scaled)
	v.y.Multiply(&p.y, scaled)
	v.z.One()
	v.isValid = p.isValid

	return v
}

// NewGeneratorPoint returns a new Point set to the canonical generator.
func NewGeneratorPoint() *Point {
	return newRcvr().Generator()
}

// NewIdentityPoint returns a new Point set to the identity (point at
// infinity).
func NewIdentityPoint() *Point {
	p := newRcvr()
	p.y.One()
	p.isValid = true

	return p
}

// NewPointFrom creates a new Point from another.
func NewPointFrom(p *Point) *Point {
	assertPointsValid(p)

	return newRcvr().Set(p)
}

// assertPointsValid ensures that the points have been initialized.
func assertPointsValid(points ...*Point) {
	for _, p := range points {
		if !p.isValid {
			panic("bn254: use of uninitialized Point")
		}
	}
}

func newRcvr() *Point {
	return &Point{}
}
