package bn254

import (
	"gitlab.com/fennel/bn254/internal/disalloweq"
	"gitlab.com/fennel/bn254/internal/field"
)

// G2 is the order-r subgroup of the sextic twist E'/Fp2:
// y^2 = x^3 + 3/xi, xi = 9 + i.

var (
	// g2X and g2Y are the coordinates of the G2 generator.
	g2X = field.NewElement2FromElements(
		field.NewElementFromSaturated(0x1800deef121f1e76, 0x426a00665e5c4479, 0x674322d4f75edadd, 0x46debd5cd992f6ed),
		field.NewElementFromSaturated(0x198e9393920d483a, 0x7260bfb731fb5d25, 0xf1aa493335a9e712, 0x97e485b7aef312c2),
	)
	g2Y = field.NewElement2FromElements(
		field.NewElementFromSaturated(0x12c85ea5db8c6deb, 0x4aab71808dcb408f, 0xe3d1e7690c43d37b, 0x4ce6cc0166fa7daa),
		field.NewElementFromSaturated(0x090689d0585ff075, 0xec9e99ad690c3395, 0xbc4b313370b38ef3, 0x55acdadcd122975b),
	)

	// fe2B is the twist curve constant `b' = 3/xi`.
	fe2B = field.NewElement2FromElements(
		field.NewElementFromSaturated(0x2b149d40ceb8aaae, 0x81be18991be06ac3, 0xb5b4c5e559dbefa3, 0x3267e6dc24a138e5),
		field.NewElementFromSaturated(0x009713b03af0fed4, 0xcd2cafadeed8fdf4, 0xa74fa084e52d1852, 0xe4a2bd0685c315d2),
	)

	// fe2B3 is `3 * b'`.
	fe2B3 = field.NewElement2FromElements(
		field.NewElementFromSaturated(0x20753adca9c6bfb8, 0x1499be5e509e8f8f, 0xf21b7c8d3cb039cf, 0x1ef69c66bce9b021),
		field.NewElementFromSaturated(0x01c53b10b0d2fc7e, 0x67860f09cc8af9dd, 0xf5eee18eaf8748f8, 0xade8371391494176),
	)

	// psiCx = xi^((p-1)/3) and psiCy = xi^((p-1)/2) are the twisted
	// Frobenius coefficients: psi(x, y) = (psiCx * conj(x), psiCy * conj(y)).
	psiCx = field.NewElement2FromElements(
		field.NewElementFromSaturated(0x2fb347984f7911f7, 0x4c0bec3cf559b143, 0xb78cc310c2c3330c, 0x99e39557176f553d),
		field.NewElementFromSaturated(0x16c9e55061ebae20, 0x4ba4cc8bd75a0794, 0x32ae2a1d0b7c9dce, 0x1665d51c640fcba2),
	)
	psiCy = field.NewElement2FromElements(
		field.NewElementFromSaturated(0x063cf305489af5dc, 0xdc5ec698b6e2f9b9, 0xdbaae0eda9c95998, 0xdc54014671a0135a),
		field.NewElementFromSaturated(0x07c03cbcac41049a, 0x0704b5a7ec796f2b, 0x21807dc98fa25bd2, 0x82d37f632623b0e3),
	)
)

// Point2 represents a point on the G2 twist.  All arguments and
// receivers are allowed to alias.  The zero value is NOT valid, and
// may only be used as a receiver.
type Point2 struct {
	_ disalloweq.DisallowEqual

	// Projective coordinates (X, Y, Z) where x = X/Z y = Y/Z, as
	// with Point, over Fp2.
	x, y, z field.Element2

	isValid bool
}

// Identity sets `v = id`, and returns `v`.
func (v *Point2) Identity() *Point2 {
	v.x.Zero()
	v.y.One()
	v.z.Zero()

	v.isValid = true
	return v
}

// Generator sets `v = G2`, and returns `v`.
func (v *Point2) Generator() *Point2 {
	v.x.Set(g2X)
	v.y.Set(g2Y)
	v.z.One()

	v.isValid = true
	return v
}

// Add sets `v = p + q`, and returns `v`.
func (v *Point2) Add(p, q *Point2) *Point2 {
	assertPoints2Valid(p, q)

	v.addComplete(p, q)

	v.isValid = p.isValid && q.isValid
	return v
}

// Double sets `v = p + p`, and returns `v`.
func (v *Point2) Double(p *Point2) *Point2 {
	assertPoints2Valid(p)

	v.doubleComplete(p)

	v.isValid = p.isValid
	return v
}

// Subtract sets `v = p - q`, and returns `v`.
func (v *Point2) Subtract(p, q *Point2) *Point2 {
	assertPoints2Valid(p, q)
	return v.Add(p, newRcvr2().Negate(q))
}

// Negate sets `v = -p`, and returns `v`.
func (v *Point2) Negate(p *Point2) *Point2 {
	assertPoints2Valid(p)

	v.x.Set(&p.x)
	v.y.Negate(&p.y)
	v.z.Set(&p.z)

	v.isValid = p.isValid
	return v
}

// ConditionalNegate sets `v = p` iff `ctrl == 0`, `v = -p` otherwise,
// and returns `v`.
func (v *Point2) ConditionalNegate(p *Point2, ctrl uint64) *Point2 {
	assertPoints2Valid(p)

	v.x.Set(&p.x)
	var negY field.Element2
	negY.Negate(&p.y)
	v.y.ConditionalSelect(&p.y, &negY, ctrl)
	v.z.Set(&p.z)

	v.isValid = p.isValid
	return v
}

// ConditionalSelect sets `v = a` iff `ctrl == 0`, `v = b` otherwise,
// and returns `v`.
func (v *Point2) ConditionalSelect(a, b *Point2, ctrl uint64) *Point2 {
	assertPoints2Valid(a, b)

	v.x.ConditionalSelect(&a.x, &b.x, ctrl)
	v.y.ConditionalSelect(&a.y, &b.y, ctrl)
	v.z.ConditionalSelect(&a.z, &b.z, ctrl)
	v.isValid = a.isValid && b.isValid

	return v
}

// Psi sets `v = psi(p)`, the twisted Frobenius endomorphism of `p`,
// and returns `v`.  Psi acts on the prime-order subgroup as
// multiplication by 6u^2 mod r.
func (v *Point2) Psi(p *Point2) *Point2 {
	assertPoints2Valid(p)

	v.x.Conjugate(&p.x)
	v.x.Multiply(&v.x, psiCx)
	v.y.Conjugate(&p.y)
	v.y.Multiply(&v.y, psiCy)
	v.z.Conjugate(&p.z)

	v.isValid = p.isValid
	return v
}

// Equal returns 1 iff `v == p`, 0 otherwise.
func (v *Point2) Equal(p *Point2) uint64 {
	assertPoints2Valid(v, p)

	x1z2 := field.NewElement2().Multiply(&v.x, &p.z)
	x2z1 := field.NewElement2().Multiply(&p.x, &v.z)

	y1z2 := field.NewElement2().Multiply(&v.y, &p.z)
	y2z1 := field.NewElement2().Multiply(&p.y, &v.z)

	return x1z2.Equal(x2z1) & y1z2.Equal(y2z1)
}

// IsIdentity returns 1 iff v is the identity point, 0 otherwise.
func (v *Point2) IsIdentity() uint64 {
	assertPoints2Valid(v)

	return v.z.IsZero()
}

// Set sets `v = p`, and returns `v`.
func (v *Point2) Set(p *Point2) *Point2 {
	assertPoints2Valid(p)

	v.x.Set(&p.x)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.isValid = p.isValid

	return v
}

// rescale scales the point such that Z = 1.
func (v *Point2) rescale(p *Point2) *Point2 {
	assertPoints2Valid(p)

	scaled := field.NewElement2().Invert(&p.z)

	v.x.Multiply(&p.x, scaled)
	v.y.Multiply(&p.y, scaled)
	v.z.One()
	v.isValid = p.isValid

	return v
}

// NewGeneratorPoint2 returns a new Point2 set to the canonical
// generator.
func NewGeneratorPoint2() *Point2 {
	return newRcvr2().Generator()
}

// NewIdentityPoint2 returns a new Point2 set to the identity (point at
// infinity).
func NewIdentityPoint2() *Point2 {
	p := newRcvr2()
	p.y.One()
	p.isValid = true

	return p
}

// NewPoint2From creates a new Point2 from another.
func NewPoint2From(p *Point2) *Point2 {
	assertPoints2Valid(p)

	return newRcvr2().Set(p)
}

func assertPoints2Valid(points ...*Point2) {
	for _, p := range points {
		if !p.isValid {
			panic("bn254: use of uninitialized Point2")
		}
	}
}

func newRcvr2() *Point2 {
	return &Point2{}
}
