// Package svdw implements the Shallue-van de Woestijne map onto the
// BN254 G1 curve y^2 = x^3 + 3, with the parameter Z = 1.
package svdw

import (
	"gitlab.com/fennel/bn254/internal/field"
	"gitlab.com/fennel/bn254/internal/helpers"
)

// Map constants, for g(x) = x^3 + 3 and Z = 1:
//
//	c1 = g(Z) = 4
//	c2 = -Z / 2
//	c3 = sqrt(-g(Z) * 3*Z^2), the root with sgn0(c3) == 0
//	c4 = -4 * g(Z) / (3 * Z^2)
var (
	feZ  = field.NewElementFromSaturated(0, 0, 0, 1)
	feC1 = field.NewElementFromSaturated(0, 0, 0, 4)
	feC2 = field.NewElementFromSaturated(
		0x183227397098d014,
		0xdc2822db40c0ac2e,
		0xcbc0b548b438e546,
		0x9e10460b6c3e7ea3,
	)
	feC3 = field.NewElementFromSaturated(
		0x0000000000000001,
		0x6789af3a83522eb3,
		0x53c98fc6b36d713d,
		0x5d8d1cc5dffffffa,
	)
	feC4 = field.NewElementFromSaturated(
		0x10216f7ba065e00d,
		0xe81ac1e7808072c9,
		0xdd2b2385cd7b4384,
		0x69602eb24829a9bd,
	)
	feB = field.NewElementFromSaturated(0, 0, 0, 3)
)

// evalG sets `y = x^3 + 3`.
func evalG(y, x *field.Element) *field.Element {
	var t field.Element
	t.Square(x)
	t.Multiply(&t, x)
	return y.Add(&t, feB)
}

// MapToCurve maps the field element `u` onto the curve, returning an
// affine `(x, y)` with `sgn0(y) == sgn0(u)`.  Every input, the
// exceptional cases included, produces a valid curve point; the
// selection between candidates is done without secret-dependent
// branches.
func MapToCurve(u *field.Element) (*field.Element, *field.Element) {
	var tv1, tv2, tv3, tv4 field.Element
	tv1.Square(u)
	tv1.Multiply(&tv1, feC1)

	var one field.Element
	one.One()
	tv2.Add(&one, &tv1)
	tv1.Subtract(&one, &tv1)

	tv3.Multiply(&tv1, &tv2)
	tv3.Invert(&tv3) // inv0: zero maps to zero

	tv4.Multiply(u, &tv1)
	tv4.Multiply(&tv4, &tv3)
	tv4.Multiply(&tv4, feC3)

	var x1, x2, x3 field.Element
	x1.Subtract(feC2, &tv4)
	x2.Add(feC2, &tv4)

	x3.Square(&tv2)
	x3.Multiply(&x3, &tv3)
	x3.Square(&x3)
	x3.Multiply(&x3, feC4)
	x3.Add(&x3, feZ)

	var gx1, gx2 field.Element
	evalG(&gx1, &x1)
	evalG(&gx2, &x2)
	e1 := gx1.IsSquare()
	e2 := gx2.IsSquare() & (1 - e1)

	// x = x3, unless g(x1) is square, else x2 if g(x2) is (and g(x1)
	// is not).
	x := field.NewElementFrom(&x3)
	x.ConditionalSelect(x, &x1, e1)
	x.ConditionalSelect(x, &x2, e2)

	var gx, y field.Element
	evalG(&gx, x)
	y.Sqrt(&gx) // always a residue by construction

	// Fix the sign of y to match u.
	e3 := helpers.Uint64Equal(u.IsOdd(), y.IsOdd())
	y.ConditionalNegate(1 - e3)

	return x, &y
}
