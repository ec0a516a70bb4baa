package bn254

import "gitlab.com/fennel/bn254/internal/field"

// The complete addition formulas again (see point_arith.go), this time
// over Fp2 with the twist constant.  The a = 0 specialization holds on
// the twist as well, only b changes.

// addComplete sets `v = p + q` without checking point validity.
func (v *Point2) addComplete(p, q *Point2) *Point2 {
	var t0, t1, t2, t3, t4, x3, y3, z3 field.Element2

	t0.Multiply(&p.x, &q.x)
	t1.Multiply(&p.y, &q.y)
	t2.Multiply(&p.z, &q.z)
	t3.Add(&p.x, &p.y)
	t4.Add(&q.x, &q.y)
	t3.Multiply(&t3, &t4)
	t4.Add(&t0, &t1)
	t3.Subtract(&t3, &t4)
	t4.Add(&p.y, &p.z)
	x3.Add(&q.y, &q.z)
	t4.Multiply(&t4, &x3)
	x3.Add(&t1, &t2)
	t4.Subtract(&t4, &x3)
	x3.Add(&p.x, &p.z)
	y3.Add(&q.x, &q.z)
	x3.Multiply(&x3, &y3)
	y3.Add(&t0, &t2)
	y3.Subtract(&x3, &y3)
	x3.Add(&t0, &t0)
	t0.Add(&x3, &t0)
	t2.Multiply(fe2B3, &t2)
	z3.Add(&t1, &t2)
	t1.Subtract(&t1, &t2)
	y3.Multiply(fe2B3, &y3)
	x3.Multiply(&t4, &y3)
	t2.Multiply(&t3, &t1)
	x3.Subtract(&t2, &x3)
	y3.Multiply(&y3, &t0)
	t1.Multiply(&t1, &z3)
	y3.Add(&t1, &y3)
	t0.Multiply(&t0, &t3)
	z3.Multiply(&z3, &t4)
	z3.Add(&z3, &t0)

	v.x.Set(&x3)
	v.y.Set(&y3)
	v.z.Set(&z3)

	return v
}

// addMixed sets `v = p + (x2, y2)`, where `(x2, y2)` is an affine point
// that MUST NOT be the point at infinity.
func (v *Point2) addMixed(p *Point2, x2, y2 *field.Element2) *Point2 {
	var t0, t1, t2, t3, t4, t5, x3, y3, z3 field.Element2

	t0.Multiply(&p.x, x2)
	t1.Multiply(&p.y, y2)
	t3.Add(x2, y2)
	t4.Add(&p.x, &p.y)
	t3.Multiply(&t3, &t4)
	t4.Add(&t0, &t1)
	t3.Subtract(&t3, &t4)
	t4.Multiply(x2, &p.z)
	t4.Add(&t4, &p.x)
	t5.Multiply(y2, &p.z)
	t5.Add(&t5, &p.y)
	x3.Add(&t0, &t0)
	t0.Add(&x3, &t0)
	t2.Multiply(fe2B3, &p.z)
	z3.Add(&t1, &t2)
	t1.Subtract(&t1, &t2)
	y3.Multiply(fe2B3, &t4)
	x3.Multiply(&t5, &y3)
	t2.Multiply(&t3, &t1)
	x3.Subtract(&t2, &x3)
	y3.Multiply(&y3, &t0)
	t1.Multiply(&t1, &z3)
	y3.Add(&t1, &y3)
	t0.Multiply(&t0, &t3)
	z3.Multiply(&z3, &t5)
	z3.Add(&z3, &t0)

	v.x.Set(&x3)
	v.y.Set(&y3)
	v.z.Set(&z3)

	return v
}

// doubleComplete sets `v = p + p` without checking point validity.
func (v *Point2) doubleComplete(p *Point2) *Point2 {
	var t0, t1, t2, x3, y3, z3 field.Element2

	t0.Square(&p.y)
	z3.Add(&t0, &t0)
	z3.Add(&z3, &z3)
	z3.Add(&z3, &z3)
	t1.Multiply(&p.y, &p.z)
	t2.Square(&p.z)
	t2.Multiply(fe2B3, &t2)
	x3.Multiply(&t2, &z3)
	y3.Add(&t0, &t2)
	z3.Multiply(&t1, &z3)
	t1.Add(&t2, &t2)
	t2.Add(&t1, &t2)
	t0.Subtract(&t0, &t2)
	y3.Multiply(&t0, &y3)
	y3.Add(&x3, &y3)
	t1.Multiply(&p.x, &p.y)
	x3.Multiply(&t0, &t1)
	x3.Add(&x3, &x3)

	v.x.Set(&x3)
	v.y.Set(&y3)
	v.z.Set(&z3)

	return v
}
