package bn254

// Endomorphism accelerated scalar point multiplication for G2.
//
// The GLS trick extends GLV to the quadratic extension: the twisted
// Frobenius psi is cheap to evaluate and acts on the prime-order
// subgroup as multiplication by 6u^2 mod r, with minimal polynomial of
// degree 4.  Decomposing along psi, psi^2, psi^3 yields four
// quarter-width mini-scalars and an 8-entry lookup table.
//
// See: https://eprint.iacr.org/2008/117.pdf

// glsLambda is the G2 endomorphism eigenvalue 6u^2 mod r.
var glsLambda = newScalarFromSaturated(
	0,
	0,
	0x6f4d8248eeb859fb,
	0xf83e9682e87cfd46,
)

// setAffine lifts the affine point into the projective representation.
func (v *Point2) setAffine(ap *affinePoint2) *Point2 {
	v.x.Set(&ap.x)
	v.y.Set(&ap.y)
	v.z.One()
	v.isValid = true
	return v
}

// ScalarMult sets `v = s * p`, and returns `v`.
func (v *Point2) ScalarMult(s *Scalar, p *Point2) *Point2 {
	return v.scalarMulEndo(s, p)
}

// ScalarBaseMult sets `v = s * G2`, and returns `v`, where `G2` is the
// generator.
func (v *Point2) ScalarBaseMult(s *Scalar) *Point2 {
	return v.scalarMulEndo(s, NewGeneratorPoint2())
}

// scalarMulEndo sets `v = s * p`, and returns `v`, decomposing `s`
// along psi and accumulating the four mini-scalars column-wise.
func (v *Point2) scalarMulEndo(s *Scalar, p *Point2) *Point2 {
	assertPoints2Valid(p)

	// Companion points psi(P), psi^2(P), psi^3(P).
	psi1 := newRcvr2().Psi(p)
	psi2 := newRcvr2().Psi(psi1)
	psi3 := newRcvr2().Psi(psi2)

	minis := s.decomposeGLS()

	// Normalize the signs into the points.
	p0 := newRcvr2().ConditionalNegate(p, minis[0].isNeg)
	psi1.ConditionalNegate(psi1, minis[1].isNeg)
	psi2.ConditionalNegate(psi2, minis[2].isNeg)
	psi3.ConditionalNegate(psi3, minis[3].isNeg)

	// The recoding requires the first mini-scalar to be odd; add 1 now
	// and subtract P at the end if it was not.
	k0WasOdd := minis[0].isOdd()
	minis[0].conditionalAddOne(1 - k0WasOdd)

	// The mini-scalars can use all glsMiniBits bits, and the recoding
	// needs them to fit in one bit less than its length, so recode over
	// one extra position.
	const l = glsMiniBits + 1

	var glv [glsDim]recodedScalar
	recodeGLVSAC(glv[:], minis[:], l)

	var lut [8]affinePoint2
	newEndoLut2(lut[:], p0, []*Point2{psi1, psi2, psi3})

	var ap affinePoint2
	lookupAffinePoint2(lut[:], &ap, glvTableIndex(glv[:], l-1))

	q := newRcvr2().setAffine(&ap)
	for i := l - 2; i >= 0; i-- {
		q.doubleComplete(q)

		lookupAffinePoint2(lut[:], &ap, glvTableIndex(glv[:], i))
		ap.conditionalNegate(glv[0].bit(i))
		q.addMixed(q, &ap.x, &ap.y)
	}

	// Correct for the oddness adjustment: `q - p0` is the result iff
	// k0 was even.
	corrected := newRcvr2().Subtract(q, p0)
	return v.ConditionalSelect(corrected, q, k0WasOdd)
}

// scalarMulGeneric sets `v = s * p`, and returns `v`, using a 4-bit
// window without endomorphism acceleration.
func (v *Point2) scalarMulGeneric(s *Scalar, p *Point2) *Point2 {
	tbl := newProjectivePoint2MultTable(p)

	v.Identity()
	for i, b := range s.Bytes() {
		if i != 0 {
			v.doubleComplete(v)
			v.doubleComplete(v)
			v.doubleComplete(v)
			v.doubleComplete(v)
		}

		tbl.SelectAndAdd(v, uint64(b>>4))

		v.doubleComplete(v)
		v.doubleComplete(v)
		v.doubleComplete(v)
		v.doubleComplete(v)

		tbl.SelectAndAdd(v, uint64(b&0xf))
	}

	return v
}
