package bn254

import "gitlab.com/fennel/bn254/internal/field"

// Endomorphism accelerated scalar point multiplication for G1.
//
// Given:
// - P(x,y) on the curve
// - P'(beta*x,y) on the curve, beta a cube root of unity mod p
//
// There is a scalar lambda, a cube root of unity mod r, where
// lambda * P = P'.  For an arbitrary scalar k:
// - Decompose into k = k0 + k1 * lambda mod r
// - Calculate k * P = k0 * P + k1 * P'
//
// The mini-scalars k0, k1 are half-width, so the column-wise GLV-SAC
// accumulation halves the number of doublings relative to the plain
// ladder, at the cost of one table lookup per column.
//
// See:
// - https://www.iacr.org/archive/crypto2001/21390189.pdf
// - https://eprint.iacr.org/2013/158.pdf

// beta is the cube root of unity mod p matched to glvLambda, ie.
// [glvLambda](x, y) = (beta*x, y).
var beta = field.NewElementFromSaturated(
	0x30644e72e131a029,
	0x5e6dd9e7e0acccb0,
	0xc28f069fbb966e3d,
	0xe4bd44e5607cfd48,
)

// glvLambda is the G1 endomorphism eigenvalue
// 0x30644e72e131a029048b6e193fd84104cc37a73fec2bc5e9b8ca0b2d36636f23.
var glvLambda = newScalarFromSaturated(
	0x30644e72e131a029,
	0x048b6e193fd84104,
	0xcc37a73fec2bc5e9,
	0xb8ca0b2d36636f23,
)

func (v *Point) mulBeta(p *Point) *Point {
	assertPointsValid(p)

	v.x.Multiply(&p.x, beta)
	v.y.Set(&p.y)
	v.z.Set(&p.z)
	v.isValid = p.isValid

	return v
}

// setAffine lifts the affine point into the projective representation.
func (v *Point) setAffine(ap *affinePoint) *Point {
	v.x.Set(&ap.x)
	v.y.Set(&ap.y)
	v.z.One()
	v.isValid = true
	return v
}

// glvTableIndex composes the secret lookup index for column position
// `i` from the absolute-value bits of columns 1 and up.
func glvTableIndex(glv []recodedScalar, i int) uint64 {
	var idx uint64
	for j := 1; j < len(glv); j++ {
		idx |= glv[j].bit(i) << (j - 1)
	}
	return idx
}

// w2TableIndex derives the 2-bit-window lookup index and sign for
// window `i` from the paired GLV-SAC column bits.
func w2TableIndex(glv []recodedScalar, i int) (uint64, uint64) {
	cHi, cLo := glv[0].bit(2*i+1), glv[0].bit(2*i)
	sHi, sLo := glv[1].bit(2*i+1), glv[1].bit(2*i)

	// cHi is the window sign; cHi XOR cLo selects between the
	// |k0| = 3 tier (indices 0..3) and the |k0| = 1 tier (4..7).
	isNeg := cHi
	parity := cHi ^ cLo
	return parity<<2 | sHi<<1 | sLo, isNeg
}

// scalarMulEndo sets `v = s * p`, and returns `v`, decomposing `s`
// along the GLV endomorphism and accumulating both mini-scalars
// column-wise.
func (v *Point) scalarMulEndo(s *Scalar, p *Point) *Point {
	assertPointsValid(p)

	// Decompose the scalar, and normalize the signs into the base
	// point and its endomorphism image.
	minis := s.decomposeGLV()

	p0 := newRcvr().ConditionalNegate(p, minis[0].isNeg)
	p1 := newRcvr().mulBeta(p)
	p1.ConditionalNegate(p1, minis[1].isNeg)

	// The recoding requires the first mini-scalar to be odd; add 1 now
	// and subtract P at the end if it was not.
	k0WasOdd := minis[0].isOdd()
	minis[0].conditionalAddOne(1 - k0WasOdd)

	var glv [glvDim]recodedScalar
	recodeGLVSAC(glv[:], minis[:], glvMiniBits)

	var lut [2]affinePoint
	newEndoLut(lut[:], p0, []*Point{p1})

	var ap affinePoint
	lookupAffinePoint(lut[:], &ap, glvTableIndex(glv[:], glvMiniBits-1))

	q := newRcvr().setAffine(&ap)
	for i := glvMiniBits - 2; i >= 0; i-- {
		q.doubleComplete(q)

		lookupAffinePoint(lut[:], &ap, glvTableIndex(glv[:], i))
		ap.conditionalNegate(glv[0].bit(i))
		q.addMixed(q, &ap.x, &ap.y)
	}

	// Correct for the oddness adjustment: `q - p0` is the result iff
	// k0 was even.
	corrected := newRcvr().Subtract(q, p0)
	return v.ConditionalSelect(corrected, q, k0WasOdd)
}

// scalarMulEndoW2 sets `v = s * p`, and returns `v`, with the 2-bit
// windowed variant of the GLV-SAC accumulation: half the additions of
// scalarMulEndo against an 8-entry table.
func (v *Point) scalarMulEndoW2(s *Scalar, p *Point) *Point {
	assertPointsValid(p)

	minis := s.decomposeGLV()

	p0 := newRcvr().ConditionalNegate(p, minis[0].isNeg)
	p1 := newRcvr().mulBeta(p)
	p1.ConditionalNegate(p1, minis[1].isNeg)

	k0WasOdd := minis[0].isOdd()
	minis[0].conditionalAddOne(1 - k0WasOdd)

	var glv [glvDim]recodedScalar
	recodeGLVSAC(glv[:], minis[:], glvMiniBits)

	var lut [8]affinePoint
	newEndoLutW2(lut[:], p0, p1)

	var ap affinePoint
	idx, isNeg := w2TableIndex(glv[:], glvMiniBits/2-1)
	lookupAffinePoint(lut[:], &ap, idx)
	ap.conditionalNegate(isNeg)

	q := newRcvr().setAffine(&ap)
	for i := glvMiniBits/2 - 2; i >= 0; i-- {
		q.doubleComplete(q)
		q.doubleComplete(q)

		idx, isNeg = w2TableIndex(glv[:], i)
		lookupAffinePoint(lut[:], &ap, idx)
		ap.conditionalNegate(isNeg)
		q.addMixed(q, &ap.x, &ap.y)
	}

	corrected := newRcvr().Subtract(q, p0)
	return v.ConditionalSelect(corrected, q, k0WasOdd)
}
