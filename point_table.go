package bn254

import (
	"math/bits"

	"gitlab.com/fennel/bn254/internal/field"
	"gitlab.com/fennel/bn254/internal/helpers"
)

// Tables for doing accelerated scalar multiplication.
//
// The fixed-window table layout follows Filippo Valsorda's nistec
// package; the endomorphism lookup tables hold the 2^(M-1) linear
// combinations of the base point and its companion points, built with
// exactly one point addition per entry and converted to affine in a
// single batch inversion.
//
// Note: Effort is made to omit checking `Point.isValid` as much as
// possible as these routines are internal, and it is entirely
// redundant, once the validity of `p` is checked once.

// projectivePointMultTable stores pre-computed multiples [1P, ... 15P],
// with support for `0P` implicitly as part of the table lookup.
//
// For performance reasons, particularly when creating the table, the
// Z-coordinate for entries is not guaranteed to be 1.
type projectivePointMultTable [15]Point

// SelectAndAdd sets `sum = sum + idx * P`, and returns `sum`.  idx
// MUST be in the range of `[0, 15]`.
func (tbl *projectivePointMultTable) SelectAndAdd(sum *Point, idx uint64) *Point {
	addend := NewIdentityPoint()
	for i := uint64(1); i < 16; i++ {
		addend.uncheckedConditionalSelect(addend, &tbl[i-1], helpers.Uint64Equal(idx, i))
	}
	return sum.addComplete(sum, addend)
}

func newProjectivePointMultTable(p *Point) projectivePointMultTable {
	var tbl projectivePointMultTable
	tbl[0].Set(p) // will call `assertPointsValid(p)`
	for i := 1; i < len(tbl); i += 2 {
		tbl[i].doubleComplete(&tbl[i/2])
		tbl[i+1].addComplete(&tbl[i], p)
	}

	return tbl
}

// affinePoint is a point on the `Z = 1` plane.  Unlike Point there is
// no encoding of the point at infinity; the callers below only ever
// table finite points.
type affinePoint struct {
	x, y field.Element
}

// conditionalNegate negates the point iff `ctrl == 1`.
func (ap *affinePoint) conditionalNegate(ctrl uint64) {
	ap.y.ConditionalNegate(ctrl)
}

// lookupAffinePoint sets `out = tbl[idx]` by scanning the entire table,
// so that neither the timing nor the memory access pattern depends on
// `idx`.
func lookupAffinePoint(tbl []affinePoint, out *affinePoint, idx uint64) {
	for i := range tbl {
		ctrl := helpers.Uint64Equal(idx, uint64(i))
		out.x.ConditionalSelect(&out.x, &tbl[i].x, ctrl)
		out.y.ConditionalSelect(&out.y, &tbl[i].y, ctrl)
	}
}

// batchToAffine converts `src` to `dst` with a single field inversion
// (Montgomery's trick).  None of the points may be the point at
// infinity, the caller's precondition that the multiplication base has
// odd prime order.
func batchToAffine(dst []affinePoint, src []Point) {
	var zs [8]*field.Element
	for i := range src {
		dst[i].x.Set(&src[i].z)
		zs[i] = &dst[i].x
	}
	field.BatchInvert(zs[:len(src)])

	for i := range src {
		zInv := field.NewElementFrom(&dst[i].x)
		dst[i].x.Multiply(&src[i].x, zInv)
		dst[i].y.Multiply(&src[i].y, zInv)
	}
}

// newEndoLut builds the 2^len(endo) combination table
//
//	lut[u] = P + sum_{bit j of u} endo[j]
//
// Each new entry reuses the entry with the
// most significant bit of `u` cleared, for exactly one addition per
// entry.  The index is public, so the bit scan being variable-time is
// fine.
func newEndoLut(lut []affinePoint, p *Point, endo []*Point) {
	var tab [8]Point
	tab[0].Set(p)
	for u := 1; u < len(lut); u++ {
		msb := bits.Len(uint(u)) - 1
		tab[u].addComplete(&tab[u^(1<<msb)], endo[msb])
	}
	batchToAffine(lut, tab[:len(lut)])
}

// newEndoLutW2 builds the 8-entry table for the 2-bit windowed variant:
//
//	lut[0..3] = 3P + {0, 1, 2, 3} * Q
//	lut[4..7] = P + {0, -1, 2, 1} * Q
//
// matching the window digit encoding of the paired GLV-SAC columns.
func newEndoLutW2(lut []affinePoint, p, q *Point) {
	var tab [8]Point

	var p3 Point
	p3.doubleComplete(p)
	p3.addComplete(&p3, p)

	tab[0].Set(&p3)
	tab[1].addComplete(&tab[0], q)
	tab[2].addComplete(&tab[1], q)
	tab[3].addComplete(&tab[2], q)

	negQ := newRcvr().Negate(q)

	tab[4].Set(p)
	tab[5].addComplete(&tab[4], negQ)
	tab[7].addComplete(&tab[4], q)
	tab[6].addComplete(&tab[7], q)

	batchToAffine(lut, tab[:])
}
