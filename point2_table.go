package bn254

import (
	"math/bits"

	"gitlab.com/fennel/bn254/internal/field"
	"gitlab.com/fennel/bn254/internal/helpers"
)

// The G2 companions of the tables in `point_table.go`.

// projectivePoint2MultTable stores pre-computed multiples [1P, ... 15P].
type projectivePoint2MultTable [15]Point2

// SelectAndAdd sets `sum = sum + idx * P`, and returns `sum`.  idx
// MUST be in the range of `[0, 15]`.
func (tbl *projectivePoint2MultTable) SelectAndAdd(sum *Point2, idx uint64) *Point2 {
	addend := NewIdentityPoint2()
	for i := uint64(1); i < 16; i++ {
		ctrl := helpers.Uint64Equal(idx, i)
		addend.x.ConditionalSelect(&addend.x, &tbl[i-1].x, ctrl)
		addend.y.ConditionalSelect(&addend.y, &tbl[i-1].y, ctrl)
		addend.z.ConditionalSelect(&addend.z, &tbl[i-1].z, ctrl)
	}
	return sum.addComplete(sum, addend)
}

func newProjectivePoint2MultTable(p *Point2) projectivePoint2MultTable {
	var tbl projectivePoint2MultTable
	tbl[0].Set(p)
	for i := 1; i < len(tbl); i += 2 {
		tbl[i].doubleComplete(&tbl[i/2])
		tbl[i+1].addComplete(&tbl[i], p)
	}

	return tbl
}

// affinePoint2 is a G2 point on the `Z = 1` plane.
type affinePoint2 struct {
	x, y field.Element2
}

// conditionalNegate negates the point iff `ctrl == 1`.
func (ap *affinePoint2) conditionalNegate(ctrl uint64) {
	var negY field.Element2
	negY.Negate(&ap.y)
	ap.y.ConditionalSelect(&ap.y, &negY, ctrl)
}

// lookupAffinePoint2 sets `out = tbl[idx]` by scanning the entire
// table, so that neither the timing nor the memory access pattern
// depends on `idx`.
func lookupAffinePoint2(tbl []affinePoint2, out *affinePoint2, idx uint64) {
	for i := range tbl {
		ctrl := helpers.Uint64Equal(idx, uint64(i))
		out.x.ConditionalSelect(&out.x, &tbl[i].x, ctrl)
		out.y.ConditionalSelect(&out.y, &tbl[i].y, ctrl)
	}
}

// batchToAffine2 converts `src` to `dst` with a single Fp2 inversion
// (Montgomery's trick).  None of the points may be the point at
// infinity.
func batchToAffine2(dst []affinePoint2, src []Point2) {
	var zs [8]*field.Element2
	for i := range src {
		dst[i].x.Set(&src[i].z)
		zs[i] = &dst[i].x
	}
	field.BatchInvert2(zs[:len(src)])

	for i := range src {
		zInv := field.NewElement2From(&dst[i].x)
		dst[i].x.Multiply(&src[i].x, zInv)
		dst[i].y.Multiply(&src[i].y, zInv)
	}
}

// newEndoLut2 builds the 2^len(endo) combination table
//
//	lut[u] = P + sum_{bit j of u} endo[j]
//
// with one addition per entry, reusing the entry with the most
// significant index bit cleared.
func newEndoLut2(lut []affinePoint2, p *Point2, endo []*Point2) {
	var tab [8]Point2
	tab[0].Set(p)
	for u := 1; u < len(lut); u++ {
		msb := bits.Len(uint(u)) - 1
		tab[u].addComplete(&tab[u^(1<<msb)], endo[msb])
	}
	batchToAffine2(lut, tab[:len(lut)])
}
