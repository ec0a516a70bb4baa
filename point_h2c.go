package bn254

import (
	"gitlab.com/fennel/bn254/internal/field"
	"gitlab.com/fennel/bn254/internal/svdw"
)

// SetUniformBytes sets `v = map_to_curve(OS2IP(src) mod p)`, where
// `src` MUST have a length in the range `[32,64]`-bytes, and returns
// `v`.  If called with exactly 48-bytes of data, this can be used to
// implement `encode_to_curve` and `hash_to_curve`.
//
// G1 has cofactor 1, so the output is always in the prime-order group
// and no cofactor clearing step is needed.  Most users SHOULD use a
// higher-level `encode_to_curve` or `hash_to_curve` implementation
// instead.
func (v *Point) SetUniformBytes(src []byte) *Point {
	u := field.NewElement().SetWideBytes(src)

	x, y := svdw.MapToCurve(u)

	v.x.Set(x)
	v.y.Set(y)
	v.z.One()
	v.isValid = true

	return v
}
