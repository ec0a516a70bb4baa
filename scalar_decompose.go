package bn254

import (
	"math/bits"

	"gitlab.com/fennel/bn254/internal/helpers"
)

// GLV/GLS scalar decomposition.
//
// The G1 endomorphism phi(x, y) = (beta*x, y) acts on the prime-order
// group as multiplication by lambda, a cube root of unity mod r.  The
// G2 endomorphism is the twisted Frobenius psi, acting as
// multiplication by 6u^2 mod r.  A scalar k is rewritten as
//
//	k = sum_i sign_i * lambda^i * k_i  (mod r)
//
// with M mini-scalars of roughly bits(r)/M bits each, by rounding
// (k, 0, ..) to a near lattice vector of the kernel lattice
// { (a_0 .. a_{M-1}) : sum a_i * lambda^i = 0 mod r } (Babai).
//
// The rounding coefficients alpha_i = floor(k * bhat_i / 2^256) use the
// precomputed bhat_i = floor(2^256 * (B^-1)[0][i]), so the hot path is
// multiply-high rather than division.
//
// See:
// - https://www.iacr.org/archive/crypto2001/21390189.pdf
// - https://eprint.iacr.org/2008/117.pdf

const (
	// glvDim and glsDim are the decomposition dimensions for G1 and G2.
	glvDim = 2
	glsDim = 4

	// scalarBits is the bit-width of the group order.
	scalarBits = 254

	// glvMiniBits and glsMiniBits are the mini-scalar widths
	// ceil(scalarBits/M) + 1.
	glvMiniBits = (scalarBits+glvDim-1)/glvDim + 1 // 128
	glsMiniBits = (scalarBits+glsDim-1)/glsDim + 1 // 65
)

// latticeEntry is a signed magnitude lattice (or Babai vector)
// coefficient.  The magnitudes and signs are public curve constants.
type latticeEntry struct {
	value [4]uint64
	isNeg uint64
}

// miniScalar is one element of the decomposition output: an L-bit
// non-negative integer in little-endian limbs, plus the flag signalling
// that the matching companion point must be negated.
type miniScalar struct {
	limbs [2]uint64
	isNeg uint64
}

// isOdd returns 1 iff the mini-scalar is odd, 0 otherwise.
func (m *miniScalar) isOdd() uint64 {
	return m.limbs[0] & 1
}

// conditionalAddOne adds 1 iff `ctrl == 1`.  Both paths do the same
// adds.
func (m *miniScalar) conditionalAddOne(ctrl uint64) {
	var carry uint64
	m.limbs[0], carry = bits.Add64(m.limbs[0], ctrl&1, 0)
	m.limbs[1], _ = bits.Add64(m.limbs[1], 0, carry)
}

// bit returns bit `i` of the mini-scalar.
func (m *miniScalar) bit(i int) uint64 {
	return (m.limbs[i>>6] >> (uint(i) & 63)) & 1
}

// shiftRightOne shifts the mini-scalar right by one bit.
func (m *miniScalar) shiftRightOne() {
	m.limbs[0] = m.limbs[0]>>1 | m.limbs[1]<<63
	m.limbs[1] >>= 1
}

// add adds the single-bit value `b` into the mini-scalar.
func (m *miniScalar) add(b uint64) {
	var carry uint64
	m.limbs[0], carry = bits.Add64(m.limbs[0], b, 0)
	m.limbs[1], _ = bits.Add64(m.limbs[1], 0, carry)
}

var (
	// The G1 lattice basis rows, (2u+1, 6u^2+4u+1) and
	// (6u^2+2u, -(2u+1)), and the matching Babai rounding vector
	// floor(2^256 * (2u+1) / r), floor(2^256 * (6u^2+4u+1) / r).
	latticeG1 = [glvDim][glvDim]latticeEntry{
		{
			{value: [4]uint64{0x89d3256894d213e3, 0, 0, 0}},
			{value: [4]uint64{0x0be4e1541221250b, 0x6f4d8248eeb859fd, 0, 0}},
		},
		{
			{value: [4]uint64{0x8211bbeb7d4f1128, 0x6f4d8248eeb859fc, 0, 0}},
			{value: [4]uint64{0x89d3256894d213e3, 0, 0, 0}, isNeg: 1},
		},
	}
	babaiG1 = [glvDim]latticeEntry{
		{value: [4]uint64{0xd91d232ec7e0b3d7, 0x0000000000000002, 0, 0}},
		{value: [4]uint64{0x5398fd0300ff6565, 0x4ccef014a773d2d2, 0x0000000000000002, 0}},
	}

	// The G2 lattice basis (Galbraith-Scott), rows
	//
	//	( u+1,    u,       u,      -2u  )
	//	( 2u+1,  -u,      -(u+1),  -u   )
	//	( 2u,     2u+1,    2u+1,    2u+1)
	//	( u-1,    4u+2,   -(2u-1),  u-1 )
	//
	// and the Babai vector derived from the exact basis inverse.
	latticeG2 = [glsDim][glsDim]latticeEntry{
		{
			{value: [4]uint64{0x44e992b44a6909f2, 0, 0, 0}},
			{value: [4]uint64{0x44e992b44a6909f1, 0, 0, 0}},
			{value: [4]uint64{0x44e992b44a6909f1, 0, 0, 0}},
			{value: [4]uint64{0x89d3256894d213e2, 0, 0, 0}, isNeg: 1},
		},
		{
			{value: [4]uint64{0x89d3256894d213e3, 0, 0, 0}},
			{value: [4]uint64{0x44e992b44a6909f1, 0, 0, 0}, isNeg: 1},
			{value: [4]uint64{0x44e992b44a6909f2, 0, 0, 0}, isNeg: 1},
			{value: [4]uint64{0x44e992b44a6909f1, 0, 0, 0}, isNeg: 1},
		},
		{
			{value: [4]uint64{0x89d3256894d213e2, 0, 0, 0}},
			{value: [4]uint64{0x89d3256894d213e3, 0, 0, 0}},
			{value: [4]uint64{0x89d3256894d213e3, 0, 0, 0}},
			{value: [4]uint64{0x89d3256894d213e3, 0, 0, 0}},
		},
		{
			{value: [4]uint64{0x44e992b44a6909f0, 0, 0, 0}},
			{value: [4]uint64{0x13a64ad129a427c6, 0x0000000000000001, 0, 0}},
			{value: [4]uint64{0x89d3256894d213e1, 0, 0, 0}, isNeg: 1},
			{value: [4]uint64{0x44e992b44a6909f0, 0, 0, 0}},
		},
	}
	babaiG2 = [glsDim]latticeEntry{
		{value: [4]uint64{0xd0cb46fd51906254, 0xc444fab18d269b9d, 0, 0}},
		{value: [4]uint64{0x001378f5ee78976d, 0x22df9f942d7d77c7, 0x3d00631561b25729, 0x0000000000000001}},
		{value: [4]uint64{0x36510546a93478ab, 0x916fcfca16bebbe4, 0x9e80318ab0d92b94, 0}},
		{value: [4]uint64{0xf7ae23ce89afae7c, 0xc444fab18d269b9a, 0, 0}, isNeg: 1},
	}
)

// decomposeEndo decomposes the saturated scalar into `len(minis)`
// mini-scalars of `l` bits each plus negation flags.  The branches
// below depend only on public lattice constants; everything touching
// `scalar` is constant-time.
func decomposeEndo(minis []miniScalar, scalar *[4]uint64, lattice []latticeEntry, babai []latticeEntry, l uint) {
	m := len(babai)

	// alpha_i = floor(k * bhat_i / 2^256), plus 1 for the negated
	// entries so that the rounding is toward minus infinity.
	var alphas [glsDim][4]uint64
	for i := 0; i < m; i++ {
		helpers.SaturatedMulHigh(&alphas[i], &babai[i].value, scalar)
		one := [4]uint64{babai[i].isNeg, 0, 0, 0}
		helpers.SaturatedAdd(&alphas[i], &alphas[i], &one)
	}

	// k_i = k * [i == 0] - sum_b alpha_b * lattice[b][i], evaluated
	// mod 2^256 with the signs folded in.
	var ks [glsDim][4]uint64
	ks[0] = *scalar
	for i := 0; i < m; i++ {
		for b := 0; b < m; b++ {
			ent := &lattice[b*m+i]
			if ent.value == ([4]uint64{}) {
				continue
			}

			var alphaB [4]uint64
			helpers.SaturatedMulLow(&alphaB, &alphas[b], &ent.value)
			if ent.isNeg^babai[b].isNeg == 1 {
				helpers.SaturatedAdd(&ks[i], &ks[i], &alphaB)
			} else {
				helpers.SaturatedSub(&ks[i], &ks[i], &alphaB)
			}
		}

		// The two's complement sign becomes the point negation flag.
		isNeg := ks[i][3] >> 63
		helpers.SaturatedConditionalNegate(&ks[i], &ks[i], isNeg)

		topMask := ^uint64(0) >> (128 - l)
		minis[i] = miniScalar{
			limbs: [2]uint64{ks[i][0], ks[i][1] & topMask},
			isNeg: isNeg,
		}
	}
}

// The row-major views of the lattice bases consumed by decomposeEndo,
// built once at initialization so that the hot path never allocates.
var (
	latticeG1Flat = flattenLattice(latticeG1[0][:], latticeG1[1][:])
	latticeG2Flat = flattenLattice(latticeG2[0][:], latticeG2[1][:], latticeG2[2][:], latticeG2[3][:])
)

// decomposeGLV decomposes `s` for the 2-dimensional G1 endomorphism.
func (s *Scalar) decomposeGLV() [glvDim]miniScalar {
	var minis [glvDim]miniScalar
	sat := s.Saturated()
	decomposeEndo(minis[:], &sat, latticeG1Flat, babaiG1[:], glvMiniBits)
	return minis
}

// decomposeGLS decomposes `s` for the 4-dimensional G2 endomorphism.
func (s *Scalar) decomposeGLS() [glsDim]miniScalar {
	var minis [glsDim]miniScalar
	sat := s.Saturated()
	decomposeEndo(minis[:], &sat, latticeG2Flat, babaiG2[:], glsMiniBits)
	return minis
}

func flattenLattice(rows ...[]latticeEntry) []latticeEntry {
	flat := make([]latticeEntry, 0, len(rows)*len(rows))
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return flat
}

// Build-time dimension checks: mini-scalars must fit their limb
// arrays, the packed recoded buffers must fit the configured L, and
// the lookup scratch must fit 2^(M-1) entries.  Any other M is a
// configuration error.
const (
	_ = uint(128 - glvMiniBits)
	_ = uint(128 - glsMiniBits)
	_ = uint(recodedMaxBytes*8 - glvMiniBits)
	_ = uint(recodedMaxBytes*8 - glsMiniBits)
	_ = uint(8 - (1 << (glsDim - 1)))
	_ = uint(2 - glvDim)
	_ = uint(glvDim - 2)
	_ = uint(4 - glsDim)
	_ = uint(glsDim - 4)
)
