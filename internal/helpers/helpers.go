// Package helpers provides the constant-time utility routines used
// throughout the module.
package helpers

import (
	"encoding/binary"
	"math/bits"
)

// Uint64IsZero returns 1 iff `a == 0`, 0 otherwise.
func Uint64IsZero(a uint64) uint64 {
	return (^(a | -a)) >> 63
}

// Uint64IsNonzero returns 1 iff `a != 0`, 0 otherwise.
func Uint64IsNonzero(a uint64) uint64 {
	return (a | -a) >> 63
}

// Uint64Equal returns 1 iff `a == b`, 0 otherwise.
func Uint64Equal(a, b uint64) uint64 {
	return Uint64IsZero(a ^ b)
}

// Uint64Mask expands the low bit of `a` into a full-width mask.
func Uint64Mask(a uint64) uint64 {
	return -(a & 1)
}

// LimbsAreEqual returns 1 iff `a == b`, 0 otherwise.
func LimbsAreEqual(a, b *[4]uint64) uint64 {
	return Uint64IsZero((a[0] ^ b[0]) | (a[1] ^ b[1]) | (a[2] ^ b[2]) | (a[3] ^ b[3]))
}

// BytesToSaturated converts a 32-byte big-endian value to the saturated
// little-endian limb representation.
func BytesToSaturated(src *[32]byte) [4]uint64 {
	return [4]uint64{
		binary.BigEndian.Uint64(src[24:]),
		binary.BigEndian.Uint64(src[16:]),
		binary.BigEndian.Uint64(src[8:]),
		binary.BigEndian.Uint64(src[0:]),
	}
}

// SaturatedToBytes converts saturated little-endian limbs to the 32-byte
// big-endian representation.
func SaturatedToBytes(src *[4]uint64) [32]byte {
	var dst [32]byte
	binary.BigEndian.PutUint64(dst[0:], src[3])
	binary.BigEndian.PutUint64(dst[8:], src[2])
	binary.BigEndian.PutUint64(dst[16:], src[1])
	binary.BigEndian.PutUint64(dst[24:], src[0])
	return dst
}

// SaturatedAdd sets `dst = a + b mod 2^256` and returns the carry out.
func SaturatedAdd(dst, a, b *[4]uint64) uint64 {
	var carry uint64
	dst[0], carry = bits.Add64(a[0], b[0], 0)
	dst[1], carry = bits.Add64(a[1], b[1], carry)
	dst[2], carry = bits.Add64(a[2], b[2], carry)
	dst[3], carry = bits.Add64(a[3], b[3], carry)
	return carry
}

// SaturatedSub sets `dst = a - b mod 2^256` and returns the borrow out.
func SaturatedSub(dst, a, b *[4]uint64) uint64 {
	var borrow uint64
	dst[0], borrow = bits.Sub64(a[0], b[0], 0)
	dst[1], borrow = bits.Sub64(a[1], b[1], borrow)
	dst[2], borrow = bits.Sub64(a[2], b[2], borrow)
	dst[3], borrow = bits.Sub64(a[3], b[3], borrow)
	return borrow
}

// SaturatedConditionalNegate sets `dst = -a mod 2^256` iff `ctrl == 1`,
// `dst = a` otherwise.
func SaturatedConditionalNegate(dst, a *[4]uint64, ctrl uint64) {
	mask := -ctrl
	var carry uint64
	dst[0], carry = bits.Add64(a[0]^mask, ctrl, 0)
	dst[1], carry = bits.Add64(a[1]^mask, 0, carry)
	dst[2], carry = bits.Add64(a[2]^mask, 0, carry)
	dst[3], _ = bits.Add64(a[3]^mask, 0, carry)
}

// SaturatedMulLow sets `dst = a * b mod 2^256`.
func SaturatedMulLow(dst, a, b *[4]uint64) {
	var t [8]uint64
	saturatedMulWide(&t, a, b)
	dst[0], dst[1], dst[2], dst[3] = t[0], t[1], t[2], t[3]
}

// SaturatedMulHigh sets `dst` to the high 256 bits of the full 512-bit
// product `a * b` (a logical right shift of the product by 256 bits).
func SaturatedMulHigh(dst, a, b *[4]uint64) {
	var t [8]uint64
	saturatedMulWide(&t, a, b)
	dst[0], dst[1], dst[2], dst[3] = t[4], t[5], t[6], t[7]
}

func saturatedMulWide(t *[8]uint64, a, b *[4]uint64) {
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, t[i+j], 0)
			lo, c2 = bits.Add64(lo, carry, 0)
			t[i+j] = lo
			carry = hi + c1 + c2
		}
		t[i+4] = carry
	}
}
