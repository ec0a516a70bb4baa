package bn254

import (
	"errors"

	"gitlab.com/fennel/bn254/internal/field"
)

// Point encoding, in the SEC 1 style: an uncompressed form
// `0x04 | X | Y`, a compressed form `Y_EvenOrOdd | X`, and a single
// byte `0x00` for the point at infinity.  G2 coordinates serialize as
// `a0 | a1` per Fp2 element.

const (
	// CompressedPointSize is the size of a compressed G1 point in
	// bytes.
	CompressedPointSize = 33

	// PointSize is the size of an uncompressed G1 point in bytes.
	PointSize = 65

	// Point2Size is the size of an uncompressed G2 point in bytes.
	Point2Size = 129

	// IdentityPointSize is the size of the point at infinity in bytes.
	IdentityPointSize = 1

	prefixIdentity       = 0x00
	prefixCompressedEven = 0x02
	prefixCompressedOdd  = 0x03
	prefixUncompressed   = 0x04
)

var errInvalidEncoding = errors.New("bn254: invalid point encoding")

// UncompressedBytes returns the uncompressed encoding of `v`.
func (v *Point) UncompressedBytes() []byte {
	assertPointsValid(v)

	if v.IsIdentity() == 1 {
		return []byte{prefixIdentity}
	}

	scaled := newRcvr().rescale(v)

	dst := make([]byte, 0, PointSize)
	dst = append(dst, prefixUncompressed)
	dst = append(dst, scaled.x.Bytes()...)
	dst = append(dst, scaled.y.Bytes()...)

	return dst
}

// CompressedBytes returns the compressed encoding of `v`.
func (v *Point) CompressedBytes() []byte {
	assertPointsValid(v)

	if v.IsIdentity() == 1 {
		return []byte{prefixIdentity}
	}

	scaled := newRcvr().rescale(v)

	dst := make([]byte, 0, CompressedPointSize)
	dst = append(dst, byte(prefixCompressedEven+scaled.y.IsOdd()))
	dst = append(dst, scaled.x.Bytes()...)

	return dst
}

// SetBytes sets `v = src`, where `src` is a valid encoding of a point
// on the curve, and returns `v`.  On errors, `v` is unchanged.
func (v *Point) SetBytes(src []byte) (*Point, error) {
	var p Point
	switch len(src) {
	case IdentityPointSize:
		if src[0] != prefixIdentity {
			return nil, errInvalidEncoding
		}
		p.Identity()
	case CompressedPointSize:
		if src[0] != prefixCompressedEven && src[0] != prefixCompressedOdd {
			return nil, errInvalidEncoding
		}
		x, err := field.NewElementFromCanonicalBytes((*[field.ElementSize]byte)(src[1:]))
		if err != nil {
			return nil, errInvalidEncoding
		}

		// y = sqrt(x^3 + 3), with the sign bit selecting the root.
		ySqr := field.NewElement().Square(x)
		ySqr.Multiply(ySqr, x)
		ySqr.Add(ySqr, feB)
		y, isQR := field.NewElement().Sqrt(ySqr)
		if isQR != 1 {
			return nil, errInvalidEncoding
		}
		wantOdd := uint64(src[0] - prefixCompressedEven)
		y.ConditionalNegate(y.IsOdd() ^ wantOdd)

		p.x.Set(x)
		p.y.Set(y)
		p.z.One()
		p.isValid = true
	case PointSize:
		if src[0] != prefixUncompressed {
			return nil, errInvalidEncoding
		}
		x, err := field.NewElementFromCanonicalBytes((*[field.ElementSize]byte)(src[1 : 1+field.ElementSize]))
		if err != nil {
			return nil, errInvalidEncoding
		}
		y, err := field.NewElementFromCanonicalBytes((*[field.ElementSize]byte)(src[1+field.ElementSize:]))
		if err != nil {
			return nil, errInvalidEncoding
		}

		p.x.Set(x)
		p.y.Set(y)
		p.z.One()
		if p.isOnCurve() != 1 {
			return nil, errInvalidEncoding
		}
		p.isValid = true
	default:
		return nil, errInvalidEncoding
	}

	return v.Set(&p), nil
}

// isOnCurve checks the projective curve equation
// Y^2 * Z = X^3 + 3 * Z^3.
func (v *Point) isOnCurve() uint64 {
	lhs := field.NewElement().Square(&v.y)
	lhs.Multiply(lhs, &v.z)

	rhs := field.NewElement().Square(&v.x)
	rhs.Multiply(rhs, &v.x)

	z3 := field.NewElement().Square(&v.z)
	z3.Multiply(z3, &v.z)
	z3.Multiply(z3, feB)
	rhs.Add(rhs, z3)

	// The point at infinity trivially satisfies the homogeneous
	// equation, so exclude it; it has its own encoding.
	return lhs.Equal(rhs) & (1 - v.z.IsZero())
}

// NewPointFromBytes creates a new Point from a valid encoding.
func NewPointFromBytes(src []byte) (*Point, error) {
	return newRcvr().SetBytes(src)
}

// UncompressedBytes returns the uncompressed encoding of `v`.
func (v *Point2) UncompressedBytes() []byte {
	assertPoints2Valid(v)

	if v.IsIdentity() == 1 {
		return []byte{prefixIdentity}
	}

	scaled := newRcvr2().rescale(v)

	dst := make([]byte, 0, Point2Size)
	dst = append(dst, prefixUncompressed)
	dst = append(dst, scaled.x.Bytes()...)
	dst = append(dst, scaled.y.Bytes()...)

	return dst
}

// SetBytes sets `v = src`, where `src` is a valid uncompressed encoding
// of a point on the twist, and returns `v`.  On errors, `v` is
// unchanged.
//
// Note: This checks the curve equation, not subgroup membership.  The
// multiplication routines assume points of order r; use
// IsInSubgroup to validate untrusted input.
func (v *Point2) SetBytes(src []byte) (*Point2, error) {
	var p Point2
	switch len(src) {
	case IdentityPointSize:
		if src[0] != prefixIdentity {
			return nil, errInvalidEncoding
		}
		p.Identity()
	case Point2Size:
		if src[0] != prefixUncompressed {
			return nil, errInvalidEncoding
		}
		x, err := field.NewElement2().SetCanonicalBytes((*[field.Element2Size]byte)(src[1 : 1+field.Element2Size]))
		if err != nil {
			return nil, errInvalidEncoding
		}
		y, err := field.NewElement2().SetCanonicalBytes((*[field.Element2Size]byte)(src[1+field.Element2Size:]))
		if err != nil {
			return nil, errInvalidEncoding
		}

		p.x.Set(x)
		p.y.Set(y)
		p.z.One()
		if p.isOnCurve() != 1 {
			return nil, errInvalidEncoding
		}
		p.isValid = true
	default:
		return nil, errInvalidEncoding
	}

	return v.Set(&p), nil
}

// isOnCurve checks the projective twist equation
// Y^2 * Z = X^3 + b' * Z^3.
func (v *Point2) isOnCurve() uint64 {
	lhs := field.NewElement2().Square(&v.y)
	lhs.Multiply(lhs, &v.z)

	rhs := field.NewElement2().Square(&v.x)
	rhs.Multiply(rhs, &v.x)

	z3 := field.NewElement2().Square(&v.z)
	z3.Multiply(z3, &v.z)
	z3.Multiply(z3, fe2B)
	rhs.Add(rhs, z3)

	return lhs.Equal(rhs) & (1 - v.z.IsZero())
}

// IsInSubgroup returns 1 iff `v` is on the twist and in the order-r
// subgroup, 0 otherwise.
func (v *Point2) IsInSubgroup() uint64 {
	assertPoints2Valid(v)

	// psi(P) = [6u^2]P separates the prime-order subgroup from the
	// rest of the twist, and is much cheaper than a full
	// multiplication by r.
	lhs := newRcvr2().Psi(v)
	rhs := newRcvr2().scalarMulGeneric(glsLambda, v)

	return (v.isOnCurve() | v.IsIdentity()) & lhs.Equal(rhs)
}

