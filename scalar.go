package bn254

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"gitlab.com/fennel/bn254/internal/disalloweq"
	"gitlab.com/fennel/bn254/internal/helpers"
)

// ScalarSize is the size of a scalar in bytes.
const ScalarSize = 32

// Scalar is an integer modulo the G1/G2 group order
// `r = 0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001`.
// All arguments and receivers are allowed to alias.  The zero value is
// a valid zero element.
type Scalar struct {
	_ disalloweq.DisallowEqual
	m fr.Element
}

// Zero sets `s = 0` and returns `s`.
func (s *Scalar) Zero() *Scalar {
	s.m.SetZero()
	return s
}

// One sets `s = 1` and returns `s`.
func (s *Scalar) One() *Scalar {
	s.m.SetOne()
	return s
}

// Add sets `s = a + b` and returns `s`.
func (s *Scalar) Add(a, b *Scalar) *Scalar {
	s.m.Add(&a.m, &b.m)
	return s
}

// Subtract sets `s = a - b` and returns `s`.
func (s *Scalar) Subtract(a, b *Scalar) *Scalar {
	s.m.Sub(&a.m, &b.m)
	return s
}

// Negate sets `s = -a` and returns `s`.
func (s *Scalar) Negate(a *Scalar) *Scalar {
	s.m.Neg(&a.m)
	return s
}

// Multiply sets `s = a * b` and returns `s`.
func (s *Scalar) Multiply(a, b *Scalar) *Scalar {
	s.m.Mul(&a.m, &b.m)
	return s
}

// Square sets `s = a * a` and returns `s`.
func (s *Scalar) Square(a *Scalar) *Scalar {
	s.m.Square(&a.m)
	return s
}

// Set sets `s = a` and returns `s`.
func (s *Scalar) Set(a *Scalar) *Scalar {
	s.m.Set(&a.m)
	return s
}

// SetBytes sets `s = src`, where `src` is a 32-byte big-endian encoding
// of `s`, reduced modulo `r` if required, and returns `s`.
func (s *Scalar) SetBytes(src *[ScalarSize]byte) *Scalar {
	s.m.SetBytes(src[:])
	return s
}

// SetCanonicalBytes sets `s = src`, where `src` is a 32-byte big-endian
// encoding of `s`, and returns `s`.  If `src` is not a canonical
// encoding of `s`, SetCanonicalBytes returns nil and an error, and the
// receiver is unchanged.
func (s *Scalar) SetCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	var v big.Int
	v.SetBytes(src[:])
	if v.Cmp(fr.Modulus()) >= 0 {
		return nil, errors.New("bn254: scalar value out of range")
	}
	s.m.SetBytes(src[:])
	return s, nil
}

// SetSaturated sets `s = src`, where `src` is the saturated little-endian
// limb representation, reduced modulo `r` if required, and returns `s`.
func (s *Scalar) SetSaturated(src *[4]uint64) *Scalar {
	b := helpers.SaturatedToBytes(src)
	s.m.SetBytes(b[:])
	return s
}

// Bytes returns the canonical big-endian encoding of `s`.
func (s *Scalar) Bytes() []byte {
	dst := s.m.Bytes()
	return dst[:]
}

// Saturated returns the canonical saturated little-endian limb
// representation of `s`.
func (s *Scalar) Saturated() [4]uint64 {
	b := (*[ScalarSize]byte)(s.Bytes())
	return helpers.BytesToSaturated(b)
}

// ConditionalSelect sets `s = a` iff `ctrl == 0`, `s = b` otherwise,
// and returns `s`.
func (s *Scalar) ConditionalSelect(a, b *Scalar, ctrl uint64) *Scalar {
	s.m.Select(int(ctrl&1), &a.m, &b.m)
	return s
}

// Equal returns 1 iff `s == a`, 0 otherwise.
func (s *Scalar) Equal(a *Scalar) uint64 {
	sL, aL := [4]uint64(s.m), [4]uint64(a.m)
	return helpers.LimbsAreEqual(&sL, &aL)
}

// IsZero returns 1 iff `s == 0`, 0 otherwise.
func (s *Scalar) IsZero() uint64 {
	l := [4]uint64(s.m)
	return helpers.Uint64IsZero(l[0] | l[1] | l[2] | l[3])
}

// String returns the big-endian hex representation of `s`.
func (s *Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

// MustRandomize randomizes and returns `s`, or panics.
func (s *Scalar) MustRandomize() *Scalar {
	var b [ScalarSize]byte
	for {
		if _, err := rand.Read(b[:]); err != nil {
			panic("bn254: entropy source failure")
		}
		if _, err := s.SetCanonicalBytes(&b); err == nil {
			return s
		}
	}
}

// NewScalar returns a new zero Scalar.
func NewScalar() *Scalar {
	return &Scalar{}
}

// NewScalarFrom creates a new Scalar from another.
func NewScalarFrom(other *Scalar) *Scalar {
	return NewScalar().Set(other)
}

// NewScalarFromCanonicalBytes creates a new Scalar from the canonical
// big-endian byte representation.
func NewScalarFromCanonicalBytes(src *[ScalarSize]byte) (*Scalar, error) {
	s, err := NewScalar().SetCanonicalBytes(src)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newScalarFromSaturated(l3, l2, l1, l0 uint64) *Scalar {
	l := [4]uint64{l0, l1, l2, l3}
	b := helpers.SaturatedToBytes(&l)

	var v big.Int
	v.SetBytes(b[:])
	if v.Cmp(fr.Modulus()) >= 0 {
		// Only for pre-computed constants.
		panic("bn254: saturated scalar out of range")
	}

	var s Scalar
	s.m.SetBytes(b[:])
	return &s
}
