package svdw

import (
	"testing"

	"golang.org/x/crypto/sha3"

	"gitlab.com/fennel/bn254/internal/field"
)

func isOnCurve(x, y *field.Element) bool {
	lhs := field.NewElement().Square(y)

	rhs := field.NewElement().Square(x)
	rhs.Multiply(rhs, x)
	rhs.Add(rhs, feB)

	return lhs.Equal(rhs) == 1
}

func TestMapToCurve(t *testing.T) {
	// Deterministic sweep, plus the exceptional inputs.
	xof := sha3.NewShake128()
	_, _ = xof.Write([]byte("bn254: svdw"))

	var b [field.ElementSize]byte
	us := []*field.Element{
		field.NewElement(),        // u = 0
		field.NewElement().One(),  // u = 1
		feC2,                      // u = c2 = -1/2, hits inv0
		field.NewElementFromSaturated(0, 0, 0, 2),
	}
	for i := 0; i < 64; i++ {
		_, _ = xof.Read(b[:])
		u, err := field.NewElementFromCanonicalBytes(&b)
		if err != nil {
			continue
		}
		us = append(us, u)
	}

	for i, u := range us {
		x, y := MapToCurve(u)
		if !isOnCurve(x, y) {
			t.Fatalf("MapToCurve(case %d): point off curve", i)
		}

		// sgn0(y) == sgn0(u)
		if y.IsOdd() != u.IsOdd() {
			t.Fatalf("MapToCurve(case %d): y parity mismatch", i)
		}
	}
}

func TestConstants(t *testing.T) {
	// c3^2 = -g(Z) * 3Z^2 = -12, and sgn0(c3) = 0.
	c3Sqr := field.NewElement().Square(feC3)
	negTwelve := field.NewElement().Negate(field.NewElementFromSaturated(0, 0, 0, 12))
	if c3Sqr.Equal(negTwelve) != 1 {
		t.Fatalf("c3^2 != -12")
	}
	if feC3.IsOdd() != 0 {
		t.Fatalf("sgn0(c3) != 0")
	}

	// c4 = -16/3
	three := field.NewElementFromSaturated(0, 0, 0, 3)
	c4Times3 := field.NewElement().Multiply(feC4, three)
	negSixteen := field.NewElement().Negate(field.NewElementFromSaturated(0, 0, 0, 16))
	if c4Times3.Equal(negSixteen) != 1 {
		t.Fatalf("c4 != -16/3")
	}

	// c2 = -1/2
	two := field.NewElementFromSaturated(0, 0, 0, 2)
	c2Times2 := field.NewElement().Multiply(feC2, two)
	negOne := field.NewElement().Negate(field.NewElement().One())
	if c2Times2.Equal(negOne) != 1 {
		t.Fatalf("c2 != -1/2")
	}
}
