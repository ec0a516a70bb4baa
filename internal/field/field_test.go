package field

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/stretchr/testify/require"
)

func TestElement(t *testing.T) {
	t.Run("Arithmetic", func(t *testing.T) {
		a, b := NewElement().MustRandomize(), NewElement().MustRandomize()

		sum := NewElement().Add(a, b)
		sum.Subtract(sum, b)
		require.EqualValues(t, 1, sum.Equal(a), "a + b - b = a")

		sum.Add(a, NewElement().Negate(a))
		require.EqualValues(t, 1, sum.IsZero(), "a + (-a) = 0")

		prod := NewElement().Multiply(a, a)
		require.EqualValues(t, 1, prod.Equal(NewElement().Square(a)), "a * a = a^2")

		dbl := NewElement().Double(a)
		require.EqualValues(t, 1, dbl.Equal(NewElement().Add(a, a)), "2a = a + a")

		inv := NewElement().Invert(a)
		prod.Multiply(a, inv)
		one := NewElement().One()
		require.EqualValues(t, 1, prod.Equal(one), "a * a^-1 = 1")

		require.EqualValues(t, 1, NewElement().Invert(NewElement()).IsZero(), "0^-1 = 0")
	})

	t.Run("SqrtIsSquare", func(t *testing.T) {
		for i := 0; i < 8; i++ {
			a := NewElement().MustRandomize()
			aSqr := NewElement().Square(a)

			require.EqualValues(t, 1, aSqr.IsSquare(), "a^2 is a square")

			root, isQR := NewElement().Sqrt(aSqr)
			require.EqualValues(t, 1, isQR, "sqrt of a square")
			rootSqr := NewElement().Square(root)
			require.EqualValues(t, 1, rootSqr.Equal(aSqr), "sqrt round trip")
		}

		// -1 is a non-residue mod p (p = 3 mod 4).
		negOne := NewElement().Negate(NewElement().One())
		require.EqualValues(t, 0, negOne.IsSquare(), "-1 is a non-residue")
		_, isQR := NewElement().Sqrt(negOne)
		require.EqualValues(t, 0, isQR)
	})

	t.Run("Serialization", func(t *testing.T) {
		a := NewElement().MustRandomize()
		b := (*[ElementSize]byte)(a.Bytes())
		a2, err := NewElementFromCanonicalBytes(b)
		require.NoError(t, err)
		require.EqualValues(t, 1, a.Equal(a2), "bytes round trip")

		// p is non-canonical.
		var pBytes [ElementSize]byte
		fp.Modulus().FillBytes(pBytes[:])
		_, err = NewElementFromCanonicalBytes(&pBytes)
		require.Error(t, err, "p rejected")
	})

	t.Run("WideBytes", func(t *testing.T) {
		wide := make([]byte, 64)
		for i := range wide {
			wide[i] = byte(0xa5 ^ i)
		}
		fe := NewElement().SetWideBytes(wide)

		expected := new(big.Int).SetBytes(wide)
		expected.Mod(expected, fp.Modulus())
		require.Equal(t, expected.Bytes(), new(big.Int).SetBytes(fe.Bytes()).Bytes(), "wide reduction")
	})

	t.Run("ConditionalOps", func(t *testing.T) {
		a, b := NewElement().MustRandomize(), NewElement().MustRandomize()
		require.EqualValues(t, 1, NewElement().ConditionalSelect(a, b, 0).Equal(a))
		require.EqualValues(t, 1, NewElement().ConditionalSelect(a, b, 1).Equal(b))

		negA := NewElement().Negate(a)
		require.EqualValues(t, 1, NewElementFrom(a).ConditionalNegate(0).Equal(a))
		require.EqualValues(t, 1, NewElementFrom(a).ConditionalNegate(1).Equal(negA))
	})
}

func TestBatchInvert(t *testing.T) {
	fes := []*Element{
		NewElement().MustRandomize(),
		NewElement(), // zero stays zero
		NewElement().One(),
		NewElement().MustRandomize(),
		NewElement().MustRandomize(),
	}
	expected := make([]*Element, len(fes))
	for i, fe := range fes {
		expected[i] = NewElement().Invert(fe)
	}

	BatchInvert(fes)
	for i := range fes {
		require.EqualValues(t, 1, fes[i].Equal(expected[i]), "batch vs single inversion %d", i)
	}

	BatchInvert(nil)
}

func TestElement2(t *testing.T) {
	t.Run("Arithmetic", func(t *testing.T) {
		a, b := NewElement2().MustRandomize(), NewElement2().MustRandomize()

		sum := NewElement2().Add(a, b)
		sum.Subtract(sum, b)
		require.EqualValues(t, 1, sum.Equal(a), "a + b - b = a")

		prod := NewElement2().Multiply(a, a)
		require.EqualValues(t, 1, prod.Equal(NewElement2().Square(a)), "a * a = a^2")

		dbl := NewElement2().Double(a)
		require.EqualValues(t, 1, dbl.Equal(NewElement2().Add(a, a)), "2a = a + a")

		inv := NewElement2().Invert(a)
		prod.Multiply(a, inv)
		require.EqualValues(t, 1, prod.Equal(NewElement2().One()), "a * a^-1 = 1")

		// i^2 = -1
		i := NewElement2FromElements(NewElement(), NewElement().One())
		iSqr := NewElement2().Square(i)
		negOne := NewElement2().Negate(NewElement2().One())
		require.EqualValues(t, 1, iSqr.Equal(negOne), "i^2 = -1")

		// conj(a) * a = norm(a), a base field element
		norm := NewElement2().Multiply(a, NewElement2().Conjugate(a))
		require.EqualValues(t, 1, norm.a1.IsZero(), "norm is in Fp")
	})

	t.Run("MulByElement", func(t *testing.T) {
		a := NewElement2().MustRandomize()
		c := NewElement().MustRandomize()
		cExt := NewElement2FromElements(c, NewElement())

		lhs := NewElement2().MulByElement(a, c)
		rhs := NewElement2().Multiply(a, cExt)
		require.EqualValues(t, 1, lhs.Equal(rhs), "scalar mul agrees with full mul")
	})

	t.Run("Serialization", func(t *testing.T) {
		a := NewElement2().MustRandomize()
		a2, err := NewElement2().SetCanonicalBytes((*[Element2Size]byte)(a.Bytes()))
		require.NoError(t, err)
		require.EqualValues(t, 1, a.Equal(a2), "bytes round trip")
	})
}

func TestBatchInvert2(t *testing.T) {
	fes := []*Element2{
		NewElement2().MustRandomize(),
		NewElement2(), // zero stays zero
		NewElement2().MustRandomize(),
	}
	expected := make([]*Element2, len(fes))
	for i, fe := range fes {
		expected[i] = NewElement2().Invert(fe)
	}

	BatchInvert2(fes)
	for i := range fes {
		require.EqualValues(t, 1, fes[i].Equal(expected[i]), "batch vs single inversion %d", i)
	}
}
