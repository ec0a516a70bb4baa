package bn254

import (
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func scalarFromMini(m *miniScalar) *Scalar {
	sat := [4]uint64{m.limbs[0], m.limbs[1], 0, 0}
	s := NewScalar().SetSaturated(&sat)

	neg := NewScalar().Negate(s)
	return s.ConditionalSelect(s, neg, m.isNeg)
}

func requireMiniFits(t *testing.T, m *miniScalar, l uint) {
	if l <= 64 {
		require.Zero(t, m.limbs[1], "mini-scalar high limb")
		require.Zero(t, m.limbs[0]&^(^uint64(0)>>(64-l)), "mini-scalar width")
	} else {
		require.Zero(t, m.limbs[1]&^(^uint64(0)>>(128-l)), "mini-scalar width")
	}
}

func TestDecomposeGLV(t *testing.T) {
	vecs := []struct {
		k, k0, k1 string
	}{
		{
			"24a0b87203c7a8def0018c95d7fab106373aebf920265c696f0ae08f8229b3f3",
			"14928105460c820ccc9a25d0d953dbfe",
			"13a2f911eb48a578844b901de6f41660",
		},
		{
			"24554fa6d0c06f6dc51c551dea8b058cd737fc8d83f7692fcebdd1842b3092c4",
			"028cf7429c3ff8f7e82fc419e90cc3a2",
			"457efc201bdb3d2e6087df36430a6db6",
		},
		{
			"288c20b297b9808f4e56aeb70eabf269e75d055567ff4e05fe5fb709881e6717",
			"4da8c411566c77e00c902eb542aaa66b",
			"5aa8f2f15afc3217f06677702bd4e41a",
		},
	}
	for i, vec := range vecs {
		t.Run(fmt.Sprintf("Vector %d", i), func(t *testing.T) {
			s := mustScalarFromHex(t, vec.k)
			minis := s.decomposeGLV()

			require.Equal(t, vec.k0, fmt.Sprintf("%016x%016x", minis[0].limbs[1], minis[0].limbs[0]), "k0")
			require.Equal(t, vec.k1, fmt.Sprintf("%016x%016x", minis[1].limbs[1], minis[1].limbs[0]), "k1")
			require.Zero(t, minis[0].isNeg, "k0 sign")
			require.Zero(t, minis[1].isNeg, "k1 sign")
		})
	}

	t.Run("Recombine", func(t *testing.T) {
		for i := 0; i < 128; i++ {
			s := NewScalar().MustRandomize()
			minis := s.decomposeGLV()

			for j := range minis {
				requireMiniFits(t, &minis[j], glvMiniBits)
			}

			// k = k0 + k1 * lambda mod r
			k := NewScalar().Multiply(scalarFromMini(&minis[1]), glvLambda)
			k.Add(k, scalarFromMini(&minis[0]))
			require.EqualValues(t, 1, s.Equal(k), "k = k0 + k1 * lambda mod r")
		}
	})
}

func TestDecomposeGLS(t *testing.T) {
	vecs := []struct {
		k     string
		limbs [4][2]uint64
		negs  [4]uint64
	}{
		{
			"24a0b87203c7a8def0018c95d7fab106373aebf920265c696f0ae08f8229b3f3",
			[4][2]uint64{
				{0xd61e83dd81ab9730, 0},
				{0x0b941d27e6c74594, 0},
				{0x29a5ca568d3d7cd8, 0},
				{0x18e523df61045a06, 0},
			},
			[4]uint64{0, 0, 0, 1},
		},
		{
			"1f3c8d2e6a5b4091827364fdecba09875634129078abcdef0123456789abcdef",
			[4][2]uint64{
				{0x18deaa59175b8201, 1},
				{0x90c768181d3d3e4d, 0},
				{0x3461c0e23eca11d6, 0},
				{0x28f5e66e422ef4ac, 0},
			},
			[4]uint64{0, 0, 0, 0},
		},
		{
			"0deadbeef00dcafe4242424242424242deadbeef00dcafe42424242424242424",
			[4][2]uint64{
				{0xf10f284d2879b407, 0},
				{0x059b2ba5ac71108b, 1},
				{0x6168679cbd219160, 0},
				{0x14990ce3da4aca35, 0},
			},
			[4]uint64{0, 0, 0, 0},
		},
	}
	for i, vec := range vecs {
		t.Run(fmt.Sprintf("Vector %d", i), func(t *testing.T) {
			s := mustScalarFromHex(t, vec.k)
			minis := s.decomposeGLS()

			for j := range minis {
				require.Equal(t, vec.limbs[j], minis[j].limbs, "mini %d", j)
				require.Equal(t, vec.negs[j], minis[j].isNeg, "mini %d sign", j)
			}
		})
	}

	t.Run("Recombine", func(t *testing.T) {
		for i := 0; i < 128; i++ {
			s := NewScalar().MustRandomize()
			minis := s.decomposeGLS()

			// k = sum_i k_i * (6u^2)^i mod r
			k := NewScalar()
			for j := glsDim - 1; j >= 0; j-- {
				requireMiniFits(t, &minis[j], glsMiniBits)

				k.Multiply(k, glsLambda)
				k.Add(k, scalarFromMini(&minis[j]))
			}
			require.EqualValues(t, 1, s.Equal(k), "k = sum k_i * lambda^i mod r")
		}
	})
}

func TestDecomposeEdgeScalars(t *testing.T) {
	for _, s := range []*Scalar{
		NewScalar(),
		NewScalar().One(),
		NewScalar().Negate(NewScalar().One()),
		glvLambda,
		glsLambda,
	} {
		minis2 := s.decomposeGLV()
		k := NewScalar().Multiply(scalarFromMini(&minis2[1]), glvLambda)
		k.Add(k, scalarFromMini(&minis2[0]))
		require.EqualValues(t, 1, s.Equal(k), "GLV edge recombine")

		minis4 := s.decomposeGLS()
		k.Zero()
		for j := glsDim - 1; j >= 0; j-- {
			k.Multiply(k, glsLambda)
			k.Add(k, scalarFromMini(&minis4[j]))
		}
		require.EqualValues(t, 1, s.Equal(k), "GLS edge recombine")
	}
}

func mustScalarFromHex(t *testing.T, s string) *Scalar {
	t.Helper()

	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, ScalarSize)

	sc, err := NewScalarFromCanonicalBytes((*[ScalarSize]byte)(raw))
	require.NoError(t, err)
	return sc
}
