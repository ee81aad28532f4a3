package pview

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumericDotScaleAddCopyClone(t *testing.T) {
	a := newTestView2D(t) // values a(x,y) = 100y+x over [-1..4]
	interiorA, err := a.At(2, 2)
	require.NoError(t, err)
	require.Equal(t, float64(202), interiorA)

	b := a.Clone()
	require.Equal(t, 2, b.Dim())
	val, err := b.At(2, 2)
	require.NoError(t, err)
	require.Equal(t, interiorA, val)

	dot, err := a.Dot(a)
	require.NoError(t, err)
	norm, err := a.TwoNorm()
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt(dot), norm, 1e-9)

	clone := a.Clone()
	clone.Scale(2)
	v2, _ := clone.At(2, 2)
	require.Equal(t, interiorA*2, v2)

	require.NoError(t, clone.AddScaled(-1, a))
	v3, _ := clone.At(2, 2)
	require.InDelta(t, interiorA, v3, 1e-9)

	dst := a.Clone()
	dst.Scale(0)
	require.NoError(t, dst.Copy(a))
	v4, _ := dst.At(2, 2)
	require.Equal(t, interiorA, v4)
}
