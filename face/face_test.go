package face

import "testing"

import "github.com/stretchr/testify/require"

func TestSide2CanonicalOrder(t *testing.T) {
	all := AllSide2()
	require.Equal(t, []Side2{West2, East2, South2, North2}, all)
	for i, s := range all {
		require.Equal(t, i, s.Index())
		got, err := FromIndexSide2(i)
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestSide3CanonicalOrder(t *testing.T) {
	all := AllSide3()
	require.Equal(t, []Side3{West3, East3, South3, North3, Bottom3, Top3}, all)
}

func TestCorner2CanonicalOrder(t *testing.T) {
	require.Equal(t, []Corner2{SW2, SE2, NW2, NE2}, AllCorner2())
}

func TestCorner3CanonicalOrder(t *testing.T) {
	require.Equal(t, []Corner3{BSW3, BSE3, BNW3, BNE3, TSW3, TSE3, TNW3, TNE3}, AllCorner3())
}

func TestEdge3CanonicalOrder(t *testing.T) {
	require.Equal(t, []Edge3{BS3, TN3, BN3, TS3, BW3, TE3, BE3, TW3, SW3, NE3, SE3, NW3}, AllEdge3())
}

func TestOppositeIsInvolution(t *testing.T) {
	for _, s := range AllSide2() {
		require.Equal(t, Face(s), s.Opposite().Opposite())
	}
	for _, s := range AllSide3() {
		require.Equal(t, Face(s), s.Opposite().Opposite())
	}
	for _, c := range AllCorner2() {
		require.Equal(t, Face(c), c.Opposite().Opposite())
	}
	for _, c := range AllCorner3() {
		require.Equal(t, Face(c), c.Opposite().Opposite())
	}
	for _, e := range AllEdge3() {
		require.Equal(t, Face(e), e.Opposite().Opposite())
	}
}

func TestFromIndexOutOfRange(t *testing.T) {
	_, err := FromIndexSide2(4)
	require.Error(t, err)
	var oor FaceOutOfRange
	require.ErrorAs(t, err, &oor)
}

func TestAllFacesScopeExpansion(t *testing.T) {
	require.Len(t, AllFaces(2, ScopeFaces), 4)
	require.Len(t, AllFaces(2, ScopeCorners), 4+4)
	// Edges is meaningless in 2D and maps to Faces.
	require.Len(t, AllFaces(2, ScopeEdges), 4)

	require.Len(t, AllFaces(3, ScopeFaces), 6)
	require.Len(t, AllFaces(3, ScopeEdges), 6+12)
	require.Len(t, AllFaces(3, ScopeCorners), 6+12+8)
}

func TestFreeAxesOfSide(t *testing.T) {
	require.Equal(t, []int{1}, FreeAxes(West2, 2))
	require.Equal(t, []int{0}, FreeAxes(South2, 2))
	require.Equal(t, []int{1, 2}, FreeAxes(West3, 3))
}

func TestFreeAxesOfCorner(t *testing.T) {
	require.Empty(t, FreeAxes(SW2, 2))
	require.Empty(t, FreeAxes(BSW3, 3))
}

func TestFreeAxesOfEdge(t *testing.T) {
	// bs: bottom (axis2) + south (axis1) fixed -> free axis 0
	require.Equal(t, []int{0}, FreeAxes(BS3, 3))
}

func TestOrthantOffsets(t *testing.T) {
	require.Equal(t, 4, NumOrthants(2))
	o := Orthant(0b10)
	require.Equal(t, 0, o.Bit(0))
	require.Equal(t, 1, o.Bit(1))
	require.Equal(t, []int{0, 8}, o.Offset(2, 8))
}
