package patch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gomg/face"
)

func newTestInfo3D() *Info {
	p := NewInfo(7, 0, 3, []int{8, 8, 8}, 1, []float64{0, 0, 0}, []float64{0.1, 0.1, 0.1})
	p.Nbrs[face.North3] = NormalNbr{NbrID: 8, NbrRank: 0}
	p.Nbrs[face.East3] = CoarseNbr{NbrID: 3, NbrRank: 1, OrthOnCoarse: face.Orthant(2)}
	p.Nbrs[face.South3] = FineNbr{NbrIDs: []ID{10, 11, 12, 13}, NbrRanks: []Rank{0, 0, 1, 1}}
	return p
}

// S2: serialize a PatchInfo<3> with one Normal, one Coarse, one Fine
// neighbor; deserialize; every field must be equal.
func TestSerializeRoundTrip(t *testing.T) {
	p := newTestInfo3D()
	data, err := p.Serialize()
	require.NoError(t, err)

	got, err := Deserialize(data)
	require.NoError(t, err)

	require.Equal(t, p.ID, got.ID)
	require.Equal(t, p.Rank, got.Rank)
	require.Equal(t, p.RefineLevel, got.RefineLevel)
	require.Equal(t, p.Ns, got.Ns)
	require.Equal(t, p.NumGhostCells, got.NumGhostCells)
	require.Equal(t, p.Starts, got.Starts)
	require.Equal(t, p.Spacings, got.Spacings)
	require.Len(t, got.Nbrs, 3)

	n, err := got.NormalNbrAt(face.North3)
	require.NoError(t, err)
	require.Equal(t, NormalNbr{NbrID: 8, NbrRank: 0}, n)

	c, err := got.CoarseNbrAt(face.East3)
	require.NoError(t, err)
	require.Equal(t, CoarseNbr{NbrID: 3, NbrRank: 1, OrthOnCoarse: face.Orthant(2)}, c)

	f, err := got.FineNbrAt(face.South3)
	require.NoError(t, err)
	require.Equal(t, []ID{10, 11, 12, 13}, f.NbrIDs)
	require.Equal(t, []Rank{0, 0, 1, 1}, f.NbrRanks)
}

func TestDeserializeRejectsBadVersion(t *testing.T) {
	_, err := Deserialize([]byte{99, 1, 2, 3})
	require.ErrorIs(t, err, ErrDeserialize)
}

func TestNbrTypeMismatch(t *testing.T) {
	p := newTestInfo3D()
	_, err := p.CoarseNbrAt(face.North3) // North3 is actually Normal
	require.Error(t, err)
	var mismatch NbrTypeMismatch
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, KindCoarse, mismatch.Want)
	require.Equal(t, KindNormal, mismatch.Got)
}

func TestFaceOutOfRangeForPatchDim(t *testing.T) {
	p := newTestInfo3D() // 3-D patch
	_, err := p.HasNbr(face.SW2)
	require.Error(t, err)
	var oor FaceOutOfRange
	require.ErrorAs(t, err, &oor)
}

func TestHasNbrBoundary(t *testing.T) {
	p := newTestInfo3D()
	has, err := p.HasNbr(face.West3)
	require.NoError(t, err)
	require.False(t, has, "west face has no declared neighbor: physical boundary")
}

func TestMarshalJSONShape(t *testing.T) {
	p := newTestInfo3D()
	data, err := p.MarshalJSON()
	require.NoError(t, err)
	require.Contains(t, string(data), `"id":7`)
	require.Contains(t, string(data), `"refine_level":0`)
}
