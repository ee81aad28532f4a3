package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/patch"
)

// twoPatch2D builds two 2-D patches sharing an East/West boundary, both
// at refine_level 0, single rank.
func twoPatch2D() []*patch.Info {
	left := patch.NewInfo(1, 0, 2, []int{4, 4}, 1, []float64{0, 0}, []float64{0.25, 0.25})
	right := patch.NewInfo(2, 0, 2, []int{4, 4}, 1, []float64{1, 0}, []float64{0.25, 0.25})
	left.LocalIndex = 0
	right.LocalIndex = 1
	left.Nbrs[face.East2] = patch.NormalNbr{NbrID: 2, NbrRank: 0}
	right.Nbrs[face.West2] = patch.NormalNbr{NbrID: 1, NbrRank: 0}
	return []*patch.Info{left, right}
}

func TestNewDomainValidConstruction(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	d, err := New(c, 2, ps)
	require.NoError(t, err)
	require.Equal(t, 2, d.NumLocalPatches())
	require.Equal(t, 32, d.NumLocalCells())
	require.Equal(t, 2, d.NumGlobalPatches())
	require.Equal(t, 32, d.NumGlobalCells())
	require.Equal(t, 1, d.NumGhostCells())

	p, ok := d.PatchByID(1)
	require.True(t, ok)
	require.Equal(t, patch.ID(1), p.ID)
}

func TestNewDomainRejectsNonUniformGhostWidth(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	ps[1].NumGhostCells = 2
	_, err := New(c, 2, ps)
	require.Error(t, err)
	var violation DomainInvariantViolation
	require.ErrorAs(t, err, &violation)
	require.Equal(t, patch.ID(2), violation.PatchID)
}

func TestNewDomainRejectsLocalIndexMismatch(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	ps[1].LocalIndex = 5
	_, err := New(c, 2, ps)
	require.Error(t, err)
	var violation DomainInvariantViolation
	require.ErrorAs(t, err, &violation)
}

func TestNewDomainRejectsNonReciprocalNeighbor(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	delete(ps[1].Nbrs, face.West2)
	_, err := New(c, 2, ps)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDomainInvariantViolation)
}

func TestNewDomainRejectsRefineLevelMismatchAcrossNormalNeighbor(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	ps[1].RefineLevel = 1
	_, err := New(c, 2, ps)
	require.Error(t, err)
	var violation DomainInvariantViolation
	require.ErrorAs(t, err, &violation)
}

func TestNewDomainRejectsDuplicatePatchID(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	ps[1].ID = ps[0].ID
	_, err := New(c, 2, ps)
	require.Error(t, err)
	var violation DomainInvariantViolation
	require.ErrorAs(t, err, &violation)
	require.Contains(t, violation.Detail, "duplicate")
}

func TestVolume(t *testing.T) {
	c := comm.NewLocal()
	ps := twoPatch2D()
	d, err := New(c, 2, ps)
	require.NoError(t, err)

	vol, err := Volume(d)
	require.NoError(t, err)
	require.InDelta(t, 2.0*1.0*1.0, vol, 1e-12) // two 1x1 patches
}

// buildTwoLevelForest produces a single rank's local view of a two-level
// forest: one coarse parent patch (level 0) covering the domain [0,2]^2,
// and 4 fine children (level 1) in orthant order SW, SE, NW, NE.
func buildTwoLevelForest() []*patch.Info {
	parent := patch.NewInfo(100, 0, 2, []int{4, 4}, 1, []float64{0, 0}, []float64{0.5, 0.5})
	parent.RefineLevel = 0

	starts := [][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	children := make([]*patch.Info, 4)
	for orth := 0; orth < 4; orth++ {
		c := patch.NewInfo(patch.ID(orth+1), 0, 2, []int{4, 4}, 1, []float64{starts[orth][0], starts[orth][1]}, []float64{0.25, 0.25})
		c.RefineLevel = 1
		c.HasParent = true
		c.ParentID = 100
		c.ParentRank = 0
		c.OrthOnParent = face.Orthant(orth)
		children[orth] = c
	}
	return append(children, parent)
}

func TestGeneratorFinestThenCoarser(t *testing.T) {
	c := comm.NewLocal()
	all := buildTwoLevelForest()
	g, err := NewGenerator(c, 2, all, Options{})
	require.NoError(t, err)

	finest, err := g.Finest()
	require.NoError(t, err)
	require.Equal(t, 4, finest.NumLocalPatches())

	_, err = g.Finest()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrGeneratorMisuse)

	require.True(t, g.HasCoarser())
	coarser, err := g.Coarser()
	require.NoError(t, err)
	require.Equal(t, 1, coarser.NumLocalPatches())
	require.False(t, g.HasCoarser())

	_, err = g.Coarser()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrGeneratorMisuse)

	parent, ok := coarser.PatchByID(100)
	require.True(t, ok)
	for orth := 0; orth < 4; orth++ {
		require.Equal(t, patch.ID(orth+1), parent.ChildIDs[orth])
	}
}

func TestGeneratorRespectsPatchesPerProc(t *testing.T) {
	c := comm.NewLocal()
	all := buildTwoLevelForest()
	g, err := NewGenerator(c, 2, all, Options{PatchesPerProc: 4})
	require.NoError(t, err)
	_, err = g.Finest()
	require.NoError(t, err)
	require.False(t, g.HasCoarser())
}
