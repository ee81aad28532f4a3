// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/domain"
	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/ghost"
	"github.com/cpmech/gomg/internal/workpool"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
	"github.com/cpmech/gomg/solver"
	"github.com/cpmech/gomg/vector"
)

// identityOperator is f = u, cell for cell, with no boundary or
// internal-Dirichlet adjustment — the simplest possible Operator,
// sufficient to exercise DomainOperator's ghost-fill-then-apply loop and
// IterativeSolver's inner Krylov drive without a real discrete stencil.
type identityOperator struct {
	dom    *domain.Domain
	filler *ghost.Filler
}

func (o *identityOperator) ApplySinglePatch(_ *patch.Info, uView, fView *pview.PatchView) error {
	return fView.Copy(uView)
}
func (o *identityOperator) EnforceBoundaryConditions(_ *patch.Info, _ *pview.PatchView) error {
	return nil
}
func (o *identityOperator) ModifyRHSForZeroDirichletAtInternalBoundaries(_ *patch.Info, _, _ *pview.PatchView) error {
	return nil
}
func (o *identityOperator) Clone() Operator          { c := *o; return &c }
func (o *identityOperator) Domain() *domain.Domain   { return o.dom }
func (o *identityOperator) GhostFiller() *ghost.Filler { return o.filler }

func singlePatchDomain(t *testing.T) *domain.Domain {
	t.Helper()
	c := comm.NewLocal()
	p := patch.NewInfo(1, 0, 2, []int{2, 2}, 1, []float64{0, 0}, []float64{0.5, 0.5})
	p.LocalIndex = 0
	dom, err := domain.New(c, 2, []*patch.Info{p})
	require.NoError(t, err)
	return dom
}

func twoPatchDomain(t *testing.T) *domain.Domain {
	t.Helper()
	c := comm.NewLocal()
	left := patch.NewInfo(1, 0, 2, []int{2, 2}, 1, []float64{0, 0}, []float64{0.5, 0.5})
	right := patch.NewInfo(2, 0, 2, []int{2, 2}, 1, []float64{1, 0}, []float64{0.5, 0.5})
	left.LocalIndex, right.LocalIndex = 0, 1
	left.Nbrs[face.East2] = patch.NormalNbr{NbrID: 2, NbrRank: 0}
	right.Nbrs[face.West2] = patch.NormalNbr{NbrID: 1, NbrRank: 0}
	dom, err := domain.New(c, 2, []*patch.Info{left, right})
	require.NoError(t, err)
	return dom
}

func TestDomainOperatorApplyComputesIdentity(t *testing.T) {
	dom := singlePatchDomain(t)
	fl, err := ghost.NewFiller(dom, face.ScopeFaces, 1)
	require.NoError(t, err)

	base := &identityOperator{dom: dom, filler: fl}
	do, err := NewDomainOperator(base)
	require.NoError(t, err)

	u := vector.New(dom, 1)
	u.Set(3.0)
	f := vector.New(dom, 1)

	require.NoError(t, do.Apply(u, f))

	view, err := f.GetComponentView(0, 1)
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			v, err := view.At(x, y)
			require.NoError(t, err)
			require.InDelta(t, 3.0, v, 1e-12)
		}
	}
}

func TestDomainOperatorRejectsForeignVector(t *testing.T) {
	dom := singlePatchDomain(t)
	fl, err := ghost.NewFiller(dom, face.ScopeFaces, 1)
	require.NoError(t, err)
	do, err := NewDomainOperator(&identityOperator{dom: dom, filler: fl})
	require.NoError(t, err)

	other := singlePatchDomain(t)
	u := vector.New(other, 1)
	f := vector.New(other, 1)
	err = do.Apply(u, f)
	require.Error(t, err)
	var mismatch vector.VectorShapeMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestIterativeSolverDrivesPatchToTarget(t *testing.T) {
	dom := singlePatchDomain(t)
	fl, err := ghost.NewFiller(dom, face.ScopeFaces, 1)
	require.NoError(t, err)
	base := &identityOperator{dom: dom, filler: fl}

	is, err := NewIterativeSolver(base)
	require.NoError(t, err)

	u := vector.New(dom, 1) // zero initial guess
	f := vector.New(dom, 1)
	f.Set(5.0)

	require.NoError(t, is.Apply(base, f, u))

	view, err := u.GetComponentView(0, 1)
	require.NoError(t, err)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			v, err := view.At(x, y)
			require.NoError(t, err)
			require.InDelta(t, 5.0, v, 1e-9)
		}
	}
}

// fakeSolver lets TolerantSolver's swallow-and-count behavior be tested
// without engineering a real BiCGStab breakdown: it fails outright for
// one chosen patch id and otherwise behaves like the identity operator's
// exact solve (u := f).
type fakeSolver struct {
	failID patch.ID
}

func (s *fakeSolver) SolveSinglePatch(pinfo *patch.Info, fView, uView *pview.PatchView) error {
	if pinfo.ID == s.failID {
		return solver.BreakdownError{Iteration: 1, Detail: "forced failure for test"}
	}
	return uView.Copy(fView)
}
func (s *fakeSolver) Apply(op Operator, f, u *vector.Vector) error {
	return solveAllPatches(s, nil, op.GhostFiller(), op.Domain(), f, u, abortOnFirstFailure)
}
func (s *fakeSolver) Smooth(op Operator, f, u *vector.Vector) error { return s.Apply(op, f, u) }

func TestTolerantSolverSwallowsPerPatchFailures(t *testing.T) {
	dom := twoPatchDomain(t)
	fl, err := ghost.NewFiller(dom, face.ScopeFaces, 1)
	require.NoError(t, err)
	base := &identityOperator{dom: dom, filler: fl}

	ts, err := NewTolerantSolver(&fakeSolver{failID: 1})
	require.NoError(t, err)

	u := vector.New(dom, 1)
	f := vector.New(dom, 1)
	f.Set(7.0)

	require.NoError(t, ts.Apply(base, f, u))
	require.Equal(t, 1, ts.FailureCount)

	// Patch 2 (not the forced failure) still got solved.
	view, err := u.GetComponentView(0, 2)
	require.NoError(t, err)
	v, err := view.At(0, 0)
	require.NoError(t, err)
	require.InDelta(t, 7.0, v, 1e-12)
}

// fourPatchDomain gives the pooled solve enough independent patches to
// actually spread across goroutines.
func fourPatchDomain(t *testing.T) *domain.Domain {
	t.Helper()
	c := comm.NewLocal()
	var patches []*patch.Info
	for i := 0; i < 4; i++ {
		p := patch.NewInfo(patch.ID(i+1), 0, 2, []int{2, 2}, 1, []float64{float64(i) * 2, 0}, []float64{0.5, 0.5})
		p.LocalIndex = i
		patches = append(patches, p)
	}
	dom, err := domain.New(c, 2, patches)
	require.NoError(t, err)
	return dom
}

func TestIterativeSolverWithPoolMatchesSequential(t *testing.T) {
	dom := fourPatchDomain(t)
	fl, err := ghost.NewFiller(dom, face.ScopeFaces, 1)
	require.NoError(t, err)
	base := &identityOperator{dom: dom, filler: fl}

	is, err := NewIterativeSolver(base)
	require.NoError(t, err)
	is.Pool = workpool.New(4)

	u := vector.New(dom, 1)
	f := vector.New(dom, 1)
	f.Set(9.0)

	require.NoError(t, is.Apply(base, f, u))

	for _, p := range dom.Patches() {
		view, err := u.GetComponentView(0, p.ID)
		require.NoError(t, err)
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				v, err := view.At(x, y)
				require.NoError(t, err)
				require.InDelta(t, 9.0, v, 1e-9)
			}
		}
	}
}

func TestNewDomainOperatorRejectsNil(t *testing.T) {
	_, err := NewDomainOperator(nil)
	require.Error(t, err)
	var nilArg NilArgument
	require.ErrorAs(t, err, &nilArg)
}
