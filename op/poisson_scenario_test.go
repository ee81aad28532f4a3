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
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
	"github.com/cpmech/gomg/solver"
	"github.com/cpmech/gomg/testfield"
	"github.com/cpmech/gomg/vector"
)

// poissonOperator is a concrete, single-patch 5-point discrete
// Laplacian, written here as test fixture code only: spec.md scopes a
// concrete stencil out of the library (an op.Operator is always
// supplied by a collaborator), so this exists solely to drive a real
// BiCGStab solve end to end for scenario S1.
//
// It keeps ApplySinglePatch strictly linear in u, as BiCGStab requires
// of its operator: EnforceBoundaryConditions reflects ghosts about
// zero (homogeneous Dirichlet), and the nonhomogeneous boundary data is
// folded into the right-hand side once, up front, by
// ModifyRHSForZeroDirichletAtInternalBoundaries.
type poissonOperator struct {
	dom    *domain.Domain
	filler *ghost.Filler
	exact  testfield.Field
}

func (o *poissonOperator) Domain() *domain.Domain   { return o.dom }
func (o *poissonOperator) GhostFiller() *ghost.Filler { return o.filler }
func (o *poissonOperator) Clone() Operator           { return o }

// EnforceBoundaryConditions reflects every physical-boundary ghost cell
// about zero: ghost = -interior, making the 5-point stencil a strictly
// linear operator on u.
func (o *poissonOperator) EnforceBoundaryConditions(pinfo *patch.Info, uView *pview.PatchView) error {
	for _, s := range face.AllSide2() {
		has, err := pinfo.HasNbr(s)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		axis, other := s.Axis(), 1-s.Axis()
		interiorCoord, ghostCoord := 0, -1
		if s.UpperSide() {
			interiorCoord, ghostCoord = pinfo.Ns[axis]-1, pinfo.Ns[axis]
		}
		for j := 0; j < pinfo.Ns[other]; j++ {
			coord := make([]int, 2)
			coord[axis], coord[other] = interiorCoord, j
			interior, err := uView.At(coord...)
			if err != nil {
				return err
			}
			coord[axis] = ghostCoord
			if err := uView.Set(-interior, coord...); err != nil {
				return err
			}
		}
	}
	return nil
}

// ApplySinglePatch computes the standard 5-point finite-difference
// Laplacian, reading uView's (already ghost-filled) cells.
func (o *poissonOperator) ApplySinglePatch(pinfo *patch.Info, uView, fView *pview.PatchView) error {
	hx, hy := pinfo.Spacings[0], pinfo.Spacings[1]
	for i := 0; i < pinfo.Ns[0]; i++ {
		for j := 0; j < pinfo.Ns[1]; j++ {
			c, err := uView.At(i, j)
			if err != nil {
				return err
			}
			w, err := uView.At(i-1, j)
			if err != nil {
				return err
			}
			e, err := uView.At(i+1, j)
			if err != nil {
				return err
			}
			s, err := uView.At(i, j-1)
			if err != nil {
				return err
			}
			n, err := uView.At(i, j+1)
			if err != nil {
				return err
			}
			lap := (w+e-2*c)/(hx*hx) + (s+n-2*c)/(hy*hy)
			if err := fView.Set(lap, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// ModifyRHSForZeroDirichletAtInternalBoundaries lifts the nonhomogeneous
// Dirichlet data into fView once, up front: a ghost cell reflected as
// 2*g-interior (g the exact boundary value) splits into a homogeneous
// part (-interior, already what EnforceBoundaryConditions leaves for
// ApplySinglePatch to see) plus the constant 2*g/h^2, which moves to
// the right-hand side and is therefore subtracted here.
func (o *poissonOperator) ModifyRHSForZeroDirichletAtInternalBoundaries(pinfo *patch.Info, uView, fView *pview.PatchView) error {
	for _, s := range face.AllSide2() {
		has, err := pinfo.HasNbr(s)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		axis, other := s.Axis(), 1-s.Axis()
		h := pinfo.Spacings[axis]
		boundaryCoord := pinfo.Starts[axis]
		interiorIdx := 0
		if s.UpperSide() {
			boundaryCoord = pinfo.Starts[axis] + float64(pinfo.Ns[axis])*pinfo.Spacings[axis]
			interiorIdx = pinfo.Ns[axis] - 1
		}
		for j := 0; j < pinfo.Ns[other]; j++ {
			otherCoord := pinfo.Starts[other] + (float64(j)+0.5)*pinfo.Spacings[other]
			x := make([]float64, 2)
			x[axis], x[other] = boundaryCoord, otherCoord
			g := o.exact.At(x)

			coord := make([]int, 2)
			coord[axis], coord[other] = interiorIdx, j
			cur, err := fView.At(coord...)
			if err != nil {
				return err
			}
			if err := fView.Set(cur-2*g/(h*h), coord...); err != nil {
				return err
			}
		}
	}
	return nil
}

// TestScenarioS1PoissonSolveConverges realizes spec.md's S1: a 5-point
// discrete Laplacian driven by BiCGStab on a Dirichlet problem whose
// exact solution is known, checked for convergence and for a solution
// error (max deviation from the exact solution) consistent with the
// grid's O(h^2) truncation error.
func TestScenarioS1PoissonSolveConverges(t *testing.T) {
	n := 8
	h := 1.0 / float64(n)

	c := comm.NewLocal()
	info := patch.NewInfo(1, 0, 2, []int{n, n}, 1, []float64{0, 0}, []float64{h, h})
	info.LocalIndex = 0
	dom, err := domain.New(c, 2, []*patch.Info{info})
	require.NoError(t, err)

	fl, err := ghost.NewFiller(dom, face.ScopeFaces, 1)
	require.NoError(t, err)

	exact := testfield.PoissonExact()
	rhs := testfield.PoissonRHS()
	popr := &poissonOperator{dom: dom, filler: fl, exact: exact}

	do, err := NewDomainOperator(popr)
	require.NoError(t, err)

	f := vector.New(dom, 1)
	require.NoError(t, testfield.FillInterior(f, 0, rhs))

	u := vector.New(dom, 1) // zero initial guess, consistent with the homogeneous operator

	p := dom.Patches()[0]
	uView, err := u.GetComponentView(0, p.ID)
	require.NoError(t, err)
	fView, err := f.GetComponentView(0, p.ID)
	require.NoError(t, err)
	require.NoError(t, popr.ModifyRHSForZeroDirichletAtInternalBoundaries(p, uView, fView))

	s := solver.New[*vector.Vector]()
	iters, err := s.Solve(do, u, f, nil)
	require.NoError(t, err)
	require.Greater(t, iters, 0)

	diff, err := testfield.MaxAbsDiff(u, 0, exact)
	require.NoError(t, err)
	require.Less(t, diff, 0.05) // O(h^2) truncation error at h=1/8
}
