// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"github.com/cpmech/gomg/domain"
	"github.com/cpmech/gomg/ghost"
	"github.com/cpmech/gomg/internal/workpool"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
	"github.com/cpmech/gomg/solver"
	"github.com/cpmech/gomg/vector"
)

// newScratchView allocates a standalone, ghost-carrying PatchView for
// pinfo, backed by its own storage rather than a Vector's. Mirrors
// vector.go's extendedDims/stridesOf/base arithmetic, duplicated here
// because that package keeps the helpers unexported; needed so a
// per-patch Krylov solve has somewhere to enforce boundary conditions
// between iterations without touching the caller's real Vector.
func newScratchView(pinfo *patch.Info) *pview.PatchView {
	g := pinfo.NumGhostCells
	ext := make([]int, len(pinfo.Ns))
	for i, n := range pinfo.Ns {
		ext[i] = n + 2*g
	}
	strides := make([]int, len(ext))
	total := 1
	for i, e := range ext {
		strides[i] = total
		total *= e
	}
	data := make([]float64, total)
	base := 0
	for _, s := range strides {
		base += g * s
	}
	return pview.New(data, base, strides, pinfo.Ns, g)
}

// singlePatchOperator adapts Operator, bound to one patch, into the
// solver.Operator[*pview.PatchView] contract the inner BiCGStab needs:
// every candidate vector it is asked to apply gets substituted into a
// scratch ghost-carrying view, boundary-enforced, and run through
// ApplySinglePatch — exactly what original_source's
// Iterative::PatchSolver::SinglePatchOp::apply does, minus the
// internal-Dirichlet step (carried by ModifyRHSForZeroDirichletAt...
// instead, applied once to the right-hand side up front).
//
// Grounded on original_source/src/ThunderEgg/Iterative/PatchSolver.h's
// SinglePatchOp.
type singlePatchOperator struct {
	base     Operator
	pinfo    *patch.Info
	scratchU *pview.PatchView
	scratchF *pview.PatchView
}

func (s *singlePatchOperator) Apply(x, result *pview.PatchView) error {
	if err := s.scratchU.Copy(x); err != nil {
		return err
	}
	if err := s.base.EnforceBoundaryConditions(s.pinfo, s.scratchU); err != nil {
		return err
	}
	if err := s.base.ApplySinglePatch(s.pinfo, s.scratchU, s.scratchF); err != nil {
		return err
	}
	return result.Copy(s.scratchF)
}

// IterativeSolver is the PatchSolver spec §4.8 describes: an inner
// BiCGStab drives each patch's local correction to convergence,
// independently, against the ghost values already present from the
// most recent domain-wide fill.
//
// Grounded on original_source/src/ThunderEgg/Iterative/PatchSolver.h.
type IterativeSolver struct {
	base  Operator
	Inner *solver.BiCGStab[*pview.PatchView]

	// Pool, if non-nil, runs SolveSinglePatch for distinct (patch,
	// component) pairs concurrently across its bounded goroutines
	// instead of sequentially; each call allocates its own scratch
	// views, so the per-patch solves never share mutable state.
	Pool *workpool.Pool
}

// NewIterativeSolver builds an IterativeSolver over base, with the
// solver package's documented BiCGStab defaults.
func NewIterativeSolver(base Operator) (*IterativeSolver, error) {
	if base == nil {
		return nil, NilArgument{Who: "base operator"}
	}
	return &IterativeSolver{base: base, Inner: solver.New[*pview.PatchView]()}, nil
}

// SolveSinglePatch approximately solves A·u = f on one patch by driving
// Inner against a fresh scratch operator bound to pinfo.
func (s *IterativeSolver) SolveSinglePatch(pinfo *patch.Info, fView, uView *pview.PatchView) error {
	fWork := fView.Clone()
	if err := s.base.ModifyRHSForZeroDirichletAtInternalBoundaries(pinfo, uView, fWork); err != nil {
		return err
	}

	x := uView.Clone()
	spOp := &singlePatchOperator{
		base:     s.base,
		pinfo:    pinfo,
		scratchU: newScratchView(pinfo),
		scratchF: newScratchView(pinfo),
	}
	if _, err := s.Inner.Solve(spOp, x, fWork, nil); err != nil {
		return err
	}
	return uView.Copy(x)
}

// Apply fills u's ghosts once, then solves every local patch.
func (s *IterativeSolver) Apply(op Operator, f, u *vector.Vector) error {
	return solveAllPatches(s, s.Pool, op.GhostFiller(), op.Domain(), f, u, abortOnFirstFailure)
}

// Smooth behaves identically to Apply: SolveSinglePatch already treats
// uView as an initial guess to improve, not a fresh unknown.
func (s *IterativeSolver) Smooth(op Operator, f, u *vector.Vector) error {
	return solveAllPatches(s, s.Pool, op.GhostFiller(), op.Domain(), f, u, abortOnFirstFailure)
}

// perPatchSolver is the narrow contract solveAllPatches needs; both
// IterativeSolver and TolerantSolver satisfy it.
type perPatchSolver interface {
	SolveSinglePatch(pinfo *patch.Info, fView, uView *pview.PatchView) error
}

func abortOnFirstFailure(_ *patch.Info, err error) error { return err }

// patchComponent names one (patch, component) unit of per-patch solve
// work, the granularity solveAllPatches parallelizes over.
type patchComponent struct {
	p *patch.Info
	c int
}

// solveAllPatches fills f/u's ghosts via fl, then calls s.SolveSinglePatch
// for every local patch and component — across pool's goroutines if
// pool is non-nil, sequentially otherwise — per spec §5's allowance for
// internally parallelizing a per-patch loop. onFailure decides whether a
// single patch's error aborts the whole call (return non-nil) or is
// swallowed and recorded (return nil); it must be safe to call
// concurrently when pool is non-nil.
func solveAllPatches(s perPatchSolver, pool *workpool.Pool, fl *ghost.Filler, dom *domain.Domain, f, u *vector.Vector, onFailure func(pinfo *patch.Info, err error) error) error {
	if u.Domain().ID() != dom.ID() || f.Domain().ID() != dom.ID() {
		return vector.VectorShapeMismatch{Detail: "vector does not belong to this solver's Domain"}
	}
	if err := fl.FillGhost(u); err != nil {
		return err
	}

	var work []patchComponent
	for _, p := range dom.Patches() {
		for c := 0; c < u.NumComponents(); c++ {
			work = append(work, patchComponent{p: p, c: c})
		}
	}

	return workpool.ForEach(pool, work, func(pc patchComponent) error {
		fView, err := f.GetComponentView(pc.c, pc.p.ID)
		if err != nil {
			return err
		}
		uView, err := u.GetComponentView(pc.c, pc.p.ID)
		if err != nil {
			return err
		}
		if err := s.SolveSinglePatch(pc.p, fView, uView); err != nil {
			return onFailure(pc.p, err)
		}
		return nil
	})
}
