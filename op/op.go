// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package op defines the per-patch Operator/Solver contracts (spec
// §4.8) that the ghost-filling engine, the multigrid cycle, and the
// Krylov solvers are all built against.
//
// Grounded on gofem/fem/e_u.go's element-level Apply shape (one call per
// entity, carrying its own Ndim/shape-function state); here the "entity"
// is a whole patch rather than a single finite element.
package op

import (
	"github.com/cpmech/gomg/domain"
	"github.com/cpmech/gomg/ghost"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
	"github.com/cpmech/gomg/vector"
)

// Operator is the per-patch system A (spec §4.8's PatchOperator).
type Operator interface {
	// ApplySinglePatch computes fView = A·uView for one patch, given a
	// ghost-filled uView.
	ApplySinglePatch(pinfo *patch.Info, uView, fView *pview.PatchView) error

	// EnforceBoundaryConditions materializes boundary values into
	// uView's ghost layer.
	EnforceBoundaryConditions(pinfo *patch.Info, uView *pview.PatchView) error

	// ModifyRHSForZeroDirichletAtInternalBoundaries adjusts fView for a
	// single patch so an iterative patch solver sees a consistent
	// right-hand side at internal Dirichlet boundaries.
	ModifyRHSForZeroDirichletAtInternalBoundaries(pinfo *patch.Info, uView, fView *pview.PatchView) error

	Clone() Operator
	Domain() *domain.Domain
	GhostFiller() *ghost.Filler
}

// Solver is the per-patch approximate solve contract (spec §4.8's
// PatchSolver), and the aggregate apply/smooth built from it.
type Solver interface {
	// SolveSinglePatch approximately solves A·u = f on one patch.
	SolveSinglePatch(pinfo *patch.Info, fView, uView *pview.PatchView) error

	// Apply fills u's ghosts, then solves every local patch, aggregating
	// errors.
	Apply(op Operator, f, u *vector.Vector) error

	// Smooth behaves like Apply but must accept and improve a nonzero
	// initial guess, for multigrid use.
	Smooth(op Operator, f, u *vector.Vector) error
}
