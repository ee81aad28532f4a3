// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"fmt"
	"io"
	"sync"

	"github.com/cpmech/gomg/internal/workpool"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
	"github.com/cpmech/gomg/vector"
)

// TolerantSolver wraps a Solver and swallows per-patch solve failures
// (typically solver.BreakdownError from an inner BiCGStab that wasn't
// itself configured to continue) instead of aborting the whole apply,
// counting and optionally logging them.
//
// Grounded on original_source/src/ThunderEgg/Iterative/PatchSolver.h's
// continue_on_breakdown flag, lifted here from a single patch's inner
// solve up to the whole-domain apply loop.
type TolerantSolver struct {
	Inner Solver

	// Log, if non-nil, receives one line per swallowed failure.
	Log io.Writer

	// Pool, if non-nil, runs distinct (patch, component) solves
	// concurrently; see IterativeSolver.Pool.
	Pool *workpool.Pool

	mu           sync.Mutex
	FailureCount int
}

// NewTolerantSolver wraps inner.
func NewTolerantSolver(inner Solver) (*TolerantSolver, error) {
	if inner == nil {
		return nil, NilArgument{Who: "inner solver"}
	}
	return &TolerantSolver{Inner: inner}, nil
}

// SolveSinglePatch delegates straight to Inner; callers iterating patch
// by patch themselves see the real error, unswallowed.
func (t *TolerantSolver) SolveSinglePatch(pinfo *patch.Info, fView, uView *pview.PatchView) error {
	return t.Inner.SolveSinglePatch(pinfo, fView, uView)
}

func (t *TolerantSolver) swallow(pinfo *patch.Info, err error) error {
	t.mu.Lock()
	t.FailureCount++
	t.mu.Unlock()
	if t.Log != nil {
		fmt.Fprintf(t.Log, "op: patch %d solve failed, continuing: %v\n", pinfo.ID, err)
	}
	return nil
}

// Apply fills u's ghosts, then solves every local patch, recording
// (rather than propagating) any single patch's failure.
func (t *TolerantSolver) Apply(op Operator, f, u *vector.Vector) error {
	return solveAllPatches(t, t.Pool, op.GhostFiller(), op.Domain(), f, u, t.swallow)
}

// Smooth behaves like Apply.
func (t *TolerantSolver) Smooth(op Operator, f, u *vector.Vector) error {
	return solveAllPatches(t, t.Pool, op.GhostFiller(), op.Domain(), f, u, t.swallow)
}
