// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import "fmt"

// BreakdownError is returned when BiCGStab's inner-product machinery
// collapses (a denominator underflows to zero), per spec §4.11/§7.
// Callers may opt in to continuing past it (ContinueOnBreakdown),
// mirroring original_source/src/ThunderEgg/Iterative/PatchSolver.h's
// per-patch swallow-and-log behavior.
type BreakdownError struct {
	Iteration int
	Detail    string
}

func (e BreakdownError) Error() string {
	return fmt.Sprintf("solver: breakdown at iteration %d: %s", e.Iteration, e.Detail)
}
