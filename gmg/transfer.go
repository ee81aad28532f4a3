// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import "github.com/cpmech/gomg/vector"

// IdentityTransfer is a Restrictor/Interpolator that passes a Vector
// through unchanged (via a deep copy, so the caller's and callee's
// storage never alias). Useful for exercising Cycle/Builder plumbing
// against a flat, single-Domain level stack where no real coarsening
// takes place; a real geometric hierarchy needs a transfer that maps
// between two different Domains' patch layouts, which is PDE/mesh
// specific and therefore left to the caller, same as op.Operator's
// discrete stencil.
type IdentityTransfer struct{}

func (IdentityTransfer) Restrict(fine *vector.Vector) (*vector.Vector, error) {
	return fine.Clone(), nil
}

func (IdentityTransfer) Interpolate(coarse *vector.Vector) (*vector.Vector, error) {
	return coarse.Clone(), nil
}
