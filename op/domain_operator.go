// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package op

import (
	"github.com/cpmech/gomg/vector"
)

// DomainOperator lifts a per-patch Operator to the domain-wide
// solver.Operator[*vector.Vector] contract BiCGStab and the multigrid
// cycle drive against: fill ghosts once, then apply the patch operator
// on every local patch and component.
//
// Grounded on gofem/fem/e_u.go's assembly loop, which likewise walks
// every local entity and calls a single per-entity Apply after the
// shared state (there: element state; here: ghost cells) is current.
type DomainOperator struct {
	perPatch Operator
}

// NewDomainOperator wraps perPatch for domain-wide use.
func NewDomainOperator(perPatch Operator) (*DomainOperator, error) {
	if perPatch == nil {
		return nil, NilArgument{Who: "perPatch operator"}
	}
	return &DomainOperator{perPatch: perPatch}, nil
}

// PerPatch returns the wrapped Operator.
func (do *DomainOperator) PerPatch() Operator { return do.perPatch }

// Apply fills x's ghosts, enforces boundary conditions, and computes
// result = A·x for every local patch and component, satisfying
// solver.Operator[*vector.Vector].
func (do *DomainOperator) Apply(x, result *vector.Vector) error {
	dom := do.perPatch.Domain()
	if x.Domain().ID() != dom.ID() || result.Domain().ID() != dom.ID() {
		return vector.VectorShapeMismatch{Detail: "vector does not belong to this operator's Domain"}
	}
	if err := do.perPatch.GhostFiller().FillGhost(x); err != nil {
		return err
	}
	for _, p := range dom.Patches() {
		for c := 0; c < x.NumComponents(); c++ {
			xView, err := x.GetComponentView(c, p.ID)
			if err != nil {
				return err
			}
			if err := do.perPatch.EnforceBoundaryConditions(p, xView); err != nil {
				return err
			}
			resView, err := result.GetComponentView(c, p.ID)
			if err != nil {
				return err
			}
			if err := do.perPatch.ApplySinglePatch(p, xView, resView); err != nil {
				return err
			}
		}
	}
	return nil
}
