// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gmg implements the geometric-multigrid Cycle and its
// staged CycleBuilder (spec §4.9/§4.10): a recursive descent through a
// linked list of Levels from finest to coarsest, each pairing a
// per-patch Operator/Smoother with the Restrictor/Interpolator that
// carry a Vector between a level and its neighbor in the hierarchy.
//
// Grounded on gofem/fem/solver.go's stage-loop driver structure (here
// generalized from a single flat iteration to a recursive one) and
// katalvlaran-lvlath/builder's staged-config idiom for the builder.
package gmg

import (
	"github.com/cpmech/gomg/op"
	"github.com/cpmech/gomg/vector"
)

// Restrictor carries a residual from a fine level's Vector down to its
// coarser neighbor's. Concrete geometric weighting is left to the
// caller, the same way op.Operator leaves the discrete stencil to the
// caller — spec's Non-goals exclude prescribing PDE-specific numerics.
type Restrictor interface {
	Restrict(fine *vector.Vector) (*vector.Vector, error)
}

// Interpolator carries a correction from a coarse level's Vector up to
// its finer neighbor's.
type Interpolator interface {
	Interpolate(coarse *vector.Vector) (*vector.Vector, error)
}

// Level is one rung of the multigrid hierarchy. Restrictor is nil on
// the coarsest level, Interpolator nil on the finest, matching spec
// §4.9.
type Level struct {
	PerPatch     op.Operator
	Smoother     op.Solver
	Restrictor   Restrictor
	Interpolator Interpolator

	domainOp *op.DomainOperator
	coarser  *Level
	finer    *Level
}

func newLevel(perPatch op.Operator, smoother op.Solver, restrictor Restrictor, interpolator Interpolator) (*Level, error) {
	domainOp, err := op.NewDomainOperator(perPatch)
	if err != nil {
		return nil, err
	}
	return &Level{
		PerPatch:     perPatch,
		Smoother:     smoother,
		Restrictor:   restrictor,
		Interpolator: interpolator,
		domainOp:     domainOp,
	}, nil
}

// IsFinest reports whether this level has no finer neighbor.
func (l *Level) IsFinest() bool { return l.finer == nil }

// IsCoarsest reports whether this level has no coarser neighbor.
func (l *Level) IsCoarsest() bool { return l.coarser == nil }

// Coarser returns the next-coarser level, or nil if l is coarsest.
func (l *Level) Coarser() *Level { return l.coarser }

// Finer returns the next-finer level, or nil if l is finest.
func (l *Level) Finer() *Level { return l.finer }
