// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"github.com/cpmech/gomg/op"
)

// builderState is the Builder's construction-order state machine (spec
// §4.10): Empty -> HasFinest -> HasIntermediate* -> HasCoarsest -> Built.
type builderState int

const (
	stateEmpty builderState = iota
	stateHasFinest
	stateHasIntermediate
	stateHasCoarsest
	stateBuilt
)

func (s builderState) String() string {
	switch s {
	case stateEmpty:
		return "Empty"
	case stateHasFinest:
		return "HasFinest"
	case stateHasIntermediate:
		return "HasIntermediate"
	case stateHasCoarsest:
		return "HasCoarsest"
	case stateBuilt:
		return "Built"
	default:
		return "UNKNOWN"
	}
}

// Builder enforces the level-construction order spec §4.10 requires.
// Any null argument or illegal transition fails with BuilderMisuse
// rather than panicking.
type Builder struct {
	state   builderState
	finest  *Level
	coarsest *Level // most-recently-added level, i.e. the current bottom
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{state: stateEmpty}
}

// State reports the Builder's current state, mainly for tests.
func (b *Builder) State() string { return b.state.String() }

// AddFinestLevel appends the hierarchy's finest level. Legal only from
// Empty.
func (b *Builder) AddFinestLevel(perPatch op.Operator, smoother op.Solver, restrictor Restrictor) error {
	if b.state != stateEmpty {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddFinestLevel"}
	}
	if perPatch == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddFinestLevel", Detail: "operator must not be nil"}
	}
	if smoother == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddFinestLevel", Detail: "smoother must not be nil"}
	}
	if restrictor == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddFinestLevel", Detail: "restrictor must not be nil"}
	}
	level, err := newLevel(perPatch, smoother, restrictor, nil)
	if err != nil {
		return err
	}
	b.finest = level
	b.coarsest = level
	b.state = stateHasFinest
	return nil
}

// AddIntermediateLevel appends a level strictly between the finest and
// coarsest. Legal only from HasFinest or HasIntermediate.
func (b *Builder) AddIntermediateLevel(perPatch op.Operator, smoother op.Solver, restrictor Restrictor, interpolator Interpolator) error {
	if b.state != stateHasFinest && b.state != stateHasIntermediate {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddIntermediateLevel"}
	}
	if perPatch == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddIntermediateLevel", Detail: "operator must not be nil"}
	}
	if smoother == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddIntermediateLevel", Detail: "smoother must not be nil"}
	}
	if restrictor == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddIntermediateLevel", Detail: "restrictor must not be nil"}
	}
	if interpolator == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddIntermediateLevel", Detail: "interpolator must not be nil"}
	}
	level, err := newLevel(perPatch, smoother, restrictor, interpolator)
	if err != nil {
		return err
	}
	b.link(level)
	b.state = stateHasIntermediate
	return nil
}

// AddCoarsestLevel appends the hierarchy's coarsest (bottom) level.
// Legal only from HasFinest or HasIntermediate.
func (b *Builder) AddCoarsestLevel(perPatch op.Operator, smoother op.Solver, interpolator Interpolator) error {
	if b.state != stateHasFinest && b.state != stateHasIntermediate {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddCoarsestLevel"}
	}
	if perPatch == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddCoarsestLevel", Detail: "operator must not be nil"}
	}
	if smoother == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddCoarsestLevel", Detail: "smoother must not be nil"}
	}
	if interpolator == nil {
		return BuilderMisuse{FromState: b.state.String(), Operation: "AddCoarsestLevel", Detail: "interpolator must not be nil"}
	}
	level, err := newLevel(perPatch, smoother, nil, interpolator)
	if err != nil {
		return err
	}
	b.link(level)
	b.state = stateHasCoarsest
	return nil
}

// link attaches level below the current bottom of the hierarchy.
func (b *Builder) link(level *Level) {
	level.finer = b.coarsest
	b.coarsest.coarser = level
	b.coarsest = level
}

// Build finalizes the hierarchy into a Cycle. Legal only from
// HasCoarsest.
func (b *Builder) Build(opts CycleOpts) (*Cycle, error) {
	if b.state != stateHasCoarsest {
		return nil, BuilderMisuse{FromState: b.state.String(), Operation: "Build"}
	}
	b.state = stateBuilt
	return &Cycle{finest: b.finest, opts: opts}, nil
}
