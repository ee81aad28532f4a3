// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package domain implements Domain, the immutable rank-local collection
// of patch.Info that pins down a single level's topology, and Generator,
// the finest-to-coarsest sequence a multigrid hierarchy is built from.
//
// Grounded on gofem/fem/domain.go's construction-time invariant
// validation and collective-reduction pattern (there: "Σ over local
// dofs"; here: Σ over local cells), adapted to consume a finished patch
// graph rather than build one from a mesh file, per spec §1's explicit
// Non-goal ("we consume the finished patch graph, not the tree
// refinement algorithm").
package domain

import (
	"fmt"
	"sync/atomic"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/patch"
)

var nonceCounter int64

func nextNonce() int64 { return atomic.AddInt64(&nonceCounter, 1) }

// Domain is the immutable, rank-local collection of patch.Info plus the
// global invariants spec §3 requires. Equality of Domain is by identity
// (the id nonce), never structural comparison, per spec §3's Vector
// note.
type Domain struct {
	id   int64
	dim  int
	comm comm.Communicator

	patches       []*patch.Info // ordered by LocalIndex == position
	numGhostCells int

	numGlobalPatches int
	numGlobalCells   int
}

// ID is a stable nonce used to check Domain identity across components
// (spec §4.3).
func (d *Domain) ID() int64 { return d.id }

func (d *Domain) Dim() int                { return d.dim }
func (d *Domain) NumGhostCells() int      { return d.numGhostCells }
func (d *Domain) Communicator() comm.Communicator { return d.comm }

// Patches returns the local patches, ordered by LocalIndex, which equals
// position in the slice.
func (d *Domain) Patches() []*patch.Info { return d.patches }

func (d *Domain) NumLocalPatches() int { return len(d.patches) }

func (d *Domain) NumLocalCells() int {
	n := 0
	for _, p := range d.patches {
		n += p.NumCells()
	}
	return n
}

func (d *Domain) NumGlobalPatches() int { return d.numGlobalPatches }
func (d *Domain) NumGlobalCells() int   { return d.numGlobalCells }

// PatchByID finds a local patch by id, or returns ok=false if it's not
// owned by this rank.
func (d *Domain) PatchByID(id patch.ID) (*patch.Info, bool) {
	for _, p := range d.patches {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// New validates invariants 1-6 of spec §3 across the whole communicator
// (collectively) and returns the Domain, or the first
// DomainInvariantViolation found.
func New(c comm.Communicator, dim int, localPatches []*patch.Info) (*Domain, error) {
	for i, p := range localPatches {
		if p.LocalIndex != i {
			return nil, DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("local_index %d does not match position %d", p.LocalIndex, i)}
		}
	}

	numGhost := -1
	for _, p := range localPatches {
		if numGhost == -1 {
			numGhost = p.NumGhostCells
		} else if p.NumGhostCells != numGhost {
			return nil, DomainInvariantViolation{PatchID: p.ID, Detail: "num_ghost_cells is not uniform within the Domain"}
		}
		for axis, n := range p.Ns {
			if n <= 0 {
				return nil, DomainInvariantViolation{PatchID: p.ID, Detail: fmt.Sprintf("ns[%d]=%d is not positive", axis, n)}
			}
		}
	}
	if numGhost < 0 {
		numGhost = 0
	}

	d := &Domain{id: nextNonce(), dim: dim, comm: c, patches: localPatches, numGhostCells: numGhost}

	if err := validateGlobal(c, dim, localPatches); err != nil {
		return nil, err
	}

	if err := d.reduceGlobals(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Domain) reduceGlobals() error {
	buf := []float64{float64(len(d.patches)), float64(d.NumLocalCells())}
	if err := d.comm.AllReduceSumFloat64(buf); err != nil {
		return err
	}
	d.numGlobalPatches = int(buf[0] + 0.5)
	d.numGlobalCells = int(buf[1] + 0.5)
	return nil
}

// Volume returns the collective sum of every local patch's interior
// volume (Πspacings · Πns). Spec §4.3's sibling reduction, `integrate`,
// needs real field data and so lives on `*vector.Vector` instead
// (vector.Vector.Integrate): Domain cannot import vector without a
// cycle, since Vector already depends on Domain.
func Volume(d *Domain) (float64, error) {
	local := 0.0
	for _, p := range d.patches {
		v := 1.0
		for i, s := range p.Spacings {
			v *= s * float64(p.Ns[i])
		}
		local += v
	}
	buf := []float64{local}
	if err := d.comm.AllReduceSumFloat64(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}
