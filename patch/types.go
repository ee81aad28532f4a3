// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patch implements PatchInfo and the three NbrInfo variants
// (Normal, Coarse, Fine) that describe how one patch relates to its
// same-level, coarser, and finer neighbors across every face.
//
// Grounded on gofem/fem/node.go's struct-of-typed-subrecords entity
// model: a PatchInfo, like a gofem Node, is a flat bag of attributes
// plus a handful of typed neighbor records, never an inheritance
// hierarchy.
package patch

import (
	"fmt"

	"github.com/cpmech/gomg/face"
)

// ID is a patch's globally unique identifier, stable within a Domain.
type ID int64

// Rank is the owning MPI-style process rank.
type Rank int

// NbrKind tags which NbrInfo variant is stored for a face.
type NbrKind int

const (
	KindNormal NbrKind = iota
	KindCoarse
	KindFine
)

func (k NbrKind) String() string {
	switch k {
	case KindNormal:
		return "NORMAL"
	case KindCoarse:
		return "COARSE"
	case KindFine:
		return "FINE"
	default:
		return "UNKNOWN"
	}
}

// NbrInfo is the polymorphic (sum-type) neighbor descriptor for one
// face. Exactly one of NormalNbr, CoarseNbr, FineNbr implements it for
// any given face.
type NbrInfo interface {
	Kind() NbrKind
}

// NormalNbr: the neighbor across a face is exactly one same-level patch.
type NormalNbr struct {
	NbrID   ID
	NbrRank Rank
}

func (NormalNbr) Kind() NbrKind { return KindNormal }

// CoarseNbr: the neighbor is one patch at refine_level-1; OrthOnCoarse
// is which sub-orthant of the coarse face THIS patch occupies.
type CoarseNbr struct {
	NbrID        ID
	NbrRank      Rank
	OrthOnCoarse face.Orthant
}

func (CoarseNbr) Kind() NbrKind { return KindCoarse }

// FineNbr: the neighbor is 2^m patches at refine_level+1, one per
// orthant of an m-dimensional face.
type FineNbr struct {
	NbrIDs   []ID
	NbrRanks []Rank
}

func (FineNbr) Kind() NbrKind { return KindFine }

// Info is one patch's complete metadata: geometry, refinement lineage,
// and per-face neighbor descriptors. Once published as part of a
// Domain, an Info is immutable; callers must treat every field as
// read-only.
type Info struct {
	ID          ID
	Rank        Rank
	LocalIndex  int // dense contiguous index on the owning rank
	GlobalIndex int // rank-agnostic, dense across the communicator
	RefineLevel int

	HasParent    bool
	ParentID     ID
	ParentRank   Rank
	OrthOnParent face.Orthant

	// ChildIDs/ChildRanks have length 2^Dim; an entry of -1 in ChildIDs
	// means "no child in that orthant."
	ChildIDs   []ID
	ChildRanks []Rank

	Dim           int // 2 or 3
	Ns            []int
	NumGhostCells int
	Starts        []float64
	Spacings      []float64

	// Nbrs holds, for every face present at this patch's dimension and
	// every lower face-dimensionality (sides, and in 3-D edges and
	// corners), the optional neighbor descriptor. A missing entry means
	// "physical boundary" per invariant 4.
	Nbrs map[face.Face]NbrInfo
}

// NewInfo builds a patch with an empty neighbor map and no parent/child
// links; callers fill in Nbrs/Child* before publishing into a Domain.
func NewInfo(id ID, rank Rank, dim int, ns []int, numGhost int, starts, spacings []float64) *Info {
	return &Info{
		ID:            id,
		Rank:          rank,
		Dim:           dim,
		Ns:            append([]int(nil), ns...),
		NumGhostCells: numGhost,
		Starts:        append([]float64(nil), starts...),
		Spacings:      append([]float64(nil), spacings...),
		ChildIDs:      noChildren(dim),
		ChildRanks:    make([]Rank, 1<<uint(dim)),
		Nbrs:          map[face.Face]NbrInfo{},
	}
}

func noChildren(dim int) []ID {
	out := make([]ID, 1<<uint(dim))
	for i := range out {
		out[i] = -1
	}
	return out
}

func (p *Info) validFace(f face.Face) bool {
	switch p.Dim {
	case 2:
		return f.Kind() == face.KindSide2 || f.Kind() == face.KindCorner2
	case 3:
		return f.Kind() == face.KindSide3 || f.Kind() == face.KindEdge3 || f.Kind() == face.KindCorner3
	}
	return false
}

// HasNbr reports whether face f has a declared neighbor (of any kind).
func (p *Info) HasNbr(f face.Face) (bool, error) {
	if !p.validFace(f) {
		return false, FaceOutOfRange{Face: f, Dim: p.Dim}
	}
	_, ok := p.Nbrs[f]
	return ok, nil
}

// NbrType reports which NbrKind is stored for face f, or ok=false if f
// has no declared neighbor (a physical boundary).
func (p *Info) NbrType(f face.Face) (kind NbrKind, ok bool, err error) {
	if !p.validFace(f) {
		return 0, false, FaceOutOfRange{Face: f, Dim: p.Dim}
	}
	n, present := p.Nbrs[f]
	if !present {
		return 0, false, nil
	}
	return n.Kind(), true, nil
}

// NormalNbrAt returns the Normal neighbor at face f, or
// NbrTypeMismatch if a different variant (or no neighbor) is stored.
func (p *Info) NormalNbrAt(f face.Face) (NormalNbr, error) {
	n, err := p.nbrAt(f)
	if err != nil {
		return NormalNbr{}, err
	}
	v, ok := n.(NormalNbr)
	if !ok {
		return NormalNbr{}, NbrTypeMismatch{Face: f, Want: KindNormal, Got: n.Kind()}
	}
	return v, nil
}

// CoarseNbrAt returns the Coarse neighbor at face f.
func (p *Info) CoarseNbrAt(f face.Face) (CoarseNbr, error) {
	n, err := p.nbrAt(f)
	if err != nil {
		return CoarseNbr{}, err
	}
	v, ok := n.(CoarseNbr)
	if !ok {
		return CoarseNbr{}, NbrTypeMismatch{Face: f, Want: KindCoarse, Got: n.Kind()}
	}
	return v, nil
}

// FineNbrAt returns the Fine neighbor(s) at face f.
func (p *Info) FineNbrAt(f face.Face) (FineNbr, error) {
	n, err := p.nbrAt(f)
	if err != nil {
		return FineNbr{}, err
	}
	v, ok := n.(FineNbr)
	if !ok {
		return FineNbr{}, NbrTypeMismatch{Face: f, Want: KindFine, Got: n.Kind()}
	}
	return v, nil
}

func (p *Info) nbrAt(f face.Face) (NbrInfo, error) {
	if !p.validFace(f) {
		return nil, FaceOutOfRange{Face: f, Dim: p.Dim}
	}
	n, ok := p.Nbrs[f]
	if !ok {
		return nil, fmt.Errorf("patch %d: %w: face %v has no declared neighbor", p.ID, ErrNbrTypeMismatch, f)
	}
	return n, nil
}

// NumCells returns the product of Ns, the patch's interior cell count.
func (p *Info) NumCells() int {
	n := 1
	for _, v := range p.Ns {
		n *= v
	}
	return n
}
