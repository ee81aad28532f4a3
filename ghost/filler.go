// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ghost implements Filler, the MPI-style ghost-cell exchange
// engine of spec §4.7: for every local patch and every face in scope, it
// fills that patch's ghost cells from whichever neighbor (same-level,
// coarser, or finer) is declared there, whether that neighbor lives on
// this rank or another.
//
// Grounded on gofem/fem/solver.go's MPI-gated driver loop (checking
// whether a neighbor is local before choosing a collective path) and
// original_source/src/ThunderEgg/BiLinearGhostFiller.cpp for the exact
// fill-rule weights (see rules.go) and the odd-cell-count
// UnsupportedFeature check performed at construction.
package ghost

import (
	"sort"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/domain"
	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
	"github.com/cpmech/gomg/vector"
)

// Filler exchanges ghost cells across every local patch of a fixed
// Domain, for a fixed set of components and a fixed fill scope (spec
// §4.7's GhostFillingType).
type Filler struct {
	dom           *domain.Domain
	scope         face.Scope
	numComponents int
}

// NewFiller validates that every local patch's cell count is even along
// every axis (bilinear/trilinear fill needs a clean coarse/fine halving)
// and returns a Filler for dom.
func NewFiller(dom *domain.Domain, scope face.Scope, numComponents int) (*Filler, error) {
	for _, p := range dom.Patches() {
		for _, n := range p.Ns {
			if n%2 != 0 {
				return nil, UnsupportedFeature{What: "patch has an odd cell count on an axis, which bilinear/trilinear ghost fill cannot halve cleanly"}
			}
		}
	}
	return &Filler{dom: dom, scope: scope, numComponents: numComponents}, nil
}

func (fl *Filler) Domain() *domain.Domain { return fl.dom }
func (fl *Filler) Scope() face.Scope      { return fl.scope }

func (fl *Filler) faces() []face.Face {
	return face.AllFaces(fl.dom.Dim(), fl.scope)
}

// remoteTarget is one recipient of a contributed interior slice: a
// (patch id, owning rank) pair, possibly on this rank itself.
type remoteTarget struct {
	id   patch.ID
	rank patch.Rank
}

// tagFor derives a message tag that uniquely identifies one contributor
// patch's data headed for one target patch's ghost on one face, for one
// component. Not collision-proof at arbitrary scale — adequate for the
// patch counts and component counts this package is exercised against;
// see DESIGN.md.
func tagFor(target patch.ID, f face.Face, contributor patch.ID, comp int) int {
	faceCode := int(f.Kind())*1000 + f.Index()
	return ((int(target)*1000003+int(contributor))*97+faceCode)*1024 + comp
}

func sizeOf(lens []int) int {
	n := 1
	for _, l := range lens {
		n *= l
	}
	return n
}

func stridesRowMajor(lens []int) []int {
	s := make([]int, len(lens))
	acc := 1
	for i, n := range lens {
		s[i] = acc
		acc *= n
	}
	return s
}

// packSlice flattens v into a row-major buffer, so it can travel over
// comm.Communicator's []float64-only wire.
func packSlice(v *pview.PatchView) ([]float64, error) {
	lens := v.Lengths()
	strides := stridesRowMajor(lens)
	buf := make([]float64, sizeOf(lens))
	err := forEachIndex(lens, func(idx []int) error {
		val, err := v.At(idx...)
		if err != nil {
			return err
		}
		off := 0
		for i, c := range idx {
			off += c * strides[i]
		}
		buf[off] = val
		return nil
	})
	return buf, err
}

// bufferView wraps a received flat buffer as a PatchView shaped lens, so
// the same rule functions in rules.go serve both local and cross-rank
// contributions.
func bufferView(buf []float64, lens []int) *pview.PatchView {
	return pview.New(buf, 0, stridesRowMajor(lens), lens, 0)
}

type deferredContribution struct {
	contributorID patch.ID
	apply         func() error
}

type pendingRecv struct {
	req           comm.Request
	contributorID patch.ID
	apply         func() error
}

// FillGhost fills every local patch's ghost cells, in this Filler's
// scope, from its declared neighbors — local ones read directly out of
// vec's other patches, remote ones exchanged over the Domain's
// Communicator per spec §4.7.2's post/compute/drain/complete sequence.
func (fl *Filler) FillGhost(vec *vector.Vector) error {
	if vec.Domain().ID() != fl.dom.ID() {
		return vector.VectorShapeMismatch{Detail: "vec does not belong to this Filler's Domain"}
	}
	if vec.NumComponents() != fl.numComponents {
		return vector.VectorShapeMismatch{Detail: "vec's component count does not match this Filler's"}
	}

	c := fl.dom.Communicator()
	rank := patch.Rank(c.Rank())
	faces := fl.faces()

	if err := fl.preZero(vec, faces); err != nil {
		return err
	}

	var deferred []deferredContribution
	var recvs []pendingRecv
	var sendReqs []comm.Request

	for _, p := range fl.dom.Patches() {
		for _, f := range faces {
			ok, err := p.HasNbr(f)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			kind, _, err := p.NbrType(f)
			if err != nil {
				return err
			}

			var targets []remoteTarget
			var coarseOrth face.Orthant
			switch kind {
			case patch.KindNormal:
				nb, err := p.NormalNbrAt(f)
				if err != nil {
					return err
				}
				targets = []remoteTarget{{nb.NbrID, nb.NbrRank}}
			case patch.KindCoarse:
				nb, err := p.CoarseNbrAt(f)
				if err != nil {
					return err
				}
				targets = []remoteTarget{{nb.NbrID, nb.NbrRank}}
				coarseOrth = nb.OrthOnCoarse
			case patch.KindFine:
				nb, err := p.FineNbrAt(f)
				if err != nil {
					return err
				}
				targets = make([]remoteTarget, len(nb.NbrIDs))
				for i := range nb.NbrIDs {
					targets[i] = remoteTarget{nb.NbrIDs[i], nb.NbrRanks[i]}
				}
			}

			for comp := 0; comp < fl.numComponents; comp++ {
				if err := fl.sendInterior(vec, p, f, targets, comp, rank, &sendReqs); err != nil {
					return err
				}
				if err := fl.scheduleReceive(vec, p, f, kind, targets, coarseOrth, comp, rank, &deferred, &recvs); err != nil {
					return err
				}
				if err := fl.selfCorrect(vec, p, f, kind, comp); err != nil {
					return err
				}
			}
		}
	}

	for _, r := range recvs {
		if err := r.req.Wait(); err != nil {
			return CommunicationFailure{Rank: int(rank), Stage: "draining ghost receives"}
		}
		deferred = append(deferred, deferredContribution{contributorID: r.contributorID, apply: r.apply})
	}

	sort.Slice(deferred, func(i, j int) bool { return deferred[i].contributorID < deferred[j].contributorID })
	for _, ct := range deferred {
		if err := ct.apply(); err != nil {
			return err
		}
	}

	for _, s := range sendReqs {
		if err := s.Wait(); err != nil {
			return CommunicationFailure{Rank: int(rank), Stage: "awaiting ghost sends"}
		}
	}
	return nil
}

// sendInterior packs p's own interior slice on f and ships it to every
// remote target (same-rank targets need no message: the receiving side
// reads p's storage directly).
func (fl *Filler) sendInterior(vec *vector.Vector, p *patch.Info, f face.Face, targets []remoteTarget, comp int, rank patch.Rank, sendReqs *[]comm.Request) error {
	var packed []float64
	var packErr error
	packOnce := func() ([]float64, error) {
		if packed != nil || packErr != nil {
			return packed, packErr
		}
		view, err := vec.GetComponentView(comp, p.ID)
		if err != nil {
			packErr = err
			return nil, err
		}
		interior, err := view.SliceOn(f, 0)
		if err != nil {
			packErr = err
			return nil, err
		}
		packed, packErr = packSlice(interior)
		return packed, packErr
	}

	c := fl.dom.Communicator()
	for _, t := range targets {
		if t.rank == rank {
			continue
		}
		buf, err := packOnce()
		if err != nil {
			return err
		}
		tag := tagFor(t.id, f.Opposite(), p.ID, comp)
		req, err := c.ISend(int(t.rank), tag, buf)
		if err != nil {
			return err
		}
		*sendReqs = append(*sendReqs, req)
	}
	return nil
}

// scheduleReceive arranges for p's own ghost on f to be filled from
// each target's interior: an immediate (deferred-but-data-in-hand)
// contribution for same-rank targets, a posted IRecv for remote ones.
func (fl *Filler) scheduleReceive(vec *vector.Vector, p *patch.Info, f face.Face, kind patch.NbrKind, targets []remoteTarget, coarseOrth face.Orthant, comp int, rank patch.Rank, deferred *[]deferredContribution, recvs *[]pendingRecv) error {
	ownView, err := vec.GetComponentView(comp, p.ID)
	if err != nil {
		return err
	}
	ownGhost, err := ownView.SliceOn(f, -1)
	if err != nil {
		return err
	}

	m := len(face.FreeAxes(f, fl.dom.Dim()))
	orthants := face.AllOrthants(m)

	for i, t := range targets {
		orth := coarseOrth
		if kind == patch.KindFine {
			orth = orthants[i]
		}

		applyFor := func(neighborInterior *pview.PatchView) func() error {
			switch kind {
			case patch.KindNormal:
				return func() error { return copyNormal(neighborInterior, ownGhost) }
			case patch.KindCoarse:
				return func() error { return accumulateFineFromCoarse(neighborInterior, ownGhost, orth) }
			case patch.KindFine:
				return func() error { return accumulateCoarseFromFine(neighborInterior, ownGhost, orth) }
			}
			return func() error { return nil }
		}

		if t.rank == rank {
			nbrView, err := vec.GetComponentView(comp, t.id)
			if err != nil {
				return err
			}
			nbrInterior, err := nbrView.SliceOn(f.Opposite(), 0)
			if err != nil {
				return err
			}
			*deferred = append(*deferred, deferredContribution{contributorID: t.id, apply: applyFor(nbrInterior)})
			continue
		}

		buf := make([]float64, sizeOf(ownGhost.Lengths()))
		tag := tagFor(p.ID, f, t.id, comp)
		req, err := fl.dom.Communicator().IRecv(int(t.rank), tag, buf)
		if err != nil {
			return err
		}
		bv := bufferView(buf, ownGhost.Lengths())
		*recvs = append(*recvs, pendingRecv{req: req, contributorID: t.id, apply: applyFor(bv)})
	}
	return nil
}

// selfCorrect applies the purely local correction a patch makes to its
// own ghost at a Coarse- or Fine-backed face; Normal faces need none.
func (fl *Filler) selfCorrect(vec *vector.Vector, p *patch.Info, f face.Face, kind patch.NbrKind, comp int) error {
	if kind == patch.KindNormal {
		return nil
	}
	view, err := vec.GetComponentView(comp, p.ID)
	if err != nil {
		return err
	}
	interior, err := view.SliceOn(f, 0)
	if err != nil {
		return err
	}
	ghostSlice, err := view.SliceOn(f, -1)
	if err != nil {
		return err
	}
	switch kind {
	case patch.KindCoarse:
		nb, err := p.CoarseNbrAt(f)
		if err != nil {
			return err
		}
		return correctFineOwnGhostAtCoarseBoundary(interior, ghostSlice, nb.OrthOnCoarse)
	case patch.KindFine:
		return correctCoarseOwnGhostAtFineBoundary(interior, ghostSlice)
	}
	return nil
}

// preZero clears the ghost region of every local patch's face that has
// a declared neighbor, once per patch/face/component, before any
// contribution accumulates into it. Boundary ghost cells (no declared
// neighbor) are left untouched, since a fill never owns their contents.
func (fl *Filler) preZero(vec *vector.Vector, faces []face.Face) error {
	for _, p := range fl.dom.Patches() {
		for _, f := range faces {
			ok, err := p.HasNbr(f)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			for comp := 0; comp < fl.numComponents; comp++ {
				view, err := vec.GetComponentView(comp, p.ID)
				if err != nil {
					return err
				}
				ghostSlice, err := view.SliceOn(f, -1)
				if err != nil {
					return err
				}
				if err := forEachIndex(ghostSlice.Lengths(), func(idx []int) error {
					return ghostSlice.Set(0, idx...)
				}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
