// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pview implements PatchView, a strided, bounds-checked window
// onto cell-centered patch data, indexable by negative ghost coordinates
// and sliceable onto a lower-dimensional face.
//
// Grounded on gofem/shp's coordinate-indexing conventions (shape
// functions address nodes by a local coordinate tuple); there is no
// corpus library for strided tensor views so the indexing arithmetic is
// written directly against the standard library, per DESIGN.md.
package pview

import (
	"fmt"

	"github.com/cpmech/gomg/face"
)

// ComponentView is a PatchView restricted to one component of a
// multi-component Vector (spec §4.5's "a ComponentView is a PatchView
// for one component").
type ComponentView = PatchView

// PatchView is a reference to a strided region of patch data. base is
// the flat index of the (0,...,0) interior cell; strides/lengths are
// per-axis. It never owns storage: every PatchView, sliced or not,
// shares the backing slice of the Vector it was taken from.
type PatchView struct {
	data     []float64
	base     int
	strides  []int
	lengths  []int
	numGhost int
}

// New constructs a PatchView. basePtr aliases the (0,...,0) interior
// cell; strides and lengths must each have len(lengths) entries.
func New(data []float64, basePtr int, strides, lengths []int, numGhostCells int) *PatchView {
	return &PatchView{
		data:     data,
		base:     basePtr,
		strides:  append([]int(nil), strides...),
		lengths:  append([]int(nil), lengths...),
		numGhost: numGhostCells,
	}
}

func (v *PatchView) Dim() int           { return len(v.lengths) }
func (v *PatchView) Lengths() []int     { return v.lengths }
func (v *PatchView) Strides() []int     { return v.strides }
func (v *PatchView) NumGhostCells() int { return v.numGhost }

func (v *PatchView) offset(coord []int) (int, error) {
	if len(coord) != v.Dim() {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrCoordLenMismatch, len(coord), v.Dim())
	}
	off := v.base
	for a, c := range coord {
		lo, hi := -v.numGhost, v.lengths[a]+v.numGhost-1
		if c < lo || c > hi {
			return 0, OutOfBounds{Axis: a, Coord: c, Min: lo, Max: hi}
		}
		off += v.strides[a] * c
	}
	return off, nil
}

// At returns the value at coord, a d-tuple where d == Dim().
func (v *PatchView) At(coord ...int) (float64, error) {
	off, err := v.offset(coord)
	if err != nil {
		return 0, err
	}
	return v.data[off], nil
}

// Set writes value at coord.
func (v *PatchView) Set(value float64, coord ...int) error {
	off, err := v.offset(coord)
	if err != nil {
		return err
	}
	v.data[off] = value
	return nil
}

// axisFix pins one axis of a face to whichever end (lower or upper) the
// face sits at.
type axisFix struct {
	axis  int
	upper bool
}

// fixedAxesOf decomposes f into the (axis, upper) pairs it fixes,
// mirroring face.FreeAxes's type switch but also recording which end of
// each axis the face sits at, needed to resolve the layer offset.
func fixedAxesOf(f face.Face) ([]axisFix, error) {
	switch v := f.(type) {
	case face.Side2:
		return []axisFix{{v.Axis(), v.UpperSide()}}, nil
	case face.Side3:
		return []axisFix{{v.Axis(), v.UpperSide()}}, nil
	case face.Corner2:
		return sidesToFixes2(v.Sides()), nil
	case face.Corner3:
		return sidesToFixes3(v.Sides()), nil
	case face.Edge3:
		return sidesToFixes3(v.Sides()), nil
	default:
		return nil, fmt.Errorf("pview: unrecognized face type %T", f)
	}
}

func sidesToFixes2(sides []face.Side2) []axisFix {
	out := make([]axisFix, len(sides))
	for i, s := range sides {
		out[i] = axisFix{s.Axis(), s.UpperSide()}
	}
	return out
}

func sidesToFixes3(sides []face.Side3) []axisFix {
	out := make([]axisFix, len(sides))
	for i, s := range sides {
		out[i] = axisFix{s.Axis(), s.UpperSide()}
	}
	return out
}

// SliceOn returns a (Dim()-codim(f))-dimensional view fixing f's axes at
// the given layer, per spec §4.5: layer 0 is the first interior layer,
// -1 the first ghost layer, positive values deeper interior. For an
// upper-side axis the fixed coordinate is length-1-layer; for a
// lower-side axis it is layer. The returned view shares storage with
// the receiver.
func (v *PatchView) SliceOn(f face.Face, layer int) (*PatchView, error) {
	fixes, err := fixedAxesOf(f)
	if err != nil {
		return nil, FaceDimensionMismatch{Face: f, Dim: v.Dim()}
	}

	fixedCoord := map[int]int{}
	for _, fx := range fixes {
		if fx.axis < 0 || fx.axis >= v.Dim() {
			return nil, FaceDimensionMismatch{Face: f, Dim: v.Dim()}
		}
		c := layer
		if fx.upper {
			c = v.lengths[fx.axis] - 1 - layer
		}
		lo, hi := -v.numGhost, v.lengths[fx.axis]+v.numGhost-1
		if c < lo || c > hi {
			return nil, OutOfBounds{Axis: fx.axis, Coord: c, Min: lo, Max: hi}
		}
		fixedCoord[fx.axis] = c
	}

	newBase := v.base
	var strides, lengths []int
	for a := 0; a < v.Dim(); a++ {
		if c, fixed := fixedCoord[a]; fixed {
			newBase += v.strides[a] * c
		} else {
			strides = append(strides, v.strides[a])
			lengths = append(lengths, v.lengths[a])
		}
	}
	return &PatchView{data: v.data, base: newBase, strides: strides, lengths: lengths, numGhost: v.numGhost}, nil
}
