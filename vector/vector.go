// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vector implements Vector, the rank-local, multi-component,
// multi-patch field spec §4.6 describes, plus its collective
// reductions.
//
// Grounded on gofem/fem's Solution rank-local storage pattern (a flat
// buffer per entity, reduced collectively at the domain level); the
// whole-buffer elementwise operations (Scale, Shift, SetWithGhost,
// Copy, AddScaled) and local-norm computations reuse
// gofem/fem/e_rjoint.go and gofem/fem/solver.go's la.VecScale/
// la.VecAdd/la.VecCopy/la.VecFill/la.VecNorm/la.VecLargest calls; the
// collective reductions go through the comm.Communicator each Vector
// was built against.
package vector

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gomg/domain"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/pview"
)

// Vector is a rank-local, multi-component field over every local patch
// of a Domain. Storage per patch includes the ghost ring, since
// ComponentViews must address ghost coordinates directly.
type Vector struct {
	dom           *domain.Domain
	numComponents int
	data          [][]float64 // per local patch: component-major flat buffer
}

// New allocates zeroed storage for numComponents components over every
// local patch of dom.
func New(dom *domain.Domain, numComponents int) *Vector {
	patches := dom.Patches()
	data := make([][]float64, len(patches))
	for i, p := range patches {
		cells := extendedCells(p, dom.NumGhostCells())
		data[i] = make([]float64, numComponents*cells)
	}
	return &Vector{dom: dom, numComponents: numComponents, data: data}
}

func (v *Vector) Domain() *domain.Domain { return v.dom }
func (v *Vector) NumComponents() int     { return v.numComponents }

func extendedDims(p *patch.Info, g int) []int {
	ext := make([]int, len(p.Ns))
	for i, n := range p.Ns {
		ext[i] = n + 2*g
	}
	return ext
}

func extendedCells(p *patch.Info, g int) int {
	n := 1
	for _, e := range extendedDims(p, g) {
		n *= e
	}
	return n
}

func stridesOf(ext []int) []int {
	s := make([]int, len(ext))
	s[0] = 1
	for i := 1; i < len(ext); i++ {
		s[i] = s[i-1] * ext[i-1]
	}
	return s
}

func (v *Vector) patchIndex(localPatchID patch.ID) (int, *patch.Info, error) {
	for i, p := range v.dom.Patches() {
		if p.ID == localPatchID {
			return i, p, nil
		}
	}
	return 0, nil, VectorShapeMismatch{Detail: "patch is not local to this Vector's Domain"}
}

// GetComponentView returns the ComponentView for component c of patch
// localPatchID; base_ptr aliases the (0,...,0) interior cell per
// spec §4.5.
func (v *Vector) GetComponentView(c int, localPatchID patch.ID) (*pview.ComponentView, error) {
	if c < 0 || c >= v.numComponents {
		return nil, VectorShapeMismatch{Detail: "component index out of range"}
	}
	idx, p, err := v.patchIndex(localPatchID)
	if err != nil {
		return nil, err
	}
	g := v.dom.NumGhostCells()
	ext := extendedDims(p, g)
	strides := stridesOf(ext)
	cellsPerComp := 1
	for _, e := range ext {
		cellsPerComp *= e
	}
	base := c * cellsPerComp
	for _, s := range strides {
		base += g * s
	}
	return pview.New(v.data[idx], base, strides, p.Ns, g), nil
}

// checkShape enforces spec §4.6's invariant: arithmetic between two
// Vectors requires identical Domain id and component count.
func (v *Vector) checkShape(other *Vector) error {
	if v.dom.ID() != other.dom.ID() {
		return VectorShapeMismatch{Detail: "operands belong to different Domains"}
	}
	if v.numComponents != other.numComponents {
		return VectorShapeMismatch{Detail: "operands have different component counts"}
	}
	return nil
}

func walkInterior(p *patch.Info, g int, fn func(linear int)) {
	ext := extendedDims(p, g)
	strides := stridesOf(ext)
	var rec func(axis, offset int)
	rec = func(axis, offset int) {
		if axis == len(ext) {
			fn(offset)
			return
		}
		for coord := g; coord < g+p.Ns[axis]; coord++ {
			rec(axis+1, offset+coord*strides[axis])
		}
	}
	rec(0, 0)
}

// Set writes value into every interior cell of every component, leaving
// ghost cells untouched.
func (v *Vector) Set(value float64) {
	g := v.dom.NumGhostCells()
	for i, p := range v.dom.Patches() {
		cellsPerComp := extendedCells(p, g)
		for c := 0; c < v.numComponents; c++ {
			compOff := c * cellsPerComp
			walkInterior(p, g, func(off int) { v.data[i][compOff+off] = value })
		}
	}
}

// SetWithGhost writes value into every cell, interior and ghost alike,
// of every component.
func (v *Vector) SetWithGhost(value float64) {
	for _, buf := range v.data {
		la.VecFill(buf, value)
	}
}

// Zero sets every interior cell to zero (ghosts untouched).
func (v *Vector) Zero() { v.Set(0) }

// Scale multiplies every stored value (interior and ghost) by alpha.
func (v *Vector) Scale(alpha float64) {
	for _, buf := range v.data {
		la.VecScale(buf, 0, alpha, buf)
	}
}

// Shift adds alpha to every stored value (interior and ghost).
func (v *Vector) Shift(alpha float64) {
	for _, buf := range v.data {
		la.VecScale(buf, alpha, 1, buf)
	}
}

// Copy overwrites the receiver's storage with other's.
func (v *Vector) Copy(other *Vector) error {
	if err := v.checkShape(other); err != nil {
		return err
	}
	for i := range v.data {
		la.VecCopy(v.data[i], 1.0, other.data[i])
	}
	return nil
}

// AddScaled computes v += alpha*other.
func (v *Vector) AddScaled(alpha float64, other *Vector) error {
	if err := v.checkShape(other); err != nil {
		return err
	}
	for i := range v.data {
		la.VecAdd(v.data[i], alpha, other.data[i])
	}
	return nil
}

// GetZeroClone returns a new Vector with the same Domain and component
// count, zeroed.
func (v *Vector) GetZeroClone() *Vector {
	return New(v.dom, v.numComponents)
}

// Clone returns an independent deep copy, used for the temporaries a
// Krylov solve needs (r, p, v, s, t, ...).
func (v *Vector) Clone() *Vector {
	c := v.GetZeroClone()
	_ = c.Copy(v) // same Domain/component count by construction; cannot fail
	return c
}

// gatherInterior copies patch p's interior cells of the component
// starting at compOff into a contiguous slice, so the corpus's
// la.VecNorm/la.VecLargest (which expect a plain, densely packed slice)
// can be applied to it directly.
func gatherInterior(buf []float64, p *patch.Info, g, compOff int) []float64 {
	out := make([]float64, 0, p.NumCells())
	walkInterior(p, g, func(off int) { out = append(out, buf[compOff+off]) })
	return out
}

// TwoNorm returns the collective L2 norm over interior cells of every
// component.
func (v *Vector) TwoNorm() (float64, error) {
	g := v.dom.NumGhostCells()
	localSumSq := 0.0
	for i, p := range v.dom.Patches() {
		cellsPerComp := extendedCells(p, g)
		for c := 0; c < v.numComponents; c++ {
			n := la.VecNorm(gatherInterior(v.data[i], p, g, c*cellsPerComp))
			localSumSq += n * n
		}
	}
	buf := []float64{localSumSq}
	if err := v.dom.Communicator().AllReduceSumFloat64(buf); err != nil {
		return 0, err
	}
	return math.Sqrt(buf[0]), nil
}

// InfNorm returns the collective max-abs over interior cells of every
// component.
func (v *Vector) InfNorm() (float64, error) {
	g := v.dom.NumGhostCells()
	local := 0.0
	for i, p := range v.dom.Patches() {
		cellsPerComp := extendedCells(p, g)
		for c := 0; c < v.numComponents; c++ {
			m := la.VecLargest(gatherInterior(v.data[i], p, g, c*cellsPerComp), 1)
			if m > local {
				local = m
			}
		}
	}
	buf := []float64{local}
	if err := v.dom.Communicator().AllReduceMaxFloat64(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Integrate returns the collective reduction Σ_patches Σ_cells
// v[c]·cellVolume over component c's interior cells (spec §4.3's
// `integrate(vector) -> scalar`, grouped with TwoNorm/Dot as one of
// spec §8's three Vector reductions).
func (v *Vector) Integrate(c int) (float64, error) {
	if c < 0 || c >= v.numComponents {
		return 0, VectorShapeMismatch{Detail: "component index out of range"}
	}
	g := v.dom.NumGhostCells()
	local := 0.0
	for i, p := range v.dom.Patches() {
		cellVol := 1.0
		for _, s := range p.Spacings {
			cellVol *= s
		}
		cellsPerComp := extendedCells(p, g)
		compOff := c * cellsPerComp
		walkInterior(p, g, func(off int) {
			local += v.data[i][compOff+off] * cellVol
		})
	}
	buf := []float64{local}
	if err := v.dom.Communicator().AllReduceSumFloat64(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// Volume returns the collective sum of every local patch's interior
// volume (spec §4.3's `volume() -> scalar`), delegating to
// domain.Volume since it is pure domain geometry and needs no data from
// this particular Vector.
func (v *Vector) Volume() (float64, error) {
	return domain.Volume(v.dom)
}

// Dot returns the collective inner product over interior cells of every
// component.
func (v *Vector) Dot(other *Vector) (float64, error) {
	if err := v.checkShape(other); err != nil {
		return 0, err
	}
	g := v.dom.NumGhostCells()
	local := 0.0
	for i, p := range v.dom.Patches() {
		cellsPerComp := extendedCells(p, g)
		for c := 0; c < v.numComponents; c++ {
			compOff := c * cellsPerComp
			walkInterior(p, g, func(off int) {
				local += v.data[i][compOff+off] * other.data[i][compOff+off]
			})
		}
	}
	buf := []float64{local}
	if err := v.dom.Communicator().AllReduceSumFloat64(buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}
