// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testfield provides stationary analytic scalar fields, used by
// scenario tests to seed a Vector's interior with a known function and
// check the populated values (ghost-fill, patch-local discrete
// operators, and solver convergence) against it to within a tolerance.
//
// Grounded on gofem/inp/sim.go's use of gosl/fun.Func (e.g.
// DtFunc.F(t, nil) for a time-step function): the same fun.Func
// contract is implemented here for a PDE's RHS/exact-solution pair,
// reusing the corpus's established way of representing "a closed-form
// function pluggable wherever the solver needs one" instead of a
// hand-rolled closure type.
package testfield

import (
	"math"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/vector"
)

// Field is a stationary (time-independent) scalar field over space,
// satisfying gosl/fun.Func so it composes with anything in the corpus
// that already accepts one.
type Field interface {
	fun.Func
	At(x []float64) float64
}

// spatial adapts a plain spatial function into a Field; the fun.Func
// time-derivative methods are trivially zero since the field never
// varies in t.
type spatial struct {
	f func(x []float64) float64
}

// New wraps f as a Field.
func New(f func(x []float64) float64) Field { return spatial{f: f} }

func (s spatial) At(x []float64) float64                   { return s.f(x) }
func (s spatial) F(t float64, x []float64) float64          { return s.f(x) }
func (s spatial) G(t float64, x []float64) float64          { return 0 }
func (s spatial) H(t float64, x []float64) float64          { return 0 }
func (s spatial) Grad(v []float64, t float64, x []float64) {
	for i := range v {
		v[i] = 0
	}
}

// Linear returns φ(x) = c0 + c1*x0 + c2*x1 [+ c3*x2], i.e. scenario S3's
// φ(x,y)=1+0.3x+y and S6's φ(x,y,z)=1+0.5x+y+7z, parameterized by the
// coefficient list c0, c1, c2, ....
func Linear(coeffs ...float64) Field {
	c := append([]float64(nil), coeffs...)
	return New(func(x []float64) float64 {
		v := c[0]
		for i := 1; i < len(c); i++ {
			v += c[i] * x[i-1]
		}
		return v
	})
}

// PoissonRHS returns scenario S1's forcing term f(x,y) = -5*pi^2 *
// sin(pi*y) * cos(2*pi*x).
func PoissonRHS() Field {
	return New(func(x []float64) float64 {
		return -5 * math.Pi * math.Pi * math.Sin(math.Pi*x[1]) * math.Cos(2*math.Pi*x[0])
	})
}

// PoissonExact returns scenario S1's exact solution u(x,y) =
// sin(pi*y)*cos(2*pi*x).
func PoissonExact() Field {
	return New(func(x []float64) float64 {
		return math.Sin(math.Pi*x[1]) * math.Cos(2*math.Pi*x[0])
	})
}

// cellCenter returns the physical coordinates of cell coord (may be
// negative or beyond Ns, addressing a ghost cell) within patch p.
func cellCenter(p *patch.Info, coord []int) []float64 {
	x := make([]float64, p.Dim)
	for d := 0; d < p.Dim; d++ {
		x[d] = p.Starts[d] + (float64(coord[d])+0.5)*p.Spacings[d]
	}
	return x
}

// walk calls fn(coord, x) for every cell coordinate in [lo, hi) per
// axis (lo/hi given in the patch's own -numGhost..Ns+numGhost range).
func walk(dim int, lo, hi []int, fn func(coord []int)) {
	coord := make([]int, dim)
	var rec func(axis int)
	rec = func(axis int) {
		if axis == dim {
			fn(coord)
			return
		}
		for c := lo[axis]; c < hi[axis]; c++ {
			coord[axis] = c
			rec(axis + 1)
		}
	}
	rec(0)
}

// FillInterior sets component c of v to field's value at every
// interior cell's center, over every local patch of v's Domain.
func FillInterior(v *vector.Vector, c int, field Field) error {
	return fillRange(v, c, field, func(p *patch.Info) ([]int, []int) {
		lo := make([]int, p.Dim)
		hi := append([]int(nil), p.Ns...)
		return lo, hi
	})
}

// FillWithGhost sets component c of v to field's value at every cell
// center, interior and ghost alike, over every local patch of v's
// Domain. Used to build a reference field whose ghost cells can later
// be zeroed and compared against what a ghost Filler reproduces.
func FillWithGhost(v *vector.Vector, c int, field Field, numGhost int) error {
	return fillRange(v, c, field, func(p *patch.Info) ([]int, []int) {
		lo := make([]int, p.Dim)
		hi := make([]int, p.Dim)
		for d := range lo {
			lo[d] = -numGhost
			hi[d] = p.Ns[d] + numGhost
		}
		return lo, hi
	})
}

func fillRange(v *vector.Vector, c int, field Field, bounds func(p *patch.Info) (lo, hi []int)) error {
	dom := v.Domain()
	for _, p := range dom.Patches() {
		view, err := v.GetComponentView(c, p.ID)
		if err != nil {
			return err
		}
		lo, hi := bounds(p)
		var walkErr error
		walk(p.Dim, lo, hi, func(coord []int) {
			if walkErr != nil {
				return
			}
			x := cellCenter(p, coord)
			if err := view.Set(field.At(x), coord...); err != nil {
				walkErr = err
			}
		})
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

// MaxAbsDiff returns the largest |v[c] - field| over every interior
// cell of every local patch of v's Domain; scenario S1 checks it against
// the grid's O(h^2) discretization error.
func MaxAbsDiff(v *vector.Vector, c int, field Field) (float64, error) {
	dom := v.Domain()
	worst := 0.0
	for _, p := range dom.Patches() {
		view, err := v.GetComponentView(c, p.ID)
		if err != nil {
			return 0, err
		}
		lo := make([]int, p.Dim)
		hi := append([]int(nil), p.Ns...)
		var walkErr error
		walk(p.Dim, lo, hi, func(coord []int) {
			if walkErr != nil {
				return
			}
			got, err := view.At(coord...)
			if err != nil {
				walkErr = err
				return
			}
			want := field.At(cellCenter(p, coord))
			if d := math.Abs(got - want); d > worst {
				worst = d
			}
		})
		if walkErr != nil {
			return 0, walkErr
		}
	}
	return worst, nil
}

// MaxAbsDiffWithGhost is MaxAbsDiff extended to every ghost cell within
// numGhost layers of the interior too.
func MaxAbsDiffWithGhost(v *vector.Vector, c int, field Field, numGhost int) (float64, error) {
	dom := v.Domain()
	worst := 0.0
	for _, p := range dom.Patches() {
		view, err := v.GetComponentView(c, p.ID)
		if err != nil {
			return 0, err
		}
		lo := make([]int, p.Dim)
		hi := make([]int, p.Dim)
		for d := range lo {
			lo[d] = -numGhost
			hi[d] = p.Ns[d] + numGhost
		}
		var walkErr error
		walk(p.Dim, lo, hi, func(coord []int) {
			if walkErr != nil {
				return
			}
			got, err := view.At(coord...)
			if err != nil {
				walkErr = err
				return
			}
			want := field.At(cellCenter(p, coord))
			if d := math.Abs(got - want); d > worst {
				worst = d
			}
		})
		if walkErr != nil {
			return 0, walkErr
		}
	}
	return worst, nil
}
