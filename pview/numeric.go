package pview

import (
	"fmt"
	"math"
)

// The numeric helpers below let a PatchView stand in for the patch-local
// "vector" a single-patch Krylov solve iterates over (grounded on
// original_source/src/ThunderEgg/Iterative/PatchSolver.h's SingleVG/
// SinglePatchVec, which wrap exactly one patch's storage as a Vector for
// that inner solve). They only ever touch interior cells — ghosts are
// someone else's responsibility (the ghost filler, or a coarser/finer
// neighbor) and never participate in the patch-local linear algebra.

func (v *PatchView) forEachInterior(fn func(off int)) {
	var rec func(axis, offset int)
	rec = func(axis, offset int) {
		if axis == v.Dim() {
			fn(offset)
			return
		}
		for c := 0; c < v.lengths[axis]; c++ {
			rec(axis+1, offset+v.strides[axis]*c)
		}
	}
	rec(0, v.base)
}

func (v *PatchView) sameShape(other *PatchView) error {
	if v.Dim() != other.Dim() {
		return fmt.Errorf("pview: dimension mismatch (%d vs %d)", v.Dim(), other.Dim())
	}
	for a := range v.lengths {
		if v.lengths[a] != other.lengths[a] {
			return fmt.Errorf("pview: shape mismatch on axis %d (%d vs %d)", a, v.lengths[a], other.lengths[a])
		}
	}
	return nil
}

// Dot returns the interior inner product of v and other.
func (v *PatchView) Dot(other *PatchView) (float64, error) {
	if err := v.sameShape(other); err != nil {
		return 0, err
	}
	sum := 0.0
	// Walk both views' interiors in lockstep by re-deriving other's
	// offsets from v's coordinates rather than assuming shared strides.
	coords := make([]int, v.Dim())
	var rec func(axis int)
	rec = func(axis int) {
		if axis == v.Dim() {
			a, _ := v.At(coords...)
			b, _ := other.At(coords...)
			sum += a * b
			return
		}
		for c := 0; c < v.lengths[axis]; c++ {
			coords[axis] = c
			rec(axis + 1)
		}
	}
	rec(0)
	return sum, nil
}

// TwoNorm returns the interior Euclidean norm.
func (v *PatchView) TwoNorm() (float64, error) {
	d, err := v.Dot(v)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(d), nil
}

// Scale multiplies every interior cell by alpha.
func (v *PatchView) Scale(alpha float64) {
	v.forEachInterior(func(off int) { v.data[off] *= alpha })
}

// AddScaled computes v += alpha*other over interior cells.
func (v *PatchView) AddScaled(alpha float64, other *PatchView) error {
	if err := v.sameShape(other); err != nil {
		return err
	}
	coords := make([]int, v.Dim())
	var rec func(axis int)
	rec = func(axis int) {
		if axis == v.Dim() {
			b, _ := other.At(coords...)
			cur, _ := v.At(coords...)
			_ = v.Set(cur+alpha*b, coords...)
			return
		}
		for c := 0; c < v.lengths[axis]; c++ {
			coords[axis] = c
			rec(axis + 1)
		}
	}
	rec(0)
	return nil
}

// Copy overwrites v's interior with other's.
func (v *PatchView) Copy(other *PatchView) error {
	if err := v.sameShape(other); err != nil {
		return err
	}
	coords := make([]int, v.Dim())
	var rec func(axis int)
	rec = func(axis int) {
		if axis == v.Dim() {
			b, _ := other.At(coords...)
			_ = v.Set(b, coords...)
			return
		}
		for c := 0; c < v.lengths[axis]; c++ {
			coords[axis] = c
			rec(axis + 1)
		}
	}
	rec(0)
	return nil
}

// Clone returns an independent, ghost-less PatchView with its own
// backing storage, initialized from v's interior values. Used for the
// temporaries a patch-local Krylov solve needs (grounded on
// PatchSolver.h's SingleVG::getNewVector, which allocates a fresh
// patch-sized ValVector for exactly this purpose).
func (v *PatchView) Clone() *PatchView {
	lengths := append([]int(nil), v.lengths...)
	strides := stridesRowMajor(lengths)
	total := 1
	for _, n := range lengths {
		total *= n
	}
	data := make([]float64, total)
	clone := &PatchView{data: data, base: 0, strides: strides, lengths: lengths, numGhost: 0}
	coords := make([]int, v.Dim())
	var rec func(axis int)
	rec = func(axis int) {
		if axis == v.Dim() {
			val, _ := v.At(coords...)
			_ = clone.Set(val, coords...)
			return
		}
		for c := 0; c < v.lengths[axis]; c++ {
			coords[axis] = c
			rec(axis + 1)
		}
	}
	rec(0)
	return clone
}

func stridesRowMajor(lengths []int) []int {
	s := make([]int, len(lengths))
	if len(s) == 0 {
		return s
	}
	s[0] = 1
	for i := 1; i < len(lengths); i++ {
		s[i] = s[i-1] * lengths[i-1]
	}
	return s
}
