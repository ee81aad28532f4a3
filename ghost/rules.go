// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ghost

import (
	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/pview"
)

// forEachIndex visits every multi-index over a view of the given
// per-axis lengths, row-major in the last axis (matching pview's own
// stride convention). An empty lengths slice visits the single
// zero-length (corner-face) index exactly once.
func forEachIndex(lengths []int, fn func(idx []int) error) error {
	idx := make([]int, len(lengths))
	var rec func(axis int) error
	rec = func(axis int) error {
		if axis == len(lengths) {
			return fn(idx)
		}
		for c := 0; c < lengths[axis]; c++ {
			idx[axis] = c
			if err := rec(axis + 1); err != nil {
				return err
			}
		}
		return nil
	}
	return rec(0)
}

// halveAndOffset maps a fine-side face-local index to the coarse-side
// slot it backs: coarse = fine/2 + orth.Bit(axis)*lengths[axis]/2. This
// is the same affine map original_source's BiLinearGhostFiller.cpp
// applies (there expressed as (coord+offset)/2 with offset=N on the
// upper orthant; adding the halved offset after dividing is
// arithmetically identical once N is even, which NewFiller enforces).
func halveAndOffset(fineIdx []int, orth face.Orthant, fineLens []int) []int {
	out := make([]int, len(fineIdx))
	for i, c := range fineIdx {
		out[i] = c/2 + orth.Bit(i)*(fineLens[i]/2)
	}
	return out
}

// copyNormal overwrites dst with src, cell for cell; dst and src must
// have identical shape (a same-level neighbor's face is always the same
// size as this patch's). Grounded on BiLinearGhostFiller.cpp's Normal
// case, a plain "=".
func copyNormal(src, dst *pview.PatchView) error {
	return forEachIndex(src.Lengths(), func(idx []int) error {
		v, err := src.At(idx...)
		if err != nil {
			return err
		}
		return dst.Set(v, idx...)
	})
}

// accumulateCoarseFromFine adds one fine neighbor's weighted
// contribution into the coarse patch's ghost cell it backs. Grounded
// literally on BiLinearGhostFiller.cpp's FillGhostCellsForFineNbr/
// FillGhostCellsForCornerFineNbr: weight 2/3 at a side (m=1) and 4/3 at
// a corner (m=0); generalized here to (4/3)/2^m for an m-free-axis
// face, which reduces to both ground-truthed values and is the only
// generalization consistent with both endpoints.
func accumulateCoarseFromFine(fineInterior, coarseGhost *pview.PatchView, orth face.Orthant) error {
	m := fineInterior.Dim()
	weight := (4.0 / 3.0) / float64(int(1)<<uint(m))
	lens := fineInterior.Lengths()
	return forEachIndex(lens, func(idx []int) error {
		v, err := fineInterior.At(idx...)
		if err != nil {
			return err
		}
		tgt := halveAndOffset(idx, orth, lens)
		cur, err := coarseGhost.At(tgt...)
		if err != nil {
			return err
		}
		return coarseGhost.Set(cur+weight*v, tgt...)
	})
}

// accumulateFineFromCoarse adds the coarse neighbor's contribution
// (selected via the fine patch's own orthant on the shared face) into
// the fine patch's ghost cell. Grounded literally on
// BiLinearGhostFiller.cpp's FillGhostCellsForCoarseNbr/
// FillGhostCellsForCornerCoarseNbr: weight 2/3 regardless of m (side or
// corner alike).
func accumulateFineFromCoarse(coarseInterior, fineGhost *pview.PatchView, orth face.Orthant) error {
	const weight = 2.0 / 3.0
	lens := fineGhost.Lengths()
	return forEachIndex(lens, func(idx []int) error {
		src := halveAndOffset(idx, orth, lens)
		v, err := coarseInterior.At(src...)
		if err != nil {
			return err
		}
		cur, err := fineGhost.At(idx...)
		if err != nil {
			return err
		}
		return fineGhost.Set(cur+weight*v, idx...)
	})
}

// correctFineOwnGhostAtCoarseBoundary applies the local self-correction
// a fine patch makes on its own ghost at a face backed by a coarser
// neighbor. Per cell it adds (m+1)/3 of the cell's own interior value
// to its own ghost index and, independently per free axis, -1/3 of it
// to the adjacent ghost cell that shares the coarse target (picked by
// parity, mirroring BiLinearGhostFiller.cpp's "+1 or -1 depending which
// half of the coarse cell this one sits in"). The own weight is 2/3 at
// a 2-D side (the cpp's FillLocalGhostsForNbr literal), 1 at a 3-D side
// and 1/3 at a corner (the cpp's corner literal, with no adjacent
// term); together with accumulateFineFromCoarse's 2/3 the weights on
// each ghost cell sum to 1. The corner (m=0) has its own branch below.
func correctFineOwnGhostAtCoarseBoundary(ownInterior, ownGhost *pview.PatchView, orth face.Orthant) error {
	m := ownInterior.Dim()
	if m == 0 {
		v, err := ownInterior.At()
		if err != nil {
			return err
		}
		cur, err := ownGhost.At()
		if err != nil {
			return err
		}
		return ownGhost.Set(cur+v/3.0)
	}

	lens := ownInterior.Lengths()
	return forEachIndex(lens, func(idx []int) error {
		v, err := ownInterior.At(idx...)
		if err != nil {
			return err
		}
		cur, err := ownGhost.At(idx...)
		if err != nil {
			return err
		}
		if err := ownGhost.Set(cur+(float64(m+1)/3.0)*v, idx...); err != nil {
			return err
		}
		for a := 0; a < m; a++ {
			adj := append([]int(nil), idx...)
			if (idx[a]+orth.Bit(a)*lens[a])%2 == 0 {
				adj[a] = idx[a] + 1
			} else {
				adj[a] = idx[a] - 1
			}
			if adj[a] < 0 || adj[a] >= lens[a] {
				continue // patch edge: no partner cell on this side
			}
			curAdj, err := ownGhost.At(adj...)
			if err != nil {
				return err
			}
			if err := ownGhost.Set(curAdj+(-1.0/3.0)*v, adj...); err != nil {
				return err
			}
		}
		return nil
	})
}

// correctCoarseOwnGhostAtFineBoundary applies the local self-correction
// a coarse patch makes on its own ghost at a face backed by finer
// neighbors. Grounded literally on BiLinearGhostFiller.cpp's
// FillLocalGhostsForFineNbr/FillLocalGhostsForCornerFineNbr: a single
// -1/3 term on the cell's own index, identical in form whether m is 0
// (corner) or positive (side/edge) — unlike the fine-side correction
// above, this one needs no special case.
func correctCoarseOwnGhostAtFineBoundary(ownInterior, ownGhost *pview.PatchView) error {
	const weight = -1.0 / 3.0
	lens := ownInterior.Lengths()
	return forEachIndex(lens, func(idx []int) error {
		v, err := ownInterior.At(idx...)
		if err != nil {
			return err
		}
		cur, err := ownGhost.At(idx...)
		if err != nil {
			return err
		}
		return ownGhost.Set(cur+weight*v, idx...)
	})
}
