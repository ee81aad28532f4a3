// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gmg

import (
	"github.com/cpmech/gomg/vector"
)

// CycleType selects a V, W, or F multigrid traversal pattern (spec
// §4.9).
type CycleType int

const (
	VCycle CycleType = iota
	WCycle
	FCycle
)

func (t CycleType) String() string {
	switch t {
	case VCycle:
		return "V"
	case WCycle:
		return "W"
	case FCycle:
		return "F"
	default:
		return "UNKNOWN"
	}
}

// CycleOpts parameterizes a Cycle's Apply, per spec §4.9.
type CycleOpts struct {
	PreSweeps    int
	PostSweeps   int
	MidSweeps    int // used by W and F only
	CoarseSweeps int

	CycleType CycleType

	// MaxLevels records the hierarchy depth cap; 0 means uncapped.
	// Neither Builder nor Cycle reads it: Cycle runs over exactly the
	// levels it was given, and depth is capped where the levels are
	// produced, by domain.Options.MaxLevels in domain.Generator.
	MaxLevels int

	// PatchesPerProc is the lower bound a DomainGenerator uses to stop
	// coarsening; Cycle does not consult it directly; it is threaded
	// through so CycleOpts round-trips the full option set spec §6
	// reproduces for serialization.
	PatchesPerProc int
}

// Cycle is a recursive descent through a linked list of Levels, finest
// to coarsest.
type Cycle struct {
	finest *Level
	opts   CycleOpts
}

// Finest returns the finest level.
func (c *Cycle) Finest() *Level { return c.finest }

// Opts returns the options this Cycle was built with.
func (c *Cycle) Opts() CycleOpts { return c.opts }

// Apply runs one multigrid cycle against the finest level, per spec
// §4.9's algorithm.
func (c *Cycle) Apply(f, u *vector.Vector) error {
	return c.applyLevel(c.finest, f, u)
}

func (c *Cycle) applyLevel(level *Level, f, u *vector.Vector) error {
	if level.IsCoarsest() {
		for i := 0; i < c.opts.CoarseSweeps; i++ {
			if err := level.Smoother.Smooth(level.PerPatch, f, u); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < c.opts.PreSweeps; i++ {
		if err := level.Smoother.Smooth(level.PerPatch, f, u); err != nil {
			return err
		}
	}

	au := u.GetZeroClone()
	if err := level.domainOp.Apply(u, au); err != nil {
		return err
	}
	r := f.Clone()
	if err := r.AddScaled(-1, au); err != nil {
		return err
	}
	rCoarse, err := level.Restrictor.Restrict(r)
	if err != nil {
		return err
	}
	eCoarse := rCoarse.GetZeroClone()

	// midSweep smooths the CURRENT level's u between successive descents
	// into the coarser level, per spec §4.9's "mid_sweeps smoother
	// sweeps of u between" — the only "u" bound in this scope is the
	// current level's, so that is what gets smoothed; see DESIGN.md's
	// Open Question decision for W/F's exact recursion shape.
	midSweep := func() error {
		for i := 0; i < c.opts.MidSweeps; i++ {
			if err := level.Smoother.Smooth(level.PerPatch, f, u); err != nil {
				return err
			}
		}
		return nil
	}

	switch c.opts.CycleType {
	case VCycle:
		if err := c.applyLevel(level.coarser, rCoarse, eCoarse); err != nil {
			return err
		}
	case WCycle:
		if err := c.applyLevel(level.coarser, rCoarse, eCoarse); err != nil {
			return err
		}
		if err := midSweep(); err != nil {
			return err
		}
		if err := c.applyLevel(level.coarser, rCoarse, eCoarse); err != nil {
			return err
		}
	case FCycle:
		if err := c.applyLevel(level.coarser, rCoarse, eCoarse); err != nil {
			return err
		}
		if err := midSweep(); err != nil {
			return err
		}
		if err := c.applyLevel(level.coarser, rCoarse, eCoarse); err != nil {
			return err
		}
		if err := midSweep(); err != nil {
			return err
		}
		if err := c.applyLevel(level.coarser, rCoarse, eCoarse); err != nil {
			return err
		}
	}

	e, err := level.Interpolator.Interpolate(eCoarse)
	if err != nil {
		return err
	}
	if err := u.AddScaled(1, e); err != nil {
		return err
	}

	for i := 0; i < c.opts.PostSweeps; i++ {
		if err := level.Smoother.Smooth(level.PerPatch, f, u); err != nil {
			return err
		}
	}
	return nil
}
