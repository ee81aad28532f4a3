// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the JSON-decodable option structs spec §6
// lists for serialization (CycleOptions, GhostFillOptions) and the
// combined Options a driver program loads from a single file.
//
// Grounded on gofem/inp/sim.go's Data/SolverData/LinSolData trio: each
// is a flat, json-tagged struct with a SetDefault method applied before
// json.Unmarshal overwrites any field the input file specifies, and a
// PostProcess-style validation/conversion step run afterward. gomg has
// no global mutable state to thread through PostProcess (spec §9), so
// each option struct instead exposes a pure ToXxx conversion into the
// runtime type it configures (gmg.CycleOpts, ghost scope + component
// count) rather than mutating package globals.
package config

import (
	"encoding/json"
	"fmt"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/gmg"
)

// CycleOptions is the JSON-decodable mirror of gmg.CycleOpts, spec §6's
// serialization surface for a multigrid cycle's parameters.
type CycleOptions struct {
	PreSweeps      int    `json:"pre_sweeps"`
	PostSweeps     int    `json:"post_sweeps"`
	MidSweeps      int    `json:"mid_sweeps"`
	CoarseSweeps   int    `json:"coarse_sweeps"`
	CycleType      string `json:"cycle_type"` // "v", "w", or "f"
	MaxLevels      int    `json:"max_levels"`
	PatchesPerProc int    `json:"patches_per_proc"`
}

// SetDefault sets the values spec §4.9 names as a cycle's conventional
// defaults.
func (o *CycleOptions) SetDefault() {
	o.PreSweeps = 2
	o.PostSweeps = 2
	o.MidSweeps = 1
	o.CoarseSweeps = 4
	o.CycleType = "v"
	o.MaxLevels = 0
	o.PatchesPerProc = 1
}

// ParseCycleType maps a CycleOptions.CycleType string onto gmg.CycleType.
func ParseCycleType(s string) (gmg.CycleType, error) {
	switch s {
	case "v", "V":
		return gmg.VCycle, nil
	case "w", "W":
		return gmg.WCycle, nil
	case "f", "F":
		return gmg.FCycle, nil
	default:
		return 0, fmt.Errorf("config: unrecognized cycle_type %q", s)
	}
}

// ToCycleOpts converts o into the gmg.CycleOpts a Cycle is built with.
func (o CycleOptions) ToCycleOpts() (gmg.CycleOpts, error) {
	ct, err := ParseCycleType(o.CycleType)
	if err != nil {
		return gmg.CycleOpts{}, err
	}
	return gmg.CycleOpts{
		PreSweeps:      o.PreSweeps,
		PostSweeps:     o.PostSweeps,
		MidSweeps:      o.MidSweeps,
		CoarseSweeps:   o.CoarseSweeps,
		CycleType:      ct,
		MaxLevels:      o.MaxLevels,
		PatchesPerProc: o.PatchesPerProc,
	}, nil
}

// GhostFillOptions is the JSON-decodable configuration for a ghost.Filler:
// how many components it exchanges and which face dimensionalities
// participate (spec §4.7's GhostFillingType).
type GhostFillOptions struct {
	NumComponents int    `json:"num_components"`
	Scope         string `json:"scope"` // "faces", "edges", or "corners"
}

// SetDefault sets a single-component, faces-only fill, the narrowest
// scope spec §4.7 defines.
func (o *GhostFillOptions) SetDefault() {
	o.NumComponents = 1
	o.Scope = "faces"
}

// ToScope converts o.Scope into a face.Scope.
func (o GhostFillOptions) ToScope() (face.Scope, error) {
	switch o.Scope {
	case "faces":
		return face.ScopeFaces, nil
	case "edges":
		return face.ScopeEdges, nil
	case "corners":
		return face.ScopeCorners, nil
	default:
		return 0, fmt.Errorf("config: unrecognized ghost fill scope %q", o.Scope)
	}
}

// Options aggregates everything a driver program needs to assemble a
// Filler and a Cycle from a single JSON file.
type Options struct {
	Cycle  CycleOptions     `json:"cycle"`
	Ghost  GhostFillOptions `json:"ghost"`
	DirOut string           `json:"dirout"` // directory for log/diagnostic output
}

// SetDefault applies every nested option struct's defaults.
func (o *Options) SetDefault() {
	o.Cycle.SetDefault()
	o.Ghost.SetDefault()
	o.DirOut = "."
}

// Load reads and decodes path into an Options, with defaults applied
// before the file's own values overwrite them, mirroring ReadSim's
// read-then-SetDefault-then-Unmarshal order (inp/sim.go's ReadSim),
// down to reusing gosl/io.ReadFile for the file read itself.
func Load(path string) (*Options, error) {
	var o Options
	o.SetDefault()
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	return &o, nil
}
