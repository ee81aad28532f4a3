// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gomg/face"
	"github.com/cpmech/gomg/gmg"
)

func TestCycleOptionsSetDefaultMatchesConventionalDefaults(t *testing.T) {
	var o CycleOptions
	o.SetDefault()
	require.Equal(t, 2, o.PreSweeps)
	require.Equal(t, 2, o.PostSweeps)
	require.Equal(t, 1, o.MidSweeps)
	require.Equal(t, 4, o.CoarseSweeps)
	require.Equal(t, "v", o.CycleType)

	opts, err := o.ToCycleOpts()
	require.NoError(t, err)
	require.Equal(t, gmg.VCycle, opts.CycleType)
	require.Equal(t, 2, opts.PreSweeps)
}

func TestParseCycleTypeRejectsUnknown(t *testing.T) {
	_, err := ParseCycleType("zigzag")
	require.Error(t, err)
}

func TestGhostFillOptionsToScope(t *testing.T) {
	var o GhostFillOptions
	o.SetDefault()
	scope, err := o.ToScope()
	require.NoError(t, err)
	require.Equal(t, face.ScopeFaces, scope)

	o.Scope = "corners"
	scope, err = o.ToScope()
	require.NoError(t, err)
	require.Equal(t, face.ScopeCorners, scope)

	o.Scope = "nonsense"
	_, err = o.ToScope()
	require.Error(t, err)
}

func TestLoadAppliesDefaultsThenOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "opts.json")
	body := `{"cycle": {"cycle_type": "w", "pre_sweeps": 3}, "ghost": {"scope": "edges"}}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	o, err := Load(path)
	require.NoError(t, err)

	// Overridden by the file.
	require.Equal(t, "w", o.Cycle.CycleType)
	require.Equal(t, 3, o.Cycle.PreSweeps)
	require.Equal(t, "edges", o.Ghost.Scope)

	// Left at SetDefault's value since the file didn't mention it.
	require.Equal(t, 2, o.Cycle.PostSweeps)
	require.Equal(t, 1, o.Ghost.NumComponents)
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.Error(t, err)
}
