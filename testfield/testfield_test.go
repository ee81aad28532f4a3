// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cpmech/gomg/comm"
	"github.com/cpmech/gomg/domain"
	"github.com/cpmech/gomg/patch"
	"github.com/cpmech/gomg/vector"
)

func twoPatchDomain(t *testing.T) *domain.Domain {
	t.Helper()
	c := comm.NewLocal()
	left := patch.NewInfo(1, 0, 2, []int{4, 4}, 1, []float64{0, 0}, []float64{0.25, 0.25})
	right := patch.NewInfo(2, 0, 2, []int{4, 4}, 1, []float64{1, 0}, []float64{0.25, 0.25})
	left.LocalIndex, right.LocalIndex = 0, 1
	dom, err := domain.New(c, 2, []*patch.Info{left, right})
	require.NoError(t, err)
	return dom
}

func TestLinearFieldMatchesScenarioS3Coefficients(t *testing.T) {
	phi := Linear(1, 0.3, 1)
	require.InDelta(t, 1+0.3*2+3, phi.At([]float64{2, 3}), 1e-12)
}

func TestFillInteriorThenMaxAbsDiffIsZero(t *testing.T) {
	dom := twoPatchDomain(t)
	v := vector.New(dom, 1)
	phi := Linear(1, 0.3, 1)

	require.NoError(t, FillInterior(v, 0, phi))

	diff, err := MaxAbsDiff(v, 0, phi)
	require.NoError(t, err)
	require.InDelta(t, 0.0, diff, 1e-12)
}

func TestFillWithGhostCoversGhostCells(t *testing.T) {
	dom := twoPatchDomain(t)
	v := vector.New(dom, 1)
	phi := Linear(1, 0.3, 1)

	require.NoError(t, FillWithGhost(v, 0, phi, 1))

	diff, err := MaxAbsDiffWithGhost(v, 0, phi, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.0, diff, 1e-12)
}

func TestPoissonRHSIsMinusFivePiSquaredTimesExact(t *testing.T) {
	// f(x,y) = -5*pi^2*sin(pi*y)*cos(2*pi*x) is exactly -5*pi^2 times
	// u(x,y)=sin(pi*y)*cos(2*pi*x) itself — the relation scenario S1's
	// discrete Laplacian must reproduce (u_xx has factor -(2*pi)^2, u_yy
	// has factor -pi^2, summing to -5*pi^2 on u).
	rhs := PoissonRHS()
	exact := PoissonExact()
	x := []float64{0.37, 0.81}
	want := -5 * math.Pi * math.Pi * exact.At(x)
	require.InDelta(t, want, rhs.At(x), 1e-9)
}
