package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// testVec is a minimal VectorLike used to exercise the BiCGStab
// algorithm itself without pulling in domain/patch/comm machinery —
// the same role original_source's plain std::vector-backed Vector
// plays in BiCGStab_MPI1.cpp's single-rank test cases.
type testVec struct{ data []float64 }

func newTestVec(n int) *testVec { return &testVec{data: make([]float64, n)} }

func (v *testVec) Dot(o *testVec) (float64, error) {
	sum := 0.0
	for i := range v.data {
		sum += v.data[i] * o.data[i]
	}
	return sum, nil
}

func (v *testVec) TwoNorm() (float64, error) {
	d, _ := v.Dot(v)
	return math.Sqrt(d), nil
}

func (v *testVec) Scale(alpha float64) {
	for i := range v.data {
		v.data[i] *= alpha
	}
}

func (v *testVec) AddScaled(alpha float64, o *testVec) error {
	for i := range v.data {
		v.data[i] += alpha * o.data[i]
	}
	return nil
}

func (v *testVec) Copy(o *testVec) error {
	copy(v.data, o.data)
	return nil
}

func (v *testVec) Clone() *testVec {
	return &testVec{data: append([]float64(nil), v.data...)}
}

// diagOp is a diagonal (hence symmetric positive-definite, for
// positive diagonal entries) linear operator.
type diagOp struct{ diag []float64 }

func (d *diagOp) Apply(x, result *testVec) error {
	for i := range x.data {
		result.data[i] = d.diag[i] * x.data[i]
	}
	return nil
}

func TestBiCGStabDefaults(t *testing.T) {
	s := New[*testVec]()
	require.Equal(t, 1000, s.MaxIterations)
	require.Equal(t, 1e-12, s.Tolerance)
	require.Nil(t, s.Timer)
}

func TestBiCGStabClonePreservesOptions(t *testing.T) {
	s := New[*testVec]()
	s.MaxIterations = 3
	s.Tolerance = 2.3
	clone := s.Clone()
	require.Equal(t, s.MaxIterations, clone.MaxIterations)
	require.Equal(t, s.Tolerance, clone.Tolerance)
}

func TestBiCGStabZeroRHSTerminatesImmediately(t *testing.T) {
	s := New[*testVec]()
	b := newTestVec(5)
	x := newTestVec(5)
	for i := range x.data {
		x.data[i] = float64(i) + 1 // arbitrary nonzero initial guess
	}
	op := &diagOp{diag: []float64{1, 2, 3, 4, 5}}

	iters, err := s.Solve(op, x, b, nil)
	require.NoError(t, err)
	require.Equal(t, 0, iters)
	norm, err := x.TwoNorm()
	require.NoError(t, err)
	require.Equal(t, 0.0, norm)
}

func TestBiCGStabSolvesDiagonalSPDSystem(t *testing.T) {
	s := New[*testVec]()
	s.Tolerance = 1e-9
	diag := []float64{4, 1, 9, 2, 16}
	op := &diagOp{diag: diag}

	b := newTestVec(len(diag))
	for i := range b.data {
		b.data[i] = float64(i + 1)
	}
	x := newTestVec(len(diag))

	iters, err := s.Solve(op, x, b, nil)
	require.NoError(t, err)
	require.LessOrEqual(t, iters, s.MaxIterations)

	ax := newTestVec(len(diag))
	require.NoError(t, op.Apply(x, ax))
	resid := ax.Clone()
	require.NoError(t, resid.AddScaled(-1, b))
	rNorm, err := resid.TwoNorm()
	require.NoError(t, err)
	bNorm, err := b.TwoNorm()
	require.NoError(t, err)
	require.LessOrEqual(t, rNorm, s.Tolerance*bNorm)

	for i, d := range diag {
		require.InDelta(t, b.data[i]/d, x.data[i], 1e-6)
	}
}

func TestBiCGStabRespectsMaxIterations(t *testing.T) {
	s := New[*testVec]()
	s.MaxIterations = 1
	s.Tolerance = 1e-300 // unreachable, forces the iteration cap
	op := &diagOp{diag: []float64{4, 1, 9, 2, 16}}
	b := newTestVec(5)
	for i := range b.data {
		b.data[i] = float64(i + 1)
	}
	x := newTestVec(5)

	iters, err := s.Solve(op, x, b, nil)
	require.NoError(t, err)
	require.Equal(t, 1, iters)
}
