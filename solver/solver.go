// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements the thin Krylov driver spec §4.11 asks
// for — at minimum BiCGStab — parameterized over any vector type
// satisfying VectorLike so the same driver serves both the domain-wide
// solve (*vector.Vector) and the per-patch inner solve a multigrid
// smoother needs (*pview.PatchView).
//
// Grounded on gofem/fem/solver.go's driver-loop structure (a fixed
// iteration budget, a residual-based stopping test, an optional
// Timer hook) combined with original_source/src/ThunderEgg/Iterative/
// BiCGStab.h's algorithm and option surface (MaxIterations default
// 1000, Tolerance default 1e-12, optional Timer, Clone).
package solver

import (
	"fmt"
	"io"
	"math"
)

// VectorLike is the structural contract BiCGStab needs from its vector
// type V. Both *vector.Vector and *pview.PatchView satisfy it.
type VectorLike[V any] interface {
	Dot(other V) (float64, error)
	TwoNorm() (float64, error)
	Scale(alpha float64)
	AddScaled(alpha float64, other V) error
	Copy(other V) error
	Clone() V
}

// Operator is the system (or preconditioner) BiCGStab drives: given x,
// compute result = A·x.
type Operator[V any] interface {
	Apply(x, result V) error
}

// Timer records named spans around the solve, matching
// original_source's optional BiCGStab timer hook (spec §4.11).
type Timer interface {
	Start(label string)
	Stop(label string)
}

// BiCGStab is a stabilized bi-conjugate-gradient driver, generic over
// any VectorLike V.
type BiCGStab[V VectorLike[V]] struct {
	MaxIterations int
	Tolerance     float64

	// ContinueOnBreakdown, when true, makes Solve return the
	// best-so-far iterate instead of a BreakdownError (spec §7's
	// "callers may opt to continue").
	ContinueOnBreakdown bool

	Timer Timer
	Log   io.Writer
}

// New returns a BiCGStab with the teacher's documented defaults:
// MaxIterations 1000, Tolerance 1e-12.
func New[V VectorLike[V]]() *BiCGStab[V] {
	return &BiCGStab[V]{MaxIterations: 1000, Tolerance: 1e-12}
}

// Clone returns an independent copy carrying the same options (mirrors
// original_source's BiCGStab::clone, exercised by "BiCGStab clone").
func (s *BiCGStab[V]) Clone() *BiCGStab[V] {
	c := *s
	return &c
}

func (s *BiCGStab[V]) logf(format string, args ...any) {
	if s.Log == nil {
		return
	}
	fmt.Fprintf(s.Log, format+"\n", args...)
}

func (s *BiCGStab[V]) startTimer(label string) {
	if s.Timer != nil {
		s.Timer.Start(label)
	}
}

func (s *BiCGStab[V]) stopTimer(label string) {
	if s.Timer != nil {
		s.Timer.Stop(label)
	}
}

// Solve drives op (and, if prec is non-nil, a right preconditioner)
// against the system op·x = b, refining x in place. Returns the number
// of iterations performed.
//
// Returns immediately with zero iterations if the initial residual
// already satisfies ||b-Ax|| <= tolerance*||b|| (spec §4.11, property
// 11 for the zero-RHS case).
func (s *BiCGStab[V]) Solve(op Operator[V], x, b V, prec Operator[V]) (int, error) {
	s.startTimer("BiCGStab")
	defer s.stopTimer("BiCGStab")

	maxIter := s.MaxIterations
	if maxIter == 0 {
		maxIter = 1000
	}
	tol := s.Tolerance
	if tol == 0 {
		tol = 1e-12
	}

	bNorm, err := b.TwoNorm()
	if err != nil {
		return 0, err
	}

	// A zero right-hand side makes the system trivially satisfied by
	// the zero vector; force it rather than let the general loop
	// chase whatever residual the caller's initial guess happens to
	// leave (spec property 11: "terminates in 0 iterations and sets
	// the solution to zero").
	if bNorm == 0 {
		x.Scale(0)
		s.logf("bicgstab: zero right-hand side, solution set to zero")
		return 0, nil
	}

	ax := x.Clone()
	if err := op.Apply(x, ax); err != nil {
		return 0, err
	}
	r := b.Clone()
	if err := r.AddScaled(-1, ax); err != nil {
		return 0, err
	}

	resNorm, err := r.TwoNorm()
	if err != nil {
		return 0, err
	}
	if resNorm <= tol*bNorm {
		s.logf("bicgstab: converged before iterating, ||r||=%.3e", resNorm)
		return 0, nil
	}

	rHat := r.Clone()
	rho := 1.0
	alpha := 1.0
	omega := 1.0

	v := r.Clone()
	v.Scale(0)
	p := v.Clone()

	for iter := 1; iter <= maxIter; iter++ {
		rhoNew, err := rHat.Dot(r)
		if err != nil {
			return iter - 1, err
		}
		if rhoNew == 0 {
			return s.breakdown(iter, "rho collapsed to zero")
		}
		if omega == 0 {
			return s.breakdown(iter, "omega collapsed to zero")
		}
		beta := (rhoNew / rho) * (alpha / omega)
		rho = rhoNew

		// p = r + beta*(p - omega*v)
		tmp := p.Clone()
		if err := tmp.AddScaled(-omega, v); err != nil {
			return iter - 1, err
		}
		newP := r.Clone()
		if err := newP.AddScaled(beta, tmp); err != nil {
			return iter - 1, err
		}
		p = newP

		pHat := p
		if prec != nil {
			pre := p.Clone()
			pre.Scale(0)
			if err := prec.Apply(p, pre); err != nil {
				return iter - 1, err
			}
			pHat = pre
		}

		if err := op.Apply(pHat, v); err != nil {
			return iter - 1, err
		}

		denom, err := rHat.Dot(v)
		if err != nil {
			return iter - 1, err
		}
		if denom == 0 {
			return s.breakdown(iter, "rHat.v collapsed to zero")
		}
		alpha = rho / denom

		s2 := r.Clone()
		if err := s2.AddScaled(-alpha, v); err != nil {
			return iter - 1, err
		}

		sNorm, err := s2.TwoNorm()
		if err != nil {
			return iter - 1, err
		}
		if sNorm <= tol*bNorm {
			if err := x.AddScaled(alpha, pHat); err != nil {
				return iter - 1, err
			}
			s.logf("bicgstab: converged at iteration %d (s-check), ||s||=%.3e", iter, sNorm)
			return iter, nil
		}

		sHat := s2
		if prec != nil {
			pre := s2.Clone()
			pre.Scale(0)
			if err := prec.Apply(s2, pre); err != nil {
				return iter - 1, err
			}
			sHat = pre
		}

		t := s2.Clone()
		t.Scale(0)
		if err := op.Apply(sHat, t); err != nil {
			return iter - 1, err
		}

		tDotT, err := t.Dot(t)
		if err != nil {
			return iter - 1, err
		}
		if tDotT == 0 {
			return s.breakdown(iter, "t.t collapsed to zero")
		}
		tDotS, err := t.Dot(s2)
		if err != nil {
			return iter - 1, err
		}
		omega = tDotS / tDotT

		if err := x.AddScaled(alpha, pHat); err != nil {
			return iter - 1, err
		}
		if err := x.AddScaled(omega, sHat); err != nil {
			return iter - 1, err
		}

		newR := s2.Clone()
		if err := newR.AddScaled(-omega, t); err != nil {
			return iter - 1, err
		}
		r = newR

		resNorm, err = r.TwoNorm()
		if err != nil {
			return iter - 1, err
		}
		s.logf("bicgstab: iteration %d, ||r||=%.3e", iter, resNorm)
		if resNorm <= tol*bNorm || math.IsNaN(resNorm) {
			if math.IsNaN(resNorm) {
				return s.breakdown(iter, "residual norm is NaN")
			}
			return iter, nil
		}

		if omega == 0 {
			return s.breakdown(iter, "omega collapsed to zero after update")
		}
	}

	return maxIter, nil
}

func (s *BiCGStab[V]) breakdown(iter int, detail string) (int, error) {
	err := BreakdownError{Iteration: iter, Detail: detail}
	s.logf("bicgstab: %s", err.Error())
	if s.ContinueOnBreakdown {
		return iter, nil
	}
	return iter, err
}
