// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package comm

import (
	"fmt"

	"github.com/cpmech/gosl/mpi"
)

// GoslMPI adapts github.com/cpmech/gosl/mpi to the Communicator
// interface, grounded on gofem/fem/solver.go's direct use of
// mpi.IsOn()/mpi.Rank()/mpi.Size()/mpi.AllReduceSum/mpi.IntAllReduceMax.
// Unlike gofem, which reads those calls through a package-global
// `global` struct, GoslMPI is instantiated once and passed explicitly,
// per spec §9's "Global mutable state. None."
type GoslMPI struct {
	comm *mpi.Communicator
}

// NewGoslMPI wraps the default gosl/mpi communicator. mpi.Start must
// already have been called by the host program.
func NewGoslMPI() (*GoslMPI, error) {
	if !mpi.IsOn() {
		return nil, fmt.Errorf("comm: gosl/mpi is not initialised; call mpi.Start first")
	}
	return &GoslMPI{comm: mpi.NewCommunicator(nil)}, nil
}

func (g *GoslMPI) Rank() int { return mpi.Rank() }
func (g *GoslMPI) Size() int { return mpi.Size() }
func (g *GoslMPI) Barrier()  { g.comm.Barrier() }

func (g *GoslMPI) AllReduceSumFloat64(data []float64) error {
	out := make([]float64, len(data))
	mpi.AllReduceSum(out, data)
	copy(data, out)
	return nil
}

func (g *GoslMPI) AllReduceMaxInt(data []int) error {
	out := make([]int, len(data))
	mpi.IntAllReduceMax(out, data)
	copy(data, out)
	return nil
}

// AllReduceMaxFloat64 is assumed to exist as the float64 counterpart of
// mpi.IntAllReduceMax, following the same naming convention (see
// DESIGN.md's gosl/mpi API assumption note).
func (g *GoslMPI) AllReduceMaxFloat64(data []float64) error {
	out := make([]float64, len(data))
	mpi.AllReduceMax(out, data)
	copy(data, out)
	return nil
}

type mpiRequest struct {
	comm *mpi.Communicator
}

func (r *mpiRequest) Wait() error {
	r.comm.WaitRequest()
	return nil
}

func (g *GoslMPI) ISend(dest, tag int, data []float64) (Request, error) {
	g.comm.Isend(data, dest, tag)
	return &mpiRequest{comm: g.comm}, nil
}

func (g *GoslMPI) IRecv(src, tag int, data []float64) (Request, error) {
	g.comm.Irecv(data, src, tag)
	return &mpiRequest{comm: g.comm}, nil
}

// AllGatherBytes is built from Communicator's own ISend/IRecv rather
// than a dedicated gosl/mpi collective, since domain-level metadata
// exchange (Domain construction, DomainGenerator coordination) is rare
// enough that a two-phase size-then-payload ring is simpler than adding
// a byte-collective to the adapter surface.
func (g *GoslMPI) AllGatherBytes(local []byte) ([][]byte, error) {
	n := g.Size()
	out := make([][]byte, n)
	out[g.Rank()] = local

	sizes := make([]int, n)
	sizes[g.Rank()] = len(local)
	if err := g.AllReduceMaxInt(sizes); err != nil {
		return nil, err
	}
	// AllReduceMaxInt only yields the max, not each rank's own size;
	// exchange the exact per-rank sizes with the same ring used for the
	// payload below.
	ownLen := []float64{float64(len(local))}
	allLens := make([]float64, n)
	for r := 0; r < n; r++ {
		if r == g.Rank() {
			allLens[r] = ownLen[0]
			continue
		}
		sreq, err := g.ISend(r, gatherSizeTag, ownLen)
		if err != nil {
			return nil, err
		}
		buf := []float64{0}
		rreq, err := g.IRecv(r, gatherSizeTag, buf)
		if err != nil {
			return nil, err
		}
		if err := sreq.Wait(); err != nil {
			return nil, err
		}
		if err := rreq.Wait(); err != nil {
			return nil, err
		}
		allLens[r] = buf[0]
	}

	payload := make([]float64, len(local))
	for i, b := range local {
		payload[i] = float64(b)
	}
	for r := 0; r < n; r++ {
		if r == g.Rank() {
			continue
		}
		sreq, err := g.ISend(r, gatherPayloadTag, payload)
		if err != nil {
			return nil, err
		}
		buf := make([]float64, int(allLens[r]))
		rreq, err := g.IRecv(r, gatherPayloadTag, buf)
		if err != nil {
			return nil, err
		}
		if err := sreq.Wait(); err != nil {
			return nil, err
		}
		if err := rreq.Wait(); err != nil {
			return nil, err
		}
		bs := make([]byte, len(buf))
		for i, v := range buf {
			bs[i] = byte(v)
		}
		out[r] = bs
	}
	return out, nil
}

const (
	gatherSizeTag    = -101
	gatherPayloadTag = -102
)
