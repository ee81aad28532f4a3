// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package comm defines the abstract communicator handle spec §6 requires
// ("Communicator is passed in as an abstract handle (in the reference
// MPI mapping, MPI_Comm)"). Every collective or point-to-point operation
// gomg performs goes through this interface, never through a package
// global — unlike gofem/fem/solver.go's `global.Rank`/`global.Nproc`,
// which spec §9 explicitly disallows ("Global mutable state. None.").
package comm

// Request is a handle to a posted non-blocking operation.
type Request interface {
	// Wait blocks until the operation completes and returns its error,
	// if any.
	Wait() error
}

// Communicator is the bulk-synchronous messaging contract every
// collective gomg operation (ghost exchange, vector reductions, domain
// construction) is built on.
type Communicator interface {
	Rank() int
	Size() int

	// Barrier blocks until every rank has called Barrier.
	Barrier()

	// AllReduceSumFloat64 replaces data with the element-wise sum across
	// all ranks, in place, identically on every rank.
	AllReduceSumFloat64(data []float64) error

	// AllReduceMaxInt replaces data with the element-wise max across all
	// ranks, in place, identically on every rank.
	AllReduceMaxInt(data []int) error

	// AllReduceMaxFloat64 replaces data with the element-wise max across
	// all ranks, in place, identically on every rank. Needed by
	// Vector.InfNorm, which AllReduceSumFloat64 cannot express.
	AllReduceMaxFloat64(data []float64) error

	// ISend posts a non-blocking send of data to rank dest tagged tag.
	// The caller must not mutate data until the returned Request
	// completes.
	ISend(dest, tag int, data []float64) (Request, error)

	// IRecv posts a non-blocking receive into data from rank src tagged
	// tag. The caller must not read data until the returned Request
	// completes.
	IRecv(src, tag int, data []float64) (Request, error)

	// AllGatherBytes gathers every rank's local payload and returns it,
	// indexed by rank, identically on every rank. Used for the small,
	// infrequent metadata exchanges Domain construction and
	// DomainGenerator coordination need (not on the ghost-fill hot
	// path).
	AllGatherBytes(local []byte) ([][]byte, error)
}
