// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package workpool implements the bounded, in-process goroutine pool
// spec §5 allows an implementation to use internally ("operations ...
// may internally parallelize per-patch loops with a compatible
// work-stealing pool provided the semantics in §4 are preserved"): the
// communicator-level parallelism stays bulk-synchronous and
// single-threaded per spec, but a single rank's loop over its own local
// patches may run across goroutines as long as the observable result is
// identical to running it sequentially.
//
// Grounded on junjiewwang-perf-analysis/pkg/parallel's WorkerPool/ForEach
// (bounded worker count, task channel, first-error capture via
// sync.Once); generalized here from that package's generic Task/Result
// machinery down to the one shape gomg's per-patch loops need: run fn
// over every item, bounded by at most MaxWorkers concurrent calls,
// stopping new dispatch once the first error is seen and returning it.
package workpool

import (
	"runtime"
	"sync"
)

// Pool bounds how many goroutines ForEach may run concurrently. The nil
// *Pool is valid and means "run sequentially in the caller's goroutine,"
// so call sites that don't care about parallelism never need a
// pool-is-configured branch.
type Pool struct {
	maxWorkers int
}

// New returns a Pool that runs at most maxWorkers items concurrently. A
// non-positive maxWorkers is clamped to runtime.NumCPU().
func New(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	return &Pool{maxWorkers: maxWorkers}
}

// ForEach calls fn(items[i]) for every i, bounded by p's worker count (or
// sequentially, in index order, if p is nil). It returns the first error
// any call returns; once an error is seen, no further calls are
// dispatched, but calls already in flight are allowed to finish.
func ForEach[T any](p *Pool, items []T, fn func(item T) error) error {
	if len(items) == 0 {
		return nil
	}
	if p == nil || p.maxWorkers <= 1 || len(items) == 1 {
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	}

	workers := p.maxWorkers
	if workers > len(items) {
		workers = len(items)
	}

	indexCh := make(chan int)
	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error
	stop := make(chan struct{})

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexCh {
				if err := fn(items[idx]); err != nil {
					errOnce.Do(func() {
						firstErr = err
						close(stop)
					})
				}
			}
		}()
	}

	go func() {
		defer close(indexCh)
		for i := range items {
			select {
			case <-stop:
				return
			case indexCh <- i:
			}
		}
	}()

	wg.Wait()
	return firstErr
}
