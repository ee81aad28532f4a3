// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package workpool

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForEachSequentialNilPoolVisitsEveryItem(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	var sum int64
	err := ForEach(nil, items, func(item int) error {
		atomic.AddInt64(&sum, int64(item))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(15), sum)
}

func TestForEachParallelVisitsEveryItemExactlyOnce(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	var count int64
	p := New(8)
	err := ForEach(p, items, func(item int) error {
		atomic.AddInt64(&count, 1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(100), count)
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	items := []int{1, 2, 3}
	err := ForEach(New(2), items, func(item int) error {
		if item == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestForEachEmptyItemsIsNoop(t *testing.T) {
	err := ForEach(New(4), []int{}, func(int) error {
		t.Fatal("fn must not be called for an empty item list")
		return nil
	})
	require.NoError(t, err)
}

func TestNewClampsNonPositiveWorkers(t *testing.T) {
	p := New(0)
	require.NotNil(t, p)
	require.Greater(t, p.maxWorkers, 0)
}
