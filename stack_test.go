/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 10:31:40 2026 mstenber
 * Last modified: Wed Oct 14 11:27:36 2026 mstenber
 * Edit time:     73 min
 *
 */

package lfstack

import (
	"fmt"
	"testing"

	"github.com/fingon/go-lfstack/util"
	"github.com/stvp/assert"
)

// stressSize returns workers x per-worker counts for the torture
// tests; -short keeps them quick.
func stressSize() (workers, count int) {
	if testing.Short() {
		return 10, 10000
	}
	return 10, 100000
}

// pushAll has each of workers goroutines push count distinct values
// (worker*count + j) concurrently.
func pushAll(s *Stack[int], workers, count int) {
	var wg util.SimpleWaitGroup
	wg.GoN(workers, func(w int) {
		for j := 0; j < count; j++ {
			s.Push(w*count + j)
		}
	})
	wg.Wait()
}

// popAll has each of workers goroutines pop count times, and returns
// what each of them got.
func popAll(s *Stack[int], workers, count int) [][]int {
	got := make([][]int, workers)
	var wg util.SimpleWaitGroup
	wg.GoN(workers, func(w int) {
		values := make([]int, 0, count)
		for j := 0; j < count; j++ {
			if v, ok := s.Pop(); ok {
				values = append(values, v)
			}
		}
		got[w] = values
	})
	wg.Wait()
	return got
}

// ensureExactlyOnce checks that got contains each of 0..total-1
// exactly once.
func ensureExactlyOnce(t *testing.T, got [][]int, total int) {
	seen := make([]bool, total)
	n := 0
	for _, values := range got {
		for _, v := range values {
			assert.True(t, v >= 0 && v < total, "bogus value ", v)
			assert.True(t, !seen[v], "value popped twice ", v)
			seen[v] = true
			n++
		}
	}
	assert.Equal(t, n, total)
}

func TestEmptyPop(t *testing.T) {
	t.Parallel()
	s := New[string]()
	v, ok := s.Pop()
	assert.True(t, !ok)
	assert.Equal(t, v, "")
	assert.Equal(t, s.Length(), 0)

	// zero value works too
	var s2 Stack[*int]
	p, ok := s2.Pop()
	assert.True(t, !ok)
	assert.True(t, p == nil)
}

func TestLIFO(t *testing.T) {
	t.Parallel()
	var s Stack[string]
	s.Push("v1")
	s.Push("v2")
	s.Push("v3")
	assert.Equal(t, s.Length(), 3)
	for _, expected := range []string{"v3", "v2", "v1"} {
		v, ok := s.Pop()
		assert.True(t, ok)
		assert.Equal(t, v, expected)
	}
	_, ok := s.Pop()
	assert.True(t, !ok)
}

func TestPopReleasesValue(t *testing.T) {
	t.Parallel()
	var s Stack[*string]
	x := "x"
	s.Push(&x)
	n := s.head.Get()
	v, ok := s.Pop()
	assert.True(t, ok)
	assert.True(t, v == &x)
	// the popped node no longer keeps the value alive
	assert.True(t, n.value == nil)
}

func TestConcurrentPush(t *testing.T) {
	t.Parallel()
	workers, count := stressSize()
	s := New[int]()
	pushAll(s, workers, count)
	assert.Equal(t, s.Length(), workers*count)

	got := popAll(s, 1, workers*count)
	ensureExactlyOnce(t, got, workers*count)
	assert.Equal(t, s.Length(), 0)
}

func TestConcurrentPop(t *testing.T) {
	t.Parallel()
	workers, count := stressSize()
	s := New[int]()
	for i := 0; i < workers*count; i++ {
		s.Push(i)
	}
	got := popAll(s, workers, count)
	assert.Equal(t, s.Length(), 0)
	ensureExactlyOnce(t, got, workers*count)

	// Once empty, stays empty
	for i := 0; i < 10; i++ {
		_, ok := s.Pop()
		assert.True(t, !ok)
	}
}

func TestConcurrentPushThenPop(t *testing.T) {
	t.Parallel()
	workers, count := stressSize()
	s := New[int]()
	pushAll(s, workers, count)
	// more pops than pushes; the surplus must come back empty
	got := popAll(s, workers, count+count/10)
	ensureExactlyOnce(t, got, workers*count)
	assert.Equal(t, s.Length(), 0)
}

func TestMixedTorture(t *testing.T) {
	t.Parallel()
	rng := util.GetSeededRng()
	workers, count := stressSize()
	counts := util.SplitCounts(rng, workers*count/10, workers)
	offsets := make([]int, workers)
	for i := 1; i < workers; i++ {
		offsets[i] = offsets[i-1] + counts[i-1]
	}
	total := offsets[workers-1] + counts[workers-1]

	s := New[int]()
	got := make([][]int, workers)
	var wg util.SimpleWaitGroup
	wg.GoN(workers, func(w int) {
		// interleave own pushes with pops of whatever is on top
		var values []int
		for j := 0; j < counts[w]; j++ {
			s.Push(offsets[w] + j)
			if j%3 == 0 {
				if v, ok := s.Pop(); ok {
					values = append(values, v)
				}
			}
		}
		got[w] = values
	})
	wg.Wait()

	popped := 0
	for _, values := range got {
		popped += len(values)
	}
	assert.Equal(t, s.Length(), total-popped)
	got = append(got, popAll(s, 1, total)[0])
	ensureExactlyOnce(t, got, total)
}

func BenchmarkStack(b *testing.B) {
	for _, p := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("PushPop-%d", p), func(b *testing.B) {
			var s Stack[int]
			b.ReportAllocs()
			b.SetParallelism(p)
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Push(1)
					s.Pop()
				}
			})
		})
	}
}
