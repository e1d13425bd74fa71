/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 14:40:03 2026 mstenber
 * Last modified: Tue Oct 13 16:44:18 2026 mstenber
 * Edit time:     18 min
 *
 */

package lfstack

import (
	"testing"

	"github.com/fingon/go-lfstack/util"
	"github.com/stvp/assert"
)

func TestCounted(t *testing.T) {
	t.Parallel()
	c := NewCounted[int]()
	_, ok := c.Pop()
	assert.True(t, !ok)
	c.Push(1)
	c.Push(2)
	v, ok := c.Pop()
	assert.True(t, ok)
	assert.Equal(t, v, 2)
	assert.Equal(t, c.Length(), 1)
	assert.Equal(t, c.Stats(), Stats{Pushes: 2, Pops: 1, EmptyPops: 1})
	assert.Equal(t, c.Stats().String(), "Stats{push:2 pop:1 empty:1 retry:0}")

	// the raw stack is shared, but not counted
	c.Stack().Push(3)
	assert.Equal(t, c.Length(), 2)
	assert.Equal(t, c.Stats().Pushes, int64(2))
}

func TestCountedConcurrent(t *testing.T) {
	t.Parallel()
	workers, count := stressSize()
	count /= 10
	c := NewCounted[int]()
	var wg util.SimpleWaitGroup
	wg.GoN(workers, func(w int) {
		for j := 0; j < count; j++ {
			c.Push(j)
		}
	})
	wg.Wait()
	wg.GoN(workers, func(w int) {
		for j := 0; j < count+1; j++ {
			c.Pop()
		}
	})
	wg.Wait()
	st := c.Stats()
	total := int64(workers * count)
	assert.Equal(t, st.Pushes, total)
	assert.Equal(t, st.Pops, total)
	// every goroutine made one pop too many
	assert.Equal(t, st.EmptyPops, int64(workers))
	assert.True(t, st.Retries >= 0)
	assert.Equal(t, c.Length(), 0)
}
