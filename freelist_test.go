/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Thu Jan 25 14:19:32 2018 mstenber
 * Last modified: Mon Oct 12 15:59:11 2026 mstenber
 * Edit time:     14 min
 *
 */

package lfstack

import (
	"testing"

	"github.com/fingon/go-lfstack/util"
	"github.com/stvp/assert"
)

func TestFreeList(t *testing.T) {
	t.Parallel()
	s := "foo"
	created := 0
	l := FreeList[*string]{New: func() *string {
		created++
		return &s
	}}
	v2 := l.Get()
	v3 := l.Get()
	assert.True(t, v2 == &s)
	assert.True(t, v3 == &s)
	assert.Equal(t, created, 2)
	assert.Equal(t, l.Count(), 0)

	s2 := "bar"
	l.Put(&s2)
	assert.Equal(t, l.Count(), 1)
	assert.True(t, l.Get() == &s2)
	assert.Equal(t, created, 2)
	assert.Equal(t, l.Count(), 0)
}

func TestFreeListNoNew(t *testing.T) {
	t.Parallel()
	var l FreeList[[]byte]
	assert.True(t, l.Get() == nil)
	l.Put(make([]byte, 3))
	assert.Equal(t, len(l.Get()), 3)
}

func TestFreeListConcurrent(t *testing.T) {
	t.Parallel()
	var created util.AtomicInt
	l := FreeList[[]byte]{New: func() []byte {
		created.Inc()
		return make([]byte, 64)
	}}
	var wg util.SimpleWaitGroup
	wg.GoN(8, func(w int) {
		for j := 0; j < 1000; j++ {
			b := l.Get()
			b[0] = byte(w)
			l.Put(b)
		}
	})
	wg.Wait()
	// never more buffers than goroutines holding one at a time
	assert.True(t, created.Get() <= 8)
	assert.Equal(t, int64(l.Count()), created.Get())
}

func BenchmarkFreeList(b *testing.B) {
	l := FreeList[[]byte]{New: func() []byte {
		return make([]byte, 4096)
	}}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			l.Put(l.Get())
		}
	})
}
