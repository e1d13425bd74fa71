/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Thu Jan  4 11:44:09 2018 mstenber
 * Last modified: Sat Oct 10 13:41:55 2026 mstenber
 * Edit time:     21 min
 *
 */

package util

import (
	"sync/atomic"
	"unsafe"
)

// AtomicPointer provides typesafe atomic access to a *T. It used to
// be sed-generated per type; now the type parameter does that job.
//
// The zero value holds nil.
type AtomicPointer[T any] struct {
	pointer unsafe.Pointer
}

func (self *AtomicPointer[T]) Get() *T {
	return (*T)(atomic.LoadPointer(&self.pointer))
}

// Set is a plain atomic store. Lock-free structures should only use
// it before the pointer is shared.
func (self *AtomicPointer[T]) Set(value *T) {
	atomic.StorePointer(&self.pointer, unsafe.Pointer(value))
}

// SetIfEqualTo is compare-and-swap; it stores newValue only if the
// current value is oldValue, and reports whether it did.
func (self *AtomicPointer[T]) SetIfEqualTo(newValue, oldValue *T) bool {
	return atomic.CompareAndSwapPointer(&self.pointer,
		unsafe.Pointer(oldValue),
		unsafe.Pointer(newValue))
}
