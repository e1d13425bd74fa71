/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Thu Jan 25 14:11:32 2018 mstenber
 * Last modified: Mon Oct 12 15:48:09 2026 mstenber
 * Edit time:     33 min
 *
 */

package lfstack

import "github.com/fingon/go-lfstack/util"

// FreeList is a lock-free pool of reusable objects. Get hands out a
// pooled object if there is one, and otherwise whatever New returns
// (or the zero value, if New is not set). Unlike sync.Pool, pooled
// objects are never dropped behind the caller's back.
type FreeList[T any] struct {
	New func() T

	stack Stack[T]
	count util.AtomicInt
}

func (self *FreeList[T]) Get() T {
	if value, ok := self.stack.Pop(); ok {
		self.count.Dec()
		return value
	}
	if self.New != nil {
		return self.New()
	}
	var zero T
	return zero
}

func (self *FreeList[T]) Put(value T) {
	self.stack.Push(value)
	self.count.Inc()
}

// Count returns the number of pooled objects. The counter is updated
// after the stack itself, so it may briefly lag (or even be negative)
// while Get and Put race.
func (self *FreeList[T]) Count() int {
	return self.count.GetInt()
}
