/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Mar 21 11:19:49 2018 mstenber
 * Last modified: Sat Oct 10 14:02:37 2026 mstenber
 * Edit time:     12 min
 *
 */

package util

import "sync/atomic"

// AtomicInt is an int64 counter that is only ever touched with
// atomic operations. The zero value is ready to use.
type AtomicInt int64

func (self *AtomicInt) Get() int64 {
	return atomic.LoadInt64((*int64)(self))
}

func (self *AtomicInt) GetInt() int {
	return int(self.Get())
}

// Add adds value and returns the new value.
func (self *AtomicInt) Add(value int64) int64 {
	return atomic.AddInt64((*int64)(self), value)
}

func (self *AtomicInt) AddInt(value int) int {
	return int(self.Add(int64(value)))
}

func (self *AtomicInt) Inc() int64 {
	return self.Add(1)
}

func (self *AtomicInt) Dec() int64 {
	return self.Add(-1)
}

func (self *AtomicInt) Set(value int64) {
	atomic.StoreInt64((*int64)(self), value)
}

// Swap stores value and returns the previous one; used to read and
// reset a counter in one step.
func (self *AtomicInt) Swap(value int64) int64 {
	return atomic.SwapInt64((*int64)(self), value)
}
