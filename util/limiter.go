/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Thu Jan 11 07:40:22 2018 mstenber
 * Last modified: Sun Oct 11 10:01:18 2026 mstenber
 * Edit time:     41 min
 *
 */

package util

import (
	"math"
	"runtime"
	"sync"
)

const DefaultPerCPU = 1

// ParallelLimiter ensures that at most N workers run at the same
// time. It is essentially a semaphore with trivial API (either defer
// Limited()(), or Go(func) + Wait()).
type ParallelLimiter struct {
	// How many things are allowed per CPU (defaults to DefaultPerCPU)
	LimitPerCPU int

	// How many things are allowed by total (by default using
	// LimitPerCPU to calculate this)
	LimitTotal int

	lock        MutexLocked
	cond        sync.Cond
	running     int
	initialized bool
}

func (self *ParallelLimiter) init() {
	if self.LimitTotal == 0 {
		self.LimitPerCPU = IOr(self.LimitPerCPU, DefaultPerCPU)
		self.LimitTotal = runtime.NumCPU() * self.LimitPerCPU
	}
	self.cond.L = &self.lock
	self.initialized = true
}

// Limited2 reserves 'count' execution slots. Asking for more than
// LimitTotal is clamped to LimitTotal so that it cannot deadlock.
func (self *ParallelLimiter) Limited2(count int) func() {
	defer self.lock.Locked()()

	if !self.initialized {
		self.init()
	}
	count = IMin(count, self.LimitTotal)
	for (self.running + count) > self.LimitTotal {
		self.cond.Wait()
	}
	self.running += count
	return func() {
		defer self.lock.Locked()()
		self.running -= count
		self.cond.Broadcast()
	}
}

func (self *ParallelLimiter) Limited() func() {
	return self.Limited2(1)
}

// Go runs cb in a new goroutine once a slot is free. It blocks the
// caller until then.
func (self *ParallelLimiter) Go(cb func()) {
	unlock := self.Limited()
	go func() { // ok, limited by #LimitTotal
		defer unlock()
		cb()
	}()
}

// Wait blocks until everything started with Go has returned.
func (self *ParallelLimiter) Wait() {
	self.Exclusive(func() {})
}

// Exclusive runs cb when no other slot is reserved.
func (self *ParallelLimiter) Exclusive(cb func()) {
	unlock := self.Limited2(math.MaxInt32)
	defer unlock()
	cb()
}

// Running returns how many slots are currently reserved.
func (self *ParallelLimiter) Running() int {
	defer self.lock.Locked()()
	return self.running
}
