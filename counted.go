/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 14:02:11 2026 mstenber
 * Last modified: Tue Oct 13 16:31:02 2026 mstenber
 * Edit time:     35 min
 *
 */

package lfstack

import (
	"fmt"

	"github.com/fingon/go-lfstack/util"
)

// Stats is a point-in-time copy of the counters of a Counted stack.
// The fields are read one at a time, so under load they need not be
// mutually consistent.
type Stats struct {
	Pushes, Pops, EmptyPops, Retries int64
}

func (self Stats) String() string {
	return fmt.Sprintf("Stats{push:%d pop:%d empty:%d retry:%d}",
		self.Pushes, self.Pops, self.EmptyPops, self.Retries)
}

// Counted is Stack that also counts what happens to it. The
// counters live outside the stack head, but they are shared words
// too, so Counted is somewhat slower than Stack under contention.
type Counted[T any] struct {
	stack                            Stack[T]
	pushes, pops, emptyPops, retries util.AtomicInt
}

func NewCounted[T any]() *Counted[T] {
	return &Counted[T]{}
}

func (self *Counted[T]) Push(value T) {
	retries := self.stack.push(&node[T]{value: value})
	self.pushes.Inc()
	if retries > 0 {
		self.retries.AddInt(retries)
	}
}

func (self *Counted[T]) Pop() (value T, ok bool) {
	value, ok, retries := self.stack.pop()
	if ok {
		self.pops.Inc()
	} else {
		self.emptyPops.Inc()
	}
	if retries > 0 {
		self.retries.AddInt(retries)
	}
	return
}

// Length has the same caveats as Stack.Length.
func (self *Counted[T]) Length() int {
	return self.stack.Length()
}

func (self *Counted[T]) Stats() Stats {
	return Stats{Pushes: self.pushes.Get(),
		Pops:      self.pops.Get(),
		EmptyPops: self.emptyPops.Get(),
		Retries:   self.retries.Get()}
}

// Stack exposes the underlying stack, e.g. for snapshotting. Whatever
// is done through it is not counted.
func (self *Counted[T]) Stack() *Stack[T] {
	return &self.stack
}
