/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 10 09:12:05 2026 mstenber
 * Last modified: Tue Oct 13 16:20:48 2026 mstenber
 * Edit time:     94 min
 *
 */

// lfstack provides lock-free LIFO stacks (Treiber stacks) for use as
// building blocks of work queues, free-lists and object pools.
//
// Stack is the unbounded variant: one atomic head pointer, updated
// only with compare-and-swap, and one heap node per pushed value.
// Arena is the bounded variant with preallocated slots addressed by
// index. Counted is Stack with operation counters, and FreeList is
// an object pool on top of Stack.
//
// Nothing here ever takes a lock; under contention operations retry
// their CAS, so some goroutine always makes progress but a single
// one may in theory spin for a while.
package lfstack

import "github.com/fingon/go-lfstack/util"

// node is owned by exactly one slot at a time: the stack head, the
// next field of its predecessor, or the goroutine that just popped
// it. next is written only before the node is published.
type node[T any] struct {
	value T
	next  *node[T]
}

// Stack is a lock-free multi-producer multi-consumer LIFO stack.
// The zero value is an empty stack. A Stack must not be copied after
// first use.
//
// Memory reclamation is left to the garbage collector: a node that a
// racing Pop still refers to cannot be freed or reused while that
// reference exists, so a stale CAS can never succeed against a
// recycled node (no ABA through address reuse).
type Stack[T any] struct {
	head util.AtomicPointer[node[T]]
}

// New returns an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push puts value on top of the stack. It always succeeds.
func (self *Stack[T]) Push(value T) {
	self.push(&node[T]{value: value})
}

// Pop removes and returns the top value. ok is false if the stack
// was empty when observed.
func (self *Stack[T]) Pop() (value T, ok bool) {
	value, ok, _ = self.pop()
	return
}

// push links n on top and returns how many CAS attempts failed.
func (self *Stack[T]) push(n *node[T]) (retries int) {
	for ; ; retries++ {
		current := self.head.Get()
		// n is still private, so plain write is fine here
		n.next = current
		if self.head.SetIfEqualTo(n, current) {
			return
		}
	}
}

func (self *Stack[T]) pop() (value T, ok bool, retries int) {
	for ; ; retries++ {
		current := self.head.Get()
		if current == nil {
			return
		}
		// current may already be someone else's; only next may be
		// read until the CAS says otherwise
		next := current.next
		if !self.head.SetIfEqualTo(next, current) {
			continue
		}
		// We own current now. Leave next alone (stale readers may
		// still look at it) but drop the value reference.
		var zero T
		value = current.value
		current.value = zero
		return value, true, retries
	}
}

// Length walks the stack and counts the nodes.
//
// Debugging aid only: it is NOT safe to call concurrently with Push
// or Pop, and the result is meaningless if done so. Use it once all
// workers have been joined.
func (self *Stack[T]) Length() int {
	count := 0
	for n := self.head.Get(); n != nil; n = n.next {
		count++
	}
	return count
}
