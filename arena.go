/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 15:40:27 2026 mstenber
 * Last modified: Wed Oct 14 10:11:53 2026 mstenber
 * Edit time:     118 min
 *
 */

package lfstack

import (
	"log"
	"math"
	"sync/atomic"

	"github.com/fingon/go-lfstack/mlog"
	"github.com/pkg/errors"
)

// ErrFull is returned by Arena.Push when every slot is in use.
var ErrFull = errors.New("lfstack: arena full")

const nilIndex = math.MaxUint32

// tag packs a 32-bit stamp (high half) and a slot index (low half)
// so that both change in one CAS.
type tag uint64

func makeTag(stamp, index uint32) tag {
	return tag(uint64(stamp)<<32 | uint64(index))
}

func (self tag) stamp() uint32 {
	return uint32(self >> 32)
}

func (self tag) index() uint32 {
	return uint32(self)
}

type arenaSlot[T any] struct {
	value T
	// racing pops read next of slots they do not own, hence atomic
	next atomic.Uint32
}

// Arena is a bounded lock-free stack whose nodes are preallocated
// slots referenced by index. Unused slots sit on a second lock-free
// stack (the free-list), so steady-state Push and Pop do not
// allocate.
//
// Both heads carry a stamp that changes on every successful update.
// A Pop that read a head, got delayed while the same slot was popped
// and pushed again, fails its CAS instead of installing a stale next
// index. The stamp is 32 bits, so 2^32 head updates during a single
// delayed Pop would still fool it.
//
// Use NewArena; the zero value is not usable.
type Arena[T any] struct {
	slots     []arenaSlot[T]
	top, free atomic.Uint64
}

// NewArena returns an empty arena with room for capacity values.
// capacity must be positive and below math.MaxUint32.
func NewArena[T any](capacity int) *Arena[T] {
	if capacity <= 0 || uint64(capacity) >= nilIndex {
		log.Panicf("lfstack: invalid arena capacity %d", capacity)
	}
	self := &Arena[T]{slots: make([]arenaSlot[T], capacity)}
	for i := range self.slots {
		next := uint32(i + 1)
		if i == capacity-1 {
			next = nilIndex
		}
		self.slots[i].next.Store(next)
	}
	self.top.Store(uint64(makeTag(0, nilIndex)))
	self.free.Store(uint64(makeTag(0, 0)))
	return self
}

func (self *Arena[T]) popIndex(head *atomic.Uint64) uint32 {
	for {
		old := tag(head.Load())
		index := old.index()
		if index == nilIndex {
			return nilIndex
		}
		next := self.slots[index].next.Load()
		if head.CompareAndSwap(uint64(old), uint64(makeTag(old.stamp()+1, next))) {
			return index
		}
	}
}

func (self *Arena[T]) pushIndex(head *atomic.Uint64, index uint32) {
	slot := &self.slots[index]
	for {
		old := tag(head.Load())
		slot.next.Store(old.index())
		if head.CompareAndSwap(uint64(old), uint64(makeTag(old.stamp()+1, index))) {
			return
		}
	}
}

// Push puts value on top of the stack, or returns ErrFull if there
// is no free slot left.
func (self *Arena[T]) Push(value T) error {
	index := self.popIndex(&self.free)
	if index == nilIndex {
		mlog.Printf2("arena", "Arena.Push: all %d slots in use", len(self.slots))
		return ErrFull
	}
	self.slots[index].value = value
	self.pushIndex(&self.top, index)
	return nil
}

// Pop removes and returns the top value; ok is false if the stack
// was empty when observed.
func (self *Arena[T]) Pop() (value T, ok bool) {
	index := self.popIndex(&self.top)
	if index == nilIndex {
		return
	}
	var zero T
	slot := &self.slots[index]
	value = slot.value
	slot.value = zero
	self.pushIndex(&self.free, index)
	return value, true
}

// Cap returns the number of slots.
func (self *Arena[T]) Cap() int {
	return len(self.slots)
}

// Length counts the values on the stack. Like Stack.Length, it is a
// debugging aid that must not race with Push or Pop.
func (self *Arena[T]) Length() int {
	count := 0
	for index := tag(self.top.Load()).index(); index != nilIndex; index = self.slots[index].next.Load() {
		count++
	}
	return count
}
