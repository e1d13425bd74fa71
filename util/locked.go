/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Thu Jan  4 12:21:40 2018 mstenber
 * Last modified: Sun Oct 11 09:12:40 2026 mstenber
 * Edit time:     22 min
 *
 */

package util

import "sync"

// MutexLocked is sync.Mutex with the convenience of
// 'defer x.Locked()()'. It is used only by the slow-path helpers
// here (limiter); the stacks themselves never lock.
type MutexLocked sync.Mutex

func (self *MutexLocked) Lock() {
	(*sync.Mutex)(self).Lock()
}

func (self *MutexLocked) Unlock() {
	(*sync.Mutex)(self).Unlock()
}

func (self *MutexLocked) Locked() (unlock func()) {
	self.Lock()
	return self.Unlock
}
