/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Sun Dec 17 22:20:08 2017 mstenber
 * Last modified: Sun Oct 18 11:20:14 2026 mstenber
 * Edit time:     86 min
 *
 */

package inmemory

import (
	"sort"

	"github.com/fingon/go-lfstack/mlog"
	"github.com/fingon/go-lfstack/storage"
	"github.com/fingon/go-lfstack/util"
	"github.com/pkg/errors"
)

// ErrClosed is returned by Set when the backend is not open.
var ErrClosed = errors.New("inmemory: closed")

// inMemoryBackend provides In-memory storage; data is just stored in
// a map, and lost on Close.
type inMemoryBackend struct {
	name2Data map[string][]byte
	lock      util.MutexLocked
}

var _ storage.Backend = &inMemoryBackend{}

func NewInMemoryBackend() storage.Backend {
	return &inMemoryBackend{}
}

func (self *inMemoryBackend) Init(config storage.BackendConfiguration) error {
	defer self.lock.Locked()()
	self.name2Data = make(map[string][]byte)
	return nil
}

func (self *inMemoryBackend) Close() {
	defer self.lock.Locked()()
	self.name2Data = nil
}

func (self *inMemoryBackend) Get(name string) ([]byte, error) {
	defer self.lock.Locked()()
	data, ok := self.name2Data[name]
	if !ok {
		return nil, errors.Wrap(storage.ErrNotFound, name)
	}
	return append([]byte{}, data...), nil
}

func (self *inMemoryBackend) Set(name string, data []byte) error {
	defer self.lock.Locked()()
	if self.name2Data == nil {
		return ErrClosed
	}
	mlog.Printf2("storage/inmemory/inmemory", "im.Set %s (%d b)", name, len(data))
	// caller may reuse data
	self.name2Data[name] = append([]byte(nil), data...)
	return nil
}

func (self *inMemoryBackend) Delete(name string) error {
	defer self.lock.Locked()()
	if _, ok := self.name2Data[name]; !ok {
		return errors.Wrap(storage.ErrNotFound, name)
	}
	mlog.Printf2("storage/inmemory/inmemory", "im.Delete %s", name)
	delete(self.name2Data, name)
	return nil
}

func (self *inMemoryBackend) Names() ([]string, error) {
	defer self.lock.Locked()()
	names := make([]string, 0, len(self.name2Data))
	for k := range self.name2Data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}
