/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Sat Dec 23 15:10:01 2017 mstenber
 * Last modified: Thu Oct 15 16:40:51 2026 mstenber
 * Edit time:     171 min
 *
 */

package badger

import (
	"github.com/dgraph-io/badger"
	"github.com/fingon/go-lfstack/mlog"
	"github.com/fingon/go-lfstack/storage"
	"github.com/pkg/errors"
)

// Every name is stored with this prefix, so that the keyspace can be
// shared with something else later.
var snapshotPrefix = []byte("s")

// badgerBackend provides on-disk storage in a badger LSM tree.
type badgerBackend struct {
	storage.DirectoryBackendBase
	db *badger.DB
}

var _ storage.Backend = &badgerBackend{}

func NewBadgerBackend() storage.Backend {
	return &badgerBackend{}
}

func (self *badgerBackend) Init(config storage.BackendConfiguration) error {
	if err := self.DirectoryBackendBase.Init(config); err != nil {
		return err
	}
	opts := badger.DefaultOptions
	opts.Dir = self.Dir
	opts.ValueDir = self.Dir
	db, err := badger.Open(opts)
	if err != nil {
		return errors.Wrap(err, "badger.Open")
	}
	self.db = db
	return nil
}

func (self *badgerBackend) Close() {
	mlog.Printf2("storage/badger/badger", "bad.Close")
	self.db.Close()
}

func key(name string) []byte {
	return append(append([]byte(nil), snapshotPrefix...), name...)
}

func (self *badgerBackend) Get(name string) (v []byte, err error) {
	err = self.db.View(func(txn *badger.Txn) error {
		i, err := txn.Get(key(name))
		if err != nil {
			return err
		}
		v, err = i.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		err = errors.Wrap(storage.ErrNotFound, name)
	}
	return
}

func (self *badgerBackend) Set(name string, data []byte) error {
	mlog.Printf2("storage/badger/badger", "bad.Set %s (%d b)", name, len(data))
	return self.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(name), data)
	})
}

func (self *badgerBackend) Delete(name string) error {
	mlog.Printf2("storage/badger/badger", "bad.Delete %s", name)
	err := self.db.Update(func(txn *badger.Txn) error {
		k := key(name)
		if _, err := txn.Get(k); err != nil {
			return err
		}
		return txn.Delete(k)
	})
	if err == badger.ErrKeyNotFound {
		err = errors.Wrap(storage.ErrNotFound, name)
	}
	return err
}

func (self *badgerBackend) Names() (names []string, err error) {
	err = self.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(snapshotPrefix); it.ValidForPrefix(snapshotPrefix); it.Next() {
			k := it.Item().Key()
			names = append(names, string(k[len(snapshotPrefix):]))
		}
		return nil
	})
	return
}
