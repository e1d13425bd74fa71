/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Jan  3 22:49:15 2018 mstenber
 * Last modified: Thu Oct 15 16:02:18 2026 mstenber
 * Edit time:     61 min
 *
 */

package bolt

import (
	bbolt "go.etcd.io/bbolt"

	"github.com/fingon/go-lfstack/mlog"
	"github.com/fingon/go-lfstack/storage"
	"github.com/pkg/errors"
)

const dbName = "bbolt.db"

var snapshotKey = []byte("snapshot")

// boltBackend provides on-disk storage in a single bbolt file; every
// name is a key in one bucket.
type boltBackend struct {
	storage.DirectoryBackendBase

	db *bbolt.DB
}

var _ storage.Backend = &boltBackend{}

func NewBoltBackend() storage.Backend {
	return &boltBackend{}
}

func (self *boltBackend) Init(config storage.BackendConfiguration) error {
	if err := self.DirectoryBackendBase.Init(config); err != nil {
		return err
	}
	db, err := bbolt.Open(self.Path(dbName), 0600, nil)
	if err != nil {
		return errors.Wrap(err, "bbolt.Open")
	}
	self.db = db
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotKey)
		return err
	})
	if err != nil {
		db.Close()
		return errors.Wrap(err, "bbolt bucket")
	}
	return nil
}

func (self *boltBackend) Close() {
	mlog.Printf2("storage/bolt/bolt", "bbolt.Close")
	self.db.Close()
}

func (self *boltBackend) Get(name string) (v []byte, err error) {
	err = self.db.View(func(tx *bbolt.Tx) error {
		// value is valid only within the transaction
		if b := tx.Bucket(snapshotKey).Get([]byte(name)); b != nil {
			v = append([]byte{}, b...)
		}
		return nil
	})
	if err == nil && v == nil {
		err = errors.Wrap(storage.ErrNotFound, name)
	}
	return
}

func (self *boltBackend) Set(name string, data []byte) error {
	mlog.Printf2("storage/bolt/bolt", "bbolt.Set %s (%d b)", name, len(data))
	return self.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotKey).Put([]byte(name), data)
	})
}

func (self *boltBackend) Delete(name string) error {
	mlog.Printf2("storage/bolt/bolt", "bbolt.Delete %s", name)
	return self.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(snapshotKey)
		k := []byte(name)
		if b.Get(k) == nil {
			return errors.Wrap(storage.ErrNotFound, name)
		}
		return b.Delete(k)
	})
}

func (self *boltBackend) Names() (names []string, err error) {
	err = self.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(snapshotKey).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return
}
