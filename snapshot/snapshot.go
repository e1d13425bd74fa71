/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Fri Oct 16 11:02:36 2026 mstenber
 * Last modified: Fri Oct 16 14:48:20 2026 mstenber
 * Edit time:     87 min
 *
 */

// snapshot persists the contents of a quiesced stack in a
// storage.Backend, e.g. to keep a free-list or work queue across
// restarts.
//
// Like Length, Save and Restore must not race with other users of the
// stack: they are meant for startup and shutdown.
package snapshot

import (
	"bytes"

	"github.com/fingon/go-lfstack/codec"
	"github.com/fingon/go-lfstack/mlog"
	"github.com/fingon/go-lfstack/storage"
	"github.com/minio/sha256-simd"
	"github.com/pkg/errors"
)

const Version = 1

var ErrCorrupt = errors.New("snapshot: corrupt")

// Stack is what can be snapshotted; lfstack.Stack and lfstack.Counted
// qualify.
type Stack[T any] interface {
	Push(value T)
	Pop() (T, bool)
}

type record struct {
	_struct struct{} `codec:",toarray"`

	Version int
	Count   int

	// Digest is sha256 of Items
	Digest []byte

	// Items is CBOR-encoded []T, top of the stack first
	Items []byte
}

// Save drains st and stores its values under name. On success the
// stack is left empty; if storing fails, the values are pushed back
// and the stack is as it was. Returns the number of values saved.
func Save[T any](st Stack[T], be storage.Backend, name string) (int, error) {
	var items []T
	for {
		v, ok := st.Pop()
		if !ok {
			break
		}
		items = append(items, v)
	}
	mlog.Printf2("snapshot/snapshot", "Save %s: %d items", name, len(items))
	err := store(items, be, name)
	if err != nil {
		mlog.Printf2("snapshot/snapshot", " failed, restoring stack: %v", err)
		pushAll(st, items)
		return 0, err
	}
	return len(items), nil
}

func store[T any](items []T, be storage.Backend, name string) error {
	b, err := codec.Marshal(items)
	if err != nil {
		return err
	}
	digest := sha256.Sum256(b)
	data, err := codec.Marshal(&record{Version: Version,
		Count:  len(items),
		Digest: digest[:],
		Items:  b})
	if err != nil {
		return err
	}
	return errors.Wrapf(be.Set(name, data), "storing snapshot %s", name)
}

// Load returns the values stored under name, top of the stack first,
// without touching any stack.
func Load[T any](be storage.Backend, name string) ([]T, error) {
	data, err := be.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "loading snapshot %s", name)
	}
	var r record
	if err = codec.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	if r.Version != Version {
		return nil, errors.Errorf("snapshot %s: unsupported version %d", name, r.Version)
	}
	digest := sha256.Sum256(r.Items)
	if !bytes.Equal(digest[:], r.Digest) {
		return nil, errors.Wrapf(ErrCorrupt, "%s: digest mismatch", name)
	}
	var items []T
	if err = codec.Unmarshal(r.Items, &items); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	if len(items) != r.Count {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %d items, expected %d", name, len(items), r.Count)
	}
	mlog.Printf2("snapshot/snapshot", "Load %s: %d items", name, len(items))
	return items, nil
}

// Restore pushes the values stored under name onto st, so that the
// value that was on top when saved is on top again. The snapshot
// itself is kept. Returns the number of values restored.
func Restore[T any](st Stack[T], be storage.Backend, name string) (int, error) {
	items, err := Load[T](be, name)
	if err != nil {
		return 0, err
	}
	pushAll(st, items)
	return len(items), nil
}

// pushAll pushes items (top first) back in reverse order.
func pushAll[T any](st Stack[T], items []T) {
	for i := len(items) - 1; i >= 0; i-- {
		st.Push(items[i])
	}
}

// List returns the names of the stored snapshots.
func List(be storage.Backend) ([]string, error) {
	return be.Names()
}

func Delete(be storage.Backend, name string) error {
	return errors.Wrapf(be.Delete(name), "deleting snapshot %s", name)
}
