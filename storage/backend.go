/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Fri Jan  5 11:14:11 2018 mstenber
 * Last modified: Thu Oct 15 14:12:50 2026 mstenber
 * Edit time:     38 min
 *
 */

// storage provides named blob storage for stack snapshots. Backends
// only shuffle bytes; encoding, compression and encryption are done
// by CodecBackend on top of them.
package storage

import (
	"github.com/fingon/go-lfstack/codec"
	"github.com/pkg/errors"
)

// ErrNotFound is returned (possibly wrapped) by Get and Delete for
// names that are not stored.
var ErrNotFound = errors.New("storage: not found")

type BackendConfiguration struct {
	// Directory is where on-disk backends keep their files.
	Directory string

	// Codec is used by CodecBackend; raw backends ignore it.
	Codec codec.Codec
}

// Backend is the shadow behind the throne; it actually stores the
// named blobs. It provides an API that returns results that are
// consistent with the previous calls. Backends must be safe for
// concurrent use.
type Backend interface {
	// Init makes the backend usable; it is called once, before
	// anything else.
	Init(config BackendConfiguration) error

	// Close the backend
	Close()

	// Get returns the data stored under name, or ErrNotFound.
	Get(name string) ([]byte, error)

	// Set stores data under name, replacing whatever was there.
	Set(name string, data []byte) error

	// Delete removes name; it MUST exist (ErrNotFound otherwise).
	Delete(name string) error

	// Names returns all stored names in sorted order.
	Names() ([]string, error)
}

// IsNotFound reports whether err is (a wrapped) ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && errors.Cause(err) == ErrNotFound
}
