/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Fri Oct 16 09:50:02 2026 mstenber
 * Last modified: Fri Oct 16 10:08:31 2026 mstenber
 * Edit time:     17 min
 *
 */

// storagetest has the behaviour every storage.Backend must have, as
// something backend tests can call.
package storagetest

import (
	"testing"

	"github.com/fingon/go-lfstack/storage"
	"github.com/stvp/assert"
)

// ProdBackend exercises an initialized, empty backend.
func ProdBackend(t *testing.T, be storage.Backend) {
	names, err := be.Names()
	assert.Nil(t, err)
	assert.Equal(t, len(names), 0)

	_, err = be.Get("foo")
	assert.True(t, storage.IsNotFound(err), "get of missing: ", err)
	assert.True(t, storage.IsNotFound(be.Delete("foo")))

	data := []byte("some data")
	assert.Nil(t, be.Set("foo", data))
	assert.Nil(t, be.Set("bar", []byte("other")))
	// backend must not hang on to caller's slice
	data[0] = 'S'

	got, err := be.Get("foo")
	assert.Nil(t, err)
	assert.Equal(t, string(got), "some data")

	names, err = be.Names()
	assert.Nil(t, err)
	assert.Equal(t, names, []string{"bar", "foo"})

	// overwrite
	assert.Nil(t, be.Set("foo", []byte("new")))
	got, err = be.Get("foo")
	assert.Nil(t, err)
	assert.Equal(t, string(got), "new")

	assert.Nil(t, be.Delete("foo"))
	_, err = be.Get("foo")
	assert.True(t, storage.IsNotFound(err))
	names, err = be.Names()
	assert.Nil(t, err)
	assert.Equal(t, names, []string{"bar"})
}
