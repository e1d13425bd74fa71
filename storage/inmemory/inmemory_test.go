/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 18 11:22:51 2026 mstenber
 * Last modified: Sun Oct 18 11:29:37 2026 mstenber
 * Edit time:     6 min
 *
 */

package inmemory

import (
	"testing"

	"github.com/fingon/go-lfstack/storage"
	"github.com/fingon/go-lfstack/storage/storagetest"
	"github.com/pkg/errors"
	"github.com/stvp/assert"
)

func TestInMemory(t *testing.T) {
	t.Parallel()
	be := NewInMemoryBackend()
	assert.Nil(t, be.Init(storage.BackendConfiguration{}))
	defer be.Close()
	storagetest.ProdBackend(t, be)
}

func TestInMemoryGetCopies(t *testing.T) {
	t.Parallel()
	be := NewInMemoryBackend()
	assert.Nil(t, be.Init(storage.BackendConfiguration{}))
	defer be.Close()

	assert.Nil(t, be.Set("x", []byte("data")))
	got, err := be.Get("x")
	assert.Nil(t, err)
	got[0] = 'D'
	got, err = be.Get("x")
	assert.Nil(t, err)
	assert.Equal(t, string(got), "data")
}

func TestInMemoryClosed(t *testing.T) {
	t.Parallel()
	be := NewInMemoryBackend()
	assert.Nil(t, be.Init(storage.BackendConfiguration{}))
	be.Close()
	assert.Equal(t, errors.Cause(be.Set("x", []byte("data"))), ErrClosed)
	_, err := be.Get("x")
	assert.True(t, storage.IsNotFound(err))
}
