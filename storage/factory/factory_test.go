/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Fri Jan  5 16:28:57 2018 mstenber
 * Last modified: Fri Oct 16 10:12:40 2026 mstenber
 * Edit time:     24 min
 *
 */

package factory

import (
	"testing"

	"github.com/fingon/go-lfstack/storage"
	"github.com/fingon/go-lfstack/storage/storagetest"
	"github.com/stvp/assert"
)

func TestList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, len(List()), len(backendFactories))
	assert.Equal(t, List(), []string{"badger", "bolt", "inmemory"})
}

func TestUnknown(t *testing.T) {
	t.Parallel()
	_, err := New("zzzglorb", t.TempDir())
	assert.True(t, err != nil)
	_, err = NewCryptoBackend(CryptoBackendConfiguration{BackendName: "zzzglorb"})
	assert.True(t, err != nil)
}

func TestBackends(t *testing.T) {
	t.Parallel()
	for _, name := range List() {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			be, err := New(name, t.TempDir())
			assert.Nil(t, err)
			defer be.Close()
			storagetest.ProdBackend(t, be)
		})
	}
}

func TestCryptoBackends(t *testing.T) {
	t.Parallel()
	for _, mode := range []struct {
		name             string
		password         string
		authenticateOnly bool
	}{{"plain", "", false}, {"encrypt", "siikret", false}, {"auth", "siikret", true}} {
		mode := mode
		t.Run(mode.name, func(t *testing.T) {
			t.Parallel()
			conf := CryptoBackendConfiguration{
				BackendConfiguration: storage.BackendConfiguration{Directory: t.TempDir()},
				BackendName:          "bolt",
				Password:             mode.password,
				AuthenticateOnly:     mode.authenticateOnly,
				Iterations:           64}
			be, err := NewCryptoBackend(conf)
			assert.Nil(t, err)
			defer be.Close()
			storagetest.ProdBackend(t, be)
		})
	}
}

func TestCryptoBackendWrongPassword(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	conf := CryptoBackendConfiguration{
		BackendConfiguration: storage.BackendConfiguration{Directory: dir},
		BackendName:          "bolt",
		Password:             "siikret",
		Iterations:           64}
	be, err := NewCryptoBackend(conf)
	assert.Nil(t, err)
	assert.Nil(t, be.Set("x", []byte("data")))
	be.Close()

	conf.Password = "wrong"
	be, err = NewCryptoBackend(conf)
	assert.Nil(t, err)
	defer be.Close()
	_, err = be.Get("x")
	assert.True(t, err != nil)
	assert.True(t, !storage.IsNotFound(err))
}
