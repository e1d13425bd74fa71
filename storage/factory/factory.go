/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Fri Jan  5 12:22:52 2018 mstenber
 * Last modified: Fri Oct 16 09:34:27 2026 mstenber
 * Edit time:     58 min
 *
 */

package factory

import (
	"sort"

	"github.com/fingon/go-lfstack/codec"
	"github.com/fingon/go-lfstack/mlog"
	"github.com/fingon/go-lfstack/storage"
	"github.com/fingon/go-lfstack/storage/badger"
	"github.com/fingon/go-lfstack/storage/bolt"
	"github.com/fingon/go-lfstack/storage/inmemory"
	"github.com/fingon/go-lfstack/util"
	"github.com/pkg/errors"
)

type factoryCallback func() storage.Backend

var backendFactories = map[string]factoryCallback{
	"inmemory": inmemory.NewInMemoryBackend,
	"badger":   badger.NewBadgerBackend,
	"bolt":     bolt.NewBoltBackend,
}

// List returns the names of the available backends, sorted.
func List() []string {
	keys := make([]string, 0, len(backendFactories))
	for k := range backendFactories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func New(name, dir string) (storage.Backend, error) {
	var config storage.BackendConfiguration
	config.Directory = dir
	return NewWithConfig(name, config)
}

func NewWithConfig(name string, config storage.BackendConfiguration) (storage.Backend, error) {
	mlog.Printf2("storage/factory/factory", "f.NewWithConfig %v %v", name, config.Directory)
	cb, ok := backendFactories[name]
	if !ok {
		return nil, errors.Errorf("unknown backend %q (possible: %v)", name, List())
	}
	be := cb()
	if err := be.Init(config); err != nil {
		return nil, errors.Wrapf(err, "initializing %s backend", name)
	}
	return be, nil
}

type CryptoBackendConfiguration struct {
	storage.BackendConfiguration
	BackendName    string
	Password, Salt string
	Iterations     int

	// AuthenticateOnly uses the password to authenticate but not
	// encrypt the data.
	AuthenticateOnly bool
}

// NewCryptoBackend returns backend that compresses everything, and
// if Password is set, also encrypts (or only authenticates) it.
func NewCryptoBackend(config CryptoBackendConfiguration) (storage.Backend, error) {
	mlog.Printf2("storage/factory/factory", "f.NewCryptoBackend")
	salt := util.SOr(config.Salt, "asdf")
	iterations := util.IOr(config.Iterations, codec.DefaultIterations)
	c2 := &codec.CompressingCodec{}
	var c *codec.CodecChain
	switch {
	case config.Password == "":
		mlog.Printf2("storage/factory/factory", " only compression")
		c = codec.CodecChain{}.Init(c2)
	case config.AuthenticateOnly:
		mlog.Printf2("storage/factory/factory", " with authentication + compression")
		c1 := codec.AuthenticatingCodec{}.Init([]byte(config.Password), []byte(salt), iterations)
		c = codec.CodecChain{}.Init(c1, c2)
	default:
		mlog.Printf2("storage/factory/factory", " with encryption + compression")
		c1 := codec.EncryptingCodec{}.Init([]byte(config.Password), []byte(salt), iterations)
		c = codec.CodecChain{}.Init(c1, c2)
	}
	beconfig := config.BackendConfiguration
	beconfig.Codec = c
	cb, ok := backendFactories[config.BackendName]
	if !ok {
		return nil, errors.Errorf("unknown backend %q (possible: %v)", config.BackendName, List())
	}
	be := storage.NewCodecBackend(cb())
	if err := be.Init(beconfig); err != nil {
		return nil, errors.Wrapf(err, "initializing %s backend", config.BackendName)
	}
	return be, nil
}
