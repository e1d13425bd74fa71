/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Sat Jan  6 00:13:13 2018 mstenber
 * Last modified: Thu Oct 15 14:41:09 2026 mstenber
 * Edit time:     27 min
 *
 */

package storage

import (
	"github.com/fingon/go-lfstack/codec"
	"github.com/fingon/go-lfstack/mlog"
	"github.com/pkg/errors"
)

// CodecBackend runs data through Codec on its way to (and from) the
// proxied backend. The name is used as additional data, so a blob
// copied under another name does not decode.
type CodecBackend struct {
	ProxyBackend
}

var _ Backend = &CodecBackend{}

func NewCodecBackend(backend Backend) *CodecBackend {
	self := &CodecBackend{}
	self.Backend = backend
	return self
}

func (self *CodecBackend) Init(config BackendConfiguration) error {
	if config.Codec == nil {
		config.Codec = &codec.CodecChain{}
	}
	return self.ProxyBackend.Init(config)
}

func (self *CodecBackend) Get(name string) ([]byte, error) {
	data, err := self.Backend.Get(name)
	if err != nil {
		return nil, err
	}
	b, err := self.Codec.DecodeBytes(data, []byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", name)
	}
	mlog.Printf2("storage/codecbackend", "cb.Get %s: %d -> %d bytes", name, len(data), len(b))
	return b, nil
}

func (self *CodecBackend) Set(name string, data []byte) error {
	b, err := self.Codec.EncodeBytes(data, []byte(name))
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}
	mlog.Printf2("storage/codecbackend", "cb.Set %s: %d -> %d bytes", name, len(data), len(b))
	return self.Backend.Set(name, b)
}
