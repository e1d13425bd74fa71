/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Wed Jan 10 11:14:02 2018 mstenber
 * Last modified: Thu Oct 15 14:20:31 2026 mstenber
 * Edit time:     12 min
 *
 */

package storage

import "github.com/fingon/go-lfstack/mlog"

// ProxyBackend forwards everything to Backend; embed it and override
// what needs changing.
type ProxyBackend struct {
	BackendConfiguration
	Backend Backend
}

var _ Backend = &ProxyBackend{}

// Init initializes the proxied backend too.
func (self *ProxyBackend) Init(config BackendConfiguration) error {
	self.BackendConfiguration = config
	return self.Backend.Init(config)
}

func (self *ProxyBackend) Close() {
	mlog.Printf2("storage/proxybackend", "proxying backend Close()")
	self.Backend.Close()
}

func (self *ProxyBackend) Get(name string) ([]byte, error) {
	return self.Backend.Get(name)
}

func (self *ProxyBackend) Set(name string, data []byte) error {
	return self.Backend.Set(name, data)
}

func (self *ProxyBackend) Delete(name string) error {
	return self.Backend.Delete(name)
}

func (self *ProxyBackend) Names() ([]string, error) {
	return self.Backend.Names()
}
