/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Fri Jan  5 14:29:53 2018 mstenber
 * Last modified: Thu Oct 15 14:58:44 2026 mstenber
 * Edit time:     16 min
 *
 */

package storage

import (
	"os"
	"path/filepath"

	"github.com/fingon/go-lfstack/mlog"
	"github.com/pkg/errors"
)

// DirectoryBackendBase is embedded by the on-disk backends; it owns
// the directory.
type DirectoryBackendBase struct {
	Dir string
}

// Init ensures the configured directory exists.
func (self *DirectoryBackendBase) Init(config BackendConfiguration) error {
	if config.Directory == "" {
		return errors.New("storage: directory not configured")
	}
	self.Dir = config.Directory
	mlog.Printf2("storage/directory", "dbb.Init %s", self.Dir)
	return errors.Wrap(os.MkdirAll(self.Dir, 0700), "creating storage directory")
}

// Path returns name within the backend directory.
func (self *DirectoryBackendBase) Path(name string) string {
	return filepath.Join(self.Dir, name)
}

// BytesUsed returns the total size of files in the directory.
func (self *DirectoryBackendBase) BytesUsed() (sum uint64) {
	filepath.Walk(self.Dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			sum += uint64(info.Size())
		}
		return nil
	})
	return sum
}
