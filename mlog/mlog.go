/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Sat Dec 30 13:41:33 2017 mstenber
 * Last modified: Mon Oct 12 09:44:21 2026 mstenber
 * Edit time:     131 min
 *
 */

// mlog is maybe-log, or Markus' log. It is a small wrapper of
// standard 'log' (only Printf is provided), with two improvements:
//
// - environment-variable-based (MLOG) and 'flag' (-mlog) options for
// choosing what to print; what is not printed costs one atomic load
// (by default, everything is off)
//
// - to facilitate tracing, call stack depth is used to determine
// indentation automatically, and goroutine id prefixes each line
//
// The lock-free code in this module never logs in its hot paths; the
// slow paths (arena exhaustion, snapshots, storage) do.
package mlog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fingon/go-lfstack/util/gid"
)

const (
	StateUninitialized int32 = iota
	StateInitializing
	StateDisabled
	StateEnabled
)

const maxDepth = 100

// Environment variable consulted on first use.
const EnvironmentVariable = "MLOG"

// status can be read by anyone with atomic access; everything in
// state must be used only with state.mutex held.
var status = StateUninitialized

var flagPattern *string

var state struct {
	mutex     sync.Mutex
	logger    *log.Logger
	pattern   string
	re        *regexp.Regexp
	file2Show map[string]bool
	minDepth  int
	callers   []uintptr
	dumpGids  bool
}

func init() {
	flagPattern = flag.String("mlog", "", "Enable logging based on the given file regular expression")
	state.logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	state.dumpGids = true
	Reset()
}

// Reset returns the module to its factory default state. The first
// subsequent log call re-reads the environment and flag.
func Reset() {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	atomic.StoreInt32(&status, StateUninitialized)
	state.minDepth = maxDepth
	state.callers = make([]uintptr, maxDepth)
}

// IsEnabled can be used to check if mlog is in use at all before
// doing something expensive.
func IsEnabled() bool {
	return atomic.LoadInt32(&status) != StateDisabled
}

// SetLogger overrides the logger used as output. The returned undo
// function changes the logger back to the old one.
func SetLogger(l *log.Logger) (undo func()) {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	old := state.logger
	state.logger = l
	return func() {
		state.mutex.Lock()
		defer state.mutex.Unlock()
		state.logger = old
	}
}

// SetPattern sets the file pattern by hand, overriding environment
// and flag. The returned undo function restores the old pattern.
func SetPattern(p string) (undo func()) {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	old := state.pattern
	setPattern(p)
	return func() {
		state.mutex.Lock()
		defer state.mutex.Unlock()
		setPattern(old)
	}
}

// SetGoroutineIDs toggles the goroutine id prefix; tests comparing
// exact output turn it off.
func SetGoroutineIDs(enabled bool) (undo func()) {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	old := state.dumpGids
	state.dumpGids = enabled
	return func() {
		state.mutex.Lock()
		defer state.mutex.Unlock()
		state.dumpGids = old
	}
}

func setPattern(p string) {
	state.pattern = p
	if p == "" {
		atomic.StoreInt32(&status, StateDisabled)
		return
	}
	state.re = regexp.MustCompile(p)
	state.file2Show = make(map[string]bool)
	atomic.StoreInt32(&status, StateEnabled)
}

func initialize() {
	if !atomic.CompareAndSwapInt32(&status, StateUninitialized, StateInitializing) {
		return
	}
	p := os.Getenv(EnvironmentVariable)
	if flagPattern != nil && *flagPattern != "" {
		p = *flagPattern
	}
	setPattern(p)
}

// Printf is drop-in replacement of log.Printf. It does
// runtime.Caller() if mlog is enabled at all, which is slow-ish;
// Printf2 avoids that.
func Printf(format string, args ...interface{}) {
	if atomic.LoadInt32(&status) == StateDisabled {
		return
	}
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return
	}
	Printf2(file, format, args...)
}

// Printf2 is the premier choice instead of Printf. It is supplied
// with the name of the file, and therefore has no runtime penalty to
// speak of when only part of the module is being logged.
func Printf2(file string, format string, args ...interface{}) {
	st := atomic.LoadInt32(&status)
	if st == StateDisabled {
		return
	}
	state.mutex.Lock()
	defer state.mutex.Unlock()
	if st < StateDisabled {
		initialize()
		if atomic.LoadInt32(&status) != StateEnabled {
			return
		}
	}
	show, ok := state.file2Show[file]
	if !ok {
		show = state.re.MatchString(file)
		state.file2Show[file] = show
	}
	if !show {
		return
	}
	depth := runtime.Callers(1, state.callers)
	if depth < state.minDepth {
		state.minDepth = depth
	}
	depth -= state.minDepth
	if depth > 0 {
		format = fmt.Sprint(strings.Repeat(".", depth), format)
	}
	if state.dumpGids {
		format = fmt.Sprintf("%8d %s", gid.GetGoroutineID(), format)
	}
	state.logger.Printf(format, args...)
}
