/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 17 13:40:12 2026 mstenber
 * Last modified: Sun Oct 18 12:04:51 2026 mstenber
 * Edit time:     131 min
 *
 */

package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/fatih/color"
	"github.com/fingon/go-lfstack"
	"github.com/fingon/go-lfstack/metrics"
	"github.com/fingon/go-lfstack/mlog"
	"github.com/fingon/go-lfstack/snapshot"
	"github.com/fingon/go-lfstack/storage"
	"github.com/fingon/go-lfstack/storage/factory"
	"github.com/fingon/go-lfstack/util"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type config struct {
	workers, parallel, count, capacity int
	mode                               string

	backend, dir, password, salt string
	snapshot, restore            string
	metrics                      string
}

// limiter allows parallel (by default, all) workers to run at once.
func (self config) limiter() *util.ParallelLimiter {
	return &util.ParallelLimiter{LimitTotal: util.IOr(self.parallel, self.workers)}
}

// runStack has every worker push its own index count times; in
// pushpop mode, every second push is followed by a pop.
func runStack(st *lfstack.Counted[int], conf config) {
	limiter := conf.limiter()
	var wg util.SimpleWaitGroup
	wg.GoN(conf.workers, func(i int) {
		defer limiter.Limited()()
		for j := 0; j < conf.count; j++ {
			st.Push(i)
			if conf.mode == "pushpop" && j%2 == 1 {
				st.Pop()
			}
		}
	})
	wg.Wait()
}

// runArena is runStack for the bounded variant; returns how many
// pushes found the arena full.
func runArena(st *lfstack.Arena[int], conf config) int64 {
	limiter := conf.limiter()
	var wg util.SimpleWaitGroup
	var full util.AtomicInt
	wg.GoN(conf.workers, func(i int) {
		defer limiter.Limited()()
		for j := 0; j < conf.count; j++ {
			if errors.Cause(st.Push(i)) == lfstack.ErrFull {
				full.Inc()
			}
		}
	})
	wg.Wait()
	return full.Get()
}

func reportTop(value int, ok bool) {
	if ok {
		color.Green("top element: %d", value)
	} else {
		color.Yellow("top element: none")
	}
}

func serveMetrics(address string) error {
	l, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrap(err, "metrics listener")
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go http.Serve(l, mux)
	return nil
}

func run(conf config) error {
	if conf.mode == "arena" {
		if conf.snapshot != "" || conf.restore != "" || conf.metrics != "" {
			return errors.New("-snapshot, -restore and -metrics need push or pushpop mode")
		}
		st := lfstack.NewArena[int](util.IOr(conf.capacity, conf.workers*conf.count))
		full := runArena(st, conf)
		color.Cyan("len: %d (cap %d, full %d)", st.Length(), st.Cap(), full)
		reportTop(st.Pop())
		return nil
	}
	if conf.mode != "push" && conf.mode != "pushpop" {
		return errors.Errorf("unknown mode %q", conf.mode)
	}

	st := lfstack.NewCounted[int]()
	var be storage.Backend
	if conf.snapshot != "" || conf.restore != "" {
		bconf := factory.CryptoBackendConfiguration{BackendName: conf.backend,
			Password: conf.password, Salt: conf.salt}
		bconf.Directory = conf.dir
		var err error
		be, err = factory.NewCryptoBackend(bconf)
		if err != nil {
			return err
		}
		defer be.Close()
	}
	if conf.restore != "" {
		n, err := snapshot.Restore[int](st.Stack(), be, conf.restore)
		if err != nil {
			return err
		}
		mlog.Printf2("cmd/lfstack/lfstack", "restored %d from %s", n, conf.restore)
	}
	if conf.metrics != "" {
		if err := metrics.Register(prometheus.DefaultRegisterer, "driver", st); err != nil {
			return err
		}
		if err := serveMetrics(conf.metrics); err != nil {
			return err
		}
	}

	runStack(st, conf)

	color.Cyan("len: %d", st.Length())
	color.Cyan("stats: %v", st.Stats())
	if conf.snapshot != "" {
		n, err := snapshot.Save[int](st.Stack(), be, conf.snapshot)
		if err != nil {
			return err
		}
		color.Green("saved %d to %s", n, conf.snapshot)
		// Save drained the stack; put it back for the report
		if _, err = snapshot.Restore[int](st.Stack(), be, conf.snapshot); err != nil {
			return err
		}
	}
	reportTop(st.Pop())

	if conf.metrics != "" {
		color.Blue("serving metrics at %s, interrupt to exit", conf.metrics)
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
	}
	return nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n\n%s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	var conf config
	flag.IntVar(&conf.workers, "workers", 10, "Number of workers")
	flag.IntVar(&conf.parallel, "parallel", 0, "Number of workers running at once (default: all)")
	flag.IntVar(&conf.count, "count", 1000, "Pushes per worker")
	flag.StringVar(&conf.mode, "mode", "push", "Mode (possible: push, pushpop, arena)")
	flag.IntVar(&conf.capacity, "capacity", 0, "Arena capacity (default: workers*count)")
	flag.StringVar(&conf.backend, "backend", "bolt",
		fmt.Sprintf("Backend to use for snapshots (possible: %v)", factory.List()))
	flag.StringVar(&conf.dir, "dir", "", "Storage directory for snapshots")
	flag.StringVar(&conf.password, "password", "", "Password (empty = no encryption)")
	flag.StringVar(&conf.salt, "salt", "", "Salt")
	flag.StringVar(&conf.snapshot, "snapshot", "", "Save stack to this snapshot after the run")
	flag.StringVar(&conf.restore, "restore", "", "Restore stack from this snapshot before the run")
	flag.StringVar(&conf.metrics, "metrics", "", "Address to serve /metrics at (keeps running until interrupted)")
	cpuprofile := flag.String("cpuprofile", "", "CPU profile file")

	flag.Parse()

	if flag.NArg() > 0 || conf.workers <= 0 || conf.count < 0 || conf.parallel < 0 {
		flag.Usage()
		os.Exit(1)
	}
	var profile *os.File
	if *cpuprofile != "" {
		var err error
		profile, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		if err = pprof.StartCPUProfile(profile); err != nil {
			log.Fatal(err)
		}
	}

	err := run(conf)

	// run has closed everything it opened; stop profiling before
	// possibly exiting
	if profile != nil {
		pprof.StopCPUProfile()
		profile.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}
