/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sat Oct 17 10:14:09 2026 mstenber
 * Last modified: Sat Oct 17 11:02:44 2026 mstenber
 * Edit time:     26 min
 *
 */

// metrics exports the counters of lfstack.Counted stacks to
// Prometheus.
package metrics

import (
	"github.com/fingon/go-lfstack"
	"github.com/fingon/go-lfstack/mlog"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lfstack"

// StatsSource is typically *lfstack.Counted.
type StatsSource interface {
	Stats() lfstack.Stats
}

func counter(name, metric, help string, get func() int64) prometheus.CounterFunc {
	return prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: name,
			Name:      metric,
			Help:      help,
		}, func() float64 { return float64(get()) })
}

func collectors(name string, src StatsSource) []prometheus.Collector {
	return []prometheus.Collector{
		counter(name, "pushes_total", "Total of pushed values.",
			func() int64 { return src.Stats().Pushes }),
		counter(name, "pops_total", "Total of popped values.",
			func() int64 { return src.Stats().Pops }),
		counter(name, "empty_pops_total", "Total of pops that found the stack empty.",
			func() int64 { return src.Stats().EmptyPops }),
		counter(name, "cas_retries_total", "Total of failed compare-and-swap attempts.",
			func() int64 { return src.Stats().Retries }),
	}
}

// Register adds lfstack_<name>_* counters for src to reg. name must
// be a valid Prometheus name fragment and unique within reg.
func Register(reg prometheus.Registerer, name string, src StatsSource) error {
	mlog.Printf2("metrics/metrics", "Register %s", name)
	for _, c := range collectors(name, src) {
		if err := reg.Register(c); err != nil {
			return errors.Wrapf(err, "registering %s metrics", name)
		}
	}
	return nil
}
