/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2018 Markus Stenberg
 *
 * Created:       Fri Mar 16 13:56:39 2018 mstenber
 * Last modified: Sun Oct 11 11:31:47 2026 mstenber
 * Edit time:     9 min
 *
 */

package util

import (
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/fingon/go-lfstack/mlog"
)

func newRandWithSource(seedvalue int64) *rand.Rand {
	mlog.Printf2("util/random", "newRandWithSource %v", seedvalue)
	source := rand.NewSource(seedvalue)
	return rand.New(source)
}

// GetSeededRng returns a rng seeded from SEED environment variable,
// or current time if it is not set. The seed is always logged so
// that failing torture runs can be repeated.
func GetSeededRng() *rand.Rand {
	seed := os.Getenv("SEED")

	seedvalue := time.Now().UnixNano()
	if seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			log.Panic(err)
		}
		seedvalue = v
	}
	log.Printf("Seed: %v (use SEED= to fix)", seedvalue)
	return newRandWithSource(seedvalue)
}

// SplitCounts splits total into n non-negative parts at random;
// torture tests use it to give workers uneven amounts of work.
func SplitCounts(rng *rand.Rand, total, n int) []int {
	counts := make([]int, n)
	if n == 0 {
		return counts
	}
	for i := 0; i < total; i++ {
		counts[rng.Intn(n)]++
	}
	return counts
}
