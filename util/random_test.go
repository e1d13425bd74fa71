/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2026 Markus Stenberg
 *
 * Created:       Sun Oct 11 11:33:02 2026 mstenber
 * Last modified: Sun Oct 11 11:36:40 2026 mstenber
 * Edit time:     3 min
 *
 */

package util

import (
	"testing"

	"github.com/stvp/assert"
)

func TestSplitCounts(t *testing.T) {
	t.Parallel()
	rng := GetSeededRng()
	counts := SplitCounts(rng, 1234, 7)
	assert.Equal(t, len(counts), 7)
	sum := 0
	for _, c := range counts {
		assert.True(t, c >= 0)
		sum += c
	}
	assert.Equal(t, sum, 1234)
	assert.Equal(t, len(SplitCounts(rng, 10, 0)), 0)
}
