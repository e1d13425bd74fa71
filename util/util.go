/*
 * Author: Markus Stenberg <fingon@iki.fi>
 *
 * Copyright (c) 2017 Markus Stenberg
 *
 * Created:       Fri Dec 29 09:03:12 2017 mstenber
 * Last modified: Sun Oct 11 11:05:32 2026 mstenber
 * Edit time:     12 min
 *
 */

package util

func IMin(i int, ints ...int) int {
	for _, v := range ints {
		if v < i {
			i = v
		}
	}
	return i
}

func IMax(i int, ints ...int) int {
	for _, v := range ints {
		if v > i {
			i = v
		}
	}
	return i
}

// IOr returns the first non-zero argument (or zero). Used for
// filling in configuration defaults.
func IOr(i int, ints ...int) int {
	if i != 0 {
		return i
	}
	for _, v := range ints {
		if v != 0 {
			return v
		}
	}
	return 0
}

// SOr is IOr for strings.
func SOr(s string, strings ...string) string {
	if s != "" {
		return s
	}
	for _, v := range strings {
		if v != "" {
			return v
		}
	}
	return ""
}
