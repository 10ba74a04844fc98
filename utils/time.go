package utils

/**
 * time.go - Time utils
 */

import (
	"time"
)

/**
 * Parse duration or return default
 */
func ParseDurationOrDefault(s string, defaultDuration time.Duration) time.Duration {

	if s == "" {
		return defaultDuration
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultDuration
	}

	return d
}

/**
 * Whole milliseconds of d, negative durations count as zero
 */
func Millis(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Millisecond)
}
