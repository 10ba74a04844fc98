package utils

/**
 * size.go - zone size parsing
 */

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

/**
 * Parses a byte size. Accepts plain numbers, single letter
 * binary suffixes ("512k", "1.5m", "1g") and humanize forms ("1 MiB", "2MB")
 */
func ParseSize(s string) (int64, error) {

	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty size")
	}

	var multiplier int64 = 1
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1 << 10
	case 'm', 'M':
		multiplier = 1 << 20
	case 'g', 'G':
		multiplier = 1 << 30
	}
	if multiplier == 1 {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if n < 0 {
				return 0, errors.New("negative size " + s)
			}
			return n, nil
		}
		return parseHumanSize(s)
	}

	num := strings.TrimSpace(s[:len(s)-1])

	if n, err := strconv.ParseInt(num, 10, 64); err == nil {
		if n < 0 {
			return 0, errors.New("negative size " + s)
		}
		if n > (1<<63-1)/multiplier {
			return 0, errors.New("size overflow " + s)
		}
		return n * multiplier, nil
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("invalid size " + s)
	}
	if f < 0 {
		return 0, errors.New("negative size " + s)
	}

	v := f * float64(multiplier)
	if v >= 1<<63 {
		return 0, errors.New("size overflow " + s)
	}

	return int64(v), nil
}

func parseHumanSize(s string) (int64, error) {

	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if n > 1<<63-1 {
		return 0, errors.New("size overflow " + s)
	}

	return int64(n), nil
}

/**
 * Parses size or returns default when s is empty
 */
func ParseSizeOrDefault(s string, def int64) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return ParseSize(s)
}
