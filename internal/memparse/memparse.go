// Package memparse converts the human-readable memory sizes found in
// .wslconfig ("8GB", "4096MB", "1T") into byte counts.
package memparse

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

var multipliers = map[string]uint64{
	"b":  1,
	"k":  1 << 10,
	"kb": 1 << 10,
	"m":  1 << 20,
	"mb": 1 << 20,
	"g":  1 << 30,
	"gb": 1 << 30,
	"t":  1 << 40,
	"tb": 1 << 40,
}

// Bytes parses a human-readable size into a byte count. The boolean
// reports whether the input was understood: empty strings, negative
// numbers and unknown units all come back false rather than an error,
// because a bad .wslconfig value means "no limit configured".
func Bytes(s string) (uint64, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	unitAt := strings.IndexFunc(s, unicode.IsLetter)
	if unitAt < 0 {
		// Bare integer: a plain byte count.
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}

	number := strings.TrimSpace(s[:unitAt])
	unit := strings.TrimSpace(s[unitAt:])

	value, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value < 0 {
		return 0, false
	}

	mult, ok := multipliers[unit]
	if !ok {
		return 0, false
	}

	return uint64(math.Floor(value * float64(mult))), true
}
