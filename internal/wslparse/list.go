package wslparse

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslerror"
)

// Entry is one row of `wsl --list --verbose`.
type Entry struct {
	Name    string
	State   state.State
	Version int
	Default bool
}

// List parses the raw output of `wsl --list --verbose`.
//
// Sample output:
//
//	  NAME           STATE           VERSION
//	* Ubuntu         Running         2
//	  My Distro      Stopped         2
//
// The first line is a localised header and carries no data, but its
// column offsets are authoritative: names may contain spaces, so rows
// are sliced at the header's field positions instead of being split on
// whitespace.
func List(raw []byte) ([]Entry, error) {
	text := Decode(raw)

	rows := lines(text)
	if len(rows) == 0 {
		return nil, nil
	}

	cols := columnOffsets(rows[0])
	if len(cols) < 3 {
		return nil, wslerror.Parse("wsl --list header", rows[0])
	}
	nameAt, stateAt, versionAt := cols[0], cols[1], cols[2]

	var entries []Entry
	for _, row := range rows[1:] {
		r := []rune(row)

		e := Entry{
			Default: strings.Contains(slice(r, 0, nameAt), "*"),
			Name:    strings.TrimSpace(slice(r, nameAt, stateAt)),
			State:   state.NewFromString(strings.TrimSpace(slice(r, stateAt, versionAt))),
		}
		if e.Name == "" {
			return nil, wslerror.Parse("wsl --list row", row)
		}

		v, err := strconv.Atoi(strings.TrimSpace(slice(r, versionAt, len(r))))
		if err != nil {
			return nil, wslerror.Parse("wsl --list version column", row)
		}
		e.Version = v

		entries = append(entries, e)
	}

	return entries, nil
}

// columnOffsets returns the rune offset of each field start in the
// header line. The header words themselves are localised; only their
// positions matter.
func columnOffsets(header string) []int {
	var offsets []int

	inField := false
	for i, r := range []rune(header) {
		if unicode.IsSpace(r) {
			inField = false
			continue
		}
		if !inField {
			offsets = append(offsets, i)
			inField = true
		}
	}

	return offsets
}

// slice takes r[from:to] guarding both bounds against short rows.
func slice(r []rune, from, to int) string {
	if from > len(r) {
		from = len(r)
	}
	if to > len(r) {
		to = len(r)
	}
	if from >= to {
		return ""
	}
	return string(r[from:to])
}
