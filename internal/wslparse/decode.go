// Package wslparse interprets the output of the wsl command-line tool.
//
// On Windows the tool prints UTF-16LE unless WSL_UTF8 is honoured, and
// the header layout moves with the locale, so every parser here treats
// wide text and shifted columns as the common case rather than the
// exception. Failures are reported as ParseFailed errors carrying a
// snippet of the offending input, never a panic.
package wslparse

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
)

// Decode turns raw wsl output into a string. A leading byte-order mark
// selects UTF-16LE; without a BOM, interleaved NUL bytes betray BOM-less
// UTF-16LE (what wsl.exe actually emits); anything else is taken as
// UTF-8. Carriage returns are dropped so callers can split on '\n'.
func Decode(raw []byte) string {
	var text string

	switch {
	case bytes.HasPrefix(raw, bomUTF16LE):
		text = decodeUTF16LE(raw[len(bomUTF16LE):])
	case bytes.IndexByte(raw, 0x00) >= 0:
		text = decodeUTF16LE(raw)
	default:
		text = string(bytes.TrimPrefix(raw, bomUTF8))
	}

	return strings.ReplaceAll(text, "\r", "")
}

func decodeUTF16LE(raw []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(raw)
	if err != nil {
		// Salvage what we can: the replacement-char decoder never errors
		// in practice, but a truncated final code unit should not take
		// the whole listing down.
		return string(raw)
	}
	return string(decoded)
}

// lines splits decoded output into its non-empty lines.
func lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}
