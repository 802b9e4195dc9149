package wslparse_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/internal/wslparse"
	"golang.org/x/text/encoding/unicode"
)

// utf16le encodes text the way wsl.exe prints it on Windows.
func utf16le(t *testing.T, text string, withBOM bool) []byte {
	t.Helper()

	bom := unicode.IgnoreBOM
	if withBOM {
		bom = unicode.ExpectBOM
	}

	out, err := unicode.UTF16(unicode.LittleEndian, bom).NewEncoder().Bytes([]byte(text))
	require.NoError(t, err, "Setup: could not encode fixture as UTF-16LE")
	return out
}

const listOutput = "  NAME                   STATE           VERSION\r\n" +
	"* Ubuntu                 Running         2\r\n" +
	"  Debian                 Stopped         2\r\n" +
	"  My Custom Distro       Installing      1\r\n"

func TestList(t *testing.T) {
	t.Parallel()

	wantEntries := []wslparse.Entry{
		{Name: "Ubuntu", State: state.Running, Version: 2, Default: true},
		{Name: "Debian", State: state.Stopped, Version: 2},
		{Name: "My Custom Distro", State: state.Installing, Version: 1},
	}

	localisedOutput := "  BEZEICHNUNG    ZUSTAND     VERSION\r\n" +
		"* Ubuntu         Running     2\r\n"

	testCases := map[string]struct {
		raw []byte

		want     []wslparse.Entry
		wantErr  bool
		wantKind wslerror.Kind
	}{
		"utf8":                  {raw: []byte(listOutput), want: wantEntries},
		"utf16le with bom":      {raw: utf16le(t, listOutput, true), want: wantEntries},
		"utf16le without bom":   {raw: utf16le(t, listOutput, false), want: wantEntries},
		"localised header":      {raw: []byte(localisedOutput), want: wantEntries[:1]},
		"empty output":          {raw: nil},
		"header only":           {raw: []byte("  NAME  STATE  VERSION\r\n")},
		"unknown state keyword": {
			raw:  []byte("  NAME    STATE      VERSION\n  Ubuntu  Hibernée   2\n"),
			want: []wslparse.Entry{{Name: "Ubuntu", State: state.Unknown, Version: 2}},
		},

		"error on single-column header": {raw: []byte("whoops\nUbuntu Running 2\n"), wantErr: true, wantKind: wslerror.ParseFailed},
		"error on non-numeric version":  {raw: []byte("  NAME    STATE    VERSION\n  Ubuntu  Running  two\n"), wantErr: true, wantKind: wslerror.ParseFailed},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := wslparse.List(tc.raw)
			if tc.wantErr {
				require.Error(t, err, "List should have failed")
				require.Equal(t, tc.wantKind, wslerror.KindOf(err), "unexpected error kind")
				return
			}
			require.NoError(t, err, "List should have succeeded")
			assert.Equal(t, tc.want, got, "parsed entries mismatch")
		})
	}
}

func TestListColumnsFollowHeader(t *testing.T) {
	t.Parallel()

	// Wider name column, as produced when a long name stretches the layout.
	raw := "  NAME                                  STATE           VERSION\n" +
		"* a very long distribution name here    Running         2\n"

	got, err := wslparse.List([]byte(raw))
	require.NoError(t, err, "List should parse a stretched layout")
	require.Len(t, got, 1)
	assert.Equal(t, "a very long distribution name here", got[0].Name)
	assert.Equal(t, state.Running, got[0].State)
	assert.True(t, got[0].Default)
}

const versionOutput = "WSL version: 2.0.14.0\r\n" +
	"Kernel version: 5.15.133.1-1\r\n" +
	"WSLg version: 1.0.59\r\n" +
	"MSRDC version: 1.2.4677\r\n" +
	"Direct3D version: 1.611.1-81528511\r\n" +
	"DXCore version: 10.0.25131.1002\r\n" +
	"Windows version: 10.0.22631.3007\r\n"

func TestVersion(t *testing.T) {
	t.Parallel()

	full := wslparse.VersionInfo{
		WSL:      "2.0.14.0",
		Kernel:   "5.15.133.1-1",
		WSLg:     "1.0.59",
		MSRDC:    "1.2.4677",
		Direct3D: "1.611.1-81528511",
		DXCore:   "10.0.25131.1002",
		Windows:  "10.0.22631.3007",
	}

	testCases := map[string]struct {
		raw []byte

		want    wslparse.VersionInfo
		wantErr bool
	}{
		"utf8":         {raw: []byte(versionOutput), want: full},
		"utf16le":      {raw: utf16le(t, versionOutput, true), want: full},
		"missing keys": {
			raw:  []byte("WSL version: 1.2.3\nKernel version: 5.10.0\n"),
			want: wslparse.VersionInfo{WSL: "1.2.3", Kernel: "5.10.0"},
		},
		"wslg not mistaken for wsl": {
			raw:  []byte("WSLg version: 1.0.59\n"),
			want: wslparse.VersionInfo{WSLg: "1.0.59"},
		},

		"error on free text": {raw: []byte("no such option\n"), wantErr: true},
		"error on empty":     {raw: nil, wantErr: true},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := wslparse.Version(tc.raw)
			if tc.wantErr {
				require.Error(t, err, "Version should have failed")
				var e *wslerror.Error
				require.True(t, errors.As(err, &e), "error should be structured")
				return
			}
			require.NoError(t, err, "Version should have succeeded")
			assert.Equal(t, tc.want, got, "parsed version info mismatch")
		})
	}
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	raw := utf16le(t, "Default Distribution: Ubuntu\r\nDefault Version: 2\r\n", true)

	got, err := wslparse.ParseStatus(raw)
	require.NoError(t, err, "ParseStatus should have succeeded")
	assert.Equal(t, wslparse.Status{DefaultDistribution: "Ubuntu", DefaultVersion: 2}, got)
}

func TestSize(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		raw string

		want    int64
		wantErr bool
	}{
		"plain":      {raw: "5368709120", want: 5368709120},
		"whitespace": {raw: "  5368709120 \r\n", want: 5368709120},
		"zero":       {raw: "0", want: 0},

		"error on negative": {raw: "-1", wantErr: true},
		"error on text":     {raw: "five gigabytes", wantErr: true},
		"error on empty":    {raw: "", wantErr: true},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := wslparse.Size([]byte(tc.raw))
			if tc.wantErr {
				require.Error(t, err, "Size should have failed")
				require.Equal(t, wslerror.ParseFailed, wslerror.KindOf(err), "unexpected error kind")
				return
			}
			require.NoError(t, err, "Size should have succeeded")
			assert.Equal(t, tc.want, got, "parsed size mismatch")
		})
	}
}
