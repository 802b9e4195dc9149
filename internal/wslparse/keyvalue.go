package wslparse

import (
	"strconv"
	"strings"

	"github.com/wslui/wslui/internal/wslerror"
)

// VersionInfo is the decoded output of `wsl --version`. Fields the tool
// did not print stay empty.
type VersionInfo struct {
	WSL      string `json:"wslVersion,omitempty"`
	Kernel   string `json:"kernelVersion,omitempty"`
	WSLg     string `json:"wslgVersion,omitempty"`
	MSRDC    string `json:"msrdcVersion,omitempty"`
	Direct3D string `json:"direct3dVersion,omitempty"`
	DXCore   string `json:"dxCoreVersion,omitempty"`
	Windows  string `json:"windowsVersion,omitempty"`
}

// Status is the decoded output of `wsl --status`.
type Status struct {
	DefaultDistribution string `json:"defaultDistribution,omitempty"`
	DefaultVersion      int    `json:"defaultVersion,omitempty"`
}

// Version parses `wsl --version` output. Lines are `key: value`; keys
// are matched by their identifying word so localised suffixes such as
// "versión" do not break recognition. Unknown lines are skipped.
func Version(raw []byte) (VersionInfo, error) {
	var info VersionInfo

	seen := false
	for _, row := range lines(Decode(raw)) {
		key, value, ok := splitKeyValue(row)
		if !ok {
			continue
		}
		seen = true

		switch {
		case strings.Contains(key, "wslg"):
			info.WSLg = value
		case strings.Contains(key, "wsl"):
			info.WSL = value
		case strings.Contains(key, "kernel"):
			info.Kernel = value
		case strings.Contains(key, "msrdc"):
			info.MSRDC = value
		case strings.Contains(key, "direct3d"):
			info.Direct3D = value
		case strings.Contains(key, "dxcore"):
			info.DXCore = value
		case strings.Contains(key, "windows"):
			info.Windows = value
		}
	}

	if !seen {
		return info, wslerror.Parse("wsl --version", Decode(raw))
	}

	return info, nil
}

// ParseStatus parses `wsl --status` output. Only recognised keys are
// extracted; everything else the tool prints (kernel ads, update notes)
// is ignored.
func ParseStatus(raw []byte) (Status, error) {
	var st Status

	for _, row := range lines(Decode(raw)) {
		key, value, ok := splitKeyValue(row)
		if !ok {
			continue
		}

		switch {
		case strings.Contains(key, "distribution"):
			st.DefaultDistribution = value
		case strings.Contains(key, "version"):
			if v, err := strconv.Atoi(value); err == nil {
				st.DefaultVersion = v
			}
		}
	}

	return st, nil
}

// Size parses a disk-size query answer: an integer byte count, possibly
// surrounded by noise whitespace.
func Size(raw []byte) (int64, error) {
	text := strings.TrimSpace(Decode(raw))

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil || n < 0 {
		return 0, wslerror.Parse("disk size", text)
	}

	return n, nil
}

func splitKeyValue(row string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(row, ":")
	if !ok {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), true
}
