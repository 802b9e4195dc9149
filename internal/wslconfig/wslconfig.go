// Package wslconfig reads the user-level .wslconfig file that caps the
// WSL2 VM's resources. Only the memory limit is of interest to the core.
package wslconfig

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/wslui/wslui/internal/memparse"
)

// MemoryLimit returns the configured VM memory cap in bytes, or nil when
// no .wslconfig exists, the [wsl2] section has no memory key, or the
// value does not parse. A bad value is not an error: it simply means no
// cap is known.
func MemoryLimit() *uint64 {
	home := os.Getenv("USERPROFILE")
	if home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return nil
	}

	return memoryLimitFrom(filepath.Join(home, ".wslconfig"))
}

func memoryLimitFrom(path string) *uint64 {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil
	}

	value := cfg.Section("wsl2").Key("memory").String()
	bytes, ok := memparse.Bytes(value)
	if !ok {
		return nil
	}

	return &bytes
}
