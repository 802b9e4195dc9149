//go:build !windows

package app

import (
	"net"
	"os"
	"path/filepath"

	"github.com/wslui/wslui/internal/appdir"
)

// listen opens the bridge's unix socket under the config directory.
// Mock-mode development on Linux and macOS talks to the same protocol
// as the Windows pipe.
func listen(address string) (net.Listener, error) {
	if address == "" {
		dir, err := appdir.Dir()
		if err != nil {
			return nil, err
		}
		address = filepath.Join(dir, "wsl-ui.sock")
	}

	// A stale socket from a previous run refuses the bind.
	if err := os.Remove(address); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return net.Listen("unix", address)
}
