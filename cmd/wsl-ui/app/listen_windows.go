//go:build windows

package app

import (
	"net"

	"github.com/Microsoft/go-winio"
)

const defaultPipe = `\\.\pipe\wsl-ui`

// listen opens the bridge's named pipe. The default security descriptor
// restricts the pipe to the launching user, which is what a per-user
// desktop bridge wants.
func listen(address string) (net.Listener, error) {
	if address == "" {
		address = defaultPipe
	}

	return winio.ListenPipe(address, &winio.PipeConfig{})
}
