//go:build !windows

package syscmd

import "os/exec"

// There is no console window to suppress outside Windows.
func hideWindow(*exec.Cmd) {}
