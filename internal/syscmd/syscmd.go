// Package syscmd builds the external-process invocations used by the live
// backend. It is the only place that knows how to keep a console window
// from flashing on Windows: every exec.Cmd in the core must come from
// here.
package syscmd

import (
	"context"
	"os/exec"
)

// Command returns an exec.Cmd for the given program that will not open a
// console window on Windows. On other platforms the command is returned
// unmodified.
func Command(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	return cmd
}

// WSL returns a hidden-window invocation of the wsl tool with the given
// arguments. WSL_UTF8 is requested so that recent WSL builds answer in
// UTF-8; older builds ignore it and keep printing UTF-16LE, which the
// parsers handle.
func WSL(ctx context.Context, args ...string) *exec.Cmd {
	cmd := Command(ctx, "wsl.exe", args...)
	cmd.Env = append(cmd.Environ(), "WSL_UTF8=1")
	return cmd
}
