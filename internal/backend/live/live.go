// Package live implements the executor against the host's wsl
// command-line tool and OS process tables. Every external process is
// built through the syscmd factory so no console window ever flashes.
//
// Outside Windows the package still compiles: operations that need the
// host tool return UnsupportedPlatform, and the mock-mode predicate
// keeps the facade from ever selecting this backend there.
package live

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/syscmd"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/internal/wslparse"
)

// Backend drives the real WSL installation. It holds no mutable state:
// concurrency safety comes from spawning independent processes, and the
// underlying WSL scheduler serialises operations per distribution.
type Backend struct{}

// New returns the live executor.
func New() *Backend {
	return &Backend{}
}

// Resources returns the live resource monitor.
func (b *Backend) Resources() backend.ResourceMonitor {
	return &monitor{}
}

// Launcher returns the live terminal/IDE dispatcher.
func (b *Backend) Launcher() backend.Launcher {
	return &launcher{}
}

// wsl runs the wsl tool with the given arguments, waits for it to exit,
// and maps failures onto the error taxonomy. Stdout comes back raw:
// callers decode it with wslparse, since it may arrive as UTF-16LE.
func wsl(ctx context.Context, args ...string) ([]byte, error) {
	cmd := syscmd.WSL(ctx, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("exec: wsl %s", strings.Join(args, " "))

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	return stdout.Bytes(), mapExecError(err, stderr.Bytes(), ctx)
}

// mapExecError converts an os/exec failure into a structured error.
func mapExecError(err error, stderr []byte, ctx context.Context) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return wslerror.Wrap(wslerror.Timeout, ctxErr, "command abandoned: %v", ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return wslerror.Command(exitErr.ExitCode(), decodeStderr(stderr))
	}

	if errors.Is(err, exec.ErrNotFound) {
		return wslerror.Wrap(wslerror.NotInstalled, err, "the wsl tool is not on PATH")
	}

	return wslerror.Wrap(wslerror.IO, err, "could not run wsl: %v", err)
}

// decodeStderr gives a printable snippet of stderr, which on Windows is
// just as likely to be UTF-16LE as the stdout is.
func decodeStderr(raw []byte) string {
	return strings.TrimSpace(wslparse.Decode(raw))
}
