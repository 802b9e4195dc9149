package live

// Terminal, file-explorer and IDE dispatch. Launches are
// fire-and-forget: the child is confirmed spawned and then released;
// whatever happens inside it is the user's business.
//
// Terminals are console programs, so they cannot be spawned directly
// from a hidden-window factory command: `cmd /c start` detaches a fresh
// console for them while the intermediate cmd stays invisible.

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	log "github.com/sirupsen/logrus"
	"github.com/ubuntu/decorate"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/syscmd"
	"github.com/wslui/wslui/internal/wslerror"
)

type launcher struct{}

// OpenTerminal attaches a terminal session to the distribution. The
// GUID is preferred for dispatch when the caller knows it.
func (l *launcher) OpenTerminal(ctx context.Context, ref backend.DistroRef, terminal backend.Terminal) (err error) {
	defer decorate.OnError(&err, "could not open a terminal on %q", ref.Name)

	return spawn(ctx, terminalArgs(terminal, sessionArgs(ref)))
}

// OpenSystemTerminal attaches to WSL's internal system distribution.
func (l *launcher) OpenSystemTerminal(ctx context.Context, terminal backend.Terminal) (err error) {
	defer decorate.OnError(&err, "could not open a system-distro terminal")

	return spawn(ctx, terminalArgs(terminal, []string{"wsl.exe", "--system"}))
}

// OpenTerminalWithCommand runs command inside the distribution and
// drops into a shell afterwards, so the terminal stays open and the
// user can read the output.
func (l *launcher) OpenTerminalWithCommand(ctx context.Context, ref backend.DistroRef, command string, terminal backend.Terminal) (err error) {
	defer decorate.OnError(&err, "could not run %q in a terminal on %q", command, ref.Name)

	if command == "" {
		return wslerror.New(wslerror.InvalidArgument, "no command to run")
	}

	args := sessionArgs(ref)
	args = append(args, "--", "/bin/sh", "-c", fmt.Sprintf("%s; exec ${SHELL:-/bin/sh}", command))

	return spawn(ctx, terminalArgs(terminal, args))
}

// OpenFileExplorer opens the host file manager at the distribution's
// filesystem root.
func (l *launcher) OpenFileExplorer(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not open the file explorer on %q", name)

	return spawn(ctx, []string{"explorer.exe", `\\wsl$\` + name + `\`})
}

// OpenIDE launches the configured IDE in remote-attach mode.
func (l *launcher) OpenIDE(ctx context.Context, name string, ideCommand string) (err error) {
	defer decorate.OnError(&err, "could not open %q on %q", ideCommand, name)

	if ideCommand == "" {
		return wslerror.New(wslerror.InvalidArgument, "no IDE command configured")
	}

	return spawn(ctx, []string{ideCommand, "--remote", "wsl+" + name})
}

// sessionArgs builds the wsl invocation binding a session to the
// distribution, by GUID when one is known.
func sessionArgs(ref backend.DistroRef) []string {
	if ref.ID != nil {
		return []string{"wsl.exe", "--distribution-id", "{" + ref.ID.String() + "}"}
	}
	return []string{"wsl.exe", "--distribution", ref.Name}
}

// terminalArgs wraps a wsl session invocation in the chosen terminal.
func terminalArgs(terminal backend.Terminal, session []string) []string {
	switch terminal.Kind {
	case backend.WindowsTerminal:
		return append([]string{"wt.exe"}, session...)
	case backend.PowerShell:
		return append([]string{"cmd.exe", "/c", "start", "", "powershell.exe", "-NoExit", "-Command"}, session...)
	case backend.Cmd:
		return append([]string{"cmd.exe", "/c", "start", ""}, session...)
	case backend.TerminalCustom:
		return append([]string{terminal.Path}, session...)
	default:
		// Fall back to a plain console window.
		return append([]string{"cmd.exe", "/c", "start", ""}, session...)
	}
}

// spawn starts the child through the hidden-window factory and releases
// it. Failure to spawn is a structured error; failure inside the child
// is not observed.
func spawn(ctx context.Context, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return wslerror.New(wslerror.InvalidArgument, "nothing to launch")
	}

	cmd := syscmd.Command(ctx, argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return wslerror.Wrap(wslerror.IO, err, "%q is not installed or not on PATH", argv[0])
		}
		return wslerror.Wrap(wslerror.IO, err, "could not spawn %q", argv[0])
	}

	log.Debugf("spawned %v (pid %d)", argv, cmd.Process.Pid)
	return cmd.Process.Release()
}
