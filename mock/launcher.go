package mock

// This file implements the terminal/IDE dispatch sub-capability. No
// process is ever spawned: launches are recorded so tests can assert on
// what would have run.

import (
	"context"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/wslerror"
)

// Launch records one simulated fire-and-forget spawn.
type Launch struct {
	Op       string
	Distro   string
	ByID     bool
	Command  string
	Terminal backend.TerminalKind
}

// Launches snapshots every recorded launch since the last reset.
func (b *Backend) Launches() []Launch {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Launch, len(b.launches))
	copy(out, b.launches)
	return out
}

// Launcher returns the simulated dispatcher.
func (b *Backend) Launcher() backend.Launcher {
	return (*launcher)(b)
}

type launcher Backend

func (l *launcher) OpenTerminal(ctx context.Context, ref backend.DistroRef, terminal backend.Terminal) error {
	return (*Backend)(l).record(Launch{
		Op:       "openTerminal",
		Distro:   ref.Name,
		ByID:     ref.ID != nil,
		Terminal: terminal.Kind,
	})
}

func (l *launcher) OpenSystemTerminal(ctx context.Context, terminal backend.Terminal) error {
	return (*Backend)(l).record(Launch{
		Op:       "openSystemTerminal",
		Terminal: terminal.Kind,
	})
}

func (l *launcher) OpenTerminalWithCommand(ctx context.Context, ref backend.DistroRef, command string, terminal backend.Terminal) error {
	if command == "" {
		return wslerror.New(wslerror.InvalidArgument, "no command to run")
	}

	return (*Backend)(l).record(Launch{
		Op:       "openTerminalWithCommand",
		Distro:   ref.Name,
		ByID:     ref.ID != nil,
		Command:  command,
		Terminal: terminal.Kind,
	})
}

func (l *launcher) OpenFileExplorer(ctx context.Context, name string) error {
	return (*Backend)(l).record(Launch{Op: "openFileExplorer", Distro: name})
}

func (l *launcher) OpenIDE(ctx context.Context, name string, ideCommand string) error {
	if ideCommand == "" {
		return wslerror.New(wslerror.InvalidArgument, "no IDE command configured")
	}

	return (*Backend)(l).record(Launch{Op: "openIDE", Distro: name, Command: ideCommand})
}

// record appends a launch unless a fault is queued against the
// operation.
func (b *Backend) record(launch Launch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault(launch.Op); err != nil {
		return err
	}
	if launch.Distro != "" {
		if _, err := b.lookup(launch.Distro); err != nil {
			return err
		}
	}

	b.launches = append(b.launches, launch)
	return nil
}
