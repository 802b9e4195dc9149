// Package backend defines all the actions that a back-end to wsl-ui must
// be able to perform in order to drive, or otherwise mock, WSL.
package backend

import (
	"context"
)

// Backend is the executor capability set. The live implementation fronts
// the wsl command-line tool and OS process tables; the mock keeps a
// deterministic in-memory registry. The service facade owns exactly one
// Backend for the process lifetime and every other component reaches WSL
// through it, so both variants substitute consistently.
//
// All methods are safe for concurrent use. Long-running operations
// (import, export, install) block until the child process finishes;
// cancel them through ctx.
type Backend interface {
	// Distribution queries and lifecycle.
	ListDistributions(ctx context.Context) ([]Distribution, error)
	StartDistribution(ctx context.Context, name string) error
	TerminateDistribution(ctx context.Context, name string) error
	ShutdownAll(ctx context.Context) error
	RestartDistribution(ctx context.Context, name string) error
	UnregisterDistribution(ctx context.Context, name string) error
	SetDefault(ctx context.Context, name string) error

	// Registration, long-running.
	ImportDistribution(ctx context.Context, name, tarPath, installDir string, opts ImportOptions) error
	ExportDistribution(ctx context.Context, name, tarPath string, opts ExportOptions) error
	InstallDistribution(ctx context.Context, identifier string) error
	Update(ctx context.Context) (UpdateResult, error)

	// Introspection.
	Version(ctx context.Context) (VersionInfo, error)
	Preflight(ctx context.Context) (PreflightStatus, error)
	SystemDistroInfo(ctx context.Context, name string) (SystemDistroInfo, error)

	// Disk surface.
	VhdSize(ctx context.Context, name string) (VhdSizeInfo, error)
	CompactDisk(ctx context.Context, name string) (CompactResult, error)
	MountDisk(ctx context.Context, disk string, opts MountOptions) (MountedDisk, error)
	UnmountDisk(ctx context.Context, disk string) error
	ListMountedDisks(ctx context.Context) ([]MountedDisk, error)
	ListPhysicalDisks(ctx context.Context) ([]PhysicalDisk, error)

	// Sub-capabilities, obtained from the backend so that swapping the
	// backend swaps them too.
	Resources() ResourceMonitor
	Launcher() Launcher
}

// ResourceMonitor accounts memory against the WSL2 VM and its
// distributions and classifies overall health.
type ResourceMonitor interface {
	// VMUsage sums the resident memory of the host-side VM process
	// (vmmem / vmmemWSL). A stopped VM reports zero used bytes, not an
	// error. The limit comes from .wslconfig when readable.
	VMUsage(ctx context.Context) (ResourceUsage, error)

	// SystemTotalMemory reports total physical RAM in bytes, best effort.
	SystemTotalMemory(ctx context.Context) (uint64, error)

	// DistroUsage enumerates processes inside a running distribution and
	// sums their resident memory. A stopped distribution reports zeros,
	// not an error.
	DistroUsage(ctx context.Context, name string) (DistroResourceUsage, error)

	// Health classifies the VM: Stopped, Healthy, Degraded or
	// Unresponsive.
	Health(ctx context.Context) (Health, error)
}

// Launcher starts external programs bound to a distribution. Launches
// are fire-and-forget: the child is confirmed spawned but never waited
// for.
type Launcher interface {
	OpenTerminal(ctx context.Context, ref DistroRef, terminal Terminal) error
	OpenSystemTerminal(ctx context.Context, terminal Terminal) error
	OpenTerminalWithCommand(ctx context.Context, ref DistroRef, command string, terminal Terminal) error
	OpenFileExplorer(ctx context.Context, name string) error
	OpenIDE(ctx context.Context, name string, ideCommand string) error
}
