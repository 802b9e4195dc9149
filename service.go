package wslui

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/wslui/wslui/internal/appdir"
	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/backend/live"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/mock"
)

// Service is the single public entry point: it owns one executor for
// the process lifetime and exposes the whole management surface to the
// command bridge. The zero value is not usable; construct with New.
type Service struct {
	backend backend.Backend
}

type options struct {
	backend backend.Backend
}

// Option customises Service construction.
type Option func(*options)

// WithBackend injects an explicit executor, overriding mock-mode
// detection. Tests use it to hand in a *mock.Backend they keep a
// handle on for fault injection.
func WithBackend(b backend.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// New constructs the Service, selecting the backend once: the injected
// one when given, the mock in mock mode, the live executor otherwise.
func New(args ...Option) *Service {
	var opts options
	for _, f := range args {
		f(&opts)
	}

	b := opts.backend
	switch {
	case b != nil:
	case MockMode():
		log.Info("wsl-ui: mock mode, WSL calls are simulated")
		b = mock.New()
	default:
		b = live.New()
	}

	return &Service{backend: b}
}

// ConfigDir resolves the application's configuration directory,
// creating it if missing. The files inside are owned by the front-end.
func (s *Service) ConfigDir() (string, error) {
	return appdir.Dir()
}

// ListDistributions enumerates the registered distributions.
func (s *Service) ListDistributions(ctx context.Context) ([]Distribution, error) {
	return s.backend.ListDistributions(ctx)
}

// StartDistribution wakes the named distribution up.
func (s *Service) StartDistribution(ctx context.Context, name string) error {
	return s.backend.StartDistribution(ctx, name)
}

// TerminateDistribution stops the named distribution.
func (s *Service) TerminateDistribution(ctx context.Context, name string) error {
	return s.backend.TerminateDistribution(ctx, name)
}

// ShutdownAll powers the whole VM off. Destructive: gated by preflight.
// The call returns only once the shutdown is observed, so a subsequent
// start cannot overtake it.
func (s *Service) ShutdownAll(ctx context.Context) error {
	if err := s.requirePreflight(ctx); err != nil {
		return err
	}
	return s.backend.ShutdownAll(ctx)
}

// RestartDistribution stops then starts the named distribution.
func (s *Service) RestartDistribution(ctx context.Context, name string) error {
	return s.backend.RestartDistribution(ctx, name)
}

// UnregisterDistribution removes the named distribution and its data.
// Destructive and irreversible: gated by preflight.
func (s *Service) UnregisterDistribution(ctx context.Context, name string) error {
	if err := s.requirePreflight(ctx); err != nil {
		return err
	}
	return s.backend.UnregisterDistribution(ctx, name)
}

// SetDefault marks the named distribution as the default one.
func (s *Service) SetDefault(ctx context.Context, name string) error {
	return s.backend.SetDefault(ctx, name)
}

// ImportDistribution registers a new distribution from a tarball.
// Long-running; cancel through ctx.
func (s *Service) ImportDistribution(ctx context.Context, name, tarPath, installDir string, opts ImportOptions) error {
	return s.backend.ImportDistribution(ctx, name, tarPath, installDir, opts)
}

// ExportDistribution writes the named distribution to a tarball (or
// vhdx). Long-running; cancel through ctx.
func (s *Service) ExportDistribution(ctx context.Context, name, tarPath string, opts ExportOptions) error {
	return s.backend.ExportDistribution(ctx, name, tarPath, opts)
}

// InstallDistribution installs a distribution by its store moniker.
func (s *Service) InstallDistribution(ctx context.Context, identifier string) error {
	return s.backend.InstallDistribution(ctx, identifier)
}

// Update updates the WSL installation itself.
func (s *Service) Update(ctx context.Context) (UpdateResult, error) {
	return s.backend.Update(ctx)
}

// Version reports the WSL component versions.
func (s *Service) Version(ctx context.Context) (VersionInfo, error) {
	return s.backend.Version(ctx)
}

// Preflight probes whether WSL is installed, enabled and supported.
func (s *Service) Preflight(ctx context.Context) (PreflightStatus, error) {
	return s.backend.Preflight(ctx)
}

// SystemDistroInfo reads OS metadata from inside the distribution.
func (s *Service) SystemDistroInfo(ctx context.Context, name string) (SystemDistroInfo, error) {
	return s.backend.SystemDistroInfo(ctx, name)
}

// VhdSize reports the on-disk size of the distribution's virtual disk.
func (s *Service) VhdSize(ctx context.Context, name string) (VhdSizeInfo, error) {
	return s.backend.VhdSize(ctx, name)
}

// CompactDisk shrinks the distribution's virtual disk.
func (s *Service) CompactDisk(ctx context.Context, name string) (CompactResult, error) {
	return s.backend.CompactDisk(ctx, name)
}

// MountDisk attaches a host disk to the VM.
func (s *Service) MountDisk(ctx context.Context, disk string, opts MountOptions) (MountedDisk, error) {
	return s.backend.MountDisk(ctx, disk, opts)
}

// UnmountDisk detaches a previously mounted disk.
func (s *Service) UnmountDisk(ctx context.Context, disk string) error {
	return s.backend.UnmountDisk(ctx, disk)
}

// ListMountedDisks enumerates disks currently attached to the VM.
func (s *Service) ListMountedDisks(ctx context.Context) ([]MountedDisk, error) {
	return s.backend.ListMountedDisks(ctx)
}

// ListPhysicalDisks enumerates host disks eligible for mounting.
func (s *Service) ListPhysicalDisks(ctx context.Context) ([]PhysicalDisk, error) {
	return s.backend.ListPhysicalDisks(ctx)
}

// VMUsage reports the VM-wide memory account.
func (s *Service) VMUsage(ctx context.Context) (ResourceUsage, error) {
	return s.backend.Resources().VMUsage(ctx)
}

// SystemTotalMemory reports total physical RAM.
func (s *Service) SystemTotalMemory(ctx context.Context) (uint64, error) {
	return s.backend.Resources().SystemTotalMemory(ctx)
}

// DistroUsage reports the per-distribution memory account. Stopped
// distributions report zeros rather than an error.
func (s *Service) DistroUsage(ctx context.Context, name string) (DistroResourceUsage, error) {
	return s.backend.Resources().DistroUsage(ctx, name)
}

// WslHealth classifies the VM's health.
func (s *Service) WslHealth(ctx context.Context) (Health, error) {
	return s.backend.Resources().Health(ctx)
}

// OpenTerminal launches the configured terminal attached to the
// distribution. The GUID in ref, when set, is preferred for dispatch.
func (s *Service) OpenTerminal(ctx context.Context, ref DistroRef, terminal Terminal) error {
	return s.backend.Launcher().OpenTerminal(ctx, ref, terminal)
}

// OpenSystemTerminal attaches a terminal to WSL's internal system
// distribution.
func (s *Service) OpenSystemTerminal(ctx context.Context, terminal Terminal) error {
	return s.backend.Launcher().OpenSystemTerminal(ctx, terminal)
}

// OpenTerminalWithCommand runs command inside the distribution, keeping
// the terminal open after completion.
func (s *Service) OpenTerminalWithCommand(ctx context.Context, ref DistroRef, command string, terminal Terminal) error {
	return s.backend.Launcher().OpenTerminalWithCommand(ctx, ref, command, terminal)
}

// OpenFileExplorer opens the host file manager at the distribution's
// filesystem root.
func (s *Service) OpenFileExplorer(ctx context.Context, name string) error {
	return s.backend.Launcher().OpenFileExplorer(ctx, name)
}

// OpenIDE launches the configured IDE attached to the distribution.
func (s *Service) OpenIDE(ctx context.Context, name string, ideCommand string) error {
	return s.backend.Launcher().OpenIDE(ctx, name, ideCommand)
}

// requirePreflight refuses destructive operations unless the
// installation passes preflight.
func (s *Service) requirePreflight(ctx context.Context) error {
	status, err := s.backend.Preflight(ctx)
	if err != nil {
		return err
	}

	switch {
	case !status.PlatformSupported:
		return wslerror.New(wslerror.UnsupportedPlatform, "WSL is only available on Windows")
	case !status.Installed:
		return wslerror.New(wslerror.NotInstalled, "WSL is not installed")
	case !status.Enabled:
		return wslerror.New(wslerror.NotEnabled, "WSL is installed but not enabled")
	}

	return nil
}
