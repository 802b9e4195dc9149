package mock

// This file implements the executor capability set against the
// in-memory registry. Operation names used for fault injection match
// the bridge command names.

import (
	"context"
	"sort"
	"time"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslerror"
)

// ListDistributions returns a sorted snapshot of the simulated registry.
func (b *Backend) ListDistributions(ctx context.Context) ([]backend.Distribution, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("list"); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(b.distros))
	for name := range b.distros {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]backend.Distribution, 0, len(names))
	for _, name := range names {
		d := b.distros[name]
		id := d.id
		out = append(out, backend.Distribution{
			Name:    name,
			ID:      &id,
			State:   d.state,
			Version: d.version,
			Default: name == b.defaultName,
		})
	}

	return out, nil
}

// StartDistribution transitions a distribution to Running.
func (b *Backend) StartDistribution(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("start"); err != nil {
		return err
	}

	d, err := b.lookup(name)
	if err != nil {
		return err
	}

	d.state = state.Running
	if d.procCount == 0 {
		// A freshly started distro has at least its init process.
		d.procCount = 1
		d.procBytes = 32 << 20
	}

	return nil
}

// TerminateDistribution transitions a distribution to Stopped.
func (b *Backend) TerminateDistribution(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("terminate"); err != nil {
		return err
	}

	d, err := b.lookup(name)
	if err != nil {
		return err
	}

	if b.stubbornShutdown {
		return wslerror.New(wslerror.CommandFailed, "distribution %q refused to terminate", name)
	}

	b.stop(d)
	return nil
}

// ShutdownAll stops the whole VM. A graceful pass terminates each
// distribution; when the simulator is configured as stubborn the
// graceful pass is refused and a forced shutdown is used instead, which
// always succeeds.
func (b *Backend) ShutdownAll(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("shutdown"); err != nil {
		return err
	}

	if b.stubbornShutdown {
		b.forceShutdownUsed = true
	}

	for _, d := range b.distros {
		b.stop(d)
	}

	return nil
}

// RestartDistribution terminates then starts a distribution, observing
// the stop before the start as the live backend must.
func (b *Backend) RestartDistribution(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("restart"); err != nil {
		return err
	}

	d, err := b.lookup(name)
	if err != nil {
		return err
	}

	b.stop(d)
	d.state = state.Running
	d.procCount = 1
	d.procBytes = 32 << 20

	return nil
}

// UnregisterDistribution removes a distribution. Destructive and
// irreversible, as in the real tool.
func (b *Backend) UnregisterDistribution(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("unregister"); err != nil {
		return err
	}

	if _, err := b.lookup(name); err != nil {
		return err
	}

	delete(b.distros, name)
	if b.defaultName == name {
		b.defaultName = ""
		// WSL promotes an arbitrary survivor; pick deterministically.
		for _, candidate := range sortedNames(b.distros) {
			b.defaultName = candidate
			break
		}
	}

	return nil
}

// SetDefault marks a distribution as the default one.
func (b *Backend) SetDefault(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("setDefault"); err != nil {
		return err
	}

	if _, err := b.lookup(name); err != nil {
		return err
	}

	b.defaultName = name
	return nil
}

// ImportDistribution registers a new distribution from a tarball.
func (b *Backend) ImportDistribution(ctx context.Context, name, tarPath, installDir string, opts backend.ImportOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("import"); err != nil {
		return err
	}

	if name == "" || tarPath == "" || installDir == "" {
		return wslerror.New(wslerror.InvalidArgument, "import needs a name, a tarball and an install directory")
	}
	if _, ok := b.distros[name]; ok {
		return wslerror.New(wslerror.DistributionExists, "distribution %q already exists", name)
	}

	version := opts.Version
	if version == 0 {
		version = 2
	}

	b.distros[name] = &distro{
		id:       deterministicID(name),
		state:    state.Stopped,
		version:  version,
		vhdBytes: 1 << 30,
	}
	if b.defaultName == "" {
		b.defaultName = name
	}

	return nil
}

// ExportDistribution pretends to write a tarball.
func (b *Backend) ExportDistribution(ctx context.Context, name, tarPath string, opts backend.ExportOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("export"); err != nil {
		return err
	}

	if tarPath == "" {
		return wslerror.New(wslerror.InvalidArgument, "export needs a destination path")
	}
	_, err := b.lookup(name)
	return err
}

// InstallDistribution registers a distribution by store moniker.
func (b *Backend) InstallDistribution(ctx context.Context, identifier string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("install"); err != nil {
		return err
	}

	if identifier == "" {
		return wslerror.New(wslerror.InvalidArgument, "install needs a distribution identifier")
	}
	if _, ok := b.distros[identifier]; ok {
		return wslerror.New(wslerror.DistributionExists, "distribution %q already exists", identifier)
	}

	b.distros[identifier] = &distro{
		id:       deterministicID(identifier),
		state:    state.Stopped,
		version:  2,
		vhdBytes: 2 << 30,
	}

	return nil
}

// Update reports the configured outcome, defaulting to UpToDate.
func (b *Backend) Update(ctx context.Context) (backend.UpdateResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("update"); err != nil {
		return backend.UpdateResult{}, err
	}

	if b.updateResult == nil {
		return backend.UpdateResult{Outcome: backend.UpToDate}, nil
	}

	r := *b.updateResult
	b.updateResult = nil

	if r.Outcome == backend.UpdateFailed {
		return backend.UpdateResult{}, wslerror.New(wslerror.CommandFailed, "wsl --update failed: %s", r.Detail)
	}
	return r, nil
}

// Version returns a plausible static snapshot.
func (b *Backend) Version(ctx context.Context) (backend.VersionInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("version"); err != nil {
		return backend.VersionInfo{}, err
	}

	return backend.VersionInfo{
		WSL:      "2.0.14.0",
		Kernel:   "5.15.133.1-1",
		WSLg:     "1.0.59",
		MSRDC:    "1.2.4677",
		Direct3D: "1.611.1-81528511",
		DXCore:   "10.0.25131.1002",
		Windows:  "10.0.22631.3007",
	}, nil
}

// Preflight always passes in the simulator unless a fault says
// otherwise.
func (b *Backend) Preflight(ctx context.Context) (backend.PreflightStatus, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("preflight"); err != nil {
		return backend.PreflightStatus{}, err
	}

	return backend.PreflightStatus{Installed: true, Enabled: true, PlatformSupported: true}, nil
}

// SystemDistroInfo fabricates release info for a registered distribution.
func (b *Backend) SystemDistroInfo(ctx context.Context, name string) (backend.SystemDistroInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("systemDistroInfo"); err != nil {
		return backend.SystemDistroInfo{}, err
	}

	d, err := b.lookup(name)
	if err != nil {
		return backend.SystemDistroInfo{}, err
	}

	info := backend.SystemDistroInfo{
		OSName:       name,
		OSVersion:    "22.04",
		Kernel:       "5.15.133.1-microsoft-standard-WSL2",
		Architecture: "x86_64",
	}
	if d.version == 1 {
		info.Kernel = "4.4.0-19041-Microsoft"
	}

	return info, nil
}

// VhdSize reports the simulated on-disk size.
func (b *Backend) VhdSize(ctx context.Context, name string) (backend.VhdSizeInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("vhdSize"); err != nil {
		return backend.VhdSizeInfo{}, err
	}

	d, err := b.lookup(name)
	if err != nil {
		return backend.VhdSizeInfo{}, err
	}

	return backend.VhdSizeInfo{
		Distribution: name,
		Path:         `C:\mock\` + name + `\ext4.vhdx`,
		SizeBytes:    d.vhdBytes,
	}, nil
}

// CompactDisk reclaims a deterministic tenth of the simulated disk.
func (b *Backend) CompactDisk(ctx context.Context, name string) (backend.CompactResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("compact"); err != nil {
		return backend.CompactResult{}, err
	}

	d, err := b.lookup(name)
	if err != nil {
		return backend.CompactResult{}, err
	}
	if d.state == state.Running {
		return backend.CompactResult{}, wslerror.New(wslerror.InvalidArgument, "cannot compact %q while it is running", name)
	}

	reclaimed := d.vhdBytes / 10
	d.vhdBytes -= reclaimed

	return backend.CompactResult{
		Distribution:   name,
		ReclaimedBytes: reclaimed,
		Duration:       time.Second,
	}, nil
}

// MountDisk attaches a disk to the simulated VM.
func (b *Backend) MountDisk(ctx context.Context, disk string, opts backend.MountOptions) (backend.MountedDisk, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("mount"); err != nil {
		return backend.MountedDisk{}, err
	}

	if disk == "" {
		return backend.MountedDisk{}, wslerror.New(wslerror.InvalidArgument, "mount needs a disk identifier")
	}
	for _, m := range b.mounted {
		if m.Disk == disk {
			return backend.MountedDisk{}, wslerror.New(wslerror.InvalidArgument, "disk %q is already mounted", disk)
		}
	}

	m := backend.MountedDisk{
		Disk: disk,
		Type: opts.Type,
		Bare: opts.Bare,
	}
	if !opts.Bare {
		if m.Type == "" {
			m.Type = "ext4"
		}
		m.MountPath = "/mnt/wsl/" + mountBasename(disk)
	}

	b.mounted = append(b.mounted, m)
	return m, nil
}

// UnmountDisk detaches a previously mounted disk.
func (b *Backend) UnmountDisk(ctx context.Context, disk string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("unmount"); err != nil {
		return err
	}

	// An empty identifier detaches everything, as `wsl --unmount` does.
	if disk == "" {
		b.mounted = nil
		return nil
	}

	for i, m := range b.mounted {
		if m.Disk == disk {
			b.mounted = append(b.mounted[:i], b.mounted[i+1:]...)
			return nil
		}
	}

	return wslerror.New(wslerror.InvalidArgument, "disk %q is not mounted", disk)
}

// ListMountedDisks snapshots the simulated mounts.
func (b *Backend) ListMountedDisks(ctx context.Context) ([]backend.MountedDisk, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("listMounted"); err != nil {
		return nil, err
	}

	out := make([]backend.MountedDisk, len(b.mounted))
	copy(out, b.mounted)
	return out, nil
}

// ListPhysicalDisks reports a static pair of host disks.
func (b *Backend) ListPhysicalDisks(ctx context.Context) ([]backend.PhysicalDisk, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("listPhysical"); err != nil {
		return nil, err
	}

	return []backend.PhysicalDisk{
		{DeviceID: `\\.\PHYSICALDRIVE0`, Model: "Mock NVMe 1TB", Size: 1 << 40},
		{DeviceID: `\\.\PHYSICALDRIVE1`, Model: "Mock SSD 512GB", Size: 512 << 30},
	}, nil
}

// stop transitions a distro to Stopped and drops its processes. Callers
// hold mu.
func (b *Backend) stop(d *distro) {
	d.state = state.Stopped
	d.procCount = 0
	d.procBytes = 0
}
