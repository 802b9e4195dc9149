package live

// Disk surface: vhdx sizing and compaction, plus the `wsl --mount`
// family. Physical disks are enumerated with wmic, the same facility a
// user would reach for.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ubuntu/decorate"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/syscmd"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/internal/wslparse"
)

// VhdSize locates the distribution's virtual disk through the registry
// and stats it.
func (b *Backend) VhdSize(ctx context.Context, name string) (info backend.VhdSizeInfo, err error) {
	defer decorate.OnError(&err, "could not size the virtual disk of %q", name)

	base, err := distroBasePath(name)
	if err != nil {
		return info, err
	}

	path := filepath.Join(base, "ext4.vhdx")
	size, err := vhdSizeAt(ctx, path)
	if err != nil {
		return info, err
	}

	return backend.VhdSizeInfo{
		Distribution: name,
		Path:         path,
		SizeBytes:    size,
	}, nil
}

// vhdSizeAt reads the on-disk size of the vhdx. A running distribution
// can hold the file with exclusive sharing, in which case stat is
// refused but a PowerShell query still answers.
func vhdSizeAt(ctx context.Context, path string) (int64, error) {
	if st, err := os.Stat(path); err == nil {
		return st.Size(), nil
	}

	cmd := syscmd.Command(ctx, "powershell.exe", "-NoProfile", "-Command",
		fmt.Sprintf("(Get-Item -LiteralPath '%s').Length", path))
	out, err := cmd.Output()
	if err != nil {
		return 0, wslerror.Wrap(wslerror.IO, err, "could not size %s", path)
	}

	return wslparse.Size(out)
}

// CompactDisk shrinks the distribution's vhdx with a diskpart script,
// measuring the size before and after. The distribution is terminated
// first; diskpart cannot compact a disk that is in use.
func (b *Backend) CompactDisk(ctx context.Context, name string) (result backend.CompactResult, err error) {
	defer decorate.OnError(&err, "could not compact the virtual disk of %q", name)

	before, err := b.VhdSize(ctx, name)
	if err != nil {
		return result, err
	}

	if err := b.TerminateDistribution(ctx, name); err != nil {
		return result, err
	}

	start := time.Now()
	if err := compactVhd(ctx, before.Path); err != nil {
		return result, err
	}

	after, err := b.VhdSize(ctx, name)
	if err != nil {
		return result, err
	}

	reclaimed := before.SizeBytes - after.SizeBytes
	if reclaimed < 0 {
		reclaimed = 0
	}

	return backend.CompactResult{
		Distribution:   name,
		ReclaimedBytes: reclaimed,
		Duration:       time.Since(start),
	}, nil
}

// compactVhd drives diskpart non-interactively through a script file.
func compactVhd(ctx context.Context, vhdPath string) error {
	script, err := os.CreateTemp("", "wsl-ui-compact-*.txt")
	if err != nil {
		return wslerror.Wrap(wslerror.IO, err, "could not create diskpart script")
	}
	defer os.Remove(script.Name())

	contents := fmt.Sprintf("select vdisk file=\"%s\"\nattach vdisk readonly\ncompact vdisk\ndetach vdisk\n", vhdPath)
	if _, err := script.WriteString(contents); err != nil {
		script.Close()
		return wslerror.Wrap(wslerror.IO, err, "could not write diskpart script")
	}
	script.Close()

	cmd := syscmd.Command(ctx, "diskpart", "/s", script.Name())
	if out, err := cmd.CombinedOutput(); err != nil {
		return wslerror.Wrap(wslerror.CommandFailed, err, "diskpart failed: %s", wslerror.Snippet(wslparse.Decode(out)))
	}

	return nil
}

// MountDisk is analogous to
//
//	`wsl --mount <disk> [--vhd] [--bare] [--type T] [--partition N] [--options O]`
//
// Unrecognised option strings are passed through to the tool untouched.
func (b *Backend) MountDisk(ctx context.Context, disk string, opts backend.MountOptions) (mounted backend.MountedDisk, err error) {
	defer decorate.OnError(&err, "could not mount %q", disk)

	if disk == "" {
		return mounted, wslerror.New(wslerror.InvalidArgument, "mount needs a disk identifier")
	}

	args := []string{"--mount", disk}
	if opts.Vhd {
		args = append(args, "--vhd")
	}
	if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.Type != "" {
		args = append(args, "--type", opts.Type)
	}
	if opts.Partition != 0 {
		args = append(args, "--partition", strconv.Itoa(opts.Partition))
	}
	if opts.Options != "" {
		args = append(args, "--options", opts.Options)
	}

	out, err := wsl(ctx, args...)
	if err != nil {
		return mounted, err
	}

	mounted = backend.MountedDisk{Disk: disk, Type: opts.Type, Bare: opts.Bare}
	if !opts.Bare {
		mounted.MountPath = mountPathFrom(wslparse.Decode(out), disk)
	}

	return mounted, nil
}

// mountPathFrom extracts the mount point the tool reports; when the
// message format is not recognised, the conventional location is
// derived from the disk name instead.
func mountPathFrom(output, disk string) string {
	for _, token := range strings.Fields(output) {
		token = strings.Trim(token, "'\".")
		if strings.HasPrefix(token, "/mnt/wsl/") {
			return token
		}
	}
	return "/mnt/wsl/" + filepath.Base(strings.ReplaceAll(disk, `\`, "/"))
}

// UnmountDisk is analogous to
//
//	`wsl --unmount <disk>`
func (b *Backend) UnmountDisk(ctx context.Context, disk string) (err error) {
	defer decorate.OnError(&err, "could not unmount %q", disk)

	args := []string{"--unmount"}
	if disk != "" {
		args = append(args, disk)
	}

	_, err = wsl(ctx, args...)
	return err
}

// ListMountedDisks reads the system distribution's mount table and
// keeps the entries under /mnt/wsl, where `wsl --mount` places disks.
func (b *Backend) ListMountedDisks(ctx context.Context) (disks []backend.MountedDisk, err error) {
	defer decorate.OnError(&err, "could not list mounted disks")

	out, err := wsl(ctx, "--system", "--exec", "/bin/sh", "-c", "mount")
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(wslparse.Decode(out), "\n") {
		// Lines look like: /dev/sdc on /mnt/wsl/PHYSICALDRIVE2 type ext4 (rw,relatime)
		fields := strings.Fields(line)
		if len(fields) < 5 || fields[1] != "on" || !strings.HasPrefix(fields[2], "/mnt/wsl/") {
			continue
		}

		disks = append(disks, backend.MountedDisk{
			Disk:      filepath.Base(fields[2]),
			MountPath: fields[2],
			Type:      fields[4],
		})
	}

	return disks, nil
}

// ListPhysicalDisks enumerates host disks eligible for `wsl --mount`
// through wmic.
func (b *Backend) ListPhysicalDisks(ctx context.Context) (disks []backend.PhysicalDisk, err error) {
	defer decorate.OnError(&err, "could not list physical disks")

	cmd := syscmd.Command(ctx, "wmic", "diskdrive", "get", "DeviceID,Model,Size", "/format:csv")
	out, err := cmd.Output()
	if err != nil {
		return nil, mapExecError(err, nil, ctx)
	}

	return parsePhysicalDisks(wslparse.Decode(out))
}

// parsePhysicalDisks decodes wmic csv output: Node,DeviceID,Model,Size
// with a header line and blank padding lines.
func parsePhysicalDisks(output string) (disks []backend.PhysicalDisk, err error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 4 || !strings.HasPrefix(fields[1], `\\.\PHYSICALDRIVE`) {
			continue
		}

		d := backend.PhysicalDisk{
			DeviceID: fields[1],
			Model:    strings.TrimSpace(strings.Join(fields[2:len(fields)-1], ",")),
		}
		if size, err := strconv.ParseInt(strings.TrimSpace(fields[len(fields)-1]), 10, 64); err == nil {
			d.Size = size
		}

		disks = append(disks, d)
	}

	return disks, nil
}

func errNotRegistered(name string) error {
	return wslerror.New(wslerror.DistributionNotFound, "no distribution named %q", name)
}

// trimUNCPrefix drops the \\?\ long-path prefix some WSL builds write
// into BasePath.
func trimUNCPrefix(path string) string {
	return strings.TrimPrefix(path, `\\?\`)
}
