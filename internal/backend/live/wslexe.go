package live

// This file realises the executor operations through wsl.exe.

import (
	"context"
	"strconv"
	"strings"

	"github.com/ubuntu/decorate"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/internal/wslparse"
)

// ListDistributions is analogous to
//
//	`wsl --list --all --verbose`
//
// enriched with the registry GUID of each distribution when the lxss
// registry is readable.
func (b *Backend) ListDistributions(ctx context.Context) (distros []backend.Distribution, err error) {
	defer decorate.OnError(&err, "could not list distributions")

	out, err := wsl(ctx, "--list", "--all", "--verbose")
	if err != nil {
		if noDistributions(err) {
			return nil, nil
		}
		return nil, err
	}

	entries, err := wslparse.List(out)
	if err != nil {
		return nil, err
	}

	// GUIDs are best effort: a locked registry must not fail the listing.
	guids, guidErr := registeredGUIDs()
	if guidErr != nil {
		guids = nil
	}

	for _, e := range entries {
		d := backend.Distribution{
			Name:    e.Name,
			State:   e.State,
			Version: e.Version,
			Default: e.Default,
		}
		if id, ok := guids[e.Name]; ok {
			id := id
			d.ID = &id
		}
		distros = append(distros, d)
	}

	return distros, nil
}

// noDistributions recognises the exit of `wsl --list` on a host with
// WSL installed but no distribution registered.
func noDistributions(err error) bool {
	// wsl.exe exits with -1 and an explanatory message in that case;
	// distinguishing it from real failures by message is locale-bound,
	// so the error kind and the absence of a parseable listing have to
	// do.
	return wslerror.KindOf(err) == wslerror.CommandFailed &&
		strings.Contains(err.Error(), "https://aka.ms/wslstore")
}

// StartDistribution wakes a distribution up by running a no-op command
// in it, analogous to
//
//	`wsl --distribution <name> -- exit 0`
func (b *Backend) StartDistribution(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not start %q", name)

	if name == "" {
		return wslerror.New(wslerror.InvalidArgument, "empty distribution name")
	}

	_, err = wsl(ctx, "--distribution", name, "--exec", "/bin/sh", "-c", "exit 0")
	return err
}

// TerminateDistribution is analogous to
//
//	`wsl --terminate <name>`
func (b *Backend) TerminateDistribution(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not terminate %q", name)

	_, err = wsl(ctx, "--terminate", name)
	return err
}

// ShutdownAll is analogous to
//
//	`wsl --shutdown`
//
// The child process is waited for, so a subsequent start observes the
// shutdown.
func (b *Backend) ShutdownAll(ctx context.Context) (err error) {
	defer decorate.OnError(&err, "could not shut WSL down")

	_, err = wsl(ctx, "--shutdown")
	return err
}

// RestartDistribution terminates then starts the named distribution.
func (b *Backend) RestartDistribution(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not restart %q", name)

	if err := b.TerminateDistribution(ctx, name); err != nil {
		return err
	}
	return b.StartDistribution(ctx, name)
}

// UnregisterDistribution is analogous to
//
//	`wsl --unregister <name>`
//
// Destructive and irreversible: the caller gates it behind a preflight.
func (b *Backend) UnregisterDistribution(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not unregister %q", name)

	_, err = wsl(ctx, "--unregister", name)
	return err
}

// SetDefault is analogous to
//
//	`wsl --set-default <name>`
func (b *Backend) SetDefault(ctx context.Context, name string) (err error) {
	defer decorate.OnError(&err, "could not set %q as default", name)

	_, err = wsl(ctx, "--set-default", name)
	return err
}

// ImportDistribution is analogous to
//
//	`wsl --import <name> <installDir> <tarPath> [--version N]`
//
// It blocks until the import finishes; cancel through ctx.
func (b *Backend) ImportDistribution(ctx context.Context, name, tarPath, installDir string, opts backend.ImportOptions) (err error) {
	defer decorate.OnError(&err, "could not import %q from %s", name, tarPath)

	if name == "" || tarPath == "" || installDir == "" {
		return wslerror.New(wslerror.InvalidArgument, "import needs a name, a tarball and an install directory")
	}

	args := []string{"--import", name, installDir, tarPath}
	if opts.InPlace {
		args = []string{"--import-in-place", name, tarPath}
	}
	if opts.Version != 0 {
		args = append(args, "--version", strconv.Itoa(opts.Version))
	}

	_, err = wsl(ctx, args...)
	return err
}

// ExportDistribution is analogous to
//
//	`wsl --export <name> <tarPath> [--vhd]`
func (b *Backend) ExportDistribution(ctx context.Context, name, tarPath string, opts backend.ExportOptions) (err error) {
	defer decorate.OnError(&err, "could not export %q to %s", name, tarPath)

	if tarPath == "" {
		return wslerror.New(wslerror.InvalidArgument, "export needs a destination path")
	}

	args := []string{"--export", name, tarPath}
	if opts.Vhd {
		args = append(args, "--vhd")
	}

	_, err = wsl(ctx, args...)
	return err
}

// InstallDistribution is analogous to
//
//	`wsl --install --distribution <identifier> --no-launch`
func (b *Backend) InstallDistribution(ctx context.Context, identifier string) (err error) {
	defer decorate.OnError(&err, "could not install %q", identifier)

	if identifier == "" {
		return wslerror.New(wslerror.InvalidArgument, "install needs a distribution identifier")
	}

	_, err = wsl(ctx, "--install", "--distribution", identifier, "--no-launch")
	return err
}

// Update is analogous to
//
//	`wsl --update`
//
// The outcome is read off the tool's output: an explicit "up to date"
// notice means nothing changed, any other successful exit means an
// update was applied.
func (b *Backend) Update(ctx context.Context) (result backend.UpdateResult, err error) {
	defer decorate.OnError(&err, "could not update WSL")

	out, err := wsl(ctx, "--update")
	if err != nil {
		return backend.UpdateResult{}, err
	}

	text := wslparse.Decode(out)
	if strings.Contains(strings.ToLower(text), "up to date") {
		return backend.UpdateResult{Outcome: backend.UpToDate}, nil
	}

	return backend.UpdateResult{Outcome: backend.Updated, Detail: strings.TrimSpace(text)}, nil
}

// Version is analogous to
//
//	`wsl --version`
func (b *Backend) Version(ctx context.Context) (info backend.VersionInfo, err error) {
	defer decorate.OnError(&err, "could not query WSL version")

	out, err := wsl(ctx, "--version")
	if err != nil {
		return info, err
	}

	parsed, err := wslparse.Version(out)
	if err != nil {
		return info, err
	}

	return backend.VersionInfo(parsed), nil
}

// SystemDistroInfo reads the OS release information from inside the
// distribution.
func (b *Backend) SystemDistroInfo(ctx context.Context, name string) (info backend.SystemDistroInfo, err error) {
	defer decorate.OnError(&err, "could not read OS info of %q", name)

	run := func(command string) (string, error) {
		out, err := wsl(ctx, "--distribution", name, "--exec", "/bin/sh", "-c", command)
		return strings.TrimSpace(wslparse.Decode(out)), err
	}

	release, err := run("cat /etc/os-release")
	if err != nil {
		return info, err
	}
	info.OSName, info.OSVersion = parseOSRelease(release)

	if info.Kernel, err = run("uname -r"); err != nil {
		return info, err
	}
	if info.Architecture, err = run("uname -m"); err != nil {
		return info, err
	}

	return info, nil
}

// parseOSRelease extracts NAME and VERSION_ID from an os-release
// document. Missing fields stay empty; os-release is too loosely
// implemented across distros to make that an error.
func parseOSRelease(release string) (name, version string) {
	for _, line := range strings.Split(release, "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)

		switch strings.TrimSpace(key) {
		case "NAME":
			name = value
		case "VERSION_ID":
			version = value
		}
	}
	return name, version
}
