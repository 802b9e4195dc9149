package live

// Resource accounting against the host process table. The WSL2 VM's
// memory is owned by a single host-side process (vmmem, or vmmemWSL on
// recent builds); per-distribution figures come from running ps inside
// the distribution.

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/process"
	"github.com/ubuntu/decorate"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslconfig"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/internal/wslparse"
)

// healthProbeTimeout bounds the `wsl --list --running` probe used by the
// health classifier. An installation that cannot answer a listing in
// this long is not healthy, whatever it is doing.
const healthProbeTimeout = 10 * time.Second

type monitor struct{}

// VMUsage sums the resident memory of the vmmem process(es). No such
// process means the VM is stopped: zero usage, not an error.
func (m *monitor) VMUsage(ctx context.Context) (usage backend.ResourceUsage, err error) {
	defer decorate.OnError(&err, "could not account VM memory")

	used, _, err := vmmemUsage()
	if err != nil {
		return usage, err
	}

	return backend.ResourceUsage{
		MemoryUsedBytes:  used,
		MemoryLimitBytes: wslconfig.MemoryLimit(),
	}, nil
}

// vmmemUsage walks the host process table.
func vmmemUsage() (bytes uint64, found bool, err error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, false, wslerror.Wrap(wslerror.IO, err, "could not read the process table")
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Processes die between enumeration and inspection.
			continue
		}

		switch strings.ToLower(name) {
		case "vmmem", "vmmem.exe", "vmmemwsl", "vmmemwsl.exe":
		default:
			continue
		}

		found = true
		if info, err := p.MemoryInfo(); err == nil && info != nil {
			bytes += info.RSS
		}
	}

	return bytes, found, nil
}

// SystemTotalMemory reports total physical RAM.
func (m *monitor) SystemTotalMemory(ctx context.Context) (total uint64, err error) {
	defer decorate.OnError(&err, "could not read total memory")

	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, wslerror.Wrap(wslerror.IO, err, "memory query failed")
	}

	return vm.Total, nil
}

// DistroUsage enumerates the distribution's processes with ps. A
// stopped distribution reports zeros: querying it must not wake it up,
// so the state is checked first.
func (m *monitor) DistroUsage(ctx context.Context, name string) (usage backend.DistroResourceUsage, err error) {
	defer decorate.OnError(&err, "could not account memory of %q", name)

	usage.Distribution = name

	running, err := isRunning(ctx, name)
	if err != nil {
		return usage, err
	}
	if !running {
		return usage, nil
	}

	out, err := wsl(ctx, "--distribution", name, "--exec", "ps", "-e", "-o", "rss=")
	if err != nil {
		return usage, err
	}

	for _, line := range strings.Split(wslparse.Decode(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		kb, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return usage, wslerror.Parse("ps rss column", line)
		}

		usage.MemoryBytes += kb << 10
		usage.ProcessCount++
	}

	return usage, nil
}

// Health classifies the VM.
func (m *monitor) Health(ctx context.Context) (health backend.Health, err error) {
	defer decorate.OnError(&err, "could not classify WSL health")

	_, vmExists, err := vmmemUsage()
	if err != nil {
		return "", err
	}
	if !vmExists {
		return backend.HealthStopped, nil
	}

	// A VM that cannot answer a listing within the bound is unresponsive.
	probeCtx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
	defer cancel()

	out, err := wsl(probeCtx, "--list", "--running", "--quiet")
	if err != nil {
		return backend.Unresponsive, nil
	}

	// The VM runs: every distribution marked running should be answering
	// for it with at least one process.
	for _, line := range strings.Split(wslparse.Decode(out), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}

		usage, err := m.DistroUsage(ctx, name)
		if err != nil || usage.ProcessCount == 0 {
			return backend.Degraded, nil
		}
	}

	return backend.Healthy, nil
}

// isRunning checks the distribution's listed state without executing
// anything inside it.
func isRunning(ctx context.Context, name string) (bool, error) {
	distros, err := (&Backend{}).ListDistributions(ctx)
	if err != nil {
		return false, err
	}

	for _, d := range distros {
		if d.Name == name {
			return d.State == state.Running, nil
		}
	}

	return false, errNotRegistered(name)
}
