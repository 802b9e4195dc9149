package mock

// This file implements the resource-monitor sub-capability against the
// simulated registry.

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslerror"
)

// vmOverheadBytes is what the simulated vmmem process costs beyond the
// distros' own processes.
const vmOverheadBytes = 256 << 20

// mockTotalMemory is the simulated physical RAM.
const mockTotalMemory uint64 = 16 << 30

// Resources returns the simulated resource monitor.
func (b *Backend) Resources() backend.ResourceMonitor {
	return (*monitor)(b)
}

// monitor shares the Backend's state and mutex.
type monitor Backend

// VMUsage sums the memory of every running distribution plus a fixed VM
// overhead. With everything stopped there is no vmmem process, so usage
// is zero with no error.
func (m *monitor) VMUsage(ctx context.Context) (backend.ResourceUsage, error) {
	b := (*Backend)(m)
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("vmUsage"); err != nil {
		return backend.ResourceUsage{}, err
	}

	var usage backend.ResourceUsage
	for _, d := range b.distros {
		if d.state != state.Running {
			continue
		}
		usage.MemoryUsedBytes += d.procBytes
	}
	if usage.MemoryUsedBytes > 0 {
		usage.MemoryUsedBytes += vmOverheadBytes
	}

	return usage, nil
}

// SystemTotalMemory reports the simulated physical RAM.
func (m *monitor) SystemTotalMemory(ctx context.Context) (uint64, error) {
	b := (*Backend)(m)
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("systemTotalMemory"); err != nil {
		return 0, err
	}

	return mockTotalMemory, nil
}

// DistroUsage reports the simulated per-distribution account. Stopped
// distributions report zeros, not an error.
func (m *monitor) DistroUsage(ctx context.Context, name string) (backend.DistroResourceUsage, error) {
	b := (*Backend)(m)
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.takeFault("distroUsage"); err != nil {
		return backend.DistroResourceUsage{}, err
	}

	d, err := b.lookup(name)
	if err != nil {
		return backend.DistroResourceUsage{}, err
	}

	usage := backend.DistroResourceUsage{Distribution: name}
	if d.state == state.Running {
		usage.MemoryBytes = d.procBytes
		usage.ProcessCount = d.procCount
	}

	return usage, nil
}

// Health derives the classification from the registry: Stopped with no
// running distro, Healthy otherwise. Degraded and Unresponsive are
// reachable through fault injection on "health".
func (m *monitor) Health(ctx context.Context) (backend.Health, error) {
	b := (*Backend)(m)
	b.mu.Lock()
	defer b.mu.Unlock()

	if queue := b.faults["health"]; len(queue) > 0 {
		errType := queue[0]
		b.faults["health"] = queue[1:]

		switch errType {
		case ReportDegraded:
			return backend.Degraded, nil
		case ReportUnresponsive:
			return backend.Unresponsive, nil
		default:
			return "", wslerror.Wrap(wslerror.Mock, Error{Op: "health", Type: errType}, "injected fault: %s", errType)
		}
	}

	anyRunning := false
	for _, d := range b.distros {
		if d.state != state.Running {
			continue
		}
		anyRunning = true
		if d.procCount == 0 {
			return backend.Degraded, nil
		}
	}
	if anyRunning {
		return backend.Healthy, nil
	}

	return backend.HealthStopped, nil
}

// sortedNames returns registry names in a stable order.
func sortedNames(distros map[string]*distro) []string {
	names := make([]string, 0, len(distros))
	for name := range distros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// deterministicID derives a stable GUID from a distribution name so
// repeated imports in tests agree with each other.
func deterministicID(name string) uuid.UUID {
	sum := sha256.Sum256([]byte(name))

	var id uuid.UUID
	copy(id[:], sum[:16])
	// Stamp version 4 / variant 10 so the GUID is well-formed.
	binary.BigEndian.PutUint16(id[6:8], binary.BigEndian.Uint16(id[6:8])&0x0fff|0x4000)
	id[8] = id[8]&0x3f | 0x80

	return id
}

// mountBasename mirrors where WSL mounts a disk under /mnt/wsl.
func mountBasename(disk string) string {
	base := path.Base(strings.ReplaceAll(disk, `\`, "/"))
	if base == "" || base == "." {
		return "disk"
	}
	return base
}
