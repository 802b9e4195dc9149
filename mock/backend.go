// Package mock simulates the WSL executor, useful for tests and for
// running the application outside Windows: it allows parallelism,
// decoupling, and execution speed.
//
// The simulator keeps an in-memory registry of distributions with
// configurable state and accepts fault injection through a small test
// surface. The whole state lives under a single mutex, as tests share
// the process. None of the fault-injection methods are reachable
// through the service facade when the live backend is selected.
package mock

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslerror"
)

// MockErrorType enumerates the fault kinds the simulator can inject.
type MockErrorType string

// The known fault kinds. Any of them can be queued against any
// operation; the name only documents the intended pairing.
const (
	ListFails          MockErrorType = "ListFails"
	StartFails         MockErrorType = "StartFails"
	TerminateFails     MockErrorType = "TerminateFails"
	ShutdownRefused    MockErrorType = "ShutdownRefused"
	UnregisterFails    MockErrorType = "UnregisterFails"
	ImportFails        MockErrorType = "ImportFails"
	ExportFails        MockErrorType = "ExportFails"
	InstallFails       MockErrorType = "InstallFails"
	VersionUnavailable MockErrorType = "VersionUnavailable"
	QueryFails         MockErrorType = "QueryFails"
	SpawnFails         MockErrorType = "SpawnFails"

	// ReportDegraded and ReportUnresponsive are not failures: queued
	// against "health", they steer the classifier.
	ReportDegraded     MockErrorType = "ReportDegraded"
	ReportUnresponsive MockErrorType = "ReportUnresponsive"
)

// Error is an error triggered by the simulator, not a real problem.
type Error struct {
	Op   string
	Type MockErrorType
}

func (e Error) Error() string {
	return fmt.Sprintf("mock error injected into %q: %s", e.Op, e.Type)
}

// distro is one simulated registry entry.
type distro struct {
	id      uuid.UUID
	state   state.State
	version int

	// vhdBytes backs the disk-size and compaction surface.
	vhdBytes int64

	// procCount and procBytes describe the distro's processes while it
	// runs. Stopped distros report zeros regardless.
	procCount int
	procBytes uint64
}

// Backend implements the backend.Backend interface against in-memory
// state.
type Backend struct {
	mu sync.Mutex

	distros     map[string]*distro
	defaultName string
	mounted     []backend.MountedDisk

	// Fault injection. faults holds FIFO queues per operation name:
	// each queued entry fails exactly one call.
	faults map[string][]MockErrorType

	stubbornShutdown  bool
	forceShutdownUsed bool

	updateResult *backend.UpdateResult

	launches []Launch
}

// New constructs a pristine simulator.
func New() *Backend {
	b := &Backend{}
	b.resetLocked()
	return b
}

// resetLocked restores the initial registry. Callers hold mu (or own the
// Backend exclusively, as New does).
func (b *Backend) resetLocked() {
	b.distros = map[string]*distro{
		"Ubuntu": {
			id:        uuid.MustParse("12345678-1234-1234-1234-123456789012"),
			state:     state.Running,
			version:   2,
			vhdBytes:  8 << 30,
			procCount: 12,
			procBytes: 512 << 20,
		},
		"Debian": {
			id:       uuid.MustParse("87654321-4321-4321-4321-210987654321"),
			state:    state.Stopped,
			version:  2,
			vhdBytes: 4 << 30,
		},
	}
	b.defaultName = "Ubuntu"
	b.mounted = nil
	b.faults = make(map[string][]MockErrorType)
	b.stubbornShutdown = false
	b.forceShutdownUsed = false
	b.updateResult = nil
	b.launches = nil
}

// SetMockError queues a fault against the named operation. Each queued
// fault fails exactly one call; queue the same operation twice to fail
// two calls.
func (b *Backend) SetMockError(operation string, errType MockErrorType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.faults[operation] = append(b.faults[operation], errType)
}

// ClearMockErrors purges every queued fault.
func (b *Backend) ClearMockErrors() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.faults = make(map[string][]MockErrorType)
}

// ResetMockState restores the pristine initial registry, dropping queued
// faults, mounts, launch records and shutdown flags.
func (b *Backend) ResetMockState() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.resetLocked()
}

// SetStubbornShutdown makes graceful terminations refuse, forcing
// ShutdownAll to fall back to a forced VM shutdown.
func (b *Backend) SetStubbornShutdown(stubborn bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stubbornShutdown = stubborn
}

// WasForceShutdownUsed reports whether a forced shutdown was needed
// since the last reset.
func (b *Backend) WasForceShutdownUsed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.forceShutdownUsed
}

// SetMockUpdateResult chooses the outcome of the next Update call.
func (b *Backend) SetMockUpdateResult(r backend.UpdateResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.updateResult = &r
}

// takeFault pops the next queued fault for op, if any. Callers hold mu.
func (b *Backend) takeFault(op string) error {
	queue := b.faults[op]
	if len(queue) == 0 {
		return nil
	}

	errType := queue[0]
	b.faults[op] = queue[1:]

	return wslerror.Wrap(wslerror.Mock, Error{Op: op, Type: errType}, "injected fault: %s", errType)
}

// lookup finds a registry entry. Callers hold mu.
func (b *Backend) lookup(name string) (*distro, error) {
	d, ok := b.distros[name]
	if !ok {
		return nil, wslerror.New(wslerror.DistributionNotFound, "no distribution named %q", name)
	}
	return d, nil
}
