package mock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/wslerror"
	"github.com/wslui/wslui/mock"
)

func TestVMUsage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := mock.New()
	monitor := b.Resources()

	usage, err := monitor.VMUsage(ctx)
	require.NoError(t, err, "VMUsage should have succeeded")
	assert.Positive(t, usage.MemoryUsedBytes, "Ubuntu is running, the VM holds memory")

	require.NoError(t, b.ShutdownAll(ctx))

	usage, err = monitor.VMUsage(ctx)
	require.NoError(t, err, "a stopped VM is not a query failure")
	assert.Zero(t, usage.MemoryUsedBytes, "no vmmem process, no memory")
}

func TestSystemTotalMemory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	total, err := mock.New().Resources().SystemTotalMemory(ctx)
	require.NoError(t, err)
	assert.Positive(t, total)
}

func TestDistroUsage(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		distro   string
		shutdown bool
		fault    bool

		wantZero bool
		wantErr  bool
		wantKind wslerror.Kind
	}{
		"running distro reports processes": {distro: "Ubuntu"},
		"stopped distro reports zeros":     {distro: "Debian", wantZero: true},
		"stopped after shutdown":           {distro: "Ubuntu", shutdown: true, wantZero: true},

		"error on unknown distro": {distro: "NoSuchDistro", wantErr: true, wantKind: wslerror.DistributionNotFound},
		"error on injected fault": {distro: "Ubuntu", fault: true, wantErr: true, wantKind: wslerror.Mock},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			b := mock.New()
			if tc.shutdown {
				require.NoError(t, b.ShutdownAll(ctx), "Setup: shutdown failed")
			}
			if tc.fault {
				b.SetMockError("distroUsage", mock.QueryFails)
			}

			usage, err := b.Resources().DistroUsage(ctx, tc.distro)
			if tc.wantErr {
				require.Error(t, err, "DistroUsage should have failed")
				require.Equal(t, tc.wantKind, wslerror.KindOf(err))
				return
			}
			require.NoError(t, err, "DistroUsage should have succeeded")

			assert.Equal(t, tc.distro, usage.Distribution)
			if tc.wantZero {
				assert.Zero(t, usage.MemoryBytes, "stopped distros report zero memory")
				assert.Zero(t, usage.ProcessCount, "stopped distros report zero processes")
				return
			}
			assert.Positive(t, usage.MemoryBytes)
			assert.Positive(t, usage.ProcessCount)
		})
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		shutdown bool
		steer    *mock.MockErrorType

		want backend.Health
	}{
		"healthy with a running distro": {want: backend.Healthy},
		"stopped when nothing runs":     {shutdown: true, want: backend.HealthStopped},
		"steered degraded":              {steer: ptr(mock.ReportDegraded), want: backend.Degraded},
		"steered unresponsive":          {steer: ptr(mock.ReportUnresponsive), want: backend.Unresponsive},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			b := mock.New()
			if tc.shutdown {
				require.NoError(t, b.ShutdownAll(ctx), "Setup: shutdown failed")
			}
			if tc.steer != nil {
				b.SetMockError("health", *tc.steer)
			}

			got, err := b.Resources().Health(ctx)
			require.NoError(t, err, "Health should have succeeded")
			assert.Equal(t, tc.want, got)

			if tc.steer != nil {
				// Steering is one-shot: the next query derives again.
				got, err = b.Resources().Health(ctx)
				require.NoError(t, err)
				assert.Equal(t, backend.Healthy, got)
			}
		})
	}
}

func TestLauncherRecordsLaunches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := mock.New()
	l := b.Launcher()

	distros, err := b.ListDistributions(ctx)
	require.NoError(t, err, "Setup: could not list distributions")
	ubuntu := distros[1]

	wt := backend.Terminal{Kind: backend.WindowsTerminal}

	require.NoError(t, l.OpenTerminal(ctx, backend.DistroRef{Name: ubuntu.Name, ID: ubuntu.ID}, wt))
	require.NoError(t, l.OpenSystemTerminal(ctx, wt))
	require.NoError(t, l.OpenTerminalWithCommand(ctx, backend.DistroRef{Name: "Debian"}, "htop", backend.Terminal{Kind: backend.PowerShell}))
	require.NoError(t, l.OpenFileExplorer(ctx, "Ubuntu"))
	require.NoError(t, l.OpenIDE(ctx, "Ubuntu", "code"))

	launches := b.Launches()
	require.Len(t, launches, 5)

	assert.Equal(t, "openTerminal", launches[0].Op)
	assert.True(t, launches[0].ByID, "the GUID is preferred when supplied")
	assert.Equal(t, "openTerminalWithCommand", launches[2].Op)
	assert.Equal(t, "htop", launches[2].Command)
	assert.False(t, launches[2].ByID)
	assert.Equal(t, "code", launches[4].Command)

	err = l.OpenTerminal(ctx, backend.DistroRef{Name: "NoSuchDistro"}, wt)
	require.Equal(t, wslerror.DistributionNotFound, wslerror.KindOf(err))

	err = l.OpenIDE(ctx, "Ubuntu", "")
	require.Equal(t, wslerror.InvalidArgument, wslerror.KindOf(err))

	b.SetMockError("openFileExplorer", mock.SpawnFails)
	err = l.OpenFileExplorer(ctx, "Ubuntu")
	require.Equal(t, wslerror.Mock, wslerror.KindOf(err), "spawn failure is a structured error")
}

func ptr[T any](v T) *T {
	return &v
}
