package wslui_test

import (
	"context"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wslui "github.com/wslui/wslui"
	"github.com/wslui/wslui/mock"
)

func TestMockMode(t *testing.T) {
	testCases := map[string]struct {
		envSet bool

		want bool
	}{
		"env present forces mock": {envSet: true, want: true},
		"env absent follows host": {want: runtime.GOOS != "windows"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			// t.Setenv registers the restore; unsetting afterwards gives
			// a clean absence for the second case.
			t.Setenv(wslui.MockModeEnv, "1")
			if !tc.envSet {
				require.NoError(t, os.Unsetenv(wslui.MockModeEnv), "Setup: could not unset %s", wslui.MockModeEnv)
			}

			assert.Equal(t, tc.want, wslui.MockMode())
		})
	}
}

func TestNewSelectsMockTransparently(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Setenv(wslui.MockModeEnv, "1")
	}

	ctx := context.Background()
	service := wslui.New()

	// The default-constructed service must answer from the seeded mock
	// registry without touching any real WSL installation.
	distros, err := service.ListDistributions(ctx)
	require.NoError(t, err, "ListDistributions should have succeeded")
	require.Len(t, distros, 2, "the seeded registry has two entries")

	var names []string
	for _, d := range distros {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"Ubuntu", "Debian"}, names)
}

func TestServiceOverMock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := mock.New()
	service := wslui.New(wslui.WithBackend(b))

	distros, err := service.ListDistributions(ctx)
	require.NoError(t, err)
	require.Len(t, distros, 2)
	assert.True(t, distros[1].Default, "Ubuntu is the default")
	assert.Equal(t, wslui.StateRunning, distros[1].State)

	// Stubborn shutdown falls back to force and still succeeds.
	b.SetStubbornShutdown(true)
	require.NoError(t, service.ShutdownAll(ctx), "shutdown must succeed via force")
	assert.True(t, b.WasForceShutdownUsed())

	health, err := service.WslHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, wslui.Stopped, health, "everything is stopped after the shutdown")

	usage, err := service.DistroUsage(ctx, "Ubuntu")
	require.NoError(t, err, "a stopped distro is not a query failure")
	assert.Zero(t, usage.MemoryBytes)
	assert.Zero(t, usage.ProcessCount)
}

func TestServicePropagatesErrorKinds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := mock.New()
	service := wslui.New(wslui.WithBackend(b))

	b.SetMockUpdateResult(wslui.UpdateResult{Outcome: wslui.UpdateFailed, Detail: "network"})
	_, err := service.Update(ctx)
	require.Error(t, err, "a failed update must surface")
	assert.Equal(t, wslui.ErrCommandFailed, wslui.KindOf(err), "the facade must not convert error kinds")
	assert.ErrorContains(t, err, "network")

	err = service.StartDistribution(ctx, "NoSuchDistro")
	assert.Equal(t, wslui.ErrDistributionNotFound, wslui.KindOf(err))
}

func TestDestructiveOperationsAreGated(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := mock.New()
	service := wslui.New(wslui.WithBackend(b))

	// A failing preflight refuses the operation before it reaches the
	// executor.
	b.SetMockError("preflight", mock.QueryFails)
	err := service.UnregisterDistribution(ctx, "Ubuntu")
	require.Error(t, err, "unregister must be refused when preflight fails")

	distros, err := service.ListDistributions(ctx)
	require.NoError(t, err)
	assert.Len(t, distros, 2, "the refused unregister must not have removed anything")

	// With preflight passing again the operation goes through.
	require.NoError(t, service.UnregisterDistribution(ctx, "Ubuntu"))
	distros, err = service.ListDistributions(ctx)
	require.NoError(t, err)
	assert.Len(t, distros, 1)
}

func TestServiceLaunchesThroughMock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	b := mock.New()
	service := wslui.New(wslui.WithBackend(b))

	require.NoError(t, service.OpenTerminal(ctx, wslui.DistroRef{Name: "Ubuntu"}, wslui.Terminal{Kind: wslui.WindowsTerminal}))
	require.NoError(t, service.OpenFileExplorer(ctx, "Ubuntu"))

	launches := b.Launches()
	require.Len(t, launches, 2)
	assert.Equal(t, "openTerminal", launches[0].Op)
	assert.Equal(t, "openFileExplorer", launches[1].Op)
}
