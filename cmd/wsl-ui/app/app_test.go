package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wslui "github.com/wslui/wslui"
	"github.com/wslui/wslui/cmd/wsl-ui/app"
	"github.com/wslui/wslui/mock"
)

func TestHelp(t *testing.T) {
	a := app.New()
	a.SetArgs("--help")
	a.SetOutput(&bytes.Buffer{})

	require.NoError(t, a.Run(), "Run should not return an error with argument --help")
}

func TestUnknownSubcommand(t *testing.T) {
	a := app.New()
	a.SetArgs("doesnotexist")
	a.SetOutput(&bytes.Buffer{})

	require.Error(t, a.Run(), "Run should fail on an unknown subcommand")
}

func TestListCommandPrintsJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(wslui.MockModeEnv, "1")

	a := app.New()
	a.SetArgs("list")

	out := &bytes.Buffer{}
	a.SetOutput(out)

	require.NoError(t, a.Run(), "list should succeed against the seeded mock")

	var distros []wslui.Distribution
	require.NoError(t, json.Unmarshal(out.Bytes(), &distros), "list must print valid JSON: %s", out)
	require.Len(t, distros, 2)
}

func TestPreflightCommandPrintsJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(wslui.MockModeEnv, "1")

	a := app.New()
	a.SetArgs("preflight")

	out := &bytes.Buffer{}
	a.SetOutput(out)

	require.NoError(t, a.Run())

	var status wslui.PreflightStatus
	require.NoError(t, json.Unmarshal(out.Bytes(), &status), "preflight must print valid JSON: %s", out)
	assert.True(t, status.OK(), "the mock installation passes preflight")
}

func TestBridgeDispatch(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		request string
		setup   func(*mock.Backend)

		wantOK   bool
		wantKind wslui.ErrorKind
		check    func(*testing.T, app.BridgeResponse, *mock.Backend)
	}{
		"list distributions": {
			request: `{"command": "listDistributions"}`,
			wantOK:  true,
			check: func(t *testing.T, resp app.BridgeResponse, _ *mock.Backend) {
				t.Helper()
				distros, ok := resp.Result.([]wslui.Distribution)
				require.True(t, ok, "result should be the distribution slice")
				assert.Len(t, distros, 2)
			},
		},
		"start a distribution": {
			request: `{"command": "startDistribution", "args": {"name": "Debian"}}`,
			wantOK:  true,
		},
		"open a terminal": {
			request: `{"command": "openTerminal", "args": {"name": "Ubuntu", "terminal": {"kind": "PowerShell"}}}`,
			wantOK:  true,
			check: func(t *testing.T, _ app.BridgeResponse, b *mock.Backend) {
				t.Helper()
				launches := b.Launches()
				require.Len(t, launches, 1)
				assert.Equal(t, "openTerminal", launches[0].Op)
			},
		},

		"missing name surfaces not found": {
			request:  `{"command": "startDistribution"}`,
			wantKind: wslui.ErrDistributionNotFound,
		},
		"injected fault keeps its kind": {
			request:  `{"command": "listDistributions"}`,
			setup:    func(b *mock.Backend) { b.SetMockError("list", mock.ListFails) },
			wantKind: wslui.ErrMock,
		},
		"failed update keeps its kind": {
			request: `{"command": "update"}`,
			setup: func(b *mock.Backend) {
				b.SetMockUpdateResult(wslui.UpdateResult{Outcome: wslui.UpdateFailed, Detail: "network"})
			},
			wantKind: wslui.ErrCommandFailed,
		},

		"unknown command":         {request: `{"command": "doesNotExist"}`, wantKind: wslui.ErrInvalidArgument},
		"missing command":         {request: `{"args": {}}`, wantKind: wslui.ErrInvalidArgument},
		"command must be string":  {request: `{"command": 5}`, wantKind: wslui.ErrInvalidArgument},
		"envelope must be object": {request: `["listDistributions"]`, wantKind: wslui.ErrInvalidArgument},
		"extra fields rejected":   {request: `{"command": "listDistributions", "x": 1}`, wantKind: wslui.ErrInvalidArgument},
		"malformed json":          {request: `{"command":`, wantKind: wslui.ErrInvalidArgument},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := mock.New()
			if tc.setup != nil {
				tc.setup(b)
			}

			a := app.New()
			a.SetService(wslui.New(wslui.WithBackend(b)))

			resp := a.Dispatch(context.Background(), tc.request)

			if tc.wantOK {
				require.Nil(t, resp.Error, "request should have succeeded: %+v", resp.Error)
				assert.True(t, resp.OK)
			} else {
				require.NotNil(t, resp.Error, "request should have failed")
				assert.False(t, resp.OK)
				assert.Equal(t, tc.wantKind, resp.Error.Kind)
			}

			if tc.check != nil {
				tc.check(t, resp, b)
			}
		})
	}
}
