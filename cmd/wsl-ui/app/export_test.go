package app

import (
	"context"
	"io"

	"github.com/xeipuuv/gojsonschema"

	wslui "github.com/wslui/wslui"
)

// BridgeResponse and BridgeError expose the bridge wire shapes to tests.
type (
	BridgeResponse = bridgeResponse
	BridgeError    = bridgeError
)

// SetArgs sets the command-line arguments for the next Run.
func (a *App) SetArgs(args ...string) {
	a.rootCmd.SetArgs(args)
}

// Run executes the command tree.
func (a *App) Run() error {
	return a.rootCmd.Execute()
}

// RunContext executes the command tree under ctx, so tests can stop a
// running serve command.
func (a *App) RunContext(ctx context.Context) error {
	return a.rootCmd.ExecuteContext(ctx)
}

// SetOutput redirects command output.
func (a *App) SetOutput(w io.Writer) {
	a.rootCmd.SetOut(w)
	a.rootCmd.SetErr(w)
}

// SetService injects a pre-built service, bypassing command execution.
func (a *App) SetService(s *wslui.Service) {
	a.service = s
}

// Dispatch routes one raw request line exactly as the serve loop would.
func (a *App) Dispatch(ctx context.Context, line string) BridgeResponse {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
	if err != nil {
		panic(err)
	}
	return a.dispatch(ctx, []byte(line), schema, a.bridgeHandlers())
}
