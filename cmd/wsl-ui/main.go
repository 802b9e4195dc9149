// The wsl-ui command exposes the management core to the desktop
// front-end: one-shot subcommands print JSON to stdout, and `serve`
// runs the local command bridge.
package main

import (
	"fmt"
	"os"

	wslui "github.com/wslui/wslui"
	"github.com/wslui/wslui/cmd/wsl-ui/app"
)

func main() {
	a := app.New()

	if err := a.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		switch wslui.KindOf(err) {
		case wslui.ErrNotInstalled, wslui.ErrNotEnabled, wslui.ErrUnsupportedPlatform:
			os.Exit(2)
		default:
			os.Exit(1)
		}
	}
}
