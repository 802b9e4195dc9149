package live

// Preflight probes whether WSL is installed and enabled before anything
// destructive is allowed to run.

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/ubuntu/decorate"

	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/wslparse"
)

// Preflight reports whether WSL is usable on this host. Probing never
// fails: what it finds lands in the status, diagnostics included.
func (b *Backend) Preflight(ctx context.Context) (status backend.PreflightStatus, err error) {
	defer decorate.OnError(&err, "could not run preflight checks")

	if runtime.GOOS != "windows" {
		status.Messages = append(status.Messages, "WSL requires Windows; the live backend cannot run here")
		return status, nil
	}
	status.PlatformSupported = true

	if _, lookErr := exec.LookPath("wsl.exe"); lookErr != nil {
		status.Messages = append(status.Messages, "wsl.exe is not on PATH; install WSL with `wsl --install`")
		return status, nil
	}
	status.Installed = true

	// `wsl --status` answers only when the optional component is enabled
	// and the service is able to come up.
	out, statusErr := wsl(ctx, "--status")
	if statusErr != nil {
		status.Messages = append(status.Messages, "wsl --status failed: "+statusErr.Error())
		return status, nil
	}
	status.Enabled = true

	if st, parseErr := wslparse.ParseStatus(out); parseErr == nil && st.DefaultDistribution == "" {
		status.Messages = append(status.Messages, "no default distribution is configured")
	}

	return status, nil
}
