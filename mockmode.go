package wslui

import (
	"os"
	"runtime"
)

// MockModeEnv is the environment variable whose presence (any value,
// including empty assignment on some shells) forces the mock backend.
const MockModeEnv = "WSL_MOCK"

// MockMode reports whether the mock backend should serve this process:
// either the environment asks for it, or the host is not Windows and
// the live backend could not work anyway. The answer does not change
// within a process lifetime; the Service consults it once at
// construction.
func MockMode() bool {
	if _, ok := os.LookupEnv(MockModeEnv); ok {
		return true
	}
	return runtime.GOOS != "windows"
}
