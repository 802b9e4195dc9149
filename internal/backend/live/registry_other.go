//go:build !windows

package live

// There is no lxss registry outside Windows. These stubs keep the
// package compiling; the mock-mode predicate prevents the live backend
// from ever being selected there.

import (
	"github.com/google/uuid"

	"github.com/wslui/wslui/internal/wslerror"
)

func registeredGUIDs() (map[string]uuid.UUID, error) {
	return nil, wslerror.New(wslerror.UnsupportedPlatform, "the Windows registry is only available on Windows")
}

func distroBasePath(name string) (string, error) {
	return "", wslerror.New(wslerror.UnsupportedPlatform, "the Windows registry is only available on Windows")
}
