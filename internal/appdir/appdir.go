// Package appdir resolves the application's configuration directory and
// the files inside it. The directory itself belongs to the core; the
// files are owned by the front-end collaborators (settings, custom
// actions, startup configurations).
package appdir

import (
	"os"
	"path/filepath"

	"github.com/ubuntu/decorate"
)

// Name is the final path component of the configuration directory.
const Name = "wsl-ui"

// Well-known files under the configuration directory.
const (
	SettingsFile       = "settings.json"
	CustomActionsFile  = "custom-actions.json"
	StartupConfigsFile = "startup-configs.json"
)

// Dir returns the configuration directory, creating it if missing.
// The parent is %LOCALAPPDATA%, then $HOME, then the current directory,
// in that order of preference.
func Dir() (dir string, err error) {
	defer decorate.OnError(&err, "could not resolve config directory")

	dir = filepath.Join(parent(), Name)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return dir, nil
}

// File returns the path of a named file inside the configuration
// directory, creating the directory if missing.
func File(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func parent() string {
	if d := os.Getenv("LOCALAPPDATA"); d != "" {
		return d
	}
	if d := os.Getenv("HOME"); d != "" {
		return d
	}
	return "."
}
