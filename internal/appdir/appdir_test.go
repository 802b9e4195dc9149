package appdir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wslui/wslui/internal/appdir"
)

func TestDir(t *testing.T) {
	localAppData := t.TempDir()
	home := t.TempDir()

	testCases := map[string]struct {
		localAppData string
		home         string

		wantParent string
	}{
		"prefers LOCALAPPDATA":   {localAppData: localAppData, home: home, wantParent: localAppData},
		"falls back to HOME":     {home: home, wantParent: home},
		"falls back to cwd":      {wantParent: "."},
		"ignores empty override": {localAppData: "", home: home, wantParent: home},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("LOCALAPPDATA", tc.localAppData)
			t.Setenv("HOME", tc.home)

			got, err := appdir.Dir()
			require.NoError(t, err, "Dir should have succeeded")

			assert.Equal(t, filepath.Join(tc.wantParent, appdir.Name), got, "unexpected directory")
			assert.Equal(t, appdir.Name, filepath.Base(got), "final component must be the app identifier")

			info, err := os.Stat(got)
			require.NoError(t, err, "directory should have been created")
			require.True(t, info.IsDir())

			if tc.wantParent == "." {
				// Don't leave droppings in the working directory.
				require.NoError(t, os.RemoveAll(got))
			}
		})
	}
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOCALAPPDATA", dir)
	t.Setenv("HOME", "")

	got, err := appdir.File(appdir.SettingsFile)
	require.NoError(t, err, "File should have succeeded")
	assert.Equal(t, filepath.Join(dir, appdir.Name, "settings.json"), got)
}
