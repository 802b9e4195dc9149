package live

// The live backend's process-spawning paths only run on a real Windows
// host; what is tested here is the pure interpretation logic around
// them.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/wslerror"

	"github.com/google/uuid"
)

func TestParseOSRelease(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		release string

		wantName    string
		wantVersion string
	}{
		"ubuntu": {
			release:     "PRETTY_NAME=\"Ubuntu 22.04.3 LTS\"\nNAME=\"Ubuntu\"\nVERSION_ID=\"22.04\"\nID=ubuntu\n",
			wantName:    "Ubuntu",
			wantVersion: "22.04",
		},
		"unquoted values": {
			release:     "NAME=Alpine\nVERSION_ID=3.19\n",
			wantName:    "Alpine",
			wantVersion: "3.19",
		},
		"missing version": {
			release:  "NAME=\"Arch Linux\"\nID=arch\n",
			wantName: "Arch Linux",
		},
		"empty document": {},
		"junk lines skipped": {
			release:     "# comment\nNAME=Debian\nnot a key value line\nVERSION_ID=12\n",
			wantName:    "Debian",
			wantVersion: "12",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			gotName, gotVersion := parseOSRelease(tc.release)
			assert.Equal(t, tc.wantName, gotName, "unexpected NAME")
			assert.Equal(t, tc.wantVersion, gotVersion, "unexpected VERSION_ID")
		})
	}
}

func TestParsePhysicalDisks(t *testing.T) {
	t.Parallel()

	output := "Node,DeviceID,Model,Size\n" +
		"\n" +
		`HOST,\\.\PHYSICALDRIVE0,Samsung SSD 980 1TB,1000204886016` + "\n" +
		`HOST,\\.\PHYSICALDRIVE1,Some Disk, With Comma,512110190592` + "\n"

	disks, err := parsePhysicalDisks(output)
	require.NoError(t, err, "parsePhysicalDisks should have succeeded")
	require.Len(t, disks, 2)

	assert.Equal(t, `\\.\PHYSICALDRIVE0`, disks[0].DeviceID)
	assert.Equal(t, "Samsung SSD 980 1TB", disks[0].Model)
	assert.EqualValues(t, 1000204886016, disks[0].Size)

	assert.Equal(t, "Some Disk, With Comma", disks[1].Model, "commas inside the model must survive")
	assert.EqualValues(t, 512110190592, disks[1].Size)
}

func TestMountPathFrom(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		output string
		disk   string

		want string
	}{
		"path reported by the tool": {
			output: "The disk was successfully mounted as '/mnt/wsl/PHYSICALDRIVE2'.",
			disk:   `\\.\PHYSICALDRIVE2`,
			want:   "/mnt/wsl/PHYSICALDRIVE2",
		},
		"unrecognised message falls back to convention": {
			output: "Montage du disque réussi.",
			disk:   `\\.\PHYSICALDRIVE7`,
			want:   "/mnt/wsl/PHYSICALDRIVE7",
		},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, mountPathFrom(tc.output, tc.disk))
		})
	}
}

func TestSessionArgs(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("12345678-1234-1234-1234-123456789012")

	byName := sessionArgs(backend.DistroRef{Name: "Ubuntu"})
	assert.Equal(t, []string{"wsl.exe", "--distribution", "Ubuntu"}, byName)

	byID := sessionArgs(backend.DistroRef{Name: "Ubuntu", ID: &id})
	assert.Equal(t, []string{"wsl.exe", "--distribution-id", "{" + id.String() + "}"}, byID, "the GUID flag is preferred when the GUID is known")
}

func TestTerminalArgs(t *testing.T) {
	t.Parallel()

	session := []string{"wsl.exe", "--distribution", "Ubuntu"}

	testCases := map[string]struct {
		terminal backend.Terminal

		wantHead string
	}{
		"windows terminal": {terminal: backend.Terminal{Kind: backend.WindowsTerminal}, wantHead: "wt.exe"},
		"powershell":       {terminal: backend.Terminal{Kind: backend.PowerShell}, wantHead: "cmd.exe"},
		"cmd":              {terminal: backend.Terminal{Kind: backend.Cmd}, wantHead: "cmd.exe"},
		"custom":           {terminal: backend.Terminal{Kind: backend.TerminalCustom, Path: "alacritty"}, wantHead: "alacritty"},
		"unset falls back": {wantHead: "cmd.exe"},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			argv := terminalArgs(tc.terminal, session)
			require.NotEmpty(t, argv)
			assert.Equal(t, tc.wantHead, argv[0])
			assert.Subset(t, argv, session, "the session invocation must survive the wrapping")
		})
	}
}

func TestNoDistributions(t *testing.T) {
	t.Parallel()

	plain := wslerror.Command(-1, "Windows Subsystem for Linux has no installed distributions.\nVisit https://aka.ms/wslstore")
	assert.True(t, noDistributions(plain), "the empty-registry exit should be recognised")

	other := wslerror.Command(1, "something else went wrong")
	assert.False(t, noDistributions(other))

	assert.False(t, noDistributions(wslerror.New(wslerror.IO, "https://aka.ms/wslstore mentioned but wrong kind")))
}
