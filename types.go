package wslui

// Public names for the value types exchanged with the Service. The
// definitions live next to the backend interface; the aliases keep the
// facade the single import a consumer needs.

import (
	"github.com/wslui/wslui/internal/backend"
	"github.com/wslui/wslui/internal/state"
	"github.com/wslui/wslui/internal/wslerror"
)

// Entities returned across call boundaries.
type (
	Distribution        = backend.Distribution
	DistroRef           = backend.DistroRef
	VersionInfo         = backend.VersionInfo
	SystemDistroInfo    = backend.SystemDistroInfo
	VhdSizeInfo         = backend.VhdSizeInfo
	ResourceUsage       = backend.ResourceUsage
	DistroResourceUsage = backend.DistroResourceUsage
	Health              = backend.Health
	PreflightStatus     = backend.PreflightStatus
	UpdateResult        = backend.UpdateResult
	UpdateOutcome       = backend.UpdateOutcome
	ImportOptions       = backend.ImportOptions
	ExportOptions       = backend.ExportOptions
	CompactResult       = backend.CompactResult
	MountOptions        = backend.MountOptions
	MountedDisk         = backend.MountedDisk
	PhysicalDisk        = backend.PhysicalDisk
	Terminal            = backend.Terminal
	TerminalKind        = backend.TerminalKind
)

// State is the lifecycle state of a distribution.
type State = state.State

// Distribution states.
const (
	StateUnknown      = state.Unknown
	StateStopped      = state.Stopped
	StateRunning      = state.Running
	StateInstalling   = state.Installing
	StateConverting   = state.Converting
	StateUninstalling = state.Uninstalling
)

// Health classifications.
const (
	Healthy      = backend.Healthy
	Degraded     = backend.Degraded
	Unresponsive = backend.Unresponsive
	Stopped      = backend.HealthStopped
)

// Update outcomes.
const (
	UpToDate     = backend.UpToDate
	Updated      = backend.Updated
	UpdateFailed = backend.UpdateFailed
)

// Terminal kinds.
const (
	WindowsTerminal = backend.WindowsTerminal
	PowerShell      = backend.PowerShell
	Cmd             = backend.Cmd
	TerminalCustom  = backend.TerminalCustom
)

// Error is the structured error every operation returns on failure. It
// serialises over the bridge as {kind, message}.
type Error = wslerror.Error

// ErrorKind classifies an Error.
type ErrorKind = wslerror.Kind

// Error kinds.
const (
	ErrNotInstalled         = wslerror.NotInstalled
	ErrNotEnabled           = wslerror.NotEnabled
	ErrUnsupportedPlatform  = wslerror.UnsupportedPlatform
	ErrDistributionNotFound = wslerror.DistributionNotFound
	ErrDistributionExists   = wslerror.DistributionExists
	ErrInvalidArgument      = wslerror.InvalidArgument
	ErrCommandFailed        = wslerror.CommandFailed
	ErrParseFailed          = wslerror.ParseFailed
	ErrTimeout              = wslerror.Timeout
	ErrIO                   = wslerror.IO
	ErrMock                 = wslerror.Mock
)

// KindOf extracts the kind of err, or an empty kind for foreign errors.
func KindOf(err error) ErrorKind {
	return wslerror.KindOf(err)
}
