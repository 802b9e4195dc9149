package backend

// This file defines the value types exchanged across the backend
// boundary. They serialise verbatim over the command bridge, hence the
// camelCase JSON tags.

import (
	"time"

	"github.com/google/uuid"

	"github.com/wslui/wslui/internal/state"
)

// Distribution is one row of `wsl --list --verbose`, enriched with the
// registry GUID when one is known. Snapshots are ephemeral per query.
type Distribution struct {
	Name    string      `json:"name"`
	ID      *uuid.UUID  `json:"id,omitempty"`
	State   state.State `json:"state"`
	Version int         `json:"version"`
	Default bool        `json:"default"`
}

// DistroRef names a distribution for dispatch. When ID is set it is
// preferred over Name, since GUIDs survive renames.
type DistroRef struct {
	Name string     `json:"name"`
	ID   *uuid.UUID `json:"id,omitempty"`
}

// VersionInfo is a snapshot of `wsl --version`. Fields the tool did not
// report stay empty.
type VersionInfo struct {
	WSL      string `json:"wslVersion,omitempty"`
	Kernel   string `json:"kernelVersion,omitempty"`
	WSLg     string `json:"wslgVersion,omitempty"`
	MSRDC    string `json:"msrdcVersion,omitempty"`
	Direct3D string `json:"direct3dVersion,omitempty"`
	DXCore   string `json:"dxCoreVersion,omitempty"`
	Windows  string `json:"windowsVersion,omitempty"`
}

// SystemDistroInfo describes the OS running inside a distribution, read
// from its release files.
type SystemDistroInfo struct {
	OSName       string `json:"osName"`
	OSVersion    string `json:"osVersion"`
	Kernel       string `json:"kernel"`
	Architecture string `json:"architecture"`
}

// VhdSizeInfo reports the on-disk size of a distribution's virtual disk.
type VhdSizeInfo struct {
	Distribution string `json:"distribution"`
	Path         string `json:"path"`
	SizeBytes    int64  `json:"sizeBytes"`
}

// ResourceUsage is the VM-wide memory account. A nil limit means no cap
// is configured in .wslconfig.
type ResourceUsage struct {
	MemoryUsedBytes  uint64  `json:"memoryUsedBytes"`
	MemoryLimitBytes *uint64 `json:"memoryLimitBytes,omitempty"`
}

// DistroResourceUsage is the per-distribution memory account. Stopped
// distributions report zeros.
type DistroResourceUsage struct {
	Distribution string `json:"distribution"`
	MemoryBytes  uint64 `json:"memoryBytes"`
	ProcessCount int    `json:"processCount"`
}

// Health is the coarse classification of the WSL VM.
type Health string

const (
	Healthy      Health = "Healthy"
	Degraded     Health = "Degraded"
	Unresponsive Health = "Unresponsive"
	HealthStopped Health = "Stopped"
)

// PreflightStatus gates destructive operations.
type PreflightStatus struct {
	Installed         bool     `json:"installed"`
	Enabled           bool     `json:"enabled"`
	PlatformSupported bool     `json:"platformSupported"`
	Messages          []string `json:"messages,omitempty"`
}

// OK reports whether destructive operations may proceed.
func (p PreflightStatus) OK() bool {
	return p.Installed && p.Enabled && p.PlatformSupported
}

// UpdateResult is the outcome of `wsl --update`.
type UpdateResult struct {
	Outcome UpdateOutcome `json:"outcome"`
	Detail  string        `json:"detail,omitempty"`
}

// UpdateOutcome enumerates what an update attempt can come back with.
type UpdateOutcome string

const (
	UpToDate     UpdateOutcome = "UpToDate"
	Updated      UpdateOutcome = "Updated"
	UpdateFailed UpdateOutcome = "UpdateFailed"
)

// ImportOptions tweaks `wsl --import`.
type ImportOptions struct {
	// Version selects WSL 1 or 2 for the imported distribution. Zero
	// keeps the host default.
	Version int `json:"version,omitempty"`
	// InPlace registers a vhdx directly instead of unpacking a tarball.
	InPlace bool `json:"inPlace,omitempty"`
}

// ExportOptions tweaks `wsl --export`.
type ExportOptions struct {
	// Vhd exports the raw virtual disk instead of a tarball.
	Vhd bool `json:"vhd,omitempty"`
}

// CompactResult reports the outcome of a disk compaction.
type CompactResult struct {
	Distribution   string        `json:"distribution"`
	ReclaimedBytes int64         `json:"reclaimedBytes"`
	Duration       time.Duration `json:"duration"`
}

// MountOptions describes the `wsl --mount` surface. Unrecognised option
// strings are passed through to the tool untouched.
type MountOptions struct {
	Type      string `json:"type,omitempty"`      // filesystem type, e.g. ext4
	Partition int    `json:"partition,omitempty"` // 0 mounts the whole disk
	Options   string `json:"options,omitempty"`   // raw mount options
	Bare      bool   `json:"bare,omitempty"`      // attach without mounting
	Vhd       bool   `json:"vhd,omitempty"`       // disk is a vhdx file
}

// MountedDisk is a disk currently attached to the VM.
type MountedDisk struct {
	Disk      string `json:"disk"`
	MountPath string `json:"mountPath,omitempty"`
	Type      string `json:"type,omitempty"`
	Bare      bool   `json:"bare,omitempty"`
}

// PhysicalDisk is a host disk eligible for `wsl --mount`.
type PhysicalDisk struct {
	DeviceID string `json:"deviceId"`
	Model    string `json:"model,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Terminal identifies the terminal emulator used for a launch.
type Terminal struct {
	Kind TerminalKind `json:"kind"`
	// Path is the launch command for TerminalCustom.
	Path string `json:"path,omitempty"`
}

// TerminalKind enumerates the terminals the launcher knows how to drive.
type TerminalKind string

const (
	WindowsTerminal TerminalKind = "WindowsTerminal"
	PowerShell      TerminalKind = "PowerShell"
	Cmd             TerminalKind = "Cmd"
	TerminalCustom  TerminalKind = "Custom"
)
