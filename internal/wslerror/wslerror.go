// Package wslerror defines the structured error taxonomy shared by both
// backends and surfaced verbatim over the command bridge.
package wslerror

import (
	"errors"
	"fmt"
)

// Kind classifies an error so the front-end can react without parsing
// message text.
type Kind string

// The complete set of kinds. The facade never converts one kind into
// another; whatever a component returns is what the bridge serialises.
const (
	NotInstalled         Kind = "NotInstalled"
	NotEnabled           Kind = "NotEnabled"
	UnsupportedPlatform  Kind = "UnsupportedPlatform"
	DistributionNotFound Kind = "DistributionNotFound"
	DistributionExists   Kind = "DistributionAlreadyExists"
	InvalidArgument      Kind = "InvalidArgument"
	CommandFailed        Kind = "CommandFailed"
	ParseFailed          Kind = "ParseFailed"
	Timeout              Kind = "Timeout"
	IO                   Kind = "Io"
	Mock                 Kind = "Mock"
)

// Error is the structured error passed across every call boundary of the
// core. It serialises as {"kind": ..., "message": ...}.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`

	cause error
}

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind keeping cause reachable via
// errors.Unwrap.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

// Command builds a CommandFailed error carrying the exit code and a
// snippet of stderr.
func Command(exitCode int, stderr string) *Error {
	return New(CommandFailed, "command exited with code %d: %s", exitCode, Snippet(stderr))
}

// Parse builds a ParseFailed error carrying the parsing context and a
// snippet of the offending input.
func Parse(context, input string) *Error {
	return New(ParseFailed, "%s: could not parse %q", context, Snippet(input))
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by kind, so callers can test with errors.Is against
// a kind-only sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf extracts the kind of err, or an empty kind when err is not a
// structured error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Snippet truncates s so error messages never drag a whole command
// transcript along.
func Snippet(s string) string {
	const max = 256
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
