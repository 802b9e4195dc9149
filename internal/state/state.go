// Package state defines the distribution state enum so that both backends
// can use it.
package state

// State is the state of a particular distribution as seen in `wsl -l -v`.
type State int

// The states reported by `wsl -l -v`, plus Unknown for words the tool may
// emit that we do not recognise (localised builds have been seen printing
// new ones).
const (
	Unknown State = iota
	Stopped
	Running
	Installing
	Converting
	Uninstalling
)

// NewFromString parses the name of a state as printed in `wsl -l -v`.
// Unrecognised words map to Unknown rather than an error: the listing
// should survive a new or localised state name.
func NewFromString(s string) State {
	switch s {
	case "Stopped":
		return Stopped
	case "Running":
		return Running
	case "Installing":
		return Installing
	case "Converting":
		return Converting
	case "Uninstalling":
		return Uninstalling
	}

	return Unknown
}

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	case Installing:
		return "Installing"
	case Converting:
		return "Converting"
	case Uninstalling:
		return "Uninstalling"
	}

	return "Unknown"
}

// MarshalText implements encoding.TextMarshaler so the state serialises
// as its name over the command bridge.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	*s = NewFromString(string(text))
	return nil
}
