package state_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wslui/wslui/internal/state"
)

func TestNewFromString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input string

		want state.State
	}{
		"Stopped":      {input: "Stopped", want: state.Stopped},
		"Running":      {input: "Running", want: state.Running},
		"Installing":   {input: "Installing", want: state.Installing},
		"Converting":   {input: "Converting", want: state.Converting},
		"Uninstalling": {input: "Uninstalling", want: state.Uninstalling},

		// Words the tool may grow or localise must not break the listing.
		"Made-up state maps to Unknown": {input: "Discombobulating", want: state.Unknown},
		"Empty string maps to Unknown":  {input: "", want: state.Unknown},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := state.NewFromString(tc.input)
			require.Equal(t, tc.want, got, "Unexpected state returned by NewFromString")
		})
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input state.State
		want  string
	}{
		"Stopped":      {input: state.Stopped, want: "Stopped"},
		"Running":      {input: state.Running, want: "Running"},
		"Installing":   {input: state.Installing, want: "Installing"},
		"Converting":   {input: state.Converting, want: "Converting"},
		"Uninstalling": {input: state.Uninstalling, want: "Uninstalling"},

		"Out-of-range value prints Unknown": {input: 35, want: "Unknown"},
	}

	for name, tc := range testCases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.input.String()
			require.Equal(t, tc.want, got, "Unexpected text returned by state.String()")
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(state.Running)
	require.NoError(t, err, "Marshal should not fail")
	require.Equal(t, `"Running"`, string(out), "states serialise as their names")

	var got state.State
	require.NoError(t, json.Unmarshal([]byte(`"Discombobulating"`), &got), "Unmarshal should not fail on unknown words")
	require.Equal(t, state.Unknown, got)
}
