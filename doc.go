// Package wslui is the management core behind the wsl-ui desktop
// application. It fronts the host's wsl command-line tool and related
// OS facilities behind a structured service, suitable for consumption
// by a graphical front-end over a local command bridge.
//
// The Service composes three capabilities selected once at
// construction: the executor (live against a real WSL installation, or
// an in-memory mock), the resource monitor, and the terminal/IDE
// launcher. On non-Windows hosts, or whenever the WSL_MOCK environment
// variable is present, the mock backend is selected so the whole
// surface keeps working deterministically.
//
// The package is thread safe. Long-running operations (import, export,
// install) block until completion and are cancelled through their
// context.
package wslui
