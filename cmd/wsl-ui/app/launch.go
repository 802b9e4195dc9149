package app

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	wslui "github.com/wslui/wslui"
)

// terminalFlags reads the shared --terminal/--terminal-path flags into a
// Terminal selector.
func terminalFlags(cmd *cobra.Command) (wslui.Terminal, error) {
	kind, err := cmd.Flags().GetString("terminal")
	if err != nil {
		return wslui.Terminal{}, err
	}
	path, err := cmd.Flags().GetString("terminal-path")
	if err != nil {
		return wslui.Terminal{}, err
	}
	return wslui.Terminal{Kind: wslui.TerminalKind(kind), Path: path}, nil
}

func addTerminalFlags(cmd *cobra.Command) {
	cmd.Flags().String("terminal", string(wslui.WindowsTerminal), "terminal to launch: WindowsTerminal, PowerShell, Cmd or Custom")
	cmd.Flags().String("terminal-path", "", "launch command for --terminal=Custom")
}

// distroRef builds a DistroRef from the positional name and the
// optional --id flag.
func distroRef(cmd *cobra.Command, name string) (wslui.DistroRef, error) {
	ref := wslui.DistroRef{Name: name}

	raw, err := cmd.Flags().GetString("id")
	if err != nil || raw == "" {
		return ref, err
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return ref, err
	}
	ref.ID = &id
	return ref, nil
}

func (a *App) installLauncherCommands() {
	terminal := &cobra.Command{
		Use:   "open-terminal DISTRO",
		Short: "Open a terminal attached to a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := distroRef(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := terminalFlags(cmd)
			if err != nil {
				return err
			}
			return a.service.OpenTerminal(cmd.Context(), ref, t)
		},
	}
	addTerminalFlags(terminal)
	terminal.Flags().String("id", "", "registry GUID of the distribution, preferred over the name")

	systemTerminal := &cobra.Command{
		Use:   "open-system-terminal",
		Short: "Open a terminal attached to the WSL system distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := terminalFlags(cmd)
			if err != nil {
				return err
			}
			return a.service.OpenSystemTerminal(cmd.Context(), t)
		},
	}
	addTerminalFlags(systemTerminal)

	run := &cobra.Command{
		Use:   "run-in-terminal DISTRO COMMAND",
		Short: "Run a command in a distribution, keeping the terminal open",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := distroRef(cmd, args[0])
			if err != nil {
				return err
			}
			t, err := terminalFlags(cmd)
			if err != nil {
				return err
			}
			return a.service.OpenTerminalWithCommand(cmd.Context(), ref, args[1], t)
		},
	}
	addTerminalFlags(run)
	run.Flags().String("id", "", "registry GUID of the distribution, preferred over the name")

	explorer := &cobra.Command{
		Use:   "open-explorer DISTRO",
		Short: "Open the host file manager at a distribution's root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.OpenFileExplorer(cmd.Context(), args[0])
		},
	}

	ide := &cobra.Command{
		Use:   "open-ide DISTRO IDE_COMMAND",
		Short: "Open an IDE with a remote session into a distribution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.OpenIDE(cmd.Context(), args[0], args[1])
		},
	}

	a.rootCmd.AddCommand(terminal, systemTerminal, run, explorer, ide)
}
