package app

// One-shot subcommands. Every result prints as the same camelCase JSON
// the bridge serves, so the front-end and a curious shell user see the
// same shapes.

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	wslui "github.com/wslui/wslui"
)

// printJSON writes v to stdout the way the bridge would.
func (a *App) printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not serialise result: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func (a *App) installDistroCommands() {
	list := &cobra.Command{
		Use:   "list",
		Short: "List registered distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			distros, err := a.service.ListDistributions(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, distros)
		},
	}

	start := &cobra.Command{
		Use:   "start DISTRO",
		Short: "Start a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.StartDistribution(cmd.Context(), args[0])
		},
	}

	stop := &cobra.Command{
		Use:   "stop DISTRO",
		Short: "Terminate a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.TerminateDistribution(cmd.Context(), args[0])
		},
	}

	restart := &cobra.Command{
		Use:   "restart DISTRO",
		Short: "Terminate and start a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.RestartDistribution(cmd.Context(), args[0])
		},
	}

	unregister := &cobra.Command{
		Use:   "unregister DISTRO",
		Short: "Unregister a distribution, deleting its filesystem (irreversible)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.UnregisterDistribution(cmd.Context(), args[0])
		},
	}

	setDefault := &cobra.Command{
		Use:   "set-default DISTRO",
		Short: "Make a distribution the default one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.SetDefault(cmd.Context(), args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import DISTRO TARBALL INSTALL_DIR",
		Short: "Import a distribution from a tarball",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := cmd.Flags().GetInt("version")
			if err != nil {
				return err
			}
			return a.service.ImportDistribution(cmd.Context(), args[0], args[1], args[2], wslui.ImportOptions{Version: version})
		},
	}
	importCmd.Flags().Int("version", 0, "WSL version for the imported distribution (1 or 2)")

	export := &cobra.Command{
		Use:   "export DISTRO TARBALL",
		Short: "Export a distribution to a tarball",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vhd, err := cmd.Flags().GetBool("vhd")
			if err != nil {
				return err
			}
			return a.service.ExportDistribution(cmd.Context(), args[0], args[1], wslui.ExportOptions{Vhd: vhd})
		},
	}
	export.Flags().Bool("vhd", false, "export the raw virtual disk instead of a tarball")

	install := &cobra.Command{
		Use:   "install IDENTIFIER",
		Short: "Install a distribution from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.InstallDistribution(cmd.Context(), args[0])
		},
	}

	osInfo := &cobra.Command{
		Use:   "os-info DISTRO",
		Short: "Read OS metadata from inside a distribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.service.SystemDistroInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(cmd, info)
		},
	}

	vhdSize := &cobra.Command{
		Use:   "vhd-size DISTRO",
		Short: "Report the on-disk size of a distribution's virtual disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.service.VhdSize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(cmd, info)
		},
	}

	compact := &cobra.Command{
		Use:   "compact DISTRO",
		Short: "Compact a distribution's virtual disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.service.CompactDisk(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(cmd, result)
		},
	}

	distroMemory := &cobra.Command{
		Use:   "distro-memory DISTRO",
		Short: "Report a distribution's memory usage and process count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := a.service.DistroUsage(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printJSON(cmd, usage)
		},
	}

	a.rootCmd.AddCommand(list, start, stop, restart, unregister, setDefault,
		importCmd, export, install, osInfo, vhdSize, compact, distroMemory)
}

func (a *App) installSystemCommands() {
	shutdown := &cobra.Command{
		Use:   "shutdown",
		Short: "Shut the whole WSL VM down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.service.ShutdownAll(cmd.Context())
		},
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Update the WSL installation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.service.Update(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, result)
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Report WSL component versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := a.service.Version(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, info)
		},
	}

	preflight := &cobra.Command{
		Use:   "preflight",
		Short: "Check whether WSL is installed, enabled and supported",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.service.Preflight(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, status)
		},
	}

	memory := &cobra.Command{
		Use:   "memory",
		Short: "Report the VM's memory usage against total RAM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			usage, err := a.service.VMUsage(cmd.Context())
			if err != nil {
				return err
			}
			total, err := a.service.SystemTotalMemory(cmd.Context())
			if err != nil {
				return err
			}

			return a.printJSON(cmd, struct {
				wslui.ResourceUsage
				SystemTotalBytes uint64 `json:"systemTotalBytes"`
			}{usage, total})
		},
	}

	health := &cobra.Command{
		Use:   "health",
		Short: "Classify the WSL VM's health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.service.WslHealth(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, struct {
				Health wslui.Health `json:"health"`
			}{h})
		},
	}

	mount := &cobra.Command{
		Use:   "mount DISK",
		Short: "Attach a physical disk or vhdx to the VM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts wslui.MountOptions
			var err error
			if opts.Bare, err = cmd.Flags().GetBool("bare"); err != nil {
				return err
			}
			if opts.Vhd, err = cmd.Flags().GetBool("vhd"); err != nil {
				return err
			}
			if opts.Type, err = cmd.Flags().GetString("type"); err != nil {
				return err
			}
			if opts.Partition, err = cmd.Flags().GetInt("partition"); err != nil {
				return err
			}
			if opts.Options, err = cmd.Flags().GetString("options"); err != nil {
				return err
			}

			mounted, err := a.service.MountDisk(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return a.printJSON(cmd, mounted)
		},
	}
	mount.Flags().Bool("bare", false, "attach without mounting")
	mount.Flags().Bool("vhd", false, "the disk is a vhdx file")
	mount.Flags().String("type", "", "filesystem type (default ext4)")
	mount.Flags().Int("partition", 0, "partition to mount (default: whole disk)")
	mount.Flags().String("options", "", "raw mount options, passed through")

	unmount := &cobra.Command{
		Use:   "unmount [DISK]",
		Short: "Detach a mounted disk (all disks when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			disk := ""
			if len(args) == 1 {
				disk = args[0]
			}
			return a.service.UnmountDisk(cmd.Context(), disk)
		},
	}

	mountedDisks := &cobra.Command{
		Use:   "mounted-disks",
		Short: "List disks attached to the VM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			disks, err := a.service.ListMountedDisks(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, disks)
		},
	}

	physicalDisks := &cobra.Command{
		Use:   "physical-disks",
		Short: "List host disks eligible for mounting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			disks, err := a.service.ListPhysicalDisks(cmd.Context())
			if err != nil {
				return err
			}
			return a.printJSON(cmd, disks)
		},
	}

	configDir := &cobra.Command{
		Use:   "config-dir",
		Short: "Print the application's configuration directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.service.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	a.rootCmd.AddCommand(shutdown, update, version, preflight, memory, health,
		mount, unmount, mountedDisks, physicalDisks, configDir)
}
