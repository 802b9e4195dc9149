// Package app encapsulates the commands and options of the wsl-ui
// binary, which can be controlled by flags, environment variables and a
// config file.
package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	wslui "github.com/wslui/wslui"
	"github.com/wslui/wslui/internal/appdir"
)

// App wires the cobra command tree over one Service.
type App struct {
	rootCmd *cobra.Command
	viper   *viper.Viper

	service *wslui.Service
}

// New registers commands and returns a new App.
func New() *App {
	a := &App{viper: viper.New()}

	a.rootCmd = &cobra.Command{
		Use:   "wsl-ui COMMAND",
		Short: "Management bridge for WSL distributions",
		Long: "wsl-ui fronts the wsl command-line tool behind a structured JSON surface\n" +
			"for the desktop front-end. Run a subcommand for a one-shot query, or\n" +
			"`serve` to start the local command bridge.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing succeeded; usage is no longer helpful.
			a.rootCmd.SilenceUsage = true

			if err := a.initConfig(); err != nil {
				return err
			}
			setVerboseMode(a.viper.GetInt("verbosity"))

			a.service = wslui.New()
			return nil
		},
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().CountP("verbose", "v", "issue INFO (-v), DEBUG (-vv) or DEBUG with caller (-vvv) output")
	a.rootCmd.PersistentFlags().String("config", "", "configuration file path")
	if err := a.viper.BindPFlag("verbosity", a.rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(fmt.Sprintf("could not bind verbosity flag: %v", err))
	}

	a.installDistroCommands()
	a.installSystemCommands()
	a.installLauncherCommands()
	a.installServeCommand()

	return a
}

// Execute runs the command tree.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// initConfig layers the optional config file and WSLUI_* environment
// variables under the flags.
func (a *App) initConfig() error {
	a.viper.SetEnvPrefix("WSLUI")
	a.viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.viper.AutomaticEnv()

	if path, err := a.rootCmd.PersistentFlags().GetString("config"); err == nil && path != "" {
		a.viper.SetConfigFile(path)
	} else if dir, err := appdir.Dir(); err == nil {
		a.viper.AddConfigPath(dir)
		a.viper.SetConfigName("wsl-ui")
	} else {
		a.viper.AddConfigPath(".")
		a.viper.SetConfigName("wsl-ui")
	}

	if err := a.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// A missing file is fine; an unreadable one is not, unless
			// it simply does not exist at an explicit path either.
			if !os.IsNotExist(errors.Unwrap(err)) && !os.IsNotExist(err) {
				return fmt.Errorf("could not read config: %w", err)
			}
		}
		log.Debug("no config file found, using defaults")
	}

	return nil
}

func setVerboseMode(level int) {
	log.SetOutput(os.Stderr)

	switch level {
	case 0:
		log.SetLevel(log.WarnLevel)
	case 1:
		log.SetLevel(log.InfoLevel)
	case 2:
		log.SetLevel(log.DebugLevel)
	default:
		log.SetReportCaller(true)
		log.SetLevel(log.DebugLevel)
	}
}
