// Package cmd provides Cobra CLI commands for casement.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/cli"
	"github.com/bnema/casement/internal/domain/build"
)

var (
	app        *cli.App
	buildInfo  build.Info
	configPath string
	verbose    bool
	rootCmd    = &cobra.Command{
		Use:   "casement",
		Short: "Tab and window orchestration for a headless browser engine",
		Long: `Casement - one controller that owns every browser tab and window.

The controller keeps an ordered tab list per window, refuses to close pinned
tabs, lets tabs be detached into their own windows and reattached later,
and saves the session so the next start reopens the same tabs.

Start the controller with 'casement serve'. Window surfaces attach with
'casement window', scripts drive it with 'casement ctl', and agents can use
the MCP bridge with 'casement mcp'.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{
				ConfigPath: configPath,
				FileLog:    cmd == serveCmd,
				Verbose:    verbose,
			})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/casement/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
