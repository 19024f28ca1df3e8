package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/infrastructure/config"
)

var (
	configOutput      outputFormat
	configWriteSchema bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the effective configuration.

Settings come from the TOML config file, then CASEMENT_* environment
variables (for example CASEMENT_LOGGING_LEVEL=debug).`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Println(app.Manager.ConfigFile())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		if configOutput.json {
			return writeJSON(os.Stdout, app.Config)
		}
		return writeYAML(os.Stdout, app.Config)
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	Long: `Print the JSON Schema of the config file. With --write the schema is saved
next to the config file as config.schema.json for editor completion.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if configWriteSchema {
			app := GetApp()
			if app == nil {
				return fmt.Errorf("app not initialized")
			}
			path, err := app.Manager.WriteSchemaFile()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		}
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd)
	configOutput.register(configShowCmd.Flags())
	configSchemaCmd.Flags().BoolVar(&configWriteSchema, "write", false, "write config.schema.json next to the config file")
}
