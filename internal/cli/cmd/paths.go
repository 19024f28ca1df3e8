package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	xdgadapter "github.com/bnema/casement/internal/infrastructure/xdg"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show where casement keeps its files",
	Args:  cobra.NoArgs,
	RunE:  runPaths,
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}

func runPaths(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	xdg := xdgadapter.New()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, d := range []struct {
		name string
		get  func() (string, error)
	}{
		{"config", xdg.ConfigDir},
		{"data", xdg.DataDir},
		{"state", xdg.StateDir},
		{"runtime", xdg.RuntimeDir},
	} {
		dir, err := d.get()
		if err != nil {
			return fmt.Errorf("resolve %s dir: %w", d.name, err)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", d.name, dir)
	}

	cfg := app.Config
	_, _ = fmt.Fprintf(w, "config file\t%s\n", app.Manager.ConfigFile())
	_, _ = fmt.Fprintf(w, "session\t%s\n", cfg.Session.File)
	_, _ = fmt.Fprintf(w, "history\t%s\n", cfg.History.DatabasePath)
	_, _ = fmt.Fprintf(w, "socket\t%s\n", cfg.IPC.SocketPath)
	_, _ = fmt.Fprintf(w, "logs\t%s\n", cfg.Logging.LogDir)
	return w.Flush()
}
