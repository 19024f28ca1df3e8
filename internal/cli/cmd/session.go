package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/cli/model"
	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/infrastructure/sessionstore"
)

var (
	sessionOutput outputFormat
	sessionYes    bool
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect the saved session",
	Long: `Inspect the session file the controller restores on start.

Only main-window tabs are saved, in order, with their pinned flag.`,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved tabs",
	Args:  cobra.NoArgs,
	RunE:  runSessionShow,
}

var sessionPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the session file location",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		fmt.Println(app.Config.Session.File)
		return nil
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the saved session",
	Long:  `Empty the saved session so the next start opens a single home tab. Refused while casement is running.`,
	Args:  cobra.NoArgs,
	RunE:  runSessionClear,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd, sessionPathCmd, sessionClearCmd)
	sessionOutput.register(sessionShowCmd.Flags())
	sessionClearCmd.Flags().BoolVarP(&sessionYes, "yes", "y", false, "skip confirmation prompt")
}

func runSessionShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	entries, err := sessionstore.ReadFile(app.Config.Session.File)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("No saved session.")
			return nil
		}
		return err
	}
	if sessionOutput.structured() {
		return sessionOutput.write(entries)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, e := range entries {
		pin := ""
		if e.Pinned {
			pin = styles.IconPin
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, pin, e.URL)
	}
	return w.Flush()
}

func runSessionClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	store := sessionstore.New(app.Config.Session.File)
	if err := store.Lock(); err != nil {
		if errors.Is(err, repository.ErrStoreLocked) {
			return fmt.Errorf("casement is running; close its tabs with 'casement ctl' instead")
		}
		return err
	}
	defer func() { _ = store.Unlock() }()

	if !sessionYes {
		ok, err := model.Ask(app.Theme, "Forget every saved tab?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}
	}
	return store.Save(app.Ctx(), nil)
}
