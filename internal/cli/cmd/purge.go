package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/application/usecase"
	"github.com/bnema/casement/internal/cli"
	"github.com/bnema/casement/internal/cli/model"
	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/infrastructure/config"
	"github.com/bnema/casement/internal/infrastructure/filesystem"
	"github.com/bnema/casement/internal/infrastructure/sessionstore"
)

var (
	purgeForce bool
	purgeOnly  []string
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove casement data",
	Long: `Remove stored casement data.

This can remove:
  - session          the saved tab list
  - history          the history and bookmark database
  - logs             rotated log files
  - filter-cache     downloaded block lists
  - browser-profile  the chrome profile used by the cdp backend
  - config           the config file (only when named with --only)

Refused while casement serve is running.

Examples:
  casement purge                          # Everything but the config, with a prompt
  casement purge --only history,logs -f   # Just history and logs, no prompt`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
	purgeCmd.Flags().BoolVarP(&purgeForce, "force", "f", false, "remove without prompting")
	purgeCmd.Flags().StringSliceVar(&purgeOnly, "only", nil, "comma separated targets to remove")
}

func runPurge(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	types, err := purgeTypes(purgeOnly)
	if err != nil {
		return err
	}

	// Holding the session lock proves no controller is running.
	store := sessionstore.New(app.Config.Session.File)
	if err := store.Lock(); err != nil {
		if errors.Is(err, repository.ErrStoreLocked) {
			return fmt.Errorf("casement is running; stop it before purging")
		}
		return err
	}
	defer func() { _ = store.Unlock() }()

	uc, err := newPurgeUseCase(app)
	if err != nil {
		return err
	}

	targets, err := uc.GetPurgeTargets(ctx)
	if err != nil {
		return err
	}
	var pending []entity.PurgeTarget
	for _, t := range targets {
		if t.Exists && slices.Contains(types, t.Type) {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to remove.")
		return nil
	}

	printPurgeTargets(pending)
	if !purgeForce {
		ok, err := model.Ask(app.Theme, fmt.Sprintf("Remove %d items?", len(pending)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}
	}

	out, err := uc.Execute(ctx, usecase.PurgeInput{TargetTypes: types})
	if out != nil {
		theme := app.Theme
		for _, r := range out.Results {
			if r.Success {
				fmt.Printf("%s %s\n", theme.SuccessStyle.Render(styles.IconCheck), r.Target.Path)
			} else {
				fmt.Printf("%s %s: %v\n", theme.ErrorStyle.Render(styles.IconX), r.Target.Path, r.Error)
			}
		}
	}
	return err
}

func newPurgeUseCase(app *cli.App) (*usecase.PurgeDataUseCase, error) {
	filterCache, err := config.GetFilterCacheDir()
	if err != nil {
		return nil, err
	}
	cfg := app.Config
	return usecase.NewPurgeDataUseCase(filesystem.New(), usecase.PurgePaths{
		Session:        cfg.Session.File,
		History:        cfg.History.DatabasePath,
		Logs:           cfg.Logging.LogDir,
		FilterCache:    filterCache,
		BrowserProfile: cfg.ContentView.CDP.UserDataDir,
		Config:         app.Manager.ConfigFile(),
	}), nil
}

// purgeTypes resolves --only names; no names selects everything but config.
func purgeTypes(names []string) ([]entity.PurgeTargetType, error) {
	if len(names) == 0 {
		var types []entity.PurgeTargetType
		for _, tt := range entity.AllPurgeTargetTypes() {
			if tt != entity.PurgeTargetConfig {
				types = append(types, tt)
			}
		}
		return types, nil
	}

	known := entity.AllPurgeTargetTypes()
	types := make([]entity.PurgeTargetType, 0, len(names))
	for _, name := range names {
		tt := entity.PurgeTargetType(strings.ToLower(strings.TrimSpace(name)))
		if !slices.Contains(known, tt) {
			return nil, fmt.Errorf("unknown purge target %q", name)
		}
		types = append(types, tt)
	}
	return types, nil
}

func printPurgeTargets(targets []entity.PurgeTarget) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range targets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Type, t.Description, formatBytes(t.Size), t.Path)
	}
	_ = w.Flush()
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
