package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/cli/model"
)

const defaultHistoryMax = 200

var (
	historyOutput outputFormat
	historyMax    int
	historyYes    bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and clear visit history",
	Long: `Interactive history browser with filtering and cleanup.

Visits are recorded by the controller when a tab finishes loading a page,
if history.enabled is set. Use --json or --yaml for scripting.`,
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every history entry",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyOutput.register(historyCmd.Flags())
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show")
	historyClearCmd.Flags().BoolVarP(&historyYes, "yes", "y", false, "skip confirmation prompt")
}

func runHistory(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	repo, err := app.History(ctx)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}

	if historyOutput.structured() {
		entries, err := repo.GetRecent(ctx, historyMax)
		if err != nil {
			return err
		}
		return historyOutput.write(entries)
	}

	m := model.NewHistoryModel(ctx, app.Theme, repo, historyMax)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if hm, ok := final.(model.HistoryModel); ok && hm.Err() != nil {
		return hm.Err()
	}
	return nil
}

func runHistoryClear(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	repo, err := app.History(ctx)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		fmt.Println("History is already empty.")
		return nil
	}

	if !historyYes {
		ok, err := model.Ask(app.Theme, fmt.Sprintf("Delete all %d history entries?", count))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Canceled.")
			return nil
		}
	}
	if err := repo.DeleteAll(ctx); err != nil {
		return err
	}
	fmt.Println(app.Theme.SuccessStyle.Render(fmt.Sprintf("Deleted %d entries.", count)))
	return nil
}
