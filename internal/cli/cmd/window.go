package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/cli"
	"github.com/bnema/casement/internal/domain/autocomplete"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/infrastructure/ipc"
	"github.com/bnema/casement/internal/ui/surface"
)

var windowID uint64

const (
	suggestionHistory = 200
	maxSuggestions    = 500
	suggestionTimeout = 2 * time.Second
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Attach a tab switcher surface to a window",
	Long: `Open the interactive tab switcher for one window.

The surface mirrors the window's tab list as the controller pushes it and
sends every key press back as a command. It exits when the window is
destroyed or when you press q; pressing W closes the window itself.

Detached windows are normally opened by the controller through the
window.launcher setting, which runs this command with --id.

Examples:
  casement window            # Main window
  casement window --id 3     # A detached window`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
	windowCmd.Flags().Uint64Var(&windowID, "id", uint64(entity.MainWindowID), "window id to attach to")
}

func runWindow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if windowID == 0 {
		return fmt.Errorf("window id must be positive")
	}

	ctx := app.Ctx()
	client, err := app.Dial(ctx, entity.WindowID(windowID))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	m := surface.NewModel(ctx, client, surface.Options{
		WindowID:      entity.WindowID(windowID),
		Theme:         app.Theme,
		MaxTitleWidth: app.Config.Window.MaxTitleWidth,
		Suggestions:   loadSuggestions(ctx, app),
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	if sm, ok := final.(surface.Model); ok {
		if err := sm.Err(); err != nil && !errors.Is(err, ipc.ErrClosed) {
			return fmt.Errorf("controller connection lost: %w", err)
		}
		if sm.Closed() {
			fmt.Printf("window %d closed\n", windowID)
		}
	}
	return nil
}

// loadSuggestions gathers bookmark and recent history URLs for the navigate
// prompt. Failures only cost completions.
func loadSuggestions(ctx context.Context, app *cli.App) []string {
	ctx, cancel := context.WithTimeout(ctx, suggestionTimeout)
	defer cancel()

	var urls []string
	if repo, err := app.Bookmarks(ctx); err == nil {
		if bookmarks, err := repo.GetAll(ctx); err == nil {
			for _, b := range bookmarks {
				urls = append(urls, b.URL)
			}
		}
	}
	if app.Config.History.Enabled {
		if repo, err := app.History(ctx); err == nil {
			if entries, err := repo.GetRecent(ctx, suggestionHistory); err == nil {
				for _, e := range entries {
					urls = append(urls, e.URL)
				}
			}
		}
	}
	return autocomplete.Candidates(urls, maxSuggestions)
}
