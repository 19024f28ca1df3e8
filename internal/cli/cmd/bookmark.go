package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/domain/entity"
)

var bookmarkOutput outputFormat

var bookmarkCmd = &cobra.Command{
	Use:     "bookmark",
	Aliases: []string{"bookmarks"},
	Short:   "Manage bookmarks",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <url> [title...]",
	Short: "Save a bookmark, or retitle an existing one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		repo, err := app.Bookmarks(app.Ctx())
		if err != nil {
			return fmt.Errorf("open bookmarks: %w", err)
		}
		b := &entity.Bookmark{URL: args[0], Title: strings.Join(args[1:], " ")}
		if err := repo.Save(app.Ctx(), b); err != nil {
			return err
		}
		fmt.Println(app.Theme.SuccessStyle.Render("Saved " + b.URL))
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bookmarks, oldest first",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		repo, err := app.Bookmarks(app.Ctx())
		if err != nil {
			return fmt.Errorf("open bookmarks: %w", err)
		}
		all, err := repo.GetAll(app.Ctx())
		if err != nil {
			return err
		}
		if bookmarkOutput.structured() {
			return bookmarkOutput.write(all)
		}
		if len(all) == 0 {
			fmt.Println("No bookmarks.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, b := range all {
			_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Title, b.URL)
		}
		return w.Flush()
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "rm <url>",
	Aliases: []string{"remove"},
	Short:   "Delete a bookmark",
	Args:    cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		repo, err := app.Bookmarks(app.Ctx())
		if err != nil {
			return fmt.Errorf("open bookmarks: %w", err)
		}
		return repo.Delete(app.Ctx(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(bookmarkCmd)
	bookmarkCmd.AddCommand(bookmarkAddCmd, bookmarkListCmd, bookmarkRemoveCmd)
	bookmarkOutput.register(bookmarkListCmd.Flags())
}
