package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/build"
	"github.com/bnema/casement/internal/infrastructure/config"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"about"},
	Short:   "Show version and build information",
	Args:    cobra.NoArgs,
	RunE:    runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
}

func runVersion(_ *cobra.Command, _ []string) error {
	if versionShort {
		fmt.Println(buildInfo.Version)
		return nil
	}
	fmt.Println(renderAbout(styles.NewTheme(config.ThemeDark), buildInfo))
	return nil
}

func renderAbout(theme *styles.Theme, info build.Info) string {
	label := lipgloss.NewStyle().Foreground(theme.Muted).Width(12)
	rows := []string{
		theme.Title.Render(styles.IconWindow + " casement"),
		"",
		label.Render("version") + versionLabel(info),
		label.Render("commit") + info.ShortCommit(),
		label.Render("built") + info.BuildDate,
		label.Render("go") + info.GoVersion,
		label.Render("repository") + build.RepoURL(),
		label.Render("authors") + strings.Join(build.Contributors(), ", "),
	}
	return theme.Box.Render(strings.Join(rows, "\n"))
}

func versionLabel(info build.Info) string {
	if info.IsRelease() {
		return info.Version
	}
	return info.Version + " (development build)"
}
