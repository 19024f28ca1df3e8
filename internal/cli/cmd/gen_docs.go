package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	xdgadapter "github.com/bnema/casement/internal/infrastructure/xdg"
)

const dirPerm = 0o755

var (
	genDocsOutputDir string
	genDocsFormat    string
)

// rootDocSections are appended to the casement(1) page only.
var rootDocSections = []struct {
	title string
	body  string
}{
	{"FILES", `$XDG_CONFIG_HOME/casement/config.toml   configuration, created on first run
$XDG_STATE_HOME/casement/session.json   main window tabs, [{"url","pinned"}]
$XDG_STATE_HOME/casement/logs/          rotated serve logs
$XDG_DATA_HOME/casement/history.sqlite  history and bookmarks
$XDG_RUNTIME_DIR/casement.sock          controller socket, with a .pid next to it`},
	{"ENVIRONMENT", `CASEMENT_LOG_LEVEL    trace, debug, info, warn, error or off
CASEMENT_LOG_FORMAT   console or json
CASEMENT_<SECTION>_<KEY>  overrides any config key, e.g. CASEMENT_SESSION_FILE
SOURCE_DATE_EPOCH     fixes the date stamped by gen-docs`},
	{"WINDOW KEYS", `j/k move, enter activate, t new tab, o open url, x close, X close unpinned,
p pin, m mute, d detach, a reattach, +/-/0 zoom, r reload, [ back, ] forward,
W close window, q quit.`},
}

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Write man pages or markdown for every casement command",
	Long: `Write one page per command: serve, window, every ctl subcommand and the
data tools. The casement page also documents the files casement keeps,
the environment it reads and the window key bindings.

Man pages go to ~/.local/share/man/man1 unless --output is given; run
'mandb' afterwards if 'man casement' is not found. Markdown goes to ./docs.
Set SOURCE_DATE_EPOCH for reproducible output.

Examples:
  casement gen-docs
  casement gen-docs --format markdown --output site/cli`,
	Args: cobra.NoArgs,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", "man", "man or markdown")
}

func runGenDocs(_ *cobra.Command, _ []string) error {
	dir, err := docsDir(genDocsFormat, genDocsOutputDir)
	if err != nil {
		return err
	}
	date, err := docsDate(os.Getenv("SOURCE_DATE_EPOCH"))
	if err != nil {
		return err
	}
	files, err := writeDocs(rootCmd, genDocsFormat, dir, buildInfo.Version, date)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d pages to %s\n", len(files), dir)
	for _, f := range files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func docsDir(format, output string) (string, error) {
	if output != "" {
		return output, nil
	}
	switch format {
	case "man":
		dir, err := xdgadapter.New().ManDir()
		if err != nil {
			return "", fmt.Errorf("resolve man directory: %w", err)
		}
		return dir, nil
	case "markdown":
		return "docs", nil
	default:
		return "", fmt.Errorf("unsupported format %q (use man or markdown)", format)
	}
}

// docsDate honours SOURCE_DATE_EPOCH when set.
func docsDate(epoch string) (time.Time, error) {
	if epoch == "" {
		return time.Now().UTC(), nil
	}
	secs, err := strconv.ParseInt(epoch, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid SOURCE_DATE_EPOCH %q: %w", epoch, err)
	}
	return time.Unix(secs, 0).UTC(), nil
}

// writeDocs renders root's command tree into dir and returns the page
// names written, sorted.
func writeDocs(root *cobra.Command, format, dir, version string, date time.Time) ([]string, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	long := root.Long
	root.Long = long + rootDocFooter(format)
	root.DisableAutoGenTag = true
	defer func() { root.Long = long }()

	var ext string
	switch format {
	case "man":
		ext = ".1"
		header := &doc.GenManHeader{
			Title:   "CASEMENT",
			Section: "1",
			Source:  "casement " + version,
			Manual:  "casement manual",
			Date:    &date,
		}
		if err := doc.GenManTree(root, header, dir); err != nil {
			return nil, fmt.Errorf("generate man pages: %w", err)
		}
	case "markdown":
		ext = ".md"
		if err := doc.GenMarkdownTree(root, dir); err != nil {
			return nil, fmt.Errorf("generate markdown: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format %q (use man or markdown)", format)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ext {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

func rootDocFooter(format string) string {
	var b strings.Builder
	for _, s := range rootDocSections {
		b.WriteString("\n\n")
		if format == "markdown" {
			fmt.Fprintf(&b, "### %s\n\n```\n%s\n```", strings.ToLower(s.title), s.body)
			continue
		}
		b.WriteString(s.title + "\n\n")
		for _, line := range strings.Split(s.body, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}
