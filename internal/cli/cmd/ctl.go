package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/ui/surface"
)

const (
	ctlTimeout    = 30 * time.Second
	listTitleCols = 40
)

var (
	ctlWindow   uint64
	ctlActivate bool
	ctlOutput   outputFormat
)

var ctlCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Send commands to the running controller",
	Long: `Drive a running controller from scripts.

Tab and window ids are the ones printed by 'casement ctl list'. Refused
commands (closing a pinned tab, an id that no longer exists) exit non-zero
with the controller's reason.`,
}

func init() {
	rootCmd.AddCommand(ctlCmd)

	ctlOutput.register(ctlListCmd.Flags())
	ctlCmd.AddCommand(ctlListCmd)

	ctlNewCmd.Flags().Uint64Var(&ctlWindow, "window", uint64(entity.MainWindowID), "target window")
	ctlNewCmd.Flags().BoolVar(&ctlActivate, "activate", true, "focus the new tab")
	ctlCmd.AddCommand(ctlNewCmd)

	ctlCloseUnpinnedCmd.Flags().Uint64Var(&ctlWindow, "window", uint64(entity.MainWindowID), "target window")
	ctlReattachCmd.Flags().Uint64Var(&ctlWindow, "window", uint64(entity.MainWindowID), "target window")

	ctlCmd.AddCommand(
		ctlCloseUnpinnedCmd,
		ctlReattachCmd,
		ctlZoomCmd,
		ctlNavigateCmd,
		ctlCloseWindowCmd,
		ctlResyncCmd,
		ctlRestoreCmd,
		ctlPersistCmd,
		ctlPingCmd,
	)

	for _, c := range []struct {
		use, short string
		build      func(entity.TabID) controller.Command
	}{
		{"activate <tab>", "Focus a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpActivateTab, TabID: id}
		}},
		{"close <tab>", "Close an unpinned tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpCloseTab, TabID: id}
		}},
		{"pin <tab>", "Pin a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpSetPinned, TabID: id, Pinned: true}
		}},
		{"unpin <tab>", "Unpin a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpSetPinned, TabID: id}
		}},
		{"mute <tab>", "Mute a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpSetMuted, TabID: id, Muted: true}
		}},
		{"unmute <tab>", "Unmute a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpSetMuted, TabID: id}
		}},
		{"detach <tab>", "Move a tab into a new window", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpDetachTab, TabID: id}
		}},
		{"reload <tab>", "Reload a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpReload, TabID: id}
		}},
		{"back <tab>", "Go back in a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpGoBack, TabID: id}
		}},
		{"forward <tab>", "Go forward in a tab", func(id entity.TabID) controller.Command {
			return controller.Command{Op: controller.OpGoForward, TabID: id}
		}},
	} {
		ctlCmd.AddCommand(tabCommand(c.use, c.short, c.build))
	}
}

// tabCommand builds a ctl subcommand that takes a single tab id.
func tabCommand(use, short string, build func(entity.TabID) controller.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := parseTabID(args[0])
			if err != nil {
				return err
			}
			res, err := submit(build(id))
			if err != nil {
				return err
			}
			printResult(res)
			return nil
		},
	}
}

var ctlListCmd = &cobra.Command{
	Use:   "list",
	Short: "List windows and their tabs",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		res, err := submit(controller.Command{Op: controller.OpList})
		if err != nil {
			return err
		}
		if ctlOutput.structured() {
			return ctlOutput.write(res.Windows)
		}
		printWindows(GetApp().Theme, res.Windows)
		return nil
	},
}

var ctlNewCmd = &cobra.Command{
	Use:   "new [url or search...]",
	Short: "Open a tab at the end of a window",
	RunE: func(_ *cobra.Command, args []string) error {
		res, err := submit(controller.Command{
			Op:       controller.OpCreateTab,
			WindowID: entity.WindowID(ctlWindow),
			URL:      strings.Join(args, " "),
			Activate: ctlActivate,
		})
		if err != nil {
			return err
		}
		fmt.Println(res.TabID)
		return nil
	},
}

var ctlCloseUnpinnedCmd = &cobra.Command{
	Use:   "close-unpinned",
	Short: "Close every unpinned tab in a window",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := submit(controller.Command{Op: controller.OpCloseAllUnpinned, WindowID: entity.WindowID(ctlWindow)})
		return err
	},
}

var ctlReattachCmd = &cobra.Command{
	Use:   "reattach <tab>",
	Short: "Move a tab back into a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		_, err = submit(controller.Command{Op: controller.OpReattachTab, TabID: id, WindowID: entity.WindowID(ctlWindow)})
		return err
	},
}

var ctlZoomCmd = &cobra.Command{
	Use:   "zoom <tab> <factor|in|out|reset>",
	Short: "Change a tab's zoom",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		cmd, err := zoomCommand(id, args[1])
		if err != nil {
			return err
		}
		res, err := submit(cmd)
		if err != nil {
			return err
		}
		fmt.Println(styles.FormatZoom(res.Zoom))
		return nil
	},
}

var ctlNavigateCmd = &cobra.Command{
	Use:   "navigate <tab> <url or search...>",
	Short: "Load a URL or search in a tab",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseTabID(args[0])
		if err != nil {
			return err
		}
		_, err = submit(controller.Command{Op: controller.OpNavigate, TabID: id, URL: strings.Join(args[1:], " ")})
		return err
	},
}

var ctlCloseWindowCmd = &cobra.Command{
	Use:   "close-window <window>",
	Short: "Close a window; closing the main window stops casement",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseWindowID(args[0])
		if err != nil {
			return err
		}
		res, err := submit(controller.Command{Op: controller.OpCloseWindow, WindowID: id})
		if err != nil {
			return err
		}
		if res.Shutdown {
			fmt.Println("casement is shutting down")
		}
		return nil
	},
}

var ctlResyncCmd = &cobra.Command{
	Use:   "resync <window>",
	Short: "Push a fresh snapshot to a window's surfaces",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		id, err := parseWindowID(args[0])
		if err != nil {
			return err
		}
		_, err = submit(controller.Command{Op: controller.OpResync, WindowID: id})
		return err
	},
}

var ctlRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Reopen the saved session in the main window",
	Long: `Reopen the saved session in the main window.

The controller restores the session itself at startup, so this is refused
with "session already open" whenever the main window holds tabs. It never
appends saved tabs to a running session.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		res, err := submit(controller.Command{Op: controller.OpRestore})
		if err != nil {
			return err
		}
		fmt.Printf("restored %d tabs\n", res.Restored)
		return nil
	},
}

var ctlPersistCmd = &cobra.Command{
	Use:   "persist",
	Short: "Save the session now",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := submit(controller.Command{Op: controller.OpPersist})
		return err
	},
}

var ctlPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the controller answers",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		ctx, cancel := context.WithTimeout(app.Ctx(), ctlTimeout)
		defer cancel()
		client, err := app.Dial(ctx, 0)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		start := time.Now()
		if err := client.Ping(ctx); err != nil {
			return err
		}
		fmt.Printf("pong in %s\n", time.Since(start).Round(time.Microsecond))
		return nil
	},
}

// submit sends one command over a fresh command connection.
func submit(cmd controller.Command) (controller.Result, error) {
	app := GetApp()
	if app == nil {
		return controller.Result{}, fmt.Errorf("app not initialized")
	}
	ctx, cancel := context.WithTimeout(app.Ctx(), ctlTimeout)
	defer cancel()

	client, err := app.Dial(ctx, 0)
	if err != nil {
		return controller.Result{}, err
	}
	defer func() { _ = client.Close() }()

	cmd.Origin = "ctl"
	res, err := client.Do(ctx, cmd)
	if err != nil {
		if notice := controller.NoticeFor(err); notice != "" {
			return res, errors.New(notice)
		}
		return res, err
	}
	return res, nil
}

func zoomCommand(id entity.TabID, arg string) (controller.Command, error) {
	switch strings.ToLower(arg) {
	case "in", "+":
		return controller.Command{Op: controller.OpZoomIn, TabID: id}, nil
	case "out", "-":
		return controller.Command{Op: controller.OpZoomOut, TabID: id}, nil
	case "reset", "0":
		return controller.Command{Op: controller.OpResetZoom, TabID: id}, nil
	}
	factor, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
	if err != nil {
		return controller.Command{}, fmt.Errorf("invalid zoom %q: use a factor, a percentage, in, out or reset", arg)
	}
	if strings.HasSuffix(arg, "%") {
		factor /= 100
	}
	return controller.Command{Op: controller.OpSetZoom, TabID: id, Zoom: factor}, nil
}

func parseTabID(s string) (entity.TabID, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid tab id %q", s)
	}
	return entity.TabID(id), nil
}

func parseWindowID(s string) (entity.WindowID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid window id %q", s)
	}
	return entity.WindowID(id), nil
}

func printResult(res controller.Result) {
	if res.WindowID != 0 && res.TabID == 0 {
		fmt.Printf("window %d\n", res.WindowID)
	}
}

// printWindows writes a plain table, one block per window.
func printWindows(theme *styles.Theme, windows []*entity.WindowSnapshot) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() { _ = w.Flush() }()

	for i, win := range windows {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		kind := "detached"
		if win.IsMain {
			kind = "main"
		}
		_, _ = fmt.Fprintf(w, "%s\n", theme.Title.Render(fmt.Sprintf("window %d (%s, %d tabs)", win.WindowID, kind, len(win.Tabs))))
		for _, tab := range win.Tabs {
			marker := " "
			if tab.Active {
				marker = "*"
			}
			var flags []string
			if tab.Pinned {
				flags = append(flags, "pinned")
			}
			if tab.Muted {
				flags = append(flags, "muted")
			}
			if tab.Zoom != entity.ZoomDefault {
				flags = append(flags, styles.FormatZoom(tab.Zoom))
			}
			if tab.LoadError != "" {
				flags = append(flags, "error")
			}
			_, _ = fmt.Fprintf(w, "%s %d\t%s\t%s\t%s\n",
				marker, tab.ID, surface.Truncate(tab.Title, listTitleCols), tab.URL, strings.Join(flags, ","))
		}
	}
}
