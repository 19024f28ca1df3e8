// Package surface projects window snapshots into a terminal tab switcher
// and forwards key intents to the controller.
package surface

import (
	"fmt"
	"strings"

	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/entity"
)

const (
	minWidth = 24
	// index, markers and spacing before the title.
	rowPrefixWidth = 10
)

// Render draws snap as a tab list. It is a pure function of its inputs and
// is recomputed in full on every push. cursor marks a tab for key intents;
// zero marks none.
func Render(snap *entity.WindowSnapshot, theme *styles.Theme, width int) string {
	return render(snap, theme, width, 0)
}

func render(snap *entity.WindowSnapshot, theme *styles.Theme, width int, cursor entity.TabID) string {
	if snap == nil {
		return theme.Subtle.Render("waiting for controller…")
	}
	width = max(width, minWidth)

	var b strings.Builder
	b.WriteString(theme.TabBar.Width(width).Render(header(snap, theme)))
	b.WriteByte('\n')

	for i, tv := range snap.Tabs {
		b.WriteString(row(i, tv, theme, width, tv.ID == cursor))
		b.WriteByte('\n')
	}
	if len(snap.Tabs) == 0 {
		b.WriteString(theme.Subtle.Render("  no tabs"))
		b.WriteByte('\n')
	}

	if snap.Notice != "" {
		b.WriteString(theme.StatusLine.Render(styles.IconWarning + " " + snap.Notice))
		b.WriteByte('\n')
	}
	return b.String()
}

func header(snap *entity.WindowSnapshot, theme *styles.Theme) string {
	var title string
	if snap.IsMain {
		title = theme.Title.Render(styles.IconGlobe + " Main window")
	} else {
		title = theme.Title.Render(fmt.Sprintf("%s Window %d", styles.IconWindow, snap.WindowID))
	}

	parts := []string{title, theme.MutedBadge(plural(len(snap.Tabs), "tab"))}
	if snap.IsMain && snap.DetachedCount > 0 {
		parts = append(parts, theme.MutedBadge(plural(snap.DetachedCount, "detached")))
	}
	if snap.Degraded {
		parts = append(parts, theme.WarningStyle.Render(styles.IconWarning+" session not saved"))
	}
	return strings.Join(parts, " ")
}

func row(index int, tv entity.TabView, theme *styles.Theme, width int, selected bool) string {
	marker := "  "
	if selected {
		marker = styles.IconCursor + " "
	}

	var flags strings.Builder
	if tv.Pinned {
		flags.WriteString(styles.IconPin)
	} else {
		flags.WriteByte(' ')
	}
	if tv.Muted {
		flags.WriteString(styles.IconMute)
	} else {
		flags.WriteByte(' ')
	}

	title := Truncate(tv.Title, width-rowPrefixWidth)
	style := theme.InactiveTab
	if tv.Active {
		style = theme.ActiveTab
	}

	line := fmt.Sprintf("%s%2d %s %s", marker, index+1, flags.String(), style.Render(title))

	var extra []string
	if tv.Loading {
		extra = append(extra, theme.Subtle.Render("loading"))
	}
	if z := theme.ZoomBadge(tv.Zoom); z != "" {
		extra = append(extra, z)
	}
	if tv.Fullscreen {
		extra = append(extra, theme.Subtle.Render(styles.IconExpand))
	}
	if tv.LoadError != "" {
		extra = append(extra, theme.ErrorStyle.Render(styles.IconX+" "+Truncate(tv.LoadError, width/2)))
	}
	if len(extra) > 0 {
		line += " " + strings.Join(extra, " ")
	}
	return line
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func plural(n int, noun string) string {
	if n == 1 || noun == "detached" {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
