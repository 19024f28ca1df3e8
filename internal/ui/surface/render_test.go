package surface

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/entity"
)

func mainSnapshot() *entity.WindowSnapshot {
	return &entity.WindowSnapshot{
		WindowID:      entity.MainWindowID,
		IsMain:        true,
		ActiveTabID:   2,
		DetachedCount: 1,
		Seq:           7,
		Tabs: []entity.TabView{
			{ID: 1, URL: "https://a.test/", Title: "Alpha", Pinned: true, Zoom: 1},
			{ID: 2, URL: "https://b.test/", Title: "Bravo", Muted: true, Zoom: 1.5, Active: true},
			{ID: 3, URL: "https://c.invalid/", Title: "New Tab", Zoom: 1, LoadError: "net::ERR_NAME_NOT_RESOLVED"},
		},
	}
}

func TestRender_MainWindow(t *testing.T) {
	out := Render(mainSnapshot(), styles.NewThemeFromPalette(styles.DarkPalette()), 60)

	assert.Contains(t, out, "Main window")
	assert.Contains(t, out, "3 tabs")
	assert.Contains(t, out, "1 detached")
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Bravo")
	assert.Contains(t, out, "150%")
	assert.Contains(t, out, "ERR_NAME_NOT_RESOLVED")
	assert.Contains(t, out, styles.IconPin)
	assert.Contains(t, out, styles.IconMute)
	assert.NotContains(t, out, styles.IconCursor)

	// Tab order is preserved.
	assert.Less(t, strings.Index(out, "Alpha"), strings.Index(out, "Bravo"))
}

func TestRender_DetachedWindowAndNotice(t *testing.T) {
	snap := &entity.WindowSnapshot{
		WindowID:    4,
		ActiveTabID: 9,
		Degraded:    true,
		Notice:      "pinned tabs cannot be closed",
		Tabs:        []entity.TabView{{ID: 9, Title: "Solo", Active: true, Zoom: 1}},
	}
	out := Render(snap, styles.NewThemeFromPalette(styles.LightPalette()), 40)

	assert.Contains(t, out, "Window 4")
	assert.Contains(t, out, "1 tab")
	assert.NotContains(t, out, "detached")
	assert.Contains(t, out, "session not saved")
	assert.Contains(t, out, "pinned tabs cannot be closed")
}

func TestRender_IsPure(t *testing.T) {
	theme := styles.NewThemeFromPalette(styles.DarkPalette())
	snap := mainSnapshot()
	first := Render(snap, theme, 50)
	assert.Equal(t, first, Render(snap, theme, 50))
	assert.Equal(t, mainSnapshot(), snap)
}

func TestRender_CursorMarksSelection(t *testing.T) {
	out := render(mainSnapshot(), styles.NewThemeFromPalette(styles.DarkPalette()), 60, 3)
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, styles.IconCursor) {
			assert.Contains(t, line, "New Tab")
		}
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hell…", Truncate("hello world", 5))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Empty(t, Truncate("hello", 0))
	assert.Equal(t, "héllo…", Truncate("héllo wörld", 6))
}
