package styles

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/casement/internal/infrastructure/config"
)

func TestNewTheme_Variants(t *testing.T) {
	dark := NewTheme(config.ThemeDark)
	light := NewTheme(config.ThemeLight)
	assert.Equal(t, lipgloss.Color(DarkPalette().Accent), dark.Accent)
	assert.Equal(t, lipgloss.Color(LightPalette().Accent), light.Accent)
	assert.Equal(t, dark.Accent, NewTheme("").Accent)
}

func TestFormatZoom(t *testing.T) {
	assert.Equal(t, "150%", FormatZoom(1.5))
	assert.Equal(t, "25%", FormatZoom(0.25))
	assert.Empty(t, NewTheme(config.ThemeDark).ZoomBadge(1))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{2 * 24 * time.Hour, "2d ago"},
		{14 * 24 * time.Hour, "2w ago"},
		{60 * 24 * time.Hour, "2mo ago"},
		{800 * 24 * time.Hour, "2y ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeTime(now, now.Add(-tt.ago)))
	}
}

func TestConfirmModel(t *testing.T) {
	m := NewConfirm(NewTheme(config.ThemeDark), "Clear?")
	assert.False(t, m.Yes)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.True(t, m.Yes)
	assert.False(t, m.Done())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.Done())
	assert.True(t, m.Result())

	m = NewConfirm(NewTheme(config.ThemeDark), "Clear?")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Done())
	assert.False(t, m.Result())
	assert.Contains(t, m.View(), "Clear?")
}
