package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/infrastructure/config"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository/mocks"
)

func testEntries() []*entity.HistoryEntry {
	now := time.Now()
	return []*entity.HistoryEntry{
		{ID: 3, URL: "https://go.dev/doc", Title: "Go docs", VisitedAt: now},
		{ID: 2, URL: "https://example.com/", Title: "Example", VisitedAt: now.Add(-time.Hour)},
		{ID: 1, URL: "https://go.dev/blog", Title: "Blog", VisitedAt: now.Add(-48 * time.Hour)},
	}
}

func newHistory(t *testing.T) (HistoryModel, *mocks.MockHistoryRepository) {
	t.Helper()
	repo := mocks.NewMockHistoryRepository(t)
	theme := styles.NewTheme(config.ThemeDark)
	return NewHistoryModel(context.Background(), theme, repo, 50), repo
}

func update(t *testing.T, m HistoryModel, msg tea.Msg) (HistoryModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	hm, ok := next.(HistoryModel)
	require.True(t, ok)
	return hm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHistoryModel_LoadShowsEntries(t *testing.T) {
	m, repo := newHistory(t)
	repo.EXPECT().GetRecent(mock.Anything, 50).Return(testEntries(), nil).Once()

	msg := m.load()()
	m, _ = update(t, m, msg)

	assert.Len(t, m.Entries(), 3)
	assert.Contains(t, m.View(), "3 of 3")
}

func TestHistoryModel_LoadErrorQuits(t *testing.T) {
	m, _ := newHistory(t)

	m, cmd := update(t, m, historyLoadedMsg{err: errors.New("disk")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.EqualError(t, m.Err(), "disk")
}

func TestHistoryModel_FilterNarrowsAndEscResets(t *testing.T) {
	m, _ := newHistory(t)
	m, _ = update(t, m, historyLoadedMsg{entries: testEntries()})

	m, _ = update(t, m, runes("/"))
	for _, r := range "go.dev" {
		m, _ = update(t, m, runes(string(r)))
	}
	assert.Len(t, m.Entries(), 2)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.Entries(), 3)
}

func TestHistoryModel_ClearAsksFirst(t *testing.T) {
	m, repo := newHistory(t)
	m, _ = update(t, m, historyLoadedMsg{entries: testEntries()})

	m, _ = update(t, m, runes("C"))
	assert.Contains(t, m.View(), "Delete all 3 history entries?")

	repo.EXPECT().DeleteAll(mock.Anything).Return(nil).Once()
	m, cmd := update(t, m, runes("y"))
	require.NotNil(t, cmd)

	m, _ = update(t, m, cmd())
	assert.Empty(t, m.Entries())
	assert.Contains(t, m.View(), "history cleared")
}

func TestHistoryModel_ClearCanceled(t *testing.T) {
	m, _ := newHistory(t)
	m, _ = update(t, m, historyLoadedMsg{entries: testEntries()})

	m, _ = update(t, m, runes("C"))
	m, cmd := update(t, m, runes("n"))
	assert.Nil(t, cmd)
	assert.Len(t, m.Entries(), 3)
}

func TestHistoryModel_Quit(t *testing.T) {
	m, _ := newHistory(t)
	m, _ = update(t, m, historyLoadedMsg{})

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConfirmProgram(t *testing.T) {
	theme := styles.NewTheme(config.ThemeDark)
	m := NewConfirmProgram(theme, "Sure?")
	assert.Contains(t, m.View(), "Sure?")

	next, cmd := m.Update(runes("y"))
	require.NotNil(t, cmd)
	assert.True(t, next.(ConfirmProgram).Confirmed())

	next, _ = NewConfirmProgram(theme, "Sure?").Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.False(t, next.(ConfirmProgram).Confirmed())
}
