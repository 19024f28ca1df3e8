// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

// chromeLines is the height taken by the title, filter, status and help.
const chromeLines = 7

type (
	historyLoadedMsg struct {
		entries []*entity.HistoryEntry
		err     error
	}
	historyClearedMsg struct{ err error }
)

// HistoryModel is the Bubble Tea model for the interactive history browser.
type HistoryModel struct {
	// UI components
	table   table.Model
	search  textinput.Model
	help    help.Model
	keys    styles.HistoryKeyMap
	confirm *styles.ConfirmModel
	loading styles.LoadingModel

	// State
	all       []*entity.HistoryEntry
	shown     []*entity.HistoryEntry
	searching bool
	loaded    bool
	status    string
	width     int
	height    int
	err       error

	// Dependencies
	ctx   context.Context
	repo  repository.HistoryRepository
	limit int
	theme *styles.Theme
}

// NewHistoryModel creates a history browser showing up to limit entries.
func NewHistoryModel(ctx context.Context, theme *styles.Theme, repo repository.HistoryRepository, limit int) HistoryModel {
	logging.FromContext(ctx).Debug().Int("limit", limit).Msg("creating history model")

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "filter by title or url"
	search.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)

	const width, height = 80, 24
	return HistoryModel{
		table:   styles.NewStyledTable(theme, styles.HistoryTableColumns(width), nil, width, height-chromeLines),
		search:  search,
		help:    styles.NewStyledHelp(theme),
		keys:    styles.DefaultHistoryKeyMap(),
		loading: styles.NewLoading(theme, "loading history"),
		ctx:     ctx,
		repo:    repo,
		limit:   limit,
		theme:   theme,
		width:   width,
		height:  height,
	}
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, m.load())
}

// Entries returns the entries currently shown.
func (m HistoryModel) Entries() []*entity.HistoryEntry {
	return m.shown
}

// Err returns the load or clear error, if any.
func (m HistoryModel) Err() error {
	return m.err
}

func (m HistoryModel) load() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.repo.GetRecent(m.ctx, m.limit)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m HistoryModel) clear() tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{err: m.repo.DeleteAll(m.ctx)}
	}
}

// Update implements tea.Model.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(styles.HistoryTableColumns(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-chromeLines, 3))
		return m, nil

	case historyLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.all = msg.entries
		m.refilter()
		return m, nil

	case historyClearedMsg:
		if msg.err != nil {
			m.status = m.theme.ErrorStyle.Render("clear failed: " + msg.err.Error())
			return m, nil
		}
		m.all = nil
		m.refilter()
		m.status = m.theme.SuccessStyle.Render(styles.IconCheck + " history cleared")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if !m.loaded {
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m HistoryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm != nil {
		c, _ := m.confirm.Update(msg)
		if !c.Done() {
			m.confirm = &c
			return m, nil
		}
		m.confirm = nil
		if c.Result() {
			return m, m.clear()
		}
		return m, nil
	}

	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.refilter()
			return m, nil
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.refilter()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Clear):
		if len(m.all) == 0 {
			return m, nil
		}
		c := styles.NewConfirm(m.theme, fmt.Sprintf("Delete all %d history entries?", len(m.all)))
		m.confirm = &c
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// refilter narrows the entries to those matching the search text.
func (m *HistoryModel) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.search.Value()))
	m.shown = m.shown[:0:0]
	for _, e := range m.all {
		if query == "" ||
			strings.Contains(strings.ToLower(e.Title), query) ||
			strings.Contains(strings.ToLower(e.URL), query) {
			m.shown = append(m.shown, e)
		}
	}

	rows := make([]table.Row, 0, len(m.shown))
	for _, e := range m.shown {
		rows = append(rows, table.Row{e.Title, e.URL, styles.RelativeTime(e.VisitedAt)})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// View implements tea.Model.
func (m HistoryModel) View() string {
	if !m.loaded {
		return m.loading.View()
	}
	if m.confirm != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(fmt.Sprintf("%s History", styles.IconClock)))
	b.WriteString(m.theme.Subtle.Render(fmt.Sprintf("  %d of %d", len(m.shown), len(m.all))))
	b.WriteString("\n\n")

	if len(m.all) == 0 {
		b.WriteString(m.theme.Subtle.Render("No history yet."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
	}

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
