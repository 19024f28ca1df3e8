package model

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/casement/internal/cli/styles"
)

// ConfirmProgram runs a single yes/no question as its own program.
type ConfirmProgram struct {
	dialog styles.ConfirmModel
}

// NewConfirmProgram creates a standalone confirmation prompt.
func NewConfirmProgram(theme *styles.Theme, message string) ConfirmProgram {
	return ConfirmProgram{dialog: styles.NewConfirm(theme, message)}
}

// Init implements tea.Model.
func (m ConfirmProgram) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ConfirmProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyCtrlC {
		m.dialog.Canceled = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)
	if m.dialog.Done() {
		return m, tea.Quit
	}
	return m, cmd
}

// View implements tea.Model.
func (m ConfirmProgram) View() string {
	if m.dialog.Done() {
		return ""
	}
	return m.dialog.View() + "\n"
}

// Confirmed reports whether the user answered yes.
func (m ConfirmProgram) Confirmed() bool {
	return m.dialog.Result()
}

// Ask runs a confirmation prompt and returns the answer.
func Ask(theme *styles.Theme, message string) (bool, error) {
	final, err := tea.NewProgram(NewConfirmProgram(theme, message)).Run()
	if err != nil {
		return false, err
	}
	c, ok := final.(ConfirmProgram)
	return ok && c.Confirmed(), nil
}
