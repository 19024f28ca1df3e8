package surface

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/infrastructure/ipc"
)

const commandTimeout = 5 * time.Second

// Client is the surface's link to the controller: intents go out through Do
// and pushes come back through Next.
type Client interface {
	Do(ctx context.Context, cmd controller.Command) (controller.Result, error)
	Next(ctx context.Context) (ipc.Message, error)
}

// Options configure a surface model.
type Options struct {
	WindowID entity.WindowID
	Theme    *styles.Theme
	// MaxTitleWidth caps the title column; zero uses the terminal width.
	MaxTitleWidth int
	// Suggestions complete the navigate prompt; tab accepts one.
	Suggestions []string
}

type (
	snapshotMsg  struct{ snap *entity.WindowSnapshot }
	noticeMsg    struct{ text string }
	closedMsg    struct{}
	streamErrMsg struct{ err error }
	resultMsg    struct {
		op     controller.Op
		result controller.Result
		err    error
	}
)

// Model is the bubbletea program of one window surface. It keeps a read
// mirror of the last pushed snapshot and never mutates it locally.
type Model struct {
	ctx    context.Context
	client Client
	opts   Options

	theme   *styles.Theme
	keys    KeyMap
	help    help.Model
	input   textinput.Model
	loading styles.LoadingModel

	snap    *entity.WindowSnapshot
	cursor  entity.TabID
	status  string
	editing bool
	width   int
	closed  bool
	err     error
}

// NewModel creates a surface for opts.WindowID.
func NewModel(ctx context.Context, client Client, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewThemeFromPalette(styles.DarkPalette())
	}
	input := textinput.New()
	input.Placeholder = "url or search"
	input.Prompt = "open: "
	if len(opts.Suggestions) > 0 {
		input.ShowSuggestions = true
		input.SetSuggestions(opts.Suggestions)
	}

	return Model{
		ctx:     ctx,
		client:  client,
		opts:    opts,
		theme:   theme,
		keys:    DefaultKeyMap(),
		help:    styles.NewStyledHelp(theme),
		input:   input,
		loading: styles.NewLoading(theme, "waiting for controller"),
		width:   80,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, m.listen())
}

// Snapshot returns the mirrored snapshot.
func (m Model) Snapshot() *entity.WindowSnapshot {
	return m.snap
}

// Closed reports whether the controller destroyed this window.
func (m Model) Closed() bool {
	return m.closed
}

// Err returns the error that ended the push stream, if any.
func (m Model) Err() error {
	return m.err
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.snap != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.apply(msg.snap)
		return m, m.listen()

	case noticeMsg:
		m.status = msg.text
		return m, m.listen()

	case closedMsg:
		m.closed = true
		return m, tea.Quit

	case streamErrMsg:
		m.err = msg.err
		return m, tea.Quit

	case resultMsg:
		return m.handleResult(msg), nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// apply replaces the mirror and keeps the cursor on a tab that still exists.
func (m *Model) apply(snap *entity.WindowSnapshot) {
	m.snap = snap
	if snap.Notice != "" {
		m.status = snap.Notice
	}
	for _, tv := range snap.Tabs {
		if tv.ID == m.cursor {
			return
		}
	}
	m.cursor = snap.ActiveTabID
}

func (m Model) handleResult(msg resultMsg) Model {
	if msg.err != nil {
		// Controller refusals come back as notices on the push stream.
		var remote *ipc.Error
		if !errors.As(msg.err, &remote) {
			m.status = msg.err.Error()
		}
		return m
	}
	if msg.op == controller.OpCreateTab && msg.result.TabID != 0 {
		m.cursor = msg.result.TabID
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.NewTab):
		return m, m.dispatch(controller.Command{Op: controller.OpCreateTab, WindowID: m.opts.WindowID, Activate: true})
	case key.Matches(msg, m.keys.CloseUnpinned):
		return m, m.dispatch(controller.Command{Op: controller.OpCloseAllUnpinned, WindowID: m.opts.WindowID})
	case key.Matches(msg, m.keys.CloseWindow):
		return m, m.dispatch(controller.Command{Op: controller.OpCloseWindow, WindowID: m.opts.WindowID})
	}

	tv, ok := m.selected()
	if !ok {
		return m, nil
	}

	var cmd controller.Command
	switch {
	case key.Matches(msg, m.keys.Activate):
		cmd = controller.Command{Op: controller.OpActivateTab}
	case key.Matches(msg, m.keys.Close):
		cmd = controller.Command{Op: controller.OpCloseTab}
	case key.Matches(msg, m.keys.Pin):
		cmd = controller.Command{Op: controller.OpSetPinned, Pinned: !tv.Pinned}
	case key.Matches(msg, m.keys.Mute):
		cmd = controller.Command{Op: controller.OpSetMuted, Muted: !tv.Muted}
	case key.Matches(msg, m.keys.Detach):
		cmd = controller.Command{Op: controller.OpDetachTab}
	case key.Matches(msg, m.keys.Reattach):
		cmd = controller.Command{Op: controller.OpReattachTab, WindowID: entity.MainWindowID}
	case key.Matches(msg, m.keys.ZoomIn):
		cmd = controller.Command{Op: controller.OpZoomIn}
	case key.Matches(msg, m.keys.ZoomOut):
		cmd = controller.Command{Op: controller.OpZoomOut}
	case key.Matches(msg, m.keys.ZoomReset):
		cmd = controller.Command{Op: controller.OpResetZoom}
	case key.Matches(msg, m.keys.Reload):
		cmd = controller.Command{Op: controller.OpReload}
	case key.Matches(msg, m.keys.Back):
		cmd = controller.Command{Op: controller.OpGoBack}
	case key.Matches(msg, m.keys.Forward):
		cmd = controller.Command{Op: controller.OpGoForward}
	case key.Matches(msg, m.keys.Navigate):
		m.editing = true
		m.input.SetValue(tv.URL)
		m.input.CursorEnd()
		focus := m.input.Focus()
		return m, focus
	default:
		return m, nil
	}
	cmd.TabID = tv.ID
	return m, m.dispatch(cmd)
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		value := m.input.Value()
		tv, ok := m.selected()
		if !ok || value == "" {
			return m, nil
		}
		return m, m.dispatch(controller.Command{Op: controller.OpNavigate, TabID: tv.ID, URL: value})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) moveCursor(delta int) {
	if m.snap == nil || len(m.snap.Tabs) == 0 {
		return
	}
	idx := 0
	for i, tv := range m.snap.Tabs {
		if tv.ID == m.cursor {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.snap.Tabs)) % len(m.snap.Tabs)
	m.cursor = m.snap.Tabs[idx].ID
}

func (m Model) selected() (entity.TabView, bool) {
	if m.snap == nil {
		return entity.TabView{}, false
	}
	for _, tv := range m.snap.Tabs {
		if tv.ID == m.cursor {
			return tv, true
		}
	}
	return entity.TabView{}, false
}

// dispatch forwards an intent. The mirror changes only when the resulting
// snapshot is pushed back.
func (m Model) dispatch(cmd controller.Command) tea.Cmd {
	client, parent := m.client, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, commandTimeout)
		defer cancel()
		res, err := client.Do(ctx, cmd)
		return resultMsg{op: cmd.Op, result: res, err: err}
	}
}

func (m Model) listen() tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		msg, err := client.Next(ctx)
		if err != nil {
			return streamErrMsg{err: err}
		}
		switch msg.Type {
		case ipc.MsgSnapshot:
			if msg.Snapshot == nil {
				return streamErrMsg{err: ipc.ErrBadRequest}
			}
			return snapshotMsg{snap: msg.Snapshot}
		case ipc.MsgNotice:
			return noticeMsg{text: msg.Notice}
		case ipc.MsgClosed:
			return closedMsg{}
		default:
			return streamErrMsg{err: ipc.ErrBadRequest}
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.snap == nil {
		return m.loading.View() + "\n"
	}

	width := m.width
	if m.opts.MaxTitleWidth > 0 {
		width = min(width, m.opts.MaxTitleWidth+rowPrefixWidth)
	}

	// The status line shows notices; the mirror itself is rendered as pushed.
	snap := *m.snap
	snap.Notice = ""
	out := render(&snap, m.theme, width, m.cursor)

	if m.status != "" {
		out += m.theme.StatusLine.Render(styles.IconWarning+" "+m.status) + "\n"
	}
	if m.editing {
		out += m.input.View() + "\n"
	}
	return out + m.help.View(m.keys)
}
