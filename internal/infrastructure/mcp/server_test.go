package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/domain/repository/mocks"
)

type fakeDispatcher struct {
	mu     sync.Mutex
	cmds   []controller.Command
	result controller.Result
	err    error
}

func (f *fakeDispatcher) Do(_ context.Context, cmd controller.Command) (controller.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cmds = append(f.cmds, cmd)
	return f.result, f.err
}

func (f *fakeDispatcher) last(t *testing.T) controller.Command {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.cmds)
	return f.cmds[len(f.cmds)-1]
}

func connect(t *testing.T, cfg Config) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	server := NewServer(cfg)
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test", Version: "v0"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func call(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	return res
}

func text(t *testing.T, res *sdkmcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestNewServer_ListsTools(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		extra []string
	}{
		{name: "controller only", cfg: Config{Dispatcher: &fakeDispatcher{}}},
		{
			name: "with sinks",
			cfg: Config{
				Dispatcher: &fakeDispatcher{},
				History: func(context.Context) (repository.HistoryRepository, error) {
					return nil, errors.New("unused")
				},
				Bookmarks: func(context.Context) (repository.BookmarkRepository, error) {
					return nil, errors.New("unused")
				},
			},
			extra: []string{"add_bookmark", "list_bookmarks", "recent_history"},
		},
	}

	base := []string{
		"activate_tab", "close_tab", "close_unpinned_tabs", "close_window", "detach_tab",
		"go_back", "go_forward", "list_windows", "navigate", "open_tab", "reattach_tab",
		"reload_tab", "restore_session", "set_muted", "set_pinned", "set_zoom",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := connect(t, tt.cfg)
			res, err := cs.ListTools(context.Background(), nil)
			require.NoError(t, err)

			var names []string
			for _, tool := range res.Tools {
				names = append(names, tool.Name)
			}
			want := append(append([]string(nil), base...), tt.extra...)
			sort.Strings(want)
			sort.Strings(names)
			assert.Equal(t, want, names)
		})
	}
}

func TestOpenTab_DefaultsToMainWindow(t *testing.T) {
	d := &fakeDispatcher{result: controller.Result{TabID: 4, WindowID: entity.MainWindowID}}
	cs := connect(t, Config{Dispatcher: d})

	res := call(t, cs, "open_tab", map[string]any{"url": "example.com", "activate": true})
	require.False(t, res.IsError, text(t, res))

	cmd := d.last(t)
	assert.Equal(t, controller.OpCreateTab, cmd.Op)
	assert.Equal(t, entity.MainWindowID, cmd.WindowID)
	assert.Equal(t, "example.com", cmd.URL)
	assert.True(t, cmd.Activate)
	assert.Equal(t, "mcp", cmd.Origin)

	var out TabOutput
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &out))
	assert.Equal(t, uint64(4), out.TabID)
}

func TestTabTools_MapInputs(t *testing.T) {
	tests := []struct {
		tool string
		args map[string]any
		want controller.Command
	}{
		{"close_tab", map[string]any{"tab_id": 3}, controller.Command{Op: controller.OpCloseTab, TabID: 3}},
		{"set_pinned", map[string]any{"tab_id": 3, "pinned": true}, controller.Command{Op: controller.OpSetPinned, TabID: 3, Pinned: true}},
		{"set_zoom", map[string]any{"tab_id": 2, "zoom": 1.5}, controller.Command{Op: controller.OpSetZoom, TabID: 2, Zoom: 1.5}},
		{"close_unpinned_tabs", map[string]any{}, controller.Command{Op: controller.OpCloseAllUnpinned, WindowID: entity.MainWindowID}},
		{"reattach_tab", map[string]any{"tab_id": 5}, controller.Command{Op: controller.OpReattachTab, TabID: 5, WindowID: entity.MainWindowID}},
		{"close_window", map[string]any{"window_id": 2}, controller.Command{Op: controller.OpCloseWindow, WindowID: 2}},
		{"restore_session", map[string]any{}, controller.Command{Op: controller.OpRestore}},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			d := &fakeDispatcher{}
			cs := connect(t, Config{Dispatcher: d})

			res := call(t, cs, tt.tool, tt.args)
			require.False(t, res.IsError, text(t, res))

			want := tt.want
			want.Origin = "mcp"
			assert.Equal(t, want, d.last(t))
		})
	}
}

func TestListWindows(t *testing.T) {
	d := &fakeDispatcher{result: controller.Result{Windows: []*entity.WindowSnapshot{{
		WindowID:    entity.MainWindowID,
		IsMain:      true,
		ActiveTabID: 1,
		Tabs:        []entity.TabView{{ID: 1, URL: "https://a.test/", Active: true}},
	}}}}
	cs := connect(t, Config{Dispatcher: d})

	res := call(t, cs, "list_windows", map[string]any{})
	require.False(t, res.IsError)
	assert.Equal(t, controller.OpList, d.last(t).Op)
	assert.Contains(t, text(t, res), "https://a.test/")
}

func TestTabTools_ErrorsCarryCodes(t *testing.T) {
	d := &fakeDispatcher{err: entity.ErrPinnedTab}
	cs := connect(t, Config{Dispatcher: d})

	res := call(t, cs, "close_tab", map[string]any{"tab_id": 1})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "PINNED_TAB")
}

func TestRecentHistory(t *testing.T) {
	repo := mocks.NewMockHistoryRepository(t)
	repo.EXPECT().GetRecent(mock.Anything, defaultHistoryLimit).Return([]*entity.HistoryEntry{
		{ID: 1, URL: "https://a.test/", Title: "A"},
	}, nil).Once()

	cs := connect(t, Config{
		Dispatcher: &fakeDispatcher{},
		History: func(context.Context) (repository.HistoryRepository, error) {
			return repo, nil
		},
	})

	res := call(t, cs, "recent_history", map[string]any{})
	require.False(t, res.IsError, text(t, res))
	assert.Contains(t, text(t, res), "https://a.test/")
}

func TestAddBookmark(t *testing.T) {
	repo := mocks.NewMockBookmarkRepository(t)
	repo.EXPECT().Save(mock.Anything, mock.MatchedBy(func(b *entity.Bookmark) bool {
		return b.URL == "https://a.test/" && b.Title == "A"
	})).Return(nil).Once()

	cs := connect(t, Config{
		Dispatcher: &fakeDispatcher{},
		Bookmarks: func(context.Context) (repository.BookmarkRepository, error) {
			return repo, nil
		},
	})

	res := call(t, cs, "add_bookmark", map[string]any{"url": "https://a.test/", "title": "A"})
	require.False(t, res.IsError, text(t, res))
}

func TestMapError(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{entity.ErrPinnedTab, "PINNED_TAB"},
		{entity.ErrMainWindowRequired, "MAIN_WINDOW_REQUIRED"},
		{entity.ErrUnknownTab, "UNKNOWN_TAB"},
		{entity.ErrUnknownWindow, "UNKNOWN_WINDOW"},
		{entity.ErrPersistence, "PERSISTENCE"},
		{controller.ErrStopped, "UNAVAILABLE"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			var apiErr *APIError
			require.ErrorAs(t, MapError(tt.err), &apiErr)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.NotEmpty(t, apiErr.RecoveryHint)
		})
	}

	assert.NoError(t, MapError(nil))
	other := errors.New("boom")
	assert.Same(t, other, MapError(other))
}
