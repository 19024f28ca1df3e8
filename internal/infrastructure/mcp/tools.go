package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
)

const defaultHistoryLimit = 20

type (
	// NoInput is the input of tools that take no arguments.
	NoInput struct{}

	TabInput struct {
		TabID uint64 `json:"tab_id" jsonschema:"id of the tab"`
	}
	WindowInput struct {
		WindowID uint64 `json:"window_id" jsonschema:"id of the window; 1 is the main window"`
	}
	OpenTabInput struct {
		URL      string `json:"url,omitempty" jsonschema:"URL or search text; empty opens the home page"`
		WindowID uint64 `json:"window_id,omitempty" jsonschema:"target window; defaults to the main window"`
		Activate bool   `json:"activate,omitempty" jsonschema:"focus the new tab"`
	}
	NavigateInput struct {
		TabID uint64 `json:"tab_id" jsonschema:"id of the tab"`
		URL   string `json:"url" jsonschema:"URL or search text"`
	}
	PinInput struct {
		TabID  uint64 `json:"tab_id" jsonschema:"id of the tab"`
		Pinned bool   `json:"pinned" jsonschema:"pinned tabs cannot be closed"`
	}
	MuteInput struct {
		TabID uint64 `json:"tab_id" jsonschema:"id of the tab"`
		Muted bool   `json:"muted" jsonschema:"mute audio"`
	}
	ZoomInput struct {
		TabID uint64  `json:"tab_id" jsonschema:"id of the tab"`
		Zoom  float64 `json:"zoom" jsonschema:"zoom factor between 0.25 and 3.0"`
	}
	ReattachInput struct {
		TabID    uint64 `json:"tab_id" jsonschema:"id of the detached tab"`
		WindowID uint64 `json:"window_id,omitempty" jsonschema:"target window; defaults to the main window"`
	}
	HistoryInput struct {
		Limit int `json:"limit,omitempty" jsonschema:"maximum entries, newest first"`
	}
	BookmarkInput struct {
		URL   string `json:"url" jsonschema:"URL to bookmark"`
		Title string `json:"title,omitempty" jsonschema:"display title"`
	}
)

// TabOutput is the result of a single-tab command.
type TabOutput struct {
	TabID    uint64  `json:"tab_id,omitempty"`
	WindowID uint64  `json:"window_id,omitempty"`
	Zoom     float64 `json:"zoom,omitempty"`
	Restored int     `json:"restored,omitempty"`
}

// jsonResult returns v as indented JSON text content.
func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}

// tabTool builds a handler that maps its input to one controller command.
func tabTool[In any](d Dispatcher, build func(In) controller.Command) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		cmd := build(in)
		cmd.Origin = "mcp"
		res, err := d.Do(ctx, cmd)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return jsonResult(TabOutput{
			TabID:    uint64(res.TabID),
			WindowID: uint64(res.WindowID),
			Zoom:     res.Zoom,
			Restored: res.Restored,
		})
	}
}

func windowOrMain(id uint64) entity.WindowID {
	if id == 0 {
		return entity.MainWindowID
	}
	return entity.WindowID(id)
}

func registerTabTools(server *sdkmcp.Server, d Dispatcher) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_windows",
		Description: "List every window with its tabs in order, the active tab and per-tab state",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoInput) (*sdkmcp.CallToolResult, any, error) {
		res, err := d.Do(ctx, controller.Command{Op: controller.OpList, Origin: "mcp"})
		if err != nil {
			return nil, nil, MapError(err)
		}
		return jsonResult(map[string]any{"windows": res.Windows})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_tab",
		Description: "Open a new tab at the end of a window",
	}, tabTool(d, func(in OpenTabInput) controller.Command {
		return controller.Command{Op: controller.OpCreateTab, URL: in.URL, WindowID: windowOrMain(in.WindowID), Activate: in.Activate}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "activate_tab",
		Description: "Focus a tab in its window",
	}, tabTool(d, func(in TabInput) controller.Command {
		return controller.Command{Op: controller.OpActivateTab, TabID: entity.TabID(in.TabID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_tab",
		Description: "Close an unpinned tab",
	}, tabTool(d, func(in TabInput) controller.Command {
		return controller.Command{Op: controller.OpCloseTab, TabID: entity.TabID(in.TabID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_unpinned_tabs",
		Description: "Close every unpinned tab in a window",
	}, tabTool(d, func(in WindowInput) controller.Command {
		return controller.Command{Op: controller.OpCloseAllUnpinned, WindowID: windowOrMain(in.WindowID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "navigate",
		Description: "Load a URL or search text in a tab",
	}, tabTool(d, func(in NavigateInput) controller.Command {
		return controller.Command{Op: controller.OpNavigate, TabID: entity.TabID(in.TabID), URL: in.URL}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_pinned",
		Description: "Pin or unpin a tab",
	}, tabTool(d, func(in PinInput) controller.Command {
		return controller.Command{Op: controller.OpSetPinned, TabID: entity.TabID(in.TabID), Pinned: in.Pinned}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_muted",
		Description: "Mute or unmute a tab",
	}, tabTool(d, func(in MuteInput) controller.Command {
		return controller.Command{Op: controller.OpSetMuted, TabID: entity.TabID(in.TabID), Muted: in.Muted}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_zoom",
		Description: "Set a tab's zoom factor; the applied value is returned",
	}, tabTool(d, func(in ZoomInput) controller.Command {
		return controller.Command{Op: controller.OpSetZoom, TabID: entity.TabID(in.TabID), Zoom: in.Zoom}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "detach_tab",
		Description: "Move a tab into a new detached window",
	}, tabTool(d, func(in TabInput) controller.Command {
		return controller.Command{Op: controller.OpDetachTab, TabID: entity.TabID(in.TabID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reattach_tab",
		Description: "Move a tab back into another window, by default the main window",
	}, tabTool(d, func(in ReattachInput) controller.Command {
		return controller.Command{Op: controller.OpReattachTab, TabID: entity.TabID(in.TabID), WindowID: windowOrMain(in.WindowID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "close_window",
		Description: "Close a window; closing the main window shuts casement down",
	}, tabTool(d, func(in WindowInput) controller.Command {
		return controller.Command{Op: controller.OpCloseWindow, WindowID: entity.WindowID(in.WindowID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reload_tab",
		Description: "Reload a tab",
	}, tabTool(d, func(in TabInput) controller.Command {
		return controller.Command{Op: controller.OpReload, TabID: entity.TabID(in.TabID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "go_back",
		Description: "Go back in a tab's navigation history",
	}, tabTool(d, func(in TabInput) controller.Command {
		return controller.Command{Op: controller.OpGoBack, TabID: entity.TabID(in.TabID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "go_forward",
		Description: "Go forward in a tab's navigation history",
	}, tabTool(d, func(in TabInput) controller.Command {
		return controller.Command{Op: controller.OpGoForward, TabID: entity.TabID(in.TabID)}
	}))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "restore_session",
		Description: "Reopen the tabs of the saved session in the main window. Refused with SESSION_ACTIVE while the main window has tabs",
	}, tabTool(d, func(NoInput) controller.Command {
		return controller.Command{Op: controller.OpRestore}
	}))
}

func registerHistoryTools(server *sdkmcp.Server, open func(context.Context) (repository.HistoryRepository, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_history",
		Description: "List recently visited pages, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in HistoryInput) (*sdkmcp.CallToolResult, any, error) {
		repo, err := open(ctx)
		if err != nil {
			return nil, nil, err
		}
		limit := in.Limit
		if limit <= 0 {
			limit = defaultHistoryLimit
		}
		entries, err := repo.GetRecent(ctx, limit)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(map[string]any{"entries": entries})
	})
}

func registerBookmarkTools(server *sdkmcp.Server, open func(context.Context) (repository.BookmarkRepository, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_bookmarks",
		Description: "List saved bookmarks, oldest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ NoInput) (*sdkmcp.CallToolResult, any, error) {
		repo, err := open(ctx)
		if err != nil {
			return nil, nil, err
		}
		all, err := repo.GetAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(map[string]any{"bookmarks": all})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_bookmark",
		Description: "Save a bookmark, or retitle an existing one",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in BookmarkInput) (*sdkmcp.CallToolResult, any, error) {
		repo, err := open(ctx)
		if err != nil {
			return nil, nil, err
		}
		b := &entity.Bookmark{URL: in.URL, Title: in.Title}
		if err := repo.Save(ctx, b); err != nil {
			return nil, nil, err
		}
		return jsonResult(b)
	})
}
