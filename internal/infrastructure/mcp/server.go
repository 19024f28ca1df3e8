// Package mcp exposes the controller to automation clients as Model
// Context Protocol tools over stdio.
package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/repository"
)

// Dispatcher submits commands to a running controller.
type Dispatcher interface {
	Do(ctx context.Context, cmd controller.Command) (controller.Result, error)
}

// Config contains server configuration.
type Config struct {
	Dispatcher Dispatcher
	// History and Bookmarks open the sink repositories on first use. Either
	// may be nil, which leaves the matching tools out.
	History   func(ctx context.Context) (repository.HistoryRepository, error)
	Bookmarks func(ctx context.Context) (repository.BookmarkRepository, error)
	Version   string
}

const serverInstructions = `casement controls browser tabs spread across one main window and
detached windows. Call list_windows first to learn tab and window ids. Ids are never
reused; an unknown id means the tab or window was closed. Pinned tabs cannot be closed,
and the main window can only close once every detached window is gone.`

// NewServer creates an MCP server with every tool registered.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "casement",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
	})

	registerTabTools(server, cfg.Dispatcher)
	if cfg.History != nil {
		registerHistoryTools(server, cfg.History)
	}
	if cfg.Bookmarks != nil {
		registerBookmarkTools(server, cfg.Bookmarks)
	}
	return server
}

// RunStdio serves a single client on stdin/stdout until ctx is cancelled or
// the client disconnects.
func RunStdio(ctx context.Context, server *sdkmcp.Server) error {
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}
