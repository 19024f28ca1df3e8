package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/infrastructure/ipc"
	"github.com/bnema/casement/internal/infrastructure/mcp"
	"github.com/bnema/casement/internal/logging"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the controller as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout.

Each tool call is forwarded to the running controller, so 'casement serve'
must be running. History and bookmark tools read the local database.

Example MCP client entry:
  {"command": "casement", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// lazyDispatcher dials the controller on first use and redials after the
// connection drops, so the MCP server can start before casement serve.
type lazyDispatcher struct {
	dial func(ctx context.Context) (*ipc.Client, error)

	mu     sync.Mutex
	client *ipc.Client
}

func (d *lazyDispatcher) Do(ctx context.Context, cmd controller.Command) (controller.Result, error) {
	client, err := d.connect(ctx)
	if err != nil {
		return controller.Result{}, err
	}
	return client.Do(ctx, cmd)
}

func (d *lazyDispatcher) connect(ctx context.Context) (*ipc.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.client != nil {
		select {
		case <-d.client.Done():
			d.client = nil
		default:
		}
	}
	if d.client == nil {
		c, err := d.dial(ctx)
		if err != nil {
			return nil, err
		}
		d.client = c
	}
	return d.client, nil
}

func (d *lazyDispatcher) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client != nil {
		_ = d.client.Close()
	}
}

func runMCP(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := app.Ctx()

	dispatcher := &lazyDispatcher{dial: func(ctx context.Context) (*ipc.Client, error) {
		return app.Dial(ctx, 0)
	}}
	defer dispatcher.close()

	cfg := mcp.Config{
		Dispatcher: dispatcher,
		Bookmarks:  app.Bookmarks,
		Version:    app.BuildInfo.Version,
	}
	if app.Config.History.Enabled {
		cfg.History = app.History
	}

	logging.FromContext(ctx).Debug().Msg("mcp server starting on stdio")
	return mcp.RunStdio(ctx, mcp.NewServer(cfg))
}
