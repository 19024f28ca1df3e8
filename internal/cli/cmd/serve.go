package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/cli"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/infrastructure/config"
	"github.com/bnema/casement/internal/infrastructure/contentview"
	"github.com/bnema/casement/internal/infrastructure/filtering"
	"github.com/bnema/casement/internal/infrastructure/history"
	"github.com/bnema/casement/internal/infrastructure/ipc"
	"github.com/bnema/casement/internal/infrastructure/sessionstore"
	"github.com/bnema/casement/internal/infrastructure/snapshot"
	"github.com/bnema/casement/internal/infrastructure/windowhost"
	"github.com/bnema/casement/internal/logging"
)

const shutdownTimeout = 10 * time.Second

var (
	serveNoRestore bool
	serveBackend   string
)

var serveCmd = &cobra.Command{
	Use:   "serve [url...]",
	Short: "Run the tab controller",
	Long: `Run the controller that owns every tab and window.

The saved session is restored first, then any URLs given on the command line
open as new tabs in the main window. The controller listens on a unix socket
for window surfaces and commands, and exits when the main window is closed or
on SIGINT/SIGTERM.

Examples:
  casement serve                          # Restore the last session
  casement serve example.com              # Restore, then open example.com
  casement serve --no-restore --backend memory`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveNoRestore, "no-restore", false, "start with a single home tab instead of the saved session")
	serveCmd.Flags().StringVar(&serveBackend, "backend", "", "content view backend: memory or cdp (overrides config)")
}

func runServe(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	cfg := app.Config
	if serveBackend != "" {
		cfg.ContentView.Backend = config.Backend(serveBackend)
	}

	ctx, stop := signal.NotifyContext(app.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	store := sessionstore.New(cfg.Session.File)
	if err := store.Lock(); err != nil {
		return fmt.Errorf("claim session file: %w", err)
	}
	defer func() { _ = store.Unlock() }()

	filterCfg, err := cfg.FilterConfig()
	if err != nil {
		return fmt.Errorf("filter config: %w", err)
	}
	filter := filtering.New(filterCfg)
	filter.SetStatusCallback(func(st filtering.FilterStatus) {
		log.Info().
			Str("state", string(st.State)).
			Int("block_rules", st.BlockRules).
			Str("message", st.Message).
			Msg("request filter status")
	})

	views, err := newContentViews(ctx, cfg, filter)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := views.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("content views close failed")
		}
	}()

	var sink *history.AsyncSink
	if cfg.History.Enabled {
		sink = history.NewAsyncSink(app.History, history.Options{MaxEntries: cfg.History.MaxEntries})
		sink.Start(ctx)
		defer sink.Close()
	}

	snapshots := snapshot.NewService(store, cfg.Session.SnapshotIntervalMs)
	snapshots.Start(ctx)

	launcher := windowhost.NewLauncher(windowhost.Options{
		Template: cfg.Window.Launcher,
		Socket:   cfg.IPC.SocketPath,
	})
	defer launcher.Close(context.WithoutCancel(ctx))

	hub := ipc.NewHub()
	deps := controller.Deps{
		Views:     views,
		Host:      launcher,
		Publisher: hub,
		Writer:    snapshots,
		Store:     store,
	}
	// A nil *AsyncSink must not become a non-nil interface.
	if sink != nil {
		deps.History = sink
	}
	ctrl := controller.New(controller.Config{
		HomeURL:        cfg.Session.HomeURL,
		SearchTemplate: cfg.Session.SearchTemplate,
		RestoreTimeout: cfg.RestoreTimeout(),
	}, deps)
	snapshots.SetResultHandler(ctrl.ReportPersistResult)

	server := ipc.NewServer(cfg.IPC.SocketPath, hub, ctrl)
	if err := server.Start(ctx); err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			return fmt.Errorf("casement is already running on %s", cfg.IPC.SocketPath)
		}
		return err
	}
	defer server.Stop()

	watchConfig(ctx, app, filter)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return ctrl.Run(gctx)
	})
	g.Go(func() error {
		if err := filter.LoadList(gctx); err != nil {
			log.Warn().Err(err).Msg("block list not loaded")
		}
		return nil
	})
	g.Go(func() error {
		return startSession(gctx, ctrl, snapshots, args)
	})

	log.Info().
		Str("socket", cfg.IPC.SocketPath).
		Str("backend", string(cfg.ContentView.Backend)).
		Str("session", store.Path()).
		Msg("casement running")

	select {
	case <-ctx.Done():
		log.Info().Msg("signal received, shutting down")
	case <-ctrl.ShutdownRequested():
		log.Info().Msg("main window closed, shutting down")
	case <-ctrl.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	// The final state reaches the writer while views are still alive.
	if _, err := ctrl.Submit(shutdownCtx, controller.Command{Op: controller.OpPersist, Origin: "shutdown"}); err != nil &&
		!errors.Is(err, controller.ErrStopped) {
		log.Warn().Err(err).Msg("final persist failed")
	}
	cancelRun()
	runErr := g.Wait()

	if err := snapshots.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final session save failed")
	}
	if sink != nil {
		if err := sink.Flush(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("history flush failed")
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("controller: %w", runErr)
	}
	return nil
}

// startSession restores the saved tabs, opens any command-line URLs and only
// then lets session writes through.
func startSession(ctx context.Context, ctrl *controller.Controller, snapshots *snapshot.Service, urls []string) error {
	log := logging.FromContext(ctx)

	if serveNoRestore {
		if _, err := ctrl.Submit(ctx, controller.Command{Op: controller.OpCreateTab, WindowID: entity.MainWindowID, Activate: true, Origin: "startup"}); err != nil {
			return fmt.Errorf("open home tab: %w", err)
		}
	} else {
		out, err := ctrl.Restore(ctx)
		if err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		log.Info().Int("tabs", len(out.TabIDs)).Msg("session restored")
	}

	for _, url := range urls {
		if _, err := ctrl.Submit(ctx, controller.Command{
			Op:       controller.OpCreateTab,
			WindowID: entity.MainWindowID,
			URL:      url,
			Activate: true,
			Origin:   "startup",
		}); err != nil {
			log.Warn().Err(err).Str("url", logging.TruncateURL(url, 80)).Msg("open startup url failed")
		}
	}

	snapshots.SetReady()
	if _, err := ctrl.Submit(ctx, controller.Command{Op: controller.OpPersist, Origin: "startup"}); err != nil &&
		!errors.Is(err, entity.ErrPersistence) {
		return err
	}
	return nil
}

// newContentViews builds the configured rendering backend.
func newContentViews(ctx context.Context, cfg *config.Config, filter port.RequestFilter) (port.ContentViewFactory, error) {
	switch cfg.ContentView.Backend {
	case config.BackendCDP:
		factory, err := contentview.NewCDPFactory(ctx, contentview.CDPOptions{
			RemoteURL:    cfg.ContentView.CDP.RemoteURL,
			ExecPath:     cfg.ContentView.CDP.ExecPath,
			UserDataDir:  cfg.ContentView.CDP.UserDataDir,
			Headless:     cfg.ContentView.CDP.Headless,
			Flags:        cfg.CDPFlags(),
			StartTimeout: time.Duration(cfg.ContentView.CDP.StartTimeoutSeconds) * time.Second,
			Filter:       filter,
		})
		if err != nil {
			return nil, fmt.Errorf("start chrome: %w", err)
		}
		return factory, nil
	case config.BackendMemory:
		return contentview.NewMemoryFactory(contentview.MemoryOptions{
			LoadDelay: time.Duration(cfg.ContentView.LoadDelayMs) * time.Millisecond,
			MaxViews:  cfg.ContentView.MaxViews,
			Filter:    filter,
		}), nil
	default:
		return nil, fmt.Errorf("unknown content view backend %q", cfg.ContentView.Backend)
	}
}

// watchConfig applies filter edits from the config file without a restart.
func watchConfig(ctx context.Context, app *cli.App, filter *filtering.Filter) {
	log := logging.FromContext(ctx)
	app.Manager.OnConfigChange(func(cfg *config.Config) {
		fc, err := cfg.FilterConfig()
		if err != nil {
			log.Warn().Err(err).Msg("filter config not applied")
			return
		}
		filter.Apply(fc)
		log.Info().Msg("filter rules reloaded from config")
	})
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch disabled")
	}
}
