// Package cli provides the casement command line and its Bubble Tea views.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/bnema/casement/internal/cli/styles"
	"github.com/bnema/casement/internal/domain/build"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/infrastructure/config"
	"github.com/bnema/casement/internal/infrastructure/ipc"
	"github.com/bnema/casement/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/casement/internal/logging"
)

// Options controls how NewApp sets up logging and configuration.
type Options struct {
	// ConfigPath overrides the XDG config file.
	ConfigPath string
	// FileLog also writes a rotated log file when the config enables it.
	FileLog bool
	// Verbose forces debug logging.
	Verbose bool
}

// App holds CLI dependencies.
type App struct {
	Manager   *config.Manager
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	db *sqlite.LazyDB

	// Context with logger
	ctx       context.Context
	logCloser io.Closer
}

// NewApp loads configuration and builds the shared CLI context.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.Verbose {
		level = "debug"
	}

	var (
		logger    zerolog.Logger
		logCloser io.Closer
	)
	if opts.FileLog && cfg.Logging.EnableFileLog {
		logger, logCloser, err = logging.NewWithFile(level, string(cfg.Logging.Format), logging.FileConfig{
			Dir:        cfg.Logging.LogDir,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		})
		if err != nil {
			// Fall back to stderr only; the controller must still start.
			logger = logging.NewFromConfigValues(level, string(cfg.Logging.Format))
			logger.Warn().Err(err).Msg("file logging disabled")
		}
	} else {
		logger = logging.NewFromConfigValues(level, string(cfg.Logging.Format))
	}
	ctx := logging.WithContext(context.Background(), logger)

	logger.Debug().
		Str("config", mgr.ConfigFile()).
		Str("socket", cfg.IPC.SocketPath).
		Msg("configuration loaded")

	return &App{
		Manager:   mgr,
		Config:    cfg,
		Theme:     styles.NewTheme(cfg.Window.Theme),
		db:        sqlite.NewLazyDB(cfg.History.DatabasePath),
		ctx:       ctx,
		logCloser: logCloser,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// History opens the history repository on first use.
func (a *App) History(ctx context.Context) (repository.HistoryRepository, error) {
	db, err := a.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	return sqlite.NewHistoryRepository(db), nil
}

// Bookmarks opens the bookmark repository on first use.
func (a *App) Bookmarks(ctx context.Context) (repository.BookmarkRepository, error) {
	db, err := a.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	return sqlite.NewBookmarkRepository(db), nil
}

// Dial connects to the running controller. A zero windowID dials as a
// command client; anything else subscribes a surface to that window.
func (a *App) Dial(ctx context.Context, windowID entity.WindowID) (*ipc.Client, error) {
	client, err := ipc.Dial(ctx, a.Config.IPC.SocketPath, windowID)
	if err != nil {
		return nil, fmt.Errorf("connect to %s (is casement serve running?): %w", a.Config.IPC.SocketPath, err)
	}
	return client, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = a.db.Close()
	}
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
	return err
}
