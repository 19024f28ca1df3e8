// Package controller owns the canonical tab and window state. All mutations
// happen on a single goroutine that handles one message at a time.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/application/usecase"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

// ErrStopped is returned by Submit once the loop has exited.
var ErrStopped = errors.New("controller stopped")

// Config holds controller settings.
type Config struct {
	// HomeURL is loaded by tabs created without a URL.
	HomeURL string
	// SearchTemplate resolves non-URL navigation input.
	SearchTemplate string
	// RestoreTimeout bounds the per-tab ready wait during restore.
	RestoreTimeout time.Duration
}

// Deps are the collaborators of the controller.
type Deps struct {
	Views     port.ContentViewFactory
	Host      port.WindowHost
	Publisher port.SnapshotPublisher
	Writer    port.SessionWriter
	Store     repository.SessionStore
	// History is optional.
	History port.HistorySink
}

type reply struct {
	result Result
	err    error
}

type envelope struct {
	ctx   context.Context
	cmd   Command
	reply chan reply
}

// Controller is the single owner of tabs and windows.
type Controller struct {
	cfg Config

	views     port.ContentViewFactory
	host      port.WindowHost
	publisher port.SnapshotPublisher
	history   port.HistorySink
	persistUC *usecase.PersistSessionUseCase
	restoreUC *usecase.RestoreSessionUseCase
	restoring atomic.Bool

	// Loop-owned state.
	table    *entity.Table
	contents map[entity.TabID]port.ContentView
	ready    map[entity.TabID]chan struct{}
	seq      uint64
	degraded bool
	fatal    error

	commands chan envelope
	events   *eventQueue
	done     chan struct{}

	shutdownOnce sync.Once
	shutdown     chan struct{}
}

// New creates a controller. Call Run to start the loop.
func New(cfg Config, deps Deps) *Controller {
	if cfg.HomeURL == "" {
		cfg.HomeURL = "about:blank"
	}
	if cfg.RestoreTimeout <= 0 {
		cfg.RestoreTimeout = usecase.DefaultRestoreTimeout
	}
	c := &Controller{
		cfg:       cfg,
		views:     deps.Views,
		host:      deps.Host,
		publisher: deps.Publisher,
		history:   deps.History,
		persistUC: usecase.NewPersistSessionUseCase(deps.Writer),
		table:     entity.NewTable(),
		contents:  make(map[entity.TabID]port.ContentView),
		ready:     make(map[entity.TabID]chan struct{}),
		commands:  make(chan envelope),
		events:    newEventQueue(),
		done:      make(chan struct{}),
		shutdown:  make(chan struct{}),
	}
	c.restoreUC = usecase.NewRestoreSessionUseCase(deps.Store, c)
	return c
}

// Run handles commands and content-view events until ctx is cancelled or a
// fatal error occurs. It tears down every content view before returning.
func (c *Controller) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "controller")
	log := logging.FromContext(ctx)
	defer close(c.done)
	defer c.teardown(ctx)

	log.Debug().Msg("controller loop started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("controller loop stopping")
			return nil
		case env := <-c.commands:
			result, err := c.handle(env.ctx, env.cmd)
			env.reply <- reply{result: result, err: err}
		case <-c.events.ready():
			for _, ev := range c.events.drain() {
				c.handleEvent(ctx, ev)
				if c.fatal != nil {
					break
				}
			}
		}
		if c.fatal != nil {
			log.Error().Err(c.fatal).Msg("controller stopping on fatal error")
			return c.fatal
		}
	}
}

// Done is closed when the loop has exited.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

// ShutdownRequested is closed when the main window asks to close.
func (c *Controller) ShutdownRequested() <-chan struct{} {
	return c.shutdown
}

// Submit hands a command to the loop and waits for its result.
func (c *Controller) Submit(ctx context.Context, cmd Command) (Result, error) {
	if cmd.Op == OpRestore {
		out, err := c.Restore(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Restored: len(out.TabIDs)}, nil
	}

	env := envelope{ctx: ctx, cmd: cmd, reply: make(chan reply, 1)}
	select {
	case c.commands <- env:
	case <-c.done:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case r := <-env.reply:
		return r.result, r.err
	case <-c.done:
		return Result{}, ErrStopped
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Restore recreates the saved session. Ready waits happen on the calling
// goroutine so the loop keeps serving events meanwhile.
// Restore only runs into an empty main window; otherwise it returns
// entity.ErrSessionActive.
func (c *Controller) Restore(ctx context.Context) (*usecase.RestoreOutput, error) {
	if !c.restoring.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("restore already running: %w", entity.ErrSessionActive)
	}
	defer c.restoring.Store(false)

	if _, err := c.Submit(ctx, Command{Op: opRestoreGuard}); err != nil {
		return nil, err
	}
	return c.restoreUC.Execute(ctx, usecase.RestoreInput{
		HomeURL:      c.cfg.HomeURL,
		ReadyTimeout: c.cfg.RestoreTimeout,
	})
}

// ReportPersistResult feeds the outcome of a deferred session write back into
// the loop. Safe to call from any goroutine.
func (c *Controller) ReportPersistResult(err error) {
	c.events.push(viewEvent{kind: evPersistResult, err: err})
}

func (c *Controller) handle(ctx context.Context, cmd Command) (Result, error) {
	log := logging.FromContext(ctx)

	result, err := c.dispatch(ctx, cmd)
	if err != nil {
		if c.fatal != nil {
			return result, err
		}
		log.Debug().Err(err).Str("op", string(cmd.Op)).Msg("command refused")
		c.notifySource(cmd.Source, err)
	}
	return result, err
}

func (c *Controller) dispatch(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Op {
	case OpCreateTab:
		return c.handleCreateTab(ctx, cmd.URL, port.CreateTabOptions{
			WindowID: cmd.WindowID,
			Pinned:   cmd.Pinned,
			Activate: cmd.Activate,
			Origin:   cmd.Origin,
		})
	case OpActivateTab:
		return c.handleActivateTab(cmd.TabID)
	case OpActivateFallback:
		return c.handleActivateFallback(ctx, cmd.WindowID)
	case OpCloseTab:
		return c.handleCloseTab(ctx, cmd.TabID)
	case OpCloseAllUnpinned:
		return c.handleCloseAllUnpinned(ctx, cmd.WindowID)
	case OpDetachTab:
		return c.handleDetachTab(ctx, cmd.TabID)
	case OpReattachTab:
		return c.handleReattachTab(ctx, cmd.TabID, cmd.WindowID)
	case OpCloseWindow:
		return c.handleCloseWindow(ctx, cmd.WindowID)
	case OpSetPinned:
		return c.handleSetPinned(ctx, cmd.TabID, cmd.Pinned)
	case OpSetMuted:
		return c.handleSetMuted(ctx, cmd.TabID, cmd.Muted)
	case OpSetZoom, OpZoomIn, OpZoomOut, OpResetZoom:
		return c.handleZoom(ctx, cmd.Op, cmd.TabID, cmd.Zoom)
	case OpNavigate:
		return c.handleNavigate(ctx, cmd.TabID, cmd.URL)
	case OpReload, OpGoBack, OpGoForward:
		return c.handleHistoryNav(ctx, cmd.Op, cmd.TabID)
	case OpSnapshot:
		snap, err := c.snapshot(c.windowOrMain(cmd.WindowID))
		return Result{Snapshot: snap}, err
	case OpResync:
		id := c.windowOrMain(cmd.WindowID)
		snap, err := c.snapshot(id)
		if err == nil {
			c.publisher.Publish(snap)
		}
		return Result{Snapshot: snap}, err
	case OpList:
		return Result{Windows: c.snapshotAll()}, nil
	case OpPersist:
		return Result{}, c.persist(ctx)
	case opValidate:
		return Result{}, c.table.Validate()
	case opRestoreGuard:
		if main := c.table.Main(); !main.IsEmpty() {
			return Result{}, fmt.Errorf("restore into main window with %d tabs: %w", main.Len(), entity.ErrSessionActive)
		}
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("unknown op %q", cmd.Op)
	}
}

func (c *Controller) windowOrMain(id entity.WindowID) entity.WindowID {
	if id == 0 {
		return entity.MainWindowID
	}
	return id
}

// notifySource re-pushes the issuing window with a notice describing err.
func (c *Controller) notifySource(source entity.WindowID, err error) {
	if source == 0 {
		return
	}
	snap, serr := c.snapshot(source)
	if serr != nil {
		return
	}
	snap.Notice = NoticeFor(err)
	c.publisher.Publish(snap)
}

// NoticeFor renders a user-facing status line for an error.
func NoticeFor(err error) string {
	switch {
	case errors.Is(err, entity.ErrPinnedTab):
		return "Pinned tabs cannot be closed. Unpin first."
	case errors.Is(err, entity.ErrMainWindowRequired):
		return "The main window must keep at least one tab and outlive detached windows."
	case errors.Is(err, entity.ErrUnknownTab):
		return "That tab no longer exists."
	case errors.Is(err, entity.ErrUnknownWindow):
		return "That window no longer exists."
	case errors.Is(err, entity.ErrPersistence):
		return "Session could not be saved; changes are kept in memory."
	case errors.Is(err, entity.ErrSessionActive):
		return "A session is already open. Restore only runs into an empty main window."
	default:
		return err.Error()
	}
}

func (c *Controller) snapshot(id entity.WindowID) (*entity.WindowSnapshot, error) {
	snap, err := c.table.SnapshotWindow(id, c.navigationFlags)
	if err != nil {
		return nil, err
	}
	c.seq++
	snap.Seq = c.seq
	snap.Degraded = c.degraded
	return snap, nil
}

func (c *Controller) snapshotAll() []*entity.WindowSnapshot {
	windows := c.table.Windows()
	out := make([]*entity.WindowSnapshot, 0, len(windows))
	for _, w := range windows {
		if snap, err := c.snapshot(w.ID); err == nil {
			out = append(out, snap)
		}
	}
	return out
}

func (c *Controller) navigationFlags(id entity.TabID) (bool, bool) {
	view, ok := c.contents[id]
	if !ok {
		return false, false
	}
	return view.CanGoBack(), view.CanGoForward()
}

func (c *Controller) publish(id entity.WindowID) {
	if snap, err := c.snapshot(id); err == nil {
		c.publisher.Publish(snap)
	}
}

func (c *Controller) publishAll() {
	for _, snap := range c.snapshotAll() {
		c.publisher.Publish(snap)
	}
}

// persist writes the main-window tab list. Failures switch the controller
// into degraded mode; the next successful write leaves it.
func (c *Controller) persist(ctx context.Context) error {
	_, err := c.persistUC.Execute(ctx, usecase.PersistInput{
		Tabs:       c.table.TabsIn(entity.MainWindowID),
		CurrentURL: c.currentURL,
	})
	c.setDegraded(ctx, err)
	return err
}

func (c *Controller) currentURL(id entity.TabID) string {
	if view, ok := c.contents[id]; ok {
		return view.URL()
	}
	return ""
}

func (c *Controller) setDegraded(ctx context.Context, err error) {
	log := logging.FromContext(ctx)
	switch {
	case err != nil && !c.degraded:
		c.degraded = true
		log.Error().Err(err).Msg("session persistence failed, continuing in memory")
		for _, w := range c.table.Windows() {
			c.publisher.Notice(w.ID, NoticeFor(entity.ErrPersistence))
		}
		c.publishAll()
	case err != nil:
		log.Warn().Err(err).Msg("session persistence still failing")
	case c.degraded:
		c.degraded = false
		log.Info().Msg("session persistence recovered")
		c.publishAll()
	}
}

func (c *Controller) requestShutdown() {
	c.shutdownOnce.Do(func() { close(c.shutdown) })
}

func (c *Controller) teardown(ctx context.Context) {
	log := logging.FromContext(ctx)
	// Use a fresh context: ctx is usually already cancelled here.
	tctx := logging.WithContext(context.Background(), *log)
	for id, view := range c.contents {
		if err := view.Destroy(tctx); err != nil {
			log.Warn().Err(err).Uint64("tab_id", uint64(id)).Msg("failed to destroy content view")
		}
		delete(c.contents, id)
	}
}

var _ port.TabOpener = (*Controller)(nil)
