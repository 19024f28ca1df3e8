package controller

import (
	"context"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
)

// CreateTab opens a tab. An empty url opens the home page.
func (c *Controller) CreateTab(ctx context.Context, url string, opts port.CreateTabOptions) (*port.CreatedTab, error) {
	res, err := c.Submit(ctx, Command{
		Op:       OpCreateTab,
		URL:      url,
		WindowID: opts.WindowID,
		Pinned:   opts.Pinned,
		Activate: opts.Activate,
		Origin:   opts.Origin,
	})
	if err != nil {
		return nil, err
	}
	return &port.CreatedTab{ID: res.TabID, Ready: res.Ready}, nil
}

// ActivateTab focuses a tab in its window.
func (c *Controller) ActivateTab(ctx context.Context, id entity.TabID) error {
	_, err := c.Submit(ctx, Command{Op: OpActivateTab, TabID: id})
	return err
}

// ActivateFallback focuses the first tab of a window or opens a default one.
func (c *Controller) ActivateFallback(ctx context.Context, windowID entity.WindowID) (entity.TabID, error) {
	res, err := c.Submit(ctx, Command{Op: OpActivateFallback, WindowID: windowID})
	return res.TabID, err
}

// CloseTab closes an unpinned tab.
func (c *Controller) CloseTab(ctx context.Context, id entity.TabID) error {
	_, err := c.Submit(ctx, Command{Op: OpCloseTab, TabID: id})
	return err
}

// CloseAllUnpinned closes every unpinned tab of a window.
func (c *Controller) CloseAllUnpinned(ctx context.Context, windowID entity.WindowID) error {
	_, err := c.Submit(ctx, Command{Op: OpCloseAllUnpinned, WindowID: windowID})
	return err
}

// DetachTab moves a tab into a new window and returns its id.
func (c *Controller) DetachTab(ctx context.Context, id entity.TabID) (entity.WindowID, error) {
	res, err := c.Submit(ctx, Command{Op: OpDetachTab, TabID: id})
	return res.WindowID, err
}

// ReattachTab moves a tab into target, or the main window when target is 0.
func (c *Controller) ReattachTab(ctx context.Context, id entity.TabID, target entity.WindowID) error {
	_, err := c.Submit(ctx, Command{Op: OpReattachTab, TabID: id, WindowID: target})
	return err
}

// CloseWindow closes a window. Closing the main window requests shutdown.
func (c *Controller) CloseWindow(ctx context.Context, windowID entity.WindowID) error {
	_, err := c.Submit(ctx, Command{Op: OpCloseWindow, WindowID: windowID})
	return err
}

func (c *Controller) SetPinned(ctx context.Context, id entity.TabID, pinned bool) error {
	_, err := c.Submit(ctx, Command{Op: OpSetPinned, TabID: id, Pinned: pinned})
	return err
}

func (c *Controller) SetMuted(ctx context.Context, id entity.TabID, muted bool) error {
	_, err := c.Submit(ctx, Command{Op: OpSetMuted, TabID: id, Muted: muted})
	return err
}

// SetZoom sets a tab's zoom factor and returns the clamped value.
func (c *Controller) SetZoom(ctx context.Context, id entity.TabID, factor float64) (float64, error) {
	res, err := c.Submit(ctx, Command{Op: OpSetZoom, TabID: id, Zoom: factor})
	return res.Zoom, err
}

func (c *Controller) ZoomIn(ctx context.Context, id entity.TabID) (float64, error) {
	res, err := c.Submit(ctx, Command{Op: OpZoomIn, TabID: id})
	return res.Zoom, err
}

func (c *Controller) ZoomOut(ctx context.Context, id entity.TabID) (float64, error) {
	res, err := c.Submit(ctx, Command{Op: OpZoomOut, TabID: id})
	return res.Zoom, err
}

func (c *Controller) ResetZoom(ctx context.Context, id entity.TabID) (float64, error) {
	res, err := c.Submit(ctx, Command{Op: OpResetZoom, TabID: id})
	return res.Zoom, err
}

// Navigate loads address-bar input in a tab.
func (c *Controller) Navigate(ctx context.Context, id entity.TabID, input string) error {
	_, err := c.Submit(ctx, Command{Op: OpNavigate, TabID: id, URL: input})
	return err
}

func (c *Controller) Reload(ctx context.Context, id entity.TabID) error {
	_, err := c.Submit(ctx, Command{Op: OpReload, TabID: id})
	return err
}

func (c *Controller) GoBack(ctx context.Context, id entity.TabID) error {
	_, err := c.Submit(ctx, Command{Op: OpGoBack, TabID: id})
	return err
}

func (c *Controller) GoForward(ctx context.Context, id entity.TabID) error {
	_, err := c.Submit(ctx, Command{Op: OpGoForward, TabID: id})
	return err
}

// Snapshot returns the current view of a window (0 = main).
func (c *Controller) Snapshot(ctx context.Context, windowID entity.WindowID) (*entity.WindowSnapshot, error) {
	res, err := c.Submit(ctx, Command{Op: OpSnapshot, WindowID: windowID})
	return res.Snapshot, err
}

// Resync re-pushes a window's snapshot to its surfaces.
func (c *Controller) Resync(ctx context.Context, windowID entity.WindowID) error {
	_, err := c.Submit(ctx, Command{Op: OpResync, WindowID: windowID})
	return err
}

// List returns snapshots of every open window.
func (c *Controller) List(ctx context.Context) ([]*entity.WindowSnapshot, error) {
	res, err := c.Submit(ctx, Command{Op: OpList})
	return res.Windows, err
}

// Persist writes the main-window tab list now.
func (c *Controller) Persist(ctx context.Context) error {
	_, err := c.Submit(ctx, Command{Op: OpPersist})
	return err
}

// Validate checks the canonical table from inside the loop.
func (c *Controller) Validate(ctx context.Context) error {
	_, err := c.Submit(ctx, Command{Op: opValidate})
	return err
}
