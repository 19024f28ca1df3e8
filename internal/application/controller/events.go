package controller

import (
	"context"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	urlutil "github.com/bnema/casement/internal/domain/url"
	"github.com/bnema/casement/internal/logging"
)

// callbacksFor binds content-view callbacks to the event queue.
func (c *Controller) callbacksFor(id entity.TabID) *port.ContentViewCallbacks {
	return &port.ContentViewCallbacks{
		OnNavigated: func(url string) {
			c.events.push(viewEvent{kind: evNavigated, tabID: id, url: url})
		},
		OnTitleUpdated: func(title string) {
			c.events.push(viewEvent{kind: evTitleUpdated, tabID: id, title: title})
		},
		OnDOMReady: func() {
			c.events.push(viewEvent{kind: evDOMReady, tabID: id})
		},
		OnLoadFinished: func() {
			c.events.push(viewEvent{kind: evLoadFinished, tabID: id})
		},
		OnLoadFailed: func(err *entity.LoadError) {
			c.events.push(viewEvent{kind: evLoadFailed, tabID: id, loadErr: err})
		},
		OnEnterFullscreen: func() {
			c.events.push(viewEvent{kind: evFullscreenEntered, tabID: id})
		},
		OnLeaveFullscreen: func() {
			c.events.push(viewEvent{kind: evFullscreenLeft, tabID: id})
		},
	}
}

func (c *Controller) handleEvent(ctx context.Context, ev viewEvent) {
	if ev.kind == evPersistResult {
		c.setDegraded(ctx, ev.err)
		return
	}

	tab, err := c.table.Tab(ev.tabID)
	if err != nil || tab.IsClosing() {
		// Late event from a destroyed view.
		return
	}
	log := logging.FromContext(ctx)
	log.Trace().
		Uint64("tab_id", uint64(tab.ID)).
		Str("event", ev.kind.String()).
		Msg("content view event")

	switch ev.kind {
	case evNavigated:
		// Persist reads live URLs, so navigation alone never writes.
		tab.URL = ev.url
		tab.LoadError = nil
	case evTitleUpdated:
		tab.SetTitle(ev.title)
		if c.history != nil && urlutil.IsWeb(tab.URL) {
			c.history.RecordVisit(ctx, tab.URL, ev.title)
		}
	case evDOMReady, evLoadFinished:
		c.markReady(tab)
	case evLoadFailed:
		tab.LoadError = ev.loadErr
		if tab.LoadError == nil {
			tab.LoadError = &entity.LoadError{URL: tab.URL, Description: "unknown error"}
		}
		log.Debug().
			Uint64("tab_id", uint64(tab.ID)).
			Str("url", tab.LoadError.URL).
			Int("code", tab.LoadError.Code).
			Msg("load failed")
		c.markReady(tab)
	case evFullscreenEntered:
		tab.Fullscreen = true
	case evFullscreenLeft:
		tab.Fullscreen = false
	}

	c.publish(tab.WindowID)
}

// markReady completes creation on the first load outcome and releases
// anyone waiting on the tab's ready channel.
func (c *Controller) markReady(tab *entity.Tab) {
	if tab.State == entity.TabCreating {
		if err := tab.Transition(entity.TabReady); err == nil {
			_ = c.table.Settle(tab.ID)
		}
	}
	if ready, ok := c.ready[tab.ID]; ok {
		close(ready)
		delete(c.ready, tab.ID)
	}
}
