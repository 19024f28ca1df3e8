package controller_test

import (
	"context"
	"sync"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
)

// fakeView is an in-memory content view. With auto set, Load reports
// navigation and load completion immediately.
type fakeView struct {
	mu        sync.Mutex
	tabID     entity.TabID
	windowID  entity.WindowID
	url       string
	title     string
	auto      bool
	back      []string
	forward   []string
	calls     []string
	reparents []entity.WindowID
	zoom      float64
	muted     bool
	destroyed bool
	callbacks *port.ContentViewCallbacks
}

func (v *fakeView) Load(_ context.Context, url string) error {
	v.mu.Lock()
	if v.url != "" {
		v.back = append(v.back, v.url)
		v.forward = nil
	}
	v.url = url
	v.calls = append(v.calls, "load")
	auto, cb := v.auto, v.callbacks
	v.mu.Unlock()

	if auto && cb != nil {
		cb.OnNavigated(url)
		cb.OnLoadFinished()
	}
	return nil
}

func (v *fakeView) Reload(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "reload")
	return nil
}

func (v *fakeView) Stop(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "stop")
	return nil
}

func (v *fakeView) GoBack(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "back")
	if len(v.back) == 0 {
		return nil
	}
	v.forward = append(v.forward, v.url)
	v.url = v.back[len(v.back)-1]
	v.back = v.back[:len(v.back)-1]
	return nil
}

func (v *fakeView) GoForward(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "forward")
	if len(v.forward) == 0 {
		return nil
	}
	v.back = append(v.back, v.url)
	v.url = v.forward[len(v.forward)-1]
	v.forward = v.forward[:len(v.forward)-1]
	return nil
}

func (v *fakeView) CanGoBack() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.back) > 0
}

func (v *fakeView) CanGoForward() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.forward) > 0
}

func (v *fakeView) URL() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.url
}

func (v *fakeView) Title() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.title
}

func (v *fakeView) SetZoomFactor(_ context.Context, factor float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = factor
	return nil
}

func (v *fakeView) SetAudioMuted(_ context.Context, muted bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.muted = muted
	return nil
}

func (v *fakeView) Reparent(_ context.Context, windowID entity.WindowID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.windowID = windowID
	v.reparents = append(v.reparents, windowID)
	return nil
}

func (v *fakeView) Destroy(context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, "destroy")
	v.destroyed = true
	return nil
}

func (v *fakeView) SetCallbacks(callbacks *port.ContentViewCallbacks) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.callbacks = callbacks
}

// fire invokes a callback the way a backend would, outside the view lock.
func (v *fakeView) fire(fn func(cb *port.ContentViewCallbacks)) {
	v.mu.Lock()
	cb := v.callbacks
	v.mu.Unlock()
	if cb != nil {
		fn(cb)
	}
}

// navigate simulates an in-page navigation started by the page itself.
func (v *fakeView) navigate(url string) {
	v.mu.Lock()
	v.back = append(v.back, v.url)
	v.url = url
	v.mu.Unlock()
	v.fire(func(cb *port.ContentViewCallbacks) { cb.OnNavigated(url) })
}

func (v *fakeView) snapshotCalls() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.calls...)
}

func (v *fakeView) isDestroyed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.destroyed
}

type fakeFactory struct {
	mu    sync.Mutex
	auto  bool
	fail  error
	views map[entity.TabID]*fakeView
}

func newFakeFactory(auto bool) *fakeFactory {
	return &fakeFactory{auto: auto, views: make(map[entity.TabID]*fakeView)}
}

func (f *fakeFactory) Create(_ context.Context, tabID entity.TabID, windowID entity.WindowID) (port.ContentView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	v := &fakeView{tabID: tabID, windowID: windowID, auto: f.auto}
	f.views[tabID] = v
	return v, nil
}

func (f *fakeFactory) Close(context.Context) error { return nil }

func (f *fakeFactory) view(id entity.TabID) *fakeView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.views[id]
}

func (f *fakeFactory) setFail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = err
}

// recordingPublisher keeps the latest snapshot per window.
type recordingPublisher struct {
	mu      sync.Mutex
	latest  map[entity.WindowID]*entity.WindowSnapshot
	notices map[entity.WindowID][]string
	closed  []entity.WindowID
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{
		latest:  make(map[entity.WindowID]*entity.WindowSnapshot),
		notices: make(map[entity.WindowID][]string),
	}
}

func (p *recordingPublisher) Publish(snap *entity.WindowSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.latest[snap.WindowID] = snap
}

func (p *recordingPublisher) Notice(windowID entity.WindowID, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notices[windowID] = append(p.notices[windowID], msg)
}

func (p *recordingPublisher) WindowClosed(windowID entity.WindowID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = append(p.closed, windowID)
	delete(p.latest, windowID)
}

func (p *recordingPublisher) last(windowID entity.WindowID) *entity.WindowSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest[windowID]
}

func (p *recordingPublisher) noticesFor(windowID entity.WindowID) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.notices[windowID]...)
}

func (p *recordingPublisher) closedWindows() []entity.WindowID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]entity.WindowID(nil), p.closed...)
}

var (
	_ port.ContentView        = (*fakeView)(nil)
	_ port.ContentViewFactory = (*fakeFactory)(nil)
	_ port.SnapshotPublisher  = (*recordingPublisher)(nil)
)
