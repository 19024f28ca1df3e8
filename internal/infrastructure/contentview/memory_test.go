package contentview

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/application/port"
	portmocks "github.com/bnema/casement/internal/application/port/mocks"
	"github.com/bnema/casement/internal/domain/entity"
)

type eventLog struct {
	mu     sync.Mutex
	events []string
	errors []*entity.LoadError
}

func (l *eventLog) add(ev string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func (l *eventLog) callbacks() *port.ContentViewCallbacks {
	return &port.ContentViewCallbacks{
		OnNavigated:    func(url string) { l.add("navigated " + url) },
		OnTitleUpdated: func(title string) { l.add("title " + title) },
		OnDOMReady:     func() { l.add("dom_ready") },
		OnLoadFinished: func() { l.add("load_finished") },
		OnLoadFailed: func(err *entity.LoadError) {
			l.mu.Lock()
			l.errors = append(l.errors, err)
			l.mu.Unlock()
			l.add("load_failed")
		},
		OnEnterFullscreen: func() { l.add("fullscreen on") },
		OnLeaveFullscreen: func() { l.add("fullscreen off") },
	}
}

func newView(t *testing.T, opts MemoryOptions) (*MemoryFactory, *MemoryView, *eventLog) {
	t.Helper()
	f := NewMemoryFactory(opts)
	cv, err := f.Create(context.Background(), 1, entity.MainWindowID)
	require.NoError(t, err)
	v := cv.(*MemoryView)
	log := &eventLog{}
	v.SetCallbacks(log.callbacks())
	return f, v, log
}

func waitFor(t *testing.T, log *eventLog, n int) []string {
	t.Helper()
	require.Eventually(t, func() bool { return len(log.snapshot()) >= n }, time.Second, 2*time.Millisecond)
	return log.snapshot()
}

func TestMemoryView_LoadReportsEventsInOrder(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{})

	require.NoError(t, v.Load(context.Background(), "https://www.example.com/page"))

	events := waitFor(t, log, 4)
	assert.Equal(t, []string{
		"navigated https://www.example.com/page",
		"title example.com",
		"dom_ready",
		"load_finished",
	}, events)
	assert.Equal(t, "https://www.example.com/page", v.URL())
	assert.Equal(t, "example.com", v.Title())
}

func TestMemoryView_InternalPageTitle(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{})

	require.NoError(t, v.Load(context.Background(), "casement://home"))
	waitFor(t, log, 4)
	assert.Equal(t, "Home", v.Title())
}

func TestMemoryView_InvalidHostFails(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{})

	require.NoError(t, v.Load(context.Background(), "https://nowhere.invalid/"))

	assert.Equal(t, []string{"load_failed"}, waitFor(t, log, 1))
	log.mu.Lock()
	defer log.mu.Unlock()
	require.Len(t, log.errors, 1)
	assert.Equal(t, -105, log.errors[0].Code)
	assert.Equal(t, "https://nowhere.invalid/", log.errors[0].URL)
	assert.Empty(t, v.URL())
}

func TestMemoryView_FilterBlocksDocument(t *testing.T) {
	filter := portmocks.NewMockRequestFilter(t)
	filter.EXPECT().Decide("https://ads.test/", "Document").
		Return(port.Decision{Block: true, Reason: "ads.test"}).Once()

	_, v, log := newView(t, MemoryOptions{Filter: filter})
	require.NoError(t, v.Load(context.Background(), "https://ads.test/"))

	assert.Equal(t, []string{"load_failed"}, waitFor(t, log, 1))
	log.mu.Lock()
	defer log.mu.Unlock()
	assert.Equal(t, -20, log.errors[0].Code)
}

func TestMemoryView_FilterAllowsDocument(t *testing.T) {
	filter := portmocks.NewMockRequestFilter(t)
	filter.EXPECT().Decide(mock.Anything, "Document").Return(port.Decision{}).Once()

	_, v, log := newView(t, MemoryOptions{Filter: filter})
	require.NoError(t, v.Load(context.Background(), "https://ok.test/"))
	waitFor(t, log, 4)
}

func TestMemoryView_StopAbortsPendingLoad(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{LoadDelay: 50 * time.Millisecond})

	require.NoError(t, v.Load(context.Background(), "https://slow.test/"))
	require.NoError(t, v.Stop(context.Background()))

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, log.snapshot())
	assert.Empty(t, v.URL())
}

func TestMemoryView_NewerLoadSupersedes(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{LoadDelay: 20 * time.Millisecond})

	require.NoError(t, v.Load(context.Background(), "https://first.test/"))
	require.NoError(t, v.Load(context.Background(), "https://second.test/"))

	events := waitFor(t, log, 4)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, "navigated https://second.test/", events[0])
	assert.Len(t, log.snapshot(), 4)
}

func TestMemoryView_HangNeverReports(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{Hang: true})

	require.NoError(t, v.Load(context.Background(), "https://a.test/"))
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, log.snapshot())
}

func TestMemoryView_BackAndForward(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{})
	ctx := context.Background()

	require.NoError(t, v.Load(ctx, "https://a.test/"))
	waitFor(t, log, 4)
	assert.False(t, v.CanGoBack())

	require.NoError(t, v.Load(ctx, "https://b.test/"))
	waitFor(t, log, 8)
	assert.True(t, v.CanGoBack())
	assert.False(t, v.CanGoForward())

	require.NoError(t, v.GoBack(ctx))
	waitFor(t, log, 12)
	assert.Equal(t, "https://a.test/", v.URL())
	assert.True(t, v.CanGoForward())

	require.NoError(t, v.GoForward(ctx))
	waitFor(t, log, 16)
	assert.Equal(t, "https://b.test/", v.URL())
	assert.False(t, v.CanGoForward())
}

func TestMemoryView_DestroySilencesCallbacks(t *testing.T) {
	f, v, log := newView(t, MemoryOptions{LoadDelay: 20 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, v.Load(ctx, "https://a.test/"))
	require.NoError(t, v.Destroy(ctx))
	time.Sleep(40 * time.Millisecond)

	assert.Empty(t, log.snapshot())
	assert.True(t, v.IsDestroyed())
	assert.Zero(t, f.Len())
	assert.ErrorIs(t, v.Load(ctx, "https://b.test/"), ErrDestroyed)
	assert.ErrorIs(t, v.Destroy(ctx), ErrDestroyed)
}

func TestMemoryView_PresentationState(t *testing.T) {
	_, v, log := newView(t, MemoryOptions{})
	ctx := context.Background()

	require.NoError(t, v.SetZoomFactor(ctx, 1.5))
	require.NoError(t, v.SetAudioMuted(ctx, true))
	require.NoError(t, v.Reparent(ctx, 7))
	assert.Equal(t, 1.5, v.Zoom())
	assert.True(t, v.Muted())
	assert.Equal(t, entity.WindowID(7), v.WindowID())

	v.SetFullscreen(true)
	v.SetFullscreen(false)
	v.SetPageTitle("Custom")
	assert.Equal(t, []string{"fullscreen on", "fullscreen off", "title Custom"}, log.snapshot())
}

func TestMemoryFactory_LimitAndClose(t *testing.T) {
	f := NewMemoryFactory(MemoryOptions{MaxViews: 2})
	ctx := context.Background()

	_, err := f.Create(ctx, 1, entity.MainWindowID)
	require.NoError(t, err)
	_, err = f.Create(ctx, 2, entity.MainWindowID)
	require.NoError(t, err)
	_, err = f.Create(ctx, 3, entity.MainWindowID)
	require.ErrorIs(t, err, ErrViewLimit)

	v, ok := f.View(2)
	require.True(t, ok)

	require.NoError(t, f.Close(ctx))
	assert.Zero(t, f.Len())
	assert.True(t, v.IsDestroyed())
}
