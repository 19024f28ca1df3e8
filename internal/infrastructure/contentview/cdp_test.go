package contentview

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

func TestLoadErrorFrom(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		desc string
	}{
		{
			name: "name not resolved",
			err:  errors.New("page load error net::ERR_NAME_NOT_RESOLVED"),
			code: -105,
			desc: "net::ERR_NAME_NOT_RESOLVED",
		},
		{
			name: "blocked by filter",
			err:  errors.New("page load error net::ERR_BLOCKED_BY_CLIENT"),
			code: -20,
			desc: "net::ERR_BLOCKED_BY_CLIENT",
		},
		{
			name: "unknown failure",
			err:  errors.New("context deadline exceeded"),
			code: 0,
			desc: "context deadline exceeded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := loadErrorFrom("https://a.test/", tt.err)
			assert.Equal(t, "https://a.test/", got.URL)
			assert.Equal(t, tt.code, got.Code)
			assert.Equal(t, tt.desc, got.Description)
		})
	}
}

func TestFrameURL(t *testing.T) {
	f := &cdp.Frame{URL: "https://a.test/page", URLFragment: "#top"}
	assert.Equal(t, "https://a.test/page#top", frameURL(f))
}

func TestBuildAllocatorOptions(t *testing.T) {
	base := len(buildAllocatorOptions(CDPOptions{}))
	withAll := buildAllocatorOptions(CDPOptions{
		ExecPath:    "/usr/bin/chromium",
		UserDataDir: t.TempDir(),
		Headless:    true,
		Flags:       map[string]any{"--no-sandbox": true},
	})
	assert.Equal(t, base+3, len(withAll))
}

func TestMuteScript(t *testing.T) {
	assert.Contains(t, muteScript(true), "const muted = true;")
	assert.Contains(t, muteScript(false), "const muted = false;")
}

func TestTaskQueue_RunsInOrder(t *testing.T) {
	q := newTaskQueue()
	done := make(chan struct{})
	defer close(done)
	go q.run(done)

	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 50 {
		q.submit(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 50
	}, time.Second, 2*time.Millisecond)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestTaskQueue_StopsOnDone(t *testing.T) {
	q := newTaskQueue()
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		q.run(done)
		close(finished)
	}()

	close(done)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("queue worker did not stop")
	}
}

type staticFilter struct{ blocked string }

func (f staticFilter) Decide(url, _ string) port.Decision {
	if url == f.blocked {
		return port.Decision{Block: true, Reason: "test"}
	}
	return port.Decision{}
}

// TestCDPView_Chrome drives a real browser. Set CASEMENT_CDP_TEST=1 to run it.
func TestCDPView_Chrome(t *testing.T) {
	if os.Getenv("CASEMENT_CDP_TEST") == "" {
		t.Skip("set CASEMENT_CDP_TEST=1 to run against a local Chrome")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Fixture</title></head><body>ok</body></html>"))
	}))
	defer srv.Close()

	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	f, err := NewCDPFactory(ctx, CDPOptions{
		Headless: true,
		Flags:    map[string]any{"no-sandbox": true, "disable-gpu": true},
		Filter:   staticFilter{blocked: srv.URL + "/blocked"},
	})
	require.NoError(t, err)
	defer func() { _ = f.Close(ctx) }()

	cv, err := f.Create(ctx, 1, entity.MainWindowID)
	require.NoError(t, err)

	log := &eventLog{}
	cv.SetCallbacks(log.callbacks())

	require.NoError(t, cv.Load(ctx, srv.URL+"/"))
	require.Eventually(t, func() bool {
		for _, ev := range log.snapshot() {
			if ev == "load_finished" {
				return true
			}
		}
		return false
	}, 10*time.Second, 20*time.Millisecond)
	assert.Equal(t, srv.URL+"/", cv.URL())
	assert.Equal(t, "Fixture", cv.Title())
	require.NoError(t, cv.SetZoomFactor(ctx, 1.5))
	require.NoError(t, cv.SetAudioMuted(ctx, true))

	require.NoError(t, cv.Load(ctx, srv.URL+"/blocked"))
	require.Eventually(t, func() bool {
		log.mu.Lock()
		defer log.mu.Unlock()
		return len(log.errors) == 1
	}, 10*time.Second, 20*time.Millisecond)
	assert.Equal(t, -20, log.errors[0].Code)

	require.NoError(t, cv.Destroy(ctx))
	assert.ErrorIs(t, cv.Reload(ctx), ErrDestroyed)
}
