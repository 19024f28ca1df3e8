package filtering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/infrastructure/cache"
)

func TestParseHostList(t *testing.T) {
	input := `# comment line
0.0.0.0 ads.example.com
127.0.0.1 localhost
127.0.0.1 tracker.example.net # trailing
||metrics.example.org^
plain.example.io
! adblock comment
/path/rule
not-a-host
10.0.0.1 internal.example.com
`
	hosts, err := ParseHostList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ads.example.com",
		"tracker.example.net",
		"metrics.example.org",
		"plain.example.io",
	}, hosts)
}

func TestFilter_Decide(t *testing.T) {
	f := New(Config{
		Enabled:    true,
		BlockHosts: []string{"ads.test", "YouTube.com"},
	})

	tests := []struct {
		name  string
		url   string
		block bool
	}{
		{name: "blocked host", url: "https://ads.test/banner", block: true},
		{name: "blocked subdomain", url: "https://cdn.ads.test/x.js", block: true},
		{name: "host with port", url: "http://ads.test:8080/", block: true},
		{name: "unrelated host", url: "https://example.com/", block: false},
		{name: "suffix is not a parent", url: "https://badads.test/", block: false},
		{name: "default allow wins", url: "https://www.youtube.com/watch", block: false},
		{name: "internal scheme", url: "casement://home", block: false},
		{name: "unparseable", url: "://", block: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := f.Decide(tt.url, "Script")
			assert.Equal(t, tt.block, d.Block)
		})
	}

	d := f.Decide("https://cdn.ads.test/", "Document")
	assert.Equal(t, "ads.test", d.Reason)
}

func TestFilter_DisabledAllowsEverything(t *testing.T) {
	f := New(Config{Enabled: false, BlockHosts: []string{"ads.test"}})
	assert.False(t, f.Decide("https://ads.test/", "Document").Block)
	assert.Equal(t, StateDisabled, f.Status().State)
}

func TestFilter_AllowOnce(t *testing.T) {
	f := New(Config{Enabled: true, BlockHosts: []string{"ads.test"}})

	f.AllowOnce("https://ads.test/page")
	assert.False(t, f.Decide("https://ads.test/page", "Document").Block)
	assert.True(t, f.Decide("https://ads.test/page", "Document").Block)
}

func TestFilter_ApplyReloadsRules(t *testing.T) {
	var seen []FilterState
	f := New(Config{Enabled: true, BlockHosts: []string{"a.test"}})
	f.SetStatusCallback(func(st FilterStatus) { seen = append(seen, st.State) })

	f.Apply(Config{Enabled: true, BlockHosts: []string{"b.test"}})
	assert.False(t, f.Decide("https://a.test/", "Document").Block)
	assert.True(t, f.Decide("https://b.test/", "Document").Block)

	f.Apply(Config{Enabled: false})
	assert.Equal(t, []FilterState{StateActive, StateDisabled}, seen)
}

func TestFilter_MemoizesHostVerdicts(t *testing.T) {
	f := New(Config{Enabled: true, BlockHosts: []string{"ads.test"}})

	for i := 0; i < 3; i++ {
		d := f.Decide("https://cdn.ads.test/x.js", "Script")
		assert.True(t, d.Block)
		assert.Equal(t, "ads.test", d.Reason)
	}
	lru, ok := f.rules.Load().verdicts.(*cache.LRU[string, hostVerdict])
	require.True(t, ok)
	hits, misses := lru.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)

	f.Apply(Config{Enabled: true})
	assert.False(t, f.Decide("https://cdn.ads.test/x.js", "Script").Block, "reload drops memoized verdicts")
}

func TestFilter_LoadList(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, "0.0.0.0 listed.test\n")
	}))
	defer server.Close()

	cfg := Config{
		Enabled:    true,
		ListURL:    server.URL,
		ListMaxAge: time.Hour,
		CacheDir:   t.TempDir(),
	}
	f := New(cfg)
	require.NoError(t, f.LoadList(context.Background()))
	assert.True(t, f.Decide("https://ads.listed.test/", "Image").Block)
	assert.Equal(t, StateActive, f.Status().State)
	assert.Equal(t, 1, f.Status().BlockRules)

	// A fresh cache is not downloaded again.
	require.NoError(t, f.LoadList(context.Background()))
	assert.Equal(t, int32(1), hits.Load())

	// Reapplying the same list URL keeps listed hosts.
	f.Apply(cfg)
	assert.True(t, f.Decide("https://listed.test/", "Image").Block)
}

func TestFilter_LoadListFailureWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := New(Config{Enabled: true, ListURL: server.URL, CacheDir: t.TempDir()})
	require.Error(t, f.LoadList(context.Background()))
	assert.Equal(t, StateError, f.Status().State)
}

func TestBypassRegistry_Expires(t *testing.T) {
	r := NewBypassRegistry()
	now := time.Now()
	r.now = func() time.Time { return now }

	r.AllowOnce("https://a.test/")
	assert.Equal(t, 1, r.Count())

	now = now.Add(2 * BypassTTL)
	assert.False(t, r.Consume("https://a.test/"))
	assert.Zero(t, r.Count())

	r.AllowOnce("https://b.test/")
	r.Clear()
	assert.False(t, r.Consume("https://b.test/"))
}
