package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envLogFormat, "json")

	logger := NewFromEnv()
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	cfg.Level = zerolog.DebugLevel

	ctx := WithContext(context.Background(), New(cfg))
	ctx = WithComponent(ctx, "controller")
	ctx = WithTabID(ctx, 7)
	ctx = WithWindowID(ctx, 2)

	FromContext(ctx).Debug().Msg("hello")

	out := buf.String()
	assert.Contains(t, out, `"component":"controller"`)
	assert.Contains(t, out, `"tab_id":7`)
	assert.Contains(t, out, `"window_id":2`)
}

func TestFromContext_NoLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		FromContext(context.Background()).Info().Msg("dropped")
	})
}

func TestLogRotator_RotatesAndPrunes(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, BaseName: "test.log", MaxBackups: 1})
	require.NoError(t, err)
	r.maxSize = 16
	defer r.Close()

	for i := 0; i < 3; i++ {
		_, err := r.Write([]byte(strings.Repeat("x", 12) + "\n"))
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "test.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Equal(t, 13, len(data))
}

func TestLogRotator_CompressesBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, BaseName: "c.log", Compress: true})
	require.NoError(t, err)
	r.maxSize = 8
	defer r.Close()

	_, err = r.Write([]byte("first line\n"))
	require.NoError(t, err)
	_, err = r.Write([]byte("second\n"))
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "c.log.*.gz"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	plain, err := filepath.Glob(filepath.Join(dir, "c.log.*[0-9]"))
	require.NoError(t, err)
	assert.Empty(t, plain)
}
