package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Field names shared by every log line that refers to a tab or a window.
const (
	FieldComponent = "component"
	FieldTabID     = "tab_id"
	FieldWindowID  = "window_id"
)

// FromContext returns the logger carried by ctx, or a disabled one.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

func withField(ctx context.Context, add func(zerolog.Context) zerolog.Context) context.Context {
	return add(FromContext(ctx).With()).Logger().WithContext(ctx)
}

func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Str(FieldComponent, component)
	})
}

func WithTabID(ctx context.Context, id uint64) context.Context {
	return withField(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Uint64(FieldTabID, id)
	})
}

func WithWindowID(ctx context.Context, id uint64) context.Context {
	return withField(ctx, func(c zerolog.Context) zerolog.Context {
		return c.Uint64(FieldWindowID, id)
	})
}

// TruncateURL shortens url to at most maxLen runes for log fields.
func TruncateURL(url string, maxLen int) string {
	r := []rune(url)
	if maxLen <= 3 || len(r) <= maxLen {
		return url
	}
	return string(r[:maxLen-3]) + "..."
}
