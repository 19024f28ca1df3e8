package styles

import (
	"fmt"
	"time"
)

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// AccentBadge renders a badge with accent color.
func (t *Theme) AccentBadge(text string) string {
	return t.Badge.Render(text)
}

// ZoomBadge renders a zoom factor as a percentage, or nothing at 100%.
func (t *Theme) ZoomBadge(zoom float64) string {
	if zoom == 0 || zoom == 1 {
		return ""
	}
	return t.BadgeMuted.Render(FormatZoom(zoom))
}

// FormatZoom formats a zoom factor as a percentage.
func FormatZoom(zoom float64) string {
	return fmt.Sprintf("%.0f%%", zoom*100)
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTime(time.Now(), tm)
}

func relativeTime(now, tm time.Time) string {
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "m")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "h")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "d")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/(24*7)), "w")
	case diff < 365*24*time.Hour:
		return plural(int(diff.Hours()/(24*30)), "mo")
	default:
		return plural(int(diff.Hours()/(24*365)), "y")
	}
}

func plural(n int, unit string) string {
	return fmt.Sprintf("%d%s ago", n, unit)
}
