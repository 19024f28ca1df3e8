// Package autocomplete builds completion candidates for the navigate prompt.
package autocomplete

import "strings"

// StripProtocol removes http:// or https:// prefix from a URL for matching.
func StripProtocol(url string) string {
	if strings.HasPrefix(url, "https://") {
		return url[8:]
	}
	if strings.HasPrefix(url, "http://") {
		return url[7:]
	}
	return url
}

// Candidates expands urls into prompt completions. Each URL contributes
// itself, its form without scheme and its form without "www.", so typing a
// bare host still completes. Order follows urls and duplicates are dropped.
// A positive limit caps the result.
func Candidates(urls []string, limit int) []string {
	seen := make(map[string]struct{}, len(urls)*2)
	out := make([]string, 0, len(urls)*2)

	add := func(s string) bool {
		if s == "" {
			return true
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return true
		}
		seen[key] = struct{}{}
		out = append(out, s)
		return limit <= 0 || len(out) < limit
	}

	for _, u := range urls {
		u = strings.TrimSpace(u)
		stripped := StripProtocol(u)
		if !add(u) || !add(stripped) || !add(strings.TrimPrefix(stripped, "www.")) {
			break
		}
	}
	return out
}
