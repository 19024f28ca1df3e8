package url

import (
	"net/url"
	"strings"
)

// DefaultSearchTemplate is used when no search engine is configured.
const DefaultSearchTemplate = "https://duckduckgo.com/?q=%s"

// Resolve turns address-bar input into a navigable URL: URL-like input is
// normalized, anything else becomes a search with the given template.
// Blank input resolves to about:blank.
func Resolve(input, searchTemplate string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return "about:blank"
	}

	if LooksLikeURL(input) {
		return Normalize(input)
	}

	if searchTemplate == "" {
		searchTemplate = DefaultSearchTemplate
	}
	return strings.Replace(searchTemplate, "%s", url.QueryEscape(input), 1)
}
