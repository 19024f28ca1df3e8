// Package url provides address-bar style URL handling.
package url

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// InternalScheme prefixes built-in pages such as the home page.
const InternalScheme = "casement://"

// HomeURL is the built-in start page.
const HomeURL = InternalScheme + "home"

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z\d+\-.]*:`)

// HasScheme reports whether input starts with an explicit URL scheme.
func HasScheme(input string) bool {
	return schemePattern.MatchString(input)
}

// Normalize adds https:// prefix if missing for URL-like inputs.
// Returns the input unchanged if it already has a scheme or doesn't look like a URL.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}
	if HasScheme(input) && !isHostPort(input) {
		return input
	}
	if LooksLikeURL(input) {
		if isIPHost(input) || strings.HasPrefix(input, "localhost") {
			return "http://" + input
		}
		return "https://" + input
	}
	return input
}

// LooksLikeURL checks if the input appears to be a URL (not a search query).
// Returns true for strings like "github.com", "localhost:8080/x", or any
// input with an explicit scheme.
func LooksLikeURL(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" || strings.ContainsAny(input, " \t\n") {
		return false
	}
	if HasScheme(input) && !isHostPort(input) {
		return true
	}
	host := hostOf(input)
	if host == "localhost" || net.ParseIP(host) != nil {
		return true
	}
	return strings.Contains(host, ".") && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Normalizes by stripping "www." prefix so youtube.com and www.youtube.com
// resolve to the same value.
func ExtractDomain(rawURL string) string {
	return strings.TrimPrefix(ExtractHost(rawURL), "www.")
}

// ExtractHost returns the lower-cased host of a URL without its port.
func ExtractHost(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// IsInternal reports whether rawURL points at a built-in page.
func IsInternal(rawURL string) bool {
	return strings.HasPrefix(rawURL, InternalScheme) || strings.HasPrefix(rawURL, "about:")
}

// IsWeb reports whether rawURL is an http(s) URL.
func IsWeb(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}

// hostOf returns the host part of a scheme-less input.
func hostOf(input string) string {
	host := input
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(host)
}

// isHostPort catches inputs like "localhost:8080" that parse as a scheme.
func isHostPort(input string) bool {
	i := strings.Index(input, ":")
	if i < 0 || strings.HasPrefix(input[i:], "://") {
		return false
	}
	rest := input[i+1:]
	if j := strings.IndexAny(rest, "/?#"); j >= 0 {
		rest = rest[:j]
	}
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIPHost(input string) bool {
	return net.ParseIP(hostOf(input)) != nil
}
