package url

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		template string
		want     string
	}{
		{"blank", "   ", "", "about:blank"},
		{"url-like", "example.com", "", "https://example.com"},
		{"default search", "go channels", "", "https://duckduckgo.com/?q=go+channels"},
		{"custom search", "a&b", "https://www.google.com/search?q=%s", "https://www.google.com/search?q=a%26b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.input, tt.template); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
