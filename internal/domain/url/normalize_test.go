package url

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"https kept", "https://example.com", "https://example.com"},
		{"http kept", "http://example.com/a", "http://example.com/a"},
		{"internal kept", "casement://home", "casement://home"},
		{"about kept", "about:blank", "about:blank"},
		{"bare domain", "example.com", "https://example.com"},
		{"domain with path", "github.com/bnema", "https://github.com/bnema"},
		{"trimmed", "  example.com  ", "https://example.com"},
		{"localhost with port", "localhost:8080/x", "http://localhost:8080/x"},
		{"ip address", "192.168.1.1", "http://192.168.1.1"},
		{"search query untouched", "hello world", "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"github.com", true},
		{"https://x", true},
		{"localhost", true},
		{"localhost:3000", true},
		{"10.0.0.1:22", true},
		{"golang", false},
		{"golang tutorial", false},
		{"file.", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := LooksLikeURL(tt.input); got != tt.want {
			t.Errorf("LooksLikeURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExtractDomain(t *testing.T) {
	tests := map[string]string{
		"https://www.youtube.com/watch?v=1": "youtube.com",
		"https://Sub.Example.com:8443/":     "sub.example.com",
		"not a url":                         "",
		"":                                  "",
	}
	for in, want := range tests {
		if got := ExtractDomain(in); got != want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsInternal(t *testing.T) {
	if !IsInternal(HomeURL) {
		t.Error("home should be internal")
	}
	if IsInternal("https://example.com") {
		t.Error("web url reported internal")
	}
}
