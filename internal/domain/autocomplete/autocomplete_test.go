package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://go.dev/doc", "go.dev/doc"},
		{"http://example.com", "example.com"},
		{"casement://home", "casement://home"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripProtocol(tt.in), tt.in)
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name  string
		urls  []string
		limit int
		want  []string
	}{
		{
			name: "expands scheme and www",
			urls: []string{"https://www.example.com/"},
			want: []string{"https://www.example.com/", "www.example.com/", "example.com/"},
		},
		{
			name: "drops duplicates case-insensitively",
			urls: []string{"https://go.dev/", "HTTPS://GO.DEV/", "http://go.dev/"},
			want: []string{"https://go.dev/", "go.dev/", "http://go.dev/"},
		},
		{
			name: "internal urls stay whole",
			urls: []string{"casement://home"},
			want: []string{"casement://home"},
		},
		{
			name:  "limit caps output",
			urls:  []string{"https://a.test/", "https://b.test/"},
			limit: 3,
			want:  []string{"https://a.test/", "a.test/", "https://b.test/"},
		},
		{
			name: "blank entries are skipped",
			urls: []string{"", "  "},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.urls, tt.limit))
		})
	}
}
