// Package build describes the running binary.
package build

import "strings"

const repoURL = "https://github.com/bnema/casement"

// Info is filled from ldflags at link time.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// ShortCommit is the first seven characters of Commit.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// IsRelease reports whether the binary was built from a tagged version.
func (i Info) IsRelease() bool {
	return i.Version != "" && i.Version != "dev" && !strings.Contains(i.Version, "-dirty")
}

func Contributors() []string {
	return []string{"bnema"}
}

func RepoURL() string {
	return repoURL
}
