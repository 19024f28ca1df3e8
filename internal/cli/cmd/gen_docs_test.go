package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docTree() *cobra.Command {
	root := &cobra.Command{Use: "casement", Long: "Tab controller."}
	ctl := &cobra.Command{Use: "ctl", Short: "Drive the controller"}
	ctl.AddCommand(&cobra.Command{Use: "list", Short: "List windows", Run: func(*cobra.Command, []string) {}})
	root.AddCommand(ctl, &cobra.Command{Use: "serve", Short: "Run the controller", Run: func(*cobra.Command, []string) {}})
	return root
}

func TestWriteDocs_Markdown(t *testing.T) {
	dir := t.TempDir()
	root := docTree()

	files, err := writeDocs(root, "markdown", dir, "v1.0.0", time.Unix(0, 0).UTC())
	require.NoError(t, err)
	assert.Equal(t, []string{"casement.md", "casement_ctl.md", "casement_ctl_list.md", "casement_serve.md"}, files)

	page, err := os.ReadFile(filepath.Join(dir, "casement.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "### files")
	assert.Contains(t, string(page), "session.json")
	assert.Contains(t, string(page), "CASEMENT_LOG_LEVEL")

	sub, err := os.ReadFile(filepath.Join(dir, "casement_serve.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(sub), "### files")

	assert.Equal(t, "Tab controller.", root.Long, "root help is restored")
}

func TestWriteDocs_Man(t *testing.T) {
	dir := t.TempDir()

	files, err := writeDocs(docTree(), "man", dir, "v1.0.0", time.Unix(0, 0).UTC())
	require.NoError(t, err)
	assert.Contains(t, files, "casement-ctl-list.1")

	page, err := os.ReadFile(filepath.Join(dir, "casement.1"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "WINDOW KEYS")
	assert.Contains(t, string(page), "casement v1.0.0")
}

func TestWriteDocs_UnknownFormat(t *testing.T) {
	_, err := writeDocs(docTree(), "html", t.TempDir(), "dev", time.Now())
	assert.ErrorContains(t, err, "unsupported format")
}

func TestDocsDate(t *testing.T) {
	d, err := docsDate("86400")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC), d)

	_, err = docsDate("yesterday")
	assert.Error(t, err)
}

func TestDocsDir(t *testing.T) {
	dir, err := docsDir("markdown", "")
	require.NoError(t, err)
	assert.Equal(t, "docs", dir)

	dir, err = docsDir("man", "/tmp/out")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", dir)

	_, err = docsDir("pdf", "")
	assert.Error(t, err)
}
