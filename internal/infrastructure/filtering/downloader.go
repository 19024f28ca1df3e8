package filtering

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/casement/internal/logging"
)

const (
	cacheDirPerm = 0o755
	listFilePerm = 0o644
	listFileName = "blocklist.txt"
	maxListBytes = 32 << 20
	fetchTimeout = 60 * time.Second
)

// Downloader fetches a remote block list into a cache directory.
type Downloader struct {
	url        string
	cacheDir   string
	httpClient *http.Client
}

// NewDownloader creates a Downloader for url storing the list in cacheDir.
func NewDownloader(url, cacheDir string) *Downloader {
	return &Downloader{
		url:      url,
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

// CachedPath is where the downloaded list lives.
func (d *Downloader) CachedPath() string {
	return filepath.Join(d.cacheDir, listFileName)
}

// IsFresh reports whether the cached list exists and is younger than maxAge.
func (d *Downloader) IsFresh(maxAge time.Duration) bool {
	info, err := os.Stat(d.CachedPath())
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < maxAge
}

// Fetch downloads the list and atomically replaces the cached copy.
func (d *Downloader) Fetch(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx).With().
		Str("component", "filter-downloader").
		Logger()

	if err := os.MkdirAll(d.cacheDir, cacheDirPerm); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}

	log.Debug().Str("url", d.url).Msg("fetching block list")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch block list: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Msg("failed to close block list response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("block list fetch returned status %d", resp.StatusCode)
	}

	dest := d.CachedPath()
	tmp := dest + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, listFilePerm)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	n, copyErr := io.Copy(f, io.LimitReader(resp.Body, maxListBytes))
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(tmp)
		if copyErr != nil {
			return "", fmt.Errorf("failed to write block list: %w", copyErr)
		}
		return "", fmt.Errorf("failed to close block list: %w", closeErr)
	}

	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move block list into place: %w", err)
	}

	log.Info().Int64("bytes", n).Str("path", dest).Msg("block list downloaded")
	return dest, nil
}
