package logging

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

const backupStamp = "20060102T150405.000"

// RotatorConfig configures a LogRotator.
type RotatorConfig struct {
	Dir        string
	BaseName   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// LogRotator is an io.Writer over Dir/BaseName. When a write would push the
// file past its size limit the file is moved aside as BaseName.<stamp>,
// optionally gzipped, and backups beyond MaxBackups or MaxAgeDays go away.
type LogRotator struct {
	cfg     RotatorConfig
	maxSize int64
	now     func() time.Time

	mu   sync.Mutex
	file *os.File
	size int64
}

func NewLogRotator(cfg RotatorConfig) (*LogRotator, error) {
	if cfg.BaseName == "" {
		cfg.BaseName = "casement.log"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	r := &LogRotator{
		cfg:     cfg,
		maxSize: int64(cfg.MaxSizeMB) << 20,
		now:     time.Now,
	}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *LogRotator) path() string {
	return filepath.Join(r.cfg.Dir, r.cfg.BaseName)
}

func (r *LogRotator) open() error {
	f, err := os.OpenFile(r.path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	r.file, r.size = f, info.Size()
	return nil
}

func (r *LogRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *LogRotator) rotate() error {
	closeErr := r.file.Close()
	r.file = nil

	backup := r.backupPath()
	if err := os.Rename(r.path(), backup); err != nil {
		return errors.Join(closeErr, fmt.Errorf("rotate log file: %w", err))
	}
	if r.cfg.Compress {
		if err := gzipFile(backup); err != nil {
			fmt.Fprintf(os.Stderr, "casement: compress %s: %v\n", backup, err)
		}
	}
	r.prune()
	return r.open()
}

// backupPath picks a free name; rotations within the same millisecond get
// a numeric suffix.
func (r *LogRotator) backupPath() string {
	base := r.path() + "." + r.now().Format(backupStamp)
	candidate := base
	for i := 1; ; i++ {
		_, errPlain := os.Stat(candidate)
		_, errGz := os.Stat(candidate + ".gz")
		if os.IsNotExist(errPlain) && os.IsNotExist(errGz) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func gzipFile(src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(src + ".gz")
	if err != nil {
		return err
	}
	zw := gzip.NewWriter(out)
	if _, err = io.Copy(zw, in); err == nil {
		err = zw.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(src + ".gz")
		return err
	}
	return os.Remove(src)
}

type backupFile struct {
	name string
	mod  time.Time
}

func (r *LogRotator) prune() {
	entries, err := os.ReadDir(r.cfg.Dir)
	if err != nil {
		return
	}
	prefix := r.cfg.BaseName + "."
	maxAge := time.Duration(r.cfg.MaxAgeDays) * 24 * time.Hour
	now := r.now()

	var keep []backupFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if maxAge > 0 && now.Sub(info.ModTime()) > maxAge {
			r.remove(e.Name())
			continue
		}
		keep = append(keep, backupFile{name: e.Name(), mod: info.ModTime()})
	}

	if r.cfg.MaxBackups <= 0 || len(keep) <= r.cfg.MaxBackups {
		return
	}
	// Newest first; names break ties since stamps sort lexically.
	slices.SortFunc(keep, func(a, b backupFile) int {
		if c := b.mod.Compare(a.mod); c != 0 {
			return c
		}
		return strings.Compare(b.name, a.name)
	})
	for _, b := range keep[r.cfg.MaxBackups:] {
		r.remove(b.name)
	}
}

func (r *LogRotator) remove(name string) {
	if err := os.Remove(filepath.Join(r.cfg.Dir, name)); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "casement: prune log %s: %v\n", name, err)
	}
}

func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
