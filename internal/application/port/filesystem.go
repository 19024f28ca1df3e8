package port

import "context"

// FileSystem is the disk access purge needs.
type FileSystem interface {
	Exists(ctx context.Context, path string) (bool, error)
	// GetSize is the byte size of a file or, for a directory, of every file
	// below it. A missing path has size zero.
	GetSize(ctx context.Context, path string) (int64, error)
	RemoveAll(ctx context.Context, path string) error
}
