package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
)

type bookmarkRepo struct {
	db *sql.DB
}

// NewBookmarkRepository creates a new SQLite-backed bookmark repository.
func NewBookmarkRepository(db *sql.DB) repository.BookmarkRepository {
	return &bookmarkRepo{db: db}
}

func (r *bookmarkRepo) Save(ctx context.Context, b *entity.Bookmark) error {
	created := b.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO bookmarks (url, title, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET title = excluded.title`,
		b.URL, b.Title, created.UnixMilli())
	if err != nil {
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}

func (r *bookmarkRepo) GetAll(ctx context.Context) ([]*entity.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, title, created_at FROM bookmarks ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Bookmark
	for rows.Next() {
		var (
			b       entity.Bookmark
			created int64
		)
		if err := rows.Scan(&b.ID, &b.URL, &b.Title, &created); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		b.CreatedAt = time.UnixMilli(created)
		out = append(out, &b)
	}
	return out, rows.Err()
}

func (r *bookmarkRepo) Delete(ctx context.Context, url string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE url = ?`, url); err != nil {
		return fmt.Errorf("delete bookmark: %w", err)
	}
	return nil
}
