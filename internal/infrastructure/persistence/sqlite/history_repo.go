package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

const logURLMaxLen = 60

type historyRepo struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Append(ctx context.Context, entry *entity.HistoryEntry) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(entry.URL, logURLMaxLen)).Msg("appending history entry")

	visited := entry.VisitedAt
	if visited.IsZero() {
		visited = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO history (url, title, visited_at) VALUES (?, ?, ?)`,
		entry.URL, entry.Title, visited.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	if id, idErr := res.LastInsertId(); idErr == nil {
		entry.ID = id
	}
	entry.VisitedAt = time.UnixMilli(visited.UnixMilli())
	return nil
}

func (r *historyRepo) GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		return []*entity.HistoryEntry{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, url, title, visited_at FROM history
		 ORDER BY visited_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			e       entity.HistoryEntry
			visited int64
		)
		if err := rows.Scan(&e.ID, &e.URL, &e.Title, &visited); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.VisitedAt = time.UnixMilli(visited)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *historyRepo) Trim(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY visited_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("trim history: %w", err)
	}
	return res.RowsAffected()
}

func (r *historyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
