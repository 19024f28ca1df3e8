package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/casement/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func openTestDB(t *testing.T) (context.Context, *sqlite.LazyDB) {
	t.Helper()
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "history.db"))
	t.Cleanup(func() { _ = lazy.Close() })
	return ctx, lazy
}

func TestHistoryRepository_AppendAndGetRecent(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewHistoryRepository(db)

	base := time.Now().Add(-time.Hour)
	for i, u := range []string{"https://a.test/", "https://b.test/", "https://c.test/"} {
		e := &entity.HistoryEntry{URL: u, Title: u, VisitedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, repo.Append(ctx, e))
		assert.NotZero(t, e.ID)
	}

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "https://c.test/", recent[0].URL)
	assert.Equal(t, "https://b.test/", recent[1].URL)
	assert.WithinDuration(t, base.Add(2*time.Minute), recent[0].VisitedAt, time.Millisecond)

	empty, err := repo.GetRecent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHistoryRepository_RepeatedVisitsAreSeparateRows(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewHistoryRepository(db)

	require.NoError(t, repo.Append(ctx, entity.NewHistoryEntry("https://a.test/", "A")))
	require.NoError(t, repo.Append(ctx, entity.NewHistoryEntry("https://a.test/", "A again")))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestHistoryRepository_TrimKeepsNewest(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewHistoryRepository(db)

	base := time.Now().Add(-time.Hour)
	for i := range 10 {
		require.NoError(t, repo.Append(ctx, &entity.HistoryEntry{
			URL:       "https://site.test/" + string(rune('a'+i)),
			VisitedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	removed, err := repo.Trim(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)

	recent, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "https://site.test/j", recent[0].URL)
	assert.Equal(t, "https://site.test/h", recent[2].URL)

	require.NoError(t, repo.DeleteAll(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookmarkRepository(t *testing.T) {
	ctx, lazy := openTestDB(t)
	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	repo := sqlite.NewBookmarkRepository(db)

	require.NoError(t, repo.Save(ctx, &entity.Bookmark{URL: "https://a.test/", Title: "A"}))
	require.NoError(t, repo.Save(ctx, &entity.Bookmark{URL: "https://b.test/", Title: "B"}))
	require.NoError(t, repo.Save(ctx, &entity.Bookmark{URL: "https://a.test/", Title: "A renamed"}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A renamed", all[0].Title)
	assert.Equal(t, "https://b.test/", all[1].URL)

	require.NoError(t, repo.Delete(ctx, "https://a.test/"))
	all, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
