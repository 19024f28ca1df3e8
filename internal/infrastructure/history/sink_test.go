package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/domain/repository/mocks"
	"github.com/bnema/casement/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/casement/internal/logging"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

func staticOpener(repo repository.HistoryRepository) Opener {
	return func(context.Context) (repository.HistoryRepository, error) { return repo, nil }
}

func TestAsyncSink_WritesAndTrims(t *testing.T) {
	ctx := testContext()
	repo := mocks.NewMockHistoryRepository(t)

	var urls []string
	repo.EXPECT().Append(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, e *entity.HistoryEntry) error {
			urls = append(urls, e.URL)
			assert.False(t, e.VisitedAt.IsZero())
			return nil
		}).Times(2)
	repo.EXPECT().Trim(mock.Anything, 10).Return(int64(0), nil).Once()

	sink := NewAsyncSink(staticOpener(repo), Options{MaxEntries: 10, FlushInterval: time.Hour})
	sink.Start(ctx)

	sink.RecordVisit(ctx, "https://a.test/", "A")
	sink.RecordVisit(ctx, "casement://home", "Home")
	sink.RecordVisit(ctx, "https://b.test/", "B")

	require.NoError(t, sink.Flush(ctx))
	assert.Equal(t, []string{"https://a.test/", "https://b.test/"}, urls)

	sink.Close()
	assert.ErrorIs(t, sink.Flush(ctx), ErrSinkClosed)
}

func TestAsyncSink_BatchSizeTriggersWrite(t *testing.T) {
	ctx := testContext()
	repo := mocks.NewMockHistoryRepository(t)

	written := make(chan string, 4)
	repo.EXPECT().Append(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, e *entity.HistoryEntry) error {
			written <- e.URL
			return nil
		}).Times(2)
	repo.EXPECT().Trim(mock.Anything, entity.DefaultHistoryLimit).Return(int64(0), nil).Once()

	sink := NewAsyncSink(staticOpener(repo), Options{BatchSize: 2, FlushInterval: time.Hour})
	sink.Start(ctx)
	defer sink.Close()

	sink.RecordVisit(ctx, "https://a.test/", "")
	sink.RecordVisit(ctx, "https://b.test/", "")

	require.Eventually(t, func() bool { return len(written) == 2 }, time.Second, 5*time.Millisecond)
}

func TestAsyncSink_FailuresAreOnlyLogged(t *testing.T) {
	ctx := testContext()
	repo := mocks.NewMockHistoryRepository(t)
	repo.EXPECT().Append(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	repo.EXPECT().Trim(mock.Anything, mock.Anything).Return(int64(0), errors.New("disk full")).Once()

	sink := NewAsyncSink(staticOpener(repo), Options{FlushInterval: time.Hour})
	sink.Start(ctx)
	defer sink.Close()

	sink.RecordVisit(ctx, "https://a.test/", "A")
	require.NoError(t, sink.Flush(ctx))
}

func TestAsyncSink_OpenerFailureDropsBatch(t *testing.T) {
	ctx := testContext()
	calls := 0
	sink := NewAsyncSink(func(context.Context) (repository.HistoryRepository, error) {
		calls++
		return nil, errors.New("no database")
	}, Options{FlushInterval: time.Hour})
	sink.Start(ctx)

	sink.RecordVisit(ctx, "https://a.test/", "A")
	require.NoError(t, sink.Flush(ctx))
	sink.Close()
	assert.Equal(t, 1, calls)

	// Recording after close is a no-op.
	sink.RecordVisit(ctx, "https://b.test/", "B")
}

func TestAsyncSink_FullQueueDoesNotBlock(t *testing.T) {
	ctx := testContext()
	sink := NewAsyncSink(staticOpener(nil), Options{QueueSize: 1})

	done := make(chan struct{})
	go func() {
		for range 10 {
			sink.RecordVisit(ctx, "https://a.test/", "A")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RecordVisit blocked on a full queue")
	}
}

func TestAsyncSink_WithSQLite(t *testing.T) {
	ctx := testContext()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "history.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	sink := NewAsyncSink(func(ctx context.Context) (repository.HistoryRepository, error) {
		db, err := lazy.DB(ctx)
		if err != nil {
			return nil, err
		}
		return sqlite.NewHistoryRepository(db), nil
	}, Options{MaxEntries: 3, FlushInterval: time.Hour})
	sink.Start(ctx)

	for _, u := range []string{"a", "b", "c", "d", "e"} {
		sink.RecordVisit(ctx, "https://"+u+".test/", u)
	}
	sink.Close()

	db, err := lazy.DB(ctx)
	require.NoError(t, err)
	recent, err := sqlite.NewHistoryRepository(db).GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "https://e.test/", recent[0].URL)
}
