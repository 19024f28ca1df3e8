// Package history records visited pages off the controller goroutine.
package history

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

const (
	defaultQueueSize     = 128
	defaultBatchSize     = 32
	defaultFlushInterval = 2 * time.Second
)

// ErrSinkClosed is returned by Flush after Close.
var ErrSinkClosed = errors.New("history sink closed")

// Opener returns the repository, opening the database on first call.
type Opener func(ctx context.Context) (repository.HistoryRepository, error)

// Options tunes an AsyncSink. Zero values select defaults.
type Options struct {
	MaxEntries    int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
}

type visit struct {
	url   string
	title string
	at    time.Time
}

// AsyncSink queues visits and appends them to the repository in batches,
// trimming to MaxEntries after each batch. Failures are logged only.
type AsyncSink struct {
	open  Opener
	opts  Options
	queue chan visit
	flush chan chan struct{}
	done  chan struct{}

	closeOnce sync.Once
	mu        sync.Mutex
	closed    bool
	repo      repository.HistoryRepository
}

var _ port.HistorySink = (*AsyncSink)(nil)

// NewAsyncSink creates a sink. Call Start to begin processing.
func NewAsyncSink(open Opener, opts Options) *AsyncSink {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = entity.DefaultHistoryLimit
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	return &AsyncSink{
		open:  open,
		opts:  opts,
		queue: make(chan visit, opts.QueueSize),
		flush: make(chan chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start runs the worker until ctx is cancelled or Close is called.
func (s *AsyncSink) Start(ctx context.Context) {
	go s.run(logging.WithComponent(ctx, "history"))
}

// RecordVisit enqueues a visit. It never blocks: when the queue is full the
// visit is dropped.
func (s *AsyncSink) RecordVisit(ctx context.Context, url, title string) {
	if !worthRecording(url) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.queue <- visit{url: url, title: title, at: time.Now()}:
	default:
		logging.FromContext(ctx).Warn().
			Str("url", logging.TruncateURL(url, 60)).
			Msg("history queue full, dropping visit")
	}
}

// Flush blocks until everything queued so far has been written.
func (s *AsyncSink) Flush(ctx context.Context) error {
	ack := make(chan struct{})
	select {
	case s.flush <- ack:
	case <-s.done:
		return ErrSinkClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes pending visits and stops the worker.
func (s *AsyncSink) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.queue)
		s.mu.Unlock()
	})
	<-s.done
}

func (s *AsyncSink) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.opts.FlushInterval)
	defer ticker.Stop()

	batch := make([]visit, 0, s.opts.BatchSize)
	write := func() {
		if len(batch) == 0 {
			return
		}
		s.write(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case v, ok := <-s.queue:
			if !ok {
				write()
				return
			}
			batch = append(batch, v)
			if len(batch) >= s.opts.BatchSize {
				write()
			}
		case ack := <-s.flush:
			// Drain what was queued before the flush request.
			for drained := false; !drained; {
				select {
				case v, ok := <-s.queue:
					if !ok {
						write()
						close(ack)
						return
					}
					batch = append(batch, v)
				default:
					drained = true
				}
			}
			write()
			close(ack)
		case <-ticker.C:
			write()
		case <-ctx.Done():
			write()
			return
		}
	}
}

func (s *AsyncSink) write(ctx context.Context, batch []visit) {
	log := logging.FromContext(ctx)

	repo, err := s.repository(ctx)
	if err != nil {
		log.Warn().Err(err).Int("dropped", len(batch)).Msg("history repository unavailable")
		return
	}

	for _, v := range batch {
		entry := &entity.HistoryEntry{URL: v.url, Title: v.title, VisitedAt: v.at}
		if err := repo.Append(ctx, entry); err != nil {
			log.Warn().Err(err).Str("url", logging.TruncateURL(v.url, 60)).Msg("failed to record visit")
		}
	}

	removed, err := repo.Trim(ctx, s.opts.MaxEntries)
	if err != nil {
		log.Warn().Err(err).Msg("failed to trim history")
		return
	}
	log.Debug().Int("written", len(batch)).Int64("trimmed", removed).Msg("history batch flushed")
}

func (s *AsyncSink) repository(ctx context.Context) (repository.HistoryRepository, error) {
	if s.repo != nil {
		return s.repo, nil
	}
	repo, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	s.repo = repo
	return repo, nil
}

func worthRecording(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
