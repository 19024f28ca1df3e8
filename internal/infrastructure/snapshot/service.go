package snapshot

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

const (
	defaultLockRetries    = 3
	defaultLockRetryDelay = 50 * time.Millisecond
)

// ResultHandler is told the outcome of every deferred store write.
type ResultHandler func(err error)

// Service is the write-behind session writer. With a positive interval writes
// are debounced and performed on a timer; with a zero interval they happen
// synchronously inside Write.
type Service struct {
	store    repository.SessionStore
	interval time.Duration

	retries    int
	retryDelay time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	pending  []entity.SessionEntry
	dirty    bool
	ready    bool // false until the session has been restored
	ctx      context.Context
	cancel   context.CancelFunc
	onResult ResultHandler

	// writeMu serialises store writes between the timer and SaveNow.
	writeMu sync.Mutex
}

// NewService creates a new snapshot service. intervalMs <= 0 selects
// synchronous writes.
func NewService(store repository.SessionStore, intervalMs int) *Service {
	if intervalMs < 0 {
		intervalMs = 0
	}
	return &Service{
		store:      store,
		interval:   time.Duration(intervalMs) * time.Millisecond,
		retries:    defaultLockRetries,
		retryDelay: defaultLockRetryDelay,
	}
}

// Start binds the service to a context used by deferred writes.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctx, s.cancel = context.WithCancel(ctx)
	logging.FromContext(ctx).Debug().Dur("interval", s.interval).Msg("snapshot service started")
}

// SetResultHandler installs the callback for deferred write outcomes.
func (s *Service) SetResultHandler(h ResultHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResult = h
}

// SetReady allows writes to reach the store. Call it once the session has
// been restored so a half-restored tab list never overwrites the saved one.
func (s *Service) SetReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
}

// Stop stops the service and saves final state.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	// Final save on shutdown
	return s.SaveNow(ctx)
}

// Write records the latest entries. In synchronous mode the store write
// happens before returning and its error is returned.
func (s *Service) Write(ctx context.Context, entries []entity.SessionEntry) error {
	s.mu.Lock()
	s.pending = slices.Clone(entries)
	s.dirty = true
	ready := s.ready
	synchronous := s.interval == 0

	if !synchronous {
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(s.interval, s.flushDeferred)
	}
	s.mu.Unlock()

	if synchronous && ready {
		return s.saveSnapshot(ctx)
	}
	return nil
}

func (s *Service) flushDeferred() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if ctx == nil {
		return
	}

	err := s.saveSnapshot(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to save session snapshot")
	}

	s.mu.Lock()
	h := s.onResult
	s.mu.Unlock()
	if h != nil {
		h(err)
	}
}

// SaveNow forces immediate save (for shutdown).
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}

	return s.saveSnapshot(ctx)
}

func (s *Service) saveSnapshot(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.ready || !s.dirty {
		// Keep the pending snapshot for later.
		s.mu.Unlock()
		return nil
	}
	entries := s.pending
	s.dirty = false
	s.mu.Unlock()

	err := s.saveWithRetry(ctx, entries)
	if err != nil {
		s.mu.Lock()
		// A newer Write may have replaced pending meanwhile; only re-mark
		// dirty so the next attempt writes whatever is latest.
		s.dirty = true
		s.mu.Unlock()
	}
	return err
}

func (s *Service) saveWithRetry(ctx context.Context, entries []entity.SessionEntry) error {
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		err = s.store.Save(ctx, entries)
		if err == nil || !errors.Is(err, repository.ErrStoreLocked) {
			return err
		}
		if attempt == s.retries {
			break
		}
		logging.FromContext(ctx).Debug().
			Int("attempt", attempt+1).
			Msg("session store locked, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay):
		}
	}
	return err
}

var _ port.SessionWriter = (*Service)(nil)
