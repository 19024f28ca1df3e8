package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/domain/repository"
	"github.com/bnema/casement/internal/logging"
)

// DefaultRestoreTimeout bounds the wait for each restored tab to become ready.
const DefaultRestoreTimeout = 10 * time.Second

// RestoreSessionUseCase recreates the main-window tabs from the session store.
// It is the single restore path, used at startup and by the restore command.
type RestoreSessionUseCase struct {
	store  repository.SessionStore
	opener port.TabOpener
}

// NewRestoreSessionUseCase creates a new RestoreSessionUseCase.
func NewRestoreSessionUseCase(store repository.SessionStore, opener port.TabOpener) *RestoreSessionUseCase {
	return &RestoreSessionUseCase{
		store:  store,
		opener: opener,
	}
}

// RestoreInput contains the parameters for restoring a session.
type RestoreInput struct {
	// HomeURL is opened when the store holds no entries.
	HomeURL string
	// ReadyTimeout bounds each per-tab wait; zero means DefaultRestoreTimeout.
	ReadyTimeout time.Duration
}

// RestoreOutput describes what was restored.
type RestoreOutput struct {
	TabIDs   []entity.TabID
	Entries  int
	TimedOut int
}

// Execute restores the stored tabs in order, waiting for each one to be ready
// before opening the next. Load errors are treated as an empty session.
func (uc *RestoreSessionUseCase) Execute(ctx context.Context, input RestoreInput) (*RestoreOutput, error) {
	log := logging.FromContext(ctx)

	timeout := input.ReadyTimeout
	if timeout <= 0 {
		timeout = DefaultRestoreTimeout
	}

	entries, err := uc.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("session load failed, starting empty")
		entries = nil
	}

	out := &RestoreOutput{Entries: len(entries)}

	if len(entries) == 0 {
		log.Info().Str("url", input.HomeURL).Msg("no saved tabs, opening home tab")
		entries = []entity.SessionEntry{{URL: input.HomeURL}}
	} else {
		log.Info().Int("tab_count", len(entries)).Msg("restoring session")
	}

	for i, entry := range entries {
		created, err := uc.opener.CreateTab(ctx, entry.URL, port.CreateTabOptions{
			WindowID: entity.MainWindowID,
			Pinned:   entry.Pinned,
			Activate: i == 0,
			Origin:   "restore",
		})
		if err != nil {
			if errors.Is(err, entity.ErrContentViewUnavailable) || ctx.Err() != nil {
				return out, fmt.Errorf("restore tab %d: %w", i, err)
			}
			log.Warn().Err(err).Int("index", i).Str("url", entry.URL).Msg("failed to restore tab")
			continue
		}
		out.TabIDs = append(out.TabIDs, created.ID)

		ready, err := waitReady(ctx, created.Ready, timeout)
		if err != nil {
			return out, err
		}
		if !ready {
			out.TimedOut++
			log.Warn().
				Uint64("tab_id", uint64(created.ID)).
				Dur("timeout", timeout).
				Msg("tab not ready in time, continuing restore")
		}
	}

	if len(out.TabIDs) > 0 {
		if err := uc.opener.ActivateTab(ctx, out.TabIDs[0]); err != nil && !errors.Is(err, entity.ErrUnknownTab) {
			return out, fmt.Errorf("activate first restored tab: %w", err)
		}
	}

	log.Info().
		Int("restored", len(out.TabIDs)).
		Int("timed_out", out.TimedOut).
		Msg("session restored")

	return out, nil
}

// waitReady blocks until ready closes or the timeout elapses. A timeout is not
// an error: the tab is treated as ready.
func waitReady(ctx context.Context, ready <-chan struct{}, timeout time.Duration) (bool, error) {
	if ready == nil {
		return true, nil
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ready:
		return true, nil
	case <-timer.C:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
