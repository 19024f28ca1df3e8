package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

// PersistSessionUseCase turns the main window's tab strip into session entries
// and hands them to the session writer.
type PersistSessionUseCase struct {
	writer port.SessionWriter
}

// NewPersistSessionUseCase creates a new PersistSessionUseCase.
func NewPersistSessionUseCase(writer port.SessionWriter) *PersistSessionUseCase {
	return &PersistSessionUseCase{writer: writer}
}

// PersistInput contains the main-window tabs in strip order.
type PersistInput struct {
	Tabs []*entity.Tab
	// CurrentURL returns the URL a tab's content view shows right now.
	// An empty result falls back to the tab record.
	CurrentURL func(entity.TabID) string
}

// PersistOutput contains the entries handed to the writer.
type PersistOutput struct {
	Entries []entity.SessionEntry
}

// BuildEntries maps tabs to session entries, skipping tabs without a URL.
func BuildEntries(input PersistInput) []entity.SessionEntry {
	entries := make([]entity.SessionEntry, 0, len(input.Tabs))
	for _, tab := range input.Tabs {
		if tab == nil || tab.IsClosing() {
			continue
		}
		url := ""
		if input.CurrentURL != nil {
			url = input.CurrentURL(tab.ID)
		}
		if url == "" {
			url = tab.URL
		}
		if url == "" {
			continue
		}
		entries = append(entries, entity.SessionEntry{URL: url, Pinned: tab.Pinned})
	}
	return entries
}

// Execute persists the given tabs. Failures wrap entity.ErrPersistence.
func (uc *PersistSessionUseCase) Execute(ctx context.Context, input PersistInput) (*PersistOutput, error) {
	log := logging.FromContext(ctx)

	entries := BuildEntries(input)

	log.Debug().
		Int("tab_count", len(input.Tabs)).
		Int("entry_count", len(entries)).
		Msg("persisting session")

	if err := uc.writer.Write(ctx, entries); err != nil {
		return &PersistOutput{Entries: entries}, fmt.Errorf("%w: %w", entity.ErrPersistence, err)
	}

	return &PersistOutput{Entries: entries}, nil
}
