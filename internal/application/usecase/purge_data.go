package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

// PurgePaths locates the data each purge target removes. Empty paths are
// reported as absent.
type PurgePaths struct {
	Session        string
	History        string
	Logs           string
	FilterCache    string
	BrowserProfile string
	Config         string
}

// PurgeDataUseCase handles discovering and purging application data.
type PurgeDataUseCase struct {
	fs    port.FileSystem
	paths PurgePaths
}

// NewPurgeDataUseCase creates a new PurgeDataUseCase.
func NewPurgeDataUseCase(fs port.FileSystem, paths PurgePaths) *PurgeDataUseCase {
	return &PurgeDataUseCase{fs: fs, paths: paths}
}

// GetPurgeTargets returns all available purge targets with their current state.
func (uc *PurgeDataUseCase) GetPurgeTargets(ctx context.Context) ([]entity.PurgeTarget, error) {
	baseTargets := []entity.PurgeTarget{
		{Type: entity.PurgeTargetSession, Path: uc.paths.Session, Description: "saved session"},
		{Type: entity.PurgeTargetHistory, Path: uc.paths.History, Description: "history and bookmarks"},
		{Type: entity.PurgeTargetLogs, Path: uc.paths.Logs, Description: "log files"},
		{Type: entity.PurgeTargetFilterCache, Path: uc.paths.FilterCache, Description: "downloaded block lists"},
		{Type: entity.PurgeTargetBrowserProfile, Path: uc.paths.BrowserProfile, Description: "chrome profile"},
		{Type: entity.PurgeTargetConfig, Path: uc.paths.Config, Description: "config file"},
	}

	targets := make([]entity.PurgeTarget, 0, len(baseTargets))
	for _, t := range baseTargets {
		if t.Path == "" {
			targets = append(targets, t)
			continue
		}
		exists, err := uc.fs.Exists(ctx, t.Path)
		if err != nil {
			return nil, err
		}
		t.Exists = exists
		if exists {
			size, err := uc.fs.GetSize(ctx, t.Path)
			if err != nil {
				return nil, err
			}
			t.Size = size
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// PurgeInput specifies which target types to purge.
type PurgeInput struct {
	TargetTypes []entity.PurgeTargetType
}

// PurgeOutput contains the results of the purge operation.
type PurgeOutput struct {
	Results      []entity.PurgeResult
	TotalSize    int64
	SuccessCount int
	FailureCount int
}

// Execute purges the selected target types.
// Continues on errors, collecting all results.
func (uc *PurgeDataUseCase) Execute(ctx context.Context, input PurgeInput) (*PurgeOutput, error) {
	log := logging.FromContext(ctx)

	targets, err := uc.GetPurgeTargets(ctx)
	if err != nil {
		return nil, err
	}

	selected := make(map[entity.PurgeTargetType]struct{}, len(input.TargetTypes))
	for _, tt := range input.TargetTypes {
		selected[tt] = struct{}{}
	}

	out := &PurgeOutput{}
	for _, t := range targets {
		if _, ok := selected[t.Type]; !ok || !t.Exists {
			continue
		}

		res := entity.PurgeResult{Target: t}
		if err := uc.fs.RemoveAll(ctx, t.Path); err != nil {
			res.Error = err
			out.FailureCount++
			log.Warn().Err(err).Str("path", t.Path).Str("type", string(t.Type)).Msg("purge target failed")
		} else {
			res.Success = true
			out.SuccessCount++
			out.TotalSize += t.Size
			log.Info().Str("path", t.Path).Str("type", string(t.Type)).Msg("purge target removed")
		}
		out.Results = append(out.Results, res)
	}

	if out.FailureCount > 0 {
		return out, fmt.Errorf("failed to remove %d items", out.FailureCount)
	}
	return out, nil
}

// PurgeAll purges every target except the config file.
func (uc *PurgeDataUseCase) PurgeAll(ctx context.Context) (*PurgeOutput, error) {
	var types []entity.PurgeTargetType
	for _, tt := range entity.AllPurgeTargetTypes() {
		if tt != entity.PurgeTargetConfig {
			types = append(types, tt)
		}
	}
	return uc.Execute(ctx, PurgeInput{TargetTypes: types})
}
