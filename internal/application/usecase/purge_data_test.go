package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/application/port/mocks"
	"github.com/bnema/casement/internal/application/usecase"
	"github.com/bnema/casement/internal/domain/entity"
)

func TestPurgeData_GetPurgeTargets(t *testing.T) {
	fs := mocks.NewMockFileSystem(t)
	fs.EXPECT().Exists(mock.Anything, "/state/session.json").Return(true, nil)
	fs.EXPECT().GetSize(mock.Anything, "/state/session.json").Return(int64(42), nil)
	fs.EXPECT().Exists(mock.Anything, "/data/history.sqlite").Return(false, nil)

	uc := usecase.NewPurgeDataUseCase(fs, usecase.PurgePaths{
		Session: "/state/session.json",
		History: "/data/history.sqlite",
	})

	targets, err := uc.GetPurgeTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, len(entity.AllPurgeTargetTypes()))

	assert.Equal(t, entity.PurgeTargetSession, targets[0].Type)
	assert.True(t, targets[0].Exists)
	assert.Equal(t, int64(42), targets[0].Size)
	assert.False(t, targets[1].Exists)
	assert.False(t, targets[2].Exists, "empty paths are absent")
}

func TestPurgeData_ExecuteRemovesSelectedExisting(t *testing.T) {
	fs := mocks.NewMockFileSystem(t)
	fs.EXPECT().Exists(mock.Anything, mock.Anything).Return(true, nil)
	fs.EXPECT().GetSize(mock.Anything, mock.Anything).Return(int64(10), nil)
	fs.EXPECT().RemoveAll(mock.Anything, "/state/logs").Return(nil).Once()

	uc := usecase.NewPurgeDataUseCase(fs, usecase.PurgePaths{
		Session: "/state/session.json",
		Logs:    "/state/logs",
	})

	out, err := uc.Execute(context.Background(), usecase.PurgeInput{
		TargetTypes: []entity.PurgeTargetType{entity.PurgeTargetLogs},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.SuccessCount)
	assert.Equal(t, int64(10), out.TotalSize)
}

func TestPurgeData_ExecuteCollectsFailures(t *testing.T) {
	fs := mocks.NewMockFileSystem(t)
	fs.EXPECT().Exists(mock.Anything, mock.Anything).Return(true, nil)
	fs.EXPECT().GetSize(mock.Anything, mock.Anything).Return(int64(1), nil)
	fs.EXPECT().RemoveAll(mock.Anything, "/s").Return(errors.New("busy")).Once()
	fs.EXPECT().RemoveAll(mock.Anything, "/h").Return(nil).Once()

	uc := usecase.NewPurgeDataUseCase(fs, usecase.PurgePaths{Session: "/s", History: "/h"})

	out, err := uc.Execute(context.Background(), usecase.PurgeInput{
		TargetTypes: []entity.PurgeTargetType{entity.PurgeTargetSession, entity.PurgeTargetHistory},
	})
	require.Error(t, err)
	assert.Equal(t, 1, out.FailureCount)
	assert.Equal(t, 1, out.SuccessCount)
}

func TestPurgeData_PurgeAllKeepsConfig(t *testing.T) {
	fs := mocks.NewMockFileSystem(t)
	fs.EXPECT().Exists(mock.Anything, mock.Anything).Return(true, nil)
	fs.EXPECT().GetSize(mock.Anything, mock.Anything).Return(int64(0), nil)
	fs.EXPECT().RemoveAll(mock.Anything, "/s").Return(nil).Once()

	uc := usecase.NewPurgeDataUseCase(fs, usecase.PurgePaths{Session: "/s", Config: "/c/config.toml"})

	out, err := uc.PurgeAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.SuccessCount)
}
