package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/application/port"
	portmocks "github.com/bnema/casement/internal/application/port/mocks"
	"github.com/bnema/casement/internal/application/usecase"
	"github.com/bnema/casement/internal/domain/entity"
	repomocks "github.com/bnema/casement/internal/domain/repository/mocks"
	"github.com/bnema/casement/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func readyNow() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func TestPersistSession_UsesLiveURLsInStripOrder(t *testing.T) {
	ctx := testContext()
	writer := portmocks.NewMockSessionWriter(t)

	a := entity.NewTab(1, entity.MainWindowID, "https://a.test/")
	a.Pinned = true
	b := entity.NewTab(2, entity.MainWindowID, "https://b.test/")
	c := entity.NewTab(3, entity.MainWindowID, "")

	writer.EXPECT().
		Write(mock.Anything, []entity.SessionEntry{
			{URL: "https://a.test/", Pinned: true},
			{URL: "https://b.test/redirected", Pinned: false},
		}).
		Return(nil)

	uc := usecase.NewPersistSessionUseCase(writer)
	out, err := uc.Execute(ctx, usecase.PersistInput{
		Tabs: []*entity.Tab{a, b, c},
		CurrentURL: func(id entity.TabID) string {
			if id == b.ID {
				return "https://b.test/redirected"
			}
			return ""
		},
	})

	require.NoError(t, err)
	assert.Len(t, out.Entries, 2)
}

func TestPersistSession_WrapsWriteFailure(t *testing.T) {
	ctx := testContext()
	writer := portmocks.NewMockSessionWriter(t)
	diskErr := errors.New("no space left on device")
	writer.EXPECT().Write(mock.Anything, mock.Anything).Return(diskErr)

	uc := usecase.NewPersistSessionUseCase(writer)
	_, err := uc.Execute(ctx, usecase.PersistInput{
		Tabs: []*entity.Tab{entity.NewTab(1, entity.MainWindowID, "https://a.test/")},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrPersistence)
	assert.ErrorIs(t, err, diskErr)
}

func TestRestoreSession_RestoresInOrder(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockSessionStore(t)
	opener := portmocks.NewMockTabOpener(t)

	store.EXPECT().Load(mock.Anything).Return([]entity.SessionEntry{
		{URL: "https://a.test/", Pinned: true},
		{URL: "https://b.test/"},
	}, nil)

	var opened []string
	opener.EXPECT().
		CreateTab(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, url string, opts port.CreateTabOptions) (*port.CreatedTab, error) {
			opened = append(opened, url)
			assert.Equal(t, entity.MainWindowID, opts.WindowID)
			assert.Equal(t, len(opened) == 1, opts.Activate)
			assert.Equal(t, url == "https://a.test/", opts.Pinned)
			return &port.CreatedTab{ID: entity.TabID(len(opened)), Ready: readyNow()}, nil
		}).Times(2)
	opener.EXPECT().ActivateTab(mock.Anything, entity.TabID(1)).Return(nil)

	uc := usecase.NewRestoreSessionUseCase(store, opener)
	out, err := uc.Execute(ctx, usecase.RestoreInput{HomeURL: "casement://home"})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.test/", "https://b.test/"}, opened)
	assert.Equal(t, []entity.TabID{1, 2}, out.TabIDs)
	assert.Zero(t, out.TimedOut)
}

func TestRestoreSession_EmptyOpensHome(t *testing.T) {
	tests := []struct {
		name    string
		entries []entity.SessionEntry
		loadErr error
	}{
		{name: "empty store"},
		{name: "load failure", loadErr: errors.New("permission denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			store := repomocks.NewMockSessionStore(t)
			opener := portmocks.NewMockTabOpener(t)

			store.EXPECT().Load(mock.Anything).Return(tt.entries, tt.loadErr)
			opener.EXPECT().
				CreateTab(mock.Anything, "casement://home", port.CreateTabOptions{
					WindowID: entity.MainWindowID,
					Activate: true,
					Origin:   "restore",
				}).
				Return(&port.CreatedTab{ID: 1, Ready: readyNow()}, nil).
				Once()
			opener.EXPECT().ActivateTab(mock.Anything, entity.TabID(1)).Return(nil)

			uc := usecase.NewRestoreSessionUseCase(store, opener)
			out, err := uc.Execute(ctx, usecase.RestoreInput{HomeURL: "casement://home"})

			require.NoError(t, err)
			assert.Equal(t, []entity.TabID{1}, out.TabIDs)
			assert.Zero(t, out.Entries)
		})
	}
}

func TestRestoreSession_TimeoutTreatsTabAsReady(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockSessionStore(t)
	opener := portmocks.NewMockTabOpener(t)

	store.EXPECT().Load(mock.Anything).Return([]entity.SessionEntry{
		{URL: "https://hangs.test/"},
		{URL: "https://b.test/"},
	}, nil)
	opener.EXPECT().
		CreateTab(mock.Anything, "https://hangs.test/", mock.Anything).
		Return(&port.CreatedTab{ID: 1, Ready: make(chan struct{})}, nil)
	opener.EXPECT().
		CreateTab(mock.Anything, "https://b.test/", mock.Anything).
		Return(&port.CreatedTab{ID: 2, Ready: readyNow()}, nil)
	opener.EXPECT().ActivateTab(mock.Anything, entity.TabID(1)).Return(nil)

	uc := usecase.NewRestoreSessionUseCase(store, opener)
	start := time.Now()
	out, err := uc.Execute(ctx, usecase.RestoreInput{ReadyTimeout: 20 * time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, 1, out.TimedOut)
	assert.Equal(t, []entity.TabID{1, 2}, out.TabIDs)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRestoreSession_ContentViewUnavailableAborts(t *testing.T) {
	ctx := testContext()
	store := repomocks.NewMockSessionStore(t)
	opener := portmocks.NewMockTabOpener(t)

	store.EXPECT().Load(mock.Anything).Return([]entity.SessionEntry{{URL: "https://a.test/"}}, nil)
	opener.EXPECT().
		CreateTab(mock.Anything, mock.Anything, mock.Anything).
		Return(nil, entity.ErrContentViewUnavailable)

	uc := usecase.NewRestoreSessionUseCase(store, opener)
	_, err := uc.Execute(ctx, usecase.RestoreInput{})

	assert.ErrorIs(t, err, entity.ErrContentViewUnavailable)
}
