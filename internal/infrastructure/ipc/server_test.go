package ipc_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/casement/internal/application/controller"
	portmocks "github.com/bnema/casement/internal/application/port/mocks"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/infrastructure/contentview"
	"github.com/bnema/casement/internal/infrastructure/ipc"
	"github.com/bnema/casement/internal/infrastructure/sessionstore"
	"github.com/bnema/casement/internal/infrastructure/snapshot"
	"github.com/bnema/casement/internal/logging"
)

type fixture struct {
	ctx    context.Context
	ctrl   *controller.Controller
	hub    *ipc.Hub
	server *ipc.Server
	socket string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctx, cancel := context.WithCancel(logging.WithContext(context.Background(), zerolog.Nop()))
	dir, err := os.MkdirTemp("", "casement-ipc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	host := portmocks.NewMockWindowHost(t)
	host.EXPECT().OpenWindow(mock.Anything, mock.Anything).Return(nil).Maybe()
	host.EXPECT().CloseWindow(mock.Anything, mock.Anything).Return(nil).Maybe()

	store := sessionstore.New(filepath.Join(dir, "session.json"))
	writer := snapshot.NewService(store, 0)
	writer.SetReady()

	hub := ipc.NewHub()
	ctrl := controller.New(controller.Config{HomeURL: "casement://home"}, controller.Deps{
		Views:     contentview.NewMemoryFactory(contentview.MemoryOptions{}),
		Host:      host,
		Publisher: hub,
		Writer:    writer,
		Store:     store,
	})
	go func() { _ = ctrl.Run(ctx) }()

	f := &fixture{
		ctx:    ctx,
		ctrl:   ctrl,
		hub:    hub,
		socket: filepath.Join(dir, "c.sock"),
	}
	f.server = ipc.NewServer(f.socket, hub, ctrl)
	require.NoError(t, f.server.Start(ctx))

	t.Cleanup(func() {
		f.server.Stop()
		cancel()
		<-ctrl.Done()
	})

	_, err = ctrl.Restore(ctx)
	require.NoError(t, err)
	return f
}

func (f *fixture) dial(t *testing.T, windowID entity.WindowID) *ipc.Client {
	t.Helper()
	c, err := ipc.Dial(f.ctx, f.socket, windowID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitSnapshot(t *testing.T, c *ipc.Client, match func(*entity.WindowSnapshot) bool) *entity.WindowSnapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		msg, err := c.Next(ctx)
		require.NoError(t, err)
		if msg.Type == ipc.MsgSnapshot && match(msg.Snapshot) {
			return msg.Snapshot
		}
	}
}

func TestServer_CommandsAndSnapshots(t *testing.T) {
	f := newFixture(t)
	surface := f.dial(t, entity.MainWindowID)

	first := waitSnapshot(t, surface, func(s *entity.WindowSnapshot) bool { return len(s.Tabs) == 1 })
	assert.True(t, first.IsMain)

	tool := f.dial(t, 0)
	require.NoError(t, tool.Ping(f.ctx))

	res, err := tool.Do(f.ctx, controller.Command{Op: controller.OpCreateTab, URL: "https://a.test/", Activate: true})
	require.NoError(t, err)
	assert.NotZero(t, res.TabID)

	snap := waitSnapshot(t, surface, func(s *entity.WindowSnapshot) bool {
		return len(s.Tabs) == 2 && s.ActiveTabID == res.TabID && s.Tabs[1].URL == "https://a.test/"
	})
	assert.Equal(t, res.TabID, snap.Tabs[1].ID)

	list, err := tool.Do(f.ctx, controller.Command{Op: controller.OpList})
	require.NoError(t, err)
	require.Len(t, list.Windows, 1)
}

func TestServer_ErrorsMapToSentinels(t *testing.T) {
	f := newFixture(t)
	tool := f.dial(t, 0)

	_, err := tool.Do(f.ctx, controller.Command{Op: controller.OpCloseTab, TabID: 999})
	require.ErrorIs(t, err, entity.ErrUnknownTab)

	list, err := tool.Do(f.ctx, controller.Command{Op: controller.OpList})
	require.NoError(t, err)
	only := list.Windows[0].Tabs[0].ID

	_, err = tool.Do(f.ctx, controller.Command{Op: controller.OpSetPinned, TabID: only, Pinned: true})
	require.NoError(t, err)
	_, err = tool.Do(f.ctx, controller.Command{Op: controller.OpCloseTab, TabID: only})
	require.ErrorIs(t, err, entity.ErrPinnedTab)
}

func TestServer_SurfaceReceivesNoticeForOwnCommand(t *testing.T) {
	f := newFixture(t)
	surface := f.dial(t, entity.MainWindowID)
	snap := waitSnapshot(t, surface, func(s *entity.WindowSnapshot) bool { return len(s.Tabs) == 1 })

	_, err := surface.Do(f.ctx, controller.Command{Op: controller.OpCloseTab, TabID: snap.Tabs[0].ID + 100})
	require.ErrorIs(t, err, entity.ErrUnknownTab)

	noticed := waitSnapshot(t, surface, func(s *entity.WindowSnapshot) bool { return s.Notice != "" })
	assert.Equal(t, "That tab no longer exists.", noticed.Notice)
}

func TestServer_DetachedSurfaceSeesClosed(t *testing.T) {
	f := newFixture(t)
	tool := f.dial(t, 0)

	created, err := tool.Do(f.ctx, controller.Command{Op: controller.OpCreateTab, URL: "https://b.test/"})
	require.NoError(t, err)
	detached, err := tool.Do(f.ctx, controller.Command{Op: controller.OpDetachTab, TabID: created.TabID})
	require.NoError(t, err)
	require.NotZero(t, detached.WindowID)

	surface := f.dial(t, detached.WindowID)
	waitSnapshot(t, surface, func(s *entity.WindowSnapshot) bool { return s.WindowID == detached.WindowID })

	_, err = tool.Do(f.ctx, controller.Command{Op: controller.OpReattachTab, TabID: created.TabID})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		msg, err := surface.Next(ctx)
		require.NoError(t, err)
		if msg.Type == ipc.MsgClosed {
			break
		}
	}
}

func TestServer_HelloForUnknownWindow(t *testing.T) {
	f := newFixture(t)
	_, err := ipc.Dial(f.ctx, f.socket, 42)
	require.ErrorIs(t, err, entity.ErrUnknownWindow)
}

func TestServer_SecondInstanceRefused(t *testing.T) {
	f := newFixture(t)

	// Simulate another live controller owning the socket.
	require.NoError(t, os.WriteFile(ipc.PidPath(f.socket), []byte("1"), 0o600))
	other := ipc.NewServer(f.socket, ipc.NewHub(), f.ctrl)
	err := other.Start(f.ctx)
	require.ErrorIs(t, err, ipc.ErrAlreadyRunning)
}

func TestServer_StopRemovesFiles(t *testing.T) {
	f := newFixture(t)
	c := f.dial(t, 0)

	f.server.Stop()
	_, err := os.Stat(f.socket)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(ipc.PidPath(f.socket))
	assert.True(t, os.IsNotExist(err))

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("client not disconnected on stop")
	}
	assert.ErrorIs(t, c.Ping(f.ctx), ipc.ErrClosed)
}
