package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
	"github.com/bnema/casement/internal/logging"
)

const (
	socketDirPerm = 0o700
	pidFilePerm   = 0o600
	writeTimeout  = 5 * time.Second
)

// Dispatcher runs commands against the controller.
type Dispatcher interface {
	Submit(ctx context.Context, cmd controller.Command) (controller.Result, error)
}

// PidPath returns the pidfile guarding socketPath.
func PidPath(socketPath string) string {
	return socketPath + ".pid"
}

// Server accepts surface and tool connections for one controller.
type Server struct {
	socketPath string
	pidPath    string
	hub        *Hub
	dispatch   Dispatcher

	listener net.Listener
	connsMu  sync.Mutex
	conns    map[*conn]struct{}
	wg       sync.WaitGroup
	done     chan struct{}
	stopOnce sync.Once
}

// NewServer creates a server bound to socketPath.
func NewServer(socketPath string, hub *Hub, dispatch Dispatcher) *Server {
	return &Server{
		socketPath: socketPath,
		pidPath:    PidPath(socketPath),
		hub:        hub,
		dispatch:   dispatch,
		conns:      make(map[*conn]struct{}),
		done:       make(chan struct{}),
	}
}

// SocketPath returns the socket path.
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Start claims the pidfile and begins accepting connections.
func (s *Server) Start(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "ipc")

	if err := os.MkdirAll(filepath.Dir(s.socketPath), socketDirPerm); err != nil {
		return fmt.Errorf("failed to create socket dir: %w", err)
	}
	if err := s.claimPid(); err != nil {
		return err
	}

	// Stale socket is safe to remove now that we own the pidfile.
	_ = os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		_ = os.Remove(s.pidPath)
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener

	logging.FromContext(ctx).Info().Str("socket", s.socketPath).Msg("ipc server listening")

	s.wg.Add(1)
	go s.acceptLoop(ctx)
	return nil
}

// Serve runs the server until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop closes the listener and every connection, then removes the socket
// and pidfile.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			_ = s.listener.Close()
		}
		s.connsMu.Lock()
		for c := range s.conns {
			c.close()
		}
		s.connsMu.Unlock()
		s.wg.Wait()
		_ = os.Remove(s.socketPath)
		_ = os.Remove(s.pidPath)
	})
}

// ConnCount returns the number of open connections.
func (s *Server) ConnCount() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

// claimPid refuses to start while the pid in the pidfile is alive.
func (s *Server) claimPid() error {
	if data, err := os.ReadFile(s.pidPath); err == nil {
		pid, convErr := strconv.Atoi(strings.TrimSpace(string(data)))
		if convErr == nil && pid > 0 && pid != os.Getpid() && processAlive(pid) {
			return fmt.Errorf("%w with pid %d", ErrAlreadyRunning, pid)
		}
		_ = os.Remove(s.pidPath)
	}

	if err := os.WriteFile(s.pidPath, []byte(strconv.Itoa(os.Getpid())), pidFilePerm); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

// processAlive treats EPERM as alive: the process exists but belongs to
// another user.
func processAlive(pid int) bool {
	err := unix.Kill(pid, 0)
	return err == nil || errors.Is(err, unix.EPERM)
}

func (s *Server) acceptLoop(ctx context.Context) {
	defer s.wg.Done()
	log := logging.FromContext(ctx)

	for {
		nc, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			log.Warn().Err(err).Msg("accept failed")
			continue
		}

		c := &conn{nc: nc, enc: json.NewEncoder(nc)}
		s.connsMu.Lock()
		s.conns[c] = struct{}{}
		s.connsMu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, c)
		}()
	}
}

// conn serialises writes to one client.
type conn struct {
	nc  net.Conn
	mu  sync.Mutex
	enc *json.Encoder

	windowID entity.WindowID
	sub      *Subscription
}

func (c *conn) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.nc.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.enc.Encode(msg)
}

func (c *conn) close() {
	_ = c.nc.Close()
}

// handle reads one connection. Commands are submitted in arrival order, one
// at a time, so each sender observes its own FIFO.
func (s *Server) handle(ctx context.Context, c *conn) {
	log := logging.FromContext(ctx)
	defer func() {
		if c.sub != nil {
			s.hub.Unsubscribe(c.sub)
		}
		c.close()
		s.connsMu.Lock()
		delete(s.conns, c)
		s.connsMu.Unlock()
	}()

	scanner := bufio.NewScanner(c.nc)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			log.Debug().Err(err).Msg("dropping malformed message")
			continue
		}

		switch msg.Type {
		case MsgHello:
			s.hello(ctx, c, msg)
		case MsgCommand:
			s.command(ctx, c, msg)
		case MsgPing:
			_ = c.send(Message{Type: MsgPong, ID: msg.ID})
		default:
			_ = c.send(Message{
				Type:  MsgResult,
				ID:    msg.ID,
				Error: ErrorFrom(fmt.Errorf("%w: unknown message type %q", ErrBadRequest, msg.Type)),
			})
		}
	}
}

func (s *Server) hello(ctx context.Context, c *conn, msg Message) {
	if msg.WindowID == 0 || c.sub != nil {
		_ = c.send(Message{Type: MsgResult, ID: msg.ID})
		return
	}

	c.windowID = msg.WindowID
	c.sub = s.hub.Subscribe(msg.WindowID)
	s.wg.Add(1)
	go func(sub *Subscription) {
		defer s.wg.Done()
		s.pump(ctx, c, sub)
	}(c.sub)

	// Push the current state even when the hub has nothing cached yet.
	_, err := s.dispatch.Submit(ctx, controller.Command{Op: controller.OpResync, WindowID: msg.WindowID})
	if errors.Is(err, entity.ErrUnknownWindow) {
		s.hub.WindowClosed(msg.WindowID)
	}
	_ = c.send(Message{Type: MsgResult, ID: msg.ID, Error: ErrorFrom(err)})
}

func (s *Server) command(ctx context.Context, c *conn, msg Message) {
	if msg.Command == nil {
		_ = c.send(Message{Type: MsgResult, ID: msg.ID, Error: ErrorFrom(ErrBadRequest)})
		return
	}

	cmd := *msg.Command
	if cmd.Source == 0 {
		cmd.Source = c.windowID
	}

	res, err := s.dispatch.Submit(ctx, cmd)
	out := Message{Type: MsgResult, ID: msg.ID, Error: ErrorFrom(err)}
	if err == nil {
		out.Result = &res
	}
	if sendErr := c.send(out); sendErr != nil {
		logging.FromContext(ctx).Debug().Err(sendErr).Str("op", string(cmd.Op)).Msg("failed to send result")
	}
}

// pump forwards hub pushes for the connection's window until it closes.
func (s *Server) pump(ctx context.Context, c *conn, sub *Subscription) {
	for {
		msg, err := sub.Next(ctx)
		if err != nil {
			return
		}
		if err := c.send(msg); err != nil {
			c.close()
			return
		}
	}
}
