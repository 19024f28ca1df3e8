package ipc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/bnema/casement/internal/application/controller"
	"github.com/bnema/casement/internal/domain/entity"
)

const dialTimeout = 2 * time.Second

// Client talks to a running controller. A client created with a window id
// also receives that window's pushes through Next.
type Client struct {
	nc  net.Conn
	mu  sync.Mutex
	enc *json.Encoder

	pendingMu sync.Mutex
	pending   map[string]chan Message
	box       *mailbox
	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to socketPath and sends hello. windowID 0 makes a tool
// connection that only issues commands.
func Dial(ctx context.Context, socketPath string, windowID entity.WindowID) (*Client, error) {
	d := net.Dialer{Timeout: dialTimeout}
	nc, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", socketPath, err)
	}

	c := &Client{
		nc:      nc,
		enc:     json.NewEncoder(nc),
		pending: make(map[string]chan Message),
		box:     newMailbox(),
		closed:  make(chan struct{}),
	}
	go c.readLoop()

	role := RoleCtl
	if windowID != 0 {
		role = RoleSurface
	}
	if _, err := c.roundTrip(ctx, Message{Type: MsgHello, Role: role, WindowID: windowID}); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Do runs cmd and waits for its result. Controller errors come back as
// *Error values that unwrap to the matching sentinel.
func (c *Client) Do(ctx context.Context, cmd controller.Command) (controller.Result, error) {
	reply, err := c.roundTrip(ctx, Message{Type: MsgCommand, Command: &cmd})
	if err != nil {
		return controller.Result{}, err
	}
	if reply.Result == nil {
		return controller.Result{}, nil
	}
	return *reply.Result, nil
}

// Ping checks the controller is responsive.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.roundTrip(ctx, Message{Type: MsgPing})
	return err
}

// Next blocks for the next snapshot, notice or closed push.
func (c *Client) Next(ctx context.Context) (Message, error) {
	return c.box.next(ctx)
}

// Close closes the connection.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.nc.Close()
	})
	return err
}

// Done is closed once the connection is gone.
func (c *Client) Done() <-chan struct{} {
	return c.closed
}

func (c *Client) roundTrip(ctx context.Context, msg Message) (Message, error) {
	msg.ID = NewID()
	ch := make(chan Message, 1)

	c.pendingMu.Lock()
	if c.pending == nil {
		c.pendingMu.Unlock()
		return Message{}, ErrClosed
	}
	c.pending[msg.ID] = ch
	c.pendingMu.Unlock()

	defer func() {
		c.pendingMu.Lock()
		if c.pending != nil {
			delete(c.pending, msg.ID)
		}
		c.pendingMu.Unlock()
	}()

	c.mu.Lock()
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.nc.SetWriteDeadline(deadline)
	} else {
		_ = c.nc.SetWriteDeadline(time.Now().Add(writeTimeout))
	}
	err := c.enc.Encode(msg)
	c.mu.Unlock()
	if err != nil {
		return Message{}, fmt.Errorf("send %s: %w", msg.Type, err)
	}

	select {
	case reply := <-ch:
		if reply.Error != nil {
			return reply, reply.Error
		}
		return reply, nil
	case <-c.closed:
		return Message{}, ErrClosed
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

func (c *Client) readLoop() {
	defer func() {
		c.pendingMu.Lock()
		c.pending = nil
		c.pendingMu.Unlock()
		c.box.stop()
		close(c.closed)
	}()

	scanner := bufio.NewScanner(c.nc)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			continue
		}

		switch msg.Type {
		case MsgResult, MsgPong:
			c.pendingMu.Lock()
			ch, ok := c.pending[msg.ID]
			c.pendingMu.Unlock()
			if ok {
				ch <- msg
			}
		case MsgSnapshot:
			if msg.Snapshot != nil {
				c.box.putSnapshot(msg.Snapshot)
			}
		case MsgNotice:
			c.box.putNotice(msg.Notice)
		case MsgClosed:
			c.box.putClosed()
		}
	}
}
