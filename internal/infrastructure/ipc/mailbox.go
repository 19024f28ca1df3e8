package ipc

import (
	"context"
	"sync"

	"github.com/bnema/casement/internal/domain/entity"
)

// mailbox buffers pushes for one reader. Snapshots coalesce to the newest;
// notices queue up to a small bound; closed is sticky and delivered last.
type mailbox struct {
	mu       sync.Mutex
	snapshot *entity.WindowSnapshot
	notices  []string
	closed   bool
	sentEnd  bool
	done     bool
	wake     chan struct{}
}

const maxPendingNotices = 16

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{}, 1)}
}

func (m *mailbox) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mailbox) putSnapshot(snap *entity.WindowSnapshot) {
	m.mu.Lock()
	if m.snapshot != nil && snap.Seq < m.snapshot.Seq {
		m.mu.Unlock()
		return
	}
	m.snapshot = snap
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) putNotice(msg string) {
	m.mu.Lock()
	if len(m.notices) == maxPendingNotices {
		m.notices = m.notices[1:]
	}
	m.notices = append(m.notices, msg)
	m.mu.Unlock()
	m.signal()
}

func (m *mailbox) putClosed() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
}

// stop ends Next for good.
func (m *mailbox) stop() {
	m.mu.Lock()
	m.done = true
	m.mu.Unlock()
	m.signal()
}

// next blocks until a message is available. It returns ErrClosed once the
// closed message has been handed out, or once a stopped mailbox is drained.
func (m *mailbox) next(ctx context.Context) (Message, error) {
	for {
		m.mu.Lock()
		switch {
		case m.sentEnd:
			m.mu.Unlock()
			return Message{}, ErrClosed
		case m.snapshot != nil:
			snap := m.snapshot
			m.snapshot = nil
			m.mu.Unlock()
			return Message{Type: MsgSnapshot, WindowID: snap.WindowID, Snapshot: snap}, nil
		case len(m.notices) > 0:
			msg := m.notices[0]
			m.notices = m.notices[1:]
			m.mu.Unlock()
			return Message{Type: MsgNotice, Notice: msg}, nil
		case m.closed:
			m.sentEnd = true
			m.mu.Unlock()
			return Message{Type: MsgClosed}, nil
		case m.done:
			m.mu.Unlock()
			return Message{}, ErrClosed
		}
		m.mu.Unlock()

		select {
		case <-m.wake:
		case <-ctx.Done():
			return Message{}, ctx.Err()
		}
	}
}
