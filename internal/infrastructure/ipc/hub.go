package ipc

import (
	"context"
	"sync"

	"github.com/bnema/casement/internal/application/port"
	"github.com/bnema/casement/internal/domain/entity"
)

// Subscription receives pushes for one window.
type Subscription struct {
	windowID entity.WindowID
	box      *mailbox
}

// WindowID is the observed window.
func (s *Subscription) WindowID() entity.WindowID {
	return s.windowID
}

// Next blocks for the next snapshot, notice or closed message.
func (s *Subscription) Next(ctx context.Context) (Message, error) {
	msg, err := s.box.next(ctx)
	if err == nil && msg.WindowID == 0 {
		msg.WindowID = s.windowID
	}
	return msg, err
}

// Hub fans controller pushes out to subscribed surfaces. Publish never
// blocks: a slow subscriber only ever sees the newest snapshot.
type Hub struct {
	mu     sync.Mutex
	subs   map[entity.WindowID]map[*Subscription]struct{}
	latest map[entity.WindowID]*entity.WindowSnapshot
}

var _ port.SnapshotPublisher = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs:   make(map[entity.WindowID]map[*Subscription]struct{}),
		latest: make(map[entity.WindowID]*entity.WindowSnapshot),
	}
}

// Subscribe registers interest in windowID. The last known snapshot, if any,
// is delivered first.
func (h *Hub) Subscribe(windowID entity.WindowID) *Subscription {
	sub := &Subscription{windowID: windowID, box: newMailbox()}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[windowID]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[windowID] = set
	}
	set[sub] = struct{}{}
	if snap, ok := h.latest[windowID]; ok {
		sub.box.putSnapshot(snap)
	}
	return sub
}

// Unsubscribe removes sub and ends its Next loop.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if set, ok := h.subs[sub.windowID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.windowID)
		}
	}
	h.mu.Unlock()
	sub.box.stop()
}

// Subscribers returns the number of subscriptions for windowID.
func (h *Hub) Subscribers(windowID entity.WindowID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[windowID])
}

func (h *Hub) Publish(snap *entity.WindowSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev, ok := h.latest[snap.WindowID]; ok && snap.Seq < prev.Seq {
		return
	}
	// The cached copy drops the notice so late subscribers don't replay it.
	cached := *snap
	cached.Notice = ""
	h.latest[snap.WindowID] = &cached
	for sub := range h.subs[snap.WindowID] {
		sub.box.putSnapshot(snap)
	}
}

func (h *Hub) Notice(windowID entity.WindowID, message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[windowID] {
		sub.box.putNotice(message)
	}
}

func (h *Hub) WindowClosed(windowID entity.WindowID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.latest, windowID)
	for sub := range h.subs[windowID] {
		sub.box.putClosed()
	}
}
