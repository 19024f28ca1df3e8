package controller

import (
	"sync"

	"github.com/bnema/casement/internal/domain/entity"
)

type eventKind int

const (
	evNavigated eventKind = iota
	evTitleUpdated
	evDOMReady
	evLoadFinished
	evLoadFailed
	evFullscreenEntered
	evFullscreenLeft
	evPersistResult
)

func (k eventKind) String() string {
	switch k {
	case evNavigated:
		return "navigated"
	case evTitleUpdated:
		return "title_updated"
	case evDOMReady:
		return "dom_ready"
	case evLoadFinished:
		return "load_finished"
	case evLoadFailed:
		return "load_failed"
	case evFullscreenEntered:
		return "fullscreen_entered"
	case evFullscreenLeft:
		return "fullscreen_left"
	case evPersistResult:
		return "persist_result"
	default:
		return "unknown"
	}
}

type viewEvent struct {
	kind    eventKind
	tabID   entity.TabID
	url     string
	title   string
	loadErr *entity.LoadError
	err     error
}

// eventQueue is an unbounded FIFO. Push never blocks, so content-view
// callbacks can fire from any goroutine, including the loop itself.
type eventQueue struct {
	mu     sync.Mutex
	items  []viewEvent
	notify chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{notify: make(chan struct{}, 1)}
}

func (q *eventQueue) push(ev viewEvent) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *eventQueue) ready() <-chan struct{} {
	return q.notify
}

func (q *eventQueue) drain() []viewEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}
