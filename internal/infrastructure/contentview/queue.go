package contentview

import "sync"

// taskQueue runs closures one at a time in submission order. submit never
// blocks, so it is safe from chromedp's event goroutine.
type taskQueue struct {
	mu     sync.Mutex
	tasks  []func()
	notify chan struct{}
}

func newTaskQueue() *taskQueue {
	return &taskQueue{notify: make(chan struct{}, 1)}
}

func (q *taskQueue) submit(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// run executes tasks until done is closed. Pending tasks are dropped.
func (q *taskQueue) run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-q.notify:
		}

		q.mu.Lock()
		tasks := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		for _, fn := range tasks {
			select {
			case <-done:
				return
			default:
			}
			fn()
		}
	}
}
