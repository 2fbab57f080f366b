package wizard

import (
	"sync"

	"github.com/conn-castle/hinstaller/internal/async"
)

// Queue is the ordered list of pending steps.
// Advance pops and activates the next step on the presentation goroutine.
type Queue struct {
	presenter async.Presenter
	activate  func(StepKind)

	mu      sync.Mutex
	pending []StepKind
	current StepKind
	started bool
}

// NewQueue returns a Queue over steps. activate runs once per popped step.
func NewQueue(steps []StepKind, presenter async.Presenter, activate func(StepKind)) *Queue {
	if presenter == nil {
		presenter = async.Immediate{}
	}
	pending := make([]StepKind, len(steps))
	copy(pending, steps)
	return &Queue{presenter: presenter, activate: activate, pending: pending}
}

// Advance schedules activation of the next step. It is a no-op once the queue is empty.
func (q *Queue) Advance() {
	q.presenter.Dispatch(func() {
		step, ok := q.pop()
		if !ok {
			return
		}
		if q.activate != nil {
			q.activate(step)
		}
	})
}

func (q *Queue) pop() (StepKind, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return 0, false
	}
	step := q.pending[0]
	q.pending = q.pending[1:]
	q.current = step
	q.started = true
	return step, true
}

// Current returns the most recently activated step.
func (q *Queue) Current() (StepKind, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.current, q.started
}

// Remaining returns the steps not yet activated.
func (q *Queue) Remaining() []StepKind {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]StepKind, len(q.pending))
	copy(out, q.pending)
	return out
}
